package store

import (
	"database/sql"
	"fmt"

	"github.com/syncly/syncly/internal/model"
)

// LedgerStore is the completion/points bookkeeping for both schedule items
// and chores. It stores the points actually credited when an id entered the
// completed set, so un-toggling always refunds that amount even if the
// item's point value has changed in the meantime.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Toggle flips the completion state of an item. Completing credits the given
// points; un-completing refunds the stored credit and ignores the points
// argument. Returns whether the item is completed after the call.
func (s *LedgerStore) Toggle(itemID int64, points int) (bool, error) {
	if points < 0 {
		return false, fmt.Errorf("points must be non-negative, got %d", points)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var credited int
	err = tx.QueryRow(`SELECT points_credited FROM ledger_entries WHERE item_id = ?`, itemID).Scan(&credited)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.Exec(
			`INSERT INTO ledger_entries (item_id, points_credited) VALUES (?, ?)`,
			itemID, points,
		); err != nil {
			return false, fmt.Errorf("insert ledger entry: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("commit: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("get ledger entry: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM ledger_entries WHERE item_id = ?`, itemID); err != nil {
		return false, fmt.Errorf("delete ledger entry: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return false, nil
}

// IsCompleted reports whether the item is currently in the completed set.
func (s *LedgerStore) IsCompleted(itemID int64) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM ledger_entries WHERE item_id = ?`, itemID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}
	return true, nil
}

// Entries returns the completed set in completion order.
func (s *LedgerStore) Entries() ([]model.LedgerEntry, error) {
	rows, err := s.db.Query(
		`SELECT item_id, points_credited, completed_at FROM ledger_entries ORDER BY completed_at ASC, item_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		if err := rows.Scan(&e.ItemID, &e.PointsCredited, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary computes the completed-id set and the running total: the base
// offset plus all credited points, clamped at zero.
func (s *LedgerStore) Summary(basePoints int) (*model.LedgerSummary, error) {
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}

	summary := &model.LedgerSummary{
		CompletedIDs: []int64{},
		TotalPoints:  basePoints,
	}
	for _, e := range entries {
		summary.CompletedIDs = append(summary.CompletedIDs, e.ItemID)
		summary.TotalPoints += e.PointsCredited
	}
	if summary.TotalPoints < 0 {
		summary.TotalPoints = 0
	}
	return summary, nil
}
