package store

import (
	"database/sql"
	"fmt"

	"github.com/syncly/syncly/internal/model"
)

// ChoreStore manages recurring home tasks. Chore ids come from the same
// item_ids sequence as schedule items (see ScheduleStore).
type ChoreStore struct {
	db *sql.DB
}

func NewChoreStore(db *sql.DB) *ChoreStore {
	return &ChoreStore{db: db}
}

const choreCols = `id, task, assignee, points, category, priority, rescheduled, reschedule_reason, created_at, updated_at`

func scanChore(scanner interface{ Scan(...any) error }) (*model.Chore, error) {
	var c model.Chore
	var rescheduled int
	err := scanner.Scan(
		&c.ID, &c.Task, &c.Assignee, &c.Points, &c.Category, &c.Priority,
		&rescheduled, &c.RescheduleReason, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Rescheduled = rescheduled != 0
	return &c, nil
}

func (s *ChoreStore) Create(task, assignee string, points int, category string, priority model.Priority) (*model.Chore, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`INSERT INTO item_ids DEFAULT VALUES`)
	if err != nil {
		return nil, fmt.Errorf("claim item id: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO chores (id, task, assignee, points, category, priority) VALUES (?, ?, ?, ?, ?, ?)`,
		id, task, assignee, points, category, priority,
	)
	if err != nil {
		return nil, fmt.Errorf("insert chore: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChoreStore) GetByID(id int64) (*model.Chore, error) {
	row := s.db.QueryRow(`SELECT `+choreCols+` FROM chores WHERE id = ?`, id)
	c, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

// List returns all chores in insertion order.
func (s *ChoreStore) List() ([]model.Chore, error) {
	rows, err := s.db.Query(`SELECT ` + choreCols + ` FROM chores ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

func (s *ChoreStore) ListByAssignee(assignee string) ([]model.Chore, error) {
	rows, err := s.db.Query(`SELECT `+choreCols+` FROM chores WHERE assignee = ? ORDER BY id ASC`, assignee)
	if err != nil {
		return nil, fmt.Errorf("list chores by assignee: %w", err)
	}
	defer rows.Close()

	var chores []model.Chore
	for rows.Next() {
		c, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

func (s *ChoreStore) Update(id int64, task, assignee string, points int, category string, priority model.Priority) (*model.Chore, error) {
	_, err := s.db.Exec(
		`UPDATE chores SET task = ?, assignee = ?, points = ?, category = ?, priority = ?, updated_at = datetime('now') WHERE id = ?`,
		task, assignee, points, category, priority, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	return s.GetByID(id)
}

// Reschedule marks the chore as bumped and records why. An empty reason
// clears the annotation.
func (s *ChoreStore) Reschedule(id int64, reason string) (*model.Chore, error) {
	var rescheduled int
	if reason != "" {
		rescheduled = 1
	}
	_, err := s.db.Exec(
		`UPDATE chores SET rescheduled = ?, reschedule_reason = ?, updated_at = datetime('now') WHERE id = ?`,
		rescheduled, reason, id,
	)
	if err != nil {
		return nil, fmt.Errorf("reschedule chore: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the chore together with its ledger credit in one
// transaction, mirroring ScheduleStore.Delete.
func (s *ChoreStore) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ledger_entries WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("refund ledger credit: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM chores WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
