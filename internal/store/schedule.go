package store

import (
	"database/sql"
	"fmt"

	"github.com/syncly/syncly/internal/model"
)

// ScheduleStore manages schedule items and their to-bring checklists.
// Item ids are claimed from the shared item_ids sequence so schedule items
// and chores never collide in the completion ledger's id namespace.
type ScheduleStore struct {
	db *sql.DB
}

func NewScheduleStore(db *sql.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

// ScheduleInput carries the caller-supplied fields for create and update.
type ScheduleInput struct {
	Activity  string
	Date      string
	Time      string
	Location  string
	Address   string
	Child     string
	Category  model.Category
	Note      string
	Points    int
	DriveTime string
}

const scheduleCols = `id, activity, date, time, location, address, child, category, note, points, drive_time, created_at, updated_at`

func scanScheduleItem(scanner interface{ Scan(...any) error }) (*model.ScheduleItem, error) {
	var it model.ScheduleItem
	err := scanner.Scan(
		&it.ID, &it.Activity, &it.Date, &it.Time, &it.Location, &it.Address,
		&it.Child, &it.Category, &it.Note, &it.Points, &it.DriveTime,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Icon = it.Category.Icon()
	return &it, nil
}

// Create appends a new schedule item, optionally with a to-bring checklist.
func (s *ScheduleStore) Create(in ScheduleInput, toBring []string) (*model.ScheduleItem, error) {
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
		`INSERT INTO schedule_items (id, activity, date, time, location, address, child, category, note, points, drive_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.Activity, in.Date, in.Time, in.Location, in.Address, in.Child, in.Category, in.Note, in.Points, in.DriveTime,
	)
	if err != nil {
		return nil, fmt.Errorf("insert schedule item: %w", err)
	}

	for i, text := range toBring {
		if _, err := tx.Exec(
			`INSERT INTO bring_items (schedule_item_id, text, sort_order) VALUES (?, ?, ?)`,
			id, text, i,
		); err != nil {
			return nil, fmt.Errorf("insert bring item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *ScheduleStore) GetByID(id int64) (*model.ScheduleItem, error) {
	row := s.db.QueryRow(`SELECT `+scheduleCols+` FROM schedule_items WHERE id = ?`, id)
	it, err := scanScheduleItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule item: %w", err)
	}
	if err := s.attachBringItems(it); err != nil {
		return nil, err
	}
	return it, nil
}

// List returns all schedule items in insertion order.
func (s *ScheduleStore) List() ([]model.ScheduleItem, error) {
	return s.list(`SELECT ` + scheduleCols + ` FROM schedule_items ORDER BY id ASC`)
}

// ListByDate returns the items on the given calendar date, insertion order
// preserved.
func (s *ScheduleStore) ListByDate(date string) ([]model.ScheduleItem, error) {
	return s.list(`SELECT `+scheduleCols+` FROM schedule_items WHERE date = ? ORDER BY id ASC`, date)
}

// ListByChild returns the items visible under the child filter. An empty
// filter returns everything; otherwise an item matches on its own child or
// on the "All" wildcard.
func (s *ScheduleStore) ListByChild(child string) ([]model.ScheduleItem, error) {
	if child == "" {
		return s.List()
	}
	return s.list(
		`SELECT `+scheduleCols+` FROM schedule_items WHERE child IN (?, ?) ORDER BY id ASC`,
		child, model.ChildAll,
	)
}

func (s *ScheduleStore) list(query string, args ...any) ([]model.ScheduleItem, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedule items: %w", err)
	}
	defer rows.Close()

	var items []model.ScheduleItem
	for rows.Next() {
		it, err := scanScheduleItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule item: %w", err)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.attachBringItems(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *ScheduleStore) Update(id int64, in ScheduleInput) (*model.ScheduleItem, error) {
	_, err := s.db.Exec(
		`UPDATE schedule_items
		 SET activity = ?, date = ?, time = ?, location = ?, address = ?, child = ?, category = ?, note = ?, points = ?, drive_time = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		in.Activity, in.Date, in.Time, in.Location, in.Address, in.Child, in.Category, in.Note, in.Points, in.DriveTime, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update schedule item: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the item together with its ledger credit. Both rows go in
// one transaction so a failure partway never leaves a refund applied for an
// item that still exists.
func (s *ScheduleStore) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM ledger_entries WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("refund ledger credit: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM schedule_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete schedule item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ToggleBringItem flips the checked flag on one checklist entry of the item.
// Returns nil if the entry does not exist on that item.
func (s *ScheduleStore) ToggleBringItem(itemID, bringID int64) (*model.BringItem, error) {
	var b model.BringItem
	var checked int
	err := s.db.QueryRow(
		`SELECT id, text, checked, sort_order FROM bring_items WHERE id = ? AND schedule_item_id = ?`,
		bringID, itemID,
	).Scan(&b.ID, &b.Text, &checked, &b.SortOrder)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bring item: %w", err)
	}

	b.Checked = checked == 0
	var next int
	if b.Checked {
		next = 1
	}
	if _, err := s.db.Exec(`UPDATE bring_items SET checked = ? WHERE id = ?`, next, b.ID); err != nil {
		return nil, fmt.Errorf("toggle bring item: %w", err)
	}
	return &b, nil
}

func (s *ScheduleStore) attachBringItems(it *model.ScheduleItem) error {
	rows, err := s.db.Query(
		`SELECT id, text, checked, sort_order FROM bring_items WHERE schedule_item_id = ? ORDER BY sort_order ASC, id ASC`,
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("list bring items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b model.BringItem
		var checked int
		if err := rows.Scan(&b.ID, &b.Text, &checked, &b.SortOrder); err != nil {
			return fmt.Errorf("scan bring item: %w", err)
		}
		b.Checked = checked != 0
		it.ToBring = append(it.ToBring, b)
	}
	return rows.Err()
}
