package model

import "time"

// DateLayout is the wire and storage form of schedule dates.
const DateLayout = "2006-01-02"

// BringItem is one entry on a schedule item's to-bring checklist.
type BringItem struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Checked   bool   `json:"checked"`
	SortOrder int    `json:"sort_order"`
}

// ScheduleItem is a dated, timed family activity. Date is an ISO calendar
// date; Time is a display string and is never parsed for ordering.
type ScheduleItem struct {
	ID        int64       `json:"id"`
	Activity  string      `json:"activity"`
	Date      string      `json:"date"`
	Time      string      `json:"time"`
	Location  string      `json:"location"`
	Address   string      `json:"address"`
	Child     string      `json:"child"`
	Category  Category    `json:"category"`
	Note      string      `json:"note"`
	Points    int         `json:"points"`
	Icon      string      `json:"icon"`
	DriveTime string      `json:"drive_time"`
	ToBring   []BringItem `json:"to_bring"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
