// Package calendar builds the month-view grid from schedule items. It is
// pure computation: callers load items and inject the clock, which keeps
// "today" highlighting testable.
package calendar

import (
	"time"

	"github.com/syncly/syncly/internal/model"
)

// maxVisibleEvents is how many events a day cell shows before collapsing
// the remainder into an overflow count.
const maxVisibleEvents = 2

// Event is the compact per-cell rendering of a schedule item.
type Event struct {
	ID       int64          `json:"id"`
	Activity string         `json:"activity"`
	Time     string         `json:"time"`
	Child    string         `json:"child"`
	Category model.Category `json:"category"`
	Icon     string         `json:"icon"`
}

// Cell is one day of the month grid.
type Cell struct {
	Day      int     `json:"day"`
	Date     string  `json:"date"`
	Weekday  string  `json:"weekday"`
	IsToday  bool    `json:"is_today"`
	Events   []Event `json:"events"`
	Overflow int     `json:"overflow"`
}

// Grid is a month of day cells plus the header metadata the month view needs.
type Grid struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	MonthName    string `json:"month_name"`
	LeadingBlank int    `json:"leading_blank"`
	Cells        []Cell `json:"cells"`
}

// BuildMonthGrid lays out every day of the given month. Items outside the
// month are ignored; items whose child does not match childFilter are
// skipped (an empty filter shows everything, "All"-assigned items always
// show). Each cell carries at most maxVisibleEvents events and an overflow
// count for the rest. now decides which cell is today.
func BuildMonthGrid(year int, month time.Month, items []model.ScheduleItem, childFilter string, now time.Time) *Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	today := now.Format(model.DateLayout)

	byDate := make(map[string][]Event)
	for _, it := range items {
		if !model.ChildMatches(it.Child, childFilter) {
			continue
		}
		byDate[it.Date] = append(byDate[it.Date], Event{
			ID:       it.ID,
			Activity: it.Activity,
			Time:     it.Time,
			Child:    it.Child,
			Category: it.Category,
			Icon:     it.Category.Icon(),
		})
	}

	cells := make([]Cell, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		date := d.Format(model.DateLayout)
		events := byDate[date]

		overflow := 0
		if len(events) > maxVisibleEvents {
			overflow = len(events) - maxVisibleEvents
			events = events[:maxVisibleEvents]
		}
		if events == nil {
			events = []Event{}
		}

		cells = append(cells, Cell{
			Day:      day,
			Date:     date,
			Weekday:  d.Weekday().String(),
			IsToday:  date == today,
			Events:   events,
			Overflow: overflow,
		})
	}

	return &Grid{
		Year:         year,
		Month:        int(month),
		MonthName:    month.String(),
		LeadingBlank: int(first.Weekday()),
		Cells:        cells,
	}
}
