// Package view holds the shared UI navigation state: which mode is active,
// which child is filtered, and where the date/month cursors point. The
// state is server-side so every connected screen in the house shows the
// same thing.
package view

import (
	"fmt"
	"sync"
	"time"

	"github.com/syncly/syncly/internal/model"
)

// Mode is the active layout.
type Mode string

const (
	ModeDaily   Mode = "daily"
	ModeWeekly  Mode = "weekly"
	ModeMonthly Mode = "monthly"
)

// ValidMode reports whether m is a known layout.
func ValidMode(m Mode) bool {
	switch m {
	case ModeDaily, ModeWeekly, ModeMonthly:
		return true
	}
	return false
}

// State is a point-in-time copy of the controller, safe to hand to callers.
type State struct {
	Mode        Mode   `json:"mode"`
	ChildFilter string `json:"child_filter"`
	Date        string `json:"date"`
	MonthYear   int    `json:"month_year"`
	Month       int    `json:"month"`
}

// Controller tracks navigation state. The zero value is not usable; call New.
type Controller struct {
	mu sync.Mutex

	mode        Mode
	childFilter string
	date        time.Time // day cursor for the daily/weekly views
	monthAnchor time.Time // always the first of the viewed month
}

// New starts in daily mode on now's date with no child filter.
func New(now time.Time) *Controller {
	return &Controller{
		mode:        ModeDaily,
		date:        now,
		monthAnchor: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

// SetMode switches the layout. The cursors are left where they are so
// flipping between modes round-trips.
func (c *Controller) SetMode(m Mode) error {
	if !ValidMode(m) {
		return fmt.Errorf("unknown view mode %q", m)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	return nil
}

// SelectChild sets the roster filter. Empty clears it back to everyone.
func (c *Controller) SelectChild(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.childFilter = name
}

// NextMonth advances the month cursor. Anchoring on the first of the month
// keeps AddDate from skipping short months.
func (c *Controller) NextMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.monthAnchor = c.monthAnchor.AddDate(0, 1, 0)
}

// PrevMonth moves the month cursor back.
func (c *Controller) PrevMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.monthAnchor = c.monthAnchor.AddDate(0, -1, 0)
}

// SelectDay jumps to a specific date and switches to the daily view, the
// way tapping a day cell in the month grid does. The month cursor follows
// so going back to monthly shows the month that was tapped.
func (c *Controller) SelectDay(date string) error {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", date, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.date = d
	c.monthAnchor = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	c.mode = ModeDaily
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Mode:        c.mode,
		ChildFilter: c.childFilter,
		Date:        c.date.Format(model.DateLayout),
		MonthYear:   c.monthAnchor.Year(),
		Month:       int(c.monthAnchor.Month()),
	}
}

// MonthCursor returns the viewed month for the grid builder.
func (c *Controller) MonthCursor() (int, time.Month) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.monthAnchor.Year(), c.monthAnchor.Month()
}

// ChildFilter returns the active roster filter, empty for everyone.
func (c *Controller) ChildFilter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.childFilter
}

// Date returns the day cursor as a date string.
func (c *Controller) Date() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.date.Format(model.DateLayout)
}
