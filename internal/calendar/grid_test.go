package calendar

import (
	"testing"
	"time"

	"github.com/syncly/syncly/internal/model"
)

func item(id int64, activity, date, child string, cat model.Category) model.ScheduleItem {
	return model.ScheduleItem{ID: id, Activity: activity, Date: date, Child: child, Category: cat}
}

func TestBuildMonthGridMay2025(t *testing.T) {
	items := []model.ScheduleItem{
		item(3, "Story time", "2025-05-22", "Alex", model.CategoryDaycare),
	}
	now := time.Date(2025, time.May, 22, 9, 0, 0, 0, time.UTC)

	grid := BuildMonthGrid(2025, time.May, items, "", now)

	if len(grid.Cells) != 31 {
		t.Fatalf("got %d cells, want 31", len(grid.Cells))
	}
	if grid.MonthName != "May" || grid.Year != 2025 {
		t.Errorf("header = %s %d, want May 2025", grid.MonthName, grid.Year)
	}
	// May 1 2025 is a Thursday.
	if grid.LeadingBlank != 4 {
		t.Errorf("leading blank = %d, want 4", grid.LeadingBlank)
	}

	cell := grid.Cells[21]
	if cell.Day != 22 || cell.Date != "2025-05-22" {
		t.Fatalf("cell 21 = day %d date %s", cell.Day, cell.Date)
	}
	if !cell.IsToday {
		t.Error("expected May 22 to be today")
	}
	if len(cell.Events) != 1 {
		t.Fatalf("got %d events on May 22, want 1", len(cell.Events))
	}
	if cell.Events[0].Icon != "🧸" {
		t.Errorf("event icon = %q, want 🧸", cell.Events[0].Icon)
	}

	for i, c := range grid.Cells {
		if i == 21 {
			continue
		}
		if len(c.Events) != 0 {
			t.Errorf("day %d has %d events, want 0", c.Day, len(c.Events))
		}
		if c.IsToday {
			t.Errorf("day %d marked today", c.Day)
		}
	}
}

func TestBuildMonthGridOverflow(t *testing.T) {
	items := []model.ScheduleItem{
		item(1, "Soccer", "2025-05-20", "Lily", model.CategorySports),
		item(2, "Dentist", "2025-05-20", "Alex", model.CategoryHealth),
		item(3, "Book fair", "2025-05-20", "Lily", model.CategorySchool),
		item(4, "Picnic", "2025-05-20", model.ChildAll, model.CategoryOther),
	}
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	grid := BuildMonthGrid(2025, time.May, items, "", now)

	cell := grid.Cells[19]
	if len(cell.Events) != 2 {
		t.Fatalf("got %d visible events, want 2", len(cell.Events))
	}
	if cell.Overflow != 2 {
		t.Errorf("overflow = %d, want 2", cell.Overflow)
	}
	if cell.Events[0].Activity != "Soccer" || cell.Events[1].Activity != "Dentist" {
		t.Errorf("visible events = %q, %q; want input order", cell.Events[0].Activity, cell.Events[1].Activity)
	}
}

func TestBuildMonthGridChildFilter(t *testing.T) {
	items := []model.ScheduleItem{
		item(1, "Soccer", "2025-05-20", "Lily", model.CategorySports),
		item(2, "Dentist", "2025-05-21", "Alex", model.CategoryHealth),
		item(3, "Picnic", "2025-05-24", model.ChildAll, model.CategoryOther),
	}
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	grid := BuildMonthGrid(2025, time.May, items, "Lily", now)

	var total int
	for _, c := range grid.Cells {
		total += len(c.Events)
	}
	// Lily's own item plus the "All" item; Alex's dentist filtered out.
	if total != 2 {
		t.Errorf("got %d events under Lily filter, want 2", total)
	}
	if len(grid.Cells[20].Events) != 0 {
		t.Error("Alex-only event leaked through Lily filter")
	}
}

func TestBuildMonthGridIgnoresOtherMonths(t *testing.T) {
	items := []model.ScheduleItem{
		item(1, "Soccer", "2025-04-30", "Lily", model.CategorySports),
		item(2, "Swim", "2025-06-01", "Lily", model.CategorySports),
	}
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	grid := BuildMonthGrid(2025, time.May, items, "", now)
	for _, c := range grid.Cells {
		if len(c.Events) != 0 {
			t.Errorf("day %d picked up out-of-month event", c.Day)
		}
	}
}

func TestBuildMonthGridFebruaryLeapYear(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	grid := BuildMonthGrid(2024, time.February, nil, "", now)
	if len(grid.Cells) != 29 {
		t.Errorf("got %d cells for Feb 2024, want 29", len(grid.Cells))
	}
}
