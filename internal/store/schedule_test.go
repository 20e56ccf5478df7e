package store

import (
	"testing"

	"github.com/syncly/syncly/internal/database"
	"github.com/syncly/syncly/internal/model"
)

func setupScheduleTestDB(t *testing.T) (*ScheduleStore, *ChoreStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewScheduleStore(db), NewChoreStore(db)
}

func TestScheduleSeedData(t *testing.T) {
	ss, _ := setupScheduleTestDB(t)

	items, err := ss.List()
	if err != nil {
		t.Fatalf("list schedule items: %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("expected 6 seed items, got %d", len(items))
	}
	if items[0].Activity != "Soccer practice" {
		t.Errorf("first item = %q, want %q", items[0].Activity, "Soccer practice")
	}
	if len(items[0].ToBring) != 3 {
		t.Errorf("first item bring list = %d entries, want 3", len(items[0].ToBring))
	}
}

func TestScheduleCreateAppendOnly(t *testing.T) {
	ss, _ := setupScheduleTestDB(t)

	before, err := ss.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	created, err := ss.Create(ScheduleInput{
		Activity:  "Piano recital",
		Date:      "2025-05-30",
		Time:      "6:30 PM",
		Child:     "Lily",
		Category:  model.CategoryOther,
		Points:    10,
		DriveTime: "20 min",
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Icon != "📝" {
		t.Errorf("icon = %q, want %q", created.Icon, "📝")
	}

	after, err := ss.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("length = %d, want %d", len(after), len(before)+1)
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Activity != before[i].Activity {
			t.Errorf("prior entry %d changed: %+v vs %+v", i, after[i], before[i])
		}
	}
	if after[len(after)-1].ID != created.ID {
		t.Errorf("new entry not appended last")
	}
}

func TestScheduleCategoryIcons(t *testing.T) {
	ss, _ := setupScheduleTestDB(t)

	cases := []struct {
		category model.Category
		icon     string
	}{
		{model.CategorySchool, "🏫"},
		{model.CategoryDaycare, "🧸"},
		{model.CategorySports, "⚽"},
		{model.CategoryHealth, "🏥"},
		{model.CategoryChore, "🧹"},
		{model.CategoryOther, "📝"},
	}
	for _, tc := range cases {
		item, err := ss.Create(ScheduleInput{
			Activity: "Icon check", Date: "2025-06-01", Time: "9:00 AM",
			Category: tc.category, DriveTime: "20 min",
		}, nil)
		if err != nil {
			t.Fatalf("create %s: %v", tc.category, err)
		}
		if item.Icon != tc.icon {
			t.Errorf("icon for %s = %q, want %q", tc.category, item.Icon, tc.icon)
		}
	}
}

func TestScheduleListByDate(t *testing.T) {
	ss, _ := setupScheduleTestDB(t)

	items, err := ss.ListByDate("2025-05-22")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item on 2025-05-22, got %d", len(items))
	}
	if items[0].Activity != "Story time" {
		t.Errorf("activity = %q, want %q", items[0].Activity, "Story time")
	}

	items, err = ss.ListByDate("2025-01-01")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items on empty date, got %d", len(items))
	}
}

func TestScheduleListByChild(t *testing.T) {
	ss, _ := setupScheduleTestDB(t)

	// Lily has 3 items plus the "All" picnic.
	items, err := ss.ListByChild("Lily")
	if err != nil {
		t.Fatalf("list by child: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items for Lily, got %d", len(items))
	}
	for _, it := range items {
		if it.Child != "Lily" && it.Child != model.ChildAll {
			t.Errorf("item %d child = %q, want Lily or All", it.ID, it.Child)
		}
	}

	// Empty filter returns everything, order unchanged.
	all, err := ss.ListByChild("")
	if err != nil {
		t.Fatalf("list by empty child: %v", err)
	}
	full, _ := ss.List()
	if len(all) != len(full) {
		t.Fatalf("empty filter length = %d, want %d", len(all), len(full))
	}
	for i := range all {
		if all[i].ID != full[i].ID {
			t.Errorf("empty filter changed order at %d", i)
		}
	}
}

func TestScheduleUpdate(t *testing.T) {
	ss, _ := setupScheduleTestDB(t)

	item, err := ss.Create(ScheduleInput{
		Activity: "Checkup", Date: "2025-06-05", Time: "11:00 AM",
		Child: "Alex", Category: model.CategoryHealth, DriveTime: "20 min",
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := ss.Update(item.ID, ScheduleInput{
		Activity: "Annual checkup", Date: "2025-06-06", Time: "2:00 PM",
		Child: "Alex", Category: model.CategoryHealth, Points: 5, DriveTime: "25 min",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Activity != "Annual checkup" || updated.Date != "2025-06-06" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Points != 5 {
		t.Errorf("points = %d, want 5", updated.Points)
	}
}

func TestScheduleDeleteCascadesBringItems(t *testing.T) {
	ss, _ := setupScheduleTestDB(t)

	item, err := ss.Create(ScheduleInput{
		Activity: "Camping trip", Date: "2025-07-01", Time: "8:00 AM",
		Child: model.ChildAll, Category: model.CategoryOther, DriveTime: "90 min",
	}, []string{"Tent", "Sleeping bags"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(item.ToBring) != 2 {
		t.Fatalf("bring list = %d, want 2", len(item.ToBring))
	}

	if err := ss.Delete(item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := ss.GetByID(item.ID)
	if err != nil {
		t.Fatalf("get deleted: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted item")
	}

	// Bring items must not survive their parent.
	b, err := ss.ToggleBringItem(item.ID, item.ToBring[0].ID)
	if err != nil {
		t.Fatalf("toggle orphan: %v", err)
	}
	if b != nil {
		t.Error("expected nil toggling bring item of deleted parent")
	}
}

func TestScheduleDeleteRefundsLedgerCredit(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ss := NewScheduleStore(db)
	ls := NewLedgerStore(db)

	item, err := ss.Create(ScheduleInput{
		Activity: "Bake sale", Date: "2025-06-14", Time: "10:00 AM",
		Child: "Lily", Category: model.CategorySchool, Points: 15, DriveTime: "10 min",
	}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := ls.Toggle(item.ID, 15); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	const base = 125
	sum, _ := ls.Summary(base)
	if sum.TotalPoints != base+15 {
		t.Fatalf("total before delete = %d, want %d", sum.TotalPoints, base+15)
	}

	if err := ss.Delete(item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The credit goes with the item: one transaction, so the total can never
	// show a refund for an item that still exists or vice versa.
	sum, err = ls.Summary(base)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalPoints != base {
		t.Errorf("total after delete = %d, want %d", sum.TotalPoints, base)
	}
	for _, id := range sum.CompletedIDs {
		if id == item.ID {
			t.Errorf("deleted item %d still in completed set", item.ID)
		}
	}
}

func TestToggleBringItem(t *testing.T) {
	ss, _ := setupScheduleTestDB(t)

	item, _ := ss.GetByID(1)
	if item == nil || len(item.ToBring) == 0 {
		t.Fatal("seed item 1 should have a bring list")
	}

	first := item.ToBring[0]
	toggled, err := ss.ToggleBringItem(item.ID, first.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Checked {
		t.Error("expected checked after first toggle")
	}

	toggled, err = ss.ToggleBringItem(item.ID, first.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if toggled.Checked {
		t.Error("expected unchecked after second toggle")
	}
}

func TestItemIDsSharedAcrossStores(t *testing.T) {
	ss, cs := setupScheduleTestDB(t)

	item, err := ss.Create(ScheduleInput{
		Activity: "Recital", Date: "2025-06-10", Time: "5:00 PM",
		Category: model.CategoryOther, DriveTime: "20 min",
	}, nil)
	if err != nil {
		t.Fatalf("create schedule item: %v", err)
	}

	chore, err := cs.Create("Fold laundry", "Lily", 10, "bedroom", model.PriorityMedium)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	if item.ID == chore.ID {
		t.Fatalf("schedule item and chore share id %d", item.ID)
	}
	if chore.ID != item.ID+1 {
		t.Errorf("ids not monotonic: schedule=%d chore=%d", item.ID, chore.ID)
	}
}
