package store

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/syncly/syncly/internal/model"
)

// grocerySnapshotKey is the settings key holding the serialized list.
const grocerySnapshotKey = "grocery_items"

func defaultGroceryCategories() []string {
	return []string{"produce", "dairy", "meat", "bakery", "pantry", "frozen", "other"}
}

func seedGroceryItems(now time.Time) []model.GroceryItem {
	return []model.GroceryItem{
		{ID: 1, Name: "Milk", Category: "dairy", AddedBy: "Mom", AddedAt: now},
		{ID: 2, Name: "Bread", Category: "bakery", AddedBy: "Dad", AddedAt: now},
		{ID: 3, Name: "Apples", Category: "produce", AddedBy: "Lily", AddedAt: now},
		{ID: 4, Name: "Cereal", Category: "pantry", Completed: true, AddedBy: "Alex", AddedAt: now.Add(-24 * time.Hour)},
	}
}

// GroceryStore keeps the grocery list in memory and mirrors the whole list
// as one JSON document in the settings table: read once at construction,
// rewritten in full after every mutation. A missing or unparsable snapshot
// falls back to the seed list.
type GroceryStore struct {
	mu         sync.Mutex
	kv         *SettingsStore
	logger     *slog.Logger
	items      []model.GroceryItem
	categories []string
	nextID     int64
}

func NewGroceryStore(kv *SettingsStore, logger *slog.Logger) *GroceryStore {
	s := &GroceryStore{
		kv:         kv,
		logger:     logger,
		categories: defaultGroceryCategories(),
	}
	s.load()
	return s
}

func (s *GroceryStore) load() {
	raw, err := s.kv.Get(grocerySnapshotKey)
	if err != nil {
		s.logger.Warn("read grocery snapshot", "error", err)
	}

	if raw != "" {
		var items []model.GroceryItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.logger.Warn("corrupt grocery snapshot, using seed data", "error", err)
		} else {
			s.items = items
			s.resetNextID()
			return
		}
	}

	s.items = seedGroceryItems(time.Now().UTC())
	s.resetNextID()
}

func (s *GroceryStore) resetNextID() {
	s.nextID = 1
	for _, it := range s.items {
		if it.ID >= s.nextID {
			s.nextID = it.ID + 1
		}
	}
}

func (s *GroceryStore) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("marshal grocery snapshot", "error", err)
		return
	}
	if err := s.kv.Set(grocerySnapshotKey, string(data)); err != nil {
		s.logger.Error("write grocery snapshot", "error", err)
	}
}

// Items returns a copy of the list in insertion order.
func (s *GroceryStore) Items() []model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *GroceryStore) Add(name, category, addedBy string) model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := model.GroceryItem{
		ID:       s.nextID,
		Name:     name,
		Category: category,
		AddedBy:  addedBy,
		AddedAt:  time.Now().UTC(),
	}
	s.nextID++
	s.items = append(s.items, item)
	s.persist()
	return item
}

// Toggle flips the completed flag. Returns nil if the id is unknown.
func (s *GroceryStore) Toggle(id int64) *model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Completed = !s.items[i].Completed
			s.persist()
			item := s.items[i]
			return &item
		}
	}
	return nil
}

// Remove deletes an item, reporting whether it existed.
func (s *GroceryStore) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = slices.Delete(s.items, i, i+1)
			s.persist()
			return true
		}
	}
	return false
}

// ClearChecked removes every completed item and returns how many were removed.
func (s *GroceryStore) ClearChecked() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(it model.GroceryItem) bool {
		return it.Completed
	})
	if removed := before - len(s.items); removed > 0 {
		s.persist()
		return removed
	}
	return 0
}

func (s *GroceryStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// AddCategory appends a new category name; adding an existing one is a no-op.
// Reports whether the category was added.
func (s *GroceryStore) AddCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if strings.EqualFold(c, name) {
			return false
		}
	}
	s.categories = append(s.categories, name)
	return true
}

// RemoveCategory drops a category from the selectable set. The match folds
// case the same way AddCategory does. Items already in that category keep it.
func (s *GroceryStore) RemoveCategory(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.categories, func(c string) bool {
		return strings.EqualFold(c, name)
	})
	if i < 0 {
		return false
	}
	s.categories = slices.Delete(s.categories, i, i+1)
	return true
}
