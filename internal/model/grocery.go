package model

import "time"

// GroceryItem is one entry on the shared grocery list. The whole list is
// persisted as a single JSON document, not row by row.
type GroceryItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	AddedBy   string    `json:"added_by"`
	AddedAt   time.Time `json:"added_at"`
}
