package model

import "time"

// LedgerEntry records that an item (schedule item or chore — the ledger
// does not distinguish) is currently completed, along with the points that
// were credited when it was toggled. Un-toggling refunds PointsCredited,
// never the item's current point value.
type LedgerEntry struct {
	ItemID         int64     `json:"item_id"`
	PointsCredited int       `json:"points_credited"`
	CompletedAt    time.Time `json:"completed_at"`
}

// LedgerSummary is the derived completion/points view.
type LedgerSummary struct {
	CompletedIDs []int64 `json:"completed_ids"`
	TotalPoints  int     `json:"total_points"`
}
