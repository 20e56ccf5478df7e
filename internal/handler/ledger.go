package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/syncly/syncly/internal/store"
)

// LedgerHandler serves the completion set and points total. basePoints is
// the family's starting balance, added on top of every credited sum.
type LedgerHandler struct {
	ledger     *store.LedgerStore
	basePoints int
}

func NewLedgerHandler(ls *store.LedgerStore, basePoints int) *LedgerHandler {
	return &LedgerHandler{ledger: ls, basePoints: basePoints}
}

// Toggle flips completion for one item id. The response carries the new
// completion state plus the recomputed summary so clients repaint the
// points header without a second request.
func (h *LedgerHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     int64 `json:"id"`
		Points int   `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.ID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}
	if req.Points < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "points must not be negative"})
		return
	}

	completed, err := h.ledger.Toggle(req.ID, req.Points)
	if err != nil {
		log.Printf("failed to toggle completion: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to toggle completion"})
		return
	}

	summary, err := h.ledger.Summary(h.basePoints)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read ledger"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":            req.ID,
		"completed":     completed,
		"completed_ids": summary.CompletedIDs,
		"total_points":  summary.TotalPoints,
	})
}

func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.Summary(h.basePoints)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read ledger"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
