package handler

import (
	"encoding/json"
	"net/http"

	"github.com/syncly/syncly/internal/view"
)

// ViewHandler exposes the shared navigation state. One controller serves
// the whole household, so every screen stays on the same page.
type ViewHandler struct {
	controller *view.Controller
}

func NewViewHandler(c *view.Controller) *ViewHandler {
	return &ViewHandler{controller: c}
}

func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}

// Update sets the mode and/or child filter. Omitted fields are left alone;
// clearing the filter takes an explicit empty "child".
func (h *ViewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		View  *string `json:"view"`
		Child *string `json:"child"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.View != nil {
		if err := h.controller.SetMode(view.Mode(*req.View)); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "view must be daily, weekly, or monthly"})
			return
		}
	}
	if req.Child != nil {
		h.controller.SelectChild(*req.Child)
	}

	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}

func (h *ViewHandler) NextMonth(w http.ResponseWriter, r *http.Request) {
	h.controller.NextMonth()
	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}

func (h *ViewHandler) PrevMonth(w http.ResponseWriter, r *http.Request) {
	h.controller.PrevMonth()
	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}

func (h *ViewHandler) SelectDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.controller.SelectDay(req.Date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be formatted YYYY-MM-DD"})
		return
	}
	writeJSON(w, http.StatusOK, h.controller.Snapshot())
}
