package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/syncly/syncly/internal/model"
	"github.com/syncly/syncly/internal/store"
)

type ChoreHandler struct {
	chores *store.ChoreStore
}

func NewChoreHandler(cs *store.ChoreStore) *ChoreHandler {
	return &ChoreHandler{chores: cs}
}

type choreRequest struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Points   int    `json:"points"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

func (req *choreRequest) validate() string {
	req.Task = strings.TrimSpace(req.Task)
	if req.Task == "" {
		return "task is required"
	}
	if strings.TrimSpace(req.Assignee) == "" {
		return "assignee is required"
	}
	if req.Points < 0 {
		return "points must not be negative"
	}
	if req.Priority == "" {
		req.Priority = string(model.PriorityLow)
	}
	if !model.ValidPriority(model.Priority(req.Priority)) {
		return "priority must be low, medium, or high"
	}
	return ""
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		chores []model.Chore
		err    error
	)
	if assignee := r.URL.Query().Get("assignee"); assignee != "" {
		chores, err = h.chores.ListByAssignee(assignee)
	} else {
		chores, err = h.chores.List()
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	chore, err := h.chores.Create(req.Task, req.Assignee, req.Points, req.Category, model.Priority(req.Priority))
	if err != nil {
		log.Printf("failed to create chore: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create chore"})
		return
	}
	writeJSON(w, http.StatusCreated, chore)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.chores.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get chore"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	chore, err := h.chores.Update(id, req.Task, req.Assignee, req.Points, req.Category, model.Priority(req.Priority))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update chore"})
		return
	}
	writeJSON(w, http.StatusOK, chore)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.chores.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get chore"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	if err := h.chores.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete chore"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reschedule annotates a chore as moved. An empty reason clears the
// annotation.
func (h *ChoreHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	chore, err := h.chores.Reschedule(id, strings.TrimSpace(req.Reason))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to reschedule chore"})
		return
	}
	if chore == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}
	writeJSON(w, http.StatusOK, chore)
}
