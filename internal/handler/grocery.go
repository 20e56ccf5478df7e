package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/syncly/syncly/internal/store"
)

type GroceryHandler struct {
	grocery *store.GroceryStore
}

func NewGroceryHandler(gs *store.GroceryStore) *GroceryHandler {
	return &GroceryHandler{grocery: gs}
}

func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.grocery.Items())
}

func (h *GroceryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		AddedBy  string `json:"added_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.Category == "" {
		req.Category = "other"
	}

	item := h.grocery.Add(req.Name, req.Category, req.AddedBy)
	writeJSON(w, http.StatusCreated, item)
}

func (h *GroceryHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	item := h.grocery.Toggle(id)
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "grocery item not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *GroceryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if !h.grocery.Remove(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "grocery item not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroceryHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	removed := h.grocery.ClearChecked()
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (h *GroceryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.grocery.Categories())
}

func (h *GroceryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.ToLower(strings.TrimSpace(req.Name))
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	// Duplicate adds are a no-op, not an error: the kiosk UI double-taps.
	h.grocery.AddCategory(req.Name)
	writeJSON(w, http.StatusOK, h.grocery.Categories())
}

func (h *GroceryHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !h.grocery.RemoveCategory(name) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
		return
	}
	writeJSON(w, http.StatusOK, h.grocery.Categories())
}
