package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/syncly/syncly/internal/model"
	"github.com/syncly/syncly/internal/store"
)

// FamilyMemberHandler serves the roster. The roster is reference data
// seeded by migration, so the API is read-only.
type FamilyMemberHandler struct {
	store *store.FamilyMemberStore
}

func NewFamilyMemberHandler(s *store.FamilyMemberStore) *FamilyMemberHandler {
	return &FamilyMemberHandler{store: s}
}

func (h *FamilyMemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list family members"})
		return
	}
	if members == nil {
		members = []model.FamilyMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
