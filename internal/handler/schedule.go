package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/syncly/syncly/internal/model"
	"github.com/syncly/syncly/internal/store"
)

type ScheduleHandler struct {
	schedule *store.ScheduleStore
}

func NewScheduleHandler(ss *store.ScheduleStore) *ScheduleHandler {
	return &ScheduleHandler{schedule: ss}
}

type scheduleRequest struct {
	Activity  string   `json:"activity"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Location  string   `json:"location"`
	Address   string   `json:"address"`
	Child     string   `json:"child"`
	Category  string   `json:"category"`
	Note      string   `json:"note"`
	Points    int      `json:"points"`
	DriveTime string   `json:"drive_time"`
	ToBring   []string `json:"to_bring"`
}

// validate normalizes the request in place, returning a user-facing error
// message or "".
func (req *scheduleRequest) validate() string {
	req.Activity = strings.TrimSpace(req.Activity)
	if req.Activity == "" {
		return "activity is required"
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return "date must be formatted YYYY-MM-DD"
	}
	if strings.TrimSpace(req.Time) == "" {
		return "time is required"
	}
	if req.Child == "" {
		req.Child = model.ChildAll
	}
	if req.Category == "" {
		req.Category = string(model.CategoryOther)
	}
	if !model.ValidCategory(model.Category(req.Category)) {
		return "unknown category"
	}
	if req.Points < 0 {
		return "points must not be negative"
	}
	if req.DriveTime == "" {
		req.DriveTime = "20 min"
	}
	return ""
}

func (req *scheduleRequest) input() store.ScheduleInput {
	return store.ScheduleInput{
		Activity:  req.Activity,
		Date:      req.Date,
		Time:      req.Time,
		Location:  req.Location,
		Address:   req.Address,
		Child:     req.Child,
		Category:  model.Category(req.Category),
		Note:      req.Note,
		Points:    req.Points,
		DriveTime: req.DriveTime,
	}
}

// List serves the schedule, optionally filtered by ?date= or ?child=.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		items []model.ScheduleItem
		err   error
	)
	switch {
	case r.URL.Query().Get("date") != "":
		items, err = h.schedule.ListByDate(r.URL.Query().Get("date"))
	case r.URL.Query().Get("child") != "":
		items, err = h.schedule.ListByChild(r.URL.Query().Get("child"))
	default:
		items, err = h.schedule.List()
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list schedule"})
		return
	}
	if items == nil {
		items = []model.ScheduleItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	item, err := h.schedule.Create(req.input(), req.ToBring)
	if err != nil {
		log.Printf("failed to create schedule item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create schedule item"})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	item, err := h.schedule.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get schedule item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule item not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.schedule.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get schedule item"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule item not found"})
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	item, err := h.schedule.Update(id, req.input())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update schedule item"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete removes the item and refunds any points credited for it, so the
// family total never keeps credit for something that no longer exists.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.schedule.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get schedule item"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule item not found"})
		return
	}

	if err := h.schedule.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete schedule item"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScheduleHandler) ToggleBring(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	bringID, err := strconv.ParseInt(r.PathValue("bring_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid bring_id"})
		return
	}

	bring, err := h.schedule.ToggleBringItem(id, bringID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to toggle bring item"})
		return
	}
	if bring == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "bring item not found"})
		return
	}
	writeJSON(w, http.StatusOK, bring)
}
