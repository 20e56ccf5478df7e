package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/syncly/syncly/internal/calendar"
	"github.com/syncly/syncly/internal/store"
)

// CalendarHandler builds month grids from the schedule on demand.
type CalendarHandler struct {
	schedule *store.ScheduleStore
	now      func() time.Time
}

func NewCalendarHandler(ss *store.ScheduleStore) *CalendarHandler {
	return &CalendarHandler{schedule: ss, now: time.Now}
}

// Month serves GET /api/calendar/{year}/{month} with an optional ?child=
// filter.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil || month < 1 || month > 12 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "month must be 1-12"})
		return
	}

	items, err := h.schedule.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list schedule"})
		return
	}

	grid := calendar.BuildMonthGrid(year, time.Month(month), items, r.URL.Query().Get("child"), h.now())
	writeJSON(w, http.StatusOK, grid)
}
