package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/syncly/syncly/internal/backup"
	"github.com/syncly/syncly/internal/model"
	"github.com/syncly/syncly/internal/store"
)

type BackupHandler struct {
	manager *backup.Manager
	backups *store.BackupStore
}

func NewBackupHandler(m *backup.Manager, bs *store.BackupStore) *BackupHandler {
	return &BackupHandler{manager: m, backups: bs}
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.backups.List(50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list backups"})
		return
	}
	if records == nil {
		records = []model.Backup{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.Status())
}

// RunNow kicks off an immediate backup and waits for it to finish; a
// household database is small enough that the upload completes within an
// ordinary request timeout.
func (h *BackupHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	id, err := h.manager.RunNow(r.Context())
	if err != nil {
		log.Printf("backup failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	record, err := h.backups.GetByID(id)
	if err != nil || record == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read backup record"})
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// Restore replaces the live database with the chosen snapshot. On success
// the process exits for a clean restart, so no response body ever arrives.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.manager.Restore(r.Context(), id); err != nil {
		log.Printf("restore failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
}

// Download streams the encrypted snapshot for offline safekeeping.
func (h *BackupHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	record, err := h.backups.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read backup record"})
		return
	}
	if record == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "backup not found"})
		return
	}

	body, size, err := h.manager.Download(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Filename))
	if size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
	}
	io.Copy(w, body)
}
