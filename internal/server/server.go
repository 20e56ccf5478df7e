package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/syncly/syncly/internal/backup"
	"github.com/syncly/syncly/internal/handler"
	"github.com/syncly/syncly/internal/middleware"
	"github.com/syncly/syncly/internal/store"
	"github.com/syncly/syncly/internal/view"
)

// Config holds the pieces the server wires beyond the database handle.
type Config struct {
	BasePoints int
	Backup     backup.Config
}

type Server struct {
	db            *sql.DB
	familyMemberH *handler.FamilyMemberHandler
	scheduleH     *handler.ScheduleHandler
	choreH        *handler.ChoreHandler
	ledgerH       *handler.LedgerHandler
	calendarH     *handler.CalendarHandler
	viewH         *handler.ViewHandler
	groceryH      *handler.GroceryHandler
	backupH       *handler.BackupHandler
	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	familyMemberStore := store.NewFamilyMemberStore(db)
	scheduleStore := store.NewScheduleStore(db)
	choreStore := store.NewChoreStore(db)
	ledgerStore := store.NewLedgerStore(db)
	settingsStore := store.NewSettingsStore(db)
	groceryStore := store.NewGroceryStore(settingsStore, logger.With("component", "grocery"))
	backupStore := store.NewBackupStore(db)

	backupMgr := backup.NewManager(cfg.Backup, db, backupStore, settingsStore, logger.With("component", "backup"))

	controller := view.New(time.Now())

	return &Server{
		db:            db,
		familyMemberH: handler.NewFamilyMemberHandler(familyMemberStore),
		scheduleH:     handler.NewScheduleHandler(scheduleStore),
		choreH:        handler.NewChoreHandler(choreStore),
		ledgerH:       handler.NewLedgerHandler(ledgerStore, cfg.BasePoints),
		calendarH:     handler.NewCalendarHandler(scheduleStore),
		viewH:         handler.NewViewHandler(controller),
		groceryH:      handler.NewGroceryHandler(groceryStore),
		backupH:       handler.NewBackupHandler(backupMgr, backupStore),
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// BackupManager returns the backup manager so main can start and stop its
// schedule loop.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /api/family-members", s.familyMemberH.List)

	mux.HandleFunc("GET /api/schedule", s.scheduleH.List)
	mux.HandleFunc("POST /api/schedule", s.rateLimited(s.scheduleH.Create))
	mux.HandleFunc("GET /api/schedule/{id}", s.scheduleH.Get)
	mux.HandleFunc("PUT /api/schedule/{id}", s.scheduleH.Update)
	mux.HandleFunc("DELETE /api/schedule/{id}", s.scheduleH.Delete)
	mux.HandleFunc("POST /api/schedule/{id}/bring/{bring_id}/toggle", s.scheduleH.ToggleBring)

	mux.HandleFunc("GET /api/chores", s.choreH.List)
	mux.HandleFunc("POST /api/chores", s.rateLimited(s.choreH.Create))
	mux.HandleFunc("PUT /api/chores/{id}", s.choreH.Update)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /api/chores/{id}/reschedule", s.choreH.Reschedule)

	mux.HandleFunc("GET /api/ledger", s.ledgerH.Summary)
	mux.HandleFunc("POST /api/ledger/toggle", s.ledgerH.Toggle)

	mux.HandleFunc("GET /api/calendar/{year}/{month}", s.calendarH.Month)

	mux.HandleFunc("GET /api/view", s.viewH.Get)
	mux.HandleFunc("PUT /api/view", s.viewH.Update)
	mux.HandleFunc("POST /api/view/next-month", s.viewH.NextMonth)
	mux.HandleFunc("POST /api/view/prev-month", s.viewH.PrevMonth)
	mux.HandleFunc("POST /api/view/select-day", s.viewH.SelectDay)

	mux.HandleFunc("GET /api/grocery", s.groceryH.List)
	mux.HandleFunc("POST /api/grocery", s.rateLimited(s.groceryH.Add))
	mux.HandleFunc("DELETE /api/grocery/{id}", s.groceryH.Remove)
	mux.HandleFunc("POST /api/grocery/{id}/toggle", s.groceryH.Toggle)
	mux.HandleFunc("POST /api/grocery/clear-checked", s.groceryH.ClearChecked)
	mux.HandleFunc("GET /api/grocery/categories", s.groceryH.Categories)
	mux.HandleFunc("POST /api/grocery/categories", s.groceryH.AddCategory)
	mux.HandleFunc("DELETE /api/grocery/categories/{name}", s.groceryH.RemoveCategory)

	mux.HandleFunc("GET /api/backups", s.backupH.List)
	mux.HandleFunc("POST /api/backups", s.rateLimited(s.backupH.RunNow))
	mux.HandleFunc("GET /api/backups/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backups/{id}/restore", s.backupH.Restore)
	mux.HandleFunc("GET /api/backups/{id}/download", s.backupH.Download)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// rateLimited wraps create-style endpoints with a fixed per-client window.
// A household never legitimately creates sixty things in a minute.
func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.ClientIP, 60, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(h).ServeHTTP(w, r)
	}
}
