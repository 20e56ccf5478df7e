package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/syncly/syncly/internal/backup"
	"github.com/syncly/syncly/internal/database"
	"github.com/syncly/syncly/internal/logging"
	"github.com/syncly/syncly/internal/server"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	logger := logging.Setup(os.Getenv("SYNCLY_LOG_LEVEL"), os.Getenv("SYNCLY_LOG_FORMAT"))

	port := envOr("SYNCLY_PORT", "8080")
	dbPath := envOr("SYNCLY_DB_PATH", "syncly.db")

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	cfg := server.Config{
		BasePoints: envInt("SYNCLY_POINTS_BASE", 125),
		Backup: backup.Config{
			S3: backup.S3Config{
				Endpoint:  os.Getenv("SYNCLY_S3_ENDPOINT"),
				Bucket:    os.Getenv("SYNCLY_S3_BUCKET"),
				Region:    envOr("SYNCLY_S3_REGION", "auto"),
				AccessKey: os.Getenv("SYNCLY_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("SYNCLY_S3_SECRET_KEY"),
			},
			DBPath:        dbPath,
			Passphrase:    os.Getenv("SYNCLY_BACKUP_PASSPHRASE"),
			ScheduleHour:  envInt("SYNCLY_BACKUP_HOUR", 3),
			RetentionDays: envInt("SYNCLY_BACKUP_RETENTION_DAYS", 30),
		},
	}

	srv := server.New(db, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv.BackupManager().Start(ctx)
	defer srv.BackupManager().Stop()

	// Drop expired rate-limit windows so the map does not grow unbounded.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("syncly listening", "port", port, "db", dbPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
