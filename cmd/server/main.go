package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DukeRupert/vigil/internal"
	"github.com/DukeRupert/vigil/internal/handler"
	"github.com/DukeRupert/vigil/internal/metrics"
	"github.com/DukeRupert/vigil/internal/middleware"
	"github.com/DukeRupert/vigil/internal/report"
	"github.com/DukeRupert/vigil/internal/service"
	"github.com/DukeRupert/vigil/internal/storage"
	"github.com/DukeRupert/vigil/internal/store"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	// Initialize stores
	docs := store.NewPostgresStore(db, logger)
	sessions := store.NewSessionStore(db)

	// Snapshot cache is best-effort: failure to open degrades to no caching.
	var cache *store.SnapshotCache
	if cfg.CachePath != "" {
		cache, err = store.NewSnapshotCache(cfg.CachePath, logger)
		if err != nil {
			logger.Warn("snapshot cache unavailable, continuing without it", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// Initialize report artifact storage
	fileStorage, err := newStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	// Initialize services. The report service doubles as the artifact
	// remover so deleting a document also cleans up its stored report.
	userService := service.NewUserService(sessions, cfg.AllowedInspectors, logger)
	reportService := service.NewReportService(docs, report.NewTextGenerator(), fileStorage, logger)
	inspectionService := service.NewInspectionService(docs, cache, reportService, logger)

	// Warm read of the snapshot cache: instant list availability while the
	// first remote listing is in flight.
	if cached := inspectionService.CachedDocuments(ctx); cached != nil {
		logger.Info("snapshot cache loaded", "documents", len(cached))
	}

	// Initialize middleware
	isSecure := cfg.Env != "development"
	authMw := middleware.NewAuthMiddleware(userService, logger, isSecure)
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuthMw := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	recoveryMw := middleware.NewRecoveryMiddleware(logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, logger, isSecure)
	inspectionHandler := handler.NewInspectionHandler(inspectionService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Catch-all for unmatched routes: a JSON 404 instead of the default
	// plain-text response.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handler.NotFoundResponse(w, r, logger)
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics (basic auth when configured)
	mux.Handle("GET /metrics", metricsAuthMw.Handler(promhttp.Handler()))

	// Report downloads for local storage
	if cfg.StorageProvider == storage.ProviderLocal {
		filesFS := http.FileServer(http.Dir(cfg.LocalStoragePath))
		mux.Handle("GET /files/", http.StripPrefix("/files/", filesFS))
	}

	// Auth routes (public)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /logout", authHandler.Logout)

	// Middleware stack for the inspection API
	requireUser := middleware.Stack(authMw.WithUser, authMw.RequireUser)

	mux.Handle("POST /api/inspections", requireUser(http.HandlerFunc(inspectionHandler.Create)))
	mux.Handle("GET /api/inspections", requireUser(http.HandlerFunc(inspectionHandler.List)))
	mux.Handle("DELETE /api/inspections", requireUser(http.HandlerFunc(inspectionHandler.DeleteMany)))
	mux.Handle("GET /api/inspections/{id}", requireUser(http.HandlerFunc(inspectionHandler.Get)))
	mux.Handle("PUT /api/inspections/{id}", requireUser(http.HandlerFunc(inspectionHandler.Save)))
	mux.Handle("DELETE /api/inspections/{id}", requireUser(http.HandlerFunc(inspectionHandler.Delete)))
	mux.Handle("POST /api/inspections/{id}/duplicate", requireUser(http.HandlerFunc(inspectionHandler.Duplicate)))
	mux.Handle("POST /api/inspections/{id}/apply", requireUser(http.HandlerFunc(inspectionHandler.Apply)))
	mux.Handle("POST /api/inspections/{id}/report", requireUser(http.HandlerFunc(reportHandler.Generate)))

	// Outer middleware applied to everything
	root := middleware.Stack(
		securityMw.Handler,
		metrics.Middleware,
		loggingMw.Handler,
		recoveryMw.Handler,
	)(mux)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: root,
	}

	// Periodic expired-session cleanup
	cleanupCtx, cancelCleanup := context.WithCancel(ctx)
	defer cancelCleanup()
	go sessionCleanupLoop(cleanupCtx, userService, cfg.SessionCleanupInterval, logger)

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newStorage builds the configured storage backend.
func newStorage(cfg *internal.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case storage.ProviderR2:
		s, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := storage.NewLocalStorage(storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// sessionCleanupLoop deletes expired sessions on an interval until ctx ends.
func sessionCleanupLoop(ctx context.Context, users service.UserService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := users.DeleteExpiredSessions(ctx); err != nil {
				logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
