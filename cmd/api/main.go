// Package main is the entry point for the travel catalog API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/tripveda/tripveda-api/internal/blog"
	"github.com/tripveda/tripveda-api/internal/catalog"
	"github.com/tripveda/tripveda-api/internal/config"
	"github.com/tripveda/tripveda-api/internal/flags"
	"github.com/tripveda/tripveda-api/internal/handler"
	"github.com/tripveda/tripveda-api/internal/middleware"
	"github.com/tripveda/tripveda-api/internal/notify"
	"github.com/tripveda/tripveda-api/internal/repo"
	"github.com/tripveda/tripveda-api/internal/service"
	"github.com/tripveda/tripveda-api/migrations"
)

// maxBodyBytes caps request bodies; the largest legitimate payload is a
// query form with a long message.
const maxBodyBytes = 64 << 10

func main() {
	// --- Config -----------------------------------------------------------
	// .env is a local development convenience; in deployment the variables
	// come from the environment and the file is absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose needs database/sql, not the pgx pool, so it gets its own
	// short-lived connection.
	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Redis ------------------------------------------------------------
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// Session flags degrade gracefully, so Redis being down is not fatal.
		slog.Warn("redis unreachable, popup suppression disabled", "error", err)
	}

	// --- Catalog & blog ---------------------------------------------------
	// A failed initial load is not fatal: the store stays in its error
	// state, read endpoints answer 503, and POST /catalog/reload retries.
	store := catalog.NewStore(catalog.NewSource(cfg.CatalogURL, nil), catalog.NewRegistry(), logger)
	defer store.Close()
	if err := store.Load(context.Background()); err != nil {
		slog.Error("initial catalog load failed", "error", err)
	}

	blogStore := blog.NewStore(cfg.BlogURL, nil, logger)
	if cfg.BlogURL != "" {
		if err := blogStore.Load(context.Background()); err != nil {
			slog.Error("initial blog load failed", "error", err)
		}
	}

	// --- Services ---------------------------------------------------------
	sheet := notify.NewSheetClient(cfg.SheetWebhookURL, nil)
	leadSvc := service.NewLeadService(
		repo.NewLeadRepo(pool), store, sheet, logger,
		cfg.WhatsAppNumber, cfg.RequireBackendAck,
	)
	newsletterSvc := service.NewNewsletterService(repo.NewNewsletterRepo(pool))
	flagStore := flags.NewStore(rdb)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	srv := handler.NewServer(store, blogStore, leadSvc, newsletterSvc, flagStore, logger)
	srv.Routes(r)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies all pending migrations from the embedded filesystem.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
