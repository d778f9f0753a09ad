// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the YaMDb HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the security primitives (JWT, confirmation codes, mail).
//  7. Wire the health probes.
//  8. Wire HTTP handlers.
//  9. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/yamdb/internal/api"
	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
	redisstore "github.com/taibuivan/yamdb/internal/platform/redis"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/social/comment"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[YaMDb] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("token_response_enabled", cfg.TokenResponseEnabled),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.Database.URL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.Database.URL, cfg.Database.MigrationPath, log), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.Signing.PrivateKeyPath, cfg.Signing.PublicKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	codes, err := sec.NewCodeGenerator(cfg.SecretKey, cfg.ConfirmationCodeTTL)
	must(log, err, "initialize confirmation codes")

	mailer := mail.New(cfg.Mail, log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	accountRepository := account.NewPostgresRepository(pool)
	accountService := account.NewService(accountRepository, log)

	authService := auth.NewService(
		accountRepository,
		auth.NewRedisCodeLedger(rdb),
		codes,
		jwtSvc,
		mailer,
		cfg.Signing.AccessTokenTTL,
		log,
	)

	categoryService := reference.NewService(reference.NewPostgresRepository(pool, reference.Categories), reference.Categories, log)
	genreService := reference.NewService(reference.NewPostgresRepository(pool, reference.Genres), reference.Genres, log)
	titleService := title.NewService(title.NewPostgresRepository(pool), log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), log)
	commentService := comment.NewService(comment.NewPostgresRepository(pool), log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService, cfg.TokenResponseEnabled),
		Categories: reference.NewHandler(categoryService),
		Genres:     reference.NewHandler(genreService),
		Titles:     title.NewHandler(titleService),
		Reviews:    review.NewHandler(reviewService),
		Comments:   comment.NewHandler(commentService),
		Users:      account.NewHandler(accountService),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Security{Verifier: jwtSvc, Loader: accountService}, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
