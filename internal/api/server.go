// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/metrics"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/social/comment"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles signup and token exchange.
	Auth *auth.Handler

	Categories *reference.Handler
	Genres     *reference.Handler
	Titles     *title.Handler

	// Reviews and Comments are nested below a title.
	Reviews  *review.Handler
	Comments *comment.Handler

	// Users handles /users and /users/me.
	Users *account.Handler
}

// Security groups what the middleware chain needs to resolve the caller.
type Security struct {
	Verifier middleware.TokenVerifier
	Loader   middleware.ActorLoader
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. ctx bounds background work such as the rate
// limiter cleanup loop.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, security Security, h Handlers) *Server {
	r := NewRouter(ctx, cfg, log, security, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without a listener.
func NewRouter(ctx context.Context, cfg *config.Config, log *slog.Logger, security Security, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.ClientIP(cfg.TrustedProxies))
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(metrics.Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(security.Verifier, security.Loader))

	// Set before mounting so every sub-router answers in the JSON envelope.
	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Resource"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.MethodNotAllowed(request.Method))
	})

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", metrics.Handler())

	// # Application API
	r.Route("/v1", func(v1 chi.Router) {
		v1.With(middleware.AuthRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)).
			Mount("/auth", h.Auth.Routes())

		v1.Mount("/categories", h.Categories.Routes())
		v1.Mount("/genres", h.Genres.Routes())
		v1.Mount("/users", h.Users.Routes())

		reviews := h.Reviews.Routes()
		reviews.Mount("/{review_id:[0-9]+}/comments", h.Comments.Routes())

		titles := h.Titles.Routes()
		titles.Mount("/{title_id:[0-9]+}/reviews", reviews)
		v1.Mount("/titles", titles)
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
