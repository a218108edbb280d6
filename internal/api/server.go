// Copyright (c) 2026 Tripgate. All rights reserved.

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

	"github.com/nguyenvo/tripgate/internal/catalog"
	"github.com/nguyenvo/tripgate/internal/cms"
	"github.com/nguyenvo/tripgate/internal/formproxy"
	"github.com/nguyenvo/tripgate/internal/mediaproxy"
	"github.com/nguyenvo/tripgate/internal/platform/config"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
	"github.com/nguyenvo/tripgate/internal/platform/middleware"
	"github.com/nguyenvo/tripgate/internal/reviews"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Catalog handles tour, duration, taxonomy, and post browsing.
	Catalog *catalog.Handler

	// Media streams allow-listed remote media assets.
	Media *mediaproxy.Handler

	// Form relays contact-form submissions to the content source.
	Form *formproxy.Handler

	// Reviews serves the cached review snapshot and its sync actions.
	Reviews *reviews.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution. The locale router
	// runs after CleanPath so prefix matching sees canonical paths, and the
	// dedup scope wraps everything below it so one request shares one scope.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.LocaleRouter())
	r.Use(cms.ScopeMiddleware())

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Proxy Endpoints
	// Request-scoped entry points independent of the content API.
	r.Mount("/api/media", h.Media.Routes())
	r.Mount("/api/contact", h.Form.Routes())
	r.Mount("/api/reviews", h.Reviews.Routes())

	// # Application API
	// Content browsing mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/", h.Catalog.Routes())
	})

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
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
