// Copyright (c) 2026 Tripgate. All rights reserved.

// Command api is the entry point for the Tripgate gateway server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env in development).
//  3. Connect to Redis (review cache).
//  4. Construct the content-source client.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/joho/godotenv"

	"github.com/nguyenvo/tripgate/internal/api"
	"github.com/nguyenvo/tripgate/internal/catalog"
	"github.com/nguyenvo/tripgate/internal/cms"
	"github.com/nguyenvo/tripgate/internal/formproxy"
	"github.com/nguyenvo/tripgate/internal/mediaproxy"
	"github.com/nguyenvo/tripgate/internal/platform/config"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
	redisstore "github.com/nguyenvo/tripgate/internal/platform/redis"
	"github.com/nguyenvo/tripgate/internal/reviews"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "tripgate"))
	slog.SetDefault(log)

	log.Info("[Tripgate] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a development convenience; its absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Info("loaded .env file")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "tripgate"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Content Source ─────────────────────────────────────────────────
	cmsClient := cms.NewClient(cms.ClientConfig{
		BaseURL:       cfg.CMSAPIURL,
		BasicAuthUser: cfg.CMSBasicAuthUser,
		BasicAuthPass: cfg.CMSBasicAuthPass,
	})

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckContentSource: func() error {
			return cmsClient.Ping(context.Background())
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	catalogService := catalog.NewService(cmsClient, log)
	catalogHandler := catalog.NewHandler(catalogService)

	mediaHandler := mediaproxy.NewHandler(mediaproxy.Options{
		OriginHosts:       cfg.CMSOriginHosts(),
		AllowedHostSuffix: cfg.MediaAllowedHostSuffix,
		BasicAuthUser:     cfg.CMSBasicAuthUser,
		BasicAuthPass:     cfg.CMSBasicAuthPass,
	}, log)

	formHandler := formproxy.NewHandler(formproxy.Options{
		BaseURL:       cfg.CMSAPIURL,
		BasicAuthUser: cfg.CMSBasicAuthUser,
		BasicAuthPass: cfg.CMSBasicAuthPass,
	}, log)

	placesClient := reviews.NewPlacesClient(cfg.PlacesAPIURL, cfg.PlacesAPIKey, cfg.PlacesPlaceID)
	reviewStore := reviews.NewRedisStore(rdb)
	reviewService := reviews.NewService(placesClient, cmsClient, reviewStore, cfg.ReviewCacheTTL, log)
	reviewHandler := reviews.NewHandler(reviewService, cfg.ReviewSyncKey)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalogHandler,
		Media:     mediaHandler,
		Form:      formHandler,
		Reviews:   reviewHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
