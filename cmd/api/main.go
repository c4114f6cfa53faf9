// Copyright (c) 2026 PodCentral. All rights reserved.

// Command api is the entry point for the PodCentral HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/podcentral/api/internal/api"
	"github.com/podcentral/api/internal/core/comment"
	"github.com/podcentral/api/internal/core/episode"
	"github.com/podcentral/api/internal/core/podcast"
	"github.com/podcentral/api/internal/directory"
	"github.com/podcentral/api/internal/feedsync"
	"github.com/podcentral/api/internal/library"
	"github.com/podcentral/api/internal/platform/config"
	"github.com/podcentral/api/internal/platform/constants"
	"github.com/podcentral/api/internal/platform/limiter"
	"github.com/podcentral/api/internal/platform/migration"
	pgstore "github.com/podcentral/api/internal/platform/postgres"
	redisstore "github.com/podcentral/api/internal/platform/redis"
	"github.com/podcentral/api/internal/platform/sec"
	"github.com/podcentral/api/internal/users/account"
	"github.com/podcentral/api/internal/users/auth"
	"github.com/podcentral/api/internal/wallet"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "podcentral"))
	slog.SetDefault(log)

	log.Info("[PodCentral] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "podcentral"))
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

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
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
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Rate Limiting ───────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// Lifecycle context for the per-client limiter's eviction loop.
	limiterCtx, limiterCancel := context.WithCancel(context.Background())
	defer limiterCancel()

	perClient := limiter.NewPerClient(limiterCtx,
		constants.DefaultRateLimitRPS,
		constants.DefaultRateLimitBurst,
		constants.RateLimitClientTTL,
		constants.RateLimitCleanupInterval,
	)
	counterStore := limiter.NewRedisCounterStore(rdb)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────

	// Identity & access
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	verificationTokenRepository := auth.NewVerificationTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, verificationTokenRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(
		account.NewAccountRepository(pool),
		account.NewPreferencesRepository(pool),
		account.NewSessionRepository(pool),
		log,
	)
	accountHandler := account.NewHandler(accountService)

	// Catalogue reads
	podcastHandler := podcast.NewHandler(podcast.NewService(podcast.NewPostgresRepository(pool)))
	episodeHandler := episode.NewHandler(episode.NewService(episode.NewPostgresRepository(pool)))
	commentHandler := comment.NewHandler(comment.NewService(comment.NewPostgresRepository(pool)))

	// External directory and feed ingestion
	directoryClient := directory.NewClient(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey, cfg.DirectoryAPISecret)
	directoryHandler := directory.NewHandler(directoryClient)

	syncService := feedsync.NewService(directoryClient, feedsync.NewFetcher(), feedsync.NewPostgresStore(pool))
	syncHandler := feedsync.NewHandler(syncService, counterStore)

	// Personal library and wallet
	libraryHandler := library.NewHandler(library.NewService(library.NewPostgresRepository(pool)))
	walletHandler := wallet.NewHandler(wallet.NewService(wallet.NewPostgresRepository(pool)))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Podcast:   podcastHandler,
		Episode:   episodeHandler,
		Comment:   commentHandler,
		Directory: directoryHandler,
		FeedSync:  syncHandler,
		Library:   libraryHandler,
		Wallet:    walletHandler,
	}

	server := api.NewServer(cfg, log, jwtSvc, perClient, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
