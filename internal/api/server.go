// Copyright (c) 2026 PodCentral. All rights reserved.

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

	"github.com/podcentral/api/internal/core/comment"
	"github.com/podcentral/api/internal/core/episode"
	"github.com/podcentral/api/internal/core/podcast"
	"github.com/podcentral/api/internal/directory"
	"github.com/podcentral/api/internal/feedsync"
	"github.com/podcentral/api/internal/library"
	"github.com/podcentral/api/internal/platform/config"
	"github.com/podcentral/api/internal/platform/constants"
	"github.com/podcentral/api/internal/platform/limiter"
	"github.com/podcentral/api/internal/platform/middleware"
	"github.com/podcentral/api/internal/users/account"
	"github.com/podcentral/api/internal/users/auth"
	"github.com/podcentral/api/internal/wallet"
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

	// Auth handles authentication routes (login, register, refresh).
	Auth *auth.Handler

	// Account handles profile, preferences, and session management.
	Account *account.Handler

	// Podcast handles the show catalogue and category browsing.
	Podcast *podcast.Handler

	// Episode handles episode reads and player sub-resources.
	Episode *episode.Handler

	// Comment handles per-episode discussion threads.
	Comment *comment.Handler

	// Directory proxies the external podcast directory (search, trending).
	Directory *directory.Handler

	// FeedSync triggers feed ingestion from the directory.
	FeedSync *feedsync.Handler

	// Library handles subscriptions and listening history.
	Library *library.Handler

	// Wallet handles the value-for-value sats wallet.
	Wallet *wallet.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, perClient *limiter.PerClient, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(perClient))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/", h.Account.Routes())

		// Catalogue, with episode listings nested under their show
		podcasts := h.Podcast.Routes()
		podcasts.Mount("/{podcastID}/episodes", h.Episode.PodcastEpisodeRoutes())
		api.Mount("/podcasts", podcasts)
		api.Mount("/categories", h.Podcast.CategoryRoutes())

		// Episodes, with discussion threads nested per episode
		episodes := h.Episode.Routes()
		episodes.Mount("/{episodeID}/comments", h.Comment.Routes())
		api.Mount("/episodes", episodes)

		// External directory, with the sync trigger nested under it
		dir := h.Directory.Routes()
		dir.Mount("/sync", h.FeedSync.Routes())
		api.Mount("/directory", dir)

		api.Mount("/library", h.Library.Routes())
		api.Mount("/wallet", h.Wallet.Routes())
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
