// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podcentral/api/internal/platform/apperr"
	"github.com/podcentral/api/internal/platform/constants"
	"github.com/podcentral/api/internal/platform/limiter"
	"github.com/podcentral/api/internal/platform/middleware"
	requestutil "github.com/podcentral/api/internal/platform/request"
	"github.com/podcentral/api/internal/platform/respond"
)

// maxSafeFeedID bounds inbound feed ids to the range a JSON number can
// represent exactly (2^53 - 1).
const maxSafeFeedID = int64(1)<<53 - 1

// # Handler Implementation

// Handler exposes the sync trigger over HTTP.
type Handler struct {
	service *Service
	counter limiter.CounterStore
}

// NewHandler constructs a sync [Handler].
//
// The counter store backs the endpoint's fixed-window rate limit and is
// injected so multi-instance deployments can share it through Redis.
func NewHandler(service *Service, counter limiter.CounterStore) *Handler {
	return &Handler{service: service, counter: counter}
}

// Routes returns a [chi.Router] with the sync endpoint, mounted under
// /directory/sync.
//
// The trigger is expensive (directory fetches plus dozens of writes), so it
// stacks three guards: same-origin check, authenticated user, and a
// fixed-window per-IP rate limit.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(guarded chi.Router) {
		guarded.Use(middleware.SameOrigin())
		guarded.Use(middleware.RequireAuth)
		guarded.Use(middleware.FixedWindowLimit(handler.counter, "sync", constants.SyncRateLimit, constants.SyncRateWindow))

		guarded.Post("/", handler.syncPodcast)
	})

	return router
}

// syncRequest is the inbound JSON schema for the sync trigger.
type syncRequest struct {
	FeedID int64 `json:"feed_id"`
}

/*
POST /api/v1/directory/sync.

Description: Ingests (or refreshes) a podcast feed from the external
directory. Requires an authenticated user; rate limited per client IP.

Request:
  - feed_id: int (required, positive, at most 2^53-1)

Response:
  - 200: Result: success summary with created/updated counts
  - 400: ErrValidation: Missing or out-of-range feed id
  - 500: Result: failure summary with a single error message
*/
func (handler *Handler) syncPodcast(writer http.ResponseWriter, request *http.Request) {

	// 1. Decode and validate the trigger payload
	var payload syncRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if payload.FeedID <= 0 || payload.FeedID > maxSafeFeedID {
		respond.Error(writer, request, apperr.ValidationError("feed_id must be a positive integer"))
		return
	}

	// 2. Run the pipeline
	result, err := handler.service.Sync(request.Context(), payload.FeedID)
	if err != nil {
		// Fatal pipeline failures surface the flat result shape with a
		// single error string, per the sync return contract.
		respond.JSON(writer, http.StatusInternalServerError, result)
		return
	}

	respond.JSON(writer, http.StatusOK, result)
}
