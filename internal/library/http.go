// Copyright (c) 2026 PodCentral. All rights reserved.

/*
Package library implements a user's personal library: podcast
subscriptions and per-episode listening history.

Everything here is scoped to the authenticated user; there is no
cross-user read surface.
*/
package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podcentral/api/internal/platform/middleware"
	requestutil "github.com/podcentral/api/internal/platform/request"
	"github.com/podcentral/api/internal/platform/respond"
	"github.com/podcentral/api/pkg/convert"
)

// # Handler Implementation

// Handler implements the HTTP layer for the user library.
type Handler struct {
	service *Service
}

// NewHandler constructs a library [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the library endpoints. Every route
// requires an authenticated user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/subscriptions", handler.listSubscriptions)
	router.Get("/subscriptions/{podcastID}", handler.getSubscription)
	router.Put("/subscriptions/{podcastID}", handler.subscribe)
	router.Delete("/subscriptions/{podcastID}", handler.unsubscribe)

	router.Get("/history", handler.listHistory)
	router.Get("/history/{episodeID}", handler.getProgress)
	router.Put("/history/{episodeID}", handler.saveProgress)

	return router
}

// # Subscription Endpoints

/*
GET /api/v1/library/subscriptions.

Description: The user's followed podcasts, most recently subscribed first.

Response:
  - 200: []SubscribedPodcast
*/
func (handler *Handler) listSubscriptions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscriptions, err := handler.service.ListSubscriptions(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, subscriptions)
}

// subscriptionStatus is the response schema for a follow check.
type subscriptionStatus struct {
	Subscribed bool `json:"subscribed"`
}

// GET /api/v1/library/subscriptions/{podcastID}.
func (handler *Handler) getSubscription(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscribed, err := handler.service.IsSubscribed(request.Context(), userID, requestutil.ID(request, "podcastID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, subscriptionStatus{Subscribed: subscribed})
}

/*
PUT /api/v1/library/subscriptions/{podcastID}.

Description: Follows a podcast. Following twice is a no-op, so the
endpoint is safely retryable.

Response:
  - 204: Subscribed
  - 400: ErrValidation: Malformed podcast id
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Subscribe(request.Context(), userID, requestutil.ID(request, "podcastID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// DELETE /api/v1/library/subscriptions/{podcastID}.
func (handler *Handler) unsubscribe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unsubscribe(request.Context(), userID, requestutil.ID(request, "podcastID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # History Endpoints

/*
GET /api/v1/library/history.

Description: Recently played episodes with stored positions, most recent
first.

Request:
  - limit: int (default 50)

Response:
  - 200: []HistoryEntry
*/
func (handler *Handler) listHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultHistoryLimit)

	history, err := handler.service.ListHistory(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, history)
}

// progressPayload carries a playback position in seconds.
type progressPayload struct {
	Progress float64 `json:"progress"`
}

// GET /api/v1/library/history/{episodeID}.
func (handler *Handler) getProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.GetProgress(request.Context(), userID, requestutil.ID(request, "episodeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progressPayload{Progress: progress})
}

/*
PUT /api/v1/library/history/{episodeID}.

Description: Reports the current playback position. The player calls this
periodically; the last write wins.

Request:
  - progress: float (seconds, required, non-negative)

Response:
  - 204: Stored
  - 400: ErrValidation: Negative progress
*/
func (handler *Handler) saveProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload progressPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SaveProgress(request.Context(), userID, requestutil.ID(request, "episodeID"), payload.Progress); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
