// Copyright (c) 2026 PodCentral. All rights reserved.

/*
Package comment implements per-episode discussion threads.

Threads mix locally posted comments with entries mirrored from other
platforms (ActivityPub posts, Lightning boostagrams). Storage is flat
rows with a parent_id; the tree is assembled on read.
*/
package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podcentral/api/internal/platform/middleware"
	requestutil "github.com/podcentral/api/internal/platform/request"
	"github.com/podcentral/api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for episode discussions.
type Handler struct {
	service *Service
}

// NewHandler constructs a comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the comment endpoints, mounted under
// /episodes/{episodeID}/comments.
//
// Reading a thread is public; posting requires an authenticated user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getThread)

	router.Group(func(guarded chi.Router) {
		guarded.Use(middleware.RequireAuth)

		guarded.Post("/", handler.postComment)
	})

	return router
}

// # Endpoints

/*
GET /api/v1/episodes/{episodeID}/comments.

Description: The episode's discussion thread, top-level comments oldest
first with replies nested.

Response:
  - 200: []Comment: Thread tree
*/
func (handler *Handler) getThread(writer http.ResponseWriter, request *http.Request) {
	episodeID := requestutil.ID(request, "episodeID")

	thread, err := handler.service.GetThread(request.Context(), episodeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, thread)
}

// commentRequest is the inbound JSON schema for posting a comment.
//
// Author identity is taken from the session, never from the body.
type commentRequest struct {
	Text        string  `json:"text"`
	ParentID    *string `json:"parent_id"`
	BoostAmount *int64  `json:"boost_amount"`
}

/*
POST /api/v1/episodes/{episodeID}/comments.

Description: Posts a comment or reply as the authenticated user. A comment
carrying a boost amount is recorded as a boostagram.

Request:
  - text: string (required, at most 2000 characters)
  - parent_id: string (optional, id of the comment being replied to)
  - boost_amount: int (optional, sats attached to the comment)

Response:
  - 201: Comment: The stored comment
  - 400: ErrValidation: Missing or oversized text
  - 401: ErrUnauthorized: Not logged in
*/
func (handler *Handler) postComment(writer http.ResponseWriter, request *http.Request) {

	// 1. Decode the payload and resolve the author from the session
	var payload commentRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Assemble and store the comment
	newComment := &Comment{
		EpisodeID:   requestutil.ID(request, "episodeID"),
		ParentID:    payload.ParentID,
		UserID:      &claims.UserID,
		Author:      claims.Username,
		Text:        payload.Text,
		BoostAmount: payload.BoostAmount,
	}
	if payload.BoostAmount != nil {
		newComment.Platform = PlatformBoost
	}

	if err := handler.service.AddComment(request.Context(), newComment); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newComment)
}
