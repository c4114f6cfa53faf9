// Copyright (c) 2026 PodCentral. All rights reserved.

/*
Package episode provides the read side of episode playback data.

Besides the episode rows themselves it serves the player's sub-resources:
chapter markers, transcript cues, and soundbites, all maintained by the
feed sync pipeline.
*/
package episode

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/podcentral/api/internal/platform/request"
	"github.com/podcentral/api/internal/platform/respond"
	"github.com/podcentral/api/pkg/convert"
	"github.com/podcentral/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for episode reads.
type Handler struct {
	service *Service
}

// NewHandler constructs an episode [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the episode endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/recent", handler.listRecent)
	router.Get("/search", handler.search)
	router.Get("/{episodeID}", handler.getEpisode)

	// Player sub-resources
	router.Get("/{episodeID}/chapters", handler.listChapters)
	router.Get("/{episodeID}/transcript", handler.getTranscript)
	router.Get("/{episodeID}/soundbites", handler.listSoundbites)

	return router
}

// PodcastEpisodeRoutes returns the nested listing mounted under
// /podcasts/{podcastID}/episodes.
func (handler *Handler) PodcastEpisodeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listByPodcast)

	return router
}

// # Episode Endpoints

/*
GET /api/v1/podcasts/{podcastID}/episodes.

Description: A show's episode list, newest first.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Episode: Paginated episode page
*/
func (handler *Handler) listByPodcast(writer http.ResponseWriter, request *http.Request) {
	podcastID := requestutil.ID(request, "podcastID")
	paginationParams := pagination.FromRequest(request)

	episodes, total, err := handler.service.ListByPodcast(request.Context(), podcastID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, episodes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/episodes/recent.

Description: The newest episodes across all shows, for the home feed.

Request:
  - limit: int (default 10, max 50)

Response:
  - 200: []Episode
*/
func (handler *Handler) listRecent(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), 10)

	episodes, err := handler.service.ListRecent(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, episodes)
}

/*
GET /api/v1/episodes/search.

Description: Free-text episode search across title and description.

Request:
  - q: string (required)
  - limit: int
  - page: int

Response:
  - 200: []Episode: Paginated matches
  - 400: ErrValidation: Missing query
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	episodes, total, err := handler.service.Search(request.Context(), request.URL.Query().Get("q"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, episodes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/episodes/{episodeID}.

Description: Episode detail with contributor credits and social links.

Response:
  - 200: Episode: Success
  - 404: ErrNotFound: Unknown episode id
*/
func (handler *Handler) getEpisode(writer http.ResponseWriter, request *http.Request) {
	episodeID := requestutil.ID(request, "episodeID")

	installment, err := handler.service.GetEpisode(request.Context(), episodeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, installment)
}

// # Sub-Resource Endpoints

// GET /api/v1/episodes/{episodeID}/chapters.
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.GetChapters(request.Context(), requestutil.ID(request, "episodeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapters)
}

// GET /api/v1/episodes/{episodeID}/transcript.
func (handler *Handler) getTranscript(writer http.ResponseWriter, request *http.Request) {
	segments, err := handler.service.GetTranscript(request.Context(), requestutil.ID(request, "episodeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, segments)
}

// GET /api/v1/episodes/{episodeID}/soundbites.
func (handler *Handler) listSoundbites(writer http.ResponseWriter, request *http.Request) {
	soundbites, err := handler.service.GetSoundbites(request.Context(), requestutil.ID(request, "episodeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, soundbites)
}
