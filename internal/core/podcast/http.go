// Copyright (c) 2026 PodCentral. All rights reserved.

/*
Package podcast provides the read side of the show catalogue.

It exposes browsing, category, and detail endpoints over rows maintained by
the feed sync pipeline. The package never writes podcast rows itself.
*/
package podcast

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/podcentral/api/internal/platform/request"
	"github.com/podcentral/api/internal/platform/respond"
	"github.com/podcentral/api/pkg/pagination"
	"github.com/podcentral/api/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalogue discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a podcast [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the catalogue's public endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPodcasts)
	router.Get("/{podcastID}", handler.getPodcast)

	return router
}

// CategoryRoutes returns the category shelf endpoints, mounted separately
// under /categories.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)

	return router
}

// # Catalogue Endpoints

/*
GET /api/v1/podcasts.

Description: Browses the local catalogue. All filters combine.

Request:
  - q: string (free-text match on title, author, description)
  - category: string (comma-separated category labels, any casing)
  - medium: string (podcast, music, video, audiobook)
  - limit: int
  - page: int

Response:
  - 200: []Podcast: Paginated catalogue page, newest first
*/
func (handler *Handler) listPodcasts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:      queryParams.Get("q"),
		Categories: query.StringSlice(queryParams.Get("category")),
		Medium:     queryParams.Get("medium"),
	}

	podcasts, total, err := handler.service.ListPodcasts(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, podcasts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/podcasts/{podcastID}.

Description: Show detail including funding and value configuration.

Response:
  - 200: Podcast: Success
  - 404: ErrNotFound: Unknown podcast id
*/
func (handler *Handler) getPodcast(writer http.ResponseWriter, request *http.Request) {
	podcastID := requestutil.ID(request, "podcastID")

	show, err := handler.service.GetPodcast(request.Context(), podcastID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, show)
}

/*
GET /api/v1/categories.

Description: The browsable category shelf.

Response:
  - 200: []Category: All categories
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}
