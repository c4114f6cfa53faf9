// Copyright (c) 2026 PodCentral. All rights reserved.

package directory

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/podcentral/api/internal/platform/apperr"
	requestutil "github.com/podcentral/api/internal/platform/request"
	"github.com/podcentral/api/internal/platform/respond"
	"github.com/podcentral/api/pkg/convert"
	"github.com/podcentral/api/pkg/slice"
)

// # Input Sanitization

const (
	// minSearchQueryLength rejects one-character probes that would fan out
	// over the whole directory index.
	minSearchQueryLength = 2

	// maxSearchQueryLength caps the phrase forwarded upstream.
	maxSearchQueryLength = 200

	// maxLanguageFilterLength / maxCategoryFilterLength cap the trending
	// filter values before whitelisting.
	maxLanguageFilterLength = 10
	maxCategoryFilterLength = 50

	// trendingCacheControl lets CDNs absorb the trending shelf, which is
	// identical for every anonymous client within the window.
	trendingCacheControl = "public, s-maxage=300, stale-while-revalidate=600"
)

// sanitizeQuery prepares a free-text phrase for the upstream call: trims,
// caps the length, and strips control characters plus punctuation with
// shell or quoting semantics.
func sanitizeQuery(raw string) string {
	trimmed := strings.TrimSpace(raw)

	runes := []rune(trimmed)
	if len(runes) > maxSearchQueryLength {
		runes = runes[:maxSearchQueryLength]
	}

	var builder strings.Builder
	for _, character := range runes {
		if character < 0x20 || character == 0x7F {
			continue
		}
		if strings.ContainsRune(`<>'";&|$\`+"`", character) {
			continue
		}
		builder.WriteRune(character)
	}

	return strings.TrimSpace(builder.String())
}

// sanitizeToken caps a filter value's length and keeps only the runes the
// allow predicate accepts.
func sanitizeToken(raw string, maxLength int, allow func(rune) bool) string {
	runes := []rune(raw)
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}

	var builder strings.Builder
	for _, character := range runes {
		if allow(character) {
			builder.WriteRune(character)
		}
	}
	return builder.String()
}

func isLanguageRune(character rune) bool {
	return (character >= 'a' && character <= 'z') ||
		(character >= 'A' && character <= 'Z') ||
		character == '-'
}

func isCategoryRune(character rune) bool {
	return isLanguageRune(character) ||
		(character >= '0' && character <= '9') ||
		character == ','
}

// clampInt bounds value to [low, high].
func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// # Handler Implementation

// Handler proxies read-only directory lookups to the API surface, so browser
// clients never hold the directory credentials themselves.
type Handler struct {
	client *Client
}

// NewHandler constructs a directory [Handler].
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Routes returns a [chi.Router] with the directory proxy endpoints.
//
// All endpoints are public reads; the sync trigger lives in the sync
// package and is guarded separately.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/search", handler.search)
	router.Get("/trending", handler.trending)
	router.Get("/recent", handler.recent)
	router.Get("/podcasts/byfeedurl", handler.podcastByFeedURL)
	router.Get("/episodes/{episodeID}", handler.episodeByID)

	return router
}

// # Proxy Endpoints

/*
GET /api/v1/directory/search.

Description: Full-text podcast search against the external directory. The
phrase is sanitized before it leaves the process and results are flattened
into [Summary] records.

Request:
  - q: string (required search phrase, at least 2 characters after
    sanitization, capped at 200)

Response:
  - 200: []Summary: Matching directory feeds
  - 400: ErrValidation: Missing or too-short search phrase
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	raw := request.URL.Query().Get("q")
	if strings.TrimSpace(raw) == "" {
		respond.Error(writer, request, apperr.ValidationError("Search query is required"))
		return
	}

	query := sanitizeQuery(raw)
	if utf8.RuneCountInString(query) < minSearchQueryLength {
		respond.Error(writer, request, apperr.ValidationError("Search query must be at least 2 characters"))
		return
	}

	feeds, err := handler.client.Search(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(feeds, Summarize))
}

/*
GET /api/v1/directory/trending.

Description: Currently trending feeds in the directory. Filter values are
whitelisted and the page size is clamped before the upstream call; the
response is CDN-cacheable.

Request:
  - max: int (page size, clamped to [1, 100], default 20)
  - lang: string (language filter, letters and hyphens only, default "en")
  - cat: string (comma-separated category filter, alphanumeric plus
    comma and hyphen)

Response:
  - 200: []Summary: Trending directory feeds
*/
func (handler *Handler) trending(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	max := clampInt(convert.ToIntD(queryParams.Get("max"), DefaultFeedMax), 1, MaxFeedFetch)
	language := sanitizeToken(queryParams.Get("lang"), maxLanguageFilterLength, isLanguageRune)
	categories := sanitizeToken(queryParams.Get("cat"), maxCategoryFilterLength, isCategoryRune)

	feeds, err := handler.client.Trending(request.Context(), max, language, categories)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Cache-Control", trendingCacheControl)
	respond.OK(writer, slice.Map(feeds, Summarize))
}

/*
GET /api/v1/directory/recent.

Description: Most recently updated feeds in the directory.

Request:
  - max: int (page size, clamped to [1, 100], default 20)

Response:
  - 200: []Summary: Recently updated directory feeds
*/
func (handler *Handler) recent(writer http.ResponseWriter, request *http.Request) {
	max := clampInt(convert.ToIntD(request.URL.Query().Get("max"), DefaultFeedMax), 1, MaxFeedFetch)

	feeds, err := handler.client.RecentFeeds(request.Context(), max)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(feeds, Summarize))
}

/*
GET /api/v1/directory/podcasts/byfeedurl.

Description: Resolves a directory feed record from a raw RSS feed URL.
Used by the "add by URL" flow before triggering a sync.

Request:
  - url: string (required feed URL)

Response:
  - 200: Podcast: The directory record
  - 404: ErrNotFound: URL not indexed by the directory
*/
func (handler *Handler) podcastByFeedURL(writer http.ResponseWriter, request *http.Request) {
	feedURL := strings.TrimSpace(request.URL.Query().Get("url"))
	if feedURL == "" {
		respond.Error(writer, request, apperr.ValidationError("Feed URL is required"))
		return
	}

	podcast, err := handler.client.PodcastByFeedURL(request.Context(), feedURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, podcast)
}

/*
GET /api/v1/directory/episodes/{episodeID}.

Description: Fetches a single directory episode record with full text,
for previewing episodes not yet synced locally.

Response:
  - 200: Episode: The directory record
  - 404: ErrNotFound: Unknown episode id
*/
func (handler *Handler) episodeByID(writer http.ResponseWriter, request *http.Request) {
	episodeID := convert.ToInt(requestutil.Param(request, "episodeID"))
	if episodeID <= 0 {
		respond.Error(writer, request, apperr.ValidationError("Episode id must be a positive integer"))
		return
	}

	episode, err := handler.client.EpisodeByID(request.Context(), int64(episodeID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, episode)
}
