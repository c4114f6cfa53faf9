// Copyright (c) 2026 PodCentral. All rights reserved.

/*
Package directory wraps the external podcast directory API.

Every outbound request carries the directory's time-based credential trio
(X-Auth-Date, X-Auth-Key, Authorization) recomputed per call, so signatures
expire on their own as the embedded timestamp ages out of the remote skew
window.

The client is transport only: it returns the directory's wire records
unchanged. Mapping into storage records lives in the sync package.
*/
package directory

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/podcentral/api/internal/platform/apperr"
	"github.com/podcentral/api/internal/platform/constants"
)

// # Limits

const (
	// DefaultEpisodeMax is the episode page size used when the caller does
	// not specify one.
	DefaultEpisodeMax = 100

	// MaxEpisodeFetch caps a single episodes-by-feed-id request.
	MaxEpisodeFetch = 1000

	// DefaultFeedMax is the feed page size used when the caller does not
	// specify one.
	DefaultFeedMax = 20

	// MaxFeedFetch caps a single trending or recent-feeds request.
	MaxFeedFetch = 100
)

// # Client

// Client is an authenticated HTTP client for the podcast directory API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string

	// now is injectable so signature generation is testable.
	now func() time.Time
}

/*
NewClient constructs a directory [Client].

Parameters:
  - baseURL: Root endpoint of the directory API (no trailing slash).
  - apiKey: Directory API key (sent as X-Auth-Key).
  - apiSecret: Directory API secret (never sent, only hashed).

Returns:
  - *Client: Ready-to-use client with per-call timeouts applied.
*/
func NewClient(baseURL, apiKey, apiSecret string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: constants.OutboundFetchTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		now:        time.Now,
	}
}

// # Request Signing

// authorize stamps the directory's three auth headers onto a request.
//
// The Authorization value is the hex SHA-1 of key+secret+unixtime, matching
// the directory's published scheme. The hash is recomputed for every call.
func (client *Client) authorize(request *http.Request) {
	unixTime := strconv.FormatInt(client.now().Unix(), 10)

	digest := sha1.Sum([]byte(client.apiKey + client.apiSecret + unixTime))

	request.Header.Set("X-Auth-Date", unixTime)
	request.Header.Set("X-Auth-Key", client.apiKey)
	request.Header.Set("Authorization", hex.EncodeToString(digest[:]))
	request.Header.Set("User-Agent", constants.UserAgent)
}

// get performs a signed GET against the directory and decodes the JSON body.
func (client *Client) get(ctx context.Context, endpoint string, params url.Values, target any) error {
	requestURL := client.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("directory: build request for %s: %w", endpoint, err)
	}
	client.authorize(request)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("directory: fetch %s: %w", endpoint, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("directory: %s returned status %d", endpoint, response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("directory: decode %s response: %w", endpoint, err)
	}

	return nil
}

// # Podcast Lookups

/*
PodcastByFeedID fetches a single directory podcast record by its feed id.

Parameters:
  - ctx: context.Context
  - feedID: The directory's numeric feed identifier (positive).

Returns:
  - *Podcast: The directory record.
  - error: [apperr.NotFound] when the directory has no such feed; a plain
    fetch error on network or protocol failure.
*/
func (client *Client) PodcastByFeedID(ctx context.Context, feedID int64) (*Podcast, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(feedID, 10))

	var envelope podcastResponse
	if err := client.get(ctx, "/podcasts/byfeedid", params, &envelope); err != nil {
		return nil, err
	}

	return decodeFeedField(envelope.Feed)
}

/*
PodcastByFeedURL resolves a directory podcast record from its RSS feed URL.

Returns [apperr.NotFound] when the URL is not indexed.
*/
func (client *Client) PodcastByFeedURL(ctx context.Context, feedURL string) (*Podcast, error) {
	params := url.Values{}
	params.Set("url", feedURL)

	var envelope podcastResponse
	if err := client.get(ctx, "/podcasts/byfeedurl", params, &envelope); err != nil {
		return nil, err
	}

	return decodeFeedField(envelope.Feed)
}

/*
Search queries the directory's full-text podcast search.

Returns:
  - []Podcast: Matching feeds, possibly empty, never nil.
*/
func (client *Client) Search(ctx context.Context, query string) ([]Podcast, error) {
	params := url.Values{}
	params.Set("q", query)

	var envelope searchResponse
	if err := client.get(ctx, "/search/byterm", params, &envelope); err != nil {
		return nil, err
	}

	if envelope.Feeds == nil {
		return []Podcast{}, nil
	}
	return envelope.Feeds, nil
}

/*
Trending lists the directory's currently trending feeds.

Parameters:
  - max: Page size; clamped to [1, MaxFeedFetch], with DefaultFeedMax
    substituted when non-positive.
  - language: BCP-47 language filter (defaults to "en" when empty).
  - categories: Optional comma-separated category filter.
*/
func (client *Client) Trending(ctx context.Context, max int, language, categories string) ([]Podcast, error) {
	if max <= 0 {
		max = DefaultFeedMax
	}
	if max > MaxFeedFetch {
		max = MaxFeedFetch
	}
	if language == "" {
		language = "en"
	}

	params := url.Values{}
	params.Set("max", strconv.Itoa(max))
	params.Set("lang", language)
	if categories != "" {
		params.Set("cat", categories)
	}

	var envelope searchResponse
	if err := client.get(ctx, "/podcasts/trending", params, &envelope); err != nil {
		return nil, err
	}

	if envelope.Feeds == nil {
		return []Podcast{}, nil
	}
	return envelope.Feeds, nil
}

// RecentFeeds lists the most recently updated feeds in the directory.
// The page size follows the same [1, MaxFeedFetch] clamp as Trending.
func (client *Client) RecentFeeds(ctx context.Context, max int) ([]Podcast, error) {
	if max <= 0 {
		max = DefaultFeedMax
	}
	if max > MaxFeedFetch {
		max = MaxFeedFetch
	}

	params := url.Values{}
	params.Set("max", strconv.Itoa(max))

	var envelope searchResponse
	if err := client.get(ctx, "/recent/feeds", params, &envelope); err != nil {
		return nil, err
	}

	if envelope.Feeds == nil {
		return []Podcast{}, nil
	}
	return envelope.Feeds, nil
}

// # Episode Lookups

/*
EpisodesByFeedID fetches a feed's episode list, newest first.

Parameters:
  - max: Requested page size; clamped to [1, MaxEpisodeFetch], with
    DefaultEpisodeMax substituted when non-positive.

Returns:
  - []Episode: Possibly empty, never nil. An empty list is a valid result,
    not an error.
*/
func (client *Client) EpisodesByFeedID(ctx context.Context, feedID int64, max int) ([]Episode, error) {
	if max <= 0 {
		max = DefaultEpisodeMax
	}
	if max > MaxEpisodeFetch {
		max = MaxEpisodeFetch
	}

	params := url.Values{}
	params.Set("id", strconv.FormatInt(feedID, 10))
	params.Set("max", strconv.Itoa(max))

	var envelope episodesResponse
	if err := client.get(ctx, "/episodes/byfeedid", params, &envelope); err != nil {
		return nil, err
	}

	if envelope.Items == nil {
		return []Episode{}, nil
	}
	return envelope.Items, nil
}

// EpisodeByID fetches a single episode record with its full description.
//
// Returns [apperr.NotFound] when the id is unknown to the directory.
func (client *Client) EpisodeByID(ctx context.Context, episodeID int64) (*Episode, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(episodeID, 10))
	params.Set("fulltext", "true")

	var envelope episodeResponse
	if err := client.get(ctx, "/episodes/byid", params, &envelope); err != nil {
		return nil, err
	}

	if isEmptyRecord(envelope.Episode) {
		return nil, apperr.NotFound("Episode")
	}

	episode := &Episode{}
	if err := json.Unmarshal(envelope.Episode, episode); err != nil {
		return nil, fmt.Errorf("directory: decode episode record: %w", err)
	}
	return episode, nil
}

// # Envelope Helpers

// decodeFeedField turns the directory's polymorphic `feed` field into a
// typed record or a not-found error.
func decodeFeedField(raw json.RawMessage) (*Podcast, error) {
	if isEmptyRecord(raw) {
		return nil, apperr.NotFound("Podcast")
	}

	podcast := &Podcast{}
	if err := json.Unmarshal(raw, podcast); err != nil {
		return nil, fmt.Errorf("directory: decode feed record: %w", err)
	}
	return podcast, nil
}

// isEmptyRecord reports whether a raw JSON field carries no record: absent,
// null, or the empty array the directory substitutes for missing feeds.
func isEmptyRecord(raw json.RawMessage) bool {
	trimmed := string(raw)
	return trimmed == "" || trimmed == "null" || trimmed == "[]" || trimmed == "{}"
}
