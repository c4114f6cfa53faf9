// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/podcentral/api/internal/platform/constants"
)

// # Document Fetching

// maxDocumentBytes bounds chapter and transcript downloads. Podcaster-hosted
// URLs are untrusted input; a runaway body must not exhaust memory.
const maxDocumentBytes = 10 << 20

// Fetcher retrieves podcaster-hosted side documents (chapters JSON,
// transcript files) over HTTP.
//
// Every fetch applies the outbound timeout and sends the service User-Agent.
// Errors from these fetches are always degraded-but-continues at the caller:
// the Fetcher reports them, the orchestrator logs them, the sync goes on.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher constructs a [Fetcher] with the standard outbound timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: constants.OutboundFetchTimeout},
	}
}

// chaptersDocument is the Podcast Namespace chapters schema.
type chaptersDocument struct {
	Version  string `json:"version"`
	Chapters []struct {
		StartTime float64  `json:"startTime"`
		EndTime   *float64 `json:"endTime"`
		Title     string   `json:"title"`
		Img       string   `json:"img"`
		URL       string   `json:"url"`
	} `json:"chapters"`
}

/*
FetchChapters downloads and parses a chapters document.

Description: Parses JSON against the Podcast Namespace chapters schema. An
empty or absent chapters array returns (nil, nil): the caller keeps prior
state rather than erasing it, so a feed that temporarily publishes an empty
document does not wipe stored chapters.

Parameters:
  - ctx: context.Context
  - chaptersURL: Podcaster-hosted document URL.

Returns:
  - []Chapter: Parsed chapters in document order; nil when there are none.
  - error: Fetch or parse failure. Never fatal to a sync; log and continue.
*/
func (fetcher *Fetcher) FetchChapters(ctx context.Context, chaptersURL string) ([]Chapter, error) {
	body, _, err := fetcher.download(ctx, chaptersURL)
	if err != nil {
		return nil, err
	}

	var document chaptersDocument
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("feedsync: parse chapters document: %w", err)
	}

	if len(document.Chapters) == 0 {
		return nil, nil
	}

	chapters := make([]Chapter, 0, len(document.Chapters))
	for _, entry := range document.Chapters {
		chapters = append(chapters, Chapter{
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Title:     entry.Title,
			Img:       entry.Img,
			URL:       entry.URL,
		})
	}

	return chapters, nil
}

/*
FetchTranscript downloads a transcript document and parses it.

Description: The response Content-Type header selects the parse strategy
(see [ParseTranscript]). An unreadable document is an error; a readable but
malformed one degrades to zero segments.

Returns:
  - []Segment: Parsed segments, possibly empty.
  - error: Fetch failure only. Never fatal to a sync; log and continue.
*/
func (fetcher *Fetcher) FetchTranscript(ctx context.Context, transcriptURL string) ([]Segment, error) {
	body, contentType, err := fetcher.download(ctx, transcriptURL)
	if err != nil {
		return nil, err
	}

	return ParseTranscript(string(body), contentType), nil
}

// download performs a bounded GET and returns the body and content type.
func (fetcher *Fetcher) download(ctx context.Context, documentURL string) ([]byte, string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("feedsync: build document request: %w", err)
	}
	request.Header.Set("User-Agent", constants.UserAgent)

	response, err := fetcher.httpClient.Do(request)
	if err != nil {
		return nil, "", fmt.Errorf("feedsync: fetch %s: %w", documentURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, "", fmt.Errorf("feedsync: %s returned status %d", documentURL, response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxDocumentBytes))
	if err != nil {
		return nil, "", fmt.Errorf("feedsync: read %s: %w", documentURL, err)
	}

	return body, response.Header.Get("Content-Type"), nil
}
