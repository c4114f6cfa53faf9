// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/feedsync"
)

/*
TestFetcher_FetchChapters covers the Podcast Namespace chapters document:
parsing, the empty-array no-op, and failure modes.
*/
func TestFetcher_FetchChapters(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantCount int
		wantNil   bool
		wantErr   bool
	}{
		{
			name:   "full_document",
			status: http.StatusOK,
			body: `{"version":"1.2.0","chapters":[
				{"startTime":0,"title":"Intro"},
				{"startTime":120,"endTime":300,"title":"Interview","img":"https://example.com/c.png","url":"https://example.com"}
			]}`,
			wantCount: 2,
		},
		{
			name:    "empty_chapters_array_is_noop",
			status:  http.StatusOK,
			body:    `{"version":"1.2.0","chapters":[]}`,
			wantNil: true,
		},
		{
			name:    "absent_chapters_key_is_noop",
			status:  http.StatusOK,
			body:    `{"version":"1.2.0"}`,
			wantNil: true,
		},
		{
			name:    "malformed_json_is_error",
			status:  http.StatusOK,
			body:    `{"chapters":[`,
			wantErr: true,
		},
		{
			name:    "http_error_is_error",
			status:  http.StatusNotFound,
			body:    `gone`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Contains(t, request.Header.Get("User-Agent"), "PodCentral")
				writer.WriteHeader(tt.status)
				_, _ = writer.Write([]byte(tt.body))
			}))
			defer server.Close()

			fetcher := feedsync.NewFetcher()
			chapters, err := fetcher.FetchChapters(context.Background(), server.URL)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, chapters)
				return
			}

			require.Len(t, chapters, tt.wantCount)
			assert.Equal(t, "Intro", chapters[0].Title)
			assert.Nil(t, chapters[0].EndTime)

			require.NotNil(t, chapters[1].EndTime)
			assert.Equal(t, float64(300), *chapters[1].EndTime)
		})
	}
}

/*
TestFetcher_FetchTranscript verifies the content-type driven parse strategy
and that a readable but malformed document degrades to zero segments.
*/
func TestFetcher_FetchTranscript(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantCount   int
	}{
		{
			name:        "json_transcript",
			contentType: "application/json",
			body:        `{"segments":[{"startTime":0,"endTime":5,"speaker":"A","text":"hi"}]}`,
			wantCount:   1,
		},
		{
			name:        "vtt_transcript",
			contentType: "text/vtt",
			body:        "WEBVTT\n\n00:00:00.000 --> 00:00:05.000\n<v Alice>Hello there\n",
			wantCount:   1,
		},
		{
			name:        "malformed_json_degrades_to_empty",
			contentType: "application/json",
			body:        `{{{`,
			wantCount:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.Header().Set("Content-Type", tt.contentType)
				_, _ = writer.Write([]byte(tt.body))
			}))
			defer server.Close()

			fetcher := feedsync.NewFetcher()
			segments, err := fetcher.FetchTranscript(context.Background(), server.URL)

			require.NoError(t, err)
			assert.Len(t, segments, tt.wantCount)
		})
	}
}
