// Copyright (c) 2026 PodCentral. All rights reserved.

package directory_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/directory"
	"github.com/podcentral/api/internal/platform/apperr"
)

/*
TestClient_AuthHeaders verifies that every request carries the directory's
time-based credential trio with a correctly derived signature.
*/
func TestClient_AuthHeaders(t *testing.T) {
	var captured http.Header

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = request.Header.Clone()
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"status":"true","feeds":[],"count":0}`))
	}))
	defer server.Close()

	client := directory.NewClient(server.URL, "test-key", "test-secret")

	_, err := client.Search(context.Background(), "history")
	require.NoError(t, err)

	authDate := captured.Get("X-Auth-Date")
	require.NotEmpty(t, authDate)
	assert.Equal(t, "test-key", captured.Get("X-Auth-Key"))

	// The Authorization header must be hex(sha1(key + secret + date))
	expected := sha1.Sum([]byte("test-key" + "test-secret" + authDate))
	assert.Equal(t, hex.EncodeToString(expected[:]), captured.Get("Authorization"))
	assert.Contains(t, captured.Get("User-Agent"), "PodCentral")
}

/*
TestClient_PodcastByFeedID covers the found, empty-array-means-missing, and
server-error paths of the feed lookup.
*/
func TestClient_PodcastByFeedID(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantID     int64
		wantErr    bool
		wantNotFnd bool
	}{
		{
			name:   "found",
			status: http.StatusOK,
			body:   `{"status":"true","feed":{"id":920666,"title":"Test Show","categories":{"55":"News"}}}`,
			wantID: 920666,
		},
		{
			name:       "missing_feed_as_empty_array",
			status:     http.StatusOK,
			body:       `{"status":"true","feed":[]}`,
			wantErr:    true,
			wantNotFnd: true,
		},
		{
			name:       "missing_feed_as_null",
			status:     http.StatusOK,
			body:       `{"status":"true","feed":null}`,
			wantErr:    true,
			wantNotFnd: true,
		},
		{
			name:    "server_error",
			status:  http.StatusBadGateway,
			body:    `oops`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/podcasts/byfeedid", request.URL.Path)
				assert.Equal(t, "920666", request.URL.Query().Get("id"))
				writer.WriteHeader(tt.status)
				_, _ = writer.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := directory.NewClient(server.URL, "k", "s")
			podcast, err := client.PodcastByFeedID(context.Background(), 920666)

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantNotFnd {
					appError := apperr.As(err)
					require.NotNil(t, appError)
					assert.Equal(t, "NOT_FOUND", appError.Code)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, podcast.ID)
			assert.Equal(t, "Test Show", podcast.Title)
			assert.Equal(t, "News", podcast.Categories["55"])
		})
	}
}

/*
TestClient_EpisodesByFeedID verifies the max clamp and that an empty item
list decodes to a non-nil empty slice.
*/
func TestClient_EpisodesByFeedID(t *testing.T) {
	tests := []struct {
		name        string
		requested   int
		expectedMax string
	}{
		{"default_when_zero", 0, "100"},
		{"passthrough", 50, "50"},
		{"clamped_to_cap", 5000, "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/episodes/byfeedid", request.URL.Path)
				assert.Equal(t, tt.expectedMax, request.URL.Query().Get("max"))
				_, _ = writer.Write([]byte(`{"status":"true","items":null,"count":0}`))
			}))
			defer server.Close()

			client := directory.NewClient(server.URL, "k", "s")
			episodes, err := client.EpisodesByFeedID(context.Background(), 42, tt.requested)

			require.NoError(t, err)
			require.NotNil(t, episodes)
			assert.Empty(t, episodes)
		})
	}
}

/*
TestClient_EpisodesByFeedID_Decodes checks the full episode record shape,
including nested persons, soundbites, and value blocks.
*/
func TestClient_EpisodesByFeedID_Decodes(t *testing.T) {
	payload := `{
		"status": "true",
		"items": [{
			"id": 16795089,
			"title": "Episode One",
			"guid": "guid-1",
			"datePublished": 1609125600,
			"enclosureUrl": "https://cdn.example.com/ep1.mp3",
			"duration": 1800,
			"episodeType": "full",
			"chaptersUrl": "https://example.com/chapters.json",
			"transcriptUrl": null,
			"soundbite": {"startTime": 60, "duration": 30, "title": "Hook"},
			"persons": [{"name": "Jane Doe", "role": "host", "img": "https://example.com/j.png"}],
			"socialInteract": [{"url": "https://pod.example/@show/1", "protocol": "activitypub"}],
			"value": {
				"model": {"type": "lightning", "method": "keysend"},
				"destinations": [{"name": "Host", "address": "abc", "type": "node", "split": 90}]
			}
		}],
		"count": 1
	}`

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(payload))
	}))
	defer server.Close()

	client := directory.NewClient(server.URL, "k", "s")
	episodes, err := client.EpisodesByFeedID(context.Background(), 42, 10)

	require.NoError(t, err)
	require.Len(t, episodes, 1)

	episode := episodes[0]
	assert.Equal(t, int64(16795089), episode.ID)
	require.NotNil(t, episode.ChaptersURL)
	assert.Equal(t, "https://example.com/chapters.json", *episode.ChaptersURL)
	assert.Nil(t, episode.TranscriptURL)

	require.NotNil(t, episode.Soundbite)
	assert.Equal(t, float64(60), episode.Soundbite.StartTime)

	require.Len(t, episode.Persons, 1)
	assert.Equal(t, "Jane Doe", episode.Persons[0].Name)

	require.NotNil(t, episode.Value)
	assert.Equal(t, "lightning", episode.Value.Model.Type)
	require.Len(t, episode.Value.Destinations, 1)
	assert.Equal(t, 90, episode.Value.Destinations[0].Split)
}

/*
TestClient_EpisodeByID covers the single-episode lookup with its
missing-record path.
*/
func TestClient_EpisodeByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/episodes/byid", request.URL.Path)
		assert.Equal(t, "true", request.URL.Query().Get("fulltext"))

		if request.URL.Query().Get("id") == "1" {
			_, _ = writer.Write([]byte(`{"status":"true","episode":{"id":1,"title":"Found"}}`))
			return
		}
		_, _ = writer.Write([]byte(`{"status":"true","episode":null}`))
	}))
	defer server.Close()

	client := directory.NewClient(server.URL, "k", "s")

	episode, err := client.EpisodeByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Found", episode.Title)

	_, err = client.EpisodeByID(context.Background(), 2)
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}
