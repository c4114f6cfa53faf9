// Copyright (c) 2026 PodCentral. All rights reserved.

package directory_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/directory"
)

// upstreamFeeds is a canned directory search/trending payload with the
// author and artwork fields absent, so the fallback chains are exercised.
const upstreamFeeds = `{
	"status": "true",
	"feeds": [{
		"id": 920666,
		"title": "The Daily Brief",
		"ownerName": "Brief Media",
		"description": "News, briefly.",
		"image": "https://cdn.example/img.png",
		"episodeCount": 412,
		"language": "en",
		"categories": {"55": "News", "9": "Business"}
	}],
	"count": 1
}`

// proxyFixture wires a Handler to a fake upstream directory and records the
// query string of every upstream call.
func proxyFixture(t *testing.T) (http.Handler, *url.Values) {
	t.Helper()

	var captured url.Values
	upstream := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = request.URL.Query()
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(upstreamFeeds))
	}))
	t.Cleanup(upstream.Close)

	handler := directory.NewHandler(directory.NewClient(upstream.URL, "k", "s"))
	return handler.Routes(), &captured
}

func decodeSummaries(t *testing.T, body []byte) []directory.Summary {
	t.Helper()
	var envelope struct {
		Data []directory.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data
}

/*
TestHandler_Search_SanitizesQuery verifies the phrase is stripped of control
characters and shell punctuation before it reaches the upstream directory,
and that results come back as flattened summaries.
*/
func TestHandler_Search_SanitizesQuery(t *testing.T) {
	router, captured := proxyFixture(t)

	target := "/search?q=" + url.QueryEscape("history; rm -rf $HOME\x01")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "history rm -rf HOME", captured.Get("q"))

	summaries := decodeSummaries(t, recorder.Body.Bytes())
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(920666), summaries[0].ID)

	// Author falls back to ownerName, image to the plain image field.
	assert.Equal(t, "Brief Media", summaries[0].Author)
	assert.Equal(t, "https://cdn.example/img.png", summaries[0].Image)

	// Category labels are flattened out of the wire map, sorted.
	assert.Equal(t, []string{"Business", "News"}, summaries[0].Categories)
}

func TestHandler_Search_RejectsShortQueries(t *testing.T) {
	router, _ := proxyFixture(t)

	tests := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "whitespace only", query: "   "},
		{name: "single character", query: "a"},
		{name: "only stripped characters", query: `<>&&;;`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			target := "/search?q=" + url.QueryEscape(testCase.query)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestHandler_Search_CapsQueryLength(t *testing.T) {
	router, captured := proxyFixture(t)

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/search?q="+string(long), nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, captured.Get("q"), 200)
}

/*
TestHandler_Trending_ClampsAndWhitelists verifies the page size is clamped
to [1, 100], filter values are character-whitelisted, and the response is
marked CDN-cacheable.
*/
func TestHandler_Trending_ClampsAndWhitelists(t *testing.T) {
	router, captured := proxyFixture(t)

	recorder := httptest.NewRecorder()
	target := "/trending?max=1000000&lang=" + url.QueryEscape("en!!") +
		"&cat=" + url.QueryEscape("news,true-crime$$")
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "100", captured.Get("max"))
	assert.Equal(t, "en", captured.Get("lang"))
	assert.Equal(t, "news,true-crime", captured.Get("cat"))
	assert.Equal(t, "public, s-maxage=300, stale-while-revalidate=600", recorder.Header().Get("Cache-Control"))

	summaries := decodeSummaries(t, recorder.Body.Bytes())
	require.Len(t, summaries, 1)
	assert.Equal(t, "The Daily Brief", summaries[0].Title)
}

func TestHandler_Trending_ClampsLowAndDefaults(t *testing.T) {
	tests := []struct {
		name    string
		rawMax  string
		wantMax string
	}{
		{name: "negative clamps to one", rawMax: "-5", wantMax: "1"},
		{name: "garbage falls back to default", rawMax: "abc", wantMax: "20"},
		{name: "absent falls back to default", rawMax: "", wantMax: "20"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, captured := proxyFixture(t)

			target := "/trending"
			if testCase.rawMax != "" {
				target += "?max=" + testCase.rawMax
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, testCase.wantMax, captured.Get("max"))
		})
	}
}

func TestHandler_Recent_ClampsMax(t *testing.T) {
	router, captured := proxyFixture(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/recent?max=500", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "100", captured.Get("max"))

	summaries := decodeSummaries(t, recorder.Body.Bytes())
	require.Len(t, summaries, 1)
}
