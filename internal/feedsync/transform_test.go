// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/directory"
	"github.com/podcentral/api/internal/feedsync"
	"github.com/podcentral/api/pkg/pointer"
)

/*
TestTransformPodcast_CategoryNormalization checks the compact-label rule:
lowercase, whitespace removed, stable order, duplicates collapsed.
*/
func TestTransformPodcast_CategoryNormalization(t *testing.T) {
	record := feedsync.TransformPodcast(&directory.Podcast{
		ID:    1,
		Title: "Show",
		Categories: map[string]string{
			"103": "True Crime",
			"55":  "News",
			"99":  "TRUE CRIME",
		},
	})

	// Keys sort lexically ("103" < "55" < "99"); the duplicate label from
	// key "99" collapses onto the one from "103".
	assert.Equal(t, []string{"truecrime", "news"}, record.Categories)
}

/*
TestTransformPodcast_FallbackChains verifies author → ownerName and
artwork → image defaulting, plus language and medium defaults.
*/
func TestTransformPodcast_FallbackChains(t *testing.T) {
	tests := []struct {
		name         string
		input        directory.Podcast
		wantAuthor   string
		wantImage    string
		wantLanguage string
		wantMedium   string
	}{
		{
			name: "primary_fields_win",
			input: directory.Podcast{
				Author: "Jane", OwnerName: "Owner",
				Artwork: "art.png", Image: "img.png",
				Language: "de", Medium: "music",
			},
			wantAuthor: "Jane", wantImage: "art.png", wantLanguage: "de", wantMedium: "music",
		},
		{
			name: "fallbacks_apply",
			input: directory.Podcast{
				OwnerName: "Owner", Image: "img.png",
			},
			wantAuthor: "Owner", wantImage: "img.png", wantLanguage: "en", wantMedium: "podcast",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := feedsync.TransformPodcast(&tt.input)

			assert.Equal(t, tt.wantAuthor, record.Author)
			assert.Equal(t, tt.wantImage, record.Image)
			assert.Equal(t, tt.wantLanguage, record.Language)
			assert.Equal(t, tt.wantMedium, record.Medium)
		})
	}
}

/*
TestTransformPodcast_ValueBlock checks funding and value mapping, including
recipient positions.
*/
func TestTransformPodcast_ValueBlock(t *testing.T) {
	record := feedsync.TransformPodcast(&directory.Podcast{
		ID:     7,
		Locked: 1,
		Funding: &directory.Funding{
			URL:     "https://example.com/support",
			Message: "Support us",
		},
		Value: &directory.Value{
			Model: directory.ValueModel{Type: "lightning", Method: "keysend"},
			Destinations: []directory.ValueDestination{
				{Name: "Host", Address: "node-a", Type: "node", Split: 90},
				{Name: "Producer", Address: "node-b", Type: "node", Split: 10},
			},
		},
	})

	assert.True(t, record.Locked)

	require.NotNil(t, record.Funding)
	assert.Equal(t, "Support us", record.Funding.Message)

	require.NotNil(t, record.Value)
	assert.Equal(t, "lightning", record.Value.Type)
	require.Len(t, record.Value.Recipients, 2)
	assert.Equal(t, 0, record.Value.Recipients[0].Position)
	assert.Equal(t, 1, record.Value.Recipients[1].Position)
	assert.Equal(t, 10, record.Value.Recipients[1].Split)
}

/*
TestTransformEpisode covers timestamp conversion, trailer detection, URL
absence handling, and soundbite merging.
*/
func TestTransformEpisode(t *testing.T) {
	emptyURL := ""
	chaptersURL := "https://example.com/ch.json"

	record := feedsync.TransformEpisode(&directory.Episode{
		ID:            101,
		Title:         "Pilot",
		DatePublished: 1609125600,
		Duration:      1800,
		EpisodeType:   "trailer",
		ChaptersURL:   &chaptersURL,
		TranscriptURL: &emptyURL,
		Season:        pointer.To(2),
		Soundbite:     &directory.Soundbite{StartTime: 60, Duration: 30, Title: "Hook"},
	})

	assert.Equal(t, time.Unix(1609125600, 0).UTC(), record.DatePublished)
	assert.True(t, record.IsTrailer)

	require.NotNil(t, record.ChaptersURL)
	assert.Equal(t, chaptersURL, *record.ChaptersURL)

	// Present-but-empty URL becomes proper absence
	assert.Nil(t, record.TranscriptURL)

	require.NotNil(t, record.Season)
	assert.Equal(t, 2, *record.Season)

	// Legacy single soundbite is honored when no list is present
	require.Len(t, record.Soundbites, 1)
	assert.Equal(t, "Hook", record.Soundbites[0].Title)
}

/*
TestTransformEpisode_SoundbiteListWins verifies the soundbites list takes
precedence over the legacy single field.
*/
func TestTransformEpisode_SoundbiteListWins(t *testing.T) {
	record := feedsync.TransformEpisode(&directory.Episode{
		ID:        102,
		Soundbite: &directory.Soundbite{StartTime: 1, Duration: 2, Title: "legacy"},
		Soundbites: []directory.Soundbite{
			{StartTime: 10, Duration: 20, Title: "first"},
			{StartTime: 30, Duration: 15, Title: "second"},
		},
	})

	require.Len(t, record.Soundbites, 2)
	assert.Equal(t, "first", record.Soundbites[0].Title)
}

/*
TestTransformEpisode_Persons checks role normalization and the placeholder
avatar fill during transformation.
*/
func TestTransformEpisode_Persons(t *testing.T) {
	record := feedsync.TransformEpisode(&directory.Episode{
		ID: 103,
		Persons: []directory.Person{
			{Name: "Jane Doe", Role: "Co-Host", Img: "https://example.com/jane.png"},
			{Name: "John Smith", Role: "sound engineer"},
		},
	})

	require.Len(t, record.Persons, 2)

	assert.Equal(t, "host", record.Persons[0].Role)
	assert.Equal(t, "https://example.com/jane.png", record.Persons[0].Img)

	// Unrecognized role defaults to guest; missing image gets the
	// deterministic placeholder
	assert.Equal(t, "guest", record.Persons[1].Role)
	assert.NotEmpty(t, record.Persons[1].Img)
	assert.Equal(t, record.Persons[1].Img, feedsync.PlaceholderAvatar("John Smith"))
}
