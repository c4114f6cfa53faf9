// Copyright (c) 2026 PodCentral. All rights reserved.

// Package schema centralizes table and column identifiers for every relation
// in the PodCentral database.
//
// # Why constants instead of raw strings?
//
// Query builders in the storage layer reference these definitions so that a
// column rename is a one-line change and a typo is a compile error, not a
// runtime SQL failure.
package schema

// CorePodcastTable represents the 'core.podcast' table
type CorePodcastTable struct {
	Table          string
	ID             string
	PodcastIndexID string
	Title          string
	Author         string
	Description    string
	Image          string
	Categories     string
	Locked         string
	Medium         string
	Language       string
	EpisodeCount   string
	FeedURL        string
	License        string
	Location       string
	CreatedAt      string
	UpdatedAt      string
}

// CorePodcast is the schema definition for core.podcast.
//
// podcast_index_id is the natural key for directory sync: nullable, unique
// when present, and the ON CONFLICT target for the sync upsert.
var CorePodcast = CorePodcastTable{
	Table:          "core.podcast",
	ID:             "id",
	PodcastIndexID: "podcast_index_id",
	Title:          "title",
	Author:         "author",
	Description:    "description",
	Image:          "image",
	Categories:     "categories",
	Locked:         "locked",
	Medium:         "medium",
	Language:       "language",
	EpisodeCount:   "episode_count",
	FeedURL:        "feed_url",
	License:        "license",
	Location:       "location",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

func (t CorePodcastTable) Columns() []string {
	return []string{
		t.ID, t.PodcastIndexID, t.Title, t.Author, t.Description, t.Image,
		t.Categories, t.Locked, t.Medium, t.Language, t.EpisodeCount,
		t.FeedURL, t.License, t.Location, t.CreatedAt, t.UpdatedAt,
	}
}
