// Copyright (c) 2026 PodCentral. All rights reserved.

package library

import (
	"context"
	"time"
)

// # Domain Entities

// SubscribedPodcast is the light podcast projection shown in a user's
// library, without the funding and value documents the full catalogue
// entity carries.
type SubscribedPodcast struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Image        string    `json:"image"`
	Categories   []string  `json:"categories"`
	EpisodeCount int       `json:"episode_count"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// HistoryEntry is one episode in a user's listening history.
//
// Progress is the playback position in seconds; the episode fields are
// denormalized for the history screen.
type HistoryEntry struct {
	EpisodeID    string    `json:"episode_id"`
	PodcastID    string    `json:"podcast_id"`
	EpisodeTitle string    `json:"episode_title"`
	PodcastTitle string    `json:"podcast_title"`
	Image        string    `json:"image"`
	Duration     int       `json:"duration"`
	Progress     float64   `json:"progress"`
	LastPlayed   time.Time `json:"last_played"`
}

// # Repository Contract

// Repository is the storage boundary for a user's library.
type Repository interface {
	// Subscribe records a subscription; subscribing twice is a no-op.
	Subscribe(ctx context.Context, userID, podcastID string) error

	// Unsubscribe removes a subscription if present.
	Unsubscribe(ctx context.Context, userID, podcastID string) error

	// IsSubscribed reports whether the user follows the podcast.
	IsSubscribed(ctx context.Context, userID, podcastID string) (bool, error)

	// ListSubscriptions returns the user's followed podcasts, most recently
	// subscribed first.
	ListSubscriptions(ctx context.Context, userID string) ([]*SubscribedPodcast, error)

	// SaveProgress upserts the playback position for an episode.
	SaveProgress(ctx context.Context, userID, episodeID string, progress float64) error

	// GetProgress returns the stored position, or 0 when never played.
	GetProgress(ctx context.Context, userID, episodeID string) (float64, error)

	// ListHistory returns played episodes, most recently played first.
	ListHistory(ctx context.Context, userID string, limit int) ([]*HistoryEntry, error)
}
