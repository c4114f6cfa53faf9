// Copyright (c) 2026 PodCentral. All rights reserved.

package library

import (
	"context"

	"github.com/podcentral/api/internal/platform/validate"
)

// defaultHistoryLimit bounds the history screen to a sane page.
const defaultHistoryLimit = 50

// # Service Layer

// Service orchestrates a user's subscriptions and listening history.
type Service struct {
	repository Repository
}

// NewService constructs a library [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Subscriptions

// Subscribe follows a podcast for the user. Idempotent.
func (service *Service) Subscribe(ctx context.Context, userID, podcastID string) error {
	validator := &validate.Validator{}
	validator.Required("podcast_id", podcastID).UUID("podcast_id", podcastID)
	if err := validator.Err(); err != nil {
		return err
	}
	return service.repository.Subscribe(ctx, userID, podcastID)
}

// Unsubscribe unfollows a podcast for the user. Idempotent.
func (service *Service) Unsubscribe(ctx context.Context, userID, podcastID string) error {
	return service.repository.Unsubscribe(ctx, userID, podcastID)
}

// IsSubscribed reports whether the user follows the podcast.
func (service *Service) IsSubscribed(ctx context.Context, userID, podcastID string) (bool, error) {
	return service.repository.IsSubscribed(ctx, userID, podcastID)
}

// ListSubscriptions returns the user's followed podcasts, newest first.
func (service *Service) ListSubscriptions(ctx context.Context, userID string) ([]*SubscribedPodcast, error) {
	return service.repository.ListSubscriptions(ctx, userID)
}

// # Listening History

/*
SaveProgress records the user's playback position for an episode.

Description: Positions are reported by the player every few seconds, so
this is a plain upsert keyed by (user, episode) with the last write
winning. Negative positions are rejected.
*/
func (service *Service) SaveProgress(ctx context.Context, userID, episodeID string, progress float64) error {
	validator := &validate.Validator{}
	validator.Required("episode_id", episodeID)
	validator.Custom("progress", progress < 0, "Progress must not be negative")
	if err := validator.Err(); err != nil {
		return err
	}
	return service.repository.SaveProgress(ctx, userID, episodeID, progress)
}

// GetProgress returns the stored position in seconds, 0 if never played.
func (service *Service) GetProgress(ctx context.Context, userID, episodeID string) (float64, error) {
	return service.repository.GetProgress(ctx, userID, episodeID)
}

// ListHistory returns the user's played episodes, most recent first.
func (service *Service) ListHistory(ctx context.Context, userID string, limit int) ([]*HistoryEntry, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return service.repository.ListHistory(ctx, userID, limit)
}
