// Copyright (c) 2026 PodCentral. All rights reserved.

package episode

import (
	"context"
	"strings"

	"github.com/podcentral/api/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates episode reads and their sub-resources.
type Service struct {
	repository Repository
}

// NewService constructs an episode [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// ListByPodcast returns a show's episodes, newest first.
func (service *Service) ListByPodcast(ctx context.Context, podcastID string, limit, offset int) ([]*Episode, int, error) {
	return service.repository.ListByPodcast(ctx, podcastID, limit, offset)
}

// GetEpisode fetches one episode with persons and social links attached.
func (service *Service) GetEpisode(ctx context.Context, episodeID string) (*Episode, error) {
	return service.repository.FindByID(ctx, episodeID)
}

// ListRecent returns the newest episodes across the whole catalogue, for
// the home feed.
func (service *Service) ListRecent(ctx context.Context, limit int) ([]*Episode, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return service.repository.ListRecent(ctx, limit)
}

/*
Search finds episodes by free text across title and description.

Returns a validation error for an empty query rather than scanning the
whole table.
*/
func (service *Service) Search(ctx context.Context, query string, limit, offset int) ([]*Episode, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, apperr.ValidationError("Search query is required")
	}
	return service.repository.Search(ctx, query, limit, offset)
}

// # Sub-Resources

// GetChapters returns the episode's chapter markers in playback order.
func (service *Service) GetChapters(ctx context.Context, episodeID string) ([]*Chapter, error) {
	return service.repository.ListChapters(ctx, episodeID)
}

// GetTranscript returns the episode's transcript cues in document order.
func (service *Service) GetTranscript(ctx context.Context, episodeID string) ([]*TranscriptSegment, error) {
	return service.repository.ListTranscript(ctx, episodeID)
}

// GetSoundbites returns the episode's shareable clips.
func (service *Service) GetSoundbites(ctx context.Context, episodeID string) ([]*Soundbite, error) {
	return service.repository.ListSoundbites(ctx, episodeID)
}
