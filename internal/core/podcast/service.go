// Copyright (c) 2026 PodCentral. All rights reserved.

package podcast

import (
	"context"
	"strings"

	"github.com/podcentral/api/pkg/slice"
	"github.com/podcentral/api/pkg/slug"
)

// # Service Layer

// Service orchestrates catalogue discovery reads.
type Service struct {
	repository Repository
}

// NewService constructs a podcast [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
ListPodcasts retrieves a filtered, paginated slice of the catalogue.

Description: Free-text queries are trimmed, category filters are compacted
to the stored label form so "True Crime" and "truecrime" address the same
shelf.

Parameters:
  - ctx: context.Context
  - filter: Filter (query, categories, medium)
  - limit: int (page size)
  - offset: int (pagination cursor)

Returns:
  - []*Podcast: Matching shows, newest first
  - int: Total count matching the filter
  - error: Repository errors
*/
func (service *Service) ListPodcasts(ctx context.Context, filter Filter, limit, offset int) ([]*Podcast, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)

	filter.Categories = slice.Map(filter.Categories, slug.Compact)

	return service.repository.List(ctx, filter, limit, offset)
}

// GetPodcast fetches one show with its funding and value blocks attached.
func (service *Service) GetPodcast(ctx context.Context, podcastID string) (*Podcast, error) {
	return service.repository.FindByID(ctx, podcastID)
}

// ListCategories returns the browsable category shelf.
func (service *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return service.repository.ListCategories(ctx)
}
