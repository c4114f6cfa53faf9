// Copyright (c) 2026 PodCentral. All rights reserved.

package podcast_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/core/podcast"
)

// fakeRepository records the filter it was called with and returns canned rows.
type fakeRepository struct {
	lastFilter podcast.Filter
	lastLimit  int
	lastOffset int
	podcasts   []*podcast.Podcast
}

func (repository *fakeRepository) List(_ context.Context, filter podcast.Filter, limit, offset int) ([]*podcast.Podcast, int, error) {
	repository.lastFilter = filter
	repository.lastLimit = limit
	repository.lastOffset = offset
	return repository.podcasts, len(repository.podcasts), nil
}

func (repository *fakeRepository) FindByID(_ context.Context, podcastID string) (*podcast.Podcast, error) {
	for _, show := range repository.podcasts {
		if show.ID == podcastID {
			return show, nil
		}
	}
	return nil, nil
}

func (repository *fakeRepository) ListCategories(_ context.Context) ([]*podcast.Category, error) {
	return []*podcast.Category{}, nil
}

// TestService_ListPodcasts_NormalizesFilter verifies free text is trimmed and
// category labels reach the repository in their compact form regardless of
// casing or separators.
func TestService_ListPodcasts_NormalizesFilter(t *testing.T) {
	repository := &fakeRepository{}
	service := podcast.NewService(repository)

	_, _, err := service.ListPodcasts(context.Background(), podcast.Filter{
		Query:      "  morning show  ",
		Categories: []string{"True Crime", "TECHNOLOGY", "tv-film"},
		Medium:     "podcast",
	}, 20, 40)
	require.NoError(t, err)

	assert.Equal(t, "morning show", repository.lastFilter.Query)
	assert.Equal(t, []string{"truecrime", "technology", "tvfilm"}, repository.lastFilter.Categories)
	assert.Equal(t, "podcast", repository.lastFilter.Medium)
	assert.Equal(t, 20, repository.lastLimit)
	assert.Equal(t, 40, repository.lastOffset)
}

// TestService_ListPodcasts_EmptyFilter verifies the zero filter passes through
// untouched.
func TestService_ListPodcasts_EmptyFilter(t *testing.T) {
	repository := &fakeRepository{}
	service := podcast.NewService(repository)

	_, total, err := service.ListPodcasts(context.Background(), podcast.Filter{}, 20, 0)
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.Empty(t, repository.lastFilter.Query)
	assert.Nil(t, repository.lastFilter.Categories)
}
