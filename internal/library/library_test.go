// Copyright (c) 2026 PodCentral. All rights reserved.

package library_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/library"
)

// memRepository is an in-memory [library.Repository] for service tests.
type memRepository struct {
	subscriptions map[string]bool
	progress      map[string]float64
	historyLimit  int
}

func newMemRepository() *memRepository {
	return &memRepository{
		subscriptions: map[string]bool{},
		progress:      map[string]float64{},
	}
}

func (repository *memRepository) Subscribe(_ context.Context, userID, podcastID string) error {
	repository.subscriptions[userID+"/"+podcastID] = true
	return nil
}

func (repository *memRepository) Unsubscribe(_ context.Context, userID, podcastID string) error {
	delete(repository.subscriptions, userID+"/"+podcastID)
	return nil
}

func (repository *memRepository) IsSubscribed(_ context.Context, userID, podcastID string) (bool, error) {
	return repository.subscriptions[userID+"/"+podcastID], nil
}

func (repository *memRepository) ListSubscriptions(_ context.Context, _ string) ([]*library.SubscribedPodcast, error) {
	return []*library.SubscribedPodcast{}, nil
}

func (repository *memRepository) SaveProgress(_ context.Context, userID, episodeID string, progress float64) error {
	repository.progress[userID+"/"+episodeID] = progress
	return nil
}

func (repository *memRepository) GetProgress(_ context.Context, userID, episodeID string) (float64, error) {
	return repository.progress[userID+"/"+episodeID], nil
}

func (repository *memRepository) ListHistory(_ context.Context, _ string, limit int) ([]*library.HistoryEntry, error) {
	repository.historyLimit = limit
	return []*library.HistoryEntry{}, nil
}

/*
TestService_Subscribe verifies the happy path and the podcast id
validation guard.
*/
func TestService_Subscribe(t *testing.T) {
	repository := newMemRepository()
	service := library.NewService(repository)

	err := service.Subscribe(context.Background(), "user-1", "0191d3a4-0000-7000-8000-000000000001")
	require.NoError(t, err)

	subscribed, err := service.IsSubscribed(context.Background(), "user-1", "0191d3a4-0000-7000-8000-000000000001")
	require.NoError(t, err)
	assert.True(t, subscribed)

	err = service.Subscribe(context.Background(), "user-1", "not-a-uuid")
	assert.Error(t, err)
}

/*
TestService_SaveProgress verifies positions are stored, re-reported
positions overwrite, and negative positions are rejected.
*/
func TestService_SaveProgress(t *testing.T) {
	repository := newMemRepository()
	service := library.NewService(repository)

	require.NoError(t, service.SaveProgress(context.Background(), "user-1", "ep-1", 12.5))
	require.NoError(t, service.SaveProgress(context.Background(), "user-1", "ep-1", 90))

	progress, err := service.GetProgress(context.Background(), "user-1", "ep-1")
	require.NoError(t, err)
	assert.Equal(t, float64(90), progress)

	assert.Error(t, service.SaveProgress(context.Background(), "user-1", "ep-1", -1))
}

/*
TestService_GetProgress_Unplayed verifies an episode never played reports
position zero rather than an error.
*/
func TestService_GetProgress_Unplayed(t *testing.T) {
	service := library.NewService(newMemRepository())

	progress, err := service.GetProgress(context.Background(), "user-1", "ep-unknown")

	require.NoError(t, err)
	assert.Zero(t, progress)
}

/*
TestService_ListHistory_LimitClamp verifies out-of-range limits fall back
to the default page size.
*/
func TestService_ListHistory_LimitClamp(t *testing.T) {
	testCases := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "zero", limit: 0, wantLimit: 50},
		{name: "negative", limit: -3, wantLimit: 50},
		{name: "in range", limit: 20, wantLimit: 20},
		{name: "too large", limit: 500, wantLimit: 50},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			repository := newMemRepository()
			service := library.NewService(repository)

			_, err := service.ListHistory(context.Background(), "user-1", testCase.limit)

			require.NoError(t, err)
			assert.Equal(t, testCase.wantLimit, repository.historyLimit)
		})
	}
}
