// Copyright (c) 2026 PodCentral. All rights reserved.

package comment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/core/comment"
	"github.com/podcentral/api/pkg/pointer"
)

/*
TestBuildThread verifies flat rows are assembled into a nested reply tree
with input order preserved at every level.
*/
func TestBuildThread(t *testing.T) {
	flat := []*comment.Comment{
		{ID: "c1", Text: "first"},
		{ID: "c2", Text: "second"},
		{ID: "c3", ParentID: pointer.To("c1"), Text: "reply to first"},
		{ID: "c4", ParentID: pointer.To("c3"), Text: "nested reply"},
		{ID: "c5", ParentID: pointer.To("c1"), Text: "another reply to first"},
	}

	thread := comment.BuildThread(flat)

	require.Len(t, thread, 2)
	assert.Equal(t, "c1", thread[0].ID)
	assert.Equal(t, "c2", thread[1].ID)

	require.Len(t, thread[0].Replies, 2)
	assert.Equal(t, "c3", thread[0].Replies[0].ID)
	assert.Equal(t, "c5", thread[0].Replies[1].ID)

	require.Len(t, thread[0].Replies[0].Replies, 1)
	assert.Equal(t, "c4", thread[0].Replies[0].Replies[0].ID)

	assert.Empty(t, thread[1].Replies)
}

/*
TestBuildThread_OrphanedReplies verifies replies whose parent no longer
exists are dropped instead of surfacing as top-level comments.
*/
func TestBuildThread_OrphanedReplies(t *testing.T) {
	flat := []*comment.Comment{
		{ID: "c1", Text: "root"},
		{ID: "c2", ParentID: pointer.To("deleted"), Text: "orphan"},
	}

	thread := comment.BuildThread(flat)

	require.Len(t, thread, 1)
	assert.Equal(t, "c1", thread[0].ID)
	assert.Empty(t, thread[0].Replies)
}

/*
TestBuildThread_Empty verifies an episode without discussion yields an
empty (non-nil) thread.
*/
func TestBuildThread_Empty(t *testing.T) {
	thread := comment.BuildThread(nil)

	assert.NotNil(t, thread)
	assert.Empty(t, thread)
}

// fakeRepository records inserts for service tests.
type fakeRepository struct {
	inserted []*comment.Comment
}

func (repository *fakeRepository) ListByEpisode(_ context.Context, _ string) ([]*comment.Comment, error) {
	return nil, nil
}

func (repository *fakeRepository) Insert(_ context.Context, entry *comment.Comment) error {
	repository.inserted = append(repository.inserted, entry)
	return nil
}

/*
TestService_AddComment verifies defaults: a generated id, the local
platform, and an initialized reply slice.
*/
func TestService_AddComment(t *testing.T) {
	repository := &fakeRepository{}
	service := comment.NewService(repository)

	entry := &comment.Comment{EpisodeID: "ep-1", Author: "alice", Text: "great episode"}
	require.NoError(t, service.AddComment(context.Background(), entry))

	require.Len(t, repository.inserted, 1)
	stored := repository.inserted[0]
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, comment.PlatformLocal, stored.Platform)
	assert.NotNil(t, stored.Replies)
}

/*
TestService_AddComment_Validation verifies empty and oversized bodies are
rejected before reaching storage.
*/
func TestService_AddComment_Validation(t *testing.T) {
	testCases := []struct {
		name  string
		entry *comment.Comment
	}{
		{
			name:  "empty text",
			entry: &comment.Comment{EpisodeID: "ep-1", Author: "alice"},
		},
		{
			name: "oversized text",
			entry: &comment.Comment{
				EpisodeID: "ep-1",
				Author:    "alice",
				Text:      strings.Repeat("a", 2001),
			},
		},
		{
			name:  "missing episode",
			entry: &comment.Comment{Author: "alice", Text: "hello"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			repository := &fakeRepository{}
			service := comment.NewService(repository)

			err := service.AddComment(context.Background(), testCase.entry)

			assert.Error(t, err)
			assert.Empty(t, repository.inserted)
		})
	}
}
