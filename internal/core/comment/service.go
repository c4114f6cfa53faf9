// Copyright (c) 2026 PodCentral. All rights reserved.

package comment

import (
	"context"

	"github.com/podcentral/api/internal/platform/validate"
	"github.com/podcentral/api/pkg/uuid"
)

// maxCommentLength bounds a single comment body.
const maxCommentLength = 2000

// # Service Layer

// Service orchestrates episode discussion threads.
type Service struct {
	repository Repository
}

// NewService constructs a comment [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
GetThread returns an episode's discussion assembled into a reply tree.

Parameters:
  - ctx: context.Context
  - episodeID: The episode whose thread to load.

Returns:
  - []*Comment: Top-level comments, oldest first, replies nested.
*/
func (service *Service) GetThread(ctx context.Context, episodeID string) ([]*Comment, error) {
	flat, err := service.repository.ListByEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	return BuildThread(flat), nil
}

/*
AddComment validates and stores a new comment or reply.

Description: The platform defaults to "local" when unset. Identity fields
(author, avatar, user id) are supplied by the HTTP layer from the
authenticated session, never from the request body.

Returns:
  - error: Validation or persistence errors.
*/
func (service *Service) AddComment(ctx context.Context, newComment *Comment) error {
	validator := &validate.Validator{}
	validator.Required("text", newComment.Text).MaxLen("text", newComment.Text, maxCommentLength)
	validator.Required("episode_id", newComment.EpisodeID)

	if err := validator.Err(); err != nil {
		return err
	}

	if newComment.Platform == "" {
		newComment.Platform = PlatformLocal
	}
	if newComment.ID == "" {
		newComment.ID = uuid.New()
	}
	newComment.Replies = []*Comment{}

	return service.repository.Insert(ctx, newComment)
}
