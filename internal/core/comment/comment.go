// Copyright (c) 2026 PodCentral. All rights reserved.

package comment

import (
	"context"
	"time"
)

// # Domain Entities

// Platform identifies where a comment originated.
type Platform string

const (
	// Posted directly on PodCentral
	PlatformLocal Platform = "local"

	// Mirrored from an ActivityPub root post
	PlatformActivityPub Platform = "activitypub"

	// Sent as a Lightning boostagram
	PlatformBoost Platform = "boost"
)

// Comment is one entry in an episode's discussion thread.
//
// Replies are nested: the flat parent_id rows from storage are assembled
// into a tree before leaving this package.
type Comment struct {
	ID           string    `json:"id"`
	EpisodeID    string    `json:"episode_id"`
	ParentID     *string   `json:"parent_id,omitempty"`
	UserID       *string   `json:"user_id,omitempty"`
	Author       string    `json:"author"`
	AuthorAvatar string    `json:"author_avatar,omitempty"`
	Text         string    `json:"text"`
	Platform     Platform  `json:"platform"`
	BoostAmount  *int64    `json:"boost_amount,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	Replies []*Comment `json:"replies"`
}

// # Repository Contract

// Repository is the storage boundary for episode discussions.
type Repository interface {
	// ListByEpisode returns every comment on the episode, both top-level
	// and replies, oldest first.
	ListByEpisode(ctx context.Context, episodeID string) ([]*Comment, error)

	// Insert stores a new comment and fills its generated fields.
	Insert(ctx context.Context, comment *Comment) error
}

// # Thread Assembly

// BuildThread assembles flat comment rows into a reply tree.
//
// Two passes: index every comment by id, then attach each reply to its
// parent. Replies whose parent was deleted fall out of the thread rather
// than surfacing as orphan top-level comments. Input order (oldest first)
// is preserved at every level.
func BuildThread(flat []*Comment) []*Comment {
	byID := make(map[string]*Comment, len(flat))
	for _, entry := range flat {
		entry.Replies = []*Comment{}
		byID[entry.ID] = entry
	}

	topLevel := []*Comment{}
	for _, entry := range flat {
		if entry.ParentID == nil {
			topLevel = append(topLevel, entry)
			continue
		}
		if parent, found := byID[*entry.ParentID]; found {
			parent.Replies = append(parent.Replies, entry)
		}
	}

	return topLevel
}
