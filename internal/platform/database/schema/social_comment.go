// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table        string
	ID           string
	EpisodeID    string
	ParentID     string
	UserID       string
	Author       string
	AuthorAvatar string
	Text         string
	Platform     string
	BoostAmount  string
	CreatedAt    string
}

// SocialComment is the schema definition for social.comment.
var SocialComment = SocialCommentTable{
	Table:        "social.comment",
	ID:           "id",
	EpisodeID:    "episode_id",
	ParentID:     "parent_id",
	UserID:       "user_id",
	Author:       "author",
	AuthorAvatar: "author_avatar",
	Text:         "text",
	Platform:     "platform",
	BoostAmount:  "boost_amount",
	CreatedAt:    "created_at",
}
