// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// UsersSubscriptionTable represents the 'users.subscription' table
type UsersSubscriptionTable struct {
	Table     string
	UserID    string
	PodcastID string
	CreatedAt string
}

// UsersSubscription is the schema definition for users.subscription.
//
// Keyed by (user_id, podcast_id); duplicate subscriptions are a no-op.
var UsersSubscription = UsersSubscriptionTable{
	Table:     "users.subscription",
	UserID:    "user_id",
	PodcastID: "podcast_id",
	CreatedAt: "created_at",
}
