// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// UsersListeningHistoryTable represents the 'users.listening_history' table
type UsersListeningHistoryTable struct {
	Table      string
	UserID     string
	EpisodeID  string
	Progress   string
	LastPlayed string
}

// UsersListeningHistory is the schema definition for users.listening_history.
//
// Progress is upserted on (user_id, episode_id) every time playback position
// is reported.
var UsersListeningHistory = UsersListeningHistoryTable{
	Table:      "users.listening_history",
	UserID:     "user_id",
	EpisodeID:  "episode_id",
	Progress:   "progress",
	LastPlayed: "last_played",
}
