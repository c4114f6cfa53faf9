// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// UsersPreferencesTable represents the 'users.preferences' table
type UsersPreferencesTable struct {
	Table              string
	UserID             string
	PlaybackSpeed      string
	AutoplayNext       string
	SkipForwardSeconds string
	SkipBackSeconds    string
	HideExplicit       string
	ShowTranscripts    string
	UpdatedAt          string
}

// UsersPreferences is the schema definition for users.preferences.
var UsersPreferences = UsersPreferencesTable{
	Table:              "users.preferences",
	UserID:             "user_id",
	PlaybackSpeed:      "playback_speed",
	AutoplayNext:       "autoplay_next",
	SkipForwardSeconds: "skip_forward_seconds",
	SkipBackSeconds:    "skip_back_seconds",
	HideExplicit:       "hide_explicit",
	ShowTranscripts:    "show_transcripts",
	UpdatedAt:          "updated_at",
}
