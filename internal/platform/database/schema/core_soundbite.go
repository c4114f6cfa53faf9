// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CoreSoundbiteTable represents the 'core.soundbite' table
type CoreSoundbiteTable struct {
	Table     string
	ID        string
	EpisodeID string
	StartTime string
	Duration  string
	Title     string
}

// CoreSoundbite is the schema definition for core.soundbite.
var CoreSoundbite = CoreSoundbiteTable{
	Table:     "core.soundbite",
	ID:        "id",
	EpisodeID: "episode_id",
	StartTime: "start_time",
	Duration:  "duration",
	Title:     "title",
}
