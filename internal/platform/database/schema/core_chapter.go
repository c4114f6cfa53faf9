// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table     string
	ID        string
	EpisodeID string
	StartTime string
	EndTime   string
	Title     string
	Img       string
	URL       string
}

// CoreChapter is the schema definition for core.chapter.
//
// Chapters are replaced wholesale (delete-all, insert-all) whenever a
// chapters document is re-synced for an episode.
var CoreChapter = CoreChapterTable{
	Table:     "core.chapter",
	ID:        "id",
	EpisodeID: "episode_id",
	StartTime: "start_time",
	EndTime:   "end_time",
	Title:     "title",
	Img:       "img",
	URL:       "url",
}
