// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CoreTranscriptSegmentTable represents the 'core.transcript_segment' table
type CoreTranscriptSegmentTable struct {
	Table     string
	ID        string
	EpisodeID string
	StartTime string
	EndTime   string
	Speaker   string
	Text      string
}

// CoreTranscriptSegment is the schema definition for core.transcript_segment.
var CoreTranscriptSegment = CoreTranscriptSegmentTable{
	Table:     "core.transcript_segment",
	ID:        "id",
	EpisodeID: "episode_id",
	StartTime: "start_time",
	EndTime:   "end_time",
	Speaker:   "speaker",
	Text:      "text",
}
