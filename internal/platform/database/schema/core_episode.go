// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// CoreEpisodeTable represents the 'core.episode' table
type CoreEpisodeTable struct {
	Table          string
	ID             string
	PodcastID      string
	PodcastIndexID string
	Title          string
	Description    string
	DatePublished  string
	Duration       string
	EnclosureURL   string
	Image          string
	Season         string
	Episode        string
	IsTrailer      string
	ChaptersURL    string
	TranscriptURL  string
	CreatedAt      string
	UpdatedAt      string
}

// CoreEpisode is the schema definition for core.episode.
//
// (podcast_id, podcast_index_id) is the natural key used to partition a
// directory episode list into known and new rows during sync.
var CoreEpisode = CoreEpisodeTable{
	Table:          "core.episode",
	ID:             "id",
	PodcastID:      "podcast_id",
	PodcastIndexID: "podcast_index_id",
	Title:          "title",
	Description:    "description",
	DatePublished:  "date_published",
	Duration:       "duration",
	EnclosureURL:   "enclosure_url",
	Image:          "image",
	Season:         "season",
	Episode:        "episode",
	IsTrailer:      "is_trailer",
	ChaptersURL:    "chapters_url",
	TranscriptURL:  "transcript_url",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

func (t CoreEpisodeTable) Columns() []string {
	return []string{
		t.ID, t.PodcastID, t.PodcastIndexID, t.Title, t.Description,
		t.DatePublished, t.Duration, t.EnclosureURL, t.Image, t.Season,
		t.Episode, t.IsTrailer, t.ChaptersURL, t.TranscriptURL,
		t.CreatedAt, t.UpdatedAt,
	}
}
