// Copyright (c) 2026 PodCentral. All rights reserved.

package episode

import (
	"context"
	"time"
)

// # Domain Entities

// Episode is one installment of a show, with its contributor credits and
// social links attached.
//
// Rows are written by the feed sync pipeline; this package reads them.
type Episode struct {
	ID             string    `json:"id"`
	PodcastID      string    `json:"podcast_id"`
	PodcastIndexID *int64    `json:"podcast_index_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	DatePublished  time.Time `json:"date_published"`
	Duration       int64     `json:"duration"`
	EnclosureURL   string    `json:"enclosure_url"`
	Image          *string   `json:"image,omitempty"`
	Season         *int      `json:"season,omitempty"`
	Episode        *int      `json:"episode,omitempty"`
	IsTrailer      bool      `json:"is_trailer"`
	ChaptersURL    *string   `json:"chapters_url,omitempty"`
	TranscriptURL  *string   `json:"transcript_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Persons     []Person     `json:"persons"`
	SocialLinks []SocialLink `json:"social_interact"`
}

// Person is a contributor credit resolved through the episode_person join.
type Person struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	GroupName *string `json:"group_name,omitempty"`
	Img       string  `json:"img"`
	Href      *string `json:"href,omitempty"`
}

// SocialLink ties the episode to its social commenting root.
type SocialLink struct {
	URI        string  `json:"uri"`
	Protocol   string  `json:"protocol"`
	AccountURL *string `json:"account_url,omitempty"`
}

// Chapter is one navigation marker inside the episode audio.
type Chapter struct {
	ID        string   `json:"id"`
	StartTime float64  `json:"start_time"`
	EndTime   *float64 `json:"end_time,omitempty"`
	Title     string   `json:"title"`
	Img       string   `json:"img,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// TranscriptSegment is one cue of the episode transcript.
type TranscriptSegment struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Speaker   string  `json:"speaker,omitempty"`
	Text      string  `json:"text"`
}

// Soundbite marks a shareable clip inside the episode audio.
type Soundbite struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	Title     string  `json:"title"`
}

// # Repository Contract

// Repository is the read-side storage boundary for episodes and their
// sub-resources.
type Repository interface {
	ListByPodcast(ctx context.Context, podcastID string, limit, offset int) ([]*Episode, int, error)
	FindByID(ctx context.Context, episodeID string) (*Episode, error)
	ListRecent(ctx context.Context, limit int) ([]*Episode, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*Episode, int, error)

	ListChapters(ctx context.Context, episodeID string) ([]*Chapter, error)
	ListTranscript(ctx context.Context, episodeID string) ([]*TranscriptSegment, error)
	ListSoundbites(ctx context.Context, episodeID string) ([]*Soundbite, error)
}
