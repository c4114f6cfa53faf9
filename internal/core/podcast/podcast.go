// Copyright (c) 2026 PodCentral. All rights reserved.

package podcast

import (
	"context"
	"time"
)

// # Domain Entities

// Podcast is a show in the catalogue.
//
// Rows are created and refreshed exclusively by the feed sync pipeline; this
// package only ever reads them.
type Podcast struct {
	ID             string    `json:"id"`
	PodcastIndexID *int64    `json:"podcast_index_id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	Categories     []string  `json:"categories"`
	Locked         bool      `json:"locked"`
	Medium         string    `json:"medium"`
	Language       string    `json:"language"`
	EpisodeCount   int       `json:"episode_count"`
	FeedURL        string    `json:"feed_url"`
	License        *string   `json:"license,omitempty"`
	Location       *string   `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Funding *Funding     `json:"funding,omitempty"`
	Value   *ValueConfig `json:"value,omitempty"`
}

// Funding is the show's listener-support link.
type Funding struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// ValueConfig is the show's Lightning value block with its recipient splits.
type ValueConfig struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Method     string           `json:"method"`
	Recipients []ValueRecipient `json:"recipients"`
}

// ValueRecipient is one split inside a value block, in declared order.
type ValueRecipient struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address"`
	Split   int    `json:"split"`
}

// Category is a browsable catalogue category. The id is the compact label
// stored on podcasts ("truecrime"); Name is the display form.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// # Query Filters

// Filter narrows a catalogue listing.
type Filter struct {
	// Query is a case-insensitive match against title, author, and
	// description.
	Query string

	// Categories restricts results to podcasts carrying every one of the
	// compact labels.
	Categories []string

	// Medium restricts by declared medium (podcast, music, video,
	// audiobook).
	Medium string
}

// # Repository Contract

// Repository is the read-side storage boundary for the catalogue.
type Repository interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Podcast, int, error)
	FindByID(ctx context.Context, podcastID string) (*Podcast, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}
