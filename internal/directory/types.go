// Copyright (c) 2026 PodCentral. All rights reserved.

package directory

import (
	"encoding/json"
	"sort"
)

// # Wire Schema
//
// These structs mirror the JSON payloads returned by the podcast directory
// API (Podcast Index compatible). Fields are kept in the directory's own
// naming; translation into storage records happens in the sync package.

// Summary is the trimmed feed shape served by the public browse proxies.
// The full wire record stays internal to the sync pipeline; browser clients
// only need the shelf fields.
type Summary struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	EpisodeCount int      `json:"episode_count"`
	Language     string   `json:"language"`
	Categories   []string `json:"categories"`
}

// Summarize flattens a wire [Podcast] into its [Summary], applying the
// author/owner and artwork/image fallback chains. Category labels are
// sorted because the wire map carries no order.
func Summarize(feed Podcast) Summary {
	author := feed.Author
	if author == "" {
		author = feed.OwnerName
	}

	image := feed.Artwork
	if image == "" {
		image = feed.Image
	}

	categories := make([]string, 0, len(feed.Categories))
	for _, label := range feed.Categories {
		categories = append(categories, label)
	}
	sort.Strings(categories)

	return Summary{
		ID:           feed.ID,
		Title:        feed.Title,
		Author:       author,
		Description:  feed.Description,
		Image:        image,
		EpisodeCount: feed.EpisodeCount,
		Language:     feed.Language,
		Categories:   categories,
	}
}

// Podcast is a directory feed record.
type Podcast struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	URL              string            `json:"url"`
	OriginalURL      string            `json:"originalUrl"`
	Link             string            `json:"link"`
	Description      string            `json:"description"`
	Author           string            `json:"author"`
	OwnerName        string            `json:"ownerName"`
	Image            string            `json:"image"`
	Artwork          string            `json:"artwork"`
	LastUpdateTime   int64             `json:"lastUpdateTime"`
	ContentType      string            `json:"contentType"`
	ITunesID         *int64            `json:"itunesId"`
	Language         string            `json:"language"`
	Medium           string            `json:"medium"`
	Dead             int               `json:"dead"`
	EpisodeCount     int               `json:"episodeCount"`
	Categories       map[string]string `json:"categories"`
	Locked           int               `json:"locked"`
	Explicit         bool              `json:"explicit"`
	NewestItemPubdate int64            `json:"newestItemPubdate"`
	Funding          *Funding          `json:"funding,omitempty"`
	Value            *Value            `json:"value,omitempty"`
}

// Episode is a directory episode record.
type Episode struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	Link            string           `json:"link"`
	Description     string           `json:"description"`
	GUID            string           `json:"guid"`
	DatePublished   int64            `json:"datePublished"`
	DateCrawled     int64            `json:"dateCrawled"`
	EnclosureURL    string           `json:"enclosureUrl"`
	EnclosureType   string           `json:"enclosureType"`
	EnclosureLength int64            `json:"enclosureLength"`
	Duration        int64            `json:"duration"`
	Explicit        int              `json:"explicit"`
	Episode         *int             `json:"episode"`
	EpisodeType     string           `json:"episodeType"`
	Season          *int             `json:"season"`
	Image           string           `json:"image"`
	FeedImage       string           `json:"feedImage"`
	FeedID          int64            `json:"feedId"`
	FeedLanguage    string           `json:"feedLanguage"`
	ChaptersURL     *string          `json:"chaptersUrl"`
	TranscriptURL   *string          `json:"transcriptUrl"`
	Soundbite       *Soundbite       `json:"soundbite"`
	Soundbites      []Soundbite      `json:"soundbites,omitempty"`
	Persons         []Person         `json:"persons,omitempty"`
	SocialInteract  []SocialInteract `json:"socialInteract,omitempty"`
	Value           *Value           `json:"value,omitempty"`
}

// Person is a contributor credit attached to an episode.
type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Group string `json:"group"`
	Href  string `json:"href"`
	Img   string `json:"img"`
}

// Soundbite marks a shareable clip inside an episode's audio.
type Soundbite struct {
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
	Title     string  `json:"title"`
}

// SocialInteract links an episode to a social commenting root post.
type SocialInteract struct {
	URL        string `json:"url"`
	Protocol   string `json:"protocol"`
	AccountID  string `json:"accountId"`
	AccountURL string `json:"accountUrl"`
}

// Funding is a listener-support link declared by the feed.
type Funding struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Value describes a Lightning value block: a payment model plus its
// recipient splits.
type Value struct {
	Model        ValueModel         `json:"model"`
	Destinations []ValueDestination `json:"destinations"`
}

// ValueModel names the payment scheme of a value block.
type ValueModel struct {
	Type   string `json:"type"`
	Method string `json:"method"`
}

// ValueDestination is a single recipient split inside a value block.
type ValueDestination struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Type    string `json:"type"`
	Split   int    `json:"split"`
}

// # Response Envelopes

type searchResponse struct {
	Status      string    `json:"status"`
	Feeds       []Podcast `json:"feeds"`
	Count       int       `json:"count"`
	Description string    `json:"description"`
}

// The directory returns `"feed": []` (an empty array) instead of null when a
// feed id is unknown, so the field is decoded lazily.
type podcastResponse struct {
	Status      string          `json:"status"`
	Feed        json.RawMessage `json:"feed"`
	Description string          `json:"description"`
}

type episodesResponse struct {
	Status      string    `json:"status"`
	Items       []Episode `json:"items"`
	Count       int       `json:"count"`
	Description string    `json:"description"`
}

type episodeResponse struct {
	Status      string          `json:"status"`
	Episode     json.RawMessage `json:"episode"`
	Description string          `json:"description"`
}
