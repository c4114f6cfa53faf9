// Copyright (c) 2026 PodCentral. All rights reserved.

/*
Package feedsync ingests podcast metadata from the external directory into
local storage.

The package is the write path of the catalogue: given a directory feed id it
fetches the podcast and episode records, maps them onto the storage schema,
and reconciles them against existing rows using natural-key upserts. Reads
are served elsewhere (core/podcast, core/episode); feedsync only ever runs
when a user adds or refreshes a feed.

# Pipeline

 1. Resolve the feed and its episode list from the directory.
 2. Transform directory records into storage records.
 3. Upsert the podcast row (atomic on podcast_index_id).
 4. Replace funding and value configuration.
 5. Partition episodes into known and new with one batched lookup.
 6. Update known episodes, insert new ones.
 7. For each new episode: reconcile persons, fetch chapters and transcript,
    insert soundbites and social links — each best-effort.
 8. Refresh the cached episode count and return a summary.

Failures in steps 1-3 abort the sync; everything after the podcast row
exists is degraded-but-continues and only logged.
*/
package feedsync

import (
	"time"
)

// # Storage Records
//
// These are the shapes handed to the Store. They mirror the database schema,
// not the directory wire format; transform.go converts between the two.

// PodcastRecord is a podcast row ready for upsert.
type PodcastRecord struct {
	PodcastIndexID int64
	Title          string
	Author         string
	Description    string
	Image          string
	Categories     []string
	Locked         bool
	Medium         string
	Language       string
	EpisodeCount   int
	FeedURL        string

	Funding *FundingRecord
	Value   *ValueRecord
}

// EpisodeRecord is an episode row plus its dependent side records.
type EpisodeRecord struct {
	PodcastIndexID int64
	Title          string
	Description    string
	DatePublished  time.Time
	Duration       int64
	EnclosureURL   string
	Image          *string
	Season         *int
	Episode        *int
	IsTrailer      bool
	ChaptersURL    *string
	TranscriptURL  *string

	Persons     []PersonRecord
	Soundbites  []SoundbiteRecord
	SocialLinks []SocialLinkRecord
}

// PersonRecord is a contributor credit. Role is stored already normalized
// to one of the canonical roles (see persons.go).
type PersonRecord struct {
	Name      string
	Role      string
	GroupName *string
	Img       string
	Href      *string
}

// SoundbiteRecord marks a shareable clip inside an episode.
type SoundbiteRecord struct {
	StartTime float64
	Duration  float64
	Title     string
}

// SocialLinkRecord ties an episode to its social commenting root.
type SocialLinkRecord struct {
	URI        string
	Protocol   string
	AccountURL *string
}

// FundingRecord is a podcast's listener-support link.
type FundingRecord struct {
	URL     string
	Message string
}

// ValueRecord is a podcast's Lightning value block.
type ValueRecord struct {
	Type       string
	Method     string
	Recipients []ValueRecipientRecord
}

// ValueRecipientRecord is one split inside a value block. Position preserves
// declared order since recipients are replaced wholesale, never diffed.
type ValueRecipientRecord struct {
	Name     string
	Type     string
	Address  string
	Split    int
	Position int
}

// # Transcript & Chapter Records

// Segment is one parsed transcript cue.
type Segment struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Speaker   string  `json:"speaker,omitempty"`
	Text      string  `json:"text"`
}

// Chapter is one entry from a Podcast Namespace chapters document.
type Chapter struct {
	StartTime float64  `json:"start_time"`
	EndTime   *float64 `json:"end_time,omitempty"`
	Title     string   `json:"title"`
	Img       string   `json:"img,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// # Sync Summary

// Result is the caller-facing outcome of one sync run.
type Result struct {
	Success         bool   `json:"success"`
	PodcastID       string `json:"podcast_id,omitempty"`
	EpisodesCreated int    `json:"episodes_created"`
	EpisodesUpdated int    `json:"episodes_updated"`
	Error           string `json:"error,omitempty"`
}
