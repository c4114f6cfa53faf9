// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync

import "context"

// # Storage Contract

// Store is the persistence boundary of the sync pipeline.
//
// # Upsert Semantics
//
// Implementations must use database-side upsert-on-conflict for the
// natural-key writes (UpsertPodcast, UpsertPerson): two concurrent syncs
// racing to create the same row must converge on one row, so
// check-then-insert is not acceptable.
type Store interface {

	// UpsertPodcast inserts or updates the podcast row matched by its
	// directory id and returns the local podcast id. Must be atomic under
	// concurrent syncs of the same feed.
	UpsertPodcast(ctx context.Context, record *PodcastRecord) (string, error)

	// ReplaceFunding replaces the podcast's funding link. A nil funding
	// record removes any stored link.
	ReplaceFunding(ctx context.Context, podcastID string, funding *FundingRecord) error

	// ReplaceValue replaces the podcast's value configuration; recipients
	// are deleted and reinserted, never diffed. A nil value removes the
	// stored configuration.
	ReplaceValue(ctx context.Context, podcastID string, value *ValueRecord) error

	// ExistingEpisodes resolves which of the given directory episode ids
	// already have rows for this podcast, in one batched lookup. The result
	// maps directory episode id to local episode id.
	ExistingEpisodes(ctx context.Context, podcastID string, indexIDs []int64) (map[int64]string, error)

	// UpdateEpisode updates the mutable metadata of a known episode.
	UpdateEpisode(ctx context.Context, episodeID string, record *EpisodeRecord) error

	// InsertEpisode inserts a new episode row and returns its local id.
	// Conflicts on the (podcast, directory id) natural key resolve to the
	// existing row's id.
	InsertEpisode(ctx context.Context, podcastID string, record *EpisodeRecord) (string, error)

	// UpsertPerson inserts or finds a person by (name, role) and returns
	// the person id.
	UpsertPerson(ctx context.Context, person *PersonRecord) (string, error)

	// LinkEpisodePerson attaches a person to an episode. Duplicate links
	// are a no-op.
	LinkEpisodePerson(ctx context.Context, episodeID, personID string) error

	// ReplaceChapters replaces an episode's chapter list atomically.
	ReplaceChapters(ctx context.Context, episodeID string, chapters []Chapter) error

	// ReplaceTranscript replaces an episode's transcript segments atomically.
	ReplaceTranscript(ctx context.Context, episodeID string, segments []Segment) error

	// InsertSoundbites stores an episode's soundbites.
	InsertSoundbites(ctx context.Context, episodeID string, soundbites []SoundbiteRecord) error

	// InsertSocialLinks stores an episode's social-interact links.
	InsertSocialLinks(ctx context.Context, episodeID string, links []SocialLinkRecord) error

	// SetEpisodeCount refreshes the podcast's cached episode count.
	SetEpisodeCount(ctx context.Context, podcastID string, count int) error
}
