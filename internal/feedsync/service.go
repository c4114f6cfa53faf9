// Copyright (c) 2026 PodCentral. All rights reserved.

package feedsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/podcentral/api/internal/directory"
	"github.com/podcentral/api/internal/platform/apperr"
	"github.com/podcentral/api/internal/platform/ctxutil"
)

// # Collaborator Contracts

// DirectorySource is the slice of the directory client the orchestrator
// consumes. Declared here so tests can substitute a fake directory.
type DirectorySource interface {
	PodcastByFeedID(ctx context.Context, feedID int64) (*directory.Podcast, error)
	EpisodesByFeedID(ctx context.Context, feedID int64, max int) ([]directory.Episode, error)
}

// DocumentFetcher retrieves podcaster-hosted chapter and transcript
// documents. Satisfied by [*Fetcher].
type DocumentFetcher interface {
	FetchChapters(ctx context.Context, chaptersURL string) ([]Chapter, error)
	FetchTranscript(ctx context.Context, transcriptURL string) ([]Segment, error)
}

// ErrPodcastNotFound is the terminal failure for an unknown feed id.
var ErrPodcastNotFound = errors.New("Podcast not found in directory")

// # Service Layer

// Service orchestrates the directory-to-storage sync pipeline.
type Service struct {
	source  DirectorySource
	fetcher DocumentFetcher
	store   Store

	// Syncs for the same feed id are serialized so the batched episode
	// partition in one run cannot interleave with inserts from another.
	// Unrelated feeds proceed concurrently. Entries are dropped when the
	// last holder releases, so the map is bounded by in-flight syncs, not
	// by every feed id ever seen.
	lockMu    sync.Mutex
	feedLocks map[int64]*feedLock
}

// feedLock is a per-feed mutex with a holder count for eviction.
type feedLock struct {
	mu      sync.Mutex
	holders int
}

// NewService constructs a sync [Service].
func NewService(source DirectorySource, fetcher DocumentFetcher, store Store) *Service {
	return &Service{
		source:    source,
		fetcher:   fetcher,
		store:     store,
		feedLocks: make(map[int64]*feedLock),
	}
}

/*
Sync ingests one feed from the directory into local storage.

Description: Runs the full pipeline described in the package documentation.
The directory resolve steps and the core podcast upsert are fatal on
failure; every per-episode side step (persons, chapters, transcript,
soundbites, social links) is best-effort, individually logged, and never
flips the overall success flag.

Invoking Sync twice with unchanged upstream data is idempotent: the second
run updates rows in place and reports zero episodes created.

Parameters:
  - ctx: context.Context
  - feedID: The directory feed id (caller-validated positive integer).

Returns:
  - *Result: Always non-nil; carries the summary or the failure message.
  - error: Non-nil exactly when Result.Success is false.
*/
func (service *Service) Sync(ctx context.Context, feedID int64) (*Result, error) {
	unlock := service.lockFeed(feedID)
	defer unlock()

	logger := ctxutil.GetLogger(ctx).With(slog.Int64("feed_id", feedID))

	// 1. Resolve the feed
	feed, err := service.source.PodcastByFeedID(ctx, feedID)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return failure(ErrPodcastNotFound)
		}
		return failure(fmt.Errorf("fetch podcast from directory: %w", err))
	}

	// 2. Resolve the episode list (empty is valid, a fetch error is not)
	episodes, err := service.source.EpisodesByFeedID(ctx, feedID, directory.DefaultEpisodeMax)
	if err != nil {
		return failure(fmt.Errorf("fetch episodes from directory: %w", err))
	}

	// 3. Transform directory records into storage records
	podcastRecord := TransformPodcast(feed)
	episodeRecords := make([]*EpisodeRecord, 0, len(episodes))
	for index := range episodes {
		episodeRecords = append(episodeRecords, TransformEpisode(&episodes[index]))
	}

	// 4. Upsert the podcast row (atomic on the directory id)
	podcastID, err := service.store.UpsertPodcast(ctx, podcastRecord)
	if err != nil {
		return failure(fmt.Errorf("upsert podcast: %w", err))
	}

	// 5. Replace funding and value config (best-effort)
	if err := service.store.ReplaceFunding(ctx, podcastID, podcastRecord.Funding); err != nil {
		logger.Warn("sync_funding_failed", slog.Any("error", err))
	}
	if err := service.store.ReplaceValue(ctx, podcastID, podcastRecord.Value); err != nil {
		logger.Warn("sync_value_failed", slog.Any("error", err))
	}

	// 6. Partition episodes with one batched existence lookup
	indexIDs := make([]int64, 0, len(episodeRecords))
	for _, record := range episodeRecords {
		indexIDs = append(indexIDs, record.PodcastIndexID)
	}

	known, err := service.store.ExistingEpisodes(ctx, podcastID, indexIDs)
	if err != nil {
		return failure(fmt.Errorf("partition episodes: %w", err))
	}

	// 7 & 8. Apply updates to known episodes, inserts plus side records
	// to new ones
	result := &Result{Success: true, PodcastID: podcastID}

	for _, record := range episodeRecords {
		if episodeID, exists := known[record.PodcastIndexID]; exists {
			if err := service.store.UpdateEpisode(ctx, episodeID, record); err != nil {
				return failure(fmt.Errorf("update episode %d: %w", record.PodcastIndexID, err))
			}
			result.EpisodesUpdated++
			continue
		}

		episodeID, err := service.store.InsertEpisode(ctx, podcastID, record)
		if err != nil {
			return failure(fmt.Errorf("insert episode %d: %w", record.PodcastIndexID, err))
		}
		result.EpisodesCreated++

		service.syncEpisodeSideRecords(ctx, logger, episodeID, record)
	}

	// 9. Refresh the cached episode count from the directory's list size
	if err := service.store.SetEpisodeCount(ctx, podcastID, len(episodeRecords)); err != nil {
		logger.Warn("sync_episode_count_failed", slog.Any("error", err))
	}

	// 10. Summary
	logger.Info("feed_synced",
		slog.String("podcast_id", podcastID),
		slog.Int("created", result.EpisodesCreated),
		slog.Int("updated", result.EpisodesUpdated),
	)
	return result, nil
}

// syncEpisodeSideRecords applies the per-episode side steps for a newly
// inserted episode. Each step is independent: one failing is logged and
// must not stop the others.
func (service *Service) syncEpisodeSideRecords(ctx context.Context, logger *slog.Logger, episodeID string, record *EpisodeRecord) {
	episodeLogger := logger.With(slog.String("episode_id", episodeID))

	// Persons
	for index := range record.Persons {
		person := &record.Persons[index]

		personID, err := service.store.UpsertPerson(ctx, person)
		if err != nil {
			episodeLogger.Warn("sync_person_failed", slog.String("person", person.Name), slog.Any("error", err))
			continue
		}
		if err := service.store.LinkEpisodePerson(ctx, episodeID, personID); err != nil {
			episodeLogger.Warn("sync_person_link_failed", slog.String("person", person.Name), slog.Any("error", err))
		}
	}

	// Chapters
	if record.ChaptersURL != nil {
		if chapters, err := service.fetcher.FetchChapters(ctx, *record.ChaptersURL); err != nil {
			episodeLogger.Warn("sync_chapters_failed", slog.Any("error", err))
		} else if len(chapters) > 0 {
			// An empty document is a no-op: prior chapters stay in place
			if err := service.store.ReplaceChapters(ctx, episodeID, chapters); err != nil {
				episodeLogger.Warn("sync_chapters_store_failed", slog.Any("error", err))
			}
		}
	}

	// Transcript
	if record.TranscriptURL != nil {
		if segments, err := service.fetcher.FetchTranscript(ctx, *record.TranscriptURL); err != nil {
			episodeLogger.Warn("sync_transcript_failed", slog.Any("error", err))
		} else if len(segments) > 0 {
			if err := service.store.ReplaceTranscript(ctx, episodeID, segments); err != nil {
				episodeLogger.Warn("sync_transcript_store_failed", slog.Any("error", err))
			}
		}
	}

	// Soundbites
	if len(record.Soundbites) > 0 {
		if err := service.store.InsertSoundbites(ctx, episodeID, record.Soundbites); err != nil {
			episodeLogger.Warn("sync_soundbites_failed", slog.Any("error", err))
		}
	}

	// Social links
	if len(record.SocialLinks) > 0 {
		if err := service.store.InsertSocialLinks(ctx, episodeID, record.SocialLinks); err != nil {
			episodeLogger.Warn("sync_social_links_failed", slog.Any("error", err))
		}
	}
}

// lockFeed serializes syncs per feed id and returns the unlock function.
// The unlock evicts the map entry once no other sync holds or awaits it.
func (service *Service) lockFeed(feedID int64) func() {
	service.lockMu.Lock()
	lock, found := service.feedLocks[feedID]
	if !found {
		lock = &feedLock{}
		service.feedLocks[feedID] = lock
	}
	lock.holders++
	service.lockMu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		service.lockMu.Lock()
		lock.holders--
		if lock.holders == 0 {
			delete(service.feedLocks, feedID)
		}
		service.lockMu.Unlock()
	}
}

// failure wraps a fatal pipeline error into the caller-facing result shape.
func failure(err error) (*Result, error) {
	return &Result{Success: false, Error: err.Error()}, err
}
