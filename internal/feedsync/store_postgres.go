// Copyright (c) 2026 PodCentral. All rights reserved.

/*
PostgreSQL implementation of the sync [Store].

The implementation leans on Postgres upsert primitives for correctness
under concurrency:
  - ON CONFLICT ... DO UPDATE ... RETURNING id implements the atomic
    natural-key upserts (podcast, episode, person) in one round-trip.
  - ANY($n) implements the batched episode existence lookup.
  - pgx.Batch pipelines the bulk chapter/segment/soundbite inserts.
  - Transactions make the delete-then-insert replaces (chapters,
    transcript, value recipients) atomic.
*/
package feedsync

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podcentral/api/internal/platform/database/schema"
	"github.com/podcentral/api/pkg/uuid"
)

// postgresStore implements [Store] using pgx.
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL backed sync store.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

// # Podcast Writes

/*
UpsertPodcast inserts or updates the podcast row matched by podcast_index_id.

Description: A single INSERT ... ON CONFLICT DO UPDATE ... RETURNING id
statement, so two concurrent syncs of the same feed race safely inside the
database instead of producing duplicate rows. All mutable fields are
refreshed from the directory on every sync.

Returns:
  - string: The local podcast id (existing or freshly created).
*/
func (store *postgresStore) UpsertPodcast(ctx context.Context, record *PodcastRecord) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, podcast_index_id, title, author, description, image,
			categories, locked, medium, language, episode_count, feed_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (podcast_index_id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			description = EXCLUDED.description,
			image = EXCLUDED.image,
			categories = EXCLUDED.categories,
			locked = EXCLUDED.locked,
			medium = EXCLUDED.medium,
			language = EXCLUDED.language,
			feed_url = EXCLUDED.feed_url,
			updated_at = now()
		RETURNING id
	`, schema.CorePodcast.Table)

	var podcastID string
	err := store.pool.QueryRow(ctx, query,
		uuid.New(),
		record.PodcastIndexID,
		record.Title,
		record.Author,
		record.Description,
		record.Image,
		record.Categories,
		record.Locked,
		record.Medium,
		record.Language,
		record.EpisodeCount,
		record.FeedURL,
	).Scan(&podcastID)

	if err != nil {
		return "", fmt.Errorf("postgres: failed to upsert podcast: %w", err)
	}

	return podcastID, nil
}

// ReplaceFunding replaces the podcast's single funding link. A nil record
// clears it.
func (store *postgresStore) ReplaceFunding(ctx context.Context, podcastID string, funding *FundingRecord) error {
	if funding == nil {
		query := fmt.Sprintf(`DELETE FROM %s WHERE podcast_id = $1`, schema.CorePodcastFunding.Table)
		if _, err := store.pool.Exec(ctx, query, podcastID); err != nil {
			return fmt.Errorf("postgres: failed to clear funding: %w", err)
		}
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (podcast_id, url, message)
		VALUES ($1, $2, $3)
		ON CONFLICT (podcast_id) DO UPDATE SET
			url = EXCLUDED.url,
			message = EXCLUDED.message
	`, schema.CorePodcastFunding.Table)

	if _, err := store.pool.Exec(ctx, query, podcastID, funding.URL, funding.Message); err != nil {
		return fmt.Errorf("postgres: failed to replace funding: %w", err)
	}
	return nil
}

/*
ReplaceValue replaces the podcast's value configuration wholesale.

Description: Runs inside one transaction: recipients of the prior config are
deleted, then the config row, then both are reinserted from the new record.
Recipients are never diffed; the set is small and order carries no identity
beyond the stored position.
*/
func (store *postgresStore) ReplaceValue(ctx context.Context, podcastID string, value *ValueRecord) error {
	transaction, err := store.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin value transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	// Clear the prior configuration and its recipients
	deleteRecipients := fmt.Sprintf(`
		DELETE FROM %s WHERE value_config_id IN (
			SELECT id FROM %s WHERE podcast_id = $1
		)`, schema.CoreValueRecipient.Table, schema.CoreValueConfig.Table)
	if _, err := transaction.Exec(ctx, deleteRecipients, podcastID); err != nil {
		return fmt.Errorf("postgres: failed to clear value recipients: %w", err)
	}

	deleteConfig := fmt.Sprintf(`DELETE FROM %s WHERE podcast_id = $1`, schema.CoreValueConfig.Table)
	if _, err := transaction.Exec(ctx, deleteConfig, podcastID); err != nil {
		return fmt.Errorf("postgres: failed to clear value config: %w", err)
	}

	if value != nil {
		insertConfig := fmt.Sprintf(`
			INSERT INTO %s (id, podcast_id, type, method)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, schema.CoreValueConfig.Table)

		var configID string
		if err := transaction.QueryRow(ctx, insertConfig, uuid.New(), podcastID, value.Type, value.Method).Scan(&configID); err != nil {
			return fmt.Errorf("postgres: failed to insert value config: %w", err)
		}

		// Pipeline the recipient inserts
		insertRecipient := fmt.Sprintf(`
			INSERT INTO %s (id, value_config_id, name, type, address, split, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, schema.CoreValueRecipient.Table)

		batch := &pgx.Batch{}
		for _, recipient := range value.Recipients {
			batch.Queue(insertRecipient,
				uuid.New(), configID, recipient.Name, recipient.Type,
				recipient.Address, recipient.Split, recipient.Position,
			)
		}

		if err := transaction.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("postgres: failed to insert value recipients: %w", err)
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit value transaction: %w", err)
	}
	return nil
}

// # Episode Writes

/*
ExistingEpisodes performs the batched known-vs-new partition lookup.

Description: One ANY($n) query resolves every directory episode id at once.
Issuing one existence query per episode is the N+1 pattern this method
exists to prevent.

Returns:
  - map[int64]string: directory episode id → local episode id.
*/
func (store *postgresStore) ExistingEpisodes(ctx context.Context, podcastID string, indexIDs []int64) (map[int64]string, error) {
	known := make(map[int64]string, len(indexIDs))
	if len(indexIDs) == 0 {
		return known, nil
	}

	query := fmt.Sprintf(`
		SELECT id, podcast_index_id
		FROM %s
		WHERE podcast_id = $1 AND podcast_index_id = ANY($2)
	`, schema.CoreEpisode.Table)

	rows, err := store.pool.Query(ctx, query, podcastID, indexIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query existing episodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var episodeID string
		var indexID int64
		if err := rows.Scan(&episodeID, &indexID); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan existing episode: %w", err)
		}
		known[indexID] = episodeID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: existing episode iteration failed: %w", err)
	}
	return known, nil
}

// UpdateEpisode refreshes the mutable metadata of a known episode. Side
// records (chapters, transcript, persons, soundbites) are untouched for
// known episodes.
func (store *postgresStore) UpdateEpisode(ctx context.Context, episodeID string, record *EpisodeRecord) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			title = $2,
			description = $3,
			date_published = $4,
			duration = $5,
			enclosure_url = $6,
			image = $7,
			season = $8,
			episode = $9,
			is_trailer = $10,
			chapters_url = $11,
			transcript_url = $12,
			updated_at = now()
		WHERE id = $1
	`, schema.CoreEpisode.Table)

	_, err := store.pool.Exec(ctx, query,
		episodeID,
		record.Title,
		record.Description,
		record.DatePublished,
		record.Duration,
		record.EnclosureURL,
		record.Image,
		record.Season,
		record.Episode,
		record.IsTrailer,
		record.ChaptersURL,
		record.TranscriptURL,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update episode: %w", err)
	}
	return nil
}

// InsertEpisode inserts a new episode row. A concurrent sync inserting the
// same (podcast, directory id) pair resolves to the existing row's id via
// the conflict clause.
func (store *postgresStore) InsertEpisode(ctx context.Context, podcastID string, record *EpisodeRecord) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, podcast_id, podcast_index_id, title, description,
			date_published, duration, enclosure_url, image, season, episode,
			is_trailer, chapters_url, transcript_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (podcast_id, podcast_index_id) DO UPDATE SET
			updated_at = now()
		RETURNING id
	`, schema.CoreEpisode.Table)

	var episodeID string
	err := store.pool.QueryRow(ctx, query,
		uuid.New(),
		podcastID,
		record.PodcastIndexID,
		record.Title,
		record.Description,
		record.DatePublished,
		record.Duration,
		record.EnclosureURL,
		record.Image,
		record.Season,
		record.Episode,
		record.IsTrailer,
		record.ChaptersURL,
		record.TranscriptURL,
	).Scan(&episodeID)

	if err != nil {
		return "", fmt.Errorf("postgres: failed to insert episode: %w", err)
	}
	return episodeID, nil
}

// SetEpisodeCount stores the directory's episode list size as the cached
// count. Deliberately not a recount of local rows.
func (store *postgresStore) SetEpisodeCount(ctx context.Context, podcastID string, count int) error {
	query := fmt.Sprintf(`UPDATE %s SET episode_count = $2, updated_at = now() WHERE id = $1`, schema.CorePodcast.Table)

	if _, err := store.pool.Exec(ctx, query, podcastID, count); err != nil {
		return fmt.Errorf("postgres: failed to set episode count: %w", err)
	}
	return nil
}

// # Person Writes

// UpsertPerson inserts or finds a contributor by the (name, role) natural
// key and returns the person id.
func (store *postgresStore) UpsertPerson(ctx context.Context, person *PersonRecord) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, role, group_name, img, href)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name, role) DO UPDATE SET
			img = EXCLUDED.img,
			href = COALESCE(EXCLUDED.href, %s.href)
		RETURNING id
	`, schema.CorePerson.Table, schema.CorePerson.Table)

	var personID string
	err := store.pool.QueryRow(ctx, query,
		uuid.New(),
		person.Name,
		person.Role,
		person.GroupName,
		person.Img,
		person.Href,
	).Scan(&personID)

	if err != nil {
		return "", fmt.Errorf("postgres: failed to upsert person: %w", err)
	}
	return personID, nil
}

// LinkEpisodePerson attaches a person to an episode; duplicate links are a
// no-op via ON CONFLICT DO NOTHING.
func (store *postgresStore) LinkEpisodePerson(ctx context.Context, episodeID, personID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (episode_id, person_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, schema.CoreEpisodePerson.Table)

	if _, err := store.pool.Exec(ctx, query, episodeID, personID); err != nil {
		return fmt.Errorf("postgres: failed to link episode person: %w", err)
	}
	return nil
}

// # Side Record Writes

// ReplaceChapters atomically swaps an episode's chapter list: delete all,
// reinsert all, one transaction, inserts pipelined in a batch.
func (store *postgresStore) ReplaceChapters(ctx context.Context, episodeID string, chapters []Chapter) error {
	transaction, err := store.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin chapters transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE episode_id = $1`, schema.CoreChapter.Table)
	if _, err := transaction.Exec(ctx, deleteQuery, episodeID); err != nil {
		return fmt.Errorf("postgres: failed to clear chapters: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (id, episode_id, start_time, end_time, title, img, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, schema.CoreChapter.Table)

	batch := &pgx.Batch{}
	for _, chapter := range chapters {
		batch.Queue(insertQuery,
			uuid.New(), episodeID, chapter.StartTime, chapter.EndTime,
			chapter.Title, chapter.Img, chapter.URL,
		)
	}

	if err := transaction.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to insert chapters: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit chapters transaction: %w", err)
	}
	return nil
}

// ReplaceTranscript atomically swaps an episode's transcript segments,
// mirroring [postgresStore.ReplaceChapters].
func (store *postgresStore) ReplaceTranscript(ctx context.Context, episodeID string, segments []Segment) error {
	transaction, err := store.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transcript transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE episode_id = $1`, schema.CoreTranscriptSegment.Table)
	if _, err := transaction.Exec(ctx, deleteQuery, episodeID); err != nil {
		return fmt.Errorf("postgres: failed to clear transcript: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (id, episode_id, start_time, end_time, speaker, text)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, schema.CoreTranscriptSegment.Table)

	batch := &pgx.Batch{}
	for _, segment := range segments {
		batch.Queue(insertQuery,
			uuid.New(), episodeID, segment.StartTime, segment.EndTime,
			segment.Speaker, segment.Text,
		)
	}

	if err := transaction.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to insert transcript segments: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit transcript transaction: %w", err)
	}
	return nil
}

// InsertSoundbites pipelines an episode's soundbite inserts.
func (store *postgresStore) InsertSoundbites(ctx context.Context, episodeID string, soundbites []SoundbiteRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, episode_id, start_time, duration, title)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, schema.CoreSoundbite.Table)

	batch := &pgx.Batch{}
	for _, soundbite := range soundbites {
		batch.Queue(query, uuid.New(), episodeID, soundbite.StartTime, soundbite.Duration, soundbite.Title)
	}

	if err := store.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to insert soundbites: %w", err)
	}
	return nil
}

// InsertSocialLinks pipelines an episode's social-interact link inserts.
func (store *postgresStore) InsertSocialLinks(ctx context.Context, episodeID string, links []SocialLinkRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, episode_id, uri, protocol, account_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, schema.CoreSocialInteract.Table)

	batch := &pgx.Batch{}
	for _, link := range links {
		batch.Queue(query, uuid.New(), episodeID, link.URI, link.Protocol, link.AccountURL)
	}

	if err := store.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to insert social links: %w", err)
	}
	return nil
}
