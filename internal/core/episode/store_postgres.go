// Copyright (c) 2026 PodCentral. All rights reserved.

package episode

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podcentral/api/internal/platform/dberr"
)

// postgresRepository implements [Repository] using pgx.
//
// Contributor credits and social links ride along as JSON-aggregated
// subqueries so an episode page never degenerates into N+1 join queries.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed episode store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// episodeSelect is the shared projection with nested person and social
// documents plus a window-function total.
const episodeSelect = `
	SELECT
		e.id, e.podcast_id, e.podcast_index_id, e.title, e.description,
		e.date_published, e.duration, e.enclosure_url, e.image, e.season,
		e.episode, e.is_trailer, e.chapters_url, e.transcript_url,
		e.created_at, e.updated_at,
		COUNT(*) OVER() AS total_count,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', pr.id, 'name', pr.name, 'role', pr.role,
				'group_name', pr.group_name, 'img', pr.img, 'href', pr.href
			) ORDER BY pr.name)
			FROM core.person pr
			JOIN core.episode_person ep ON ep.person_id = pr.id
			WHERE ep.episode_id = e.id
		), '[]') AS persons,
		COALESCE((
			SELECT json_agg(json_build_object(
				'uri', si.uri, 'protocol', si.protocol, 'account_url', si.account_url
			))
			FROM core.social_interact si
			WHERE si.episode_id = e.id
		), '[]') AS social_links
	FROM core.episode e
`

// ListByPodcast returns a show's episodes, newest first, with the total.
func (repository *postgresRepository) ListByPodcast(ctx context.Context, podcastID string, limit, offset int) ([]*Episode, int, error) {
	query := episodeSelect + `
		WHERE e.podcast_id = $1
		ORDER BY e.date_published DESC
		LIMIT $2 OFFSET $3
	`
	return repository.queryEpisodes(ctx, query, podcastID, limit, offset)
}

// FindByID fetches a single episode with its nested documents.
func (repository *postgresRepository) FindByID(ctx context.Context, episodeID string) (*Episode, error) {
	episodes, _, err := repository.queryEpisodes(ctx, episodeSelect+" WHERE e.id = $1", episodeID)
	if err != nil {
		return nil, err
	}
	if len(episodes) == 0 {
		return nil, dberr.Wrap(pgx.ErrNoRows, "find episode")
	}
	return episodes[0], nil
}

// ListRecent returns the newest episodes across the catalogue.
func (repository *postgresRepository) ListRecent(ctx context.Context, limit int) ([]*Episode, error) {
	query := episodeSelect + `
		ORDER BY e.date_published DESC
		LIMIT $1
	`
	episodes, _, err := repository.queryEpisodes(ctx, query, limit)
	return episodes, err
}

// Search matches free text against title and description.
func (repository *postgresRepository) Search(ctx context.Context, searchQuery string, limit, offset int) ([]*Episode, int, error) {
	query := episodeSelect + `
		WHERE e.title ILIKE $1 OR e.description ILIKE $1
		ORDER BY e.date_published DESC
		LIMIT $2 OFFSET $3
	`
	return repository.queryEpisodes(ctx, query, "%"+searchQuery+"%", limit, offset)
}

// queryEpisodes runs a projection query and hydrates the rows.
func (repository *postgresRepository) queryEpisodes(ctx context.Context, query string, args ...any) ([]*Episode, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to query episodes: %w", err)
	}
	defer rows.Close()

	episodes := []*Episode{}
	total := 0

	for rows.Next() {
		installment := &Episode{}
		var personsJSON, socialJSON []byte

		err := rows.Scan(
			&installment.ID, &installment.PodcastID, &installment.PodcastIndexID,
			&installment.Title, &installment.Description, &installment.DatePublished,
			&installment.Duration, &installment.EnclosureURL, &installment.Image,
			&installment.Season, &installment.Episode, &installment.IsTrailer,
			&installment.ChaptersURL, &installment.TranscriptURL,
			&installment.CreatedAt, &installment.UpdatedAt,
			&total, &personsJSON, &socialJSON,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan episode: %w", err)
		}

		if err := json.Unmarshal(personsJSON, &installment.Persons); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to decode person credits: %w", err)
		}
		if err := json.Unmarshal(socialJSON, &installment.SocialLinks); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to decode social links: %w", err)
		}

		episodes = append(episodes, installment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: episode iteration failed: %w", err)
	}
	return episodes, total, nil
}

// # Sub-Resource Queries

// ListChapters returns chapter markers in playback order.
func (repository *postgresRepository) ListChapters(ctx context.Context, episodeID string) ([]*Chapter, error) {
	query := `
		SELECT id, start_time, end_time, title, COALESCE(img, ''), COALESCE(url, '')
		FROM core.chapter
		WHERE episode_id = $1
		ORDER BY start_time ASC
	`

	rows, err := repository.pool.Query(ctx, query, episodeID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		chapter := &Chapter{}
		if err := rows.Scan(&chapter.ID, &chapter.StartTime, &chapter.EndTime, &chapter.Title, &chapter.Img, &chapter.URL); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: chapter iteration failed: %w", err)
	}
	return chapters, nil
}

// ListTranscript returns transcript cues in document order.
func (repository *postgresRepository) ListTranscript(ctx context.Context, episodeID string) ([]*TranscriptSegment, error) {
	query := `
		SELECT start_time, end_time, COALESCE(speaker, ''), text
		FROM core.transcript_segment
		WHERE episode_id = $1
		ORDER BY start_time ASC
	`

	rows, err := repository.pool.Query(ctx, query, episodeID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list transcript: %w", err)
	}
	defer rows.Close()

	segments := []*TranscriptSegment{}
	for rows.Next() {
		segment := &TranscriptSegment{}
		if err := rows.Scan(&segment.StartTime, &segment.EndTime, &segment.Speaker, &segment.Text); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan transcript segment: %w", err)
		}
		segments = append(segments, segment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: transcript iteration failed: %w", err)
	}
	return segments, nil
}

// ListSoundbites returns the episode's shareable clips.
func (repository *postgresRepository) ListSoundbites(ctx context.Context, episodeID string) ([]*Soundbite, error) {
	query := `
		SELECT id, start_time, duration, title
		FROM core.soundbite
		WHERE episode_id = $1
		ORDER BY start_time ASC
	`

	rows, err := repository.pool.Query(ctx, query, episodeID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list soundbites: %w", err)
	}
	defer rows.Close()

	soundbites := []*Soundbite{}
	for rows.Next() {
		soundbite := &Soundbite{}
		if err := rows.Scan(&soundbite.ID, &soundbite.StartTime, &soundbite.Duration, &soundbite.Title); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan soundbite: %w", err)
		}
		soundbites = append(soundbites, soundbite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: soundbite iteration failed: %w", err)
	}
	return soundbites, nil
}
