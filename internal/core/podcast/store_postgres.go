// Copyright (c) 2026 PodCentral. All rights reserved.

package podcast

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podcentral/api/internal/platform/dberr"
)

// postgresRepository implements [Repository] using pgx.
//
// Funding and value blocks are retrieved through JSON aggregation
// subqueries, so a catalogue page is one round-trip regardless of how many
// shows carry value splits.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// podcastSelect is the shared projection: all podcast columns, the total
// row count via a window function, and the nested funding/value documents.
const podcastSelect = `
	SELECT
		p.id, p.podcast_index_id, p.title, p.author, p.description, p.image,
		p.categories, p.locked, p.medium, p.language, p.episode_count,
		p.feed_url, p.license, p.location, p.created_at, p.updated_at,
		COUNT(*) OVER() AS total_count,
		(
			SELECT json_build_object('url', f.url, 'message', f.message)
			FROM core.podcast_funding f
			WHERE f.podcast_id = p.id
		) AS funding,
		(
			SELECT json_build_object(
				'id', vc.id,
				'type', vc.type,
				'method', vc.method,
				'recipients', COALESCE((
					SELECT json_agg(json_build_object(
						'name', vr.name, 'type', vr.type,
						'address', vr.address, 'split', vr.split
					) ORDER BY vr.position)
					FROM core.value_recipient vr
					WHERE vr.value_config_id = vc.id
				), '[]')
			)
			FROM core.value_config vc
			WHERE vc.podcast_id = p.id
			LIMIT 1
		) AS value
	FROM core.podcast p
`

/*
List returns a filtered catalogue page and the total count.

Description: Builds a dynamic WHERE clause from the filter. Category
membership uses the array containment operator against the categories
column; free text uses ILIKE across title, author, and description. Total
counts come from a window function, avoiding a second COUNT query.
*/
func (repository *postgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Podcast, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(podcastSelect)
	queryBuilder.WriteString(" WHERE 1=1")

	// Free-text filtering
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (p.title ILIKE $%d OR p.author ILIKE $%d OR p.description ILIKE $%d)",
			argID, argID, argID,
		))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Category membership: the show must carry every requested label
	if len(filter.Categories) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.categories @> $%d", argID))
		args = append(args, filter.Categories)
		argID++
	}

	// Medium filtering
	if filter.Medium != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.medium = $%d", argID))
		args = append(args, filter.Medium)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list podcasts: %w", err)
	}
	defer rows.Close()

	podcasts := []*Podcast{}
	total := 0

	for rows.Next() {
		show, rowTotal, err := scanPodcast(rows)
		if err != nil {
			return nil, 0, err
		}
		total = rowTotal
		podcasts = append(podcasts, show)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: podcast iteration failed: %w", err)
	}
	return podcasts, total, nil
}

// FindByID fetches one show with nested funding/value documents.
func (repository *postgresRepository) FindByID(ctx context.Context, podcastID string) (*Podcast, error) {
	rows, err := repository.pool.Query(ctx, podcastSelect+" WHERE p.id = $1", podcastID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to find podcast: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("postgres: failed to find podcast: %w", err)
		}
		return nil, dberr.Wrap(pgx.ErrNoRows, "find podcast")
	}

	show, _, err := scanPodcast(rows)
	return show, err
}

// ListCategories returns the category shelf ordered by name.
func (repository *postgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	query := `SELECT id, name, COALESCE(icon, '') FROM core.category ORDER BY name ASC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Icon); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: category iteration failed: %w", err)
	}
	return categories, nil
}

// scanPodcast hydrates one row of the shared projection, decoding the
// aggregated funding/value JSON documents.
func scanPodcast(rows pgx.Rows) (*Podcast, int, error) {
	show := &Podcast{}
	var total int
	var fundingJSON, valueJSON []byte

	err := rows.Scan(
		&show.ID, &show.PodcastIndexID, &show.Title, &show.Author,
		&show.Description, &show.Image, &show.Categories, &show.Locked,
		&show.Medium, &show.Language, &show.EpisodeCount, &show.FeedURL,
		&show.License, &show.Location, &show.CreatedAt, &show.UpdatedAt,
		&total, &fundingJSON, &valueJSON,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to scan podcast: %w", err)
	}

	if len(fundingJSON) > 0 {
		funding := &Funding{}
		if err := json.Unmarshal(fundingJSON, funding); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to decode funding document: %w", err)
		}
		show.Funding = funding
	}

	if len(valueJSON) > 0 {
		value := &ValueConfig{}
		if err := json.Unmarshal(valueJSON, value); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to decode value document: %w", err)
		}
		show.Value = value
	}

	return show, total, nil
}
