// Copyright (c) 2026 PodCentral. All rights reserved.

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podcentral/api/internal/platform/database/schema"
)

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ListByEpisode returns every comment on the episode, oldest first, so the
// thread assembler sees parents before their replies.
func (repository *postgresRepository) ListByEpisode(ctx context.Context, episodeID string) ([]*Comment, error) {
	query := fmt.Sprintf(`
		SELECT id, episode_id, parent_id, user_id, author,
			COALESCE(author_avatar, ''), text, platform, boost_amount, created_at
		FROM %s
		WHERE episode_id = $1
		ORDER BY created_at ASC
	`, schema.SocialComment.Table)

	rows, err := repository.pool.Query(ctx, query, episodeID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		entry := &Comment{}
		err := rows.Scan(
			&entry.ID, &entry.EpisodeID, &entry.ParentID, &entry.UserID,
			&entry.Author, &entry.AuthorAvatar, &entry.Text, &entry.Platform,
			&entry.BoostAmount, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		comments = append(comments, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: comment iteration failed: %w", err)
	}
	return comments, nil
}

// Insert stores a new comment and backfills the database-assigned timestamp.
func (repository *postgresRepository) Insert(ctx context.Context, entry *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, episode_id, parent_id, user_id, author,
			author_avatar, text, platform, boost_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, schema.SocialComment.Table)

	err := repository.pool.QueryRow(ctx, query,
		entry.ID, entry.EpisodeID, entry.ParentID, entry.UserID, entry.Author,
		entry.AuthorAvatar, entry.Text, entry.Platform, entry.BoostAmount,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to insert comment: %w", err)
	}
	return nil
}
