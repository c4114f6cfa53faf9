// Copyright (c) 2026 PodCentral. All rights reserved.

package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podcentral/api/internal/platform/database/schema"
)

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed library store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// # Subscriptions

// Subscribe records the follow; ON CONFLICT DO NOTHING makes a duplicate
// subscription a silent no-op.
func (repository *postgresRepository) Subscribe(ctx context.Context, userID, podcastID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, podcast_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, podcast_id) DO NOTHING
	`, schema.UsersSubscription.Table)

	if _, err := repository.pool.Exec(ctx, query, userID, podcastID); err != nil {
		return fmt.Errorf("postgres: failed to subscribe: %w", err)
	}
	return nil
}

// Unsubscribe removes the follow if present.
func (repository *postgresRepository) Unsubscribe(ctx context.Context, userID, podcastID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE user_id = $1 AND podcast_id = $2
	`, schema.UsersSubscription.Table)

	if _, err := repository.pool.Exec(ctx, query, userID, podcastID); err != nil {
		return fmt.Errorf("postgres: failed to unsubscribe: %w", err)
	}
	return nil
}

// IsSubscribed reports whether the follow row exists.
func (repository *postgresRepository) IsSubscribed(ctx context.Context, userID, podcastID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND podcast_id = $2)
	`, schema.UsersSubscription.Table)

	var subscribed bool
	if err := repository.pool.QueryRow(ctx, query, userID, podcastID).Scan(&subscribed); err != nil {
		return false, fmt.Errorf("postgres: failed to check subscription: %w", err)
	}
	return subscribed, nil
}

// ListSubscriptions joins the follow rows onto the catalogue, most recently
// subscribed first.
func (repository *postgresRepository) ListSubscriptions(ctx context.Context, userID string) ([]*SubscribedPodcast, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.title, p.author, p.image, p.categories, p.episode_count, s.created_at
		FROM %s s
		JOIN %s p ON p.id = s.podcast_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`, schema.UsersSubscription.Table, schema.CorePodcast.Table)

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	subscriptions := []*SubscribedPodcast{}
	for rows.Next() {
		entry := &SubscribedPodcast{}
		err := rows.Scan(
			&entry.ID, &entry.Title, &entry.Author, &entry.Image,
			&entry.Categories, &entry.EpisodeCount, &entry.SubscribedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan subscription: %w", err)
		}
		subscriptions = append(subscriptions, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: subscription iteration failed: %w", err)
	}
	return subscriptions, nil
}

// # Listening History

// SaveProgress upserts the playback position keyed by (user, episode).
func (repository *postgresRepository) SaveProgress(ctx context.Context, userID, episodeID string, progress float64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, episode_id, progress, last_played)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, episode_id) DO UPDATE SET
			progress = EXCLUDED.progress,
			last_played = now()
	`, schema.UsersListeningHistory.Table)

	if _, err := repository.pool.Exec(ctx, query, userID, episodeID, progress); err != nil {
		return fmt.Errorf("postgres: failed to save progress: %w", err)
	}
	return nil
}

// GetProgress returns the stored position, 0 when the episode was never
// played.
func (repository *postgresRepository) GetProgress(ctx context.Context, userID, episodeID string) (float64, error) {
	query := fmt.Sprintf(`
		SELECT progress FROM %s WHERE user_id = $1 AND episode_id = $2
	`, schema.UsersListeningHistory.Table)

	var progress float64
	err := repository.pool.QueryRow(ctx, query, userID, episodeID).Scan(&progress)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to get progress: %w", err)
	}
	return progress, nil
}

// ListHistory joins history rows onto episodes and podcasts for the
// history screen, most recently played first.
func (repository *postgresRepository) ListHistory(ctx context.Context, userID string, limit int) ([]*HistoryEntry, error) {
	query := fmt.Sprintf(`
		SELECT h.episode_id, e.podcast_id, e.title, p.title,
			COALESCE(e.image, p.image), e.duration, h.progress, h.last_played
		FROM %s h
		JOIN %s e ON e.id = h.episode_id
		JOIN %s p ON p.id = e.podcast_id
		WHERE h.user_id = $1
		ORDER BY h.last_played DESC
		LIMIT $2
	`, schema.UsersListeningHistory.Table, schema.CoreEpisode.Table, schema.CorePodcast.Table)

	rows, err := repository.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list history: %w", err)
	}
	defer rows.Close()

	history := []*HistoryEntry{}
	for rows.Next() {
		entry := &HistoryEntry{}
		err := rows.Scan(
			&entry.EpisodeID, &entry.PodcastID, &entry.EpisodeTitle, &entry.PodcastTitle,
			&entry.Image, &entry.Duration, &entry.Progress, &entry.LastPlayed,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan history entry: %w", err)
		}
		history = append(history, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: history iteration failed: %w", err)
	}
	return history, nil
}
