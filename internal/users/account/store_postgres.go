// Copyright (c) 2026 PodCentral. All rights reserved.

// PostgreSQL repositories for user profiles, player preferences, and
// session auditing.
//
// # Schema Table Mapping
//   - users.account: Master identity and profile data.
//   - users.preferences: 1:1 player settings configuration.
//   - users.session: Active device sessions and security metadata.

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podcentral/api/internal/platform/apperr"
	"github.com/podcentral/api/internal/platform/database/schema"
	"github.com/podcentral/api/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// PostgresPreferencesRepository implements [PreferencesRepository] using pgx.
type PostgresPreferencesRepository struct {
	pool *pgxpool.Pool
}

// NewPreferencesRepository creates a new Postgres implementation for user settings.
func NewPreferencesRepository(pool *pgxpool.Pool) *PostgresPreferencesRepository {
	return &PostgresPreferencesRepository{pool: pool}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// # AccountRepository Methods

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName, schema.UsersAccount.AvatarURL,
		schema.UsersAccount.Bio, schema.UsersAccount.Role,
		schema.UsersAccount.IsVerified, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table, schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Bio,
		&user.Role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
Update modifies the mutable profile metadata of a user.

Description: This method specifically syncs the DisplayName, AvatarURL, and
Bio fields, while refreshing the updated_at timestamp.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Update failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1 AND %s IS NULL`,
		schema.UsersAccount.Table,
		schema.UsersAccount.DisplayName, schema.UsersAccount.AvatarURL, schema.UsersAccount.Bio,
		schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.DisplayName,
		user.AvatarURL,
		user.Bio,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	return nil
}

/*
SoftDelete flags a user account as logically destroyed.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
		schema.UsersAccount.Table, schema.UsersAccount.DeletedAt, schema.UsersAccount.ID)
	_, err := repository.pool.Exec(context, query, id)
	return err
}

// # PreferencesRepository Methods

/*
FindByUserID retrieves the stored player settings for a specific user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Preferences: Hydrated settings entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresPreferencesRepository) FindByUserID(context context.Context, userID string) (*Preferences, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UsersPreferences.UserID, schema.UsersPreferences.PlaybackSpeed, schema.UsersPreferences.AutoplayNext,
		schema.UsersPreferences.SkipForwardSeconds, schema.UsersPreferences.SkipBackSeconds,
		schema.UsersPreferences.HideExplicit, schema.UsersPreferences.ShowTranscripts,
		schema.UsersPreferences.UpdatedAt,
		schema.UsersPreferences.Table,
		schema.UsersPreferences.UserID,
	)

	prefs := &Preferences{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&prefs.UserID,
		&prefs.PlaybackSpeed,
		&prefs.AutoplayNext,
		&prefs.SkipForwardSeconds,
		&prefs.SkipBackSeconds,
		&prefs.HideExplicit,
		&prefs.ShowTranscripts,
		&prefs.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Preferences")
		}
		return nil, fmt.Errorf("postgres_preference_repo_find_failed: %w", err)
	}

	return prefs, nil
}

/*
Upsert saves a user's preferences using an ON CONFLICT UPDATE strategy.

Parameters:
  - context: context.Context
  - prefs: *Preferences

Returns:
  - error: Synchronization failures
*/
func (repository *PostgresPreferencesRepository) Upsert(context context.Context, prefs *Preferences) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		schema.UsersPreferences.Table,
		schema.UsersPreferences.UserID, schema.UsersPreferences.PlaybackSpeed, schema.UsersPreferences.AutoplayNext,
		schema.UsersPreferences.SkipForwardSeconds, schema.UsersPreferences.SkipBackSeconds,
		schema.UsersPreferences.HideExplicit, schema.UsersPreferences.ShowTranscripts,
		schema.UsersPreferences.UpdatedAt,
		schema.UsersPreferences.UserID,
		schema.UsersPreferences.PlaybackSpeed, schema.UsersPreferences.PlaybackSpeed,
		schema.UsersPreferences.AutoplayNext, schema.UsersPreferences.AutoplayNext,
		schema.UsersPreferences.SkipForwardSeconds, schema.UsersPreferences.SkipForwardSeconds,
		schema.UsersPreferences.SkipBackSeconds, schema.UsersPreferences.SkipBackSeconds,
		schema.UsersPreferences.HideExplicit, schema.UsersPreferences.HideExplicit,
		schema.UsersPreferences.ShowTranscripts, schema.UsersPreferences.ShowTranscripts,
		schema.UsersPreferences.UpdatedAt, schema.UsersPreferences.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		prefs.UserID,
		prefs.PlaybackSpeed,
		prefs.AutoplayNext,
		prefs.SkipForwardSeconds,
		prefs.SkipBackSeconds,
		prefs.HideExplicit,
		prefs.ShowTranscripts,
		prefs.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_preference_repo_upsert_failed: %w", err)
	}

	return nil
}

// # SessionRepository Methods

/*
FindActiveByUserID retrieves all valid device sessions for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []SessionInfo: Collection of active devices
  - error: Database retrieval failures
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()
		ORDER BY %s DESC`,
		schema.UsersSession.ID, schema.UsersSession.UserAgent, schema.UsersSession.IPAddress,
		schema.UsersSession.CreatedAt, schema.UsersSession.ExpiresAt,
		schema.UsersSession.Table,
		schema.UsersSession.UserID, schema.UsersSession.IsRevoked, schema.UsersSession.ExpiresAt,
		schema.UsersSession.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_active_failed: %w", err)
	}
	defer rows.Close()

	sessions := []SessionInfo{}
	for rows.Next() {
		var sess SessionInfo
		if err := rows.Scan(&sess.ID, &sess.DeviceName, &sess.IPAddress, &sess.CreatedAt, &sess.ExpiresAt); err != nil {
			return nil, fmt.Errorf("postgres_session_repo_scan_failed: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_session_repo_iteration_failed: %w", err)
	}
	return sessions, nil
}

/*
Revoke marks a single session as permanently revoked.

Parameters:
  - context: context.Context
  - userID: string (Security: validation of ownership)
  - sessionID: string

Returns:
  - error: Update failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s = $2`,
		schema.UsersSession.Table, schema.UsersSession.IsRevoked, schema.UsersSession.ID, schema.UsersSession.UserID)
	_, err := repository.pool.Exec(context, query, sessionID, userID)
	return err
}

/*
RevokeOthers marks all sessions except the current one as revoked.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string

Returns:
  - error: Batch update failures
*/
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s != $2 AND %s = FALSE`,
		schema.UsersSession.Table, schema.UsersSession.IsRevoked, schema.UsersSession.UserID,
		schema.UsersSession.ID, schema.UsersSession.IsRevoked)
	_, err := repository.pool.Exec(context, query, userID, currentSessionID)
	return err
}

/*
RevokeAll terminates every session for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch update failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s = FALSE`,
		schema.UsersSession.Table, schema.UsersSession.IsRevoked, schema.UsersSession.UserID, schema.UsersSession.IsRevoked)
	_, err := repository.pool.Exec(context, query, userID)
	return err
}
