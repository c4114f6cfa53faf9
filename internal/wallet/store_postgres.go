// Copyright (c) 2026 PodCentral. All rights reserved.

package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/podcentral/api/internal/platform/database/schema"
)

// postgresRepository implements [Repository] using pgx.
//
// Debits run inside a transaction pairing a conditional UPDATE with the
// ledger insert, so the balance check and the subtraction are one atomic
// step and the ledger never records a movement that didn't happen.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed wallet store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// GetWallet reads the wallet, lazily seeding it with the schema defaults
// (50000 sats, 100 sats/min) on first access.
func (repository *postgresRepository) GetWallet(ctx context.Context, userID string) (*Wallet, error) {
	seed := fmt.Sprintf(`
		INSERT INTO %s (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, schema.UsersWallet.Table)

	if _, err := repository.pool.Exec(ctx, seed, userID); err != nil {
		return nil, fmt.Errorf("postgres: failed to seed wallet: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT user_id, balance, streaming_rate, updated_at
		FROM %s
		WHERE user_id = $1
	`, schema.UsersWallet.Table)

	userWallet := &Wallet{}
	err := repository.pool.QueryRow(ctx, query, userID).Scan(
		&userWallet.UserID, &userWallet.Balance, &userWallet.StreamingRate, &userWallet.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to get wallet: %w", err)
	}
	return userWallet, nil
}

// SetStreamingRate updates the sats-per-minute preference, seeding the
// wallet if needed.
func (repository *postgresRepository) SetStreamingRate(ctx context.Context, userID string, rate int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, streaming_rate)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			streaming_rate = EXCLUDED.streaming_rate,
			updated_at = now()
	`, schema.UsersWallet.Table)

	if _, err := repository.pool.Exec(ctx, query, userID, rate); err != nil {
		return fmt.Errorf("postgres: failed to set streaming rate: %w", err)
	}
	return nil
}

/*
Debit atomically subtracts the amount and records the ledger entry.

Description: The UPDATE carries the balance check in its WHERE clause;
when the balance doesn't cover the amount no row matches, the transaction
rolls back, and [ErrInsufficientBalance] is returned.

Returns:
  - int64: The balance after the debit.
*/
func (repository *postgresRepository) Debit(ctx context.Context, entry *Transaction) (int64, error) {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin debit: %w", err)
	}
	defer tx.Rollback(ctx)

	deduct := fmt.Sprintf(`
		UPDATE %s SET
			balance = balance - $2,
			updated_at = now()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`, schema.UsersWallet.Table)

	var balance int64
	err = tx.QueryRow(ctx, deduct, entry.UserID, entry.Amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInsufficientBalance
	}
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to debit wallet: %w", err)
	}

	if err := repository.insertTransaction(ctx, tx, entry); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit debit: %w", err)
	}
	return balance, nil
}

// Credit adds the amount and records the ledger entry, seeding the wallet
// if needed.
func (repository *postgresRepository) Credit(ctx context.Context, entry *Transaction) (int64, error) {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin credit: %w", err)
	}
	defer tx.Rollback(ctx)

	add := fmt.Sprintf(`
		INSERT INTO %s (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = %s.balance + EXCLUDED.balance,
			updated_at = now()
		RETURNING balance
	`, schema.UsersWallet.Table, schema.UsersWallet.Table)

	var balance int64
	if err := tx.QueryRow(ctx, add, entry.UserID, entry.Amount).Scan(&balance); err != nil {
		return 0, fmt.Errorf("postgres: failed to credit wallet: %w", err)
	}

	if err := repository.insertTransaction(ctx, tx, entry); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit credit: %w", err)
	}
	return balance, nil
}

// insertTransaction records a ledger entry inside the movement's
// transaction.
func (repository *postgresRepository) insertTransaction(ctx context.Context, tx pgx.Tx, entry *Transaction) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, type, amount, recipient, message, episode_title)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, schema.UsersWalletTransaction.Table)

	err := tx.QueryRow(ctx, query,
		entry.ID, entry.UserID, entry.Type, entry.Amount,
		entry.Recipient, entry.Message, entry.EpisodeTitle,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to record transaction: %w", err)
	}
	return nil
}

// ListTransactions returns ledger entries, newest first.
func (repository *postgresRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]*Transaction, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, type, amount,
			COALESCE(recipient, ''), COALESCE(message, ''), COALESCE(episode_title, ''),
			created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, schema.UsersWalletTransaction.Table)

	rows, err := repository.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*Transaction{}
	for rows.Next() {
		entry := &Transaction{}
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Type, &entry.Amount,
			&entry.Recipient, &entry.Message, &entry.EpisodeTitle, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan transaction: %w", err)
		}
		transactions = append(transactions, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: transaction iteration failed: %w", err)
	}
	return transactions, nil
}
