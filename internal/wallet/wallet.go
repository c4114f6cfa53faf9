// Copyright (c) 2026 PodCentral. All rights reserved.

package wallet

import (
	"context"
	"time"
)

// # Domain Entities

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	// One-off payment attached to an episode, usually with a message
	TransactionBoost TransactionType = "boost"

	// Accumulated streaming sats for listening time
	TransactionStream TransactionType = "stream"

	// Credit added to the wallet
	TransactionTopUp TransactionType = "topup"
)

// Wallet is a user's sats balance and streaming preference.
//
// Balances are demo-grade: the ledger records local debits and credits
// only, no Lightning node sits behind it.
type Wallet struct {
	UserID        string    `json:"user_id"`
	Balance       int64     `json:"balance"`
	StreamingRate int64     `json:"streaming_rate"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Transaction is one entry in the wallet ledger.
type Transaction struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	Recipient    string          `json:"recipient,omitempty"`
	Message      string          `json:"message,omitempty"`
	EpisodeTitle string          `json:"episode_title,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// # Repository Contract

// Repository is the storage boundary for wallets and their ledgers.
type Repository interface {
	// GetWallet returns the user's wallet, creating it with the seed
	// balance on first access.
	GetWallet(ctx context.Context, userID string) (*Wallet, error)

	// SetStreamingRate updates the sats-per-minute preference.
	SetStreamingRate(ctx context.Context, userID string, rate int64) error

	// Debit atomically subtracts amount if the balance covers it and
	// records the ledger entry. Returns [ErrInsufficientBalance] via the
	// service when the balance is too low.
	Debit(ctx context.Context, transaction *Transaction) (int64, error)

	// Credit adds amount to the balance and records the ledger entry.
	Credit(ctx context.Context, transaction *Transaction) (int64, error)

	// ListTransactions returns ledger entries, newest first.
	ListTransactions(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}
