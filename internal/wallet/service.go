// Copyright (c) 2026 PodCentral. All rights reserved.

package wallet

import (
	"context"
	"errors"

	"github.com/podcentral/api/internal/platform/apperr"
	"github.com/podcentral/api/internal/platform/validate"
	"github.com/podcentral/api/pkg/uuid"
)

const (
	// maxBoostMessageLength bounds a boostagram message.
	maxBoostMessageLength = 500

	// maxStreamingRate bounds the sats-per-minute preference.
	maxStreamingRate = 10000

	// defaultTransactionLimit bounds the ledger page.
	defaultTransactionLimit = 50
)

// ErrInsufficientBalance is returned by the repository when a debit would
// take the balance below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// # Service Layer

// Service orchestrates wallet reads and ledger movements.
type Service struct {
	repository Repository
}

// NewService constructs a wallet [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// GetWallet returns the user's balance and streaming preference, seeding
// the wallet on first access.
func (service *Service) GetWallet(ctx context.Context, userID string) (*Wallet, error) {
	return service.repository.GetWallet(ctx, userID)
}

// SetStreamingRate updates the sats-per-minute streaming preference.
func (service *Service) SetStreamingRate(ctx context.Context, userID string, rate int64) error {
	validator := &validate.Validator{}
	validator.Custom("streaming_rate", rate < 1 || rate > maxStreamingRate, "Streaming rate must be between 1 and 10000 sats per minute")
	if err := validator.Err(); err != nil {
		return err
	}
	return service.repository.SetStreamingRate(ctx, userID, rate)
}

// ListTransactions returns the user's ledger, newest first.
func (service *Service) ListTransactions(ctx context.Context, userID string, limit int) ([]*Transaction, error) {
	if limit <= 0 || limit > defaultTransactionLimit {
		limit = defaultTransactionLimit
	}
	return service.repository.ListTransactions(ctx, userID, limit)
}

/*
SendBoost sends a one-off payment to a show with an optional message.

Description: The debit is a single conditional UPDATE, so two concurrent
boosts can never overdraw the balance. An uncovered amount maps to an
unprocessable-entity error rather than a server fault.

Returns:
  - int64: The balance after the debit.
*/
func (service *Service) SendBoost(ctx context.Context, userID string, amount int64, recipient, message, episodeTitle string) (int64, error) {
	validator := &validate.Validator{}
	validator.Custom("amount", amount < 1, "Boost amount must be positive")
	validator.Required("recipient", recipient)
	validator.MaxLen("message", message, maxBoostMessageLength)
	if err := validator.Err(); err != nil {
		return 0, err
	}

	balance, err := service.repository.Debit(ctx, &Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         TransactionBoost,
		Amount:       amount,
		Recipient:    recipient,
		Message:      message,
		EpisodeTitle: episodeTitle,
	})
	if errors.Is(err, ErrInsufficientBalance) {
		return 0, apperr.Unprocessable("Wallet balance does not cover this boost")
	}
	return balance, err
}

/*
StreamSats debits accumulated streaming sats for listening time.

Description: The player batches value-for-value streaming into periodic
debits instead of one per minute. Same conditional-update guarantee as
[Service.SendBoost]; when the balance runs out streaming simply stops.
*/
func (service *Service) StreamSats(ctx context.Context, userID string, amount int64, recipient, episodeTitle string) (int64, error) {
	validator := &validate.Validator{}
	validator.Custom("amount", amount < 1, "Stream amount must be positive")
	validator.Required("recipient", recipient)
	if err := validator.Err(); err != nil {
		return 0, err
	}

	balance, err := service.repository.Debit(ctx, &Transaction{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         TransactionStream,
		Amount:       amount,
		Recipient:    recipient,
		EpisodeTitle: episodeTitle,
	})
	if errors.Is(err, ErrInsufficientBalance) {
		return 0, apperr.Unprocessable("Wallet balance does not cover this stream")
	}
	return balance, err
}

// TopUp credits the wallet.
func (service *Service) TopUp(ctx context.Context, userID string, amount int64) (int64, error) {
	validator := &validate.Validator{}
	validator.Custom("amount", amount < 1, "Top-up amount must be positive")
	if err := validator.Err(); err != nil {
		return 0, err
	}

	return service.repository.Credit(ctx, &Transaction{
		ID:     uuid.New(),
		UserID: userID,
		Type:   TransactionTopUp,
		Amount: amount,
	})
}
