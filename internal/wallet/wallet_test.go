// Copyright (c) 2026 PodCentral. All rights reserved.

package wallet_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podcentral/api/internal/platform/apperr"
	"github.com/podcentral/api/internal/wallet"
)

// memRepository is an in-memory [wallet.Repository] enforcing the same
// no-overdraw rule as the conditional UPDATE in Postgres.
type memRepository struct {
	balance int64
	rate    int64
	ledger  []*wallet.Transaction
}

func newMemRepository(balance int64) *memRepository {
	return &memRepository{balance: balance, rate: 100}
}

func (repository *memRepository) GetWallet(_ context.Context, userID string) (*wallet.Wallet, error) {
	return &wallet.Wallet{UserID: userID, Balance: repository.balance, StreamingRate: repository.rate}, nil
}

func (repository *memRepository) SetStreamingRate(_ context.Context, _ string, rate int64) error {
	repository.rate = rate
	return nil
}

func (repository *memRepository) Debit(_ context.Context, entry *wallet.Transaction) (int64, error) {
	if repository.balance < entry.Amount {
		return 0, wallet.ErrInsufficientBalance
	}
	repository.balance -= entry.Amount
	repository.ledger = append(repository.ledger, entry)
	return repository.balance, nil
}

func (repository *memRepository) Credit(_ context.Context, entry *wallet.Transaction) (int64, error) {
	repository.balance += entry.Amount
	repository.ledger = append(repository.ledger, entry)
	return repository.balance, nil
}

func (repository *memRepository) ListTransactions(_ context.Context, _ string, _ int) ([]*wallet.Transaction, error) {
	return repository.ledger, nil
}

/*
TestService_SendBoost verifies the debit, the recorded ledger entry, and
the returned balance.
*/
func TestService_SendBoost(t *testing.T) {
	repository := newMemRepository(1000)
	service := wallet.NewService(repository)

	balance, err := service.SendBoost(context.Background(), "user-1", 250, "Tech Weekly", "great show!", "Episode 42")

	require.NoError(t, err)
	assert.Equal(t, int64(750), balance)

	require.Len(t, repository.ledger, 1)
	entry := repository.ledger[0]
	assert.Equal(t, wallet.TransactionBoost, entry.Type)
	assert.Equal(t, int64(250), entry.Amount)
	assert.Equal(t, "Tech Weekly", entry.Recipient)
	assert.NotEmpty(t, entry.ID)
}

/*
TestService_SendBoost_InsufficientBalance verifies an uncovered boost maps
to an unprocessable-entity error and records nothing.
*/
func TestService_SendBoost_InsufficientBalance(t *testing.T) {
	repository := newMemRepository(100)
	service := wallet.NewService(repository)

	_, err := service.SendBoost(context.Background(), "user-1", 500, "Tech Weekly", "", "")

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNPROCESSABLE", appError.Code)
	assert.Empty(t, repository.ledger)
}

/*
TestService_SendBoost_Validation verifies amount, recipient, and message
guards run before any debit.
*/
func TestService_SendBoost_Validation(t *testing.T) {
	testCases := []struct {
		name      string
		amount    int64
		recipient string
		message   string
	}{
		{name: "zero amount", amount: 0, recipient: "Tech Weekly"},
		{name: "negative amount", amount: -10, recipient: "Tech Weekly"},
		{name: "missing recipient", amount: 100, recipient: ""},
		{name: "oversized message", amount: 100, recipient: "Tech Weekly", message: strings.Repeat("x", 501)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			repository := newMemRepository(1000)
			service := wallet.NewService(repository)

			_, err := service.SendBoost(context.Background(), "user-1", testCase.amount, testCase.recipient, testCase.message, "")

			assert.Error(t, err)
			assert.Empty(t, repository.ledger)
			assert.Equal(t, int64(1000), repository.balance)
		})
	}
}

/*
TestService_StreamSats verifies the batched streaming debit records a
stream ledger entry.
*/
func TestService_StreamSats(t *testing.T) {
	repository := newMemRepository(1000)
	service := wallet.NewService(repository)

	balance, err := service.StreamSats(context.Background(), "user-1", 300, "Tech Weekly", "Episode 42")

	require.NoError(t, err)
	assert.Equal(t, int64(700), balance)
	require.Len(t, repository.ledger, 1)
	assert.Equal(t, wallet.TransactionStream, repository.ledger[0].Type)
}

/*
TestService_TopUp verifies credits raise the balance and land in the
ledger.
*/
func TestService_TopUp(t *testing.T) {
	repository := newMemRepository(100)
	service := wallet.NewService(repository)

	balance, err := service.TopUp(context.Background(), "user-1", 5000)

	require.NoError(t, err)
	assert.Equal(t, int64(5100), balance)
	require.Len(t, repository.ledger, 1)
	assert.Equal(t, wallet.TransactionTopUp, repository.ledger[0].Type)

	_, err = service.TopUp(context.Background(), "user-1", 0)
	assert.Error(t, err)
}

/*
TestService_SetStreamingRate verifies the range guard.
*/
func TestService_SetStreamingRate(t *testing.T) {
	repository := newMemRepository(1000)
	service := wallet.NewService(repository)

	require.NoError(t, service.SetStreamingRate(context.Background(), "user-1", 25))
	assert.Equal(t, int64(25), repository.rate)

	assert.Error(t, service.SetStreamingRate(context.Background(), "user-1", 0))
	assert.Error(t, service.SetStreamingRate(context.Background(), "user-1", 10001))
}
