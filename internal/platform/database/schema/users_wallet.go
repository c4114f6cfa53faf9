// Copyright (c) 2026 PodCentral. All rights reserved.

package schema

// UsersWalletTable represents the 'users.wallet' table
type UsersWalletTable struct {
	Table         string
	UserID        string
	Balance       string
	StreamingRate string
	UpdatedAt     string
}

// UsersWallet is the schema definition for users.wallet.
//
// Balance is in sats. The ledger only records local debits and credits; no
// real funds move through this table.
var UsersWallet = UsersWalletTable{
	Table:         "users.wallet",
	UserID:        "user_id",
	Balance:       "balance",
	StreamingRate: "streaming_rate",
	UpdatedAt:     "updated_at",
}

// UsersWalletTransactionTable represents the 'users.wallet_transaction' table
type UsersWalletTransactionTable struct {
	Table        string
	ID           string
	UserID       string
	Type         string
	Amount       string
	Recipient    string
	Message      string
	EpisodeTitle string
	CreatedAt    string
}

// UsersWalletTransaction is the schema definition for users.wallet_transaction.
var UsersWalletTransaction = UsersWalletTransactionTable{
	Table:        "users.wallet_transaction",
	ID:           "id",
	UserID:       "user_id",
	Type:         "type",
	Amount:       "amount",
	Recipient:    "recipient",
	Message:      "message",
	EpisodeTitle: "episode_title",
	CreatedAt:    "created_at",
}
