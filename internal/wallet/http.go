// Copyright (c) 2026 PodCentral. All rights reserved.

/*
Package wallet implements the demo value-for-value wallet: a sats
balance, a streaming rate preference, and a local transaction ledger
for boosts, streamed sats, and top-ups.

No Lightning node sits behind this; balances are seeded and moved
entirely inside the database.
*/
package wallet

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/podcentral/api/internal/platform/middleware"
	requestutil "github.com/podcentral/api/internal/platform/request"
	"github.com/podcentral/api/internal/platform/respond"
	"github.com/podcentral/api/pkg/convert"
)

// # Handler Implementation

// Handler implements the HTTP layer for the wallet.
type Handler struct {
	service *Service
}

// NewHandler constructs a wallet [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the wallet endpoints. Every route
// requires an authenticated user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getWallet)
	router.Put("/streaming-rate", handler.setStreamingRate)
	router.Get("/transactions", handler.listTransactions)
	router.Post("/boost", handler.sendBoost)
	router.Post("/stream", handler.streamSats)
	router.Post("/topup", handler.topUp)

	return router
}

// # Endpoints

/*
GET /api/v1/wallet.

Description: The user's balance and streaming rate. First access seeds
the wallet with the demo balance.

Response:
  - 200: Wallet
*/
func (handler *Handler) getWallet(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userWallet, err := handler.service.GetWallet(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, userWallet)
}

// streamingRateRequest carries the sats-per-minute preference.
type streamingRateRequest struct {
	StreamingRate int64 `json:"streaming_rate"`
}

/*
PUT /api/v1/wallet/streaming-rate.

Request:
  - streaming_rate: int (1 to 10000 sats per minute)

Response:
  - 204: Stored
  - 400: ErrValidation: Rate out of range
*/
func (handler *Handler) setStreamingRate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload streamingRateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetStreamingRate(request.Context(), userID, payload.StreamingRate); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/wallet/transactions.

Description: The ledger, newest first.

Request:
  - limit: int (default 50)

Response:
  - 200: []Transaction
*/
func (handler *Handler) listTransactions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit := convert.ToIntD(request.URL.Query().Get("limit"), defaultTransactionLimit)

	transactions, err := handler.service.ListTransactions(request.Context(), userID, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, transactions)
}

// boostRequest is the inbound JSON schema for a boost.
type boostRequest struct {
	Amount       int64  `json:"amount"`
	Recipient    string `json:"recipient"`
	Message      string `json:"message"`
	EpisodeTitle string `json:"episode_title"`
}

// balanceResponse reports the balance after a movement.
type balanceResponse struct {
	Balance int64 `json:"balance"`
}

/*
POST /api/v1/wallet/boost.

Description: Sends a one-off payment to a show, optionally with a
boostagram message.

Request:
  - amount: int (sats, required, positive)
  - recipient: string (required, show or host name)
  - message: string (optional, at most 500 characters)
  - episode_title: string (optional)

Response:
  - 200: balance: Balance after the boost
  - 400: ErrValidation: Bad amount, recipient, or message
  - 422: ErrUnprocessable: Balance does not cover the amount
*/
func (handler *Handler) sendBoost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload boostRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	balance, err := handler.service.SendBoost(request.Context(), userID,
		payload.Amount, payload.Recipient, payload.Message, payload.EpisodeTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, balanceResponse{Balance: balance})
}

// streamRequest is the inbound JSON schema for batched streaming sats.
type streamRequest struct {
	Amount       int64  `json:"amount"`
	Recipient    string `json:"recipient"`
	EpisodeTitle string `json:"episode_title"`
}

/*
POST /api/v1/wallet/stream.

Description: Debits sats accumulated by value-for-value streaming while
listening. The player batches these instead of posting every minute.

Response:
  - 200: balance: Balance after the debit
  - 422: ErrUnprocessable: Balance exhausted
*/
func (handler *Handler) streamSats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload streamRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	balance, err := handler.service.StreamSats(request.Context(), userID,
		payload.Amount, payload.Recipient, payload.EpisodeTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, balanceResponse{Balance: balance})
}

// topUpRequest is the inbound JSON schema for a credit.
type topUpRequest struct {
	Amount int64 `json:"amount"`
}

/*
POST /api/v1/wallet/topup.

Response:
  - 200: balance: Balance after the credit
  - 400: ErrValidation: Non-positive amount
*/
func (handler *Handler) topUp(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload topUpRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	balance, err := handler.service.TopUp(request.Context(), userID, payload.Amount)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, balanceResponse{Balance: balance})
}
