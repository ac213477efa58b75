package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tlecomte/finance-tracker-backend/internal/api/middleware"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
	"github.com/tlecomte/finance-tracker-backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// ListTransactions handles GET requests to retrieve the caller's trade history.
// Transactions are ordered newest first.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	transactions, err := h.transactionService.GetTransactions(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles POST requests to record a buy or sell.
// The position for the traded symbol is updated in the same database
// transaction: buys blend the average cost, sells reduce the quantity and
// close the position when it reaches zero.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (date, type, symbol, quantity, price, fee)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// RebuildPosition handles POST requests to recompute a position from its full
// trade history. Used to recover from manual database edits or drift.
//
// Endpoint: POST /api/transaction/rebuild/{symbol}
// Response: 200 OK with the rebuilt position, or 204 No Content when the
// replay closes the position
// Error: 500 Internal Server Error if the rebuild fails
func (h *TransactionHandler) RebuildPosition(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	symbol := chi.URLParam(r, "symbol")

	holding, err := h.transactionService.RebuildPosition(r.Context(), userID, symbol)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to rebuild position", err.Error())
		return
	}

	if holding == nil {
		response.RespondJSON(w, http.StatusNoContent, nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}
