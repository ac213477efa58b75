package handlers

import (
	"errors"
	"net/http"

	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

// QuoteHandler handles HTTP requests for the quote refresh endpoints.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler with the provided service dependency.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// UpdateConfig handles PUT requests to store the market-data provider
// configuration. The API token is encrypted before it reaches the database.
//
// Endpoint: PUT /api/quote/config
// Request Body: UpdateQuoteConfigRequest (apiToken, enabled)
// Response: 200 OK
// Error: 400 Bad Request if the body is invalid
// Error: 500 Internal Server Error if no encryption key is configured or the save fails
func (h *QuoteHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateQuoteConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.quoteService.SetConfig(req.APIToken, req.Enabled); err != nil {
		if errors.Is(err, apperrors.ErrEncryptionKeyMissing) {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrEncryptionKeyMissing.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to save quote configuration", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// RefreshQuotes handles POST requests to refresh mark prices for every held
// symbol immediately, outside the daily schedule.
//
// Endpoint: POST /api/quote/refresh
// Response: 200 OK with the number of symbols refreshed
// Error: 500 Internal Server Error if the refresh fails
func (h *QuoteHandler) RefreshQuotes(w http.ResponseWriter, _ *http.Request) {
	refreshed, err := h.quoteService.RefreshAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"refreshed": refreshed})
}
