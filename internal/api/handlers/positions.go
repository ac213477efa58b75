package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tlecomte/finance-tracker-backend/internal/api/middleware"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

// PositionHandler handles HTTP requests for position endpoints.
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler with the provided service dependency.
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// ListPositions handles GET requests to retrieve the caller's open positions
// with their current valuation (value, gain, gain percent).
//
// Endpoint: GET /api/position
// Response: 200 OK with array of PositionResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	positions, err := h.positionService.GetPositions(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// UpdateMarkPrice handles PUT requests to set the current market price of one
// of the caller's positions.
//
// Endpoint: PUT /api/position/{symbol}/price
// Request Body: UpdateMarkPriceRequest (price)
// Response: 200 OK
// Error: 400 Bad Request if the body is invalid or the price is negative
// Error: 404 Not Found if the caller holds no position in the symbol
// Error: 500 Internal Server Error if the update fails
func (h *PositionHandler) UpdateMarkPrice(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	symbol := chi.URLParam(r, "symbol")

	req, err := parseJSON[request.UpdateMarkPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.positionService.UpdateMarkPrice(userID, symbol, req.Price); err != nil {
		if errors.Is(err, apperrors.ErrNegativeAmount) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update mark price", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
