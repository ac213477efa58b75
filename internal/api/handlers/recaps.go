package handlers

import (
	"net/http"

	"github.com/tlecomte/finance-tracker-backend/internal/api/middleware"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
	"github.com/tlecomte/finance-tracker-backend/internal/validation"
)

// RecapHandler handles HTTP requests for month recap endpoints.
type RecapHandler struct {
	recapService *service.RecapService
}

// NewRecapHandler creates a new RecapHandler with the provided service dependency.
func NewRecapHandler(recapService *service.RecapService) *RecapHandler {
	return &RecapHandler{
		recapService: recapService,
	}
}

// ListRecaps handles GET requests to retrieve the caller's month recaps,
// newest first.
//
// Endpoint: GET /api/recap
// Response: 200 OK with array of MonthRecap
// Error: 500 Internal Server Error if retrieval fails
func (h *RecapHandler) ListRecaps(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	recaps, err := h.recapService.GetRecaps(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveRecaps.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, recaps)
}

// UpsertRecap handles PUT requests to create or replace the recap for one
// month. There is at most one recap per user per month.
//
// Endpoint: PUT /api/recap
// Request Body: UpsertRecapRequest (month, year, totalExpenses, salary, invested, savingsDeposits, remainder)
// Response: 200 OK with MonthRecap
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the upsert fails
func (h *RecapHandler) UpsertRecap(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	req, err := parseJSON[request.UpsertRecapRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertRecap(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	recap, err := h.recapService.UpsertRecap(userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save recap", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, recap)
}

// ComputeRecap handles POST requests to compute a month's recap from the
// recorded expenses and the caller's settings, then store it.
//
// Endpoint: POST /api/recap/compute?month={1-12}&year={yyyy}
// Response: 200 OK with the computed MonthRecap
// Error: 400 Bad Request if month or year is out of range
// Error: 500 Internal Server Error if the computation fails
func (h *RecapHandler) ComputeRecap(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	month, year, err := monthYearParams(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	recap, err := h.recapService.ComputeRecap(userID, month, year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute recap", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, recap)
}
