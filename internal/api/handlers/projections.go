package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tlecomte/finance-tracker-backend/internal/api/middleware"
	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

// ProjectionHandler handles HTTP requests for the projection endpoint.
type ProjectionHandler struct {
	projectionService *service.ProjectionService
}

// NewProjectionHandler creates a new ProjectionHandler with the provided service dependency.
func NewProjectionHandler(projectionService *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{
		projectionService: projectionService,
	}
}

// GetProjection handles GET requests to run the compound-growth projection at
// the ten-year marks. Defaults come from the caller's portfolio value and
// settings; the query parameters override them for what-if scenarios.
//
// Endpoint: GET /api/projection?startingValue=&monthlyContribution=&monthlyRatePercent=
// Response: 200 OK with ProjectionSummary
// Error: 400 Bad Request if an override is not a number or the inputs are invalid
// Error: 500 Internal Server Error if the computation fails
func (h *ProjectionHandler) GetProjection(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	overrides, err := projectionOverrides(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	summary, err := h.projectionService.Project(userID, overrides)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidProjectionInput) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidProjectionInput.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeProjection.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// projectionOverrides parses the optional numeric query parameters.
func projectionOverrides(r *http.Request) (service.Overrides, error) {
	var overrides service.Overrides

	params := map[string]**float64{
		"startingValue":       &overrides.StartingValue,
		"monthlyContribution": &overrides.MonthlyContribution,
		"monthlyRatePercent":  &overrides.MonthlyRatePercent,
	}

	for name, target := range params {
		v := r.URL.Query().Get(name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return service.Overrides{}, errors.New(name + " must be a number")
		}
		*target = &parsed
	}

	return overrides, nil
}
