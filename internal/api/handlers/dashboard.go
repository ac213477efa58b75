package handlers

import (
	"net/http"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/api/middleware"
	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

// DashboardHandler handles HTTP requests for the dashboard endpoint.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the provided service dependency.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard handles GET requests to retrieve the landing-page aggregates:
// portfolio value and gain, savings balance, current-month expenses and the
// trailing twelve-month invested series.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with Dashboard
// Error: 500 Internal Server Error if any of the loads fails
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), userID, time.Now().UTC())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}
