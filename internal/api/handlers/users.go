package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tlecomte/finance-tracker-backend/internal/api/middleware"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

// UserHandler handles HTTP requests for user provisioning.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler with the provided service dependency.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser handles POST requests to provision a user record for an identity
// issued by the upstream authentication layer.
//
// Endpoint: POST /api/user
// Request Body: CreateUserRequest (email, name)
// Response: 201 Created with User
// Error: 400 Bad Request if the body is invalid or the email is empty
// Error: 500 Internal Server Error if creation fails
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateUserRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "email is required")
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.Name)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create user", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, user)
}

// GetCurrentUser handles GET requests to retrieve the record for the
// authenticated caller.
//
// Endpoint: GET /api/user/me
// Response: 200 OK with User
// Error: 404 Not Found if no record exists for the forwarded identity
// Error: 500 Internal Server Error if retrieval fails
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	user, err := h.userService.GetUser(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve user", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}
