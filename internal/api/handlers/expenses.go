package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tlecomte/finance-tracker-backend/internal/api/middleware"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/api/response"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
	"github.com/tlecomte/finance-tracker-backend/internal/validation"
)

// ExpenseHandler handles HTTP requests for expense endpoints.
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler with the provided service dependency.
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// ListExpenses handles GET requests to retrieve the caller's expenses for one
// month. The month and year query parameters default to the current month.
//
// Endpoint: GET /api/expense?month={1-12}&year={yyyy}
// Response: 200 OK with array of Expense
// Error: 400 Bad Request if month or year is out of range
// Error: 500 Internal Server Error if retrieval fails
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	month, year, err := monthYearParams(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	expenses, err := h.expenseService.GetExpenses(userID, month, year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveExpenses.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, expenses)
}

// CreateExpense handles POST requests to record an expense.
//
// Endpoint: POST /api/expense
// Request Body: CreateExpenseRequest (date, category, amount, description)
// Response: 201 Created with Expense
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	req, err := parseJSON[request.CreateExpenseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateExpense(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create expense", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, expense)
}

// UpdateExpense handles PUT requests to modify an expense. Only the fields
// present in the body are changed.
//
// Endpoint: PUT /api/expense/{uuid}
// Request Body: UpdateExpenseRequest (all fields optional)
// Response: 200 OK with updated Expense
// Error: 400 Bad Request if the expense ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if the caller owns no expense with this ID
// Error: 500 Internal Server Error if the update fails
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	expenseID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateExpenseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateExpense(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrExpenseNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrExpenseNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update expense", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, expense)
}

// DeleteExpense handles DELETE requests to remove an expense.
//
// Endpoint: DELETE /api/expense/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the expense ID is invalid (validated by middleware)
// Error: 404 Not Found if the caller owns no expense with this ID
// Error: 500 Internal Server Error if deletion fails
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	expenseID := chi.URLParam(r, "uuid")

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		if errors.Is(err, apperrors.ErrExpenseNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrExpenseNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete expense", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// monthYearParams reads the month and year query parameters, defaulting to
// the current month in UTC.
func monthYearParams(r *http.Request) (int, int, error) {
	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperrors.ErrInvalidMonth
		}
		month = parsed
	}
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, apperrors.ErrInvalidMonth
		}
		year = parsed
	}

	if err := validation.ValidateMonthYear(month, year); err != nil {
		return 0, 0, err
	}

	return month, year, nil
}
