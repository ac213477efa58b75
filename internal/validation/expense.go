package validation

import (
	"strings"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
)

// ValidateCreateExpense validates an expense creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - category: Must be non-empty (the taxonomy itself is owned by the frontend)
//   - amount: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateExpense(req request.CreateExpenseRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "category is required"
	}

	if req.Amount < 0.0 {
		errors["amount"] = "amount must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateExpense validates an expense update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateExpense(req request.UpdateExpenseRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		errors["category"] = "category is required"
	}
	if req.Amount != nil && *req.Amount < 0.0 {
		errors["amount"] = "amount must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
