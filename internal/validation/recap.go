package validation

import (
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
)

// ValidateUpsertRecap validates a month recap upsert request.
//
// Required fields:
//   - month: Must be between 1 and 12
//   - year: Must be positive
//
// The monetary fields are accepted as given; a recap records what actually
// happened that month, including negative remainders.
func ValidateUpsertRecap(req request.UpsertRecapRequest) error {
	errors := make(map[string]string)

	if req.Month < 1 || req.Month > 12 {
		errors["month"] = "month must be between 1 and 12"
	}

	if req.Year <= 0 {
		errors["year"] = "year must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateMonthYear validates a month/year pair supplied as query parameters.
func ValidateMonthYear(month, year int) error {
	errors := make(map[string]string)

	if month < 1 || month > 12 {
		errors["month"] = "month must be between 1 and 12"
	}
	if year <= 0 {
		errors["year"] = "year must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
