package validation

import (
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
)

// ValidateUpdateSettings validates a settings update request.
// All fields are optional. Salary, investment and savings balance must not be
// negative when provided; monthly performance may be negative (a bear-market
// assumption is a valid projection input).
func ValidateUpdateSettings(req request.UpdateSettingsRequest) error {
	errors := make(map[string]string)

	if req.MonthlySalary != nil && *req.MonthlySalary < 0.0 {
		errors["monthlySalary"] = "monthlySalary must not be negative"
	}
	if req.MonthlyInvestment != nil && *req.MonthlyInvestment < 0.0 {
		errors["monthlyInvestment"] = "monthlyInvestment must not be negative"
	}
	if req.SavingsBalance != nil && *req.SavingsBalance < 0.0 {
		errors["savingsBalance"] = "savingsBalance must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
