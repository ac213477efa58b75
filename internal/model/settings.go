package model

// Settings defaults applied when a user has no settings record yet. These are
// the single source of the fallback numbers; nothing else re-derives them.
const (
	DefaultMonthlyInvestment  = 465.0
	DefaultMonthlyPerformance = 0.97 // percent per month
)

// Settings is the per-user savings configuration. MonthlyPerformance is a
// percentage value (0.97 means 0.97% per month), converted to a fractional
// rate only inside the projection engine.
type Settings struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"userId"`
	MonthlySalary      float64 `json:"monthlySalary"`
	MonthlyInvestment  float64 `json:"monthlyInvestment"`
	MonthlyPerformance float64 `json:"monthlyPerformance"`
	SavingsBalance     float64 `json:"savingsBalance"`
}

// DefaultSettings returns a fresh settings record for a user who has none.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:             userID,
		MonthlyInvestment:  DefaultMonthlyInvestment,
		MonthlyPerformance: DefaultMonthlyPerformance,
	}
}
