package model

// MonthRecap is the month-end summary for one user, month and year. Remainder
// is what is left of the salary after expenses and the invested amount.
// At most one recap exists per user, month and year.
type MonthRecap struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	TotalExpenses   float64 `json:"totalExpenses"`
	Salary          float64 `json:"salary"`
	Invested        float64 `json:"invested"`
	SavingsDeposits float64 `json:"savingsDeposits"`
	Remainder       float64 `json:"remainder"`
}
