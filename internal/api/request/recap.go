package request

type UpsertRecapRequest struct {
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	TotalExpenses   float64 `json:"totalExpenses"`
	Salary          float64 `json:"salary"`
	Invested        float64 `json:"invested"`
	SavingsDeposits float64 `json:"savingsDeposits"`
	Remainder       float64 `json:"remainder"`
}
