package request

type UpdateSettingsRequest struct {
	MonthlySalary      *float64 `json:"monthlySalary,omitempty"`
	MonthlyInvestment  *float64 `json:"monthlyInvestment,omitempty"`
	MonthlyPerformance *float64 `json:"monthlyPerformance,omitempty"`
	SavingsBalance     *float64 `json:"savingsBalance,omitempty"`
}
