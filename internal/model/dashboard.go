package model

// MonthPoint is one month of the trailing twelve-month invested series shown
// on the dashboard. Month is a short label ("Jan", "Feb", ...).
type MonthPoint struct {
	Month    string  `json:"month"`
	Invested float64 `json:"invested"`
}

// Dashboard aggregates the landing-page numbers: portfolio valuation across
// all positions, savings balance, current-month spending and the trailing
// invested series.
type Dashboard struct {
	PortfolioValue     float64      `json:"portfolioValue"`
	GlobalGain         float64      `json:"globalGain"`
	GlobalPerformance  float64      `json:"globalPerformance"`
	SavingsBalance     float64      `json:"savingsBalance"`
	MonthlyPerformance float64      `json:"monthlyPerformance"`
	MonthlyInvestment  float64      `json:"monthlyInvestment"`
	MonthExpenses      float64      `json:"monthExpenses"`
	TwelveMonthSeries  []MonthPoint `json:"twelveMonthSeries"`
}
