package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/testutil"
)

// TestDashboardService_GetDashboard tests the landing-page aggregation.
//
// WHY: The dashboard joins four independent loads; each number has exactly
// one source of truth and mixing up cost basis vs mark price or the month
// window shows the user wrong money.
func TestDashboardService_GetDashboard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	t.Run("aggregates portfolio value and gain across positions", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)
		user := testutil.CreateUser(t, db)

		// 10 @ 100 marked at 150, 5 @ 200 without a mark
		testutil.NewPosition(user.ID).WithSymbol("VWCE").WithQuantity(10).WithAverageCost(100).
			WithCurrentPrice(150).Build(t, db)
		testutil.NewPosition(user.ID).WithSymbol("AGGH").WithQuantity(5).WithAverageCost(200).Build(t, db)

		// Execute
		dashboard, err := svc.GetDashboard(ctx, user.ID, now)

		// Assert
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		// 10*150 + 5*200 (unmarked position valued at cost)
		if dashboard.PortfolioValue != 2500 {
			t.Errorf("Expected portfolio value 2500, got %v", dashboard.PortfolioValue)
		}
		// gain only from the marked position: 1500 - 1000
		if dashboard.GlobalGain != 500 {
			t.Errorf("Expected global gain 500, got %v", dashboard.GlobalGain)
		}
		// 500 / 2000 * 100
		if math.Abs(dashboard.GlobalPerformance-25) > 1e-9 {
			t.Errorf("Expected global performance 25, got %v", dashboard.GlobalPerformance)
		}
	})

	t.Run("includes settings and current-month expenses", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)
		user := testutil.CreateUser(t, db)

		testutil.NewSettings(user.ID).WithSavingsBalance(1500).WithMonthlyInvestment(465).
			WithMonthlyPerformance(0.97).Build(t, db)
		testutil.NewExpense(user.ID).WithDate(mustDate(t, "2025-03-10")).WithAmount(120).Build(t, db)
		testutil.NewExpense(user.ID).WithDate(mustDate(t, "2025-02-10")).WithAmount(999).Build(t, db)

		// Execute
		dashboard, err := svc.GetDashboard(ctx, user.ID, now)

		// Assert
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		if dashboard.SavingsBalance != 1500 {
			t.Errorf("Expected savings balance 1500, got %v", dashboard.SavingsBalance)
		}
		if dashboard.MonthlyInvestment != 465 || dashboard.MonthlyPerformance != 0.97 {
			t.Errorf("Expected settings passthrough, got %+v", dashboard)
		}
		if dashboard.MonthExpenses != 120 {
			t.Errorf("Expected current-month expenses 120, got %v", dashboard.MonthExpenses)
		}
	})

	t.Run("builds the trailing twelve-month invested series", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)
		user := testutil.CreateUser(t, db)

		testutil.NewRecap(user.ID, 3, 2025).WithInvested(465).Build(t, db)
		testutil.NewRecap(user.ID, 1, 2025).WithInvested(400).Build(t, db)
		// Thirteen months back, outside the window
		testutil.NewRecap(user.ID, 2, 2024).WithInvested(999).Build(t, db)

		// Execute
		dashboard, err := svc.GetDashboard(ctx, user.ID, now)

		// Assert
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		if len(dashboard.TwelveMonthSeries) != 12 {
			t.Fatalf("Expected 12 points, got %d", len(dashboard.TwelveMonthSeries))
		}

		last := dashboard.TwelveMonthSeries[11]
		if last.Month != "Mar" || last.Invested != 465 {
			t.Errorf("Expected March with 465 last, got %+v", last)
		}
		first := dashboard.TwelveMonthSeries[0]
		if first.Month != "Apr" || first.Invested != 0 {
			t.Errorf("Expected April 2024 with 0 first, got %+v", first)
		}

		jan := dashboard.TwelveMonthSeries[9]
		if jan.Month != "Jan" || jan.Invested != 400 {
			t.Errorf("Expected January with 400, got %+v", jan)
		}
	})

	t.Run("empty account produces a zero dashboard", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		dashboard, err := svc.GetDashboard(ctx, user.ID, now)

		// Assert
		if err != nil {
			t.Fatalf("GetDashboard() returned unexpected error: %v", err)
		}
		if dashboard.PortfolioValue != 0 || dashboard.GlobalGain != 0 || dashboard.GlobalPerformance != 0 {
			t.Errorf("Expected zero valuation, got %+v", dashboard)
		}
		// Settings were provisioned with defaults as a side effect
		if dashboard.MonthlyInvestment != 465 {
			t.Errorf("Expected default monthly investment 465, got %v", dashboard.MonthlyInvestment)
		}
	})
}
