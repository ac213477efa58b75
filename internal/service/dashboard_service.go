package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tlecomte/finance-tracker-backend/internal/ledger"
	"github.com/tlecomte/finance-tracker-backend/internal/model"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
)

// DashboardService assembles the landing-page aggregates from positions,
// settings, expenses and recaps. The four loads are independent, so they run
// concurrently.
type DashboardService struct {
	positionRepo    *repository.PositionRepository
	recapRepo       *repository.RecapRepository
	expenseService  *ExpenseService
	settingsService *SettingsService
}

// NewDashboardService creates a new DashboardService with the provided dependencies.
func NewDashboardService(
	positionRepo *repository.PositionRepository,
	recapRepo *repository.RecapRepository,
	expenseService *ExpenseService,
	settingsService *SettingsService,
) *DashboardService {
	return &DashboardService{
		positionRepo:    positionRepo,
		recapRepo:       recapRepo,
		expenseService:  expenseService,
		settingsService: settingsService,
	}
}

// GetDashboard computes the dashboard for a user as of the given time (which
// determines the current month and the trailing twelve-month window).
func (s *DashboardService) GetDashboard(ctx context.Context, userID string, now time.Time) (model.Dashboard, error) {
	var (
		positions []model.Position
		settings  model.Settings
		recaps    []model.MonthRecap
		expenses  float64
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		positions, err = s.positionRepo.GetPositions(userID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settingsService.GetSettings(userID)
		return err
	})
	g.Go(func() error {
		var err error
		recaps, err = s.recapRepo.GetRecaps(userID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenseService.MonthTotal(userID, int(now.Month()), now.Year())
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Dashboard{}, err
	}

	var value, cost float64
	for _, p := range positions {
		v := ledger.Valuate(p.Holding())
		value += v.Value
		cost += v.Cost
	}

	gain := value - cost
	performance := 0.0
	if cost > 0 {
		performance = gain / cost * 100
	}

	return model.Dashboard{
		PortfolioValue:     value,
		GlobalGain:         gain,
		GlobalPerformance:  performance,
		SavingsBalance:     settings.SavingsBalance,
		MonthlyPerformance: settings.MonthlyPerformance,
		MonthlyInvestment:  settings.MonthlyInvestment,
		MonthExpenses:      expenses,
		TwelveMonthSeries:  trailingInvested(recaps, now),
	}, nil
}

// trailingInvested builds the twelve-month invested series ending at the
// current month. Months without a recap contribute zero.
func trailingInvested(recaps []model.MonthRecap, now time.Time) []model.MonthPoint {
	byMonth := make(map[[2]int]model.MonthRecap, len(recaps))
	for _, r := range recaps {
		byMonth[[2]int{r.Year, r.Month}] = r
	}

	// Anchor on the first of the month so subtracting months never slides
	// into the wrong one on day-31 boundaries.
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	series := make([]model.MonthPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		month := base.AddDate(0, -i, 0)
		point := model.MonthPoint{Month: month.Format("Jan")}
		if r, ok := byMonth[[2]int{month.Year(), int(month.Month())}]; ok {
			point.Invested = r.Invested
		}
		series = append(series, point)
	}
	return series
}
