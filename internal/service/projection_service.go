package service

import (
	"github.com/tlecomte/finance-tracker-backend/internal/projection"
)

// ProjectionSummary is the projections endpoint payload: the assumptions that
// were fed into the engine alongside the sampled trajectory.
type ProjectionSummary struct {
	StartingValue       float64            `json:"startingValue"`
	MonthlyContribution float64            `json:"monthlyContribution"`
	MonthlyRatePercent  float64            `json:"monthlyRatePercent"`
	Points              []projection.Point `json:"points"`
}

// ProjectionService feeds the projection engine from the user's settings and
// current portfolio value. The engine itself is pure; this service only
// gathers its inputs.
type ProjectionService struct {
	positionService *PositionService
	settingsService *SettingsService
}

// NewProjectionService creates a new ProjectionService with the provided dependencies.
func NewProjectionService(
	positionService *PositionService,
	settingsService *SettingsService,
) *ProjectionService {
	return &ProjectionService{
		positionService: positionService,
		settingsService: settingsService,
	}
}

// Overrides are optional replacements for the projection inputs normally
// taken from the portfolio and settings. Nil fields keep the derived value.
type Overrides struct {
	StartingValue       *float64
	MonthlyContribution *float64
	MonthlyRatePercent  *float64
}

// Project runs the projection engine at the canonical year marks for a user,
// starting from the current portfolio value and the user's configured
// contribution and performance, with any overrides applied.
func (s *ProjectionService) Project(userID string, overrides Overrides) (ProjectionSummary, error) {
	settings, err := s.settingsService.GetSettings(userID)
	if err != nil {
		return ProjectionSummary{}, err
	}

	startingValue, err := s.positionService.TotalValue(userID)
	if err != nil {
		return ProjectionSummary{}, err
	}

	contribution := settings.MonthlyInvestment
	rate := settings.MonthlyPerformance

	if overrides.StartingValue != nil {
		startingValue = *overrides.StartingValue
	}
	if overrides.MonthlyContribution != nil {
		contribution = *overrides.MonthlyContribution
	}
	if overrides.MonthlyRatePercent != nil {
		rate = *overrides.MonthlyRatePercent
	}

	points, err := projection.Project(startingValue, contribution, rate, projection.DefaultYearMarks)
	if err != nil {
		return ProjectionSummary{}, err
	}

	return ProjectionSummary{
		StartingValue:       startingValue,
		MonthlyContribution: contribution,
		MonthlyRatePercent:  rate,
		Points:              points,
	}, nil
}
