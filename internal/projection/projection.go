// Package projection implements the compound-growth projection engine.
//
// The engine simulates monthly compounding of a portfolio under a fixed
// monthly contribution and a fixed monthly growth rate, and samples the
// trajectory at requested year marks. It performs no I/O; every call is
// deterministic and fully reproducible from its inputs.
package projection

import (
	"fmt"

	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
)

// DefaultYearMarks are the canonical horizons reported by the projections
// endpoint: 10 through 50 years in 10-year steps.
var DefaultYearMarks = []int{10, 20, 30, 40, 50}

// Point is one sampled step of a projected trajectory.
// CumulativeContribution counts the starting value plus every monthly
// contribution paid in up to the mark; Gain is the growth on top of that.
type Point struct {
	Years                  int     `json:"years"`
	Value                  float64 `json:"value"`
	CumulativeContribution float64 `json:"cumulativeContribution"`
	Gain                   float64 `json:"gain"`
}

// Project simulates monthly-compounded growth and returns one Point per
// requested year mark.
//
// monthlyRatePercent is a percentage (0.97 means 0.97% per month). Each
// simulated month first adds the contribution and then applies growth, so a
// month's contribution earns that month's growth.
//
// startingValue must be >= 0 and yearMarks must be a strictly ascending
// sequence of positive integers; violations return ErrInvalidProjectionInput.
func Project(startingValue, monthlyContribution, monthlyRatePercent float64, yearMarks []int) ([]Point, error) {
	if startingValue < 0 {
		return nil, fmt.Errorf("%w: starting value %f is negative", apperrors.ErrInvalidProjectionInput, startingValue)
	}
	if len(yearMarks) == 0 {
		return nil, fmt.Errorf("%w: no year marks", apperrors.ErrInvalidProjectionInput)
	}
	prev := 0
	for _, mark := range yearMarks {
		if mark <= prev {
			return nil, fmt.Errorf("%w: year marks must be strictly ascending positive integers", apperrors.ErrInvalidProjectionInput)
		}
		prev = mark
	}

	rate := monthlyRatePercent / 100
	horizon := yearMarks[len(yearMarks)-1]

	points := make([]Point, 0, len(yearMarks))
	value := startingValue
	next := 0

	for year := 1; year <= horizon; year++ {
		for month := 0; month < 12; month++ {
			value = (value + monthlyContribution) * (1 + rate)
		}
		if year == yearMarks[next] {
			contributed := startingValue + monthlyContribution*12*float64(year)
			points = append(points, Point{
				Years:                  year,
				Value:                  value,
				CumulativeContribution: contributed,
				Gain:                   value - contributed,
			})
			next++
		}
	}

	return points, nil
}
