package service

import (
	"fmt"

	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/ledger"
	"github.com/tlecomte/finance-tracker-backend/internal/model"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
)

// PositionService serves position reads and mark-price updates. Position
// quantities and cost basis are never written here; those only change through
// the TransactionService's ledger application.
type PositionService struct {
	positionRepo *repository.PositionRepository
}

// NewPositionService creates a new PositionService with the provided repository dependency.
func NewPositionService(positionRepo *repository.PositionRepository) *PositionService {
	return &PositionService{positionRepo: positionRepo}
}

// GetPositions retrieves a user's positions with their current valuations.
func (s *PositionService) GetPositions(userID string) ([]model.PositionResponse, error) {
	positions, err := s.positionRepo.GetPositions(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.PositionResponse, len(positions))
	for i, p := range positions {
		v := ledger.Valuate(p.Holding())
		responses[i] = model.PositionResponse{
			Position: p,
			Value:    v.Value,
			Gain:     v.Gain,
			GainPct:  v.GainPct,
		}
	}

	return responses, nil
}

// TotalValue returns the current market value of a user's whole portfolio,
// marking each position at its current price with average-cost fallback.
// This is the starting value fed into projections.
func (s *PositionService) TotalValue(userID string) (float64, error) {
	positions, err := s.positionRepo.GetPositions(userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, p := range positions {
		total += ledger.Valuate(p.Holding()).Value
	}
	return total, nil
}

// UpdateMarkPrice sets the externally supplied mark price on a position.
// Returns ErrPositionNotFound when the user holds nothing in the symbol.
func (s *PositionService) UpdateMarkPrice(userID, symbol string, price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price", apperrors.ErrNegativeAmount)
	}

	rows, err := s.positionRepo.UpdateMarkPrice(userID, symbol, price)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}
