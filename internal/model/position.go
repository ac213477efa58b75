package model

import (
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/ledger"
)

// Position represents a stored position row. The numeric fields mirror
// ledger.Position; ID, UserID and UpdatedAt are persistence concerns the
// ledger never sees.
type Position struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Symbol       string    `json:"symbol"`
	Quantity     float64   `json:"quantity"`
	AverageCost  float64   `json:"averageCost"`
	TotalFees    float64   `json:"totalFees"`
	CurrentPrice *float64  `json:"currentPrice,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// Holding converts the stored row into the ledger's pure representation.
func (p Position) Holding() *ledger.Position {
	return &ledger.Position{
		Symbol:       p.Symbol,
		Quantity:     p.Quantity,
		AverageCost:  p.AverageCost,
		TotalFees:    p.TotalFees,
		CurrentPrice: p.CurrentPrice,
	}
}

// PositionResponse is a position enriched with its current valuation for API
// responses.
type PositionResponse struct {
	Position
	Value   float64 `json:"value"`
	Gain    float64 `json:"gain"`
	GainPct float64 `json:"gainPct"`
}
