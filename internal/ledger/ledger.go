// Package ledger implements the portfolio position reducer.
//
// A position is derived state: it is the fold of the ordered buy/sell
// transaction history for one user and one symbol. Apply is the fold step and
// is pure; the caller owns persistence and must serialize concurrent updates
// to the same position at the storage boundary.
package ledger

import "time"

// Transaction kinds.
const (
	KindBuy  = "buy"
	KindSell = "sell"
)

// Position is a user's current holding in one symbol. AverageCost is the
// quantity-weighted average unit purchase price, exclusive of fees. TotalFees
// is the sum of all fees paid on buys and sells of this symbol to date.
// CurrentPrice is the last externally supplied mark price; nil when no mark
// has been set.
type Position struct {
	Symbol       string   `json:"symbol"`
	Quantity     float64  `json:"quantity"`
	AverageCost  float64  `json:"averageCost"`
	TotalFees    float64  `json:"totalFees"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
}

// Transaction is a single immutable buy or sell event.
type Transaction struct {
	Kind      string
	Symbol    string
	Quantity  float64
	UnitPrice float64
	Fee       float64
	Date      time.Time
}

// Valuation is a pure projection of a position's current worth. Cost includes
// accumulated fees; Value marks the holding at CurrentPrice, falling back to
// AverageCost when no mark price is set.
type Valuation struct {
	Value   float64 `json:"value"`
	Cost    float64 `json:"cost"`
	Gain    float64 `json:"gain"`
	GainPct float64 `json:"gainPct"`
}

// Apply folds one transaction into a position and returns the new position.
// A nil position means the user holds nothing in the symbol.
//
// Buys blend the purchase into the running weighted-average cost. Sells reduce
// quantity and accumulate the fee but leave the average cost untouched;
// realized gains are not tracked. A sell that brings quantity to zero or below
// closes the position (returns nil), and a sell against a nil position is a
// pass-through no-op so that replaying history never faults. Callers must
// reject quantity <= 0, negative prices, and negative fees before calling.
//
// Apply never mutates its input; replaying the full ordered history from a nil
// position reproduces the persisted state exactly.
func Apply(pos *Position, txn Transaction) *Position {
	switch txn.Kind {
	case KindBuy:
		if pos == nil {
			return &Position{
				Symbol:      txn.Symbol,
				Quantity:    txn.Quantity,
				AverageCost: txn.UnitPrice,
				TotalFees:   txn.Fee,
			}
		}
		newQuantity := pos.Quantity + txn.Quantity
		return &Position{
			Symbol:       pos.Symbol,
			Quantity:     newQuantity,
			AverageCost:  (pos.AverageCost*pos.Quantity + txn.UnitPrice*txn.Quantity) / newQuantity,
			TotalFees:    pos.TotalFees + txn.Fee,
			CurrentPrice: pos.CurrentPrice,
		}
	case KindSell:
		if pos == nil {
			return nil
		}
		newQuantity := pos.Quantity - txn.Quantity
		if newQuantity <= 0 {
			// Over-selling clamps to closure; the negative remainder is discarded.
			return nil
		}
		return &Position{
			Symbol:       pos.Symbol,
			Quantity:     newQuantity,
			AverageCost:  pos.AverageCost,
			TotalFees:    pos.TotalFees + txn.Fee,
			CurrentPrice: pos.CurrentPrice,
		}
	}
	return pos
}

// Valuate computes the current valuation of a position. A nil position values
// to zero across the board.
func Valuate(pos *Position) Valuation {
	if pos == nil {
		return Valuation{}
	}

	mark := pos.AverageCost
	if pos.CurrentPrice != nil {
		mark = *pos.CurrentPrice
	}

	value := pos.Quantity * mark
	cost := pos.Quantity*pos.AverageCost + pos.TotalFees
	gain := value - cost

	gainPct := 0.0
	if cost > 0 {
		gainPct = gain / cost * 100
	}

	return Valuation{
		Value:   value,
		Cost:    cost,
		Gain:    gain,
		GainPct: gainPct,
	}
}
