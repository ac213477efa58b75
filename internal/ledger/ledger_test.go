package ledger_test

import (
	"math"
	"testing"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/ledger"
)

func buy(symbol string, quantity, price, fee float64) ledger.Transaction {
	return ledger.Transaction{
		Kind:      ledger.KindBuy,
		Symbol:    symbol,
		Quantity:  quantity,
		UnitPrice: price,
		Fee:       fee,
		Date:      time.Now(),
	}
}

func sell(symbol string, quantity, price, fee float64) ledger.Transaction {
	return ledger.Transaction{
		Kind:      ledger.KindSell,
		Symbol:    symbol,
		Quantity:  quantity,
		UnitPrice: price,
		Fee:       fee,
		Date:      time.Now(),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestApply_Buy tests buy folding.
//
// WHY: The weighted-average cost blend is the core accounting rule. Every
// stored position is only correct if this blend is.
func TestApply_Buy(t *testing.T) {
	t.Run("first buy creates the position", func(t *testing.T) {
		pos := ledger.Apply(nil, buy("VWCE", 10, 100, 2))

		if pos == nil {
			t.Fatal("Expected a position, got nil")
		}
		if pos.Symbol != "VWCE" {
			t.Errorf("Expected symbol VWCE, got %s", pos.Symbol)
		}
		if pos.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %v", pos.Quantity)
		}
		if pos.AverageCost != 100 {
			t.Errorf("Expected average cost 100, got %v", pos.AverageCost)
		}
		if pos.TotalFees != 2 {
			t.Errorf("Expected total fees 2, got %v", pos.TotalFees)
		}
	})

	t.Run("second buy blends the average cost", func(t *testing.T) {
		pos := ledger.Apply(nil, buy("VWCE", 10, 100, 1))
		pos = ledger.Apply(pos, buy("VWCE", 10, 200, 1))

		if pos.Quantity != 20 {
			t.Errorf("Expected quantity 20, got %v", pos.Quantity)
		}
		// (100*10 + 200*10) / 20 = 150
		if !almostEqual(pos.AverageCost, 150) {
			t.Errorf("Expected average cost 150, got %v", pos.AverageCost)
		}
		if pos.TotalFees != 2 {
			t.Errorf("Expected total fees 2, got %v", pos.TotalFees)
		}
	})

	t.Run("blend is quantity weighted", func(t *testing.T) {
		pos := ledger.Apply(nil, buy("VWCE", 1, 100, 0))
		pos = ledger.Apply(pos, buy("VWCE", 3, 200, 0))

		// (100*1 + 200*3) / 4 = 175
		if !almostEqual(pos.AverageCost, 175) {
			t.Errorf("Expected average cost 175, got %v", pos.AverageCost)
		}
	})

	t.Run("buy preserves the mark price", func(t *testing.T) {
		mark := 120.0
		pos := &ledger.Position{Symbol: "VWCE", Quantity: 5, AverageCost: 100, CurrentPrice: &mark}

		pos = ledger.Apply(pos, buy("VWCE", 5, 110, 0))

		if pos.CurrentPrice == nil || *pos.CurrentPrice != 120 {
			t.Errorf("Expected mark price 120 to survive the buy, got %v", pos.CurrentPrice)
		}
	})
}

// TestApply_Sell tests sell folding.
//
// WHY: Sells must never touch the average cost, and closing behavior (zero,
// over-sell, sell into nothing) decides whether positions disappear cleanly.
func TestApply_Sell(t *testing.T) {
	t.Run("partial sell keeps the average cost", func(t *testing.T) {
		pos := ledger.Apply(nil, buy("VWCE", 10, 100, 0))
		pos = ledger.Apply(pos, sell("VWCE", 4, 180, 1))

		if pos == nil {
			t.Fatal("Expected an open position, got nil")
		}
		if pos.Quantity != 6 {
			t.Errorf("Expected quantity 6, got %v", pos.Quantity)
		}
		if pos.AverageCost != 100 {
			t.Errorf("Expected average cost unchanged at 100, got %v", pos.AverageCost)
		}
		if pos.TotalFees != 1 {
			t.Errorf("Expected total fees 1, got %v", pos.TotalFees)
		}
	})

	t.Run("selling the full quantity closes the position", func(t *testing.T) {
		pos := ledger.Apply(nil, buy("VWCE", 10, 100, 0))
		pos = ledger.Apply(pos, sell("VWCE", 10, 150, 0))

		if pos != nil {
			t.Errorf("Expected closed position, got %+v", pos)
		}
	})

	t.Run("over-selling clamps to closure", func(t *testing.T) {
		pos := ledger.Apply(nil, buy("VWCE", 10, 100, 0))
		pos = ledger.Apply(pos, sell("VWCE", 25, 150, 0))

		if pos != nil {
			t.Errorf("Expected closed position after over-sell, got %+v", pos)
		}
	})

	t.Run("sell against nothing is a no-op", func(t *testing.T) {
		pos := ledger.Apply(nil, sell("VWCE", 5, 100, 0))

		if pos != nil {
			t.Errorf("Expected nil, got %+v", pos)
		}
	})

	t.Run("input position is not mutated", func(t *testing.T) {
		original := &ledger.Position{Symbol: "VWCE", Quantity: 10, AverageCost: 100}

		ledger.Apply(original, sell("VWCE", 4, 150, 1))

		if original.Quantity != 10 || original.AverageCost != 100 || original.TotalFees != 0 {
			t.Errorf("Apply mutated its input: %+v", original)
		}
	})
}

// TestApply_Replay tests history replay.
//
// WHY: Position rebuilds depend on the fold being deterministic from an empty
// start, including histories that close and reopen a position.
func TestApply_Replay(t *testing.T) {
	t.Run("close and reopen starts fresh", func(t *testing.T) {
		var pos *ledger.Position
		history := []ledger.Transaction{
			buy("VWCE", 10, 100, 1),
			sell("VWCE", 10, 150, 1),
			buy("VWCE", 5, 300, 1),
		}

		for _, txn := range history {
			pos = ledger.Apply(pos, txn)
		}

		if pos == nil {
			t.Fatal("Expected a reopened position, got nil")
		}
		if pos.Quantity != 5 {
			t.Errorf("Expected quantity 5, got %v", pos.Quantity)
		}
		// The closed position's history does not bleed into the new one.
		if pos.AverageCost != 300 {
			t.Errorf("Expected average cost 300, got %v", pos.AverageCost)
		}
		if pos.TotalFees != 1 {
			t.Errorf("Expected total fees 1, got %v", pos.TotalFees)
		}
	})
}

// TestValuate tests position valuation.
//
// WHY: The dashboard and position listings are sums of these numbers; the
// mark-price fallback and the fee-inclusive cost basis are easy to get wrong.
func TestValuate(t *testing.T) {
	t.Run("values at the mark price when set", func(t *testing.T) {
		mark := 150.0
		pos := &ledger.Position{Symbol: "VWCE", Quantity: 10, AverageCost: 100, TotalFees: 5, CurrentPrice: &mark}

		v := ledger.Valuate(pos)

		if v.Value != 1500 {
			t.Errorf("Expected value 1500, got %v", v.Value)
		}
		if v.Cost != 1005 {
			t.Errorf("Expected cost 1005, got %v", v.Cost)
		}
		if !almostEqual(v.Gain, 495) {
			t.Errorf("Expected gain 495, got %v", v.Gain)
		}
		if !almostEqual(v.GainPct, 495.0/1005.0*100) {
			t.Errorf("Expected gain pct %v, got %v", 495.0/1005.0*100, v.GainPct)
		}
	})

	t.Run("falls back to average cost without a mark", func(t *testing.T) {
		pos := &ledger.Position{Symbol: "VWCE", Quantity: 10, AverageCost: 100}

		v := ledger.Valuate(pos)

		if v.Value != 1000 {
			t.Errorf("Expected value 1000, got %v", v.Value)
		}
		if v.Gain != 0 {
			t.Errorf("Expected zero gain without a mark, got %v", v.Gain)
		}
	})

	t.Run("fees create a loss at the fallback mark", func(t *testing.T) {
		pos := &ledger.Position{Symbol: "VWCE", Quantity: 10, AverageCost: 100, TotalFees: 7}

		v := ledger.Valuate(pos)

		if !almostEqual(v.Gain, -7) {
			t.Errorf("Expected gain -7, got %v", v.Gain)
		}
	})

	t.Run("nil position values to zero", func(t *testing.T) {
		v := ledger.Valuate(nil)

		if v.Value != 0 || v.Cost != 0 || v.Gain != 0 || v.GainPct != 0 {
			t.Errorf("Expected zero valuation, got %+v", v)
		}
	})
}
