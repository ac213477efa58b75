package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
	"github.com/tlecomte/finance-tracker-backend/internal/testutil"
)

// mustDate parses an ISO date or fails the test.
func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", value, err)
	}
	return date
}

// TestTransactionService_CreateTransaction tests recording trades and the
// derived position updates.
//
// WHY: The transaction log and the position table must never disagree. Every
// combination of buy/sell against an existing or absent position has to leave
// the position table in the state the ledger fold defines.
func TestTransactionService_CreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("first buy creates a position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		created, err := svc.CreateTransaction(ctx, user.ID, request.CreateTransactionRequest{
			Date: "2025-03-10", Type: "buy", Symbol: "VWCE", Quantity: 10, Price: 100, Fee: 2,
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Error("Expected transaction to get an ID")
		}

		testutil.AssertRowCount(t, db, "trade_transaction", 1)
		testutil.AssertRowCount(t, db, "position", 1)

		positions, err := repository.NewPositionRepository(db).GetPositions(user.ID)
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if positions[0].Symbol != "VWCE" || positions[0].Quantity != 10 || positions[0].AverageCost != 100 {
			t.Errorf("Unexpected position after first buy: %+v", positions[0])
		}
		if positions[0].TotalFees != 2 {
			t.Errorf("Expected total fees 2, got %v", positions[0].TotalFees)
		}
	})

	t.Run("second buy blends the average cost", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		for _, req := range []request.CreateTransactionRequest{
			{Date: "2025-01-05", Type: "buy", Symbol: "VWCE", Quantity: 10, Price: 100},
			{Date: "2025-02-05", Type: "buy", Symbol: "VWCE", Quantity: 10, Price: 200},
		} {
			if _, err := svc.CreateTransaction(ctx, user.ID, req); err != nil {
				t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
			}
		}

		// Assert
		testutil.AssertRowCount(t, db, "position", 1)

		positions, _ := repository.NewPositionRepository(db).GetPositions(user.ID)
		if positions[0].Quantity != 20 {
			t.Errorf("Expected quantity 20, got %v", positions[0].Quantity)
		}
		if positions[0].AverageCost != 150 {
			t.Errorf("Expected blended average cost 150, got %v", positions[0].AverageCost)
		}
	})

	t.Run("sell reduces quantity without touching the average cost", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		for _, req := range []request.CreateTransactionRequest{
			{Date: "2025-01-05", Type: "buy", Symbol: "VWCE", Quantity: 10, Price: 100, Fee: 1},
			{Date: "2025-02-05", Type: "sell", Symbol: "VWCE", Quantity: 4, Price: 180, Fee: 1},
		} {
			if _, err := svc.CreateTransaction(ctx, user.ID, req); err != nil {
				t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
			}
		}

		// Assert
		positions, _ := repository.NewPositionRepository(db).GetPositions(user.ID)
		if positions[0].Quantity != 6 {
			t.Errorf("Expected quantity 6, got %v", positions[0].Quantity)
		}
		if positions[0].AverageCost != 100 {
			t.Errorf("Expected average cost unchanged at 100, got %v", positions[0].AverageCost)
		}
		if positions[0].TotalFees != 2 {
			t.Errorf("Expected fees accumulated to 2, got %v", positions[0].TotalFees)
		}
	})

	t.Run("selling everything deletes the position row", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		for _, req := range []request.CreateTransactionRequest{
			{Date: "2025-01-05", Type: "buy", Symbol: "VWCE", Quantity: 10, Price: 100},
			{Date: "2025-02-05", Type: "sell", Symbol: "VWCE", Quantity: 10, Price: 150},
		} {
			if _, err := svc.CreateTransaction(ctx, user.ID, req); err != nil {
				t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
			}
		}

		// Assert: the audit trail survives, the derived row does not
		testutil.AssertRowCount(t, db, "trade_transaction", 2)
		testutil.AssertRowCount(t, db, "position", 0)
	})

	t.Run("over-selling closes the position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		for _, req := range []request.CreateTransactionRequest{
			{Date: "2025-01-05", Type: "buy", Symbol: "VWCE", Quantity: 10, Price: 100},
			{Date: "2025-02-05", Type: "sell", Symbol: "VWCE", Quantity: 25, Price: 150},
		} {
			if _, err := svc.CreateTransaction(ctx, user.ID, req); err != nil {
				t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
			}
		}

		// Assert
		testutil.AssertRowCount(t, db, "position", 0)
	})

	t.Run("sell with no position records the trade and leaves no position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		_, err := svc.CreateTransaction(ctx, user.ID, request.CreateTransactionRequest{
			Date: "2025-02-05", Type: "sell", Symbol: "VWCE", Quantity: 5, Price: 150,
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "trade_transaction", 1)
		testutil.AssertRowCount(t, db, "position", 0)
	})

	t.Run("positions are isolated per user and symbol", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		alice := testutil.CreateUser(t, db)
		bob := testutil.CreateUser(t, db)

		// Execute
		if _, err := svc.CreateTransaction(ctx, alice.ID, request.CreateTransactionRequest{
			Date: "2025-01-05", Type: "buy", Symbol: "VWCE", Quantity: 10, Price: 100,
		}); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}
		if _, err := svc.CreateTransaction(ctx, bob.ID, request.CreateTransactionRequest{
			Date: "2025-01-05", Type: "buy", Symbol: "VWCE", Quantity: 3, Price: 50,
		}); err != nil {
			t.Fatalf("CreateTransaction() returned unexpected error: %v", err)
		}

		// Assert
		testutil.AssertRowCount(t, db, "position", 2)

		alicePositions, _ := repository.NewPositionRepository(db).GetPositions(alice.ID)
		if len(alicePositions) != 1 || alicePositions[0].Quantity != 10 {
			t.Errorf("Unexpected positions for first user: %+v", alicePositions)
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		// Execute
		_, err := svc.CreateTransaction(ctx, user.ID, request.CreateTransactionRequest{
			Date: "05-01-2025", Type: "buy", Symbol: "VWCE", Quantity: 10, Price: 100,
		})

		// Assert
		if err == nil {
			t.Error("Expected error for malformed date, got nil")
		}
		testutil.AssertRowCount(t, db, "trade_transaction", 0)
	})
}

// TestTransactionService_GetTransactions tests history retrieval ordering.
func TestTransactionService_GetTransactions(t *testing.T) {
	t.Run("returns the user's transactions newest first", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)

		jan := testutil.NewTradeTransaction(user.ID).WithSymbol("VWCE").WithDate(mustDate(t, "2025-01-05")).Build(t, db)
		mar := testutil.NewTradeTransaction(user.ID).WithSymbol("VWCE").WithDate(mustDate(t, "2025-03-05")).Build(t, db)
		testutil.NewTradeTransaction(other.ID).WithSymbol("VWCE").Build(t, db)

		// Execute
		transactions, err := svc.GetTransactions(user.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(transactions) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(transactions))
		}
		if transactions[0].ID != mar.ID || transactions[1].ID != jan.ID {
			t.Errorf("Expected newest-first ordering, got %s then %s", transactions[0].ID, transactions[1].ID)
		}
	})
}

// TestTransactionService_RebuildPosition tests the replay recovery path.
//
// WHY: Rebuild is the escape hatch when the derived position drifts from the
// audit trail; it must reproduce exactly what incremental folding would have.
func TestTransactionService_RebuildPosition(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites a drifted position from history", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		testutil.NewTradeTransaction(user.ID).WithSymbol("VWCE").WithDate(mustDate(t, "2025-01-05")).
			WithType("buy").WithQuantity(10).WithPrice(100).Build(t, db)
		testutil.NewTradeTransaction(user.ID).WithSymbol("VWCE").WithDate(mustDate(t, "2025-02-05")).
			WithType("sell").WithQuantity(4).WithPrice(150).Build(t, db)

		// A position row that disagrees with the history
		testutil.NewPosition(user.ID).WithSymbol("VWCE").WithQuantity(99).WithAverageCost(1).
			WithCurrentPrice(130).Build(t, db)

		// Execute
		holding, err := svc.RebuildPosition(ctx, user.ID, "VWCE")

		// Assert
		if err != nil {
			t.Fatalf("RebuildPosition() returned unexpected error: %v", err)
		}
		if holding == nil {
			t.Fatal("Expected a rebuilt position, got nil")
		}
		if holding.Quantity != 6 || holding.AverageCost != 100 {
			t.Errorf("Unexpected rebuilt holding: %+v", holding)
		}

		positions, _ := repository.NewPositionRepository(db).GetPositions(user.ID)
		if positions[0].Quantity != 6 {
			t.Errorf("Expected stored quantity 6, got %v", positions[0].Quantity)
		}
		// The externally supplied mark price survives the rebuild.
		if positions[0].CurrentPrice == nil || *positions[0].CurrentPrice != 130 {
			t.Errorf("Expected mark price 130 to survive, got %v", positions[0].CurrentPrice)
		}
	})

	t.Run("deletes the row when the history nets to zero", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		user := testutil.CreateUser(t, db)

		testutil.NewTradeTransaction(user.ID).WithSymbol("VWCE").WithDate(mustDate(t, "2025-01-05")).
			WithType("buy").WithQuantity(10).WithPrice(100).Build(t, db)
		testutil.NewTradeTransaction(user.ID).WithSymbol("VWCE").WithDate(mustDate(t, "2025-02-05")).
			WithType("sell").WithQuantity(10).WithPrice(150).Build(t, db)

		testutil.NewPosition(user.ID).WithSymbol("VWCE").WithQuantity(10).Build(t, db)

		// Execute
		holding, err := svc.RebuildPosition(ctx, user.ID, "VWCE")

		// Assert
		if err != nil {
			t.Fatalf("RebuildPosition() returned unexpected error: %v", err)
		}
		if holding != nil {
			t.Errorf("Expected nil holding, got %+v", holding)
		}
		testutil.AssertRowCount(t, db, "position", 0)
	})
}
