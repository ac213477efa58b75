package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/ledger"
	"github.com/tlecomte/finance-tracker-backend/internal/model"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
)

// TransactionService records buy/sell transactions and keeps the derived
// position table consistent with them. Recording a transaction and applying
// the ledger fold to the stored position happen inside one database
// transaction, which is the serialization point for concurrent updates to the
// same (user, symbol) position.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	positionRepo    *repository.PositionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	positionRepo *repository.PositionRepository,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		positionRepo:    positionRepo,
	}
}

// GetTransactions retrieves all of a user's transactions, newest first.
func (s *TransactionService) GetTransactions(userID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(userID)
}

// CreateTransaction records a validated transaction and folds it into the
// user's position for the symbol. The caller must have validated the request
// (positive quantity, non-negative price and fee) before invoking.
//
// Transactions are applied in call order. Replay consistency is only
// guaranteed when callers submit them in chronological order; the service
// does not reorder by date.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req request.CreateTransactionRequest) (*model.Transaction, error) {
	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      transactionDate,
		Type:      req.Type,
		Symbol:    req.Symbol,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Fee:       req.Fee,
		CreatedAt: time.Now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.transactionRepo.InsertTransactionTx(ctx, tx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.applyToPosition(ctx, tx, transaction); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// applyToPosition runs the ledger fold step for one recorded transaction
// against the stored position, inside the caller's database transaction.
func (s *TransactionService) applyToPosition(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	stored, err := s.positionRepo.GetPositionTx(ctx, tx, t.UserID, t.Symbol)
	if err != nil {
		return fmt.Errorf("failed to load position: %w", err)
	}

	var holding *ledger.Position
	if stored != nil {
		holding = stored.Holding()
	}

	updated := ledger.Apply(holding, ledger.Transaction{
		Kind:      t.Type,
		Symbol:    t.Symbol,
		Quantity:  t.Quantity,
		UnitPrice: t.Price,
		Fee:       t.Fee,
		Date:      t.Date,
	})

	if updated == nil {
		// Position closed (or sell against nothing): no row may remain.
		return s.positionRepo.DeletePositionTx(ctx, tx, t.UserID, t.Symbol)
	}

	row := model.Position{
		ID:           uuid.New().String(),
		UserID:       t.UserID,
		Symbol:       updated.Symbol,
		Quantity:     updated.Quantity,
		AverageCost:  updated.AverageCost,
		TotalFees:    updated.TotalFees,
		CurrentPrice: updated.CurrentPrice,
	}
	if stored != nil {
		row.ID = stored.ID
	}

	return s.positionRepo.UpsertPositionTx(ctx, tx, row)
}

// RebuildPosition replays a user's full transaction history for one symbol
// through the ledger fold and rewrites the stored position to match. This is
// the recovery path when a position row is suspected to have drifted from the
// audit trail.
func (s *TransactionService) RebuildPosition(ctx context.Context, userID, symbol string) (*ledger.Position, error) {
	history, err := s.transactionRepo.GetTransactionsForSymbol(userID, symbol)
	if err != nil {
		return nil, err
	}

	var holding *ledger.Position
	for _, t := range history {
		holding = ledger.Apply(holding, ledger.Transaction{
			Kind:      t.Type,
			Symbol:    t.Symbol,
			Quantity:  t.Quantity,
			UnitPrice: t.Price,
			Fee:       t.Fee,
			Date:      t.Date,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if holding == nil {
		if err := s.positionRepo.DeletePositionTx(ctx, tx, userID, symbol); err != nil {
			return nil, err
		}
	} else {
		stored, err := s.positionRepo.GetPositionTx(ctx, tx, userID, symbol)
		if err != nil {
			return nil, err
		}
		row := model.Position{
			ID:          uuid.New().String(),
			UserID:      userID,
			Symbol:      holding.Symbol,
			Quantity:    holding.Quantity,
			AverageCost: holding.AverageCost,
			TotalFees:   holding.TotalFees,
		}
		if stored != nil {
			row.ID = stored.ID
			row.CurrentPrice = stored.CurrentPrice
		}
		if err := s.positionRepo.UpsertPositionTx(ctx, tx, row); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return holding, nil
}
