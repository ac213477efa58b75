package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the trade_transaction
// table. Transactions are append-only: there are no update or delete methods,
// because the table is the audit trail the position table is derived from.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves all of a user's transactions, newest first.
func (r *TransactionRepository) GetTransactions(userID string) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, date, type, symbol, quantity, price, fee, created_at
		FROM trade_transaction
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var dateStr, createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&dateStr,
			&t.Type,
			&t.Symbol,
			&t.Quantity,
			&t.Price,
			&t.Fee,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || t.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionsForSymbol retrieves a user's transactions for one symbol in
// date-ascending order, the order in which the ledger fold must replay them.
func (r *TransactionRepository) GetTransactionsForSymbol(userID, symbol string) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, date, type, symbol, quantity, price, fee, created_at
		FROM trade_transaction
		WHERE user_id = ? AND symbol = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query, userID, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var dateStr, createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&dateStr,
			&t.Type,
			&t.Symbol,
			&t.Quantity,
			&t.Price,
			&t.Fee,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || t.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_transaction table: %w", err)
	}

	return transactions, nil
}

// InsertTransactionTx appends a transaction record inside an open database
// transaction, so the trade and the position it produces commit atomically.
func (r *TransactionRepository) InsertTransactionTx(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	query := `
		INSERT INTO trade_transaction (id, user_id, date, type, symbol, quantity, price, fee, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Symbol,
		t.Quantity,
		t.Price,
		t.Fee,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}
