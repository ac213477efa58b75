package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/model"
)

// PositionRepository provides data access methods for the position table.
// Positions are derived state: they are only ever written through the ledger
// fold in the transaction service, inside the same database transaction as
// the trade that produced them.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// GetPositions retrieves all positions for a user, ordered by symbol.
func (r *PositionRepository) GetPositions(userID string) ([]model.Position, error) {
	query := `
		SELECT id, user_id, symbol, quantity, average_cost, total_fees, current_price, updated_at
		FROM position
		WHERE user_id = ?
		ORDER BY symbol ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetPositionTx reads the position for one user and symbol inside an open
// database transaction. Returns (nil, nil) when the user holds nothing in the
// symbol. Reading through the transaction is what serializes concurrent
// ledger applications on the same position.
func (r *PositionRepository) GetPositionTx(ctx context.Context, tx *sql.Tx, userID, symbol string) (*model.Position, error) {
	query := `
		SELECT id, user_id, symbol, quantity, average_cost, total_fees, current_price, updated_at
		FROM position
		WHERE user_id = ? AND symbol = ?
	`

	row := tx.QueryRowContext(ctx, query, userID, symbol)
	p, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPositionTx writes a position inside an open database transaction,
// inserting or replacing on the (user_id, symbol) unique constraint.
func (r *PositionRepository) UpsertPositionTx(ctx context.Context, tx *sql.Tx, p model.Position) error {
	query := `
		INSERT INTO position (id, user_id, symbol, quantity, average_cost, total_fees, current_price, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, symbol) DO UPDATE SET
			quantity = excluded.quantity,
			average_cost = excluded.average_cost,
			total_fees = excluded.total_fees,
			updated_at = excluded.updated_at
	`

	var currentPrice sql.NullFloat64
	if p.CurrentPrice != nil {
		currentPrice = sql.NullFloat64{Float64: *p.CurrentPrice, Valid: true}
	}

	_, err := tx.ExecContext(ctx, query,
		p.ID, p.UserID, p.Symbol, p.Quantity, p.AverageCost, p.TotalFees,
		currentPrice, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}
	return nil
}

// DeletePositionTx removes a closed position inside an open database
// transaction. Deleting a row that does not exist is not an error.
func (r *PositionRepository) DeletePositionTx(ctx context.Context, tx *sql.Tx, userID, symbol string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM position WHERE user_id = ? AND symbol = ?`, userID, symbol)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// UpdateMarkPrice sets the externally supplied mark price for one user's
// position. Returns the number of rows updated (0 when the position does not
// exist).
func (r *PositionRepository) UpdateMarkPrice(userID, symbol string, price float64) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE position SET current_price = ?, updated_at = ? WHERE user_id = ? AND symbol = ?`,
		price, time.Now().UTC().Format(time.RFC3339), userID, symbol,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update mark price: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows, nil
}

// ListSymbols returns the distinct symbols held across all users. Used by the
// scheduled quote refresh, which fetches each symbol once and fans the price
// out to every holder.
func (r *PositionRepository) ListSymbols() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT symbol FROM position ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query position symbols: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position symbols: %w", err)
	}

	return symbols, nil
}

// UpdateMarkPriceAllHolders sets the mark price for every position in a
// symbol, across users. Returns the number of rows updated.
func (r *PositionRepository) UpdateMarkPriceAllHolders(symbol string, price float64) (int64, error) {
	result, err := r.db.Exec(
		`UPDATE position SET current_price = ?, updated_at = ? WHERE symbol = ?`,
		price, time.Now().UTC().Format(time.RFC3339), symbol,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update mark price for %s: %w", symbol, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPosition(s scanner) (model.Position, error) {
	var p model.Position
	var currentPrice sql.NullFloat64
	var updatedAtStr string

	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Symbol,
		&p.Quantity,
		&p.AverageCost,
		&p.TotalFees,
		&currentPrice,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Position{}, err
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position table results: %w", err)
	}

	if currentPrice.Valid {
		price := currentPrice.Float64
		p.CurrentPrice = &price
	}

	p.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil || p.UpdatedAt.IsZero() {
		return model.Position{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, nil
}
