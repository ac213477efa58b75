package repository

import (
	"database/sql"
	"fmt"

	"github.com/tlecomte/finance-tracker-backend/internal/model"
)

// RecapRepository provides data access methods for the month_recap table.
type RecapRepository struct {
	db *sql.DB
}

// NewRecapRepository creates a new RecapRepository with the provided database connection.
func NewRecapRepository(db *sql.DB) *RecapRepository {
	return &RecapRepository{db: db}
}

// GetRecaps retrieves all of a user's month recaps, most recent month first.
func (r *RecapRepository) GetRecaps(userID string) ([]model.MonthRecap, error) {
	query := `
		SELECT id, user_id, month, year, total_expenses, salary, invested, savings_deposits, remainder
		FROM month_recap
		WHERE user_id = ?
		ORDER BY year DESC, month DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query month_recap table: %w", err)
	}
	defer rows.Close()

	recaps := []model.MonthRecap{}
	for rows.Next() {
		var m model.MonthRecap
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Month,
			&m.Year,
			&m.TotalExpenses,
			&m.Salary,
			&m.Invested,
			&m.SavingsDeposits,
			&m.Remainder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan month_recap table results: %w", err)
		}
		recaps = append(recaps, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month_recap table: %w", err)
	}

	return recaps, nil
}

// GetRecap retrieves one recap by user, month and year. Returns
// sql.ErrNoRows when no recap exists for that month.
func (r *RecapRepository) GetRecap(userID string, month, year int) (model.MonthRecap, error) {
	query := `
		SELECT id, user_id, month, year, total_expenses, salary, invested, savings_deposits, remainder
		FROM month_recap
		WHERE user_id = ? AND month = ? AND year = ?
	`

	var m model.MonthRecap
	err := r.db.QueryRow(query, userID, month, year).Scan(
		&m.ID,
		&m.UserID,
		&m.Month,
		&m.Year,
		&m.TotalExpenses,
		&m.Salary,
		&m.Invested,
		&m.SavingsDeposits,
		&m.Remainder,
	)
	if err == sql.ErrNoRows {
		return model.MonthRecap{}, err
	}
	if err != nil {
		return model.MonthRecap{}, fmt.Errorf("failed to scan month_recap table results: %w", err)
	}

	return m, nil
}

// UpsertRecap inserts a recap or, when one already exists for the user, month
// and year, overwrites its figures.
func (r *RecapRepository) UpsertRecap(m *model.MonthRecap) error {
	query := `
		INSERT INTO month_recap (id, user_id, month, year, total_expenses, salary, invested, savings_deposits, remainder)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, month, year) DO UPDATE SET
			total_expenses = excluded.total_expenses,
			salary = excluded.salary,
			invested = excluded.invested,
			savings_deposits = excluded.savings_deposits,
			remainder = excluded.remainder
	`

	_, err := r.db.Exec(query,
		m.ID,
		m.UserID,
		m.Month,
		m.Year,
		m.TotalExpenses,
		m.Salary,
		m.Invested,
		m.SavingsDeposits,
		m.Remainder,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert month recap: %w", err)
	}
	return nil
}
