package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/model"
)

// ExpenseRepository provides data access methods for the expense table.
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository with the provided database connection.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// GetExpenses retrieves a user's expenses, newest first. When month and year
// are both non-zero, only expenses inside that calendar month are returned.
func (r *ExpenseRepository) GetExpenses(userID string, month, year int) ([]model.Expense, error) {
	query := `
		SELECT id, user_id, date, category, amount, description, created_at
		FROM expense
		WHERE user_id = ?
	`
	args := []any{userID}

	if month != 0 && year != 0 {
		start, end := monthBounds(month, year)
		query += ` AND date >= ? AND date <= ?`
		args = append(args, start, end)
	}

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense table: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		var dateStr, createdAtStr string
		var description sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&dateStr,
			&e.Category,
			&e.Amount,
			&description,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense table results: %w", err)
		}

		e.Date, err = ParseTime(dateStr)
		if err != nil || e.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		e.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || e.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		if description.Valid {
			e.Description = description.String
		}

		expenses = append(expenses, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense table: %w", err)
	}

	return expenses, nil
}

// SumForMonth returns the total expense amount for one user and calendar
// month. Months with no expenses sum to zero.
func (r *ExpenseRepository) SumForMonth(userID string, month, year int) (float64, error) {
	start, end := monthBounds(month, year)

	var total sql.NullFloat64
	err := r.db.QueryRow(
		`SELECT SUM(amount) FROM expense WHERE user_id = ? AND date >= ? AND date <= ?`,
		userID, start, end,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return total.Float64, nil
}

// InsertExpense creates a new expense record.
func (r *ExpenseRepository) InsertExpense(e *model.Expense) error {
	query := `
		INSERT INTO expense (id, user_id, date, category, amount, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var description sql.NullString
	if e.Description != "" {
		description = sql.NullString{String: e.Description, Valid: true}
	}

	_, err := r.db.Exec(query,
		e.ID,
		e.UserID,
		e.Date.Format("2006-01-02"),
		e.Category,
		e.Amount,
		description,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// UpdateExpense rewrites the mutable fields of an expense owned by the user.
// Returns the number of rows updated (0 when the expense does not exist or
// belongs to someone else).
func (r *ExpenseRepository) UpdateExpense(e *model.Expense) (int64, error) {
	query := `
		UPDATE expense
		SET date = ?, category = ?, amount = ?, description = ?
		WHERE id = ? AND user_id = ?
	`

	var description sql.NullString
	if e.Description != "" {
		description = sql.NullString{String: e.Description, Valid: true}
	}

	result, err := r.db.Exec(query,
		e.Date.Format("2006-01-02"),
		e.Category,
		e.Amount,
		description,
		e.ID,
		e.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows, nil
}

// DeleteExpense removes an expense owned by the user. Returns the number of
// rows deleted.
func (r *ExpenseRepository) DeleteExpense(userID, expenseID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM expense WHERE id = ? AND user_id = ?`, expenseID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows, nil
}

// monthBounds returns the inclusive first and last day of a calendar month in
// the YYYY-MM-DD format stored in the date columns.
func monthBounds(month, year int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}
