package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/model"
)

// SettingsRepository provides data access methods for the settings table.
// Each user has at most one settings row.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings retrieves the settings row for a user. Returns sql.ErrNoRows
// when the user has none yet; the service layer creates defaults in that case.
func (r *SettingsRepository) GetSettings(userID string) (model.Settings, error) {
	query := `
		SELECT id, user_id, monthly_salary, monthly_investment, monthly_performance, savings_balance
		FROM settings
		WHERE user_id = ?
	`

	var s model.Settings
	err := r.db.QueryRow(query, userID).Scan(
		&s.ID,
		&s.UserID,
		&s.MonthlySalary,
		&s.MonthlyInvestment,
		&s.MonthlyPerformance,
		&s.SavingsBalance,
	)
	if err == sql.ErrNoRows {
		return model.Settings{}, err
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to scan settings table results: %w", err)
	}

	return s, nil
}

// InsertSettings creates the settings row for a user.
func (r *SettingsRepository) InsertSettings(s *model.Settings) error {
	query := `
		INSERT INTO settings (id, user_id, monthly_salary, monthly_investment, monthly_performance, savings_balance, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		s.ID,
		s.UserID,
		s.MonthlySalary,
		s.MonthlyInvestment,
		s.MonthlyPerformance,
		s.SavingsBalance,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}
	return nil
}

// UpdateSettings rewrites the settings row for a user.
func (r *SettingsRepository) UpdateSettings(s *model.Settings) error {
	query := `
		UPDATE settings
		SET monthly_salary = ?, monthly_investment = ?, monthly_performance = ?, savings_balance = ?, updated_at = ?
		WHERE user_id = ?
	`

	_, err := r.db.Exec(query,
		s.MonthlySalary,
		s.MonthlyInvestment,
		s.MonthlyPerformance,
		s.SavingsBalance,
		time.Now().UTC().Format(time.RFC3339),
		s.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
