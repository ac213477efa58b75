package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/model"
)

// QuoteConfigRepository provides data access methods for the quote_config
// table. The table holds at most one row; the api_token column contains a
// fernet token, never the plaintext.
type QuoteConfigRepository struct {
	db *sql.DB
}

// NewQuoteConfigRepository creates a new QuoteConfigRepository with the provided database connection.
func NewQuoteConfigRepository(db *sql.DB) *QuoteConfigRepository {
	return &QuoteConfigRepository{db: db}
}

// GetConfig retrieves the quote provider configuration. Returns sql.ErrNoRows
// when no provider has been configured.
func (r *QuoteConfigRepository) GetConfig() (model.QuoteConfig, error) {
	query := `SELECT id, api_token, enabled, updated_at FROM quote_config LIMIT 1`

	var c model.QuoteConfig
	var updatedAtStr string
	err := r.db.QueryRow(query).Scan(&c.ID, &c.APIToken, &c.Enabled, &updatedAtStr)
	if err == sql.ErrNoRows {
		return model.QuoteConfig{}, err
	}
	if err != nil {
		return model.QuoteConfig{}, fmt.Errorf("failed to scan quote_config table results: %w", err)
	}

	c.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil || c.UpdatedAt.IsZero() {
		return model.QuoteConfig{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return c, nil
}

// UpsertConfig replaces the quote provider configuration.
func (r *QuoteConfigRepository) UpsertConfig(c *model.QuoteConfig) error {
	// Single-row table: clear and rewrite.
	if _, err := r.db.Exec(`DELETE FROM quote_config`); err != nil {
		return fmt.Errorf("failed to clear quote config: %w", err)
	}

	query := `INSERT INTO quote_config (id, api_token, enabled, updated_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.Exec(query, c.ID, c.APIToken, c.Enabled, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert quote config: %w", err)
	}
	return nil
}
