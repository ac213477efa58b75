package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/tlecomte/finance-tracker-backend/internal/quote"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
	"github.com/tlecomte/finance-tracker-backend/internal/service"
)

func NewTestUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()

	return service.NewUserService(repository.NewUserRepository(db))
}

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	return service.NewPositionService(repository.NewPositionRepository(db))
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	return service.NewTransactionService(
		db,
		transactionRepo,
		positionRepo,
	)
}

func NewTestExpenseService(t *testing.T, db *sql.DB) *service.ExpenseService {
	t.Helper()

	return service.NewExpenseService(repository.NewExpenseRepository(db))
}

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	return service.NewSettingsService(repository.NewSettingsRepository(db))
}

func NewTestRecapService(t *testing.T, db *sql.DB) *service.RecapService {
	t.Helper()

	recapRepo := repository.NewRecapRepository(db)
	expenseService := NewTestExpenseService(t, db)
	settingsService := NewTestSettingsService(t, db)

	return service.NewRecapService(
		recapRepo,
		expenseService,
		settingsService,
	)
}

func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)
	recapRepo := repository.NewRecapRepository(db)
	expenseService := NewTestExpenseService(t, db)
	settingsService := NewTestSettingsService(t, db)

	return service.NewDashboardService(
		positionRepo,
		recapRepo,
		expenseService,
		settingsService,
	)
}

func NewTestProjectionService(t *testing.T, db *sql.DB) *service.ProjectionService {
	t.Helper()

	return service.NewProjectionService(
		NewTestPositionService(t, db),
		NewTestSettingsService(t, db),
	)
}

// NewTestQuoteService creates a QuoteService with a substitute quote client.
// This is useful for testing refresh operations without making real API calls.
func NewTestQuoteService(t *testing.T, db *sql.DB, client quote.Client, encryptionKey string) *service.QuoteService {
	t.Helper()

	return service.NewQuoteService(
		repository.NewQuoteConfigRepository(db),
		repository.NewPositionRepository(db),
		client,
		encryptionKey,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeEmail generates a unique email address for testing.
//
// Example usage:
//
//	email := testutil.MakeEmail("alice")
//	// Returns: "alice-1A2B3C@example.com"
func MakeEmail(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "-" + randomAlphanumeric(6) + "@example.com"
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
