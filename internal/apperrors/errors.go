package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPositionNotFound indicates that no position exists for the given symbol.
	ErrPositionNotFound = errors.New("position not found")

	// ErrExpenseNotFound indicates that an expense with the given ID does not exist.
	ErrExpenseNotFound = errors.New("expense not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidProjectionInput indicates that the projection engine was called
	// with a negative starting value or non-ascending year marks.
	ErrInvalidProjectionInput = errors.New("invalid projection input")

	// ErrInvalidMonth indicates a month value outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrEncryptionKeyMissing indicates the fernet key protecting the quote
	// provider token has not been configured.
	ErrEncryptionKeyMissing = errors.New("encryption key not configured")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	ErrFailedToRetrievePositions    = errors.New("failed to retrieve positions")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveExpenses     = errors.New("failed to retrieve expenses")
	ErrFailedToRetrieveRecaps       = errors.New("failed to retrieve month recaps")
	ErrFailedToRetrieveSettings     = errors.New("failed to retrieve settings")
	ErrFailedToComputeDashboard     = errors.New("failed to compute dashboard")
	ErrFailedToComputeProjection    = errors.New("failed to compute projection")
	ErrFailedToRefreshQuotes        = errors.New("failed to refresh quotes")
)
