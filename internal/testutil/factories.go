package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/tlecomte/finance-tracker-backend/internal/model"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithEmail("alice@example.com").
//	    Build(t, db)
type UserBuilder struct {
	ID    string
	Email string
	Name  string
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:    MakeID(),
		Email: MakeEmail("user"),
		Name:  "Test User",
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithName sets a custom name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	query := `
		INSERT INTO user (id, email, name, created_at)
		VALUES (?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.Email, b.Name, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:        b.ID,
		Email:     b.Email,
		Name:      b.Name,
		CreatedAt: createdAt,
	}
}

// CreateUser creates a user with default values.
//
// Example usage:
//
//	user := testutil.CreateUser(t, db)
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	position := testutil.NewPosition(user.ID).
//	    WithSymbol("AAPL").
//	    WithQuantity(10).
//	    WithAverageCost(150).
//	    Build(t, db)
type PositionBuilder struct {
	ID           string
	UserID       string
	Symbol       string
	Quantity     float64
	AverageCost  float64
	TotalFees    float64
	CurrentPrice *float64
}

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition(userID string) *PositionBuilder {
	return &PositionBuilder{
		ID:          MakeID(),
		UserID:      userID,
		Symbol:      MakeSymbol("TEST"),
		Quantity:    10.0,
		AverageCost: 100.0,
		TotalFees:   0,
	}
}

// WithSymbol sets a custom symbol.
func (b *PositionBuilder) WithSymbol(symbol string) *PositionBuilder {
	b.Symbol = symbol
	return b
}

// WithQuantity sets the held quantity.
func (b *PositionBuilder) WithQuantity(quantity float64) *PositionBuilder {
	b.Quantity = quantity
	return b
}

// WithAverageCost sets the average cost per unit.
func (b *PositionBuilder) WithAverageCost(cost float64) *PositionBuilder {
	b.AverageCost = cost
	return b
}

// WithTotalFees sets the accumulated fees.
func (b *PositionBuilder) WithTotalFees(fees float64) *PositionBuilder {
	b.TotalFees = fees
	return b
}

// WithCurrentPrice sets the mark price.
func (b *PositionBuilder) WithCurrentPrice(price float64) *PositionBuilder {
	b.CurrentPrice = &price
	return b
}

// Build creates the position in the database and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	query := `
		INSERT INTO position (id, user_id, symbol, quantity, average_cost, total_fees, current_price, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	updatedAt := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.UserID, b.Symbol, b.Quantity, b.AverageCost, b.TotalFees, b.CurrentPrice, updatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return model.Position{
		ID:           b.ID,
		UserID:       b.UserID,
		Symbol:       b.Symbol,
		Quantity:     b.Quantity,
		AverageCost:  b.AverageCost,
		TotalFees:    b.TotalFees,
		CurrentPrice: b.CurrentPrice,
		UpdatedAt:    updatedAt,
	}
}

// TransactionBuilder provides a fluent interface for creating trade transactions.
type TransactionBuilder struct {
	ID       string
	UserID   string
	Date     time.Time
	Type     string
	Symbol   string
	Quantity float64
	Price    float64
	Fee      float64
}

// NewTradeTransaction creates a TransactionBuilder with defaults
func NewTradeTransaction(userID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:       MakeID(),
		UserID:   userID,
		Date:     time.Now().UTC(),
		Type:     "buy",
		Symbol:   "TEST",
		Quantity: 10.0,
		Price:    100.0,
		Fee:      0,
	}
}

// WithDate sets the transaction date
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithType sets the transaction type
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithSymbol sets the traded symbol
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// WithQuantity sets the traded quantity
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the unit price
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithFee sets the trade fee
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	b.Fee = fee
	return b
}

// Build creates the transaction in the database
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO trade_transaction (id, user_id, date, type, symbol, quantity, price, fee, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.UserID, b.Date.Format("2006-01-02"), b.Type, b.Symbol, b.Quantity, b.Price, b.Fee, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create trade transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		UserID:    b.UserID,
		Date:      b.Date,
		Type:      b.Type,
		Symbol:    b.Symbol,
		Quantity:  b.Quantity,
		Price:     b.Price,
		Fee:       b.Fee,
		CreatedAt: createdAt,
	}
}

// ExpenseBuilder provides a fluent interface for creating test expenses.
type ExpenseBuilder struct {
	ID          string
	UserID      string
	Date        time.Time
	Category    string
	Amount      float64
	Description string
}

// NewExpense creates an ExpenseBuilder with defaults
func NewExpense(userID string) *ExpenseBuilder {
	return &ExpenseBuilder{
		ID:       MakeID(),
		UserID:   userID,
		Date:     time.Now().UTC(),
		Category: "groceries",
		Amount:   42.50,
	}
}

// WithDate sets the expense date
func (b *ExpenseBuilder) WithDate(date time.Time) *ExpenseBuilder {
	b.Date = date
	return b
}

// WithCategory sets the category
func (b *ExpenseBuilder) WithCategory(category string) *ExpenseBuilder {
	b.Category = category
	return b
}

// WithAmount sets the amount
func (b *ExpenseBuilder) WithAmount(amount float64) *ExpenseBuilder {
	b.Amount = amount
	return b
}

// WithDescription sets the description
func (b *ExpenseBuilder) WithDescription(description string) *ExpenseBuilder {
	b.Description = description
	return b
}

// Build creates the expense in the database
func (b *ExpenseBuilder) Build(t *testing.T, db *sql.DB) model.Expense {
	t.Helper()

	query := `
		INSERT INTO expense (id, user_id, date, category, amount, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.UserID, b.Date.Format("2006-01-02"), b.Category, b.Amount, b.Description, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create expense: %v", err)
	}

	return model.Expense{
		ID:          b.ID,
		UserID:      b.UserID,
		Date:        b.Date,
		Category:    b.Category,
		Amount:      b.Amount,
		Description: b.Description,
		CreatedAt:   createdAt,
	}
}

// RecapBuilder provides a fluent interface for creating month recaps.
type RecapBuilder struct {
	ID              string
	UserID          string
	Month           int
	Year            int
	TotalExpenses   float64
	Salary          float64
	Invested        float64
	SavingsDeposits float64
	Remainder       float64
}

// NewRecap creates a RecapBuilder for the given month and year
func NewRecap(userID string, month, year int) *RecapBuilder {
	return &RecapBuilder{
		ID:       MakeID(),
		UserID:   userID,
		Month:    month,
		Year:     year,
		Salary:   3000,
		Invested: 465,
	}
}

// WithTotalExpenses sets the expense total
func (b *RecapBuilder) WithTotalExpenses(total float64) *RecapBuilder {
	b.TotalExpenses = total
	return b
}

// WithSalary sets the salary
func (b *RecapBuilder) WithSalary(salary float64) *RecapBuilder {
	b.Salary = salary
	return b
}

// WithInvested sets the invested amount
func (b *RecapBuilder) WithInvested(invested float64) *RecapBuilder {
	b.Invested = invested
	return b
}

// WithSavingsDeposits sets the savings deposits
func (b *RecapBuilder) WithSavingsDeposits(deposits float64) *RecapBuilder {
	b.SavingsDeposits = deposits
	return b
}

// WithRemainder sets the remainder
func (b *RecapBuilder) WithRemainder(remainder float64) *RecapBuilder {
	b.Remainder = remainder
	return b
}

// Build creates the recap in the database
func (b *RecapBuilder) Build(t *testing.T, db *sql.DB) model.MonthRecap {
	t.Helper()

	query := `
		INSERT INTO month_recap (id, user_id, month, year, total_expenses, salary, invested, savings_deposits, remainder)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.Month, b.Year, b.TotalExpenses, b.Salary, b.Invested, b.SavingsDeposits, b.Remainder)
	if err != nil {
		t.Fatalf("Failed to create month recap: %v", err)
	}

	return model.MonthRecap{
		ID:              b.ID,
		UserID:          b.UserID,
		Month:           b.Month,
		Year:            b.Year,
		TotalExpenses:   b.TotalExpenses,
		Salary:          b.Salary,
		Invested:        b.Invested,
		SavingsDeposits: b.SavingsDeposits,
		Remainder:       b.Remainder,
	}
}

// SettingsBuilder provides a fluent interface for creating settings records.
type SettingsBuilder struct {
	ID                 string
	UserID             string
	MonthlySalary      float64
	MonthlyInvestment  float64
	MonthlyPerformance float64
	SavingsBalance     float64
}

// NewSettings creates a SettingsBuilder with the application defaults
func NewSettings(userID string) *SettingsBuilder {
	return &SettingsBuilder{
		ID:                 MakeID(),
		UserID:             userID,
		MonthlyInvestment:  model.DefaultMonthlyInvestment,
		MonthlyPerformance: model.DefaultMonthlyPerformance,
	}
}

// WithMonthlySalary sets the salary
func (b *SettingsBuilder) WithMonthlySalary(salary float64) *SettingsBuilder {
	b.MonthlySalary = salary
	return b
}

// WithMonthlyInvestment sets the monthly investment
func (b *SettingsBuilder) WithMonthlyInvestment(investment float64) *SettingsBuilder {
	b.MonthlyInvestment = investment
	return b
}

// WithMonthlyPerformance sets the monthly performance percentage
func (b *SettingsBuilder) WithMonthlyPerformance(performance float64) *SettingsBuilder {
	b.MonthlyPerformance = performance
	return b
}

// WithSavingsBalance sets the savings balance
func (b *SettingsBuilder) WithSavingsBalance(balance float64) *SettingsBuilder {
	b.SavingsBalance = balance
	return b
}

// Build creates the settings record in the database
func (b *SettingsBuilder) Build(t *testing.T, db *sql.DB) model.Settings {
	t.Helper()

	query := `
		INSERT INTO settings (id, user_id, monthly_salary, monthly_investment, monthly_performance, savings_balance)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.MonthlySalary, b.MonthlyInvestment, b.MonthlyPerformance, b.SavingsBalance)
	if err != nil {
		t.Fatalf("Failed to create settings: %v", err)
	}

	return model.Settings{
		ID:                 b.ID,
		UserID:             b.UserID,
		MonthlySalary:      b.MonthlySalary,
		MonthlyInvestment:  b.MonthlyInvestment,
		MonthlyPerformance: b.MonthlyPerformance,
		SavingsBalance:     b.SavingsBalance,
	}
}
