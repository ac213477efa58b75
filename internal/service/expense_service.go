package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/model"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
)

// ExpenseService handles expense-related business logic operations.
type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService with the provided repository dependency.
func NewExpenseService(expenseRepo *repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// GetExpenses retrieves a user's expenses, optionally restricted to one
// calendar month (month and year both non-zero).
func (s *ExpenseService) GetExpenses(userID string, month, year int) ([]model.Expense, error) {
	return s.expenseRepo.GetExpenses(userID, month, year)
}

// CreateExpense records a new expense for the user.
func (s *ExpenseService) CreateExpense(userID string, req request.CreateExpenseRequest) (*model.Expense, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	expense := &model.Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		Date:        date,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.expenseRepo.InsertExpense(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// UpdateExpense applies the provided fields to an existing expense.
// Returns ErrExpenseNotFound when the expense does not exist or is owned by
// another user.
func (s *ExpenseService) UpdateExpense(userID, expenseID string, req request.UpdateExpenseRequest) (*model.Expense, error) {
	existing, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, err
		}
		existing.Date = date
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}

	rows, err := s.expenseRepo.UpdateExpense(existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.ErrExpenseNotFound
	}

	return existing, nil
}

// DeleteExpense removes an expense owned by the user.
// Returns ErrExpenseNotFound when nothing was deleted.
func (s *ExpenseService) DeleteExpense(userID, expenseID string) error {
	rows, err := s.expenseRepo.DeleteExpense(userID, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// MonthTotal returns the summed expense amount for one calendar month.
func (s *ExpenseService) MonthTotal(userID string, month, year int) (float64, error) {
	return s.expenseRepo.SumForMonth(userID, month, year)
}

// getOwnedExpense finds one of the user's expenses by ID.
func (s *ExpenseService) getOwnedExpense(userID, expenseID string) (*model.Expense, error) {
	expenses, err := s.expenseRepo.GetExpenses(userID, 0, 0)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		if expenses[i].ID == expenseID {
			return &expenses[i], nil
		}
	}
	return nil, apperrors.ErrExpenseNotFound
}
