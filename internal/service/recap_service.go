package service

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/model"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
)

// RecapService handles month-recap business logic: manual upserts and the
// automatic month-close computation from expenses and settings.
type RecapService struct {
	recapRepo       *repository.RecapRepository
	expenseService  *ExpenseService
	settingsService *SettingsService
}

// NewRecapService creates a new RecapService with the provided dependencies.
func NewRecapService(
	recapRepo *repository.RecapRepository,
	expenseService *ExpenseService,
	settingsService *SettingsService,
) *RecapService {
	return &RecapService{
		recapRepo:       recapRepo,
		expenseService:  expenseService,
		settingsService: settingsService,
	}
}

// GetRecaps retrieves all of a user's month recaps, most recent first.
func (s *RecapService) GetRecaps(userID string) ([]model.MonthRecap, error) {
	return s.recapRepo.GetRecaps(userID)
}

// UpsertRecap records the figures for one month as supplied, replacing any
// existing recap for that month.
func (s *RecapService) UpsertRecap(userID string, req request.UpsertRecapRequest) (*model.MonthRecap, error) {
	recap := &model.MonthRecap{
		ID:              uuid.New().String(),
		UserID:          userID,
		Month:           req.Month,
		Year:            req.Year,
		TotalExpenses:   req.TotalExpenses,
		Salary:          req.Salary,
		Invested:        req.Invested,
		SavingsDeposits: req.SavingsDeposits,
		Remainder:       req.Remainder,
	}

	if existing, err := s.recapRepo.GetRecap(userID, req.Month, req.Year); err == nil {
		recap.ID = existing.ID
	}

	if err := s.recapRepo.UpsertRecap(recap); err != nil {
		return nil, fmt.Errorf("failed to upsert recap: %w", err)
	}

	return recap, nil
}

// ComputeRecap derives the recap for one month from the recorded expenses and
// the user's current settings, then stores it. The remainder is what is left
// of the salary after expenses and the planned investment; it can be negative.
func (s *RecapService) ComputeRecap(userID string, month, year int) (*model.MonthRecap, error) {
	totalExpenses, err := s.expenseService.MonthTotal(userID, month, year)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	recap := &model.MonthRecap{
		ID:            uuid.New().String(),
		UserID:        userID,
		Month:         month,
		Year:          year,
		TotalExpenses: totalExpenses,
		Salary:        settings.MonthlySalary,
		Invested:      settings.MonthlyInvestment,
		Remainder:     settings.MonthlySalary - totalExpenses - settings.MonthlyInvestment,
	}

	if existing, err := s.recapRepo.GetRecap(userID, month, year); err == nil {
		recap.ID = existing.ID
		recap.SavingsDeposits = existing.SavingsDeposits
	} else if err != sql.ErrNoRows {
		return nil, err
	}

	if err := s.recapRepo.UpsertRecap(recap); err != nil {
		return nil, fmt.Errorf("failed to store computed recap: %w", err)
	}

	return recap, nil
}
