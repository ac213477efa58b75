package service

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tlecomte/finance-tracker-backend/internal/api/request"
	"github.com/tlecomte/finance-tracker-backend/internal/model"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
)

// SettingsService handles the per-user savings configuration. The first read
// for a user creates the record with the documented defaults, so callers
// never see a missing-settings state.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService with the provided repository dependency.
func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings retrieves the user's settings, creating them with defaults on
// first access.
func (s *SettingsService) GetSettings(userID string) (model.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(userID)
	if err == sql.ErrNoRows {
		settings = model.DefaultSettings(userID)
		settings.ID = uuid.New().String()
		if err := s.settingsRepo.InsertSettings(&settings); err != nil {
			return model.Settings{}, fmt.Errorf("failed to create default settings: %w", err)
		}
		return settings, nil
	}
	if err != nil {
		return model.Settings{}, err
	}

	return settings, nil
}

// UpdateSettings applies the provided fields on top of the user's current
// settings (creating defaults first when needed) and stores the result.
func (s *SettingsService) UpdateSettings(userID string, req request.UpdateSettingsRequest) (model.Settings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return model.Settings{}, err
	}

	if req.MonthlySalary != nil {
		settings.MonthlySalary = *req.MonthlySalary
	}
	if req.MonthlyInvestment != nil {
		settings.MonthlyInvestment = *req.MonthlyInvestment
	}
	if req.MonthlyPerformance != nil {
		settings.MonthlyPerformance = *req.MonthlyPerformance
	}
	if req.SavingsBalance != nil {
		settings.SavingsBalance = *req.SavingsBalance
	}

	if err := s.settingsRepo.UpdateSettings(&settings); err != nil {
		return model.Settings{}, err
	}

	return settings, nil
}
