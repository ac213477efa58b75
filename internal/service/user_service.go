package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/model"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
)

// UserService provisions and resolves the users that own all other records.
// Authentication happens upstream; this service only maps the forwarded
// identity to a stored user.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService with the provided repository dependency.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(userID string) (model.User, error) {
	user, err := s.userRepo.GetUser(userID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// CreateUser provisions a new user record.
func (s *UserService) CreateUser(email, name string) (model.User, error) {
	user := model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.userRepo.InsertUser(&user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
