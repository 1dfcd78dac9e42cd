package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weddinghub-backend-go/internal/db"
	"weddinghub-backend-go/internal/models"
)

// ErrUserNotFound is returned when a user record does not exist.
var ErrUserNotFound = errors.New("user not found")

// userService implements the UserService interface.
type userService struct {
	userRepo      db.UserRepository
	signupCredits int
}

// NewUserService creates a new UserService instance. signupCredits is the
// starting balance granted at first successful signup.
func NewUserService(userRepo db.UserRepository, signupCredits int) UserService {
	return &userService{
		userRepo:      userRepo,
		signupCredits: signupCredits,
	}
}

// GetOrCreate retrieves a user by ID. If no record exists yet, it creates
// one with the configured signup credit balance and an empty unlocked set.
func (s *userService) GetOrCreate(ctx context.Context, userID, displayName, phoneNumber, role string) (*models.User, bool, error) {
	if userID == "" {
		return nil, false, errors.New("userID is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			if role == "" {
				role = models.RoleCouple
			}
			newUser := &models.User{
				ID:          userID,
				DisplayName: displayName,
				PhoneNumber: phoneNumber,
				Role:        role,
				Credits:     s.signupCredits,
				CreatedAt:   time.Now().UTC(),
				UpdatedAt:   time.Now().UTC(),
			}
			if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
				return nil, false, fmt.Errorf("failed to create user '%s' after not found: %w", userID, createErr)
			}
			return newUser, true, nil
		}
		return nil, false, fmt.Errorf("failed to get user '%s' from repository: %w", userID, err)
	}
	return user, false, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user '%s' from repository: %w", userID, err)
	}
	return user, nil
}

// GetUnlockedServices returns the user's unlocked-service set.
func (s *userService) GetUnlockedServices(ctx context.Context, userID string) (*models.UnlockedServices, error) {
	set, err := s.userRepo.GetUnlockedServices(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocked services for '%s': %w", userID, err)
	}
	return set, nil
}
