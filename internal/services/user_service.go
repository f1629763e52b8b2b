package services

import (
	"context"

	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo   user.Repository
	logger *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, log *logger.Logger) user.Service {
	return &UserService{
		repo:   repo,
		logger: log,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// GetProfile retrieves the product profile for a user
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*user.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// UpdateProfile applies profile edits
func (s *UserService) UpdateProfile(ctx context.Context, profile *user.Profile) error {
	err := s.repo.UpdateProfile(ctx, profile)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to update profile")
		return errors.DatabaseError("Failed to update profile", err)
	}
	return nil
}

// ChangePlan moves a user between plan tiers. Billing identifiers are
// recorded when the change comes from a checkout webhook and cleared on
// downgrade.
func (s *UserService) ChangePlan(ctx context.Context, userID int64, tier string, customerID, subscriptionID *string) error {
	if tier != user.PlanFree && tier != user.PlanPro {
		return errors.BadRequest("Unknown plan tier")
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return errors.NotFound("profile")
	}

	profile.PlanTier = tier
	if customerID != nil {
		profile.LemonSqueezyCustomerID = customerID
	}
	if subscriptionID != nil {
		profile.LemonSqueezySubscription = subscriptionID
	}
	if tier == user.PlanFree {
		profile.LemonSqueezySubscription = nil
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		s.logger.ErrorWithErr(err, "Failed to change plan")
		return errors.DatabaseError("Failed to change plan", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"tier":    tier,
	}).Info("Plan changed")
	return nil
}

// AddSavings adds to the profile's running total of amount saved
func (s *UserService) AddSavings(ctx context.Context, userID int64, amount float64) error {
	if amount <= 0 {
		return nil
	}
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return errors.NotFound("profile")
	}
	profile.TotalSaved += amount
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return errors.DatabaseError("Failed to record savings", err)
	}
	return nil
}

// RefreshSubscriptionCount recomputes the cached subscription count
func (s *UserService) RefreshSubscriptionCount(ctx context.Context, userID int64, count int) error {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return errors.NotFound("profile")
	}
	if profile.SubscriptionCount == count {
		return nil
	}
	profile.SubscriptionCount = count
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return errors.DatabaseError("Failed to refresh subscription count", err)
	}
	return nil
}
