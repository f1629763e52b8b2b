package services

import (
	"context"
	"time"

	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/metrics"
)

// SubscriptionService implements subscription.Service. It enforces the free
// plan limit on creation and keeps pause history and the profile savings
// total consistent across pause/resume.
type SubscriptionService struct {
	repo   subscription.Repository
	users  user.Repository
	logger *logger.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(repo subscription.Repository, users user.Repository, log *logger.Logger) subscription.Service {
	return &SubscriptionService{
		repo:   repo,
		users:  users,
		logger: log,
	}
}

// Create adds a subscription after the plan gate admits it.
func (s *SubscriptionService) Create(ctx context.Context, sub *subscription.Subscription) (*subscription.Subscription, error) {
	if sub.Name == "" {
		return nil, errors.BadRequest("Subscription name is required")
	}
	if sub.Amount < 0 {
		return nil, errors.BadRequest("Amount cannot be negative")
	}

	profile, err := s.users.GetProfile(ctx, sub.UserID)
	if err != nil {
		profile = nil
	}
	tracked, err := s.repo.CountTracked(ctx, sub.UserID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count subscriptions", err)
	}
	if !user.CanAddSubscription(profile, tracked) {
		return nil, errors.PlanLimit(user.FreePlanSubscriptionLimit)
	}

	if sub.Status == "" {
		sub.Status = subscription.StatusActive
	}
	if sub.Currency == "" && profile != nil {
		sub.Currency = profile.CurrencyPreference
	}
	if sub.Category == "" {
		sub.Category = subscription.CategoryOther
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create subscription")
		return nil, errors.DatabaseError("Failed to create subscription", err)
	}

	s.refreshCount(ctx, sub.UserID)
	metrics.RecordSubscriptionOp("create")
	s.logger.WithFields(map[string]interface{}{
		"subscription_id": sub.ID,
		"user_id":         sub.UserID,
		"name":            sub.Name,
	}).Info("Subscription created")

	return sub, nil
}

// GetByID retrieves one subscription owned by the user
func (s *SubscriptionService) GetByID(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("subscription")
	}
	return sub, nil
}

// List retrieves a user's subscriptions
func (s *SubscriptionService) List(ctx context.Context, userID int64, filter subscription.Filter) ([]*subscription.Subscription, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update applies user edits to a subscription. Status is changed only
// through Pause/Resume/Cancel.
func (s *SubscriptionService) Update(ctx context.Context, sub *subscription.Subscription) error {
	existing, err := s.repo.GetByID(ctx, sub.UserID, sub.ID)
	if err != nil {
		return errors.NotFound("subscription")
	}
	if sub.Amount < 0 {
		return errors.BadRequest("Amount cannot be negative")
	}

	sub.Status = existing.Status
	sub.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, sub); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update subscription")
		return errors.DatabaseError("Failed to update subscription", err)
	}
	metrics.RecordSubscriptionOp("update")
	return nil
}

// Delete removes a subscription permanently
func (s *SubscriptionService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return errors.NotFound("subscription")
	}
	s.refreshCount(ctx, userID)
	metrics.RecordSubscriptionOp("delete")
	return nil
}

func (s *SubscriptionService) transition(ctx context.Context, userID, id int64, to string) (*subscription.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, errors.NotFound("subscription")
	}
	if !subscription.ValidTransition(sub.Status, to) {
		return nil, errors.InvalidTransition(sub.Status, to)
	}
	sub.Status = to
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, errors.DatabaseError("Failed to update subscription", err)
	}
	return sub, nil
}

// Pause moves an active subscription to paused and opens a pause event
// capturing the monthly equivalent being saved.
func (s *SubscriptionService) Pause(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	sub, err := s.transition(ctx, userID, id, subscription.StatusPaused)
	if err != nil {
		return nil, err
	}

	ev := &subscription.PauseEvent{
		SubscriptionID: sub.ID,
		UserID:         userID,
		PausedAt:       time.Now(),
		AmountSaved:    sub.MonthlyEquivalent(),
	}
	if err := s.repo.CreatePauseEvent(ctx, ev); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record pause event")
	}

	metrics.RecordSubscriptionOp("pause")
	s.logger.WithFields(map[string]interface{}{
		"subscription_id": sub.ID,
		"user_id":         userID,
		"monthly_saved":   ev.AmountSaved,
	}).Info("Subscription paused")
	return sub, nil
}

// Resume moves a paused subscription back to active, closes the open pause
// event and credits the saved amount to the profile total.
func (s *SubscriptionService) Resume(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	sub, err := s.transition(ctx, userID, id, subscription.StatusActive)
	if err != nil {
		return nil, err
	}

	ev, err := s.repo.CloseOpenPauseEvent(ctx, sub.ID)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to close pause event")
	} else if ev != nil && ev.AmountSaved > 0 {
		if profile, perr := s.users.GetProfile(ctx, userID); perr == nil {
			profile.TotalSaved += ev.AmountSaved
			if uerr := s.users.UpdateProfile(ctx, profile); uerr != nil {
				s.logger.ErrorWithErr(uerr, "Failed to credit savings")
			}
		}
	}

	metrics.RecordSubscriptionOp("resume")
	return sub, nil
}

// Cancel marks a subscription cancelled. Terminal: the row stays for history
// but frees a plan slot.
func (s *SubscriptionService) Cancel(ctx context.Context, userID, id int64) (*subscription.Subscription, error) {
	sub, err := s.transition(ctx, userID, id, subscription.StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.refreshCount(ctx, userID)
	metrics.RecordSubscriptionOp("cancel")
	s.logger.WithFields(map[string]interface{}{
		"subscription_id": sub.ID,
		"user_id":         userID,
	}).Info("Subscription cancelled")
	return sub, nil
}

// Summary computes normalized spend totals over active subscriptions.
func (s *SubscriptionService) Summary(ctx context.Context, userID int64) (*subscription.SpendSummary, error) {
	subs, err := s.repo.List(ctx, userID, subscription.Filter{})
	if err != nil {
		return nil, errors.DatabaseError("Failed to list subscriptions", err)
	}

	summary := &subscription.SpendSummary{
		MonthlyTotal: subscription.TotalMonthlySpend(subs),
		YearlyTotal:  subscription.TotalYearlySpend(subs),
		ByCategory:   make(map[string]float64),
	}
	for _, sub := range subs {
		switch sub.Status {
		case subscription.StatusActive:
			summary.ActiveCount++
			summary.ByCategory[sub.Category] += sub.MonthlyEquivalent()
		case subscription.StatusPaused:
			summary.PausedCount++
		}
	}
	return summary, nil
}

// PauseHistory lists past and open pause intervals
func (s *SubscriptionService) PauseHistory(ctx context.Context, userID int64) ([]*subscription.PauseEvent, error) {
	return s.repo.ListPauseEvents(ctx, userID)
}

// refreshCount best-effort updates the profile's cached tracked count.
func (s *SubscriptionService) refreshCount(ctx context.Context, userID int64) {
	count, err := s.repo.CountTracked(ctx, userID)
	if err != nil {
		return
	}
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil || profile.SubscriptionCount == count {
		return
	}
	profile.SubscriptionCount = count
	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		s.logger.ErrorWithErr(err, "Failed to refresh subscription count")
	}
}
