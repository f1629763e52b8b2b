package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/integrations"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/metrics"
)

// Plan describes one tier shown on the billing page.
type Plan struct {
	Tier              string   `json:"tier"`
	Name              string   `json:"name"`
	PriceMonthly      float64  `json:"price_monthly"`
	SubscriptionLimit int      `json:"subscription_limit"` // 0 means unlimited
	Features          []string `json:"features"`
}

// Plans lists the available tiers.
func Plans() []Plan {
	return []Plan{
		{
			Tier:              user.PlanFree,
			Name:              "Free",
			SubscriptionLimit: user.FreePlanSubscriptionLimit,
			Features: []string{
				"Track up to 2 subscriptions",
				"Spend summaries",
				"Pause recommendations",
			},
		},
		{
			Tier:         user.PlanPro,
			Name:         "Pro",
			PriceMonthly: 4.99,
			Features: []string{
				"Unlimited subscriptions",
				"Daily briefing insights",
				"Cancellation assistant",
				"Savings tracking",
			},
		},
	}
}

// BillingInfo is the current billing state for one account.
type BillingInfo struct {
	Plan              Plan    `json:"plan"`
	SubscriptionCount int     `json:"subscription_count"`
	SubscriptionLimit int     `json:"subscription_limit"` // 0 means unlimited
	TotalSaved        float64 `json:"total_saved"`
	ProviderLinked    bool    `json:"provider_linked"`
}

// BillingService connects checkout and webhooks to plan changes.
type BillingService struct {
	users  user.Repository
	lemon  *integrations.LemonSqueezy
	logger *logger.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(users user.Repository, lemon *integrations.LemonSqueezy, log *logger.Logger) *BillingService {
	return &BillingService{users: users, lemon: lemon, logger: log}
}

// CheckoutURL returns the hosted checkout link for upgrading to pro.
func (s *BillingService) CheckoutURL(ctx context.Context, userID int64, redirectURL, cancelURL string) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", errors.NotFound("user")
	}

	url, err := s.lemon.ProCheckoutURL(integrations.CheckoutOptions{
		UserID:      fmt.Sprintf("%d", u.ID),
		Email:       u.Email,
		RedirectURL: redirectURL,
		CancelURL:   cancelURL,
	})
	if err != nil {
		return "", errors.ServiceUnavailable("Checkout is not configured")
	}
	return url, nil
}

// Info reports the user's current plan, usage against the plan limit and
// accumulated savings.
func (s *BillingService) Info(ctx context.Context, userID int64) (*BillingInfo, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("profile")
	}

	info := &BillingInfo{
		SubscriptionCount: profile.SubscriptionCount,
		TotalSaved:        profile.TotalSaved,
		ProviderLinked:    profile.LemonSqueezyCustomerID != nil,
	}
	for _, p := range Plans() {
		if p.Tier == profile.PlanTier {
			info.Plan = p
			info.SubscriptionLimit = p.SubscriptionLimit
			break
		}
	}
	return info, nil
}

// VerifyWebhook checks the signature header against the raw body.
func (s *BillingService) VerifyWebhook(body []byte, signature string) bool {
	return s.lemon.VerifySignature(body, signature)
}

// HandleWebhook applies a billing provider event to the user's plan.
// Created/updated-active events upgrade to pro; cancelled/expired events
// downgrade to free. Unknown events are acknowledged and ignored.
func (s *BillingService) HandleWebhook(ctx context.Context, body []byte) error {
	event, err := integrations.ParseWebhook(body)
	if err != nil {
		metrics.RecordWebhookEvent("unknown", "malformed")
		return errors.BadRequest("Malformed webhook payload")
	}

	userID, err := parseUserID(event.Meta.CustomData.UserID)
	if err != nil {
		metrics.RecordWebhookEvent(event.Meta.EventName, "unattributed")
		return errors.BadRequest("Webhook missing user attribution")
	}

	var tier string
	switch event.Meta.EventName {
	case integrations.EventSubscriptionCreated:
		tier = user.PlanPro
	case integrations.EventSubscriptionUpdated:
		if event.Data.Attributes.Status == "active" {
			tier = user.PlanPro
		} else {
			tier = user.PlanFree
		}
	case integrations.EventSubscriptionCancelled, integrations.EventSubscriptionExpired:
		tier = user.PlanFree
	default:
		metrics.RecordWebhookEvent(event.Meta.EventName, "ignored")
		return nil
	}

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		metrics.RecordWebhookEvent(event.Meta.EventName, "failure")
		return errors.NotFound("profile")
	}

	profile.PlanTier = tier
	if tier == user.PlanPro {
		customerID := event.Data.Attributes.CustomerID.String()
		subscriptionID := event.Data.ID
		profile.LemonSqueezyCustomerID = &customerID
		profile.LemonSqueezySubscription = &subscriptionID
	} else {
		profile.LemonSqueezySubscription = nil
	}

	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		metrics.RecordWebhookEvent(event.Meta.EventName, "failure")
		return errors.DatabaseError("Failed to apply plan change", err)
	}

	metrics.RecordWebhookEvent(event.Meta.EventName, "success")
	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"event":   event.Meta.EventName,
		"tier":    tier,
	}).Info("Billing webhook applied")
	return nil
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}
