package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pausely/pausely/internal/domain/insight"
	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/metrics"
)

// RenewalWindow is how far ahead the briefing looks for upcoming renewals.
const RenewalWindow = 7 * 24 * time.Hour

// AnnualReviewThreshold is the tracked-subscription count at which the
// briefing suggests an annual review.
const AnnualReviewThreshold = 3

// BriefingService generates the daily insight feed for every user. It is
// driven by the cron worker but can be invoked directly for one user.
type BriefingService struct {
	users    user.Repository
	subs     subscription.Repository
	insights insight.Repository
	logger   *logger.Logger
	now      func() time.Time
}

// NewBriefingService creates a new briefing service
func NewBriefingService(users user.Repository, subs subscription.Repository, insights insight.Repository, log *logger.Logger) *BriefingService {
	return &BriefingService{
		users:    users,
		subs:     subs,
		insights: insights,
		logger:   log,
		now:      time.Now,
	}
}

// RunAll generates briefings for every user. Per-user failures are logged
// and skipped so one bad row cannot starve the rest.
func (s *BriefingService) RunAll(ctx context.Context) error {
	start := s.now()
	users, _, err := s.users.List(ctx, 0, 0)
	if err != nil {
		return fmt.Errorf("listing users for briefing: %w", err)
	}

	total := 0
	for _, u := range users {
		n, err := s.RunForUser(ctx, u.ID)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"user_id": u.ID,
			}).WithError(err).Error("Briefing failed for user")
			continue
		}
		total += n
	}

	metrics.RecordBriefingRun(total, s.now().Sub(start))
	s.logger.WithFields(map[string]interface{}{
		"users":    len(users),
		"insights": total,
	}).Info("Briefing run complete")
	return nil
}

// RunForUser generates the briefing insights for one user and returns how
// many were created. It also refreshes the profile's subscription count
// cache.
func (s *BriefingService) RunForUser(ctx context.Context, userID int64) (int, error) {
	subs, err := s.subs.List(ctx, userID, subscription.Filter{})
	if err != nil {
		return 0, fmt.Errorf("listing subscriptions: %w", err)
	}

	var items []*insight.Insight
	items = append(items, s.spendInsight(userID, subs)...)
	items = append(items, s.renewalInsights(userID, subs)...)
	items = append(items, s.annualReviewInsight(userID, subs)...)
	items = append(items, s.perkInsight(userID, subs)...)

	created := 0
	for _, ins := range items {
		if err := s.insights.Create(ctx, ins); err != nil {
			s.logger.ErrorWithErr(err, "Failed to store insight")
			continue
		}
		created++
	}

	s.refreshCount(ctx, userID, subs)
	return created, nil
}

// spendInsight summarizes the month's normalized spend when there is any.
func (s *BriefingService) spendInsight(userID int64, subs []*subscription.Subscription) []*insight.Insight {
	monthly := subscription.TotalMonthlySpend(subs)
	if monthly <= 0 {
		return nil
	}
	return []*insight.Insight{{
		UserID: userID,
		Type:   insight.TypeSavings,
		Title:  "Your monthly subscription spend",
		Body: fmt.Sprintf("You're spending $%.2f per month ($%.2f per year) across your active subscriptions.",
			monthly, subscription.TotalYearlySpend(subs)),
		Amount: monthly,
	}}
}

// renewalInsights flags renewals due within the next week.
func (s *BriefingService) renewalInsights(userID int64, subs []*subscription.Subscription) []*insight.Insight {
	now := s.now()
	cutoff := now.Add(RenewalWindow)

	var items []*insight.Insight
	for _, sub := range subs {
		if sub.Status != subscription.StatusActive || sub.RenewalDate == nil {
			continue
		}
		if sub.RenewalDate.Before(now) || sub.RenewalDate.After(cutoff) {
			continue
		}
		id := sub.ID
		items = append(items, &insight.Insight{
			UserID: userID,
			Type:   insight.TypeReminder,
			Title:  fmt.Sprintf("%s renews soon", sub.Name),
			Body: fmt.Sprintf("%s renews on %s for $%.2f. Pause it now if you won't use it this cycle.",
				sub.Name, sub.RenewalDate.Format("Jan 2"), sub.Amount),
			SubscriptionID: &id,
			Amount:         sub.Amount,
		})
	}
	return items
}

// annualReviewInsight nudges users tracking several subscriptions toward a
// yearly audit.
func (s *BriefingService) annualReviewInsight(userID int64, subs []*subscription.Subscription) []*insight.Insight {
	tracked := 0
	for _, sub := range subs {
		if sub.Tracked() {
			tracked++
		}
	}
	if tracked < AnnualReviewThreshold {
		return nil
	}
	return []*insight.Insight{{
		UserID: userID,
		Type:   insight.TypeTip,
		Title:  "Time for a subscription review",
		Body: fmt.Sprintf("You're tracking %d subscriptions. An annual review usually uncovers at least one you no longer need.",
			tracked),
	}}
}

// perkInsight suggests a free alternative for the cheapest active
// subscription in a category that commonly has one.
func (s *BriefingService) perkInsight(userID int64, subs []*subscription.Subscription) []*insight.Insight {
	perks := map[string]string{
		subscription.CategoryMusic:     "Most music services have an ad-supported free tier worth trying during a pause.",
		subscription.CategoryStreaming: "Many libraries offer free streaming through services like Kanopy.",
		subscription.CategoryNews:      "Your local library card may include free access to major newspapers.",
		subscription.CategoryFitness:   "Community centers often run free or low-cost fitness programs.",
	}

	for _, sub := range subs {
		if sub.Status != subscription.StatusActive {
			continue
		}
		body, ok := perks[sub.Category]
		if !ok {
			continue
		}
		id := sub.ID
		return []*insight.Insight{{
			UserID:         userID,
			Type:           insight.TypePerk,
			Title:          fmt.Sprintf("Free alternative to %s", sub.Name),
			Body:           body,
			SubscriptionID: &id,
		}}
	}
	return nil
}

func (s *BriefingService) refreshCount(ctx context.Context, userID int64, subs []*subscription.Subscription) {
	tracked := 0
	for _, sub := range subs {
		if sub.Tracked() {
			tracked++
		}
	}
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil || profile.SubscriptionCount == tracked {
		return
	}
	profile.SubscriptionCount = tracked
	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		s.logger.ErrorWithErr(err, "Failed to refresh subscription count")
	}
}
