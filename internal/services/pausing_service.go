package services

import (
	"context"

	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
)

// Recommendation actions
const (
	ActionKeep   = "keep"
	ActionReview = "review"
	ActionPause  = "pause"
)

// PauseRecommendation is the scored advice for one subscription.
type PauseRecommendation struct {
	SubscriptionID int64   `json:"subscription_id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	BillingCycle   string  `json:"billing_cycle"`
	UsageScore     int     `json:"usage_score"`
	Action         string  `json:"action"`
	Reason         string  `json:"reason"`
	LastUsed       string  `json:"last_used"`
}

// PausingReport bundles recommendations with the headline savings figure.
type PausingReport struct {
	Recommendations  []*PauseRecommendation `json:"recommendations"`
	PotentialSavings float64                `json:"potential_savings"`
}

// PausingService scores subscriptions and recommends which to pause.
type PausingService struct {
	repo   subscription.Repository
	logger *logger.Logger
}

// NewPausingService creates a new pausing service
func NewPausingService(repo subscription.Repository, log *logger.Logger) *PausingService {
	return &PausingService{repo: repo, logger: log}
}

// UsageScore derives a deterministic usage figure from the subscription
// name: the rune values summed, reduced mod 90 and shifted into [10,95].
// It stands in for usage telemetry the product does not collect.
func UsageScore(name string) int {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	score := sum%90 + 10
	if score < 10 {
		score = 10
	}
	if score > 95 {
		score = 95
	}
	return score
}

// Recommend maps a usage score to an action, reason and last-used display
// string.
func Recommend(score int) (action, reason, lastUsed string) {
	switch {
	case score > 80:
		return ActionKeep, "Used frequently - great value", "Yesterday"
	case score > 50:
		return ActionReview, "Moderate usage - monitor this", "3 days ago"
	case score > 30:
		return ActionPause, "Low usage - consider pausing", "2 weeks ago"
	default:
		return ActionPause, "Rarely used - strong candidate to pause", "1 month ago"
	}
}

// Report scores every tracked subscription. Already-paused subscriptions are
// always review so the user is nudged to resume or cancel rather than told
// to pause again. PotentialSavings sums the raw per-cycle amounts of the
// pause recommendations.
func (s *PausingService) Report(ctx context.Context, userID int64) (*PausingReport, error) {
	subs, err := s.repo.List(ctx, userID, subscription.Filter{})
	if err != nil {
		return nil, errors.DatabaseError("Failed to list subscriptions", err)
	}

	report := &PausingReport{Recommendations: []*PauseRecommendation{}}
	for _, sub := range subs {
		if !sub.Tracked() {
			continue
		}

		score := UsageScore(sub.Name)
		action, reason, lastUsed := Recommend(score)
		if sub.Status == subscription.StatusPaused {
			action = ActionReview
			reason = "Already paused - resume or cancel"
		}

		rec := &PauseRecommendation{
			SubscriptionID: sub.ID,
			Name:           sub.Name,
			Amount:         sub.Amount,
			BillingCycle:   sub.BillingCycle,
			UsageScore:     score,
			Action:         action,
			Reason:         reason,
			LastUsed:       lastUsed,
		}
		report.Recommendations = append(report.Recommendations, rec)

		if action == ActionPause {
			report.PotentialSavings += sub.Amount
		}
	}

	return report, nil
}
