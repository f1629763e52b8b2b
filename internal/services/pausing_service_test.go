package services

import (
	"context"
	"testing"

	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/testutil"
)

func TestUsageScore(t *testing.T) {
	// The score is a pure function of the name.
	if UsageScore("Netflix") != UsageScore("Netflix") {
		t.Error("score is not deterministic")
	}

	tests := []struct {
		name string
		want int
	}{
		// "a" is 97: 97 % 90 + 10 = 17
		{"a", 17},
		// "ab" is 97+98=195: 195 % 90 + 10 = 25
		{"ab", 25},
		// empty string bottoms out at the floor
		{"", 10},
	}

	for _, tt := range tests {
		if got := UsageScore(tt.name); got != tt.want {
			t.Errorf("UsageScore(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}

	// Every score lands in [10,95].
	for _, name := range []string{"Netflix", "Spotify", "Adobe Creative Cloud", "x", "Some Very Long Subscription Name Indeed"} {
		score := UsageScore(name)
		if score < 10 || score > 95 {
			t.Errorf("UsageScore(%q) = %d, out of range", name, score)
		}
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		score        int
		wantAction   string
		wantLastUsed string
	}{
		{95, ActionKeep, "Yesterday"},
		{81, ActionKeep, "Yesterday"},
		{80, ActionReview, "3 days ago"},
		{51, ActionReview, "3 days ago"},
		{50, ActionPause, "2 weeks ago"},
		{31, ActionPause, "2 weeks ago"},
		{30, ActionPause, "1 month ago"},
		{10, ActionPause, "1 month ago"},
	}

	for _, tt := range tests {
		action, _, lastUsed := Recommend(tt.score)
		if action != tt.wantAction {
			t.Errorf("Recommend(%d) action = %q, want %q", tt.score, action, tt.wantAction)
		}
		if lastUsed != tt.wantLastUsed {
			t.Errorf("Recommend(%d) lastUsed = %q, want %q", tt.score, lastUsed, tt.wantLastUsed)
		}
	}
}

func TestPausingService_Report(t *testing.T) {
	repo := testutil.NewMockSubscriptionRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := NewPausingService(repo, log)
	ctx := context.Background()

	// Names chosen so the bands are predictable from the hash:
	// "a" scores 17 (pause), "{" is 123 -> 43 (pause).
	subs := []*subscription.Subscription{
		{UserID: 1, Name: "a", Amount: 9.99, BillingCycle: subscription.CycleMonthly, Status: subscription.StatusActive},
		{UserID: 1, Name: "{", Amount: 120, BillingCycle: subscription.CycleYearly, Status: subscription.StatusActive},
		{UserID: 1, Name: "cancelled-one", Amount: 5, BillingCycle: subscription.CycleMonthly, Status: subscription.StatusCancelled},
		{UserID: 2, Name: "other-user", Amount: 5, BillingCycle: subscription.CycleMonthly, Status: subscription.StatusActive},
	}
	for _, sub := range subs {
		if err := repo.Create(ctx, sub); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	report, err := svc.Report(ctx, 1)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if len(report.Recommendations) != 2 {
		t.Fatalf("recommendations = %d, want 2 (cancelled and foreign rows excluded)", len(report.Recommendations))
	}
	for _, rec := range report.Recommendations {
		if rec.Action != ActionPause {
			t.Errorf("%s action = %q, want pause", rec.Name, rec.Action)
		}
	}

	// Savings sum the raw per-cycle amounts of the pause picks: 9.99 + 120.
	want := 9.99 + 120.0
	if report.PotentialSavings != want {
		t.Errorf("PotentialSavings = %v, want %v", report.PotentialSavings, want)
	}
}

func TestPausingService_Report_PausedAlwaysReview(t *testing.T) {
	repo := testutil.NewMockSubscriptionRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	svc := NewPausingService(repo, log)
	ctx := context.Background()

	// "a" scores 17, squarely a pause band, but the paused status wins.
	sub := &subscription.Subscription{
		UserID: 1, Name: "a", Amount: 9.99,
		BillingCycle: subscription.CycleMonthly,
		Status:       subscription.StatusPaused,
	}
	if err := repo.Create(ctx, sub); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	report, err := svc.Report(ctx, 1)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if len(report.Recommendations) != 1 {
		t.Fatalf("recommendations = %d, want 1", len(report.Recommendations))
	}
	if report.Recommendations[0].Action != ActionReview {
		t.Errorf("paused action = %q, want review", report.Recommendations[0].Action)
	}
	if report.PotentialSavings != 0 {
		t.Errorf("PotentialSavings = %v, want 0", report.PotentialSavings)
	}
}
