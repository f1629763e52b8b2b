package services

import (
	"context"
	"testing"

	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/testutil"
)

func newSubscriptionService(t *testing.T, tier string) (subscription.Service, *testutil.MockSubscriptionRepository, *testutil.MockUserRepository) {
	t.Helper()
	subRepo := testutil.NewMockSubscriptionRepository()
	userRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	ctx := context.Background()
	u := &user.User{Email: "jamie@example.com", PasswordHash: "x", Role: user.RoleUser}
	if err := userRepo.Create(ctx, u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	profile := &user.Profile{UserID: u.ID, PlanTier: tier, CurrencyPreference: "USD"}
	if err := userRepo.CreateProfile(ctx, profile); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}

	return NewSubscriptionService(subRepo, userRepo, log), subRepo, userRepo
}

func TestSubscriptionService_Create_PlanGate(t *testing.T) {
	tests := []struct {
		name     string
		tier     string
		existing int
		wantCode string
	}{
		{"free under limit", user.PlanFree, 1, ""},
		{"free at limit", user.PlanFree, 2, errors.ErrCodePlanLimit},
		{"pro unbounded", user.PlanPro, 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, subRepo, _ := newSubscriptionService(t, tt.tier)
			ctx := context.Background()

			for i := 0; i < tt.existing; i++ {
				sub := &subscription.Subscription{
					UserID: 1, Name: "seed", Amount: 5,
					BillingCycle: subscription.CycleMonthly,
					Status:       subscription.StatusActive,
				}
				if err := subRepo.Create(ctx, sub); err != nil {
					t.Fatalf("seeding: %v", err)
				}
			}

			_, err := svc.Create(ctx, &subscription.Subscription{
				UserID: 1, Name: "Netflix", Amount: 15.49,
				BillingCycle: subscription.CycleMonthly,
			})
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Create() error = %v", err)
				}
				return
			}
			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestSubscriptionService_Create_CancelledRowsFreeSlots(t *testing.T) {
	svc, subRepo, _ := newSubscriptionService(t, user.PlanFree)
	ctx := context.Background()

	// Two cancelled rows do not count against the free limit.
	for i := 0; i < 2; i++ {
		sub := &subscription.Subscription{
			UserID: 1, Name: "old", Amount: 5,
			BillingCycle: subscription.CycleMonthly,
			Status:       subscription.StatusCancelled,
		}
		if err := subRepo.Create(ctx, sub); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	if _, err := svc.Create(ctx, &subscription.Subscription{
		UserID: 1, Name: "Netflix", Amount: 15.49,
		BillingCycle: subscription.CycleMonthly,
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestSubscriptionService_Create_Defaults(t *testing.T) {
	svc, _, _ := newSubscriptionService(t, user.PlanFree)
	ctx := context.Background()

	sub, err := svc.Create(ctx, &subscription.Subscription{
		UserID: 1, Name: "Netflix", Amount: 15.49,
		BillingCycle: subscription.CycleMonthly,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sub.Status != subscription.StatusActive {
		t.Errorf("status = %q, want active", sub.Status)
	}
	if sub.Currency != "USD" {
		t.Errorf("currency = %q, want profile preference USD", sub.Currency)
	}
	if sub.Category != subscription.CategoryOther {
		t.Errorf("category = %q, want other", sub.Category)
	}
}

func TestSubscriptionService_PauseResume_CreditsSavings(t *testing.T) {
	svc, _, userRepo := newSubscriptionService(t, user.PlanPro)
	ctx := context.Background()

	sub, err := svc.Create(ctx, &subscription.Subscription{
		UserID: 1, Name: "Adobe", Amount: 120,
		BillingCycle: subscription.CycleYearly,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	paused, err := svc.Pause(ctx, 1, sub.ID)
	if err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if paused.Status != subscription.StatusPaused {
		t.Errorf("status = %q, want paused", paused.Status)
	}

	resumed, err := svc.Resume(ctx, 1, sub.ID)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if resumed.Status != subscription.StatusActive {
		t.Errorf("status = %q, want active", resumed.Status)
	}

	// $120 yearly pauses at its $10 monthly equivalent.
	profile, err := userRepo.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.TotalSaved != 10 {
		t.Errorf("TotalSaved = %v, want 10", profile.TotalSaved)
	}

	history, err := svc.PauseHistory(ctx, 1)
	if err != nil {
		t.Fatalf("PauseHistory() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history = %d events, want 1", len(history))
	}
	if history[0].ResumedAt == nil {
		t.Error("pause event not closed on resume")
	}
}

func TestSubscriptionService_InvalidTransitions(t *testing.T) {
	svc, _, _ := newSubscriptionService(t, user.PlanPro)
	ctx := context.Background()

	sub, err := svc.Create(ctx, &subscription.Subscription{
		UserID: 1, Name: "Netflix", Amount: 15.49,
		BillingCycle: subscription.CycleMonthly,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Resume on an active subscription is rejected.
	if _, err := svc.Resume(ctx, 1, sub.ID); err == nil {
		t.Error("Resume() on active subscription succeeded")
	}

	if _, err := svc.Cancel(ctx, 1, sub.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	// Cancelled is terminal.
	if _, err := svc.Pause(ctx, 1, sub.ID); err == nil {
		t.Error("Pause() on cancelled subscription succeeded")
	}
	if _, err := svc.Resume(ctx, 1, sub.ID); err == nil {
		t.Error("Resume() on cancelled subscription succeeded")
	}
}

func TestSubscriptionService_Summary(t *testing.T) {
	svc, subRepo, _ := newSubscriptionService(t, user.PlanPro)
	ctx := context.Background()

	seed := []*subscription.Subscription{
		{UserID: 1, Name: "Netflix", Amount: 10, BillingCycle: subscription.CycleMonthly, Status: subscription.StatusActive, Category: subscription.CategoryStreaming},
		{UserID: 1, Name: "Adobe", Amount: 120, BillingCycle: subscription.CycleYearly, Status: subscription.StatusActive, Category: subscription.CategorySoftware},
		{UserID: 1, Name: "Gym", Amount: 50, BillingCycle: subscription.CycleMonthly, Status: subscription.StatusPaused, Category: subscription.CategoryFitness},
	}
	for _, sub := range seed {
		if err := subRepo.Create(ctx, sub); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	summary, err := svc.Summary(ctx, 1)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.MonthlyTotal != 20 {
		t.Errorf("MonthlyTotal = %v, want 20", summary.MonthlyTotal)
	}
	if summary.YearlyTotal != 240 {
		t.Errorf("YearlyTotal = %v, want 240", summary.YearlyTotal)
	}
	if summary.ActiveCount != 2 || summary.PausedCount != 1 {
		t.Errorf("counts = %d active %d paused, want 2/1", summary.ActiveCount, summary.PausedCount)
	}
	if summary.ByCategory[subscription.CategoryStreaming] != 10 {
		t.Errorf("streaming = %v, want 10", summary.ByCategory[subscription.CategoryStreaming])
	}
	if _, ok := summary.ByCategory[subscription.CategoryFitness]; ok {
		t.Error("paused subscription leaked into category totals")
	}
}

func TestSubscriptionService_OwnershipIsolation(t *testing.T) {
	svc, subRepo, _ := newSubscriptionService(t, user.PlanPro)
	ctx := context.Background()

	other := &subscription.Subscription{
		UserID: 99, Name: "Foreign", Amount: 5,
		BillingCycle: subscription.CycleMonthly,
		Status:       subscription.StatusActive,
	}
	if err := subRepo.Create(ctx, other); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	if _, err := svc.GetByID(ctx, 1, other.ID); err == nil {
		t.Error("GetByID() crossed user boundary")
	}
	if _, err := svc.Pause(ctx, 1, other.ID); err == nil {
		t.Error("Pause() crossed user boundary")
	}
	if err := svc.Delete(ctx, 1, other.ID); err == nil {
		t.Error("Delete() crossed user boundary")
	}
}
