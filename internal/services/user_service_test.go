package services

import (
	"context"
	"testing"

	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/testutil"
)

func newUserService(t *testing.T) (user.Service, *testutil.MockUserRepository) {
	t.Helper()
	repo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	ctx := context.Background()
	u := &user.User{Email: "jamie@example.com", PasswordHash: "x", Role: user.RoleUser}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	profile := &user.Profile{UserID: u.ID, PlanTier: user.PlanFree, CurrencyPreference: "USD"}
	if err := repo.CreateProfile(ctx, profile); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}

	return NewUserService(repo, log), repo
}

func TestUserService_ChangePlan(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	customerID := "777"
	subscriptionID := "ls-sub-9"
	if err := svc.ChangePlan(ctx, 1, user.PlanPro, &customerID, &subscriptionID); err != nil {
		t.Fatalf("ChangePlan() error = %v", err)
	}

	profile, _ := repo.GetProfile(ctx, 1)
	if profile.PlanTier != user.PlanPro {
		t.Errorf("tier = %q, want pro", profile.PlanTier)
	}
	if profile.LemonSqueezyCustomerID == nil || *profile.LemonSqueezyCustomerID != "777" {
		t.Error("customer id not recorded")
	}

	// Downgrading clears the provider subscription but keeps the customer.
	if err := svc.ChangePlan(ctx, 1, user.PlanFree, nil, nil); err != nil {
		t.Fatalf("ChangePlan() error = %v", err)
	}
	profile, _ = repo.GetProfile(ctx, 1)
	if profile.PlanTier != user.PlanFree {
		t.Errorf("tier = %q, want free", profile.PlanTier)
	}
	if profile.LemonSqueezySubscription != nil {
		t.Error("provider subscription not cleared on downgrade")
	}

	if err := svc.ChangePlan(ctx, 1, "platinum", nil, nil); err == nil {
		t.Error("unknown tier accepted")
	}
}

func TestUserService_AddSavings(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	if err := svc.AddSavings(ctx, 1, 12.50); err != nil {
		t.Fatalf("AddSavings() error = %v", err)
	}
	if err := svc.AddSavings(ctx, 1, 7.50); err != nil {
		t.Fatalf("AddSavings() error = %v", err)
	}
	// Non-positive amounts are ignored.
	if err := svc.AddSavings(ctx, 1, 0); err != nil {
		t.Fatalf("AddSavings(0) error = %v", err)
	}
	if err := svc.AddSavings(ctx, 1, -5); err != nil {
		t.Fatalf("AddSavings(-5) error = %v", err)
	}

	profile, _ := repo.GetProfile(ctx, 1)
	if profile.TotalSaved != 20 {
		t.Errorf("TotalSaved = %v, want 20", profile.TotalSaved)
	}
}

func TestUserService_RefreshSubscriptionCount(t *testing.T) {
	svc, repo := newUserService(t)
	ctx := context.Background()

	if err := svc.RefreshSubscriptionCount(ctx, 1, 3); err != nil {
		t.Fatalf("RefreshSubscriptionCount() error = %v", err)
	}
	profile, _ := repo.GetProfile(ctx, 1)
	if profile.SubscriptionCount != 3 {
		t.Errorf("count = %d, want 3", profile.SubscriptionCount)
	}
}
