package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/integrations"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/testutil"
)

func newBillingService(t *testing.T) (*BillingService, *testutil.MockUserRepository) {
	t.Helper()
	repo := testutil.NewMockUserRepository()
	lemon := integrations.NewLemonSqueezy("pausely", "12345", "secret")
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

	return NewBillingService(repo, lemon, log), repo
}

func TestBillingService_CheckoutURL(t *testing.T) {
	svc, _ := newBillingService(t)
	ctx := context.Background()

	url, err := svc.CheckoutURL(ctx, 1, "https://app.pausely.io/done", "https://app.pausely.io/billing")
	if err != nil {
		t.Fatalf("CheckoutURL() error = %v", err)
	}
	if !strings.Contains(url, "pausely.lemonsqueezy.com/checkout/buy/12345") {
		t.Errorf("url = %q", url)
	}
	if !strings.Contains(url, "user_id") {
		t.Errorf("url missing user attribution: %q", url)
	}

	if _, err := svc.CheckoutURL(ctx, 404, "", ""); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestBillingService_HandleWebhook_Upgrade(t *testing.T) {
	svc, repo := newBillingService(t)
	ctx := context.Background()

	body := []byte(`{
		"meta": {"event_name": "subscription_created", "custom_data": {"user_id": "1"}},
		"data": {"id": "ls-sub-9", "attributes": {"customer_id": 777, "status": "active", "product_name": "Pausely Pro", "variant_name": "Monthly"}}
	}`)
	if err := svc.HandleWebhook(ctx, body); err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}

	profile, err := repo.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.PlanTier != user.PlanPro {
		t.Errorf("tier = %q, want pro", profile.PlanTier)
	}
	if profile.LemonSqueezyCustomerID == nil || *profile.LemonSqueezyCustomerID != "777" {
		t.Error("customer id not recorded")
	}
	if profile.LemonSqueezySubscription == nil || *profile.LemonSqueezySubscription != "ls-sub-9" {
		t.Error("subscription id not recorded")
	}
}

func TestBillingService_HandleWebhook_Downgrade(t *testing.T) {
	tests := []struct {
		name  string
		event string
	}{
		{"cancelled", "subscription_cancelled"},
		{"expired", "subscription_expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newBillingService(t)
			ctx := context.Background()

			profile, _ := repo.GetProfile(ctx, 1)
			profile.PlanTier = user.PlanPro
			sub := "ls-sub-9"
			profile.LemonSqueezySubscription = &sub
			repo.UpdateProfile(ctx, profile)

			body := []byte(`{
				"meta": {"event_name": "` + tt.event + `", "custom_data": {"user_id": "1"}},
				"data": {"id": "ls-sub-9", "attributes": {"customer_id": 777, "status": "cancelled"}}
			}`)
			if err := svc.HandleWebhook(ctx, body); err != nil {
				t.Fatalf("HandleWebhook() error = %v", err)
			}

			profile, _ = repo.GetProfile(ctx, 1)
			if profile.PlanTier != user.PlanFree {
				t.Errorf("tier = %q, want free", profile.PlanTier)
			}
			if profile.LemonSqueezySubscription != nil {
				t.Error("subscription id not cleared on downgrade")
			}
		})
	}
}

func TestBillingService_HandleWebhook_UpdatedStatus(t *testing.T) {
	tests := []struct {
		status   string
		wantTier string
	}{
		{"active", user.PlanPro},
		{"past_due", user.PlanFree},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			svc, repo := newBillingService(t)
			ctx := context.Background()

			body := []byte(`{
				"meta": {"event_name": "subscription_updated", "custom_data": {"user_id": "1"}},
				"data": {"id": "ls-sub-9", "attributes": {"customer_id": 777, "status": "` + tt.status + `"}}
			}`)
			if err := svc.HandleWebhook(ctx, body); err != nil {
				t.Fatalf("HandleWebhook() error = %v", err)
			}

			profile, _ := repo.GetProfile(ctx, 1)
			if profile.PlanTier != tt.wantTier {
				t.Errorf("tier = %q, want %q", profile.PlanTier, tt.wantTier)
			}
		})
	}
}

func TestBillingService_HandleWebhook_Rejections(t *testing.T) {
	svc, _ := newBillingService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `not json`},
		{"missing user", `{"meta":{"event_name":"subscription_created","custom_data":{}}}`},
		{"bad user id", `{"meta":{"event_name":"subscription_created","custom_data":{"user_id":"abc"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.HandleWebhook(ctx, []byte(tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}

	// Unknown events are acknowledged without a plan change.
	unknown := `{"meta":{"event_name":"order_created","custom_data":{"user_id":"1"}}}`
	if err := svc.HandleWebhook(ctx, []byte(unknown)); err != nil {
		t.Errorf("unknown event rejected: %v", err)
	}
}

func TestBillingService_Info(t *testing.T) {
	svc, repo := newBillingService(t)
	ctx := context.Background()

	info, err := svc.Info(ctx, 1)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Plan.Tier != user.PlanFree {
		t.Errorf("tier = %q, want free", info.Plan.Tier)
	}
	if info.SubscriptionLimit != user.FreePlanSubscriptionLimit {
		t.Errorf("limit = %d, want %d", info.SubscriptionLimit, user.FreePlanSubscriptionLimit)
	}
	if info.ProviderLinked {
		t.Error("provider linked before any checkout")
	}

	profile, _ := repo.GetProfile(ctx, 1)
	profile.PlanTier = user.PlanPro
	customer := "777"
	profile.LemonSqueezyCustomerID = &customer
	profile.TotalSaved = 23.50
	repo.UpdateProfile(ctx, profile)

	info, err = svc.Info(ctx, 1)
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Plan.Tier != user.PlanPro || info.SubscriptionLimit != 0 {
		t.Errorf("info = %+v, want pro with no limit", info)
	}
	if !info.ProviderLinked {
		t.Error("provider link not reported")
	}
	if info.TotalSaved != 23.50 {
		t.Errorf("total saved = %v", info.TotalSaved)
	}

	if _, err := svc.Info(ctx, 404); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestPlans(t *testing.T) {
	plans := Plans()
	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
	if plans[0].Tier != user.PlanFree || plans[0].SubscriptionLimit != user.FreePlanSubscriptionLimit {
		t.Errorf("free plan = %+v", plans[0])
	}
	if plans[1].Tier != user.PlanPro || plans[1].SubscriptionLimit != 0 {
		t.Errorf("pro plan = %+v", plans[1])
	}
}
