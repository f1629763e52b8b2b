package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pausely/pausely/internal/domain/cancellation"
	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/templates"
	"github.com/pausely/pausely/internal/testutil"
)

func newCancellationService(t *testing.T) (cancellation.Service, *testutil.MockSubscriptionRepository, *testutil.MockUserRepository) {
	t.Helper()
	repo := testutil.NewMockCancellationRepository()
	subRepo := testutil.NewMockSubscriptionRepository()
	userRepo := testutil.NewMockUserRepository()
	catalog, err := templates.Load()
	if err != nil {
		t.Fatalf("loading templates: %v", err)
	}
	log := logger.New(logger.Config{Level: "error", Format: "json"})

	ctx := context.Background()
	name := "Jamie Doe"
	u := &user.User{Email: "jamie@example.com", PasswordHash: "x", Role: user.RoleUser, FullName: &name}
	if err := userRepo.Create(ctx, u); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	profile := &user.Profile{UserID: u.ID, PlanTier: user.PlanPro, CurrencyPreference: "USD"}
	if err := userRepo.CreateProfile(ctx, profile); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}

	return NewCancellationService(repo, subRepo, userRepo, catalog, log), subRepo, userRepo
}

func seedSubscription(t *testing.T, repo *testutil.MockSubscriptionRepository, name string) *subscription.Subscription {
	t.Helper()
	sub := &subscription.Subscription{
		UserID: 1, Name: name, Amount: 15.49,
		BillingCycle: subscription.CycleMonthly,
		Status:       subscription.StatusActive,
	}
	if err := repo.Create(context.Background(), sub); err != nil {
		t.Fatalf("seeding subscription: %v", err)
	}
	return sub
}

func TestCancellationService_Start(t *testing.T) {
	svc, subRepo, _ := newCancellationService(t)
	ctx := context.Background()
	sub := seedSubscription(t, subRepo, "Netflix")

	req, err := svc.Start(ctx, 1, sub.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if req.Status != cancellation.StatusDrafting {
		t.Errorf("status = %q, want drafting", req.Status)
	}
	if req.DraftSubject != "Cancellation Request - Account Termination" {
		t.Errorf("subject = %q", req.DraftSubject)
	}
	if !strings.Contains(req.DraftBody, "Jamie Doe") {
		t.Error("draft not personalized with user name")
	}

	msgs, err := svc.Messages(ctx, 1, req.ID)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) != 1 || msgs[0].Role != cancellation.RoleAgent || msgs[0].Kind != cancellation.KindEmail {
		t.Errorf("expected one agent email in the log, got %+v", msgs)
	}
}

func TestCancellationService_Start_UnknownProviderFallsBack(t *testing.T) {
	svc, subRepo, _ := newCancellationService(t)
	ctx := context.Background()
	sub := seedSubscription(t, subRepo, "Planet Fitness")

	req, err := svc.Start(ctx, 1, sub.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !strings.Contains(req.DraftBody, "Dear Planet Fitness Support Team") {
		t.Errorf("fallback draft missing provider: %q", req.DraftBody)
	}
}

func TestCancellationService_Workflow(t *testing.T) {
	svc, subRepo, userRepo := newCancellationService(t)
	ctx := context.Background()
	sub := seedSubscription(t, subRepo, "Netflix")

	req, err := svc.Start(ctx, 1, sub.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Cannot resolve straight from drafting.
	if _, err := svc.Resolve(ctx, 1, req.ID, cancellation.StatusCancelled); err == nil {
		t.Error("Resolve() from drafting succeeded")
	}

	if req, err = svc.Send(ctx, 1, req.ID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if req.Status != cancellation.StatusSent {
		t.Errorf("status = %q, want sent", req.Status)
	}

	reply := &cancellation.Message{
		Role: cancellation.RoleCounterparty,
		Kind: cancellation.KindEmail,
		Body: "We'd hate to see you go. Can we offer 50% off?",
	}
	if req, err = svc.RecordReply(ctx, 1, req.ID, reply); err != nil {
		t.Fatalf("RecordReply() error = %v", err)
	}
	if req.Status != cancellation.StatusNegotiating {
		t.Errorf("status = %q, want negotiating", req.Status)
	}

	if req, err = svc.Resolve(ctx, 1, req.ID, cancellation.StatusCancelled); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if req.Status != cancellation.StatusCancelled || req.ResolvedAt == nil {
		t.Errorf("request not resolved: %+v", req)
	}

	// The subscription followed the request.
	got, err := subRepo.GetByID(ctx, 1, sub.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != subscription.StatusCancelled {
		t.Errorf("subscription status = %q, want cancelled", got.Status)
	}

	// The monthly amount was credited to the savings total.
	profile, _ := userRepo.GetProfile(ctx, 1)
	if profile.TotalSaved != 15.49 {
		t.Errorf("TotalSaved = %v, want 15.49", profile.TotalSaved)
	}

	// Terminal states accept nothing further.
	if _, err := svc.RecordReply(ctx, 1, req.ID, reply); err == nil {
		t.Error("RecordReply() on resolved request succeeded")
	}
	if _, err := svc.Resolve(ctx, 1, req.ID, cancellation.StatusSaved); err == nil {
		t.Error("Resolve() on resolved request succeeded")
	}
}

func TestCancellationService_SavedOutcomeKeepsSubscription(t *testing.T) {
	svc, subRepo, _ := newCancellationService(t)
	ctx := context.Background()
	sub := seedSubscription(t, subRepo, "Spotify")

	req, err := svc.Start(ctx, 1, sub.ID)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if req, err = svc.Send(ctx, 1, req.ID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if req, err = svc.Resolve(ctx, 1, req.ID, cancellation.StatusSaved); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if req.Status != cancellation.StatusSaved {
		t.Errorf("status = %q, want saved", req.Status)
	}

	got, _ := subRepo.GetByID(ctx, 1, sub.ID)
	if got.Status != subscription.StatusActive {
		t.Errorf("subscription status = %q, want active (retained)", got.Status)
	}
}

func TestCancellationService_Start_AlreadyCancelled(t *testing.T) {
	svc, subRepo, _ := newCancellationService(t)
	ctx := context.Background()
	sub := seedSubscription(t, subRepo, "Netflix")
	sub.Status = subscription.StatusCancelled
	subRepo.Update(ctx, sub)

	if _, err := svc.Start(ctx, 1, sub.ID); err == nil {
		t.Error("Start() on cancelled subscription succeeded")
	}
}
