package services

import (
	"context"
	"testing"

	"github.com/pausely/pausely/internal/domain/insight"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/testutil"
)

func newInsightService(t *testing.T) (insight.Service, *testutil.MockInsightRepository) {
	t.Helper()
	repo := testutil.NewMockInsightRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewInsightService(repo, log), repo
}

func seedInsights(t *testing.T, repo *testutil.MockInsightRepository) {
	t.Helper()
	ctx := context.Background()
	items := []*insight.Insight{
		{UserID: 1, Type: insight.TypeSavings, Title: "Spend", Body: "b"},
		{UserID: 1, Type: insight.TypeReminder, Title: "Renewal", Body: "b"},
		{UserID: 1, Type: insight.TypeTip, Title: "Review", Body: "b", IsRead: true},
		{UserID: 2, Type: insight.TypeSavings, Title: "Other user", Body: "b"},
	}
	for _, ins := range items {
		if err := repo.Create(ctx, ins); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
}

func TestInsightService_List(t *testing.T) {
	svc, repo := newInsightService(t)
	seedInsights(t, repo)
	ctx := context.Background()

	all, err := svc.List(ctx, 1, insight.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("insights = %d, want 3", len(all))
	}

	unread, err := svc.List(ctx, 1, insight.Filter{UnreadOnly: true})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(unread) != 2 {
		t.Errorf("unread = %d, want 2", len(unread))
	}

	byType, err := svc.List(ctx, 1, insight.Filter{Type: insight.TypeSavings})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(byType) != 1 {
		t.Errorf("savings insights = %d, want 1", len(byType))
	}

	if _, err := svc.List(ctx, 1, insight.Filter{Type: "bogus"}); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestInsightService_MarkReadAndActioned(t *testing.T) {
	svc, repo := newInsightService(t)
	seedInsights(t, repo)
	ctx := context.Background()

	ins, err := svc.MarkRead(ctx, 1, 1)
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if !ins.IsRead {
		t.Error("insight not marked read")
	}

	ins, err = svc.MarkActioned(ctx, 1, 2)
	if err != nil {
		t.Fatalf("MarkActioned() error = %v", err)
	}
	if !ins.ActionTaken || !ins.IsRead {
		t.Error("actioned implies read")
	}

	count, err := svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("UnreadCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}

	// Another user's insight is invisible.
	if _, err := svc.MarkRead(ctx, 1, 4); err == nil {
		t.Error("MarkRead() crossed user boundary")
	}
}

func TestInsightService_Dismiss(t *testing.T) {
	svc, repo := newInsightService(t)
	seedInsights(t, repo)
	ctx := context.Background()

	if err := svc.Dismiss(ctx, 1, 1); err != nil {
		t.Fatalf("Dismiss() error = %v", err)
	}
	if err := svc.Dismiss(ctx, 1, 1); err == nil {
		t.Error("Dismiss() of missing insight succeeded")
	}

	items, _ := svc.List(ctx, 1, insight.Filter{})
	if len(items) != 2 {
		t.Errorf("insights after dismiss = %d, want 2", len(items))
	}
}
