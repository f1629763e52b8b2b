package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pausely/pausely/internal/api/dto"
	"github.com/pausely/pausely/internal/api/handlers"
	"github.com/pausely/pausely/internal/api/middleware"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/validator"
	"github.com/pausely/pausely/internal/repository/postgres"
	"github.com/pausely/pausely/internal/services"
	"github.com/pausely/pausely/internal/testutil"
)

// TestSubscriptionLifecycle drives a subscription through the handlers:
// Create -> List -> Get -> Pause -> Resume -> Summary
func TestSubscriptionLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()

	userRepo := postgres.NewUserRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, log)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, log, val)

	ctx := context.Background()

	// The plan gate reads the profile, so seed a pro user first
	u := &user.User{Email: "flow@example.com", PasswordHash: "x", Role: user.RoleUser}
	if err := userRepo.Create(ctx, u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	profile := &user.Profile{UserID: u.ID, PlanTier: user.PlanPro, CurrencyPreference: "USD"}
	if err := userRepo.CreateProfile(ctx, profile); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	userID := u.ID
	var subID string

	withUser := func(req *http.Request) *http.Request {
		return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	}
	withURLParam := func(req *http.Request, id string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("Create Subscription", func(t *testing.T) {
		createReq := dto.CreateSubscriptionRequest{
			Name:         "Netflix",
			Amount:       15.49,
			Currency:     "USD",
			Category:     "streaming",
			BillingCycle: "monthly",
		}

		body, _ := json.Marshal(createReq)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req = withUser(req)

		rr := httptest.NewRecorder()
		subscriptionHandler.Create(rr, req)

		if status := rr.Code; status != http.StatusCreated {
			t.Fatalf("Create failed with status %v, body: %s", status, rr.Body.String())
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		data := response["data"].(map[string]interface{})
		subID = strconv.FormatInt(int64(data["id"].(float64)), 10)
	})

	t.Run("List Subscriptions", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions", nil))

		rr := httptest.NewRecorder()
		subscriptionHandler.List(rr, req)

		if status := rr.Code; status != http.StatusOK {
			t.Fatalf("List failed with status %v", status)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		data := response["data"].([]interface{})
		if len(data) != 1 {
			t.Errorf("Expected 1 subscription, got %d", len(data))
		}
	})

	t.Run("Get Subscription", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/"+subID, nil))
		req = withURLParam(req, subID)

		rr := httptest.NewRecorder()
		subscriptionHandler.Get(rr, req)

		if status := rr.Code; status != http.StatusOK {
			t.Fatalf("Get failed with status %v, body: %s", status, rr.Body.String())
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		data := response["data"].(map[string]interface{})
		if data["name"] != "Netflix" {
			t.Errorf("Expected name Netflix, got %v", data["name"])
		}
	})

	t.Run("Pause Subscription", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/"+subID+"/pause", nil))
		req = withURLParam(req, subID)

		rr := httptest.NewRecorder()
		subscriptionHandler.Pause(rr, req)

		if status := rr.Code; status != http.StatusOK {
			t.Fatalf("Pause failed with status %v, body: %s", status, rr.Body.String())
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		data := response["data"].(map[string]interface{})
		if data["status"] != "paused" {
			t.Errorf("Expected status paused, got %v", data["status"])
		}
	})

	t.Run("Resume Subscription", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/"+subID+"/resume", nil))
		req = withURLParam(req, subID)

		rr := httptest.NewRecorder()
		subscriptionHandler.Resume(rr, req)

		if status := rr.Code; status != http.StatusOK {
			t.Fatalf("Resume failed with status %v, body: %s", status, rr.Body.String())
		}

		// Resuming credits the monthly equivalent to the profile
		p, err := userRepo.GetProfile(ctx, userID)
		if err != nil {
			t.Fatalf("Failed to reload profile: %v", err)
		}
		if p.TotalSaved < 15.48 || p.TotalSaved > 15.50 {
			t.Errorf("Expected total saved around 15.49, got %v", p.TotalSaved)
		}
	})

	t.Run("Spend Summary", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/summary", nil))

		rr := httptest.NewRecorder()
		subscriptionHandler.Summary(rr, req)

		if status := rr.Code; status != http.StatusOK {
			t.Fatalf("Summary failed with status %v", status)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		data := response["data"].(map[string]interface{})
		if data["active_count"].(float64) != 1 {
			t.Errorf("Expected 1 active subscription, got %v", data["active_count"])
		}
	})
}
