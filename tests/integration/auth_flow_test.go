package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pausely/pausely/internal/api/dto"
	"github.com/pausely/pausely/internal/api/handlers"
	"github.com/pausely/pausely/internal/auth"
	"github.com/pausely/pausely/internal/config"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/validator"
	"github.com/pausely/pausely/internal/repository/postgres"
	"github.com/pausely/pausely/internal/services"
	"github.com/pausely/pausely/internal/testutil"
)

// TestAuthFlow registers an account, rejects a duplicate, then logs in.
func TestAuthFlow(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	val := validator.New()

	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{
		JWTSecret:            "integration-test-secret",
		AccessTokenExpiry:    15 * time.Minute,
		RefreshTokenExpiry:   7 * 24 * time.Hour,
		BCryptCost:           4,
		RateLimitMaxAttempts: 5,
		RateLimitWindow:      time.Minute,
		RateLimitBaseDelay:   2 * time.Second,
		RateLimitMaxDelay:    32 * time.Second,
	}

	userRepo := postgres.NewUserRepository(db)
	limiter := auth.NewRateLimiter(auth.RateLimiterConfig{
		MaxAttempts: cfg.Auth.RateLimitMaxAttempts,
		Window:      cfg.Auth.RateLimitWindow,
		BaseDelay:   cfg.Auth.RateLimitBaseDelay,
		MaxDelay:    cfg.Auth.RateLimitMaxDelay,
	})
	authService := services.NewAuthService(userRepo, limiter, cfg.Auth, log)
	userService := services.NewUserService(userRepo, log)
	authHandler := handlers.NewAuthHandler(authService, userService, cfg, log, val)

	register := func(email, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(dto.RegisterRequest{Email: email, Password: password, FullName: "Flow Tester"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		authHandler.Register(rr, req)
		return rr
	}

	login := func(email, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(dto.LoginRequest{Email: email, Password: password})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		authHandler.Login(rr, req)
		return rr
	}

	t.Run("Register", func(t *testing.T) {
		rr := register("flow@example.com", "password123")
		if rr.Code != http.StatusCreated {
			t.Fatalf("Register failed with status %v, body: %s", rr.Code, rr.Body.String())
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		data := response["data"].(map[string]interface{})
		if data["accessToken"] == "" {
			t.Error("Expected an access token")
		}
	})

	t.Run("Duplicate Email Rejected", func(t *testing.T) {
		rr := register("flow@example.com", "password456")
		if rr.Code != http.StatusConflict {
			t.Errorf("Expected 409 for duplicate email, got %v", rr.Code)
		}
	})

	t.Run("Login", func(t *testing.T) {
		rr := login("flow@example.com", "password123")
		if rr.Code != http.StatusOK {
			t.Fatalf("Login failed with status %v, body: %s", rr.Code, rr.Body.String())
		}

		// Tokens also land in cookies for browser clients
		cookies := rr.Result().Cookies()
		var foundAccess bool
		for _, c := range cookies {
			if c.Name == "accessToken" && c.Value != "" {
				foundAccess = true
			}
		}
		if !foundAccess {
			t.Error("Expected accessToken cookie to be set")
		}
	})

	t.Run("Wrong Password Rejected", func(t *testing.T) {
		rr := login("flow@example.com", "wrong-password")
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for wrong password, got %v", rr.Code)
		}
	})
}
