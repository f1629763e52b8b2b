package services

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pausely/pausely/internal/auth"
	"github.com/pausely/pausely/internal/config"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *testutil.MockUserRepository) {
	t.Helper()
	repo := testutil.NewMockUserRepository()
	limiter := auth.NewRateLimiter(auth.RateLimiterConfig{})
	cfg := config.AuthConfig{
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		BCryptCost:         bcrypt.MinCost,
	}
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewAuthService(repo, limiter, cfg, log), repo
}

func TestAuthService_SignUp(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	result, err := svc.SignUp(ctx, "Jamie@Example.com", "hunter22", "Jamie Doe")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if result.User.Email != "jamie@example.com" {
		t.Errorf("email not normalized: %q", result.User.Email)
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Error("expected token pair")
	}

	profile, err := repo.GetProfile(ctx, result.User.ID)
	if err != nil {
		t.Fatalf("profile not provisioned: %v", err)
	}
	if profile.PlanTier != "free" {
		t.Errorf("plan tier = %q, want free", profile.PlanTier)
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "jamie@example.com", "hunter22", ""); err != nil {
		t.Fatalf("first SignUp() error = %v", err)
	}

	_, err := svc.SignUp(ctx, "JAMIE@example.com", "other-pass", "")
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeEmailTaken {
		t.Errorf("code = %q, want %q", appErr.Code, errors.ErrCodeEmailTaken)
	}
}

func TestAuthService_SignIn(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "jamie@example.com", "hunter22", ""); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{"valid credentials", "jamie@example.com", "hunter22", ""},
		{"case-insensitive email", "JAMIE@EXAMPLE.COM", "hunter22", ""},
		{"wrong password", "jamie@example.com", "nope", errors.ErrCodeInvalidCredentials},
		{"unknown email", "nobody@example.com", "hunter22", errors.ErrCodeInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.SignIn(ctx, tt.email, tt.password)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("SignIn() error = %v", err)
				}
				if result.Tokens.AccessToken == "" {
					t.Error("expected access token")
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

func TestAuthService_SignIn_RateLimited(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	// Five failures exhaust the window for this email.
	for i := 0; i < 5; i++ {
		if _, err := svc.SignIn(ctx, "victim@example.com", "wrong"); err == nil {
			t.Fatal("expected credential failure")
		}
	}

	_, err := svc.SignIn(ctx, "victim@example.com", "wrong")
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeRateLimited {
		t.Errorf("code = %q, want %q", appErr.Code, errors.ErrCodeRateLimited)
	}

	// A different email is unaffected.
	if _, err := svc.SignIn(ctx, "other@example.com", "wrong"); err != nil {
		if aerr, ok := err.(*errors.AppError); ok && aerr.Code == errors.ErrCodeRateLimited {
			t.Error("rate limit leaked across keys")
		}
	}
}

func TestAuthService_SignIn_SuccessResetsLimiter(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "jamie@example.com", "hunter22", ""); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	// Three failures, then a success, then the window is fresh again.
	for i := 0; i < 3; i++ {
		svc.SignIn(ctx, "jamie@example.com", "wrong")
	}
	if _, err := svc.SignIn(ctx, "jamie@example.com", "hunter22"); err != nil {
		t.Fatalf("SignIn() after failures error = %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, err := svc.SignIn(ctx, "jamie@example.com", "hunter22"); err != nil {
			t.Fatalf("SignIn() attempt %d error = %v", i, err)
		}
	}
}

func TestAuthService_RequestPasswordReset_NoEnumeration(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "jamie@example.com", "hunter22", ""); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	// Registered and unregistered addresses behave identically.
	if err := svc.RequestPasswordReset(ctx, "jamie@example.com"); err != nil {
		t.Errorf("reset for registered address: %v", err)
	}
	if err := svc.RequestPasswordReset(ctx, "ghost@example.com"); err != nil {
		t.Errorf("reset for unknown address: %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.SignUp(ctx, "jamie@example.com", "hunter22", "")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	refreshed, err := svc.Refresh(ctx, result.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if refreshed.User.ID != result.User.ID {
		t.Errorf("refreshed user = %d, want %d", refreshed.User.ID, result.User.ID)
	}

	if _, err := svc.Refresh(ctx, "garbage.token.here"); err == nil {
		t.Error("expected error for invalid refresh token")
	}
}
