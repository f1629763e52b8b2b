package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pausely/pausely/internal/auth"
	"github.com/pausely/pausely/internal/config"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/metrics"
)

// AuthService handles registration, sign-in and password resets. Every
// operation is guarded by the sliding-window rate limiter, keyed per
// operation and email so one hammered account cannot lock out another.
type AuthService struct {
	users   user.Repository
	limiter *auth.RateLimiter
	cfg     config.AuthConfig
	logger  *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users user.Repository, limiter *auth.RateLimiter, cfg config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		users:   users,
		limiter: limiter,
		cfg:     cfg,
		logger:  log,
	}
}

// AuthResult is returned on successful sign-up or sign-in.
type AuthResult struct {
	User   *user.User     `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

func rateLimitKey(operation, email string) string {
	return operation + ":" + strings.ToLower(email)
}

// checkLimit consults the limiter and records the attempt when admitted.
// Recording happens before the credential check so failed guesses count.
func (s *AuthService) checkLimit(operation, email string) (string, error) {
	key := rateLimitKey(operation, email)
	allowed, wait := s.limiter.CanProceed(key)
	if !allowed {
		metrics.RecordAuthRateLimited(operation)
		s.logger.WithFields(map[string]interface{}{
			"operation": operation,
			"wait":      wait.String(),
		}).Warn("Auth attempt rate limited")
		return "", errors.RateLimited(wait)
	}
	s.limiter.RecordAttempt(key)
	return key, nil
}

// SignUp registers a new account and provisions its free-tier profile.
func (s *AuthService) SignUp(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	key, err := s.checkLimit("signup", email)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		metrics.RecordAuthAttempt("signup", "failure")
		return nil, errors.EmailTaken()
	}

	hash, err := auth.HashPassword(password, s.cfg.BCryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleUser,
	}
	if fullName != "" {
		u.FullName = &fullName
	}
	if err := s.users.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, errors.DatabaseError("Failed to create account", err)
	}

	profile := &user.Profile{
		UserID:             u.ID,
		PlanTier:           user.PlanFree,
		CurrencyPreference: "USD",
	}
	if err := s.users.CreateProfile(ctx, profile); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create profile")
		return nil, errors.DatabaseError("Failed to create account", err)
	}

	tokens, err := auth.MintTokens(u.ID, u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, errors.Internal("Failed to issue tokens", err)
	}

	s.limiter.Reset(key)
	metrics.RecordAuthAttempt("signup", "success")
	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User signed up")

	return &AuthResult{User: u, Tokens: tokens}, nil
}

// SignIn verifies credentials and issues a token pair. Failed attempts keep
// counting against the window; success clears it.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	key, err := s.checkLimit("signin", email)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		metrics.RecordAuthAttempt("signin", "failure")
		return nil, errors.InvalidCredentials()
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		metrics.RecordAuthAttempt("signin", "failure")
		return nil, errors.InvalidCredentials()
	}

	tokens, err := auth.MintTokens(u.ID, u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, errors.Internal("Failed to issue tokens", err)
	}

	s.limiter.Reset(key)
	metrics.RecordAuthAttempt("signin", "success")
	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("User signed in")

	return &AuthResult{User: u, Tokens: tokens}, nil
}

// RequestPasswordReset accepts a reset request. The response never reveals
// whether the address is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.checkLimit("reset", email); err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		// Same outcome as the registered case so addresses cannot be
		// enumerated.
		metrics.RecordAuthAttempt("reset", "failure")
		return nil
	}

	metrics.RecordAuthAttempt("reset", "success")
	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("Password reset requested")
	return nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := auth.ParseClaims(refreshToken, s.cfg.JWTSecret)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired refresh token")
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return nil, errors.Unauthorized("Account no longer exists")
	}

	tokens, err := auth.MintTokens(u.ID, u.Email, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, errors.Internal("Failed to issue tokens", err)
	}
	return &AuthResult{User: u, Tokens: tokens}, nil
}

// RetryDelay exposes the limiter's exponential backoff for an operation and
// email, for clients that poll.
func (s *AuthService) RetryDelay(operation, email string) time.Duration {
	return s.limiter.DelayForAttempt(rateLimitKey(operation, email))
}

// ValidateToken parses an access token and returns its claims.
func (s *AuthService) ValidateToken(tokenStr string) (*auth.Claims, error) {
	claims, err := auth.ParseClaims(tokenStr, s.cfg.JWTSecret)
	if err != nil {
		return nil, errors.Unauthorized(fmt.Sprintf("Invalid token: %v", err))
	}
	return claims, nil
}
