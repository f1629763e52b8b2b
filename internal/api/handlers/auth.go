package handlers

import (
	"net/http"

	"github.com/pausely/pausely/internal/api/dto"
	"github.com/pausely/pausely/internal/config"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/utils"
	"github.com/pausely/pausely/internal/pkg/validator"
	"github.com/pausely/pausely/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *services.AuthService,
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, result *services.AuthResult) {
	secure := h.config.Server.Environment == "production"
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    result.Tokens.AccessToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.AccessTokenExpiry.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    result.Tokens.RefreshToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.RefreshTokenExpiry.Seconds()),
	})
}

func authResponse(result *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		User:         dto.NewUserDTO(result.User),
	}
}

// Register handles user registration
// @Summary User registration
// @Description Register a new account with a free plan profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "User successfully registered"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Failure 429 {object} utils.ErrorResponse "Too many attempts"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	h.logger.Infof("Registration attempt for email: %s", req.Email)

	result, err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).WithError(err).Warn("Registration failed")
		utils.WriteAppError(w, err)
		return
	}

	h.setAuthCookies(w, result)

	h.logger.WithFields(map[string]interface{}{
		"user_id": result.User.ID,
		"email":   result.User.Email,
	}).Info("User registered successfully")

	utils.WriteSuccess(w, http.StatusCreated, authResponse(result))
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Failure 429 {object} utils.ErrorResponse "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		utils.WriteAppError(w, err)
		return
	}

	h.setAuthCookies(w, result)

	h.logger.WithFields(map[string]interface{}{
		"user_id": result.User.ID,
		"email":   result.User.Email,
	}).Info("User logged in successfully")

	utils.WriteSuccess(w, http.StatusOK, authResponse(result))
}

// RefreshToken handles token refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse "New token pair"
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	result, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.setAuthCookies(w, result)
	utils.WriteSuccess(w, http.StatusOK, authResponse(result))
}

// RequestPasswordReset handles a password reset request
// @Summary Request password reset
// @Description Ask for a password reset email; always answers 202
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Account email"
// @Success 202 {object} utils.SuccessResponse "Request accepted"
// @Failure 429 {object} utils.ErrorResponse "Too many attempts"
// @Router /auth/password/reset [post]
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	// Same answer whether or not the account exists.
	utils.WriteSuccessWithMessage(w, http.StatusAccepted,
		"If that email is registered, a reset link is on its way", nil)
}

// Me returns the authenticated user
// @Summary Current user
// @Description Return the authenticated user's account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO "Current user"
// @Failure 401 {object} utils.ErrorResponse "Not authenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if u == nil {
		utils.WriteError(w, errors.NotFound("user"))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewUserDTO(u))
}

// Logout clears the auth cookies
// @Summary Log out
// @Description Clear authentication cookies
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Path:     "/",
			MaxAge:   -1,
		})
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out", nil)
}
