package handlers

import (
	"net/http"

	"github.com/pausely/pausely/internal/api/dto"
	"github.com/pausely/pausely/internal/domain/user"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/utils"
	"github.com/pausely/pausely/internal/pkg/validator"
)

// ProfileHandler handles profile requests
type ProfileHandler struct {
	userService user.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService user.Service, log *logger.Logger, val *validator.Validator) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
		logger:      log,
		validator:   val,
	}
}

// Get returns the authenticated user's profile
// @Summary Get profile
// @Description Return plan tier, savings total and subscription count
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileDTO "Profile"
// @Failure 401 {object} utils.ErrorResponse "Not authenticated"
// @Router /profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewProfileDTO(profile))
}

// Update updates the authenticated user's profile preferences
// @Summary Update profile
// @Description Update profile preferences such as display currency
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.ProfileDTO "Updated profile"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Router /profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if req.CurrencyPreference != nil {
		profile.CurrencyPreference = *req.CurrencyPreference
	}

	if err := h.userService.UpdateProfile(r.Context(), profile); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewProfileDTO(profile))
}
