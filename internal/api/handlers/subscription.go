package handlers

import (
	"net/http"

	"github.com/pausely/pausely/internal/api/dto"
	"github.com/pausely/pausely/internal/domain/subscription"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/utils"
	"github.com/pausely/pausely/internal/pkg/validator"
)

// SubscriptionHandler handles subscription requests
type SubscriptionHandler struct {
	subscriptionService subscription.Service
	logger              *logger.Logger
	validator           *validator.Validator
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(svc subscription.Service, log *logger.Logger, val *validator.Validator) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: svc,
		logger:              log,
		validator:           val,
	}
}

// Create creates a subscription
// @Summary Create subscription
// @Description Track a new recurring charge, subject to the plan limit
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubscriptionRequest true "Subscription details"
// @Success 201 {object} subscription.Subscription "Created subscription"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Plan limit reached"
// @Router /subscriptions [post]
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	sub := &subscription.Subscription{
		UserID:       userID,
		Name:         req.Name,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Category:     req.Category,
		BillingCycle: req.BillingCycle,
		Status:       req.Status,
		RenewalDate:  req.RenewalDate,
		WebsiteURL:   req.WebsiteURL,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
	}

	created, err := h.subscriptionService.Create(r.Context(), sub)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":         userID,
		"subscription_id": created.ID,
	}).Info("Subscription created")

	utils.WriteSuccess(w, http.StatusCreated, created)
}

// List lists the user's subscriptions
// @Summary List subscriptions
// @Description List subscriptions, optionally filtered by status or category
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Success 200 {array} subscription.Subscription "Subscriptions"
// @Router /subscriptions [get]
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	filter := subscription.Filter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	}

	subs, err := h.subscriptionService.List(r.Context(), userID, filter)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, subs)
}

// Get returns a single subscription
// @Summary Get subscription
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} subscription.Subscription "Subscription"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	sub, err := h.subscriptionService.GetByID(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, sub)
}

// Update updates a subscription's details
// @Summary Update subscription
// @Description Update details; lifecycle changes use pause, resume and cancel
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Param request body dto.UpdateSubscriptionRequest true "Changes"
// @Success 200 {object} subscription.Subscription "Updated subscription"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Router /subscriptions/{id} [put]
func (h *SubscriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.UpdateSubscriptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	sub, err := h.subscriptionService.GetByID(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Amount != nil {
		sub.Amount = *req.Amount
	}
	if req.Currency != nil {
		sub.Currency = *req.Currency
	}
	if req.Category != nil {
		sub.Category = *req.Category
	}
	if req.BillingCycle != nil {
		sub.BillingCycle = *req.BillingCycle
	}
	if req.RenewalDate != nil {
		sub.RenewalDate = req.RenewalDate
	}
	if req.WebsiteURL != nil {
		sub.WebsiteURL = req.WebsiteURL
	}
	if req.Description != nil {
		sub.Description = req.Description
	}
	if req.LogoURL != nil {
		sub.LogoURL = req.LogoURL
	}

	if err := h.subscriptionService.Update(r.Context(), sub); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, sub)
}

// Delete removes a subscription
// @Summary Delete subscription
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} utils.SuccessResponse "Deleted"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Router /subscriptions/{id} [delete]
func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.subscriptionService.Delete(r.Context(), userID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Subscription deleted", nil)
}

// Pause pauses an active subscription
// @Summary Pause subscription
// @Description Pause an active subscription and open a pause event
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} subscription.Subscription "Paused subscription"
// @Failure 409 {object} utils.ErrorResponse "Invalid transition"
// @Router /subscriptions/{id}/pause [post]
func (h *SubscriptionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	sub, err := h.subscriptionService.Pause(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, sub)
}

// Resume resumes a paused subscription
// @Summary Resume subscription
// @Description Resume a paused subscription, crediting the saved amount
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} subscription.Subscription "Resumed subscription"
// @Failure 409 {object} utils.ErrorResponse "Invalid transition"
// @Router /subscriptions/{id}/resume [post]
func (h *SubscriptionHandler) Resume(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	sub, err := h.subscriptionService.Resume(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, sub)
}

// Cancel cancels a subscription
// @Summary Cancel subscription
// @Description Cancel a subscription; cancellation is terminal
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} subscription.Subscription "Cancelled subscription"
// @Failure 409 {object} utils.ErrorResponse "Invalid transition"
// @Router /subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	sub, err := h.subscriptionService.Cancel(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, sub)
}

// Summary returns the normalized spend summary
// @Summary Spend summary
// @Description Monthly and yearly totals over active subscriptions, grouped by category
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} subscription.SpendSummary "Spend summary"
// @Router /subscriptions/summary [get]
func (h *SubscriptionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.subscriptionService.Summary(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

// PauseHistory lists the user's pause events
// @Summary Pause history
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} subscription.PauseEvent "Pause events"
// @Router /subscriptions/pauses [get]
func (h *SubscriptionHandler) PauseHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	events, err := h.subscriptionService.PauseHistory(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, events)
}
