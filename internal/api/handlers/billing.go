package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pausely/pausely/internal/api/dto"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/utils"
	"github.com/pausely/pausely/internal/pkg/validator"
	"github.com/pausely/pausely/internal/services"
)

// maxWebhookBody bounds how much of a webhook payload is read.
const maxWebhookBody = 1 << 20

// BillingHandler handles plan and checkout requests
type BillingHandler struct {
	billingService *services.BillingService
	logger         *logger.Logger
	validator      *validator.Validator
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(svc *services.BillingService, log *logger.Logger, val *validator.Validator) *BillingHandler {
	return &BillingHandler{
		billingService: svc,
		logger:         log,
		validator:      val,
	}
}

// Plans lists the available plans
// @Summary List plans
// @Tags Billing
// @Produce json
// @Success 200 {array} services.Plan "Plans"
// @Router /billing/plans [get]
func (h *BillingHandler) Plans(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, services.Plans())
}

// Info reports the current plan and usage for the authenticated user
// @Summary Billing info
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.BillingInfo "Billing info"
// @Failure 404 {object} utils.ErrorResponse "Profile not found"
// @Router /billing/info [get]
func (h *BillingHandler) Info(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	info, err := h.billingService.Info(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, info)
}

// Checkout returns a hosted checkout URL for the pro plan
// @Summary Create checkout
// @Description Build a LemonSqueezy checkout URL attributed to the user
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckoutRequest true "Checkout options"
// @Success 200 {object} dto.CheckoutResponse "Checkout URL"
// @Failure 503 {object} utils.ErrorResponse "Billing not configured"
// @Router /billing/checkout [post]
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	// The body is optional; defaults apply when it is empty.
	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	url, err := h.billingService.CheckoutURL(r.Context(), userID, req.RedirectURL, req.CancelURL)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.CheckoutResponse{CheckoutURL: url})
}

// Webhook receives LemonSqueezy subscription events
// @Summary Billing webhook
// @Description Verify and apply a LemonSqueezy subscription event
// @Tags Billing
// @Accept json
// @Produce json
// @Param X-Signature header string true "HMAC-SHA256 signature"
// @Success 200 {object} utils.SuccessResponse "Event accepted"
// @Failure 401 {object} utils.ErrorResponse "Bad signature"
// @Router /billing/webhook [post]
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Could not read request body"))
		return
	}

	signature := r.Header.Get("X-Signature")
	if !h.billingService.VerifyWebhook(body, signature) {
		h.logger.Warn("Webhook signature verification failed")
		utils.WriteError(w, errors.Unauthorized("Invalid webhook signature"))
		return
	}

	if err := h.billingService.HandleWebhook(r.Context(), body); err != nil {
		h.logger.ErrorWithErr(err, "Webhook processing failed")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Event accepted", nil)
}
