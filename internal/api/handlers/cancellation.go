package handlers

import (
	"net/http"

	"github.com/pausely/pausely/internal/api/dto"
	"github.com/pausely/pausely/internal/domain/cancellation"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/utils"
	"github.com/pausely/pausely/internal/pkg/validator"
)

// CancellationHandler handles cancellation workflow requests
type CancellationHandler struct {
	cancellationService cancellation.Service
	logger              *logger.Logger
	validator           *validator.Validator
}

// NewCancellationHandler creates a new cancellation handler
func NewCancellationHandler(svc cancellation.Service, log *logger.Logger, val *validator.Validator) *CancellationHandler {
	return &CancellationHandler{
		cancellationService: svc,
		logger:              log,
		validator:           val,
	}
}

// Start opens a cancellation workflow with a drafted provider email
// @Summary Start cancellation
// @Description Draft a cancellation email for a subscription's provider
// @Tags Cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StartCancellationRequest true "Target subscription"
// @Success 201 {object} cancellation.Request "Drafted request"
// @Failure 409 {object} utils.ErrorResponse "Subscription already cancelled"
// @Router /cancellations [post]
func (h *CancellationHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.StartCancellationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	request, err := h.cancellationService.Start(r.Context(), userID, req.SubscriptionID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"request_id": request.ID,
	}).Info("Cancellation request drafted")

	utils.WriteSuccess(w, http.StatusCreated, request)
}

// List lists the user's cancellation requests
// @Summary List cancellations
// @Tags Cancellations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} cancellation.Request "Requests"
// @Router /cancellations [get]
func (h *CancellationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	requests, err := h.cancellationService.ListByUser(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, requests)
}

// Get returns a single cancellation request
// @Summary Get cancellation
// @Tags Cancellations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} cancellation.Request "Request"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Router /cancellations/{id} [get]
func (h *CancellationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	request, err := h.cancellationService.GetByID(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, request)
}

// Send marks the drafted email as sent to the provider
// @Summary Send cancellation email
// @Tags Cancellations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} cancellation.Request "Updated request"
// @Failure 409 {object} utils.ErrorResponse "Invalid transition"
// @Router /cancellations/{id}/send [post]
func (h *CancellationHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	request, err := h.cancellationService.Send(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, request)
}

// Reply records a response received from the provider
// @Summary Record provider reply
// @Description Log a reply from the provider; moves a sent request to negotiating
// @Tags Cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.CancellationReplyRequest true "Provider message"
// @Success 200 {object} cancellation.Request "Updated request"
// @Failure 409 {object} utils.ErrorResponse "Request already resolved"
// @Router /cancellations/{id}/reply [post]
func (h *CancellationHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.CancellationReplyRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	msg := &cancellation.Message{
		Role:    cancellation.RoleCounterparty,
		Kind:    req.Kind,
		Subject: req.Subject,
		Body:    req.Body,
	}

	request, err := h.cancellationService.RecordReply(r.Context(), userID, id, msg)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, request)
}

// Resolve closes a cancellation request
// @Summary Resolve cancellation
// @Description Close the workflow as cancelled or saved; cancelled also cancels the subscription
// @Tags Cancellations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.ResolveCancellationRequest true "Outcome"
// @Success 200 {object} cancellation.Request "Resolved request"
// @Failure 409 {object} utils.ErrorResponse "Invalid transition"
// @Router /cancellations/{id}/resolve [post]
func (h *CancellationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.ResolveCancellationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	request, err := h.cancellationService.Resolve(r.Context(), userID, id, req.Outcome)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"request_id": request.ID,
		"outcome":    req.Outcome,
	}).Info("Cancellation request resolved")

	utils.WriteSuccess(w, http.StatusOK, request)
}

// Messages lists the conversation log for a request
// @Summary Cancellation messages
// @Tags Cancellations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {array} cancellation.Message "Messages"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Router /cancellations/{id}/messages [get]
func (h *CancellationHandler) Messages(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	messages, err := h.cancellationService.Messages(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, messages)
}
