package handlers

import (
	"net/http"

	"github.com/pausely/pausely/internal/domain/insight"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/utils"
)

// InsightHandler handles briefing insight requests
type InsightHandler struct {
	insightService insight.Service
	logger         *logger.Logger
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(svc insight.Service, log *logger.Logger) *InsightHandler {
	return &InsightHandler{
		insightService: svc,
		logger:         log,
	}
}

// List lists the user's insights
// @Summary List insights
// @Description List briefing insights, optionally filtered by type or unread
// @Tags Insights
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by insight type"
// @Param unread query bool false "Only unread insights"
// @Success 200 {array} insight.Insight "Insights"
// @Router /insights [get]
func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	filter := insight.Filter{
		Type:       r.URL.Query().Get("type"),
		UnreadOnly: r.URL.Query().Get("unread") == "true",
	}

	insights, err := h.insightService.List(r.Context(), userID, filter)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, insights)
}

// Get returns a single insight
// @Summary Get insight
// @Tags Insights
// @Produce json
// @Security BearerAuth
// @Param id path int true "Insight ID"
// @Success 200 {object} insight.Insight "Insight"
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Router /insights/{id} [get]
func (h *InsightHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	ins, err := h.insightService.GetByID(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, ins)
}

// MarkRead marks an insight as read
// @Summary Mark insight read
// @Tags Insights
// @Produce json
// @Security BearerAuth
// @Param id path int true "Insight ID"
// @Success 200 {object} insight.Insight "Updated insight"
// @Router /insights/{id}/read [post]
func (h *InsightHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	ins, err := h.insightService.MarkRead(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, ins)
}

// MarkActioned marks an insight as acted upon
// @Summary Mark insight actioned
// @Description Record that the user acted on the insight; implies read
// @Tags Insights
// @Produce json
// @Security BearerAuth
// @Param id path int true "Insight ID"
// @Success 200 {object} insight.Insight "Updated insight"
// @Router /insights/{id}/action [post]
func (h *InsightHandler) MarkActioned(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	ins, err := h.insightService.MarkActioned(r.Context(), userID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, ins)
}

// Dismiss deletes an insight
// @Summary Dismiss insight
// @Tags Insights
// @Produce json
// @Security BearerAuth
// @Param id path int true "Insight ID"
// @Success 200 {object} utils.SuccessResponse "Dismissed"
// @Router /insights/{id} [delete]
func (h *InsightHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	id, appErr := idParam(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.insightService.Dismiss(r.Context(), userID, id); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Insight dismissed", nil)
}

// UnreadCount returns the number of unread insights
// @Summary Unread insight count
// @Tags Insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int "Unread count"
// @Router /insights/unread [get]
func (h *InsightHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	count, err := h.insightService.UnreadCount(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]int{"unread": count})
}
