package handlers

import (
	"net/http"

	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/utils"
	"github.com/pausely/pausely/internal/services"
)

// PausingHandler handles pause recommendation requests
type PausingHandler struct {
	pausingService *services.PausingService
	logger         *logger.Logger
}

// NewPausingHandler creates a new pausing handler
func NewPausingHandler(svc *services.PausingService, log *logger.Logger) *PausingHandler {
	return &PausingHandler{
		pausingService: svc,
		logger:         log,
	}
}

// Report returns pause recommendations for every tracked subscription
// @Summary Pause recommendations
// @Description Score each tracked subscription and suggest keep, review or pause
// @Tags Pausing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.PausingReport "Recommendations and potential savings"
// @Failure 401 {object} utils.ErrorResponse "Not authenticated"
// @Router /pausing/recommendations [get]
func (h *PausingHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	report, err := h.pausingService.Report(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, report)
}
