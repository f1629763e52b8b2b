package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pausely/pausely/internal/api/middleware"
	"github.com/pausely/pausely/internal/pkg/errors"
	"github.com/pausely/pausely/internal/pkg/utils"
	"github.com/pausely/pausely/internal/pkg/validator"
)

// currentUserID extracts the authenticated user's ID from the request,
// writing a 401 when the auth middleware did not run.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Authentication required"))
		return 0, false
	}
	return userID, true
}

// idParam parses the numeric {id} URL parameter.
func idParam(r *http.Request) (int64, *errors.AppError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid id")
	}
	return id, nil
}

// decodeAndValidate decodes the JSON body into req and runs validation,
// writing the error response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, val *validator.Validator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	if validationErrs := val.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return false
	}
	return true
}
