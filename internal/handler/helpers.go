package handler

import (
	"errors"
	"net/http"

	"atelier/internal/domain"
	"atelier/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Validation
// failures carry their per-field messages in the problem body.
func handleError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		extras := map[string]interface{}{"errors": validationErr.Fields}
		httputil.RespondErrorWithExtras(w, http.StatusUnprocessableEntity, "validation failed", extras)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
