package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventdiscovery/internal/delivery/http/helpers"
	"eventdiscovery/internal/domain"
)

// unauthorizedErrors is ordered so that the outermost reason wins for wrapped errors.
var unauthorizedErrors = []error{
	domain.ErrWrongRefreshToken,
	domain.ErrWrongCredentials,
	domain.ErrWrongPassword,
	domain.ErrNoToken,
	domain.ErrWrongTokenType,
	domain.ErrNoUser,
	domain.ErrTokenExpired,
}

// writeServiceError maps a service error to a status and {reason} body.
// Unexpected errors are logged and reported as 500 without details.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	for _, target := range unauthorizedErrors {
		if errors.Is(err, target) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, target.Error())
			return
		}
	}
	switch {
	case errors.Is(err, domain.ErrWrongUserType):
		helpers.WriteJSONError(w, http.StatusNotAcceptable, domain.ErrWrongUserType.Error())
	case errors.Is(err, domain.ErrDuplicateUsername):
		helpers.WriteJSONError(w, http.StatusBadRequest, domain.ErrDuplicateUsername.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
