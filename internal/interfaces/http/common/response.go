package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *slog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("encode json response", "error", err)
	}
}

// WriteError maps application errors onto HTTP statuses.
func WriteError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var validation *application.ValidationError
	switch {
	case errors.As(err, &validation):
		if validation.Field == "" {
			WriteJSON(logger, w, http.StatusBadRequest, map[string]string{"error": validation.Message})
			return
		}
		WriteJSON(logger, w, http.StatusBadRequest, map[string][]string{validation.Field: {validation.Message}})
	case errors.Is(err, application.ErrNotFound):
		WriteJSON(logger, w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	case errors.Is(err, application.ErrAuthenticationFailed):
		WriteJSON(logger, w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided or are invalid."})
	case errors.Is(err, application.ErrPermissionDenied):
		WriteJSON(logger, w, http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."})
	case errors.Is(err, application.ErrConflict):
		WriteJSON(logger, w, http.StatusConflict, map[string]string{"detail": "Conflict."})
	default:
		if logger != nil {
			logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		WriteJSON(logger, w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
