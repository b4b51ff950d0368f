package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"evrental/internal/backend"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// sessionInvalidator tears a session down after an upstream 401.
type sessionInvalidator interface {
	Invalidate(ctx context.Context, id string) error
}

// writeBackendError applies the error taxonomy: an upstream 401 on an
// authenticated call invalidates the caller's session and maps to 401;
// other upstream statuses are forwarded with their extracted message
// (a 401 on a sessionless call, like a wrong-password login, keeps the
// backend's own message); transport failures become a generic 502.
// Nothing is retried.
func writeBackendError(ctx context.Context, w http.ResponseWriter, logger *zap.Logger, inv sessionInvalidator, sessionID string, err error) {
	if inv != nil && sessionID != "" && errors.Is(err, backend.ErrUnauthorized) {
		if invErr := inv.Invalidate(ctx, sessionID); invErr != nil {
			logger.Warn("failed to invalidate session after upstream 401", zap.Error(invErr))
		}
		writeError(w, http.StatusUnauthorized, "session expired, please sign in again")
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		writeError(w, apiErr.Status, apiErr.Message)
		return
	}

	logger.Error("backend request failed", zap.Error(err))
	writeError(w, http.StatusBadGateway, "rental service unavailable")
}

// NewHealthHandler reports liveness.
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
