package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type sessionNotifier interface {
	Serve(w http.ResponseWriter, r *http.Request, sessionID string)
}

// SessionEventsHandler upgrades tabs to the session event stream. Browsers
// cannot set headers on a websocket handshake, so the session id arrives as
// a query parameter and is validated against the store here.
type SessionEventsHandler struct {
	sessions sessionStore
	notifier sessionNotifier
	logger   *zap.Logger
}

// NewSessionEventsHandler returns handler.
func NewSessionEventsHandler(sessions sessionStore, notifier sessionNotifier, logger *zap.Logger) *SessionEventsHandler {
	return &SessionEventsHandler{sessions: sessions, notifier: notifier, logger: logger}
}

// Events handles GET /api/session/events.
func (h *SessionEventsHandler) Events(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session query parameter required")
		return
	}
	if _, err := h.sessions.Get(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusUnauthorized, "session expired or unknown")
		return
	}
	h.notifier.Serve(w, r, sessionID)
}
