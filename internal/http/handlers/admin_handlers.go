package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"evrental/internal/http/middleware"
	"evrental/internal/models"
	"evrental/internal/session"
)

type adminAPI interface {
	StationUsers(ctx context.Context, token string) ([]models.User, error)
	StationUser(ctx context.Context, token string, userID int64) (*models.User, error)
	UpdateUserRole(ctx context.Context, token string, userID int64, role models.Role) (*models.User, error)
	UpdateUserStatus(ctx context.Context, token string, userID int64, status string) (*models.User, error)
}

// AdminHandlers serves the staff/admin user-management dashboard.
type AdminHandlers struct {
	admin    adminAPI
	sessions sessionStore
	logger   *zap.Logger
}

// NewAdminHandlers returns handler.
func NewAdminHandlers(admin adminAPI, sessions sessionStore, logger *zap.Logger) *AdminHandlers {
	return &AdminHandlers{admin: admin, sessions: sessions, logger: logger}
}

// staffSession enforces the dashboard's role gate. The backend re-checks
// authorization; this only keeps renters out of staff screens.
func (h *AdminHandlers) staffSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	if !sess.User.Role.Staff() {
		writeError(w, http.StatusForbidden, "staff access required")
		return nil, false
	}
	return sess, true
}

// Users handles GET /api/admin/station/users.
func (h *AdminHandlers) Users(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.staffSession(w, r)
	if !ok {
		return
	}
	users, err := h.admin.StationUsers(r.Context(), sess.Token)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// User handles GET /api/admin/station/users/{id}.
func (h *AdminHandlers) User(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.staffSession(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.admin.StationUser(r.Context(), sess.Token, userID)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateRole handles PUT /api/admin/station/users/{id}/role.
func (h *AdminHandlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.staffSession(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		RoleID int `json:"roleId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	role, err := models.NormalizeRole(req.RoleID, "")
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown roleId")
		return
	}

	user, err := h.admin.UpdateUserRole(r.Context(), sess.Token, userID, role)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateStatus handles PATCH /api/admin/station/users/{id}/status.
func (h *AdminHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.staffSession(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status != "ACTIVE" && status != "INACTIVE" {
		writeError(w, http.StatusBadRequest, "status must be ACTIVE or INACTIVE")
		return
	}

	user, err := h.admin.UpdateUserStatus(r.Context(), sess.Token, userID, status)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
