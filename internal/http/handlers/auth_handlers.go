package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"evrental/internal/backend"
	"evrental/internal/http/middleware"
	"evrental/internal/models"
	"evrental/internal/session"
)

type authAPI interface {
	Login(ctx context.Context, creds backend.Credentials) (*backend.LoginResult, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*backend.LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req backend.ResetPasswordRequest) error
}

type sessionStore interface {
	Login(ctx context.Context, token string, user models.User) (*session.Session, error)
	Logout(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*session.Session, error)
	Invalidate(ctx context.Context, id string) error
}

// AuthHandlers serves login, registration, and password-recovery flows and
// owns the session transitions they trigger.
type AuthHandlers struct {
	auth     authAPI
	sessions sessionStore
	logger   *zap.Logger
}

// NewAuthHandlers returns handler struct.
func NewAuthHandlers(auth authAPI, sessions sessionStore, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{auth: auth, sessions: sessions, logger: logger}
}

type sessionResponse struct {
	SessionID   string      `json:"sessionId"`
	User        models.User `json:"user"`
	LandingPage string      `json:"landingPage"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds backend.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, nil, "", err)
		return
	}
	h.establish(w, r, result)
}

type registerRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register handles POST /api/auth/register. Password mismatch is caught
// here, before any upstream call.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "full name, email and password are required")
		return
	}
	if req.Password != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	result, err := h.auth.Register(r.Context(), backend.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, nil, "", err)
		return
	}
	h.establish(w, r, result)
}

// establish turns a backend login result into an authenticated session.
func (h *AuthHandlers) establish(w http.ResponseWriter, r *http.Request, result *backend.LoginResult) {
	sess, err := h.sessions.Login(r.Context(), result.Token, result.User)
	if err != nil {
		h.logger.Error("failed to establish session", zap.Error(err))
		writeError(w, http.StatusBadGateway, "unexpected response from rental service")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID:   sess.ID,
		User:        sess.User,
		LandingPage: sess.LandingPage,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.sessions.Logout(r.Context(), sess.ID); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not end session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/session: rehydration for a returning tab. The
// landing page was derived once at login and is replayed, not re-derived.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID:   sess.ID,
		User:        sess.User,
		LandingPage: sess.LandingPage,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		writeBackendError(r.Context(), w, h.logger, nil, "", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req backend.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "email, otp and new password are required")
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req); err != nil {
		writeBackendError(r.Context(), w, h.logger, nil, "", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
