package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"evrental/internal/backend"
	"evrental/internal/http/middleware"
	"evrental/internal/models"
	"evrental/internal/verification"
)

type profileAPI interface {
	Me(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, token string, update backend.ProfileUpdate) (*models.User, error)
	UploadVerification(ctx context.Context, token string, upload *verification.Upload) error
}

type ratedLister interface {
	RatedBookings(ctx context.Context, userID int64) ([]int64, error)
}

// ProfileHandlers serves the profile and identity-verification flows.
type ProfileHandlers struct {
	profile  profileAPI
	rated    ratedLister
	sessions sessionStore
	logger   *zap.Logger
}

// NewProfileHandlers returns handler.
func NewProfileHandlers(profile profileAPI, rated ratedLister, sessions sessionStore, logger *zap.Logger) *ProfileHandlers {
	return &ProfileHandlers{profile: profile, rated: rated, sessions: sessions, logger: logger}
}

type profileView struct {
	User              models.User               `json:"user"`
	VerificationState verification.DisplayState `json:"verificationState"`
	RatedBookings     []int64                   `json:"ratedBookings"`
}

// Me handles GET /api/profile/me. The verification sub-state shown depends
// on both the server status and the uploaded documents.
func (h *ProfileHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.profile.Me(r.Context(), sess.Token)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}

	rated, err := h.rated.RatedBookings(r.Context(), user.ID)
	if err != nil {
		// Hint only; the profile still renders.
		h.logger.Warn("failed to load rated-booking hints", zap.Error(err))
		rated = nil
	}
	if rated == nil {
		rated = []int64{}
	}

	writeJSON(w, http.StatusOK, profileView{
		User:              *user,
		VerificationState: verification.DisplayStateFor(user.VerificationStatus, user.Documents),
		RatedBookings:     rated,
	})
}

// Update handles PUT /api/profile.
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var update backend.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if update.FullName == "" && update.Phone == "" {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	user, err := h.profile.Update(r.Context(), sess.Token, update)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UploadVerification handles POST /api/profile/verification. Missing parts,
// oversized files, and blank licence numbers are rejected before anything
// travels upstream.
func (h *ProfileHandlers) UploadVerification(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(6 * verification.MaxDocumentBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	upload, err := verification.ParseUpload(r.MultipartForm)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrMissingDocument),
			errors.Is(err, verification.ErrDocumentTooBig),
			errors.Is(err, verification.ErrMissingField):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, "invalid verification submission")
		}
		return
	}

	if err := h.profile.UploadVerification(r.Context(), sess.Token, upload); err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
