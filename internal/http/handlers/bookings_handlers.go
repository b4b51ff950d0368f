package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"evrental/internal/backend"
	"evrental/internal/booking"
	"evrental/internal/http/middleware"
	"evrental/internal/models"
	"evrental/internal/verification"
)

type bookingsAPI interface {
	Create(ctx context.Context, token string, req backend.CreateBookingRequest, idempotencyKey string) (*models.Booking, error)
	Get(ctx context.Context, token string, bookingID int64) (*models.Booking, error)
	PayDeposit(ctx context.Context, token string, bookingID int64, idempotencyKey string) (*models.Booking, error)
	Cancel(ctx context.Context, token string, bookingID int64) (*models.Booking, error)
}

type paymentHints interface {
	SavePaymentURL(ctx context.Context, bookingID int64, url string) error
	PaymentURL(ctx context.Context, bookingID int64) (string, error)
}

// BookingsHandlers serves quoting, creation, payment, and cancellation.
type BookingsHandlers struct {
	bookings  bookingsAPI
	source    *catalogSource
	validator *booking.Validator
	hints     paymentHints
	sessions  sessionStore
	logger    *zap.Logger
}

// NewBookingsHandlers returns handler.
func NewBookingsHandlers(bookings bookingsAPI, vehicles vehiclesAPI, cache catalogCache, validator *booking.Validator, hints paymentHints, sessions sessionStore, logger *zap.Logger) *BookingsHandlers {
	return &BookingsHandlers{
		bookings:  bookings,
		source:    &catalogSource{vehicles: vehicles, cache: cache},
		validator: validator,
		hints:     hints,
		sessions:  sessions,
		logger:    logger,
	}
}

// idempotencyNamespace scopes the keys derived for upstream POSTs.
var idempotencyNamespace = uuid.MustParse("b5e7c61e-8f04-4e59-9f0e-3a6f8d2f9c41")

// idempotencyKey prefers the browser-supplied Idempotency-Key header.
// Without one the key is derived from the request's identity, so an
// accidental double submit of the same action carries the same key and the
// backend can collapse the pair.
func idempotencyKey(r *http.Request, parts ...string) string {
	if key := strings.TrimSpace(r.Header.Get("Idempotency-Key")); key != "" {
		return key
	}
	return uuid.NewSHA1(idempotencyNamespace, []byte(strings.Join(parts, "|"))).String()
}

type quoteRequest struct {
	StationID int64  `json:"stationId"`
	ModelID   int64  `json:"modelId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Quote handles POST /api/bookings/quote: the fee/deposit preview shown
// before confirmation. Deposit here is the model-value strategy; once the
// booking exists, payment display trusts the stored downpay instead.
func (h *BookingsHandlers) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.StationID < 1 || req.ModelID < 1 {
		writeError(w, http.StatusBadRequest, "stationId and modelId are required")
		return
	}

	_, _, hours, err := h.validator.ValidateStrings(req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	model, err := h.source.findModel(r.Context(), req.StationID, req.ModelID)
	if errors.Is(err, errModelNotFound) {
		writeError(w, http.StatusNotFound, "vehicle model not found at this station")
		return
	}
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, nil, "", err)
		return
	}

	quote, err := booking.QuoteForModel(hours, *model)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

type createBookingRequest struct {
	StationID     int64  `json:"stationId"`
	VehicleID     int64  `json:"vehicleId,omitempty"`
	ModelID       int64  `json:"modelId,omitempty"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

type bookingView struct {
	models.Booking
	DepositDue int64 `json:"depositDue"`
}

// Create handles POST /api/bookings. Every client-side rejection happens
// before any upstream call; the upstream POST carries an idempotency key
// stable across resubmits of the same window, so a double submit is
// collapsible backend-side.
func (h *BookingsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !verification.CanBook(sess.User.VerificationStatus) {
		writeError(w, http.StatusForbidden, "identity verification required before booking")
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.StationID < 1 {
		writeError(w, http.StatusBadRequest, "stationId is required")
		return
	}
	if req.VehicleID < 1 && req.ModelID < 1 {
		writeError(w, http.StatusBadRequest, "vehicleId or modelId is required")
		return
	}
	if !req.AgreedToTerms {
		writeError(w, http.StatusBadRequest, "you must agree to the rental terms")
		return
	}

	startAt, endAt, _, err := h.validator.ValidateStrings(req.StartTime, req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := idempotencyKey(r, sess.ID, "create",
		strconv.FormatInt(req.StationID, 10),
		strconv.FormatInt(req.VehicleID, 10),
		strconv.FormatInt(req.ModelID, 10),
		startAt.Format(time.RFC3339),
		endAt.Format(time.RFC3339),
	)
	created, err := h.bookings.Create(r.Context(), sess.Token, backend.CreateBookingRequest{
		VehicleID:     req.VehicleID,
		ModelID:       req.ModelID,
		StationID:     req.StationID,
		StartTime:     startAt,
		EndTime:       endAt,
		AgreedToTerms: true,
	}, key)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}

	if created.PaymentURL != "" {
		if err := h.hints.SavePaymentURL(r.Context(), created.ID, created.PaymentURL); err != nil {
			h.logger.Warn("failed to remember payment url", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusCreated, bookingView{
		Booking:    *created,
		DepositDue: booking.DepositFromBooking(*created),
	})
}

// Get handles GET /api/bookings/{id}: re-reads the booking; the deposit
// shown is the backend's stored downpay, never recomputed.
func (h *BookingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.bookings.Get(r.Context(), sess.Token, bookingID)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}

	if b.PaymentURL == "" {
		if url, err := h.hints.PaymentURL(r.Context(), b.ID); err == nil {
			b.PaymentURL = url
		}
	}
	writeJSON(w, http.StatusOK, bookingView{
		Booking:    *b,
		DepositDue: booking.DepositFromBooking(*b),
	})
}

// PayDeposit handles POST /api/bookings/{id}/pay-deposit.
func (h *BookingsHandlers) PayDeposit(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	key := idempotencyKey(r, sess.ID, "pay-deposit", strconv.FormatInt(bookingID, 10))
	updated, err := h.bookings.PayDeposit(r.Context(), sess.Token, bookingID, key)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingView{
		Booking:    *updated,
		DepositDue: booking.DepositFromBooking(*updated),
	})
}

// Cancel handles POST /api/bookings/{id}/cancel.
func (h *BookingsHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	updated, err := h.bookings.Cancel(r.Context(), sess.Token, bookingID)
	if err != nil {
		writeBackendError(r.Context(), w, h.logger, h.sessions, sess.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingView{Booking: *updated, DepositDue: updated.Downpay})
}
