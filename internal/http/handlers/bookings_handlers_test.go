package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"evrental/internal/backend"
	"evrental/internal/booking"
	"evrental/internal/catalog"
	"evrental/internal/http/middleware"
	"evrental/internal/models"
	"evrental/internal/session"
)

type fakeSessions struct {
	sessions    map[string]*session.Session
	invalidated []string
}

func (f *fakeSessions) Login(ctx context.Context, token string, user models.User) (*session.Session, error) {
	if token == "" || user.Role == "" {
		return nil, session.ErrIncomplete
	}
	sess := &session.Session{
		ID:          "sid-new",
		Token:       token,
		User:        user,
		LandingPage: user.Role.LandingPage(),
	}
	f.sessions[sess.ID] = sess
	return sess, nil
}

func (f *fakeSessions) Logout(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessions) Get(ctx context.Context, id string) (*session.Session, error) {
	if sess, ok := f.sessions[id]; ok {
		return sess, nil
	}
	return nil, session.ErrNotFound
}

func (f *fakeSessions) Invalidate(ctx context.Context, id string) error {
	f.invalidated = append(f.invalidated, id)
	delete(f.sessions, id)
	return nil
}

type fakeBookings struct {
	created  []backend.CreateBookingRequest
	keys     []string
	response *models.Booking
	err      error
}

func (f *fakeBookings) Create(ctx context.Context, token string, req backend.CreateBookingRequest, idempotencyKey string) (*models.Booking, error) {
	f.created = append(f.created, req)
	f.keys = append(f.keys, idempotencyKey)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeBookings) Get(ctx context.Context, token string, bookingID int64) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeBookings) PayDeposit(ctx context.Context, token string, bookingID int64, idempotencyKey string) (*models.Booking, error) {
	f.keys = append(f.keys, idempotencyKey)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeBookings) Cancel(ctx context.Context, token string, bookingID int64) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeVehicles struct {
	byStation map[int64][]models.VehicleModel
	calls     int
}

func (f *fakeVehicles) StationModels(ctx context.Context, stationID int64) ([]models.VehicleModel, error) {
	f.calls++
	return f.byStation[stationID], nil
}

func (f *fakeVehicles) Search(ctx context.Context, stationID int64, q catalog.Query) ([]models.VehicleModel, error) {
	f.calls++
	return f.byStation[stationID], nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, stationID int64) ([]models.VehicleModel, bool) {
	return nil, false
}

func (noopCache) Put(ctx context.Context, stationID int64, ms []models.VehicleModel) {}

type fakePaymentHints struct {
	saved map[int64]string
}

func (f *fakePaymentHints) SavePaymentURL(ctx context.Context, bookingID int64, url string) error {
	if f.saved == nil {
		f.saved = make(map[int64]string)
	}
	f.saved[bookingID] = url
	return nil
}

func (f *fakePaymentHints) PaymentURL(ctx context.Context, bookingID int64) (string, error) {
	return f.saved[bookingID], nil
}

func newTestSessions(status models.VerificationStatus) *fakeSessions {
	return &fakeSessions{sessions: map[string]*session.Session{
		"sid-1": {
			ID:    "sid-1",
			Token: "token-1",
			User: models.User{
				ID:                 7,
				Role:               models.RoleRenter,
				VerificationStatus: status,
			},
			LandingPage: "/",
		},
	}}
}

func bookingsFixture() (*BookingsHandlers, *fakeBookings, *fakeVehicles, *fakePaymentHints, *fakeSessions) {
	bookings := &fakeBookings{response: &models.Booking{
		ID:         42,
		StationID:  1,
		ModelID:    3,
		Downpay:    120_000_000,
		Status:     models.BookingPending,
		PaymentURL: "https://pay.example/42",
	}}
	vehicles := &fakeVehicles{byStation: map[int64][]models.VehicleModel{
		1: {
			{ID: 3, Name: "VF 8", PricePerHour: 50_000, InitialValue: 1_200_000_000},
		},
	}}
	hints := &fakePaymentHints{}
	sessions := newTestSessions(models.VerificationApproved)
	h := NewBookingsHandlers(bookings, vehicles, noopCache{}, booking.NewValidator(1), hints, sessions, zap.NewNop())
	return h, bookings, vehicles, hints, sessions
}

func authedRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Authorization", "Bearer sid-1")
	return req
}

func serveAuthed(h http.HandlerFunc, sessions *fakeSessions, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.Auth(sessions)(h).ServeHTTP(rec, req)
	return rec
}

func TestBookingsCreate(t *testing.T) {
	validBody := map[string]interface{}{
		"stationId":     1,
		"modelId":       3,
		"startTime":     "2025-06-01T09:00:00Z",
		"endTime":       "2025-06-01T17:00:00Z",
		"agreedToTerms": true,
	}

	t.Run("happy path", func(t *testing.T) {
		h, bookings, _, hints, sessions := bookingsFixture()
		rec := serveAuthed(h.Create, sessions, authedRequest(http.MethodPost, "/api/bookings", validBody))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if len(bookings.created) != 1 {
			t.Fatalf("upstream calls = %d, want 1", len(bookings.created))
		}
		if !bookings.created[0].AgreedToTerms {
			t.Fatal("agreedToTerms not forwarded")
		}
		if bookings.keys[0] == "" {
			t.Fatal("idempotency key missing")
		}
		var got bookingView
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.DepositDue != 120_000_000 {
			t.Fatalf("depositDue = %d, want the stored downpay", got.DepositDue)
		}
		if hints.saved[42] != "https://pay.example/42" {
			t.Fatal("payment url hint not recorded")
		}
	})

	t.Run("unverified renter is blocked before any upstream call", func(t *testing.T) {
		h, bookings, _, _, _ := bookingsFixture()
		sessions := newTestSessions(models.VerificationPending)
		h.sessions = sessions
		rec := serveAuthed(h.Create, sessions, authedRequest(http.MethodPost, "/api/bookings", validBody))

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if len(bookings.created) != 0 {
			t.Fatal("booking must not reach upstream")
		}
	})

	rejectionCases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing terms", func(m map[string]interface{}) { m["agreedToTerms"] = false }},
		{"missing station", func(m map[string]interface{}) { m["stationId"] = 0 }},
		{"missing vehicle and model", func(m map[string]interface{}) { m["modelId"] = 0 }},
		{"inverted window", func(m map[string]interface{}) {
			m["startTime"], m["endTime"] = m["endTime"], m["startTime"]
		}},
		{"unparseable start", func(m map[string]interface{}) { m["startTime"] = "today" }},
	}
	for _, tc := range rejectionCases {
		t.Run(tc.name, func(t *testing.T) {
			body := make(map[string]interface{}, len(validBody))
			for k, v := range validBody {
				body[k] = v
			}
			tc.mutate(body)

			h, bookings, _, _, sessions := bookingsFixture()
			rec := serveAuthed(h.Create, sessions, authedRequest(http.MethodPost, "/api/bookings", body))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
			if len(bookings.created) != 0 {
				t.Fatal("rejected booking must not reach upstream")
			}
		})
	}

	t.Run("double submit shares one idempotency key", func(t *testing.T) {
		h, bookings, _, _, sessions := bookingsFixture()
		serveAuthed(h.Create, sessions, authedRequest(http.MethodPost, "/api/bookings", validBody))
		serveAuthed(h.Create, sessions, authedRequest(http.MethodPost, "/api/bookings", validBody))

		if len(bookings.keys) != 2 {
			t.Fatalf("upstream calls = %d, want 2", len(bookings.keys))
		}
		if bookings.keys[0] != bookings.keys[1] {
			t.Fatalf("resubmitting the same window must reuse the key: %q vs %q", bookings.keys[0], bookings.keys[1])
		}

		other := make(map[string]interface{}, len(validBody))
		for k, v := range validBody {
			other[k] = v
		}
		other["endTime"] = "2025-06-01T18:00:00Z"
		serveAuthed(h.Create, sessions, authedRequest(http.MethodPost, "/api/bookings", other))
		if bookings.keys[2] == bookings.keys[0] {
			t.Fatal("a different window must derive a different key")
		}
	})

	t.Run("client-supplied idempotency key wins", func(t *testing.T) {
		h, bookings, _, _, sessions := bookingsFixture()
		req := authedRequest(http.MethodPost, "/api/bookings", validBody)
		req.Header.Set("Idempotency-Key", "browser-chosen-key")
		serveAuthed(h.Create, sessions, req)

		if bookings.keys[0] != "browser-chosen-key" {
			t.Fatalf("key = %q, want the browser's", bookings.keys[0])
		}
	})

	t.Run("upstream 401 tears the session down", func(t *testing.T) {
		h, bookings, _, _, sessions := bookingsFixture()
		bookings.err = &backend.APIError{Status: http.StatusUnauthorized, Message: "token expired"}
		rec := serveAuthed(h.Create, sessions, authedRequest(http.MethodPost, "/api/bookings", validBody))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if len(sessions.invalidated) != 1 || sessions.invalidated[0] != "sid-1" {
			t.Fatalf("invalidated = %v, want [sid-1]", sessions.invalidated)
		}
	})
}

func TestBookingsQuote(t *testing.T) {
	t.Run("fee and deposit strategies", func(t *testing.T) {
		h, _, _, _, sessions := bookingsFixture()
		body := map[string]interface{}{
			"stationId": 1,
			"modelId":   3,
			"startTime": "2025-06-01T09:00:00Z",
			"endTime":   "2025-06-01T16:30:00Z",
		}
		rec := serveAuthed(h.Quote, sessions, authedRequest(http.MethodPost, "/api/bookings/quote", body))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var q booking.Quote
		if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if q.Hours != 8 {
			t.Fatalf("hours = %d, want partial hour rounded up to 8", q.Hours)
		}
		if q.RentalFee != 400_000 {
			t.Fatalf("rentalFee = %d, want 400000", q.RentalFee)
		}
		if q.Deposit != 120_000_000 {
			t.Fatalf("deposit = %d, want a tenth of the initial value", q.Deposit)
		}
	})

	t.Run("unknown model", func(t *testing.T) {
		h, _, _, _, sessions := bookingsFixture()
		body := map[string]interface{}{
			"stationId": 1,
			"modelId":   999,
			"startTime": "2025-06-01T09:00:00Z",
			"endTime":   "2025-06-01T17:00:00Z",
		}
		rec := serveAuthed(h.Quote, sessions, authedRequest(http.MethodPost, "/api/bookings/quote", body))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}
