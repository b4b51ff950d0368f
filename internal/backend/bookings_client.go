package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"evrental/internal/models"
)

// BookingsClient talks to the backend's booking endpoints.
type BookingsClient struct {
	base *BaseClient
}

// NewBookingsClient returns client.
func NewBookingsClient(baseURL string, httpClient HTTPDoer) *BookingsClient {
	return &BookingsClient{base: NewBaseClient(baseURL, httpClient)}
}

// CreateBookingRequest reserves one vehicle (or any unit of a model) for a
// time window. AgreedToTerms must be true; the backend rejects otherwise.
type CreateBookingRequest struct {
	VehicleID     int64     `json:"vehicleId,omitempty"`
	ModelID       int64     `json:"modelId,omitempty"`
	StationID     int64     `json:"stationId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	AgreedToTerms bool      `json:"agreedToTerms"`
}

func idempotencyHeader(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{"Idempotency-Key": key}
}

// Create posts a new booking. The idempotency key lets the backend collapse
// an accidental double submit of the same window.
func (c *BookingsClient) Create(ctx context.Context, token string, req CreateBookingRequest, idempotencyKey string) (*models.Booking, error) {
	var booking models.Booking
	if err := c.base.DoJSON(ctx, http.MethodPost, "/bookings", token, req, &booking, idempotencyHeader(idempotencyKey)); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Get re-reads a booking; status is never derived client-side.
func (c *BookingsClient) Get(ctx context.Context, token string, bookingID int64) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/bookings/%d", bookingID)
	if err := c.base.DoJSON(ctx, http.MethodGet, path, token, nil, &booking, nil); err != nil {
		return nil, err
	}
	return &booking, nil
}

// PayDeposit triggers the deposit payment step (no body).
func (c *BookingsClient) PayDeposit(ctx context.Context, token string, bookingID int64, idempotencyKey string) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/bookings/%d/pay-deposit", bookingID)
	if err := c.base.DoJSON(ctx, http.MethodPost, path, token, nil, &booking, idempotencyHeader(idempotencyKey)); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel cancels a booking through the dedicated endpoint.
func (c *BookingsClient) Cancel(ctx context.Context, token string, bookingID int64) (*models.Booking, error) {
	var booking models.Booking
	path := fmt.Sprintf("/bookings/%d/cancel", bookingID)
	if err := c.base.DoJSON(ctx, http.MethodPost, path, token, nil, &booking, nil); err != nil {
		return nil, err
	}
	return &booking, nil
}
