package models

import "time"

// BookingStatus is fixed by the backend; this service only re-reads it and
// mutates bookings through the dedicated pay-deposit/cancel endpoints.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingRenting   BookingStatus = "RENTING"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking is a reservation of one vehicle for a time window. Downpay and
// FinalFee are integral minor units of the display currency.
type Booking struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"userId"`
	StationID  int64         `json:"stationId"`
	VehicleID  int64         `json:"vehicleId,omitempty"`
	ModelID    int64         `json:"modelId,omitempty"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	Downpay    int64         `json:"downpay"`
	FinalFee   int64         `json:"finalFee"`
	Status     BookingStatus `json:"status"`
	PaymentURL string        `json:"paymentUrl,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}
