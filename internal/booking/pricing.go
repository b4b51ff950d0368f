package booking

import (
	"errors"

	"evrental/internal/models"
)

var ErrNegativeInput = errors.New("booking: hours and price must be non-negative")

// depositDivisor yields the 10% deposit fraction of a model's initial value.
const depositDivisor = 10

// Quote is the price breakdown shown before and at booking confirmation.
// All values are integral minor units of the display currency.
type Quote struct {
	Hours        int   `json:"hours"`
	PricePerHour int64 `json:"pricePerHour"`
	RentalFee    int64 `json:"rentalFee"`
	Deposit      int64 `json:"deposit"`
}

// RentalFee is hours times the hourly rate, exact integer arithmetic.
func RentalFee(hours int, pricePerHour int64) (int64, error) {
	if hours < 0 || pricePerHour < 0 {
		return 0, ErrNegativeInput
	}
	return int64(hours) * pricePerHour, nil
}

// DepositFromModelValue is the pre-creation strategy: 10% of the vehicle
// model's initial value.
func DepositFromModelValue(initialValue int64) int64 {
	if initialValue <= 0 {
		return 0
	}
	return initialValue / depositDivisor
}

// DepositFromBooking is the post-creation strategy: the backend's stored
// downpay is trusted as-is and never recomputed for payment display.
func DepositFromBooking(b models.Booking) int64 {
	return b.Downpay
}

// QuoteForModel combines fee and the model-value deposit strategy into a
// display quote. The two deposit strategies are never mixed within a flow:
// quote paths use this, payment paths read the created booking.
func QuoteForModel(hours int, m models.VehicleModel) (Quote, error) {
	fee, err := RentalFee(hours, m.PricePerHour)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Hours:        hours,
		PricePerHour: m.PricePerHour,
		RentalFee:    fee,
		Deposit:      DepositFromModelValue(m.InitialValue),
	}, nil
}
