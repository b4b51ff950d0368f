package booking

import (
	"errors"
	"testing"

	"evrental/internal/models"
)

func TestRentalFee(t *testing.T) {
	cases := []struct {
		hours int
		price int64
		want  int64
	}{
		{8, 50_000, 400_000},
		{1, 50_000, 50_000},
		{0, 50_000, 0},
		{24, 120_000, 2_880_000},
	}

	for _, tt := range cases {
		got, err := RentalFee(tt.hours, tt.price)
		if err != nil {
			t.Fatalf("RentalFee(%d, %d): %v", tt.hours, tt.price, err)
		}
		if got != tt.want {
			t.Fatalf("RentalFee(%d, %d) = %d, want %d", tt.hours, tt.price, got, tt.want)
		}
	}

	if _, err := RentalFee(-1, 100); !errors.Is(err, ErrNegativeInput) {
		t.Fatalf("want ErrNegativeInput, got %v", err)
	}
}

func TestDepositFromModelValue(t *testing.T) {
	if got := DepositFromModelValue(400_000_000); got != 40_000_000 {
		t.Fatalf("deposit = %d, want 40000000", got)
	}
	if got := DepositFromModelValue(0); got != 0 {
		t.Fatalf("deposit for zero value = %d, want 0", got)
	}
}

func TestDepositFromBookingTrustsServerValue(t *testing.T) {
	b := models.Booking{Downpay: 35_000_000, FinalFee: 400_000}
	if got := DepositFromBooking(b); got != 35_000_000 {
		t.Fatalf("deposit = %d, want the stored downpay", got)
	}
}

func TestQuoteForModel(t *testing.T) {
	m := models.VehicleModel{PricePerHour: 50_000, InitialValue: 400_000_000}
	q, err := QuoteForModel(8, m)
	if err != nil {
		t.Fatalf("QuoteForModel: %v", err)
	}
	if q.RentalFee != 400_000 || q.Deposit != 40_000_000 || q.Hours != 8 {
		t.Fatalf("unexpected quote: %+v", q)
	}
}
