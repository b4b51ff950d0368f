package booking

import (
	"errors"
	"testing"
	"time"
)

func TestValidateRejectsInvertedOrEqual(t *testing.T) {
	v := NewValidator(1)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"equal", base, base},
		{"inverted", base, base.Add(-time.Hour)},
		{"inverted long", base, base.Add(-100 * time.Hour)},
	}

	for _, tt := range cases {
		if _, err := v.Validate(tt.start, tt.end); !errors.Is(err, ErrInvertedRange) {
			t.Fatalf("%s: want ErrInvertedRange, got %v", tt.name, err)
		}
	}
}

func TestValidateRejectsMissing(t *testing.T) {
	v := NewValidator(1)
	now := time.Now()
	if _, err := v.Validate(time.Time{}, now); !errors.Is(err, ErrMissingInstant) {
		t.Fatalf("want ErrMissingInstant, got %v", err)
	}
	if _, err := v.Validate(now, time.Time{}); !errors.Is(err, ErrMissingInstant) {
		t.Fatalf("want ErrMissingInstant, got %v", err)
	}
}

func TestValidateCeilsPartialHours(t *testing.T) {
	v := NewValidator(1)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		end   time.Time
		hours int
	}{
		{start.Add(time.Hour), 1},
		{start.Add(90 * time.Minute), 2},
		{time.Date(2025, 6, 1, 16, 30, 0, 0, time.UTC), 8},
		{start.Add(24 * time.Hour), 24},
		{start.Add(time.Minute), 1},
	}

	for _, tt := range cases {
		got, err := v.Validate(start, tt.end)
		if err != nil {
			t.Fatalf("Validate(%v): %v", tt.end, err)
		}
		if got != tt.hours {
			t.Fatalf("Validate(%v) = %d hours, want %d", tt.end, got, tt.hours)
		}
	}
}

func TestValidateEnforcesMinimum(t *testing.T) {
	v := NewValidator(8)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	if _, err := v.Validate(start, start.Add(7*time.Hour)); !errors.Is(err, ErrTooShort) {
		t.Fatalf("want ErrTooShort, got %v", err)
	}
	// 7h30m rounds up to 8 and passes the 8-hour floor.
	if hours, err := v.Validate(start, start.Add(7*time.Hour+30*time.Minute)); err != nil || hours != 8 {
		t.Fatalf("got (%d, %v), want (8, nil)", hours, err)
	}
}

func TestValidateStrings(t *testing.T) {
	v := NewValidator(1)

	if _, _, _, err := v.ValidateStrings("", "2025-06-01T10:00:00Z"); !errors.Is(err, ErrMissingInstant) {
		t.Fatalf("want ErrMissingInstant, got %v", err)
	}
	if _, _, _, err := v.ValidateStrings("not-a-time", "2025-06-01T10:00:00Z"); !errors.Is(err, ErrBadInstant) {
		t.Fatalf("want ErrBadInstant, got %v", err)
	}
	if _, _, _, err := v.ValidateStrings("2025-06-01T09:00:00Z", "junk"); !errors.Is(err, ErrBadInstant) {
		t.Fatalf("want ErrBadInstant, got %v", err)
	}

	start, end, hours, err := v.ValidateStrings("2025-06-01T09:00:00Z", "2025-06-01T16:30:00Z")
	if err != nil {
		t.Fatalf("ValidateStrings: %v", err)
	}
	if hours != 8 {
		t.Fatalf("hours = %d, want 8", hours)
	}
	if !end.After(start) {
		t.Fatalf("parsed range inverted: %v .. %v", start, end)
	}
}
