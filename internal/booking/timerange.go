package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingInstant = errors.New("booking: start and end are required")
	ErrBadInstant     = errors.New("booking: instant is not a valid ISO-8601 time")
	ErrInvertedRange  = errors.New("booking: end must be after start")
	ErrTooShort       = errors.New("booking: duration below minimum rental length")
)

// Validator gates booking submission on the requested time window. The
// minimum duration is configured once and consumed everywhere; nothing else
// hard-codes a threshold.
type Validator struct {
	minHours int
}

// NewValidator builds a validator enforcing the given minimum whole-hour
// duration. Values below 1 are clamped to 1.
func NewValidator(minHours int) *Validator {
	if minHours < 1 {
		minHours = 1
	}
	return &Validator{minHours: minHours}
}

// MinHours returns the enforced minimum duration.
func (v *Validator) MinHours() int {
	return v.minHours
}

// Validate checks ordering and minimum duration and returns the billable
// duration in whole hours, any partial hour rounded up.
func (v *Validator) Validate(start, end time.Time) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, ErrMissingInstant
	}
	if !end.After(start) {
		return 0, ErrInvertedRange
	}

	hours := CeilHours(end.Sub(start))
	if hours < v.minHours {
		return 0, fmt.Errorf("%w: got %dh, need at least %dh", ErrTooShort, hours, v.minHours)
	}
	return hours, nil
}

// ValidateStrings parses the two instants before validating. Both are
// required; RFC 3339 is the accepted wire format.
func (v *Validator) ValidateStrings(start, end string) (time.Time, time.Time, int, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, 0, ErrMissingInstant
	}
	startAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: %q", ErrBadInstant, start)
	}
	endAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("%w: %q", ErrBadInstant, end)
	}
	hours, err := v.Validate(startAt, endAt)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}
	return startAt, endAt, hours, nil
}

// CeilHours converts a positive duration to whole billable hours, rounding
// any partial hour up: 7h30m counts as 8.
func CeilHours(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	hours := int(d / time.Hour)
	if d%time.Hour > 0 {
		hours++
	}
	return hours
}
