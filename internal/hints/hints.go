// Package hints keeps the soft client-side bookkeeping the UI remembers
// between page loads: checkout URLs per booking and which bookings a user
// has already rated. None of it is authoritative; the backend's word wins.
package hints

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const paymentURLTTL = 24 * time.Hour

// Store is the redis-backed hint store.
type Store struct {
	client *redis.Client
}

// NewStore wraps the client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func paymentKey(bookingID int64) string {
	return fmt.Sprintf("paymentUrl:%d", bookingID)
}

func ratedKey(userID int64) string {
	return fmt.Sprintf("rated:%d", userID)
}

// SavePaymentURL remembers the checkout URL handed out for a booking.
func (s *Store) SavePaymentURL(ctx context.Context, bookingID int64, url string) error {
	if url == "" {
		return nil
	}
	return s.client.Set(ctx, paymentKey(bookingID), url, paymentURLTTL).Err()
}

// PaymentURL returns the remembered checkout URL, or "" when none exists.
func (s *Store) PaymentURL(ctx context.Context, bookingID int64) (string, error) {
	url, err := s.client.Get(ctx, paymentKey(bookingID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return url, nil
}

// MarkRated records that the user rated a booking's station.
func (s *Store) MarkRated(ctx context.Context, userID, bookingID int64) error {
	return s.client.SAdd(ctx, ratedKey(userID), bookingID).Err()
}

// RatedBookings lists booking ids the user has already rated.
func (s *Store) RatedBookings(ctx context.Context, userID int64) ([]int64, error) {
	members, err := s.client.SMembers(ctx, ratedKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}
