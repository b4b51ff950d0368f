package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "auth:session:"
	eventsChannel    = "auth:session:events"
)

// RedisStorage persists sessions in redis shared by every gateway instance
// and relays invalidations over pub/sub.
type RedisStorage struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStorage wraps the client.
func NewRedisStorage(client *redis.Client, logger *zap.Logger) *RedisStorage {
	return &RedisStorage{client: client, logger: logger}
}

func sessionKey(id string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, id)
}

// Save writes the session document under a single key with the given TTL.
func (r *RedisStorage) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return r.client.Set(ctx, sessionKey(id), data, ttl).Err()
}

// Load reads the session document; a missing key maps to ErrNotFound.
func (r *RedisStorage) Load(ctx context.Context, id string) ([]byte, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Delete removes the session document.
func (r *RedisStorage) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}

// Publish broadcasts an invalidation to all subscribed instances.
func (r *RedisStorage) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, eventsChannel, payload).Err()
}

// Subscribe returns a channel of invalidation events. The channel closes
// when ctx is done.
func (r *RedisStorage) Subscribe(ctx context.Context) (<-chan Event, error) {
	sub := r.client.Subscribe(ctx, eventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					r.logger.Warn("malformed session event", zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
