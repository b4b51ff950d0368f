package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"evrental/internal/models"
)

// Cache keeps the last full catalog fetch per station so that windowless
// searches can be answered by local filtering without another round trip.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewCache builds a cache with the configured freshness window.
func NewCache(client *redis.Client, logger *zap.Logger, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, logger: logger, ttl: ttl}
}

func catalogKey(stationID int64) string {
	return fmt.Sprintf("catalog:station:%d", stationID)
}

// Get returns the cached model list and whether it was present. Any cache
// error degrades to a miss.
func (c *Cache) Get(ctx context.Context, stationID int64) ([]models.VehicleModel, bool) {
	data, err := c.client.Get(ctx, catalogKey(stationID)).Bytes()
	if err != nil {
		return nil, false
	}
	var ms []models.VehicleModel
	if err := json.Unmarshal(data, &ms); err != nil {
		c.logger.Warn("dropping corrupt catalog cache entry",
			zap.Int64("station_id", stationID), zap.Error(err))
		_ = c.client.Del(ctx, catalogKey(stationID)).Err()
		return nil, false
	}
	return ms, true
}

// Put stores a full catalog fetch. Failures are logged, not surfaced; the
// cache is an optimization, never a dependency.
func (c *Cache) Put(ctx context.Context, stationID int64, ms []models.VehicleModel) {
	data, err := json.Marshal(ms)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, catalogKey(stationID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed",
			zap.Int64("station_id", stationID), zap.Error(err))
	}
}
