package admin

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	referenceKey = "admin:reference"
	statsKey     = "admin:stats"

	defaultReferenceTTL = 10 * time.Minute
	defaultStatsTTL     = 2 * time.Minute
)

// Cache is the Redis-backed RefCache implementation.
type Cache struct {
	client       *redis.Client
	referenceTTL time.Duration
	statsTTL     time.Duration
}

var _ RefCache = (*Cache)(nil)

// NewCache wraps a Redis client. Zero TTLs fall back to defaults.
func NewCache(client *redis.Client, referenceTTL, statsTTL time.Duration) *Cache {
	if referenceTTL <= 0 {
		referenceTTL = defaultReferenceTTL
	}
	if statsTTL <= 0 {
		statsTTL = defaultStatsTTL
	}
	return &Cache{client: client, referenceTTL: referenceTTL, statsTTL: statsTTL}
}

func (c *Cache) GetReference(ctx context.Context) (*ReferenceData, error) {
	var data ReferenceData
	if ok, err := c.get(ctx, referenceKey, &data); !ok {
		return nil, err
	}
	return &data, nil
}

func (c *Cache) SetReference(ctx context.Context, data ReferenceData) error {
	return c.set(ctx, referenceKey, data, c.referenceTTL)
}

func (c *Cache) GetStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if ok, err := c.get(ctx, statsKey, &stats); !ok {
		return nil, err
	}
	return &stats, nil
}

func (c *Cache) SetStats(ctx context.Context, stats DashboardStats) error {
	return c.set(ctx, statsKey, stats, c.statsTTL)
}

func (c *Cache) get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}
