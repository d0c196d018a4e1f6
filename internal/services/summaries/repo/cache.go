package repo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "summary:"

// Cache keeps summary texts in redis; a nil Cache misses every lookup
type Cache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewCache returns nil when rdb is nil
func NewCache(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Key is the redis key of a summary id
func Key(id string) string { return keyPrefix + id }

// Get returns the cached text and whether it was present
func (c *Cache) Get(ctx context.Context, id string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	s, err := c.rdb.Get(ctx, Key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// Set stores text with the configured ttl; zero ttl keeps it forever
func (c *Cache) Set(ctx context.Context, id, text string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Set(ctx, Key(id), text, c.ttl).Err()
}
