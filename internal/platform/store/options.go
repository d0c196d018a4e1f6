package store

import (
	"sellerbot/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithRedis injects an existing client; RedisConfig is then ignored
func WithRedis(c redis.UniversalClient) Option {
	return func(s *Store) error {
		s.Redis = c
		return nil
	}
}

// WithBus injects a publisher; NATSConfig is then ignored
func WithBus(b Bus) Option {
	return func(s *Store) error {
		s.Bus = b
		return nil
	}
}
