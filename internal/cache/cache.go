package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores JSON-serialisable values under string keys.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key. Zero ttl = no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	// Delete removes the keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Config selects and tunes a cache backend.
type Config struct {
	Backend       string        `env:"CACHE_BACKEND" env-default:"memory"`
	RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	KeyPrefix     string        `env:"CACHE_KEY_PREFIX" env-default:"sportsbook:"`
	OpTimeout     time.Duration `env:"CACHE_OP_TIMEOUT" env-default:"50ms"`
}

// New builds a cache for the configured backend.
func New[V any](cfg Config) (Cache[V], error) {
	switch cfg.Backend {
	case RedisBackend:
		return NewRedisCache[V](&RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
			OpTimeout: cfg.OpTimeout,
		}), nil
	case MemoryBackend, "":
		return NewMemoryCache[V](), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
