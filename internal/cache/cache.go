// Package cache provides the key-value backends used for read-through
// caching of translations.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/alexivanou/field-translations/internal/config"
)

// Cache is a string key-value store with per-entry expiry.
// A ttl of zero means the entry never expires.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Counter is implemented by backends that can report how many entries
// share a key prefix.
type Counter interface {
	Count(ctx context.Context, prefix string) (int, error)
}

// Error wraps a backend failure with the operation and key involved.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds the backend selected by cfg.Driver. It returns a nil Cache when
// caching is disabled, so no backend is dialled. Redis connects lazily; use
// RedisCache.Ping to check reachability.
func New(cfg config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Driver {
	case config.CacheDriverRedis:
		rc, err := NewRedisCache(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return NewMemoryCache(), nil
	}
}
