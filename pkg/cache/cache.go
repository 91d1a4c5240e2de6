package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Service is the cache contract shared by the memory and Redis backends.
// Values are stored as JSON; Get unmarshals into dest.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
