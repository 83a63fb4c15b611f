// Package cache provides the analysis result cache: serialized analyses
// keyed by input fingerprint or analysis ID, with a TTL so repeated triage
// of the same pasted headers skips re-parsing.
package cache

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrNotFound     = errors.New("key not found in cache")
	ErrNotConnected = errors.New("not connected to cache")
)

// Store is the interface every cache backend must satisfy. Values are
// opaque byte slices (JSON-encoded analyses).
type Store interface {
	// Connect establishes a connection to the backend
	Connect() error

	// Close closes the connection to the backend
	Close() error

	// IsConnected returns true if the store is usable
	IsConnected() bool

	// Type returns the backend type ("memory", "redis", "memcached")
	Type() string

	// Get retrieves a value, ErrNotFound when absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an expiration; zero means no expiry
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error

	// Delete removes a value
	Delete(ctx context.Context, key string) error

	// Exists checks whether a key is present and unexpired
	Exists(ctx context.Context, key string) (bool, error)
}

// Config selects and parameterizes a cache backend.
type Config struct {
	Type     string // "memory", "redis" or "memcached"
	Host     string
	Port     int
	Password string // Redis only
	Database int    // Redis only
}

// Factory creates a cache store from configuration. An empty type selects
// the in-memory backend.
func Factory(config Config) (Store, error) {
	switch config.Type {
	case "", "memory":
		return NewMemory(), nil
	case "redis":
		return NewRedis(config), nil
	case "memcached":
		return NewMemcached(config), nil
	default:
		return nil, errors.New("unsupported cache type: " + config.Type)
	}
}
