package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store backed by a Redis (or Valkey) server, for
// deployments where analyses should survive process restarts or be shared
// between replicas.
type Redis struct {
	config    Config
	client    *redis.Client
	connected bool
}

// NewRedis creates a new Redis store.
func NewRedis(config Config) *Redis {
	if config.Port == 0 {
		config.Port = 6379
	}
	return &Redis{config: config}
}

// Connect establishes and verifies the connection.
func (r *Redis) Connect() error {
	if r.connected {
		return nil
	}

	r.client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", r.config.Host, r.config.Port),
		Password: r.config.Password,
		DB:       r.config.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	r.connected = true
	return nil
}

// Close closes the connection.
func (r *Redis) Close() error {
	if !r.connected {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return err
	}
	r.connected = false
	return nil
}

// IsConnected returns true if connected.
func (r *Redis) IsConnected() bool {
	return r.connected
}

// Type returns "redis".
func (r *Redis) Type() string {
	return "redis"
}

// Get retrieves a value.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if !r.connected {
		return nil, ErrNotConnected
	}

	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a value with an optional expiration.
func (r *Redis) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if !r.connected {
		return ErrNotConnected
	}
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Delete removes a value.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.connected {
		return ErrNotConnected
	}
	return r.client.Del(ctx, key).Err()
}

// Exists checks whether a key is present.
func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	if !r.connected {
		return false, ErrNotConnected
	}
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
