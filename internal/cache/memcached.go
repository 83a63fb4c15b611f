package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Memcached implements Store backed by a memcached server.
type Memcached struct {
	config    Config
	client    *memcache.Client
	connected bool
}

// NewMemcached creates a new memcached store.
func NewMemcached(config Config) *Memcached {
	if config.Port == 0 {
		config.Port = 11211
	}
	return &Memcached{config: config}
}

// Connect establishes and verifies the connection.
func (m *Memcached) Connect() error {
	if m.connected {
		return nil
	}

	m.client = memcache.New(fmt.Sprintf("%s:%d", m.config.Host, m.config.Port))
	if err := m.client.Ping(); err != nil {
		return fmt.Errorf("failed to connect to memcached: %w", err)
	}

	m.connected = true
	return nil
}

// Close marks the store disconnected; the memcache client has no explicit
// close.
func (m *Memcached) Close() error {
	m.connected = false
	return nil
}

// IsConnected returns true if connected.
func (m *Memcached) IsConnected() bool {
	return m.connected
}

// Type returns "memcached".
func (m *Memcached) Type() string {
	return "memcached"
}

// Get retrieves a value.
func (m *Memcached) Get(_ context.Context, key string) ([]byte, error) {
	if !m.connected {
		return nil, ErrNotConnected
	}

	it, err := m.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it.Value, nil
}

// Set stores a value with an optional expiration.
func (m *Memcached) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	if !m.connected {
		return ErrNotConnected
	}

	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration / time.Second),
	})
}

// Delete removes a value.
func (m *Memcached) Delete(_ context.Context, key string) error {
	if !m.connected {
		return ErrNotConnected
	}

	err := m.client.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

// Exists checks whether a key is present.
func (m *Memcached) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
