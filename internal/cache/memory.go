package cache

import (
	"context"
	"sync"
	"time"
)

// item is a cached value with its expiration as a unix-nano timestamp; zero
// means the item never expires.
type item struct {
	value      []byte
	expiration int64
}

// Memory implements Store with an in-process map. It is the default backend
// and needs no external service.
type Memory struct {
	items     map[string]item
	mu        sync.RWMutex
	connected bool
	janitor   *time.Ticker
	stopChan  chan struct{}
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]item),
	}
}

// Connect starts the janitor that sweeps expired entries.
func (m *Memory) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return nil
	}

	m.janitor = time.NewTicker(time.Minute)
	m.stopChan = make(chan struct{})

	go func() {
		for {
			select {
			case <-m.janitor.C:
				m.deleteExpired()
			case <-m.stopChan:
				m.janitor.Stop()
				return
			}
		}
	}()

	m.connected = true
	return nil
}

// Close stops the janitor and drops all entries.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	close(m.stopChan)
	m.items = make(map[string]item)
	m.connected = false
	return nil
}

// IsConnected returns true once Connect has run.
func (m *Memory) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// Type returns "memory".
func (m *Memory) Type() string {
	return "memory"
}

// Get retrieves a value, treating expired entries as absent.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected {
		return nil, ErrNotConnected
	}

	it, found := m.items[key]
	if !found {
		return nil, ErrNotFound
	}
	if it.expiration > 0 && time.Now().UnixNano() > it.expiration {
		return nil, ErrNotFound
	}

	return it.value, nil
}

// Set stores a value with an optional expiration.
func (m *Memory) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}

	var exp int64
	if expiration > 0 {
		exp = time.Now().Add(expiration).UnixNano()
	}
	m.items[key] = item{value: value, expiration: exp}
	return nil
}

// Delete removes a value.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}

	delete(m.items, key)
	return nil
}

// Exists checks whether a key is present and unexpired.
func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// deleteExpired removes all expired entries.
func (m *Memory) deleteExpired() {
	now := time.Now().UnixNano()

	m.mu.Lock()
	defer m.mu.Unlock()

	for key, it := range m.items {
		if it.expiration > 0 && now > it.expiration {
			delete(m.items, key)
		}
	}
}
