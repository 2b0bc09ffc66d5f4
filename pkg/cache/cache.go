package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is the subset of redis operations the cache manager needs.
type Store interface {
	GetString(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Manager handles caching operations with JSON serialization
type Manager struct {
	store Store
}

// NewManager creates a new cache manager
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Get retrieves a cached value and unmarshals it into result
func (m *Manager) Get(ctx context.Context, key string, result interface{}) error {
	data, err := m.store.GetString(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), result)
}

// Set marshals and caches a value with expiration
func (m *Manager) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	return m.store.SetWithExpiration(ctx, key, string(data), ttl)
}

// Invalidate removes keys from the cache
func (m *Manager) Invalidate(ctx context.Context, keys ...string) error {
	return m.store.Delete(ctx, keys...)
}
