package cache

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"

	"github.com/golangid/botkit/bothelper"
)

// ErrCacheMiss returned by MemoryCache Get on missing or expired key
var ErrCacheMiss = errors.New("cache: key not found")

type memoryItem struct {
	value    []byte
	expireAt time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expireAt.IsZero() && now.After(i.expireAt)
}

// MemoryCache in process implement interfaces.Cache, used when no redis configured
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryCache constructor
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryItem), now: time.Now}
}

// Get method
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[key]
	if !ok || item.expired(m.now()) {
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

// GetTTL method, -1 for key without expiry
func (m *MemoryCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[key]
	if !ok || item.expired(m.now()) {
		return 0, ErrCacheMiss
	}
	if item.expireAt.IsZero() {
		return -1, nil
	}
	return item.expireAt.Sub(m.now()), nil
}

// Set method
func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, expire time.Duration) error {
	item := memoryItem{value: bothelper.ToBytes(value)}
	if expire > 0 {
		item.expireAt = m.now().Add(expire)
	}
	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

// Exists method
func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	return err == nil, nil
}

// Delete method, glob pattern supported
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if ok, _ := path.Match(key, k); ok || k == key {
			delete(m.items, k)
		}
	}
	return nil
}
