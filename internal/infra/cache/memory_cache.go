package cache

import (
	"context"
	"sync"
	"time"

	"foodie/internal/domain/service"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryCache is a process-local QueryCache for single-instance deployments and tests.
type memoryCache struct {
	mu       sync.RWMutex
	entries  map[string]memoryEntry
	versions map[string]uint64
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryCache creates an in-process cache with the given default ttl.
func NewMemoryCache(ttl time.Duration) service.QueryCache {
	return newMemoryCache(ttl, time.Now)
}

func newMemoryCache(ttl time.Duration, now func() time.Time) *memoryCache {
	return &memoryCache{
		entries:  make(map[string]memoryEntry),
		versions: make(map[string]uint64),
		ttl:      ttl,
		now:      now,
	}
}

func (c *memoryCache) Get(_ context.Context, key service.CacheKey) ([]byte, uint64, error) {
	c.mu.RLock()
	entry, ok := c.entries[key.String()]
	version := c.versions[key.String()]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, version, service.ErrCacheMiss
	}

	value := make([]byte, len(entry.value))
	copy(value, entry.value)

	return value, version, nil
}

func (c *memoryCache) Set(_ context.Context, key service.CacheKey, value []byte, ttl time.Duration, version uint64) error {
	if ttl <= 0 {
		ttl = c.ttl
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.versions[key.String()] != version {
		return service.ErrVersionChanged
	}
	c.evictExpiredLocked()
	c.entries[key.String()] = memoryEntry{value: stored, expiresAt: c.now().Add(ttl)}

	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, keys ...service.CacheKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key.String())
		c.versions[key.String()]++
	}

	return nil
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	clear(c.versions)

	return nil
}

func (c *memoryCache) evictExpiredLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
