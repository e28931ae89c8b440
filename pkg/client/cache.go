package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Entities of the query cache.
const (
	EntityRestaurants      = "restaurants"
	EntityRestaurant       = "restaurant"
	EntityCategories       = "categories"
	EntityCart             = "cart"
	EntityOrders           = "orders"
	EntityAdminStats       = "admin-stats"
	EntityAdminRestaurants = "admin-restaurants"
	EntityAdminOrders      = "admin-orders"
	EntityAdminUsers       = "admin-users"
)

// ScopeAll is the scope of collections that do not depend on the user.
const ScopeAll = "all"

// QueryKey addresses one cached query result.
type QueryKey struct {
	Entity string
	Scope  string
}

func (k QueryKey) String() string {
	return k.Entity + ":" + k.Scope
}

// queryCache holds decoded results. Clearing bumps the generation and
// invalidating bumps the key's version, so a fetch that started before either
// cannot repopulate the cache.
type queryCache struct {
	mu         sync.RWMutex
	entries    map[QueryKey]any
	versions   map[QueryKey]uint64
	generation uint64
	group      singleflight.Group
}

// stamp is the cache state a fetch started under.
type stamp struct {
	generation uint64
	version    uint64
}

func newQueryCache() *queryCache {
	return &queryCache{
		entries:  make(map[QueryKey]any),
		versions: make(map[QueryKey]uint64),
	}
}

func (qc *queryCache) get(key QueryKey) (any, stamp, bool) {
	qc.mu.RLock()
	defer qc.mu.RUnlock()

	value, ok := qc.entries[key]

	return value, stamp{generation: qc.generation, version: qc.versions[key]}, ok
}

func (qc *queryCache) set(key QueryKey, value any, at stamp) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if at.generation != qc.generation || at.version != qc.versions[key] {
		return
	}
	qc.entries[key] = value
}

func (qc *queryCache) invalidate(keys ...QueryKey) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	for _, key := range keys {
		delete(qc.entries, key)
		qc.versions[key]++
	}
}

func (qc *queryCache) clear() {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.entries = make(map[QueryKey]any)
	qc.generation++
}

// query serves key from the cache or fetches it once for all concurrent
// callers. Failures are not cached.
func query[T any](ctx context.Context, qc *queryCache, key QueryKey, fetch func(context.Context) (T, error)) (T, error) {
	cached, at, ok := qc.get(key)
	if ok {
		if value, isT := cached.(T); isT {
			return value, nil
		}
	}

	flightKey := fmt.Sprintf("%d.%d|%s", at.generation, at.version, key)
	value, err, _ := qc.group.Do(flightKey, func() (any, error) {
		fresh, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		qc.set(key, fresh, at)

		return fresh, nil
	})
	if err != nil {
		var zero T

		return zero, err
	}

	return value.(T), nil
}

// Invalidate drops cached results so the next read refetches them.
func (c *Client) Invalidate(keys ...QueryKey) {
	c.cache.invalidate(keys...)
}
