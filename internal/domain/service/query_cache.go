package service

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned by QueryCache.Get when the key holds no value.
	ErrCacheMiss = errors.New("cache miss")

	// ErrVersionChanged is returned by QueryCache.Set when the key was
	// invalidated after the version passed to Set was read.
	ErrVersionChanged = errors.New("cache key version changed")
)

// Cache entities. A key is an entity plus a scope, e.g. cart:<user id>.
const (
	CacheEntityRestaurants      = "restaurants"
	CacheEntityRestaurant       = "restaurant"
	CacheEntityCategories       = "categories"
	CacheEntityCart             = "cart"
	CacheEntityOrders           = "orders"
	CacheEntityAdminStats       = "admin-stats"
	CacheEntityAdminRestaurants = "admin-restaurants"
	CacheEntityAdminOrders      = "admin-orders"
	CacheEntityAdminUsers       = "admin-users"

	CacheScopeAll = "all"
)

// CacheKey identifies one cached query result.
type CacheKey struct {
	Entity string
	Scope  string
}

// String renders the key as entity:scope.
func (k CacheKey) String() string {
	return k.Entity + ":" + k.Scope
}

// QueryCache stores serialized query results. Writers invalidate keys and never patch values.
//
// Every key carries a version that Invalidate bumps. A value loaded after a
// Get is stored with the version that Get reported, so a load that overlapped
// an invalidation cannot put its result back.
type QueryCache interface {
	// Get returns the cached bytes and the key's current version. On a miss
	// the error is ErrCacheMiss and the version is still valid.
	Get(ctx context.Context, key CacheKey) ([]byte, uint64, error)

	// Set stores value under key for ttl if the key is still at version. A
	// zero ttl uses the cache default. Otherwise it returns ErrVersionChanged.
	Set(ctx context.Context, key CacheKey, value []byte, ttl time.Duration, version uint64) error

	// Invalidate removes the given keys and bumps their versions.
	Invalidate(ctx context.Context, keys ...CacheKey) error

	// Close releases the backing connection.
	Close() error
}
