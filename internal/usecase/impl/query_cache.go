package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"foodie/config"
	deliverycontext "foodie/internal/delivery/context"
	"foodie/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// queryCache reads through a service.QueryCache. Cache failures are logged
// and the loader result is served, so a broken cache never fails a request.
type queryCache struct {
	cache  service.QueryCache
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func newQueryCache(cache service.QueryCache, cfg *config.Config, logger *slog.Logger) *queryCache {
	var ttl time.Duration
	if cfg != nil && cfg.Cache != nil {
		ttl = cfg.Cache.TTL
	}

	return &queryCache{cache: cache, ttl: ttl, logger: logger}
}

func (qc *queryCache) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, qc.logger)
}

// fetch returns the value stored under key, loading and storing it on a miss.
// Concurrent misses at the same key version share one load. A load that
// overlaps an invalidation is served to its callers but not stored, and
// readers arriving after the invalidation start a load of their own.
func fetch[T any](ctx context.Context, qc *queryCache, key service.CacheKey, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if qc == nil || qc.cache == nil {
		return load(ctx)
	}

	cached, version, err := qc.cache.Get(ctx, key)
	if err == nil {
		var value T
		decodeErr := json.Unmarshal(cached, &value)
		if decodeErr == nil {
			return value, nil
		}
		qc.log(ctx).Warn("Cached value is corrupt, reloading", slog.String("key", key.String()), slog.Any("error", decodeErr))
		qc.invalidate(ctx, key)

		return load(ctx)
	}
	store := true
	if !errors.Is(err, service.ErrCacheMiss) {
		qc.log(ctx).Warn("Cache read failed", slog.String("key", key.String()), slog.Any("error", err))
		store = false
	}

	flightKey := key.String() + "@" + strconv.FormatUint(version, 10)
	raw, err, _ := qc.group.Do(flightKey, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode cached value")
		}

		if store {
			qc.store(ctx, key, encoded, version)
		}

		return encoded, nil
	})
	if err != nil {
		return zero, err
	}

	// Each caller decodes its own copy.
	var value T
	if err := json.Unmarshal(raw.([]byte), &value); err != nil {
		return zero, errors.Wrap(err, "failed to decode loaded value")
	}

	return value, nil
}

func (qc *queryCache) store(ctx context.Context, key service.CacheKey, encoded []byte, version uint64) {
	err := qc.cache.Set(ctx, key, encoded, qc.ttl, version)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrVersionChanged):
		qc.log(ctx).Debug("Key invalidated during load, result not cached", slog.String("key", key.String()))
	default:
		qc.log(ctx).Warn("Cache write failed", slog.String("key", key.String()), slog.Any("error", err))
	}
}

// invalidate drops keys after a write. Readers refetch on their next access.
func (qc *queryCache) invalidate(ctx context.Context, keys ...service.CacheKey) {
	if qc == nil || qc.cache == nil || len(keys) == 0 {
		return
	}

	if err := qc.cache.Invalidate(ctx, keys...); err != nil {
		qc.log(ctx).Warn("Cache invalidation failed", slog.Any("keys", keys), slog.Any("error", err))
	}
}

func userKey(entityName string, userID uuid.UUID) service.CacheKey {
	return service.CacheKey{Entity: entityName, Scope: userID.String()}
}

func globalKey(entityName string) service.CacheKey {
	return service.CacheKey{Entity: entityName, Scope: service.CacheScopeAll}
}
