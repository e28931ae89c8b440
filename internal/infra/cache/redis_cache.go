package cache

import (
	"context"
	"strconv"
	"time"

	"foodie/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// setIfVersion stores ARGV[1] under KEYS[1] only while the version counter in
// KEYS[2] still equals ARGV[2]. ARGV[3] is the ttl in milliseconds, 0 for none.
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[2] then
	return 0
end
if ARGV[3] == '0' then
	redis.call('SET', KEYS[1], ARGV[1])
else
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
end
return 1
`)

// redisCache stores query results as plain string values under entity:scope
// keys. The version of a key lives next to it under <key>:v.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache wraps an existing client. Keys are stored as <prefix><entity>:<scope>.
func NewRedisCache(client *redis.Client, ttl time.Duration, prefix string) service.QueryCache {
	return &redisCache{client: client, ttl: ttl, prefix: prefix}
}

func (c *redisCache) key(key service.CacheKey) string {
	return c.prefix + key.String()
}

func (c *redisCache) versionKey(key service.CacheKey) string {
	return c.key(key) + ":v"
}

// Get reads the value and its version in one MGET.
func (c *redisCache) Get(ctx context.Context, key service.CacheKey) ([]byte, uint64, error) {
	values, err := c.client.MGet(ctx, c.key(key), c.versionKey(key)).Result()
	if err != nil {
		return nil, 0, errors.Wrapf(err, "redis get %s", key)
	}

	var version uint64
	if raw, ok := values[1].(string); ok {
		version, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "redis version of %s", key)
		}
	}

	value, ok := values[0].(string)
	if !ok {
		return nil, version, service.ErrCacheMiss
	}

	return []byte(value), version, nil
}

// Set stores value under key if no invalidation happened since version was read.
func (c *redisCache) Set(ctx context.Context, key service.CacheKey, value []byte, ttl time.Duration, version uint64) error {
	if ttl <= 0 {
		ttl = c.ttl
	}

	stored, err := setIfVersion.Run(ctx, c.client,
		[]string{c.key(key), c.versionKey(key)},
		value, strconv.FormatUint(version, 10), ttl.Milliseconds(),
	).Int()
	if err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}
	if stored == 0 {
		return service.ErrVersionChanged
	}

	return nil
}

// Invalidate deletes the keys and bumps their versions in one transaction.
func (c *redisCache) Invalidate(ctx context.Context, keys ...service.CacheKey) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Del(ctx, c.key(key))
			pipe.Incr(ctx, c.versionKey(key))
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "redis invalidate")
	}

	return nil
}

// Close closes the client.
func (c *redisCache) Close() error {
	return errors.WithStack(c.client.Close())
}
