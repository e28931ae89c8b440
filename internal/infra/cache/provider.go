// Package cache provides the QueryCache backends for read-through query caching.
package cache

import (
	"context"
	"log/slog"

	"foodie/config"
	"foodie/internal/domain/constants"
	"foodie/internal/domain/lifecycle"
	"foodie/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params holds dependencies for the QueryCache, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New creates a QueryCache based on configuration. Redis connectivity is
// checked on start so a bad address fails fast.
func New(params Params) (service.QueryCache, error) {
	cfg := params.Config.Cache
	logger := params.Logger

	if cfg == nil {
		return nil, errors.New("cache is not configured")
	}

	var queryCache service.QueryCache

	switch cfg.Provider {
	case constants.CacheProviderMemory, "":
		logger.Info("Using in-memory query cache", slog.Duration("ttl", cfg.TTL))

		queryCache = NewMemoryCache(cfg.TTL)

	case constants.CacheProviderRedis:
		redisCfg := params.Config.Redis
		if redisCfg == nil || redisCfg.Addr == "" {
			return nil, errors.New("redis address is required for redis cache provider")
		}

		client := redis.NewClient(&redis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		params.Lc.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				if err := client.Ping(ctx).Err(); err != nil {
					return errors.Wrap(err, "failed to ping Redis")
				}

				return nil
			},
		})

		logger.Info("Using Redis query cache",
			slog.String("addr", redisCfg.Addr),
			slog.Duration("ttl", cfg.TTL),
		)

		queryCache = NewRedisCache(client, cfg.TTL, params.Config.Env.ServiceName+":")

	default:
		return nil, errors.Errorf("unknown cache provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing query cache")

			return queryCache.Close()
		},
	})

	return queryCache, nil
}
