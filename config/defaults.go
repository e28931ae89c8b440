package config

import (
	"strings"
	"time"
)

const (
	defaultMaxRequestBodySize    = "100KB"
	defaultCacheProvider         = "memory"
	defaultCacheTTL              = 5 * time.Minute
	defaultDeliveryFee           = "2.99"
	defaultEstimatedDeliveryTime = "30-45 min"
	defaultAuthRequestsPerSecond = 5
	defaultAuthBurst             = 10
	defaultRateLimitExpiry       = 3 * time.Minute
	defaultWorkerPort            = 8085
	defaultWorkerHandlerTimeout  = 10 * time.Second
)

func orDefault[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Cache == nil {
		cfg.Cache = &CacheConfig{}
	}
	orDefault(&cfg.Cache.Provider, defaultCacheProvider)
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = defaultCacheTTL
	}

	if cfg.Checkout == nil {
		cfg.Checkout = &CheckoutConfig{}
	}
	cfg.Checkout.DeliveryFee = strings.TrimSpace(cfg.Checkout.DeliveryFee)
	cfg.Checkout.EstimatedDeliveryTime = strings.TrimSpace(cfg.Checkout.EstimatedDeliveryTime)
	orDefault(&cfg.Checkout.DeliveryFee, defaultDeliveryFee)
	orDefault(&cfg.Checkout.EstimatedDeliveryTime, defaultEstimatedDeliveryTime)

	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = defaultAuthRequestsPerSecond
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = defaultAuthBurst
	}
	if cfg.RateLimit.ExpiresIn <= 0 {
		cfg.RateLimit.ExpiresIn = defaultRateLimitExpiry
	}

	if cfg.Worker == nil {
		cfg.Worker = &WorkerConfig{}
	}
	if cfg.Worker.Port <= 0 {
		cfg.Worker.Port = defaultWorkerPort
	}
	if cfg.Worker.HandlerTimeout <= 0 {
		cfg.Worker.HandlerTimeout = defaultWorkerHandlerTimeout
	}
}
