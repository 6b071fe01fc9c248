package location

import (
	"context"
	"fmt"

	"snow-tracker/internal/config"
	"snow-tracker/internal/logger"
)

// NewFromConfig wires the cache backend and upstream fetcher selected by cfg.
// The returned close func releases the Redis client when one was opened.
func NewFromConfig(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Service, func(), error) {
	fetcher, err := NewFetcher(FetcherConfig{
		URL:              cfg.Upstream.GeolocationURL,
		Token:            cfg.Upstream.IPInfoToken,
		Timeout:          cfg.Upstream.Timeout,
		FailureThreshold: cfg.Upstream.FailureThreshold,
		OpenTimeout:      cfg.Upstream.OpenTimeout,
	}, nil, log)
	if err != nil {
		return nil, nil, err
	}

	noop := func() {}
	switch cfg.Cache.Type {
	case config.CacheTypeSimple:
		log.Info("CACHE", "Using in-process location cache")
		return NewService(NewMemoryCache(), fetcher, cfg.Cache.DefaultTimeout, log).WithFetchTimeout(cfg.Upstream.Timeout), noop, nil
	case config.CacheTypeRedis:
		client, err := NewRedisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, nil, err
		}
		log.Info("CACHE", fmt.Sprintf("✅ Redis location cache connected to %s", cfg.Redis.Addr))
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warn("CACHE", fmt.Sprintf("Failed to close Redis client: %v", err))
			}
		}
		return NewService(NewRedisCache(client), fetcher, cfg.Cache.DefaultTimeout, log).WithFetchTimeout(cfg.Upstream.Timeout), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unsupported CACHE_TYPE %q", cfg.Cache.Type)
	}
}
