package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/cache"
	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
)

const (
	cacheBackendMemory = "memory"
	cacheBackendRedis  = "redis"

	redisPingTimeout = 2 * time.Second
)

// buildCache returns the configured result cache and a closer for it.
// An unreachable Redis falls back to the in-memory cache.
func buildCache(cfg config.CacheConfig, logger *slog.Logger) (cache.Cache, func() error) {
	noop := func() error { return nil }
	if cfg.Backend != cacheBackendRedis {
		if cfg.Backend != "" && cfg.Backend != cacheBackendMemory && logger != nil {
			logger.Warn("unknown cache backend, using memory", slog.String("backend", cfg.Backend))
		}
		return cache.NewMemoryCache(), noop
	}

	if cfg.RedisAddr == "" {
		if logger != nil {
			logger.Warn("redis cache selected without address, using memory")
		}
		return cache.NewMemoryCache(), noop
	}
	rc := cache.NewRedisCache(cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		if logger != nil {
			logger.Warn("redis unreachable, using memory cache", slog.String("addr", cfg.RedisAddr), "err", err)
		}
		_ = rc.Close()
		return cache.NewMemoryCache(), noop
	}
	if logger != nil {
		logger.Info("using redis cache", slog.String("addr", cfg.RedisAddr))
	}
	return rc, rc.Close
}
