package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
)

// Memo bundles a cache with the observers used by GetOrCompute.
type Memo struct {
	Cache   Cache
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// GetOrCompute returns the cached value for key or computes, stores and
// returns it. Values are JSON encoded. Cache failures degrade to computing;
// compute errors are returned and nothing is stored.
func GetOrCompute[T any](ctx context.Context, m Memo, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	logger := logging.FromContext(ctx, m.Logger)
	kind := Kind(key)

	if m.Cache != nil {
		raw, ok, err := m.Cache.Get(ctx, key)
		switch {
		case err != nil:
			logging.Warn(logger, "cache get failed", logging.FieldCacheKey, key, "err", err)
		case ok:
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				m.Metrics.RecordCacheLookup(kind, true)
				return v, nil
			}
			logging.Warn(logger, "cache entry undecodable", logging.FieldCacheKey, key)
		}
	}
	m.Metrics.RecordCacheLookup(kind, false)

	v, err := compute(ctx)
	if err != nil {
		return v, err
	}
	if m.Cache == nil {
		return v, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		logging.Warn(logger, "cache encode failed", logging.FieldCacheKey, key, "err", err)
		return v, nil
	}
	if err := m.Cache.Set(ctx, key, raw, ttl); err != nil {
		logging.Warn(logger, "cache set failed", logging.FieldCacheKey, key, "err", err)
	}
	return v, nil
}
