package server

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
)

// providerFactory assembles the upstreams with the shared retry wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) upstreams {
	return f.wrap(cfg, selectUpstreams(cfg, f.logger))
}

// wrap puts one Retrier in front of both upstreams so they share a policy.
func (f providerFactory) wrap(cfg config.Config, u upstreams) upstreams {
	retrier := providers.NewRetrier(providers.RetryConfig{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff:     cfg.Retry.Backoff,
		Logger:      f.logger,
		Metrics:     f.metrics,
	})
	u.stats = providers.NewRetryingStatsAPI(u.stats, retrier, u.statsName)
	u.events = providers.NewRetryingPitchEvents(u.events, retrier, u.eventsName)
	return u
}
