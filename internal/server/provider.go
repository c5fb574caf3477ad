package server

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers/savant"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers/statsapi"
)

const (
	providerFixture = "fixture"
	providerMLB     = "mlb"

	upstreamStatsAPI = "statsapi"
	upstreamSavant   = "savant"
)

// upstreams pairs the Stats API with the pitch event source, each named for metrics.
type upstreams struct {
	stats      providers.StatsAPI
	statsName  string
	events     providers.PitchEventProvider
	eventsName string
}

func selectUpstreams(cfg config.Config, logger *slog.Logger) upstreams {
	switch cfg.Provider {
	case providerFixture, "":
		return fixtureUpstreams()
	case providerMLB:
		return upstreams{
			stats: statsapi.NewClient(statsapi.Config{
				BaseURL: cfg.StatsAPI.BaseURL,
				Timeout: cfg.StatsAPI.Timeout,
			}),
			statsName: upstreamStatsAPI,
			events: savant.NewClient(savant.Config{
				BaseURL: cfg.Savant.BaseURL,
				Timeout: cfg.Savant.Timeout,
			}),
			eventsName: upstreamSavant,
		}
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixtureUpstreams()
	}
}

func fixtureUpstreams() upstreams {
	p := fixture.New()
	return upstreams{stats: p, statsName: providerFixture, events: p, eventsName: providerFixture}
}
