package server

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-matchup-service/internal/app/matchups"
	"github.com/preston-bernstein/mlb-matchup-service/internal/cache"
	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
	"github.com/preston-bernstein/mlb-matchup-service/internal/lineup"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
	"github.com/preston-bernstein/mlb-matchup-service/internal/resolver"
)

// core is everything shared by the HTTP server and the daily job binary.
type core struct {
	upstreams  upstreams
	snapshots  snapshotComponents
	enumerator *lineup.Enumerator
	service    *matchups.Service
	closeCache func() error
}

func buildCore(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, u upstreams) core {
	store, closeCache := buildCache(cfg.Cache, logger)
	memo := cache.Memo{Cache: store, Metrics: recorder, Logger: logger}

	snaps := buildSnapshots(cfg.Snapshots, u.stats, logger)
	enum := lineup.New(u.stats, lineup.Options{
		Store:  snaps.store,
		Writer: snaps.writer,
		MaxAge: cfg.Snapshots.MaxAge,
		Logger: logger,
	})
	svc := matchups.NewService(resolver.New(u.stats, memo, logger), u.events, enum, matchups.Options{
		Memo:        memo,
		TTL:         cfg.Cache.TTL,
		Workers:     cfg.Stats.Workers,
		SeasonStart: cfg.Stats.SeasonStart,
		Logger:      logger,
	})

	return core{
		upstreams:  u,
		snapshots:  snaps,
		enumerator: enum,
		service:    svc,
		closeCache: closeCache,
	}
}
