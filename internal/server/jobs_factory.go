package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/mlb-matchup-service/internal/archive"
	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
	"github.com/preston-bernstein/mlb-matchup-service/internal/dailystats"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
)

const dailyStatsTask = "daily_stats"

// openArchive opens the SQLite archive, returning nil when it cannot be opened.
func openArchive(ctx context.Context, cfg config.JobConfig, logger *slog.Logger) *archive.Store {
	if cfg.ArchivePath == "" {
		return nil
	}
	store, err := archive.Open(ctx, cfg.ArchivePath)
	if err != nil {
		if logger != nil {
			logger.Warn("stats archive unavailable", slog.String("path", cfg.ArchivePath), "err", err)
		}
		return nil
	}
	return store
}

func buildDailyJob(cfg config.Config, c core, store *archive.Store, logger *slog.Logger) *dailystats.Job {
	var arch dailystats.Archive
	if store != nil {
		arch = store
	}
	return dailystats.New(c.enumerator, c.service, arch, dailystats.Config{
		DataDir: cfg.Job.DataDir,
		Workers: cfg.Stats.Workers,
	}, logger)
}

// DailyStats is a standalone daily stats job with its resources.
type DailyStats struct {
	Job     *dailystats.Job
	archive *archive.Store
	core    core
}

// NewDailyStats wires the daily stats job the same way the server does.
func NewDailyStats(ctx context.Context, cfg config.Config, logger *slog.Logger) *DailyStats {
	recorder := metrics.NewRecorder()
	c := buildCore(cfg, logger, recorder, newProviderFactory(logger, recorder).build(cfg))
	store := openArchive(ctx, cfg.Job, logger)
	return &DailyStats{
		Job:     buildDailyJob(cfg, c, store, logger),
		archive: store,
		core:    c,
	}
}

// Close releases the archive and cache connections.
func (d *DailyStats) Close() error {
	var firstErr error
	if d.archive != nil {
		firstErr = d.archive.Close()
	}
	if d.core.closeCache != nil {
		if err := d.core.closeCache(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
