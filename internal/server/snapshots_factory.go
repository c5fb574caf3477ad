package server

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/snapshots"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
	syncer *snapshots.Syncer
}

// buildSnapshots roots the schedule disk cache at cfg.Dir. The syncer only
// preloads when cfg.Enabled is set; the store and writer are always used.
func buildSnapshots(cfg config.SnapshotConfig, provider providers.ScheduleProvider, logger *slog.Logger) snapshotComponents {
	writer := snapshots.NewWriter(cfg.Dir, cfg.RetentionDays)
	store := snapshots.NewFSStore(cfg.Dir)
	syncer := snapshots.NewSyncer(provider, writer, snapshots.SyncConfig{
		Enabled:      cfg.Enabled,
		FutureDays:   cfg.FutureDays,
		MaxAge:       cfg.MaxAge,
		Interval:     cfg.Interval,
		DailyHourUTC: cfg.DailyHourUTC,
	}, logger)

	return snapshotComponents{
		store:  store,
		writer: writer,
		syncer: syncer,
	}
}
