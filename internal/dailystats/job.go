// Package dailystats pulls per-pitch-type stats for the day's probable
// pitchers and lineups, writing CSV files and archiving the rows.
package dailystats

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/mlb-matchup-service/internal/app/matchups"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/export"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/poller"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

const defaultWorkers = 10

// Schedule lists the day's games and their lineups.
type Schedule interface {
	GamesOn(ctx context.Context, date string) ([]schedule.Game, error)
	ResolveLineups(ctx context.Context, game schedule.Game, date string) (schedule.Lineups, string, error)
}

// StatsSource computes one player's stats.
type StatsSource interface {
	DateRange(start, end string) (matchups.DateRange, error)
	PlayerStats(ctx context.Context, role pitches.Role, name string, rng matchups.DateRange) matchups.PlayerStats
}

// Archive stores computed rows. Optional.
type Archive interface {
	SaveRows(ctx context.Context, runDate string, role pitches.Role, player players.ResolvedPlayer, rows []pitches.PitchTypeStatRow) error
}

// Config configures a Job.
type Config struct {
	DataDir string
	Workers int
}

// Result summarizes one run.
type Result struct {
	Date        string   `json:"date"`
	Pitchers    int      `json:"pitchers"`
	Batters     int      `json:"batters"`
	Files       []string `json:"files"`
	ArchiveErrs int      `json:"archiveErrors"`
}

// Job is the daily stat pull.
type Job struct {
	schedule Schedule
	stats    StatsSource
	archive  Archive
	cfg      Config
	logger   *slog.Logger
	now      func() time.Time
}

// New builds a Job. archive may be nil.
func New(sched Schedule, stats StatsSource, archive Archive, cfg Config, logger *slog.Logger) *Job {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data/daily_stats"
	}
	return &Job{schedule: sched, stats: stats, archive: archive, cfg: cfg, logger: logger, now: time.Now}
}

// PitchersFile and BattersFile name the CSV outputs for a run date.
func PitchersFile(date string) string { return fmt.Sprintf("pitchers_by_pitch_%s.csv", date) }
func BattersFile(date string) string  { return fmt.Sprintf("batters_by_pitch_%s.csv", date) }

// Task adapts the job to the poller, reporting the number of players with data.
func (j *Job) Task() poller.Task {
	return func(ctx context.Context) (int, error) {
		res, err := j.Run(ctx)
		return res.Pitchers + res.Batters, err
	}
}

// Run pulls stats for today's (Eastern) probable pitchers and lineup batters.
func (j *Job) Run(ctx context.Context) (Result, error) {
	date := timeutil.TodayEastern(j.now())
	res := Result{Date: date, Files: []string{}}

	rng, err := j.stats.DateRange("", date)
	if err != nil {
		return res, err
	}
	games, err := j.schedule.GamesOn(ctx, date)
	if err != nil {
		return res, fmt.Errorf("schedule %s: %w", date, err)
	}

	pitchers, batters := j.collect(ctx, games, date)
	pitcherStats := j.compute(ctx, pitches.RolePitcher, pitchers, rng)
	batterStats := j.compute(ctx, pitches.RoleBatter, batters, rng)

	for _, out := range []struct {
		role  pitches.Role
		file  string
		stats []matchups.PlayerStats
		count *int
	}{
		{pitches.RolePitcher, PitchersFile(date), pitcherStats, &res.Pitchers},
		{pitches.RoleBatter, BattersFile(date), batterStats, &res.Batters},
	} {
		records := make([]export.StatsRecord, 0, len(out.stats))
		for _, ps := range out.stats {
			if ps.Player == nil || len(ps.Rows) == 0 {
				continue
			}
			records = append(records, export.StatsRecord{PlayerID: ps.Player.PlayerID, PlayerName: ps.Player.FullName, Rows: ps.Rows})
			if j.archive != nil {
				if err := j.archive.SaveRows(ctx, date, out.role, *ps.Player, ps.Rows); err != nil {
					res.ArchiveErrs++
					logging.Warn(j.logger, "archive write failed",
						logging.FieldPlayer, ps.Name, logging.FieldRole, string(out.role), "err", err)
				}
			}
		}
		*out.count = len(records)

		path := filepath.Join(j.cfg.DataDir, out.file)
		if err := writeStatsFile(path, out.role, records); err != nil {
			return res, err
		}
		res.Files = append(res.Files, path)
	}

	logging.Info(j.logger, "daily stats written",
		logging.FieldDate, date,
		"pitchers", res.Pitchers,
		"batters", res.Batters,
	)
	return res, nil
}

// collect gathers unique probable pitchers and lineup batters, in schedule order.
func (j *Job) collect(ctx context.Context, games []schedule.Game, date string) (pitchers, batters []string) {
	seenP := map[string]bool{}
	seenB := map[string]bool{}
	for _, g := range games {
		for _, name := range []string{g.AwayProbable, g.HomeProbable} {
			if name != "" && !seenP[name] {
				seenP[name] = true
				pitchers = append(pitchers, name)
			}
		}
		lineups, _, _ := j.schedule.ResolveLineups(ctx, g, date)
		for _, side := range [][]schedule.LineupEntry{lineups.Away, lineups.Home} {
			for _, e := range schedule.Batters(side) {
				if seenB[e.Name] {
					continue
				}
				seenB[e.Name] = true
				batters = append(batters, e.Name)
			}
		}
	}
	return pitchers, batters
}

func (j *Job) compute(ctx context.Context, role pitches.Role, names []string, rng matchups.DateRange) []matchups.PlayerStats {
	out := make([]matchups.PlayerStats, len(names))
	var g errgroup.Group
	g.SetLimit(j.cfg.Workers)
	for i, name := range names {
		g.Go(func() error {
			out[i] = j.stats.PlayerStats(ctx, role, name, rng)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func writeStatsFile(path string, role pitches.Role, records []export.StatsRecord) error {
	var buf bytes.Buffer
	if err := export.WriteStatsCSV(&buf, role, records); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
