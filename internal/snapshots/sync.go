package snapshots

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

// ErrSyncerUnavailable is returned by Refresh when no provider or writer is configured.
var ErrSyncerUnavailable = errors.New("snapshot syncer not configured")

// Syncer preloads schedule snapshots and refreshes them once a day.
type Syncer struct {
	provider  providers.ScheduleProvider
	writer    *Writer
	cfg       SyncConfig
	logger    *slog.Logger
	now       func() time.Time
	newTicker func(time.Duration) *time.Ticker
}

// SyncConfig controls snapshot sync behavior.
type SyncConfig struct {
	Enabled      bool
	FutureDays   int
	MaxAge       time.Duration
	Interval     time.Duration
	DailyHourUTC int
}

// NewSyncer constructs a snapshot syncer.
func NewSyncer(provider providers.ScheduleProvider, writer *Writer, cfg SyncConfig, logger *slog.Logger) *Syncer {
	if cfg.FutureDays < 0 {
		cfg.FutureDays = 0
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 6 * time.Hour
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.DailyHourUTC < 0 || cfg.DailyHourUTC > 23 {
		cfg.DailyHourUTC = 10
	}
	return &Syncer{
		provider:  provider,
		writer:    writer,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		newTicker: time.NewTicker,
	}
}

// Run preloads the snapshot window once, then keeps refreshing it daily.
// Callers should run this in a goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil || s.provider == nil {
		return
	}
	logging.Info(s.logger,
		"snapshot sync starting",
		"future_days", s.cfg.FutureDays,
		"interval", s.cfg.Interval.String(),
		"daily_hour_utc", s.cfg.DailyHourUTC,
	)
	s.preload(ctx, s.now())
	go s.daily(ctx)
}

// Refresh fetches and writes the schedule for one date regardless of freshness.
func (s *Syncer) Refresh(ctx context.Context, date string) error {
	if s == nil || s.writer == nil || s.provider == nil {
		return ErrSyncerUnavailable
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return err
	}
	return s.fetchAndWrite(ctx, date)
}

func (s *Syncer) preload(ctx context.Context, now time.Time) {
	dates := s.buildDates(now)
	for i, date := range dates {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := s.fetchAndWrite(ctx, date); err != nil {
			logging.Warn(s.logger, "snapshot sync fetch failed", logging.FieldDate, date, "err", err)
		}
		if i < len(dates)-1 {
			s.sleep(ctx, s.cfg.Interval)
		}
	}
}

func (s *Syncer) daily(ctx context.Context) {
	ticker := s.newTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			if tick.UTC().Hour() == s.cfg.DailyHourUTC {
				s.preload(ctx, s.now())
			}
		}
	}
}

func (s *Syncer) buildDates(now time.Time) []string {
	today := timeutil.TodayEastern(now)

	// Today is always refetched so status changes and late probables land.
	dates := []string{today}

	// Yesterday backs the previous-day lineup fallback; fetch once.
	yesterday := timeutil.ShiftDate(today, -1)
	if !s.hasSnapshot(yesterday) {
		dates = append(dates, yesterday)
	}

	for i := 1; i <= s.cfg.FutureDays; i++ {
		date := timeutil.ShiftDate(today, i)
		if !s.isFresh(date, now) {
			dates = append(dates, date)
		}
	}
	return dates
}

func (s *Syncer) fetchAndWrite(ctx context.Context, date string) error {
	start := time.Now()
	games, err := s.provider.FetchSchedule(ctx, date)
	if err != nil {
		return err
	}
	if err := s.writer.WriteScheduleSnapshot(date, schedule.NewDayResponse(date, games)); err != nil {
		return err
	}
	logging.Info(s.logger, "snapshot written",
		logging.FieldDate, date,
		logging.FieldCount, len(games),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (s *Syncer) hasSnapshot(date string) bool {
	if s == nil || s.writer == nil || s.writer.basePath == "" || date == "" {
		return false
	}
	_, err := os.Stat(ScheduleSnapshotPath(s.writer.basePath, date))
	return err == nil
}

func (s *Syncer) isFresh(date string, now time.Time) bool {
	if s == nil || s.writer == nil || s.writer.basePath == "" {
		return false
	}
	info, err := os.Stat(ScheduleSnapshotPath(s.writer.basePath, date))
	if err != nil {
		return false
	}
	return Fresh(info.ModTime(), now, s.cfg.MaxAge)
}
