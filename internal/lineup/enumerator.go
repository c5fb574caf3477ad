package lineup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/snapshots"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

// DefaultSnapshotMaxAge is how long an on-disk schedule is served without refetching.
const DefaultSnapshotMaxAge = 6 * time.Hour

// Lineup source names reported by ResolveLineups.
const (
	SourceLive        = "live"
	SourceBoxscore    = "boxscore"
	SourcePreviousDay = "previous_day"
)

// ErrGameNotFound is returned when a game is not on the requested date's schedule.
var ErrGameNotFound = errors.New("game not found")

// Upstream is the subset of the Stats API the enumerator reads.
type Upstream interface {
	providers.ScheduleProvider
	providers.BoxscoreProvider
	providers.GameStateProvider
}

// Options configures an Enumerator.
type Options struct {
	Store  snapshots.Store
	Writer *snapshots.Writer
	MaxAge time.Duration
	Logger *slog.Logger
}

// Enumerator lists games, probable pitchers and lineups.
type Enumerator struct {
	upstream Upstream
	store    snapshots.Store
	writer   *snapshots.Writer
	maxAge   time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// New builds an Enumerator. Store and Writer are optional.
func New(upstream Upstream, opts Options) *Enumerator {
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultSnapshotMaxAge
	}
	return &Enumerator{
		upstream: upstream,
		store:    opts.Store,
		writer:   opts.Writer,
		maxAge:   opts.MaxAge,
		logger:   opts.Logger,
		now:      time.Now,
	}
}

// GamesOn returns the games scheduled on date (YYYY-MM-DD, Eastern).
// A fresh disk snapshot wins; otherwise upstream is queried and the result
// written back. A stale snapshot is still served when upstream fails.
func (e *Enumerator) GamesOn(ctx context.Context, date string) ([]schedule.Game, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, err
	}

	var stale []schedule.Game
	haveStale := false
	if e.store != nil {
		snap, modTime, err := e.store.LoadSchedule(date)
		if err == nil {
			if snapshots.Fresh(modTime, e.now(), e.maxAge) {
				return snap.Games, nil
			}
			stale, haveStale = snap.Games, true
		}
	}

	games, err := e.upstream.FetchSchedule(ctx, date)
	if err != nil {
		if haveStale {
			logging.WarnCtx(ctx, e.logger, "schedule fetch failed, serving stale snapshot",
				logging.FieldDate, date, "err", err)
			return stale, nil
		}
		return nil, err
	}
	if games == nil {
		games = []schedule.Game{}
	}
	if e.writer != nil {
		if werr := e.writer.WriteScheduleSnapshot(date, schedule.NewDayResponse(date, games)); werr != nil {
			logging.WarnCtx(ctx, e.logger, "schedule snapshot write failed",
				logging.FieldDate, date, "err", werr)
		}
	}
	return games, nil
}

// ProbablePitchers maps each game's matchup key to its announced starters.
func (e *Enumerator) ProbablePitchers(ctx context.Context, date string) (map[string]schedule.Probables, error) {
	games, err := e.GamesOn(ctx, date)
	if err != nil {
		return nil, err
	}
	out := make(map[string]schedule.Probables, len(games))
	for _, g := range games {
		out[g.Key()] = schedule.Probables{
			HomePitcher: g.HomeProbable,
			AwayPitcher: g.AwayProbable,
		}
	}
	return out, nil
}

// Game looks a single game up on date's schedule.
func (e *Enumerator) Game(ctx context.Context, date string, gamePk int) (schedule.Game, error) {
	games, err := e.GamesOn(ctx, date)
	if err != nil {
		return schedule.Game{}, err
	}
	for _, g := range games {
		if g.GamePk == gamePk {
			return g, nil
		}
	}
	return schedule.Game{}, ErrGameNotFound
}

// LineupFor reads a game's lineups from its boxscore.
func (e *Enumerator) LineupFor(ctx context.Context, gamePk int, liveOnly bool) (schedule.Lineups, error) {
	box, err := e.upstream.FetchBoxscore(ctx, gamePk)
	if err != nil {
		return schedule.Lineups{Away: []schedule.LineupEntry{}, Home: []schedule.LineupEntry{}}, err
	}
	return FromBoxscore(box, liveOnly), nil
}

// ResolveLineups tries the live lineup, then the full boxscore lineup, then
// the lineup the same two teams used the previous day. An attempt counts only
// when both sides are filled. The returned source names the attempt that
// succeeded ("" when none did).
func (e *Enumerator) ResolveLineups(ctx context.Context, game schedule.Game, date string) (schedule.Lineups, string, error) {
	source := ""
	tag := func(name string, a Attempt[schedule.Lineups]) Attempt[schedule.Lineups] {
		return func(ctx context.Context) (schedule.Lineups, bool, error) {
			l, ok, err := a(ctx)
			if ok {
				source = name
			}
			return l, ok, err
		}
	}
	lineups, ok, err := First(ctx,
		tag(SourceLive, e.boxscoreAttempt(game.GamePk, true)),
		tag(SourceBoxscore, e.boxscoreAttempt(game.GamePk, false)),
		tag(SourcePreviousDay, e.previousDayAttempt(game, date)),
	)
	if !ok {
		empty := schedule.Lineups{Away: []schedule.LineupEntry{}, Home: []schedule.LineupEntry{}}
		if err != nil {
			logging.WarnCtx(ctx, e.logger, "lineup unavailable",
				logging.FieldGamePk, game.GamePk, logging.FieldDate, date, "err", err)
		}
		return empty, "", err
	}
	return lineups, source, nil
}

func (e *Enumerator) boxscoreAttempt(gamePk int, liveOnly bool) Attempt[schedule.Lineups] {
	return func(ctx context.Context) (schedule.Lineups, bool, error) {
		l, err := e.LineupFor(ctx, gamePk, liveOnly)
		if err != nil {
			return l, false, err
		}
		return l, l.Complete(), nil
	}
}

func (e *Enumerator) previousDayAttempt(game schedule.Game, date string) Attempt[schedule.Lineups] {
	return func(ctx context.Context) (schedule.Lineups, bool, error) {
		prev := timeutil.ShiftDate(date, -1)
		if prev == date {
			return schedule.Lineups{}, false, nil
		}
		games, err := e.GamesOn(ctx, prev)
		if err != nil {
			return schedule.Lineups{}, false, err
		}
		for _, g := range games {
			swapped := g.Home == game.Away && g.Away == game.Home
			if !swapped && (g.Home != game.Home || g.Away != game.Away) {
				continue
			}
			l, err := e.LineupFor(ctx, g.GamePk, true)
			if err != nil {
				return l, false, err
			}
			if !l.Complete() {
				l, err = e.LineupFor(ctx, g.GamePk, false)
				if err != nil {
					return l, false, err
				}
			}
			if swapped {
				l.Away, l.Home = l.Home, l.Away
			}
			return l, l.Complete(), nil
		}
		return schedule.Lineups{}, false, nil
	}
}

// GameState reads the live feed for a game.
func (e *Enumerator) GameState(ctx context.Context, gamePk int) (schedule.GameState, error) {
	return e.upstream.FetchGameState(ctx, gamePk)
}
