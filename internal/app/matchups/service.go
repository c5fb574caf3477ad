// Package matchups orchestrates name resolution, pitch aggregation and joins
// into the reports served over HTTP and written by the daily job.
package matchups

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/mlb-matchup-service/internal/cache"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/matchup"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/stats"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

const (
	// DefaultWorkers bounds concurrent per-player computations.
	DefaultWorkers = 10
	// TopN is how many pitch types the probable comparison keeps per metric.
	TopN = 3
)

// ErrInvalidRange is returned for malformed or inverted date ranges.
var ErrInvalidRange = errors.New("invalid date range")

// PlayerResolver maps a display name to a player.
type PlayerResolver interface {
	Resolve(ctx context.Context, name string) (players.ResolvedPlayer, bool)
}

// Schedule lists games and their lineups.
type Schedule interface {
	GamesOn(ctx context.Context, date string) ([]schedule.Game, error)
	Game(ctx context.Context, date string, gamePk int) (schedule.Game, error)
	ResolveLineups(ctx context.Context, game schedule.Game, date string) (schedule.Lineups, string, error)
}

// Options configures a Service.
type Options struct {
	Memo        cache.Memo
	TTL         time.Duration
	Workers     int
	SeasonStart string
	Logger      *slog.Logger
}

// Service computes player stats and matchups.
type Service struct {
	resolver    PlayerResolver
	events      providers.PitchEventProvider
	schedule    Schedule
	memo        cache.Memo
	ttl         time.Duration
	workers     int
	seasonStart string
	logger      *slog.Logger
	now         func() time.Time
}

// NewService wires a Service. schedule may be nil when only name-based
// operations are needed.
func NewService(resolver PlayerResolver, events providers.PitchEventProvider, sched Schedule, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = cache.DefaultTTL
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Memo.Logger == nil {
		opts.Memo.Logger = opts.Logger
	}
	return &Service{
		resolver:    resolver,
		events:      events,
		schedule:    sched,
		memo:        opts.Memo,
		ttl:         opts.TTL,
		workers:     opts.Workers,
		seasonStart: opts.SeasonStart,
		logger:      opts.Logger,
		now:         time.Now,
	}
}

// Today returns the current Eastern Time date.
func (s *Service) Today() string {
	return timeutil.TodayEastern(s.now())
}

// DateRange fills in defaults: end is today (Eastern) and start is the
// configured season start, else January 1 of the end year.
func (s *Service) DateRange(start, end string) (DateRange, error) {
	if end == "" {
		end = s.Today()
	}
	endDate, err := timeutil.ParseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidRange, end)
	}
	if start == "" {
		start = s.seasonStart
	}
	if start == "" {
		start = fmt.Sprintf("%04d-01-01", endDate.Year())
	}
	startDate, err := timeutil.ParseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidRange, start)
	}
	if startDate.After(endDate) {
		return DateRange{}, fmt.Errorf("%w: %s after %s", ErrInvalidRange, start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// PlayerStats resolves name and aggregates its pitch events over rng.
// An unresolvable name or an upstream failure yields empty rows marked insufficient.
func (s *Service) PlayerStats(ctx context.Context, role pitches.Role, name string, rng DateRange) PlayerStats {
	out := PlayerStats{Name: name, Role: role, Range: rng, Rows: []pitches.PitchTypeStatRow{}, Insufficient: true}
	if s.resolver == nil {
		return out
	}
	player, ok := s.resolver.Resolve(ctx, name)
	if !ok {
		return out
	}
	out.Player = &player

	rows, err := cache.GetOrCompute(ctx, s.memo, cache.StatsKey(role, player.PlayerID, rng.Start, rng.End), s.ttl,
		func(ctx context.Context) ([]pitches.PitchTypeStatRow, error) {
			if s.events == nil {
				return nil, providers.ErrProviderUnavailable
			}
			events, err := s.events.FetchPitchEvents(ctx, role, player.PlayerID, rng.Start, rng.End)
			if err != nil {
				return nil, err
			}
			return stats.Aggregate(events), nil
		})
	if err != nil {
		logging.WarnCtx(ctx, s.logger, "pitch events unavailable",
			logging.FieldPlayer, name,
			logging.FieldPlayerID, player.PlayerID,
			logging.FieldRole, string(role),
			"err", err,
		)
		return out
	}
	if rows != nil {
		out.Rows = rows
	}
	out.Insufficient = len(out.Rows) == 0
	return out
}

// Matchup joins pitcher (left) against batter (right).
func (s *Service) Matchup(ctx context.Context, pitcher, batter string, rng DateRange, mode matchup.JoinMode) MatchupReport {
	var p, b PlayerStats
	var g errgroup.Group
	g.Go(func() error {
		p = s.PlayerStats(ctx, pitches.RolePitcher, pitcher, rng)
		return nil
	})
	g.Go(func() error {
		b = s.PlayerStats(ctx, pitches.RoleBatter, batter, rng)
		return nil
	})
	_ = g.Wait()

	table := matchup.NewTable(pitcher, batter, p.Rows, b.Rows, mode)
	s.memo.Metrics.RecordMatchup(mode.String(), table.Insufficient())
	return MatchupReport{
		Pitcher:      p,
		Batter:       b,
		Join:         mode.String(),
		Table:        table,
		Insufficient: table.Insufficient(),
	}
}

// LineupMatchups computes pitcher against every batter, at most Workers at a
// time. Results keep the order of batters. A batter without data does not
// affect the others.
func (s *Service) LineupMatchups(ctx context.Context, pitcher string, batters []string, rng DateRange) LineupReport {
	report := LineupReport{
		Pitcher: s.PlayerStats(ctx, pitches.RolePitcher, pitcher, rng),
		Batters: make([]BatterMatchup, len(batters)),
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, name := range batters {
		g.Go(func() error {
			b := s.PlayerStats(ctx, pitches.RoleBatter, name, rng)
			table := matchup.NewTable(pitcher, name, report.Pitcher.Rows, b.Rows, matchup.JoinInner)
			report.Batters[i] = BatterMatchup{Batter: b, Table: table, Insufficient: table.Insufficient()}
			return nil
		})
	}
	_ = g.Wait()
	return report
}

// GameMatchups runs each probable starter against the opposing lineup.
func (s *Service) GameMatchups(ctx context.Context, date string, gamePk int) (GameReport, error) {
	if s.schedule == nil {
		return GameReport{}, providers.ErrProviderUnavailable
	}
	rng, err := s.DateRange("", date)
	if err != nil {
		return GameReport{}, err
	}
	game, err := s.schedule.Game(ctx, date, gamePk)
	if err != nil {
		return GameReport{}, err
	}
	lineups, source, _ := s.schedule.ResolveLineups(ctx, game, date)
	awayBatters := schedule.Batters(lineups.Away)
	homeBatters := schedule.Batters(lineups.Home)

	report := GameReport{
		Date:         date,
		Game:         game,
		LineupSource: source,
		Away:         SideReport{Team: game.Away, Opponent: game.Home, Lineup: homeBatters},
		Home:         SideReport{Team: game.Home, Opponent: game.Away, Lineup: awayBatters},
	}
	report.Away.Report = s.LineupMatchups(ctx, game.AwayProbable, lineupNames(homeBatters), rng)
	report.Home.Report = s.LineupMatchups(ctx, game.HomeProbable, lineupNames(awayBatters), rng)
	return report, nil
}

// CompareProbables compares each game's away starter (left) with the home
// starter (right), keeping the top pitch types per metric by delta.
func (s *Service) CompareProbables(ctx context.Context, date string) ([]ProbableComparison, error) {
	if s.schedule == nil {
		return nil, providers.ErrProviderUnavailable
	}
	rng, err := s.DateRange("", date)
	if err != nil {
		return nil, err
	}
	games, err := s.schedule.GamesOn(ctx, date)
	if err != nil {
		return nil, err
	}

	out := make([]ProbableComparison, len(games))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, game := range games {
		g.Go(func() error {
			away := s.PlayerStats(ctx, pitches.RolePitcher, game.AwayProbable, rng)
			home := s.PlayerStats(ctx, pitches.RolePitcher, game.HomeProbable, rng)
			table := matchup.NewTable(game.AwayProbable, game.HomeProbable, away.Rows, home.Rows, matchup.JoinInner)
			top := make(map[string][]matchup.Row, len(pitches.DeltaMetrics()))
			for _, m := range pitches.DeltaMetrics() {
				top[string(m)] = matchup.TopBy(table.Rows, m, TopN)
			}
			out[i] = ProbableComparison{
				Key:          game.Key(),
				GamePk:       game.GamePk,
				AwayPitcher:  game.AwayProbable,
				HomePitcher:  game.HomeProbable,
				Table:        table,
				Top:          top,
				Insufficient: table.Insufficient(),
			}
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

func lineupNames(entries []schedule.LineupEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
