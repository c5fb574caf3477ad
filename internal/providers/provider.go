package providers

import (
	"context"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
)

// ScheduleProvider fetches the games scheduled on a YYYY-MM-DD date (Eastern Time).
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, date string) ([]schedule.Game, error)
}

// BoxscoreProvider fetches the raw player lists for a game.
type BoxscoreProvider interface {
	FetchBoxscore(ctx context.Context, gamePk int) (schedule.Boxscore, error)
}

// GameStateProvider fetches the live state of a game.
type GameStateProvider interface {
	FetchGameState(ctx context.Context, gamePk int) (schedule.GameState, error)
}

// PlayerSearcher looks players up by name. A nil slice with a nil error means no matches.
type PlayerSearcher interface {
	SearchPlayers(ctx context.Context, first, last string) ([]players.Candidate, error)
}

// PitchEventProvider fetches one player's pitch events within [start, end].
type PitchEventProvider interface {
	FetchPitchEvents(ctx context.Context, role pitches.Role, playerID int, start, end string) ([]pitches.PitchEvent, error)
}

// StatsAPI combines the schedule, boxscore, live feed and people endpoints.
type StatsAPI interface {
	ScheduleProvider
	BoxscoreProvider
	GameStateProvider
	PlayerSearcher
}

// DataProvider is everything the service reads from upstream.
type DataProvider interface {
	StatsAPI
	PitchEventProvider
}
