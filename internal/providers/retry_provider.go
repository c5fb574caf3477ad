package providers

import (
	"context"
	"strconv"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
)

// Upstream names used for logs and metrics.
const (
	UpstreamStatsAPI = "statsapi"
	UpstreamSavant   = "savant"
)

type retryingStatsAPI struct {
	inner    StatsAPI
	retrier  *Retrier
	upstream string
}

// NewRetryingStatsAPI wraps every StatsAPI call with the retrier.
func NewRetryingStatsAPI(inner StatsAPI, retrier *Retrier, upstream string) StatsAPI {
	if upstream == "" {
		upstream = UpstreamStatsAPI
	}
	return &retryingStatsAPI{inner: inner, retrier: retrier, upstream: upstream}
}

func (r *retryingStatsAPI) FetchSchedule(ctx context.Context, date string) ([]schedule.Game, error) {
	return Do(ctx, r.retrier, r.upstream, "schedule "+date, func(ctx context.Context) ([]schedule.Game, error) {
		return r.inner.FetchSchedule(ctx, date)
	})
}

func (r *retryingStatsAPI) FetchBoxscore(ctx context.Context, gamePk int) (schedule.Boxscore, error) {
	return Do(ctx, r.retrier, r.upstream, "boxscore "+strconv.Itoa(gamePk), func(ctx context.Context) (schedule.Boxscore, error) {
		return r.inner.FetchBoxscore(ctx, gamePk)
	})
}

func (r *retryingStatsAPI) FetchGameState(ctx context.Context, gamePk int) (schedule.GameState, error) {
	return Do(ctx, r.retrier, r.upstream, "feed "+strconv.Itoa(gamePk), func(ctx context.Context) (schedule.GameState, error) {
		return r.inner.FetchGameState(ctx, gamePk)
	})
}

func (r *retryingStatsAPI) SearchPlayers(ctx context.Context, first, last string) ([]players.Candidate, error) {
	return Do(ctx, r.retrier, r.upstream, "people search", func(ctx context.Context) ([]players.Candidate, error) {
		return r.inner.SearchPlayers(ctx, first, last)
	})
}

type retryingPitchEvents struct {
	inner    PitchEventProvider
	retrier  *Retrier
	upstream string
}

// NewRetryingPitchEvents wraps pitch event fetches with the retrier.
func NewRetryingPitchEvents(inner PitchEventProvider, retrier *Retrier, upstream string) PitchEventProvider {
	if upstream == "" {
		upstream = UpstreamSavant
	}
	return &retryingPitchEvents{inner: inner, retrier: retrier, upstream: upstream}
}

func (r *retryingPitchEvents) FetchPitchEvents(ctx context.Context, role pitches.Role, playerID int, start, end string) ([]pitches.PitchEvent, error) {
	return Do(ctx, r.retrier, r.upstream, "pitch events", func(ctx context.Context) ([]pitches.PitchEvent, error) {
		return r.inner.FetchPitchEvents(ctx, role, playerID, start, end)
	})
}
