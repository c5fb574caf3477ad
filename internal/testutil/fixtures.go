package testutil

import (
	"testing"

	"github.com/preston-bernstein/mlb-matchup-service/internal/app/matchups"
	"github.com/preston-bernstein/mlb-matchup-service/internal/cache"
	"github.com/preston-bernstein/mlb-matchup-service/internal/lineup"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-matchup-service/internal/resolver"
)

// FixtureDate is a date the fixture provider serves games for.
const FixtureDate = "2024-06-10"

// FixtureGamePk is the Red Sox at Yankees fixture game.
const FixtureGamePk = 1001

// Stack is a fully wired service over the fixture provider.
type Stack struct {
	Provider   *fixture.Provider
	Recorder   *metrics.Recorder
	Enumerator *lineup.Enumerator
	Service    *matchups.Service
}

// NewFixtureStack wires the matchup service, resolver and enumerator to fixture data
// with an in-memory cache and no disk snapshots.
func NewFixtureStack(t *testing.T) Stack {
	t.Helper()
	p := fixture.New()
	rec := metrics.NewRecorder()
	memo := cache.Memo{Cache: cache.NewMemoryCache(), Metrics: rec}
	enum := lineup.New(p, lineup.Options{})
	svc := matchups.NewService(resolver.New(p, memo, nil), p, enum, matchups.Options{Memo: memo, Workers: 4})
	return Stack{Provider: p, Recorder: rec, Enumerator: enum, Service: svc}
}
