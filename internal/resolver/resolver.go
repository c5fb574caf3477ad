// Package resolver maps player display names to MLB player ids.
package resolver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/mlb-matchup-service/internal/cache"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
	"github.com/preston-bernstein/mlb-matchup-service/internal/providers"
)

// lookup is the memoized outcome of one name. Found=false is a definitive miss.
type lookup struct {
	Player players.ResolvedPlayer `json:"player"`
	Found  bool                   `json:"found"`
}

// Resolver looks names up upstream and memoizes the outcome for the process lifetime.
type Resolver struct {
	searcher providers.PlayerSearcher
	memo     cache.Memo
	logger   *slog.Logger
}

// New builds a Resolver. memo.Cache may be nil to disable memoization.
func New(searcher providers.PlayerSearcher, memo cache.Memo, logger *slog.Logger) *Resolver {
	if memo.Logger == nil {
		memo.Logger = logger
	}
	return &Resolver{searcher: searcher, memo: memo, logger: logger}
}

// SplitName splits on the first space after trimming. The remainder is kept verbatim.
func SplitName(name string) (first, last string, ok bool) {
	first, last, ok = strings.Cut(strings.TrimSpace(name), " ")
	if !ok || first == "" || strings.TrimSpace(last) == "" {
		return "", "", false
	}
	return first, last, true
}

// Resolve returns the player for name, or false when it cannot be resolved.
// Upstream failures are logged and reported as not found; they are not memoized.
func (r *Resolver) Resolve(ctx context.Context, name string) (players.ResolvedPlayer, bool) {
	logger := logging.FromContext(ctx, r.logger)
	first, last, ok := SplitName(name)
	if !ok {
		logging.Debug(logger, "player name not resolvable", logging.FieldPlayer, name)
		r.memo.Metrics.RecordResolution(metrics.ResolutionInvalidName)
		return players.ResolvedPlayer{}, false
	}
	if r.searcher == nil {
		return players.ResolvedPlayer{}, false
	}

	res, err := cache.GetOrCompute(ctx, r.memo, cache.PlayerKey(name), 0, func(ctx context.Context) (lookup, error) {
		candidates, err := r.searcher.SearchPlayers(ctx, first, last)
		if err != nil {
			return lookup{}, err
		}
		return choose(candidates, first+" "+last)
	})
	if err != nil {
		logging.Warn(logger, "player lookup failed", logging.FieldPlayer, name, "err", err)
		r.memo.Metrics.RecordResolution(metrics.ResolutionError)
		return players.ResolvedPlayer{}, false
	}
	if !res.Found {
		logging.Info(logger, "player not found", logging.FieldPlayer, name)
		r.memo.Metrics.RecordResolution(metrics.ResolutionNotFound)
		return players.ResolvedPlayer{}, false
	}
	r.memo.Metrics.RecordResolution(metrics.ResolutionFound)
	return res.Player, true
}

// choose prefers an exact case-insensitive full-name match, then the first result.
func choose(candidates []players.Candidate, fullName string) (lookup, error) {
	if len(candidates) == 0 {
		return lookup{}, nil
	}
	pick := candidates[0]
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c.FullName), fullName) {
			pick = c
			break
		}
	}
	if pick.ID <= 0 {
		return lookup{}, nil
	}
	name := pick.FullName
	if name == "" {
		name = fullName
	}
	return lookup{Player: players.ResolvedPlayer{FullName: name, PlayerID: pick.ID}, Found: true}, nil
}
