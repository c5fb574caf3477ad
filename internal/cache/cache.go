// Package cache provides the result cache used for computed stats and
// resolved players, with in-memory and Redis backends.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
)

// Cache stores opaque values with an optional expiry. A ttl <= 0 never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DefaultTTL bounds the staleness of cached stats.
const DefaultTTL = 10 * time.Minute

const keyPrefix = "matchup:"

// StatsKey identifies aggregated stats for a player over a date range.
func StatsKey(role pitches.Role, playerID int, start, end string) string {
	return fmt.Sprintf("%sstats:%s:%d:%s:%s", keyPrefix, role, playerID, start, end)
}

// PlayerKey identifies a resolved player by the exact input name.
func PlayerKey(name string) string {
	return keyPrefix + "player:" + name
}

// Kind returns the key's namespace ("stats", "player", ...) for metrics labels.
func Kind(key string) string {
	rest := strings.TrimPrefix(key, keyPrefix)
	if i := strings.IndexByte(rest, ':'); i > 0 {
		return rest[:i]
	}
	return "other"
}
