package stats

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
)

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundStat rounds an available Stat and leaves an unavailable one alone.
func RoundStat(s pitches.Stat) pitches.Stat {
	if !s.Valid {
		return s
	}
	return pitches.Of(Round2(s.Value))
}
