// Package stats turns raw pitch events into per-pitch-type statistics.
package stats

import (
	"sort"
	"strings"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
)

const (
	eventStrikeout     = "strikeout"
	descSwingingStrike = "swinging_strike"
	descStrikeout      = "strikeout"
)

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(s pitches.Stat) {
	if s.Valid {
		m.sum += s.Value
		m.n++
	}
}

func (m mean) stat() pitches.Stat {
	if m.n == 0 {
		return pitches.NA()
	}
	return RoundStat(pitches.Of(m.sum / float64(m.n)))
}

type group struct {
	n         int
	strikeout int
	whiff     int
	putAway   int
	ba        mean
	slg       mean
	woba      mean
}

// Aggregate groups events by pitch type and computes one row per type.
//
// PA is the number of events in the group. K% counts strikeout events, Whiff%
// counts descriptions containing "swinging_strike" and PutAway% counts
// descriptions containing "strikeout" or "swinging_strike". The two description
// predicates overlap, so PutAway% is always >= Whiff%; both are kept as
// separate fields. Events without a pitch type are skipped. Rows are ordered
// by pitch code.
func Aggregate(events []pitches.PitchEvent) []pitches.PitchTypeStatRow {
	groups := make(map[string]*group)
	for _, ev := range events {
		if ev.PitchType == "" {
			continue
		}
		g, ok := groups[ev.PitchType]
		if !ok {
			g = &group{}
			groups[ev.PitchType] = g
		}
		g.n++
		if ev.Event == eventStrikeout {
			g.strikeout++
		}
		whiff := strings.Contains(ev.Description, descSwingingStrike)
		if whiff {
			g.whiff++
		}
		if whiff || strings.Contains(ev.Description, descStrikeout) {
			g.putAway++
		}
		g.ba.add(ev.EstBA)
		g.slg.add(ev.EstSLG)
		g.woba.add(ev.EstWOBA)
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([]pitches.PitchTypeStatRow, 0, len(codes))
	for _, code := range codes {
		g := groups[code]
		rows = append(rows, pitches.PitchTypeStatRow{
			PitchType:        PitchName(code),
			Code:             code,
			PlateAppearances: g.n,
			BA:               g.ba.stat(),
			SLG:              g.slg.stat(),
			WOBA:             g.woba.stat(),
			KPct:             pct(g.strikeout, g.n),
			WhiffPct:         pct(g.whiff, g.n),
			PutAwayPct:       pct(g.putAway, g.n),
		})
	}
	return rows
}

func pct(count, n int) pitches.Stat {
	return pitches.Of(Round2(float64(count) / float64(n) * 100))
}
