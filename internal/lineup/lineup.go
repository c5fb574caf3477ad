package lineup

import (
	"sort"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
)

// LiveLineupSize is the number of batters kept from a live batting order.
const LiveLineupSize = 9

var lineupPositions = map[string]struct{}{
	"P": {}, "1B": {}, "2B": {}, "3B": {}, "SS": {},
	"LF": {}, "CF": {}, "RF": {}, "DH": {}, "C": {},
}

// FromBoxscore derives both teams' lineups from a boxscore.
func FromBoxscore(box schedule.Boxscore, liveOnly bool) schedule.Lineups {
	pick := fullLineup
	if liveOnly {
		pick = liveLineup
	}
	return schedule.Lineups{
		Away: pick(box.Away),
		Home: pick(box.Home),
	}
}

// fullLineup keeps every player at a lineup position. Players in the batting
// order come first, by order; the rest follow by player id.
func fullLineup(players []schedule.BoxscorePlayer) []schedule.LineupEntry {
	out := make([]schedule.LineupEntry, 0, len(players))
	for _, p := range players {
		if _, ok := lineupPositions[p.Position]; !ok {
			continue
		}
		out = append(out, entry(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.BattingOrder > 0 && b.BattingOrder > 0:
			if a.BattingOrder != b.BattingOrder {
				return a.BattingOrder < b.BattingOrder
			}
		case a.BattingOrder > 0:
			return true
		case b.BattingOrder > 0:
			return false
		}
		return a.PlayerID < b.PlayerID
	})
	return out
}

func liveLineup(players []schedule.BoxscorePlayer) []schedule.LineupEntry {
	out := make([]schedule.LineupEntry, 0, LiveLineupSize)
	for _, p := range players {
		if p.BattingOrder > 0 {
			out = append(out, entry(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BattingOrder != out[j].BattingOrder {
			return out[i].BattingOrder < out[j].BattingOrder
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if len(out) > LiveLineupSize {
		out = out[:LiveLineupSize]
	}
	return out
}

func entry(p schedule.BoxscorePlayer) schedule.LineupEntry {
	return schedule.LineupEntry{
		PlayerID:     p.PlayerID,
		Name:         p.Name,
		Position:     p.Position,
		BattingOrder: p.BattingOrder,
	}
}
