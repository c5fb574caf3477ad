package matchups

import (
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/matchup"
)

// DateRange bounds the pitch events considered, inclusive YYYY-MM-DD.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PlayerStats is one player's per-pitch-type breakdown.
type PlayerStats struct {
	Name         string                     `json:"name"`
	Role         pitches.Role               `json:"role"`
	Player       *players.ResolvedPlayer    `json:"player,omitempty"`
	Range        DateRange                  `json:"range"`
	Rows         []pitches.PitchTypeStatRow `json:"rows"`
	Insufficient bool                       `json:"insufficient"`
}

// MatchupReport joins a pitcher (left) against a batter (right).
type MatchupReport struct {
	Pitcher      PlayerStats   `json:"pitcher"`
	Batter       PlayerStats   `json:"batter"`
	Join         string        `json:"join"`
	Table        matchup.Table `json:"table"`
	Insufficient bool          `json:"insufficient"`
}

// BatterMatchup is one batter's row set against a fixed pitcher.
type BatterMatchup struct {
	Batter       PlayerStats   `json:"batter"`
	Table        matchup.Table `json:"table"`
	Insufficient bool          `json:"insufficient"`
}

// LineupReport is a pitcher against every batter of a lineup, in lineup order.
type LineupReport struct {
	Pitcher PlayerStats     `json:"pitcher"`
	Batters []BatterMatchup `json:"batters"`
}

// SideReport is one probable starter against the opposing lineup.
type SideReport struct {
	Team     string                 `json:"team"`
	Opponent string                 `json:"opponent"`
	Lineup   []schedule.LineupEntry `json:"lineup"`
	Report   LineupReport           `json:"report"`
}

// GameReport covers both probable starters of a game.
type GameReport struct {
	Date         string        `json:"date"`
	Game         schedule.Game `json:"game"`
	LineupSource string        `json:"lineupSource"`
	Away         SideReport    `json:"away"`
	Home         SideReport    `json:"home"`
}

// ProbableComparison compares a game's away starter (left) with its home starter (right).
type ProbableComparison struct {
	Key          string                   `json:"key"`
	GamePk       int                      `json:"gamePk"`
	AwayPitcher  string                   `json:"awayPitcher"`
	HomePitcher  string                   `json:"homePitcher"`
	Table        matchup.Table            `json:"table"`
	Top          map[string][]matchup.Row `json:"top"`
	Insufficient bool                     `json:"insufficient"`
}
