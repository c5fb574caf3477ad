package schedule

import "fmt"

// Game is one scheduled MLB game.
type Game struct {
	GamePk        int    `json:"gamePk"`
	Home          string `json:"home"`
	Away          string `json:"away"`
	ScheduledTime string `json:"scheduledTime"` // raw ISO-8601 UTC
	Status        string `json:"status"`
	HomeProbable  string `json:"homeProbable,omitempty"`
	AwayProbable  string `json:"awayProbable,omitempty"`
}

// Key returns the game's matchup key.
func (g Game) Key() string {
	return MatchupKey(g.Away, g.Home)
}

// MatchupKey is the wire key for a game: "{away} @ {home}".
func MatchupKey(away, home string) string {
	return fmt.Sprintf("%s @ %s", away, home)
}

// Probables holds the announced starters for a game. Empty means not announced.
type Probables struct {
	HomePitcher string `json:"homePitcher"`
	AwayPitcher string `json:"awayPitcher"`
}

// LineupEntry is one player on a team's lineup card.
type LineupEntry struct {
	PlayerID     int    `json:"playerId"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	BattingOrder int    `json:"battingOrder,omitempty"`
}

// String renders "{name} - {position}".
func (e LineupEntry) String() string {
	return e.Name + " - " + e.Position
}

// IsPitcher reports whether the entry is listed at "P". Two-way players
// ("TWP") count as batters.
func (e LineupEntry) IsPitcher() bool {
	return e.Position == "P"
}

// Batters returns the named, non-pitcher entries in their original order.
// Boxscore and previous-day lineups list the whole staff, not just batters.
func Batters(entries []LineupEntry) []LineupEntry {
	out := make([]LineupEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsPitcher() || e.Name == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Lineups holds both teams' lineups for a game.
type Lineups struct {
	Away []LineupEntry `json:"away"`
	Home []LineupEntry `json:"home"`
}

// Empty reports whether neither side has any players.
func (l Lineups) Empty() bool {
	return len(l.Away) == 0 && len(l.Home) == 0
}

// Complete reports whether both sides have at least one entry.
func (l Lineups) Complete() bool {
	return len(l.Away) > 0 && len(l.Home) > 0
}


// BoxscorePlayer is a raw player entry from a game boxscore.
// BattingOrder is zero when the player is not in the batting order.
type BoxscorePlayer struct {
	PlayerID     int
	Name         string
	Position     string
	BattingOrder int
}

// Boxscore holds the raw per-team player lists of a game.
type Boxscore struct {
	GamePk int
	Away   []BoxscorePlayer
	Home   []BoxscorePlayer
}

// LineScore is a team's running totals.
type LineScore struct {
	Runs int `json:"runs"`
	Hits int `json:"hits"`
}

// GameState is a point-in-time view of a game from the live feed.
type GameState struct {
	GamePk  int       `json:"gamePk"`
	Status  string    `json:"status"`
	Inning  int       `json:"inning"`
	Half    string    `json:"half"`
	Balls   int       `json:"balls"`
	Strikes int       `json:"strikes"`
	Outs    int       `json:"outs"`
	Bases   []string  `json:"bases"`
	Away    LineScore `json:"away"`
	Home    LineScore `json:"home"`
}

// DayResponse is the payload returned by /schedule.
type DayResponse struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// NewDayResponse builds a DayResponse, never with a nil slice.
func NewDayResponse(date string, games []Game) DayResponse {
	if games == nil {
		games = []Game{}
	}
	return DayResponse{Date: date, Games: games}
}
