package statsapi

import (
	"sort"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
)

func mapSchedule(resp scheduleResponse) []schedule.Game {
	games := make([]schedule.Game, 0)
	if len(resp.Dates) == 0 {
		return games
	}
	for _, g := range resp.Dates[0].Games {
		games = append(games, mapGame(g))
	}
	return games
}

func mapGame(g scheduleGame) schedule.Game {
	return schedule.Game{
		GamePk:        g.GamePk,
		Home:          g.Teams.Home.Team.Name,
		Away:          g.Teams.Away.Team.Name,
		ScheduledTime: g.GameDate,
		Status:        g.Status.DetailedState,
		HomeProbable:  pitcherName(g.Teams.Home.ProbablePitcher),
		AwayProbable:  pitcherName(g.Teams.Away.ProbablePitcher),
	}
}

func pitcherName(p *personRef) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FullName)
}

func mapBoxscore(gamePk int, resp boxscoreResponse) schedule.Boxscore {
	return schedule.Boxscore{
		GamePk: gamePk,
		Away:   mapBoxscorePlayers(resp.Teams.Away.Players),
		Home:   mapBoxscorePlayers(resp.Teams.Home.Players),
	}
}

// mapBoxscorePlayers flattens the keyed player map, ordered by player id.
func mapBoxscorePlayers(raw map[string]boxscorePlayer) []schedule.BoxscorePlayer {
	out := make([]schedule.BoxscorePlayer, 0, len(raw))
	for _, p := range raw {
		out = append(out, schedule.BoxscorePlayer{
			PlayerID:     p.Person.ID,
			Name:         p.Person.FullName,
			Position:     p.Position.Abbreviation,
			BattingOrder: parseBattingOrder(p.BattingOrder),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

func parseBattingOrder(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func mapGameState(gamePk int, resp liveFeedResponse) schedule.GameState {
	ls := resp.LiveData.Linescore
	bases := make([]string, 0, 3)
	if ls.Offense.First != nil {
		bases = append(bases, "1B")
	}
	if ls.Offense.Second != nil {
		bases = append(bases, "2B")
	}
	if ls.Offense.Third != nil {
		bases = append(bases, "3B")
	}
	return schedule.GameState{
		GamePk:  gamePk,
		Status:  resp.GameData.Status.DetailedState,
		Inning:  ls.CurrentInning,
		Half:    ls.InningHalf,
		Balls:   ls.Balls,
		Strikes: ls.Strikes,
		Outs:    ls.Outs,
		Bases:   bases,
		Away:    schedule.LineScore{Runs: ls.Teams.Away.Runs, Hits: ls.Teams.Away.Hits},
		Home:    schedule.LineScore{Runs: ls.Teams.Home.Runs, Hits: ls.Teams.Home.Hits},
	}
}

func mapCandidates(resp peopleResponse) []players.Candidate {
	if len(resp.People) == 0 {
		return nil
	}
	out := make([]players.Candidate, 0, len(resp.People))
	for _, p := range resp.People {
		out = append(out, players.Candidate{ID: p.ID, FullName: p.FullName})
	}
	return out
}
