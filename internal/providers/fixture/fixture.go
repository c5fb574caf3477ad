// Package fixture serves deterministic MLB data for local runs and tests.
package fixture

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

type rosterPlayer struct {
	id       int
	name     string
	position string
}

type team struct {
	name    string
	starter rosterPlayer
	batters []rosterPlayer // batting order
}

type fixtureGame struct {
	gamePk int
	hour   string
	away   team
	home   team
}

var games = []fixtureGame{
	{
		gamePk: 1001,
		hour:   "17:05:00",
		away: team{
			name:    "Boston Red Sox",
			starter: rosterPlayer{678394, "Brayan Bello", "P"},
			batters: []rosterPlayer{
				{680776, "Jarren Duran", "LF"}, {646240, "Rafael Devers", "3B"}, {807799, "Wilyer Abreu", "RF"},
				{671221, "Connor Wong", "C"}, {657136, "Dominic Smith", "1B"}, {682080, "Ceddanne Rafaela", "CF"},
				{678882, "David Hamilton", "SS"}, {686823, "Enmanuel Valdez", "2B"}, {807800, "Masataka Yoshida", "DH"},
			},
		},
		home: team{
			name:    "New York Yankees",
			starter: rosterPlayer{543037, "Gerrit Cole", "P"},
			batters: []rosterPlayer{
				{683011, "Anthony Volpe", "SS"}, {665742, "Juan Soto", "RF"}, {592450, "Aaron Judge", "CF"},
				{572233, "Giancarlo Stanton", "DH"}, {518934, "DJ LeMahieu", "3B"}, {518692, "Anthony Rizzo", "1B"},
				{665828, "Alex Verdugo", "LF"}, {672724, "Gleyber Torres", "2B"}, {669224, "Austin Wells", "C"},
			},
		},
	},
	{
		gamePk: 1002,
		hour:   "23:15:00",
		away: team{
			name:    "Chicago Cubs",
			starter: rosterPlayer{684007, "Shota Imanaga", "P"},
			batters: []rosterPlayer{
				{664023, "Ian Happ", "LF"}, {673548, "Seiya Suzuki", "RF"}, {664761, "Cody Bellinger", "CF"},
				{666624, "Christopher Morel", "3B"}, {608348, "Michael Busch", "1B"}, {672013, "Nico Hoerner", "2B"},
				{673237, "Dansby Swanson", "SS"}, {663886, "Miguel Amaya", "C"}, {621020, "Mike Tauchman", "DH"},
			},
		},
		home: team{
			name:    "St. Louis Cardinals",
			starter: rosterPlayer{605400, "Sonny Gray", "P"},
			batters: []rosterPlayer{
				{660670, "Brendan Donovan", "LF"}, {502671, "Paul Goldschmidt", "1B"}, {571448, "Nolan Arenado", "3B"},
				{669357, "Willson Contreras", "C"}, {663457, "Nolan Gorman", "2B"}, {681481, "Masyn Winn", "SS"},
				{691026, "Jordan Walker", "RF"}, {669242, "Alec Burleson", "DH"}, {666185, "Victor Scott II", "CF"},
			},
		},
	},
}

var (
	pitcherArsenal = []string{"FF", "SL", "CH", "SI", "CU"}
	batterArsenal  = []string{"FF", "SL", "CH", "SI", "CU", "FC", "ST"}
	descriptions   = []string{"ball", "called_strike", "foul", "swinging_strike", "hit_into_play", "swinging_strike_blocked", "foul_tip"}
	contactEvents  = []string{"single", "field_out", "double", "field_out", "home_run", "grounded_into_double_play"}
)

// Provider implements providers.DataProvider from static data.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchSchedule returns the same two games for every valid date.
func (p *Provider) FetchSchedule(_ context.Context, date string) ([]schedule.Game, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	out := make([]schedule.Game, 0, len(games))
	for _, g := range games {
		out = append(out, schedule.Game{
			GamePk:        g.gamePk,
			Home:          g.home.name,
			Away:          g.away.name,
			ScheduledTime: date + "T" + g.hour + "Z",
			Status:        "Scheduled",
			HomeProbable:  g.home.starter.name,
			AwayProbable:  g.away.starter.name,
		})
	}
	return out, nil
}

// FetchBoxscore returns both starters and the nine batters of each team.
func (p *Provider) FetchBoxscore(_ context.Context, gamePk int) (schedule.Boxscore, error) {
	g, ok := findGame(gamePk)
	if !ok {
		return schedule.Boxscore{}, fmt.Errorf("fixture: unknown game %d", gamePk)
	}
	return schedule.Boxscore{
		GamePk: gamePk,
		Away:   boxscoreTeam(g.away),
		Home:   boxscoreTeam(g.home),
	}, nil
}

// FetchGameState returns a mid-game snapshot.
func (p *Provider) FetchGameState(_ context.Context, gamePk int) (schedule.GameState, error) {
	if _, ok := findGame(gamePk); !ok {
		return schedule.GameState{}, fmt.Errorf("fixture: unknown game %d", gamePk)
	}
	return schedule.GameState{
		GamePk:  gamePk,
		Status:  "In Progress",
		Inning:  4,
		Half:    "Bottom",
		Balls:   1,
		Strikes: 2,
		Outs:    1,
		Bases:   []string{"2B"},
		Away:    schedule.LineScore{Runs: 2, Hits: 5},
		Home:    schedule.LineScore{Runs: 3, Hits: 4},
	}, nil
}

// SearchPlayers matches the full name case-insensitively against the rosters.
func (p *Provider) SearchPlayers(_ context.Context, first, last string) ([]players.Candidate, error) {
	want := strings.TrimSpace(first + " " + last)
	var out []players.Candidate
	for _, g := range games {
		for _, t := range []team{g.away, g.home} {
			for _, rp := range append([]rosterPlayer{t.starter}, t.batters...) {
				if strings.EqualFold(rp.name, want) {
					out = append(out, players.Candidate{ID: rp.id, FullName: rp.name})
				}
			}
		}
	}
	return out, nil
}

// FetchPitchEvents generates a stable sequence of events for a player.
// The same role and id always produce the same events.
func (p *Provider) FetchPitchEvents(_ context.Context, role pitches.Role, playerID int, start, end string) ([]pitches.PitchEvent, error) {
	from, err := timeutil.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	to, err := timeutil.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	if to.Before(from) {
		return []pitches.PitchEvent{}, nil
	}

	arsenal := pitcherArsenal
	if role == pitches.RoleBatter {
		arsenal = batterArsenal
	}
	rng := rand.New(rand.NewPCG(uint64(playerID), uint64(len(role))))
	n := 120 + rng.IntN(80)
	events := make([]pitches.PitchEvent, 0, n)
	for i := 0; i < n; i++ {
		ev := pitches.PitchEvent{
			PitchType:   arsenal[rng.IntN(len(arsenal))],
			Description: descriptions[rng.IntN(len(descriptions))],
			GameDate:    start,
		}
		switch ev.Description {
		case "hit_into_play":
			ev.Event = contactEvents[rng.IntN(len(contactEvents))]
			ev.EstBA = pitches.Of(float64(rng.IntN(900)) / 1000)
			ev.EstSLG = pitches.Of(float64(rng.IntN(2000)) / 1000)
			ev.EstWOBA = pitches.Of(float64(rng.IntN(1200)) / 1000)
		case "swinging_strike", "foul_tip":
			if rng.IntN(3) == 0 {
				ev.Event = "strikeout"
			}
		}
		if role == pitches.RoleBatter {
			ev.BatterID = playerID
		} else {
			ev.PitcherID = playerID
		}
		events = append(events, ev)
	}
	return events, nil
}

func findGame(gamePk int) (fixtureGame, bool) {
	for _, g := range games {
		if g.gamePk == gamePk {
			return g, true
		}
	}
	return fixtureGame{}, false
}

func boxscoreTeam(t team) []schedule.BoxscorePlayer {
	out := make([]schedule.BoxscorePlayer, 0, len(t.batters)+1)
	out = append(out, schedule.BoxscorePlayer{PlayerID: t.starter.id, Name: t.starter.name, Position: t.starter.position})
	for i, b := range t.batters {
		out = append(out, schedule.BoxscorePlayer{
			PlayerID:     b.id,
			Name:         b.name,
			Position:     b.position,
			BattingOrder: (i + 1) * 100,
		})
	}
	return out
}
