package schedule

import "testing"

func TestMatchupKey(t *testing.T) {
	if got := MatchupKey("Boston Red Sox", "New York Yankees"); got != "Boston Red Sox @ New York Yankees" {
		t.Fatalf("unexpected key %q", got)
	}
	g := Game{Away: "A", Home: "B"}
	if g.Key() != "A @ B" {
		t.Fatalf("unexpected game key %q", g.Key())
	}
}

func TestLineupEntryString(t *testing.T) {
	e := LineupEntry{Name: "Aaron Judge", Position: "RF"}
	if e.String() != "Aaron Judge - RF" {
		t.Fatalf("unexpected entry string %q", e.String())
	}
}

func TestLineupsEmpty(t *testing.T) {
	if !(Lineups{}).Empty() {
		t.Fatalf("expected empty lineups")
	}
	if (Lineups{Home: []LineupEntry{{Name: "x"}}}).Empty() {
		t.Fatalf("expected non-empty lineups")
	}
}

func TestLineupsComplete(t *testing.T) {
	one := []LineupEntry{{Name: "x"}}
	if (Lineups{Away: one}).Complete() || (Lineups{Home: one}).Complete() {
		t.Fatalf("expected one-sided lineups to be incomplete")
	}
	if !(Lineups{Away: one, Home: one}).Complete() {
		t.Fatalf("expected both sides filled to be complete")
	}
}

func TestBattersDropsPitchers(t *testing.T) {
	got := Batters([]LineupEntry{
		{Name: "Starter", Position: "P"},
		{Name: "Shortstop", Position: "SS"},
		{Name: "", Position: "C"},
		{Name: "Two Way", Position: "TWP"},
		{Name: "Reliever", Position: "P"},
	})
	if len(got) != 2 || got[0].Name != "Shortstop" || got[1].Name != "Two Way" {
		t.Fatalf("unexpected batters %+v", got)
	}
	if out := Batters(nil); out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestNewDayResponseNeverNil(t *testing.T) {
	resp := NewDayResponse("2024-06-01", nil)
	if resp.Games == nil || len(resp.Games) != 0 {
		t.Fatalf("expected empty non-nil slice")
	}
}
