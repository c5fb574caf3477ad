package severity

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
)

func TestRateModes(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		mode Mode
		want string
	}{
		{"pitcher k high", 25, PitcherMode(pitches.MetricK), "background-color: rgba(0, 153, 0, 0.50); color: white;"},
		{"pitcher k capped", 80, PitcherMode(pitches.MetricK), "background-color: rgba(0, 153, 0, 1.00); color: white;"},
		{"pitcher ba above threshold", 0.4, PitcherMode(pitches.MetricBA), "background-color: rgba(255, 0, 0, 0.40); color: white;"},
		{"pitcher ba below threshold", 0.2, PitcherMode(pitches.MetricBA), "background-color: rgba(0, 102, 255, 0.80); color: white;"},
		{"batter ba above threshold", 0.4, BatterMode(pitches.MetricBA), "background-color: rgba(0, 102, 255, 0.40); color: white;"},
		{"batter ba below threshold", 0.2, BatterMode(pitches.MetricBA), "background-color: rgba(255, 0, 0, 0.80); color: white;"},
		{"batter k", 60, BatterMode(pitches.MetricK), "background-color: rgba(255, 0, 0, 1.00); color: white;"},
		{"ratio capped", 1.5, PitcherMode(pitches.MetricSLG), "background-color: rgba(255, 0, 0, 1.00); color: white;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ForValue(tc.v, tc.mode).CSS(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDeltaMode(t *testing.T) {
	if got := ForValue(25, DeltaMode).CSS(); got != "background-color: rgba(0, 102, 255, 0.50); color: white;" {
		t.Fatalf("unexpected positive delta style %q", got)
	}
	if got := ForValue(-75, DeltaMode).CSS(); got != "background-color: rgba(255, 0, 0, 1.00); color: white;" {
		t.Fatalf("unexpected negative delta style %q", got)
	}
	zero := ForValue(0, DeltaMode)
	if !zero.Neutral || zero.CSS() != "color: white;" {
		t.Fatalf("expected neutral zero delta, got %+v", zero)
	}
}

func TestBandedMode(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{-50, "background-color: #990000; color: white;"},
		{-45, "background-color: #990000; color: white;"},
		{-44, "background-color: #e06666;"},
		{-20, "background-color: #e06666;"},
		{-0.5, "background-color: #f4cccc;"},
		{0, "background-color: #d9ead3;"},
		{20, "background-color: #d9ead3;"},
		{45, "background-color: #93c47d;"},
		{46, "background-color: #38761d; color: white;"},
	}
	for _, tc := range cases {
		if got := ForValue(tc.v, BandedMode).CSS(); got != tc.want {
			t.Fatalf("banded(%v): expected %q, got %q", tc.v, tc.want, got)
		}
	}
}

func TestUnavailableAndNonNumericAreNeutral(t *testing.T) {
	modes := []Mode{DeltaMode, BandedMode, PitcherMode(pitches.MetricK), BatterMode(pitches.MetricBA)}
	for _, m := range modes {
		if !For(pitches.NA(), m).Neutral {
			t.Fatalf("expected N/A stat neutral under %+v", m)
		}
		if !ForString("N/A", m).Neutral {
			t.Fatalf("expected N/A string neutral under %+v", m)
		}
		if !ForString("abc", m).Neutral {
			t.Fatalf("expected non-numeric neutral under %+v", m)
		}
		if !ForValue(math.NaN(), m).Neutral {
			t.Fatalf("expected NaN neutral under %+v", m)
		}
	}
	if NeutralStyle.Hex() != "" {
		t.Fatalf("expected empty hex for neutral")
	}
}

func TestForStringAcceptsPercentSuffix(t *testing.T) {
	got := ForString(" 25% ", PitcherMode(pitches.MetricWhiff)).CSS()
	if got != "background-color: rgba(0, 153, 0, 0.50); color: white;" {
		t.Fatalf("unexpected style %q", got)
	}
}

func TestPure(t *testing.T) {
	values := []float64{-60, -12.5, 0, 0.25, 0.31, 7, 49.99, 120}
	modes := []Mode{DeltaMode, BandedMode, PitcherMode(pitches.MetricK), PitcherMode(pitches.MetricBA), BatterMode(pitches.MetricK), BatterMode(pitches.MetricWOBA)}
	for _, m := range modes {
		for _, v := range values {
			a, b := ForValue(v, m), ForValue(v, m)
			if a != b || a.CSS() != b.CSS() {
				t.Fatalf("ForValue(%v, %+v) not deterministic", v, m)
			}
			if a.Alpha < 0 || a.Alpha > 1 {
				t.Fatalf("alpha out of range: %v", a.Alpha)
			}
		}
	}
}

func TestHexBlendsOntoWhite(t *testing.T) {
	if got := ForValue(25, DeltaMode).Hex(); got != "#80B3FF" {
		t.Fatalf("expected #80B3FF, got %s", got)
	}
	if got := ForValue(-50, BandedMode).Hex(); got != "#990000" {
		t.Fatalf("expected #990000, got %s", got)
	}
}

func TestModeForRoleAndJSON(t *testing.T) {
	if ModeFor(pitches.RoleBatter, pitches.MetricK) != BatterMode(pitches.MetricK) {
		t.Fatalf("expected batter mode")
	}
	if ModeFor(pitches.RolePitcher, pitches.MetricK) != PitcherMode(pitches.MetricK) {
		t.Fatalf("expected pitcher mode")
	}
	b, err := json.Marshal(NeutralStyle)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"css":"color: white;"}` {
		t.Fatalf("unexpected json %s", b)
	}
}
