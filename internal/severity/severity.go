// Package severity maps stat values to background colours and opacities.
//
// Every function here is pure: the same value and mode always produce the
// same Style. Missing, non-numeric and NaN values map to the neutral style.
package severity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
)

// Color is an opaque RGB colour.
type Color struct {
	R, G, B uint8
}

// Hex renders the colour as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

var (
	Red   = Color{255, 0, 0}
	Blue  = Color{0, 102, 255}
	Green = Color{0, 153, 0}
)

// Kind selects the mapping family.
type Kind int

const (
	// KindRate shades a raw stat by polarity and scale.
	KindRate Kind = iota
	// KindDelta shades a signed delta: positive blue, negative red, zero neutral.
	KindDelta
	// KindBanded maps a signed delta onto six solid colour bands.
	KindBanded
)

// Polarity says which end of a rate is good for the subject.
type Polarity int

const (
	GoodLow Polarity = iota
	GoodHigh
)

// Scale is the range a rate lives on.
type Scale int

const (
	// Ratio stats (BA, SLG, wOBA) are capped at 1.0 with a hue switch above 0.3.
	Ratio Scale = iota
	// Percent stats (K%, Whiff%, PutAway%) are capped at 50.
	Percent
)

const (
	ratioCap       = 1.0
	ratioThreshold = 0.3
	percentCap     = 50.0
	deltaCap       = 50.0
)

// Mode is a complete polarity convention.
type Mode struct {
	Kind     Kind
	Polarity Polarity
	Scale    Scale
}

var (
	DeltaMode  = Mode{Kind: KindDelta}
	BandedMode = Mode{Kind: KindBanded}
)

// RateMode builds a mode for raw stats.
func RateMode(p Polarity, s Scale) Mode {
	return Mode{Kind: KindRate, Polarity: p, Scale: s}
}

// PitcherMode is the convention for a pitcher's table: high strikeout rates
// and low contact quality are good.
func PitcherMode(m pitches.Metric) Mode {
	if m.IsPercent() {
		return RateMode(GoodHigh, Percent)
	}
	return RateMode(GoodLow, Ratio)
}

// BatterMode mirrors PitcherMode for a batter's table.
func BatterMode(m pitches.Metric) Mode {
	if m.IsPercent() {
		return RateMode(GoodLow, Percent)
	}
	return RateMode(GoodHigh, Ratio)
}

// ModeFor returns the table convention for a role.
func ModeFor(role pitches.Role, m pitches.Metric) Mode {
	if role == pitches.RoleBatter {
		return BatterMode(m)
	}
	return PitcherMode(m)
}

// Style is a cell background. The zero value is neutral.
type Style struct {
	Neutral   bool
	Color     Color
	Alpha     float64
	Solid     bool
	WhiteText bool
}

// MarshalJSON encodes the rendered forms: {"css": ..., "hex": ...}.
func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CSS string `json:"css"`
		Hex string `json:"hex,omitempty"`
	}{CSS: s.CSS(), Hex: s.Hex()})
}

// NeutralStyle is the unstyled cell.
var NeutralStyle = Style{Neutral: true}

// CSS renders the style as an inline CSS declaration list.
func (s Style) CSS() string {
	if s.Neutral {
		return "color: white;"
	}
	if s.Solid {
		css := "background-color: " + strings.ToLower(s.Color.Hex()) + ";"
		if s.WhiteText {
			css += " color: white;"
		}
		return css
	}
	return fmt.Sprintf("background-color: rgba(%d, %d, %d, %.2f); color: white;", s.Color.R, s.Color.G, s.Color.B, s.Alpha)
}

// Hex blends the style onto white and renders #RRGGBB. Neutral styles return "".
func (s Style) Hex() string {
	if s.Neutral {
		return ""
	}
	if s.Solid {
		return s.Color.Hex()
	}
	return Color{blend(s.Color.R, s.Alpha), blend(s.Color.G, s.Alpha), blend(s.Color.B, s.Alpha)}.Hex()
}

func blend(c uint8, alpha float64) uint8 {
	return uint8(math.Round(255 - alpha*(255-float64(c))))
}

// For maps a Stat under a mode.
func For(s pitches.Stat, m Mode) Style {
	if !s.Valid {
		return NeutralStyle
	}
	return ForValue(s.Value, m)
}

// ForString parses raw (a trailing "%" is allowed) and maps it under a mode.
func ForString(raw string, m Mode) Style {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(raw), "%"), 64)
	if err != nil {
		return NeutralStyle
	}
	return ForValue(v, m)
}

// ForValue maps a number under a mode.
func ForValue(v float64, m Mode) Style {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NeutralStyle
	}
	switch m.Kind {
	case KindDelta:
		return delta(v)
	case KindBanded:
		return banded(v)
	}
	if m.Scale == Percent {
		return percent(v, m.Polarity)
	}
	return ratio(v, m.Polarity)
}

func ratio(v float64, p Polarity) Style {
	a := math.Min(math.Abs(v), ratioCap) / ratioCap
	above := v > ratioThreshold
	switch {
	case p == GoodLow && above:
		return shade(Red, a)
	case p == GoodLow:
		return shade(Blue, 1-a)
	case above:
		return shade(Blue, a)
	default:
		return shade(Red, 1-a)
	}
}

func percent(v float64, p Polarity) Style {
	a := math.Min(math.Abs(v), percentCap) / percentCap
	if p == GoodHigh {
		return shade(Green, a)
	}
	return shade(Red, a)
}

func delta(v float64) Style {
	a := math.Min(math.Abs(v), deltaCap) / deltaCap
	switch {
	case v > 0:
		return shade(Blue, a)
	case v < 0:
		return shade(Red, a)
	}
	return NeutralStyle
}

type band struct {
	upper     float64
	inclusive bool
	color     Color
	whiteText bool
}

var bands = []band{
	{upper: -45, inclusive: true, color: Color{0x99, 0x00, 0x00}, whiteText: true},
	{upper: -20, inclusive: true, color: Color{0xE0, 0x66, 0x66}},
	{upper: 0, inclusive: false, color: Color{0xF4, 0xCC, 0xCC}},
	{upper: 20, inclusive: true, color: Color{0xD9, 0xEA, 0xD3}},
	{upper: 45, inclusive: true, color: Color{0x93, 0xC4, 0x7D}},
}

var topBand = band{color: Color{0x38, 0x76, 0x1D}, whiteText: true}

func banded(v float64) Style {
	b := topBand
	for _, candidate := range bands {
		if v < candidate.upper || (candidate.inclusive && v == candidate.upper) {
			b = candidate
			break
		}
	}
	return Style{Color: b.color, Alpha: 1, Solid: true, WhiteText: b.whiteText}
}

func shade(c Color, alpha float64) Style {
	return Style{Color: c, Alpha: alpha, WhiteText: true}
}
