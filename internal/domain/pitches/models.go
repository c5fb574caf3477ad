package pitches

import (
	"fmt"
	"strings"
)

// Role says which side of the plate a player's events are pulled for.
type Role string

const (
	RolePitcher Role = "pitcher"
	RoleBatter  Role = "batter"
)

// ParseRole accepts "pitcher" or "batter" in any case.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RolePitcher:
		return RolePitcher, nil
	case RoleBatter:
		return RoleBatter, nil
	}
	return "", fmt.Errorf("pitches: unknown role %q", raw)
}

// PitchEvent is one pitch as reported by Statcast. Empty strings mean absent.
type PitchEvent struct {
	PitchType   string `json:"pitchType,omitempty"`
	Description string `json:"description,omitempty"`
	Event       string `json:"event,omitempty"`
	EstBA       Stat   `json:"estBa"`
	EstSLG      Stat   `json:"estSlg"`
	EstWOBA     Stat   `json:"estWoba"`
	BatterID    int    `json:"batterId,omitempty"`
	PitcherID   int    `json:"pitcherId,omitempty"`
	GameDate    string `json:"gameDate,omitempty"`
}

// PitchTypeStatRow aggregates one pitch type for one player.
// PlateAppearances is the number of pitch events in the group.
type PitchTypeStatRow struct {
	PitchType        string `json:"pitchType"`
	Code             string `json:"code"`
	PlateAppearances int    `json:"pa"`
	BA               Stat   `json:"ba"`
	SLG              Stat   `json:"slg"`
	WOBA             Stat   `json:"woba"`
	KPct             Stat   `json:"kPct"`
	WhiffPct         Stat   `json:"whiffPct"`
	PutAwayPct       Stat   `json:"putAwayPct"`
}

// Metric names one of the six per-pitch-type statistics.
type Metric string

const (
	MetricK       Metric = "K%"
	MetricWhiff   Metric = "Whiff%"
	MetricPutAway Metric = "PutAway%"
	MetricSLG     Metric = "SLG"
	MetricWOBA    Metric = "wOBA"
	MetricBA      Metric = "BA"
)

// DeltaMetrics lists the metrics in delta-table order.
func DeltaMetrics() []Metric {
	return []Metric{MetricK, MetricWhiff, MetricPutAway, MetricSLG, MetricWOBA, MetricBA}
}

// ParseMetric matches a metric name case-insensitively.
func ParseMetric(raw string) (Metric, error) {
	raw = strings.TrimSpace(raw)
	for _, m := range DeltaMetrics() {
		if strings.EqualFold(raw, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("pitches: unknown metric %q", raw)
}

// IsPercent reports whether the metric is on a 0..100 scale.
func (m Metric) IsPercent() bool {
	switch m {
	case MetricK, MetricWhiff, MetricPutAway:
		return true
	}
	return false
}

// Of reads the metric's value from a row.
func (m Metric) Of(row PitchTypeStatRow) Stat {
	switch m {
	case MetricK:
		return row.KPct
	case MetricWhiff:
		return row.WhiffPct
	case MetricPutAway:
		return row.PutAwayPct
	case MetricSLG:
		return row.SLG
	case MetricWOBA:
		return row.WOBA
	case MetricBA:
		return row.BA
	}
	return Stat{}
}
