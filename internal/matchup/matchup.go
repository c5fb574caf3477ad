// Package matchup joins pitcher and batter per-pitch-type rows and computes deltas.
package matchup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/stats"
)

// JoinMode selects which pitch types survive a join.
type JoinMode int

const (
	// JoinInner keeps only pitch types present on both sides.
	JoinInner JoinMode = iota
	// JoinOuter also keeps one-sided pitch types with the other side unavailable.
	JoinOuter
)

// ParseJoinMode accepts "", "inner" or "outer".
func ParseJoinMode(raw string) (JoinMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "inner":
		return JoinInner, nil
	case "outer":
		return JoinOuter, nil
	}
	return JoinInner, fmt.Errorf("matchup: unknown join mode %q", raw)
}

func (m JoinMode) String() string {
	if m == JoinOuter {
		return "outer"
	}
	return "inner"
}

// Cell holds one metric for both sides and their delta (right - left).
type Cell struct {
	Metric pitches.Metric `json:"metric"`
	Left   pitches.Stat   `json:"left"`
	Right  pitches.Stat   `json:"right"`
	Delta  pitches.Stat   `json:"delta"`
}

// Row is one pitch type of a joined matchup.
type Row struct {
	PitchType string                   `json:"pitchType"`
	Left      pitches.PitchTypeStatRow `json:"left"`
	Right     pitches.PitchTypeStatRow `json:"right"`
	Cells     []Cell                   `json:"cells"`
}

// Cell returns the cell for a metric.
func (r Row) Cell(m pitches.Metric) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Metric == m {
			return c, true
		}
	}
	return Cell{}, false
}

// Table is a labelled joined matchup.
type Table struct {
	LeftLabel  string `json:"leftLabel"`
	RightLabel string `json:"rightLabel"`
	Rows       []Row  `json:"rows"`
}

// Insufficient reports whether the table has no rows to show.
func (t Table) Insufficient() bool {
	return len(t.Rows) == 0
}

// Join matches left and right rows by display pitch type. Rows follow the
// left input order; in outer mode right-only rows are appended after them.
// A nil metrics slice means pitches.DeltaMetrics().
func Join(left, right []pitches.PitchTypeStatRow, metrics []pitches.Metric, mode JoinMode) []Row {
	if metrics == nil {
		metrics = pitches.DeltaMetrics()
	}
	rows := []Row{}
	if mode == JoinInner && (len(left) == 0 || len(right) == 0) {
		return rows
	}

	rightByType := make(map[string]pitches.PitchTypeStatRow, len(right))
	for _, r := range right {
		if _, dup := rightByType[r.PitchType]; !dup {
			rightByType[r.PitchType] = r
		}
	}

	seen := make(map[string]bool, len(left))
	for _, l := range left {
		if seen[l.PitchType] {
			continue
		}
		seen[l.PitchType] = true
		r, ok := rightByType[l.PitchType]
		if !ok {
			if mode != JoinOuter {
				continue
			}
			r = missing(l.PitchType, l.Code)
		}
		rows = append(rows, newRow(l, r, metrics))
	}

	if mode == JoinOuter {
		for _, r := range right {
			if seen[r.PitchType] {
				continue
			}
			seen[r.PitchType] = true
			rows = append(rows, newRow(missing(r.PitchType, r.Code), r, metrics))
		}
	}
	return rows
}

// NewTable joins left and right and labels the result.
func NewTable(leftLabel, rightLabel string, left, right []pitches.PitchTypeStatRow, mode JoinMode) Table {
	return Table{
		LeftLabel:  leftLabel,
		RightLabel: rightLabel,
		Rows:       Join(left, right, nil, mode),
	}
}

// TopBy returns up to n rows with the largest delta for metric, largest first.
// Rows whose delta is unavailable are skipped.
func TopBy(rows []Row, metric pitches.Metric, n int) []Row {
	if n <= 0 {
		return []Row{}
	}
	type ranked struct {
		row   Row
		delta float64
	}
	candidates := make([]ranked, 0, len(rows))
	for _, row := range rows {
		c, ok := row.Cell(metric)
		if !ok || !c.Delta.Valid {
			continue
		}
		candidates = append(candidates, ranked{row: row, delta: c.Delta.Value})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].delta > candidates[j].delta
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]Row, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.row)
	}
	return out
}

func newRow(left, right pitches.PitchTypeStatRow, metrics []pitches.Metric) Row {
	cells := make([]Cell, 0, len(metrics))
	for _, m := range metrics {
		l, r := m.Of(left), m.Of(right)
		cells = append(cells, Cell{Metric: m, Left: l, Right: r, Delta: delta(l, r)})
	}
	return Row{PitchType: left.PitchType, Left: left, Right: right, Cells: cells}
}

func delta(left, right pitches.Stat) pitches.Stat {
	if !left.Valid || !right.Valid {
		return pitches.NA()
	}
	return pitches.Of(stats.Round2(right.Value - left.Value))
}

func missing(pitchType, code string) pitches.PitchTypeStatRow {
	return pitches.PitchTypeStatRow{PitchType: pitchType, Code: code}
}
