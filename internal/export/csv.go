// Package export renders stats and matchup tables as CSV and XLSX.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/matchup"
)

// StatsRecord is one player's rows in a stats export.
type StatsRecord struct {
	PlayerID   int
	PlayerName string
	Rows       []pitches.PitchTypeStatRow
}

// MatchupHeader returns the matchup columns: pitch_type, then for each metric
// the pitcher value, batter value and delta.
func MatchupHeader(metrics []pitches.Metric) []string {
	if metrics == nil {
		metrics = pitches.DeltaMetrics()
	}
	header := make([]string, 0, 1+3*len(metrics))
	header = append(header, "pitch_type")
	for _, m := range metrics {
		header = append(header, string(m)+"_P", string(m)+"_B", "Δ "+string(m))
	}
	return header
}

func matchupRecord(row matchup.Row) []string {
	rec := make([]string, 0, 1+3*len(row.Cells))
	rec = append(rec, row.PitchType)
	for _, c := range row.Cells {
		rec = append(rec, c.Left.String(), c.Right.String(), c.Delta.String())
	}
	return rec
}

// WriteMatchupCSV writes a joined table with MatchupHeader columns.
func WriteMatchupCSV(w io.Writer, table matchup.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MatchupHeader(tableMetrics(table))); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := cw.Write(matchupRecord(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// StatsHeader returns the per-pitch-type stats columns for role.
func StatsHeader(role pitches.Role) []string {
	return []string{
		"pitch_type", "pitch_code", "PA", "BA", "SLG", "wOBA", "K%", "Whiff%", "PutAway%",
		string(role) + "_id", "player_name",
	}
}

// WriteStatsCSV writes every record's rows, one line per pitch type.
func WriteStatsCSV(w io.Writer, role pitches.Role, records []StatsRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StatsHeader(role)); err != nil {
		return err
	}
	for _, rec := range records {
		id := strconv.Itoa(rec.PlayerID)
		for _, r := range rec.Rows {
			line := []string{
				r.PitchType, r.Code, strconv.Itoa(r.PlateAppearances),
				r.BA.String(), r.SLG.String(), r.WOBA.String(),
				r.KPct.String(), r.WhiffPct.String(), r.PutAwayPct.String(),
				id, rec.PlayerName,
			}
			if err := cw.Write(line); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// tableMetrics reads the metric order off the first row; an empty table uses the default order.
func tableMetrics(table matchup.Table) []pitches.Metric {
	if len(table.Rows) == 0 {
		return nil
	}
	ms := make([]pitches.Metric, 0, len(table.Rows[0].Cells))
	for _, c := range table.Rows[0].Cells {
		ms = append(ms, c.Metric)
	}
	return ms
}
