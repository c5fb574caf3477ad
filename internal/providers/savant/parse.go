package savant

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
)

const (
	colPitchType   = "pitch_type"
	colDescription = "description"
	colEvents      = "events"
	colEstBA       = "estimated_ba_using_speedangle"
	colEstSLG      = "estimated_slg_using_speedangle"
	colEstWOBA     = "estimated_woba_using_speedangle"
	colBatter      = "batter"
	colPitcher     = "pitcher"
	colGameDate    = "game_date"
)

// parseEvents reads a Statcast CSV by header name. Missing columns read as absent.
func parseEvents(r io.Reader) ([]pitches.PitchEvent, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []pitches.PitchEvent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	events := make([]pitches.PitchEvent, 0)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return cell(rec[i])
		}
		events = append(events, pitches.PitchEvent{
			PitchType:   field(colPitchType),
			Description: field(colDescription),
			Event:       field(colEvents),
			EstBA:       parseStat(field(colEstBA)),
			EstSLG:      parseStat(field(colEstSLG)),
			EstWOBA:     parseStat(field(colEstWOBA)),
			BatterID:    parseInt(field(colBatter)),
			PitcherID:   parseInt(field(colPitcher)),
			GameDate:    field(colGameDate),
		})
	}
	return events, nil
}

// cell normalizes the blank markers Savant uses to the empty string.
func cell(raw string) string {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "null", "na", "nan", "none":
		return ""
	}
	return v
}

func parseStat(raw string) pitches.Stat {
	if raw == "" {
		return pitches.NA()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return pitches.NA()
	}
	return pitches.Of(v)
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
