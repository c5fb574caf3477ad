package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/matchup"
	"github.com/preston-bernstein/mlb-matchup-service/internal/severity"
)

// MatchupSheet is the worksheet name used by WriteMatchupXLSX.
const MatchupSheet = "Matchup"

const headerFill = "DDDDDD"

// WriteMatchupXLSX writes a joined table as a workbook with one sheet.
// Delta cells are filled with their severity colour.
func WriteMatchupXLSX(w io.Writer, table matchup.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), MatchupSheet); err != nil {
		return err
	}

	header := MatchupHeader(tableMetrics(table))
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return err
	}
	for col, name := range header {
		if err := setCell(f, col+1, 1, name); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(MatchupSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	fills := map[string]int{}
	for i, row := range table.Rows {
		r := i + 2
		if err := setCell(f, 1, r, row.PitchType); err != nil {
			return err
		}
		for j, c := range row.Cells {
			col := 2 + 3*j
			for k, v := range []pitches.Stat{c.Left, c.Right, c.Delta} {
				if err := setStat(f, col+k, r, v); err != nil {
					return err
				}
			}
			hex := severity.For(c.Delta, severity.DeltaMode).Hex()
			if hex == "" {
				continue
			}
			styleID, err := fillStyle(f, fills, hex)
			if err != nil {
				return err
			}
			cell, err := excelize.CoordinatesToCellName(col+2, r)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(MatchupSheet, cell, cell, styleID); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(MatchupSheet, "A", "A", 18); err != nil {
		return err
	}
	return f.Write(w)
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(MatchupSheet, cell, v)
}

// setStat writes numbers as numbers so the sheet stays sortable; unavailable is "N/A".
func setStat(f *excelize.File, col, row int, s pitches.Stat) error {
	if !s.Valid {
		return setCell(f, col, row, s.String())
	}
	return setCell(f, col, row, s.Value)
}

func fillStyle(f *excelize.File, cache map[string]int, hex string) (int, error) {
	key := strings.TrimPrefix(hex, "#")
	if id, ok := cache[key]; ok {
		return id, nil
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{key}},
	})
	if err != nil {
		return 0, fmt.Errorf("fill %s: %w", hex, err)
	}
	cache[key] = id
	return id, nil
}
