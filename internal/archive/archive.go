// Package archive persists daily per-pitch-type stats in SQLite.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/pitches"
	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/players"
)

const schema = `
CREATE TABLE IF NOT EXISTS pitch_type_stats (
	run_date    TEXT    NOT NULL,
	role        TEXT    NOT NULL,
	player_id   INTEGER NOT NULL,
	player_name TEXT    NOT NULL,
	pitch_code  TEXT    NOT NULL,
	pitch_type  TEXT    NOT NULL,
	pa          INTEGER NOT NULL,
	ba          REAL,
	slg         REAL,
	woba        REAL,
	k_pct       REAL,
	whiff_pct   REAL,
	putaway_pct REAL,
	PRIMARY KEY (run_date, role, player_id, pitch_code)
);
CREATE INDEX IF NOT EXISTS idx_pitch_type_stats_player ON pitch_type_stats (player_id, role);
`

// ErrClosed is returned when the store has no open database.
var ErrClosed = errors.New("archive closed")

// Record is one archived row with the player it belongs to.
type Record struct {
	RunDate string                   `json:"runDate"`
	Role    pitches.Role             `json:"role"`
	Player  players.ResolvedPlayer   `json:"player"`
	Row     pitches.PitchTypeStatRow `json:"row"`
}

// Store is a SQLite-backed archive.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("archive dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping archive: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRows replaces the rows stored for (runDate, role, player).
func (s *Store) SaveRows(ctx context.Context, runDate string, role pitches.Role, player players.ResolvedPlayer, rows []pitches.PitchTypeStatRow) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM pitch_type_stats WHERE run_date = ? AND role = ? AND player_id = ?`,
		runDate, string(role), player.PlayerID,
	); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pitch_type_stats
		(run_date, role, player_id, player_name, pitch_code, pitch_type, pa, ba, slg, woba, k_pct, whiff_pct, putaway_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			runDate, string(role), player.PlayerID, player.FullName, r.Code, r.PitchType, r.PlateAppearances,
			nullable(r.BA), nullable(r.SLG), nullable(r.WOBA),
			nullable(r.KPct), nullable(r.WhiffPct), nullable(r.PutAwayPct),
		); err != nil {
			return fmt.Errorf("insert %s: %w", r.Code, err)
		}
	}
	return tx.Commit()
}

// LoadRows returns archived rows for a run date and role. playerID 0 means every player.
// Rows are ordered by player id, then pitch code.
func (s *Store) LoadRows(ctx context.Context, runDate string, role pitches.Role, playerID int) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	query := `SELECT run_date, role, player_id, player_name, pitch_code, pitch_type, pa,
		ba, slg, woba, k_pct, whiff_pct, putaway_pct
		FROM pitch_type_stats WHERE run_date = ? AND role = ?`
	args := []any{runDate, string(role)}
	if playerID > 0 {
		query += ` AND player_id = ?`
		args = append(args, playerID)
	}
	query += ` ORDER BY player_id, pitch_code`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var (
			rec                                 Record
			roleRaw                             string
			ba, slg, woba, kPct, whiff, putAway sql.NullFloat64
		)
		if err := rows.Scan(
			&rec.RunDate, &roleRaw, &rec.Player.PlayerID, &rec.Player.FullName,
			&rec.Row.Code, &rec.Row.PitchType, &rec.Row.PlateAppearances,
			&ba, &slg, &woba, &kPct, &whiff, &putAway,
		); err != nil {
			return nil, err
		}
		rec.Role = pitches.Role(roleRaw)
		rec.Row.BA, rec.Row.SLG, rec.Row.WOBA = stat(ba), stat(slg), stat(woba)
		rec.Row.KPct, rec.Row.WhiffPct, rec.Row.PutAwayPct = stat(kPct), stat(whiff), stat(putAway)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// RunDates lists the dates with archived rows, newest first.
func (s *Store) RunDates(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT run_date FROM pitch_type_stats ORDER BY run_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func nullable(s pitches.Stat) sql.NullFloat64 {
	return sql.NullFloat64{Float64: s.Value, Valid: s.Valid}
}

func stat(n sql.NullFloat64) pitches.Stat {
	if !n.Valid {
		return pitches.NA()
	}
	return pitches.Of(n.Float64)
}
