package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
	"github.com/preston-bernstein/mlb-matchup-service/internal/timeutil"
)

const defaultRetentionDays = 14

// Writer persists schedule snapshots and the manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteScheduleSnapshot writes the schedule for date (YYYY-MM-DD) and prunes old snapshots.
// Rewriting identical content still bumps the file's mtime so it reads as fresh.
func (w *Writer) WriteScheduleSnapshot(date string, snapshot schedule.DayResponse) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return fmt.Errorf("snapshot date: %w", err)
	}
	snapshot.Date = date
	games := append([]schedule.Game(nil), snapshot.Games...)
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].GamePk < games[j].GamePk
	})
	snapshot = schedule.NewDayResponse(date, games)

	target := ScheduleSnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	now := w.now()
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		if err := os.Chtimes(target, now, now); err != nil {
			return err
		}
		return w.updateManifest(date)
	}
	if err := writeBytesAtomic(target, data); err != nil {
		return err
	}
	if err := os.Chtimes(target, now, now); err != nil {
		return err
	}
	return w.updateManifest(date)
}

func (w *Writer) updateManifest(date string) error {
	now := w.now().UTC()
	m, _ := readManifest(manifestPath(w.basePath), w.retentionDays, now)

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}

	m.Schedule.Dates = w.pruneOldSnapshots(dates, date, now)
	m.Schedule.LastRefreshed = now
	m.Retention.ScheduleDays = w.retentionDays
	return writeManifest(w.basePath, m, now)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, scheduleDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

// pruneOldSnapshots removes dates before the retention cutoff. The date just
// written is always kept so an explicit refresh of a past day stays readable.
func (w *Writer) pruneOldSnapshots(dates []string, written string, now time.Time) []string {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if d != written && err == nil && parsed.Before(cutoff) {
			_ = os.Remove(ScheduleSnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}

func writeFileAtomic(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return writeBytesAtomic(path, data)
}

func writeBytesAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
