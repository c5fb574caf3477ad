package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
)

func TestWriterWritesSnapshotAndManifest(t *testing.T) {
	w := newTestWriter(t, 10)
	writeSimpleSnapshot(t, w, "2024-06-10")
	requireSnapshotExists(t, w, "2024-06-10")

	m, err := ReadManifest(w.BasePath())
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	assertDatesEqual(t, m.Schedule.Dates, []string{"2024-06-10"})
	if m.Retention.ScheduleDays != 10 || m.Version != 1 {
		t.Fatalf("unexpected manifest header: %+v", m)
	}
	if !m.Schedule.LastRefreshed.Equal(fixedNow) {
		t.Fatalf("expected lastRefreshed %v, got %v", fixedNow, m.Schedule.LastRefreshed)
	}
}

func TestWriterPrunesOldSnapshots(t *testing.T) {
	w := newTestWriter(t, 1)
	writeSimpleSnapshot(t, w, "2024-06-01")
	writeSimpleSnapshot(t, w, "2024-06-10")

	if _, err := os.Stat(ScheduleSnapshotPath(w.BasePath(), "2024-06-01")); !os.IsNotExist(err) {
		t.Fatalf("expected old snapshot to be pruned, got %v", err)
	}
	m, _ := ReadManifest(w.BasePath())
	assertDatesEqual(t, m.Schedule.Dates, []string{"2024-06-10"})
}

func TestWriterIdenticalContentRefreshesMtime(t *testing.T) {
	w := newTestWriter(t, 10)
	writeSimpleSnapshot(t, w, "2024-06-10")

	later := fixedNow.Add(3 * time.Hour)
	w.now = func() time.Time { return later }
	writeSimpleSnapshot(t, w, "2024-06-10")

	info, err := os.Stat(ScheduleSnapshotPath(w.BasePath(), "2024-06-10"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(later) {
		t.Fatalf("expected mtime bumped to %v, got %v", later, info.ModTime())
	}
}

func TestWriterSortsGamesAndFixesDate(t *testing.T) {
	w := newTestWriter(t, 10)
	snap := schedule.DayResponse{
		Date:  "wrong",
		Games: []schedule.Game{{GamePk: 9}, {GamePk: 3}},
	}
	if err := w.WriteScheduleSnapshot("2024-06-10", snap); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, _, err := NewFSStore(w.BasePath()).LoadSchedule("2024-06-10")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Date != "2024-06-10" || got.Games[0].GamePk != 3 || got.Games[1].GamePk != 9 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestWriterRejectsBadInput(t *testing.T) {
	var nilWriter *Writer
	if err := nilWriter.WriteScheduleSnapshot("2024-06-10", simpleSnapshot("2024-06-10")); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	if nilWriter.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}
	w := newTestWriter(t, 10)
	if err := w.WriteScheduleSnapshot("../escape", simpleSnapshot("x")); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestWriterIgnoresForeignFiles(t *testing.T) {
	w := newTestWriter(t, 10)
	dir := filepath.Join(w.BasePath(), "schedule")
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	writeSimpleSnapshot(t, w, "2024-06-10")

	m, _ := ReadManifest(w.BasePath())
	assertDatesEqual(t, m.Schedule.Dates, []string{"2024-06-10"})
}

func TestNewWriterDefaultsRetention(t *testing.T) {
	if w := NewWriter(t.TempDir(), 0); w.retentionDays != defaultRetentionDays {
		t.Fatalf("expected default retention, got %d", w.retentionDays)
	}
}

func TestWriterKeepsJustWrittenPastDate(t *testing.T) {
	w := newTestWriter(t, 1)
	writeSimpleSnapshot(t, w, "2024-05-01")
	requireSnapshotExists(t, w, "2024-05-01")

	m, _ := ReadManifest(w.BasePath())
	assertDatesEqual(t, m.Schedule.Dates, []string{"2024-05-01"})
}
