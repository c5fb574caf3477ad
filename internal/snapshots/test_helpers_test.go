package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestWriter(t *testing.T, retentionDays int) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir(), retentionDays)
	w.now = func() time.Time { return fixedNow }
	return w
}

func simpleSnapshot(date string) schedule.DayResponse {
	return schedule.NewDayResponse(date, []schedule.Game{
		{GamePk: 1, Away: "Boston Red Sox", Home: "New York Yankees", Status: "Scheduled"},
	})
}

func writeSimpleSnapshot(t *testing.T, w *Writer, date string) {
	t.Helper()
	if err := w.WriteScheduleSnapshot(date, simpleSnapshot(date)); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(ScheduleSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
