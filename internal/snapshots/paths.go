package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	scheduleDir  = "schedule"
	manifestFile = "manifest.json"
)

// ScheduleSnapshotPath builds the path to a schedule snapshot for a given date.
func ScheduleSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, scheduleDir, fmt.Sprintf("%s.json", date))
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
