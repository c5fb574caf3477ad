package snapshots

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/preston-bernstein/mlb-matchup-service/internal/domain/schedule"
)

// Store loads schedule snapshots along with their modification time.
type Store interface {
	LoadSchedule(date string) (schedule.DayResponse, time.Time, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSchedule reads {basePath}/schedule/{date}.json. The returned time is the
// file's mtime, which callers use as the staleness clock.
func (s *FSStore) LoadSchedule(date string) (schedule.DayResponse, time.Time, error) {
	if s == nil {
		return schedule.DayResponse{}, time.Time{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return schedule.DayResponse{}, time.Time{}, errors.New("snapshot date required")
	}
	path := ScheduleSnapshotPath(s.basePath, date)
	f, err := os.Open(path)
	if err != nil {
		return schedule.DayResponse{}, time.Time{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return schedule.DayResponse{}, time.Time{}, err
	}
	var payload schedule.DayResponse
	if err := json.NewDecoder(f).Decode(&payload); err != nil {
		return schedule.DayResponse{}, time.Time{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	if payload.Games == nil {
		payload.Games = []schedule.Game{}
	}
	return payload, info.ModTime(), nil
}

// Fresh reports whether a modification time is within maxAge of now.
func Fresh(modTime, now time.Time, maxAge time.Duration) bool {
	if modTime.IsZero() || maxAge <= 0 {
		return false
	}
	return now.Sub(modTime) < maxAge
}
