package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int          `json:"version"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Retention   Retention    `json:"retention"`
	Schedule    ScheduleMeta `json:"schedule"`
}

type Retention struct {
	ScheduleDays int `json:"scheduleDays"`
}

type ScheduleMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest(retentionDays int, now time.Time) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: now,
		Retention:   Retention{ScheduleDays: retentionDays},
		Schedule:    ScheduleMeta{Dates: []string{}},
	}
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	return readManifest(manifestPath(basePath), 0, time.Now().UTC())
}

func readManifest(path string, retentionDays int, now time.Time) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionDays, now), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionDays, now), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now
	return writeFileAtomic(manifestPath(basePath), m)
}
