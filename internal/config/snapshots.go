package config

// SnapshotConfig controls the on-disk schedule cache and its preload.
type SnapshotConfig struct {
	Enabled       bool     `koanf:"enabled"`
	Dir           string   `koanf:"dir"`
	MaxAge        Duration `koanf:"max_age"`        // staleness bound, judged by file mtime
	RetentionDays int      `koanf:"retention_days"` // past files older than this are pruned
	FutureDays    int      `koanf:"future_days"`    // days after today to preload
	Interval      Duration `koanf:"interval"`       // delay between preload fetches
	DailyHourUTC  int      `koanf:"daily_hour_utc"`
}
