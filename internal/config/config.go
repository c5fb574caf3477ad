package config

import "time"

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// Config holds runtime configuration for the service and the daily job.
type Config struct {
	Port       string         `koanf:"port"`
	Provider   string         `koanf:"provider"`
	AdminToken string         `koanf:"admin_token"`
	StatsAPI   UpstreamConfig `koanf:"statsapi"`
	Savant     UpstreamConfig `koanf:"savant"`
	Retry      RetryConfig    `koanf:"retry"`
	Cache      CacheConfig    `koanf:"cache"`
	Snapshots  SnapshotConfig `koanf:"snapshots"`
	Stats      StatsConfig    `koanf:"stats"`
	Job        JobConfig      `koanf:"job"`
	Metrics    MetricsConfig  `koanf:"metrics"`
}

// UpstreamConfig controls how we talk to one upstream API.
type UpstreamConfig struct {
	BaseURL string   `koanf:"base_url"`
	Timeout Duration `koanf:"timeout"`
}

// RetryConfig bounds retries on transient upstream failures.
type RetryConfig struct {
	MaxAttempts int      `koanf:"max_attempts"`
	Backoff     Duration `koanf:"backoff"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend       string   `koanf:"backend"` // memory | redis
	TTL           Duration `koanf:"ttl"`
	RedisAddr     string   `koanf:"redis_addr"`
	RedisPassword string   `koanf:"redis_password"`
	RedisDB       int      `koanf:"redis_db"`
}

// StatsConfig controls stat computation defaults.
type StatsConfig struct {
	// SeasonStart is the default range start (YYYY-MM-DD). Empty means January 1 of the end date's year.
	SeasonStart string `koanf:"season_start"`
	Workers     int    `koanf:"workers"`
}

// JobConfig controls the daily stats pull.
type JobConfig struct {
	Enabled     bool     `koanf:"enabled"`
	Interval    Duration `koanf:"interval"`
	DataDir     string   `koanf:"data_dir"`
	ArchivePath string   `koanf:"archive_path"`
}

// New returns a Config populated with defaults.
func New() Config {
	return Config{
		Port:     defaultPort,
		Provider: defaultProvider,
		StatsAPI: UpstreamConfig{BaseURL: defaultStatsAPIBaseURL, Timeout: defaultHTTPTimeout},
		Savant:   UpstreamConfig{BaseURL: defaultSavantBaseURL, Timeout: defaultHTTPTimeout},
		Retry:    RetryConfig{MaxAttempts: defaultRetryAttempts, Backoff: defaultRetryBackoff},
		Cache:    CacheConfig{Backend: defaultCacheBackend, TTL: defaultCacheTTL},
		Snapshots: SnapshotConfig{
			Enabled:       true,
			Dir:           defaultSnapshotDir,
			MaxAge:        defaultSnapshotMaxAge,
			RetentionDays: defaultSnapshotRetention,
			FutureDays:    defaultSnapshotFutureDays,
			Interval:      defaultSnapshotInterval,
			DailyHourUTC:  defaultSnapshotDailyHour,
		},
		Stats: StatsConfig{Workers: defaultWorkers},
		Job: JobConfig{
			Enabled:     false,
			Interval:    defaultJobInterval,
			DataDir:     defaultJobDataDir,
			ArchivePath: defaultJobArchivePath,
		},
		Metrics: MetricsConfig{
			Enabled:      true,
			Port:         defaultMetricsPort,
			ServiceName:  defaultServiceName,
			OtlpInsecure: true,
		},
	}
}
