package config

import "time"

const (
	envPrefix     = "MATCHUP_"
	envConfigFile = "MATCHUP_CONFIG"

	defaultPort     = "4000"
	defaultProvider = "fixture"

	defaultStatsAPIBaseURL = "https://statsapi.mlb.com"
	defaultSavantBaseURL   = "https://baseballsavant.mlb.com"
	defaultHTTPTimeout     = 10 * time.Second

	// One retry on transient upstream failures.
	defaultRetryAttempts = 2
	defaultRetryBackoff  = 200 * time.Millisecond

	defaultCacheBackend = "memory"
	defaultCacheTTL     = 10 * time.Minute

	defaultSnapshotDir        = "data/schedule_cache"
	defaultSnapshotMaxAge     = 6 * time.Hour
	defaultSnapshotRetention  = 14
	defaultSnapshotFutureDays = 1
	defaultSnapshotInterval   = 5 * time.Second
	// UTC hour to run the daily schedule preload (10 AM UTC, before first pitch in the US).
	defaultSnapshotDailyHour = 10

	defaultWorkers = 10

	defaultJobInterval    = 24 * time.Hour
	defaultJobDataDir     = "data/daily_stats"
	defaultJobArchivePath = "data/daily_stats/archive.db"

	defaultMetricsPort = "9090"
	defaultServiceName = "mlb-matchup-service"
)
