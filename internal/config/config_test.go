package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider %s, got %s", defaultProvider, cfg.Provider)
	}
	if cfg.StatsAPI.BaseURL != defaultStatsAPIBaseURL {
		t.Fatalf("expected default statsapi url, got %s", cfg.StatsAPI.BaseURL)
	}
	if cfg.Savant.BaseURL != defaultSavantBaseURL {
		t.Fatalf("expected default savant url, got %s", cfg.Savant.BaseURL)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Fatalf("expected 10m cache ttl, got %s", cfg.Cache.TTL)
	}
	if cfg.Snapshots.MaxAge != 6*time.Hour {
		t.Fatalf("expected 6h snapshot max age, got %s", cfg.Snapshots.MaxAge)
	}
	if cfg.Snapshots.FutureDays != 1 {
		t.Fatalf("expected tomorrow preloaded, got %d", cfg.Snapshots.FutureDays)
	}
	if cfg.Stats.Workers != 10 {
		t.Fatalf("expected 10 workers, got %d", cfg.Stats.Workers)
	}
	if cfg.Retry.MaxAttempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MATCHUP_PORT", "5000")
	t.Setenv("MATCHUP_PROVIDER", "MLB")
	t.Setenv("MATCHUP_STATSAPI__BASE_URL", "http://example.com/api/")
	t.Setenv("MATCHUP_CACHE__BACKEND", "redis")
	t.Setenv("MATCHUP_CACHE__TTL", "45s")
	t.Setenv("MATCHUP_CACHE__REDIS_ADDR", "localhost:6379")
	t.Setenv("MATCHUP_STATS__WORKERS", "4")
	t.Setenv("MATCHUP_JOB__ENABLED", "true")
	t.Setenv("MATCHUP_ADMIN_TOKEN", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Provider != "mlb" {
		t.Fatalf("expected provider normalized to mlb, got %s", cfg.Provider)
	}
	if cfg.StatsAPI.BaseURL != "http://example.com/api" {
		t.Fatalf("expected trimmed base url, got %s", cfg.StatsAPI.BaseURL)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected cache config %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 45*time.Second {
		t.Fatalf("expected ttl 45s, got %s", cfg.Cache.TTL)
	}
	if cfg.Stats.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.Stats.Workers)
	}
	if !cfg.Job.Enabled {
		t.Fatalf("expected job enabled")
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("expected admin token override, got %q", cfg.AdminToken)
	}
}

func TestLoadNonPositiveFallsBack(t *testing.T) {
	t.Setenv("MATCHUP_CACHE__TTL", "0s")
	t.Setenv("MATCHUP_STATS__WORKERS", "-3")
	t.Setenv("MATCHUP_RETRY__MAX_ATTEMPTS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.TTL != defaultCacheTTL {
		t.Fatalf("expected default ttl, got %s", cfg.Cache.TTL)
	}
	if cfg.Stats.Workers != defaultWorkers {
		t.Fatalf("expected default workers, got %d", cfg.Stats.Workers)
	}
	if cfg.Retry.MaxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestLoadInvalidDurationErrors(t *testing.T) {
	t.Setenv("MATCHUP_CACHE__TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatalf("expected decode error for invalid duration")
	}
}

func TestLoadYAMLFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("port: \"7000\"\nprovider: mlb\nsnapshots:\n  dir: /tmp/sched\n  max_age: 2h\njob:\n  interval: 12h\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MATCHUP_CONFIG", path)
	t.Setenv("MATCHUP_PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7001" {
		t.Fatalf("expected env to win over file, got %s", cfg.Port)
	}
	if cfg.Provider != "mlb" {
		t.Fatalf("expected provider from file, got %s", cfg.Provider)
	}
	if cfg.Snapshots.Dir != "/tmp/sched" || cfg.Snapshots.MaxAge != 2*time.Hour {
		t.Fatalf("unexpected snapshot config %+v", cfg.Snapshots)
	}
	if cfg.Job.Interval != 12*time.Hour {
		t.Fatalf("expected 12h job interval, got %s", cfg.Job.Interval)
	}
	if cfg.Snapshots.RetentionDays != defaultSnapshotRetention {
		t.Fatalf("expected untouched defaults to survive, got %d", cfg.Snapshots.RetentionDays)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	t.Setenv("MATCHUP_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
