package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional YAML file and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. YAML file when MATCHUP_CONFIG is set
//  3. env, prefix MATCHUP_, "__" separating nested keys (MATCHUP_CACHE__TTL -> cache.ttl)
//
// Non-positive numeric values fall back to their defaults; unparseable ones are errors.
func Load() (Config, error) {
	k := koanf.New(".")

	if path := strings.TrimSpace(os.Getenv(envConfigFile)); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return normalize(cfg), nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

func normalize(cfg Config) Config {
	def := New()

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = def.Provider
	}
	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = def.Port
	}
	cfg.StatsAPI = normalizeUpstream(cfg.StatsAPI, def.StatsAPI)
	cfg.Savant = normalizeUpstream(cfg.Savant, def.Savant)

	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = def.Retry.MaxAttempts
	}
	if cfg.Retry.Backoff <= 0 {
		cfg.Retry.Backoff = def.Retry.Backoff
	}

	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = def.Cache.Backend
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = def.Cache.TTL
	}

	if cfg.Snapshots.Dir == "" {
		cfg.Snapshots.Dir = def.Snapshots.Dir
	}
	if cfg.Snapshots.MaxAge <= 0 {
		cfg.Snapshots.MaxAge = def.Snapshots.MaxAge
	}
	if cfg.Snapshots.RetentionDays <= 0 {
		cfg.Snapshots.RetentionDays = def.Snapshots.RetentionDays
	}
	if cfg.Snapshots.FutureDays < 0 {
		cfg.Snapshots.FutureDays = def.Snapshots.FutureDays
	}
	if cfg.Snapshots.Interval <= 0 {
		cfg.Snapshots.Interval = def.Snapshots.Interval
	}
	if cfg.Snapshots.DailyHourUTC < 0 || cfg.Snapshots.DailyHourUTC > 23 {
		cfg.Snapshots.DailyHourUTC = def.Snapshots.DailyHourUTC
	}

	if cfg.Stats.Workers <= 0 {
		cfg.Stats.Workers = def.Stats.Workers
	}

	if cfg.Job.Interval <= 0 {
		cfg.Job.Interval = def.Job.Interval
	}
	if cfg.Job.DataDir == "" {
		cfg.Job.DataDir = def.Job.DataDir
	}
	if cfg.Job.ArchivePath == "" {
		cfg.Job.ArchivePath = def.Job.ArchivePath
	}

	if cfg.Metrics.Port == "" {
		cfg.Metrics.Port = def.Metrics.Port
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = def.Metrics.ServiceName
	}
	return cfg
}

func normalizeUpstream(cfg, def UpstreamConfig) UpstreamConfig {
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return cfg
}
