package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "PLACEMENT_"
	envFile    = "PLACEMENT_ENV_FILE"
	configFile = "PLACEMENT_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. .env file, or the one named by PLACEMENT_ENV_FILE, if present
//  3. YAML file if PLACEMENT_CONFIG is set
//  4. env (prefix PLACEMENT_)
//
// Values from the .env file never override variables already in the
// environment.
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(configFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PLACEMENT_DELIVERY_WORKERS -> delivery_workers (flat keys).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv() error {
	path := os.Getenv(envFile)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(strings.TrimSpace(c.Addr) != "", "addr must not be empty")
	check(c.DataSource == SourceMock || c.DataSource == SourceRemote, "data_source must be mock or remote")
	check(c.DataSource != SourceRemote || strings.TrimSpace(c.RemoteBaseURL) != "", "remote_base_url is required for the remote source")
	check(c.LogFormat == "text" || c.LogFormat == "json", "log_format must be text or json")
	check(c.LatencyMinMS >= 0 && c.LatencyMaxMS >= c.LatencyMinMS, "latency bounds must satisfy 0 <= min <= max")
	check(c.DeliveryWorkers > 0, "delivery_workers must be positive")
	check(c.DeliveryQueueSize > 0, "delivery_queue_size must be positive")
	check(c.InFlightGuardSize > 0, "inflight_guard_size must be positive")
	check(c.DashboardCacheSize > 0, "dashboard_cache_size must be positive")
	check(c.DashboardCacheTTLMS > 0, "dashboard_cache_ttl_ms must be positive")
	check(c.ReminderWindowMinutes > 0, "reminder_window_minutes must be positive")
	check(c.AuthSecret != "", "auth_secret must not be empty")
	check(c.TokenTTLMinutes > 0, "token_ttl_minutes must be positive")
	check(c.MaxPageSize > 0, "max_page_size must be positive")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
