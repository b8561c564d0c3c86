// Package config defines service configuration and how it is loaded.
package config

import (
	"runtime"
	"time"
)

// Data source names.
const (
	SourceMock   = "mock"
	SourceRemote = "remote"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the text or json handler.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataSource picks the backend: mock or remote.
	DataSource    string `koanf:"data_source"`
	RemoteBaseURL string `koanf:"remote_base_url"`

	// LatencyMinMS and LatencyMaxMS bound the simulated delay of the mock.
	LatencyMinMS int `koanf:"latency_min_ms"`
	LatencyMaxMS int `koanf:"latency_max_ms"`

	DeliveryWorkers   int `koanf:"delivery_workers"`
	DeliveryQueueSize int `koanf:"delivery_queue_size"`
	InFlightGuardSize int `koanf:"inflight_guard_size"`

	DashboardCacheSize  int `koanf:"dashboard_cache_size"`
	DashboardCacheTTLMS int `koanf:"dashboard_cache_ttl_ms"`

	// ReminderSchedule is a cron spec; empty disables reminders.
	ReminderSchedule      string `koanf:"reminder_schedule"`
	ReminderWindowMinutes int    `koanf:"reminder_window_minutes"`

	AuthSecret      string `koanf:"auth_secret"`
	TokenTTLMinutes int    `koanf:"token_ttl_minutes"`
	RequireAuth     bool   `koanf:"require_auth"`

	// MaxPageSize caps the page_size query parameter.
	MaxPageSize int `koanf:"max_page_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		DataSource:            SourceMock,
		LatencyMinMS:          150,
		LatencyMaxMS:          400,
		DeliveryWorkers:       min(2*runtime.NumCPU(), 8),
		DeliveryQueueSize:     256,
		InFlightGuardSize:     10_000,
		DashboardCacheSize:    16,
		DashboardCacheTTLMS:   30_000,
		ReminderSchedule:      "@every 15m",
		ReminderWindowMinutes: 24 * 60,
		AuthSecret:            "placement-dev-secret",
		TokenTTLMinutes:       12 * 60,
		MaxPageSize:           100,
	}
}

// DashboardCacheTTL returns the cache TTL as a duration.
func (c *Config) DashboardCacheTTL() time.Duration {
	return time.Duration(c.DashboardCacheTTLMS) * time.Millisecond
}

// ReminderWindow returns the reminder look-ahead as a duration.
func (c *Config) ReminderWindow() time.Duration {
	return time.Duration(c.ReminderWindowMinutes) * time.Minute
}

// TokenTTL returns the session lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// LatencyBounds returns the mock delay bounds.
func (c *Config) LatencyBounds() (time.Duration, time.Duration) {
	return time.Duration(c.LatencyMinMS) * time.Millisecond, time.Duration(c.LatencyMaxMS) * time.Millisecond
}
