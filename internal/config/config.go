package config

import "time"

// Config represents the complete application configuration, assembled from
// viper defaults, an optional YAML config file, and environment variables
// prefixed with the app identity's env prefix.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	HubSpot   HubSpotConfig   `mapstructure:"hubspot"`
	Capture   CaptureConfig   `mapstructure:"capture"`
	Retention RetentionConfig `mapstructure:"retention"`
	History   HistoryConfig   `mapstructure:"history"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Health    HealthConfig    `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects and configures the key-value backend.
// Driver is one of: libsql (default), redis, memory.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`

	// libsql: local file path or Turso URL + auth token.
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`

	// redis: host:port plus optional credentials, or a redis:// URL above.
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// HubSpotConfig holds the upstream API credential and endpoint.
type HubSpotConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CaptureConfig controls the embedded daily capture trigger. Schedule is a
// standard 5-field cron expression evaluated in the upstream reset timezone;
// the default fires five minutes before the counters reset. Disable it when
// an external scheduler drives /daily-capture instead.
type CaptureConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// RetentionConfig sets the retention horizon in business days.
type RetentionConfig struct {
	Days int `mapstructure:"days"`
}

// HistoryConfig sets the presentation window served by /data.
type HistoryConfig struct {
	WindowDays int `mapstructure:"window_days"`
}

// LoggingConfig contains logging configuration.
// Level is one of: trace, debug, info, warn, error.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Enabled controls whether metrics are exposed
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated metrics endpoint port (Prometheus format)
	// Metrics are also available at the main HTTP port via /metrics
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	// Enabled controls whether health endpoints are exposed
	Enabled bool `mapstructure:"enabled"`
}
