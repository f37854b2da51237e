// Package config provides centralized configuration management for quotalens.
// Defaults and environment binding are installed by the command layer via
// viper; Load materializes the merged view into a typed Config.
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/quotalens/quotalens/internal/appid"
)

// Load decodes the current viper state into a Config and validates it.
// Safe to call repeatedly (e.g. after a SIGHUP reload).
func Load(ctx context.Context) (*Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	switch strings.TrimSpace(c.Store.Driver) {
	case "", "libsql", "redis", "memory":
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}

	if c.Retention.Days < 0 {
		return fmt.Errorf("retention.days must not be negative: %d", c.Retention.Days)
	}
	if c.History.WindowDays < 0 {
		return fmt.Errorf("history.window_days must not be negative: %d", c.History.WindowDays)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}

	return nil
}

// DefaultStorePath places the libsql database under the platform data
// directory for the app identity, falling back to the working directory.
func DefaultStorePath() string {
	configName, binaryName := appNamesForPaths()
	dataDir := gfconfig.GetAppDataDir(configName)
	if strings.TrimSpace(dataDir) == "" {
		return "./" + binaryName + ".db"
	}
	return filepath.Join(dataDir, binaryName+".db")
}

func appNamesForPaths() (configName string, binaryName string) {
	configName = "quotalens"
	binaryName = "quotalens"

	identity, err := appid.Get(context.Background())
	if err != nil || identity == nil {
		return configName, binaryName
	}

	if identity.ConfigName != "" {
		configName = identity.ConfigName
	}
	if identity.BinaryName != "" {
		binaryName = identity.BinaryName
	}
	return configName, binaryName
}
