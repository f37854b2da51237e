package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("DecodesViperState", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		viper.Set("server.host", "0.0.0.0")
		viper.Set("server.port", 9000)
		viper.Set("server.read_timeout", "45s")
		viper.Set("store.driver", "memory")
		viper.Set("hubspot.base_url", "https://api.hubapi.com")
		viper.Set("hubspot.timeout", "15s")
		viper.Set("capture.enabled", true)
		viper.Set("capture.schedule", "55 8 * * *")
		viper.Set("retention.days", 90)
		viper.Set("history.window_days", 30)

		cfg, err := Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "memory", cfg.Store.Driver)
		assert.Equal(t, "https://api.hubapi.com", cfg.HubSpot.BaseURL)
		assert.Equal(t, 15*time.Second, cfg.HubSpot.Timeout)
		assert.True(t, cfg.Capture.Enabled)
		assert.Equal(t, "55 8 * * *", cfg.Capture.Schedule)
		assert.Equal(t, 90, cfg.Retention.Days)
		assert.Equal(t, 30, cfg.History.WindowDays)
	})

	t.Run("RejectsInvalidState", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		viper.Set("store.driver", "cassandra")

		_, err := Load(ctx)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080},
			Store:     StoreConfig{Driver: "libsql"},
			Retention: RetentionConfig{Days: 90},
			History:   HistoryConfig{WindowDays: 90},
		}
	}

	t.Run("ValidConfig", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("EmptyDriverIsAllowed", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Driver = ""
		require.NoError(t, cfg.Validate())
	})

	t.Run("UnsupportedDriver", func(t *testing.T) {
		cfg := valid()
		cfg.Store.Driver = "dynamodb"
		require.Error(t, cfg.Validate())
	})

	t.Run("NegativeRetention", func(t *testing.T) {
		cfg := valid()
		cfg.Retention.Days = -1
		require.Error(t, cfg.Validate())
	})

	t.Run("NegativeHistoryWindow", func(t *testing.T) {
		cfg := valid()
		cfg.History.WindowDays = -5
		require.Error(t, cfg.Validate())
	})

	t.Run("PortOutOfRange", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 70000
		require.Error(t, cfg.Validate())
	})
}

func TestDefaultStorePath(t *testing.T) {
	path := DefaultStorePath()
	require.NotEmpty(t, path)
	assert.True(t, strings.HasSuffix(path, ".db"), "store path should be a database file, got %s", path)
}
