package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/finzap/finzap/internal/common"
)

// Evolution holds the Evolution API connection settings.
type Evolution struct {
	URL        string
	APIKey     string
	InstanceID string
}

// Config is the resolved application configuration.
type Config struct {
	ServerAddr   string
	DatabasePath string
	Evolution    Evolution
	CacheTTL     time.Duration
	ChartsDir    string
	LogLevel     string
	LogFormat    string
}

// Load resolves the configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or FINZAP_ env vars)
// 2. Default values
func Load() (*Config, error) {
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("database.path", "$HOME/.local/share/finzap/finzap.db")
	viper.SetDefault("cache.ttl", "5m")
	viper.SetDefault("charts.dir", "")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	cfg := &Config{
		ServerAddr:   viper.GetString("server.addr"),
		DatabasePath: ExpandPath(viper.GetString("database.path")),
		Evolution: Evolution{
			URL:        viper.GetString("evolution.url"),
			APIKey:     viper.GetString("evolution.api_key"),
			InstanceID: viper.GetString("evolution.instance_id"),
		},
		CacheTTL:  viper.GetDuration("cache.ttl"),
		ChartsDir: ExpandPath(viper.GetString("charts.dir")),
		LogLevel:  viper.GetString("logging.level"),
		LogFormat: viper.GetString("logging.format"),
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("%w: cache.ttl must be positive", common.ErrInvalidConfig)
	}

	return cfg, nil
}

// ValidateEvolution checks that the transport settings are complete. It is
// only called by commands that actually send messages, so migrations and
// seeding work without an Evolution API instance configured.
func (c *Config) ValidateEvolution() error {
	if c.Evolution.URL == "" {
		return fmt.Errorf("%w: evolution.url", common.ErrMissingConfig)
	}
	if c.Evolution.APIKey == "" {
		return fmt.Errorf("%w: evolution.api_key", common.ErrMissingConfig)
	}
	if c.Evolution.InstanceID == "" {
		return fmt.Errorf("%w: evolution.instance_id", common.ErrMissingConfig)
	}
	return nil
}
