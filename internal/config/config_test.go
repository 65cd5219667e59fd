package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain path", input: "/var/lib/finzap.db", want: "/var/lib/finzap.db"},
		{name: "tilde", input: "~/data.db", want: filepath.Join(home, "data.db")},
		{name: "bare tilde", input: "~", want: home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestExpandPathEnvVar(t *testing.T) {
	t.Setenv("FINZAP_TEST_DIR", "/srv/finzap")
	assert.Equal(t, "/srv/finzap/data.db", ExpandPath("$FINZAP_TEST_DIR/data.db"))
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.NotEmpty(t, cfg.DatabasePath)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("server.addr", ":9999")
	viper.Set("cache.ttl", "30s")
	viper.Set("evolution.url", "http://evolution:8080")
	viper.Set("evolution.api_key", "secret")
	viper.Set("evolution.instance_id", "finzap")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddr)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.NoError(t, cfg.ValidateEvolution())
}

func TestValidateEvolution(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateEvolution())

	cfg.Evolution.URL = "http://evolution:8080"
	assert.Error(t, cfg.ValidateEvolution())

	cfg.Evolution.APIKey = "secret"
	assert.Error(t, cfg.ValidateEvolution())

	cfg.Evolution.InstanceID = "finzap"
	assert.NoError(t, cfg.ValidateEvolution())
}
