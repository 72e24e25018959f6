package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	interval, err := cfg.GetPollInterval()
	require.NoError(t, err)
	assert.Equal(t, DefaultPollInterval, interval)
	assert.Equal(t, "127.0.0.1:8321", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shark-ci.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
watch:
  workspace: /opt/shark
  marker: "[test] "
  poll_interval: 5s
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/shark", cfg.Watch.Workspace)
	assert.Equal(t, "[test] ", cfg.Watch.Marker)
	assert.Equal(t, "debug", cfg.Logging.Level)

	interval, err := cfg.GetPollInterval()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, interval)

	require.NoError(t, cfg.Validate())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SHARK_CI_WORKSPACE", "/srv/ci/shark")
	t.Setenv("SHARK_CI_MARKER", "[info] Executing")
	t.Setenv("SHARK_CI_POLL_INTERVAL", "PT3S")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/ci/shark", cfg.Watch.Workspace)
	assert.Equal(t, "[info] Executing", cfg.Watch.Marker)

	interval, err := cfg.GetPollInterval()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, interval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/shark-ci.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name: "complete",
			mutate: func(c *Config) {
				c.Watch.Workspace = "/opt/shark"
				c.Watch.Marker = "[test]"
			},
		},
		{
			name:    "missing workspace",
			mutate:  func(c *Config) { c.Watch.Marker = "[test]" },
			wantErr: true,
		},
		{
			name:    "missing marker",
			mutate:  func(c *Config) { c.Watch.Workspace = "/opt/shark" },
			wantErr: true,
		},
		{
			name: "bad interval",
			mutate: func(c *Config) {
				c.Watch.Workspace = "/opt/shark"
				c.Watch.Marker = "[test]"
				c.Watch.PollInterval = "lots"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
