package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 6032, cfg.Database.Port)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, 40, cfg.PageSize)
	assert.Equal(t, 300, cfg.WindowSize)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  host: proxysql.internal
  port: 16032
  user: stats
poll_interval: 5s
excluded_users:
  - svc_health
thresholds:
  qps_high: 20000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "proxysql.internal", cfg.Database.Host)
	assert.Equal(t, 16032, cfg.Database.Port)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, []string{"svc_health"}, cfg.ExcludedUsers)
	assert.Equal(t, 20000.0, cfg.Thresholds.QPSHigh)
	assert.Equal(t, 40, cfg.PageSize, "untouched fields keep defaults")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no host or socket", func(c *Config) { c.Database.Host = ""; c.Database.Socket = "" }},
		{"poll interval too short", func(c *Config) { c.PollInterval = 500 * time.Millisecond }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"zero window size", func(c *Config) { c.WindowSize = 0 }},
		{"conn thresholds not increasing", func(c *Config) { c.Thresholds.ConnectionsMedium = 5 }},
		{"qps thresholds not increasing", func(c *Config) { c.Thresholds.QPSMedium = c.Thresholds.QPSHigh }},
		{"hit thresholds not increasing", func(c *Config) { c.Thresholds.HitsLow = c.Thresholds.HitsHigh }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateSocketOnlyIsFine(t *testing.T) {
	cfg := Default()
	cfg.Database.Host = ""
	cfg.Database.Socket = "/tmp/proxysql_admin.sock"
	assert.NoError(t, cfg.Validate())
}

func TestFindExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
