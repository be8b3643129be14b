package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "unit-test-secret-key-1234567890-abcdef"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1, cfg.JWT.ExpirationHrs)
	assert.Equal(t, 60, cfg.Cache.ResultsTTLSec)
	assert.Equal(t, 30, cfg.Cache.SweepIntervalSec)
	assert.Equal(t, 60, cfg.RateLimit.WindowSec)
	assert.Equal(t, int64(5), cfg.RateLimit.MaxSubmissions)
	assert.Equal(t, 5, cfg.Worker.PopTimeoutSec)
	assert.Equal(t, 1000, cfg.Worker.RetryBackoffMs)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  read_timeout: 15
jwt:
  secret: "unit-test-secret-key-1234567890-abcdef"
  expiration_hrs: 24
cache:
  results_ttl_sec: 120
ratelimit:
  window_sec: 30
  max_submissions: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, 24, cfg.JWT.ExpirationHrs)
	assert.Equal(t, 120*time.Second, cfg.Cache.ResultsTTL())
	assert.Equal(t, 30, cfg.RateLimit.WindowSec)
	assert.Equal(t, int64(3), cfg.RateLimit.MaxSubmissions)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: "short"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT.Secret")
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "8080"
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
