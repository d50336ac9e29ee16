package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "procwise.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Model.Name)
	assert.Equal(t, 2000, cfg.Model.MaxOutputTokens)
	assert.InDelta(t, 0.9, cfg.Model.Temperature, 1e-9)
	assert.Equal(t, "memory", cfg.Store.Backend)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
model:
  name: my-model
  temperature: 0.2
  timeout: 30s
  fallback: true
store:
  backend: redis
  redis:
    address: localhost:6379
    ttl: 1h
server:
  address: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my-model", cfg.Model.Name)
	assert.InDelta(t, 0.2, cfg.Model.Temperature, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Model.Timeout.Std())
	assert.True(t, cfg.Model.Fallback)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL.Std())
	assert.Equal(t, ":9090", cfg.Server.Address)

	// Untouched defaults survive.
	assert.Equal(t, 2000, cfg.Model.MaxOutputTokens)
}

func TestLoad_RejectsBadTemperature(t *testing.T) {
	path := writeConfig(t, "model:\n  temperature: 1.5\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "temperature")
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: dynamodb\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "dynamodb")
}

func TestAPIKey_ResolvesEnv(t *testing.T) {
	cfg := Default()
	cfg.Model.APIKeyEnv = "PROCWISE_TEST_KEY"
	t.Setenv("PROCWISE_TEST_KEY", "secret")

	assert.Equal(t, "secret", cfg.APIKey())
}
