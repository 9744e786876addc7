package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tasklyst", cfg.AppName)
	assert.Equal(t, "bolt", cfg.Storage.Backend)
	assert.Equal(t, "./data/tasklyst.db", cfg.Storage.BoltPath)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Session.SweepInterval)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SESSION_SWEEP_INTERVAL", "90")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 90*time.Second, cfg.Session.SweepInterval, "bare integers are seconds")
	assert.Equal(t, "debug", cfg.Logger.Level)
}
