package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.FCMServerKey)
	assert.True(t, cfg.SeedOnStartup)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://league:secret@db:5432/league")
	t.Setenv("FCM_SERVER_KEY", "server-key")
	t.Setenv("SEED_ON_STARTUP", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://league:secret@db:5432/league", cfg.DatabaseURL)
	assert.Equal(t, "server-key", cfg.FCMServerKey)
	assert.False(t, cfg.SeedOnStartup)
}

func TestLoad_RejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidSeedFlag(t *testing.T) {
	t.Setenv("SEED_ON_STARTUP", "maybe")

	_, err := Load()
	assert.Error(t, err)
}
