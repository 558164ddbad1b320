package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_DSN", "DB_MAX_OPEN_CONNS", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE",
		"TEMPORAL_DISABLED", "SHUTDOWN_TIMEOUT_SECONDS", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.PostgresDSN)
	assert.Zero(t, cfg.DBMaxOpenConns)
	assert.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	assert.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	assert.False(t, cfg.TemporalDisabled)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "local", cfg.Environment)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DSN", " postgres://localhost/orders ")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("TEMPORAL_DISABLED", "TRUE")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres://localhost/orders", cfg.PostgresDSN)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	for key, value := range map[string]string{
		"DB_MAX_OPEN_CONNS":        "zero",
		"SHUTDOWN_TIMEOUT_SECONDS": "-1",
		"PORT":                     "http",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
