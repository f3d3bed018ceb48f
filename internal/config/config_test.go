package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondchance/secondchance/internal/auth"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3060", cfg.Address)
	assert.Equal(t, EngineSQLite, cfg.DBEngine)
	assert.Equal(t, "secondchance.db", cfg.DBPath)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, auth.ErrNoSecret)
}

func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADDRESS", ":9999")
	t.Setenv("DB_ENGINE", EngineBolt)
	t.Setenv("DB_PATH", "/tmp/users.db")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Address)
	assert.Equal(t, EngineBolt, cfg.DBEngine)
	assert.Equal(t, "/tmp/users.db", cfg.DBPath)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestLoad_UnknownEngine(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_ENGINE", "postgres")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage engine")
}

func TestParseFlags(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	cfg.parseFlags([]string{"-a", ":8080", "-e", EngineBolt, "-d", "data.db", "-s", "flag-secret", "-t", "2h"})

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, EngineBolt, cfg.DBEngine)
	assert.Equal(t, "data.db", cfg.DBPath)
	assert.Equal(t, "flag-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestParseFlags_IgnoresForeignFlags(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	cfg.parseFlags([]string{"-version", "-a", ":8080"})

	assert.Equal(t, ":8080", cfg.Address)
}
