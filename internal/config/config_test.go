package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tracker")
	t.Setenv("JWT_SECRET", validSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 60*time.Second, cfg.IdentityCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.WSSendTimeout)
	assert.Equal(t, int64(10000), cfg.WSMaxConnections)
	assert.Equal(t, 20, cfg.WSMaxPerIP)
	assert.Equal(t, 10, cfg.LoginMaxAttempts)
	assert.Equal(t, time.Minute, cfg.LoginWindow)
	assert.Equal(t, 20, cfg.HTTPRateLimit)
	assert.Equal(t, 40, cfg.HTTPRateBurst)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", validSecret)

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/tracker")
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("IDENTITY_CACHE_TTL", "90s")
	t.Setenv("WS_MAX_CONNECTIONS", "500")
	t.Setenv("WS_SEND_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.IdentityCacheTTL)
	assert.Equal(t, int64(500), cfg.WSMaxConnections)
	assert.Equal(t, 250*time.Millisecond, cfg.WSSendTimeout)
}

func TestLoad_BadDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("IDENTITY_CACHE_TTL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "IDENTITY_CACHE_TTL")
}

func TestLoad_BadInt(t *testing.T) {
	setRequired(t)
	t.Setenv("WS_MAX_PER_IP", "lots")

	_, err := Load()
	assert.ErrorContains(t, err, "WS_MAX_PER_IP")
}
