package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "ENV", "JWT_SECRET", "TOKEN_TTL", "SEARCH_PAGE_SIZE", "CHAT_BURST", "CHAT_RATE_PER_SEC", "DB_MAX_CONNS", "DB_MIN_CONNS")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.SearchPageSize)
	assert.Equal(t, 5, cfg.ChatBurst)
	assert.Equal(t, 25, cfg.DBMaxConns)
	assert.NotEmpty(t, cfg.JWTSecret, "development falls back to a local secret")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CHAT_RATE_PER_SEC", "0.5")
	t.Setenv("SEARCH_PAGE_SIZE", "25")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0.5, cfg.ChatRatePerSec)
	assert.Equal(t, 25, cfg.SearchPageSize)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_BadNumber(t *testing.T) {
	t.Setenv("CHAT_BURST", "lots")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "CHAT_BURST")
}

func TestLoadConfig_RejectsZeroPool(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "0")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DB_MAX_CONNS")
}
