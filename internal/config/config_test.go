package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "session-secret-for-tests")
	t.Setenv("AUTH_TOKEN_SECRET", "token-secret-for-tests")
}

func TestFromEnv(t *testing.T) {
	t.Run("memory provider needs no database settings", func(t *testing.T) {
		setRequired(t)
		t.Setenv("AUTH_PROVIDER", AuthProviderMemory)

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.GetAppAddr())
		assert.Equal(t, "Vintechs", cfg.GetAppName())
		assert.Equal(t, 24*time.Hour, cfg.GetAuthTokenTTL())
		assert.Equal(t, "account", cfg.GetDBAccess())
		assert.Equal(t, "log", cfg.GetEmailProvider())
	})

	t.Run("surreal provider requires connection settings", func(t *testing.T) {
		setRequired(t)
		t.Setenv("AUTH_PROVIDER", AuthProviderSurreal)
		t.Setenv("SURREAL_URL", "")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SURREAL_URL")
	})

	t.Run("surreal provider with connection settings", func(t *testing.T) {
		setRequired(t)
		t.Setenv("AUTH_PROVIDER", AuthProviderSurreal)
		t.Setenv("SURREAL_URL", "ws://localhost:8000")
		t.Setenv("SURREAL_NS", "vintechs")
		t.Setenv("SURREAL_DB", "portal")
		t.Setenv("DB_QUERY_TIMEOUT", "2s")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "vintechs", cfg.GetDBNs())
		assert.Equal(t, 2*time.Second, cfg.GetDBQueryTimeout())
	})

	t.Run("missing session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		t.Setenv("AUTH_TOKEN_SECRET", "x")
		t.Setenv("AUTH_PROVIDER", AuthProviderMemory)

		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		setRequired(t)
		t.Setenv("AUTH_PROVIDER", "ldap")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ldap")
	})
}
