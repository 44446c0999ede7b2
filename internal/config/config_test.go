package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TOKEN", "")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN", "abc")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MIGRATIONS_PATH", "")
	t.Setenv("DEFAULT_LOCALE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/neocalc?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, 50, cfg.HistoryLimit)
}

func TestLoadRejectsBadDatabaseURL(t *testing.T) {
	t.Setenv("TOKEN", "abc")
	t.Setenv("DATABASE_URL", "not-a-url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TOKEN", "abc")
	t.Setenv("DATABASE_URL", "postgres://db.internal:5432/calc")
	t.Setenv("DEFAULT_LOCALE", "pt-BR")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://db.internal:5432/calc", cfg.DatabaseURL)
	assert.Equal(t, "pt-BR", cfg.DefaultLocale)
}
