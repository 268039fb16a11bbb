package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"valuelife/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "migrations", cfg.MigrationsPath)
	require.Equal(t, "en", cfg.DefaultLocale)
	require.Equal(t, "Root", cfg.RootName)
	require.Equal(t, int64(500), cfg.DirectBonus)
	require.Equal(t, int64(1000), cfg.PairBonus)
	require.Zero(t, cfg.MaxParticipants)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DIRECT_BONUS", "250")
	t.Setenv("PAIR_BONUS", "750")
	t.Setenv("MAX_PARTICIPANTS", "31")
	t.Setenv("ROOT_NAME", "Acme")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.HTTPAddr)
	require.Equal(t, int64(250), cfg.DirectBonus)
	require.Equal(t, int64(750), cfg.PairBonus)
	require.Equal(t, 31, cfg.MaxParticipants)
	require.Equal(t, "Acme", cfg.RootName)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DIRECT_BONUS", "lots")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsNegativeBonus(t *testing.T) {
	t.Setenv("PAIR_BONUS", "-5")
	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRejectsBadDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "not a url at all")
	_, err := config.Load()
	require.Error(t, err)
}
