package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feint-lang/feint/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 0, cfg.MaxCallDepth)
	require.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FEINT_MAX_CALL_DEPTH", "16")
	t.Setenv("FEINT_DEBUG", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 16, cfg.MaxCallDepth)
	require.True(t, cfg.Debug)
}
