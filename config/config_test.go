package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "agentworld.checkpoint.json", cfg.CheckpointPath)
	assert.Equal(t, "default", cfg.Model)
	assert.Equal(t, 100, cfg.MaxTicks)
	assert.Equal(t, 10, cfg.MaxSnapshots)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("AGENTWORLD_CHECKPOINT_PATH", "/tmp/cp.json")
	t.Setenv("AGENTWORLD_MAX_TICKS", "-1")
	t.Setenv("AGENTWORLD_MAX_SNAPSHOTS", "3")
	t.Setenv("AGENTWORLD_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cp.json", cfg.CheckpointPath)
	assert.Equal(t, -1, cfg.MaxTicks)
	assert.Equal(t, 3, cfg.MaxSnapshots)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_InvalidInteger(t *testing.T) {
	t.Setenv("AGENTWORLD_MAX_TICKS", "lots")

	_, err := FromEnv()
	assert.Error(t, err)
}
