package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 5000, cfg.Server.NextHandDelayMs)
	require.Len(t, cfg.Rooms, 1)
	assert.Equal(t, "main", cfg.Rooms[0].Name)
}

func TestLoadConfigParsesFile(t *testing.T) {
	t.Parallel()
	content := `
server {
  address            = "0.0.0.0"
  port               = 9000
  log_level          = "debug"
  next_hand_delay_ms = 1000
}

room "low" {
  small_blind = 5
  big_blind   = 10
}

room "high" {
  max_players = 9
  small_blind = 100
  big_blind   = 200
}
`
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 1000, cfg.Server.NextHandDelayMs)

	require.Len(t, cfg.Rooms, 2)
	assert.Equal(t, "low", cfg.Rooms[0].Name)
	assert.Equal(t, 6, cfg.Rooms[0].MaxPlayers, "default max players filled in")
	assert.Equal(t, 5, cfg.Rooms[0].SmallBlind)
	assert.Equal(t, "high", cfg.Rooms[1].Name)
	assert.Equal(t, 9, cfg.Rooms[1].MaxPlayers)
	assert.Equal(t, 200, cfg.Rooms[1].BigBlind)
}

func TestLoadConfigPartialFileFillsDefaults(t *testing.T) {
	t.Parallel()
	content := `
server {
  port = 9999
}
`
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestLoadConfigRejectsInvalidHCL(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
