package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), cfg.Server)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk Config
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, DefaultServerConfig(), onDisk.Server)
}

func TestLoadConfigKeepsDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{"server_config": {"default_order": 4}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Server.DefaultOrder)
	assert.Equal(t, DefaultServerConfig().ApiAddr, cfg.Server.ApiAddr)
}

func TestLoadConfigRejectsBadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", `{"server_config": `)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Server: DefaultServerConfig()}
	require.NoError(t, cfg.Validate())

	cfg.Server.DefaultOrder = -1
	assert.Error(t, cfg.Validate())

	cfg = Config{Server: DefaultServerConfig()}
	cfg.Server.MaxBodyBytes = 0
	assert.Error(t, cfg.Validate())

	cfg = Config{Server: DefaultServerConfig()}
	cfg.Server.MaxOrder = -1
	assert.Error(t, cfg.Validate())

	cfg = Config{Server: DefaultServerConfig()}
	cfg.Server.DefaultOrder = cfg.Server.MaxOrder + 1
	assert.Error(t, cfg.Validate())

	assert.Error(t, (&Config{}).Validate())
}

func TestConfigManagerUpdate(t *testing.T) {
	_, cm := setupTestConfig(t)

	cfg := cm.Get()
	cfg.Server.DefaultOrder = 7
	// Get hands out copies.
	assert.NotEqual(t, 7, cm.Get().Server.DefaultOrder)

	require.NoError(t, cm.Update(cfg))
	assert.Equal(t, 7, cm.Get().Server.DefaultOrder)

	reloaded, err := LoadConfig(globalOptions.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Server.DefaultOrder)

	bad := cm.Get()
	bad.Server.MaxBodyBytes = -1
	assert.Error(t, cm.Update(bad))
	assert.Equal(t, int64(32<<20), cm.Get().Server.MaxBodyBytes)
}
