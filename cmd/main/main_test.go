package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// setupTestConfig writes a config whose data lives in a temp dir and points
// globalOptions at it.
func setupTestConfig(t *testing.T) (string, *ConfigManager) {
	dir := t.TempDir()
	cfg := &Config{Server: DefaultServerConfig()}
	cfg.Server.DataDir = filepath.Join(dir, "data")
	cfg.Server.DatabasePath = filepath.Join(dir, "data", "test.db")
	cfg.Server.LogLevel = "error"

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err = os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	prev := globalOptions.ConfigPath
	globalOptions.ConfigPath = path
	t.Cleanup(func() { globalOptions.ConfigPath = prev })

	cm, err := NewConfigManager(path)
	if err != nil {
		t.Fatalf("NewConfigManager() error = %v", err)
	}
	return dir, cm
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
