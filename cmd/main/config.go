package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// ServerConfig holds the settings shared by the CLI and the HTTP API.
type ServerConfig struct {
	ApiAddr      string `json:"api_addr"`
	LogLevel     string `json:"log_level"`
	DataDir      string `json:"data_dir"`
	DatabasePath string `json:"database_path"`
	DefaultOrder int    `json:"default_order"`
	MaxOrder     int    `json:"max_order"`
	MaxBodyBytes int64  `json:"max_body_bytes"`
	HistoryLimit int    `json:"history_limit"`
}

// Config is the top-level configuration struct.
type Config struct {
	Server *ServerConfig `json:"server_config"`
}

// DefaultServerConfig creates a server configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ApiAddr:      "127.0.0.1:7278",
		LogLevel:     "info",
		DataDir:      "./data",
		DatabasePath: "./data/speakerid.db?_journal_mode=WAL&_busy_timeout=5000",
		DefaultOrder: 2,
		MaxOrder:     32,
		MaxBodyBytes: 32 << 20,
		HistoryLimit: 50,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Server: DefaultServerConfig(),
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Server == nil {
		config.Server = DefaultServerConfig()
	}

	return config, nil
}

// Validate reports configuration values the tool cannot run with.
func (c *Config) Validate() error {
	if c.Server == nil {
		return fmt.Errorf("missing server_config")
	}
	if c.Server.DefaultOrder < 0 {
		return fmt.Errorf("default_order must be non-negative, got %d", c.Server.DefaultOrder)
	}
	if c.Server.MaxOrder < 0 {
		return fmt.Errorf("max_order must be non-negative, got %d", c.Server.MaxOrder)
	}
	if c.Server.DefaultOrder > c.Server.MaxOrder {
		return fmt.Errorf("default_order %d exceeds max_order %d", c.Server.DefaultOrder, c.Server.MaxOrder)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}

// ConfigManager handles thread-safe access to the configuration.
type ConfigManager struct {
	config     *Config
	mu         sync.RWMutex
	configPath string
}

// NewConfigManager loads the config and initializes the manager.
func NewConfigManager(path string) (*ConfigManager, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &ConfigManager{
		config:     cfg,
		configPath: path,
	}, nil
}

// Get returns a copy of the current configuration.
func (cm *ConfigManager) Get() Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	server := *cm.config.Server
	return Config{Server: &server}
}

// Update validates the configuration, saves it to disk, and makes it current.
func (cm *ConfigManager) Update(newConfig Config) error {
	if err := newConfig.Validate(); err != nil {
		return err
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	data, err := json.MarshalIndent(newConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomic.WriteFile(cm.configPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	server := *newConfig.Server
	cm.config = &Config{Server: &server}
	return nil
}

// newLogger builds a text logger at the named level, falling back to info.
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
