package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Store backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// HTML to Markdown converters
const (
	ConverterRules = "rules"
	ConverterTree  = "tree"
)

// Config represents the scribe configuration
type Config struct {
	StoreBackend   string        `json:"store_backend"`
	StorePath      string        `json:"store_path"`
	RedisAddr      string        `json:"redis_addr,omitempty"`
	RedisKey       string        `json:"redis_key,omitempty"`
	LogFile        string        `json:"log_file"`
	LogLevel       string        `json:"log_level"`
	ExportDir      string        `json:"export_dir"`
	Converter      string        `json:"converter"`
	SanitizeHTML   bool          `json:"sanitize_html"`
	RenderCacheTTL time.Duration `json:"-"` // Custom JSON handling below
	WordWrap       int           `json:"word_wrap"`
}

// rawConfig mirrors Config on disk, with durations as strings
type rawConfig struct {
	StoreBackend   string `json:"store_backend"`
	StorePath      string `json:"store_path"`
	RedisAddr      string `json:"redis_addr,omitempty"`
	RedisKey       string `json:"redis_key,omitempty"`
	LogFile        string `json:"log_file"`
	LogLevel       string `json:"log_level"`
	ExportDir      string `json:"export_dir"`
	Converter      string `json:"converter"`
	SanitizeHTML   bool   `json:"sanitize_html"`
	RenderCacheTTL string `json:"render_cache_ttl"`
	WordWrap       int    `json:"word_wrap"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		StoreBackend:   BackendFile,
		StorePath:      DataPath("document.json"),
		RedisKey:       "scribe:document",
		LogFile:        DataPath("scribe.log"),
		LogLevel:       "info",
		ExportDir:      filepath.Join(home, "Documents"),
		Converter:      ConverterRules,
		RenderCacheTTL: 5 * time.Minute,
		WordWrap:       80,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "scribe", "config.json")
	}
	return filepath.Join(home, ".config", "scribe", "config.json")
}

// DataPath returns a path inside the platform-specific XDG data directory
var DataPath = func(name string) string {
	return filepath.Join(xdg.DataHome, "scribe", name)
}

// Load reads configuration from the config directory
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return cfg, cfg.ExpandPaths()
		}
		return nil, err
	}

	defaults := DefaultConfig()
	raw := rawConfig{
		StoreBackend:   defaults.StoreBackend,
		StorePath:      defaults.StorePath,
		RedisKey:       defaults.RedisKey,
		LogFile:        defaults.LogFile,
		LogLevel:       defaults.LogLevel,
		ExportDir:      defaults.ExportDir,
		Converter:      defaults.Converter,
		RenderCacheTTL: defaults.RenderCacheTTL.String(),
		WordWrap:       defaults.WordWrap,
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ttl := time.Duration(0)
	if raw.RenderCacheTTL != "" {
		ttl, err = time.ParseDuration(raw.RenderCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid render_cache_ttl format '%s': %w", raw.RenderCacheTTL, err)
		}
	}

	cfg := &Config{
		StoreBackend:   raw.StoreBackend,
		StorePath:      raw.StorePath,
		RedisAddr:      raw.RedisAddr,
		RedisKey:       raw.RedisKey,
		LogFile:        raw.LogFile,
		LogLevel:       raw.LogLevel,
		ExportDir:      raw.ExportDir,
		Converter:      raw.Converter,
		SanitizeHTML:   raw.SanitizeHTML,
		RenderCacheTTL: ttl,
		WordWrap:       raw.WordWrap,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		StoreBackend:   c.StoreBackend,
		StorePath:      c.StorePath,
		RedisAddr:      c.RedisAddr,
		RedisKey:       c.RedisKey,
		LogFile:        c.LogFile,
		LogLevel:       c.LogLevel,
		ExportDir:      c.ExportDir,
		Converter:      c.Converter,
		SanitizeHTML:   c.SanitizeHTML,
		RenderCacheTTL: c.RenderCacheTTL.String(),
		WordWrap:       c.WordWrap,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("store_path cannot be empty for the %s backend", c.StoreBackend)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr cannot be empty for the redis backend")
		}
		if c.RedisKey == "" {
			return fmt.Errorf("redis_key cannot be empty for the redis backend")
		}
	default:
		return fmt.Errorf("invalid store_backend '%s': must be one of: file, sqlite, redis", c.StoreBackend)
	}

	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}

	if c.Converter != ConverterRules && c.Converter != ConverterTree {
		return fmt.Errorf("invalid converter '%s': must be one of: rules, tree", c.Converter)
	}

	if c.RenderCacheTTL < 0 {
		return fmt.Errorf("render_cache_ttl cannot be negative")
	}
	if c.WordWrap < 0 {
		return fmt.Errorf("word_wrap cannot be negative")
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.StorePath, err = expandPath(c.StorePath)
	if err != nil {
		return fmt.Errorf("failed to expand store_path: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	c.ExportDir, err = expandPath(c.ExportDir)
	if err != nil {
		return fmt.Errorf("failed to expand export_dir: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
