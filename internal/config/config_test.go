package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overrideConfigPath(t *testing.T, path string) {
	t.Helper()
	original := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = original
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.NotEmpty(t, cfg.StorePath)
	assert.NotEmpty(t, cfg.LogFile)
	assert.Equal(t, ConverterRules, cfg.Converter)
	assert.Equal(t, 5*time.Minute, cfg.RenderCacheTTL)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StoreBackend: BackendFile,
			StorePath:    "/tmp/document.json",
			LogFile:      "/tmp/scribe.log",
			LogLevel:     "info",
			Converter:    ConverterRules,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.StoreBackend = "localstorage" },
			wantErr: true,
		},
		{
			name:    "file backend without path",
			mutate:  func(c *Config) { c.StorePath = "" },
			wantErr: true,
		},
		{
			name: "redis backend without address",
			mutate: func(c *Config) {
				c.StoreBackend = BackendRedis
				c.RedisKey = "doc"
			},
			wantErr: true,
		},
		{
			name: "redis backend with address",
			mutate: func(c *Config) {
				c.StoreBackend = BackendRedis
				c.RedisAddr = "localhost:6379"
				c.RedisKey = "doc"
			},
			wantErr: false,
		},
		{
			name:    "empty log file",
			mutate:  func(c *Config) { c.LogFile = "" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "tree converter",
			mutate:  func(c *Config) { c.Converter = ConverterTree },
			wantErr: false,
		},
		{
			name:    "unknown converter",
			mutate:  func(c *Config) { c.Converter = "regex" },
			wantErr: true,
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *Config) { c.RenderCacheTTL = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	overrideConfigPath(t, filepath.Join(tmpDir, "config.json"))

	testCfg := &Config{
		StoreBackend:   BackendSQLite,
		StorePath:      filepath.Join(tmpDir, "document.db"),
		LogFile:        filepath.Join(tmpDir, "scribe.log"),
		LogLevel:       "debug",
		ExportDir:      tmpDir,
		Converter:      ConverterTree,
		SanitizeHTML:   true,
		RenderCacheTTL: 45 * time.Second,
		WordWrap:       100,
	}
	require.NoError(t, testCfg.Save())

	_, err := os.Stat(ConfigPath())
	require.NoError(t, err, "config file was not created")

	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testCfg.StoreBackend, loaded.StoreBackend)
	assert.Equal(t, testCfg.StorePath, loaded.StorePath)
	assert.Equal(t, testCfg.Converter, loaded.Converter)
	assert.True(t, loaded.SanitizeHTML)
	assert.Equal(t, 45*time.Second, loaded.RenderCacheTTL)
	assert.Equal(t, 100, loaded.WordWrap)
}

func TestLoadNonExistentConfig(t *testing.T) {
	overrideConfigPath(t, filepath.Join(t.TempDir(), "nonexistent.json"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, 5*time.Minute, cfg.RenderCacheTTL)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	overrideConfigPath(t, path)
	require.NoError(t, os.WriteFile(path, []byte(`{"converter": "tree"}`), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ConverterTree, cfg.Converter)
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	overrideConfigPath(t, path)
	require.NoError(t, os.WriteFile(path, []byte(`{"render_cache_ttl": "soon"}`), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tilde expansion", input: "~/test", want: filepath.Join(homeDir, "test")},
		{name: "tilde only", input: "~", want: homeDir},
		{name: "absolute path", input: "/tmp/test", want: "/tmp/test"},
		{name: "empty path", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}
