package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ATLAS_AI_HOST", "ATLAS_AI_MODEL", "API_KEY", "ATLAS_AI_API_KEY",
		"ATLAS_AI_TEMPERATURE", "ATLAS_AI_TIMEOUT_SECONDS", "ATLAS_AI_REQUESTS_PER_SECOND",
		"ATLAS_SEARCH_STRATEGY", "ATLAS_SEARCH_MAX_SECTIONS",
		"ATLAS_STORE_DRIVER", "ATLAS_STORE_PATH",
		"ATLAS_SERVER_HOST", "PORT", "ATLAS_SERVER_PORT",
		"ATLAS_LOG_LEVEL", "ATLAS_CORPUS_DIR",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "https://api.perplexity.ai", cfg.AI.Host)
	assert.Equal(t, "sonar-pro", cfg.AI.Model)
	assert.Equal(t, 60, cfg.AI.TimeoutSeconds)
	assert.Equal(t, StrategyTwoStage, cfg.Search.Strategy)
	assert.Equal(t, 3, cfg.Search.MaxSections)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "atlas.toml", `
[ai]
model = "sonar"
timeout_seconds = 30

[search]
strategy = "scorer"

[store]
driver = "badger"
path = "/var/lib/atlas"

[logging]
level = "debug"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "sonar", cfg.AI.Model)
		assert.Equal(t, "https://api.perplexity.ai", cfg.AI.Host)
		assert.Equal(t, 30, cfg.AI.TimeoutSeconds)
		assert.Equal(t, StrategyScorer, cfg.Search.Strategy)
		assert.Equal(t, StoreBadger, cfg.Store.Driver)
		assert.Equal(t, "/var/lib/atlas", cfg.Store.Path)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("later file wins", func(t *testing.T) {
		clearEnv(t)
		base := writeFile(t, "base.toml", "[server]\nport = 9000\nhost = \"0.0.0.0\"\n")
		override := writeFile(t, "override.toml", "[server]\nport = 9100\n")
		cfg, err := Load(base, "", override)
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:9100", cfg.Address())
	})

	t.Run("env overrides file", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "atlas.toml", "[ai]\napi_key = \"from-file\"\n")
		t.Setenv("API_KEY", "from-env")
		t.Setenv("ATLAS_SERVER_PORT", "7000")
		t.Setenv("ATLAS_AI_REQUESTS_PER_SECOND", "2.5")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.AI.APIKey)
		assert.Equal(t, 7000, cfg.Server.Port)
		assert.Equal(t, 2.5, cfg.AI.RequestsPerSecond)
	})

	t.Run("prefixed key wins over API_KEY", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "plain")
		t.Setenv("ATLAS_AI_API_KEY", "prefixed")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.AI.APIKey)
	})

	t.Run("bad env number", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "eighty")
		_, err := Load()
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(writeFile(t, "bad.toml", "[ai\n"))
		assert.Error(t, err)
	})
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	// The loader only fills variables that are not set at all.
	require.NoError(t, os.Unsetenv("ATLAS_AI_MODEL"))
	path := writeFile(t, "test.env", "ATLAS_AI_MODEL=sonar-reasoning\nATLAS_LOG_LEVEL=warn\n")
	t.Setenv("ATLAS_LOG_LEVEL", "error")

	require.NoError(t, LoadEnv(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sonar-reasoning", cfg.AI.Model)
	assert.Equal(t, "error", cfg.Logging.Level)

	assert.Error(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown strategy", func(c *Config) { c.Search.Strategy = "vector" }},
		{"zero max sections", func(c *Config) { c.Search.MaxSections = 0 }},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }},
		{"badger without path", func(c *Config) { c.Store.Driver = StoreBadger; c.Store.Path = "" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"negative timeout", func(c *Config) { c.AI.TimeoutSeconds = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestCompletionConfig(t *testing.T) {
	cfg := Default()
	cfg.AI.APIKey = "secret"
	cfg.AI.RequestsPerSecond = 1

	aiCfg := cfg.CompletionConfig()
	assert.Equal(t, "secret", aiCfg.APIKey)
	assert.Equal(t, 60*time.Second, aiCfg.Timeout)
	assert.Equal(t, 1.0, aiCfg.RequestsPerSecond)
	assert.NoError(t, aiCfg.Validate())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
