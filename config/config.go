// Package config loads the application configuration.
//
// Values are resolved in order: built-in defaults, then each TOML file
// passed to Load, then environment variables. A .env file is read into the
// environment first when present, without overriding variables already set.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/Nikkoola22/ATLAS/ai"
)

// Strategy names.
const (
	StrategyTwoStage = "two-stage"
	StrategyScorer   = "scorer"
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// Config is the application configuration.
type Config struct {
	AI      AIConfig      `toml:"ai"`
	Search  SearchConfig  `toml:"search"`
	Store   StoreConfig   `toml:"store"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Corpus  CorpusConfig  `toml:"corpus"`
}

// AIConfig configures the completion service.
type AIConfig struct {
	Host              string  `toml:"host"`
	Model             string  `toml:"model"`
	APIKey            string  `toml:"api_key"`
	Temperature       float64 `toml:"temperature"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// SearchConfig selects and tunes the retrieval strategy.
type SearchConfig struct {
	Strategy    string `toml:"strategy"`
	MaxSections int    `toml:"max_sections"`
}

// StoreConfig selects where body documents are read from.
type StoreConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// CorpusConfig points at an on-disk corpus. An empty Dir selects the
// corpus embedded in the binary.
type CorpusConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		AI: AIConfig{
			Host:           aiDefaults.Host,
			Model:          aiDefaults.Model,
			Temperature:    aiDefaults.Temperature,
			TimeoutSeconds: int(aiDefaults.Timeout / time.Second),
		},
		Search: SearchConfig{
			Strategy:    StrategyTwoStage,
			MaxSections: 3,
		},
		Store: StoreConfig{
			Driver: StoreMemory,
			Path:   "atlas.db",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns the defaults overlaid with each file in order, then with
// environment variables. Empty paths are skipped.
func Load(paths ...string) (*Config, error) {
	cfg := Default()
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv reads files into the environment. With no files it reads ./.env
// if it exists. Variables already set are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}

	str("ATLAS_AI_HOST", &cfg.AI.Host)
	str("ATLAS_AI_MODEL", &cfg.AI.Model)
	// API_KEY is the name the hosted proxy has always used.
	str("API_KEY", &cfg.AI.APIKey)
	str("ATLAS_AI_API_KEY", &cfg.AI.APIKey)
	float("ATLAS_AI_TEMPERATURE", &cfg.AI.Temperature)
	integer("ATLAS_AI_TIMEOUT_SECONDS", &cfg.AI.TimeoutSeconds)
	float("ATLAS_AI_REQUESTS_PER_SECOND", &cfg.AI.RequestsPerSecond)

	str("ATLAS_SEARCH_STRATEGY", &cfg.Search.Strategy)
	integer("ATLAS_SEARCH_MAX_SECTIONS", &cfg.Search.MaxSections)

	str("ATLAS_STORE_DRIVER", &cfg.Store.Driver)
	str("ATLAS_STORE_PATH", &cfg.Store.Path)

	str("ATLAS_SERVER_HOST", &cfg.Server.Host)
	integer("PORT", &cfg.Server.Port)
	integer("ATLAS_SERVER_PORT", &cfg.Server.Port)

	str("ATLAS_LOG_LEVEL", &cfg.Logging.Level)
	str("ATLAS_CORPUS_DIR", &cfg.Corpus.Dir)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Validate checks everything except the API key, which only the
// completion-backed commands need.
func (c *Config) Validate() error {
	switch c.Search.Strategy {
	case StrategyTwoStage, StrategyScorer:
	default:
		return fmt.Errorf("%w: unknown search strategy %q", ErrInvalidConfig, c.Search.Strategy)
	}
	if c.Search.MaxSections <= 0 {
		return fmt.Errorf("%w: search max_sections must be positive", ErrInvalidConfig)
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StoreBadger:
		if c.Store.Path == "" {
			return fmt.Errorf("%w: store path is required for badger", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.AI.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: ai timeout_seconds cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// CompletionConfig returns the completion service configuration.
func (c *Config) CompletionConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.AI.Host),
		ai.WithModel(c.AI.Model),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithTemperature(c.AI.Temperature),
		ai.WithTimeout(time.Duration(c.AI.TimeoutSeconds)*time.Second),
		ai.WithRequestsPerSecond(c.AI.RequestsPerSecond),
	)
}

// Address returns host:port for the HTTP server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, name)
}
