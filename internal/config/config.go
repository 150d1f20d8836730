package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/kanri/internal/snapshot"
	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the kanri CLI.
type Config struct {
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	UseCases bool   `yaml:"use_cases"`
}

// SnapshotConfig tunes the import/export engine.
type SnapshotConfig struct {
	// FanoutLimit caps concurrent backend calls within one fan-out.
	FanoutLimit int `yaml:"fanout_limit"`
}

// DefaultConfig returns a Config with the database under ~/.kanri.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DB:       DBConfig{Path: filepath.Join(home, ".kanri", "kanri.db")},
		Log:      LogConfig{Level: "warn"},
		Snapshot: SnapshotConfig{FanoutLimit: snapshot.DefaultFanoutLimit},
	}, nil
}

// Load reads configuration from an optional YAML file named by
// KANRI_CONFIG_PATH, then applies environment overrides.
func Load() (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	if path := os.Getenv("KANRI_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("KANRI_DB"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("KANRI_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("KANRI_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid KANRI_LOG_USE_CASES: %w", err)
		}
		cfg.Log.UseCases = b
	}
	if v := os.Getenv("KANRI_FANOUT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid KANRI_FANOUT_LIMIT: %w", err)
		}
		cfg.Snapshot.FanoutLimit = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("db path is required")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Snapshot.FanoutLimit < 1 {
		return fmt.Errorf("fanout limit must be at least 1, got %d", c.Snapshot.FanoutLimit)
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", s)
	}
}

// NewLogger builds a text logger writing to stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}
