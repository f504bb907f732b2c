// Package config loads EDGE client configuration and sets up logging.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the edge CLI.
type Config struct {
	// Remote API
	APIURL         string
	RequestTimeout time.Duration
	// Operations that trigger server-side AI work (onboarding, chat,
	// suggestion generation, uploads) get a longer budget.
	AITimeout time.Duration

	// Local state
	DataDir string

	// Identity
	AccessToken string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig is the optional config.yaml shape. Env vars take precedence
// over anything set here.
type fileConfig struct {
	APIURL         string `yaml:"api_url"`
	RequestTimeout string `yaml:"request_timeout"`
	AITimeout      string `yaml:"ai_timeout"`
	LogFile        string `yaml:"log_file"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads configuration from config.yaml in the data dir (if present)
// and environment variables, env winning. A .env file in the working
// directory is loaded first.
func Load() (Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	dataDir := os.Getenv("EDGE_DATA_DIR")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		dataDir = filepath.Join(base, "edge")
	}

	cfg := Config{
		APIURL:         "http://localhost:8000",
		RequestTimeout: 15 * time.Second,
		AITimeout:      90 * time.Second,
		DataDir:        dataDir,
		LogFile:        filepath.Join(dataDir, "edge.log"),
		LogLevel:       slog.LevelInfo,
	}

	if err := applyFile(&cfg, filepath.Join(dataDir, "config.yaml")); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.APIURL != "" {
		cfg.APIURL = fc.APIURL
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = parseLogLevel(fc.LogLevel)
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if fc.AITimeout != "" {
		d, err := time.ParseDuration(fc.AITimeout)
		if err != nil {
			return fmt.Errorf("parse ai_timeout: %w", err)
		}
		cfg.AITimeout = d
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("EDGE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("EDGE_ACCESS_TOKEN"); v != "" {
		cfg.AccessToken = v
	}
	if v := os.Getenv("EDGE_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("EDGE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv("EDGE_CLIENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("EDGE_AI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AITimeout = d
		}
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
