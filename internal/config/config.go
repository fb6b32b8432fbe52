// Package config loads and validates application configuration from an
// optional YAML file and environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/discgolf-api/internal/storage"
)

// Config holds all configuration values for the API server.
// Values are populated by Load: defaults first, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `yaml:"port"`

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:4200"] (Angular dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `yaml:"cors_origins"`

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// TracingEnabled turns on OpenTelemetry spans exported to stdout.
	TracingEnabled bool `yaml:"tracing_enabled"`

	Storage Storage `yaml:"storage"`
}

// Storage selects and configures the collection store.
type Storage struct {
	// Driver is one of "file", "postgres" or "redis". Defaults to "file".
	Driver string `yaml:"driver"`

	// DataDir holds one <collection>.json file per collection for the file
	// driver. Defaults to "data".
	DataDir string `yaml:"data_dir"`

	// DatabaseURL is the Postgres connection string. Required for "postgres".
	DatabaseURL string `yaml:"database_url"`

	// RedisAddr is host:port of the Redis server. Required for "redis".
	RedisAddr string `yaml:"redis_addr"`

	// RedisPrefix is prepended to every Redis key. Defaults to "discgolf:".
	RedisPrefix string `yaml:"redis_prefix"`
}

// defaults returns the configuration used when nothing is set.
func defaults() Config {
	return Config{
		Port:         "8080",
		LogLevel:     "info",
		CORSOrigins:  []string{"http://localhost:4200"},
		MaxBodyBytes: 1 << 20,
		Storage: Storage{
			Driver:      storage.DriverFile,
			DataDir:     "data",
			RedisPrefix: "discgolf:",
		},
	}
}

// Load builds the Config and validates it.
// Returns an error naming every problem found: an unreadable file, malformed
// numbers, an unknown driver or level, or missing driver settings.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	var problems []string

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			problems = append(problems, "MAX_BODY_BYTES must be a positive integer")
		} else {
			cfg.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, "TRACING_ENABLED must be a boolean")
		} else {
			cfg.TracingEnabled = b
		}
	}

	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.DataDir = getEnv("DATA_DIR", cfg.Storage.DataDir)
	cfg.Storage.DatabaseURL = getEnv("DATABASE_URL", cfg.Storage.DatabaseURL)
	cfg.Storage.RedisAddr = getEnv("REDIS_ADDR", cfg.Storage.RedisAddr)
	cfg.Storage.RedisPrefix = getEnv("REDIS_PREFIX", cfg.Storage.RedisPrefix)

	if _, err := cfg.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
	}

	switch cfg.Storage.Driver {
	case storage.DriverFile:
		if cfg.Storage.DataDir == "" {
			problems = append(problems, "DATA_DIR is required for the file driver")
		}
	case storage.DriverPostgres:
		if cfg.Storage.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres driver")
		}
	case storage.DriverRedis:
		if cfg.Storage.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required for the redis driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver))
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// SlogLevel converts LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
