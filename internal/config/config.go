// Package config loads server configuration from defaults, an optional YAML
// file and RPG_SHEETS_* environment variables, in that order.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-sheets/internal/errors"
)

// Storage backends
const (
	BackendFilesystem = "filesystem"
	BackendRedis      = "redis"
	BackendSQLite     = "sqlite"
)

// Log formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the server configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig holds the gRPC listener settings
type ServerConfig struct {
	Port int `yaml:"port" env:"RPG_SHEETS_PORT"`
}

// StorageConfig selects and configures the record store backend
type StorageConfig struct {
	Backend    string `yaml:"backend" env:"RPG_SHEETS_STORAGE_BACKEND"`
	DataDir    string `yaml:"data_dir" env:"RPG_SHEETS_DATA_DIR"`
	RedisAddr  string `yaml:"redis_addr" env:"RPG_SHEETS_REDIS_ADDR"`
	SQLitePath string `yaml:"sqlite_path" env:"RPG_SHEETS_SQLITE_PATH"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	Level  string `yaml:"level" env:"RPG_SHEETS_LOG_LEVEL"`
	Format string `yaml:"format" env:"RPG_SHEETS_LOG_FORMAT"`
}

// TelemetryConfig controls trace export; an empty endpoint disables it
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"RPG_SHEETS_OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"RPG_SHEETS_SERVICE_NAME"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 50051},
		Storage: StorageConfig{
			Backend:    BackendFilesystem,
			DataDir:    "data",
			RedisAddr:  "localhost:6379",
			SQLitePath: "data/sheets.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
		Telemetry: TelemetryConfig{ServiceName: "rpg-sheets"},
	}
}

// Load builds a Config from defaults, the YAML file at path when path is
// non-empty, and environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config file")
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for unusable values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		vb.Fieldf("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}

	errors.ValidateEnum("storage.backend", c.Storage.Backend,
		[]string{BackendFilesystem, BackendRedis, BackendSQLite}, vb)
	switch c.Storage.Backend {
	case BackendFilesystem:
		errors.ValidateRequired("storage.data_dir", c.Storage.DataDir, vb)
	case BackendRedis:
		errors.ValidateRequired("storage.redis_addr", c.Storage.RedisAddr, vb)
	case BackendSQLite:
		errors.ValidateRequired("storage.sqlite_path", c.Storage.SQLitePath, vb)
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		vb.Field("log.level", "must be one of: debug, info, warn, error")
	}
	errors.ValidateEnum("log.format", c.Log.Format, []string{FormatText, FormatJSON}, vb)

	return vb.Build()
}

// SlogLevel returns the configured level, info when unset
func (c LogConfig) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
