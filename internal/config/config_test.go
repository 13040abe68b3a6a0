package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheets/internal/config"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) writeFile(content string) string {
	path := filepath.Join(s.dir, "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load("")
	s.Require().NoError(err)
	s.Equal(config.Default(), cfg)
	s.Equal(slog.LevelInfo, cfg.Log.SlogLevel())
}

func (s *ConfigTestSuite) TestFileOverridesDefaults() {
	path := s.writeFile(`
server:
  port: 6000
storage:
  backend: sqlite
  sqlite_path: /var/lib/sheets.db
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(6000, cfg.Server.Port)
	s.Equal(config.BackendSQLite, cfg.Storage.Backend)
	s.Equal("/var/lib/sheets.db", cfg.Storage.SQLitePath)
	s.Equal("data", cfg.Storage.DataDir)
	s.Equal(slog.LevelDebug, cfg.Log.SlogLevel())
	s.Equal(config.FormatJSON, cfg.Log.Format)
}

func (s *ConfigTestSuite) TestEnvironmentOverridesFile() {
	path := s.writeFile("storage:\n  backend: sqlite\n")
	s.T().Setenv("RPG_SHEETS_STORAGE_BACKEND", "redis")
	s.T().Setenv("RPG_SHEETS_REDIS_ADDR", "cache:6379")
	s.T().Setenv("RPG_SHEETS_PORT", "7000")

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(config.BackendRedis, cfg.Storage.Backend)
	s.Equal("cache:6379", cfg.Storage.RedisAddr)
	s.Equal(7000, cfg.Server.Port)
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := config.Load(filepath.Join(s.dir, "missing.yaml"))
	s.Error(err)
}

func (s *ConfigTestSuite) TestMalformedFile() {
	path := s.writeFile("server: [")

	_, err := config.Load(path)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestValidate() {
	testCases := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{
			name:   "port out of range",
			mutate: func(c *config.Config) { c.Server.Port = 70000 },
			field:  "server.port",
		},
		{
			name:   "unknown backend",
			mutate: func(c *config.Config) { c.Storage.Backend = "postgres" },
			field:  "storage.backend",
		},
		{
			name: "redis without address",
			mutate: func(c *config.Config) {
				c.Storage.Backend = config.BackendRedis
				c.Storage.RedisAddr = ""
			},
			field: "storage.redis_addr",
		},
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.Log.Level = "loud" },
			field:  "log.level",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.Log.Format = "xml" },
			field:  "log.format",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			cfg := config.Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))

			fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
			s.Require().True(ok)
			s.Contains(fields, tc.field)
		})
	}
}
