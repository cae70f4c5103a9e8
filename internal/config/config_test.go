package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/worldcities-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_PASSWORD", "")
	t.Setenv("APP_POSTGRES_DBNAME", "")
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	// secrets come from ENV
	path := writeTempConfig(t, `
app:
  name: worldcities-service
  version: 0.1.0
  env: test
  port: 18080

server:
  read_timeout: 5s
  cors_origins: ["http://localhost:4200", "https://cities.example"]

logger:
  level: info
  format: json
  time_format: rfc3339

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1
`)
	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DBNAME", "testdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, ":18080", cfg.App.Addr())
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, int32(5), cfg.Postgres.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout, "default applies")
	assert.Equal(t, []string{"http://localhost:4200", "https://cities.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestConfigLoad_EnvOverridesYAML(t *testing.T) {
	path := writeTempConfig(t, `
app:
  port: 8080
storage:
  driver: memory
`)
	clearSecrets(t)
	t.Setenv("APP_APP_PORT", "9090")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
}

func TestConfigLoad_MissingRequiredEnvFails(t *testing.T) {
	path := writeTempConfig(t, `
app:
  env: test
postgres:
  host: localhost
`)
	clearSecrets(t)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_POSTGRES_PASSWORD")
}

func TestConfigLoad_MemoryDriverNeedsNoSecrets(t *testing.T) {
	path := writeTempConfig(t, `
storage:
  driver: memory
`)
	clearSecrets(t)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
}

func TestConfigLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown driver", "storage:\n  driver: mongo\n"},
		{"port out of range", "storage:\n  driver: memory\napp:\n  port: 70000\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearSecrets(t)
			_, err := config.Load(writeTempConfig(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
