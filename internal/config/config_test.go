package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `api:
  environment: "development"
  base_url: "http://localhost"
  port: "8080"
  jwt_signing_key: "local-dev-key"
  allowed_cors_domains:
    - "http://localhost:5173"
gin:
  mode: "debug"
postgres:
  host: "localhost"
  port: "5432"
  user: "postgres"
  password: "postgres"
  db_name: "openmat"
  ssl_mode: "disable"
redis:
  addr: ""
  password: ""
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "development", conf.API.Environment)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "debug", conf.Gin.Mode)
	assert.Equal(t, "openmat", conf.Postgres.DBName)
	assert.Empty(t, conf.Redis.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("POSTGRES_PASSWORD", "from-env")

	conf, err := Load(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "from-env", conf.Postgres.Password)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
