package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10, cfg.Rate.Limit)
	assert.Equal(t, time.Minute, cfg.Rate.Window)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: prod
server:
  addr: ":9090"
jwt:
  issuer: my-blog
  ttl: 2h
rate:
  enabled: true
  limit: 5
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "my-blog", cfg.JWT.Issuer)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.True(t, cfg.Rate.Enabled)
	assert.Equal(t, 5, cfg.Rate.Limit)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_TTL", "30m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "postgres://env", cfg.Storage.DSN)
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "s"
	cfg.Storage.Driver = "postgres"
	cfg.Storage.DSN = ""
	assert.Error(t, cfg.Validate())

	cfg.Storage.Driver = "memory"
	assert.NoError(t, cfg.Validate())
}
