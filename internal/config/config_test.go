package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: info
catalog: blocks/
store:
  backend: redis
  redis:
    addr: cache:6379
    ttl: 1h
http:
  addr: ":9000"
`), 0644))

	t.Setenv("VIGNETTE_REDIS_DB", "3")
	t.Setenv("VIGNETTE_REDIS_TTL", "90m")
	t.Setenv("VIGNETTE_HTTP_ADDR", ":9100")
	t.Setenv("VIGNETTE_UNKNOWN", "ignored")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "blocks/", cfg.Catalog)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 3, cfg.Store.Redis.DB)
	assert.Equal(t, 90*time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, ":9100", cfg.HTTP.Addr)
	assert.Equal(t, ".vignette/scripts", cfg.Store.Path, "unset keys keep their defaults")
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("store: [oops"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("store:\n  backend: etcd\nlog_level: loud\n"), 0644))
	_, err = Load(unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etcd")
	assert.Contains(t, err.Error(), "loud")
}

func TestApplyEnv_BadValue(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv([]string{"VIGNETTE_REDIS_DB=many"})
	assert.Error(t, err)
}
