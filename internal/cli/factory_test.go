package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/vignette/internal/config"
	"github.com/aretw0/vignette/internal/logging"
	"github.com/aretw0/vignette/internal/testutils"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironment_Defaults(t *testing.T) {
	env, err := NewEnvironment(context.Background(), config.Default(), logging.NewNop())
	require.NoError(t, err)
	defer env.Close()

	_, ok := env.Director.Catalog().Lookup("cat")
	assert.True(t, ok)
	assert.NotEmpty(t, env.Director.Scenery().Props("park"))
}

func TestNewEnvironment_FileStoreAndFiles(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte("blocks:\n  - id: lamp\n    category: prop\n"), 0644))
	sceneryPath := filepath.Join(dir, "scenery.yaml")
	require.NoError(t, os.WriteFile(sceneryPath, []byte("scenes:\n  study:\n    - {x: 500, y: 400}\n"), 0644))

	cfg := config.Default()
	cfg.Catalog = catalogPath
	cfg.Scenery = sceneryPath
	cfg.Store.Backend = config.BackendFile
	cfg.Store.Path = filepath.Join(dir, "scripts")

	env, err := NewEnvironment(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer env.Close()

	ctx := context.Background()
	script, err := env.Director.Compile(ctx, domain.Request{Scene: "study", Elements: []domain.Element{{Keyword: "lamp"}}})
	require.NoError(t, err)
	require.NoError(t, env.Director.Save(ctx, "desk", script))

	_, err = os.Stat(filepath.Join(dir, "scripts", "desk.json"))
	assert.NoError(t, err)
}

func TestNewEnvironment_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Store.Backend = config.BackendRedis
	cfg.Store.Redis.Addr = mr.Addr()
	cfg.Store.Redis.Prefix = "test:"

	env, err := NewEnvironment(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	script, err := env.Director.Compile(ctx, domain.Request{Elements: []domain.Element{{Keyword: "cake"}}})
	require.NoError(t, err)
	require.NoError(t, env.Director.Save(ctx, "party", script))
	assert.True(t, mr.Exists("test:party"))
	assert.NoError(t, env.Close())
}

func TestNewEnvironment_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Store.Backend = config.BackendRedis
	cfg.Store.Redis.Addr = addr

	_, err := NewEnvironment(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestLoadCatalog_Directory(t *testing.T) {
	dir, _ := testutils.SetupTestRepo(t)
	testutils.SeedFiles(t, dir, map[string]string{
		"owl.md": "---\ncategory: animal\naliases: [hooter]\n---\nA wise owl.\n",
	})

	cat, err := LoadCatalog(context.Background(), dir)
	require.NoError(t, err)
	b, ok := cat.Lookup("hooter")
	require.True(t, ok)
	assert.Equal(t, "owl", b.ID)

	_, err = LoadCatalog(context.Background(), filepath.Join(dir, "nope"))
	assert.Error(t, err)
}
