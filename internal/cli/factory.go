package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/vignette"
	"github.com/aretw0/vignette/internal/config"
	"github.com/aretw0/vignette/pkg/adapters/file"
	loamAdapter "github.com/aretw0/vignette/pkg/adapters/loam"
	"github.com/aretw0/vignette/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/vignette/pkg/adapters/redis"
	"github.com/aretw0/vignette/pkg/catalog"
	"github.com/aretw0/vignette/pkg/player"
	"github.com/aretw0/vignette/pkg/ports"
	"github.com/aretw0/vignette/pkg/scenery"
)

// Environment is everything a command needs, built once from the config.
type Environment struct {
	Config   *config.Config
	Logger   *slog.Logger
	Director *vignette.Director

	closers []io.Closer
}

// Close releases store connections.
func (e *Environment) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewEnvironment builds the director and its collaborators from cfg.
// Extra director options are applied last.
func NewEnvironment(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...vignette.Option) (*Environment, error) {
	env := &Environment{Config: cfg, Logger: logger}

	cat, err := LoadCatalog(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}

	scenes := scenery.Default()
	if cfg.Scenery != "" {
		if scenes, err = scenery.LoadFile(cfg.Scenery); err != nil {
			return nil, fmt.Errorf("failed to load scenery: %w", err)
		}
	}

	assets := player.NewAssetRegistry(nil)
	if cfg.Assets != "" {
		if assets, err = player.LoadAssets(cfg.Assets); err != nil {
			return nil, fmt.Errorf("failed to load assets: %w", err)
		}
	}

	store, err := env.openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	base := []vignette.Option{
		vignette.WithLogger(logger),
		vignette.WithCatalog(cat),
		vignette.WithScenery(scenes),
		vignette.WithAssets(assets),
		vignette.WithStore(store),
	}
	env.Director, err = vignette.New(append(base, opts...)...)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("error initializing director: %w", err)
	}
	return env, nil
}

// LoadCatalog reads a catalog file, a directory of block documents, or the
// built-in catalog when path is empty.
func LoadCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if !info.IsDir() {
		return catalog.LoadFile(path)
	}

	loader, err := loamAdapter.Open(path)
	if err != nil {
		return nil, err
	}
	return loader.Catalog(ctx)
}

func (e *Environment) openStore(ctx context.Context, cfg config.StoreConfig) (ports.ScriptStore, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return file.New(cfg.Path), nil
	case config.BackendRedis:
		var opts []redisAdapter.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redisAdapter.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(cfg.Redis.TTL))
		}
		store := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis store unavailable at %s: %w", cfg.Redis.Addr, err)
		}
		e.closers = append(e.closers, store)
		return store, nil
	default:
		return memory.NewStore(), nil
	}
}
