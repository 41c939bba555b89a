package vignette

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/vignette/pkg/adapters/memory"
	"github.com/aretw0/vignette/pkg/catalog"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/layout"
	"github.com/aretw0/vignette/pkg/player"
	"github.com/aretw0/vignette/pkg/ports"
	"github.com/aretw0/vignette/pkg/resolver"
	"github.com/aretw0/vignette/pkg/scenery"
	"gopkg.in/yaml.v3"
)

// Director is the high-level entry point for the vignette library.
// It wires the resolver and the layout engine over one catalog and one set of scenes,
// keeps compiled scripts in a store and builds players that share its hooks.
type Director struct {
	catalog  ports.Catalog
	scenery  ports.Scenery
	store    ports.ScriptStore
	assets   *player.AssetRegistry
	resolver *resolver.Resolver
	layout   *layout.Engine
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Director.
type Option func(*Director)

// WithCatalog sets the catalog keywords are resolved against. Defaults to catalog.Default().
func WithCatalog(c ports.Catalog) Option {
	return func(d *Director) {
		d.catalog = c
	}
}

// WithScenery sets the scene props used during layout. Defaults to scenery.Default().
func WithScenery(s ports.Scenery) Option {
	return func(d *Director) {
		d.scenery = s
	}
}

// WithStore sets where compiled scripts are kept. Defaults to an in-memory store.
func WithStore(s ports.ScriptStore) Option {
	return func(d *Director) {
		d.store = s
	}
}

// WithAssets sets the visuals players spawn.
func WithAssets(a *player.AssetRegistry) Option {
	return func(d *Director) {
		d.assets = a
	}
}

// WithLifecycleHooks registers observability hooks passed to every player.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Director) {
		d.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Director) {
		d.logger = logger
	}
}

// New creates a Director.
func New(opts ...Option) (*Director, error) {
	d := &Director{}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.catalog == nil {
		d.catalog = catalog.Default()
	}
	if d.scenery == nil {
		d.scenery = scenery.Default()
	}
	if d.store == nil {
		d.store = memory.NewStore()
	}
	if d.assets == nil {
		d.assets = player.NewAssetRegistry(nil)
	}

	d.resolver = resolver.New(d.catalog, resolver.WithLogger(d.logger))
	d.layout = layout.New(d.scenery, layout.WithLogger(d.logger))
	return d, nil
}

// Compile resolves req and lays it out on req.Scene.
func (d *Director) Compile(ctx context.Context, req domain.Request) (*domain.StagedScript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	script := d.resolver.Resolve(req)
	staged := d.layout.Layout(script, req.Scene)

	d.logger.Debug("compiled vignette",
		"scene", req.Scene,
		"elements", len(req.Elements),
		"actions", len(staged.Actions),
		"missing", len(staged.Missing),
		"notes", len(staged.Notes))
	return staged, nil
}

// Relayout lays an already staged script out again, possibly on another scene.
func (d *Director) Relayout(script *domain.StagedScript, sceneID string) *domain.StagedScript {
	out := d.layout.Layout(script.Script(), sceneID)
	out.ID = script.ID
	return out
}

// Save stores a copy of script under id, with the id stamped on the copy.
// The caller's script is left untouched.
func (d *Director) Save(ctx context.Context, id string, script *domain.StagedScript) error {
	if id == "" {
		return fmt.Errorf("script id cannot be empty")
	}
	stored := script.Clone()
	stored.ID = id
	if err := d.store.Save(ctx, id, stored); err != nil {
		return fmt.Errorf("failed to save script %s: %w", id, err)
	}
	return nil
}

// Load retrieves a stored script.
func (d *Director) Load(ctx context.Context, id string) (*domain.StagedScript, error) {
	return d.store.Load(ctx, id)
}

// Delete removes a stored script.
func (d *Director) Delete(ctx context.Context, id string) error {
	return d.store.Delete(ctx, id)
}

// Scripts lists the stored script ids.
func (d *Director) Scripts(ctx context.Context) ([]string, error) {
	return d.store.List(ctx)
}

// NewPlayer builds a player on host that shares the director's logger, hooks and assets.
// Extra options are applied last.
func (d *Director) NewPlayer(host ports.Host, opts ...player.Option) *player.Player {
	base := []player.Option{
		player.WithLogger(d.logger),
		player.WithLifecycleHooks(d.hooks),
		player.WithAssets(d.assets),
	}
	return player.New(host, append(base, opts...)...)
}

// Catalog returns the catalog keywords are resolved against.
func (d *Director) Catalog() ports.Catalog {
	return d.catalog
}

// Scenery returns the scene props used during layout.
func (d *Director) Scenery() ports.Scenery {
	return d.scenery
}

// LoadRequest reads a YAML or JSON request file.
func LoadRequest(path string) (domain.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Request{}, fmt.Errorf("failed to read request: %w", err)
	}

	var req domain.Request
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &req)
	} else {
		err = yaml.Unmarshal(data, &req)
	}
	if err != nil {
		return domain.Request{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return req, nil
}
