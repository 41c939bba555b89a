package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/vignette"
	loamAdapter "github.com/aretw0/vignette/pkg/adapters/loam"
	"github.com/aretw0/vignette/pkg/catalog"
	"github.com/aretw0/vignette/pkg/domain"
)

// settleDelay lets editors finish writing before the catalog is re-read.
const settleDelay = 100 * time.Millisecond

// watchSource is a catalog that can be re-read and reports when it changed.
type watchSource interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// WatchCompile compiles the request returned by load against the block documents in
// dir, then again every time one of them changes, until ctx ends. Both the catalog
// and the request are re-read on every pass, so a request file kept inside dir is
// watched too. fn receives every result; a broken catalog or request is reported
// through err and the watcher keeps going.
func WatchCompile(ctx context.Context, dir string, load func() (domain.Request, error), logger *slog.Logger, opts []vignette.Option, fn func(*domain.StagedScript, error)) error {
	loader, err := loamAdapter.Open(dir)
	if err != nil {
		return err
	}
	logger.Info("Starting Watcher", "path", dir)
	return watchCompile(ctx, loader, load, logger, opts, fn)
}

func watchCompile(ctx context.Context, src watchSource, load func() (domain.Request, error), logger *slog.Logger, opts []vignette.Option, fn func(*domain.StagedScript, error)) error {
	events, err := src.Watch(ctx)
	if err != nil {
		return err
	}

	compile := func() {
		req, err := load()
		if err != nil {
			fn(nil, fmt.Errorf("request reload failed: %w", err))
			return
		}
		cat, err := src.Catalog(ctx)
		if err != nil {
			fn(nil, fmt.Errorf("catalog reload failed: %w", err))
			return
		}
		d, err := vignette.New(append(opts, vignette.WithCatalog(cat))...)
		if err != nil {
			fn(nil, err)
			return
		}
		fn(d.Compile(ctx, req))
	}

	compile()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case id, ok := <-events:
			if !ok {
				return nil
			}
			logger.Info("Change detected, recompiling", "document", id)
			time.Sleep(settleDelay)
			drain(events)
			compile()
		}
	}
}

// drain discards events queued while the catalog was settling.
func drain(events <-chan string) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
