package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/vignette/pkg/catalog"
	"github.com/aretw0/vignette/pkg/domain"
)

// CatalogLoader reads action blocks from a Loam repository: one Markdown, YAML or
// JSON document per block, its frontmatter decoded into BlockMetadata.
type CatalogLoader struct {
	Repo *loam.TypedRepository[BlockMetadata]
}

// New creates a catalog loader over an existing typed repository.
func New(repo *loam.TypedRepository[BlockMetadata]) *CatalogLoader {
	return &CatalogLoader{Repo: repo}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*CatalogLoader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers consistent across JSON and YAML documents.
	// The loader never writes, so the repository is opened read-only.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[BlockMetadata](repo)), nil
}

// Block retrieves one block by document id.
func (l *CatalogLoader) Block(ctx context.Context, id string) (domain.ActionBlock, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return domain.ActionBlock{}, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return doc.Data.Block(doc.ID), nil
}

// Blocks lists every block in the repository, sorted by id.
// Two documents resolving to the same id are reported as a collision.
func (l *CatalogLoader) Blocks(ctx context.Context) ([]domain.ActionBlock, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	blocks := make([]domain.ActionBlock, 0, len(docs))
	for _, doc := range docs {
		b := doc.Data.Block(doc.ID)
		if existing, ok := seen[b.ID]; ok {
			return nil, fmt.Errorf("collision detected: block '%s' is defined in both '%s' and '%s'", b.ID, existing, doc.ID)
		}
		seen[b.ID] = doc.ID
		blocks = append(blocks, b)
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })
	return blocks, nil
}

// Catalog loads every block and builds a validated catalog from them.
func (l *CatalogLoader) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	blocks, err := l.Blocks(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(blocks...)
}

// Watch reports the id of every catalog document that changes until ctx ends.
func (l *CatalogLoader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
