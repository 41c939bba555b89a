package ports

import "github.com/aretw0/vignette/pkg/domain"

// Catalog resolves semantic keywords to catalog entries.
// Implementations must match ids and aliases case-insensitively and never mutate entries.
type Catalog interface {
	Lookup(keyword string) (domain.ActionBlock, bool)
}

// Scenery lists the static prop coordinates registered for a scene.
// An unknown scene id yields no props, never an error.
type Scenery interface {
	Props(sceneID string) []domain.Vec2
}
