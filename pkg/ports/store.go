package ports

import (
	"context"

	"github.com/aretw0/vignette/pkg/domain"
)

// ScriptStore persists laid-out scripts so they can be replayed without recompiling.
type ScriptStore interface {
	// Save persists the script under the given id, overwriting any previous version.
	Save(ctx context.Context, id string, script *domain.StagedScript) error

	// Load retrieves a script.
	// Returns domain.ErrScriptNotFound if the id does not exist.
	Load(ctx context.Context, id string) (*domain.StagedScript, error)

	// Delete removes a script. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored scripts.
	List(ctx context.Context) ([]string, error)
}
