// Package scenery keeps the static prop coordinates of each scene.
// The layout engine only uses them to block grid slots that sit too close to a prop.
package scenery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/vignette/pkg/domain"
)

// Registry implements ports.Scenery.
type Registry struct {
	scenes map[string][]domain.Vec2
}

// New creates a registry from a scene id → props table.
func New(scenes map[string][]domain.Vec2) *Registry {
	r := &Registry{scenes: make(map[string][]domain.Vec2, len(scenes))}
	for id, props := range scenes {
		r.scenes[strings.ToLower(id)] = append([]domain.Vec2(nil), props...)
	}
	return r
}

// Props returns a copy of the props registered for sceneID, or nil for unknown scenes.
func (r *Registry) Props(sceneID string) []domain.Vec2 {
	props, ok := r.scenes[strings.ToLower(sceneID)]
	if !ok {
		return nil
	}
	return append([]domain.Vec2(nil), props...)
}

// Scenes lists the registered scene ids.
func (r *Registry) Scenes() []string {
	ids := make([]string, 0, len(r.scenes))
	for id := range r.scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// File represents the structure of scenery.yaml.
type File struct {
	Scenes map[string][]domain.Vec2 `yaml:"scenes" json:"scenes"`
}

// LoadFile reads a YAML or JSON scenery file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenery: %w", err)
	}

	var f File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return New(f.Scenes), nil
}

// Default returns the built-in scenes.
func Default() *Registry {
	return New(map[string][]domain.Vec2{
		"park": {
			{X: 150, Y: 300}, // oak
			{X: 850, Y: 300}, // fountain
		},
		"kitchen": {
			{X: 500, Y: 300}, // stove
		},
		"castle": {
			{X: 150, Y: 500}, // banner
			{X: 850, Y: 500}, // banner
			{X: 500, Y: 300}, // throne
		},
		"empty": nil,
	})
}
