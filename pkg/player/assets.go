package player

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/vignette/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Placeholder footprint, in stage pixels.
const (
	placeholderWidth  = 80
	placeholderHeight = 80
)

// AssetRegistry maps asset ids to the visuals a host should draw for them.
// Lookups are case-insensitive. It is safe for concurrent use.
type AssetRegistry struct {
	mu      sync.RWMutex
	visuals map[string]domain.Visual
}

// NewAssetRegistry creates a registry seeded with visuals.
func NewAssetRegistry(visuals map[string]domain.Visual) *AssetRegistry {
	r := &AssetRegistry{visuals: make(map[string]domain.Visual, len(visuals))}
	for id, v := range visuals {
		r.Register(id, v)
	}
	return r
}

// Register adds or replaces the visual for id.
func (r *AssetRegistry) Register(id string, v domain.Visual) {
	key := strings.ToLower(strings.TrimSpace(id))
	if v.Asset == "" {
		v.Asset = key
	}
	if v.Shape == "" {
		v.Shape = domain.ShapeSprite
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visuals[key] = v
}

// Lookup returns the registered visual for id.
func (r *AssetRegistry) Lookup(id string) (domain.Visual, bool) {
	if r == nil {
		return domain.Visual{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.visuals[strings.ToLower(strings.TrimSpace(id))]
	return v, ok
}

// Resolve returns the registered visual for id, or a placeholder when there is none.
func (r *AssetRegistry) Resolve(id string) domain.Visual {
	if v, ok := r.Lookup(id); ok {
		return v
	}
	return Placeholder(id)
}

// IDs lists the registered asset ids.
func (r *AssetRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.visuals))
	for id := range r.visuals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Placeholder synthesizes a solid box labeled with id. Its tint is a stable hash of
// id, so the same typo always looks the same.
func Placeholder(id string) domain.Visual {
	return domain.Visual{
		Asset:       id,
		Shape:       domain.ShapeBox,
		Label:       id,
		Tint:        TintFor(id),
		Width:       placeholderWidth,
		Height:      placeholderHeight,
		Placeholder: true,
	}
}

// TintFor returns a deterministic "#rrggbb" colour for id.
func TintFor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return fmt.Sprintf("#%06x", h.Sum32()&0xffffff)
}

// AssetFile represents the structure of assets.yaml.
type AssetFile struct {
	Assets map[string]domain.Visual `yaml:"assets" json:"assets"`
}

// LoadAssets reads a YAML or JSON asset file.
func LoadAssets(path string) (*AssetRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets: %w", err)
	}

	var f AssetFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return NewAssetRegistry(f.Assets), nil
}
