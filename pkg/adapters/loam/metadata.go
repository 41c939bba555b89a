package loam

import "github.com/aretw0/vignette/pkg/domain"

// BlockMetadata is the frontmatter of a catalog document.
// It uses "mapstructure" tags to match the YAML keys authors write.
type BlockMetadata struct {
	ID               string   `json:"id" mapstructure:"id"`
	Aliases          []string `json:"aliases" mapstructure:"aliases"`
	Category         string   `json:"category" mapstructure:"category"`
	DefaultAnimation string   `json:"default_animation" mapstructure:"default_animation"`
	EnterStyle       string   `json:"enter_style" mapstructure:"enter_style"`
	SupportsGroup    bool     `json:"supports_group" mapstructure:"supports_group"`
	MaxCount         int      `json:"max_count" mapstructure:"max_count"`
	SpreadDistance   float64  `json:"spread_distance" mapstructure:"spread_distance"`
	Effects          []string `json:"effects" mapstructure:"effects"`
}

// Block converts the metadata into a catalog entry. fallbackID is used when the
// frontmatter has no id of its own.
func (m BlockMetadata) Block(fallbackID string) domain.ActionBlock {
	id := m.ID
	if id == "" {
		id = fallbackID
	}
	b := domain.ActionBlock{
		ID:               trimExtension(id),
		Aliases:          append([]string(nil), m.Aliases...),
		Category:         domain.Category(m.Category),
		DefaultAnimation: m.DefaultAnimation,
		SupportsGroup:    m.SupportsGroup,
		MaxCount:         m.MaxCount,
		SpreadDistance:   m.SpreadDistance,
		Effects:          append([]string(nil), m.Effects...),
	}
	if m.EnterStyle != "" {
		if style, ok := domain.ParseMoveStyle(m.EnterStyle); ok {
			b.EnterStyle = style
		} else {
			// Kept verbatim so catalog validation reports it.
			b.EnterStyle = domain.MoveStyle(m.EnterStyle)
		}
	}
	if b.Category == "" {
		b.Category = domain.CategoryProp
	}
	return b
}
