package domain

// Category classifies catalog entries.
type Category string

const (
	CategoryCharacter     Category = "character"
	CategoryProp          Category = "prop"
	CategoryAnimal        Category = "animal"
	CategoryProcedural    Category = "procedural"
	CategoryReactionCombo Category = "reaction-combo"
)

// ActionBlock is the static catalog entry for a semantic keyword.
// Blocks are authored once and never mutated by the pipeline.
type ActionBlock struct {
	ID       string   `json:"id" yaml:"id" mapstructure:"id"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases,omitempty" mapstructure:"aliases"`
	Category Category `json:"category" yaml:"category" mapstructure:"category"`

	// DefaultAnimation is the idle motion played right after a character spawns.
	DefaultAnimation string `json:"default_animation,omitempty" yaml:"default_animation,omitempty" mapstructure:"default_animation"`

	// EnterStyle, when set, makes the resolver synthesize an entrance move.
	EnterStyle MoveStyle `json:"enter_style,omitempty" yaml:"enter_style,omitempty" mapstructure:"enter_style"`

	SupportsGroup bool `json:"supports_group,omitempty" yaml:"supports_group,omitempty" mapstructure:"supports_group"`
	MaxCount      int  `json:"max_count,omitempty" yaml:"max_count,omitempty" mapstructure:"max_count"`

	// SpreadDistance is the gap between group members, in actor spacings.
	SpreadDistance float64 `json:"spread_distance,omitempty" yaml:"spread_distance,omitempty" mapstructure:"spread_distance"`

	// Effects are reaction tags contributed whenever the block is used.
	Effects []string `json:"effects,omitempty" yaml:"effects,omitempty" mapstructure:"effects"`
}

// Limit returns the maximum instance count, treating unset as 1.
func (b ActionBlock) Limit() int {
	if b.MaxCount < 1 {
		return 1
	}
	return b.MaxCount
}
