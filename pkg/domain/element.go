package domain

// Element is one thing the vignette should contain.
type Element struct {
	Keyword string `json:"keyword" yaml:"keyword" mapstructure:"keyword"`
	Count   int    `json:"count,omitempty" yaml:"count,omitempty" mapstructure:"count"`

	// Hint is an optional choreography hint, e.g. "left", "drop-in" or "arc:right".
	Hint string `json:"hint,omitempty" yaml:"hint,omitempty" mapstructure:"hint"`
}

// Request is the in-process contract between the content layer and the resolver.
type Request struct {
	Classification Classification `json:"classification,omitempty" yaml:"classification,omitempty" mapstructure:"classification"`
	Narration      string         `json:"narration,omitempty" yaml:"narration,omitempty" mapstructure:"narration"`
	Feedback       string         `json:"feedback,omitempty" yaml:"feedback,omitempty" mapstructure:"feedback"`
	Elements       []Element      `json:"elements" yaml:"elements" mapstructure:"elements"`
	Effects        []string       `json:"effects,omitempty" yaml:"effects,omitempty" mapstructure:"effects"`

	// Scene selects the scenery used during layout.
	Scene string `json:"scene,omitempty" yaml:"scene,omitempty" mapstructure:"scene"`
}
