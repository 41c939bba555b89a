package domain

// Classification is the caller-supplied verdict carried along with a script.
type Classification string

const (
	ClassSuccess Classification = "success"
	ClassPartial Classification = "partial"
	ClassFailure Classification = "failure"
)

// StageScript is the resolver's output: ordered actions with symbolic positions.
type StageScript struct {
	Classification Classification `json:"classification,omitempty" yaml:"classification,omitempty"`
	Narration      string         `json:"narration,omitempty" yaml:"narration,omitempty"`
	Feedback       string         `json:"feedback,omitempty" yaml:"feedback,omitempty"`
	Actions        []Action       `json:"actions" yaml:"actions"`

	// Missing lists the keywords the resolver could not find in the catalog.
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Clone returns a deep copy of the script.
func (s *StageScript) Clone() *StageScript {
	if s == nil {
		return nil
	}
	out := *s
	out.Actions = make([]Action, len(s.Actions))
	for i, a := range s.Actions {
		out.Actions[i] = a.Clone()
	}
	if s.Missing != nil {
		out.Missing = append([]string(nil), s.Missing...)
	}
	return &out
}

// StagedScript is the layout engine's output and the player's input.
type StagedScript struct {
	ID             string         `json:"id,omitempty" yaml:"id,omitempty"`
	Scene          string         `json:"scene,omitempty" yaml:"scene,omitempty"`
	Classification Classification `json:"classification,omitempty" yaml:"classification,omitempty"`
	Narration      string         `json:"narration,omitempty" yaml:"narration,omitempty"`
	Feedback       string         `json:"feedback,omitempty" yaml:"feedback,omitempty"`
	Actions        []StagedAction `json:"actions" yaml:"actions"`
	Missing        []string       `json:"missing,omitempty" yaml:"missing,omitempty"`

	// Notes records best-effort decisions taken during layout (e.g. a full grid).
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Clone returns a deep copy of the staged script.
func (s *StagedScript) Clone() *StagedScript {
	if s == nil {
		return nil
	}
	out := *s
	out.Actions = make([]StagedAction, len(s.Actions))
	for i, a := range s.Actions {
		out.Actions[i] = a.Clone()
	}
	if s.Missing != nil {
		out.Missing = append([]string(nil), s.Missing...)
	}
	if s.Notes != nil {
		out.Notes = append([]string(nil), s.Notes...)
	}
	return &out
}

// Script projects the staged script back to its unresolved form so it can be laid
// out again. Symbolic positions, delays and durations are preserved.
func (s *StagedScript) Script() *StageScript {
	out := &StageScript{
		Classification: s.Classification,
		Narration:      s.Narration,
		Feedback:       s.Feedback,
		Actions:        make([]Action, len(s.Actions)),
	}
	for i, a := range s.Actions {
		out.Actions[i] = a.Action.Clone()
	}
	if s.Missing != nil {
		out.Missing = append([]string(nil), s.Missing...)
	}
	return out
}
