package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActionKind discriminates stage actions.
type ActionKind string

const (
	KindSpawn      ActionKind = "spawn"
	KindSpawnGroup ActionKind = "spawn_group"
	KindMove       ActionKind = "move"
	KindAnimate    ActionKind = "animate"
	KindReact      ActionKind = "react"
	KindEmote      ActionKind = "emote"
	KindSFX        ActionKind = "sfx"
	KindWait       ActionKind = "wait"
	KindRemove     ActionKind = "remove"
)

// MoveStyle names the motion curve of a move action.
type MoveStyle string

const (
	StyleLinear MoveStyle = "linear"
	StyleWalk   MoveStyle = "walk"
	StyleArc    MoveStyle = "arc"
	StyleBounce MoveStyle = "bounce"
	StyleFloat  MoveStyle = "float"
	StyleShake  MoveStyle = "shake"
	StyleSpinIn MoveStyle = "spin-in"
	StyleDropIn MoveStyle = "drop-in"
)

// ParseMoveStyle normalises a style name. ok is false for unknown names.
func ParseMoveStyle(s string) (MoveStyle, bool) {
	st := MoveStyle(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StyleLinear, StyleWalk, StyleArc, StyleBounce, StyleFloat, StyleShake, StyleSpinIn, StyleDropIn:
		return st, true
	case "dropin", "drop":
		return StyleDropIn, true
	case "spin", "spinin":
		return StyleSpinIn, true
	}
	return "", false
}

// Validate returns ErrUnknownStyle unless s is empty or a canonical style name.
// An empty style means linear.
func (s MoveStyle) Validate() error {
	switch s {
	case "", StyleLinear, StyleWalk, StyleArc, StyleBounce, StyleFloat, StyleShake, StyleSpinIn, StyleDropIn:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStyle, string(s))
}

// GroupMember is one member of a spawn_group before layout.
// Offset is the linear spread around the group's nominal position.
type GroupMember struct {
	Target string  `json:"target" yaml:"target"`
	Offset float64 `json:"offset" yaml:"offset"`
}

// Action is one scheduled stage instruction with a symbolic position only.
// Which fields are meaningful depends on Kind.
type Action struct {
	Kind   ActionKind `json:"kind" yaml:"kind"`
	Target string     `json:"target,omitempty" yaml:"target,omitempty"`

	// Asset is the catalog id backing the target's visual.
	Asset string `json:"asset,omitempty" yaml:"asset,omitempty"`

	// Position is the spawn location, move destination or react anchor.
	Position Position `json:"position,omitempty" yaml:"position,omitempty"`

	Style     MoveStyle     `json:"style,omitempty" yaml:"style,omitempty"`
	Animation string        `json:"animation,omitempty" yaml:"animation,omitempty"`
	Effect    string        `json:"effect,omitempty" yaml:"effect,omitempty"`
	Text      string        `json:"text,omitempty" yaml:"text,omitempty"`
	Sound     string        `json:"sound,omitempty" yaml:"sound,omitempty"`
	Members   []GroupMember `json:"members,omitempty" yaml:"members,omitempty"`

	DelayMS    int `json:"delay_ms,omitempty" yaml:"delay_ms,omitempty"`
	DurationMS int `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
}

// Clone returns a copy that shares no mutable state with a.
func (a Action) Clone() Action {
	out := a
	if a.Members != nil {
		out.Members = make([]GroupMember, len(a.Members))
		copy(out.Members, a.Members)
	}
	return out
}

// PlacedMember is a spawn_group member after layout.
type PlacedMember struct {
	Target string `json:"target" yaml:"target"`
	Slot   string `json:"slot,omitempty" yaml:"slot,omitempty"`
	At     Vec2   `json:"at" yaml:"at"`
}

// StagedAction is an action whose position has been resolved by the layout engine.
// Spawn, move and react actions carry a concrete coordinate; moves carry a duration.
type StagedAction struct {
	Action `yaml:",inline"`

	// At is the resolved coordinate (spawn location, move destination, react anchor).
	At Vec2 `json:"at" yaml:"at"`

	// Slot is the grid slot backing At, empty for off-stage or best-effort placement.
	Slot string `json:"slot,omitempty" yaml:"slot,omitempty"`

	Placed []PlacedMember `json:"placed,omitempty" yaml:"placed,omitempty"`
}

// Delay returns the pre-dispatch delay.
func (s StagedAction) Delay() time.Duration {
	return time.Duration(s.DelayMS) * time.Millisecond
}

// Duration returns the action duration, or fallback when unset.
func (s StagedAction) Duration(fallback time.Duration) time.Duration {
	if s.DurationMS <= 0 {
		return fallback
	}
	return time.Duration(s.DurationMS) * time.Millisecond
}

// Clone returns a copy that shares no mutable state with s.
func (s StagedAction) Clone() StagedAction {
	out := s
	out.Action = s.Action.Clone()
	if s.Placed != nil {
		out.Placed = make([]PlacedMember, len(s.Placed))
		copy(out.Placed, s.Placed)
	}
	return out
}
