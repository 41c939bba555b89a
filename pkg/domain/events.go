package domain

import (
	"context"
	"time"
)

// ScriptEvent describes the start or end of a playback.
type ScriptEvent struct {
	Timestamp time.Time `json:"timestamp"`
	ScriptID  string    `json:"script_id,omitempty"`
	Scene     string    `json:"scene,omitempty"`
	Actions   int       `json:"actions"`

	// Outcomes is only populated on script end.
	Outcomes []Outcome `json:"outcomes,omitempty"`
}

// ActionEvent describes one action dispatch.
type ActionEvent struct {
	Timestamp time.Time  `json:"timestamp"`
	ScriptID  string     `json:"script_id,omitempty"`
	Index     int        `json:"index"`
	Kind      ActionKind `json:"kind"`
	Target    string     `json:"target,omitempty"`

	// Outcome is only populated on action end.
	Outcome *Outcome `json:"outcome,omitempty"`
}

// LifecycleHooks defines callbacks for playback observability.
type LifecycleHooks struct {
	OnScriptStart func(context.Context, *ScriptEvent)
	OnScriptEnd   func(context.Context, *ScriptEvent)
	OnActionStart func(context.Context, *ActionEvent)
	OnActionEnd   func(context.Context, *ActionEvent)
}

// MergeHooks chains several hook sets; each callback runs in argument order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range sets {
		out.OnScriptStart = chain(out.OnScriptStart, h.OnScriptStart)
		out.OnScriptEnd = chain(out.OnScriptEnd, h.OnScriptEnd)
		out.OnActionStart = chain(out.OnActionStart, h.OnActionStart)
		out.OnActionEnd = chain(out.OnActionEnd, h.OnActionEnd)
	}
	return out
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
