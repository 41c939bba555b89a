package dsl

import "github.com/aretw0/vignette/pkg/domain"

// ActionBuilder provides a fluent API for configuring the action just added.
type ActionBuilder struct {
	builder *Builder
	index   int
}

func (a *ActionBuilder) action() *domain.Action {
	return &a.builder.script.Actions[a.index]
}

// At sets the spawn location, move destination or react anchor.
func (a *ActionBuilder) At(pos domain.Position) *ActionBuilder {
	a.action().Position = pos
	return a
}

// Style sets the motion curve of a move.
func (a *ActionBuilder) Style(s domain.MoveStyle) *ActionBuilder {
	a.action().Style = s
	return a
}

// After delays the action by ms milliseconds.
func (a *ActionBuilder) After(ms int) *ActionBuilder {
	a.action().DelayMS = ms
	return a
}

// Lasting sets an explicit duration in milliseconds.
func (a *ActionBuilder) Lasting(ms int) *ActionBuilder {
	a.action().DurationMS = ms
	return a
}

// Then returns to the script builder.
func (a *ActionBuilder) Then() *Builder {
	return a.builder
}
