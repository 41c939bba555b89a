package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/vignette/pkg/domain"
)

// Builder manages the script construction.
type Builder struct {
	script domain.StageScript
}

// New creates a new script builder.
func New() *Builder {
	return &Builder{}
}

// Narration sets the text shown alongside the scene.
func (b *Builder) Narration(text string) *Builder {
	b.script.Narration = text
	return b
}

// Feedback sets the closing remark shown after the scene.
func (b *Builder) Feedback(text string) *Builder {
	b.script.Feedback = text
	return b
}

// Classification sets the verdict carried by the script.
func (b *Builder) Classification(c domain.Classification) *Builder {
	b.script.Classification = c
	return b
}

func (b *Builder) add(a domain.Action) *ActionBuilder {
	b.script.Actions = append(b.script.Actions, a)
	return &ActionBuilder{builder: b, index: len(b.script.Actions) - 1}
}

// Spawn materialises target using the visual registered for asset.
func (b *Builder) Spawn(target, asset string) *ActionBuilder {
	return b.add(domain.Action{Kind: domain.KindSpawn, Target: target, Asset: asset, Position: domain.PositionCenter})
}

// SpawnGroup materialises several instances of asset together. Members are
// spread by spacing around the group's position.
func (b *Builder) SpawnGroup(target, asset string, spacing float64, members ...string) *ActionBuilder {
	half := float64(len(members)-1) * spacing / 2
	group := make([]domain.GroupMember, len(members))
	for i, m := range members {
		group[i] = domain.GroupMember{Target: m, Offset: -half + float64(i)*spacing}
	}
	return b.add(domain.Action{Kind: domain.KindSpawnGroup, Target: target, Asset: asset, Position: domain.PositionCenter, Members: group})
}

// Move sends target to a new position.
func (b *Builder) Move(target string) *ActionBuilder {
	return b.add(domain.Action{Kind: domain.KindMove, Target: target, Position: domain.PositionCenter})
}

// Animate plays a named motion on target.
func (b *Builder) Animate(target, animation string) *ActionBuilder {
	return b.add(domain.Action{Kind: domain.KindAnimate, Target: target, Animation: animation})
}

// React plays a particle effect anchored at a position.
func (b *Builder) React(effect string) *ActionBuilder {
	return b.add(domain.Action{Kind: domain.KindReact, Effect: effect, Position: domain.PositionCenter})
}

// Emote shows a speech bubble above target.
func (b *Builder) Emote(target, text string) *ActionBuilder {
	return b.add(domain.Action{Kind: domain.KindEmote, Target: target, Text: text})
}

// SFX asks the host to play a loaded sound.
func (b *Builder) SFX(sound string) *ActionBuilder {
	return b.add(domain.Action{Kind: domain.KindSFX, Sound: sound})
}

// Wait pauses the script for ms milliseconds.
func (b *Builder) Wait(ms int) *ActionBuilder {
	return b.add(domain.Action{Kind: domain.KindWait, DurationMS: ms})
}

// Remove takes target off the stage.
func (b *Builder) Remove(target string) *ActionBuilder {
	return b.add(domain.Action{Kind: domain.KindRemove, Target: target})
}

// Build returns the script, or every reference problem found.
// A target must be spawned before anything else refers to it, and moves must name
// a known style.
func (b *Builder) Build() (*domain.StageScript, error) {
	spawned := map[string]bool{}
	var errs []error

	for i, a := range b.script.Actions {
		switch a.Kind {
		case domain.KindSpawn:
			spawned[a.Target] = true
		case domain.KindSpawnGroup:
			if len(a.Members) == 0 {
				errs = append(errs, fmt.Errorf("action %d: group %q has no members", i, a.Target))
			}
			for _, m := range a.Members {
				spawned[m.Target] = true
			}
		case domain.KindMove, domain.KindAnimate, domain.KindEmote:
			if !spawned[a.Target] {
				errs = append(errs, fmt.Errorf("action %d: %s refers to %q before it is spawned", i, a.Kind, a.Target))
			}
			if a.Kind == domain.KindMove {
				if err := a.Style.Validate(); err != nil {
					errs = append(errs, fmt.Errorf("action %d: %w", i, err))
				}
			}
		case domain.KindRemove:
			if !spawned[a.Target] {
				errs = append(errs, fmt.Errorf("action %d: remove refers to %q before it is spawned", i, a.Target))
			}
			delete(spawned, a.Target)
		}
		if a.DelayMS < 0 || a.DurationMS < 0 {
			errs = append(errs, fmt.Errorf("action %d: negative timing", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b.script.Clone(), nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *domain.StageScript {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
