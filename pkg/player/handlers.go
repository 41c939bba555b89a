package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/ports"
)

// Handler timings used when an action carries no duration.
const (
	popInDuration   = 250 * time.Millisecond
	fadeOutDuration = 300 * time.Millisecond
	emoteFade       = 200 * time.Millisecond
	emoteHold       = 1200 * time.Millisecond
	defaultMove     = 800 * time.Millisecond
	defaultAnimate  = 1200 * time.Millisecond
	defaultWait     = 500 * time.Millisecond
)

// emoteLift places speech bubbles above the actor.
var emoteLift = domain.Vec2{Y: -90}

var errNoTarget = errors.New("action has no target")

func (p *Player) spawn(ctx context.Context, a domain.StagedAction) error {
	if a.Target == "" {
		return errNoTarget
	}
	h, err := p.materialize(a.Target, a.Asset, a.At)
	if err != nil {
		return err
	}
	return p.await(ctx, p.host.Tween(popIn(h)))
}

func (p *Player) spawnGroup(ctx context.Context, a domain.StagedAction) error {
	if len(a.Placed) == 0 {
		return fmt.Errorf("group %q has no placed members", a.Target)
	}

	var (
		tweens []domain.Tween
		errs   []error
	)
	for _, m := range a.Placed {
		h, err := p.materialize(m.Target, a.Asset, m.At)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tweens = append(tweens, popIn(h))
	}
	if len(tweens) > 0 {
		if err := p.await(ctx, p.host.Tween(tweens...)); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}

// materialize spawns the visual for target, replacing any earlier instance.
func (p *Player) materialize(target, asset string, at domain.Vec2) (domain.Handle, error) {
	id := asset
	if id == "" {
		id = target
	}
	h, err := p.host.Spawn(p.assets.Resolve(id), at)
	if err != nil {
		return 0, fmt.Errorf("spawn %s: %w", target, err)
	}
	if prev, ok := p.track(target, h, at); ok {
		p.host.Destroy(prev)
	}
	return h, nil
}

func popIn(h domain.Handle) domain.Tween {
	return domain.Tween{Target: h, Property: domain.PropScale, From: 0, To: 1, Duration: popInDuration, Ease: domain.EaseOutBack}
}

func (p *Player) move(ctx context.Context, a domain.StagedAction) error {
	act, err := p.lookup(a.Target)
	if err != nil {
		return err
	}
	if err := a.Style.Validate(); err != nil {
		p.logger.Debug("moving linearly", "target", a.Target, "error", err)
	}
	if err := p.run(ctx, act.handle, Path(a.Style, act.at, a.At, a.Duration(defaultMove))); err != nil {
		return err
	}
	p.moved(a.Target, a.At)
	return nil
}

func (p *Player) animate(ctx context.Context, a domain.StagedAction) error {
	act, err := p.lookup(a.Target)
	if err != nil {
		return err
	}
	name := strings.ToLower(strings.TrimSpace(a.Animation))
	m, ok := p.motions[name]
	if !ok {
		p.logger.Debug("unknown animation, idling", "animation", a.Animation, "target", a.Target)
		m = p.motions[IdleMotion]
	}
	return p.run(ctx, act.handle, m.Segments(act.at, a.Duration(defaultAnimate)))
}

// run plays segments back to back on one handle.
func (p *Player) run(ctx context.Context, h domain.Handle, segs []Segment) error {
	for _, s := range segs {
		var done <-chan struct{}
		if len(s.Keys) > 0 {
			done = p.host.Tween(s.tweens(h)...)
		} else {
			done = p.host.After(s.Duration)
		}
		if err := p.await(ctx, done); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) react(ctx context.Context, a domain.StagedAction) error {
	effect, ok := p.effects[strings.ToLower(strings.TrimSpace(a.Effect))]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownEffect, a.Effect)
	}
	return p.burst(ctx, effect(a.At))
}

// burst spawns every particle, animates them together and waits for all of them
// before destroying them.
func (p *Player) burst(ctx context.Context, particles []Particle) error {
	handles := make([]domain.Handle, 0, len(particles))
	defer func() {
		for _, h := range handles {
			p.dropDecor(h)
		}
	}()

	var tweens []domain.Tween
	for _, pt := range particles {
		h, err := p.host.Spawn(pt.Visual, pt.From)
		if err != nil {
			return fmt.Errorf("spawn particle: %w", err)
		}
		p.addDecor(h)
		handles = append(handles, h)
		tweens = append(tweens, pt.tweens(h)...)
	}
	return p.await(ctx, p.host.Tween(tweens...))
}

func (p *Player) emote(ctx context.Context, a domain.StagedAction) error {
	act, err := p.lookup(a.Target)
	if err != nil {
		return err
	}
	bubble := domain.Visual{Asset: "emote", Shape: domain.ShapeBubble, Label: a.Text}
	h, err := p.host.Spawn(bubble, act.at.Add(emoteLift))
	if err != nil {
		return fmt.Errorf("spawn bubble: %w", err)
	}
	p.addDecor(h)
	defer p.dropDecor(h)

	fade := func(from, to float64) <-chan struct{} {
		return p.host.Tween(domain.Tween{Target: h, Property: domain.PropAlpha, From: from, To: to, Duration: emoteFade, Ease: domain.EaseInOutSine})
	}
	if err := p.await(ctx, fade(0, 1)); err != nil {
		return err
	}
	if err := p.await(ctx, p.host.After(a.Duration(emoteHold))); err != nil {
		return err
	}
	return p.await(ctx, fade(1, 0))
}

func (p *Player) sfx(a domain.StagedAction) error {
	sh, ok := p.host.(ports.SoundHost)
	if !ok {
		return fmt.Errorf("%w: host has no audio", domain.ErrSoundUnavailable)
	}
	if !sh.PlaySound(a.Sound) {
		return fmt.Errorf("%w: %q", domain.ErrSoundUnavailable, a.Sound)
	}
	return nil
}

func (p *Player) remove(ctx context.Context, a domain.StagedAction) error {
	act, err := p.lookup(a.Target)
	if err != nil {
		return err
	}
	if !p.evict(a.Target, act.handle) {
		return fmt.Errorf("%w: %q", domain.ErrTargetNotSpawned, a.Target)
	}
	defer p.host.Destroy(act.handle)

	d := a.Duration(fadeOutDuration)
	return p.await(ctx, p.host.Tween(
		domain.Tween{Target: act.handle, Property: domain.PropScale, From: 1, To: 0, Duration: d, Ease: domain.EaseInQuad},
		domain.Tween{Target: act.handle, Property: domain.PropAlpha, From: 1, To: 0, Duration: d, Ease: domain.EaseInQuad},
	))
}
