package player

import (
	"math"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
)

// Particle is one short-lived decoration spawned by a react effect.
type Particle struct {
	Visual    domain.Visual
	From, To  domain.Vec2
	ScaleFrom float64
	ScaleTo   float64
	AlphaFrom float64
	AlphaTo   float64
	Spin      float64
	Duration  time.Duration
	Ease      domain.Ease
}

func (pt Particle) tweens(h domain.Handle) []domain.Tween {
	tw := func(p domain.Property, from, to float64) domain.Tween {
		return domain.Tween{Target: h, Property: p, From: from, To: to, Duration: pt.Duration, Ease: pt.Ease}
	}
	out := []domain.Tween{
		tw(domain.PropScale, pt.ScaleFrom, pt.ScaleTo),
		tw(domain.PropAlpha, pt.AlphaFrom, pt.AlphaTo),
	}
	if pt.From.X != pt.To.X {
		out = append(out, tw(domain.PropX, pt.From.X, pt.To.X))
	}
	if pt.From.Y != pt.To.Y {
		out = append(out, tw(domain.PropY, pt.From.Y, pt.To.Y))
	}
	if pt.Spin != 0 {
		out = append(out, tw(domain.PropRotation, 0, pt.Spin))
	}
	return out
}

// Effect lays out the particles of a react effect around an anchor.
type Effect func(anchor domain.Vec2) []Particle

var confettiTints = []string{"#ff595e", "#ffca3a", "#8ac926", "#1982c4", "#6a4c93"}

func glyph(label, tint string) domain.Visual {
	return domain.Visual{Asset: "particle", Shape: domain.ShapeGlyph, Label: label, Tint: tint}
}

// Confetti bursts coloured chips radially; they tumble and drift down as they fade.
func Confetti(anchor domain.Vec2) []Particle {
	const n = 14
	out := make([]Particle, n)
	for i := range out {
		angle := 2 * math.Pi * float64(i) / n
		radius := 140 + float64(i%3)*30
		out[i] = Particle{
			Visual: domain.Visual{
				Asset:  "particle",
				Shape:  domain.ShapeBox,
				Tint:   confettiTints[i%len(confettiTints)],
				Width:  12,
				Height: 12,
			},
			From:      anchor,
			To:        anchor.Add(domain.Vec2{X: math.Cos(angle) * radius, Y: math.Sin(angle)*radius + 80}),
			ScaleFrom: 1,
			ScaleTo:   0.8,
			AlphaFrom: 1,
			Spin:      360,
			Duration:  1200 * time.Millisecond,
			Ease:      domain.EaseOutQuad,
		}
	}
	return out
}

// Sparkles scatters small stars that grow and vanish.
func Sparkles(anchor domain.Vec2) []Particle {
	const n = 10
	out := make([]Particle, n)
	for i := range out {
		angle := 2*math.Pi*float64(i)/n + math.Pi/n
		out[i] = Particle{
			Visual:    glyph("✦", "#ffd700"),
			From:      anchor,
			To:        anchor.Add(domain.Vec2{X: math.Cos(angle) * 90, Y: math.Sin(angle) * 90}),
			ScaleFrom: 0.4,
			ScaleTo:   1.2,
			AlphaFrom: 1,
			Duration:  900 * time.Millisecond,
			Ease:      domain.EaseOutQuad,
		}
	}
	return out
}

// Explosion is a single glyph that expands and fades.
func Explosion(anchor domain.Vec2) []Particle {
	return []Particle{{
		Visual:    glyph("💥", "#ff6b00"),
		From:      anchor,
		To:        anchor,
		ScaleFrom: 0.2,
		ScaleTo:   2.5,
		AlphaFrom: 1,
		Duration:  700 * time.Millisecond,
		Ease:      domain.EaseOutQuad,
	}}
}

// Swarm returns an effect that floats a row of glyphs upward, swaying as they fade.
func Swarm(label, tint string) Effect {
	return func(anchor domain.Vec2) []Particle {
		const n = 6
		out := make([]Particle, n)
		for i := range out {
			dx := (float64(i) - float64(n-1)/2) * 30
			sway := 20.0
			if i%2 == 1 {
				sway = -sway
			}
			from := anchor.Add(domain.Vec2{X: dx})
			out[i] = Particle{
				Visual:    glyph(label, tint),
				From:      from,
				To:        from.Add(domain.Vec2{X: sway, Y: -180}),
				ScaleFrom: 0.6,
				ScaleTo:   1,
				AlphaFrom: 1,
				Duration:  1500 * time.Millisecond,
				Ease:      domain.EaseInOutSine,
			}
		}
		return out
	}
}

// FlameTrail streams flames to the right of the anchor, the farthest lasting longest.
func FlameTrail(anchor domain.Vec2) []Particle {
	const n = 8
	out := make([]Particle, n)
	for i := range out {
		lift := 0.0
		if i%2 == 1 {
			lift = -10
		}
		out[i] = Particle{
			Visual:    glyph("🔥", "#ff4500"),
			From:      anchor,
			To:        anchor.Add(domain.Vec2{X: 60 + float64(i)*35, Y: lift}),
			ScaleFrom: 0.5,
			ScaleTo:   1.3,
			AlphaFrom: 1,
			Duration:  time.Duration(600+i*60) * time.Millisecond,
			Ease:      domain.EaseOutQuad,
		}
	}
	return out
}

// DefaultEffects returns the built-in react library.
func DefaultEffects() map[string]Effect {
	return map[string]Effect{
		"confetti":  Confetti,
		"sparkles":  Sparkles,
		"explosion": Explosion,
		"boom":      Explosion,
		"hearts":    Swarm("❤", "#ff3366"),
		"stars":     Swarm("★", "#ffd700"),
		"notes":     Swarm("♪", "#7b68ee"),
		"zzz":       Swarm("z", "#b0c4de"),
		"fire":      FlameTrail,
		"flames":    FlameTrail,
	}
}
