package player

import (
	"math"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
)

// Move curve shape, in stage pixels and degrees.
const (
	arcHeight   = 120.0
	hopHeight   = 40.0
	hops        = 3
	floatLift   = 30.0
	dropHeight  = 320.0
	spinDegrees = 720.0
	walkSway    = 4.0
	walkSteps   = 4
)

// shakeOvershoot is the horizontal overshoot sequence played at the destination,
// left first, each smaller than the last.
var shakeOvershoot = []float64{-18, 12, -6}

// Key tweens one property inside a Segment.
type Key struct {
	Property domain.Property
	From, To float64
	Ease     domain.Ease
}

// Segment is one leg of a motion: its keys run together for Duration.
// A segment without keys is a hold.
type Segment struct {
	Duration time.Duration
	Keys     []Key
}

func (s Segment) tweens(h domain.Handle) []domain.Tween {
	out := make([]domain.Tween, len(s.Keys))
	for i, k := range s.Keys {
		out[i] = domain.Tween{
			Target:   h,
			Property: k.Property,
			From:     k.From,
			To:       k.To,
			Duration: s.Duration,
			Ease:     k.Ease,
		}
	}
	return out
}

func travel(from, to domain.Vec2, ease domain.Ease) []Key {
	return []Key{
		{Property: domain.PropX, From: from.X, To: to.X, Ease: ease},
		{Property: domain.PropY, From: from.Y, To: to.Y, Ease: ease},
	}
}

// Path returns the segments that carry an actor from one point to another in the given
// style over d. Unknown styles move in a straight line.
func Path(style domain.MoveStyle, from, to domain.Vec2, d time.Duration) []Segment {
	switch style {
	case domain.StyleWalk:
		return walkPath(from, to, d)
	case domain.StyleArc:
		return arcPath(from, to, d)
	case domain.StyleBounce:
		return bouncePath(from, to, d)
	case domain.StyleFloat:
		return floatPath(from, to, d)
	case domain.StyleShake:
		return shakePath(from, to, d)
	case domain.StyleSpinIn:
		return spinInPath(from, to, d)
	case domain.StyleDropIn:
		return dropInPath(from, to, d)
	}
	return []Segment{{Duration: d, Keys: travel(from, to, domain.EaseLinear)}}
}

// walkPath travels in even steps, swaying left and right, upright on arrival.
func walkPath(from, to domain.Vec2, d time.Duration) []Segment {
	step := d / walkSteps
	segs := make([]Segment, 0, walkSteps)
	rot := 0.0
	for i := 0; i < walkSteps; i++ {
		a := from.Lerp(to, float64(i)/walkSteps)
		b := from.Lerp(to, float64(i+1)/walkSteps)
		next := walkSway
		if i%2 == 1 {
			next = -walkSway
		}
		if i == walkSteps-1 {
			next = 0
		}
		keys := append(travel(a, b, domain.EaseLinear),
			Key{Property: domain.PropRotation, From: rot, To: next, Ease: domain.EaseInOutSine})
		segs = append(segs, Segment{Duration: step, Keys: keys})
		rot = next
	}
	return segs
}

// arcPath rises to an apex above the midpoint, then descends onto the destination.
func arcPath(from, to domain.Vec2, d time.Duration) []Segment {
	mid := from.Lerp(to, 0.5)
	apex := math.Min(from.Y, to.Y) - arcHeight
	half := d / 2
	return []Segment{
		{Duration: half, Keys: []Key{
			{Property: domain.PropX, From: from.X, To: mid.X, Ease: domain.EaseLinear},
			{Property: domain.PropY, From: from.Y, To: apex, Ease: domain.EaseOutQuad},
		}},
		{Duration: d - half, Keys: []Key{
			{Property: domain.PropX, From: mid.X, To: to.X, Ease: domain.EaseLinear},
			{Property: domain.PropY, From: apex, To: to.Y, Ease: domain.EaseInQuad},
		}},
	}
}

// bouncePath covers the distance in equal hops; the last landing bounces.
func bouncePath(from, to domain.Vec2, d time.Duration) []Segment {
	leg := d / (hops * 2)
	segs := make([]Segment, 0, hops*2)
	for i := 0; i < hops; i++ {
		a := from.Lerp(to, float64(i)/hops)
		b := from.Lerp(to, float64(i+1)/hops)
		top := a.Lerp(b, 0.5)
		top.Y = math.Min(a.Y, b.Y) - hopHeight

		land := domain.EaseInQuad
		if i == hops-1 {
			land = domain.EaseOutBounce
		}
		segs = append(segs,
			Segment{Duration: leg, Keys: []Key{
				{Property: domain.PropX, From: a.X, To: top.X, Ease: domain.EaseLinear},
				{Property: domain.PropY, From: a.Y, To: top.Y, Ease: domain.EaseOutQuad},
			}},
			Segment{Duration: leg, Keys: []Key{
				{Property: domain.PropX, From: top.X, To: b.X, Ease: domain.EaseLinear},
				{Property: domain.PropY, From: top.Y, To: b.Y, Ease: land},
			}},
		)
	}
	return segs
}

// floatPath drifts up and slightly translucent through the midpoint, then settles.
func floatPath(from, to domain.Vec2, d time.Duration) []Segment {
	mid := from.Lerp(to, 0.5)
	mid.Y -= floatLift
	half := d / 2
	first := append(travel(from, mid, domain.EaseInOutSine),
		Key{Property: domain.PropAlpha, From: 1, To: 0.85, Ease: domain.EaseInOutSine})
	second := append(travel(mid, to, domain.EaseInOutSine),
		Key{Property: domain.PropAlpha, From: 0.85, To: 1, Ease: domain.EaseInOutSine})
	return []Segment{{Duration: half, Keys: first}, {Duration: d - half, Keys: second}}
}

// shakePath travels for 70% of d, then overshoots around the destination and settles.
func shakePath(from, to domain.Vec2, d time.Duration) []Segment {
	arrive := d * 7 / 10
	wobble := (d - arrive) / time.Duration(len(shakeOvershoot)+1)

	segs := []Segment{{Duration: arrive, Keys: travel(from, to, domain.EaseOutQuad)}}
	steps := append(append([]float64(nil), shakeOvershoot...), 0)
	x := to.X
	for _, dx := range steps {
		segs = append(segs, Segment{Duration: wobble, Keys: []Key{
			{Property: domain.PropX, From: x, To: to.X + dx, Ease: domain.EaseInOutSine},
		}})
		x = to.X + dx
	}
	return segs
}

// spinInPath spins and grows into place.
func spinInPath(from, to domain.Vec2, d time.Duration) []Segment {
	keys := append(travel(from, to, domain.EaseOutQuad),
		Key{Property: domain.PropRotation, From: -spinDegrees, To: 0, Ease: domain.EaseOutQuad},
		Key{Property: domain.PropScale, From: 0.3, To: 1, Ease: domain.EaseOutBack},
	)
	return []Segment{{Duration: d, Keys: keys}}
}

// dropInPath jumps above the destination and falls onto it with an elastic landing.
func dropInPath(from, to domain.Vec2, d time.Duration) []Segment {
	top := domain.Vec2{X: to.X, Y: to.Y - dropHeight}
	return []Segment{
		{Duration: 0, Keys: travel(from, top, domain.EaseLinear)},
		{Duration: d, Keys: []Key{
			{Property: domain.PropY, From: top.Y, To: to.Y, Ease: domain.EaseOutElastic},
		}},
	}
}
