package player

import (
	"time"

	"github.com/aretw0/vignette/pkg/domain"
)

// Pose is an offset from an actor's resting state. The zero value with Scale 1 is rest.
type Pose struct {
	DX, DY   float64
	Scale    float64
	Rotation float64
}

var rest = Pose{Scale: 1}

// Keyframe is one beat of a procedural motion. Share is its relative length.
type Keyframe struct {
	Pose  Pose
	Share float64
	Ease  domain.Ease
}

// Motion is a fixed keyframe sequence played in place over an action's duration.
type Motion []Keyframe

// Segments converts m into tween segments around at, spread over d.
// A motion that does not end at rest gets a closing beat back to it.
func (m Motion) Segments(at domain.Vec2, d time.Duration) []Segment {
	frames := m
	if len(frames) == 0 || frames[len(frames)-1].Pose != rest {
		frames = append(append(Motion(nil), m...), Keyframe{Pose: rest, Share: 1, Ease: domain.EaseInOutSine})
	}

	var total float64
	for _, f := range frames {
		total += f.Share
	}
	if total <= 0 {
		return nil
	}

	segs := make([]Segment, 0, len(frames))
	prev := rest
	for _, f := range frames {
		dur := time.Duration(float64(d) * f.Share / total)
		segs = append(segs, Segment{Duration: dur, Keys: poseKeys(at, prev, f.Pose, f.Ease)})
		prev = f.Pose
	}
	return segs
}

func poseKeys(at domain.Vec2, from, to Pose, ease domain.Ease) []Key {
	var keys []Key
	if from.DX != to.DX {
		keys = append(keys, Key{Property: domain.PropX, From: at.X + from.DX, To: at.X + to.DX, Ease: ease})
	}
	if from.DY != to.DY {
		keys = append(keys, Key{Property: domain.PropY, From: at.Y + from.DY, To: at.Y + to.DY, Ease: ease})
	}
	if from.Scale != to.Scale {
		keys = append(keys, Key{Property: domain.PropScale, From: from.Scale, To: to.Scale, Ease: ease})
	}
	if from.Rotation != to.Rotation {
		keys = append(keys, Key{Property: domain.PropRotation, From: from.Rotation, To: to.Rotation, Ease: ease})
	}
	return keys
}

// IdleMotion is played for unknown animation names.
const IdleMotion = "idle"

// DefaultMotions returns the built-in animate library.
func DefaultMotions() map[string]Motion {
	const (
		sine = domain.EaseInOutSine
		out  = domain.EaseOutQuad
		in   = domain.EaseInQuad
	)
	return map[string]Motion{
		IdleMotion: {
			{Pose: Pose{DY: -6, Scale: 1}, Share: 1, Ease: sine},
			{Pose: rest, Share: 1, Ease: sine},
			{Pose: Pose{DY: -6, Scale: 1}, Share: 1, Ease: sine},
			{Pose: rest, Share: 1, Ease: sine},
		},
		"dance": {
			{Pose: Pose{DY: -20, Scale: 1, Rotation: 15}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
			{Pose: Pose{DY: -20, Scale: 1, Rotation: -15}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
			{Pose: Pose{Scale: 1.15}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: domain.EaseOutBounce},
		},
		"sad": {
			{Pose: Pose{DY: 10, Scale: 0.9, Rotation: -5}, Share: 2, Ease: sine},
			{Pose: Pose{DY: 10, Scale: 0.9, Rotation: -5}, Share: 2},
			{Pose: rest, Share: 1, Ease: sine},
		},
		"eat": {
			{Pose: Pose{Scale: 1.1, Rotation: 3}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
			{Pose: Pose{Scale: 1.1, Rotation: -3}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
			{Pose: Pose{Scale: 1.1}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
		},
		"confused": {
			{Pose: Pose{Scale: 1, Rotation: 10}, Share: 1, Ease: sine},
			{Pose: Pose{Scale: 1, Rotation: -10}, Share: 2, Ease: sine},
			{Pose: Pose{Scale: 1, Rotation: 10}, Share: 2, Ease: sine},
			{Pose: rest, Share: 1, Ease: sine},
		},
		"wave": {
			{Pose: Pose{Scale: 1, Rotation: 12}, Share: 1, Ease: sine},
			{Pose: Pose{Scale: 1, Rotation: -12}, Share: 1, Ease: sine},
			{Pose: Pose{Scale: 1, Rotation: 12}, Share: 1, Ease: sine},
			{Pose: Pose{Scale: 1, Rotation: -12}, Share: 1, Ease: sine},
			{Pose: rest, Share: 1, Ease: sine},
		},
		"cheer": {
			{Pose: Pose{DY: -30, Scale: 1.15}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: domain.EaseOutBounce},
			{Pose: Pose{DY: -30, Scale: 1.15}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: domain.EaseOutBounce},
		},
		"clap": {
			{Pose: Pose{Scale: 1.05}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
			{Pose: Pose{Scale: 1.05}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
			{Pose: Pose{Scale: 1.05}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
			{Pose: Pose{Scale: 1.05}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
		},
		"laugh": {
			{Pose: Pose{DY: -4, Scale: 1.05}, Share: 1, Ease: out},
			{Pose: Pose{Scale: 1.05}, Share: 1, Ease: in},
			{Pose: Pose{DY: -4, Scale: 1.05}, Share: 1, Ease: out},
			{Pose: Pose{Scale: 1.05}, Share: 1, Ease: in},
			{Pose: Pose{DY: -4, Scale: 1.05}, Share: 1, Ease: out},
			{Pose: rest, Share: 1, Ease: in},
		},
		"point": {
			{Pose: Pose{DX: 15, Scale: 1, Rotation: 8}, Share: 1, Ease: domain.EaseOutBack},
			{Pose: Pose{DX: 15, Scale: 1, Rotation: 8}, Share: 2},
			{Pose: rest, Share: 1, Ease: sine},
		},
	}
}
