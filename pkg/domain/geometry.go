package domain

import "math"

// Vec2 is a point in stage world coordinates (pixels, y grows downwards).
type Vec2 struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// Add returns v translated by o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Lerp interpolates between v and o; t=0 yields v, t=1 yields o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Distance returns the planar distance between two points.
func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Stage bounds. Every grid slot lies inside them and every off-stage sentinel outside.
const (
	StageWidth  = 1000.0
	StageHeight = 600.0
)

// OnStage reports whether p lies inside the visible stage.
func OnStage(p Vec2) bool {
	return p.X >= 0 && p.X <= StageWidth && p.Y >= 0 && p.Y <= StageHeight
}
