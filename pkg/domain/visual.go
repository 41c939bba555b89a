package domain

import "time"

// Handle identifies an object living on the presentation host.
type Handle uint64

// Shape is the primitive a host draws when no sprite is available.
type Shape string

const (
	ShapeSprite Shape = "sprite"
	ShapeBox    Shape = "box"
	ShapeCircle Shape = "circle"
	ShapeBubble Shape = "bubble"
	ShapeGlyph  Shape = "glyph"
)

// Visual describes what a host should materialise.
type Visual struct {
	Asset  string  `json:"asset,omitempty" yaml:"asset,omitempty"`
	Sprite string  `json:"sprite,omitempty" yaml:"sprite,omitempty"`
	Shape  Shape   `json:"shape,omitempty" yaml:"shape,omitempty"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	Tint   string  `json:"tint,omitempty" yaml:"tint,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// Placeholder marks a visual synthesized because no asset was registered.
	Placeholder bool `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Property is a numeric visual property a host can tween.
type Property string

const (
	PropX        Property = "x"
	PropY        Property = "y"
	PropScale    Property = "scale"
	PropRotation Property = "rotation"
	PropAlpha    Property = "alpha"
)

// Ease names an interpolation curve.
type Ease string

const (
	EaseLinear     Ease = "linear"
	EaseOutQuad    Ease = "out-quad"
	EaseInQuad     Ease = "in-quad"
	EaseInOutSine  Ease = "in-out-sine"
	EaseOutBounce  Ease = "out-bounce"
	EaseOutElastic Ease = "out-elastic"
	EaseOutBack    Ease = "out-back"
)

// Tween is a time-bounded interpolation of one property of one host object.
type Tween struct {
	Target   Handle        `json:"target"`
	Property Property      `json:"property"`
	From     float64       `json:"from"`
	To       float64       `json:"to"`
	Duration time.Duration `json:"duration"`
	Ease     Ease          `json:"ease,omitempty"`
}
