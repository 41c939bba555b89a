package domain

import "strings"

// Position is a symbolic stage location. The layout engine resolves it to a slot.
type Position string

const (
	PositionLeft   Position = "left"
	PositionCenter Position = "center"
	PositionRight  Position = "right"
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"

	// Off-stage sentinels.
	PositionOffstageLeft  Position = "offstage-left"
	PositionOffstageRight Position = "offstage-right"
	PositionOffstageTop   Position = "offstage-top"
)

var offstageCoords = map[Position]Vec2{
	PositionOffstageLeft:  {X: -150, Y: 400},
	PositionOffstageRight: {X: StageWidth + 150, Y: 400},
	PositionOffstageTop:   {X: StageWidth / 2, Y: -150},
}

// ParsePosition normalises a symbolic position. ok is false for unknown symbols.
func ParsePosition(s string) (Position, bool) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PositionLeft, PositionCenter, PositionRight, PositionTop, PositionBottom:
		return p, true
	}
	if _, off := offstageCoords[p]; off {
		return p, true
	}
	return "", false
}

// Offstage reports whether p is one of the off-stage sentinels.
func (p Position) Offstage() bool {
	_, ok := offstageCoords[p]
	return ok
}

// OffstageCoord returns the fixed coordinate of an off-stage sentinel.
func (p Position) OffstageCoord() (Vec2, bool) {
	v, ok := offstageCoords[p]
	return v, ok
}
