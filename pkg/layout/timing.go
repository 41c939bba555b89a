package layout

import (
	"math"

	"github.com/aretw0/vignette/pkg/domain"
)

// Move timing band and travel speed.
const (
	MinMoveMS = 600
	MaxMoveMS = 2500

	// MSPerPixel scales straight-line distance to milliseconds.
	MSPerPixel = 2.5

	// WalkInStaggerMS separates successive walk-in conversions.
	WalkInStaggerMS = 400
)

// MoveDuration returns the duration of a move between two points, in milliseconds.
func MoveDuration(from, to domain.Vec2) int {
	return ClampDuration(int(math.Round(domain.Distance(from, to) * MSPerPixel)))
}

// ClampDuration pins ms into [MinMoveMS, MaxMoveMS].
func ClampDuration(ms int) int {
	switch {
	case ms < MinMoveMS:
		return MinMoveMS
	case ms > MaxMoveMS:
		return MaxMoveMS
	}
	return ms
}
