package ports

import (
	"time"

	"github.com/aretw0/vignette/pkg/domain"
)

// Host is the presentation collaborator driven by the player.
// The player relies on exactly these capabilities and nothing about the rendering technology.
type Host interface {
	// Spawn materialises a visual at a coordinate and returns its handle.
	Spawn(v domain.Visual, at domain.Vec2) (domain.Handle, error)

	// Destroy releases a visual. Destroying an unknown handle is a no-op.
	Destroy(h domain.Handle)

	// Tween starts the given tweens together. The returned channel is closed once all
	// of them have settled.
	Tween(tweens ...domain.Tween) <-chan struct{}

	// After returns a channel closed once d has elapsed on the host clock.
	After(d time.Duration) <-chan struct{}
}

// SoundHost is an optional Host capability. Hosts without it make sfx actions no-ops.
type SoundHost interface {
	// PlaySound starts a loaded sound and reports whether it was available.
	PlaySound(name string) bool
}
