// Package rehearsal provides a presentation host that renders nothing.
//
// It keeps a virtual clock and records every primitive the player issues, so a
// staged script can be "played" instantly and inspected afterwards. Tests and the
// `vignette play` command use it.
package rehearsal

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
)

// Op names a recorded host primitive.
type Op string

const (
	OpSpawn   Op = "spawn"
	OpDestroy Op = "destroy"
	OpTween   Op = "tween"
	OpWait    Op = "wait"
	OpSound   Op = "sound"
)

// Event is one recorded primitive, stamped with the virtual time it was issued at.
type Event struct {
	At       time.Duration  `json:"at"`
	Op       Op             `json:"op"`
	Handle   domain.Handle  `json:"handle,omitempty"`
	Visual   *domain.Visual `json:"visual,omitempty"`
	Position domain.Vec2    `json:"position"`
	Tweens   []domain.Tween `json:"tweens,omitempty"`
	Duration time.Duration  `json:"duration,omitempty"`
	Sound    string         `json:"sound,omitempty"`

	// Missed is set when a sound was not loaded or a destroyed handle was unknown.
	Missed bool `json:"missed,omitempty"`
}

// Object is the state of a live visual after every tween issued so far has settled.
type Object struct {
	Handle   domain.Handle
	Visual   domain.Visual
	X, Y     float64
	Scale    float64
	Rotation float64
	Alpha    float64
}

// Position returns the object's coordinate.
func (o Object) Position() domain.Vec2 {
	return domain.Vec2{X: o.X, Y: o.Y}
}

// Host is a virtual-clock presentation host. It is safe for concurrent use.
type Host struct {
	mu     sync.Mutex
	now    time.Duration
	next   domain.Handle
	live   map[domain.Handle]*Object
	events []Event
	sounds map[string]bool
	fault  func(domain.Visual) error
	logger *slog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithSounds marks the named sounds as loaded.
func WithSounds(names ...string) Option {
	return func(h *Host) {
		for _, n := range names {
			h.sounds[n] = true
		}
	}
}

// WithSpawnFault makes Spawn fail whenever fn returns an error.
func WithSpawnFault(fn func(domain.Visual) error) Option {
	return func(h *Host) {
		h.fault = fn
	}
}

// WithLogger sets a structured logger. Every primitive is logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// New creates an empty rehearsal host at virtual time zero.
func New(opts ...Option) *Host {
	h := &Host{
		live:   make(map[domain.Handle]*Object),
		sounds: make(map[string]bool),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Spawn implements ports.Host.
func (h *Host) Spawn(v domain.Visual, at domain.Vec2) (domain.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.fault != nil {
		if err := h.fault(v); err != nil {
			return 0, fmt.Errorf("spawn %q: %w", v.Asset, err)
		}
	}

	h.next++
	id := h.next
	h.live[id] = &Object{Handle: id, Visual: v, X: at.X, Y: at.Y, Scale: 1, Alpha: 1}
	visual := v
	h.record(Event{Op: OpSpawn, Handle: id, Visual: &visual, Position: at})
	h.logger.Debug("spawn", "handle", id, "asset", v.Asset, "x", at.X, "y", at.Y)
	return id, nil
}

// Destroy implements ports.Host.
func (h *Host) Destroy(id domain.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.live[id]
	delete(h.live, id)
	h.record(Event{Op: OpDestroy, Handle: id, Missed: !ok})
}

// Tween implements ports.Host. The batch settles instantly: final values are applied
// and the clock advances by the longest tween.
func (h *Host) Tween(tweens ...domain.Tween) <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()

	var longest time.Duration
	for _, t := range tweens {
		if t.Duration > longest {
			longest = t.Duration
		}
		if o, ok := h.live[t.Target]; ok {
			o.set(t.Property, t.To)
		}
	}
	h.record(Event{Op: OpTween, Tweens: append([]domain.Tween(nil), tweens...), Duration: longest})
	h.now += longest
	return closed()
}

// After implements ports.Host.
func (h *Host) After(d time.Duration) <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()

	if d < 0 {
		d = 0
	}
	h.record(Event{Op: OpWait, Duration: d})
	h.now += d
	return closed()
}

// PlaySound implements ports.SoundHost.
func (h *Host) PlaySound(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	ok := h.sounds[name]
	h.record(Event{Op: OpSound, Sound: name, Missed: !ok})
	return ok
}

// Now returns the virtual clock.
func (h *Host) Now() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

// Events returns a copy of the recorded timeline.
func (h *Host) Events() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.events...)
}

// Count returns how many events of the given op were recorded.
func (h *Host) Count(op Op) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, e := range h.events {
		if e.Op == op {
			n++
		}
	}
	return n
}

// Live returns a snapshot of every live object ordered by handle.
func (h *Host) Live() []Object {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Object, 0, len(h.live))
	for _, o := range h.live {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Object returns the live object behind id.
func (h *Host) Object(id domain.Handle) (Object, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	o, ok := h.live[id]
	if !ok {
		return Object{}, false
	}
	return *o, true
}

// Reset forgets every object and event and rewinds the clock.
func (h *Host) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = 0
	h.next = 0
	h.live = make(map[domain.Handle]*Object)
	h.events = nil
}

func (h *Host) record(e Event) {
	e.At = h.now
	h.events = append(h.events, e)
}

func (o *Object) set(p domain.Property, v float64) {
	switch p {
	case domain.PropX:
		o.X = v
	case domain.PropY:
		o.Y = v
	case domain.PropScale:
		o.Scale = v
	case domain.PropRotation:
		o.Rotation = v
	case domain.PropAlpha:
		o.Alpha = v
	}
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
