// Package wallclock provides a presentation host that runs on real time.
//
// Nothing is drawn: each primitive is logged, tweens and timers complete after their
// real duration. It lets a script be watched unfold at the pace a renderer would play it.
package wallclock

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
)

// Host is a real-time host. It is safe for concurrent use.
type Host struct {
	mu     sync.Mutex
	next   domain.Handle
	live   map[domain.Handle]domain.Visual
	sounds map[string]bool
	speed  float64
	logger *slog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger primitives are reported to, at info level.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithSpeed scales every duration by 1/factor. Factors <= 0 are ignored.
func WithSpeed(factor float64) Option {
	return func(h *Host) {
		if factor > 0 {
			h.speed = factor
		}
	}
}

// WithSounds marks the named sounds as loaded.
func WithSounds(names ...string) Option {
	return func(h *Host) {
		for _, n := range names {
			h.sounds[n] = true
		}
	}
}

// New creates a real-time host.
func New(opts ...Option) *Host {
	h := &Host{
		live:   make(map[domain.Handle]domain.Visual),
		sounds: make(map[string]bool),
		speed:  1,
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
	h.next++
	id := h.next
	h.live[id] = v
	h.mu.Unlock()

	h.logger.Info("spawn", "handle", id, "asset", v.Asset, "label", v.Label, "x", at.X, "y", at.Y)
	return id, nil
}

// Destroy implements ports.Host.
func (h *Host) Destroy(id domain.Handle) {
	h.mu.Lock()
	_, ok := h.live[id]
	delete(h.live, id)
	h.mu.Unlock()

	if ok {
		h.logger.Info("destroy", "handle", id)
	}
}

// Tween implements ports.Host.
func (h *Host) Tween(tweens ...domain.Tween) <-chan struct{} {
	var longest time.Duration
	for _, t := range tweens {
		if t.Duration > longest {
			longest = t.Duration
		}
	}
	h.logger.Info("tween", "count", len(tweens), "duration", longest)
	return h.timer(longest)
}

// After implements ports.Host.
func (h *Host) After(d time.Duration) <-chan struct{} {
	h.logger.Info("wait", "duration", d)
	return h.timer(d)
}

// PlaySound implements ports.SoundHost.
func (h *Host) PlaySound(name string) bool {
	h.mu.Lock()
	ok := h.sounds[name]
	h.mu.Unlock()

	h.logger.Info("sound", "name", name, "loaded", ok)
	return ok
}

// Live returns how many visuals are currently on stage.
func (h *Host) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

func (h *Host) timer(d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	scaled := time.Duration(float64(d) / h.speed)
	if scaled <= 0 {
		close(ch)
		return ch
	}
	time.AfterFunc(scaled, func() { close(ch) })
	return ch
}
