package layout

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/ports"
)

// Engine lays stage scripts out on the grid.
type Engine struct {
	scenery ports.Scenery
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger. Best-effort placements are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates a layout engine. A nil scenery means no scene has props.
func New(scenery ports.Scenery, opts ...Option) *Engine {
	e := &Engine{
		scenery: scenery,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout is a convenience wrapper around New(scenery).Layout(script, sceneID).
func Layout(script *domain.StageScript, sceneID string, scenery ports.Scenery) *domain.StagedScript {
	return New(scenery).Layout(script, sceneID)
}

// Grid returns a fresh grid for sceneID with scenery-blocked slots marked.
func (e *Engine) Grid(sceneID string) *Grid {
	var props []domain.Vec2
	if e.scenery != nil {
		props = e.scenery.Props(sceneID)
	}
	return NewGrid(props)
}

// Layout resolves every position of script for the given scene and returns a new
// staged script. The input is never mutated.
func (e *Engine) Layout(script *domain.StageScript, sceneID string) *domain.StagedScript {
	src := script.Clone()
	p := &pass{
		engine:  e,
		grid:    e.Grid(sceneID),
		actorAt: make(map[string]domain.Vec2),
		out: &domain.StagedScript{
			Scene:          sceneID,
			Classification: src.Classification,
			Narration:      src.Narration,
			Feedback:       src.Feedback,
			Actions:        make([]domain.StagedAction, 0, len(src.Actions)+4),
			Missing:        src.Missing,
		},
	}

	for i, a := range src.Actions {
		switch a.Kind {
		case domain.KindSpawn:
			paired := i+1 < len(src.Actions) &&
				src.Actions[i+1].Kind == domain.KindMove &&
				src.Actions[i+1].Target == a.Target
			p.spawn(a, paired)
		case domain.KindSpawnGroup:
			p.spawnGroup(a)
		case domain.KindMove:
			p.move(a)
		case domain.KindReact:
			p.react(a)
		case domain.KindRemove:
			p.remove(a)
		default:
			p.passThrough(a)
		}
	}
	return p.out
}

// pass holds the mutable state of a single layout run.
type pass struct {
	engine      *Engine
	grid        *Grid
	actorAt     map[string]domain.Vec2
	conversions int
	out         *domain.StagedScript
}

func (p *pass) emit(sa domain.StagedAction) {
	p.out.Actions = append(p.out.Actions, sa)
}

func (p *pass) note(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.engine.logger.Debug("layout best-effort", "note", msg)
	p.out.Notes = append(p.out.Notes, msg)
}

// place allocates a slot for actor, degrading to the first preferred coordinate when
// the grid is full.
func (p *pass) place(actor string, pos domain.Position) (domain.Vec2, string) {
	if slot, ok := p.grid.Allocate(actor, pos); ok {
		return slot.At, slot.Name
	}
	p.note("no free slot for %s at %s", actor, pos)
	return fallbackCoord(pos), ""
}

func (p *pass) spawn(a domain.Action, paired bool) {
	if at, off := a.Position.OffstageCoord(); off {
		p.actorAt[a.Target] = at
		p.emit(domain.StagedAction{Action: a, At: at})
		return
	}

	if paired {
		at, slot := p.place(a.Target, a.Position)
		p.actorAt[a.Target] = at
		p.emit(domain.StagedAction{Action: a, At: at, Slot: slot})
		return
	}

	// Walk-in: enter from alternating sides, staggered, and walk to the slot the
	// spawn would have taken.
	dest, slot := p.place(a.Target, a.Position)
	side := domain.PositionOffstageLeft
	if p.conversions%2 == 1 {
		side = domain.PositionOffstageRight
	}
	entry, _ := side.OffstageCoord()

	target := a.Position
	spawn := a
	spawn.Position = side
	spawn.DelayMS += WalkInStaggerMS * p.conversions
	p.conversions++

	p.emit(domain.StagedAction{Action: spawn, At: entry})
	p.emit(domain.StagedAction{
		Action: domain.Action{
			Kind:       domain.KindMove,
			Target:     a.Target,
			Position:   target,
			Style:      domain.StyleWalk,
			DurationMS: MoveDuration(entry, dest),
		},
		At:   dest,
		Slot: slot,
	})
	p.actorAt[a.Target] = dest
}

func (p *pass) spawnGroup(a domain.Action) {
	sa := domain.StagedAction{Action: a, Placed: make([]domain.PlacedMember, 0, len(a.Members))}

	var sum domain.Vec2
	for _, m := range a.Members {
		at, slot := p.place(m.Target, a.Position)
		if slot == "" {
			// Full grid: keep the resolver's spread, converted to stage pixels.
			at = at.Add(domain.Vec2{X: m.Offset * SpreadUnit})
		}
		p.actorAt[m.Target] = at
		sa.Placed = append(sa.Placed, domain.PlacedMember{Target: m.Target, Slot: slot, At: at})
		sum = sum.Add(at)
	}
	if n := float64(len(sa.Placed)); n > 0 {
		sa.At = domain.Vec2{X: sum.X / n, Y: sum.Y / n}
	}
	p.emit(sa)
}

func (p *pass) move(a domain.Action) {
	var (
		dest domain.Vec2
		slot string
	)
	if at, off := a.Position.OffstageCoord(); off {
		p.grid.Release(a.Target)
		dest = at
	} else {
		dest, slot = p.place(a.Target, a.Position)
	}

	from, known := p.actorAt[a.Target]
	if !known {
		from = dest
	}

	if a.DurationMS <= 0 {
		a.DurationMS = MoveDuration(from, dest)
	} else if clamped := ClampDuration(a.DurationMS); clamped != a.DurationMS {
		p.note("move of %s clamped from %dms to %dms", a.Target, a.DurationMS, clamped)
		a.DurationMS = clamped
	}

	p.actorAt[a.Target] = dest
	p.emit(domain.StagedAction{Action: a, At: dest, Slot: slot})
}

func (p *pass) react(a domain.Action) {
	pos := a.Position
	if pos == "" {
		pos = domain.PositionCenter
	}
	slot, ok := p.grid.Anchor(pos)
	if !ok {
		p.emit(domain.StagedAction{Action: a, At: stageCenter})
		return
	}
	p.emit(domain.StagedAction{Action: a, At: slot.At, Slot: slot.Name})
}

func (p *pass) remove(a domain.Action) {
	at := p.actorAt[a.Target]
	p.grid.Release(a.Target)
	delete(p.actorAt, a.Target)
	p.emit(domain.StagedAction{Action: a, At: at})
}

// passThrough keeps actions that need no placement, anchoring them on their target.
func (p *pass) passThrough(a domain.Action) {
	p.emit(domain.StagedAction{Action: a, At: p.actorAt[a.Target]})
}

var stageCenter = domain.Vec2{X: domain.StageWidth / 2, Y: 400}

// fallbackCoord is the coordinate of pos's first preferred slot, used when the grid is full.
func fallbackCoord(pos domain.Position) domain.Vec2 {
	prefs := Preferences(pos)
	if len(prefs) == 0 {
		return stageCenter
	}
	return slotCoords[prefs[0]]
}

var slotCoords = func() map[string]domain.Vec2 {
	m := make(map[string]domain.Vec2, Columns*Rows)
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			m[SlotName(c, r)] = domain.Vec2{X: columnX[c], Y: rowY[r]}
		}
	}
	return m
}()
