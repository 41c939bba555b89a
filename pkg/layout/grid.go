package layout

import (
	"fmt"

	"github.com/aretw0/vignette/pkg/domain"
)

// Grid geometry.
var (
	columnNames = [...]string{"far-left", "left", "center", "right", "far-right"}
	rowNames    = [...]string{"back", "mid", "front"}
	columnX     = [...]float64{150, 325, 500, 675, 850}
	rowY        = [...]float64{300, 400, 500}
)

const (
	// Columns and Rows are the grid dimensions.
	Columns = len(columnNames)
	Rows    = len(rowNames)

	// MinActorDistance is the smallest separation between two distinct slots.
	MinActorDistance = 100.0

	// SpreadUnit is the stage width of one unit of ActionBlock.SpreadDistance.
	// Spread is authored in actor spacings, so one unit is one slot pitch.
	SpreadUnit = MinActorDistance

	// EnvironmentClearance is the radius around a scenery prop in which slots are blocked.
	EnvironmentClearance = 120.0
)

// Slot is one cell of the logical stage grid.
type Slot struct {
	Name     string      `json:"name"`
	Column   int         `json:"column"`
	Row      int         `json:"row"`
	At       domain.Vec2 `json:"at"`
	Occupied bool        `json:"occupied"`
	Blocked  bool        `json:"blocked"`

	holder string
}

// SlotName returns the canonical name of the slot at column col and row row.
func SlotName(col, row int) string {
	return fmt.Sprintf("%s/%s", columnNames[col], rowNames[row])
}

// Grid tracks slot occupancy for one layout pass.
type Grid struct {
	slots  []*Slot
	byName map[string]*Slot
	held   map[string]*Slot
}

// NewGrid builds a fresh grid, blocking every slot within EnvironmentClearance of a prop.
func NewGrid(props []domain.Vec2) *Grid {
	g := &Grid{
		slots:  make([]*Slot, 0, Columns*Rows),
		byName: make(map[string]*Slot, Columns*Rows),
		held:   make(map[string]*Slot),
	}
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			s := &Slot{
				Name:   SlotName(col, row),
				Column: col,
				Row:    row,
				At:     domain.Vec2{X: columnX[col], Y: rowY[row]},
			}
			for _, p := range props {
				if domain.Distance(s.At, p) < EnvironmentClearance {
					s.Blocked = true
					break
				}
			}
			g.slots = append(g.slots, s)
			g.byName[s.Name] = s
		}
	}
	return g
}

// Allocate assigns actor the first free, unblocked slot on pos's preference list,
// falling back to any free slot. It returns false when the grid is full.
// The actor's previously held slot, if any, is released first.
func (g *Grid) Allocate(actor string, pos domain.Position) (Slot, bool) {
	g.Release(actor)

	for _, name := range Preferences(pos) {
		if s := g.byName[name]; s.available() {
			return g.take(actor, s), true
		}
	}
	for _, s := range g.slots {
		if s.available() {
			return g.take(actor, s), true
		}
	}
	return Slot{}, false
}

// Release frees the slot held by actor. Releasing an actor without a slot is a no-op.
func (g *Grid) Release(actor string) {
	s, ok := g.held[actor]
	if !ok {
		return
	}
	s.Occupied = false
	s.holder = ""
	delete(g.held, actor)
}

// Anchor returns the first unblocked slot on pos's preference list, ignoring occupancy.
// Anchors do not consume the slot.
func (g *Grid) Anchor(pos domain.Position) (Slot, bool) {
	for _, name := range Preferences(pos) {
		if s := g.byName[name]; !s.Blocked {
			return *s, true
		}
	}
	return Slot{}, false
}

// Held returns the slot currently held by actor.
func (g *Grid) Held(actor string) (Slot, bool) {
	s, ok := g.held[actor]
	if !ok {
		return Slot{}, false
	}
	return *s, true
}

// Slots returns a snapshot of every slot in row-major order.
func (g *Grid) Slots() []Slot {
	out := make([]Slot, len(g.slots))
	for i, s := range g.slots {
		out[i] = *s
	}
	return out
}

func (g *Grid) take(actor string, s *Slot) Slot {
	s.Occupied = true
	s.holder = actor
	g.held[actor] = s
	return *s
}

func (s *Slot) available() bool {
	return !s.Occupied && !s.Blocked
}
