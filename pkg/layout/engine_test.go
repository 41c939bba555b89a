package layout

import (
	"fmt"
	"testing"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/scenery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testScenery = scenery.New(map[string][]domain.Vec2{
	"park": {{X: 150, Y: 300}, {X: 850, Y: 300}},
})

func enter(target string, pos domain.Position) []domain.Action {
	return []domain.Action{
		{Kind: domain.KindSpawn, Target: target, Asset: target, Position: domain.PositionOffstageLeft},
		{Kind: domain.KindMove, Target: target, Position: pos, Style: domain.StyleWalk},
	}
}

func popIn(target string, pos domain.Position) domain.Action {
	return domain.Action{Kind: domain.KindSpawn, Target: target, Asset: target, Position: pos}
}

// finalPositions returns where every actor rests at the end of the script.
func finalPositions(s *domain.StagedScript) map[string]domain.Vec2 {
	at := make(map[string]domain.Vec2)
	for _, a := range s.Actions {
		switch a.Kind {
		case domain.KindSpawn, domain.KindMove:
			at[a.Target] = a.At
		case domain.KindSpawnGroup:
			for _, m := range a.Placed {
				at[m.Target] = m.At
			}
		case domain.KindRemove:
			delete(at, a.Target)
		}
	}
	return at
}

func countKind(s *domain.StagedScript, kind domain.ActionKind) int {
	n := 0
	for _, a := range s.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

func TestLayout_CenterFillsOutwardIntoFourthPreference(t *testing.T) {
	var actions []domain.Action
	actions = append(actions, enter("a", domain.PositionCenter)...)
	actions = append(actions, enter("b", domain.PositionCenter)...)
	actions = append(actions, enter("c", domain.PositionCenter)...)
	actions = append(actions, popIn("d", domain.PositionCenter))

	out := Layout(&domain.StageScript{Actions: actions}, "empty", testScenery)

	require.Len(t, out.Actions, 8)
	assert.Equal(t, "center/mid", out.Actions[1].Slot)
	assert.Equal(t, "center/front", out.Actions[3].Slot)
	assert.Equal(t, "center/back", out.Actions[5].Slot)

	spawn, move := out.Actions[6], out.Actions[7]
	assert.Equal(t, domain.KindSpawn, spawn.Kind)
	assert.Equal(t, domain.PositionOffstageLeft, spawn.Position)
	assert.Equal(t, domain.Vec2{X: -150, Y: 400}, spawn.At)
	assert.Equal(t, 0, spawn.DelayMS, "first conversion has index 0")

	assert.Equal(t, domain.KindMove, move.Kind)
	assert.Equal(t, "d", move.Target)
	assert.Equal(t, Preferences(domain.PositionCenter)[3], move.Slot)
	assert.Equal(t, "left/mid", move.Slot)
	assert.Equal(t, domain.StyleWalk, move.Style)
	assert.Equal(t, 1188, move.DurationMS)
}

func TestLayout_WalkInStaggerAndAlternation(t *testing.T) {
	script := &domain.StageScript{Actions: []domain.Action{
		popIn("a", domain.PositionCenter),
		popIn("b", domain.PositionCenter),
		popIn("c", domain.PositionCenter),
	}}

	out := Layout(script, "", nil)

	require.Len(t, out.Actions, 6)
	sides := []domain.Position{domain.PositionOffstageLeft, domain.PositionOffstageRight, domain.PositionOffstageLeft}
	for i := 0; i < 3; i++ {
		spawn := out.Actions[i*2]
		assert.Equal(t, sides[i], spawn.Position, "conversion %d", i)
		assert.Equal(t, WalkInStaggerMS*i, spawn.DelayMS, "conversion %d", i)
		assert.Equal(t, domain.KindMove, out.Actions[i*2+1].Kind)
	}
}

func TestLayout_ExistingDelayIsKept(t *testing.T) {
	a := popIn("a", domain.PositionLeft)
	b := popIn("b", domain.PositionLeft)
	b.DelayMS = 250

	out := Layout(&domain.StageScript{Actions: []domain.Action{a, b}}, "", nil)
	assert.Equal(t, 250+WalkInStaggerMS, out.Actions[2].DelayMS)
}

func TestLayout_Idempotent(t *testing.T) {
	var actions []domain.Action
	actions = append(actions, enter("a", domain.PositionLeft)...)
	actions = append(actions,
		popIn("b", domain.PositionCenter),
		popIn("c", domain.PositionRight),
		domain.Action{Kind: domain.KindAnimate, Target: "b", Animation: "dance"},
		domain.Action{Kind: domain.KindReact, Effect: "confetti", Position: domain.PositionCenter},
	)

	first := Layout(&domain.StageScript{Actions: actions}, "park", testScenery)
	second := Layout(first.Script(), "park", testScenery)

	assert.Equal(t, len(first.Actions), len(second.Actions), "no additional walk-ins")
	assert.Equal(t, countKind(first, domain.KindMove), countKind(second, domain.KindMove))
	assert.Equal(t, finalPositions(first), finalPositions(second))
	for i := range first.Actions {
		assert.Equal(t, first.Actions[i].DelayMS, second.Actions[i].DelayMS)
		assert.Equal(t, first.Actions[i].DurationMS, second.Actions[i].DurationMS)
	}
}

func TestLayout_DoesNotMutateInput(t *testing.T) {
	script := &domain.StageScript{
		Actions: []domain.Action{
			popIn("a", domain.PositionCenter),
			{Kind: domain.KindSpawnGroup, Target: "cat-group", Position: domain.PositionLeft, Members: []domain.GroupMember{{Target: "cat", Offset: -0.75}, {Target: "cat_2", Offset: 0.75}}},
		},
		Missing: []string{"unicorn"},
	}
	before := script.Clone()

	_ = Layout(script, "park", testScenery)

	assert.Equal(t, before, script)
}

func TestLayout_MinimumActorDistance(t *testing.T) {
	for _, scene := range []string{"empty", "park"} {
		t.Run(scene, func(t *testing.T) {
			var actions []domain.Action
			for i := 0; i < 11; i++ {
				pos := []domain.Position{domain.PositionCenter, domain.PositionLeft, domain.PositionRight, domain.PositionTop}[i%4]
				actions = append(actions, popIn(fmt.Sprintf("actor%d", i), pos))
			}
			out := Layout(&domain.StageScript{Actions: actions}, scene, testScenery)
			assert.Empty(t, out.Notes)

			final := finalPositions(out)
			require.Len(t, final, 11)
			var points []domain.Vec2
			for _, p := range final {
				require.True(t, domain.OnStage(p))
				points = append(points, p)
			}
			for i := range points {
				for j := i + 1; j < len(points); j++ {
					assert.GreaterOrEqual(t, domain.Distance(points[i], points[j]), MinActorDistance)
				}
			}
		})
	}
}

func TestLayout_EnvironmentClearance(t *testing.T) {
	var actions []domain.Action
	for i := 0; i < 11; i++ {
		actions = append(actions, enter(fmt.Sprintf("actor%d", i), domain.PositionLeft)...)
	}
	out := Layout(&domain.StageScript{Actions: actions}, "park", testScenery)

	for target, p := range finalPositions(out) {
		for _, prop := range testScenery.Props("park") {
			assert.GreaterOrEqual(t, domain.Distance(p, prop), EnvironmentClearance, "actor %s too close to scenery", target)
		}
	}
}

func TestLayout_MoveDurationsInBand(t *testing.T) {
	actions := []domain.Action{
		{Kind: domain.KindSpawn, Target: "a", Position: domain.PositionOffstageLeft},
		{Kind: domain.KindMove, Target: "a", Position: domain.PositionLeft},
		{Kind: domain.KindMove, Target: "a", Position: domain.PositionRight},
		{Kind: domain.KindMove, Target: "a", Position: domain.PositionOffstageRight},
		{Kind: domain.KindMove, Target: "ghost", Position: domain.PositionCenter},
		{Kind: domain.KindMove, Target: "a", Position: domain.PositionCenter, DurationMS: 9000},
		{Kind: domain.KindMove, Target: "a", Position: domain.PositionLeft, DurationMS: 10},
	}
	out := Layout(&domain.StageScript{Actions: actions}, "", nil)

	for _, a := range out.Actions {
		if a.Kind != domain.KindMove {
			continue
		}
		assert.GreaterOrEqual(t, a.DurationMS, MinMoveMS)
		assert.LessOrEqual(t, a.DurationMS, MaxMoveMS)
	}
	assert.Len(t, out.Notes, 2, "explicit out-of-band durations are clamped and noted")
}

func TestLayout_MoveFreesPreviousSlot(t *testing.T) {
	var actions []domain.Action
	actions = append(actions, enter("a", domain.PositionCenter)...)
	actions = append(actions, domain.Action{Kind: domain.KindMove, Target: "a", Position: domain.PositionLeft})
	actions = append(actions, enter("b", domain.PositionCenter)...)

	out := Layout(&domain.StageScript{Actions: actions}, "", nil)

	require.Len(t, out.Actions, 5)
	assert.Equal(t, "center/mid", out.Actions[1].Slot)
	assert.Equal(t, "left/mid", out.Actions[2].Slot)
	assert.Equal(t, "center/mid", out.Actions[4].Slot, "a's first slot is reusable by b")
}

func TestLayout_RemoveFreesSlot(t *testing.T) {
	actions := []domain.Action{
		{Kind: domain.KindSpawn, Target: "a", Position: domain.PositionCenter},
		{Kind: domain.KindMove, Target: "a", Position: domain.PositionCenter},
		{Kind: domain.KindRemove, Target: "a"},
	}
	actions = append(actions, enter("b", domain.PositionCenter)...)

	out := Layout(&domain.StageScript{Actions: actions}, "", nil)
	assert.Equal(t, "center/mid", out.Actions[len(out.Actions)-1].Slot)
}

func TestLayout_SpawnGroupAllocatesPerMember(t *testing.T) {
	script := &domain.StageScript{Actions: []domain.Action{{
		Kind:     domain.KindSpawnGroup,
		Target:   "cat-group",
		Position: domain.PositionCenter,
		Members: []domain.GroupMember{
			{Target: "cat", Offset: -1.5},
			{Target: "cat_2", Offset: 0},
			{Target: "cat_3", Offset: 1.5},
		},
	}}}

	out := Layout(script, "", nil)

	require.Len(t, out.Actions, 1, "groups are never converted to walk-ins")
	group := out.Actions[0]
	require.Len(t, group.Placed, 3)
	assert.Equal(t, "center/mid", group.Placed[0].Slot)
	assert.Equal(t, "center/front", group.Placed[1].Slot)
	assert.Equal(t, "center/back", group.Placed[2].Slot)
	assert.Equal(t, domain.Vec2{X: 500, Y: 400}, group.At, "group anchor is the members' centroid")
}

func TestLayout_ReactAnchorsWithoutOccupying(t *testing.T) {
	actions := []domain.Action{{Kind: domain.KindReact, Effect: "confetti", Position: domain.PositionCenter}}
	actions = append(actions, enter("a", domain.PositionCenter)...)

	out := Layout(&domain.StageScript{Actions: actions}, "empty", scenery.Default())

	react := out.Actions[0]
	assert.Equal(t, "center/mid", react.Slot)
	assert.Equal(t, "center/mid", out.Actions[2].Slot, "react does not consume its anchor slot")
}

func TestLayout_ReactSkipsBlockedAnchor(t *testing.T) {
	sc := scenery.New(map[string][]domain.Vec2{"stove": {{X: 500, Y: 400}}})
	out := Layout(&domain.StageScript{Actions: []domain.Action{{Kind: domain.KindReact, Effect: "boom"}}}, "stove", sc)

	assert.Equal(t, "left/mid", out.Actions[0].Slot)
}

func TestLayout_FullGridDegrades(t *testing.T) {
	var actions []domain.Action
	for i := 0; i < Columns*Rows+2; i++ {
		actions = append(actions, enter(fmt.Sprintf("a%d", i), domain.PositionCenter)...)
	}

	var out *domain.StagedScript
	require.NotPanics(t, func() {
		out = Layout(&domain.StageScript{Actions: actions}, "", nil)
	})

	assert.Len(t, out.Notes, 2)
	last := out.Actions[len(out.Actions)-1]
	assert.Empty(t, last.Slot)
	assert.Equal(t, domain.Vec2{X: 500, Y: 400}, last.At)
	assert.GreaterOrEqual(t, last.DurationMS, MinMoveMS)
}

func TestLayout_FullGridGroupKeepsSpread(t *testing.T) {
	var actions []domain.Action
	for i := 0; i < Columns*Rows; i++ {
		actions = append(actions, enter(fmt.Sprintf("a%d", i), domain.PositionCenter)...)
	}
	actions = append(actions, domain.Action{
		Kind:     domain.KindSpawnGroup,
		Target:   "cat-group",
		Asset:    "cat",
		Position: domain.PositionCenter,
		Members: []domain.GroupMember{
			{Target: "cat", Offset: -1.5},
			{Target: "cat_2", Offset: 0},
			{Target: "cat_3", Offset: 1.5},
		},
	})

	out := Layout(&domain.StageScript{Actions: actions}, "", nil)

	group := out.Actions[len(out.Actions)-1]
	require.Equal(t, domain.KindSpawnGroup, group.Kind)
	require.Len(t, group.Placed, 3)
	for _, m := range group.Placed {
		assert.Empty(t, m.Slot, m.Target)
	}
	assert.Equal(t, domain.Vec2{X: 500 - 1.5*SpreadUnit, Y: 400}, group.Placed[0].At)
	assert.Equal(t, domain.Vec2{X: 500, Y: 400}, group.Placed[1].At)
	assert.Equal(t, domain.Vec2{X: 500 + 1.5*SpreadUnit, Y: 400}, group.Placed[2].At)
	assert.Equal(t, domain.Vec2{X: 500, Y: 400}, group.At, "centroid stays on the requested position")
	assert.Len(t, out.Notes, 3)
}

func TestLayout_UnknownSceneHasNoBlockedSlots(t *testing.T) {
	g := New(testScenery).Grid("moon")
	for _, s := range g.Slots() {
		assert.False(t, s.Blocked, s.Name)
	}
}

func TestLayout_PassThroughAnchorsOnActor(t *testing.T) {
	actions := enter("a", domain.PositionRight)
	actions = append(actions, domain.Action{Kind: domain.KindEmote, Target: "a", Text: "hi"})

	out := Layout(&domain.StageScript{Actions: actions, Narration: "hello"}, "", nil)

	assert.Equal(t, out.Actions[1].At, out.Actions[2].At)
	assert.Equal(t, "hello", out.Narration)
}

func TestPreferences(t *testing.T) {
	positions := []domain.Position{domain.PositionCenter, domain.PositionLeft, domain.PositionRight, domain.PositionTop, domain.PositionBottom}
	for _, pos := range positions {
		t.Run(string(pos), func(t *testing.T) {
			prefs := Preferences(pos)
			require.Len(t, prefs, Columns*Rows)

			seen := map[string]bool{}
			for _, name := range prefs {
				assert.False(t, seen[name], "duplicate %s", name)
				seen[name] = true
			}
		})
	}

	assert.Equal(t, []string{"center/mid", "center/front", "center/back"}, Preferences(domain.PositionCenter)[:3])
	assert.Equal(t, "center/back", Preferences(domain.PositionTop)[0])
	assert.Equal(t, "center/front", Preferences(domain.PositionBottom)[0])
	assert.Nil(t, Preferences(domain.PositionOffstageLeft))
	assert.Equal(t, Preferences(domain.PositionCenter), Preferences("somewhere"))
}

func TestGrid_BlockedByScenery(t *testing.T) {
	g := NewGrid([]domain.Vec2{{X: 150, Y: 300}})

	blocked := map[string]bool{}
	for _, s := range g.Slots() {
		blocked[s.Name] = s.Blocked
	}
	assert.True(t, blocked["far-left/back"])
	assert.True(t, blocked["far-left/mid"])
	assert.False(t, blocked["far-left/front"])
	assert.False(t, blocked["left/back"])
}

func TestMoveDuration(t *testing.T) {
	assert.Equal(t, MinMoveMS, MoveDuration(domain.Vec2{}, domain.Vec2{X: 10}))
	assert.Equal(t, 1625, MoveDuration(domain.Vec2{X: -150, Y: 400}, domain.Vec2{X: 500, Y: 400}))
	assert.Equal(t, MaxMoveMS, MoveDuration(domain.Vec2{X: -150}, domain.Vec2{X: 1150, Y: 600}))
}
