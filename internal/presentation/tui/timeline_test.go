package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/vignette/pkg/adapters/rehearsal"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/player"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestTimeline_Script(t *testing.T) {
	var buf bytes.Buffer
	NewTimeline(&buf, termenv.Ascii).Script(&domain.StagedScript{
		Scene: "park",
		Actions: []domain.StagedAction{
			{Action: domain.Action{Kind: domain.KindSpawn, Target: "cat", Asset: "cat", DelayMS: 400}, At: domain.Vec2{X: 500, Y: 400}, Slot: "center/mid"},
			{Action: domain.Action{Kind: domain.KindMove, Target: "cat", Style: domain.StyleWalk, DurationMS: 900}, At: domain.Vec2{X: 325, Y: 400}},
		},
		Missing: []string{"unicorn"},
		Notes:   []string{"grid full"},
	})

	out := buf.String()
	assert.Contains(t, out, "script (unsaved)  scene=park  actions=2")
	assert.Contains(t, out, "at (500,400) slot=center/mid +400ms")
	assert.Contains(t, out, "style=walk 900ms")
	assert.Contains(t, out, "missing: unicorn")
	assert.Contains(t, out, "note: grid full")
}

func TestTimeline_Events(t *testing.T) {
	var buf bytes.Buffer
	NewTimeline(&buf, termenv.Ascii).Events([]rehearsal.Event{
		{At: 0, Op: rehearsal.OpSpawn, Handle: 1, Visual: &domain.Visual{Label: "cat", Placeholder: true}, Position: domain.Vec2{X: 500, Y: 400}},
		{At: 0, Op: rehearsal.OpTween, Tweens: []domain.Tween{
			{Target: 1, Property: domain.PropX, Duration: 800 * time.Millisecond},
			{Target: 1, Property: domain.PropY, Duration: 800 * time.Millisecond},
			{Target: 1, Property: domain.PropX, Duration: 200 * time.Millisecond},
		}},
		{At: 800 * time.Millisecond, Op: rehearsal.OpWait, Duration: 1500 * time.Millisecond},
		{At: 2300 * time.Millisecond, Op: rehearsal.OpSound, Sound: "meow", Missed: true},
		{At: 2300 * time.Millisecond, Op: rehearsal.OpDestroy, Handle: 1},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "#1 cat (placeholder) at (500,400)")
	assert.Contains(t, lines[1], "#1 x,y 800ms")
	assert.Contains(t, lines[2], "1.50s")
	assert.Contains(t, lines[3], "meow (not loaded)")
	assert.Contains(t, lines[4], "2.30s")
}

func TestTimeline_Report(t *testing.T) {
	var buf bytes.Buffer
	NewTimeline(&buf, termenv.Ascii).Report(&player.Report{Outcomes: []domain.Outcome{
		{Index: 0, Kind: domain.KindSpawn, Target: "cat", Status: domain.OutcomeSucceeded},
		{Index: 1, Kind: domain.KindAnimate, Target: "ghost", Status: domain.OutcomeSkipped, Reason: "target not spawned"},
		{Index: 2, Kind: domain.KindMove, Target: "cat", Status: domain.OutcomeFailed, Reason: "handler panic: boom"},
	}})

	out := buf.String()
	assert.NotContains(t, out, "  0  ")
	assert.Contains(t, out, "target not spawned")
	assert.Contains(t, out, "handler panic: boom")
	assert.Contains(t, out, "1 succeeded, 1 skipped, 1 failed")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii, "0.3.0\n")
	assert.Contains(t, buf.String(), "v0.3.0")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPlain(t *testing.T) {
	out, err := Plain("  **hi**  ")
	assert.NoError(t, err)
	assert.Equal(t, "**hi**\n", out)
}
