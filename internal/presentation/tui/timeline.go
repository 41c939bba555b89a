package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/vignette/pkg/adapters/rehearsal"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/player"
	"github.com/muesli/termenv"
)

var opColors = map[rehearsal.Op]string{
	rehearsal.OpSpawn:   "#34d399",
	rehearsal.OpDestroy: "#f87171",
	rehearsal.OpTween:   "#60a5fa",
	rehearsal.OpWait:    "#9ca3af",
	rehearsal.OpSound:   "#fbbf24",
}

var statusColors = map[domain.OutcomeStatus]string{
	domain.OutcomeSucceeded: "#34d399",
	domain.OutcomeSkipped:   "#fbbf24",
	domain.OutcomeFailed:    "#f87171",
}

// Timeline prints staged scripts, rehearsal recordings and playback reports.
type Timeline struct {
	out     io.Writer
	profile termenv.Profile
}

// NewTimeline writes to out, colouring with profile. Use termenv.Ascii for plain text.
func NewTimeline(out io.Writer, profile termenv.Profile) *Timeline {
	return &Timeline{out: out, profile: profile}
}

func (t *Timeline) paint(s, hex string) termenv.Style {
	return t.profile.String(s).Foreground(t.profile.Color(hex))
}

// Script prints one line per staged action.
func (t *Timeline) Script(s *domain.StagedScript) {
	title := s.ID
	if title == "" {
		title = "(unsaved)"
	}
	fmt.Fprintf(t.out, "script %s  scene=%s  actions=%d\n", title, orDash(s.Scene), len(s.Actions))

	for i, a := range s.Actions {
		fmt.Fprintf(t.out, "%3d  %-11s %-14s %s\n", i, a.Kind, orDash(a.Target), describe(a))
	}
	if len(s.Missing) > 0 {
		fmt.Fprintf(t.out, "missing: %s\n", strings.Join(s.Missing, ", "))
	}
	for _, n := range s.Notes {
		fmt.Fprintf(t.out, "note: %s\n", n)
	}
}

func describe(a domain.StagedAction) string {
	var parts []string
	switch a.Kind {
	case domain.KindSpawn, domain.KindMove, domain.KindReact:
		parts = append(parts, fmt.Sprintf("at (%.0f,%.0f)", a.At.X, a.At.Y))
	case domain.KindSpawnGroup:
		for _, m := range a.Placed {
			parts = append(parts, fmt.Sprintf("%s@(%.0f,%.0f)", m.Target, m.At.X, m.At.Y))
		}
	}
	if a.Slot != "" {
		parts = append(parts, "slot="+a.Slot)
	}
	for _, kv := range [][2]string{
		{"style", string(a.Style)},
		{"anim", a.Animation},
		{"effect", a.Effect},
		{"text", a.Text},
		{"sound", a.Sound},
	} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	if a.DelayMS > 0 {
		parts = append(parts, fmt.Sprintf("+%dms", a.DelayMS))
	}
	if a.DurationMS > 0 {
		parts = append(parts, fmt.Sprintf("%dms", a.DurationMS))
	}
	return strings.Join(parts, " ")
}

// Events prints a rehearsal recording, one primitive per line.
func (t *Timeline) Events(events []rehearsal.Event) {
	for _, e := range events {
		stamp := fmt.Sprintf("%7s", formatClock(e.At))
		op := t.paint(fmt.Sprintf("%-7s", e.Op), opColors[e.Op])
		fmt.Fprintf(t.out, "%s  %s  %s\n", stamp, op, eventDetail(e))
	}
}

func eventDetail(e rehearsal.Event) string {
	switch e.Op {
	case rehearsal.OpSpawn:
		label := ""
		if e.Visual != nil {
			label = e.Visual.Label
			if label == "" {
				label = e.Visual.Asset
			}
			if e.Visual.Placeholder {
				label += " (placeholder)"
			}
		}
		return fmt.Sprintf("#%d %s at (%.0f,%.0f)", e.Handle, label, e.Position.X, e.Position.Y)
	case rehearsal.OpDestroy:
		if e.Missed {
			return fmt.Sprintf("#%d (unknown)", e.Handle)
		}
		return fmt.Sprintf("#%d", e.Handle)
	case rehearsal.OpTween:
		return tweenSummary(e.Tweens)
	case rehearsal.OpWait:
		return formatClock(e.Duration)
	case rehearsal.OpSound:
		if e.Missed {
			return e.Sound + " (not loaded)"
		}
		return e.Sound
	}
	return ""
}

// tweenSummary groups a batch by handle: "#3 x,y 800ms; #4 alpha 300ms".
func tweenSummary(tweens []domain.Tween) string {
	type entry struct {
		props []string
		dur   time.Duration
	}
	byHandle := map[domain.Handle]*entry{}
	var order []domain.Handle
	for _, tw := range tweens {
		e, ok := byHandle[tw.Target]
		if !ok {
			e = &entry{}
			byHandle[tw.Target] = e
			order = append(order, tw.Target)
		}
		e.props = append(e.props, string(tw.Property))
		if tw.Duration > e.dur {
			e.dur = tw.Duration
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	parts := make([]string, len(order))
	for i, h := range order {
		e := byHandle[h]
		parts[i] = fmt.Sprintf("#%d %s %s", h, strings.Join(dedupe(e.props), ","), formatClock(e.dur))
	}
	return strings.Join(parts, "; ")
}

// Report prints per-action outcomes that were not successes and a summary line.
func (t *Timeline) Report(r *player.Report) {
	for _, o := range r.Problems() {
		status := t.paint(fmt.Sprintf("%-9s", o.Status), statusColors[o.Status])
		fmt.Fprintf(t.out, "%3d  %s %-11s %-14s %s\n", o.Index, status, o.Kind, orDash(o.Target), o.Reason)
	}
	fmt.Fprintf(t.out, "%d succeeded, %d skipped, %d failed\n",
		r.Count(domain.OutcomeSucceeded), r.Count(domain.OutcomeSkipped), r.Count(domain.OutcomeFailed))
}

func formatClock(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
