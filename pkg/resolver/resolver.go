package resolver

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/ports"
)

// Resolver turns requests into unresolved stage scripts.
type Resolver struct {
	catalog ports.Catalog
	logger  *slog.Logger
}

// Option defines a functional option for configuring the Resolver.
type Option func(*Resolver)

// WithLogger sets a structured logger. Missing keywords are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a resolver backed by the given catalog.
func New(catalog ports.Catalog, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: catalog,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve is a convenience wrapper around New(catalog).Resolve(req).
func Resolve(catalog ports.Catalog, req domain.Request) *domain.StageScript {
	return New(catalog).Resolve(req)
}

// Resolve expands the request into a stage script. It never fails: unknown keywords
// are appended to Missing and skipped.
func (r *Resolver) Resolve(req domain.Request) *domain.StageScript {
	script := &domain.StageScript{
		Classification: req.Classification,
		Narration:      req.Narration,
		Feedback:       req.Feedback,
		Actions:        make([]domain.Action, 0, len(req.Elements)*2),
	}

	ids := newInstanceCounter()
	effects := newEffectSet()

	for _, el := range req.Elements {
		block, ok := r.catalog.Lookup(el.Keyword)
		if !ok {
			r.logger.Debug("unknown keyword", "keyword", el.Keyword)
			script.Missing = append(script.Missing, el.Keyword)
			continue
		}

		if block.Category == domain.CategoryReactionCombo {
			effects.add(block.Effects...)
			continue
		}

		script.Actions = append(script.Actions, r.expand(block, el, ids)...)
		effects.add(block.Effects...)
	}

	effects.add(req.Effects...)
	for _, tag := range effects.tags {
		script.Actions = append(script.Actions, domain.Action{
			Kind:     domain.KindReact,
			Effect:   tag,
			Position: domain.PositionCenter,
		})
	}

	return script
}

// expand emits the actions for one catalog element.
func (r *Resolver) expand(block domain.ActionBlock, el domain.Element, ids *instanceCounter) []domain.Action {
	hint := ParseHint(el.Hint)
	pos := hint.Position
	if pos == "" {
		pos = domain.PositionCenter
	}

	count := el.Count
	if count < 1 {
		count = 1
	}
	if limit := block.Limit(); count > limit {
		r.logger.Debug("count clamped", "block", block.ID, "requested", el.Count, "max", limit)
		count = limit
	}

	if count > 1 && block.SupportsGroup {
		return []domain.Action{{
			Kind:     domain.KindSpawnGroup,
			Target:   ids.next(block.ID + "-group"),
			Asset:    block.ID,
			Position: pos,
			Members:  spreadMembers(block, count, ids),
		}}
	}

	id := ids.next(block.ID)
	actions := make([]domain.Action, 0, 3)

	style := entranceStyle(block, hint)
	if style != "" {
		actions = append(actions,
			domain.Action{Kind: domain.KindSpawn, Target: id, Asset: block.ID, Position: entrySide(style, pos)},
			domain.Action{Kind: domain.KindMove, Target: id, Position: pos, Style: style},
		)
	} else {
		actions = append(actions, domain.Action{Kind: domain.KindSpawn, Target: id, Asset: block.ID, Position: pos})
	}

	if block.Category == domain.CategoryCharacter && block.DefaultAnimation != "" {
		actions = append(actions, domain.Action{Kind: domain.KindAnimate, Target: id, Animation: block.DefaultAnimation})
	}
	return actions
}

// spreadMembers centres count members around zero, spaced by the block's spread distance.
func spreadMembers(block domain.ActionBlock, count int, ids *instanceCounter) []domain.GroupMember {
	halfWidth := float64(count-1) * block.SpreadDistance / 2
	members := make([]domain.GroupMember, count)
	for i := range members {
		members[i] = domain.GroupMember{
			Target: ids.next(block.ID),
			Offset: -halfWidth + float64(i)*block.SpreadDistance,
		}
	}
	return members
}

// entranceStyle picks the synthesized move style: hint first, then the block default.
func entranceStyle(block domain.ActionBlock, hint Hint) domain.MoveStyle {
	if hint.Still {
		return ""
	}
	if hint.Style != "" {
		return hint.Style
	}
	return block.EnterStyle
}

// entrySide picks the off-stage sentinel an entrance starts from.
func entrySide(style domain.MoveStyle, target domain.Position) domain.Position {
	switch {
	case style == domain.StyleDropIn:
		return domain.PositionOffstageTop
	case target == domain.PositionRight:
		return domain.PositionOffstageRight
	default:
		return domain.PositionOffstageLeft
	}
}

type instanceCounter struct {
	seen map[string]int
}

func newInstanceCounter() *instanceCounter {
	return &instanceCounter{seen: make(map[string]int)}
}

// next returns base for the first instance and base_N afterwards.
func (c *instanceCounter) next(base string) string {
	c.seen[base]++
	if n := c.seen[base]; n > 1 {
		return fmt.Sprintf("%s_%d", base, n)
	}
	return base
}

// effectSet keeps effect tags unique in first-seen order.
type effectSet struct {
	seen map[string]struct{}
	tags []string
}

func newEffectSet() *effectSet {
	return &effectSet{seen: make(map[string]struct{})}
}

func (s *effectSet) add(tags ...string) {
	for _, t := range tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" {
			continue
		}
		if _, dup := s.seen[tag]; dup {
			continue
		}
		s.seen[tag] = struct{}{}
		s.tags = append(s.tags, tag)
	}
}
