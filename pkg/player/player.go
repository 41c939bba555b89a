package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/ports"
)

// Player executes staged scripts against one presentation host.
// It plays at most one script at a time; Clear may be called from any goroutine.
type Player struct {
	host    ports.Host
	assets  *AssetRegistry
	motions map[string]Motion
	effects map[string]Effect
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	mu      sync.Mutex
	playing bool
	actors  map[string]*actor
	decor   map[domain.Handle]struct{}
}

// actor is a spawned target and where the player last put it.
type actor struct {
	handle domain.Handle
	at     domain.Vec2
}

// Option defines a functional option for configuring the Player.
type Option func(*Player)

// WithLogger sets a structured logger. Skipped and failed actions are logged as warnings,
// except missing sounds, which are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Player) {
		p.hooks = hooks
	}
}

// WithAssets sets the registry spawned targets are looked up in.
func WithAssets(assets *AssetRegistry) Option {
	return func(p *Player) {
		p.assets = assets
	}
}

// WithMotion registers or replaces a named animate motion.
func WithMotion(name string, m Motion) Option {
	return func(p *Player) {
		p.motions[name] = m
	}
}

// WithEffect registers or replaces a named react effect.
func WithEffect(name string, e Effect) Option {
	return func(p *Player) {
		p.effects[name] = e
	}
}

// New creates an idle player bound to host.
func New(host ports.Host, opts ...Option) *Player {
	p := &Player{
		host:    host,
		assets:  NewAssetRegistry(nil),
		motions: DefaultMotions(),
		effects: DefaultEffects(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		actors:  make(map[string]*actor),
		decor:   make(map[domain.Handle]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Report is the result of one playback.
type Report struct {
	ScriptID string           `json:"script_id,omitempty"`
	Outcomes []domain.Outcome `json:"outcomes"`
	Elapsed  time.Duration    `json:"elapsed"`
}

// Count returns how many outcomes have the given status.
func (r *Report) Count(status domain.OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Problems returns every outcome that did not succeed.
func (r *Report) Problems() []domain.Outcome {
	var out []domain.Outcome
	for _, o := range r.Outcomes {
		if o.Status != domain.OutcomeSucceeded {
			out = append(out, o)
		}
	}
	return out
}

// Playing reports whether a script is in flight.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Play runs every action of script in order and returns once each has been attempted.
// Faulty actions are recorded in the report and never stop the script.
// Play returns ErrAlreadyPlaying while another script is in flight, and ctx.Err() when
// ctx ends before the script does; the remaining actions are then reported as skipped.
func (p *Player) Play(ctx context.Context, script *domain.StagedScript) (*Report, error) {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return nil, domain.ErrAlreadyPlaying
	}
	p.playing = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	start := time.Now()
	report := &Report{ScriptID: script.ID, Outcomes: make([]domain.Outcome, 0, len(script.Actions))}

	if p.hooks.OnScriptStart != nil {
		p.hooks.OnScriptStart(ctx, &domain.ScriptEvent{
			Timestamp: start,
			ScriptID:  script.ID,
			Scene:     script.Scene,
			Actions:   len(script.Actions),
		})
	}

	var playErr error
	for i, a := range script.Actions {
		if err := ctx.Err(); err != nil {
			playErr = err
			for j := i; j < len(script.Actions); j++ {
				report.Outcomes = append(report.Outcomes, domain.Outcome{
					Index:  j,
					Kind:   script.Actions[j].Kind,
					Target: script.Actions[j].Target,
					Status: domain.OutcomeSkipped,
					Reason: "playback canceled",
				})
			}
			break
		}
		report.Outcomes = append(report.Outcomes, p.step(ctx, script.ID, i, a))
	}
	report.Elapsed = time.Since(start)

	if p.hooks.OnScriptEnd != nil {
		p.hooks.OnScriptEnd(ctx, &domain.ScriptEvent{
			Timestamp: time.Now(),
			ScriptID:  script.ID,
			Scene:     script.Scene,
			Actions:   len(script.Actions),
			Outcomes:  report.Outcomes,
		})
	}
	return report, playErr
}

// step waits out the action's delay, dispatches it and classifies the result.
func (p *Player) step(ctx context.Context, scriptID string, index int, a domain.StagedAction) domain.Outcome {
	if p.hooks.OnActionStart != nil {
		p.hooks.OnActionStart(ctx, &domain.ActionEvent{
			Timestamp: time.Now(),
			ScriptID:  scriptID,
			Index:     index,
			Kind:      a.Kind,
			Target:    a.Target,
		})
	}

	start := time.Now()
	err := p.guard(ctx, a)
	out := domain.Outcome{
		Index:   index,
		Kind:    a.Kind,
		Target:  a.Target,
		Status:  domain.OutcomeSucceeded,
		Elapsed: time.Since(start),
	}
	if err != nil {
		out.Reason = err.Error()
		out.Status = domain.OutcomeFailed
		if skippable(err) {
			out.Status = domain.OutcomeSkipped
		}
		level := slog.LevelWarn
		if errors.Is(err, domain.ErrSoundUnavailable) {
			level = slog.LevelDebug
		}
		p.logger.Log(ctx, level, "action not performed",
			"action", a.Kind,
			"index", index,
			"target", a.Target,
			"status", out.Status,
			"reason", out.Reason)
	}

	if p.hooks.OnActionEnd != nil {
		p.hooks.OnActionEnd(ctx, &domain.ActionEvent{
			Timestamp: time.Now(),
			ScriptID:  scriptID,
			Index:     index,
			Kind:      a.Kind,
			Target:    a.Target,
			Outcome:   &out,
		})
	}
	return out
}

// guard contains any panic raised while handling a single action.
func (p *Player) guard(ctx context.Context, a domain.StagedAction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	if d := a.Delay(); d > 0 {
		if err := p.await(ctx, p.host.After(d)); err != nil {
			return err
		}
	}
	return p.dispatch(ctx, a)
}

func (p *Player) dispatch(ctx context.Context, a domain.StagedAction) error {
	switch a.Kind {
	case domain.KindSpawn:
		return p.spawn(ctx, a)
	case domain.KindSpawnGroup:
		return p.spawnGroup(ctx, a)
	case domain.KindMove:
		return p.move(ctx, a)
	case domain.KindAnimate:
		return p.animate(ctx, a)
	case domain.KindReact:
		return p.react(ctx, a)
	case domain.KindEmote:
		return p.emote(ctx, a)
	case domain.KindSFX:
		return p.sfx(a)
	case domain.KindWait:
		return p.await(ctx, p.host.After(a.Duration(defaultWait)))
	case domain.KindRemove:
		return p.remove(ctx, a)
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownKind, a.Kind)
}

// skippable reports whether err is an unresolvable reference rather than a fault.
func skippable(err error) bool {
	return errors.Is(err, domain.ErrTargetNotSpawned) ||
		errors.Is(err, domain.ErrUnknownEffect) ||
		errors.Is(err, domain.ErrSoundUnavailable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Clear destroys everything the player has spawned. It is idempotent and safe to call
// before any Play.
func (p *Player) Clear() {
	p.mu.Lock()
	handles := make([]domain.Handle, 0, len(p.actors)+len(p.decor))
	for _, a := range p.actors {
		handles = append(handles, a.handle)
	}
	for h := range p.decor {
		handles = append(handles, h)
	}
	p.actors = make(map[string]*actor)
	p.decor = make(map[domain.Handle]struct{})
	p.mu.Unlock()

	for _, h := range handles {
		p.host.Destroy(h)
	}
	if len(handles) > 0 {
		p.logger.Debug("stage cleared", "objects", len(handles))
	}
}

// Actors lists the targets currently on stage.
func (p *Player) Actors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.actors))
	for id := range p.actors {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (p *Player) await(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Player) lookup(target string) (actor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.actors[target]
	if !ok {
		return actor{}, fmt.Errorf("%w: %q", domain.ErrTargetNotSpawned, target)
	}
	return *a, nil
}

// track registers a spawned actor, returning the handle it replaces, if any.
func (p *Player) track(target string, h domain.Handle, at domain.Vec2) (domain.Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev, ok := p.actors[target]
	p.actors[target] = &actor{handle: h, at: at}
	if !ok {
		return 0, false
	}
	return prev.handle, true
}

func (p *Player) moved(target string, at domain.Vec2) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if a, ok := p.actors[target]; ok {
		a.at = at
	}
}

// evict drops target from the registry and reports whether it was still there.
func (p *Player) evict(target string, h domain.Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.actors[target]
	if !ok || a.handle != h {
		return false
	}
	delete(p.actors, target)
	return true
}

func (p *Player) addDecor(h domain.Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.decor[h] = struct{}{}
}

// dropDecor destroys h unless Clear already did.
func (p *Player) dropDecor(h domain.Handle) {
	p.mu.Lock()
	_, ok := p.decor[h]
	delete(p.decor, h)
	p.mu.Unlock()
	if ok {
		p.host.Destroy(h)
	}
}
