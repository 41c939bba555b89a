package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/player"
)

// ErrAlreadyRunning is returned by Start while a run is in progress.
var ErrAlreadyRunning = errors.New("controller is already running")

// ErrNotStarted is returned by Wait before Start.
var ErrNotStarted = errors.New("controller was not started")

// Player is the playback surface the controller drives. *player.Player implements it.
type Player interface {
	Play(ctx context.Context, script *domain.StagedScript) (*player.Report, error)
	Clear()
}

var _ Player = (*player.Player)(nil)

// Result is what happened to one playlist entry.
type Result struct {
	Index    int
	ScriptID string
	Report   *player.Report

	// Skipped is set when Skip cut the script short.
	Skipped bool
	Err     error
}

// Controller runs a playlist on one player.
type Controller struct {
	player   Player
	playlist []*domain.StagedScript
	loop     bool
	onResult func(Result)
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stop    context.CancelFunc
	skip    context.CancelFunc
	done    chan struct{}
	parent  context.Context
	results []Result
}

// New creates a controller over playlist. The playlist is not copied; scripts must
// not be mutated while a run is in progress.
func New(p Player, playlist []*domain.StagedScript, opts ...Option) *Controller {
	c := &Controller{
		player:   p,
		playlist: playlist,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins playback in a background goroutine and returns immediately.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrAlreadyRunning
	}

	runCtx, stop := context.WithCancel(ctx)
	c.running = true
	c.stop = stop
	c.skip = nil
	c.parent = ctx
	c.results = nil
	c.done = make(chan struct{})

	go c.loopPlaylist(runCtx, c.done)
	return nil
}

// Run is Start followed by Wait.
func (c *Controller) Run(ctx context.Context) ([]Result, error) {
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	return c.Wait()
}

// Stop ends the run after the current action; the stage is cleared. Safe to call
// at any time.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		c.stop()
	}
}

// Skip cuts the script in flight short and moves on to the next one.
func (c *Controller) Skip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.skip != nil {
		c.skip()
	}
}

// Running reports whether a run is in progress.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Wait blocks until the run ends and returns one result per script played.
// A looping run keeps only the most recent result of each playlist entry.
// The error is the parent context's error when that context ended the run.
func (c *Controller) Wait() ([]Result, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil, ErrNotStarted
	}
	<-done

	c.mu.Lock()
	defer c.mu.Unlock()
	results := append([]Result(nil), c.results...)
	return results, c.parent.Err()
}

func (c *Controller) loopPlaylist(ctx context.Context, done chan struct{}) {
	defer func() {
		c.mu.Lock()
		c.running = false
		c.stop()
		c.skip = nil
		c.mu.Unlock()
		close(done)
	}()

	c.logger.Info("playlist started", "scripts", len(c.playlist), "loop", c.loop)

	for {
		for i, script := range c.playlist {
			if ctx.Err() != nil {
				c.logger.Info("playlist stopped", "at", i)
				return
			}
			c.record(c.playOne(ctx, i, script))
		}
		if !c.loop || len(c.playlist) == 0 {
			c.logger.Info("playlist finished")
			return
		}
	}
}

func (c *Controller) playOne(ctx context.Context, index int, script *domain.StagedScript) Result {
	scriptCtx, skip := context.WithCancel(ctx)
	defer skip()

	c.mu.Lock()
	c.skip = skip
	c.mu.Unlock()

	report, err := c.player.Play(scriptCtx, script)
	c.player.Clear()

	res := Result{Index: index, ScriptID: script.ID, Report: report}
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) && ctx.Err() == nil:
		res.Skipped = true
		c.logger.Info("script skipped", "index", index, "script", script.ID)
	default:
		res.Err = err
		if ctx.Err() == nil {
			c.logger.Warn("script did not play", "index", index, "script", script.ID, "error", err)
		}
	}
	return res
}

func (c *Controller) record(res Result) {
	c.mu.Lock()
	c.results = append(c.results, res)
	if c.loop && len(c.results) > len(c.playlist) {
		n := copy(c.results, c.results[len(c.results)-len(c.playlist):])
		c.results = c.results[:n]
	}
	c.mu.Unlock()

	if c.onResult != nil {
		c.onResult(res)
	}
}
