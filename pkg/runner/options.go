package runner

import "log/slog"

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLoop restarts the playlist from the top until the run is stopped.
func WithLoop(loop bool) Option {
	return func(c *Controller) {
		c.loop = loop
	}
}

// WithResultHandler is called after every script, from the playback goroutine.
func WithResultHandler(fn func(Result)) Option {
	return func(c *Controller) {
		c.onResult = fn
	}
}
