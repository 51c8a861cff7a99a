// Package glance provides a Go library for viewing image playlists with
// bounded-concurrency prefetch.
//
// Glance decodes images in sandboxed worker processes, keeps at most a
// configurable window of decodes in flight ahead of the cursor, and
// reaps workers that exceed their time budget so one hostile file never
// stalls the playlist.
//
// Basic usage:
//
//	viewer, err := glance.New(
//	    glance.WithLoop(),
//	    glance.WithStepTime(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := viewer.View(nil, "a.png", "b.jpg"); err != nil {
//	    log.Fatal(err)
//	}
package glance

import (
	"github.com/mward/glance/internal/config"
	"github.com/mward/glance/internal/display/term"
	"github.com/mward/glance/internal/imgload"
	"github.com/mward/glance/internal/playlist"
	"github.com/mward/glance/internal/reporter"
	"github.com/mward/glance/internal/session"
)

// Reporter receives session lifecycle events. Pass nil to View for a
// silent session.
type Reporter = reporter.Reporter

// NewTerminalReporter returns a Reporter that prints session progress to
// stderr.
func NewTerminalReporter() Reporter {
	return reporter.NewTerminalReporter()
}

// Viewer is the main entry point for playlist viewing.
type Viewer struct {
	config *config.Config
}

// Option configures the viewer.
type Option func(*config.Config)

// New creates a new Viewer with the given options.
func New(opts ...Option) (*Viewer, error) {
	cfg := config.Default()

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Viewer{config: cfg}, nil
}

// WithLoop wraps playlist navigation at both ends instead of clamping.
func WithLoop() Option {
	return func(c *config.Config) {
		c.Loop = true
	}
}

// WithReadahead sets the prefetch window: the number of playlist entries
// that may have an outstanding decode worker at once.
func WithReadahead(n int) Option {
	return func(c *config.Config) {
		c.Readahead = n
	}
}

// WithMemLimit sets the per-worker address-space limit in megabytes.
func WithMemLimit(mb int) Option {
	return func(c *config.Config) {
		c.MemLimitMB = mb
	}
}

// WithStepTime enables automatic stepping every secs seconds.
func WithStepTime(secs int) Option {
	return func(c *config.Config) {
		c.StepTimeSecs = secs
	}
}

// WithWorkerTimeout kills decode workers that run longer than secs
// seconds and marks their entries broken. Zero disables the reaper.
func WithWorkerTimeout(secs int) Option {
	return func(c *config.Config) {
		c.TimeoutSecs = secs
	}
}

// WithAspect preserves source aspect ratio when scaling to the output.
func WithAspect() Option {
	return func(c *config.Config) {
		c.Aspect = true
	}
}

// WithServerSize keeps the display at the server-suggested geometry
// instead of resizing to each image.
func WithServerSize() Option {
	return func(c *config.Config) {
		c.ServerSize = true
	}
}

// WithBlockInput ignores all input events, for kiosk-style sessions.
func WithBlockInput() Option {
	return func(c *config.Config) {
		c.BlockInput = true
	}
}

// WithoutSandbox disables decode worker resource limits.
func WithoutSandbox() Option {
	return func(c *config.Config) {
		c.DisableSandbox = true
	}
}

// WithDisplayPath overrides the display connection path.
func WithDisplayPath(path string) Option {
	return func(c *config.Config) {
		c.DisplayPath = path
	}
}

// View runs a viewing session over the given playlist until the user
// quits or the display connection is lost. A name of "-" reads one image
// from standard input. The reporter may be nil.
func (v *Viewer) View(rep Reporter, names ...string) error {
	entries, err := playlist.Build(names)
	if err != nil {
		return err
	}

	d, err := term.Open(v.config.DisplayPath)
	if err != nil {
		return err
	}
	defer d.Close()

	if rep == nil {
		rep = reporter.NullReporter{}
	}

	loader := imgload.New(v.config.MemLimitMB, !v.config.DisableSandbox)
	return session.Run(v.config, d, rep, loader, entries)
}
