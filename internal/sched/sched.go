// Package sched implements the prefetch scheduler over a playlist of
// decode jobs: worker slot accounting, the bounded prefetch window,
// cursor navigation, and the timeout reaper.
//
// Everything here is a pure in-memory state transition driven by one
// logical thread of control. Nothing blocks; waiting happens in the
// display backend between activations.
package sched

import (
	"github.com/mward/glance/internal/config"
	"github.com/mward/glance/internal/display"
	"github.com/mward/glance/internal/playlist"
	"github.com/mward/glance/internal/reporter"
)

// Loader is the decode worker subsystem consumed by the scheduler. All
// three operations return immediately.
type Loader interface {
	// Spawn starts a decode worker for the entry. It returns false with
	// no side effects when the entry already has an outstanding worker
	// or the subsystem declines to start one.
	Spawn(e *playlist.Entry) bool

	// Poll reaps a finished worker. It returns true exactly once per
	// job, at the moment the result (success or failure) is recorded on
	// the entry.
	Poll(e *playlist.Entry) bool

	// Reset force-releases the entry's worker. Idempotent.
	Reset(e *playlist.Entry)
}

// State holds the scheduler for one playlist session.
type State struct {
	Playlist []*playlist.Entry
	Cursor   int

	// Prefetch window accounting.
	WindowLimit   int
	windowPending int
	stdinPending  bool

	// Navigation and timing policy.
	Loop         bool
	TimeoutTicks int
	StepTicks    int
	AutoStep     bool
	stepTimer    int

	// Display-mode state.
	SourceSize bool
	Aspect     bool
	Zoom       int
	BlockInput bool

	// Server-suggested geometry from the most recent display hint.
	OutW, OutH int

	// Display is the negotiated output; handlers use it for geometry
	// requests. Set by the session before any event is dispatched.
	Display display.Display

	loader Loader
	report reporter.Reporter
}

// New creates scheduler state from a validated config.
func New(cfg *config.Config, entries []*playlist.Entry, loader Loader, rep reporter.Reporter) *State {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	steps := cfg.StepTicks()
	return &State{
		Playlist:     entries,
		WindowLimit:  cfg.Readahead,
		Loop:         cfg.Loop,
		TimeoutTicks: cfg.TimeoutTicks(),
		StepTicks:    steps,
		AutoStep:     steps > 0,
		stepTimer:    steps,
		SourceSize:   !cfg.ServerSize,
		Aspect:       cfg.Aspect,
		BlockInput:   cfg.BlockInput,
		Zoom:         1,
		loader:       loader,
		report:       rep,
	}
}

// Current returns the entry under the cursor, or nil for an empty playlist.
func (s *State) Current() *playlist.Entry {
	if len(s.Playlist) == 0 {
		return nil
	}
	return s.Playlist[s.Cursor]
}

// PendingWorkers returns the number of entries counted against the window.
func (s *State) PendingWorkers() int {
	return s.windowPending
}

// StdinClaimed reports whether some entry holds the shared stdin stream.
func (s *State) StdinClaimed() bool {
	return s.stdinPending
}
