// Package config provides configuration types and defaults for glance.
package config

import (
	"fmt"
	"time"
)

// Default constants
const (
	// DefaultReadahead is the number of playlist entries that may have an
	// outstanding decode worker at the same time.
	DefaultReadahead = 5

	// DefaultMemLimitMB is the per-worker memory limit in megabytes.
	DefaultMemLimitMB = 64

	// TickInterval is the period of the scheduler clock. Seconds-valued
	// flags are converted to ticks with TicksPerSecond.
	TickInterval = 200 * time.Millisecond

	// TicksPerSecond is the number of scheduler ticks in one second.
	TicksPerSecond = 5

	// MaxReadahead bounds the prefetch window; a larger window only wastes
	// worker processes.
	MaxReadahead = 64

	// MaxZoom is the largest integer scale factor the blitter accepts.
	MaxZoom = 32
)

// Config holds all configuration for a viewing session.
type Config struct {
	// Playlist behavior
	Loop         bool // wrap navigation at playlist ends
	Readahead    int  // prefetch window limit
	StepTimeSecs int  // auto-step interval in seconds, 0 disables

	// Decode worker limits
	MemLimitMB     int  // address-space limit per worker, in MB
	TimeoutSecs    int  // worker kill timeout in seconds, 0 disables
	DisableSandbox bool // skip worker resource limits

	// Display behavior
	ServerSize  bool   // follow server-suggested geometry instead of source size
	Aspect      bool   // preserve aspect ratio when scaling
	BlockInput  bool   // ignore input events
	DisplayPath string // display connection override, empty for the default
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Readahead:  DefaultReadahead,
		MemLimitMB: DefaultMemLimitMB,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Readahead < 1 || c.Readahead > MaxReadahead {
		return fmt.Errorf("%w: must be 1-%d, got %d", ErrInvalidReadahead, MaxReadahead, c.Readahead)
	}

	if c.MemLimitMB < 1 {
		return fmt.Errorf("%w: must be at least 1 MB, got %d", ErrInvalidMemLimit, c.MemLimitMB)
	}

	if c.StepTimeSecs < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidStepTime, c.StepTimeSecs)
	}

	if c.TimeoutSecs < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidTimeout, c.TimeoutSecs)
	}

	return nil
}

// StepTicks returns the auto-step interval in scheduler ticks.
func (c *Config) StepTicks() int {
	return c.StepTimeSecs * TicksPerSecond
}

// TimeoutTicks returns the worker kill timeout in scheduler ticks.
func (c *Config) TimeoutTicks() int {
	return c.TimeoutSecs * TicksPerSecond
}
