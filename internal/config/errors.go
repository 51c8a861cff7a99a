// Package config provides configuration types and defaults for glance.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidReadahead indicates a prefetch window size outside the valid range.
	ErrInvalidReadahead = errors.New("readahead window out of range")

	// ErrInvalidMemLimit indicates a non-positive worker memory limit.
	ErrInvalidMemLimit = errors.New("worker memory limit invalid")

	// ErrInvalidStepTime indicates a negative auto-step interval.
	ErrInvalidStepTime = errors.New("step time invalid")

	// ErrInvalidTimeout indicates a negative worker timeout.
	ErrInvalidTimeout = errors.New("worker timeout invalid")
)
