// Package errors provides structured error types for glance operations.
package errors

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindDecode represents a decode worker finishing with a failure.
	KindDecode ErrorKind = iota
	// KindTimeout represents a decode worker exceeding its tick budget.
	KindTimeout
	// KindSpawn represents a decode worker that could not be started.
	KindSpawn
	// KindGeometry represents a display geometry negotiation failure.
	KindGeometry
	// KindDisplay represents display connection errors.
	KindDisplay
	// KindPath represents playlist or resource path errors.
	KindPath
	// KindConfig represents configuration validation errors.
	KindConfig
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "Decode error"
	case KindTimeout:
		return "Worker timeout"
	case KindSpawn:
		return "Spawn error"
	case KindGeometry:
		return "Geometry error"
	case KindDisplay:
		return "Display error"
	case KindPath:
		return "Path error"
	case KindConfig:
		return "Configuration error"
	default:
		return "Unknown error"
	}
}

// CoreError is the main error type for glance operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewDecodeError creates an error for a worker that completed with a failure.
func NewDecodeError(name string, underlying error) *CoreError {
	return &CoreError{Kind: KindDecode, Message: name, Underlying: underlying}
}

// NewTimeoutError creates an error for a worker that was force-reset.
func NewTimeoutError(name string) *CoreError {
	return &CoreError{Kind: KindTimeout, Message: name}
}

// NewSpawnError creates an error for a worker that could not be started.
func NewSpawnError(name string, underlying error) *CoreError {
	return &CoreError{Kind: KindSpawn, Message: name, Underlying: underlying}
}

// NewGeometryError creates an error for an abandoned geometry negotiation.
func NewGeometryError(width, height int) *CoreError {
	return &CoreError{Kind: KindGeometry, Message: fmt.Sprintf("no geometry accepted at or below %dx%d", width, height)}
}

// NewDisplayError creates a display connection error.
func NewDisplayError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindDisplay, Message: message, Underlying: underlying}
}

// NewPathError creates a playlist or resource path error.
func NewPathError(message string) *CoreError {
	return &CoreError{Kind: KindPath, Message: message}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message, Underlying: underlying}
}

// IsKind reports whether err is a CoreError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var core *CoreError
	if !errors.As(err, &core) {
		return false
	}
	return core.Kind == kind
}
