// Package display defines the connection to the compositing backend and
// the events it delivers to the scheduler loop.
package display

import "image"

// Keysym identifies a key independent of the backend's raw encoding. Only
// the keys referenced by default bindings and navigation need symbols.
type Keysym int

const (
	KeyNone Keysym = iota
	KeyLeft
	KeyRight
	KeySpace
	KeyTab
	KeyEscape
	KeyH
	KeyL
	KeyZ
	KeyM
	KeyA
	KeyQ
	KeyPlus
	KeyMinus
	KeyF1
	KeyF2
	KeyF5
	KeyF6
)

// EventKind discriminates scheduler loop events.
type EventKind int

const (
	// EventInput is a digital or translated input action.
	EventInput EventKind = iota
	// EventHint carries a server-suggested geometry.
	EventHint
	// EventTick is the periodic scheduler clock.
	EventTick
	// EventTerminate requests shutdown.
	EventTerminate
)

// Event is one backend event. Input events carry a label when the backend
// knows the bound action, otherwise a keysym; lookup tries the label first.
type Event struct {
	Kind EventKind

	// Input fields
	Label  string
	Sym    Keysym
	Active bool
	Mouse  bool

	// Hint fields
	Width, Height int
}

// Display is the compositing backend consumed by the session loop.
// Implementations never retain a presented frame past the Present call.
type Display interface {
	// Size returns the current output geometry in pixels.
	Size() (w, h int)

	// Resize negotiates a new output geometry. It returns false when the
	// backend rejects the request, leaving the previous geometry in effect.
	Resize(w, h int) bool

	// Present hands off a composited frame synchronously.
	Present(frame *image.RGBA)

	// SetStatus publishes an advisory identity/progress line.
	SetStatus(prefix, text string)

	// AnnounceAction advertises a supported input action and its default
	// binding so the backend can translate raw input into labels.
	AnnounceAction(label, defaultKey string)

	// WaitEvent blocks for the next event. It returns false when the
	// connection is lost, which terminates the session.
	WaitEvent() (Event, bool)

	// PollEvent returns the next queued event without blocking.
	PollEvent() (Event, bool)

	// Close releases the connection.
	Close() error
}
