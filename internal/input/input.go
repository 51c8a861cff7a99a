// Package input maps abstract input labels and keysyms onto scheduler
// state transitions.
package input

import (
	"github.com/mward/glance/internal/config"
	"github.com/mward/glance/internal/display"
	"github.com/mward/glance/internal/sched"
)

// Handler mutates scheduler state for one action. The return value
// reports whether the visible frame became stale and must be
// recomposited.
type Handler func(*sched.State) bool

// Binding ties an action label to its handler, default key and fallback
// keysym.
type Binding struct {
	Label      string
	Descr      string
	DefaultKey string
	Sym        display.Keysym
	Fn         Handler
}

// bindings is the fixed dispatch table. Lookup goes by label first and
// falls back to the keysym when the event carries no label.
var bindings = []Binding{
	{"PREV", "Step to previous entry in playlist", "LEFT", display.KeyH, stepPrev},
	{"NEXT", "Step to next entry in playlist", "RIGHT", display.KeyL, stepNext},
	{"PL_TOGGLE", "Toggle playlist stepping on/off", "SPACE", display.KeySpace, plToggle},
	{"SOURCE_SIZE", "Resize the window to fit image size", "Z", display.KeyF5, sourceSize},
	{"SERVER_SIZE", "Use the recommended connection size", "M", display.KeyF6, serverSize},
	{"ASPECT_TOGGLE", "Maintain aspect ratio", "A", display.KeyTab, aspectToggle},
	{"ZOOM_IN", "Increment the scale factor (integer)", "+", display.KeyF1, zoomIn},
	{"ZOOM_OUT", "Decrement the scale factor (integer)", "-", display.KeyF2, zoomOut},
}

// Bindings returns the dispatch table for capability announcement.
func Bindings() []Binding {
	return bindings
}

func findLabel(label string) *Binding {
	for i := range bindings {
		if bindings[i].Label == label {
			return &bindings[i]
		}
	}
	return nil
}

func findSym(sym display.Keysym) *Binding {
	if sym == display.KeyNone {
		return nil
	}
	for i := range bindings {
		if bindings[i].Sym == sym {
			return &bindings[i]
		}
	}
	return nil
}

// Dispatch routes an input event to its bound handler. Unbound input is
// ignored and never an error.
func Dispatch(ev display.Event, st *sched.State) bool {
	if st.BlockInput || ev.Mouse || !ev.Active {
		return false
	}

	var b *Binding
	if ev.Label != "" {
		b = findLabel(ev.Label)
	} else {
		b = findSym(ev.Sym)
	}
	if b == nil {
		return false
	}
	return b.Fn(st)
}

func stepNext(st *sched.State) bool {
	st.Next()
	return true
}

func stepPrev(st *sched.State) bool {
	st.Prev()
	return true
}

func plToggle(st *sched.State) bool {
	st.ToggleAutoStep()
	return false
}

func sourceSize(st *sched.State) bool {
	if !st.SourceSize {
		st.SourceSize = true
	}
	return false
}

func serverSize(st *sched.State) bool {
	if !st.SourceSize {
		return false
	}
	st.SourceSize = false
	if st.Display == nil || st.OutW == 0 || st.OutH == 0 {
		return false
	}
	return st.Display.Resize(st.OutW, st.OutH)
}

func aspectToggle(st *sched.State) bool {
	st.Aspect = !st.Aspect
	return true
}

func zoomIn(st *sched.State) bool {
	if st.Zoom >= config.MaxZoom {
		return false
	}
	st.Zoom++
	return true
}

func zoomOut(st *sched.State) bool {
	if st.Zoom <= 1 {
		return false
	}
	st.Zoom--
	return true
}
