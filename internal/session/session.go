// Package session drives the single-threaded viewer loop: block for one
// event, flush the burst, poll workers, and recompose on any change.
package session

import (
	"image"

	"github.com/mward/glance/internal/blit"
	"github.com/mward/glance/internal/config"
	"github.com/mward/glance/internal/display"
	"github.com/mward/glance/internal/input"
	"github.com/mward/glance/internal/logging"
	"github.com/mward/glance/internal/playlist"
	"github.com/mward/glance/internal/reporter"
	"github.com/mward/glance/internal/sched"
)

// Run drives a viewing session until the backend requests termination or
// the display connection is lost. Both are normal exits; every other
// failure mode is local to an entry and non-fatal.
func Run(cfg *config.Config, d display.Display, rep reporter.Reporter, loader sched.Loader, entries []*playlist.Entry) error {
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	st := sched.New(cfg, entries, loader, rep)
	st.Display = d

	rep.SessionStart(reporter.SessionInfo{
		Entries:      len(entries),
		Window:       st.WindowLimit,
		TimeoutTicks: st.TimeoutTicks,
		StepTicks:    st.StepTicks,
		Loop:         st.Loop,
	})
	defer rep.SessionEnd()

	for _, b := range input.Bindings() {
		d.AnnounceAction(b.Label, b.DefaultKey)
	}

	// Dispatch the first window while the display settles.
	st.SetPos(0)

	s := &loop{d: d, st: st, rep: rep}
	s.compose()
	return s.run()
}

type loop struct {
	d   display.Display
	st  *sched.State
	rep reporter.Reporter

	current *playlist.Entry
	shown   bool // current entry has been activated on the display
}

func (s *loop) run() error {
	for {
		cur := s.st.Current()
		if cur == nil {
			return nil
		}
		if cur != s.current {
			s.current = cur
			s.shown = false
		}
		if !s.shown {
			s.refresh(cur)
		}
		s.st.PollAll(false)

		ev, ok := s.d.WaitEvent()
		if !ok {
			logging.Info("display connection closed")
			return nil
		}
		dirty, quit := s.handle(ev)
		if quit {
			return nil
		}
		for {
			ev, ok := s.d.PollEvent()
			if !ok {
				break
			}
			d2, q2 := s.handle(ev)
			dirty = dirty || d2
			if q2 {
				return nil
			}
		}
		s.st.PollAll(false)

		// Recompose in place for changes to an already-shown entry
		// (aspect, zoom, geometry). A cursor move is picked up at the
		// top of the loop instead, and a still-pending entry keeps the
		// previous frame until its slot resolves.
		if dirty {
			if cur := s.st.Current(); cur == s.current && s.shown && cur != nil && cur.Ready() {
				s.compose()
			}
		}
	}
}

// refresh brings the display in line with the current entry: activate it
// when its decode has resolved, otherwise surface a loading status.
func (s *loop) refresh(cur *playlist.Entry) {
	if !cur.Dispatched() && !cur.Poisoned() {
		// Spawn was declined earlier (resource pressure); retry now.
		s.st.AdvanceWindow(s.st.Cursor)
	}

	switch {
	case cur.Ready():
		s.shown = true
		s.activate(cur)
	case cur.Poisoned():
		s.shown = true
		s.d.SetStatus("timed out: ", cur.Name)
		s.compose()
	default:
		s.d.SetStatus("loading: ", cur.Name)
	}
}

// activate negotiates geometry for a ready entry and composes it.
func (s *loop) activate(cur *playlist.Entry) {
	img := cur.Image
	if img.Broken {
		s.d.SetStatus(img.Msg+": ", cur.Name)
		s.compose()
		return
	}

	if s.st.SourceSize {
		w, h, ok := display.Negotiate(s.d, img.W, img.H)
		if !ok {
			s.rep.GeometryFallback(img.W, img.H)
			logging.Warn("geometry negotiation abandoned",
				"entry", cur.Name, "width", img.W, "height", img.H)
		} else {
			logging.Debug("window resized", "width", w, "height", h)
		}
	}

	s.d.SetStatus("", cur.Name)
	s.compose()
}

// compose renders the current entry, or the pad color when nothing is
// displayable, into a fresh frame and hands it off.
func (s *loop) compose() {
	w, h := s.d.Size()
	if w <= 0 || h <= 0 {
		return
	}
	frame := image.NewRGBA(image.Rect(0, 0, w, h))

	var img *playlist.Image
	if cur := s.st.Current(); cur != nil && cur.Ready() {
		img = cur.Image
	}
	blit.Compose(frame, img, blit.Options{Aspect: s.st.Aspect, Zoom: s.st.Zoom})
	s.d.Present(frame)
}

func (s *loop) handle(ev display.Event) (dirty, quit bool) {
	switch ev.Kind {
	case display.EventInput:
		return input.Dispatch(ev, s.st), false

	case display.EventHint:
		if ev.Width <= 0 || ev.Height <= 0 {
			return false, false
		}
		s.st.OutW, s.st.OutH = ev.Width, ev.Height
		if s.st.SourceSize {
			return false, false
		}
		return s.d.Resize(ev.Width, ev.Height), false

	case display.EventTick:
		return s.st.Tick(), false

	case display.EventTerminate:
		return false, true
	}
	return false, false
}
