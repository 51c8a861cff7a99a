package sched

import (
	"github.com/mward/glance/internal/logging"
	"github.com/mward/glance/internal/playlist"
	"github.com/mward/glance/internal/reporter"
)

// PollAll sweeps every slot with an outstanding worker and reaps the
// finished ones, so window accounting reflects completions before any
// window recomputation. With tick set, still-pending workers also burn
// one unit of liveness; a worker that exhausts its budget is force-reset
// and its entry poisoned.
func (s *State) PollAll(tick bool) {
	for i := 0; i < len(s.Playlist) && s.windowPending > 0; i++ {
		e := s.Playlist[i]
		if !e.HasWorker() {
			continue
		}

		if s.loader.Poll(e) {
			if e.Stdin {
				s.stdinPending = false
			}
			e.Life = 0
			s.windowPending--
			s.reportResult(e)
			continue
		}

		if tick && e.Life > 0 {
			e.Life--
			if e.Life == 0 && !e.Ready() {
				logging.Warn("decode worker timed out", "entry", e.Name)
				s.report.WorkerTimeout(e.Name)
				s.Release(e)
				e.Life = playlist.LifePoisoned
			}
		}
	}
}

// Release destroys the entry's worker handle and clears the pending
// accounting attached to it. An already-released entry is left alone,
// and a poison mark always survives.
func (s *State) Release(e *playlist.Entry) {
	if e.HasWorker() {
		s.loader.Reset(e)
		s.windowPending--
		if e.Stdin {
			s.stdinPending = false
		}
	}
	e.Clear()
}

func (s *State) reportResult(e *playlist.Entry) {
	if e.Image == nil {
		return
	}
	if e.Image.Broken {
		s.report.EntryFailed(e.Name, e.Image.Msg)
		return
	}
	s.report.EntryReady(reporter.EntryInfo{
		Name:   e.Name,
		Width:  e.Image.W,
		Height: e.Image.H,
		Bytes:  uint64(len(e.Image.Pix)),
	})
}
