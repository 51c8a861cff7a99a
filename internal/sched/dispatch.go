package sched

import "github.com/mward/glance/internal/logging"

// TryStart dispatches a decode worker onto slot ind. A slot is eligible
// when it has never been filled and is not poisoned, or when its worker
// is still outstanding (in which case the loader declines, keeping the
// one-handle-per-entry invariant). A stdin slot additionally requires
// that no other entry holds the stream claim. Returns false with no side
// effects when any precondition fails or the loader declines.
func (s *State) TryStart(ind int) bool {
	e := s.Playlist[ind]

	startable := (!e.Dispatched() && !e.Poisoned()) || (e.HasWorker() && !e.Ready())
	if !startable {
		return false
	}
	if e.Stdin && s.stdinPending {
		return false
	}
	if !s.loader.Spawn(e) {
		return false
	}

	if e.Stdin {
		s.stdinPending = true
	}
	s.windowPending++
	e.Life = s.TimeoutTicks
	s.report.EntryQueued(e.Name, s.windowPending)
	logging.Debug("queued decode",
		"entry", e.Name, "index", ind, "pending", s.windowPending)
	return true
}

// AdvanceWindow fills worker slots circularly starting at from. The walk
// keeps going only while the slot at from is itself dispatched, so the
// prefetch queue can never stall the item the user is waiting on, and
// stops as soon as the window is full or the walk comes back around.
func (s *State) AdvanceWindow(from int) {
	n := len(s.Playlist)
	if n == 0 {
		return
	}

	i := from
	for s.windowPending < s.WindowLimit {
		s.TryStart(i)
		i = (i + 1) % n
		if !s.Playlist[from].Dispatched() || i == from {
			break
		}
	}
}
