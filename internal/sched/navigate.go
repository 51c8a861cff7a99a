package sched

// SetPos moves the cursor to index i and prefetches forward from it.
// Indices past either end wrap when looping and are rejected otherwise;
// a rejected move leaves the cursor and the window untouched and returns
// false. Finished workers are always reaped first so the window is
// recomputed against fresh accounting.
func (s *State) SetPos(i int) bool {
	s.PollAll(false)

	n := len(s.Playlist)
	if n == 0 {
		return false
	}
	if i < 0 {
		if !s.Loop {
			return false
		}
		i = n - 1
	}
	if i >= n {
		if !s.Loop {
			return false
		}
		i = 0
	}

	s.Cursor = i
	s.AdvanceWindow(i)
	return true
}

// Next steps the cursor forward, a no-op at the end unless looping.
func (s *State) Next() bool {
	return s.SetPos(s.Cursor + 1)
}

// Prev steps the cursor backward, a no-op at the start unless looping.
func (s *State) Prev() bool {
	return s.SetPos(s.Cursor - 1)
}

// Tick runs one scheduler clock step: liveness decay for pending workers
// and the auto-step timer. It returns true when auto-stepping moved the
// cursor.
func (s *State) Tick() bool {
	s.PollAll(true)

	if !s.AutoStep || s.StepTicks <= 0 {
		return false
	}
	s.stepTimer--
	if s.stepTimer > 0 {
		return false
	}
	s.stepTimer = s.StepTicks
	return s.Next()
}

// ToggleAutoStep flips automatic stepping and rearms the timer.
func (s *State) ToggleAutoStep() bool {
	s.AutoStep = !s.AutoStep
	s.stepTimer = s.StepTicks
	return s.AutoStep
}
