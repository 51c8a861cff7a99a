package sched

import (
	"testing"

	"github.com/mward/glance/internal/config"
	"github.com/mward/glance/internal/playlist"
)

type fakeJob struct{ done bool }

func (j *fakeJob) Done() bool { return j.done }

// fakeLoader mimics the decode subsystem: Spawn attaches a job handle,
// Poll reaps it once the test marks it done.
type fakeLoader struct {
	decline bool
	broken  map[string]bool
	spawns  []string
	resets  int
}

func (l *fakeLoader) Spawn(e *playlist.Entry) bool {
	if l.decline || e.Worker != nil {
		return false
	}
	e.Worker = &fakeJob{}
	l.spawns = append(l.spawns, e.Name)
	return true
}

func (l *fakeLoader) Poll(e *playlist.Entry) bool {
	j := e.Worker.(*fakeJob)
	if !j.done {
		return false
	}
	img := &playlist.Image{W: 1, H: 1, Pix: []byte{0, 0, 0, 255}, Ready: true}
	if l.broken[e.Name] {
		img.Broken = true
		img.Msg = "decode failed"
	}
	e.Image = img
	e.Worker = nil
	return true
}

func (l *fakeLoader) Reset(e *playlist.Entry) {
	l.resets++
	e.Worker = nil
	e.Image = nil
}

func finish(e *playlist.Entry) {
	e.Worker.(*fakeJob).done = true
}

func newState(t *testing.T, names []string, mod func(*config.Config)) (*State, *fakeLoader) {
	t.Helper()
	cfg := config.Default()
	if mod != nil {
		mod(cfg)
	}
	entries, err := playlist.Build(names)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	loader := &fakeLoader{broken: map[string]bool{}}
	return New(cfg, entries, loader, nil), loader
}

func TestInitialWindowScenario(t *testing.T) {
	// N=3, W=2: entries 0 and 1 dispatch, entry 2 stays idle until one
	// of the first two completes.
	st, loader := newState(t, []string{"a", "b", "c"}, func(c *config.Config) {
		c.Readahead = 2
	})

	if !st.SetPos(0) {
		t.Fatal("SetPos(0) should succeed")
	}
	if got := st.PendingWorkers(); got != 2 {
		t.Fatalf("pending = %d, want 2", got)
	}
	if len(loader.spawns) != 2 || loader.spawns[0] != "a" || loader.spawns[1] != "b" {
		t.Fatalf("spawned %v, want [a b]", loader.spawns)
	}
	if st.Playlist[2].Dispatched() {
		t.Error("entry 2 should stay idle while the window is full")
	}

	finish(st.Playlist[0])
	st.PollAll(false)
	st.AdvanceWindow(st.Cursor)

	if !st.Playlist[2].Dispatched() {
		t.Error("entry 2 should dispatch once a slot frees up")
	}
	if got := st.PendingWorkers(); got != 2 {
		t.Errorf("pending = %d, want 2 after refill", got)
	}
}

func TestWindowNeverExceedsLimit(t *testing.T) {
	st, _ := newState(t, []string{"a", "b", "c", "d", "e", "f"}, func(c *config.Config) {
		c.Readahead = 3
		c.Loop = true
	})

	st.SetPos(0)
	for i := 0; i < 20; i++ {
		st.Next()
		if got := st.PendingWorkers(); got > st.WindowLimit {
			t.Fatalf("pending = %d exceeds limit %d after step %d", got, st.WindowLimit, i)
		}
	}
}

func TestCurrentSlotGatesPrefetch(t *testing.T) {
	// When the current slot itself cannot dispatch, the window must not
	// race ahead of it.
	st, loader := newState(t, []string{"a", "b", "c"}, func(c *config.Config) {
		c.Readahead = 3
	})
	loader.decline = true

	st.SetPos(0)
	if len(loader.spawns) != 0 {
		t.Fatalf("spawned %v, want none while current slot is declined", loader.spawns)
	}
	if st.Playlist[1].Dispatched() || st.Playlist[2].Dispatched() {
		t.Error("prefetch must not run ahead of an undispatched current item")
	}
}

func TestStdinSingleClaim(t *testing.T) {
	st, _ := newState(t, []string{"-", "-", "a"}, func(c *config.Config) {
		c.Readahead = 3
	})

	st.SetPos(0)
	if !st.StdinClaimed() {
		t.Fatal("first stdin entry should claim the stream")
	}
	if st.Playlist[1].HasWorker() {
		t.Error("second stdin entry must not dispatch while the claim is held")
	}
	if !st.Playlist[2].HasWorker() {
		t.Error("file entry should dispatch regardless of the stdin claim")
	}
	if got := st.PendingWorkers(); got != 2 {
		t.Errorf("pending = %d, want 2", got)
	}

	finish(st.Playlist[0])
	st.PollAll(false)
	if st.StdinClaimed() {
		t.Error("claim should clear when the stdin worker completes")
	}

	st.AdvanceWindow(st.Cursor)
	if !st.Playlist[1].HasWorker() {
		t.Error("second stdin entry should dispatch after the claim clears")
	}
	if !st.StdinClaimed() {
		t.Error("claim should transfer to the second stdin entry")
	}
}

func TestNavigationBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		loop    bool
		start   int
		forward bool
		wantOK  bool
		wantPos int
	}{
		{"next at end without loop", false, 2, true, false, 2},
		{"next at end with loop", true, 2, true, true, 0},
		{"prev at start without loop", false, 0, false, false, 0},
		{"prev at start with loop", true, 0, false, true, 2},
		{"next in the middle", false, 1, true, true, 2},
		{"prev in the middle", false, 1, false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newState(t, []string{"a", "b", "c"}, func(c *config.Config) {
				c.Loop = tt.loop
			})
			st.SetPos(tt.start)

			var ok bool
			if tt.forward {
				ok = st.Next()
			} else {
				ok = st.Prev()
			}
			if ok != tt.wantOK {
				t.Errorf("move ok = %v, want %v", ok, tt.wantOK)
			}
			if st.Cursor != tt.wantPos {
				t.Errorf("cursor = %d, want %d", st.Cursor, tt.wantPos)
			}
		})
	}
}

func TestTimeoutPoisonsAfterExactBudget(t *testing.T) {
	// One second of timeout is five scheduler ticks.
	st, loader := newState(t, []string{"a"}, func(c *config.Config) {
		c.Readahead = 1
		c.TimeoutSecs = 1
	})

	st.SetPos(0)
	e := st.Playlist[0]
	if e.Life != 5 {
		t.Fatalf("liveness = %d, want 5", e.Life)
	}

	for i := 0; i < 4; i++ {
		st.Tick()
	}
	if e.Poisoned() || !e.HasWorker() {
		t.Fatal("worker must survive until the budget is exhausted")
	}

	st.Tick()
	if !e.Poisoned() {
		t.Error("entry should be poisoned after exactly 5 ticks")
	}
	if e.HasWorker() {
		t.Error("worker handle should be released on timeout")
	}
	if loader.resets != 1 {
		t.Errorf("resets = %d, want 1", loader.resets)
	}
	if got := st.PendingWorkers(); got != 0 {
		t.Errorf("pending = %d, want 0 after forced release", got)
	}

	// Poisoned entries are permanently unstartable.
	if st.TryStart(0) {
		t.Error("TryStart must refuse a poisoned entry")
	}
}

func TestZeroTimeoutNeverReaps(t *testing.T) {
	st, _ := newState(t, []string{"a"}, func(c *config.Config) {
		c.Readahead = 1
		c.TimeoutSecs = 0
	})

	st.SetPos(0)
	for i := 0; i < 50; i++ {
		st.Tick()
	}
	e := st.Playlist[0]
	if e.Poisoned() || !e.HasWorker() {
		t.Error("a zero timeout disables the reaper")
	}
}

func TestReleaseIdempotent(t *testing.T) {
	st, loader := newState(t, []string{"a", "b"}, func(c *config.Config) {
		c.Readahead = 2
	})
	st.SetPos(0)
	e := st.Playlist[0]

	st.Release(e)
	if loader.resets != 1 || st.PendingWorkers() != 1 {
		t.Fatalf("resets = %d pending = %d after first release, want 1 and 1",
			loader.resets, st.PendingWorkers())
	}

	st.Release(e)
	if loader.resets != 1 {
		t.Errorf("resets = %d, second release must have no additional effect", loader.resets)
	}
	if st.PendingWorkers() != 1 {
		t.Errorf("pending = %d, second release must not touch accounting", st.PendingWorkers())
	}
}

func TestReleasedSlotCanRedispatch(t *testing.T) {
	st, _ := newState(t, []string{"a"}, func(c *config.Config) {
		c.Readahead = 1
	})
	st.SetPos(0)
	e := st.Playlist[0]

	// Manual release without a timeout leaves the slot clean for retry.
	st.Release(e)
	if e.Poisoned() {
		t.Fatal("manual release must not poison the entry")
	}
	if !st.TryStart(0) {
		t.Error("released slot should accept a new worker")
	}
}

func TestPollReapsBeforeWindowRecompute(t *testing.T) {
	st, _ := newState(t, []string{"a", "b", "c"}, func(c *config.Config) {
		c.Readahead = 1
	})

	st.SetPos(0)
	finish(st.Playlist[0])

	// Next must observe the completion before recomputing the window,
	// otherwise the vacated slot could not be refilled.
	if !st.Next() {
		t.Fatal("Next should succeed")
	}
	if !st.Playlist[0].Ready() {
		t.Error("completed worker should be reaped during navigation")
	}
	if !st.Playlist[1].HasWorker() {
		t.Error("freed window slot should cover the new current entry")
	}
	if got := st.PendingWorkers(); got != 1 {
		t.Errorf("pending = %d, want 1", got)
	}
}

func TestBrokenEntryIsReadyAndSkippable(t *testing.T) {
	st, loader := newState(t, []string{"a", "b"}, func(c *config.Config) {
		c.Readahead = 2
	})
	loader.broken["a"] = true

	st.SetPos(0)
	finish(st.Playlist[0])
	st.PollAll(false)

	e := st.Playlist[0]
	if !e.Ready() || !e.Image.Broken {
		t.Fatal("failed decode should leave the entry ready-but-broken")
	}
	if st.TryStart(0) {
		t.Error("a completed entry must not be redispatched")
	}
	if !st.Next() {
		t.Error("playback should advance past a broken entry")
	}
}

func TestAutoStepTimer(t *testing.T) {
	st, _ := newState(t, []string{"a", "b", "c"}, func(c *config.Config) {
		c.StepTimeSecs = 1
		c.Loop = true
	})
	st.SetPos(0)

	for i := 0; i < 4; i++ {
		if st.Tick() {
			t.Fatalf("auto-step fired early at tick %d", i+1)
		}
	}
	if !st.Tick() {
		t.Fatal("auto-step should fire on the fifth tick")
	}
	if st.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", st.Cursor)
	}

	st.ToggleAutoStep()
	for i := 0; i < 10; i++ {
		if st.Tick() {
			t.Fatal("auto-step must stay quiet while disabled")
		}
	}
	if st.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 with stepping disabled", st.Cursor)
	}

	// Re-enabling rearms a full interval.
	st.ToggleAutoStep()
	for i := 0; i < 4; i++ {
		st.Tick()
	}
	if st.Cursor != 1 {
		t.Error("rearmed timer should wait a full interval")
	}
	st.Tick()
	if st.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", st.Cursor)
	}
}
