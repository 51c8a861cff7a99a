// Package playlist provides the playlist entry type and its per-slot
// worker bookkeeping.
package playlist

// LifePoisoned marks an entry whose worker failed or timed out. Poisoned
// entries are never redispatched automatically.
const LifePoisoned = -1

// StdinName is the playlist argument selecting the shared stdin stream.
const StdinName = "-"

// Worker is the opaque handle to an in-flight decode job. The loader owns
// the concrete type; the ledger only tracks handle lifetime.
type Worker interface {
	// Done reports, without blocking, whether the job has finished
	// (successfully or not).
	Done() bool
}

// Image is the decoded result owned by an entry once its worker reports
// completion.
type Image struct {
	W, H int
	Pix  []byte // RGBA, row-major, W*H*4 bytes

	Ready  bool
	Broken bool   // completed with a decode failure
	Msg    string // advisory text for broken results

	// Pan offsets into the source, in pixels.
	PanX, PanY int
}

// Entry is one playlist item.
type Entry struct {
	Name  string
	Stdin bool // consumes the shared stdin stream

	// Worker is non-nil while a decode job is outstanding.
	Worker Worker

	// Image is non-nil once a dispatched job has produced a result.
	Image *Image

	// Life is the remaining tick budget for the active worker: > 0 while
	// counting down, 0 when expired or unset, LifePoisoned when the entry
	// must not be retried.
	Life int
}

// HasWorker reports whether a decode job is outstanding on this slot.
func (e *Entry) HasWorker() bool {
	return e.Worker != nil
}

// Dispatched reports whether the slot has ever been filled: either a job
// is outstanding or a result is present.
func (e *Entry) Dispatched() bool {
	return e.Worker != nil || e.Image != nil
}

// Ready reports whether the decode finished, success or failure.
func (e *Entry) Ready() bool {
	return e.Image != nil && e.Image.Ready
}

// Poisoned reports whether the entry timed out or failed permanently.
func (e *Entry) Poisoned() bool {
	return e.Life < 0
}

// Clear drops the worker handle and any decoded result. The poison mark
// in Life is preserved. Idempotent; window accounting is the scheduler's
// responsibility.
func (e *Entry) Clear() {
	e.Worker = nil
	e.Image = nil
}
