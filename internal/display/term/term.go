// Package term is a display backend that composites onto a terminal
// using truecolor half-block cells. Raw keyboard input is translated
// into action labels via the announced default bindings, terminal
// resizes become display hints, and a 200ms clock drives the scheduler
// tick.
package term

import (
	"os"
	"os/signal"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/mward/glance/internal/config"
	"github.com/mward/glance/internal/display"
	"github.com/mward/glance/internal/errors"
)

const defaultTTY = "/dev/tty"

// eventBuffer bounds the queue between the reader goroutines and the
// scheduler loop; bursts beyond it are dropped, not blocked on.
const eventBuffer = 64

// Display renders to a tty. One cell carries two vertically stacked
// pixels, and the bottom row is reserved for the status line.
type Display struct {
	tty      *os.File
	oldState *term.State

	events  chan display.Event
	done    chan struct{}
	once    sync.Once // closes done
	restore sync.Once

	mu     sync.Mutex
	labels map[string]string // default key name -> announced label
	status string

	maxW, maxH int // pixel grid derived from the cell grid
	w, h       int // negotiated geometry, w <= maxW, h <= maxH
	rows       int
}

// Open connects to the terminal at path, or the controlling tty when
// path is empty.
func Open(path string) (*Display, error) {
	if path == "" {
		path = defaultTTY
	}
	tty, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.NewDisplayError("opening terminal", err)
	}

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		tty.Close()
		return nil, errors.NewDisplayError(path+" is not a terminal", nil)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		tty.Close()
		return nil, errors.NewDisplayError("entering raw mode", err)
	}

	d := &Display{
		tty:      tty,
		oldState: oldState,
		events:   make(chan display.Event, eventBuffer),
		done:     make(chan struct{}),
		labels:   map[string]string{},
	}
	if err := d.measure(); err != nil {
		term.Restore(fd, oldState)
		tty.Close()
		return nil, err
	}
	d.w, d.h = d.maxW, d.maxH

	// Alternate screen, cursor hidden.
	d.tty.WriteString("\x1b[?1049h\x1b[?25l\x1b[2J")

	go d.readKeys()
	go d.watchResize()
	go d.tick()
	return d, nil
}

func (d *Display) measure() error {
	cols, rows, err := term.GetSize(int(d.tty.Fd()))
	if err != nil {
		return errors.NewDisplayError("querying terminal size", err)
	}
	if rows < 2 || cols < 1 {
		return errors.NewDisplayError("terminal too small", nil)
	}
	d.mu.Lock()
	d.rows = rows
	d.maxW = cols
	d.maxH = (rows - 1) * 2
	d.mu.Unlock()
	return nil
}

// Size reports the current negotiated geometry.
func (d *Display) Size() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w, d.h
}

// Resize accepts any geometry that fits the terminal's pixel grid and
// rejects the rest, so callers can fall back to a smaller surface.
func (d *Display) Resize(w, h int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w < 1 || h < 1 || w > d.maxW || h > d.maxH {
		return false
	}
	d.w, d.h = w, h
	return true
}

// AnnounceAction registers an action label and the default key that
// triggers it when no external binding exists.
func (d *Display) AnnounceAction(label, defaultKey string) {
	d.mu.Lock()
	d.labels[defaultKey] = label
	d.mu.Unlock()
}

// WaitEvent blocks for the next event. It returns false once the
// display connection is gone.
func (d *Display) WaitEvent() (display.Event, bool) {
	select {
	case ev := <-d.events:
		return ev, true
	case <-d.done:
		return display.Event{}, false
	}
}

// PollEvent returns a pending event without blocking.
func (d *Display) PollEvent() (display.Event, bool) {
	select {
	case ev := <-d.events:
		return ev, true
	default:
		return display.Event{}, false
	}
}

// Close restores the terminal. Safe to call more than once.
func (d *Display) Close() error {
	d.once.Do(func() { close(d.done) })
	var err error
	d.restore.Do(func() {
		d.tty.WriteString("\x1b[0m\x1b[?25h\x1b[?1049l")
		err = term.Restore(int(d.tty.Fd()), d.oldState)
		if cerr := d.tty.Close(); err == nil {
			err = cerr
		}
	})
	return err
}

func (d *Display) send(ev display.Event) {
	select {
	case d.events <- ev:
	case <-d.done:
	default:
	}
}

func (d *Display) tick() {
	t := time.NewTicker(config.TickInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			d.send(display.Event{Kind: display.EventTick})
		case <-d.done:
			return
		}
	}
}

func (d *Display) watchResize() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	defer signal.Stop(ch)
	for {
		select {
		case <-ch:
			if err := d.measure(); err != nil {
				continue
			}
			d.mu.Lock()
			w, h := d.maxW, d.maxH
			d.mu.Unlock()
			d.send(display.Event{Kind: display.EventHint, Width: w, Height: h})
		case <-d.done:
			return
		}
	}
}
