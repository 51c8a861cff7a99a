package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/mward/glance/internal/util"
)

// TerminalReporter outputs human-friendly text to stderr. Frame output
// owns stdout, so everything here goes to the other stream.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	decoded  int
	total    int

	cyan   *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	bold   *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:   color.New(color.FgCyan, color.Bold),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow, color.Bold),
		red:    color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Fprintf(os.Stderr, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) SessionStart(info SessionInfo) {
	fmt.Fprintln(os.Stderr)
	_, _ = r.cyan.Fprintln(os.Stderr, "PLAYLIST")
	r.printLabel(10, "Entries:", fmt.Sprintf("%d", info.Entries))
	r.printLabel(10, "Window:", fmt.Sprintf("%d", info.Window))
	if info.TimeoutTicks > 0 {
		r.printLabel(10, "Timeout:", fmt.Sprintf("%d ticks", info.TimeoutTicks))
	}
	if info.StepTicks > 0 {
		r.printLabel(10, "Step:", fmt.Sprintf("every %d ticks", info.StepTicks))
	}
	if info.Loop {
		r.printLabel(10, "Loop:", "enabled")
	}

	r.mu.Lock()
	r.total = info.Entries
	r.progress = progressbar.NewOptions(info.Entries,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("decoding"),
		progressbar.OptionSetVisibility(info.Entries > 1),
		progressbar.OptionClearOnFinish(),
	)
	r.mu.Unlock()
}

func (r *TerminalReporter) EntryQueued(string, int) {}

func (r *TerminalReporter) bump() {
	r.decoded++
	if r.progress != nil {
		_ = r.progress.Set(r.decoded)
		if r.decoded >= r.total {
			_ = r.progress.Finish()
		}
	}
}

func (r *TerminalReporter) EntryReady(info EntryInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bump()
	fmt.Fprintf(os.Stderr, "  %s %s (%s, %s)\n",
		r.green.Sprint("✓"), info.Name,
		util.FormatGeometry(info.Width, info.Height),
		util.FormatBytes(info.Bytes))
}

func (r *TerminalReporter) EntryFailed(name, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bump()
	fmt.Fprintf(os.Stderr, "  %s %s: %s\n", r.red.Sprint("✗"), name, message)
}

func (r *TerminalReporter) WorkerTimeout(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bump()
	fmt.Fprintf(os.Stderr, "  %s worker (%s) timed out\n", r.yellow.Sprint("!"), name)
}

func (r *TerminalReporter) GeometryFallback(width, height int) {
	fmt.Fprintf(os.Stderr, "  %s no geometry accepted at or below %s, keeping previous\n",
		r.yellow.Sprint("!"), util.FormatGeometry(width, height))
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", r.yellow.Sprint("!"), message)
}

func (r *TerminalReporter) SessionEnd() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}
