package imgload

import (
	"encoding/gob"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/mward/glance/internal/playlist"
)

// WorkerMain is the decode child entry point. It optionally confines
// itself, decodes exactly one image from the named path (or from stdin
// for the "-" sentinel), and writes the frame to out. Decode failures
// are reported in-band so the parent sees them as a completed-but-broken
// result rather than a dead worker.
func WorkerMain(name string, limitMB int, sandbox bool, in io.Reader, out io.Writer) error {
	if sandbox {
		confine(limitMB)
	}

	src := in
	if name != playlist.StdinName {
		f, err := os.Open(name)
		if err != nil {
			return gob.NewEncoder(out).Encode(frame{Err: err.Error()})
		}
		defer f.Close()
		src = f
	}

	img, err := decodeFrame(src, name, limitMB)
	enc := gob.NewEncoder(out)
	if err != nil {
		return enc.Encode(frame{Err: err.Error()})
	}
	return enc.Encode(frame{W: img.W, H: img.H, Pix: img.Pix})
}

// confine applies the worker resource limits. The address-space cap
// leaves headroom over the decode budget for the runtime itself.
// Best-effort: a failed setrlimit still leaves the in-band size checks.
func confine(limitMB int) {
	as := uint64(limitMB+64) << 20
	_ = unix.Setrlimit(unix.RLIMIT_AS, &unix.Rlimit{Cur: as, Max: as})

	// A decode never legitimately needs more than a minute of CPU.
	_ = unix.Setrlimit(unix.RLIMIT_CPU, &unix.Rlimit{Cur: 60, Max: 60})
}
