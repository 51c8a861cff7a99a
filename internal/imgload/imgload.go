// Package imgload runs image decoding in short-lived worker processes.
//
// Each worker is a re-exec of the glance binary in a hidden decode mode,
// with an address-space limit applied before it touches untrusted input.
// The parent polls workers without blocking; results stream back over
// the worker's stdout.
package imgload

import (
	"encoding/gob"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/mward/glance/internal/logging"
	"github.com/mward/glance/internal/playlist"
)

// WorkerCommand is the hidden subcommand that runs the decode child.
const WorkerCommand = "decode-worker"

// frame is the wire format between worker and parent.
type frame struct {
	W, H int
	Pix  []byte
	Err  string
}

// Job is one outstanding decode process.
type Job struct {
	cmd    *exec.Cmd
	doneCh chan struct{}
	result *playlist.Image
}

// Done reports, without blocking, whether the worker finished.
func (j *Job) Done() bool {
	select {
	case <-j.doneCh:
		return true
	default:
		return false
	}
}

// ProcessLoader spawns decode workers as subprocesses.
type ProcessLoader struct {
	MemLimitMB int
	Sandbox    bool

	// Exe overrides the worker binary, for tests. Empty means the
	// running executable.
	Exe string
}

// New creates a process loader.
func New(memLimitMB int, sandbox bool) *ProcessLoader {
	return &ProcessLoader{MemLimitMB: memLimitMB, Sandbox: sandbox}
}

// Spawn starts a decode worker for the entry. It returns false when the
// entry already has a worker or the process could not be started; a
// failed start is logged and retried by the dispatcher on a later pass.
func (l *ProcessLoader) Spawn(e *playlist.Entry) bool {
	if e.Worker != nil {
		return false
	}

	exe := l.Exe
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			logging.Warn("cannot resolve worker binary", "err", err)
			return false
		}
	}

	args := []string{WorkerCommand, "--limit-mem", strconv.Itoa(l.MemLimitMB)}
	if !l.Sandbox {
		args = append(args, "--no-sysflt")
	}
	args = append(args, e.Name)

	cmd := exec.Command(exe, args...)
	if e.Stdin {
		cmd.Stdin = os.Stdin
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		logging.Warn("worker pipe failed", "entry", e.Name, "err", err)
		return false
	}
	if err := cmd.Start(); err != nil {
		logging.Warn("worker start failed", "entry", e.Name, "err", err)
		return false
	}

	j := &Job{cmd: cmd, doneCh: make(chan struct{})}
	go func() {
		var f frame
		decErr := gob.NewDecoder(out).Decode(&f)
		waitErr := cmd.Wait()

		switch {
		case decErr != nil:
			j.result = brokenImage(fmt.Sprintf("worker died: %v", firstErr(decErr, waitErr)))
		case f.Err != "":
			j.result = brokenImage(f.Err)
		case len(f.Pix) != f.W*f.H*4:
			j.result = brokenImage("worker returned a truncated frame")
		default:
			j.result = &playlist.Image{W: f.W, H: f.H, Pix: f.Pix, Ready: true}
		}
		close(j.doneCh)
	}()

	e.Worker = j
	return true
}

// Poll reaps a finished worker, recording the result on the entry. True
// is returned exactly once per job.
func (l *ProcessLoader) Poll(e *playlist.Entry) bool {
	j, ok := e.Worker.(*Job)
	if !ok || !j.Done() {
		return false
	}
	e.Image = j.result
	e.Worker = nil
	return true
}

// Reset force-releases the entry's worker, killing the process if it is
// still running. Idempotent.
func (l *ProcessLoader) Reset(e *playlist.Entry) {
	j, ok := e.Worker.(*Job)
	if ok && j.cmd.Process != nil {
		_ = j.cmd.Process.Kill()
	}
	e.Clear()
}

func brokenImage(msg string) *playlist.Image {
	return &playlist.Image{Ready: true, Broken: true, Msg: msg}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
