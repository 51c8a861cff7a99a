package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mward/glance/internal/errors"
)

func TestBuild(t *testing.T) {
	entries, err := Build([]string{"a.png", "-", "b.jpg"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Stdin || entries[2].Stdin {
		t.Error("file entries should not carry the stdin flag")
	}
	if !entries[1].Stdin {
		t.Error("\"-\" entry should carry the stdin flag")
	}
	if entries[1].Name != StdinName {
		t.Errorf("stdin entry name = %q, want %q", entries[1].Name, StdinName)
	}
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(nil)
	if err == nil {
		t.Fatal("expected error for empty playlist")
	}
	if !errors.IsKind(err, errors.KindPath) {
		t.Errorf("expected KindPath error, got %v", err)
	}

	// Blank arguments are skipped, not kept as entries.
	_, err = Build([]string{""})
	if err == nil {
		t.Error("expected error when all arguments are blank")
	}
}

func TestBuildExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.png", "skip.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := Build([]string{"first.jpg", dir})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := []string{"first.jpg", filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, n := range want {
		if entries[i].Name != n {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, n)
		}
	}
}

type stubWorker struct{ done bool }

func (w *stubWorker) Done() bool { return w.done }

func TestEntryLedger(t *testing.T) {
	e := &Entry{Name: "a.png"}

	if e.HasWorker() || e.Dispatched() || e.Ready() || e.Poisoned() {
		t.Error("fresh entry should be idle")
	}

	e.Worker = &stubWorker{}
	if !e.HasWorker() || !e.Dispatched() {
		t.Error("entry with worker should be dispatched")
	}
	if e.Ready() {
		t.Error("entry should not be ready before a result lands")
	}

	e.Worker = nil
	e.Image = &Image{W: 2, H: 2, Ready: true}
	if e.HasWorker() {
		t.Error("no worker should remain after completion")
	}
	if !e.Dispatched() || !e.Ready() {
		t.Error("entry with a ready image should be dispatched and ready")
	}
}

func TestEntryClearPreservesPoison(t *testing.T) {
	e := &Entry{
		Name:   "slow.jpg",
		Worker: &stubWorker{},
		Image:  &Image{},
		Life:   LifePoisoned,
	}

	e.Clear()
	if e.Worker != nil || e.Image != nil {
		t.Error("Clear should drop worker and image")
	}
	if !e.Poisoned() {
		t.Error("Clear must preserve the poison mark")
	}

	// Second clear is a no-op.
	e.Clear()
	if !e.Poisoned() {
		t.Error("repeated Clear must not touch the poison mark")
	}
}
