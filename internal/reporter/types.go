// Package reporter provides progress reporting interfaces and implementations.
package reporter

// SessionInfo describes the playlist session at startup.
type SessionInfo struct {
	Entries      int
	Window       int
	TimeoutTicks int
	StepTicks    int
	Loop         bool
}

// EntryInfo describes a decoded playlist entry.
type EntryInfo struct {
	Name   string
	Width  int
	Height int
	Bytes  uint64
}
