package reporter

// Reporter defines the interface for session progress reporting.
type Reporter interface {
	SessionStart(info SessionInfo)
	EntryQueued(name string, pending int)
	EntryReady(info EntryInfo)
	EntryFailed(name, message string)
	WorkerTimeout(name string)
	GeometryFallback(width, height int)
	Warning(message string)
	SessionEnd()
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) SessionStart(SessionInfo)    {}
func (NullReporter) EntryQueued(string, int)     {}
func (NullReporter) EntryReady(EntryInfo)        {}
func (NullReporter) EntryFailed(string, string)  {}
func (NullReporter) WorkerTimeout(string)        {}
func (NullReporter) GeometryFallback(int, int)   {}
func (NullReporter) Warning(string)              {}
func (NullReporter) SessionEnd()                 {}
