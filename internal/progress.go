package internal

// ProgressKind discriminates progress notifications.
type ProgressKind string

const (
	// ProgressFileStarted is emitted once per file, just before it is
	// scanned.
	ProgressFileStarted ProgressKind = "file_started"

	// ProgressFileFinished is emitted once per file after scanning ends,
	// whether the file produced blocks, none, or a read error. Not
	// emitted for files the request never reached before cancellation.
	ProgressFileFinished ProgressKind = "file_finished"
)

// ProgressEvent describes the file about to be scanned. Purely
// observational: consuming it never affects the scan outcome.
type ProgressEvent struct {
	Kind       ProgressKind
	FileIndex  int // 1-based
	TotalFiles int
	Path       string
	SizeBytes  int64
}

// ProgressFunc receives progress events. Sinks may be slow or may panic;
// the scanner logs and swallows either.
type ProgressFunc func(ProgressEvent)
