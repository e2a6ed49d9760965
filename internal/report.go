package internal

import (
	"strings"

	"github.com/hashicorp/go-multierror"
)

// IncidentBlock is one matching line plus up to N trailing context lines,
// in source order. Immutable once produced.
type IncidentBlock struct {
	Lines []string
}

// Text joins the block back into one newline-separated chunk.
func (b IncidentBlock) Text() string { return strings.Join(b.Lines, "\n") }

// FileResult holds everything found in a single file. Err != nil means the
// file was skipped, which is distinct from a scanned file with no blocks.
type FileResult struct {
	Path   string
	Blocks []IncidentBlock
	Err    error
}

func (fr FileResult) Skipped() bool { return fr.Err != nil }

// ScanReport is the full outcome of one scan request. File order matches
// request order; aggregates are computed from Files so they cannot drift.
type ScanReport struct {
	Pattern string
	Files   []FileResult
}

// TotalBlocks counts incident blocks across all files.
func (r *ScanReport) TotalBlocks() int {
	n := 0
	for _, fr := range r.Files {
		n += len(fr.Blocks)
	}
	return n
}

// FilesWithBlocks counts files with at least one block.
func (r *ScanReport) FilesWithBlocks() int {
	n := 0
	for _, fr := range r.Files {
		if len(fr.Blocks) > 0 {
			n++
		}
	}
	return n
}

// FilesScanned counts files that were read to the end, with or without
// findings.
func (r *ScanReport) FilesScanned() int {
	n := 0
	for _, fr := range r.Files {
		if !fr.Skipped() {
			n++
		}
	}
	return n
}

// FilesSkipped counts files recorded as unreadable.
func (r *ScanReport) FilesSkipped() int {
	return len(r.Files) - r.FilesScanned()
}

// SkippedError rolls the per-file read errors into one value, nil when
// every requested file was scanned.
func (r *ScanReport) SkippedError() error {
	var merr *multierror.Error
	for _, fr := range r.Files {
		if fr.Err != nil {
			merr = multierror.Append(merr, fr.Err)
		}
	}
	return merr.ErrorOrNil()
}
