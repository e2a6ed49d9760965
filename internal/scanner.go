package internal

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

// Scanner drives one scan request. Files are processed sequentially, in
// input order, so block order and aggregates are reproducible. Each call
// owns its accumulators; concurrent Scan calls are independent.
type Scanner struct{}

func NewScanner() *Scanner { return &Scanner{} }

// Scan produces the full report for one request. Cancellation aborts the
// whole request and discards partial results; a single unreadable file is
// recorded as skipped and never aborts the request.
func (s *Scanner) Scan(ctx context.Context, opts ScanOptions, onProgress ProgressFunc) (*ScanReport, error) {
	if err := opts.Prepare(); err != nil {
		return nil, err
	}

	loc := NewLocator(opts)
	report := &ScanReport{Pattern: opts.Pattern}

	for idx, path := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev := ProgressEvent{
			Kind:       ProgressFileStarted,
			FileIndex:  idx + 1,
			TotalFiles: len(opts.Paths),
			Path:       path,
			SizeBytes:  fileSize(path),
		}
		emitProgress(onProgress, ev)

		blocks, err := loc.Find(ctx, path)
		if err != nil {
			if isCancellation(err) {
				return nil, err
			}
			logrus.WithFields(logrus.Fields{"file": path, "err": err}).Error("file skipped")
			report.Files = append(report.Files, FileResult{Path: path, Err: err})
		} else {
			if len(blocks) > 0 {
				logrus.WithFields(logrus.Fields{"file": path, "blocks": len(blocks)}).Info("Incidents found")
			} else {
				logrus.WithField("file", path).Debug("no incidents")
			}
			report.Files = append(report.Files, FileResult{Path: path, Blocks: blocks})
		}

		ev.Kind = ProgressFileFinished
		emitProgress(onProgress, ev)
	}
	return report, nil
}

// emitProgress is best-effort: a misbehaving sink must never affect the
// scan outcome.
func emitProgress(fn ProgressFunc, ev ProgressEvent) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("progress sink panicked")
		}
	}()
	fn(ev)
}

// Size is informational only; stat failures surface later as read errors.
func fileSize(path string) int64 {
	st, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return st.Size()
}
