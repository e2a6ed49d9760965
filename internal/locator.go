package internal

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Searcher finds the ordered incident blocks of a single file.
type Searcher interface {
	Search(ctx context.Context, path string) ([]IncidentBlock, error)
	Name() string
}

// Locator picks the fastest available strategy per file and retries with
// the direct scan when the accelerated backend misbehaves. Correctness
// wins over speed.
type Locator struct {
	accelerated Searcher // nil when unavailable
	direct      Searcher
}

func NewLocator(opts ScanOptions) *Locator {
	l := &Locator{direct: newDirectSearcher(opts)}
	if !opts.NoRipgrep && RipgrepAvailable() {
		l.accelerated = newRipgrepSearcher(opts)
	}
	return l
}

// Find returns the ordered incident blocks of one file.
func (l *Locator) Find(ctx context.Context, path string) ([]IncidentBlock, error) {
	s := l.pick(path)
	blocks, err := s.Search(ctx, path)
	if err == nil || s == l.direct || isCancellation(err) {
		return blocks, err
	}
	// Operational backend failure stays internal: retry in process.
	logrus.WithFields(logrus.Fields{"file": path, "backend": s.Name(), "err": err}).
		Warn("search backend failed, retrying with direct scan")
	return l.direct.Search(ctx, path)
}

// Compressed logs always go direct: rg reads plain text only.
func (l *Locator) pick(path string) Searcher {
	if l.accelerated == nil || IsCompressedLog(path) {
		return l.direct
	}
	return l.accelerated
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
