package internal

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

const ripgrepBin = "rg"

var rgProbe struct {
	once      sync.Once
	available bool
}

// RipgrepAvailable reports whether rg is on PATH. Probed once per process
// and cached; safe under concurrent scans.
func RipgrepAvailable() bool {
	rgProbe.once.Do(func() {
		_, err := exec.LookPath(ripgrepBin)
		rgProbe.available = err == nil
		logrus.WithField("available", rgProbe.available).Debug("ripgrep probe")
	})
	return rgProbe.available
}

var rgPool struct {
	once sync.Once
	pool *ants.Pool
}

// ripgrepPool lazily builds the shared worker pool that keeps rg
// invocations off the caller's goroutine.
func ripgrepPool() *ants.Pool {
	rgPool.once.Do(func() {
		p, err := ants.NewPool(max(4, runtime.GOMAXPROCS(0)))
		if err != nil {
			logrus.WithError(err).Warn("worker pool unavailable, rg runs inline")
			return
		}
		rgPool.pool = p
	})
	return rgPool.pool
}

// ripgrepSearcher shells out to rg: -i for case-insensitive matching,
// -A for trailing context, "--" separators between context groups.
type ripgrepSearcher struct {
	pattern string
	after   int
}

func newRipgrepSearcher(opts ScanOptions) *ripgrepSearcher {
	return &ripgrepSearcher{pattern: opts.Pattern, after: opts.ContextLines}
}

func (s *ripgrepSearcher) Name() string { return "ripgrep" }

type rgOutcome struct {
	out []byte
	err error
}

func (s *ripgrepSearcher) Search(ctx context.Context, path string) ([]IncidentBlock, error) {
	cmd := exec.CommandContext(ctx, ripgrepBin,
		"--color=never",
		"--no-heading",
		"--no-filename",
		"--no-line-number",
		"-i",
		"-A", strconv.Itoa(s.after),
		"-e", s.pattern,
		"--", path,
	)

	ch := make(chan rgOutcome, 1)
	run := func() {
		out, err := cmd.Output()
		ch <- rgOutcome{out: out, err: err}
	}
	if p := ripgrepPool(); p != nil {
		if err := p.Submit(run); err != nil {
			run() // pool released or saturated: run inline
		}
	} else {
		run()
	}

	var res rgOutcome
	select {
	case res = <-ch:
	case <-ctx.Done():
		// CommandContext kills the process; the goroutine drains into
		// the buffered channel.
		return nil, ctx.Err()
	}

	if res.err != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var exitErr *exec.ExitError
		if errors.As(res.err, &exitErr) {
			if exitErr.ExitCode() == 1 {
				// rg exits 1 when nothing matched
				return nil, nil
			}
			return nil, fmt.Errorf("ripgrep %s: %w: %s", path, res.err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("ripgrep %s: %w", path, res.err)
	}
	return GroupBlocks(splitOutputLines(res.out)), nil
}

// splitOutputLines splits rg output into lines, dropping the empty
// remainder after the final newline and trimming CR on crlf logs.
func splitOutputLines(out []byte) []string {
	if len(out) == 0 {
		return nil
	}
	lines := strings.Split(string(out), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
