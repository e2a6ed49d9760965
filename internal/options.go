package internal

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultPattern matches Android fatal-exception markers with any
	// run of whitespace between the two words.
	DefaultPattern = `FATAL\s+EXCEPTION`

	// DefaultContextLines is the number of lines captured after a match.
	DefaultContextLines = 10
)

// ScanOptions - public options from CLI.
type ScanOptions struct {
	Paths        []string
	Pattern      string
	ContextLines int
	NoRipgrep    bool

	re *regexp.Regexp
}

// Validate checks invariants.
func (o *ScanOptions) Validate() error {
	if o.ContextLines < 0 {
		return errors.New("context must be >= 0")
	}
	if o.Pattern != "" {
		if _, err := regexp.Compile(insensitive(o.Pattern)); err != nil {
			return fmt.Errorf("invalid pattern %q: %w", o.Pattern, err)
		}
	}
	return nil
}

// Prepare fills defaults and compiles the pattern. Idempotent.
func (o *ScanOptions) Prepare() error {
	if o.ContextLines < 0 {
		return errors.New("context must be >= 0")
	}
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	re, err := regexp.Compile(insensitive(o.Pattern))
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", o.Pattern, err)
	}
	o.re = re
	return nil
}

// insensitive forces case-insensitive matching unless the pattern already
// asks for it. Other flag groups keep the prefix: rg always gets -i, so
// the in-process side must match case-insensitively too.
func insensitive(p string) string {
	if strings.HasPrefix(p, "(?i") {
		return p
	}
	return "(?i)" + p
}
