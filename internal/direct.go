package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mholt/archives"
)

// How often the line loops poll for cancellation.
const cancelCheckEvery = 4096

// directSearcher evaluates the pattern in process, line by line. Used when
// rg is missing, for compressed logs, and as the fallback when the
// accelerated backend fails.
type directSearcher struct {
	re    *regexp.Regexp
	after int
}

func newDirectSearcher(opts ScanOptions) *directSearcher {
	return &directSearcher{re: opts.re, after: opts.ContextLines}
}

func (s *directSearcher) Name() string { return "direct" }

func (s *directSearcher) Search(ctx context.Context, path string) ([]IncidentBlock, error) {
	lines, err := readLogLines(ctx, path)
	if err != nil {
		return nil, err
	}

	var blocks []IncidentBlock
	for i, line := range lines {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if !s.re.MatchString(line) {
			continue
		}
		// Matches are independent: a match inside an earlier window still
		// produces its own block, overlap and all.
		end := i + s.after
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
		block := make([]string, end-i+1)
		copy(block, lines[i:end+1])
		blocks = append(blocks, IncidentBlock{Lines: block})
	}
	return blocks, nil
}

// readLogLines reads a whole log as text lines. Malformed UTF-8 is
// replaced, never fatal; trailing terminators are trimmed. Compressed
// logs are decompressed transparently.
func readLogLines(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressedLog(path) {
		rc, err := decompress(ctx, path, f)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
		defer rc.Close()
		r = rc
	}

	br := bufio.NewReaderSize(r, 256*1024)
	var lines []string
	for {
		if len(lines)%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, sanitizeLine(line))
		}
		if err != nil {
			if err == io.EOF {
				return lines, nil
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
}

func sanitizeLine(line string) string {
	line = strings.TrimRight(line, "\r\n")
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	}
	return line
}

func decompress(ctx context.Context, path string, r io.Reader) (io.ReadCloser, error) {
	format, input, err := archives.Identify(ctx, path, r)
	if err != nil {
		return nil, err
	}
	decomp, ok := format.(archives.Decompressor)
	if !ok {
		return nil, fmt.Errorf("unsupported compression for %s", filepath.Base(path))
	}
	return decomp.OpenReader(input)
}
