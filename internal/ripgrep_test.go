package internal

import (
	"context"
	"reflect"
	"testing"
)

func TestSplitOutputLines(t *testing.T) {
	out := []byte("FATAL EXCEPTION: main\nctx\n--\nFATAL EXCEPTION: worker\n")
	lines := splitOutputLines(out)
	want := []string{"FATAL EXCEPTION: main", "ctx", "--", "FATAL EXCEPTION: worker"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("unexpected lines: %v", lines)
	}
	if splitOutputLines(nil) != nil {
		t.Fatal("empty output must yield nil")
	}
}

func TestSplitOutputLines_CRLF(t *testing.T) {
	lines := splitOutputLines([]byte("a\r\nb\r\n"))
	if !reflect.DeepEqual(lines, []string{"a", "b"}) {
		t.Fatalf("CR must be trimmed: %v", lines)
	}
}

func TestGroupRipgrepOutput(t *testing.T) {
	out := []byte("FATAL EXCEPTION: main\nat A\n--\nFATAL EXCEPTION: worker\nat B\n")
	blocks := GroupBlocks(splitOutputLines(out))
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[1].Lines[1] != "at B" {
		t.Errorf("bad trailing block: %v", blocks[1].Lines)
	}
}

func TestRipgrepSearch_MatchesDirect(t *testing.T) {
	if !RipgrepAvailable() {
		t.Skip("rg not installed")
	}
	p := writeLog(t, "eq.log", "noise\nFATAL EXCEPTION: main\nctx1\nctx2\ntail\n")
	opts := testOpts(t, "", 2)

	fast, err := newRipgrepSearcher(opts).Search(context.Background(), p)
	if err != nil {
		t.Fatalf("ripgrep: %v", err)
	}
	slow, err := newDirectSearcher(opts).Search(context.Background(), p)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	if !reflect.DeepEqual(fast, slow) {
		t.Fatalf("strategies disagree:\nrg:     %v\ndirect: %v", fast, slow)
	}
}

func TestRipgrepSearch_NoMatches(t *testing.T) {
	if !RipgrepAvailable() {
		t.Skip("rg not installed")
	}
	p := writeLog(t, "clean.log", "nothing here\n")
	blocks, err := newRipgrepSearcher(testOpts(t, "", 2)).Search(context.Background(), p)
	if err != nil {
		t.Fatalf("exit status 1 must mean zero matches, got %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}
