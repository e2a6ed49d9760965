package internal

import (
	"reflect"
	"testing"
)

func TestGroupBlocks_SeparatorsBetweenGroups(t *testing.T) {
	lines := []string{
		"FATAL EXCEPTION: main",
		"  at com.example.A.run(A.java:10)",
		"--",
		"FATAL EXCEPTION: worker",
		"  at com.example.B.run(B.java:20)",
	}
	blocks := GroupBlocks(lines)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if !reflect.DeepEqual(blocks[0].Lines, lines[:2]) {
		t.Errorf("bad first block: %v", blocks[0].Lines)
	}
	// trailing group with no closing separator must still flush
	if !reflect.DeepEqual(blocks[1].Lines, lines[3:]) {
		t.Errorf("bad second block: %v", blocks[1].Lines)
	}
}

func TestGroupBlocks_IsolatedSeparators(t *testing.T) {
	if got := GroupBlocks([]string{"--", "--"}); len(got) != 0 {
		t.Fatalf("separators alone must yield no blocks, got %d", len(got))
	}
	blocks := GroupBlocks([]string{"--", "a", "--", "--", "b"})
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Lines[0] != "a" || blocks[1].Lines[0] != "b" {
		t.Errorf("unexpected blocks: %v", blocks)
	}
}

func TestGroupBlocks_Empty(t *testing.T) {
	if got := GroupBlocks(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestGroupBlocks_KeepsBlankContextLines(t *testing.T) {
	blocks := GroupBlocks([]string{"FATAL EXCEPTION: main", "", "  at A"})
	if len(blocks) != 1 || len(blocks[0].Lines) != 3 {
		t.Fatalf("blank context lines must stay inside the block: %v", blocks)
	}
}
