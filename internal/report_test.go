package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestScanReport_Aggregates(t *testing.T) {
	r := &ScanReport{
		Pattern: DefaultPattern,
		Files: []FileResult{
			{Path: "/a.log", Blocks: []IncidentBlock{{Lines: []string{"x"}}, {Lines: []string{"y"}}}},
			{Path: "/b.log"},
			{Path: "/c.log", Err: errors.New("open /c.log: no such file")},
		},
	}

	if r.TotalBlocks() != 2 {
		t.Errorf("TotalBlocks = %d, want 2", r.TotalBlocks())
	}
	if r.FilesWithBlocks() != 1 {
		t.Errorf("FilesWithBlocks = %d, want 1", r.FilesWithBlocks())
	}
	if r.FilesScanned() != 2 {
		t.Errorf("FilesScanned = %d, want 2", r.FilesScanned())
	}
	if r.FilesSkipped() != 1 {
		t.Errorf("FilesSkipped = %d, want 1", r.FilesSkipped())
	}
}

func TestScanReport_SkippedError(t *testing.T) {
	r := &ScanReport{Files: []FileResult{{Path: "/a.log"}}}
	if r.SkippedError() != nil {
		t.Fatal("no skipped files must mean nil error")
	}

	r.Files = append(r.Files, FileResult{Path: "/b.log", Err: errors.New("open /b.log: denied")})
	err := r.SkippedError()
	if err == nil || !strings.Contains(err.Error(), "/b.log") {
		t.Fatalf("rolled-up error must name the file: %v", err)
	}
}

func TestIncidentBlock_Text(t *testing.T) {
	b := IncidentBlock{Lines: []string{"FATAL EXCEPTION: main", "  at A"}}
	if b.Text() != "FATAL EXCEPTION: main\n  at A" {
		t.Fatalf("unexpected text: %q", b.Text())
	}
}
