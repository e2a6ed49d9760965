package internal

import (
	"fmt"
	"path/filepath"
	"strings"
)

const renderRuleWidth = 80

// RenderText formats a report the way the terminal and the downstream
// summarizer expect it: totals first, then per-file sections with each
// crash numbered across the whole report.
func RenderText(r *ScanReport) string {
	var sb strings.Builder
	rule := strings.Repeat("=", renderRuleWidth)

	sb.WriteString("Crash Scan Report\n")
	sb.WriteString(rule + "\n\n")

	if r.TotalBlocks() == 0 {
		fmt.Fprintf(&sb, "No crashes matching %q found.\n", r.Pattern)
		renderSkipped(&sb, r)
		return sb.String()
	}

	fmt.Fprintf(&sb, "Total Crashes: %d\n", r.TotalBlocks())
	fmt.Fprintf(&sb, "Files with Crashes: %d\n\n", r.FilesWithBlocks())

	crashNumber := 1
	for _, fr := range r.Files {
		if len(fr.Blocks) == 0 {
			continue
		}
		sb.WriteString(rule + "\n")
		fmt.Fprintf(&sb, "File: %s\n", filepath.Base(fr.Path))
		fmt.Fprintf(&sb, "Path: %s\n", fr.Path)
		fmt.Fprintf(&sb, "Crashes Found: %d\n", len(fr.Blocks))
		sb.WriteString(rule + "\n\n")

		for _, block := range fr.Blocks {
			fmt.Fprintf(&sb, "--- Crash #%d ---\n", crashNumber)
			sb.WriteString(block.Text() + "\n\n")
			crashNumber++
		}
	}

	renderSkipped(&sb, r)
	return sb.String()
}

func renderSkipped(sb *strings.Builder, r *ScanReport) {
	if r.FilesSkipped() == 0 {
		return
	}
	fmt.Fprintf(sb, "\nSkipped Files: %d\n", r.FilesSkipped())
	for _, fr := range r.Files {
		if fr.Skipped() {
			fmt.Fprintf(sb, "  %s: %v\n", fr.Path, fr.Err)
		}
	}
}
