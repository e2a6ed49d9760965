package ai

import (
	"strings"
	"testing"
)

func TestBuildCrashPrompt(t *testing.T) {
	report := "Total Crashes: 1\n--- Crash #1 ---\nFATAL EXCEPTION: main"
	prompt := BuildCrashPrompt(report)

	if !strings.Contains(prompt, report) {
		t.Fatal("prompt must embed the rendered report")
	}
	if strings.Contains(prompt, resultPlaceholder) {
		t.Fatal("placeholder must be substituted")
	}
	if !strings.Contains(prompt, "Root Cause") {
		t.Fatal("prompt must keep the analysis instructions")
	}
}

func TestMapModelName(t *testing.T) {
	if mapModelName("haiku") == mapModelName("opus") {
		t.Fatal("model names must map to distinct IDs")
	}
	if mapModelName("unknown") != mapModelName("sonnet") {
		t.Fatal("unknown names must fall back to sonnet")
	}
}
