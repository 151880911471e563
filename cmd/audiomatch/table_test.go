package main

import (
	"strings"
	"testing"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Name", "ID"}, [][]string{{"Speakers"}}, nil)
	requireContains(t, out, "Speakers")
	if lines := strings.Count(out, "\n"); lines < 4 {
		t.Fatalf("expected a framed table, got %q", out)
	}
}

func TestRenderTableWrapsLongCells(t *testing.T) {
	long := strings.Repeat("alsa_output.usb-Focusrite ", 4)
	out := renderTable([]string{"ID"}, [][]string{{long}}, nil)
	for _, line := range strings.Split(out, "\n") {
		if n := len([]rune(line)); n > maxColumnWidth+4 {
			t.Fatalf("line exceeds wrap width (%d): %q", n, line)
		}
	}
}

func TestRenderTableNoHeaders(t *testing.T) {
	if out := renderTable(nil, [][]string{{"x"}}, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
