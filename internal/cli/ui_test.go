package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		10:      "10",
		100:     "100",
		-2.5:    "-2.5",
		1.23456: "1.235",
	}
	for in, want := range tests {
		if got := formatFloat(in); got != want {
			t.Errorf("formatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPrintErrorList(t *testing.T) {
	var buf bytes.Buffer
	printErrorList(&buf, "approach.vnav", []string{"one", "two"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want title plus 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], iconError) || !strings.HasSuffix(lines[2], "two") {
		t.Errorf("lines = %q", lines)
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, 4, 2, true)
	out := buf.String()
	for _, want := range []string{"4 drawings", "2 problems", iconCached} {
		if !strings.Contains(out, want) {
			t.Errorf("printStats() = %q, missing %q", out, want)
		}
	}

	buf.Reset()
	printStats(&buf, 1, 0, false)
	if strings.Contains(buf.String(), "problems") || !strings.Contains(buf.String(), iconFresh) {
		t.Errorf("printStats() = %q", buf.String())
	}
}
