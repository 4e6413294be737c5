package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vnav/pkg/drawing"
)

func sample() drawing.Map {
	m := drawing.Map{}
	fix := drawing.NewDefault(drawing.TypeAt, "fix", "#ff0000").(*drawing.PointAnchor)
	fix.X, fix.Y = 3, 4
	m.Put(fix)
	m.Put(drawing.NewDefault(drawing.TypeBetween, "window", ""))

	leg := drawing.NewDefault(drawing.TypePathLine, "leg", "#00ff00zz").(*drawing.Line)
	leg.Start = drawing.Connected{AnchorID: "fix"}
	leg.End = drawing.Connected{AnchorID: "window", TopOfBetween: true}
	m.Put(leg)

	curve := drawing.NewDefault(drawing.TypeCurvedLine, "turn", "").(*drawing.Line)
	curve.Start = drawing.Connected{AnchorID: "leg", StartOfPathLine: false}
	curve.End = drawing.Connected{AnchorID: "ghost"}
	m.Put(curve)

	m.Put(drawing.NewDefault(drawing.TypeText, "label", ""))
	return m
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		`"fix" [label="fix", color="#ff0000", shape=ellipse]`,
		`"leg" [label="leg", color="#00ff00", shape=box`,
		`"turn" [label="turn", color="#000000", shape=box, style="rounded,filled,dashed"]`,
		`"leg" -> "fix" [label="start"]`,
		`"leg" -> "window" [label="end → top"]`,
		`"turn" -> "leg" [label="start → end of"]`,
		`"turn" -> "ghost" [label="end"]`,
		`"ghost" [label="ghost\n(missing)", shape=octagon`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"label"`) {
		t.Error("text drawing included without Options.All")
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(sample(), Options{All: true, Detailed: true})
	if !strings.Contains(dot, `"label" [label="label\nText \"\""`) {
		t.Errorf("Options.All/Detailed not applied:\n%s", dot)
	}
	if !strings.Contains(dot, `Between (0, 0) h=40`) {
		t.Errorf("Between details missing:\n%s", dot)
	}
}

func TestToDOTDetailedLines(t *testing.T) {
	var buf bytes.Buffer
	dot := ToDOT(sample(), Options{Detailed: true, Logger: log.New(&buf)})

	if !strings.Contains(dot, `PathLine (3, 4) → (0, 0)`) {
		t.Errorf("resolved PathLine ends missing:\n%s", dot)
	}
	// The curved line's end points at a missing anchor and falls back to the origin.
	if !strings.Contains(dot, `CurvedLine (0, 0) → (0, 0)`) {
		t.Errorf("CurvedLine fallback missing:\n%s", dot)
	}
	if !strings.Contains(buf.String(), "unresolvable end point") {
		t.Errorf("no warning logged: %q", buf.String())
	}
}

func TestToDOTDeterministic(t *testing.T) {
	if ToDOT(sample(), Options{}) != ToDOT(sample(), Options{}) {
		t.Error("ToDOT output differs between runs")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<") || !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() did not produce SVG: %.80s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00">`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`
	if got != want {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if out := normalizeViewBox([]byte("<svg>")); string(out) != "<svg>" {
		t.Errorf("no viewBox changed: %s", out)
	}
}
