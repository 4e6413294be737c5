package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/vnav/pkg/drawing"
)

// Options configures anchor graph rendering.
type Options struct {
	// Detailed adds the drawing type and position to node labels.
	Detailed bool
	// All includes drawings that take no part in anchoring (grid lines,
	// planes, text).
	All bool
	// Logger receives warnings for line ends that cannot be resolved in
	// detailed labels. Nil uses log.Default().
	Logger *log.Logger
}

// ToDOT converts m to Graphviz DOT source. Output is deterministic: nodes
// and edges are emitted in ID order.
func ToDOT(m drawing.Map, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, d := range m.Sorted() {
		if !opts.All && !d.Kind().IsLine() && !d.Kind().Anchorable() {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", drawing.ID(d), strings.Join(nodeAttrs(d, m, opts), ", "))
	}

	var missing []string
	seen := map[string]bool{}
	buf.WriteString("\n")
	for _, d := range m.Sorted() {
		start, end, ok := drawing.Endpoints(d)
		if !ok {
			continue
		}
		for i, ep := range []drawing.EndPoint{start, end} {
			c, ok := ep.(drawing.Connected)
			if !ok {
				continue
			}
			target, exists := m[c.AnchorID]
			if !exists && !seen[c.AnchorID] {
				seen[c.AnchorID] = true
				missing = append(missing, c.AnchorID)
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", drawing.ID(d), c.AnchorID, edgeLabel(i == 0, c, target))
		}
	}

	if len(missing) > 0 {
		buf.WriteString("\n")
		for _, id := range missing {
			fmt.Fprintf(&buf, "  %q [label=%q, shape=octagon, color=red, fontcolor=red];\n", id, id+"\n(missing)")
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(d drawing.Drawing, m drawing.Map, opts Options) []string {
	label := drawing.ID(d)
	if opts.Detailed {
		label += "\n" + describe(d, m, opts.Logger)
	}
	attrs := []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("color=%q", strokeColor(d))}

	switch k := d.Kind(); {
	case k == drawing.TypePathLine:
		attrs = append(attrs, "shape=box", `style="rounded,filled"`)
	case k == drawing.TypeCurvedLine:
		attrs = append(attrs, "shape=box", `style="rounded,filled,dashed"`)
	case k.Anchorable():
		attrs = append(attrs, "shape=ellipse")
	default:
		attrs = append(attrs, "shape=note", "fillcolor=lightgrey")
	}
	return attrs
}

func describe(d drawing.Drawing, m drawing.Map, logger *log.Logger) string {
	switch v := d.(type) {
	case *drawing.Line:
		// Unresolvable ends are drawn at the origin.
		start := drawing.ResolveOr(v.Start, m, drawing.Point{}, logger)
		end := drawing.ResolveOr(v.End, m, drawing.Point{}, logger)
		return fmt.Sprintf("%s (%g, %g) → (%g, %g)", v.Type, start.X, start.Y, end.X, end.Y)
	case *drawing.PointAnchor:
		return fmt.Sprintf("%s (%g, %g)", v.Type, v.X, v.Y)
	case *drawing.Between:
		return fmt.Sprintf("%s (%g, %g) h=%g", v.Type, v.X, v.Y, v.Height)
	case *drawing.Text:
		return fmt.Sprintf("%s %q", v.Type, v.Text)
	}
	return string(d.Kind())
}

func edgeLabel(start bool, c drawing.Connected, target drawing.Drawing) string {
	label := "end"
	if start {
		label = "start"
	}
	if target == nil {
		return label
	}
	switch target.Kind() {
	case drawing.TypeBetween:
		if c.TopOfBetween {
			return label + " → top"
		}
		return label + " → bottom"
	case drawing.TypePathLine:
		if c.StartOfPathLine {
			return label + " → start of"
		}
		return label + " → end of"
	}
	return label
}

// strokeColor returns the drawing's color cut to its #rrggbb prefix, since
// stored colors may carry trailing characters Graphviz would reject.
func strokeColor(d drawing.Drawing) string {
	c := d.Common().Color
	if len(c) >= 7 {
		return c[:7]
	}
	return "black"
}

// RenderSVG renders DOT source to SVG with the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// that scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
