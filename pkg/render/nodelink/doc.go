// Package nodelink renders the anchor graph of a diagram as a node-link
// diagram.
//
// # Overview
//
// Each drawing becomes a node, shaped by its role:
//
//   - point anchors (Above, At, Below, Between) are ellipses
//   - PathLines are boxes, CurvedLines dashed boxes
//   - everything else is a grey note, and is omitted unless
//     [Options.All] is set since nothing can anchor to it
//
// Each connected line end becomes an arrow from the line to its anchor,
// labelled with the end ("start", "end") and, where it matters, which point
// of the anchor it attaches to ("top", "bottom", "start of", "end of").
// Arrows to IDs that do not exist point at a red placeholder node, which
// makes unrepaired diagrams easy to read.
//
// # Usage
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
