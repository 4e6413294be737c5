// Package render groups the renderers that turn a diagram into something
// other than its own file format.
//
// The [nodelink] subpackage draws the anchor graph of a diagram with
// Graphviz: every drawing is a node and every connected line end is an
// arrow to the drawing it is anchored to. It is a debugging view for
// tracking down why a line moved or was removed during repair.
//
//	dot := nodelink.ToDOT(m, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/vnav/pkg/render/nodelink
package render
