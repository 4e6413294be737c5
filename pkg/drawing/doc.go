// Package drawing defines the primitives that make up a flight-navigation
// diagram and the rules for locating them on the canvas.
//
// # Overview
//
// A diagram is a [Map] from drawing ID to [Drawing]. Every drawing shares a
// [Base] (id, type tag, color) and carries the fields of exactly one of ten
// variants:
//
//   - Above, At, Below: a constraint marker at (x, y) with an optional guide line ([PointAnchor])
//   - Between: a point marker that also spans a height ([Between])
//   - PathLine, CurvedLine: a line between two [EndPoint]s ([Line])
//   - VerticalGridLine, HorizontalGridLine: axis-aligned reference lines
//   - Plane: an aircraft glyph with size and rotation
//   - Text: a free-standing label
//
// # End Points
//
// Lines do not store their own coordinates. Each end is an [EndPoint], which is
// either [Floating] (an absolute coordinate) or [Connected] (a reference to
// another drawing by ID). [Resolve] turns an end point into an absolute
// [Point], following chains of PathLines as needed.
//
// Only Above, At, Below, Between and PathLine drawings can be anchored to.
// CurvedLine resolves its own end points but is never a valid target; see
// [Type.Anchorable].
//
// # JSON
//
// Drawings marshal to the flat object shape used in .vnav files. Use [Decode]
// to turn a single JSON object into the concrete variant selected by its
// "type" field, and [FromRecord] for values already decoded into generic Go
// maps. Decoding does not range-check fields; run records through
// package schema first when the input is untrusted.
//
// # Concurrency
//
// [Map] is a plain Go map and is not safe for concurrent mutation. Treat maps
// handed out by the diagram parser as snapshots and [Map.Clone] them before
// editing in another goroutine.
package drawing
