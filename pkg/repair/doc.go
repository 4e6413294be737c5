// Package repair removes drawings whose anchor references cannot be
// satisfied, so that every line left in a diagram resolves.
//
// # Overview
//
// [Repair] runs in two phases over a [drawing.Map] whose entries have
// already passed schema validation:
//
//  1. Detection finds root causes: a line end anchored to its own drawing,
//     to an ID that does not exist, to a drawing type that cannot be
//     anchored to, or onto a circular chain of PathLine ends.
//  2. Removal processes a frontier. Each popped ID is deleted and every
//     remaining line anchored to it joins the frontier, so removal is
//     transitively complete however deep the dependency chain.
//
// Every removal produces a [Diagnostic]. Root causes carry a specific code
// and message; cascaded removals carry [errors.ErrCodeAnchorCascade].
//
// # Options
//
// [DefaultOptions] enables all checks. [Legacy] reproduces the narrower
// pass used by older versions of the editor, which only looked at PathLine
// ends for missing anchors and direct self-reference and left longer cycles
// to crash the renderer.
//
// # Guarantees
//
// The input map is never modified; the result map shares unchanged
// drawings with it. Each ID enters the frontier at most once, so the pass
// is O(N²) in the worst case and always terminates. Repairing a repaired
// map with the same options removes nothing.
//
// [errors.ErrCodeAnchorCascade]: github.com/matzehuels/vnav/pkg/errors.ErrCodeAnchorCascade
package repair
