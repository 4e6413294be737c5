package repair

import (
	"fmt"
	"slices"

	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
)

// end identifies one end of a PathLine.
type end struct {
	id    string
	start bool
}

// next returns the PathLine end that e resolves through, if any. Each end
// has at most one successor, so the end graph is functional.
func next(m drawing.Map, e end, skip map[string]bool) (end, bool) {
	start, stop, ok := drawing.Endpoints(m[e.id])
	if !ok {
		return end{}, false
	}
	ep := stop
	if e.start {
		ep = start
	}
	c, ok := ep.(drawing.Connected)
	if !ok || skip[c.AnchorID] {
		return end{}, false
	}
	target, ok := m[c.AnchorID]
	if !ok || target.Kind() != drawing.TypePathLine {
		return end{}, false
	}
	return end{id: c.AnchorID, start: c.StartOfPathLine}, true
}

// detectCycles finds PathLine ends whose resolution chain loops back on
// itself and returns one diagnostic per drawing owning such an end, in ID
// order. Drawings already in roots are treated as removed.
func detectCycles(m drawing.Map, roots []Diagnostic) []Diagnostic {
	const (
		white = iota
		gray
		black
	)

	skip := make(map[string]bool, len(roots))
	for _, r := range roots {
		skip[r.ID] = true
	}

	color := make(map[end]int)
	onCycle := make(map[string]end)

	visit := func(e end) {
		var path []end
		for {
			switch color[e] {
			case gray:
				i := slices.Index(path, e)
				for _, c := range path[i:] {
					if _, seen := onCycle[c.id]; !seen {
						onCycle[c.id] = c
					}
				}
				fallthrough
			case black:
				for _, p := range path {
					color[p] = black
				}
				return
			}
			color[e] = gray
			path = append(path, e)
			n, ok := next(m, e, skip)
			if !ok {
				for _, p := range path {
					color[p] = black
				}
				return
			}
			e = n
		}
	}

	for _, id := range m.IDs() {
		if skip[id] || m[id].Kind() != drawing.TypePathLine {
			continue
		}
		for _, start := range []bool{true, false} {
			if e := (end{id: id, start: start}); color[e] == white {
				visit(e)
			}
		}
	}

	var out []Diagnostic
	for _, id := range m.IDs() {
		e, ok := onCycle[id]
		if !ok {
			continue
		}
		n, _ := next(m, e, skip)
		out = append(out, Diagnostic{
			ID:       id,
			AnchorID: n.id,
			Code:     errors.ErrCodeAnchorCycle,
			Message:  fmt.Sprintf("Drawing %q was removed because its %s point is part of a circular anchor chain through %q", id, endName(e.start), n.id),
		})
	}
	return out
}
