package repair

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
)

// Options selects which checks run during detection.
type Options struct {
	// CheckCycles removes PathLines whose ends form a circular anchor chain
	// of any length.
	CheckCycles bool `json:"check_cycles" toml:"check_cycles"`
	// CheckCurvedLines applies the missing-anchor and self-reference checks
	// to CurvedLine ends and cascades removals into CurvedLines.
	CheckCurvedLines bool `json:"check_curved_lines" toml:"check_curved_lines"`
	// CheckAnchorKinds treats an anchor to an existing drawing that cannot
	// be anchored to (CurvedLine, grid lines, Plane, Text) as a root cause.
	CheckAnchorKinds bool `json:"check_anchor_kinds" toml:"check_anchor_kinds"`
}

// DefaultOptions enables every check.
func DefaultOptions() Options {
	return Options{CheckCycles: true, CheckCurvedLines: true, CheckAnchorKinds: true}
}

// Legacy disables every optional check: only PathLine ends are inspected,
// only for missing anchors and direct self-reference.
func Legacy() Options { return Options{} }

// Diagnostic describes why one drawing was removed.
type Diagnostic struct {
	ID       string      `json:"id"`
	AnchorID string      `json:"anchorId,omitempty"`
	Code     errors.Code `json:"code"`
	Message  string      `json:"message"`
}

// String returns the human-readable message.
func (d Diagnostic) String() string { return d.Message }

// Result is the outcome of a repair pass.
type Result struct {
	// Drawings is the pruned map.
	Drawings drawing.Map
	// Diagnostics lists one entry per removed drawing, in removal order.
	Diagnostics []Diagnostic
	// Removed lists removed IDs in removal order.
	Removed []string
}

// Messages returns the diagnostic messages in order.
func (r *Result) Messages() []string {
	out := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		out[i] = d.Message
	}
	return out
}

// Repair prunes m according to opts. m is not modified.
func Repair(m drawing.Map, opts Options) *Result {
	work := maps.Clone(m)
	if work == nil {
		work = drawing.Map{}
	}

	roots := detect(work, opts)
	if opts.CheckCycles {
		roots = append(roots, detectCycles(work, roots)...)
	}

	res := &Result{Drawings: work}
	prune(work, roots, opts, res)
	return res
}

// RemoveCascade deletes id from m in place together with every line that
// transitively depends on it, and returns the removed IDs in removal order.
// It returns nil when id is not in m.
func RemoveCascade(m drawing.Map, id string, opts Options) []string {
	if _, ok := m[id]; !ok {
		return nil
	}
	res := &Result{Drawings: m}
	prune(m, []Diagnostic{{ID: id, Code: errors.ErrCodeNotFound}}, opts, res)
	return res.Removed
}

// inspected reports whether d's ends are checked and followed under opts.
func inspected(d drawing.Drawing, opts Options) bool {
	switch d.Kind() {
	case drawing.TypePathLine:
		return true
	case drawing.TypeCurvedLine:
		return opts.CheckCurvedLines
	}
	return false
}

func endName(start bool) string {
	if start {
		return "start"
	}
	return "end"
}

// detect finds drawings with a direct anchor violation, at most one
// diagnostic per drawing, in ID order.
func detect(m drawing.Map, opts Options) []Diagnostic {
	var roots []Diagnostic
	for _, id := range m.IDs() {
		d := m[id]
		if !inspected(d, opts) {
			continue
		}
		start, end, _ := drawing.Endpoints(d)
		for i, ep := range []drawing.EndPoint{start, end} {
			c, ok := ep.(drawing.Connected)
			if !ok {
				continue
			}
			if diag, bad := checkAnchor(m, id, endName(i == 0), c, opts); bad {
				roots = append(roots, diag)
				break
			}
		}
	}
	return roots
}

func checkAnchor(m drawing.Map, id, end string, c drawing.Connected, opts Options) (Diagnostic, bool) {
	diag := Diagnostic{ID: id, AnchorID: c.AnchorID}
	target, exists := m[c.AnchorID]
	switch {
	case c.AnchorID == id:
		diag.Code = errors.ErrCodeAnchorSelf
		diag.Message = fmt.Sprintf("Drawing %q was removed because its %s point is anchored to itself (anchorId %q)", id, end, c.AnchorID)
	case !exists:
		diag.Code = errors.ErrCodeAnchorNotFound
		diag.Message = fmt.Sprintf("Drawing %q was removed because its %s point is anchored to %q, which does not exist", id, end, c.AnchorID)
	case opts.CheckAnchorKinds && !target.Kind().Anchorable():
		diag.Code = errors.ErrCodeAnchorNotCapable
		diag.Message = fmt.Sprintf("Drawing %q was removed because its %s point is anchored to %q, a %s drawing that cannot be anchored to", id, end, c.AnchorID, target.Kind())
	default:
		return Diagnostic{}, false
	}
	return diag, true
}

// prune processes the removal frontier seeded with roots. Root diagnostics
// are recorded as given unless their code is ErrCodeNotFound, which marks an
// explicit deletion that needs no report.
func prune(m drawing.Map, roots []Diagnostic, opts Options, res *Result) {
	queue := make([]string, 0, len(roots))
	queued := make(map[string]bool, len(roots))
	rootDiag := make(map[string]Diagnostic, len(roots))
	cause := make(map[string]string)

	for _, r := range roots {
		if queued[r.ID] {
			continue
		}
		queued[r.ID] = true
		queue = append(queue, r.ID)
		rootDiag[r.ID] = r
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		delete(m, id)
		res.Removed = append(res.Removed, id)
		if diag, ok := rootDiag[id]; ok {
			if diag.Code != errors.ErrCodeNotFound {
				res.Diagnostics = append(res.Diagnostics, diag)
			}
		} else {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				ID:       id,
				AnchorID: cause[id],
				Code:     errors.ErrCodeAnchorCascade,
				Message:  fmt.Sprintf("Drawing %q was removed due to removal of dependent drawing %q", id, cause[id]),
			})
		}

		for _, other := range m.IDs() {
			if queued[other] || !inspected(m[other], opts) {
				continue
			}
			if slices.Contains(drawing.AnchorIDs(m[other]), id) {
				queued[other] = true
				cause[other] = id
				queue = append(queue, other)
			}
		}
	}
}
