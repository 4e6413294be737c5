package drawing

import (
	"math"
	"slices"
)

// AnchorPoint is a position other drawings can snap to, together with the
// end point that would reference it.
type AnchorPoint struct {
	Point
	Ref Connected
}

// AnchorPoints lists every attachable position in drawings, ordered by
// drawing ID. Point anchors contribute one point, Between contributes its
// top and bottom, and PathLine contributes its start and end. PathLine ends
// that fail to resolve are skipped.
func AnchorPoints(drawings Map) []AnchorPoint {
	var out []AnchorPoint
	for _, id := range drawings.IDs() {
		d := drawings[id]
		if !d.Kind().Anchorable() {
			continue
		}
		switch a := d.(type) {
		case *PointAnchor:
			out = append(out, AnchorPoint{Point{a.X, a.Y}, Connected{AnchorID: id}})
		case *Between:
			out = append(out,
				AnchorPoint{Point{a.X, a.Y}, Connected{AnchorID: id, TopOfBetween: true}},
				AnchorPoint{Point{a.X, a.Y + a.Height}, Connected{AnchorID: id}},
			)
		case *Line:
			for _, start := range []bool{true, false} {
				ref := Connected{AnchorID: id, StartOfPathLine: start}
				if p, err := Resolve(ref, drawings); err == nil {
					out = append(out, AnchorPoint{p, ref})
				}
			}
		}
	}
	return out
}

// Nearest returns the reference to the anchor point closest to p within
// radius, skipping anchors owned by any ID in exclude (typically the line
// being edited). Ties go to the first point in [AnchorPoints] order.
func Nearest(drawings Map, p Point, radius float64, exclude ...string) (Connected, bool) {
	var (
		best  Connected
		found bool
		dist  = math.Inf(1)
	)
	for _, ap := range AnchorPoints(drawings) {
		if slices.Contains(exclude, ap.Ref.AnchorID) {
			continue
		}
		d := math.Hypot(ap.X-p.X, ap.Y-p.Y)
		if d <= radius && d < dist {
			best, dist, found = ap.Ref, d, true
		}
	}
	return best, found
}
