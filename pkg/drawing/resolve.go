package drawing

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	verrors "github.com/matzehuels/vnav/pkg/errors"
)

var (
	// ErrAnchorNotFound is returned by [Resolve] when a connected end point
	// references an ID that is not in the map.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrAnchorNotCapable is returned by [Resolve] when the referenced
	// drawing exists but its type cannot be anchored to.
	ErrAnchorNotCapable = errors.New("drawing cannot be anchored to")

	// ErrCircularAnchor is returned by [Resolve] when following PathLine
	// anchors revisits an end point already on the chain.
	ErrCircularAnchor = errors.New("circular anchor chain")

	// ErrNilEndPoint is returned by [Resolve] for a nil end point.
	ErrNilEndPoint = errors.New("nil end point")
)

// ResolveCode maps a resolution error to its error code.
func ResolveCode(err error) verrors.Code {
	switch {
	case errors.Is(err, ErrAnchorNotFound):
		return verrors.ErrCodeAnchorNotFound
	case errors.Is(err, ErrAnchorNotCapable):
		return verrors.ErrCodeAnchorNotCapable
	case errors.Is(err, ErrCircularAnchor):
		return verrors.ErrCodeAnchorCycle
	}
	return verrors.ErrCodeInvalidInput
}

// Point is an absolute canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// hop identifies one end of a PathLine during chain traversal.
type hop struct {
	id    string
	start bool
}

// Resolve returns the absolute position of ep within drawings.
//
// A [Floating] end point resolves to its own coordinates. A [Connected] end
// point resolves against its anchor:
//   - Above, At, Below: the anchor's (x, y)
//   - Between: (x, y) when TopOfBetween, otherwise (x, y+height)
//   - PathLine: the anchor's start (StartOfPathLine) or end, recursively
//
// Resolution fails with [ErrAnchorNotFound], [ErrAnchorNotCapable] or
// [ErrCircularAnchor]; callers must not treat the zero Point returned
// alongside an error as a real position.
func Resolve(ep EndPoint, drawings Map) (Point, error) {
	return resolve(ep, drawings, nil)
}

func resolve(ep EndPoint, drawings Map, seen map[hop]bool) (Point, error) {
	switch e := ep.(type) {
	case Floating:
		return Point{X: e.X, Y: e.Y}, nil
	case Connected:
		d, ok := drawings[e.AnchorID]
		if !ok {
			return Point{}, fmt.Errorf("%w: %q", ErrAnchorNotFound, e.AnchorID)
		}
		if !d.Kind().Anchorable() {
			return Point{}, fmt.Errorf("%w: %q is %s", ErrAnchorNotCapable, e.AnchorID, d.Kind())
		}
		switch a := d.(type) {
		case *PointAnchor:
			return Point{X: a.X, Y: a.Y}, nil
		case *Between:
			if e.TopOfBetween {
				return Point{X: a.X, Y: a.Y}, nil
			}
			return Point{X: a.X, Y: a.Y + a.Height}, nil
		case *Line:
			h := hop{id: e.AnchorID, start: e.StartOfPathLine}
			if seen == nil {
				seen = make(map[hop]bool)
			}
			if seen[h] {
				return Point{}, fmt.Errorf("%w at %q", ErrCircularAnchor, e.AnchorID)
			}
			seen[h] = true
			if e.StartOfPathLine {
				return resolve(a.Start, drawings, seen)
			}
			return resolve(a.End, drawings, seen)
		}
		return Point{}, fmt.Errorf("%w: %q has unexpected variant %T", ErrAnchorNotCapable, e.AnchorID, d)
	case nil:
		return Point{}, ErrNilEndPoint
	}
	return Point{}, fmt.Errorf("unsupported end point %T", ep)
}

// ResolveOr resolves ep like [Resolve] but never fails: on error it logs a
// warning and returns fallback. Rendering code uses this so one bad anchor
// cannot break the whole view. A nil logger uses log.Default().
func ResolveOr(ep EndPoint, drawings Map, fallback Point, logger *log.Logger) Point {
	p, err := Resolve(ep, drawings)
	if err != nil {
		if logger == nil {
			logger = log.Default()
		}
		logger.Warn("unresolvable end point", "err", err, "fallback", fallback)
		return fallback
	}
	return p
}

// LinePoints resolves both ends of a line.
func LinePoints(l *Line, drawings Map) (start, end Point, err error) {
	if start, err = Resolve(l.Start, drawings); err != nil {
		return Point{}, Point{}, fmt.Errorf("%s start: %w", l.ID, err)
	}
	if end, err = Resolve(l.End, drawings); err != nil {
		return Point{}, Point{}, fmt.Errorf("%s end: %w", l.ID, err)
	}
	return start, end, nil
}
