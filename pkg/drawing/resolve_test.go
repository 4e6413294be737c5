package drawing

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"

	verrors "github.com/matzehuels/vnav/pkg/errors"
)

func testMap() Map {
	m := Map{}
	m.Put(&PointAnchor{Base: Base{ID: "at", Type: TypeAt, Color: "#000000"}, X: 1, Y: 2})
	m.Put(&Between{PointAnchor: PointAnchor{Base: Base{ID: "btw", Type: TypeBetween, Color: "#000000"}, X: 10, Y: 20}, Height: 30})
	m.Put(&Line{
		Base:  Base{ID: "p1", Type: TypePathLine, Color: "#000000"},
		Start: Floating{X: 5, Y: 6},
		End:   Connected{AnchorID: "btw"},
	})
	m.Put(&Line{
		Base:  Base{ID: "p2", Type: TypePathLine, Color: "#000000"},
		Start: Connected{AnchorID: "p1", StartOfPathLine: false},
		End:   Connected{AnchorID: "p1", StartOfPathLine: true},
	})
	m.Put(&Line{
		Base:  Base{ID: "curve", Type: TypeCurvedLine, Color: "#000000"},
		Start: Floating{X: 0, Y: 0},
		End:   Floating{X: 1, Y: 1},
	})
	m.Put(&Text{Base: Base{ID: "label", Type: TypeText, Color: "#000000"}, Text: "ILS 27"})
	return m
}

func TestResolve(t *testing.T) {
	m := testMap()

	tests := []struct {
		name string
		ep   EndPoint
		want Point
	}{
		{"floating", Floating{X: -3, Y: 4}, Point{-3, 4}},
		{"point anchor", Connected{AnchorID: "at"}, Point{1, 2}},
		{"between top", Connected{AnchorID: "btw", TopOfBetween: true}, Point{10, 20}},
		{"between bottom", Connected{AnchorID: "btw", TopOfBetween: false}, Point{10, 50}},
		{"pathline start", Connected{AnchorID: "p1", StartOfPathLine: true}, Point{5, 6}},
		{"pathline end follows chain", Connected{AnchorID: "p1"}, Point{10, 50}},
		{"two hops", Connected{AnchorID: "p2", StartOfPathLine: true}, Point{10, 50}},
		{"two hops other end", Connected{AnchorID: "p2"}, Point{5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.ep, m)
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveFailures(t *testing.T) {
	m := testMap()

	tests := []struct {
		name string
		ep   EndPoint
		want error
		code verrors.Code
	}{
		{"missing anchor", Connected{AnchorID: "nope"}, ErrAnchorNotFound, verrors.ErrCodeAnchorNotFound},
		{"curved line target", Connected{AnchorID: "curve"}, ErrAnchorNotCapable, verrors.ErrCodeAnchorNotCapable},
		{"text target", Connected{AnchorID: "label"}, ErrAnchorNotCapable, verrors.ErrCodeAnchorNotCapable},
		{"nil", nil, ErrNilEndPoint, verrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.ep, m)
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve() error = %v, want %v", err, tt.want)
			}
			if got := ResolveCode(err); got != tt.code {
				t.Errorf("ResolveCode() = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestResolveCycle(t *testing.T) {
	m := Map{}
	m.Put(&Line{
		Base:  Base{ID: "a", Type: TypePathLine},
		Start: Connected{AnchorID: "b", StartOfPathLine: true},
		End:   Floating{},
	})
	m.Put(&Line{
		Base:  Base{ID: "b", Type: TypePathLine},
		Start: Connected{AnchorID: "a", StartOfPathLine: true},
		End:   Floating{},
	})

	_, err := Resolve(Connected{AnchorID: "a", StartOfPathLine: true}, m)
	if !errors.Is(err, ErrCircularAnchor) {
		t.Fatalf("Resolve() error = %v, want %v", err, ErrCircularAnchor)
	}
	if ResolveCode(err) != verrors.ErrCodeAnchorCycle {
		t.Errorf("ResolveCode() = %s", ResolveCode(err))
	}

	// The end of a is floating, so it still resolves.
	if _, err := Resolve(Connected{AnchorID: "a"}, m); err != nil {
		t.Errorf("Resolve(a.end) error: %v", err)
	}
}

func TestResolveSelfLoop(t *testing.T) {
	m := Map{}
	m.Put(&Line{
		Base:  Base{ID: "a", Type: TypePathLine},
		Start: Connected{AnchorID: "a", StartOfPathLine: true},
		End:   Floating{},
	})

	_, err := Resolve(Connected{AnchorID: "a", StartOfPathLine: true}, m)
	if !errors.Is(err, ErrCircularAnchor) {
		t.Errorf("Resolve() error = %v, want %v", err, ErrCircularAnchor)
	}
}

func TestResolveOr(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	fallback := Point{-1, -1}

	got := ResolveOr(Connected{AnchorID: "missing"}, testMap(), fallback, logger)
	if got != fallback {
		t.Errorf("ResolveOr() = %v, want fallback %v", got, fallback)
	}
	if !bytes.Contains(buf.Bytes(), []byte("unresolvable end point")) {
		t.Errorf("ResolveOr() should log a warning, got %q", buf.String())
	}

	buf.Reset()
	got = ResolveOr(Connected{AnchorID: "at"}, testMap(), fallback, logger)
	if got != (Point{1, 2}) {
		t.Errorf("ResolveOr() = %v, want {1 2}", got)
	}
	if buf.Len() != 0 {
		t.Errorf("ResolveOr() should not log on success, got %q", buf.String())
	}
}

func TestLinePoints(t *testing.T) {
	m := testMap()
	start, end, err := LinePoints(m["p1"].(*Line), m)
	if err != nil {
		t.Fatalf("LinePoints() error: %v", err)
	}
	if start != (Point{5, 6}) || end != (Point{10, 50}) {
		t.Errorf("LinePoints() = %v, %v", start, end)
	}
}
