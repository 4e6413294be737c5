package drawing

import "testing"

func TestAnchorPoints(t *testing.T) {
	m := testMap()
	points := AnchorPoints(m)

	// at: 1, btw: 2, p1: 2, p2: 2. curve and label are not anchorable.
	if len(points) != 7 {
		t.Fatalf("AnchorPoints() returned %d points, want 7: %v", len(points), points)
	}

	for _, ap := range points {
		if ap.Ref.AnchorID == "curve" || ap.Ref.AnchorID == "label" {
			t.Errorf("AnchorPoints() included non-anchorable %q", ap.Ref.AnchorID)
		}
		got, err := Resolve(ap.Ref, m)
		if err != nil {
			t.Errorf("Resolve(%v) error: %v", ap.Ref, err)
			continue
		}
		if got != ap.Point {
			t.Errorf("AnchorPoint %v resolves to %v", ap, got)
		}
	}
}

func TestNearest(t *testing.T) {
	m := testMap()

	tests := []struct {
		name    string
		p       Point
		radius  float64
		exclude []string
		want    Connected
		found   bool
	}{
		{"exact point anchor", Point{1, 2}, 1, nil, Connected{AnchorID: "at"}, true},
		{"between bottom", Point{10, 49}, 2, nil, Connected{AnchorID: "btw"}, true},
		{"between top", Point{11, 20}, 2, nil, Connected{AnchorID: "btw", TopOfBetween: true}, true},
		{"nothing in radius", Point{500, 500}, 5, nil, Connected{}, false},
		{"excluded owner", Point{5, 6}, 0.5, []string{"p1", "p2"}, Connected{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Nearest(m, tt.p, tt.radius, tt.exclude...)
			if found != tt.found || got != tt.want {
				t.Errorf("Nearest() = %v, %v; want %v, %v", got, found, tt.want, tt.found)
			}
		})
	}
}
