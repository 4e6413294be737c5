package diagram

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
)

func openFixture(t *testing.T) *Document {
	t.Helper()
	res := Parse(fixture(t))
	if !res.Clean() {
		t.Fatalf("fixture errors: %v", res.Errors)
	}
	return NewDocument(res.Drawings, nil)
}

func TestDocumentAdd(t *testing.T) {
	doc := openFixture(t)

	d := drawing.NewDefault(drawing.TypeAbove, "", "#abcdef")
	id, err := doc.Add(d)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Add() id %q is not a UUID", id)
	}
	if doc.Len() != 10 {
		t.Errorf("Len() = %d, want 10", doc.Len())
	}

	// The document holds its own copy.
	d.(*drawing.PointAnchor).X = 99
	got, _ := doc.Get(id)
	if got.(*drawing.PointAnchor).X != 0 {
		t.Error("document shares drawing with caller")
	}
}

func TestDocumentAddRejects(t *testing.T) {
	bad := drawing.NewDefault(drawing.TypePlane, "p2", "blue")

	dangling := drawing.NewDefault(drawing.TypePathLine, "p3", "").(*drawing.Line)
	dangling.Start = drawing.Connected{AnchorID: "nowhere"}

	onText := drawing.NewDefault(drawing.TypePathLine, "p4", "").(*drawing.Line)
	onText.End = drawing.Connected{AnchorID: "label"}

	self := drawing.NewDefault(drawing.TypeCurvedLine, "c2", "").(*drawing.Line)
	self.End = drawing.Connected{AnchorID: "c2"}

	tests := []struct {
		name string
		d    drawing.Drawing
		code errors.Code
	}{
		{"duplicate", drawing.NewDefault(drawing.TypePlane, "plane", ""), errors.ErrCodeInvalidDrawing},
		{"schema", bad, errors.ErrCodeInvalidDrawing},
		{"missing anchor", dangling, errors.ErrCodeAnchorNotFound},
		{"not capable", onText, errors.ErrCodeAnchorNotCapable},
		{"self reference", self, errors.ErrCodeAnchorSelf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := openFixture(t)
			before := doc.Snapshot()

			if _, err := doc.Add(tt.d); !errors.Is(err, tt.code) {
				t.Errorf("Add() = %v, want code %s", err, tt.code)
			}
			if !reflect.DeepEqual(doc.Snapshot(), before) {
				t.Error("rejected Add() changed the document")
			}
		})
	}
}

func TestDocumentAddLeavesCallerDrawing(t *testing.T) {
	doc := openFixture(t)

	rejected := drawing.NewDefault(drawing.TypePathLine, "", "").(*drawing.Line)
	rejected.Start = drawing.Connected{AnchorID: "nowhere"}
	if _, err := doc.Add(rejected); !errors.Is(err, errors.ErrCodeAnchorNotFound) {
		t.Fatalf("Add() = %v, want ANCHOR_NOT_FOUND", err)
	}
	if rejected.ID != "" {
		t.Errorf("rejected Add() set caller id to %q", rejected.ID)
	}

	accepted := drawing.NewDefault(drawing.TypeBelow, "", "")
	id, err := doc.Add(accepted)
	if err != nil {
		t.Fatal(err)
	}
	if drawing.ID(accepted) != "" {
		t.Errorf("Add() set caller id to %q", drawing.ID(accepted))
	}
	if _, ok := doc.Get(id); !ok {
		t.Errorf("Get(%q) missing after Add()", id)
	}
}

func TestDocumentReplace(t *testing.T) {
	doc := openFixture(t)

	moved, _ := doc.Get("at1")
	moved.(*drawing.PointAnchor).X = 42
	if err := doc.Replace(moved); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}
	got, _ := doc.Get("at1")
	if got.(*drawing.PointAnchor).X != 42 {
		t.Errorf("at1.X = %v, want 42", got.(*drawing.PointAnchor).X)
	}

	// Turning an anchor into text would strand the path attached to it.
	asText := drawing.NewDefault(drawing.TypeText, "at1", "")
	if err := doc.Replace(asText); !errors.Is(err, errors.ErrCodeAnchorNotCapable) {
		t.Errorf("Replace(text) = %v", err)
	}

	if err := doc.Replace(drawing.NewDefault(drawing.TypePlane, "ghost", "")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Replace(unknown) = %v", err)
	}
}

func TestDocumentDelete(t *testing.T) {
	doc := openFixture(t)

	removed, err := doc.Delete("at1")
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if !reflect.DeepEqual(removed, []string{"at1", "path", "curve"}) {
		t.Errorf("Delete() = %v", removed)
	}
	if doc.Len() != 6 {
		t.Errorf("Len() = %d, want 6", doc.Len())
	}

	if _, err := doc.Delete("at1"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete(again) = %v", err)
	}
}

func TestDocumentSnapshotIsolated(t *testing.T) {
	doc := openFixture(t)
	snap := doc.Snapshot()
	snap["plane"].(*drawing.Plane).Rotation = 180
	delete(snap, "label")

	got, _ := doc.Get("plane")
	if got.(*drawing.Plane).Rotation != 90 {
		t.Error("snapshot shares drawings with document")
	}
	if _, ok := doc.Get("label"); !ok {
		t.Error("snapshot shares map with document")
	}
}
