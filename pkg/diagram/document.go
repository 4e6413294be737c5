package diagram

import (
	"maps"

	"github.com/google/uuid"

	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
	"github.com/matzehuels/vnav/pkg/repair"
)

// Document is an open diagram under interactive editing. Every edit leaves
// the drawing map schema-valid and free of unsatisfiable anchors.
//
// A Document is not safe for concurrent use.
type Document struct {
	parser   *Parser
	drawings drawing.Map
}

// NewDocument wraps m, which should come from a parse result. A nil parser
// selects [DefaultParser]. The document takes ownership of m.
func NewDocument(m drawing.Map, p *Parser) *Document {
	if p == nil {
		p = DefaultParser()
	}
	if m == nil {
		m = drawing.Map{}
	}
	return &Document{parser: p, drawings: m}
}

// Len returns the number of drawings.
func (d *Document) Len() int { return len(d.drawings) }

// Get returns a copy of the drawing with the given ID.
func (d *Document) Get(id string) (drawing.Drawing, bool) {
	dr, ok := d.drawings[id]
	if !ok {
		return nil, false
	}
	return drawing.Clone(dr), true
}

// Snapshot returns a deep copy of the current map, suitable for handing to
// a renderer while editing continues.
func (d *Document) Snapshot() drawing.Map { return d.drawings.Clone() }

// Add inserts a copy of dr and returns its ID. A copy with an empty ID gets
// a fresh UUID; dr itself is never modified. Add fails if the ID is taken,
// the drawing fails validation, or one of its ends cannot be anchored.
func (d *Document) Add(dr drawing.Drawing) (string, error) {
	dr = drawing.Clone(dr)
	base := dr.Common()
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	if _, exists := d.drawings[base.ID]; exists {
		return "", errors.New(errors.ErrCodeInvalidDrawing, "drawing %q already exists", base.ID)
	}
	if err := d.admit(dr); err != nil {
		return "", err
	}
	return base.ID, nil
}

// Replace swaps the drawing sharing dr's ID for dr. The edit is rejected
// when it would force any drawing out of the diagram, for example by
// turning an anchor into a type that lines cannot attach to.
func (d *Document) Replace(dr drawing.Drawing) error {
	id := drawing.ID(dr)
	if _, exists := d.drawings[id]; !exists {
		return errors.New(errors.ErrCodeNotFound, "drawing %q not found", id)
	}
	return d.admit(dr)
}

// Delete removes id and every line that depends on it, directly or through
// other lines. It returns the removed IDs, id first.
func (d *Document) Delete(id string) ([]string, error) {
	removed := repair.RemoveCascade(d.drawings, id, d.parser.Repair)
	if removed == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "drawing %q not found", id)
	}
	return removed, nil
}

// admit validates dr and commits it if the resulting map needs no repair.
func (d *Document) admit(dr drawing.Drawing) error {
	id := drawing.ID(dr)
	if err := errors.ValidateDrawingID(id); err != nil {
		return err
	}
	if rep := d.parser.Registry.ValidateDrawing(dr); !rep.OK() {
		return errors.New(errors.ErrCodeInvalidDrawing, "drawing %q: %s", id, rep.Error())
	}

	next := maps.Clone(d.drawings)
	next.Put(drawing.Clone(dr))
	if res := repair.Repair(next, d.parser.Repair); len(res.Diagnostics) > 0 {
		diag := res.Diagnostics[0]
		return errors.New(diag.Code, "%s", diag.Message)
	}
	d.drawings = next
	return nil
}
