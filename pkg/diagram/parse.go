package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
	"github.com/matzehuels/vnav/pkg/repair"
	"github.com/matzehuels/vnav/pkg/schema"
)

// Result is the outcome of parsing a diagram.
type Result struct {
	// Drawings is nil when the document could not be read at all.
	Drawings drawing.Map `json:"drawings,omitzero"`
	// Errors lists every problem found, in order: element errors first,
	// then repair diagnostics.
	Errors []string `json:"errors"`
	// Diagnostics holds the structured form of the repair messages.
	Diagnostics []repair.Diagnostic `json:"-"`
}

// Fatal reports whether the document was unreadable.
func (r *Result) Fatal() bool { return r.Drawings == nil }

// Clean reports whether the document parsed without any error.
func (r *Result) Clean() bool { return !r.Fatal() && len(r.Errors) == 0 }

// Parser parses diagrams with a fixed schema registry and repair options.
// The zero value is not usable; use [NewParser] or [DefaultParser].
type Parser struct {
	Registry *schema.Registry
	Repair   repair.Options
}

// NewParser returns a parser using reg and opts. A nil reg selects
// [schema.Default].
func NewParser(reg *schema.Registry, opts repair.Options) *Parser {
	if reg == nil {
		reg = schema.Default()
	}
	return &Parser{Registry: reg, Repair: opts}
}

// DefaultParser returns a parser with the default registry and all repair
// checks enabled.
func DefaultParser() *Parser {
	return NewParser(schema.Default(), repair.DefaultOptions())
}

// Parse parses raw with [DefaultParser].
func Parse(raw []byte) *Result { return DefaultParser().Parse(raw) }

// Open reads and parses the diagram at path with [DefaultParser].
func Open(path string) (*Result, error) { return DefaultParser().Open(path) }

// Parse validates every element of raw, builds the drawing map and repairs
// it. It never fails; problems are reported in the result.
func (p *Parser) Parse(raw []byte) *Result {
	doc, err := schema.DecodeRecord(raw)
	if err != nil {
		return &Result{Errors: []string{fmt.Sprintf("could not read diagram: %v", err)}}
	}
	elems, ok := doc.([]any)
	if !ok {
		return &Result{Errors: []string{fmt.Sprintf("%s: top level value is %s", ErrNotArray.Message, kindOf(doc))}}
	}

	res := &Result{Errors: []string{}}
	m := make(drawing.Map, len(elems))
	for i, el := range elems {
		if rep := p.Registry.Validate(schema.DrawingSchema, el); !rep.OK() {
			res.Errors = append(res.Errors, elementError(i, rep.Error()))
			continue
		}
		d, err := drawing.FromRecord(el)
		if err != nil {
			res.Errors = append(res.Errors, elementError(i, err.Error()))
			continue
		}
		m.Put(d)
	}

	fixed := repair.Repair(m, p.Repair)
	res.Drawings = fixed.Drawings
	res.Diagnostics = fixed.Diagnostics
	res.Errors = append(res.Errors, fixed.Messages()...)
	return res
}

// Read parses everything read from r.
func (p *Parser) Read(r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read diagram")
	}
	return p.Parse(raw), nil
}

// Open reads and parses the diagram at path. The error is non-nil only when
// the path is unacceptable or the file cannot be read.
func (p *Parser) Open(path string) (*Result, error) {
	if err := errors.ValidateDiagramPath(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return p.Parse(raw), nil
}

// ErrNotArray describes a diagram whose top-level value is not an array.
var ErrNotArray = errors.New(errors.ErrCodeInvalidDocument, "diagram is not an array")

func elementError(i int, details string) string {
	return fmt.Sprintf("There was an error with drawing %d: %s", i, details)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%T", v)
}
