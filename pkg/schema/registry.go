package schema

import (
	"regexp"
	"slices"

	"github.com/matzehuels/vnav/pkg/drawing"
)

// Names of the dispatching schemas accepted by [Registry.Validate].
const (
	DrawingSchema  = "Drawing"
	EndPointSchema = "EndPoint"
)

// Color patterns. The loose pattern is not anchored at the end, so
// "#ffffffXYZ" passes; existing files rely on this.
const (
	LooseColorPattern  = `^#[0-9a-fA-F]{6}`
	StrictColorPattern = `^#[0-9a-fA-F]{6}$`
)

// Options tune registry construction.
type Options struct {
	// StrictColor anchors the color pattern at both ends.
	StrictColor bool
}

// Registry holds the schema of every drawing variant and shared fragment.
type Registry struct {
	opts     Options
	schemas  map[string]*Schema
	drawing  *Union
	endPoint *Union
}

var defaultRegistry = NewRegistry(Options{})

// Default returns the shared registry built with zero Options.
func Default() *Registry { return defaultRegistry }

// NewRegistry builds the full schema set.
func NewRegistry(opts Options) *Registry {
	colorRe := regexp.MustCompile(LooseColorPattern)
	if opts.StrictColor {
		colorRe = regexp.MustCompile(StrictColorPattern)
	}

	coord := &Range{Min: drawing.MinCoordinate, Max: drawing.MaxCoordinate}
	stroke := &Range{Min: 0, Max: drawing.MaxStrokeWidth}
	font := &Range{Min: 0, Max: drawing.MaxFontSize}
	nonNegative := AtLeast(0)

	base := &Schema{
		Name: "DrawingBase",
		Fields: []Field{
			{Name: "id", Kind: KindString, MinLength: 1},
			{Name: "type", Kind: KindString},
			{Name: "color", Kind: KindString, Pattern: colorRe},
		},
	}

	lineStyle := &Schema{
		Name: "LineStyle",
		Fields: []Field{
			{Name: "dash", Kind: KindString, Enum: dashNames()},
			{Name: "strokeWidth", Kind: KindNumber, Range: stroke},
		},
	}

	guideLine := &Schema{
		Name:   "GuideLine",
		AllOf:  []*Schema{lineStyle},
		Fields: []Field{{Name: "vertical", Kind: KindBool}},
	}

	floating := &Schema{
		Name: "FloatingEndPoint",
		Fields: []Field{
			{Name: "connected", Kind: KindBool},
			{Name: "x", Kind: KindNumber, Range: coord},
			{Name: "y", Kind: KindNumber, Range: coord},
		},
	}

	connected := &Schema{
		Name: "ConnectedEndPoint",
		Fields: []Field{
			{Name: "connected", Kind: KindBool},
			{Name: "anchorId", Kind: KindString, MinLength: 1},
			{Name: "topOfBetween", Kind: KindBool},
			{Name: "startOfPathLine", Kind: KindBool},
		},
	}

	endPoint := &Union{
		Name:    EndPointSchema,
		Label:   "end point kind",
		Tag:     "connected",
		TagKind: KindBool,
		Variants: map[string]*Schema{
			"false": floating,
			"true":  connected,
		},
	}

	x := Field{Name: "x", Kind: KindNumber, Range: coord}
	y := Field{Name: "y", Kind: KindNumber, Range: coord}
	pointFields := []Field{
		x, y,
		{Name: "showGuideLine", Kind: KindBool},
		{Name: "guideLine", Kind: KindObject, Schema: guideLine},
	}
	lineFields := []Field{
		{Name: "start", Kind: KindObject, Union: endPoint},
		{Name: "end", Kind: KindObject, Union: endPoint},
	}

	variant := func(t drawing.Type, fragments []*Schema, fields ...Field) *Schema {
		return &Schema{Name: string(t), AllOf: append([]*Schema{base}, fragments...), Fields: fields}
	}

	variants := []*Schema{
		variant(drawing.TypeAbove, nil, pointFields...),
		variant(drawing.TypeAt, nil, pointFields...),
		variant(drawing.TypeBelow, nil, pointFields...),
		variant(drawing.TypeBetween, nil, append(slices.Clone(pointFields),
			Field{Name: "height", Kind: KindNumber, Range: &nonNegative})...),
		variant(drawing.TypePathLine, []*Schema{lineStyle}, lineFields...),
		variant(drawing.TypeCurvedLine, []*Schema{lineStyle}, lineFields...),
		variant(drawing.TypeVerticalGridLine, []*Schema{lineStyle}, x),
		variant(drawing.TypeHorizontalGridLine, []*Schema{lineStyle}, y),
		variant(drawing.TypePlane, nil,
			x, y,
			Field{Name: "size", Kind: KindNumber, Range: &Range{Min: 0, Max: drawing.MaxCoordinate}},
			Field{Name: "rotation", Kind: KindNumber, Range: coord},
		),
		variant(drawing.TypeText, nil,
			x, y,
			Field{Name: "horizontalAlign", Kind: KindString, Enum: []string{
				string(drawing.AlignLeft), string(drawing.AlignCenter), string(drawing.AlignRight),
			}},
			Field{Name: "verticalAlign", Kind: KindString, Enum: []string{
				string(drawing.AlignTop), string(drawing.AlignMiddle), string(drawing.AlignBottom),
			}},
			Field{Name: "text", Kind: KindString},
			Field{Name: "fontSize", Kind: KindNumber, Range: font},
		),
	}

	r := &Registry{
		opts:    opts,
		schemas: make(map[string]*Schema),
		drawing: &Union{
			Name:     DrawingSchema,
			Label:    "drawing type",
			Tag:      "type",
			TagKind:  KindString,
			Variants: make(map[string]*Schema),
		},
		endPoint: endPoint,
	}
	for _, s := range []*Schema{base, lineStyle, guideLine, floating, connected} {
		r.schemas[s.Name] = s
	}
	for _, s := range variants {
		r.schemas[s.Name] = s
		r.drawing.Variants[s.Name] = s
	}
	return r
}

// Options returns the options the registry was built with.
func (r *Registry) Options() Options { return r.opts }

// Schema returns the named schema (a drawing type or fragment).
func (r *Registry) Schema(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns every registered schema name, including the two unions.
func (r *Registry) Names() []string {
	names := []string{DrawingSchema, EndPointSchema}
	for name := range r.schemas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidateDrawing validates a drawing built in code, such as one the user
// just created interactively, before it enters a map.
func (r *Registry) ValidateDrawing(d drawing.Drawing) *Report {
	rec, err := drawing.Record(d)
	if err != nil {
		rep := &Report{}
		rep.add("", "cannot encode drawing: %v", err)
		return rep
	}
	return r.Validate(DrawingSchema, rec)
}

func dashNames() []string {
	out := make([]string, len(drawing.Dashes))
	for i, d := range drawing.Dashes {
		out[i] = string(d)
	}
	return out
}
