package drawing

import "slices"

// Type is the tag stored in a drawing's "type" field.
type Type string

// Drawing type tags.
const (
	TypeAbove              Type = "Above"
	TypeAt                 Type = "At"
	TypeBelow              Type = "Below"
	TypeBetween            Type = "Between"
	TypePathLine           Type = "PathLine"
	TypeCurvedLine         Type = "CurvedLine"
	TypeVerticalGridLine   Type = "VerticalGridLine"
	TypeHorizontalGridLine Type = "HorizontalGridLine"
	TypePlane              Type = "Plane"
	TypeText               Type = "Text"
)

// Types lists every drawing type in declaration order.
var Types = []Type{
	TypeAbove,
	TypeAt,
	TypeBelow,
	TypeBetween,
	TypePathLine,
	TypeCurvedLine,
	TypeVerticalGridLine,
	TypeHorizontalGridLine,
	TypePlane,
	TypeText,
}

// Valid reports whether t is one of the ten known drawing types.
func (t Type) Valid() bool { return slices.Contains(Types, t) }

// Anchorable reports whether other drawings may reference a drawing of this
// type from a [Connected] end point. CurvedLine is deliberately excluded.
func (t Type) Anchorable() bool {
	switch t {
	case TypeAbove, TypeAt, TypeBelow, TypeBetween, TypePathLine:
		return true
	}
	return false
}

// IsLine reports whether t is a PathLine or CurvedLine.
func (t Type) IsLine() bool { return t == TypePathLine || t == TypeCurvedLine }

// Numeric limits enforced by the schema.
const (
	MinCoordinate  = -1_000_000
	MaxCoordinate  = 1_000_000
	MaxStrokeWidth = 1000
	MaxFontSize    = 1000
)

// Dash names one of the stroke patterns a line can be drawn with.
type Dash string

// Dash patterns.
const (
	DashSolid         Dash = "solid"
	DashDotted        Dash = "dotted"
	DashDenseDotted   Dash = "denseDotted"
	DashSparseDotted  Dash = "sparseDotted"
	DashDashed        Dash = "dashed"
	DashDenseDashed   Dash = "denseDashed"
	DashSparseDashed  Dash = "sparseDashed"
	DashDashDot       Dash = "dashDot"
	DashDenseDashDot  Dash = "denseDashDot"
	DashSparseDashDot Dash = "sparseDashDot"
)

// Dashes lists every dash pattern.
var Dashes = []Dash{
	DashSolid,
	DashDotted,
	DashDenseDotted,
	DashSparseDotted,
	DashDashed,
	DashDenseDashed,
	DashSparseDashed,
	DashDashDot,
	DashDenseDashDot,
	DashSparseDashDot,
}

// HorizontalAlign positions text relative to its x coordinate.
type HorizontalAlign string

const (
	AlignLeft   HorizontalAlign = "left"
	AlignCenter HorizontalAlign = "center"
	AlignRight  HorizontalAlign = "right"
)

// VerticalAlign positions text relative to its y coordinate.
type VerticalAlign string

const (
	AlignTop    VerticalAlign = "top"
	AlignMiddle VerticalAlign = "middle"
	AlignBottom VerticalAlign = "bottom"
)

// Drawing is implemented by every drawing variant. The concrete types are
// *PointAnchor, *Between, *Line, *VerticalGridLine, *HorizontalGridLine,
// *Plane and *Text.
type Drawing interface {
	// Common returns the shared id/type/color header. Callers may modify
	// Color through the pointer; changing ID or Type of a drawing stored in
	// a Map breaks the map's keying.
	Common() *Base
	// Kind returns the type tag.
	Kind() Type
}

// Base holds the fields every drawing carries.
type Base struct {
	ID    string `json:"id"`
	Type  Type   `json:"type"`
	Color string `json:"color"`
}

// Common implements [Drawing].
func (b *Base) Common() *Base { return b }

// Kind implements [Drawing].
func (b *Base) Kind() Type { return b.Type }

// ID returns the drawing's identifier.
func ID(d Drawing) string { return d.Common().ID }

// LineStyle describes how a line is stroked.
type LineStyle struct {
	Dash        Dash    `json:"dash"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// GuideLine is the optional line drawn through a point anchor.
type GuideLine struct {
	LineStyle
	Vertical bool `json:"vertical"`
}

// PointAnchor is an Above, At or Below constraint marker.
type PointAnchor struct {
	Base
	X             float64   `json:"x"`
	Y             float64   `json:"y"`
	ShowGuideLine bool      `json:"showGuideLine"`
	GuideLine     GuideLine `json:"guideLine"`
}

// Between is a point marker with a vertical extent. Its top is at (X, Y) and
// its bottom at (X, Y+Height).
type Between struct {
	PointAnchor
	Height float64 `json:"height"`
}

// Line is a PathLine or CurvedLine. Its position is derived entirely from
// its end points.
type Line struct {
	Base
	Start EndPoint `json:"start"`
	End   EndPoint `json:"end"`
	LineStyle
}

// VerticalGridLine is a full-height reference line at X.
type VerticalGridLine struct {
	Base
	X float64 `json:"x"`
	LineStyle
}

// HorizontalGridLine is a full-width reference line at Y.
type HorizontalGridLine struct {
	Base
	Y float64 `json:"y"`
	LineStyle
}

// Plane is an aircraft glyph.
type Plane struct {
	Base
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Rotation float64 `json:"rotation"`
}

// Text is a free-standing label.
type Text struct {
	Base
	X               float64         `json:"x"`
	Y               float64         `json:"y"`
	HorizontalAlign HorizontalAlign `json:"horizontalAlign"`
	VerticalAlign   VerticalAlign   `json:"verticalAlign"`
	Text            string          `json:"text"`
	FontSize        float64         `json:"fontSize"`
}

// New returns a zero-valued drawing of type t with its Base populated, or
// nil if t is not a known type.
func New(t Type, id, color string) Drawing {
	base := Base{ID: id, Type: t, Color: color}
	switch t {
	case TypeAbove, TypeAt, TypeBelow:
		return &PointAnchor{Base: base}
	case TypeBetween:
		return &Between{PointAnchor: PointAnchor{Base: base}}
	case TypePathLine, TypeCurvedLine:
		return &Line{Base: base, Start: Floating{}, End: Floating{}}
	case TypeVerticalGridLine:
		return &VerticalGridLine{Base: base}
	case TypeHorizontalGridLine:
		return &HorizontalGridLine{Base: base}
	case TypePlane:
		return &Plane{Base: base}
	case TypeText:
		return &Text{Base: base}
	}
	return nil
}

// Clone returns a deep copy of d. End points are values, so copying the
// struct is sufficient.
func Clone(d Drawing) Drawing {
	switch v := d.(type) {
	case *PointAnchor:
		c := *v
		return &c
	case *Between:
		c := *v
		return &c
	case *Line:
		c := *v
		return &c
	case *VerticalGridLine:
		c := *v
		return &c
	case *HorizontalGridLine:
		c := *v
		return &c
	case *Plane:
		c := *v
		return &c
	case *Text:
		c := *v
		return &c
	}
	return nil
}

// Endpoints returns the start and end of a line drawing. ok is false for
// drawings that are not lines.
func Endpoints(d Drawing) (start, end EndPoint, ok bool) {
	l, isLine := d.(*Line)
	if !isLine {
		return nil, nil, false
	}
	return l.Start, l.End, true
}
