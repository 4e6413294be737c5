package drawing

// Default styling for drawings created from scratch.
const (
	DefaultColor       = "#000000"
	DefaultStrokeWidth = 2
	DefaultFontSize    = 14
	DefaultPlaneSize   = 24
	DefaultBetween     = 40
)

// NewDefault is like [New] but fills in the styling a freshly placed drawing
// gets in the editor, so the result passes schema validation as is. An
// empty color selects [DefaultColor].
func NewDefault(t Type, id, color string) Drawing {
	if color == "" {
		color = DefaultColor
	}
	d := New(t, id, color)
	style := LineStyle{Dash: DashSolid, StrokeWidth: DefaultStrokeWidth}
	guide := GuideLine{LineStyle: LineStyle{Dash: DashDashed, StrokeWidth: 1}, Vertical: true}

	switch v := d.(type) {
	case *PointAnchor:
		v.GuideLine = guide
	case *Between:
		v.GuideLine = guide
		v.Height = DefaultBetween
	case *Line:
		v.LineStyle = style
	case *VerticalGridLine:
		v.LineStyle = LineStyle{Dash: DashDotted, StrokeWidth: 1}
	case *HorizontalGridLine:
		v.LineStyle = LineStyle{Dash: DashDotted, StrokeWidth: 1}
	case *Plane:
		v.Size = DefaultPlaneSize
	case *Text:
		v.HorizontalAlign = AlignLeft
		v.VerticalAlign = AlignTop
		v.FontSize = DefaultFontSize
	}
	return d
}
