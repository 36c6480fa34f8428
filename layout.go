// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package scene

import "github.com/grindlemire/go-scene/internal/layout"

// Direction specifies the main axis for laying out children.
type Direction = layout.Direction

const (
	Row    = layout.Row
	Column = layout.Column
)

// Justify specifies how children are distributed along the main axis.
type Justify = layout.Justify

const (
	JustifyStart        = layout.JustifyStart
	JustifyEnd          = layout.JustifyEnd
	JustifyCenter       = layout.JustifyCenter
	JustifySpaceBetween = layout.JustifySpaceBetween
	JustifySpaceAround  = layout.JustifySpaceAround
	JustifySpaceEvenly  = layout.JustifySpaceEvenly
)

// Align specifies how children are aligned along the cross axis.
type Align = layout.Align

const (
	AlignStart   = layout.AlignStart
	AlignEnd     = layout.AlignEnd
	AlignCenter  = layout.AlignCenter
	AlignStretch = layout.AlignStretch
)

// Value represents a dimension that can be fixed, percentage, or auto.
type Value = layout.Value

// Unit specifies how a Value is interpreted.
type Unit = layout.Unit

const (
	UnitAuto    = layout.UnitAuto
	UnitFixed   = layout.UnitFixed
	UnitPercent = layout.UnitPercent
)

// Geometry types.
type (
	SizeF            = layout.SizeF
	OptionalSizeF    = layout.OptionalSizeF
	OffsetF          = layout.OffsetF
	RectF            = layout.RectF
	Edges            = layout.Edges
	Alignment        = layout.Alignment
	LayoutConstraint = layout.LayoutConstraint
	FlexStyle        = layout.FlexStyle
	FlexItemStyle    = layout.FlexItemStyle
)

// Alignment presets.
var (
	TopLeft      = layout.TopLeft
	TopCenter    = layout.TopCenter
	TopRight     = layout.TopRight
	CenterLeft   = layout.CenterLeft
	Center       = layout.Center
	CenterRight  = layout.CenterRight
	BottomLeft   = layout.BottomLeft
	BottomCenter = layout.BottomCenter
	BottomRight  = layout.BottomRight
)

// Value constructors.
var (
	Auto    = layout.Auto
	Fixed   = layout.Fixed
	Percent = layout.Percent
)

// Geometry constructors.
var (
	Size         = layout.Size
	OptionalSize = layout.OptionalSize
	Offset       = layout.Offset
	Rect         = layout.Rect
	EdgeAll      = layout.EdgeAll
)
