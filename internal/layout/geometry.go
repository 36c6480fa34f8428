package layout

import "math"

// nearZero is the tolerance used when comparing float geometry.
const nearZero = 1e-5

// NearEqual reports whether a and b differ by less than the geometry tolerance.
func NearEqual(a, b float64) bool {
	return math.Abs(a-b) < nearZero
}

// NearZero reports whether v is within the geometry tolerance of zero.
func NearZero(v float64) bool {
	return math.Abs(v) < nearZero
}

// SizeF is a width and height pair.
type SizeF struct {
	Width, Height float64
}

// Size creates a SizeF.
func Size(width, height float64) SizeF {
	return SizeF{Width: width, Height: height}
}

// IsPositive reports whether both dimensions are greater than zero.
func (s SizeF) IsPositive() bool {
	return s.Width > 0 && s.Height > 0
}

// IsNonNegative reports whether neither dimension is negative.
func (s SizeF) IsNonNegative() bool {
	return s.Width >= 0 && s.Height >= 0
}

// Equal compares two sizes within the geometry tolerance.
func (s SizeF) Equal(other SizeF) bool {
	return NearEqual(s.Width, other.Width) && NearEqual(s.Height, other.Height)
}

// ClampNonNegative returns s with negative dimensions reset to zero.
func (s SizeF) ClampNonNegative() SizeF {
	return SizeF{Width: max(0, s.Width), Height: max(0, s.Height)}
}

// Minus returns s shrunk by the given edges, clamped at zero.
func (s SizeF) Minus(e Edges) SizeF {
	return SizeF{Width: max(0, s.Width-e.Horizontal()), Height: max(0, s.Height-e.Vertical())}
}

// Plus returns s grown by the given edges.
func (s SizeF) Plus(e Edges) SizeF {
	return SizeF{Width: s.Width + e.Horizontal(), Height: s.Height + e.Vertical()}
}

// OptionalSizeF is a size where either dimension may be unset.
type OptionalSizeF struct {
	Width, Height       float64
	HasWidth, HasHeight bool
}

// OptionalSize returns an OptionalSizeF with both dimensions set.
func OptionalSize(width, height float64) OptionalSizeF {
	return OptionalSizeF{Width: width, Height: height, HasWidth: true, HasHeight: true}
}

// SetWidth sets the width dimension.
func (o *OptionalSizeF) SetWidth(w float64) {
	o.Width, o.HasWidth = w, true
}

// SetHeight sets the height dimension.
func (o *OptionalSizeF) SetHeight(h float64) {
	o.Height, o.HasHeight = h, true
}

// IsValid reports whether both dimensions are set.
func (o OptionalSizeF) IsValid() bool {
	return o.HasWidth && o.HasHeight
}

// IsNull reports whether neither dimension is set.
func (o OptionalSizeF) IsNull() bool {
	return !o.HasWidth && !o.HasHeight
}

// Size returns the set dimensions, using zero for unset ones.
func (o OptionalSizeF) Size() SizeF {
	return SizeF{Width: o.Width, Height: o.Height}
}

// UpdateIllegal fills unset dimensions from s.
func (o *OptionalSizeF) UpdateIllegal(s SizeF) {
	if !o.HasWidth {
		o.SetWidth(s.Width)
	}
	if !o.HasHeight {
		o.SetHeight(s.Height)
	}
}

// OffsetF is a 2D position.
type OffsetF struct {
	X, Y float64
}

// Offset creates an OffsetF.
func Offset(x, y float64) OffsetF {
	return OffsetF{X: x, Y: y}
}

// Add returns a new OffsetF offset by other.
func (o OffsetF) Add(other OffsetF) OffsetF {
	return OffsetF{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns a new OffsetF with other subtracted.
func (o OffsetF) Sub(other OffsetF) OffsetF {
	return OffsetF{X: o.X - other.X, Y: o.Y - other.Y}
}

// Equal compares two offsets within the geometry tolerance.
func (o OffsetF) Equal(other OffsetF) bool {
	return NearEqual(o.X, other.X) && NearEqual(o.Y, other.Y)
}

// In returns true if the point is inside the given rectangle.
func (o OffsetF) In(r RectF) bool {
	return r.Contains(o.X, o.Y)
}

// Edges represents values for four sides of a box.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n float64) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal (left/right) values.
func EdgeSymmetric(v, h float64) Edges {
	return Edges{Top: v, Right: h, Bottom: v, Left: h}
}

// Horizontal returns the sum of Left and Right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the sum of Top and Bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

// IsZero returns true if all edge values are zero.
func (e Edges) IsZero() bool {
	return e.Top == 0 && e.Right == 0 && e.Bottom == 0 && e.Left == 0
}

// Add returns the per-side sum of e and other.
func (e Edges) Add(other Edges) Edges {
	return Edges{
		Top:    e.Top + other.Top,
		Right:  e.Right + other.Right,
		Bottom: e.Bottom + other.Bottom,
		Left:   e.Left + other.Left,
	}
}

// TopLeft returns the offset of the content origin inside the edges.
func (e Edges) TopLeft() OffsetF {
	return OffsetF{X: e.Left, Y: e.Top}
}

// FitWidth clamps the horizontal edges so they never exceed width.
// When left and right together are wider than width, right is reduced
// first and then left.
func (e Edges) FitWidth(width float64) Edges {
	if width < 0 {
		width = 0
	}
	if e.Left+e.Right <= width {
		return e
	}
	e.Right = max(0, width-e.Left)
	if e.Left > width {
		e.Left = width
	}
	return e
}
