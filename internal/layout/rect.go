package layout

// RectF represents a rectangle with float coordinates.
// X and Y are the top-left corner; Width and Height are dimensions.
type RectF struct {
	X, Y          float64
	Width, Height float64
}

// Rect creates a new RectF with the given position and dimensions.
func Rect(x, y, width, height float64) RectF {
	return RectF{X: x, Y: y, Width: width, Height: height}
}

// RectFrom creates a RectF from an offset and a size.
func RectFrom(o OffsetF, s SizeF) RectF {
	return RectF{X: o.X, Y: o.Y, Width: s.Width, Height: s.Height}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.Height
}

// Offset returns the top-left corner.
func (r RectF) Offset() OffsetF {
	return OffsetF{X: r.X, Y: r.Y}
}

// Size returns the dimensions.
func (r RectF) Size() SizeF {
	return SizeF{Width: r.Width, Height: r.Height}
}

// SetOffset moves the rectangle to o.
func (r *RectF) SetOffset(o OffsetF) {
	r.X, r.Y = o.X, o.Y
}

// SetSize resizes the rectangle to s.
func (r *RectF) SetSize(s SizeF) {
	r.Width, r.Height = s.Width, s.Height
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r RectF) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point (x, y) lies within the rectangle.
// All four edges count as inside, matching pointer region semantics.
func (r RectF) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Equal compares two rects within the geometry tolerance.
func (r RectF) Equal(other RectF) bool {
	return r.Offset().Equal(other.Offset()) && r.Size().Equal(other.Size())
}

// Inset returns a new RectF inset by the given Edges.
func (r RectF) Inset(edges Edges) RectF {
	return RectF{
		X:      r.X + edges.Left,
		Y:      r.Y + edges.Top,
		Width:  max(0, r.Width-edges.Left-edges.Right),
		Height: max(0, r.Height-edges.Top-edges.Bottom),
	}
}

// Outset returns a new RectF expanded outward by the given Edges.
func (r RectF) Outset(edges Edges) RectF {
	return RectF{
		X:      r.X - edges.Left,
		Y:      r.Y - edges.Top,
		Width:  r.Width + edges.Left + edges.Right,
		Height: r.Height + edges.Top + edges.Bottom,
	}
}

// Translate returns a new RectF moved by (dx, dy).
func (r RectF) Translate(dx, dy float64) RectF {
	return RectF{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Intersect returns the intersection of two rectangles.
// If the rectangles don't overlap, returns an empty RectF.
func (r RectF) Intersect(other RectF) RectF {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right-x <= 0 || bottom-y <= 0 {
		return RectF{}
	}
	return RectF{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Union returns the smallest rectangle that contains both rectangles.
// If either rectangle is empty, returns the other rectangle.
func (r RectF) Union(other RectF) RectF {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return RectF{X: x, Y: y, Width: right - x, Height: bottom - y}
}
