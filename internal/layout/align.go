package layout

// Alignment positions a child inside its parent. Each component is in
// [-1, 1]: -1 is the leading edge, 0 the center, 1 the trailing edge.
type Alignment struct {
	Horizontal, Vertical float64
}

var (
	TopLeft      = Alignment{Horizontal: -1, Vertical: -1}
	TopCenter    = Alignment{Horizontal: 0, Vertical: -1}
	TopRight     = Alignment{Horizontal: 1, Vertical: -1}
	CenterLeft   = Alignment{Horizontal: -1, Vertical: 0}
	Center       = Alignment{Horizontal: 0, Vertical: 0}
	CenterRight  = Alignment{Horizontal: 1, Vertical: 0}
	BottomLeft   = Alignment{Horizontal: -1, Vertical: 1}
	BottomCenter = Alignment{Horizontal: 0, Vertical: 1}
	BottomRight  = Alignment{Horizontal: 1, Vertical: 1}
)

// Position returns the offset of a child of size child aligned inside parent.
func (a Alignment) Position(parent, child SizeF) OffsetF {
	return OffsetF{
		X: (1 + a.Horizontal) * (parent.Width - child.Width) / 2,
		Y: (1 + a.Vertical) * (parent.Height - child.Height) / 2,
	}
}
