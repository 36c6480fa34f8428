package scene

import "github.com/grindlemire/go-scene/internal/layout"

// GeometryNode holds a node's measured frame, content box, margin and
// padding, plus the constraint it was last measured with.
type GeometryNode struct {
	frame         RectF
	contentSize   SizeF
	contentOffset OffsetF
	hasContent    bool

	margin  *Edges
	padding *Edges // includes border widths

	parentConstraint   *LayoutConstraint
	parentGlobalOffset OffsetF
}

// NewGeometryNode returns an empty GeometryNode.
func NewGeometryNode() *GeometryNode {
	return &GeometryNode{}
}

// Clone returns a detached copy.
func (g *GeometryNode) Clone() *GeometryNode {
	c := *g
	if g.margin != nil {
		m := *g.margin
		c.margin = &m
	}
	if g.padding != nil {
		p := *g.padding
		c.padding = &p
	}
	if g.parentConstraint != nil {
		pc := *g.parentConstraint
		c.parentConstraint = &pc
	}
	return &c
}

// Reset clears all geometry.
func (g *GeometryNode) Reset() {
	*g = GeometryNode{}
}

// FrameRect returns the border box relative to the parent.
func (g *GeometryNode) FrameRect() RectF { return g.frame }

// SetFrameRect replaces the border box.
func (g *GeometryNode) SetFrameRect(r RectF) { g.frame = r }

// FrameSize returns the border box size.
func (g *GeometryNode) FrameSize() SizeF { return g.frame.Size() }

// SetFrameSize resizes the border box. Negative dimensions clamp to zero.
func (g *GeometryNode) SetFrameSize(s SizeF) { g.frame.SetSize(s.ClampNonNegative()) }

// FrameOffset returns the border box origin relative to the parent.
func (g *GeometryNode) FrameOffset() OffsetF { return g.frame.Offset() }

// SetFrameOffset moves the border box.
func (g *GeometryNode) SetFrameOffset(o OffsetF) { g.frame.SetOffset(o) }

// HasContent reports whether a content size was measured.
func (g *GeometryNode) HasContent() bool { return g.hasContent }

// ContentSize returns the measured content size.
func (g *GeometryNode) ContentSize() SizeF { return g.contentSize }

// SetContentSize records the measured content size.
func (g *GeometryNode) SetContentSize(s SizeF) {
	g.contentSize = s.ClampNonNegative()
	g.hasContent = true
}

// ContentOffset returns the content origin relative to the frame.
func (g *GeometryNode) ContentOffset() OffsetF { return g.contentOffset }

// SetContentOffset moves the content box.
func (g *GeometryNode) SetContentOffset(o OffsetF) { g.contentOffset = o }

// Margin returns the resolved margin; zero when unset.
func (g *GeometryNode) Margin() Edges {
	if g.margin == nil {
		return Edges{}
	}
	return *g.margin
}

// UpdateMargin records the resolved margin.
func (g *GeometryNode) UpdateMargin(m Edges) { g.margin = &m }

// ResetMargin clears the margin.
func (g *GeometryNode) ResetMargin() { g.margin = nil }

// Padding returns the resolved padding plus border; zero when unset.
func (g *GeometryNode) Padding() Edges {
	if g.padding == nil {
		return Edges{}
	}
	return *g.padding
}

// UpdatePaddingWithBorder records the resolved padding plus border.
func (g *GeometryNode) UpdatePaddingWithBorder(p Edges) { g.padding = &p }

// ResetPadding clears the padding.
func (g *GeometryNode) ResetPadding() { g.padding = nil }

// MarginFrameSize returns the frame size grown by the margin.
func (g *GeometryNode) MarginFrameSize() SizeF {
	return g.frame.Size().Plus(g.Margin())
}

// MarginFrameOffset returns the origin of the margin box.
func (g *GeometryNode) MarginFrameOffset() OffsetF {
	m := g.Margin()
	return OffsetF{X: g.frame.X - m.Left, Y: g.frame.Y - m.Top}
}

// SetMarginFrameOffset places the margin box origin at o.
func (g *GeometryNode) SetMarginFrameOffset(o OffsetF) {
	g.frame.SetOffset(o.Add(g.Margin().TopLeft()))
}

// ContentRect returns the content box relative to the frame origin.
func (g *GeometryNode) ContentRect() RectF {
	return layout.RectFrom(g.contentOffset, g.contentSize)
}

// ParentLayoutConstraint returns the constraint this node was last measured with.
func (g *GeometryNode) ParentLayoutConstraint() (LayoutConstraint, bool) {
	if g.parentConstraint == nil {
		return LayoutConstraint{}, false
	}
	return *g.parentConstraint, true
}

// SetParentLayoutConstraint records the constraint from the parent.
func (g *GeometryNode) SetParentLayoutConstraint(c LayoutConstraint) { g.parentConstraint = &c }

// ResetParentLayoutConstraint clears the recorded parent constraint.
func (g *GeometryNode) ResetParentLayoutConstraint() { g.parentConstraint = nil }

// ParentGlobalOffset returns the parent's offset in window coordinates.
func (g *GeometryNode) ParentGlobalOffset() OffsetF { return g.parentGlobalOffset }

// SetParentGlobalOffset records the parent's offset in window coordinates.
func (g *GeometryNode) SetParentGlobalOffset(o OffsetF) { g.parentGlobalOffset = o }
