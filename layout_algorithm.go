package scene

import "github.com/grindlemire/go-scene/internal/layout"

// LayoutWrapper is the view of a node a layout algorithm works on.
type LayoutWrapper interface {
	HostTag() string
	GeometryNode() *GeometryNode
	LayoutProperty() *LayoutProperty
	TotalChildCount() int
	GetOrCreateChildByIndex(index int, addToRenderTree, isCache bool) *FrameNode
	GetAllChildrenWithBuild(addToRenderTree bool) []*FrameNode
}

// LayoutAlgorithm sizes and positions a node and its children.
type LayoutAlgorithm interface {
	// MeasureContent returns the intrinsic content size, if the node has one.
	MeasureContent(contentConstraint LayoutConstraint, w LayoutWrapper) (SizeF, bool)
	// Measure measures the children and sets the node's frame size.
	Measure(w LayoutWrapper)
	// Layout positions the children and lays them out.
	Layout(w LayoutWrapper)
}

// LayoutAlgorithmWrapper adds the skip flags the node's layout state
// machine needs around an algorithm.
type LayoutAlgorithmWrapper struct {
	algorithm   LayoutAlgorithm
	skipMeasure bool
	skipLayout  bool
	expired     bool
}

// NewLayoutAlgorithmWrapper wraps a. A nil algorithm skips everything.
func NewLayoutAlgorithmWrapper(a LayoutAlgorithm) *LayoutAlgorithmWrapper {
	return &LayoutAlgorithmWrapper{algorithm: a}
}

// Algorithm returns the wrapped algorithm.
func (w *LayoutAlgorithmWrapper) Algorithm() LayoutAlgorithm { return w.algorithm }

func (w *LayoutAlgorithmWrapper) MeasureContent(c LayoutConstraint, lw LayoutWrapper) (SizeF, bool) {
	if w.skipMeasure || w.algorithm == nil {
		return SizeF{}, false
	}
	return w.algorithm.MeasureContent(c, lw)
}

func (w *LayoutAlgorithmWrapper) Measure(lw LayoutWrapper) {
	if w.skipMeasure || w.algorithm == nil {
		return
	}
	w.algorithm.Measure(lw)
}

func (w *LayoutAlgorithmWrapper) Layout(lw LayoutWrapper) {
	if w.skipLayout || w.algorithm == nil {
		return
	}
	w.algorithm.Layout(lw)
}

func (w *LayoutAlgorithmWrapper) SkipMeasure() bool { return w.skipMeasure }

func (w *LayoutAlgorithmWrapper) SkipLayout() bool { return w.skipLayout }

func (w *LayoutAlgorithmWrapper) SetSkipMeasure() { w.skipMeasure = true }

func (w *LayoutAlgorithmWrapper) SetSkipLayout() { w.skipLayout = true }

// SetNeedMeasure clears both skip flags.
func (w *LayoutAlgorithmWrapper) SetNeedMeasure() {
	w.skipMeasure = false
	w.skipLayout = false
}

// IsExpire reports whether the algorithm must be recreated on the next pass.
func (w *LayoutAlgorithmWrapper) IsExpire() bool { return w.expired }

func (w *LayoutAlgorithmWrapper) SetExpire() { w.expired = true }

// BoxLayoutAlgorithm stacks children on top of each other.
type BoxLayoutAlgorithm struct{}

func (a *BoxLayoutAlgorithm) MeasureContent(LayoutConstraint, LayoutWrapper) (SizeF, bool) {
	return SizeF{}, false
}

// Measure measures every child with the child constraint and sizes the
// node to its ideal size, or to the largest child plus padding.
func (a *BoxLayoutAlgorithm) Measure(w LayoutWrapper) {
	childConstraint := w.LayoutProperty().CreateChildConstraint()
	children := w.GetAllChildrenWithBuild(true)
	for _, child := range children {
		child.Measure(&childConstraint)
	}
	var content SizeF
	for _, child := range children {
		if child.LayoutProperty().Visibility() == Gone {
			continue
		}
		s := child.GeometryNode().MarginFrameSize()
		content.Width = max(content.Width, s.Width)
		content.Height = max(content.Height, s.Height)
	}
	PerformMeasureSelf(w, content)
}

// Layout aligns every child inside the content box. The default
// alignment is Center.
func (a *BoxLayoutAlgorithm) Layout(w LayoutWrapper) {
	lp := w.LayoutProperty()
	padding := lp.CreatePaddingAndBorder()
	inner := w.GeometryNode().FrameSize().Minus(padding).ClampNonNegative()
	align, ok := lp.Alignment()
	if !ok {
		align = layout.Center
	}
	for _, child := range w.GetAllChildrenWithBuild(false) {
		geo := child.GeometryNode()
		pos := align.Position(inner, geo.MarginFrameSize()).Add(padding.TopLeft())
		geo.SetMarginFrameOffset(pos)
		child.Layout()
	}
}

// PerformMeasureSelf sets the frame size from the self ideal size, filling
// unset dimensions from the measured content (or the children's extent)
// plus padding, clamped to the layout constraint.
func PerformMeasureSelf(w LayoutWrapper, childrenExtent SizeF) {
	lp := w.LayoutProperty()
	geo := w.GeometryNode()
	c, ok := lp.LayoutConstraint()
	if !ok {
		c = layout.Unbounded()
	}
	frame := c.SelfIdealSize
	if !frame.IsValid() {
		content := childrenExtent
		if geo.HasContent() {
			content = geo.ContentSize()
		}
		frame.UpdateIllegal(c.Constrain(content.Plus(lp.CreatePaddingAndBorder())))
	}
	geo.SetFrameSize(frame.Size())
}

// FlexLayoutAlgorithm lays children out along the main axis. Children are
// first measured unbounded on the main axis; grow and shrink then resolve
// their final main sizes and changed children are measured again.
type FlexLayoutAlgorithm struct{}

func (a *FlexLayoutAlgorithm) MeasureContent(LayoutConstraint, LayoutWrapper) (SizeF, bool) {
	return SizeF{}, false
}

func mainOf(d Direction, s SizeF) float64 {
	if d == layout.Column {
		return s.Height
	}
	return s.Width
}

func crossOf(d Direction, s SizeF) float64 {
	if d == layout.Column {
		return s.Width
	}
	return s.Height
}

func sizeOf(d Direction, main, cross float64) SizeF {
	if d == layout.Column {
		return SizeF{Width: cross, Height: main}
	}
	return SizeF{Width: main, Height: cross}
}

func visibleChildren(children []*FrameNode) []*FrameNode {
	out := children[:0:0]
	for _, child := range children {
		if child.LayoutProperty().Visibility() != Gone {
			out = append(out, child)
		}
	}
	return out
}

func (a *FlexLayoutAlgorithm) Measure(w LayoutWrapper) {
	lp := w.LayoutProperty()
	style := lp.Flex()
	dir := style.Direction
	childConstraint := lp.CreateChildConstraint()
	all := w.GetAllChildrenWithBuild(true)

	base := childConstraint
	if dir == layout.Column {
		base.MaxSize.Height = layout.Infinity
	} else {
		base.MaxSize.Width = layout.Infinity
	}
	for _, child := range all {
		child.Measure(&base)
	}

	children := visibleChildren(all)
	items := make([]layout.FlexItem, len(children))
	for i, child := range children {
		item := child.LayoutProperty().FlexItem()
		items[i] = layout.FlexItem{
			BaseSize: mainOf(dir, child.GeometryNode().MarginFrameSize()),
			Grow:     item.FlexGrow,
			Shrink:   item.FlexShrink,
		}
	}

	available := mainOf(dir, childConstraint.MaxSize)
	if cc, ok := lp.ContentConstraint(); ok {
		if dir == layout.Column && cc.SelfIdealSize.HasHeight {
			available = cc.SelfIdealSize.Height
		} else if dir == layout.Row && cc.SelfIdealSize.HasWidth {
			available = cc.SelfIdealSize.Width
		}
	}
	used := layout.DistributeMain(items, available, style.Gap, style.JustifyContent)

	crossAvailable := crossOf(dir, childConstraint.MaxSize)
	cross := 0.0
	for i, child := range children {
		align := style.AlignItems
		if s := child.LayoutProperty().FlexItem().AlignSelf; s != nil {
			align = *s
		}
		stretch := align == layout.AlignStretch && crossAvailable != layout.Infinity
		if !layout.NearEqual(items[i].MainSize, items[i].BaseSize) || stretch {
			c := childConstraint
			var ideal OptionalSizeF
			if dir == layout.Column {
				ideal.SetHeight(items[i].MainSize)
				if stretch {
					ideal.SetWidth(crossAvailable)
				}
			} else {
				ideal.SetWidth(items[i].MainSize)
				if stretch {
					ideal.SetHeight(crossAvailable)
				}
			}
			c.SelfIdealSize = ideal
			child.Measure(&c)
		}
		cross = max(cross, crossOf(dir, child.GeometryNode().MarginFrameSize()))
	}
	PerformMeasureSelf(w, sizeOf(dir, used, cross))
}

func (a *FlexLayoutAlgorithm) Layout(w LayoutWrapper) {
	lp := w.LayoutProperty()
	style := lp.Flex()
	dir := style.Direction
	padding := lp.CreatePaddingAndBorder()
	inner := w.GeometryNode().FrameSize().Minus(padding).ClampNonNegative()

	children := visibleChildren(w.GetAllChildrenWithBuild(false))
	items := make([]layout.FlexItem, len(children))
	for i, child := range children {
		items[i].BaseSize = mainOf(dir, child.GeometryNode().MarginFrameSize())
	}
	layout.DistributeMain(items, mainOf(dir, inner), style.Gap, style.JustifyContent)

	for i, child := range children {
		geo := child.GeometryNode()
		size := geo.MarginFrameSize()
		align := style.AlignItems
		if s := child.LayoutProperty().FlexItem().AlignSelf; s != nil {
			align = *s
		}
		crossPos := layout.AlignOffset(align, crossOf(dir, inner), crossOf(dir, size))
		var pos OffsetF
		if dir == layout.Column {
			pos = OffsetF{X: crossPos, Y: items[i].MainPos}
		} else {
			pos = OffsetF{X: items[i].MainPos, Y: crossPos}
		}
		geo.SetMarginFrameOffset(pos.Add(padding.TopLeft()))
		child.Layout()
	}
}
