package scene

import (
	"image/color"

	"github.com/grindlemire/go-scene/internal/layout"
	"github.com/grindlemire/go-scene/internal/perf"
)

// LayoutAlgorithm returns the current algorithm wrapper, creating one from
// the pattern when missing.
func (n *FrameNode) LayoutAlgorithm() *LayoutAlgorithmWrapper {
	return n.getLayoutAlgorithm(false)
}

// getLayoutAlgorithm returns the algorithm wrapper. With needReset an
// expired wrapper is replaced and the skip flags are cleared.
func (n *FrameNode) getLayoutAlgorithm(needReset bool) *LayoutAlgorithmWrapper {
	if n.layoutAlgorithm == nil || (needReset && n.layoutAlgorithm.IsExpire()) {
		n.layoutAlgorithm = NewLayoutAlgorithmWrapper(n.pattern.CreateLayoutAlgorithm())
	}
	if needReset {
		n.layoutAlgorithm.SetNeedMeasure()
	}
	return n.layoutAlgorithm
}

// Measure sizes the node under parentConstraint, or under the root
// constraint when it is nil. The pass is skipped when the resolved
// constraints did not change and no measure or layout is pending.
func (n *FrameNode) Measure(parentConstraint *LayoutConstraint) {
	n.isLayoutComplete = false
	if n.oldGeometry == nil {
		n.oldGeometry = n.geometry.Clone()
	}
	n.pattern.BeforeCreateLayoutWrapper()
	algorithm := n.getLayoutAlgorithm(true)

	if n.layoutProperty.Visibility() == Gone {
		algorithm.SetSkipMeasure()
		algorithm.SetSkipLayout()
		n.geometry.SetFrameSize(SizeF{})
		n.geometry.ResetMargin()
		n.isLayoutDirtyMarked = false
		perf.Measured("gone")
		return
	}
	if !n.isActive {
		n.layoutProperty.UpdatePropertyChangeFlag(PropertyUpdateMeasure)
	}
	if algorithm.SkipMeasure() {
		n.isLayoutDirtyMarked = false
		perf.Measured("skipped")
		return
	}

	if gt := n.layoutProperty.GeometryTransition(); gt != nil && gt.IsRunning(n) {
		gt.WillLayout(n)
	}
	preLayout, preContent := n.layoutProperty.snapshotConstraints()

	switch {
	case n.hasLayoutRect():
		n.layoutProperty.UpdateLayoutConstraintWithLayoutRect()
	case parentConstraint != nil:
		n.applyConstraint(*parentConstraint)
	default:
		n.createRootConstraint()
	}

	n.layoutProperty.UpdateContentConstraint()
	n.geometry.UpdateMargin(n.layoutProperty.CreateMargin())
	n.geometry.UpdatePaddingWithBorder(n.layoutProperty.CreatePaddingAndBorder())

	n.isConstraintNotChanged = n.layoutProperty.ConstraintEqual(preLayout, preContent)
	n.isLayoutDirtyMarked = false

	if n.isConstraintNotChanged && !n.checkNeedForceMeasureAndLayout() {
		algorithm.SetSkipMeasure()
		perf.Measured("skipped")
		return
	}

	content, _ := n.layoutProperty.ContentConstraint()
	if size, ok := algorithm.MeasureContent(content, n); ok {
		n.geometry.SetContentSize(size)
	}
	algorithm.Measure(n)

	if n.overlayNode != nil {
		child := n.layoutProperty.CreateChildConstraint()
		n.overlayNode.Measure(&child)
	}

	if n.pattern.IsNeedAdjustByAspectRatio() && !n.hasLayoutRect() {
		if ratio := n.layoutProperty.AspectRatio(); ratio > 0 {
			width := n.geometry.FrameSize().Width
			n.geometry.SetFrameSize(SizeF{Width: width, Height: width / ratio})
		}
	}
	if n.layoutProperty.PixelRound()&PixelRoundOnMeasure != 0 {
		n.geometry.SetFrameSize(layout.RoundSize(n.geometry.FrameSize()))
	}

	n.layoutProperty.clearMeasureFlags()
	n.layoutProperty.UpdatePropertyChangeFlag(PropertyUpdateLayout)
	perf.Measured("measured")
}

func (n *FrameNode) hasLayoutRect() bool {
	_, ok := n.layoutProperty.LayoutRect()
	return ok
}

// applyConstraint records the parent constraint and derives this node's
// constraint from it.
func (n *FrameNode) applyConstraint(parent LayoutConstraint) {
	n.geometry.SetParentLayoutConstraint(parent)
	n.layoutProperty.UpdateLayoutConstraint(parent)
}

func (n *FrameNode) rootSize() SizeF {
	if p := n.Pipeline(); p != nil {
		return p.RootSize()
	}
	return SizeF{}
}

func (n *FrameNode) createRootConstraint() {
	n.layoutProperty.CreateRootConstraint(n.rootSize())
}

func (n *FrameNode) checkNeedForceMeasureAndLayout() bool {
	flag := n.layoutProperty.PropertyChangeFlag()
	return flag.NeedMeasure() || flag.NeedLayout()
}

// Layout places the children, lays out the overlay and schedules the
// geometry sync of the node.
func (n *FrameNode) Layout() {
	if r, ok := n.layoutProperty.LayoutRect(); ok {
		n.geometry.SetFrameOffset(r.Offset())
	}
	gt := n.layoutProperty.GeometryTransition()
	if gt != nil && gt.IsNodeInAndActive(n) && !n.rootMeasureNode {
		n.SetSkipSyncGeometryNode(true)
	}

	algorithm := n.getLayoutAlgorithm(false)
	if n.layoutProperty.PropertyChangeFlag().NeedLayout() {
		if _, ok := n.layoutProperty.LayoutConstraint(); !ok {
			parent, hasParent := n.geometry.ParentLayoutConstraint()
			switch {
			case n.hasLayoutRect():
				n.layoutProperty.UpdateLayoutConstraintWithLayoutRect()
			case hasParent:
				n.layoutProperty.UpdateLayoutConstraint(parent)
			default:
				n.layoutProperty.UpdateLayoutConstraint(LayoutConstraint{PercentReference: n.rootSize()})
			}
			n.layoutProperty.UpdateContentConstraint()
		}
		algorithm.Layout(n)
		if n.overlayNode != nil {
			n.LayoutOverlay()
		}
		perf.LaidOut("laid_out")
	} else {
		algorithm.SetSkipLayout()
		perf.LaidOut("skipped")
	}

	willSync, needSync, config := n.OnLayoutFinish()
	p := n.Pipeline()
	if !willSync || p == nil {
		return
	}
	id := n.ID()
	p.AddSyncGeometryNodeTask(func() {
		if f := Register().FrameNode(id); f != nil {
			f.SyncGeometryNode(needSync, config)
		}
	})
	if n.SelfOrParentExpansive() {
		p.AddNeedExpandNode(n)
	}
	if gt != nil && n.rootMeasureNode {
		p.FlushSyncGeometryNodeTasks()
	}
}

// LayoutOverlay places the overlay by its alignment inside this node's
// frame, shifted by the overlay offset.
func (n *FrameNode) LayoutOverlay() {
	overlay := n.overlayNode
	if overlay == nil {
		return
	}
	align, ok := overlay.layoutProperty.Alignment()
	if !ok {
		align = TopLeft
	}
	size := n.geometry.FrameSize()
	childSize := overlay.geometry.MarginFrameSize()
	translate := align.Position(size, childSize).Add(n.layoutProperty.OverlayOffset())
	overlay.geometry.SetMarginFrameOffset(translate)
	overlay.Layout()
}

// SetSkipSyncGeometryNode stops the node's geometry from reaching the
// render context until cleared.
func (n *FrameNode) SetSkipSyncGeometryNode(skip bool) { n.needSkipSyncGeometry = skip }

// SkipSyncGeometryNode reports whether geometry sync is suppressed.
func (n *FrameNode) SkipSyncGeometryNode() bool { return n.needSkipSyncGeometry }

// SetRootMeasureNode marks the node that started the current layout task.
func (n *FrameNode) SetRootMeasureNode(root bool) { n.rootMeasureNode = root }

// IsRootMeasureNode reports whether the node started the current layout task.
func (n *FrameNode) IsRootMeasureNode() bool { return n.rootMeasureNode }

// SelfOrParentExpansive reports whether the node or its frame parent
// expands into the safe area.
func (n *FrameNode) SelfOrParentExpansive() bool {
	if opts, ok := n.layoutProperty.SafeAreaExpandOpts(); ok && opts.Expansive() {
		return true
	}
	parent := AncestorFrameNode(n)
	if parent == nil {
		return false
	}
	opts, ok := parent.layoutProperty.SafeAreaExpandOpts()
	return ok && opts.Expansive()
}

// OnLayoutFinish compares the new geometry with the pre-measure snapshot
// and decides whether the render context needs it. willSync is false when
// the node is inactive or its sync is suppressed.
func (n *FrameNode) OnLayoutFinish() (willSync, needSync bool, config DirtySwapConfig) {
	p := n.Pipeline()
	if n.isLayoutNode && p != nil {
		p.AddLayoutNode(n)
	}
	n.isLayoutComplete = true
	gt := n.layoutProperty.GeometryTransition()
	hasTransition := gt != nil && gt.IsRunning(n)
	if !n.isActive && !hasTransition {
		n.layoutAlgorithm = nil
		return false, false, config
	}
	if n.needSkipSyncGeometry && (gt == nil || !gt.IsNodeInAndActive(n)) {
		n.layoutAlgorithm = nil
		return false, false, config
	}

	config = DirtySwapConfig{
		FrameSizeChange:     true,
		FrameOffsetChange:   true,
		ContentSizeChange:   true,
		ContentOffsetChange: true,
	}
	if old := n.oldGeometry; old != nil {
		config.FrameSizeChange = !n.geometry.FrameSize().Equal(old.FrameSize())
		config.FrameOffsetChange = !n.geometry.FrameOffset().Equal(old.FrameOffset())
		config.ContentSizeChange = !n.geometry.ContentSize().Equal(old.ContentSize())
		config.ContentOffsetChange = !n.geometry.ContentOffset().Equal(old.ContentOffset())
		n.oldGeometry = nil
	}

	n.layoutProperty.CleanDirty()
	needSync = config.FrameSizeChange || config.FrameOffsetChange ||
		n.renderContext.HasPosition() || n.SelfOrParentExpansive()
	if hasTransition {
		gt.DidLayout(n)
		if gt.IsNodeOutAndActive(n) {
			n.isLayoutDirtyMarked = true
		}
		needSync = false
	}
	n.renderContext.SavePaintRect()
	if needSync {
		n.renderContext.SyncPartialProperties()
	}

	if algorithm := n.layoutAlgorithm; algorithm != nil {
		config.SkipMeasure = algorithm.SkipMeasure()
		config.SkipLayout = algorithm.SkipLayout()
	}
	if !config.SkipMeasure && !config.SkipLayout && n.inspectorID != "" && p != nil {
		p.OnLayoutCompleted(n.inspectorID)
	}
	needRerender := n.pattern.OnDirtyLayoutWrapperSwap(n, config)
	if needRerender || n.paintProperty.PropertyChangeFlag().NeedRender() {
		n.markDirtyNode(true, true, PropertyUpdateRender)
	}
	n.layoutAlgorithm = nil
	return true, needSync, config
}

// SyncGeometryNode pushes border defaults and, when needSync is set, the
// frame rect to the render context, then refreshes the focus paint state
// and the render tree.
func (n *FrameNode) SyncGeometryNode(needSync bool, config DirtySwapConfig) {
	if border, ok := n.layoutProperty.BorderWidth(); ok {
		rc := n.renderContext
		if _, has := rc.BorderColor(); !has {
			rc.UpdateBorderColor(color.Black)
		}
		if _, has := rc.BorderStyle(); !has {
			rc.UpdateBorderStyle(BorderSolid)
		}
		if _, has := rc.BorderDash(); !has {
			rc.UpdateBorderDash(BorderDash{Gap: -1, Width: -1})
		}
		ref := n.rootSize().Width
		if lc, ok := n.layoutProperty.LayoutConstraint(); ok {
			ref = lc.PercentReference.Width
		}
		rc.UpdateBorderWidth(border.Resolve(ref))
	}

	n.pattern.OnSyncGeometryNode(config)
	if needSync {
		n.pattern.BeforeSyncGeometryProperties(config)
		n.renderContext.SyncGeometryProperties(n.geometry, n.layoutProperty.PixelRound())
		n.TriggerOnSizeChangeCallback()
	}

	n.updateFocusState()

	if !n.isLayoutNode {
		n.RebuildRenderContextTree()
	}
}

func (n *FrameNode) updateFocusState() {
	if n.focusHub == nil || !n.focusHub.IsCurrentFocus() {
		return
	}
	n.focusHub.ClearFocusState()
	n.focusHub.PaintFocusState()
}

// TriggerOnSizeChangeCallback fires the size change callbacks when the
// painted size differs from the one last reported.
func (n *FrameNode) TriggerOnSizeChangeCallback() {
	if !n.isActive || !n.eventHub.HasOnSizeChanged() {
		return
	}
	current := n.renderContext.PaintRectWithoutTransform()
	if n.lastFrameRect == nil {
		n.lastFrameRect = &current
		return
	}
	last := *n.lastFrameRect
	if current.Size().Equal(last.Size()) {
		return
	}
	if len(n.sizeChangeHistory) >= maxSizeChangeHistory {
		n.sizeChangeHistory = n.sizeChangeHistory[1:]
	}
	n.sizeChangeHistory = append(n.sizeChangeHistory, SizeChange{Old: last, New: current})
	n.eventHub.FireOnSizeChanged(last, current)
	*n.lastFrameRect = current
}

// GetLayoutConstraint returns the constraint a layout task measures this
// node with: the recorded parent constraint, or one derived from the root
// size for nodes without a frame parent.
func (n *FrameNode) GetLayoutConstraint() LayoutConstraint {
	if c, ok := n.geometry.ParentLayoutConstraint(); ok && AncestorFrameNode(n) != nil {
		return c
	}
	root := n.rootSize()
	return LayoutConstraint{PercentReference: root, MaxSize: root}
}

// CreateLayoutTask measures and lays out a node queued for layout.
func (n *FrameNode) CreateLayoutTask() {
	if !n.isLayoutDirtyMarked {
		return
	}
	n.SetRootMeasureNode(true)
	n.UpdateLayoutPropertyFlag()
	n.SetSkipSyncGeometryNode(false)
	if n.hasLayoutRect() {
		n.SetActive(true, true)
		n.Measure(nil)
		n.Layout()
	} else {
		c := n.GetLayoutConstraint()
		n.Measure(&c)
		n.Layout()
	}
	n.SetRootMeasureNode(false)
}

// CreateRenderTask returns the paint task of a node queued for paint, or
// nil when it is not queued or has nothing to paint. The task cleans the
// paint flag after flushing.
func (n *FrameNode) CreateRenderTask() func() error {
	if !n.isRenderDirtyMarked {
		return nil
	}
	wrapper := n.CreatePaintWrapper()
	paint := n.paintProperty
	return func() error {
		var err error
		if wrapper != nil {
			err = wrapper.FlushRender()
		}
		paint.CleanDirty()
		perf.RenderTasksTotal.Inc()
		return err
	}
}

// CreatePaintWrapper snapshots the node for painting and clears the paint
// queue guard. It returns nil when the pattern has no paint method.
func (n *FrameNode) CreatePaintWrapper() *PaintWrapper {
	n.isRenderDirtyMarked = false
	method := n.pattern.CreateNodePaintMethod()
	if method == nil {
		return nil
	}
	return NewPaintWrapper(n.renderContext, n.geometry.Clone(), n.paintProperty.Clone(), method)
}

// TotalChildCount returns the number of frame children the proxy addresses.
func (n *FrameNode) TotalChildCount() int {
	n.proxy.Build()
	return n.proxy.TotalCount()
}

// GetOrCreateChildByIndex materializes the frame child at index. With
// addToRenderTree the child is activated.
func (n *FrameNode) GetOrCreateChildByIndex(index int, addToRenderTree, isCache bool) *FrameNode {
	child := n.proxy.GetFrameNodeByIndex(index, true, isCache, addToRenderTree)
	if child == nil {
		return nil
	}
	child.SetSkipSyncGeometryNode(n.needSkipSyncGeometry)
	if addToRenderTree {
		child.SetActive(true, false)
	}
	return child
}

// GetChildByIndex returns the frame child at index without building it.
func (n *FrameNode) GetChildByIndex(index int, isCache bool) *FrameNode {
	return n.proxy.GetFrameNodeByIndex(index, false, isCache, false)
}

// GetChildIndex returns the index child was resolved at, or -1.
func (n *FrameNode) GetChildIndex(child *FrameNode) int {
	return n.proxy.GetChildIndex(child)
}

// GetAllChildrenWithBuild returns every frame child, expanding virtual
// containers. With addToRenderTree the children are activated.
func (n *FrameNode) GetAllChildrenWithBuild(addToRenderTree bool) []*FrameNode {
	children, release := n.proxy.GetAllFrameChildren()
	defer release()
	for _, child := range children {
		child.SetSkipSyncGeometryNode(n.needSkipSyncGeometry)
		if addToRenderTree {
			child.SetActive(true, false)
		}
	}
	return children
}

// SetActiveChildRange keeps the children in [start, end] active, widened
// by the cache counts when showCache is set.
func (n *FrameNode) SetActiveChildRange(start, end, cacheStart, cacheEnd int, showCache bool) {
	n.proxy.SetActiveChildRange(start, end, cacheStart, cacheEnd, showCache)
}

// RecycleItemsByIndex forgets the resolved children in [start, end).
func (n *FrameNode) RecycleItemsByIndex(start, end int) {
	n.proxy.RecycleItemsByIndex(start, end)
}

// RemoveChildInRenderTree deactivates the child at index.
func (n *FrameNode) RemoveChildInRenderTree(index int) {
	n.proxy.RemoveChildInRenderTree(index)
}

// RemoveAllChildInRenderTree deactivates every child.
func (n *FrameNode) RemoveAllChildInRenderTree() {
	n.proxy.RemoveAllChildInRenderTree()
}
