package scene

import "github.com/grindlemire/go-scene/internal/debug"

// MarkDirtyNode records flag on the node and schedules the work it
// implies. A frozen node only stores the flag. A flag asking for a
// property diff queues the node for the diff pass once.
func (n *FrameNode) MarkDirtyNode(flag PropertyChangeFlag) {
	if n.IsFreeze() {
		n.layoutProperty.UpdatePropertyChangeFlag(flag)
		n.paintProperty.UpdatePropertyChangeFlag(flag)
		return
	}
	if flag.NeedMakePropertyDiff() {
		if n.isPropertyDiffMarked {
			return
		}
		p := n.Pipeline()
		if p == nil {
			return
		}
		p.AddDirtyPropertyNode(n)
		n.isPropertyDiffMarked = true
		return
	}
	n.markDirtyNode(n.IsMeasureBoundary(), n.IsRenderBoundary(), flag)
}

// markDirtyNode merges flag into both properties and either bubbles the
// request to the parent, queues the node for layout, or falls through to
// a paint-only request.
func (n *FrameNode) markDirtyNode(isMeasureBoundary, isRenderBoundary bool, flag PropertyChangeFlag) {
	n.layoutProperty.UpdatePropertyChangeFlag(flag)
	n.paintProperty.UpdatePropertyChangeFlag(flag)
	layoutFlag := n.layoutProperty.PropertyChangeFlag()
	paintFlag := n.paintProperty.PropertyChangeFlag()
	if (layoutFlag | paintFlag).NoChanged() {
		return
	}
	p := n.Pipeline()
	if p == nil {
		return
	}

	if layoutFlag.NeedRequestMeasureAndLayout() {
		if !isMeasureBoundary && n.IsNeedRequestParentMeasure() {
			if n.RequestParentDirty() {
				return
			}
		}
		if CurrentSystemProperties().DebugBoundary && isMeasureBoundary {
			debug.Log("measure boundary %s(%d) absorbs %s", n.Tag(), n.ID(), layoutFlag)
		}
		if n.isLayoutDirtyMarked {
			return
		}
		n.isLayoutDirtyMarked = true
		p.AddDirtyLayoutNode(n)
		return
	}
	n.layoutProperty.CleanDirty()
	n.MarkNeedRender(isRenderBoundary)
}

// MarkNeedRenderOnly requests a repaint without touching layout.
func (n *FrameNode) MarkNeedRenderOnly() {
	n.MarkNeedRender(n.IsRenderBoundary())
}

// MarkNeedRender sets the render flag. A render boundary queues itself;
// any other node asks its nearest frame ancestor to repaint. Nodes already
// queued for layout or paint do nothing more.
func (n *FrameNode) MarkNeedRender(isRenderBoundary bool) {
	p := n.Pipeline()
	if p == nil {
		return
	}
	n.paintProperty.UpdatePropertyChangeFlag(PropertyUpdateRender)
	if n.isRenderDirtyMarked || n.isLayoutDirtyMarked {
		return
	}
	n.isRenderDirtyMarked = true
	if isRenderBoundary {
		p.AddDirtyRenderNode(n)
		return
	}
	if parent := AncestorFrameNode(n); parent != nil {
		parent.MarkDirtyNode(PropertyUpdateRenderByChildRequest)
	}
}

// RequestParentDirty asks the nearest frame ancestor to re-measure. It
// reports false when there is no such ancestor.
func (n *FrameNode) RequestParentDirty() bool {
	parent := AncestorFrameNode(n)
	if parent == nil {
		return false
	}
	parent.MarkDirtyNode(PropertyUpdateByChildRequest)
	return true
}

// IsNeedRequestParentMeasure reports whether the node's pending layout
// change can alter the space its parent reserved. A node dirtied only by
// a child request keeps its size when it has a fixed ideal size.
func (n *FrameNode) IsNeedRequestParentMeasure() bool {
	flag := n.layoutProperty.PropertyChangeFlag()
	if flag == PropertyUpdateByChildRequest && n.layoutProperty.HasFixedIdealSize() {
		return false
	}
	return flag.NeedRequestParentMeasure()
}

// OnFreezeStateChange queues the node on the pipeline's freeze list when
// it was unfrozen with flags stored.
func (n *FrameNode) OnFreezeStateChange() {
	if n.IsFreeze() {
		return
	}
	flag := n.layoutProperty.PropertyChangeFlag() | n.paintProperty.PropertyChangeFlag()
	if flag.NoChanged() {
		return
	}
	if p := n.Pipeline(); p != nil {
		p.AddDirtyFreezeNode(n)
	}
}

// ProcessFreezeNode replays the stored flags after an unfreeze.
func (n *FrameNode) ProcessFreezeNode() {
	n.MarkDirtyNode(PropertyUpdateNormal)
}

// ProcessPropertyDiff reconciles a queued property diff: the pattern is
// told the modification is done and the node is marked dirty with its
// accumulated flags.
func (n *FrameNode) ProcessPropertyDiff() {
	if !n.isPropertyDiffMarked {
		return
	}
	n.MarkModifyDone()
	n.MarkDirtyNode(PropertyUpdateNormal)
	n.isPropertyDiffMarked = false
}

// UpdateLayoutPropertyFlag promotes a child-requested re-measure to a full
// MEASURE when any descendant carries a flag that forces its parent to
// re-measure.
func (n *FrameNode) UpdateLayoutPropertyFlag() {
	self := n.layoutProperty.PropertyChangeFlag()
	if !self.UpdateByChildRequest() {
		return
	}
	if self.ForceParentMeasure() {
		return
	}
	flag := PropertyUpdateNormal
	for _, child := range n.Children() {
		child.UpdateLayoutPropertyFlag()
		child.AdjustParentLayoutFlag(&flag)
	}
	if flag.ForceParentMeasure() {
		n.layoutProperty.UpdatePropertyChangeFlag(PropertyUpdateMeasure)
	}
}

// AdjustParentLayoutFlag merges the node's layout flag into flag.
func (n *FrameNode) AdjustParentLayoutFlag(flag *PropertyChangeFlag) {
	*flag |= n.layoutProperty.PropertyChangeFlag()
}
