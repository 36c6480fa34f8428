package scene

import (
	"cmp"
	"slices"

	"github.com/grindlemire/go-scene/internal/debug"
)

// FrameNode is a renderable node. It owns its geometry, layout and paint
// properties, the pattern that supplies its behavior, its event hubs and
// the proxy over its frame children.
type FrameNode struct {
	BaseNode

	pattern        Pattern
	geometry       *GeometryNode
	oldGeometry    *GeometryNode
	layoutProperty *LayoutProperty
	paintProperty  *PaintProperty
	eventHub       *EventHub
	focusHub       *FocusHub
	renderContext  RenderContext
	proxy          *ChildProxy

	layoutAlgorithm *LayoutAlgorithmWrapper

	inspectorID   string
	isActive      bool
	isLayoutNode  bool
	measureBound  bool
	exclusiveHits bool
	overlayNode   *FrameNode

	isLayoutDirtyMarked  bool
	isRenderDirtyMarked  bool
	isPropertyDiffMarked bool
	needSyncRenderTree   bool

	isConstraintNotChanged bool
	isLayoutComplete       bool
	needSkipSyncGeometry   bool
	rootMeasureNode        bool
	hasPendingRequest      bool

	frameChildren      []*FrameNode
	predictLayoutNodes []*FrameNode

	matrixCache matrixCache

	lastFrameRect     *RectF
	sizeChangeHistory []SizeChange
}

// SizeChange is one frame size change reported to size change callbacks.
type SizeChange struct {
	Old, New RectF
}

// maxSizeChangeHistory bounds the recorded size changes.
const maxSizeChangeHistory = 5

// CreateFrameNode builds a frame node around pattern and registers it.
func CreateFrameNode(tag string, id int32, pattern Pattern) *FrameNode {
	n := newFrameNode(tag, id, pattern, false)
	Register().AddNode(n)
	n.initializePatternAndContext()
	return n
}

// CreateLayoutNode builds a layout-only frame node. Its children join the
// render tree of its nearest rendering ancestor.
func CreateLayoutNode(tag string, id int32, pattern Pattern) *FrameNode {
	n := newFrameNode(tag, id, pattern, true)
	Register().AddNode(n)
	n.initializePatternAndContext()
	return n
}

// GetOrCreateFrameNode returns the registered frame node for id when its
// tag matches, or creates one with the pattern from newPattern.
func GetOrCreateFrameNode(tag string, id int32, newPattern func() Pattern) *FrameNode {
	if n := GetFrameNode(tag, id); n != nil {
		return n
	}
	var p Pattern
	if newPattern != nil {
		p = newPattern()
	}
	if p == nil {
		p = &BasePattern{}
	}
	return CreateFrameNode(tag, id, p)
}

// GetFrameNode returns the registered frame node for id if its tag
// matches. A node under id with another tag is dropped from the register
// and from its parent.
func GetFrameNode(tag string, id int32) *FrameNode {
	n := Register().FrameNode(id)
	if n == nil {
		return nil
	}
	if n.Tag() != tag {
		Register().RemoveNode(id)
		if parent := n.Parent(); parent != nil {
			parent.base().RemoveChild(n)
		}
		return nil
	}
	return n
}

func newFrameNode(tag string, id int32, pattern Pattern, isLayoutNode bool) *FrameNode {
	n := &FrameNode{
		pattern:      pattern,
		geometry:     NewGeometryNode(),
		isLayoutNode: isLayoutNode,
	}
	n.Init(n, tag, id)
	n.layoutProperty = pattern.CreateLayoutProperty()
	if n.layoutProperty == nil {
		n.layoutProperty = NewLayoutProperty()
	}
	n.paintProperty = pattern.CreatePaintProperty()
	if n.paintProperty == nil {
		n.paintProperty = NewPaintProperty()
	}
	n.eventHub = pattern.CreateEventHub()
	if n.eventHub == nil {
		n.eventHub = NewEventHub()
	}
	n.renderContext = NewMemoryRenderContext()
	newChildProxy(n)
	return n
}

func (n *FrameNode) initializePatternAndContext() {
	n.pattern.OnAttachToFrameNode(n)
}

// Pattern returns the node's behavior delegate.
func (n *FrameNode) Pattern() Pattern { return n.pattern }

// GeometryNode returns the node's measured geometry.
func (n *FrameNode) GeometryNode() *GeometryNode { return n.geometry }

// LayoutProperty returns the node's layout inputs.
func (n *FrameNode) LayoutProperty() *LayoutProperty { return n.layoutProperty }

// PaintProperty returns the node's paint inputs.
func (n *FrameNode) PaintProperty() *PaintProperty { return n.paintProperty }

// EventHub returns the node's event hub.
func (n *FrameNode) EventHub() *EventHub { return n.eventHub }

// RenderContext returns the renderer-facing context.
func (n *FrameNode) RenderContext() RenderContext { return n.renderContext }

// SetRenderContext replaces the renderer-facing context.
func (n *FrameNode) SetRenderContext(rc RenderContext) {
	if rc == nil {
		return
	}
	n.renderContext = rc
	n.matrixCache = matrixCache{}
}

// Proxy returns the current child proxy.
func (n *FrameNode) Proxy() *ChildProxy { return n.proxy }

// FocusHub returns the focus hub, or nil when the node is not focusable.
func (n *FrameNode) FocusHub() *FocusHub { return n.focusHub }

// GetOrCreateFocusHub returns the focus hub, creating a focusable one.
// A node already on the main tree is registered with the focus manager.
func (n *FrameNode) GetOrCreateFocusHub() *FocusHub {
	if n.focusHub != nil {
		return n.focusHub
	}
	n.focusHub = newFocusHub(n, true)
	if n.IsOnMainTree() && n.Pipeline() != nil {
		if fm := n.Pipeline().FocusManager(); fm != nil {
			fm.Register(n.focusHub)
		}
	}
	return n.focusHub
}

// HostTag returns the node's tag.
func (n *FrameNode) HostTag() string { return n.Tag() }

// InspectorID returns the application-assigned id, or "".
func (n *FrameNode) InspectorID() string { return n.inspectorID }

// SetInspectorID assigns the application id used by child touch tests
// and layout-completed notifications.
func (n *FrameNode) SetInspectorID(id string) { n.inspectorID = id }

// IsActive reports whether the node takes part in the render tree.
func (n *FrameNode) IsActive() bool { return n.isActive }

// IsLayoutNode reports whether the node is layout-only.
func (n *FrameNode) IsLayoutNode() bool { return n.isLayoutNode }

// IsVisible reports whether the node's visibility is Visible.
func (n *FrameNode) IsVisible() bool {
	return n.layoutProperty.Visibility() == Visible
}

// IsAtomicNode reports whether the node renders no children.
func (n *FrameNode) IsAtomicNode() bool { return n.pattern.IsAtomicNode() }

// SetMeasureBoundary marks the node as a measure boundary regardless of
// its pattern.
func (n *FrameNode) SetMeasureBoundary(boundary bool) { n.measureBound = boundary }

// IsMeasureBoundary reports whether child re-measures stop at this node.
func (n *FrameNode) IsMeasureBoundary() bool {
	return n.measureBound || n.pattern.IsMeasureBoundary()
}

// IsRenderBoundary reports whether child repaints stop at this node.
func (n *FrameNode) IsRenderBoundary() bool { return n.pattern.IsRenderBoundary() }

// SetExclusiveEventForChild makes a hit child block its siblings unless
// it is transparent.
func (n *FrameNode) SetExclusiveEventForChild(exclusive bool) { n.exclusiveHits = exclusive }

// IsExclusiveEventForChild reports the exclusive-child hit policy.
func (n *FrameNode) IsExclusiveEventForChild() bool { return n.exclusiveHits }

// OverlayNode returns the overlay child, or nil.
func (n *FrameNode) OverlayNode() *FrameNode { return n.overlayNode }

// SetOverlayNode installs an overlay that is measured with this node's
// child constraint and placed by its alignment.
func (n *FrameNode) SetOverlayNode(overlay *FrameNode) {
	if n.overlayNode == overlay {
		return
	}
	n.overlayNode = overlay
	n.MarkNeedSyncRenderTree(false)
	n.MarkDirtyNode(PropertyUpdateMeasure)
}

// FrameChildren returns the z-ordered frame children of the last render
// tree rebuild. The slice must not be modified.
func (n *FrameNode) FrameChildren() []*FrameNode { return n.frameChildren }

// SizeChangeHistory returns the most recent size changes reported to
// size change callbacks, oldest first.
func (n *FrameNode) SizeChangeHistory() []SizeChange { return n.sizeChangeHistory }

// IsLayoutDirtyMarked reports whether the node is queued for layout.
func (n *FrameNode) IsLayoutDirtyMarked() bool { return n.isLayoutDirtyMarked }

// SetLayoutDirtyMarked overrides the layout queue guard.
func (n *FrameNode) SetLayoutDirtyMarked(marked bool) { n.isLayoutDirtyMarked = marked }

// IsRenderDirtyMarked reports whether the node is queued for paint.
func (n *FrameNode) IsRenderDirtyMarked() bool { return n.isRenderDirtyMarked }

// IsLayoutComplete reports whether the last layout pass finished.
func (n *FrameNode) IsLayoutComplete() bool { return n.isLayoutComplete }

// SetActive adds the node to or removes it from the render tree. A change
// notifies the pattern and marks the parent's render tree for sync; with
// needRebuild the parent also rebuilds after layout.
func (n *FrameNode) SetActive(active, needRebuild bool) {
	changed := false
	if active && !n.isActive {
		n.pattern.OnActive()
		n.isActive = true
		changed = true
	}
	if !active && n.isActive {
		n.pattern.OnInActive()
		n.isActive = false
		changed = true
	}
	if !changed {
		return
	}
	parent := AncestorFrameNode(n)
	if parent == nil {
		return
	}
	parent.MarkNeedSyncRenderTree(false)
	if !needRebuild {
		return
	}
	p := n.Pipeline()
	if p == nil {
		return
	}
	parentID := parent.ID()
	p.AddAfterLayoutTask(func() {
		if f := Register().FrameNode(parentID); f != nil {
			f.RebuildRenderContextTree()
		}
	})
}

// SetVisibility updates the visibility, marks the node dirty and notifies
// the pattern.
func (n *FrameNode) SetVisibility(v Visibility) {
	if n.layoutProperty.Visibility() == v {
		return
	}
	n.layoutProperty.UpdateVisibility(v)
	n.pattern.OnVisibleChange(v == Visible)
	if parent := AncestorFrameNode(n); parent != nil {
		parent.MarkNeedSyncRenderTree(false)
	}
	n.MarkDirtyNode(PropertyUpdateMeasure)
}

// RequestFrame asks the pipeline for a frame, or remembers the request
// until the node is attached.
func (n *FrameNode) RequestFrame() {
	if n.IsOnMainTree() && n.Pipeline() != nil {
		n.Pipeline().RequestFrame()
		return
	}
	n.hasPendingRequest = true
}

// AddPredictLayoutNode records a node laid out ahead of time while this
// node was off the main tree. It is re-queued on attach.
func (n *FrameNode) AddPredictLayoutNode(node *FrameNode) {
	if node == nil {
		return
	}
	n.predictLayoutNodes = append(n.predictLayoutNodes, node)
}

// ResetPredictNodes drops the recorded predict nodes and clears their
// layout queue guards.
func (n *FrameNode) ResetPredictNodes() {
	nodes := n.predictLayoutNodes
	n.predictLayoutNodes = nil
	for _, node := range nodes {
		node.isLayoutDirtyMarked = false
	}
}

// MarkModifyDone notifies the pattern that a batch of property updates
// has been applied.
func (n *FrameNode) MarkModifyDone() {
	n.pattern.OnModifyDone()
}

// FrameCount is 1: a frame node contributes itself.
func (n *FrameNode) FrameCount() int { return 1 }

// GetFrameChildByIndex returns the node itself for index 0.
func (n *FrameNode) GetFrameChildByIndex(index int, needBuild, isCache, addToRenderTree bool) *FrameNode {
	if index != 0 {
		return nil
	}
	return n
}

// DoSetActiveChildRange activates the node when index 0 lies in the
// range, widened by the cache counts when showCache is set.
func (n *FrameNode) DoSetActiveChildRange(start, end, cacheStart, cacheEnd int, showCache bool) {
	if showCache {
		start -= cacheStart
		end += cacheEnd
	}
	if start <= end {
		n.SetActive(!(start > 0 || end < 0), false)
		return
	}
	n.SetActive(!(end < 0 && start > 0), false)
}

// DoRemoveChildInRenderTree deactivates the node.
func (n *FrameNode) DoRemoveChildInRenderTree(index int, isAll bool) {
	n.SetActive(false, false)
}

// OnSetCacheCount forwards the cache count through the proxy.
func (n *FrameNode) OnSetCacheCount(count int, itemConstraint *LayoutConstraint) {
	n.proxy.SetCacheCount(count, itemConstraint)
}

// MarkNeedSyncRenderTree marks the render tree stale. With needRebuild the
// child proxy is rebuilt from the current children.
func (n *FrameNode) MarkNeedSyncRenderTree(needRebuild bool) {
	if needRebuild {
		n.proxy.ResetChildren(true)
	}
	n.needSyncRenderTree = true
}

// MarkNeedFrameFlushDirty marks the node dirty with flag.
func (n *FrameNode) MarkNeedFrameFlushDirty(flag PropertyChangeFlag) {
	n.MarkDirtyNode(flag)
}

// generateOneDepthVisibleFrame appends the visible frame nodes that node
// contributes at one render-tree depth.
func generateOneDepthVisibleFrame(node Node, out []*FrameNode) []*FrameNode {
	f, ok := node.(*FrameNode)
	if !ok {
		for _, child := range node.Children() {
			out = generateOneDepthVisibleFrame(child, out)
		}
		return out
	}
	if f.isLayoutNode {
		for _, child := range f.Children() {
			out = generateOneDepthVisibleFrame(child, out)
		}
		if f.overlayNode != nil {
			out = append(out, f.overlayNode)
		}
		return out
	}
	if !f.isActive || (!f.IsVisible() && !f.renderContext.HasTransitionOutAnimation()) {
		return out
	}
	return append(out, f)
}

// RebuildRenderContextTree recomputes the z-ordered frame children and
// pushes them to the render context when the render tree is stale.
func (n *FrameNode) RebuildRenderContextTree() {
	if !n.needSyncRenderTree {
		return
	}
	var children []*FrameNode
	for _, child := range n.Children() {
		children = generateOneDepthVisibleFrame(child, children)
	}
	slices.SortStableFunc(children, func(a, b *FrameNode) int {
		return cmp.Compare(a.renderContext.ZIndex(), b.renderContext.ZIndex())
	})
	if n.overlayNode != nil && n.overlayNode.IsVisible() {
		children = append(children, n.overlayNode)
	}
	n.frameChildren = children
	n.renderContext.RebuildFrame(children)
	n.pattern.OnRebuildFrame()
	n.needSyncRenderTree = false
}

func (n *FrameNode) onAttachToMainTree() {
	n.eventHub.fireOnAttach()
	n.eventHub.fireOnAppear()
	n.pattern.OnAttachToMainTree()
	p := n.Pipeline()
	if n.focusHub != nil && p != nil {
		if fm := p.FocusManager(); fm != nil {
			fm.Register(n.focusHub)
		}
	}
	if n.isActive && CurrentSystemProperties().DeveloperMode {
		debug.Log("attach %s(%d) rect=%v", n.Tag(), n.ID(), n.geometry.FrameRect())
	}
	if _, ok := n.geometry.ParentLayoutConstraint(); ok {
		n.layoutProperty.UpdatePropertyChangeFlag(PropertyUpdateMeasureSelf)
	}
	if p == nil {
		return
	}
	predict := n.predictLayoutNodes
	n.predictLayoutNodes = nil
	for _, node := range predict {
		if node.isLayoutDirtyMarked {
			p.AddDirtyLayoutNode(node)
		}
	}
	if n.isPropertyDiffMarked {
		p.AddDirtyPropertyNode(n)
	}
	if n.hasPendingRequest {
		p.RequestFrame()
		n.hasPendingRequest = false
	}
}

func (n *FrameNode) onDetachFromMainTree() {
	if p := n.Pipeline(); p != nil {
		if fm := p.FocusManager(); n.focusHub != nil && fm != nil {
			fm.Unregister(n.focusHub)
		}
		p.RemoveDirtyNode(n)
	}
	n.isLayoutDirtyMarked = false
	n.isRenderDirtyMarked = false
	n.pattern.OnDetachFromMainTree()
	n.eventHub.fireOnDetach()
	n.eventHub.fireOnDisappear()
}

// Release detaches the node, releases its subtree and unregisters it.
func (n *FrameNode) Release() {
	if n.released {
		return
	}
	n.BaseNode.Release()
	n.pattern.OnDetachFromFrameNode(n)
}
