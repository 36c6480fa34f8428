package scene

import "slices"

// Node is a member of the scene tree. Frame nodes render; virtual
// containers (syntax groups, lazy lists, repeats, custom builders) only
// produce frame node descendants. Every implementation embeds BaseNode.
type Node interface {
	ID() int32
	Tag() string
	Parent() Node
	Children() []Node
	Depth() int
	IsOnMainTree() bool
	Pipeline() Pipeline

	// FrameCount returns how many frame nodes this node contributes to its
	// nearest frame ancestor: 1 for a frame node, N for a container.
	FrameCount() int
	// GetFrameChildByIndex resolves the frame node at the local index, or
	// nil when the index is not contributed by this node.
	GetFrameChildByIndex(index int, needBuild, isCache, addToRenderTree bool) *FrameNode
	DoSetActiveChildRange(start, end, cacheStart, cacheEnd int, showCache bool)
	DoRemoveChildInRenderTree(index int, isAll bool)
	SetNodeIndexOffset(start, count int)
	OnSetCacheCount(count int, itemConstraint *LayoutConstraint)

	MarkNeedSyncRenderTree(needRebuild bool)
	MarkNeedFrameFlushDirty(flag PropertyChangeFlag)
	UpdateLayoutPropertyFlag()
	AdjustParentLayoutFlag(flag *PropertyChangeFlag)

	AttachToMainTree(p Pipeline)
	DetachFromMainTree()
	SetFreeze(freeze bool)
	IsFreeze() bool
	Release()

	base() *BaseNode
}

// mainTreeHooks is implemented by node types that react to attach and detach.
type mainTreeHooks interface {
	onAttachToMainTree()
	onDetachFromMainTree()
}

// freezeHook is implemented by node types that react to freeze changes.
type freezeHook interface {
	OnFreezeStateChange()
}

// BaseNode implements the tree bookkeeping shared by all nodes and the
// default container behavior: frame children are the concatenation of the
// children's frame children.
type BaseNode struct {
	self       Node
	id         int32
	tag        string
	parent     Node // non-owning
	children   []Node
	depth      int
	pipeline   Pipeline
	onMainTree bool
	freeze     bool
	released   bool

	indexStart int
	indexCount int
}

// Init binds the embedding node. It must be called once by every
// constructor of a type embedding BaseNode.
func (b *BaseNode) Init(self Node, tag string, id int32) {
	b.self = self
	b.tag = tag
	b.id = id
	b.depth = 1
}

func (b *BaseNode) base() *BaseNode { return b }

// ID returns the node's registry id.
func (b *BaseNode) ID() int32 { return b.id }

// Tag returns the node's component tag.
func (b *BaseNode) Tag() string { return b.tag }

// Parent returns the parent node, or nil for a root.
func (b *BaseNode) Parent() Node { return b.parent }

// Children returns the ordered child list. The slice must not be modified.
func (b *BaseNode) Children() []Node { return b.children }

// Depth returns the node's depth; roots have depth 1.
func (b *BaseNode) Depth() int { return b.depth }

// IsOnMainTree reports whether the node is attached to a pipeline.
func (b *BaseNode) IsOnMainTree() bool { return b.onMainTree }

// Pipeline returns the pipeline the node is attached to, or nil.
func (b *BaseNode) Pipeline() Pipeline { return b.pipeline }

// IsFreeze reports whether dirty propagation is paused for this node.
func (b *BaseNode) IsFreeze() bool { return b.freeze }

// IndexOffset returns the start index and frame count assigned by the
// parent's child proxy during its last build.
func (b *BaseNode) IndexOffset() (start, count int) {
	return b.indexStart, b.indexCount
}

// FrameCount sums the frame counts of the children.
func (b *BaseNode) FrameCount() int {
	total := 0
	for _, child := range b.children {
		total += child.FrameCount()
	}
	return total
}

// GetFrameChildByIndex walks the children by their frame counts.
func (b *BaseNode) GetFrameChildByIndex(index int, needBuild, isCache, addToRenderTree bool) *FrameNode {
	if index < 0 {
		return nil
	}
	for _, child := range b.children {
		count := child.FrameCount()
		if count > index {
			return child.GetFrameChildByIndex(index, needBuild, isCache, addToRenderTree)
		}
		index -= count
	}
	return nil
}

// DoSetActiveChildRange forwards the range to each child, shifted by the
// frames contributed by the earlier children.
func (b *BaseNode) DoSetActiveChildRange(start, end, cacheStart, cacheEnd int, showCache bool) {
	for _, child := range b.children {
		count := child.FrameCount()
		child.DoSetActiveChildRange(start, end, cacheStart, cacheEnd, showCache)
		start -= count
		end -= count
	}
}

// DoRemoveChildInRenderTree forwards the removal to the child owning index.
func (b *BaseNode) DoRemoveChildInRenderTree(index int, isAll bool) {
	if isAll {
		for _, child := range b.children {
			child.DoRemoveChildInRenderTree(index, true)
		}
		return
	}
	for _, child := range b.children {
		count := child.FrameCount()
		if count > index {
			child.DoRemoveChildInRenderTree(index, false)
			return
		}
		index -= count
	}
}

// SetNodeIndexOffset records the node's position in its parent's proxy.
func (b *BaseNode) SetNodeIndexOffset(start, count int) {
	b.indexStart = start
	b.indexCount = count
}

// OnSetCacheCount forwards the cache count to the children.
func (b *BaseNode) OnSetCacheCount(count int, itemConstraint *LayoutConstraint) {
	for _, child := range b.children {
		child.OnSetCacheCount(count, itemConstraint)
	}
}

// MarkNeedSyncRenderTree forwards to the parent; containers have no render tree.
func (b *BaseNode) MarkNeedSyncRenderTree(needRebuild bool) {
	if b.parent != nil {
		b.parent.MarkNeedSyncRenderTree(needRebuild)
	}
}

// MarkNeedFrameFlushDirty forwards to the parent.
func (b *BaseNode) MarkNeedFrameFlushDirty(flag PropertyChangeFlag) {
	if b.parent != nil {
		b.parent.MarkNeedFrameFlushDirty(flag)
	}
}

// UpdateLayoutPropertyFlag forwards to the children.
func (b *BaseNode) UpdateLayoutPropertyFlag() {
	for _, child := range b.children {
		child.UpdateLayoutPropertyFlag()
	}
}

// AdjustParentLayoutFlag merges the children's layout flags into flag.
func (b *BaseNode) AdjustParentLayoutFlag(flag *PropertyChangeFlag) {
	for _, child := range b.children {
		child.AdjustParentLayoutFlag(flag)
	}
}

// AddChild inserts child at slot. A negative slot or one past the end appends.
// A child that already has a parent is moved.
func (b *BaseNode) AddChild(child Node, slot int) {
	if child == nil || child == b.self {
		return
	}
	cb := child.base()
	if cb.parent != nil {
		cb.parent.base().RemoveChild(child)
	}
	cb.parent = b.self
	cb.setDepthRecursive(b.depth + 1)

	if slot < 0 || slot >= len(b.children) {
		b.children = append(b.children, child)
	} else {
		b.children = append(b.children, nil)
		copy(b.children[slot+1:], b.children[slot:])
		b.children[slot] = child
	}

	if b.onMainTree {
		child.AttachToMainTree(b.pipeline)
	}
	if b.freeze {
		child.SetFreeze(true)
	}
	b.self.MarkNeedSyncRenderTree(true)
	b.self.MarkNeedFrameFlushDirty(PropertyUpdateMeasureSelfAndParent)
}

// adoptChild inserts child at slot without marking the tree dirty.
// Containers use it to add children while their parent's proxy is
// enumerating them.
func (b *BaseNode) adoptChild(child Node, slot int) {
	cb := child.base()
	cb.parent = b.self
	cb.setDepthRecursive(b.depth + 1)
	if slot < 0 || slot >= len(b.children) {
		b.children = append(b.children, child)
	} else {
		b.children = slices.Insert(b.children, slot, child)
	}
	if b.onMainTree {
		child.AttachToMainTree(b.pipeline)
	}
	if b.freeze {
		child.SetFreeze(true)
	}
}

// dropChild removes child without marking the tree dirty.
func (b *BaseNode) dropChild(child Node) {
	idx := b.ChildIndex(child)
	if idx < 0 {
		return
	}
	b.children = slices.Delete(b.children, idx, idx+1)
	cb := child.base()
	if cb.onMainTree {
		child.DetachFromMainTree()
	}
	cb.parent = nil
	cb.setDepthRecursive(1)
}

// RemoveChild removes child, keeping the order of the remaining children.
// Returns true if the child was found and removed.
func (b *BaseNode) RemoveChild(child Node) bool {
	idx := b.ChildIndex(child)
	if idx < 0 {
		return false
	}
	b.removeAt(idx)
	return true
}

// RemoveChildAtIndex removes the child at index.
func (b *BaseNode) RemoveChildAtIndex(index int) {
	if index < 0 || index >= len(b.children) {
		return
	}
	b.removeAt(index)
}

func (b *BaseNode) removeAt(idx int) {
	child := b.children[idx]
	b.children = append(b.children[:idx], b.children[idx+1:]...)
	cb := child.base()
	if cb.onMainTree {
		child.DetachFromMainTree()
	}
	cb.parent = nil
	cb.setDepthRecursive(1)
	b.self.MarkNeedSyncRenderTree(true)
	b.self.MarkNeedFrameFlushDirty(PropertyUpdateMeasureSelfAndParent)
}

// Clean removes all children.
func (b *BaseNode) Clean() {
	if len(b.children) == 0 {
		return
	}
	children := b.children
	b.children = nil
	for _, child := range children {
		cb := child.base()
		if cb.onMainTree {
			child.DetachFromMainTree()
		}
		cb.parent = nil
		cb.setDepthRecursive(1)
	}
	b.self.MarkNeedSyncRenderTree(true)
	b.self.MarkNeedFrameFlushDirty(PropertyUpdateMeasureSelfAndParent)
}

// ChildIndex returns the position of child, or -1.
func (b *BaseNode) ChildIndex(child Node) int {
	for i, c := range b.children {
		if c == child {
			return i
		}
	}
	return -1
}

// MountToParent adds this node to parent at slot.
func (b *BaseNode) MountToParent(parent Node, slot int) {
	if parent == nil {
		return
	}
	parent.base().AddChild(b.self, slot)
}

func (b *BaseNode) setDepthRecursive(depth int) {
	b.depth = depth
	for _, child := range b.children {
		child.base().setDepthRecursive(depth + 1)
	}
}

// AttachToMainTree records the pipeline on this subtree and runs attach hooks.
func (b *BaseNode) AttachToMainTree(p Pipeline) {
	if b.onMainTree {
		return
	}
	b.onMainTree = true
	b.pipeline = p
	if h, ok := b.self.(mainTreeHooks); ok {
		h.onAttachToMainTree()
	}
	for _, child := range b.children {
		child.AttachToMainTree(p)
	}
}

// DetachFromMainTree runs detach hooks on this subtree and drops the pipeline.
func (b *BaseNode) DetachFromMainTree() {
	if !b.onMainTree {
		return
	}
	b.onMainTree = false
	if h, ok := b.self.(mainTreeHooks); ok {
		h.onDetachFromMainTree()
	}
	for _, child := range b.children {
		child.DetachFromMainTree()
	}
	b.pipeline = nil
}

// SetFreeze pauses or resumes dirty scheduling for this subtree. A node
// stays frozen while its parent is frozen.
func (b *BaseNode) SetFreeze(freeze bool) {
	parentFrozen := b.parent != nil && b.parent.IsFreeze()
	effective := freeze || parentFrozen
	if b.freeze == effective {
		return
	}
	b.freeze = effective
	if h, ok := b.self.(freezeHook); ok {
		h.OnFreezeStateChange()
	}
	for _, child := range b.children {
		child.SetFreeze(effective)
	}
}

// Release detaches the node from its parent and the pipeline, releases
// the children, and removes the subtree from the element register.
func (b *BaseNode) Release() {
	if b.released {
		return
	}
	b.released = true
	if b.parent != nil {
		b.parent.base().RemoveChild(b.self)
	}
	if b.onMainTree {
		b.self.DetachFromMainTree()
	}
	children := b.children
	b.children = nil
	for _, child := range children {
		child.base().parent = nil
		child.Release()
	}
	Register().RemoveNode(b.id)
}

// AncestorFrameNode returns the nearest frame node above n, skipping
// virtual containers.
func AncestorFrameNode(n Node) *FrameNode {
	if n == nil {
		return nil
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if f, ok := p.(*FrameNode); ok {
			return f
		}
	}
	return nil
}
