package scene

import (
	"maps"
	"slices"
)

// SyntaxNode groups children without rendering, as for-each and if/else
// blocks do. It contributes the frames of its children.
type SyntaxNode struct {
	BaseNode
}

// NewSyntaxNode creates and registers a syntax node.
func NewSyntaxNode(tag string, id int32) *SyntaxNode {
	n := &SyntaxNode{}
	n.Init(n, tag, id)
	Register().AddNode(n)
	return n
}

// LazyDataSource supplies the items of a LazyForEachNode.
type LazyDataSource interface {
	TotalCount() int
	// BuildItem returns the node for index. It must contribute one frame.
	BuildItem(index int) Node
}

// LazyForEachNode builds its items on demand from a data source. Built
// items are children in index order; items outside the active range are
// kept as cached while inside the cache range and dropped beyond it.
type LazyForEachNode struct {
	BaseNode

	source         LazyDataSource
	items          map[int]Node
	cached         map[int]bool
	cacheCount     int
	itemConstraint *LayoutConstraint
}

// NewLazyForEachNode creates and registers a lazy list over source.
func NewLazyForEachNode(tag string, id int32, source LazyDataSource) *LazyForEachNode {
	n := &LazyForEachNode{
		source: source,
		items:  make(map[int]Node),
		cached: make(map[int]bool),
	}
	n.Init(n, tag, id)
	Register().AddNode(n)
	return n
}

// FrameCount is the source's item count, built or not.
func (n *LazyForEachNode) FrameCount() int {
	if n.source == nil {
		return 0
	}
	return n.source.TotalCount()
}

// CacheCount returns the count set by the scrolling parent.
func (n *LazyForEachNode) CacheCount() int { return n.cacheCount }

// ItemConstraint returns the constraint prebuilt items are measured with.
func (n *LazyForEachNode) ItemConstraint() *LayoutConstraint { return n.itemConstraint }

// IsCached reports whether the item at index is built but off screen.
func (n *LazyForEachNode) IsCached(index int) bool { return n.cached[index] }

// BuiltIndices returns the indices of the built items in order.
func (n *LazyForEachNode) BuiltIndices() []int {
	return slices.Sorted(maps.Keys(n.items))
}

// slotFor returns the child position an item at index takes.
func (n *LazyForEachNode) slotFor(index int) int {
	slot := 0
	for i := range n.items {
		if i < index {
			slot++
		}
	}
	return slot
}

// GetFrameChildByIndex returns the item at index, building it when
// needBuild is set. With isCache the item is kept as cached; otherwise it
// becomes active, and with addToRenderTree the host's render tree is
// marked stale.
func (n *LazyForEachNode) GetFrameChildByIndex(index int, needBuild, isCache, addToRenderTree bool) *FrameNode {
	if index < 0 || index >= n.FrameCount() {
		return nil
	}
	item, ok := n.items[index]
	if !ok {
		if !needBuild {
			return nil
		}
		item = n.source.BuildItem(index)
		if item == nil {
			return nil
		}
		n.adoptChild(item, n.slotFor(index))
		n.items[index] = item
	}
	if isCache {
		n.cached[index] = true
	} else {
		delete(n.cached, index)
		if addToRenderTree {
			n.MarkNeedSyncRenderTree(false)
		}
	}
	return item.GetFrameChildByIndex(0, needBuild, isCache, addToRenderTree)
}

// BuildAllChildren builds every item.
func (n *LazyForEachNode) BuildAllChildren() {
	for i := range n.FrameCount() {
		n.GetFrameChildByIndex(i, true, false, false)
	}
}

// DoSetActiveChildRange activates the items in [start, end], keeps the
// ones within the cache counts as cached and drops the rest.
func (n *LazyForEachNode) DoSetActiveChildRange(start, end, cacheStart, cacheEnd int, showCache bool) {
	changed := false
	for _, idx := range n.BuiltIndices() {
		item := n.items[idx]
		switch {
		case inRange(idx, start, end):
			delete(n.cached, idx)
		case inRange(idx, start-cacheStart, end+cacheEnd):
			n.cached[idx] = true
		default:
			n.dropChild(item)
			delete(n.items, idx)
			delete(n.cached, idx)
			changed = true
			continue
		}
		item.DoSetActiveChildRange(start-idx, end-idx, cacheStart, cacheEnd, showCache)
	}
	if changed {
		n.MarkNeedSyncRenderTree(false)
	}
}

// DoRemoveChildInRenderTree deactivates the item at index, or every item.
func (n *LazyForEachNode) DoRemoveChildInRenderTree(index int, isAll bool) {
	if isAll {
		for _, item := range n.items {
			item.DoRemoveChildInRenderTree(0, true)
		}
		return
	}
	if item, ok := n.items[index]; ok {
		item.DoRemoveChildInRenderTree(0, false)
	}
}

// OnSetCacheCount records the cache count and item constraint.
func (n *LazyForEachNode) OnSetCacheCount(count int, itemConstraint *LayoutConstraint) {
	n.cacheCount = count
	n.itemConstraint = itemConstraint
}

// NotifyDataChange drops every built item and marks the host for measure.
func (n *LazyForEachNode) NotifyDataChange() {
	for _, item := range n.items {
		n.dropChild(item)
	}
	clear(n.items)
	clear(n.cached)
	n.MarkNeedSyncRenderTree(true)
	n.MarkNeedFrameFlushDirty(PropertyUpdateMeasureSelfAndParent)
}

// RepeatNode renders one item per key. Updating the keys reuses the nodes
// of surviving keys.
type RepeatNode struct {
	BaseNode

	keys          []string
	byKey         map[string]Node
	virtualScroll bool
}

// NewRepeatNode creates and registers an empty repeat.
func NewRepeatNode(tag string, id int32) *RepeatNode {
	n := &RepeatNode{byKey: make(map[string]Node)}
	n.Init(n, tag, id)
	Register().AddNode(n)
	return n
}

// SetVirtualScroll marks the repeat as only expandable inside a scroll
// container.
func (n *RepeatNode) SetVirtualScroll(v bool) { n.virtualScroll = v }

// IsVirtualScroll reports whether the repeat needs a scroll container.
func (n *RepeatNode) IsVirtualScroll() bool { return n.virtualScroll }

// Keys returns the current keys. The slice must not be modified.
func (n *RepeatNode) Keys() []string { return n.keys }

// UpdateItems replaces the items with one per key. Nodes whose key is
// still present are kept and reordered; build is called for new keys.
// Repeated keys after the first are ignored.
func (n *RepeatNode) UpdateItems(keys []string, build func(key string, index int) Node) {
	stale := n.byKey
	next := make(map[string]Node, len(keys))
	ordered := make([]Node, 0, len(keys))
	kept := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, dup := next[key]; dup {
			continue
		}
		item, ok := stale[key]
		if ok {
			delete(stale, key)
		} else {
			item = build(key, len(ordered))
			if item == nil {
				continue
			}
		}
		next[key] = item
		ordered = append(ordered, item)
		kept = append(kept, key)
	}
	for _, item := range stale {
		n.dropChild(item)
	}
	for _, item := range ordered {
		if item.Parent() != Node(n) {
			n.adoptChild(item, -1)
		}
	}
	n.children = ordered
	n.byKey = next
	n.keys = kept
	n.MarkNeedSyncRenderTree(true)
	n.MarkNeedFrameFlushDirty(PropertyUpdateMeasureSelfAndParent)
}

// CustomNode builds its children lazily from a builder on first use.
type CustomNode struct {
	BaseNode

	builder func() []Node
	built   bool
}

// NewCustomNode creates and registers a custom node around builder.
func NewCustomNode(tag string, id int32, builder func() []Node) *CustomNode {
	n := &CustomNode{builder: builder}
	n.Init(n, tag, id)
	Register().AddNode(n)
	return n
}

// Render runs the builder if it has not run yet.
func (n *CustomNode) Render() {
	if n.built || n.builder == nil {
		return
	}
	n.built = true
	for _, child := range n.builder() {
		if child != nil {
			n.adoptChild(child, -1)
		}
	}
}

// IsBuilt reports whether the builder ran.
func (n *CustomNode) IsBuilt() bool { return n.built }

// FrameCount builds the children and sums their frames.
func (n *CustomNode) FrameCount() int {
	n.Render()
	return n.BaseNode.FrameCount()
}

// GetFrameChildByIndex builds the children and resolves index among them.
func (n *CustomNode) GetFrameChildByIndex(index int, needBuild, isCache, addToRenderTree bool) *FrameNode {
	if needBuild {
		n.Render()
	}
	return n.BaseNode.GetFrameChildByIndex(index, needBuild, isCache, addToRenderTree)
}

// MarkNeedRebuild drops the children and reruns the builder.
func (n *CustomNode) MarkNeedRebuild() {
	for _, child := range slices.Clone(n.children) {
		n.dropChild(child)
	}
	n.built = false
	n.Render()
	n.MarkNeedSyncRenderTree(true)
	n.MarkNeedFrameFlushDirty(PropertyUpdateMeasureSelfAndParent)
}
