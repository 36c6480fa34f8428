package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/grindlemire/go-scene/internal/debug"
	"github.com/grindlemire/go-scene/internal/perf"
)

// AllChildrenBuilder is implemented by virtual containers that can
// materialize every item at once, such as LazyForEachNode.
type AllChildrenBuilder interface {
	BuildAllChildren()
}

// Renderer is implemented by nodes that build their children on demand,
// such as CustomNode.
type Renderer interface {
	Render()
}

// VirtualScroller marks containers that only expand inside a scrolling
// parent and cannot be fully flattened.
type VirtualScroller interface {
	IsVirtualScroll() bool
}

// FrameChildNode is one direct child of a frame node together with the
// range of frame indices it contributes.
type FrameChildNode struct {
	Child      Node
	StartIndex int
	Count      int
}

// ChildProxy is the index-addressable view of a frame node's renderable
// descendants. Virtual containers are resolved lazily through their
// GetFrameChildByIndex.
//
// A proxy that is reset while a traversal holds it is not cleared. The
// host receives a fresh proxy and the old one stays linked through prev
// until its last guard is released.
type ChildProxy struct {
	host *FrameNode

	children []FrameChildNode
	cursor   int
	all      []*FrameNode
	part     map[int]*FrameNode
	prev     *ChildProxy

	totalCount     int
	inUse          int
	delayReset     bool
	needResetChild bool
}

// newChildProxy installs a new proxy on host. The previous proxy becomes
// its predecessor, and its child list is inherited unless it was reset
// with needResetChild.
func newChildProxy(host *FrameNode) *ChildProxy {
	p := &ChildProxy{host: host, part: make(map[int]*FrameNode)}
	if host == nil {
		return p
	}
	p.prev = host.proxy
	if p.prev != nil && !p.prev.needResetChild {
		p.children = slices.Clone(p.prev.children)
		p.cursor = len(p.children)
		if p.prev.cursor < len(p.prev.children) {
			target := p.prev.children[p.prev.cursor].Child
			if idx := slices.IndexFunc(p.children, func(c FrameChildNode) bool { return c.Child == target }); idx >= 0 {
				p.cursor = idx
			}
		}
	}
	host.proxy = p
	return p
}

// lock marks the proxy in use. Every lock must be paired with unlock.
func (p *ChildProxy) lock() {
	p.inUse++
}

// unlock releases one guard. The last release of a superseded proxy
// unlinks it from the host's chain.
func (p *ChildProxy) unlock() {
	p.inUse--
	if p.inUse > 0 || !p.delayReset || p.host == nil {
		return
	}
	for it := p.host.proxy; it != nil; it = it.prev {
		if it.prev == p {
			it.prev = p.prev
			p.prev = nil
			return
		}
	}
}

// InUse reports whether a traversal currently holds the proxy.
func (p *ChildProxy) InUse() bool { return p.inUse > 0 }

// Build enumerates the host's direct children once and records the frame
// index range each contributes. It is a no-op when already built.
func (p *ChildProxy) Build() {
	if p.host == nil || len(p.children) > 0 {
		return
	}
	p.totalCount = 0
	start := 0
	for _, child := range p.host.Children() {
		count := child.FrameCount()
		child.SetNodeIndexOffset(start, count)
		p.children = append(p.children, FrameChildNode{Child: child, StartIndex: start, Count: count})
		start += count
		p.totalCount += count
	}
	p.cursor = 0
}

// Children returns the built child list. The slice must not be modified.
func (p *ChildProxy) Children() []FrameChildNode { return p.children }

// TotalCount returns the number of frame indices recorded by the last Build.
func (p *ChildProxy) TotalCount() int { return p.totalCount }

// addFrameNode appends the frame nodes reachable from n to the flattened
// list, expanding virtual containers on the way.
func (p *ChildProxy) addFrameNode(n Node, count *int) {
	if f, ok := n.(*FrameNode); ok {
		p.all = append(p.all, f)
		p.part[*count] = f
		*count++
		return
	}
	switch v := n.(type) {
	case AllChildrenBuilder:
		v.BuildAllChildren()
	case VirtualScroller:
		if v.IsVirtualScroll() {
			debug.Error("repeat", "virtual scroll container cannot be expanded outside a scroll container",
				"id", n.ID(), "tag", n.Tag())
		}
	case Renderer:
		v.Render()
	}
	for _, child := range n.Children() {
		if f, ok := child.(*FrameNode); ok {
			p.all = append(p.all, f)
			p.part[*count] = f
			*count++
			continue
		}
		p.addFrameNode(child, count)
	}
}

// GetAllFrameChildren returns every frame descendant, expanding virtual
// containers fully. The proxy stays locked until release is called; a
// reset in the meantime does not touch the returned slice.
func (p *ChildProxy) GetAllFrameChildren() (children []*FrameNode, release func()) {
	p.lock()
	if len(p.all) == 0 {
		p.Build()
		count := 0
		for _, child := range p.children {
			p.addFrameNode(child.Child, &count)
		}
	}
	return p.all, p.unlock
}

// findFrameNodeByIndex scans from the cursor towards index. Sequential
// access from layout keeps the scan short.
func (p *ChildProxy) findFrameNodeByIndex(index int, needBuild, isCache, addToRenderTree bool) *FrameNode {
	if len(p.children) == 0 {
		return nil
	}
	if p.cursor >= len(p.children) {
		p.cursor = 0
	}
	for p.cursor < len(p.children) {
		c := p.children[p.cursor]
		if c.StartIndex > index {
			if p.cursor == 0 {
				return nil
			}
			p.cursor--
			continue
		}
		if c.StartIndex+c.Count > index {
			return c.Child.GetFrameChildByIndex(index-c.StartIndex, needBuild, isCache, addToRenderTree)
		}
		p.cursor++
		if p.cursor == len(p.children) {
			p.cursor = 0
			return nil
		}
	}
	return nil
}

// GetFrameNodeByIndex returns the frame node at index, building the child
// list if needed. Results are remembered unless isCache is set.
func (p *ChildProxy) GetFrameNodeByIndex(index int, needBuild, isCache, addToRenderTree bool) *FrameNode {
	if p.host == nil || index < 0 {
		return nil
	}
	if child, ok := p.part[index]; ok {
		return child
	}
	p.Build()
	child := p.findFrameNodeByIndex(index, needBuild, isCache, addToRenderTree)
	if child != nil && !isCache {
		p.part[index] = child
	}
	return child
}

// GetChildIndex returns the index target was resolved at, or -1. Only
// children already looked up are known.
func (p *ChildProxy) GetChildIndex(target *FrameNode) int {
	for idx, child := range p.part {
		if child == target {
			return idx
		}
	}
	return -1
}

// ResetChildren drops the cached lookups, and the child list too when
// needResetChild is set. A proxy in use is replaced instead of cleared.
func (p *ChildProxy) ResetChildren(needResetChild bool) {
	if p.inUse > 0 {
		var id int32
		var tag string
		if p.host != nil {
			id, tag = p.host.ID(), p.host.Tag()
		}
		if CurrentSystemProperties().LayoutDetect {
			debug.Fatal("layout", "reset children while in use", "id", id, "tag", tag)
		}
		debug.Error("layout", "reset children while in use", "id", id, "tag", tag, "stack", debug.Stack())
		perf.ProxyResetsDeferred.Inc()
		p.delayReset = true
		p.needResetChild = needResetChild
		newChildProxy(p.host)
		return
	}
	p.lock()
	defer p.unlock()
	p.delayReset = false
	p.all = nil
	clear(p.part)
	p.totalCount = 0
	if needResetChild {
		p.children = nil
		p.cursor = 0
	}
}

// RemoveChildInRenderTree deactivates the remembered child at index and
// forwards the removal to the direct child that owns it.
func (p *ChildProxy) RemoveChildInRenderTree(index int) {
	child, ok := p.part[index]
	if !ok {
		return
	}
	child.SetActive(false, false)
	delete(p.part, index)
	if len(p.children) == 0 {
		return
	}
	if p.cursor >= len(p.children) {
		p.cursor = 0
	}
	for p.cursor < len(p.children) {
		c := p.children[p.cursor]
		if c.StartIndex > index {
			if p.cursor == 0 {
				return
			}
			p.cursor--
			continue
		}
		if c.StartIndex+c.Count > index {
			c.Child.DoRemoveChildInRenderTree(index-c.StartIndex, false)
			return
		}
		p.cursor++
		if p.cursor == len(p.children) {
			p.cursor = 0
			return
		}
	}
}

// inRange reports whether index lies in [start, end], or outside the gap
// (end, start) when the range wraps.
func inRange(index, start, end int) bool {
	if start <= end {
		return index >= start && index <= end
	}
	return index <= end || index >= start
}

// SetActiveChildRange forgets remembered children outside the active range,
// widened by the cache counts when showCache is set, and forwards the range
// to each direct child in its local indices.
func (p *ChildProxy) SetActiveChildRange(start, end, cacheStart, cacheEnd int, showCache bool) {
	lo, hi := start, end
	if showCache {
		lo, hi = start-cacheStart, end+cacheEnd
	}
	for idx := range p.part {
		if !inRange(idx, lo, hi) {
			delete(p.part, idx)
		}
	}
	p.lock()
	defer p.unlock()
	for _, c := range p.children {
		c.Child.DoSetActiveChildRange(start-c.StartIndex, end-c.StartIndex, cacheStart, cacheEnd, showCache)
	}
}

// RecycleItemsByIndex forgets remembered children in [start, end).
func (p *ChildProxy) RecycleItemsByIndex(start, end int) {
	for idx := range p.part {
		if idx >= start && idx < end {
			delete(p.part, idx)
		}
	}
}

// RemoveAllChildInRenderTree deactivates every remembered child, resets
// the proxy and removes all children from the render tree.
func (p *ChildProxy) RemoveAllChildInRenderTree() {
	p.SetAllChildrenInactive()
	p.ResetChildren(false)
	if p.host != nil {
		p.host.proxy.removeAllChildInRenderTreeAfterReset()
	}
}

func (p *ChildProxy) removeAllChildInRenderTreeAfterReset() {
	p.Build()
	p.lock()
	defer p.unlock()
	for _, c := range p.children {
		c.Child.DoRemoveChildInRenderTree(0, true)
	}
}

// SetAllChildrenInactive deactivates every remembered child.
func (p *ChildProxy) SetAllChildrenInactive() {
	p.lock()
	defer p.unlock()
	for _, child := range p.part {
		child.SetActive(false, false)
	}
}

// SetCacheCount forwards the cache count to each direct child.
func (p *ChildProxy) SetCacheCount(count int, itemConstraint *LayoutConstraint) {
	p.lock()
	defer p.unlock()
	for _, c := range p.children {
		c.Child.OnSetCacheCount(count, itemConstraint)
	}
}

// String renders the child ranges and remembered children for debugging.
func (p *ChildProxy) String() string {
	if p.totalCount == 0 {
		return "totalCount is 0"
	}
	p.lock()
	defer p.unlock()
	var b strings.Builder
	b.WriteString("FrameChildNode:[")
	for _, c := range p.children {
		fmt.Fprintf(&b, "%d-%d-%d,", c.Child.ID(), c.StartIndex, c.Count)
	}
	b.WriteString("] partFrameNodeChildren:[")
	keys := make([]int, 0, len(p.part))
	for idx := range p.part {
		keys = append(keys, idx)
	}
	slices.Sort(keys)
	for _, idx := range keys {
		fmt.Fprintf(&b, "%d,", p.part[idx].ID())
	}
	fmt.Fprintf(&b, "] TotalCount:%d", p.totalCount)
	return b.String()
}
