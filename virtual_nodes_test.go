package scene

import (
	"slices"
	"testing"
)

func lazyList(count int) (*FrameNode, *LazyForEachNode, *staticSource) {
	parent, _ := newTestNode("list")
	src := &staticSource{count: count}
	lazy := NewLazyForEachNode("lazy", Register().MakeUniqueID(), src)
	parent.AddChild(lazy, -1)
	return parent, lazy, src
}

func frameChildren(n Node) []*FrameNode {
	var out []*FrameNode
	for _, child := range n.Children() {
		out = append(out, child.(*FrameNode))
	}
	return out
}

func TestLazyForEach_BuildsOnDemand(t *testing.T) {
	parent, lazy, src := lazyList(5)

	if got := parent.TotalChildCount(); got != 5 {
		t.Fatalf("TotalChildCount() = %d, want 5", got)
	}
	if len(src.built) != 0 {
		t.Fatalf("counting frames built items %v", src.built)
	}
	if got := parent.GetChildByIndex(2, false); got != nil {
		t.Errorf("lookup without build returned %d", got.ID())
	}

	item3 := parent.GetOrCreateChildByIndex(3, true, false)
	item1 := parent.GetOrCreateChildByIndex(1, true, false)
	if item3 == nil || item1 == nil {
		t.Fatal("GetOrCreateChildByIndex returned nil")
	}
	if !item3.IsActive() || !item1.IsActive() {
		t.Error("items added to the render tree are not active")
	}
	if again := parent.GetOrCreateChildByIndex(3, true, false); again != item3 {
		t.Error("second lookup built a new item")
	}
	if !slices.Equal(src.built, []int{3, 1}) {
		t.Errorf("built = %v, want [3 1]", src.built)
	}
	if got := lazy.BuiltIndices(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("BuiltIndices() = %v, want [1 3]", got)
	}
	if got := frameChildren(lazy); !slices.Equal(got, []*FrameNode{item1, item3}) {
		t.Errorf("children = %v, want items in index order", ids(got))
	}
	if item3.Parent() != Node(lazy) || item3.Depth() != lazy.Depth()+1 {
		t.Error("item not adopted by the lazy node")
	}
	if got := lazy.GetFrameChildByIndex(5, true, false, false); got != nil {
		t.Error("index past the source built an item")
	}
}

func TestLazyForEach_CacheMarks(t *testing.T) {
	_, lazy, _ := lazyList(5)

	lazy.GetFrameChildByIndex(4, true, true, false)
	if !lazy.IsCached(4) {
		t.Error("item built for the cache not marked cached")
	}
	lazy.GetFrameChildByIndex(4, true, false, true)
	if lazy.IsCached(4) {
		t.Error("item shown on screen still marked cached")
	}

	lazy.OnSetCacheCount(2, &LayoutConstraint{MaxSize: SizeF{Width: 10, Height: 10}})
	if lazy.CacheCount() != 2 || lazy.ItemConstraint().MaxSize.Width != 10 {
		t.Errorf("cache count = %d, constraint = %+v", lazy.CacheCount(), lazy.ItemConstraint())
	}
}

func TestLazyForEach_SetActiveChildRange(t *testing.T) {
	parent, lazy, _ := lazyList(6)
	parent.GetAllChildrenWithBuild(true)
	items := frameChildren(lazy)
	if len(items) != 6 {
		t.Fatalf("built %d items, want 6", len(items))
	}

	parent.SetActiveChildRange(2, 3, 1, 1, false)

	if got := lazy.BuiltIndices(); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("BuiltIndices() = %v, want [1 2 3 4]", got)
	}
	for _, idx := range []int{0, 5} {
		if items[idx].Parent() != nil {
			t.Errorf("item %d outside the cache range still attached", idx)
		}
	}

	type want struct {
		active, cached bool
	}
	wants := map[int]want{
		1: {cached: true},
		2: {active: true},
		3: {active: true},
		4: {cached: true},
	}
	for idx, w := range wants {
		if got := items[idx].IsActive(); got != w.active {
			t.Errorf("item %d active = %v, want %v", idx, got, w.active)
		}
		if got := lazy.IsCached(idx); got != w.cached {
			t.Errorf("item %d cached = %v, want %v", idx, got, w.cached)
		}
	}
}

func TestLazyForEach_NotifyDataChange(t *testing.T) {
	parent, lazy, src := lazyList(6)
	old := parent.GetAllChildrenWithBuild(true)
	parent.LayoutProperty().CleanDirty()

	src.count = 3
	lazy.NotifyDataChange()

	if got := lazy.BuiltIndices(); len(got) != 0 {
		t.Errorf("items survive a data change: %v", got)
	}
	if old[0].Parent() != nil {
		t.Error("dropped item still attached")
	}
	if !parent.LayoutProperty().PropertyChangeFlag().NeedMeasure() {
		t.Error("host not marked for measure")
	}
	if got := parent.TotalChildCount(); got != 3 {
		t.Errorf("TotalChildCount() = %d, want 3", got)
	}
	if got := parent.GetAllChildrenWithBuild(false); len(got) != 3 || got[0] == old[0] {
		t.Errorf("rebuilt children = %v", ids(got))
	}
}

func TestRepeatNode_UpdateItems(t *testing.T) {
	parent, _ := newTestNode("list")
	repeat := NewRepeatNode("repeat", Register().MakeUniqueID())
	parent.AddChild(repeat, -1)

	nodes := make(map[string]*FrameNode)
	var built []string
	build := func(key string, _ int) Node {
		built = append(built, key)
		n, _ := newTestNode(key)
		nodes[key] = n
		return n
	}

	repeat.UpdateItems([]string{"a", "b", "c"}, build)
	if got := tags(parent.GetAllChildrenWithBuild(false)); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("first children = %v", got)
	}
	first := nodes["a"]

	repeat.UpdateItems([]string{"c", "a", "d", "a"}, build)

	if !slices.Equal(built, []string{"a", "b", "c", "d"}) {
		t.Errorf("built = %v, want only d rebuilt", built)
	}
	if !slices.Equal(repeat.Keys(), []string{"c", "a", "d"}) {
		t.Errorf("Keys() = %v", repeat.Keys())
	}
	children := parent.GetAllChildrenWithBuild(false)
	if got := tags(children); !slices.Equal(got, []string{"c", "a", "d"}) {
		t.Errorf("children = %v, want [c a d]", got)
	}
	if children[1] != first {
		t.Error("node for a surviving key was rebuilt")
	}
	if nodes["b"].Parent() != nil {
		t.Error("node for a removed key still attached")
	}

	repeat.UpdateItems([]string{"x"}, func(string, int) Node { return nil })
	if len(repeat.Children()) != 0 || len(repeat.Keys()) != 0 {
		t.Errorf("nil build kept children %d keys %v", len(repeat.Children()), repeat.Keys())
	}
}

func TestCustomNode_BuildsOnce(t *testing.T) {
	parent, _ := newTestNode("host")
	builds := 0
	custom := NewCustomNode("custom", Register().MakeUniqueID(), func() []Node {
		builds++
		a, _ := newTestNode("first")
		b, _ := newTestNode("second")
		return []Node{a, nil, b}
	})
	parent.AddChild(custom, -1)

	if got := parent.TotalChildCount(); got != 2 {
		t.Fatalf("TotalChildCount() = %d, want 2", got)
	}
	before := parent.GetAllChildrenWithBuild(true)
	if !custom.IsBuilt() || builds != 1 {
		t.Fatalf("built = %v after %d builds", custom.IsBuilt(), builds)
	}
	if got := tags(before); !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("children = %v", got)
	}

	custom.MarkNeedRebuild()

	after := parent.GetAllChildrenWithBuild(true)
	if builds != 2 {
		t.Errorf("builds = %d, want 2", builds)
	}
	if len(after) != 2 || after[0] == before[0] {
		t.Errorf("rebuild kept the old children: %v", ids(after))
	}
	if before[0].Parent() != nil {
		t.Error("old child still attached after rebuild")
	}
}

func TestSyntaxNode_Nested(t *testing.T) {
	parent, _ := newTestNode("host")
	outer := NewSyntaxNode("if", Register().MakeUniqueID())
	inner := NewSyntaxNode("for", Register().MakeUniqueID())
	f1, _ := newTestNode("f1")
	f2, _ := newTestNode("f2")
	f3, _ := newTestNode("f3")
	f4, _ := newTestNode("f4")
	inner.AddChild(f2, -1)
	inner.AddChild(f3, -1)
	outer.AddChild(f1, -1)
	outer.AddChild(inner, -1)
	parent.AddChild(outer, -1)
	parent.AddChild(f4, -1)

	if got := parent.TotalChildCount(); got != 4 {
		t.Fatalf("TotalChildCount() = %d, want 4", got)
	}
	if got := parent.GetAllChildrenWithBuild(true); !slices.Equal(got, []*FrameNode{f1, f2, f3, f4}) {
		t.Errorf("frame children = %v", ids(got))
	}
	if got := parent.GetChildByIndex(2, false); got != f3 {
		t.Errorf("GetChildByIndex(2) = %v, want f3", got)
	}
	if start, count := outer.IndexOffset(); start != 0 || count != 3 {
		t.Errorf("outer offset = (%d, %d), want (0, 3)", start, count)
	}
	if start, count := f4.IndexOffset(); start != 3 || count != 1 {
		t.Errorf("f4 offset = (%d, %d), want (3, 1)", start, count)
	}
	if AncestorFrameNode(f2) != parent {
		t.Error("frame ancestor of a grouped node is not the host")
	}

	parent.SetActiveChildRange(1, 2, 0, 0, false)
	for n, want := range map[*FrameNode]bool{f1: false, f2: true, f3: true, f4: false} {
		if n.IsActive() != want {
			t.Errorf("%s active = %v, want %v", n.Tag(), n.IsActive(), want)
		}
	}
}

func tags(nodes []*FrameNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Tag()
	}
	return out
}
