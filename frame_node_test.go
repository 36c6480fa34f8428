package scene

import (
	"slices"
	"testing"
)

func TestGetOrCreateFrameNode(t *testing.T) {
	type tc struct {
		tag      string
		wantSame bool
	}

	tests := map[string]tc{
		"same tag reuses":    {tag: "text", wantSame: true},
		"other tag replaces": {tag: "image"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			id := Register().MakeUniqueID()
			parent, _ := newTestNode("column")
			original := CreateFrameNode("text", id, &BasePattern{})
			parent.AddChild(original, -1)

			got := GetOrCreateFrameNode(tt.tag, id, func() Pattern { return newTestPattern() })
			if (got == original) != tt.wantSame {
				t.Fatalf("GetOrCreateFrameNode() reused = %v, want %v", got == original, tt.wantSame)
			}
			if got.Tag() != tt.tag {
				t.Errorf("Tag() = %q, want %q", got.Tag(), tt.tag)
			}
			if Register().FrameNode(id) != got {
				t.Error("register does not hold the returned node")
			}
			if tt.wantSame {
				return
			}
			if original.Parent() != nil || len(parent.Children()) != 0 {
				t.Error("replaced node still attached to its parent")
			}
			if _, ok := got.Pattern().(*testPattern); !ok {
				t.Errorf("pattern = %T, want the factory's", got.Pattern())
			}
		})
	}

	n := GetOrCreateFrameNode("plain", Register().MakeUniqueID(), func() Pattern { return nil })
	if _, ok := n.Pattern().(*BasePattern); !ok {
		t.Errorf("nil factory result gave %T, want *BasePattern", n.Pattern())
	}
}

func TestFrameNode_Release(t *testing.T) {
	p := newRecordingPipeline()
	root, _ := newTestNode("root")
	child, pattern := newTestNode("child")
	grandchild, _ := newTestNode("grandchild")
	child.AddChild(grandchild, -1)
	root.AddChild(child, -1)

	var events []string
	child.EventHub().SetOnDetach(func() { events = append(events, "detach") })
	child.EventHub().SetOnDisappear(func() { events = append(events, "disappear") })
	attach(root, p)

	child.Release()
	child.Release()

	if !slices.Equal(events, []string{"detach", "disappear"}) {
		t.Errorf("events = %v, want one detach and one disappear", events)
	}
	if Register().Node(child.ID()) != nil || Register().Node(grandchild.ID()) != nil {
		t.Error("released subtree still registered")
	}
	if len(root.Children()) != 0 || child.Parent() != nil {
		t.Error("released node still in the tree")
	}
	if child.IsOnMainTree() || grandchild.IsOnMainTree() {
		t.Error("released subtree still on the main tree")
	}
	if pattern.Host() != nil {
		t.Error("pattern still bound to the released node")
	}
	if !slices.Contains(p.removed, child) || !slices.Contains(p.removed, grandchild) {
		t.Errorf("pipeline dirty sets not cleaned for %v", ids(p.removed))
	}
	if child.IsLayoutDirtyMarked() || child.IsRenderDirtyMarked() {
		t.Error("released node still marked queued")
	}
}

func TestFrameNode_SetActive(t *testing.T) {
	p := newRecordingPipeline()
	parent, parentPattern := newTestNode("parent")
	child, pattern := newTestNode("child")
	parent.AddChild(child, -1)
	attach(parent, p)
	parent.RebuildRenderContextTree()
	rebuilds := parentPattern.rebuilds

	child.SetActive(true, true)
	child.SetActive(true, true)

	if pattern.active != 1 {
		t.Errorf("OnActive calls = %d, want 1", pattern.active)
	}
	if len(p.afterLayout) != 1 {
		t.Fatalf("after-layout tasks = %d, want 1", len(p.afterLayout))
	}
	p.afterLayout[0]()
	if parentPattern.rebuilds != rebuilds+1 {
		t.Errorf("parent rebuilds = %d, want %d", parentPattern.rebuilds, rebuilds+1)
	}
	if !slices.Equal(parent.FrameChildren(), []*FrameNode{child}) {
		t.Errorf("frame children = %v", ids(parent.FrameChildren()))
	}

	child.SetActive(false, false)
	if pattern.inactive != 1 {
		t.Errorf("OnInActive calls = %d, want 1", pattern.inactive)
	}
	parent.RebuildRenderContextTree()
	if len(parent.FrameChildren()) != 0 {
		t.Errorf("inactive child still rendered: %v", ids(parent.FrameChildren()))
	}
}

func TestFrameNode_RebuildOrdersByZIndex(t *testing.T) {
	parent, _ := newTestNode("stack")
	var kids []*FrameNode
	for i, z := range []int{2, 0, 1, 0} {
		n, _ := newTestNode(string(rune('a' + i)))
		n.SetActive(true, false)
		n.RenderContext().SetZIndex(z)
		parent.AddChild(n, -1)
		kids = append(kids, n)
	}
	overlay, _ := newTestNode("overlay")
	overlay.SetActive(true, false)
	parent.SetOverlayNode(overlay)

	parent.MarkNeedSyncRenderTree(false)
	parent.RebuildRenderContextTree()

	want := []*FrameNode{kids[1], kids[3], kids[2], kids[0], overlay}
	if got := parent.FrameChildren(); !slices.Equal(got, want) {
		t.Errorf("frame children = %v, want %v", tags(got), tags(want))
	}
}

func TestElementRegister(t *testing.T) {
	r := &ElementRegister{nodes: make(map[int32]Node)}
	id := r.MakeUniqueID()
	if r.MakeUniqueID() == id {
		t.Fatal("MakeUniqueID() repeated an id")
	}

	a := newFrameNode("a", id, &BasePattern{}, false)
	b := newFrameNode("b", id, &BasePattern{}, false)
	a.SetInspectorID("banner")

	if !r.AddNode(a) || !r.AddNode(a) {
		t.Error("AddNode() rejected a node under its own id")
	}
	if r.AddNode(b) {
		t.Error("AddNode() accepted a second node under a held id")
	}
	if r.AddNode(nil) {
		t.Error("AddNode(nil) succeeded")
	}
	if r.FrameNodeByInspectorID("banner") != a || r.FrameNodeByInspectorID("") != nil {
		t.Error("FrameNodeByInspectorID() lookup failed")
	}
	if !r.RemoveNode(id) || r.RemoveNode(id) {
		t.Error("RemoveNode() should succeed once")
	}
	if r.Len() != 0 || r.FrameNode(id) != nil {
		t.Errorf("register not empty: len %d", r.Len())
	}
}
