package scene

import (
	"testing"
)

// mockFocusable records focus transitions and the last key it saw.
type mockFocusable struct {
	id         string
	focusable  bool
	focused    bool
	focusCalls int
	blurCalls  int
	lastEvent  KeyEvent
	handled    bool
}

func newMockFocusable(id string, focusable bool) *mockFocusable {
	return &mockFocusable{id: id, focusable: focusable}
}

func (m *mockFocusable) IsFocusable() bool { return m.focusable }

func (m *mockFocusable) HandleEvent(event KeyEvent) bool {
	m.lastEvent = event
	return m.handled
}

func (m *mockFocusable) Focus() {
	m.focused = true
	m.focusCalls++
}

func (m *mockFocusable) Blur() {
	m.focused = false
	m.blurCalls++
}

func registerAll(fm *FocusManager, elements ...*mockFocusable) {
	for _, elem := range elements {
		fm.Register(elem)
	}
}

func focusedID(t *testing.T, fm *FocusManager) string {
	t.Helper()
	focused := fm.Focused()
	if focused == nil {
		return ""
	}
	mf, ok := focused.(*mockFocusable)
	if !ok {
		t.Fatalf("Focused() returned wrong type: %T", focused)
	}
	return mf.id
}

func TestFocusManager_Register(t *testing.T) {
	type tc struct {
		elements []*mockFocusable
		want     string
	}

	tests := map[string]tc{
		"empty":                   {},
		"single focusable":        {elements: []*mockFocusable{newMockFocusable("a", true)}, want: "a"},
		"first of many":           {elements: []*mockFocusable{newMockFocusable("a", true), newMockFocusable("b", true)}, want: "a"},
		"skips non-focusable":     {elements: []*mockFocusable{newMockFocusable("a", false), newMockFocusable("b", true)}, want: "b"},
		"nothing focusable":       {elements: []*mockFocusable{newMockFocusable("a", false), newMockFocusable("b", false)}},
		"later targets unfocused": {elements: []*mockFocusable{newMockFocusable("a", true), newMockFocusable("b", true), newMockFocusable("c", true)}, want: "a"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fm := NewFocusManager()
			registerAll(fm, tt.elements...)

			if got := focusedID(t, fm); got != tt.want {
				t.Errorf("focused = %q, want %q", got, tt.want)
			}
			if fm.Len() != len(tt.elements) {
				t.Errorf("Len() = %d, want %d", fm.Len(), len(tt.elements))
			}
			for _, e := range tt.elements {
				wantCalls := 0
				if e.id == tt.want {
					wantCalls = 1
				}
				if e.focusCalls != wantCalls {
					t.Errorf("%s Focus() calls = %d, want %d", e.id, e.focusCalls, wantCalls)
				}
			}
		})
	}
}

func TestFocusManager_Navigate(t *testing.T) {
	type tc struct {
		focusable []bool
		moves     string // n = Next, p = Prev
		want      string
	}

	tests := map[string]tc{
		"next":                 {focusable: []bool{true, true, true}, moves: "n", want: "b"},
		"next wraps":           {focusable: []bool{true, true}, moves: "nn", want: "a"},
		"next skips":           {focusable: []bool{true, false, true}, moves: "n", want: "c"},
		"prev wraps to end":    {focusable: []bool{true, true, true}, moves: "p", want: "c"},
		"prev skips":           {focusable: []bool{true, true, false}, moves: "p", want: "b"},
		"next then prev":       {focusable: []bool{true, true, true}, moves: "np", want: "a"},
		"nothing focusable":    {focusable: []bool{false, false}, moves: "n"},
		"single target cycles": {focusable: []bool{true}, moves: "npn", want: "a"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fm := NewFocusManager()
			for i, f := range tt.focusable {
				fm.Register(newMockFocusable(string(rune('a'+i)), f))
			}
			for _, m := range tt.moves {
				if m == 'n' {
					fm.Next()
				} else {
					fm.Prev()
				}
			}
			if got := focusedID(t, fm); got != tt.want {
				t.Errorf("focused = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFocusManager_SetFocus(t *testing.T) {
	a := newMockFocusable("a", true)
	b := newMockFocusable("b", true)
	c := newMockFocusable("c", false)
	stranger := newMockFocusable("x", true)
	fm := NewFocusManager()
	registerAll(fm, a, b, c)

	fm.SetFocus(b)
	if got := focusedID(t, fm); got != "b" {
		t.Fatalf("focused = %q, want b", got)
	}
	if a.blurCalls != 1 || a.focused {
		t.Errorf("previous target blur calls = %d", a.blurCalls)
	}

	fm.SetFocus(c)
	fm.SetFocus(stranger)
	if got := focusedID(t, fm); got != "b" {
		t.Errorf("focused = %q after invalid SetFocus, want b", got)
	}

	fm.SetFocus(b)
	if b.blurCalls != 0 || b.focusCalls != 2 {
		t.Errorf("refocus blur = %d focus = %d", b.blurCalls, b.focusCalls)
	}
}

func TestFocusManager_Unregister(t *testing.T) {
	type tc struct {
		remove int
		focus  int
		want   string
	}

	tests := map[string]tc{
		"focused moves to next":  {remove: 1, focus: 1, want: "c"},
		"focused last wraps":     {remove: 2, focus: 2, want: "a"},
		"earlier target shifts":  {remove: 0, focus: 2, want: "c"},
		"later target untouched": {remove: 2, focus: 0, want: "a"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			elems := []*mockFocusable{
				newMockFocusable("a", true),
				newMockFocusable("b", true),
				newMockFocusable("c", true),
			}
			fm := NewFocusManager()
			registerAll(fm, elems...)
			fm.SetFocus(elems[tt.focus])

			fm.Unregister(elems[tt.remove])

			if got := focusedID(t, fm); got != tt.want {
				t.Errorf("focused = %q, want %q", got, tt.want)
			}
			if fm.Len() != 2 {
				t.Errorf("Len() = %d, want 2", fm.Len())
			}
			if tt.remove == tt.focus && elems[tt.remove].focused {
				t.Error("removed target still focused")
			}
		})
	}

	fm := NewFocusManager()
	only := newMockFocusable("a", true)
	fm.Register(only)
	fm.Unregister(only)
	fm.Unregister(only)
	if fm.Focused() != nil || fm.Len() != 0 {
		t.Error("unregistering the last target left focus behind")
	}
}

func TestFocusManager_Dispatch(t *testing.T) {
	fm := NewFocusManager()
	if fm.Dispatch(KeyEvent{Code: "Enter", Pressed: true}) {
		t.Error("Dispatch() with no target reported handled")
	}

	a := newMockFocusable("a", true)
	a.handled = true
	fm.Register(a)
	if !fm.Dispatch(KeyEvent{Code: "Enter", Pressed: true}) {
		t.Error("Dispatch() not handled by focused target")
	}
	if a.lastEvent.Code != "Enter" {
		t.Errorf("last event = %+v", a.lastEvent)
	}
}

func TestFocusHub_Focusable(t *testing.T) {
	type tc struct {
		setup func(n *FrameNode, h *FocusHub)
		want  bool
	}

	tests := map[string]tc{
		"active visible": {setup: func(*FrameNode, *FocusHub) {}, want: true},
		"not focusable":  {setup: func(_ *FrameNode, h *FocusHub) { h.SetFocusable(false) }},
		"disabled":       {setup: func(_ *FrameNode, h *FocusHub) { h.SetEnabled(false) }},
		"inactive":       {setup: func(n *FrameNode, _ *FocusHub) { n.SetActive(false, false) }},
		"invisible":      {setup: func(n *FrameNode, _ *FocusHub) { n.LayoutProperty().UpdateVisibility(Invisible) }},
		"gone":           {setup: func(n *FrameNode, _ *FocusHub) { n.LayoutProperty().UpdateVisibility(Gone) }},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			n, _ := newTestNode("field")
			n.SetActive(true, false)
			h := n.GetOrCreateFocusHub()
			tt.setup(n, h)
			if got := h.IsFocusable(); got != tt.want {
				t.Errorf("IsFocusable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFocusHub_RegistersOnMainTree(t *testing.T) {
	p := newRecordingPipeline()
	root, _ := newTestNode("root")
	first, _ := newTestNode("first")
	second, _ := newTestNode("second")
	root.AddChild(first, -1)
	root.AddChild(second, -1)
	first.SetActive(true, false)
	second.SetActive(true, false)

	var events []string
	h1 := first.GetOrCreateFocusHub()
	h1.SetOnFocus(func() { events = append(events, "focus first") })
	h1.SetOnBlur(func() { events = append(events, "blur first") })
	attach(root, p)

	h2 := second.GetOrCreateFocusHub()
	h2.SetOnKeyEvent(func(ev KeyEvent) bool { return ev.Code == "Space" })
	if first.GetOrCreateFocusHub() != h1 {
		t.Fatal("GetOrCreateFocusHub() built a second hub")
	}

	if p.focus.Len() != 2 || p.focus.Focused() != Focusable(h1) {
		t.Fatalf("focus manager len = %d, focused = %v", p.focus.Len(), p.focus.Focused())
	}

	p.focus.Next()
	if !h2.IsCurrentFocus() || h1.IsCurrentFocus() {
		t.Error("Next() did not move focus to the second hub")
	}
	if !p.focus.Dispatch(KeyEvent{Code: "Space", Pressed: true}) {
		t.Error("key not routed to the focused hub")
	}

	second.SyncGeometryNode(true, DirtySwapConfig{})
	if !h2.FocusPainted() {
		t.Error("geometry sync did not paint the focus state")
	}

	root.RemoveChild(second)
	if p.focus.Len() != 1 {
		t.Errorf("focus manager len = %d after detach, want 1", p.focus.Len())
	}
	if h2.IsCurrentFocus() || h2.FocusPainted() {
		t.Error("detached hub kept focus")
	}
	if !h1.IsCurrentFocus() {
		t.Error("focus did not return to the first hub")
	}

	want := []string{"focus first", "blur first", "focus first"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events = %v, want %v", events, want)
			break
		}
	}
}
