package scene

import (
	"slices"

	"github.com/grindlemire/go-scene/internal/debug"
)

// KeyEvent is a key press routed to the focused node.
type KeyEvent struct {
	Code    string
	Pressed bool
}

// Focusable is implemented by anything the FocusManager can focus.
type Focusable interface {
	// IsFocusable returns whether this target can currently receive focus.
	IsFocusable() bool

	// HandleEvent processes a key event.
	// Returns true if the event was consumed.
	HandleEvent(event KeyEvent) bool

	// Focus is called when this target gains focus.
	Focus()

	// Blur is called when this target loses focus.
	Blur()
}

// FocusHub is a frame node's focus state. It implements Focusable.
type FocusHub struct {
	host      *FrameNode // non-owning
	focusable bool
	enabled   bool
	current   bool
	painted   bool

	onFocus func()
	onBlur  func()
	onKey   func(KeyEvent) bool
}

func newFocusHub(host *FrameNode, focusable bool) *FocusHub {
	return &FocusHub{host: host, focusable: focusable, enabled: true}
}

// SetFocusable changes whether the node takes focus.
func (h *FocusHub) SetFocusable(focusable bool) { h.focusable = focusable }

// SetEnabled enables or disables focus for the node.
func (h *FocusHub) SetEnabled(enabled bool) { h.enabled = enabled }

func (h *FocusHub) SetOnFocus(fn func())                 { h.onFocus = fn }
func (h *FocusHub) SetOnBlur(fn func())                  { h.onBlur = fn }
func (h *FocusHub) SetOnKeyEvent(fn func(KeyEvent) bool) { h.onKey = fn }

// IsFocusable reports whether the host is focusable, enabled, active and
// not hidden.
func (h *FocusHub) IsFocusable() bool {
	if !h.focusable || !h.enabled || h.host == nil {
		return false
	}
	return h.host.IsActive() && h.host.LayoutProperty().Visibility() == Visible
}

// HandleEvent forwards ev to the key callback.
func (h *FocusHub) HandleEvent(ev KeyEvent) bool {
	if h.onKey == nil {
		return false
	}
	return h.onKey(ev)
}

// Focus marks the hub focused and requests a focus repaint.
func (h *FocusHub) Focus() {
	h.current = true
	if h.onFocus != nil {
		h.onFocus()
	}
	if h.host != nil {
		h.host.MarkDirtyNode(PropertyUpdateRender)
	}
}

// Blur clears focus and the painted focus state.
func (h *FocusHub) Blur() {
	h.current = false
	h.ClearFocusState()
	if h.onBlur != nil {
		h.onBlur()
	}
	if h.host != nil {
		h.host.MarkDirtyNode(PropertyUpdateRender)
	}
}

// IsCurrentFocus reports whether the hub holds focus.
func (h *FocusHub) IsCurrentFocus() bool { return h.current }

// PaintFocusState records that the focus indicator is drawn.
func (h *FocusHub) PaintFocusState() {
	if h.current {
		h.painted = true
	}
}

// ClearFocusState removes the focus indicator.
func (h *FocusHub) ClearFocusState() { h.painted = false }

// FocusPainted reports whether the focus indicator is drawn.
func (h *FocusHub) FocusPainted() bool { return h.painted }

// FocusManager keeps an ordered ring of focus targets. It never moves
// focus on its own; callers drive it with Next, Prev and SetFocus.
type FocusManager struct {
	targets []Focusable
	current int // -1 when nothing holds focus
}

// NewFocusManager creates an empty FocusManager.
func NewFocusManager() *FocusManager {
	return &FocusManager{current: -1}
}

// Register appends target to the ring. The first focusable target
// registered while nothing holds focus takes focus.
func (f *FocusManager) Register(target Focusable) {
	debug.Log("FocusManager.Register: %T focusable=%v", target, target.IsFocusable())
	f.targets = append(f.targets, target)
	if f.current == -1 && target.IsFocusable() {
		f.current = len(f.targets) - 1
		target.Focus()
	}
}

// Unregister removes target. When it held focus, focus moves to the next
// focusable target in ring order.
func (f *FocusManager) Unregister(target Focusable) {
	idx := slices.Index(f.targets, target)
	if idx == -1 {
		return
	}
	held := idx == f.current
	if held {
		target.Blur()
	}
	f.targets = slices.Delete(f.targets, idx, idx+1)

	switch {
	case len(f.targets) == 0:
		f.current = -1
	case held:
		f.current = -1
		f.focusFirst(idx%len(f.targets), 1)
	case idx < f.current:
		f.current--
	}
}

// Len returns the number of registered targets.
func (f *FocusManager) Len() int { return len(f.targets) }

// Focused returns the target holding focus, or nil.
func (f *FocusManager) Focused() Focusable {
	if f.current < 0 || f.current >= len(f.targets) {
		return nil
	}
	return f.targets[f.current]
}

// SetFocus moves focus to target. Unregistered or unfocusable targets are
// ignored.
func (f *FocusManager) SetFocus(target Focusable) {
	idx := slices.Index(f.targets, target)
	if idx == -1 || !target.IsFocusable() {
		return
	}
	if prev := f.Focused(); prev != nil && f.current != idx {
		prev.Blur()
	}
	f.current = idx
	target.Focus()
}

// Next moves focus forward, wrapping at the end.
func (f *FocusManager) Next() { f.step(1) }

// Prev moves focus backward, wrapping at the start.
func (f *FocusManager) Prev() { f.step(-1) }

func (f *FocusManager) step(dir int) {
	n := len(f.targets)
	if n == 0 {
		return
	}
	if prev := f.Focused(); prev != nil {
		prev.Blur()
	}
	from := f.current + dir
	if f.current < 0 && dir < 0 {
		from = n - 1
	}
	f.current = -1
	f.focusFirst(((from%n)+n)%n, dir)
}

// focusFirst focuses the first focusable target found walking the ring
// from start in direction dir.
func (f *FocusManager) focusFirst(start, dir int) {
	n := len(f.targets)
	for i := range n {
		idx := ((start+dir*i)%n + n) % n
		if f.targets[idx].IsFocusable() {
			f.current = idx
			f.targets[idx].Focus()
			return
		}
	}
}

// Dispatch sends ev to the focused target and reports whether it was
// consumed.
func (f *FocusManager) Dispatch(ev KeyEvent) bool {
	focused := f.Focused()
	if focused == nil {
		debug.Log("FocusManager.Dispatch: no focused target for %q", ev.Code)
		return false
	}
	return focused.HandleEvent(ev)
}
