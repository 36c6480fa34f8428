package scene

import "github.com/grindlemire/go-scene/internal/layout"

// DimensionRect is a response region relative to a node's paint rect.
// Percentages resolve against the paint rect size.
type DimensionRect struct {
	OffsetX, OffsetY Value
	Width, Height    Value
}

// FullDimensionRect covers the whole paint rect.
func FullDimensionRect() DimensionRect {
	return DimensionRect{
		OffsetX: layout.Fixed(0),
		OffsetY: layout.Fixed(0),
		Width:   layout.Percent(100),
		Height:  layout.Percent(100),
	}
}

// Resolve converts the region to parent coordinates for a node painted at
// rect. An Auto offset is zero; an Auto size makes the region invalid.
func (d DimensionRect) Resolve(rect RectF) (RectF, bool) {
	x := d.OffsetX.Resolve(rect.Width, 0)
	y := d.OffsetY.Resolve(rect.Height, 0)
	w, okW := d.Width.ResolveOptional(rect.Width)
	h, okH := d.Height.ResolveOptional(rect.Height)
	if !okW || !okH {
		return RectF{}, false
	}
	return RectF{X: rect.X + x, Y: rect.Y + y, Width: w, Height: h}, true
}

// TouchInterceptFunc decides a node's hit test mode for one touch.
type TouchInterceptFunc func(TouchEventInfo) HitTestMode

// ChildTouchTestFunc picks a child by inspector id to forward a touch to.
type ChildTouchTestFunc func([]TouchTestInfo) TouchResult

// SizeChangeFunc is called with the previous and the new frame rect.
type SizeChangeFunc func(oldRect, newRect RectF)

// EventHub owns a node's event state.
type EventHub struct {
	enabled bool
	gesture *GestureEventHub
	input   *InputEventHub

	onSizeChanged      SizeChangeFunc
	innerSizeChanged   map[int32]SizeChangeFunc
	innerSizeChangeIDs []int32

	onAttach    func()
	onDetach    func()
	onAppear    func()
	onDisappear func()
}

// NewEventHub returns an enabled EventHub.
func NewEventHub() *EventHub {
	return &EventHub{enabled: true}
}

// IsEnabled reports whether the node accepts input.
func (h *EventHub) IsEnabled() bool { return h.enabled }

// SetEnabled enables or disables input for the node.
func (h *EventHub) SetEnabled(enabled bool) { h.enabled = enabled }

// GestureEventHub returns the gesture hub, or nil if never created.
func (h *EventHub) GestureEventHub() *GestureEventHub { return h.gesture }

// GetOrCreateGestureEventHub returns the gesture hub, creating it.
func (h *EventHub) GetOrCreateGestureEventHub() *GestureEventHub {
	if h.gesture == nil {
		h.gesture = newGestureEventHub()
	}
	return h.gesture
}

// InputEventHub returns the input hub, or nil if never created.
func (h *EventHub) InputEventHub() *InputEventHub { return h.input }

// GetOrCreateInputEventHub returns the input hub, creating it.
func (h *EventHub) GetOrCreateInputEventHub() *InputEventHub {
	if h.input == nil {
		h.input = &InputEventHub{}
	}
	return h.input
}

// SetOnSizeChanged installs the user size-change callback.
func (h *EventHub) SetOnSizeChanged(fn SizeChangeFunc) { h.onSizeChanged = fn }

// AddInnerOnSizeChanged installs a framework size-change callback under id.
func (h *EventHub) AddInnerOnSizeChanged(id int32, fn SizeChangeFunc) {
	if h.innerSizeChanged == nil {
		h.innerSizeChanged = make(map[int32]SizeChangeFunc)
	}
	if _, ok := h.innerSizeChanged[id]; !ok {
		h.innerSizeChangeIDs = append(h.innerSizeChangeIDs, id)
	}
	h.innerSizeChanged[id] = fn
}

// RemoveInnerOnSizeChanged drops the framework callback under id.
func (h *EventHub) RemoveInnerOnSizeChanged(id int32) {
	if _, ok := h.innerSizeChanged[id]; !ok {
		return
	}
	delete(h.innerSizeChanged, id)
	for i, v := range h.innerSizeChangeIDs {
		if v == id {
			h.innerSizeChangeIDs = append(h.innerSizeChangeIDs[:i], h.innerSizeChangeIDs[i+1:]...)
			break
		}
	}
}

// HasOnSizeChanged reports whether any size-change callback is installed.
func (h *EventHub) HasOnSizeChanged() bool {
	return h.onSizeChanged != nil || len(h.innerSizeChanged) > 0
}

// FireOnSizeChanged calls the user callback, then the framework callbacks
// in registration order.
func (h *EventHub) FireOnSizeChanged(oldRect, newRect RectF) {
	if h.onSizeChanged != nil {
		h.onSizeChanged(oldRect, newRect)
	}
	for _, id := range h.innerSizeChangeIDs {
		if fn := h.innerSizeChanged[id]; fn != nil {
			fn(oldRect, newRect)
		}
	}
}

func (h *EventHub) SetOnAttach(fn func())    { h.onAttach = fn }
func (h *EventHub) SetOnDetach(fn func())    { h.onDetach = fn }
func (h *EventHub) SetOnAppear(fn func())    { h.onAppear = fn }
func (h *EventHub) SetOnDisappear(fn func()) { h.onDisappear = fn }

func (h *EventHub) fireOnAttach() {
	if h.onAttach != nil {
		h.onAttach()
	}
}

func (h *EventHub) fireOnDetach() {
	if h.onDetach != nil {
		h.onDetach()
	}
}

func (h *EventHub) fireOnAppear() {
	if h.onAppear != nil {
		h.onAppear()
	}
}

func (h *EventHub) fireOnDisappear() {
	if h.onDisappear != nil {
		h.onDisappear()
	}
}

// GestureEventHub holds the touch configuration of a node.
type GestureEventHub struct {
	hitTestMode    HitTestMode
	touchable      bool
	monopolize     bool
	responseRegion []DimensionRect
	mouseRegion    []DimensionRect

	onTouchIntercept TouchInterceptFunc
	onChildTouchTest ChildTouchTestFunc

	touchCallbacks []func(TouchEvent)
	recognizers    []string
}

func newGestureEventHub() *GestureEventHub {
	return &GestureEventHub{touchable: true}
}

func (g *GestureEventHub) HitTestMode() HitTestMode          { return g.hitTestMode }
func (g *GestureEventHub) SetHitTestMode(m HitTestMode)      { g.hitTestMode = m }
func (g *GestureEventHub) Touchable() bool                   { return g.touchable }
func (g *GestureEventHub) SetTouchable(touchable bool)       { g.touchable = touchable }
func (g *GestureEventHub) MonopolizeEvents() bool            { return g.monopolize }
func (g *GestureEventHub) SetMonopolizeEvents(monopoly bool) { g.monopolize = monopoly }

// ResponseRegion returns the touch response regions.
func (g *GestureEventHub) ResponseRegion() []DimensionRect { return g.responseRegion }

// SetResponseRegion replaces the touch response regions. An empty list
// restores the default of the whole paint rect.
func (g *GestureEventHub) SetResponseRegion(regions []DimensionRect) {
	g.responseRegion = append([]DimensionRect(nil), regions...)
}

// MouseResponseRegion returns the mouse response regions.
func (g *GestureEventHub) MouseResponseRegion() []DimensionRect { return g.mouseRegion }

// SetMouseResponseRegion replaces the mouse response regions.
func (g *GestureEventHub) SetMouseResponseRegion(regions []DimensionRect) {
	g.mouseRegion = append([]DimensionRect(nil), regions...)
}

// SetOnTouchIntercept installs the touch intercept callback.
func (g *GestureEventHub) SetOnTouchIntercept(fn TouchInterceptFunc) { g.onTouchIntercept = fn }

// OnTouchIntercept returns the touch intercept callback, or nil.
func (g *GestureEventHub) OnTouchIntercept() TouchInterceptFunc { return g.onTouchIntercept }

// SetOnChildTouchTest installs the child touch test callback.
func (g *GestureEventHub) SetOnChildTouchTest(fn ChildTouchTestFunc) { g.onChildTouchTest = fn }

// OnChildTouchTest returns the child touch test callback, or nil.
func (g *GestureEventHub) OnChildTouchTest() ChildTouchTestFunc { return g.onChildTouchTest }

// AddTouchCallback registers a raw touch callback.
func (g *GestureEventHub) AddTouchCallback(fn func(TouchEvent)) {
	g.touchCallbacks = append(g.touchCallbacks, fn)
}

// AddRecognizer registers a named gesture recognizer.
func (g *GestureEventHub) AddRecognizer(name string) {
	g.recognizers = append(g.recognizers, name)
}

// DispatchTouch delivers ev to the raw touch callbacks.
func (g *GestureEventHub) DispatchTouch(ev TouchEvent) {
	for _, fn := range g.touchCallbacks {
		fn(ev)
	}
}

// ProcessTouchTestHit collects the node's touch targets. The final result
// holds the targets collected from children first, then the node's raw
// touch target, then its recognizers, which also join the response link.
// It reports whether bubbling must stop, which this hub never requests.
func (g *GestureEventHub) ProcessTouchTestHit(coordinateOffset OffsetF, host *FrameNode, inner TouchTestResult,
	final *TouchTestResult, responseLink *ResponseLinkResult) bool {
	*final = append(*final, inner...)
	var id int32
	var tag string
	if host != nil {
		id, tag = host.ID(), host.Tag()
	}
	if len(g.touchCallbacks) > 0 {
		*final = append(*final, TouchTarget{NodeID: id, Tag: tag, Name: "touch", CoordinateOffset: coordinateOffset})
	}
	for _, name := range g.recognizers {
		t := TouchTarget{NodeID: id, Tag: tag, Name: name, CoordinateOffset: coordinateOffset}
		*final = append(*final, t)
		if responseLink != nil {
			*responseLink = append(*responseLink, t)
		}
	}
	return false
}

// InputEventHub holds the mouse, hover and axis handlers of a node.
type InputEventHub struct {
	mouse []func(OffsetF)
	hover []func(bool)
	axis  []func(OffsetF)
}

func (h *InputEventHub) AddOnMouse(fn func(OffsetF)) { h.mouse = append(h.mouse, fn) }
func (h *InputEventHub) AddOnHover(fn func(bool))    { h.hover = append(h.hover, fn) }
func (h *InputEventHub) AddOnAxis(fn func(OffsetF))  { h.axis = append(h.axis, fn) }

// ProcessMouseTestHit collects mouse and hover targets.
func (h *InputEventHub) ProcessMouseTestHit(coordinateOffset OffsetF, host *FrameNode, result *TouchTestResult) bool {
	var id int32
	var tag string
	if host != nil {
		id, tag = host.ID(), host.Tag()
	}
	if len(h.mouse) > 0 {
		*result = append(*result, TouchTarget{NodeID: id, Tag: tag, Name: "mouse", CoordinateOffset: coordinateOffset})
	}
	if len(h.hover) > 0 {
		*result = append(*result, TouchTarget{NodeID: id, Tag: tag, Name: "hover", CoordinateOffset: coordinateOffset})
	}
	return false
}

// ProcessAxisTestHit collects axis targets.
func (h *InputEventHub) ProcessAxisTestHit(coordinateOffset OffsetF, host *FrameNode, result *AxisTestResult) bool {
	if len(h.axis) == 0 {
		return false
	}
	var id int32
	var tag string
	if host != nil {
		id, tag = host.ID(), host.Tag()
	}
	*result = append(*result, TouchTarget{NodeID: id, Tag: tag, Name: "axis", CoordinateOffset: coordinateOffset})
	return false
}
