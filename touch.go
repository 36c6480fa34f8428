package scene

import "strconv"

// HitTestMode is a node's policy for hit testing past itself.
type HitTestMode uint8

const (
	// HitTestDefault: the node and its children are tested; a hit child
	// blocks siblings below it.
	HitTestDefault HitTestMode = iota
	// HitTestBlock: the node consumes the hit and blocks its own children
	// and the siblings below it.
	HitTestBlock
	// HitTestTransparent: the node and its children respond and siblings
	// below are still tested.
	HitTestTransparent
	// HitTestNone: the node itself never responds; children do.
	HitTestNone
	// HitTestTransparentSelf: the node responds but lets siblings below
	// respond as well.
	HitTestTransparentSelf
)

func (m HitTestMode) String() string {
	switch m {
	case HitTestDefault:
		return "DEFAULT"
	case HitTestBlock:
		return "BLOCK"
	case HitTestTransparent:
		return "TRANSPARENT"
	case HitTestNone:
		return "NONE"
	case HitTestTransparentSelf:
		return "TRANSPARENT_SELF"
	}
	return "HitTestMode(" + strconv.Itoa(int(m)) + ")"
}

// HitTestResult is the outcome of testing one subtree.
type HitTestResult uint8

const (
	OutOfRegion HitTestResult = iota
	Bubbling
	StopBubbling
	SelfTransparent
)

func (r HitTestResult) String() string {
	switch r {
	case OutOfRegion:
		return "OUT_OF_REGION"
	case Bubbling:
		return "BUBBLING"
	case StopBubbling:
		return "STOP_BUBBLING"
	case SelfTransparent:
		return "SELF_TRANSPARENT"
	}
	return "HitTestResult(" + strconv.Itoa(int(r)) + ")"
}

// SourceType is the device kind an event came from.
type SourceType uint8

const (
	SourceTouch SourceType = iota
	SourceMouse
)

func (s SourceType) String() string {
	if s == SourceMouse {
		return "mouse"
	}
	return "touch"
}

// InputEventType classifies the incoming input for hit testing.
type InputEventType uint8

const (
	InputTouchScreen InputEventType = iota
	InputMouseButton
	InputAxis
)

// TouchTestStrategy is the answer of an on-child-touch-test callback.
type TouchTestStrategy uint8

const (
	StrategyDefault TouchTestStrategy = iota
	// StrategyForward sends the event to the named child only.
	StrategyForward
	// StrategyForwardCompetition sends the event to the named child first
	// and then to the remaining children.
	StrategyForwardCompetition
)

// TouchType is the phase of a touch point.
type TouchType uint8

const (
	TouchDown TouchType = iota
	TouchMove
	TouchUp
	TouchCancel
)

// TouchEvent is one touch point in window coordinates.
type TouchEvent struct {
	ID   int32
	X, Y float64
	Type TouchType
	Time int64
}

// TouchRestrict carries the per-dispatch restrictions of a hit test.
type TouchRestrict struct {
	HitTestType    SourceType
	SourceType     SourceType
	InputEventType InputEventType
	TouchEvent     TouchEvent
	// ChildTouchTestList collects the ids forwarded to by child-touch-test
	// callbacks during this dispatch.
	ChildTouchTestList []string
}

// TouchTarget is one handler collected by a hit test.
type TouchTarget struct {
	NodeID int32
	Tag    string
	// Name identifies the handler, e.g. "touch", "mouse", "axis" or a
	// recognizer name.
	Name string
	// CoordinateOffset converts window coordinates to node coordinates.
	CoordinateOffset OffsetF
}

// TouchTestResult is the ordered list of collected touch targets.
type TouchTestResult []TouchTarget

// AxisTestResult is the ordered list of collected axis targets.
type AxisTestResult []TouchTarget

// ResponseLinkResult collects the recognizers that take part in gesture
// competition for a dispatch.
type ResponseLinkResult []TouchTarget

// TouchTestInfo describes a child to an on-child-touch-test callback.
type TouchTestInfo struct {
	ID              string
	WindowPoint     OffsetF
	CurrentCmpPoint OffsetF
	SubCmpPoint     OffsetF
	SubRect         RectF
}

// TouchResult is the answer of an on-child-touch-test callback.
type TouchResult struct {
	Strategy TouchTestStrategy
	ID       string
}

// TouchEventInfo is passed to on-touch-intercept callbacks.
type TouchEventInfo struct {
	TouchID        int32
	Type           TouchType
	Source         SourceType
	GlobalLocation OffsetF
	LocalLocation  OffsetF
	Time           int64
}
