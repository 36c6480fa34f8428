package scene

import (
	"time"

	"golang.org/x/image/math/f64"

	"github.com/grindlemire/go-scene/internal/debug"
	"github.com/grindlemire/go-scene/internal/layout"
)

// matrixCacheThreshold is how long, in vsync time, a cached matrix stays
// valid when nothing else invalidates it.
const matrixCacheThreshold = 15 * time.Second

// matrixCache holds the render context matrices used by hit testing.
type matrixCache struct {
	valid                  bool
	revert                 f64.Aff3
	local                  f64.Aff3
	paintRectWithTransform RectF
	paintRect              RectF
	version                uint64
	time                   time.Time
}

// MatrixInfo is the cached transform state of a node.
type MatrixInfo struct {
	// Revert maps a parent point to the untransformed node.
	Revert f64.Aff3
	// Local maps a parent point to node-local coordinates.
	Local                  f64.Aff3
	PaintRectWithTransform RectF
}

// GetOrRefreshMatrixFromCache returns the node's matrices, recomputing
// them when forced, when the transform or paint rect changed, or when the
// cache is older than the threshold.
func (n *FrameNode) GetOrRefreshMatrixFromCache(forceRefresh bool) MatrixInfo {
	c := &n.matrixCache
	rc := n.renderContext
	var now time.Time
	if p := n.Pipeline(); p != nil {
		now = p.VsyncTime()
	}
	rect := rc.PaintRectWithoutTransform()
	stale := !c.valid || forceRefresh ||
		c.version != rc.TransformVersion() ||
		c.paintRect != rect ||
		c.time.Add(matrixCacheThreshold).Before(now)
	if stale {
		c.revert = rc.RevertMatrix()
		c.paintRectWithTransform = rc.PaintRectWithTransform()
		c.local = MultiplyMatrix(TranslateMatrix(-rect.X, -rect.Y), c.revert)
		c.version = rc.TransformVersion()
		c.paintRect = rect
		c.time = now
		c.valid = true
	}
	return MatrixInfo{Revert: c.revert, Local: c.local, PaintRectWithTransform: c.paintRectWithTransform}
}

// HitTestMode returns the node's hit test mode.
func (n *FrameNode) HitTestMode() HitTestMode {
	if g := n.eventHub.GestureEventHub(); g != nil {
		return g.HitTestMode()
	}
	return HitTestDefault
}

// SetHitTestMode sets the node's hit test mode.
func (n *FrameNode) SetHitTestMode(m HitTestMode) {
	n.eventHub.GetOrCreateGestureEventHub().SetHitTestMode(m)
}

// Touchable reports whether the node responds to touches itself.
func (n *FrameNode) Touchable() bool {
	if g := n.eventHub.GestureEventHub(); g != nil {
		return g.Touchable()
	}
	return true
}

// ResponseRegionList returns the regions, in parent coordinates, the node
// answers hits in when painted at rect. Mouse sources prefer the mouse
// regions; without any region that resolves the rect itself is used.
func (n *FrameNode) ResponseRegionList(rect RectF, source SourceType) []RectF {
	g := n.eventHub.GestureEventHub()
	if g == nil {
		return []RectF{rect}
	}
	regions := g.ResponseRegion()
	if source == SourceMouse && len(g.MouseResponseRegion()) > 0 {
		regions = g.MouseResponseRegion()
	}
	if len(regions) == 0 {
		return []RectF{rect}
	}
	out := make([]RectF, 0, len(regions))
	for _, region := range regions {
		if r, ok := region.Resolve(rect); ok {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return []RectF{rect}
	}
	return out
}

// InResponseRegionList reports whether p lies in one of regions. A node
// whose transformed paint rect is degenerate never matches.
func (n *FrameNode) InResponseRegionList(p OffsetF, regions []RectF) bool {
	r := n.matrixCache.paintRectWithTransform
	if layout.NearZero(r.Width) || layout.NearZero(r.Height) {
		return false
	}
	for _, region := range regions {
		if region.Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}

// IsOutOfTouchTestRegion reports whether parentRevert misses the node and
// every unclipped descendant. regions may be nil to use the node's own.
func (n *FrameNode) IsOutOfTouchTestRegion(parentRevert OffsetF, source SourceType, regions []RectF) bool {
	rect := n.renderContext.PaintRectWithoutTransform()
	if regions == nil {
		regions = n.ResponseRegionList(rect, source)
	}
	revert := MapPoint(n.GetOrRefreshMatrixFromCache(false).Revert, parentRevert)
	subRevert := revert.Sub(rect.Offset())
	if n.InResponseRegionList(revert, regions) && n.Touchable() {
		return false
	}
	if n.renderContext.ClipEdge() {
		return true
	}
	for i := len(n.frameChildren) - 1; i >= 0; i-- {
		if !n.frameChildren[i].IsOutOfTouchTestRegion(subRevert, source, nil) {
			return false
		}
	}
	return true
}

// globalToLocal maps a window point into this node's coordinates.
func (n *FrameNode) globalToLocal(p OffsetF) OffsetF {
	if parent := AncestorFrameNode(n); parent != nil {
		p = parent.globalToLocal(p)
	}
	rect := n.renderContext.PaintRectWithoutTransform()
	return MapPoint(n.GetOrRefreshMatrixFromCache(false).Revert, p).Sub(rect.Offset())
}

// TriggerOnTouchIntercept runs the touch intercept callback and adopts the
// mode it returns.
func (n *FrameNode) TriggerOnTouchIntercept(ev TouchEvent) HitTestMode {
	g := n.eventHub.GestureEventHub()
	if g == nil || g.OnTouchIntercept() == nil {
		return HitTestDefault
	}
	global := OffsetF{X: ev.X, Y: ev.Y}
	mode := g.OnTouchIntercept()(TouchEventInfo{
		TouchID:        ev.ID,
		Type:           ev.Type,
		Source:         SourceTouch,
		GlobalLocation: global,
		LocalLocation:  n.globalToLocal(global),
		Time:           ev.Time,
	})
	g.SetHitTestMode(mode)
	return mode
}

// CollectTouchInfos describes the children with an inspector id to the
// child touch test callback, topmost first.
func (n *FrameNode) CollectTouchInfos(global, parentRevert OffsetF) []TouchTestInfo {
	g := n.eventHub.GestureEventHub()
	if g == nil || g.OnChildTouchTest() == nil {
		return nil
	}
	var infos []TouchTestInfo
	for i := len(n.frameChildren) - 1; i >= 0; i-- {
		child := n.frameChildren[i]
		if child.inspectorID == "" {
			continue
		}
		rect := child.renderContext.PaintRectWithoutTransform()
		infos = append(infos, TouchTestInfo{
			ID:              child.inspectorID,
			WindowPoint:     global,
			CurrentCmpPoint: parentRevert,
			SubCmpPoint:     child.renderContext.PointWithRevert(parentRevert).Sub(rect.Offset()),
			SubRect:         child.geometry.FrameRect(),
		})
	}
	return infos
}

func (n *FrameNode) childTouchTestResult(infos []TouchTestInfo) TouchResult {
	g := n.eventHub.GestureEventHub()
	if g == nil || g.OnChildTouchTest() == nil {
		return TouchResult{}
	}
	return g.OnChildTouchTest()(infos)
}

// GetDispatchFrameNode returns the child a forwarding touch result names.
func (n *FrameNode) GetDispatchFrameNode(res TouchResult) *FrameNode {
	if res.Strategy != StrategyForward && res.Strategy != StrategyForwardCompetition {
		return nil
	}
	if res.ID == "" {
		return nil
	}
	for i := len(n.frameChildren) - 1; i >= 0; i-- {
		if n.frameChildren[i].inspectorID == res.ID {
			return n.frameChildren[i]
		}
	}
	return nil
}

// stopsSiblings reports whether a child result ends the sibling scan.
func stopsSiblings(res HitTestResult, child *FrameNode, exclusive bool) bool {
	mode := child.HitTestMode()
	switch res {
	case StopBubbling:
		return mode == HitTestBlock || mode == HitTestDefault || mode == HitTestTransparentSelf ||
			(mode != HitTestTransparent && exclusive)
	case Bubbling:
		return mode == HitTestDefault || mode == HitTestTransparentSelf ||
			(mode != HitTestTransparent && exclusive)
	}
	return false
}

// TouchTest collects the touch targets under the point. global is the
// window point, parentLocal the point in the parent's transformed space
// and parentRevert the point in the parent's untransformed space. With
// isDispatch the node is hit regardless of its region.
func (n *FrameNode) TouchTest(global, parentLocal, parentRevert OffsetF, restrict *TouchRestrict,
	result *TouchTestResult, touchID int32, link *ResponseLinkResult, isDispatch bool) HitTestResult {
	if restrict == nil {
		debug.Warn("uievent", "touch test without restrict", "tag", n.Tag(), "id", n.ID())
		return OutOfRegion
	}
	cache := n.GetOrRefreshMatrixFromCache(false)
	if !n.isActive {
		debug.Warn("uievent", "inactive node skips touch test", "tag", n.Tag(), "id", n.ID(),
			"rect", cache.PaintRectWithTransform)
		return OutOfRegion
	}
	if !n.eventHub.IsEnabled() {
		debug.Warn("uievent", "disabled node skips touch test", "tag", n.Tag(), "id", n.ID())
		return OutOfRegion
	}

	origRect := n.renderContext.PaintRectWithoutTransform()
	regions := n.ResponseRegionList(origRect, restrict.SourceType)
	if !isDispatch && n.IsOutOfTouchTestRegion(parentRevert, restrict.SourceType, regions) {
		return OutOfRegion
	}

	testResult := OutOfRegion
	prevent, consumed := false, false
	var newComing TouchTestResult

	preLocation := parentLocal.Sub(cache.PaintRectWithTransform.Offset())
	localPoint := n.renderContext.PointWithTransform(preLocation)
	localTransformOffset := preLocation.Sub(localPoint)
	revertPoint := MapPoint(cache.Revert, parentRevert)
	subRevert := revertPoint.Sub(origRect.Offset())

	intercept := HitTestDefault
	if restrict.InputEventType != InputMouseButton {
		intercept = n.TriggerOnTouchIntercept(restrict.TouchEvent)
	}
	var touchRes TouchResult
	if intercept != HitTestBlock {
		touchRes = n.childTouchTestResult(n.CollectTouchInfos(global, subRevert))
		if touchRes.Strategy != StrategyDefault && touchRes.ID == "" {
			debug.Warn("uievent", "child touch test result without id", "strategy", touchRes.Strategy)
			touchRes.Strategy = StrategyDefault
		}
		if child := n.GetDispatchFrameNode(touchRes); child != nil {
			res := child.TouchTest(global, localPoint, subRevert, restrict, &newComing, touchID, link, true)
			restrict.ChildTouchTestList = append(restrict.ChildTouchTestList, touchRes.ID)
			switch res {
			case StopBubbling:
				prevent, consumed = true, true
			case Bubbling:
				consumed = true
			}
		}
	}

	for i := len(n.frameChildren) - 1; i >= 0; i-- {
		if n.HitTestMode() == HitTestBlock {
			break
		}
		if intercept != HitTestBlock && touchRes.Strategy == StrategyForward {
			break
		}
		child := n.frameChildren[i]
		if intercept != HitTestBlock && touchRes.Strategy == StrategyForwardCompetition && touchRes.ID == child.inspectorID {
			continue
		}
		res := child.TouchTest(global, localPoint, subRevert, restrict, &newComing, touchID, link, false)
		if res == StopBubbling {
			prevent, consumed = true, true
			if stopsSiblings(res, child, n.exclusiveHits) {
				break
			}
		}
		if res == Bubbling && stopsSiblings(res, child, n.exclusiveHits) {
			consumed = true
			break
		}
	}

	if consumed {
		testResult = Bubbling
		if prevent {
			testResult = StopBubbling
		}
		consumed = false
	} else if n.HitTestMode() == HitTestBlock {
		testResult = StopBubbling
	}

	if !prevent && n.HitTestMode() != HitTestNone && (isDispatch || n.InResponseRegionList(revertPoint, regions)) {
		n.pattern.OnTouchTestHit(restrict.HitTestType)
		consumed = true
		offset := global.Sub(localPoint).Sub(localTransformOffset)
		switch restrict.HitTestType {
		case SourceTouch:
			if g := n.eventHub.GestureEventHub(); g != nil {
				var final TouchTestResult
				var newLink ResponseLinkResult
				prevent = g.ProcessTouchTestHit(offset, n, newComing, &final, &newLink)
				newComing = final
				if link != nil {
					*link = append(*link, newLink...)
				}
			}
		case SourceMouse:
			if h := n.eventHub.InputEventHub(); h != nil {
				prevent = h.ProcessMouseTestHit(global.Sub(localPoint), n, &newComing)
			}
		}
	}

	*result = append(*result, newComing...)
	return n.combineSelfResult(testResult, consumed, prevent)
}

// combineSelfResult folds the node's own hit into the children's result.
func (n *FrameNode) combineSelfResult(testResult HitTestResult, consumed, prevent bool) HitTestResult {
	if !consumed {
		return testResult
	}
	if testResult != OutOfRegion {
		return testResult
	}
	if prevent {
		return StopBubbling
	}
	if n.HitTestMode() == HitTestTransparentSelf {
		return SelfTransparent
	}
	return Bubbling
}

// AxisTest collects the axis targets under the point. It follows the touch
// test without the intercept and forwarding layer.
func (n *FrameNode) AxisTest(global, parentLocal, parentRevert OffsetF, restrict *TouchRestrict,
	result *AxisTestResult) HitTestResult {
	if !n.isActive || !n.eventHub.IsEnabled() {
		return OutOfRegion
	}
	if n.IsOutOfTouchTestRegion(parentRevert, restrict.SourceType, nil) {
		return OutOfRegion
	}
	testResult := OutOfRegion
	prevent, consumed := false, false
	var newComing AxisTestResult
	cache := n.GetOrRefreshMatrixFromCache(false)
	localPoint := n.renderContext.PointWithTransform(parentLocal.Sub(cache.PaintRectWithTransform.Offset()))
	revertPoint := MapPoint(cache.Revert, parentRevert)
	origRect := n.renderContext.PaintRectWithoutTransform()
	subRevert := revertPoint.Sub(origRect.Offset())

	for i := len(n.frameChildren) - 1; i >= 0; i-- {
		if n.HitTestMode() == HitTestBlock {
			break
		}
		child := n.frameChildren[i]
		res := child.AxisTest(global, localPoint, subRevert, restrict, &newComing)
		consumed = false
		switch res {
		case StopBubbling:
			prevent, consumed = true, true
		case Bubbling:
			consumed = true
		}
		if stopsSiblings(res, child, n.exclusiveHits) {
			break
		}
	}

	if consumed {
		testResult = Bubbling
		if prevent {
			testResult = StopBubbling
		}
		consumed = false
	} else if n.HitTestMode() == HitTestBlock {
		testResult = StopBubbling
	}
	regions := n.ResponseRegionList(origRect, restrict.SourceType)
	if !prevent && n.HitTestMode() != HitTestNone && n.InResponseRegionList(revertPoint, regions) {
		consumed = true
		if h := n.eventHub.InputEventHub(); h != nil {
			prevent = h.ProcessAxisTestHit(global.Sub(localPoint), n, &newComing)
		}
	}

	*result = append(*result, newComing...)
	out := testResult
	if consumed {
		switch {
		case testResult == OutOfRegion && prevent:
			out = StopBubbling
		case n.HitTestMode() == HitTestTransparentSelf:
			out = SelfTransparent
		default:
			out = Bubbling
		}
	}
	return out
}

// MouseTest is kept for callers of the older mouse path. Mouse targets are
// collected by TouchTest with a mouse hit test type.
func (n *FrameNode) MouseTest(global, parentLocal OffsetF, result *TouchTestResult) HitTestResult {
	return Bubbling
}
