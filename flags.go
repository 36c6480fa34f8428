package scene

import "strings"

// PropertyChangeFlag records which categories of node state changed and
// have not yet been reconciled by the matching pass. Flags accumulate by
// OR until the owning property is explicitly cleaned.
type PropertyChangeFlag uint32

const (
	PropertyUpdateNormal               PropertyChangeFlag = 0
	PropertyUpdateMeasure              PropertyChangeFlag = 1
	PropertyUpdateLayout               PropertyChangeFlag = 1 << 1
	PropertyUpdateDiff                 PropertyChangeFlag = 1 << 2
	PropertyUpdateMeasureSelf          PropertyChangeFlag = 1 << 3
	PropertyUpdateMeasureSelfAndParent PropertyChangeFlag = 1 << 4
	PropertyUpdateByChildRequest       PropertyChangeFlag = 1 << 5
	PropertyUpdateRender               PropertyChangeFlag = 1 << 6
	PropertyUpdateRenderByChildRequest PropertyChangeFlag = 1 << 7
	PropertyUpdateEvent                PropertyChangeFlag = 1 << 8
	PropertyUpdateMeasureSelfAndChild  PropertyChangeFlag = 1 << 9
)

const measureMask = PropertyUpdateMeasure | PropertyUpdateMeasureSelf |
	PropertyUpdateMeasureSelfAndParent | PropertyUpdateByChildRequest |
	PropertyUpdateMeasureSelfAndChild

// NoChanged reports whether no bit is set.
func (f PropertyChangeFlag) NoChanged() bool {
	return f == PropertyUpdateNormal
}

// NeedMeasure reports whether any measure-affecting bit is set.
func (f PropertyChangeFlag) NeedMeasure() bool {
	return f&measureMask != 0
}

// NeedLayout reports whether the layout bit is set.
func (f PropertyChangeFlag) NeedLayout() bool {
	return f&PropertyUpdateLayout != 0
}

// NeedRequestMeasureAndLayout reports whether a layout pass must run.
func (f PropertyChangeFlag) NeedRequestMeasureAndLayout() bool {
	return f.NeedMeasure() || f.NeedLayout()
}

// NeedRequestParentMeasure reports whether the change may alter the size
// the parent reserved for this node.
func (f PropertyChangeFlag) NeedRequestParentMeasure() bool {
	return f&(PropertyUpdateMeasure|PropertyUpdateByChildRequest|PropertyUpdateMeasureSelfAndParent) != 0
}

// ForceParentMeasure reports whether the change forces the parent to
// re-measure even when it was dirtied only by a child request.
func (f PropertyChangeFlag) ForceParentMeasure() bool {
	return f&(PropertyUpdateMeasure|PropertyUpdateMeasureSelfAndParent) != 0
}

// UpdateByChildRequest reports whether a child asked for this node to be re-measured.
func (f PropertyChangeFlag) UpdateByChildRequest() bool {
	return f&PropertyUpdateByChildRequest != 0
}

// NeedRender reports whether a paint pass must run.
func (f PropertyChangeFlag) NeedRender() bool {
	return f&(PropertyUpdateRender|PropertyUpdateRenderByChildRequest) != 0
}

// NeedMakePropertyDiff reports whether the change must be reconciled by a
// property diff before layout.
func (f PropertyChangeFlag) NeedMakePropertyDiff() bool {
	return f&PropertyUpdateDiff != 0
}

var flagNames = []struct {
	flag PropertyChangeFlag
	name string
}{
	{PropertyUpdateMeasure, "MEASURE"},
	{PropertyUpdateLayout, "LAYOUT"},
	{PropertyUpdateDiff, "DIFF"},
	{PropertyUpdateMeasureSelf, "MEASURE_SELF"},
	{PropertyUpdateMeasureSelfAndParent, "MEASURE_SELF_AND_PARENT"},
	{PropertyUpdateByChildRequest, "BY_CHILD_REQUEST"},
	{PropertyUpdateRender, "RENDER"},
	{PropertyUpdateRenderByChildRequest, "RENDER_BY_CHILD_REQUEST"},
	{PropertyUpdateEvent, "EVENT"},
	{PropertyUpdateMeasureSelfAndChild, "MEASURE_SELF_AND_CHILD"},
}

// String renders the set bits by name, e.g. "MEASURE|RENDER".
func (f PropertyChangeFlag) String() string {
	if f == PropertyUpdateNormal {
		return "NORMAL"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
