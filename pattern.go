package scene

// PatternKind distinguishes the few pattern variants the node treats
// differently.
type PatternKind uint8

const (
	PatternDefault PatternKind = iota
	// PatternKit marks patterns hosting natively built content.
	PatternKit
	// PatternLayout marks pure layout containers.
	PatternLayout
)

// DirtySwapConfig describes what changed in a finished layout pass.
type DirtySwapConfig struct {
	FrameSizeChange     bool
	FrameOffsetChange   bool
	ContentSizeChange   bool
	ContentOffsetChange bool
	SkipMeasure         bool
	SkipLayout          bool
}

// Pattern is the behavior delegate of a frame node: it supplies the
// layout algorithm, the property objects, the boundary declarations and
// reacts to lifecycle events. Patterns may mark their host dirty from any
// hook.
type Pattern interface {
	Kind() PatternKind

	CreateLayoutAlgorithm() LayoutAlgorithm
	CreateLayoutProperty() *LayoutProperty
	CreatePaintProperty() *PaintProperty
	CreateEventHub() *EventHub
	// CreateNodePaintMethod returns nil when the node paints nothing.
	CreateNodePaintMethod() NodePaintMethod

	IsMeasureBoundary() bool
	IsRenderBoundary() bool
	IsAtomicNode() bool
	IsNeedAdjustByAspectRatio() bool

	OnAttachToFrameNode(host *FrameNode)
	OnDetachFromFrameNode(host *FrameNode)
	OnAttachToMainTree()
	OnDetachFromMainTree()
	OnModifyDone()
	BeforeCreateLayoutWrapper()
	// OnDirtyLayoutWrapperSwap returns true when the node must repaint.
	OnDirtyLayoutWrapperSwap(w LayoutWrapper, config DirtySwapConfig) bool
	OnSyncGeometryNode(config DirtySwapConfig)
	BeforeSyncGeometryProperties(config DirtySwapConfig)
	OnActive()
	OnInActive()
	OnRebuildFrame()
	OnVisibleChange(visible bool)
	OnTouchTestHit(source SourceType)
}

// BasePattern implements Pattern with the defaults: a box layout, render
// boundary, not a measure boundary, and no-op hooks. Patterns embed it and
// override what they need.
type BasePattern struct {
	host *FrameNode
}

// Host returns the frame node the pattern is attached to, or nil.
func (p *BasePattern) Host() *FrameNode { return p.host }

func (p *BasePattern) Kind() PatternKind { return PatternDefault }

func (p *BasePattern) CreateLayoutAlgorithm() LayoutAlgorithm { return &BoxLayoutAlgorithm{} }

func (p *BasePattern) CreateLayoutProperty() *LayoutProperty { return NewLayoutProperty() }

func (p *BasePattern) CreatePaintProperty() *PaintProperty { return NewPaintProperty() }

func (p *BasePattern) CreateEventHub() *EventHub { return NewEventHub() }

func (p *BasePattern) CreateNodePaintMethod() NodePaintMethod { return nil }

func (p *BasePattern) IsMeasureBoundary() bool { return false }

func (p *BasePattern) IsRenderBoundary() bool { return true }

func (p *BasePattern) IsAtomicNode() bool { return true }

// IsNeedAdjustByAspectRatio reports whether the host has an aspect ratio.
func (p *BasePattern) IsNeedAdjustByAspectRatio() bool {
	if p.host == nil {
		return false
	}
	return p.host.LayoutProperty().AspectRatio() > 0
}

func (p *BasePattern) OnAttachToFrameNode(host *FrameNode) { p.host = host }

func (p *BasePattern) OnDetachFromFrameNode(*FrameNode) { p.host = nil }

func (p *BasePattern) OnAttachToMainTree() {}

func (p *BasePattern) OnDetachFromMainTree() {}

func (p *BasePattern) OnModifyDone() {}

func (p *BasePattern) BeforeCreateLayoutWrapper() {}

func (p *BasePattern) OnDirtyLayoutWrapperSwap(LayoutWrapper, DirtySwapConfig) bool { return false }

func (p *BasePattern) OnSyncGeometryNode(DirtySwapConfig) {}

func (p *BasePattern) BeforeSyncGeometryProperties(DirtySwapConfig) {}

func (p *BasePattern) OnActive() {}

func (p *BasePattern) OnInActive() {}

func (p *BasePattern) OnRebuildFrame() {}

func (p *BasePattern) OnVisibleChange(bool) {}

func (p *BasePattern) OnTouchTestHit(SourceType) {}

// BoxPattern stacks its children and aligns them inside its content box.
type BoxPattern struct {
	BasePattern
}

// NewBoxPattern returns a BoxPattern.
func NewBoxPattern() *BoxPattern { return &BoxPattern{} }

func (p *BoxPattern) Kind() PatternKind { return PatternLayout }

func (p *BoxPattern) IsAtomicNode() bool { return false }

// FlexPattern lays its children out along one axis with flex grow and
// shrink.
type FlexPattern struct {
	BasePattern
}

// NewFlexPattern returns a FlexPattern.
func NewFlexPattern() *FlexPattern { return &FlexPattern{} }

func (p *FlexPattern) Kind() PatternKind { return PatternLayout }

func (p *FlexPattern) IsAtomicNode() bool { return false }

func (p *FlexPattern) CreateLayoutAlgorithm() LayoutAlgorithm { return &FlexLayoutAlgorithm{} }

// GeometryTransition animates a shared element between two nodes. While
// it runs, it owns the participating nodes' committed geometry.
type GeometryTransition interface {
	IsRunning(node *FrameNode) bool
	IsNodeInAndActive(node *FrameNode) bool
	IsNodeOutAndActive(node *FrameNode) bool
	WillLayout(node *FrameNode)
	DidLayout(node *FrameNode)
}
