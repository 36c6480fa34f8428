package scene

import (
	"os"
	"testing"
	"time"

	"github.com/grindlemire/go-scene/internal/debug"
)

func TestMain(m *testing.M) {
	debug.SetLogger(nil)
	os.Exit(m.Run())
}

// recordingPipeline is a Pipeline that records every request and runs
// nothing on its own.
type recordingPipeline struct {
	rootSize SizeF
	vsync    time.Time
	focus    *FocusManager

	layout       []*FrameNode
	render       []*FrameNode
	property     []*FrameNode
	freeze       []*FrameNode
	afterLayout  []func()
	afterRender  []func()
	predict      []func()
	syncGeometry []func()
	removed      []*FrameNode
	expand       []*FrameNode
	layoutNodes  []*FrameNode
	completed    []string
	frames       int
}

func newRecordingPipeline() *recordingPipeline {
	return &recordingPipeline{
		rootSize: SizeF{Width: 100, Height: 100},
		focus:    NewFocusManager(),
	}
}

func (p *recordingPipeline) AddDirtyLayoutNode(n *FrameNode)   { p.layout = append(p.layout, n) }
func (p *recordingPipeline) AddDirtyRenderNode(n *FrameNode)   { p.render = append(p.render, n) }
func (p *recordingPipeline) AddDirtyPropertyNode(n *FrameNode) { p.property = append(p.property, n) }
func (p *recordingPipeline) AddDirtyFreezeNode(n *FrameNode)   { p.freeze = append(p.freeze, n) }
func (p *recordingPipeline) RemoveDirtyNode(n *FrameNode)      { p.removed = append(p.removed, n) }
func (p *recordingPipeline) AddAfterLayoutTask(fn func())      { p.afterLayout = append(p.afterLayout, fn) }
func (p *recordingPipeline) AddAfterRenderTask(fn func())      { p.afterRender = append(p.afterRender, fn) }
func (p *recordingPipeline) AddPredictTask(fn func())          { p.predict = append(p.predict, fn) }
func (p *recordingPipeline) AddSyncGeometryNodeTask(fn func()) {
	p.syncGeometry = append(p.syncGeometry, fn)
}
func (p *recordingPipeline) AddNeedExpandNode(n *FrameNode) { p.expand = append(p.expand, n) }
func (p *recordingPipeline) AddLayoutNode(n *FrameNode)     { p.layoutNodes = append(p.layoutNodes, n) }
func (p *recordingPipeline) RequestFrame()                  { p.frames++ }
func (p *recordingPipeline) VsyncTime() time.Time           { return p.vsync }
func (p *recordingPipeline) RootSize() SizeF                { return p.rootSize }
func (p *recordingPipeline) FocusManager() *FocusManager    { return p.focus }
func (p *recordingPipeline) OnLayoutCompleted(id string)    { p.completed = append(p.completed, id) }

func (p *recordingPipeline) FlushSyncGeometryNodeTasks() {
	tasks := p.syncGeometry
	p.syncGeometry = nil
	for _, fn := range tasks {
		fn()
	}
}

// reset forgets everything recorded so far.
func (p *recordingPipeline) reset() {
	size, focus := p.rootSize, p.focus
	*p = recordingPipeline{rootSize: size, focus: focus}
}

// countingAlgorithm wraps an algorithm and counts its calls.
type countingAlgorithm struct {
	inner          LayoutAlgorithm
	content        *SizeF
	measureContent int
	measure        int
	layout         int
}

func (a *countingAlgorithm) MeasureContent(c LayoutConstraint, w LayoutWrapper) (SizeF, bool) {
	a.measureContent++
	if a.content != nil {
		return *a.content, true
	}
	return a.inner.MeasureContent(c, w)
}

func (a *countingAlgorithm) Measure(w LayoutWrapper) {
	a.measure++
	a.inner.Measure(w)
}

func (a *countingAlgorithm) Layout(w LayoutWrapper) {
	a.layout++
	a.inner.Layout(w)
}

// testPattern is a configurable pattern. Its algorithm is created once and
// shared so tests can read the counters.
type testPattern struct {
	BasePattern

	measureBoundary bool
	renderBoundary  bool
	atomic          bool
	aspect          bool
	paint           NodePaintMethod
	algorithm       *countingAlgorithm

	active, inactive int
	rebuilds         int
	touchHits        int
	swaps            []DirtySwapConfig
	rerender         bool
}

func newTestPattern() *testPattern {
	return &testPattern{
		renderBoundary: true,
		algorithm:      &countingAlgorithm{inner: &BoxLayoutAlgorithm{}},
	}
}

func (p *testPattern) CreateLayoutAlgorithm() LayoutAlgorithm { return p.algorithm }
func (p *testPattern) CreateNodePaintMethod() NodePaintMethod { return p.paint }
func (p *testPattern) IsMeasureBoundary() bool                { return p.measureBoundary }
func (p *testPattern) IsRenderBoundary() bool                 { return p.renderBoundary }
func (p *testPattern) IsAtomicNode() bool                     { return p.atomic }
func (p *testPattern) OnActive()                              { p.active++ }
func (p *testPattern) OnInActive()                            { p.inactive++ }
func (p *testPattern) OnRebuildFrame()                        { p.rebuilds++ }
func (p *testPattern) OnTouchTestHit(SourceType)              { p.touchHits++ }

func (p *testPattern) IsNeedAdjustByAspectRatio() bool {
	return p.aspect && p.BasePattern.IsNeedAdjustByAspectRatio()
}

func (p *testPattern) OnDirtyLayoutWrapperSwap(_ LayoutWrapper, config DirtySwapConfig) bool {
	p.swaps = append(p.swaps, config)
	return p.rerender
}

// newTestNode creates a frame node with a fresh id and a testPattern.
func newTestNode(tag string) (*FrameNode, *testPattern) {
	pattern := newTestPattern()
	return CreateFrameNode(tag, Register().MakeUniqueID(), pattern), pattern
}

// attach puts n on the main tree of p.
func attach(n Node, p Pipeline) {
	n.AttachToMainTree(p)
}

// staticSource is a LazyDataSource over a fixed count that records builds.
type staticSource struct {
	count int
	built []int
}

func (s *staticSource) TotalCount() int { return s.count }

func (s *staticSource) BuildItem(index int) Node {
	s.built = append(s.built, index)
	n, _ := newTestNode("item")
	return n
}
