package scene

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-scene/internal/debug"
	"github.com/grindlemire/go-scene/internal/perf"
)

// Pipeline schedules the work nodes register. Nodes never run a frame
// themselves; they only queue intents here.
type Pipeline interface {
	AddDirtyLayoutNode(n *FrameNode)
	AddDirtyRenderNode(n *FrameNode)
	AddDirtyPropertyNode(n *FrameNode)
	AddDirtyFreezeNode(n *FrameNode)
	// RemoveDirtyNode drops n from every dirty set. Nodes call it when they
	// leave the main tree.
	RemoveDirtyNode(n *FrameNode)
	AddAfterLayoutTask(fn func())
	AddAfterRenderTask(fn func())
	// AddPredictTask queues work for the idle time at the end of a frame.
	AddPredictTask(fn func())
	AddSyncGeometryNodeTask(fn func())
	FlushSyncGeometryNodeTasks()
	AddNeedExpandNode(n *FrameNode)
	AddLayoutNode(n *FrameNode)
	RequestFrame()
	// VsyncTime is the timestamp of the frame being flushed.
	VsyncTime() time.Time
	RootSize() SizeF
	FocusManager() *FocusManager
	OnLayoutCompleted(inspectorID string)
}

// maxLayoutRounds bounds how often one flush re-runs layout for nodes
// dirtied by the layout pass itself.
const maxLayoutRounds = 8

// FramePipeline is the in-process Pipeline. It is driven from a single
// goroutine: nodes register work while it is idle, and FlushFrame runs the
// passes in order. Only paint tasks run on worker goroutines.
type FramePipeline struct {
	root     *FrameNode
	rootSize SizeF
	focus    *FocusManager
	clock    func() time.Time
	vsync    time.Time
	workers  int
	tracer   trace.Tracer
	logger   *slog.Logger

	dirtyLayout   map[int32]*FrameNode
	dirtyRender   map[int32]*FrameNode
	dirtyProperty map[int32]*FrameNode
	dirtyFreeze   map[int32]*FrameNode

	afterLayout  []func()
	afterRender  []func()
	predict      []func()
	syncGeometry []func()
	needExpand   []*FrameNode
	layoutNodes  []*FrameNode

	delayed      []func()
	delayedSince map[string]time.Time

	onLayoutCompleted func(inspectorID string)
	frameRequested    atomic.Bool
}

// NewFramePipeline creates a pipeline configured by opts.
func NewFramePipeline(opts ...PipelineOption) (*FramePipeline, error) {
	p := &FramePipeline{
		focus:         NewFocusManager(),
		clock:         time.Now,
		workers:       1,
		tracer:        otel.Tracer("scene"),
		logger:        debug.Logger(),
		dirtyLayout:   make(map[int32]*FrameNode),
		dirtyRender:   make(map[int32]*FrameNode),
		dirtyProperty: make(map[int32]*FrameNode),
		dirtyFreeze:   make(map[int32]*FrameNode),
		delayedSince:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("configure pipeline: %w", err)
		}
	}
	p.vsync = p.clock()
	return p, nil
}

// SetRoot attaches root to the pipeline, activates it and queues it for
// its first layout. A previous root is detached.
func (p *FramePipeline) SetRoot(root *FrameNode) {
	if p.root == root {
		return
	}
	if p.root != nil {
		p.root.DetachFromMainTree()
	}
	p.root = root
	if root == nil {
		return
	}
	root.AttachToMainTree(p)
	root.SetActive(true, false)
	root.MarkDirtyNode(PropertyUpdateMeasure)
	p.RequestFrame()
}

// Root returns the root node.
func (p *FramePipeline) Root() *FrameNode { return p.root }

// SetRootSize changes the root size and re-measures the root.
func (p *FramePipeline) SetRootSize(size SizeF) {
	if p.rootSize.Equal(size) {
		return
	}
	p.rootSize = size
	if p.root != nil {
		p.root.MarkDirtyNode(PropertyUpdateMeasure)
	}
}

// SetOnLayoutCompleted installs the callback for nodes with an inspector
// id that finished a full measure and layout.
func (p *FramePipeline) SetOnLayoutCompleted(fn func(inspectorID string)) {
	p.onLayoutCompleted = fn
}

// AddDirtyLayoutNode queues n for the next layout pass.
func (p *FramePipeline) AddDirtyLayoutNode(n *FrameNode) {
	p.dirtyLayout[n.ID()] = n
	p.RequestFrame()
}

// AddDirtyRenderNode queues n for the next paint pass.
func (p *FramePipeline) AddDirtyRenderNode(n *FrameNode) {
	p.dirtyRender[n.ID()] = n
	p.RequestFrame()
}

// AddDirtyPropertyNode queues n for the property diff pass.
func (p *FramePipeline) AddDirtyPropertyNode(n *FrameNode) {
	p.dirtyProperty[n.ID()] = n
	p.RequestFrame()
}

// AddDirtyFreezeNode queues an unfrozen n to replay its stored flags.
func (p *FramePipeline) AddDirtyFreezeNode(n *FrameNode) {
	p.dirtyFreeze[n.ID()] = n
	p.RequestFrame()
}

// RemoveDirtyNode forgets n in the layout, render, property and freeze sets.
func (p *FramePipeline) RemoveDirtyNode(n *FrameNode) {
	id := n.ID()
	delete(p.dirtyLayout, id)
	delete(p.dirtyRender, id)
	delete(p.dirtyProperty, id)
	delete(p.dirtyFreeze, id)
}

// AddAfterLayoutTask queues fn to run once geometry is synced.
func (p *FramePipeline) AddAfterLayoutTask(fn func()) { p.afterLayout = append(p.afterLayout, fn) }

// AddAfterRenderTask queues fn to run after the paint tasks succeed.
func (p *FramePipeline) AddAfterRenderTask(fn func()) { p.afterRender = append(p.afterRender, fn) }

// AddPredictTask queues fn for the idle time at the end of a frame.
func (p *FramePipeline) AddPredictTask(fn func()) { p.predict = append(p.predict, fn) }

// AddSyncGeometryNodeTask queues a geometry sync for the current layout round.
func (p *FramePipeline) AddSyncGeometryNodeTask(fn func()) {
	p.syncGeometry = append(p.syncGeometry, fn)
}

// AddNeedExpandNode records a node that expands into the safe area.
func (p *FramePipeline) AddNeedExpandNode(n *FrameNode) { p.needExpand = append(p.needExpand, n) }

// AddLayoutNode records a layout-only node laid out this frame.
func (p *FramePipeline) AddLayoutNode(n *FrameNode) { p.layoutNodes = append(p.layoutNodes, n) }

// AddDelayedTask queues fn for the end of the next frame. A second post
// under the same key within cooldown of the first is dropped. It reports
// whether fn was queued.
func (p *FramePipeline) AddDelayedTask(key string, cooldown time.Duration, fn func()) bool {
	now := p.clock()
	if since, ok := p.delayedSince[key]; ok && now.Sub(since) < cooldown {
		return false
	}
	p.delayedSince[key] = now
	p.delayed = append(p.delayed, fn)
	p.RequestFrame()
	return true
}

// FlushSyncGeometryNodeTasks runs the queued geometry syncs in order.
func (p *FramePipeline) FlushSyncGeometryNodeTasks() {
	for len(p.syncGeometry) > 0 {
		tasks := p.syncGeometry
		p.syncGeometry = nil
		for _, fn := range tasks {
			fn()
		}
	}
}

// RequestFrame records that a frame is needed.
func (p *FramePipeline) RequestFrame() { p.frameRequested.Store(true) }

// CheckAndClearFrameRequest reports whether a frame was requested since
// the last call.
func (p *FramePipeline) CheckAndClearFrameRequest() bool {
	return p.frameRequested.Swap(false)
}

// VsyncTime returns the timestamp of the frame being flushed.
func (p *FramePipeline) VsyncTime() time.Time { return p.vsync }

// RootSize returns the size root nodes are measured against.
func (p *FramePipeline) RootSize() SizeF { return p.rootSize }

// FocusManager returns the pipeline's focus ring.
func (p *FramePipeline) FocusManager() *FocusManager { return p.focus }

// OnLayoutCompleted forwards inspectorID to the layout completed callback.
func (p *FramePipeline) OnLayoutCompleted(inspectorID string) {
	if p.onLayoutCompleted != nil {
		p.onLayoutCompleted(inspectorID)
	}
}

// byDepth returns the nodes of set ordered parents first, and drains set.
func byDepth(set map[int32]*FrameNode) []*FrameNode {
	nodes := make([]*FrameNode, 0, len(set))
	for _, n := range set {
		nodes = append(nodes, n)
	}
	clear(set)
	slices.SortFunc(nodes, func(a, b *FrameNode) int {
		if c := cmp.Compare(a.Depth(), b.Depth()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return nodes
}

func runTasks(tasks []func()) {
	for _, fn := range tasks {
		fn()
	}
}

// FlushFrame runs one frame: property diffs, unfrozen nodes, layout,
// geometry sync, after-layout tasks, paint, after-render tasks, then
// delayed and predict tasks. Only paint failures are returned.
func (p *FramePipeline) FlushFrame(ctx context.Context) error {
	p.vsync = p.clock()
	p.frameRequested.Store(false)
	ctx, span := p.tracer.Start(ctx, "scene.FramePipeline.FlushFrame",
		trace.WithAttributes(
			attribute.Int("dirty_layout", len(p.dirtyLayout)),
			attribute.Int("dirty_render", len(p.dirtyRender)),
		),
	)
	defer span.End()

	start := time.Now()
	for len(p.dirtyProperty) > 0 {
		for _, n := range byDepth(p.dirtyProperty) {
			n.ProcessPropertyDiff()
		}
	}
	for _, n := range byDepth(p.dirtyFreeze) {
		n.ProcessFreezeNode()
	}
	perf.ObserveFlush("property", start)

	p.flushLayout(ctx)

	start = time.Now()
	runTasks(p.drainAfterLayout())
	p.layoutNodes = p.layoutNodes[:0]
	if len(p.needExpand) > 0 {
		p.logger.Debug("safe area expansion requested", "nodes", len(p.needExpand))
		p.needExpand = p.needExpand[:0]
	}
	perf.ObserveFlush("after_layout", start)

	if err := p.flushRender(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return err
	}

	start = time.Now()
	tasks := p.afterRender
	p.afterRender = nil
	runTasks(tasks)
	delayed := p.delayed
	p.delayed = nil
	runTasks(delayed)
	predict := p.predict
	p.predict = nil
	runTasks(predict)
	perf.ObserveFlush("idle", start)
	return nil
}

func (p *FramePipeline) drainAfterLayout() []func() {
	tasks := p.afterLayout
	p.afterLayout = nil
	return tasks
}

// flushLayout runs layout tasks until no node is dirty or the round limit
// is reached, then syncs geometry.
func (p *FramePipeline) flushLayout(ctx context.Context) {
	_, span := p.tracer.Start(ctx, "scene.FramePipeline.flushLayout")
	defer span.End()
	start := time.Now()
	defer perf.ObserveFlush("layout", start)

	rounds := 0
	for len(p.dirtyLayout) > 0 {
		if rounds == maxLayoutRounds {
			p.logger.Warn("layout did not converge", "rounds", rounds, "pending", len(p.dirtyLayout))
			break
		}
		rounds++
		nodes := byDepth(p.dirtyLayout)
		span.AddEvent("layout round", trace.WithAttributes(attribute.Int("nodes", len(nodes))))
		for _, n := range nodes {
			if !n.IsOnMainTree() {
				n.SetLayoutDirtyMarked(false)
				continue
			}
			n.CreateLayoutTask()
		}
		p.FlushSyncGeometryNodeTasks()
	}
	span.SetAttributes(attribute.Int("rounds", rounds))
}

// flushRender collects paint tasks from render-dirty nodes and runs them on
// the worker pool.
func (p *FramePipeline) flushRender(ctx context.Context) error {
	ctx, span := p.tracer.Start(ctx, "scene.FramePipeline.flushRender")
	defer span.End()
	start := time.Now()
	defer perf.ObserveFlush("render", start)

	var tasks []func() error
	for _, n := range byDepth(p.dirtyRender) {
		if !n.IsOnMainTree() {
			n.isRenderDirtyMarked = false
			continue
		}
		if task := n.CreateRenderTask(); task != nil {
			tasks = append(tasks, task)
		}
	}
	span.SetAttributes(attribute.Int("tasks", len(tasks)))
	if len(tasks) == 0 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, task := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return task()
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("flush render: %w", err)
	}
	return nil
}

// DispatchTouch hit tests point from the root and returns the collected
// targets, the response link and the root result.
func (p *FramePipeline) DispatchTouch(ctx context.Context, point OffsetF, source SourceType) (TouchTestResult, ResponseLinkResult, HitTestResult) {
	_, span := p.tracer.Start(ctx, "scene.FramePipeline.DispatchTouch",
		trace.WithAttributes(
			attribute.Float64("x", point.X),
			attribute.Float64("y", point.Y),
			attribute.String("source", source.String()),
		),
	)
	defer span.End()
	if p.root == nil {
		return nil, nil, OutOfRegion
	}
	restrict := TouchRestrict{
		HitTestType: source,
		SourceType:  source,
		TouchEvent:  TouchEvent{X: point.X, Y: point.Y, Type: TouchDown, Time: p.vsync.UnixNano()},
	}
	if source == SourceMouse {
		restrict.InputEventType = InputMouseButton
	}
	var result TouchTestResult
	var link ResponseLinkResult
	res := p.root.TouchTest(point, point, point, &restrict, &result, 0, &link, false)
	span.SetAttributes(attribute.String("result", res.String()), attribute.Int("targets", len(result)))
	perf.HitTest("touch", res.String())
	return result, link, res
}

// DispatchAxis hit tests an axis event at point from the root.
func (p *FramePipeline) DispatchAxis(ctx context.Context, point OffsetF) (AxisTestResult, HitTestResult) {
	_, span := p.tracer.Start(ctx, "scene.FramePipeline.DispatchAxis",
		trace.WithAttributes(attribute.Float64("x", point.X), attribute.Float64("y", point.Y)),
	)
	defer span.End()
	if p.root == nil {
		return nil, OutOfRegion
	}
	restrict := TouchRestrict{
		HitTestType:    SourceMouse,
		SourceType:     SourceMouse,
		InputEventType: InputAxis,
		TouchEvent:     TouchEvent{X: point.X, Y: point.Y, Time: p.vsync.UnixNano()},
	}
	var result AxisTestResult
	res := p.root.AxisTest(point, point, point, &restrict, &result)
	span.SetAttributes(attribute.String("result", res.String()))
	perf.HitTest("axis", res.String())
	return result, res
}
