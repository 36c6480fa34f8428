package scene

import (
	"image/color"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/grindlemire/go-scene/internal/layout"
	"github.com/grindlemire/go-scene/internal/perf"
)

func fixedSize(w, h float64) CalcSize {
	return CalcSize{Width: Fixed(w), Height: Fixed(h)}
}

func TestMeasure_Gone(t *testing.T) {
	n, pattern := newTestNode("gone")
	content := SizeF{Width: 30, Height: 30}
	pattern.algorithm.content = &content
	n.GeometryNode().SetFrameSize(SizeF{Width: 10, Height: 10})
	n.LayoutProperty().UpdateVisibility(Gone)
	before := testutil.ToFloat64(perf.MeasureTotal.WithLabelValues("gone"))

	c := layout.RootConstraint(SizeF{Width: 100, Height: 100})
	n.Measure(&c)
	n.Layout()

	if got := n.GeometryNode().FrameSize(); !got.Equal(SizeF{}) {
		t.Errorf("frame size = %v, want zero", got)
	}
	if pattern.algorithm.measureContent != 0 || pattern.algorithm.measure != 0 {
		t.Errorf("gone node ran the algorithm: content=%d measure=%d",
			pattern.algorithm.measureContent, pattern.algorithm.measure)
	}
	if pattern.algorithm.layout != 0 {
		t.Errorf("gone node laid out %d times", pattern.algorithm.layout)
	}
	if got := testutil.ToFloat64(perf.MeasureTotal.WithLabelValues("gone")); got != before+1 {
		t.Errorf("gone measures = %v, want %v", got, before+1)
	}
}

func TestMeasure_IdealSize(t *testing.T) {
	type tc struct {
		ideal      CalcSize
		constraint LayoutConstraint
		want       SizeF
	}

	tests := map[string]tc{
		"fixed": {
			ideal:      fixedSize(40, 20),
			constraint: layout.RootConstraint(SizeF{Width: 100, Height: 100}),
			want:       SizeF{Width: 40, Height: 20},
		},
		"clamped to max": {
			ideal:      fixedSize(400, 20),
			constraint: layout.RootConstraint(SizeF{Width: 100, Height: 100}),
			want:       SizeF{Width: 100, Height: 20},
		},
		"percent": {
			ideal:      CalcSize{Width: Percent(50), Height: Percent(25)},
			constraint: layout.RootConstraint(SizeF{Width: 200, Height: 80}),
			want:       SizeF{Width: 100, Height: 20},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			n, _ := newTestNode("box")
			n.LayoutProperty().UpdateUserDefinedIdealSize(tt.ideal)
			n.Measure(&tt.constraint)
			if got := n.GeometryNode().FrameSize(); !got.Equal(tt.want) {
				t.Errorf("frame size = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeasure_RootConstraint(t *testing.T) {
	p := newRecordingPipeline()
	p.rootSize = SizeF{Width: 320, Height: 240}
	n, _ := newTestNode("root")
	attach(n, p)

	n.Measure(nil)

	if got := n.GeometryNode().FrameSize(); !got.Equal(p.rootSize) {
		t.Errorf("root frame size = %v, want %v", got, p.rootSize)
	}
}

func TestMeasure_SkipWhenUnchanged(t *testing.T) {
	p := newRecordingPipeline()
	n, pattern := newTestNode("box")
	attach(n, p)
	n.SetActive(true, false)
	n.LayoutProperty().UpdateUserDefinedIdealSize(fixedSize(40, 20))
	c := layout.RootConstraint(SizeF{Width: 100, Height: 100})

	n.Measure(&c)
	n.Layout()
	if pattern.algorithm.measure != 1 {
		t.Fatalf("first pass measured %d times, want 1", pattern.algorithm.measure)
	}

	n.Measure(&c)
	if pattern.algorithm.measure != 1 {
		t.Errorf("unchanged constraint re-measured, count = %d", pattern.algorithm.measure)
	}
	if !n.LayoutAlgorithm().SkipMeasure() {
		t.Error("skip flag not set on the algorithm wrapper")
	}

	wider := layout.RootConstraint(SizeF{Width: 120, Height: 100})
	n.Measure(&wider)
	if pattern.algorithm.measure != 2 {
		t.Errorf("changed constraint not re-measured, count = %d", pattern.algorithm.measure)
	}
}

func TestMeasure_InactiveAlwaysMeasures(t *testing.T) {
	n, pattern := newTestNode("inactive")
	c := layout.RootConstraint(SizeF{Width: 100, Height: 100})

	n.Measure(&c)
	n.Layout()
	n.Measure(&c)

	if pattern.algorithm.measure != 2 {
		t.Errorf("inactive node measured %d times, want 2", pattern.algorithm.measure)
	}
}

func TestMeasure_AspectRatioThenRound(t *testing.T) {
	type tc struct {
		policy PixelRoundPolicy
		want   SizeF
	}

	tests := map[string]tc{
		"rounded after the ratio": {
			policy: PixelRoundOnMeasure,
			want:   SizeF{Width: 11, Height: 21},
		},
		"no rounding": {
			policy: PixelRoundNone,
			want:   SizeF{Width: 10.6, Height: 21.2},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			n, pattern := newTestNode("ratio")
			pattern.aspect = true
			lp := n.LayoutProperty()
			lp.UpdateUserDefinedIdealSize(CalcSize{Width: Fixed(10.6), Height: Auto()})
			lp.UpdateAspectRatio(0.5)
			lp.UpdatePixelRound(tt.policy)

			c := layout.RootConstraint(SizeF{Width: 100, Height: 100})
			n.Measure(&c)

			got := n.GeometryNode().FrameSize()
			if !layout.NearEqual(got.Width, tt.want.Width) || !layout.NearEqual(got.Height, tt.want.Height) {
				t.Errorf("frame size = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeasure_ClearsMeasureFlags(t *testing.T) {
	n, _ := newTestNode("flags")
	n.LayoutProperty().UpdatePropertyChangeFlag(PropertyUpdateMeasureSelf | PropertyUpdateByChildRequest)
	c := layout.RootConstraint(SizeF{Width: 50, Height: 50})

	n.Measure(&c)

	flag := n.LayoutProperty().PropertyChangeFlag()
	if flag.NeedMeasure() {
		t.Errorf("measure bits survive Measure: %s", flag)
	}
	if !flag.NeedLayout() {
		t.Errorf("Measure must request layout, flag = %s", flag)
	}
}

func TestLayout_BoxAlignsChildren(t *testing.T) {
	type tc struct {
		align *Alignment
		want  OffsetF
	}

	tests := map[string]tc{
		"default center": {want: OffsetF{X: 40, Y: 40}},
		"top left":       {align: &TopLeft, want: OffsetF{}},
		"bottom right":   {align: &BottomRight, want: OffsetF{X: 80, Y: 80}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := newRecordingPipeline()
			parent := CreateFrameNode("box", Register().MakeUniqueID(), NewBoxPattern())
			child, _ := newTestNode("child")
			parent.AddChild(child, -1)
			attach(parent, p)
			parent.SetActive(true, false)
			parent.LayoutProperty().UpdateUserDefinedIdealSize(fixedSize(100, 100))
			child.LayoutProperty().UpdateUserDefinedIdealSize(fixedSize(20, 20))
			if tt.align != nil {
				parent.LayoutProperty().UpdateAlignment(*tt.align)
			}

			c := layout.RootConstraint(SizeF{Width: 100, Height: 100})
			parent.Measure(&c)
			parent.Layout()
			p.FlushSyncGeometryNodeTasks()

			if got := child.GeometryNode().FrameOffset(); !got.Equal(tt.want) {
				t.Errorf("child offset = %v, want %v", got, tt.want)
			}
			want := RectF{X: tt.want.X, Y: tt.want.Y, Width: 20, Height: 20}
			if got := child.RenderContext().PaintRectWithoutTransform(); !got.Equal(want) {
				t.Errorf("synced paint rect = %v, want %v", got, want)
			}
		})
	}
}

func TestLayout_FlexRow(t *testing.T) {
	p := newRecordingPipeline()
	parent := CreateFrameNode("row", Register().MakeUniqueID(), NewFlexPattern())
	parent.LayoutProperty().UpdateUserDefinedIdealSize(fixedSize(100, 30))
	parent.LayoutProperty().UpdateFlex(FlexStyle{Direction: Row, JustifyContent: JustifyStart, AlignItems: AlignStart})

	var children []*FrameNode
	for _, grow := range []float64{0, 1, 3} {
		child, pattern := newTestNode("item")
		pattern.algorithm.content = &SizeF{Width: 20, Height: 10}
		if grow > 0 {
			item := layout.DefaultFlexItemStyle()
			item.FlexGrow = grow
			child.LayoutProperty().UpdateFlexItem(item)
		}
		parent.AddChild(child, -1)
		children = append(children, child)
	}
	attach(parent, p)
	parent.SetActive(true, false)

	c := layout.RootConstraint(SizeF{Width: 100, Height: 100})
	parent.Measure(&c)
	parent.Layout()

	// 40 px of free space split 1:3 between the growing items.
	wantX := []float64{0, 20, 50}
	wantW := []float64{20, 30, 50}
	for i, child := range children {
		geo := child.GeometryNode()
		if !layout.NearEqual(geo.FrameOffset().X, wantX[i]) {
			t.Errorf("child %d x = %v, want %v", i, geo.FrameOffset().X, wantX[i])
		}
		if !layout.NearEqual(geo.FrameSize().Width, wantW[i]) {
			t.Errorf("child %d width = %v, want %v", i, geo.FrameSize().Width, wantW[i])
		}
	}
}

func TestLayout_Overlay(t *testing.T) {
	parent, _ := newTestNode("host")
	overlay, _ := newTestNode("overlay")
	parent.LayoutProperty().UpdateUserDefinedIdealSize(fixedSize(100, 100))
	parent.LayoutProperty().UpdateOverlayOffset(OffsetF{X: -5, Y: -5})
	overlay.LayoutProperty().UpdateUserDefinedIdealSize(fixedSize(10, 10))
	overlay.LayoutProperty().UpdateAlignment(BottomRight)
	parent.SetOverlayNode(overlay)

	c := layout.RootConstraint(SizeF{Width: 100, Height: 100})
	parent.Measure(&c)
	parent.Layout()

	if got := overlay.GeometryNode().FrameSize(); !got.Equal(SizeF{Width: 10, Height: 10}) {
		t.Errorf("overlay size = %v", got)
	}
	if got := overlay.GeometryNode().FrameOffset(); !got.Equal(OffsetF{X: 85, Y: 85}) {
		t.Errorf("overlay offset = %v, want (85, 85)", got)
	}
}

func TestLayout_OnLayoutCompleted(t *testing.T) {
	p := newRecordingPipeline()
	n, pattern := newTestNode("inspected")
	n.SetInspectorID("banner")
	n.LayoutProperty().UpdateUserDefinedIdealSize(fixedSize(40, 20))
	attach(n, p)
	n.SetActive(true, false)

	c := layout.RootConstraint(SizeF{Width: 100, Height: 100})
	n.Measure(&c)
	n.Layout()

	if len(p.completed) != 1 || p.completed[0] != "banner" {
		t.Errorf("completed = %v, want [banner]", p.completed)
	}
	if len(pattern.swaps) != 1 || !pattern.swaps[0].FrameSizeChange {
		t.Errorf("swap configs = %+v, want one with a frame size change", pattern.swaps)
	}
	if len(p.syncGeometry) != 1 {
		t.Errorf("queued %d geometry syncs, want 1", len(p.syncGeometry))
	}
}

func TestLayout_InactiveSkipsSync(t *testing.T) {
	p := newRecordingPipeline()
	n, pattern := newTestNode("hidden")
	attach(n, p)

	c := layout.RootConstraint(SizeF{Width: 100, Height: 100})
	n.Measure(&c)
	n.Layout()

	if len(p.syncGeometry) != 0 {
		t.Error("inactive node queued a geometry sync")
	}
	if len(pattern.swaps) != 0 {
		t.Error("inactive node notified the pattern of a swap")
	}
}

func TestLayout_PatternRequestsRerender(t *testing.T) {
	p := newRecordingPipeline()
	n, pattern := newTestNode("rerender")
	pattern.rerender = true
	attach(n, p)
	n.SetActive(true, false)

	c := layout.RootConstraint(SizeF{Width: 100, Height: 100})
	n.Measure(&c)
	n.Layout()

	if len(p.render) != 1 || p.render[0] != n {
		t.Errorf("render queue = %v, want the node", ids(p.render))
	}
}

func TestCreateLayoutTask_LayoutRect(t *testing.T) {
	p := newRecordingPipeline()
	n, _ := newTestNode("pinned")
	attach(n, p)
	n.LayoutProperty().UpdateLayoutRect(RectF{X: 5, Y: 6, Width: 30, Height: 40})
	n.SetLayoutDirtyMarked(true)

	n.CreateLayoutTask()

	if got := n.GeometryNode().FrameRect(); !got.Equal(RectF{X: 5, Y: 6, Width: 30, Height: 40}) {
		t.Errorf("frame rect = %v", got)
	}
	if !n.IsActive() {
		t.Error("layout rect task must activate the node")
	}
	if n.IsRootMeasureNode() {
		t.Error("root measure flag left set after the task")
	}
	if n.IsLayoutDirtyMarked() {
		t.Error("layout queue guard left set after the task")
	}
}

func TestSyncGeometryNode_BorderDefaults(t *testing.T) {
	p := newRecordingPipeline()
	n, _ := newTestNode("bordered")
	attach(n, p)
	n.LayoutProperty().UpdateBorderWidth(EdgeValuesAll(Fixed(2)))

	n.SyncGeometryNode(false, DirtySwapConfig{})

	rc := n.RenderContext().(*MemoryRenderContext)
	if c, ok := rc.BorderColor(); !ok || c != color.Black {
		t.Errorf("border color = %v, %v", c, ok)
	}
	if s, ok := rc.BorderStyle(); !ok || s != BorderSolid {
		t.Errorf("border style = %v, %v", s, ok)
	}
	if d, ok := rc.BorderDash(); !ok || d != (BorderDash{Gap: -1, Width: -1}) {
		t.Errorf("border dash = %v, %v", d, ok)
	}
	if w, ok := rc.BorderWidth(); !ok || w != layout.EdgeAll(2) {
		t.Errorf("border width = %v, %v", w, ok)
	}
}

func TestSyncGeometryNode_SizeChangeHistory(t *testing.T) {
	n, _ := newTestNode("resized")
	n.SetActive(true, false)
	var calls int
	n.EventHub().SetOnSizeChanged(func(oldRect, newRect RectF) { calls++ })

	for i := range 8 {
		n.GeometryNode().SetFrameRect(RectF{Width: float64(10 + i), Height: 10})
		n.SyncGeometryNode(true, DirtySwapConfig{})
	}

	// The first sync only records the starting rect.
	if calls != 7 {
		t.Errorf("size change callbacks = %d, want 7", calls)
	}
	history := n.SizeChangeHistory()
	if len(history) != maxSizeChangeHistory {
		t.Fatalf("history length = %d, want %d", len(history), maxSizeChangeHistory)
	}
	if last := history[len(history)-1]; last.New.Width != 17 || last.Old.Width != 16 {
		t.Errorf("last change = %+v", last)
	}
}
