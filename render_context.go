package scene

import (
	"image/color"
	"sync"

	"github.com/grindlemire/go-scene/internal/layout"
	"golang.org/x/image/math/f64"
)

// BorderStyle is the stroke style of a border edge.
type BorderStyle uint8

const (
	BorderSolid BorderStyle = iota
	BorderDashed
	BorderDotted
	BorderNone
)

// BorderDash configures dashed border strokes. Negative values mean the
// renderer default.
type BorderDash struct {
	Gap, Width float64
}

// RenderContext is the renderer-facing sink for a frame node's geometry.
// Transforms apply about the node's top-left corner.
type RenderContext interface {
	SyncGeometryProperties(geometry *GeometryNode, pixelRound PixelRoundPolicy)
	SetFrameWithoutAnimation(r RectF)
	PaintRectWithoutTransform() RectF
	PaintRectWithTransform() RectF
	RevertMatrix() f64.Aff3
	PointWithTransform(p OffsetF) OffsetF
	PointWithRevert(p OffsetF) OffsetF

	Transform() f64.Aff3
	SetTransform(m f64.Aff3)
	// TransformVersion changes every time the transform changes.
	TransformVersion() uint64

	ClipEdge() bool
	SetClipEdge(clip bool)
	ZIndex() int
	SetZIndex(z int)
	HasPosition() bool
	SetPosition(o OffsetF)

	BorderWidth() (Edges, bool)
	UpdateBorderWidth(e Edges)
	BorderColor() (color.Color, bool)
	UpdateBorderColor(c color.Color)
	BorderStyle() (BorderStyle, bool)
	UpdateBorderStyle(s BorderStyle)
	BorderDash() (BorderDash, bool)
	UpdateBorderDash(d BorderDash)

	SavePaintRect()
	SyncPartialProperties()
	RebuildFrame(children []*FrameNode)
	HasTransitionOutAnimation() bool
	FlushContent(w *PaintWrapper) error
}

// MemoryRenderContext is an in-memory RenderContext. Content flushes may
// run concurrently from render workers; everything else is used from the
// UI goroutine.
type MemoryRenderContext struct {
	rect      RectF
	savedRect RectF
	transform f64.Aff3
	version   uint64

	clip     bool
	zIndex   int
	position *OffsetF

	borderWidth *Edges
	borderColor color.Color
	borderStyle *BorderStyle
	borderDash  *BorderDash

	frameChildren []*FrameNode
	transitionOut bool
	partialSyncs  int

	mu         sync.Mutex
	flushes    int
	lastFlush  SizeF
	flushError error
}

// NewMemoryRenderContext returns a context with the identity transform.
func NewMemoryRenderContext() *MemoryRenderContext {
	return &MemoryRenderContext{transform: IdentityMatrix()}
}

// SyncGeometryProperties copies the frame rect, rounding it when the
// policy asks for it.
func (c *MemoryRenderContext) SyncGeometryProperties(geometry *GeometryNode, pixelRound PixelRoundPolicy) {
	if geometry == nil {
		return
	}
	r := geometry.FrameRect()
	if pixelRound&PixelRoundOnSync != 0 {
		r = RectF{
			X:      layout.RoundToPixel(r.X),
			Y:      layout.RoundToPixel(r.Y),
			Width:  layout.RoundToPixel(r.Width),
			Height: layout.RoundToPixel(r.Height),
		}
	}
	c.rect = r
}

// SetFrameWithoutAnimation sets the paint rect directly.
func (c *MemoryRenderContext) SetFrameWithoutAnimation(r RectF) { c.rect = r }

// PaintRectWithoutTransform returns the paint rect in parent coordinates.
func (c *MemoryRenderContext) PaintRectWithoutTransform() RectF { return c.rect }

// PaintRectWithTransform returns the bounding box of the transformed paint
// rect in parent coordinates.
func (c *MemoryRenderContext) PaintRectWithTransform() RectF {
	if isIdentity(c.transform) {
		return c.rect
	}
	local := MapRect(c.transform, RectF{Width: c.rect.Width, Height: c.rect.Height})
	return local.Translate(c.rect.X, c.rect.Y)
}

// RevertMatrix maps a parent point to where it would be without the
// node's transform.
func (c *MemoryRenderContext) RevertMatrix() f64.Aff3 {
	inv, _ := InvertMatrix(c.transform)
	return MultiplyMatrix(TranslateMatrix(c.rect.X, c.rect.Y),
		MultiplyMatrix(inv, TranslateMatrix(-c.rect.X, -c.rect.Y)))
}

// PointWithTransform maps p, relative to the transformed paint rect, into
// the node's local coordinates.
func (c *MemoryRenderContext) PointWithTransform(p OffsetF) OffsetF {
	if isIdentity(c.transform) {
		return p
	}
	inv, _ := InvertMatrix(c.transform)
	rwt := c.PaintRectWithTransform()
	return MapPoint(inv, p.Add(rwt.Offset()).Sub(c.rect.Offset()))
}

// PointWithRevert applies the revert matrix to p.
func (c *MemoryRenderContext) PointWithRevert(p OffsetF) OffsetF {
	return MapPoint(c.RevertMatrix(), p)
}

// Transform returns the local transform.
func (c *MemoryRenderContext) Transform() f64.Aff3 { return c.transform }

// SetTransform replaces the local transform.
func (c *MemoryRenderContext) SetTransform(m f64.Aff3) {
	if c.transform == m {
		return
	}
	c.transform = m
	c.version++
}

// TransformVersion returns the transform change counter.
func (c *MemoryRenderContext) TransformVersion() uint64 { return c.version }

// ClipEdge reports whether content is clipped to the paint rect.
func (c *MemoryRenderContext) ClipEdge() bool { return c.clip }

// SetClipEdge enables or disables clipping.
func (c *MemoryRenderContext) SetClipEdge(clip bool) { c.clip = clip }

// ZIndex returns the stacking order among siblings.
func (c *MemoryRenderContext) ZIndex() int { return c.zIndex }

// SetZIndex sets the stacking order among siblings.
func (c *MemoryRenderContext) SetZIndex(z int) { c.zIndex = z }

// HasPosition reports whether an absolute position was set.
func (c *MemoryRenderContext) HasPosition() bool { return c.position != nil }

// SetPosition sets an absolute position.
func (c *MemoryRenderContext) SetPosition(o OffsetF) { c.position = &o }

func (c *MemoryRenderContext) BorderWidth() (Edges, bool) {
	if c.borderWidth == nil {
		return Edges{}, false
	}
	return *c.borderWidth, true
}

func (c *MemoryRenderContext) UpdateBorderWidth(e Edges) { c.borderWidth = &e }

func (c *MemoryRenderContext) BorderColor() (color.Color, bool) {
	return c.borderColor, c.borderColor != nil
}

func (c *MemoryRenderContext) UpdateBorderColor(col color.Color) { c.borderColor = col }

func (c *MemoryRenderContext) BorderStyle() (BorderStyle, bool) {
	if c.borderStyle == nil {
		return BorderSolid, false
	}
	return *c.borderStyle, true
}

func (c *MemoryRenderContext) UpdateBorderStyle(s BorderStyle) { c.borderStyle = &s }

func (c *MemoryRenderContext) BorderDash() (BorderDash, bool) {
	if c.borderDash == nil {
		return BorderDash{}, false
	}
	return *c.borderDash, true
}

func (c *MemoryRenderContext) UpdateBorderDash(d BorderDash) { c.borderDash = &d }

// SavePaintRect remembers the current paint rect.
func (c *MemoryRenderContext) SavePaintRect() { c.savedRect = c.rect }

// SavedPaintRect returns the rect stored by SavePaintRect.
func (c *MemoryRenderContext) SavedPaintRect() RectF { return c.savedRect }

// SyncPartialProperties counts partial syncs.
func (c *MemoryRenderContext) SyncPartialProperties() { c.partialSyncs++ }

// RebuildFrame records the ordered render children.
func (c *MemoryRenderContext) RebuildFrame(children []*FrameNode) {
	c.frameChildren = append(c.frameChildren[:0], children...)
}

// FrameChildren returns the render children from the last rebuild.
func (c *MemoryRenderContext) FrameChildren() []*FrameNode { return c.frameChildren }

// HasTransitionOutAnimation reports whether a disappear transition is running.
func (c *MemoryRenderContext) HasTransitionOutAnimation() bool { return c.transitionOut }

// SetTransitionOutAnimation marks a disappear transition as running.
func (c *MemoryRenderContext) SetTransitionOutAnimation(running bool) { c.transitionOut = running }

// FlushContent records a content flush. It returns the error installed
// with FailFlushes, if any.
func (c *MemoryRenderContext) FlushContent(w *PaintWrapper) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flushError != nil {
		return c.flushError
	}
	c.flushes++
	if w != nil {
		c.lastFlush = w.FrameSize()
	}
	return nil
}

// FailFlushes makes every later FlushContent return err.
func (c *MemoryRenderContext) FailFlushes(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushError = err
}

// Flushes returns the number of successful content flushes and the frame
// size of the last one.
func (c *MemoryRenderContext) Flushes() (int, SizeF) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes, c.lastFlush
}
