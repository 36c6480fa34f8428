package scene

// NodePaintMethod produces a node's content from a paint snapshot.
type NodePaintMethod interface {
	UpdateContent(w *PaintWrapper) error
}

// PaintMethodFunc adapts a function to NodePaintMethod.
type PaintMethodFunc func(w *PaintWrapper) error

func (f PaintMethodFunc) UpdateContent(w *PaintWrapper) error { return f(w) }

// PaintWrapper is a detached snapshot of a node's paint inputs. Render
// workers use it without touching the live node.
type PaintWrapper struct {
	renderContext RenderContext
	geometry      *GeometryNode
	paintProperty *PaintProperty
	method        NodePaintMethod
}

// NewPaintWrapper snapshots geometry and paint property for rendering.
func NewPaintWrapper(rc RenderContext, geometry *GeometryNode, paint *PaintProperty, method NodePaintMethod) *PaintWrapper {
	return &PaintWrapper{
		renderContext: rc,
		geometry:      geometry,
		paintProperty: paint,
		method:        method,
	}
}

// GeometryNode returns the geometry snapshot.
func (w *PaintWrapper) GeometryNode() *GeometryNode { return w.geometry }

// PaintProperty returns the paint property snapshot.
func (w *PaintWrapper) PaintProperty() *PaintProperty { return w.paintProperty }

// RenderContext returns the target render context.
func (w *PaintWrapper) RenderContext() RenderContext { return w.renderContext }

// FrameSize returns the snapshot frame size.
func (w *PaintWrapper) FrameSize() SizeF {
	if w.geometry == nil {
		return SizeF{}
	}
	return w.geometry.FrameSize()
}

// ContentSize returns the snapshot content size.
func (w *PaintWrapper) ContentSize() SizeF {
	if w.geometry == nil {
		return SizeF{}
	}
	return w.geometry.ContentSize()
}

// FlushRender runs the paint method and flushes the content to the
// render context.
func (w *PaintWrapper) FlushRender() error {
	if w.method != nil {
		if err := w.method.UpdateContent(w); err != nil {
			return err
		}
	}
	if w.renderContext == nil {
		return nil
	}
	return w.renderContext.FlushContent(w)
}
