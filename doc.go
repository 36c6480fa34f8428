// Package scene provides the retained-mode frame node of a declarative UI
// engine.
//
// A FrameNode owns its geometry, layout and paint properties, its child
// collection and its event hubs. Property mutations mark nodes dirty with a
// PropertyChangeFlag; the dirty protocol stops at measure and render
// boundaries and registers the affected node with a Pipeline. The pipeline
// then drives the two-phase Measure/Layout protocol, geometry sync, and
// paint. Pointer input enters through TouchTest and AxisTest, which walk
// frame children in reverse z-order.
//
// Users import this single package for the complete public API: node
// construction, virtual containers, layout types, events, and the reference
// FramePipeline.
package scene
