// Package layout holds the geometry and constraint primitives used by the
// scene graph: float sizes, offsets and rects, box edges, resolvable
// dimension values, layout constraints, alignment, and the flexbox
// distribution math used by the flex layout algorithm.
//
// Types are re-exported through the root scene package for public
// consumption.
package layout
