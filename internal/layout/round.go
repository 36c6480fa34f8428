package layout

import "math"

// RoundToPixel rounds v to the nearest whole pixel.
func RoundToPixel(v float64) float64 {
	return math.Round(v)
}

// RoundSize rounds each dimension of s to the pixel grid.
// Unbounded dimensions are returned unchanged.
func RoundSize(s SizeF) SizeF {
	if !math.IsInf(s.Width, 0) {
		s.Width = RoundToPixel(s.Width)
	}
	if !math.IsInf(s.Height, 0) {
		s.Height = RoundToPixel(s.Height)
	}
	return s
}
