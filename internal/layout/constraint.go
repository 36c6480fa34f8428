package layout

import "math"

// Infinity is the unbounded constraint size.
var Infinity = math.Inf(1)

// LayoutConstraint carries the sizing limits a parent hands to a child.
type LayoutConstraint struct {
	MinSize          SizeF
	MaxSize          SizeF
	PercentReference SizeF
	ParentIdealSize  OptionalSizeF
	SelfIdealSize    OptionalSizeF
}

// RootConstraint returns the constraint used for a tree root of the given size.
func RootConstraint(root SizeF) LayoutConstraint {
	return LayoutConstraint{
		MaxSize:          root,
		PercentReference: root,
		ParentIdealSize:  OptionalSize(root.Width, root.Height),
	}
}

// Unbounded returns a constraint with no upper limit.
func Unbounded() LayoutConstraint {
	return LayoutConstraint{MaxSize: SizeF{Width: Infinity, Height: Infinity}}
}

// Equal reports whether two constraints are exactly the same.
func (c LayoutConstraint) Equal(other LayoutConstraint) bool {
	return c == other
}

// Constrain clamps size into [MinSize, MaxSize]. When min exceeds max, min wins.
func (c LayoutConstraint) Constrain(size SizeF) SizeF {
	return SizeF{
		Width:  clamp(size.Width, c.MinSize.Width, c.MaxSize.Width),
		Height: clamp(size.Height, c.MinSize.Height, c.MaxSize.Height),
	}
}

// MinusPadding shrinks every dimension of the constraint by the given edges.
// Results are clamped at zero.
func (c *LayoutConstraint) MinusPadding(e Edges) {
	h, v := e.Horizontal(), e.Vertical()
	c.MinSize = SizeF{Width: max(0, c.MinSize.Width-h), Height: max(0, c.MinSize.Height-v)}
	c.MaxSize = SizeF{Width: max(0, c.MaxSize.Width-h), Height: max(0, c.MaxSize.Height-v)}
	c.PercentReference = SizeF{
		Width:  max(0, c.PercentReference.Width-h),
		Height: max(0, c.PercentReference.Height-v),
	}
	if c.SelfIdealSize.HasWidth {
		c.SelfIdealSize.Width = max(0, c.SelfIdealSize.Width-h)
	}
	if c.SelfIdealSize.HasHeight {
		c.SelfIdealSize.Height = max(0, c.SelfIdealSize.Height-v)
	}
	if c.ParentIdealSize.HasWidth {
		c.ParentIdealSize.Width = max(0, c.ParentIdealSize.Width-h)
	}
	if c.ParentIdealSize.HasHeight {
		c.ParentIdealSize.Height = max(0, c.ParentIdealSize.Height-v)
	}
}

// UpdateSelfIdealSize sets the self ideal size, clamped into the min/max range.
func (c *LayoutConstraint) UpdateSelfIdealSize(size OptionalSizeF) {
	if size.HasWidth {
		c.SelfIdealSize.SetWidth(clamp(size.Width, c.MinSize.Width, c.MaxSize.Width))
	}
	if size.HasHeight {
		c.SelfIdealSize.SetHeight(clamp(size.Height, c.MinSize.Height, c.MaxSize.Height))
	}
}

// UpdateMinSize raises the minimum, never past the current maximum.
func (c *LayoutConstraint) UpdateMinSize(size OptionalSizeF) {
	if size.HasWidth {
		c.MinSize.Width = min(max(0, size.Width), c.MaxSize.Width)
	}
	if size.HasHeight {
		c.MinSize.Height = min(max(0, size.Height), c.MaxSize.Height)
	}
}

// UpdateMaxSize lowers the maximum, never below zero.
func (c *LayoutConstraint) UpdateMaxSize(size OptionalSizeF) {
	if size.HasWidth && size.Width < c.MaxSize.Width {
		c.MaxSize.Width = max(0, size.Width)
	}
	if size.HasHeight && size.Height < c.MaxSize.Height {
		c.MaxSize.Height = max(0, size.Height)
	}
}

// clamp restricts v to the range [minVal, maxVal].
// If minVal > maxVal, minVal wins (matches CSS behavior).
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if maxVal >= minVal && v > maxVal {
		return maxVal
	}
	return v
}
