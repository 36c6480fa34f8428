package layout

// Direction specifies the main axis for laying out children.
type Direction uint8

const (
	Row    Direction = iota // Children laid out left-to-right
	Column                  // Children laid out top-to-bottom
)

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart        Justify = iota // Pack at start
	JustifyEnd                         // Pack at end
	JustifyCenter                      // Center children
	JustifySpaceBetween                // Even space between, none at edges
	JustifySpaceAround                 // Even space around each child
	JustifySpaceEvenly                 // Equal space between and at edges
)

// Align specifies how children are positioned on the cross axis.
type Align uint8

const (
	AlignStart   Align = iota // Align to start of cross axis
	AlignEnd                  // Align to end of cross axis
	AlignCenter               // Center on cross axis
	AlignStretch              // Stretch to fill cross axis
)

// FlexStyle holds the container side of flex layout.
type FlexStyle struct {
	Direction      Direction
	JustifyContent Justify
	AlignItems     Align
	Gap            float64 // Space between children (main axis only)
}

// FlexItemStyle holds the item side of flex layout.
type FlexItemStyle struct {
	FlexGrow   float64 // How much to grow relative to siblings
	FlexShrink float64 // How much to shrink relative to siblings (default 1)
	AlignSelf  *Align  // Override parent's AlignItems (nil = inherit)
}

// DefaultFlexStyle returns a FlexStyle with sensible defaults.
func DefaultFlexStyle() FlexStyle {
	return FlexStyle{Direction: Row, AlignItems: AlignStart}
}

// DefaultFlexItemStyle returns a FlexItemStyle with sensible defaults.
func DefaultFlexItemStyle() FlexItemStyle {
	return FlexItemStyle{FlexShrink: 1.0}
}
