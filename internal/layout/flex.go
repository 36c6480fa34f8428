package layout

// FlexItem holds intermediate calculation state for one child on the main axis.
// Callers fill the inputs; DistributeMain fills MainSize and MainPos.
type FlexItem struct {
	BaseSize float64 // measured main size including main-axis margin
	Grow     float64
	Shrink   float64
	MinMain  float64
	MaxMain  float64 // zero or Infinity when unconstrained

	MainSize float64
	MainPos  float64
}

// DistributeMain runs the main-axis phases of flexbox over items: grow or
// shrink into the free space, clamp to min/max, then position by justify.
// It returns the main size actually used by all items and gaps.
func DistributeMain(items []FlexItem, mainSize, gap float64, justify Justify) float64 {
	if len(items) == 0 {
		return 0
	}

	totalBase := 0.0
	totalGrow := 0.0
	totalShrink := 0.0
	for i := range items {
		totalBase += items[i].BaseSize
		totalGrow += items[i].Grow
		totalShrink += items[i].Shrink
	}

	totalGap := gap * float64(len(items)-1)
	freeSpace := mainSize - totalBase - totalGap
	unbounded := mainSize == Infinity

	// Phase 1: distribute free space
	switch {
	case !unbounded && freeSpace > 0 && totalGrow > 0:
		for i := range items {
			items[i].MainSize = items[i].BaseSize + freeSpace*items[i].Grow/totalGrow
		}
	case !unbounded && freeSpace < 0 && totalShrink > 0:
		deficit := -freeSpace
		for i := range items {
			items[i].MainSize = max(0, items[i].BaseSize-deficit*items[i].Shrink/totalShrink)
		}
	default:
		for i := range items {
			items[i].MainSize = items[i].BaseSize
		}
	}

	// Phase 2: apply min/max constraints
	used := totalGap
	for i := range items {
		maxMain := items[i].MaxMain
		if maxMain == 0 {
			maxMain = Infinity
		}
		items[i].MainSize = clamp(items[i].MainSize, items[i].MinMain, maxMain)
		used += items[i].MainSize
	}

	// Phase 3: justify
	freeSpace = 0
	if !unbounded {
		freeSpace = mainSize - used
	}
	offset := JustifyOffset(justify, freeSpace, len(items))
	spacing := JustifySpacing(justify, freeSpace, len(items))
	for i := range items {
		items[i].MainPos = offset
		offset += items[i].MainSize + gap + spacing
	}
	return used
}

// JustifyOffset returns the initial offset for positioning children
// based on the justify mode and available free space.
func JustifyOffset(justify Justify, freeSpace float64, itemCount int) float64 {
	if freeSpace <= 0 || itemCount == 0 {
		return 0
	}

	switch justify {
	case JustifyEnd:
		return freeSpace
	case JustifyCenter:
		return freeSpace / 2
	case JustifySpaceAround:
		return freeSpace / float64(itemCount*2)
	case JustifySpaceEvenly:
		return freeSpace / float64(itemCount+1)
	default: // JustifyStart, JustifySpaceBetween
		return 0
	}
}

// JustifySpacing returns the extra spacing between children
// based on the justify mode and available free space.
func JustifySpacing(justify Justify, freeSpace float64, itemCount int) float64 {
	if freeSpace <= 0 || itemCount <= 1 {
		return 0
	}

	switch justify {
	case JustifySpaceBetween:
		return freeSpace / float64(itemCount-1)
	case JustifySpaceAround:
		return freeSpace / float64(itemCount)
	case JustifySpaceEvenly:
		return freeSpace / float64(itemCount+1)
	default: // JustifyStart, JustifyEnd, JustifyCenter
		return 0
	}
}

// AlignOffset returns the offset for positioning a child on the cross axis.
func AlignOffset(align Align, crossSize, itemSize float64) float64 {
	switch align {
	case AlignEnd:
		return crossSize - itemSize
	case AlignCenter:
		return (crossSize - itemSize) / 2
	default: // AlignStart, AlignStretch
		return 0
	}
}
