package scene

import "github.com/grindlemire/go-scene/internal/layout"

// Visibility controls whether a node paints and whether it takes space.
type Visibility uint8

const (
	Visible   Visibility = iota // Painted and measured
	Invisible                   // Measured but not painted
	Gone                        // Neither; contributes zero size
)

// MeasureType selects how a node sizes itself without an ideal size.
type MeasureType uint8

const (
	MeasureContent     MeasureType = iota // Size from content and children
	MeasureMatchParent                    // Fill the parent's ideal size
)

// PixelRoundPolicy selects when frame geometry snaps to whole pixels.
type PixelRoundPolicy uint8

const (
	PixelRoundNone      PixelRoundPolicy = 0
	PixelRoundOnMeasure PixelRoundPolicy = 1 << iota // Round the frame size after Measure
	PixelRoundOnSync                                 // Round the paint rect pushed to the render context
)

// CalcSize is a user-specified size; Auto dimensions are unset.
type CalcSize struct {
	Width, Height Value
}

// Resolve converts the size to pixels against reference.
func (s CalcSize) Resolve(reference SizeF) OptionalSizeF {
	var o OptionalSizeF
	if w, ok := s.Width.ResolveOptional(reference.Width); ok {
		o.SetWidth(max(0, w))
	}
	if h, ok := s.Height.ResolveOptional(reference.Height); ok {
		o.SetHeight(max(0, h))
	}
	return o
}

// MeasureProperty holds the user-specified sizing constraints.
type MeasureProperty struct {
	SelfIdealSize *CalcSize
	MinSize       *CalcSize
	MaxSize       *CalcSize
}

// EdgeValues holds per-side dimensions that resolve against a reference width.
type EdgeValues struct {
	Top, Right, Bottom, Left Value
}

// EdgeValuesAll returns EdgeValues with v on every side.
func EdgeValuesAll(v Value) EdgeValues {
	return EdgeValues{Top: v, Right: v, Bottom: v, Left: v}
}

// Resolve converts the edges to pixels. Percentages use reference for all
// four sides; negative results clamp to zero.
func (e EdgeValues) Resolve(reference float64) Edges {
	return Edges{
		Top:    max(0, e.Top.Resolve(reference, 0)),
		Right:  max(0, e.Right.Resolve(reference, 0)),
		Bottom: max(0, e.Bottom.Resolve(reference, 0)),
		Left:   max(0, e.Left.Resolve(reference, 0)),
	}
}

// SafeAreaExpandOpts asks for a node to extend into system safe areas.
type SafeAreaExpandOpts struct {
	Type  uint32
	Edges uint32
}

// Expansive reports whether any expansion is requested.
func (o SafeAreaExpandOpts) Expansive() bool {
	return o.Type != 0 && o.Edges != 0
}

// LayoutProperty holds a node's layout inputs and the constraints resolved
// from them, together with the layout change flag.
type LayoutProperty struct {
	flag PropertyChangeFlag

	visibility  Visibility
	measureType MeasureType
	calc        *MeasureProperty
	layoutRect  *RectF

	layoutConstraint  *LayoutConstraint
	contentConstraint *LayoutConstraint

	margin  *EdgeValues
	padding *EdgeValues
	border  *EdgeValues

	aspectRatio   float64
	pixelRound    PixelRoundPolicy
	alignment     *Alignment
	overlayOffset OffsetF
	safeArea      *SafeAreaExpandOpts

	flex     *FlexStyle
	flexItem *FlexItemStyle

	geometryTransition GeometryTransition
}

// NewLayoutProperty returns a LayoutProperty with defaults.
func NewLayoutProperty() *LayoutProperty {
	return &LayoutProperty{}
}

// Clone returns a detached copy.
func (p *LayoutProperty) Clone() *LayoutProperty {
	c := *p
	if p.calc != nil {
		calc := *p.calc
		c.calc = &calc
	}
	if p.layoutConstraint != nil {
		lc := *p.layoutConstraint
		c.layoutConstraint = &lc
	}
	if p.contentConstraint != nil {
		cc := *p.contentConstraint
		c.contentConstraint = &cc
	}
	return &c
}

// PropertyChangeFlag returns the accumulated layout flag.
func (p *LayoutProperty) PropertyChangeFlag() PropertyChangeFlag { return p.flag }

// UpdatePropertyChangeFlag ORs f into the layout flag.
func (p *LayoutProperty) UpdatePropertyChangeFlag(f PropertyChangeFlag) { p.flag |= f }

// CleanDirty clears the layout flag.
func (p *LayoutProperty) CleanDirty() { p.flag = PropertyUpdateNormal }

func (p *LayoutProperty) clearMeasureFlags() { p.flag &^= measureMask }

// Visibility returns the visibility.
func (p *LayoutProperty) Visibility() Visibility { return p.visibility }

// UpdateVisibility changes the visibility. A change affects the parent's
// measure because Gone nodes take no space.
func (p *LayoutProperty) UpdateVisibility(v Visibility) {
	if p.visibility == v {
		return
	}
	p.visibility = v
	p.flag |= PropertyUpdateMeasure
}

// MeasureType returns the measure type.
func (p *LayoutProperty) MeasureType() MeasureType { return p.measureType }

// UpdateMeasureType changes the measure type.
func (p *LayoutProperty) UpdateMeasureType(t MeasureType) {
	if p.measureType == t {
		return
	}
	p.measureType = t
	p.flag |= PropertyUpdateMeasure
}

// CalcLayoutConstraint returns the user sizing constraints, or nil.
func (p *LayoutProperty) CalcLayoutConstraint() *MeasureProperty { return p.calc }

func (p *LayoutProperty) ensureCalc() *MeasureProperty {
	if p.calc == nil {
		p.calc = &MeasureProperty{}
	}
	return p.calc
}

// UpdateUserDefinedIdealSize sets the user width and height.
func (p *LayoutProperty) UpdateUserDefinedIdealSize(s CalcSize) {
	calc := p.ensureCalc()
	if calc.SelfIdealSize != nil && *calc.SelfIdealSize == s {
		return
	}
	calc.SelfIdealSize = &s
	p.flag |= PropertyUpdateMeasure
}

// UpdateCalcMinSize sets the user minimum size.
func (p *LayoutProperty) UpdateCalcMinSize(s CalcSize) {
	calc := p.ensureCalc()
	if calc.MinSize != nil && *calc.MinSize == s {
		return
	}
	calc.MinSize = &s
	p.flag |= PropertyUpdateMeasure
}

// UpdateCalcMaxSize sets the user maximum size.
func (p *LayoutProperty) UpdateCalcMaxSize(s CalcSize) {
	calc := p.ensureCalc()
	if calc.MaxSize != nil && *calc.MaxSize == s {
		return
	}
	calc.MaxSize = &s
	p.flag |= PropertyUpdateMeasure
}

// HasFixedIdealSize reports whether both user ideal dimensions are concrete.
func (p *LayoutProperty) HasFixedIdealSize() bool {
	if p.calc == nil || p.calc.SelfIdealSize == nil {
		return false
	}
	s := p.calc.SelfIdealSize
	return !s.Width.IsAuto() && !s.Height.IsAuto()
}

// LayoutRect returns the explicit layout rect override.
func (p *LayoutProperty) LayoutRect() (RectF, bool) {
	if p.layoutRect == nil {
		return RectF{}, false
	}
	return *p.layoutRect, true
}

// UpdateLayoutRect pins the node to r, bypassing constraint resolution.
func (p *LayoutProperty) UpdateLayoutRect(r RectF) {
	if p.layoutRect != nil && *p.layoutRect == r {
		return
	}
	p.layoutRect = &r
	p.flag |= PropertyUpdateMeasure
}

// ResetLayoutRect removes the layout rect override.
func (p *LayoutProperty) ResetLayoutRect() {
	if p.layoutRect == nil {
		return
	}
	p.layoutRect = nil
	p.flag |= PropertyUpdateMeasure
}

// UpdateMargin sets the margin.
func (p *LayoutProperty) UpdateMargin(e EdgeValues) {
	if p.margin != nil && *p.margin == e {
		return
	}
	p.margin = &e
	p.flag |= PropertyUpdateMeasure
}

// UpdatePadding sets the padding.
func (p *LayoutProperty) UpdatePadding(e EdgeValues) {
	if p.padding != nil && *p.padding == e {
		return
	}
	p.padding = &e
	p.flag |= PropertyUpdateMeasure
}

// UpdateBorderWidth sets the border widths.
func (p *LayoutProperty) UpdateBorderWidth(e EdgeValues) {
	if p.border != nil && *p.border == e {
		return
	}
	p.border = &e
	p.flag |= PropertyUpdateMeasure
}

// BorderWidth returns the border widths and whether they were set.
func (p *LayoutProperty) BorderWidth() (EdgeValues, bool) {
	if p.border == nil {
		return EdgeValues{}, false
	}
	return *p.border, true
}

// AspectRatio returns width/height, or zero when unset.
func (p *LayoutProperty) AspectRatio() float64 { return p.aspectRatio }

// UpdateAspectRatio sets width/height. Non-positive ratios unset it.
func (p *LayoutProperty) UpdateAspectRatio(ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	if p.aspectRatio == ratio {
		return
	}
	p.aspectRatio = ratio
	p.flag |= PropertyUpdateMeasure
}

// PixelRound returns the pixel-round policy.
func (p *LayoutProperty) PixelRound() PixelRoundPolicy { return p.pixelRound }

// UpdatePixelRound sets the pixel-round policy.
func (p *LayoutProperty) UpdatePixelRound(policy PixelRoundPolicy) {
	if p.pixelRound == policy {
		return
	}
	p.pixelRound = policy
	p.flag |= PropertyUpdateMeasure
}

// Alignment returns the child alignment and whether it was set.
func (p *LayoutProperty) Alignment() (Alignment, bool) {
	if p.alignment == nil {
		return Alignment{}, false
	}
	return *p.alignment, true
}

// UpdateAlignment sets the alignment used for children and overlays.
func (p *LayoutProperty) UpdateAlignment(a Alignment) {
	if p.alignment != nil && *p.alignment == a {
		return
	}
	p.alignment = &a
	p.flag |= PropertyUpdateLayout
}

// OverlayOffset returns the pixel offset applied to the overlay node.
func (p *LayoutProperty) OverlayOffset() OffsetF { return p.overlayOffset }

// UpdateOverlayOffset sets the overlay offset.
func (p *LayoutProperty) UpdateOverlayOffset(o OffsetF) {
	if p.overlayOffset == o {
		return
	}
	p.overlayOffset = o
	p.flag |= PropertyUpdateLayout
}

// SafeAreaExpandOpts returns the safe-area expansion options.
func (p *LayoutProperty) SafeAreaExpandOpts() (SafeAreaExpandOpts, bool) {
	if p.safeArea == nil {
		return SafeAreaExpandOpts{}, false
	}
	return *p.safeArea, true
}

// UpdateSafeAreaExpandOpts sets the safe-area expansion options.
func (p *LayoutProperty) UpdateSafeAreaExpandOpts(o SafeAreaExpandOpts) {
	if p.safeArea != nil && *p.safeArea == o {
		return
	}
	p.safeArea = &o
	p.flag |= PropertyUpdateMeasure
}

// Flex returns the flex container style, or the default when unset.
func (p *LayoutProperty) Flex() FlexStyle {
	if p.flex == nil {
		return layout.DefaultFlexStyle()
	}
	return *p.flex
}

// UpdateFlex sets the flex container style.
func (p *LayoutProperty) UpdateFlex(s FlexStyle) {
	if p.flex != nil && *p.flex == s {
		return
	}
	p.flex = &s
	p.flag |= PropertyUpdateMeasure
}

// FlexItem returns the flex item style, or the default when unset.
func (p *LayoutProperty) FlexItem() FlexItemStyle {
	if p.flexItem == nil {
		return layout.DefaultFlexItemStyle()
	}
	return *p.flexItem
}

// UpdateFlexItem sets the flex item style. Item changes affect the parent.
func (p *LayoutProperty) UpdateFlexItem(s FlexItemStyle) {
	p.flexItem = &s
	p.flag |= PropertyUpdateMeasure
}

// GeometryTransition returns the shared-element transition, or nil.
func (p *LayoutProperty) GeometryTransition() GeometryTransition { return p.geometryTransition }

// UpdateGeometryTransition sets or clears the shared-element transition.
func (p *LayoutProperty) UpdateGeometryTransition(gt GeometryTransition) {
	p.geometryTransition = gt
	p.flag |= PropertyUpdateMeasure
}

// LayoutConstraint returns the resolved layout constraint.
func (p *LayoutProperty) LayoutConstraint() (LayoutConstraint, bool) {
	if p.layoutConstraint == nil {
		return LayoutConstraint{}, false
	}
	return *p.layoutConstraint, true
}

// ContentConstraint returns the resolved content constraint.
func (p *LayoutProperty) ContentConstraint() (LayoutConstraint, bool) {
	if p.contentConstraint == nil {
		return LayoutConstraint{}, false
	}
	return *p.contentConstraint, true
}

func (p *LayoutProperty) percentReferenceWidth() float64 {
	if p.layoutConstraint == nil {
		return 0
	}
	return p.layoutConstraint.PercentReference.Width
}

// CreateMargin resolves the margin against the current percent reference.
// Left and right margins never exceed the available width.
func (p *LayoutProperty) CreateMargin() Edges {
	if p.margin == nil {
		return Edges{}
	}
	ref := p.percentReferenceWidth()
	m := p.margin.Resolve(ref)
	if p.layoutConstraint != nil && p.layoutConstraint.MaxSize.Width != layout.Infinity {
		m = m.FitWidth(p.layoutConstraint.MaxSize.Width)
	}
	return m
}

// CreatePaddingAndBorder resolves padding plus border widths.
func (p *LayoutProperty) CreatePaddingAndBorder() Edges {
	ref := p.percentReferenceWidth()
	var e Edges
	if p.padding != nil {
		e = p.padding.Resolve(ref)
	}
	if p.border != nil {
		e = e.Add(p.border.Resolve(ref))
	}
	return e
}

// UpdateLayoutConstraint derives this node's constraint from the parent's:
// margins are removed, user min/max/ideal sizes are applied, and the
// aspect ratio is enforced on the result.
func (p *LayoutProperty) UpdateLayoutConstraint(parent LayoutConstraint) {
	c := parent
	p.layoutConstraint = &c
	if p.margin != nil {
		c.MinusPadding(p.CreateMargin())
	}
	if p.calc != nil {
		ref := parent.PercentReference
		if p.calc.MaxSize != nil {
			c.UpdateMaxSize(p.calc.MaxSize.Resolve(ref))
		}
		if p.calc.MinSize != nil {
			c.UpdateMinSize(p.calc.MinSize.Resolve(ref))
		}
		if p.calc.SelfIdealSize != nil {
			c.SelfIdealSize = layout.OptionalSizeF{}
			c.UpdateSelfIdealSize(p.calc.SelfIdealSize.Resolve(ref))
		}
	}
	if p.measureType == MeasureMatchParent {
		fill := layout.OptionalSizeF{}
		if !c.SelfIdealSize.HasWidth {
			fill.SetWidth(matchParentDim(parent.ParentIdealSize.HasWidth, parent.ParentIdealSize.Width, c.MaxSize.Width))
		}
		if !c.SelfIdealSize.HasHeight {
			fill.SetHeight(matchParentDim(parent.ParentIdealSize.HasHeight, parent.ParentIdealSize.Height, c.MaxSize.Height))
		}
		c.UpdateSelfIdealSize(fill)
	}
	p.checkAspectRatio(&c)
	p.layoutConstraint = &c
}

func matchParentDim(hasIdeal bool, ideal, maxSize float64) float64 {
	if hasIdeal {
		return ideal
	}
	if maxSize == layout.Infinity {
		return 0
	}
	return maxSize
}

// checkAspectRatio fits the max size and the ideal size to the aspect
// ratio. When both dimensions are set the width wins.
func (p *LayoutProperty) checkAspectRatio(c *LayoutConstraint) {
	ratio := p.aspectRatio
	if ratio <= 0 {
		return
	}
	maxWidth, maxHeight := c.MaxSize.Width, c.MaxSize.Height
	if maxHeight > maxWidth/ratio {
		maxHeight = maxWidth / ratio
	}
	if maxHeight != layout.Infinity {
		c.MaxSize = SizeF{Width: maxHeight * ratio, Height: maxHeight}
		maxWidth = c.MaxSize.Width
	}

	switch {
	case c.SelfIdealSize.HasWidth:
		w := c.SelfIdealSize.Width
		h := w / ratio
		if h > maxHeight {
			h = maxHeight
			w = h * ratio
		}
		c.SelfIdealSize = layout.OptionalSize(w, h)
	case c.SelfIdealSize.HasHeight:
		h := c.SelfIdealSize.Height
		w := h * ratio
		if w > maxWidth {
			w = maxWidth
			h = w / ratio
		}
		c.SelfIdealSize = layout.OptionalSize(w, h)
	}
}

// UpdateLayoutConstraintWithLayoutRect pins every constraint dimension to
// the layout rect size.
func (p *LayoutProperty) UpdateLayoutConstraintWithLayoutRect() {
	if p.layoutRect == nil {
		return
	}
	size := p.layoutRect.Size()
	p.layoutConstraint = &LayoutConstraint{
		MinSize:          size,
		MaxSize:          size,
		PercentReference: size,
		SelfIdealSize:    layout.OptionalSize(size.Width, size.Height),
	}
}

// CreateRootConstraint derives the constraint of a tree root from the
// pipeline root size.
func (p *LayoutProperty) CreateRootConstraint(root SizeF) {
	p.UpdateLayoutConstraint(layout.RootConstraint(root))
	if p.calc == nil || p.calc.SelfIdealSize == nil {
		p.layoutConstraint.UpdateSelfIdealSize(layout.OptionalSize(root.Width, root.Height))
	}
}

// UpdateContentConstraint derives the content constraint by removing
// padding and border from the layout constraint.
func (p *LayoutProperty) UpdateContentConstraint() {
	if p.layoutConstraint == nil {
		return
	}
	c := *p.layoutConstraint
	if pb := p.CreatePaddingAndBorder(); !pb.IsZero() {
		c.MinusPadding(pb)
	}
	p.contentConstraint = &c
}

// CreateChildConstraint returns the constraint handed to children: the
// content constraint with this node's ideal size as the parent ideal size.
func (p *LayoutProperty) CreateChildConstraint() LayoutConstraint {
	if p.contentConstraint == nil {
		return layout.Unbounded()
	}
	c := *p.contentConstraint
	c.ParentIdealSize = c.SelfIdealSize
	if c.ParentIdealSize.HasWidth {
		c.MaxSize.Width = c.ParentIdealSize.Width
		c.PercentReference.Width = c.ParentIdealSize.Width
	}
	if c.ParentIdealSize.HasHeight {
		c.MaxSize.Height = c.ParentIdealSize.Height
		c.PercentReference.Height = c.ParentIdealSize.Height
	}
	c.SelfIdealSize = layout.OptionalSizeF{}
	c.MinSize = SizeF{}
	return c
}

// ConstraintEqual reports whether the current constraints match the given
// previous ones. Missing constraints never compare equal.
func (p *LayoutProperty) ConstraintEqual(prevLayout, prevContent *LayoutConstraint) bool {
	if prevLayout == nil || p.layoutConstraint == nil {
		return false
	}
	if !prevLayout.Equal(*p.layoutConstraint) {
		return false
	}
	if prevContent == nil || p.contentConstraint == nil {
		return prevContent == nil && p.contentConstraint == nil
	}
	return prevContent.Equal(*p.contentConstraint)
}

func (p *LayoutProperty) snapshotConstraints() (*LayoutConstraint, *LayoutConstraint) {
	var lc, cc *LayoutConstraint
	if p.layoutConstraint != nil {
		c := *p.layoutConstraint
		lc = &c
	}
	if p.contentConstraint != nil {
		c := *p.contentConstraint
		cc = &c
	}
	return lc, cc
}
