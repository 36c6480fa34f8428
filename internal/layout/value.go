package layout

// Unit specifies how a Value is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Size determined by content or constraint
	UnitFixed               // Absolute pixels
	UnitPercent             // Percentage of the reference size
)

// Value represents a dimension that can be fixed, percentage, or auto.
type Value struct {
	Amount float64
	Unit   Unit
}

// Auto returns a Value that should be computed from content.
func Auto() Value {
	return Value{Unit: UnitAuto}
}

// Fixed returns a Value representing an absolute number of pixels.
func Fixed(n float64) Value {
	return Value{Amount: n, Unit: UnitFixed}
}

// Percent returns a Value representing a percentage of the reference size.
// The value is on a 0-100 scale (50.0 = 50%).
func Percent(p float64) Value {
	return Value{Amount: p, Unit: UnitPercent}
}

// Resolve computes the actual value given the reference size.
// For UnitAuto, returns the fallback value.
func (v Value) Resolve(reference, fallback float64) float64 {
	switch v.Unit {
	case UnitFixed:
		return v.Amount
	case UnitPercent:
		return reference * v.Amount / 100.0
	default:
		return fallback
	}
}

// ResolveOptional resolves v against reference and reports whether the
// value carried a concrete amount.
func (v Value) ResolveOptional(reference float64) (float64, bool) {
	if v.IsAuto() {
		return 0, false
	}
	return v.Resolve(reference, 0), true
}

// IsAuto returns true if this value should be computed from content.
func (v Value) IsAuto() bool {
	return v.Unit == UnitAuto
}

// IsNegative reports whether a concrete value is below zero.
func (v Value) IsNegative() bool {
	return !v.IsAuto() && v.Amount < 0
}
