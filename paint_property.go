package scene

import "maps"

// PaintProperty holds a node's paint inputs as an opaque style bag plus
// the paint change flag.
type PaintProperty struct {
	flag   PropertyChangeFlag
	values map[string]any
}

// NewPaintProperty returns an empty PaintProperty.
func NewPaintProperty() *PaintProperty {
	return &PaintProperty{}
}

// Clone returns a detached copy.
func (p *PaintProperty) Clone() *PaintProperty {
	return &PaintProperty{flag: p.flag, values: maps.Clone(p.values)}
}

// PropertyChangeFlag returns the accumulated paint flag.
func (p *PaintProperty) PropertyChangeFlag() PropertyChangeFlag { return p.flag }

// UpdatePropertyChangeFlag ORs f into the paint flag.
func (p *PaintProperty) UpdatePropertyChangeFlag(f PropertyChangeFlag) { p.flag |= f }

// CleanDirty clears the paint flag.
func (p *PaintProperty) CleanDirty() { p.flag = PropertyUpdateNormal }

// Get returns the value stored under key.
func (p *PaintProperty) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Set stores v under key and marks the property for render when the value
// changed. Values must be comparable.
func (p *PaintProperty) Set(key string, v any) {
	if old, ok := p.values[key]; ok && old == v {
		return
	}
	if p.values == nil {
		p.values = make(map[string]any)
	}
	p.values[key] = v
	p.flag |= PropertyUpdateRender
}

// Delete removes key.
func (p *PaintProperty) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	p.flag |= PropertyUpdateRender
}

// Len returns the number of stored values.
func (p *PaintProperty) Len() int { return len(p.values) }
