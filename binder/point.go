package binder

import "reflect"

// BindingPoint is the slot a single dictionary entry is bound into. It
// exposes the value already stored under the entry key, looked up only when
// asked for, and carries the value produced by the value binder.
type BindingPoint struct {
	lookup func() (reflect.Value, bool)
	frame  frame

	looked     bool
	current    reflect.Value
	hasCurrent bool

	value reflect.Value
	set   bool
}

// frame is what a nested bind inherits from the entry it binds into.
type frame struct {
	// root is the section depth of the outermost bound section, or -1 when
	// the nested section starts a new bind.
	root int
	// shared marks a current value that also belongs to a source which must
	// stay unmodified.
	shared bool
}

var rootFrame = frame{root: -1}

// NewBindingPoint creates a point whose current value is read through lookup.
// A nil lookup means the slot has no current value.
func NewBindingPoint(lookup func() (reflect.Value, bool)) *BindingPoint {
	return newBindingPoint(lookup, rootFrame)
}

func newBindingPoint(lookup func() (reflect.Value, bool), f frame) *BindingPoint {
	return &BindingPoint{lookup: lookup, frame: f}
}

// Current returns the value already stored for the entry, if any.
func (p *BindingPoint) Current() (reflect.Value, bool) {
	if !p.looked {
		p.looked = true
		if p.lookup != nil {
			p.current, p.hasCurrent = p.lookup()
		}
	}

	return p.current, p.hasCurrent
}

// Shared reports whether the current value is also held by a read-only
// source. Containers reached through a shared value are copied before they
// are bound into.
func (p *BindingPoint) Shared() bool {
	return p.frame.shared
}

// Set records the bound value.
func (p *BindingPoint) Set(v reflect.Value) {
	p.value = v
	p.set = true
}

// Value returns the bound value. The second result is false when the value
// binder left the point unchanged.
func (p *BindingPoint) Value() (reflect.Value, bool) {
	return p.value, p.set
}
