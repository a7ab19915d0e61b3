package binder

import (
	"dict-binder/dict"
	"fmt"
	"reflect"
)

//go:generate go tool stringer -type=Capability -output=capability_string.go

// Capability tells whether a dictionary type can be mutated in place.
type Capability int

const (
	_ Capability = iota

	// CapabilityMutableConcrete types (map[K]V, *dict.Dict[K, V]) are
	// populated in place when the bind source is non-nil.
	CapabilityMutableConcrete
	// CapabilityReadOnlyView types are interfaces implemented by
	// *dict.Dict[K, V]; they are always populated through a fresh copy.
	CapabilityReadOnlyView
)

// Descriptor describes a dictionary target type.
type Descriptor struct {
	// Type is the requested target type.
	Type reflect.Type
	// Concrete is the mutable container type used to hold the entries.
	// It equals Type for CapabilityMutableConcrete.
	Concrete reflect.Type

	Key   reflect.Type
	Value reflect.Type

	Capability Capability
}

// Describe inspects t and reports its dictionary shape.
func Describe(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNotDictionary)
	}

	if t.Kind() == reflect.Map {
		return &Descriptor{
			Type:       t,
			Concrete:   t,
			Key:        t.Key(),
			Value:      t.Elem(),
			Capability: CapabilityMutableConcrete,
		}, nil
	}

	if key, value, ok := dict.Inspect(t); ok {
		return &Descriptor{
			Type:       t,
			Concrete:   t,
			Key:        key,
			Value:      value,
			Capability: CapabilityMutableConcrete,
		}, nil
	}

	if concrete, ok := dict.Interface(t); ok {
		key, value, _ := dict.Inspect(concrete)
		return &Descriptor{
			Type:       t,
			Concrete:   concrete,
			Key:        key,
			Value:      value,
			Capability: CapabilityReadOnlyView,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotDictionary, t)
}

// IsMap reports whether the concrete container is a built-in map.
func (d *Descriptor) IsMap() bool {
	return d.Concrete.Kind() == reflect.Map
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (key %s, value %s, %s)", d.Type, d.Key, d.Value, d.Capability)
}
