package dict

import "strings"

// Comparer decides key equality for a Dict: two keys are equal when their
// canonical forms are. Implementations must be comparable values so that
// dictionaries can report whether they share the same comparer.
type Comparer[K comparable] interface {
	Canonical(key K) K
}

type ordinal[K comparable] struct{}

func (ordinal[K]) Canonical(key K) K { return key }

func (ordinal[K]) String() string { return "ordinal" }

// Ordinal returns the comparer that uses plain Go equality.
func Ordinal[K comparable]() Comparer[K] {
	return ordinal[K]{}
}

type ignoreCase[K ~string] struct{}

func (ignoreCase[K]) Canonical(key K) K { return K(strings.ToLower(string(key))) }

func (ignoreCase[K]) String() string { return "ignore-case" }

// IgnoreCase returns a comparer for string keys that ignores letter case.
func IgnoreCase[K ~string]() Comparer[K] {
	return ignoreCase[K]{}
}
