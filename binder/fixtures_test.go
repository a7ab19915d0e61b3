package binder

import (
	"dict-binder/dict"
	"iter"
)

type Color int8

const (
	Red Color = iota
	Green
	Blue
)

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	default:
		return "Color(?)"
	}
}

func (Color) Values() []Color {
	return []Color{Red, Green, Blue}
}

// Name is a string key that is not an enumeration.
type Name string

// Port is a named integer without members, so it is not a valid key.
type Port uint16

// frozen is a read-only dictionary implemented outside package dict.
type frozen struct {
	d *dict.Dict[string, int]
}

func (f frozen) Len() int { return f.d.Len() }
func (f frozen) Get(key string) (int, bool) { return f.d.Get(key) }
func (f frozen) All() iter.Seq2[string, int] { return f.d.All() }
func (f frozen) Comparer() dict.Comparer[string] { return f.d.Comparer() }
func (f frozen) Clone() *dict.Dict[string, int] { return f.d.Clone() }
func (f frozen) String() string { return f.d.String() }

// sized is a narrow view: it can only be counted and cloned.
type sized interface {
	Len() int
	Clone() *dict.Dict[string, int]
}

func ignoreCase(pairs ...dict.Pair[string, int]) *dict.Dict[string, int] {
	d := dict.New[string, int](dict.IgnoreCase[string]())
	for _, p := range pairs {
		d.Set(p.Key, p.Value)
	}

	return d
}
