package dict

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
)

// ErrDuplicateKey is returned by Add when an entry with an equal key exists.
var ErrDuplicateKey = errors.New("an entry with the same key already exists")

// Pair is a single dictionary entry.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// ReadOnly is the enumerable, non-insertable view of a dictionary.
//
// Clone returns a mutable copy and is what makes an interface type usable as a
// binding target: the binder materializes read-only views by cloning them.
type ReadOnly[K comparable, V any] interface {
	Len() int
	Get(key K) (V, bool)
	All() iter.Seq2[K, V]
	Comparer() Comparer[K]
	Clone() *Dict[K, V]
}

// Dict is an insertion-ordered dictionary whose key equality is decided by a
// Comparer. The zero value is an empty dictionary with the ordinal comparer.
type Dict[K comparable, V any] struct {
	cmp     Comparer[K]
	entries []Pair[K, V]
	index   map[K]int // canonical key -> position in entries
}

// New returns an empty dictionary using cmp, or the ordinal comparer when cmp is nil.
func New[K comparable, V any](cmp Comparer[K]) *Dict[K, V] {
	return new(Dict[K, V]).Init(cmp)
}

// Init clears d and sets its comparer. It returns d.
func (d *Dict[K, V]) Init(cmp Comparer[K]) *Dict[K, V] {
	d.cmp = cmp
	d.entries = nil
	d.index = make(map[K]int)

	return d
}

func (d *Dict[K, V]) isDict() {}

func (d *Dict[K, V]) canonical(key K) K {
	if d.cmp == nil {
		return key
	}

	return d.cmp.Canonical(key)
}

// Comparer returns the key comparer; the ordinal comparer when none was set.
func (d *Dict[K, V]) Comparer() Comparer[K] {
	if d.cmp == nil {
		return Ordinal[K]()
	}

	return d.cmp
}

// Len returns the number of entries.
func (d *Dict[K, V]) Len() int {
	return len(d.entries)
}

// Get returns the value stored under key. It never panics for absent keys.
func (d *Dict[K, V]) Get(key K) (V, bool) {
	if i, ok := d.index[d.canonical(key)]; ok {
		return d.entries[i].Value, true
	}

	var zero V
	return zero, false
}

// Set inserts or overwrites the entry for key. When an equal key is already
// present its original spelling is kept and only the value changes.
func (d *Dict[K, V]) Set(key K, value V) {
	c := d.canonical(key)
	if i, ok := d.index[c]; ok {
		d.entries[i].Value = value
		return
	}

	if d.index == nil {
		d.index = make(map[K]int)
	}

	d.index[c] = len(d.entries)
	d.entries = append(d.entries, Pair[K, V]{Key: key, Value: value})
}

// Add inserts a new entry and fails if an equal key exists.
func (d *Dict[K, V]) Add(key K, value V) error {
	if _, ok := d.index[d.canonical(key)]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	}

	d.Set(key, value)

	return nil
}

// AddPair inserts p, overwriting the value of an equal key.
func (d *Dict[K, V]) AddPair(p Pair[K, V]) {
	d.Set(p.Key, p.Value)
}

// Delete removes the entry for key, keeping the order of the remaining ones.
func (d *Dict[K, V]) Delete(key K) bool {
	c := d.canonical(key)
	i, ok := d.index[c]
	if !ok {
		return false
	}

	delete(d.index, c)
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	for j := i; j < len(d.entries); j++ {
		d.index[d.canonical(d.entries[j].Key)] = j
	}

	return true
}

// All enumerates the entries in insertion order.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range d.entries {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (d *Dict[K, V]) Keys() []K {
	keys := make([]K, 0, len(d.entries))
	for _, p := range d.entries {
		keys = append(keys, p.Key)
	}

	return keys
}

// Pairs returns a copy of the entries in insertion order.
func (d *Dict[K, V]) Pairs() []Pair[K, V] {
	return append([]Pair[K, V](nil), d.entries...)
}

// Clone returns an independent copy with the same comparer and order.
func (d *Dict[K, V]) Clone() *Dict[K, V] {
	out := &Dict[K, V]{
		cmp:   d.cmp,
		index: make(map[K]int, len(d.entries)),
	}
	if len(d.entries) > 0 {
		out.entries = append(make([]Pair[K, V], 0, len(d.entries)), d.entries...)
	}

	for k, v := range d.index {
		out.index[k] = v
	}

	return out
}

// Equal reports whether both dictionaries hold the same ordered entries and
// compare keys the same way. Values are compared with reflect.DeepEqual.
func (d *Dict[K, V]) Equal(other *Dict[K, V]) bool {
	if d == nil || other == nil {
		return d == other
	}

	if d.Len() != other.Len() || d.Comparer() != other.Comparer() {
		return false
	}

	for i, p := range d.entries {
		q := other.entries[i]
		if p.Key != q.Key || !reflect.DeepEqual(p.Value, q.Value) {
			return false
		}
	}

	return true
}

// String renders the entries in insertion order, e.g. {a: 1, B: 2}.
func (d *Dict[K, V]) String() string {
	buf := []byte{'{'}
	for i, p := range d.entries {
		if i > 0 {
			buf = append(buf, ", "...)
		}

		buf = fmt.Appendf(buf, "%v: %v", p.Key, p.Value)
	}

	return string(append(buf, '}'))
}
