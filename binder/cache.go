package binder

import (
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// AdapterCache memoizes descriptors and adapters per dictionary type.
// Entries are created at most once per type and then only read, so a single
// cache can be shared by every Binder in the process.
type AdapterCache struct {
	adapters    sync.Map // reflect.Type (concrete container) -> Adapter
	descriptors sync.Map // reflect.Type (target) -> described

	group  singleflight.Group
	builds atomic.Int64
}

func NewAdapterCache() *AdapterCache {
	return &AdapterCache{}
}

// Register installs a, replacing any adapter cached for a.Type().
func (c *AdapterCache) Register(a Adapter) {
	c.adapters.Store(a.Type(), a)
}

// RegisterOnce installs a unless an adapter for a.Type() is already cached.
// It reports whether a was installed.
func (c *AdapterCache) RegisterOnce(a Adapter) bool {
	if _, ok := c.adapters.Load(a.Type()); ok {
		return false
	}

	_, loaded := c.adapters.LoadOrStore(a.Type(), a)

	return !loaded
}

// Adapter returns the adapter for d.Concrete, building a reflective one on
// first use. Concurrent first uses build it once.
func (c *AdapterCache) Adapter(d *Descriptor) Adapter {
	if a, ok := c.adapters.Load(d.Concrete); ok {
		return a.(Adapter)
	}

	v, _, _ := c.group.Do(d.Concrete.String(), func() (any, error) {
		if a, ok := c.adapters.Load(d.Concrete); ok {
			return a, nil
		}

		return c.store(d), nil
	})

	if a := v.(Adapter); a.Type() == d.Concrete {
		return a
	}

	// distinct types printing the same name
	return c.store(d)
}

func (c *AdapterCache) store(d *Descriptor) Adapter {
	c.builds.Add(1)
	actual, _ := c.adapters.LoadOrStore(d.Concrete, newReflectAdapter(d))

	return actual.(Adapter)
}

// Describe is the cached form of the package-level Describe. Failures are
// cached as well.
func (c *AdapterCache) Describe(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return Describe(t)
	}

	if r, ok := c.descriptors.Load(t); ok {
		return r.(described).unpack()
	}

	d, err := Describe(t)
	actual, _ := c.descriptors.LoadOrStore(t, described{d: d, err: err})

	return actual.(described).unpack()
}

type described struct {
	d   *Descriptor
	err error
}

func (r described) unpack() (*Descriptor, error) {
	return r.d, r.err
}

// Len returns the number of cached adapters.
func (c *AdapterCache) Len() int {
	n := 0
	c.adapters.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// Builds returns how many reflective adapters were built.
func (c *AdapterCache) Builds() int64 {
	return c.builds.Load()
}
