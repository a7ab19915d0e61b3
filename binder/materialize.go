package binder

import (
	"dict-binder/options"
	"reflect"
)

// Container is the mutable dictionary a bind call populates.
type Container interface {
	Value() reflect.Value
	Get(key reflect.Value) (reflect.Value, bool)
	Set(key, value reflect.Value)
}

// Materializer turns the bind source into the container to populate:
// an absent source yields an empty container, a mutable source is reused
// and a read-only view is copied.
type Materializer interface {
	Materialize(source reflect.Value, d *Descriptor) Container
}

func newMaterializer(s options.StrategyEnum, cache *AdapterCache) Materializer {
	switch s {
	case options.StrategyReflect:
		return reflectMaterializer{}
	case options.StrategyLazyReflect:
		return reflectMaterializer{lazy: true}
	case options.StrategyPairs:
		return pairsMaterializer{}
	case options.StrategyCopyConstruct:
		return copyConstructMaterializer{}
	default:
		return cachedMaterializer{cache: cache}
	}
}

// present reports whether v holds a container.
func present(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}

	switch v.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Interface:
		return !v.IsNil()
	default:
		return true
	}
}

type cachedMaterializer struct {
	cache *AdapterCache
}

func (m cachedMaterializer) Materialize(source reflect.Value, d *Descriptor) Container {
	a := m.cache.Adapter(d)

	switch {
	case !present(source):
		return &adapterContainer{adapter: a, value: a.Empty()}
	case d.Capability == CapabilityMutableConcrete:
		return &adapterContainer{adapter: a, value: source}
	default:
		return &adapterContainer{adapter: a, value: a.Copy(source)}
	}
}

// reflectMaterializer resolves every method by name on each call. When lazy
// is set the insertion method is only resolved once the source yields an entry.
type reflectMaterializer struct {
	lazy bool
}

func (m reflectMaterializer) Materialize(source reflect.Value, d *Descriptor) Container {
	switch {
	case !present(source):
		return &reflectContainer{value: emptyOf(d, reflect.Value{})}
	case d.Capability == CapabilityMutableConcrete:
		return &reflectContainer{value: source}
	}

	dst := emptyOf(d, source)

	var set reflect.Value
	if !m.lazy {
		set = dst.MethodByName("Set")
	}

	for k, v := range entriesOf(source) {
		if !set.IsValid() {
			set = dst.MethodByName("Set")
		}

		set.Call([]reflect.Value{k, v})
	}

	return &reflectContainer{value: dst}
}

// pairsMaterializer copies views through the pair-insertion method.
type pairsMaterializer struct{}

func (pairsMaterializer) Materialize(source reflect.Value, d *Descriptor) Container {
	switch {
	case !present(source):
		return &reflectContainer{value: emptyOf(d, reflect.Value{})}
	case d.Capability == CapabilityMutableConcrete:
		return &reflectContainer{value: source}
	}

	dst := emptyOf(d, source)
	add := dst.MethodByName("AddPair")
	pairType := add.Type().In(0)

	for k, v := range entriesOf(source) {
		pair := reflect.New(pairType).Elem()
		pair.Field(0).Set(k)
		pair.Field(1).Set(v)
		add.Call([]reflect.Value{pair})
	}

	return &reflectContainer{value: dst}
}

// copyConstructMaterializer clones views whose dynamic type is the concrete
// container type and inserts pairwise otherwise.
type copyConstructMaterializer struct{}

func (copyConstructMaterializer) Materialize(source reflect.Value, d *Descriptor) Container {
	switch {
	case !present(source):
		return &reflectContainer{value: emptyOf(d, reflect.Value{})}
	case d.Capability == CapabilityMutableConcrete:
		return &reflectContainer{value: source}
	case source.Type() == d.Concrete:
		return &reflectContainer{value: source.MethodByName("Clone").Call(nil)[0]}
	}

	dst := emptyOf(d, source)
	set := dst.MethodByName("Set")
	for k, v := range entriesOf(source) {
		set.Call([]reflect.Value{k, v})
	}

	return &reflectContainer{value: dst}
}

// emptyOf creates an empty concrete container. A valid source lends its
// comparer to the new dictionary.
func emptyOf(d *Descriptor, source reflect.Value) reflect.Value {
	if d.IsMap() {
		return reflect.MakeMap(d.Concrete)
	}

	dst := reflect.New(d.Concrete.Elem())
	init := dst.MethodByName("Init")
	cmpType := init.Type().In(0)

	cmp := reflect.Zero(cmpType)
	if source.IsValid() {
		cmp = comparerOf(source, cmpType)
	}

	init.Call([]reflect.Value{cmp})

	return dst
}

type adapterContainer struct {
	adapter Adapter
	value   reflect.Value
}

func (c *adapterContainer) Value() reflect.Value { return c.value }

func (c *adapterContainer) Get(key reflect.Value) (reflect.Value, bool) {
	return c.adapter.Get(c.value, key)
}

func (c *adapterContainer) Set(key, value reflect.Value) {
	c.adapter.Set(c.value, key, value)
}

// reflectContainer looks its methods up by name the first time they are needed.
type reflectContainer struct {
	value reflect.Value

	get reflect.Value
	set reflect.Value
}

func (c *reflectContainer) Value() reflect.Value { return c.value }

func (c *reflectContainer) Get(key reflect.Value) (reflect.Value, bool) {
	if c.value.Kind() == reflect.Map {
		v := c.value.MapIndex(key)
		return v, v.IsValid()
	}

	if !c.get.IsValid() {
		c.get = c.value.MethodByName("Get")
	}

	out := c.get.Call([]reflect.Value{key})

	return out[0], out[1].Bool()
}

func (c *reflectContainer) Set(key, value reflect.Value) {
	if c.value.Kind() == reflect.Map {
		c.value.SetMapIndex(key, value)
		return
	}

	if !c.set.IsValid() {
		c.set = c.value.MethodByName("Set")
	}

	c.set.Call([]reflect.Value{key, value})
}
