package binder

import (
	"dict-binder/dict"
	"iter"
	"maps"
	"reflect"
)

// Adapter performs container operations for one concrete dictionary type.
// Adapters are stateless and safe for concurrent use.
type Adapter interface {
	// Type returns the concrete container type the adapter serves.
	Type() reflect.Type
	// Empty returns a new empty container using the default comparer.
	Empty() reflect.Value
	// Copy returns a new container holding the entries of src in
	// enumeration order, with the comparer of src when it exposes one.
	Copy(src reflect.Value) reflect.Value
	Get(c, key reflect.Value) (reflect.Value, bool)
	Set(c, key, value reflect.Value)
}

// newReflectAdapter builds the type-erased adapter for d.Concrete.
func newReflectAdapter(d *Descriptor) Adapter {
	if d.IsMap() {
		return mapAdapter{typ: d.Concrete}
	}

	return newDictAdapter(d.Concrete)
}

type mapAdapter struct {
	typ reflect.Type
}

func (a mapAdapter) Type() reflect.Type { return a.typ }

func (a mapAdapter) Empty() reflect.Value {
	return reflect.MakeMap(a.typ)
}

func (a mapAdapter) Copy(src reflect.Value) reflect.Value {
	dst := reflect.MakeMapWithSize(a.typ, src.Len())
	for it := src.MapRange(); it.Next(); {
		dst.SetMapIndex(it.Key(), it.Value())
	}

	return dst
}

func (a mapAdapter) Get(c, key reflect.Value) (reflect.Value, bool) {
	v := c.MapIndex(key)
	return v, v.IsValid()
}

func (a mapAdapter) Set(c, key, value reflect.Value) {
	c.SetMapIndex(key, value)
}

// dictAdapter resolves the methods of *dict.Dict[K, V] once and calls them
// by index afterwards.
type dictAdapter struct {
	typ     reflect.Type
	cmpType reflect.Type

	init  int
	get   int
	set   int
	clone int
}

func newDictAdapter(t reflect.Type) *dictAdapter {
	method := func(name string) reflect.Method {
		m, _ := t.MethodByName(name)
		return m
	}

	init := method("Init")

	return &dictAdapter{
		typ:     t,
		cmpType: init.Type.In(1),
		init:    init.Index,
		get:     method("Get").Index,
		set:     method("Set").Index,
		clone:   method("Clone").Index,
	}
}

func (a *dictAdapter) Type() reflect.Type { return a.typ }

func (a *dictAdapter) Empty() reflect.Value {
	return a.withComparer(reflect.Zero(a.cmpType))
}

func (a *dictAdapter) withComparer(cmp reflect.Value) reflect.Value {
	d := reflect.New(a.typ.Elem())
	d.Method(a.init).Call([]reflect.Value{cmp})

	return d
}

func (a *dictAdapter) Copy(src reflect.Value) reflect.Value {
	if src.Type() == a.typ {
		return src.Method(a.clone).Call(nil)[0]
	}

	dst := a.withComparer(comparerOf(src, a.cmpType))
	set := dst.Method(a.set)
	for k, v := range entriesOf(src) {
		set.Call([]reflect.Value{k, v})
	}

	return dst
}

func (a *dictAdapter) Get(c, key reflect.Value) (reflect.Value, bool) {
	out := c.Method(a.get).Call([]reflect.Value{key})
	return out[0], out[1].Bool()
}

func (a *dictAdapter) Set(c, key, value reflect.Value) {
	c.Method(a.set).Call([]reflect.Value{key, value})
}

// TypedDict returns an adapter for *dict.Dict[K, V] that works on the
// static types instead of calling methods through reflection.
func TypedDict[K comparable, V any]() Adapter {
	return typedDict[K, V]{}
}

type typedDict[K comparable, V any] struct{}

type cloner[K comparable, V any] interface {
	Clone() *dict.Dict[K, V]
}

func (typedDict[K, V]) Type() reflect.Type {
	return reflect.TypeFor[*dict.Dict[K, V]]()
}

func (typedDict[K, V]) Empty() reflect.Value {
	return reflect.ValueOf(dict.New[K, V](nil))
}

func (typedDict[K, V]) Copy(src reflect.Value) reflect.Value {
	switch s := src.Interface().(type) {
	case *dict.Dict[K, V]:
		return reflect.ValueOf(s.Clone())
	case dict.ReadOnly[K, V]:
		dst := dict.New[K, V](s.Comparer())
		for k, v := range s.All() {
			dst.Set(k, v)
		}

		return reflect.ValueOf(dst)
	default:
		return reflect.ValueOf(s.(cloner[K, V]).Clone())
	}
}

func (typedDict[K, V]) Get(c, key reflect.Value) (reflect.Value, bool) {
	v, ok := c.Interface().(*dict.Dict[K, V]).Get(as[K](key))
	return reflect.ValueOf(&v).Elem(), ok
}

func (typedDict[K, V]) Set(c, key, value reflect.Value) {
	c.Interface().(*dict.Dict[K, V]).Set(as[K](key), as[V](value))
}

// TypedMap returns an adapter for map[K]V that works on the static types.
func TypedMap[K comparable, V any]() Adapter {
	return typedMap[K, V]{}
}

type typedMap[K comparable, V any] struct{}

func (typedMap[K, V]) Type() reflect.Type {
	return reflect.TypeFor[map[K]V]()
}

func (typedMap[K, V]) Empty() reflect.Value {
	return reflect.ValueOf(make(map[K]V))
}

func (typedMap[K, V]) Copy(src reflect.Value) reflect.Value {
	m := maps.Clone(src.Interface().(map[K]V))
	if m == nil {
		m = make(map[K]V)
	}

	return reflect.ValueOf(m)
}

func (typedMap[K, V]) Get(c, key reflect.Value) (reflect.Value, bool) {
	v, ok := c.Interface().(map[K]V)[as[K](key)]
	return reflect.ValueOf(&v).Elem(), ok
}

func (typedMap[K, V]) Set(c, key, value reflect.Value) {
	c.Interface().(map[K]V)[as[K](key)] = as[V](value)
}

// as extracts a T from v, falling back to an assignment for values whose
// dynamic type is only assignable to T, such as nil interfaces.
func as[T any](v reflect.Value) T {
	if t, ok := v.Interface().(T); ok {
		return t
	}

	var out T
	reflect.ValueOf(&out).Elem().Set(v)

	return out
}

// entriesOf enumerates a dictionary value. Views without an All method are
// enumerated through their clone.
func entriesOf(src reflect.Value) iter.Seq2[reflect.Value, reflect.Value] {
	all := src.MethodByName("All")
	if !isSeq2Method(all) {
		all = src.MethodByName("Clone").Call(nil)[0].MethodByName("All")
	}

	return all.Call(nil)[0].Seq2()
}

func isSeq2Method(m reflect.Value) bool {
	if !m.IsValid() {
		return false
	}

	t := m.Type()
	return t.NumIn() == 0 && t.NumOut() == 1 && t.Out(0).CanSeq2()
}

// comparerOf returns the comparer exposed by src, or the zero comparer of
// cmpType when src has none.
func comparerOf(src reflect.Value, cmpType reflect.Type) reflect.Value {
	m := src.MethodByName("Comparer")
	if m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
		if cmp := m.Call(nil)[0]; cmp.Type().AssignableTo(cmpType) {
			return cmp
		}
	}

	return reflect.Zero(cmpType)
}
