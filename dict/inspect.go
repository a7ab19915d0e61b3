package dict

import "reflect"

var dictMarker = reflect.TypeFor[interface{ isDict() }]()

// Inspect reports the key and value types when t is *Dict[K, V].
func Inspect(t reflect.Type) (key, value reflect.Type, ok bool) {
	if t == nil || t.Kind() != reflect.Pointer || !t.Implements(dictMarker) {
		return nil, nil, false
	}

	get, ok := t.MethodByName("Get")
	if !ok {
		return nil, nil, false
	}

	// method expression type: receiver, key -> value, found
	return get.Type.In(1), get.Type.Out(0), true
}

// Interface reports whether t is an interface type that *Dict[K, V]
// satisfies and that exposes Clone, returning the concrete dictionary type.
func Interface(t reflect.Type) (concrete reflect.Type, ok bool) {
	if t == nil || t.Kind() != reflect.Interface {
		return nil, false
	}

	clone, ok := t.MethodByName("Clone")
	if !ok || clone.Type.NumIn() != 0 || clone.Type.NumOut() != 1 {
		return nil, false
	}

	concrete = clone.Type.Out(0)
	if _, _, ok := Inspect(concrete); !ok || !concrete.Implements(t) {
		return nil, false
	}

	return concrete, true
}
