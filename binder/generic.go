package binder

import (
	"dict-binder/dict"
	"dict-binder/options"
	"dict-binder/section"
	"reflect"
)

// Into binds sec into a dictionary of type T. source may be the zero value.
// The boolean result is false when T has a key type that cannot be bound,
// in which case the zero T is returned.
func Into[T any](b *Binder, source T, sec section.Section, opts options.Options) (T, bool, error) {
	var zero T

	d, err := b.describe(reflect.TypeFor[T](), opts)
	if err != nil {
		return zero, false, err
	}

	out, err := b.Bind(reflect.ValueOf(&source).Elem(), d, sec, opts)
	if err != nil || !out.IsValid() {
		return zero, false, err
	}

	return out.Interface().(T), true, nil
}

// BindMap binds sec into m, which is updated in place unless it is nil.
// A typed adapter for map[K]V is registered on first use.
func BindMap[K comparable, V any](b *Binder, m map[K]V, sec section.Section, opts options.Options) (map[K]V, bool, error) {
	b.cache.RegisterOnce(TypedMap[K, V]())
	return Into(b, m, sec, opts)
}

// BindDict binds sec into d, which is updated in place unless it is nil.
func BindDict[K comparable, V any](b *Binder, d *dict.Dict[K, V], sec section.Section, opts options.Options) (*dict.Dict[K, V], bool, error) {
	b.cache.RegisterOnce(TypedDict[K, V]())
	return Into(b, d, sec, opts)
}

// BindReadOnly binds sec into a fresh dictionary seeded with the entries and
// comparer of ro. ro itself is never modified.
func BindReadOnly[K comparable, V any](b *Binder, ro dict.ReadOnly[K, V], sec section.Section, opts options.Options) (dict.ReadOnly[K, V], bool, error) {
	b.cache.RegisterOnce(TypedDict[K, V]())
	return Into(b, ro, sec, opts)
}
