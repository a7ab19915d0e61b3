package binder

import (
	"dict-binder/options"
	"dict-binder/primitive"
	"dict-binder/section"
	"fmt"
	"reflect"
)

// ValueBinder binds a single child section into a BindingPoint. Leaving the
// point unset keeps the entry unchanged.
type ValueBinder interface {
	BindValue(p *BindingPoint, typ reflect.Type, sec section.Section, opts options.Options) error
}

// ValueBinderFunc adapts a function to ValueBinder.
type ValueBinderFunc func(p *BindingPoint, typ reflect.Type, sec section.Section, opts options.Options) error

func (f ValueBinderFunc) BindValue(p *BindingPoint, typ reflect.Type, sec section.Section, opts options.Options) error {
	return f(p, typ, sec, opts)
}

var anyMapType = reflect.TypeFor[map[string]any]()

// BindValue is the default value binder. Sections without a value and
// without children leave the point unchanged. Dictionary types are bound
// recursively on top of the current value when the section has children.
// Pointers are freshly allocated, untyped values become strings or
// map[string]any, and everything else is parsed as a scalar.
func (b *Binder) BindValue(p *BindingPoint, typ reflect.Type, sec section.Section, opts options.Options) error {
	raw, hasValue := sec.Value()
	nested := len(sec.Children()) > 0
	if !hasValue && !nested {
		return nil
	}

	if d, err := b.describe(typ, opts); err == nil {
		if !nested {
			return nil
		}

		current, _ := p.Current()
		return b.bindNested(p, current, d, sec, opts)
	}

	switch {
	case typ.Kind() == reflect.Interface && typ.NumMethod() == 0:
		if !nested {
			p.Set(reflect.ValueOf(raw).Convert(typ))
			return nil
		}

		current, _ := p.Current()
		d, err := b.describe(anyMapType, opts)
		if err != nil {
			return err
		}

		return b.bindNested(p, current, d, sec, opts)

	case typ.Kind() == reflect.Pointer:
		return b.bindPointer(p, typ, sec, opts)

	case primitive.IsScalar(typ):
		if !hasValue {
			return nil
		}

		v, err := primitive.Parse(raw, typ, opts.Conversions())
		if err != nil {
			return err
		}

		p.Set(v)

		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, typ)
	}
}

func (b *Binder) bindNested(p *BindingPoint, current reflect.Value, d *Descriptor, sec section.Section, opts options.Options) error {
	if current.IsValid() && current.Kind() == reflect.Interface {
		current = current.Elem()
	}

	// values of another dynamic type are replaced, not merged
	if present(current) && !current.Type().AssignableTo(d.Type) {
		current = reflect.Value{}
	}

	out, err := b.bind(current, d, sec, opts, p.frame)
	if err != nil {
		return err
	}

	if out.IsValid() {
		p.Set(out)
	}

	return nil
}

// bindPointer binds the pointee and stores it behind a new pointer. A
// dictionary pointee is shared with the old pointer and is copied first when
// p is shared.
func (b *Binder) bindPointer(p *BindingPoint, typ reflect.Type, sec section.Section, opts options.Options) error {
	inner := newBindingPoint(func() (reflect.Value, bool) {
		current, ok := p.Current()
		if !ok || current.IsNil() {
			return reflect.Value{}, false
		}

		return current.Elem(), true
	}, p.frame)

	if err := b.values.BindValue(inner, typ.Elem(), sec, opts); err != nil {
		return err
	}

	v, ok := inner.Value()
	if !ok {
		return nil
	}

	ptr := reflect.New(typ.Elem())
	ptr.Elem().Set(v)
	p.Set(ptr)

	return nil
}
