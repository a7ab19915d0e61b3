package primitive

import (
	"dict-binder/options"
	"encoding"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotAllowed is returned when no enabled category converts text into the target type.
	ErrNotAllowed = errors.New("conversion is not allowed")
	// ErrUnsupportedType is returned for targets that have no textual representation.
	ErrUnsupportedType = errors.New("type has no textual representation")
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// IsScalar reports whether t can be produced from a single configuration value.
func IsScalar(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return FromReflectType(t) != 0 || FromReflectKind(t.Kind()) != 0 ||
		reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// Parse converts raw into a value of type t using the enabled categories.
// Named types are produced by converting the parsed builtin value.
func Parse(raw string, t reflect.Type, allowed options.CategoryEnum) (reflect.Value, error) {
	kind := FromReflectType(t)

	if kind == KindPrimitiveEnum && IsEnum(t) {
		if !allowed.Has(options.CategoryEnumString) {
			return reflect.Value{}, fmt.Errorf("%w: string -> %s", ErrNotAllowed, t)
		}

		return ParseEnum(raw, t)
	}

	if kind == 0 || kind == KindPrimitiveEnum {
		if reflect.PointerTo(t).Implements(textUnmarshalerType) {
			return unmarshalText(raw, t, allowed)
		}

		kind = FromReflectKind(t.Kind())
	}

	switch kind {
	case 0:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	case KindString:
		return reflect.ValueOf(raw).Convert(t), nil
	}

	var lastErr error
	for _, category := range categoryOrder {
		if allowed&category == 0 {
			continue
		}

		parse, ok := parsers[category][kind]
		if !ok {
			continue
		}

		v, err := parse(raw, kind)
		if err == nil {
			return reflect.ValueOf(v).Convert(t), nil
		}

		lastErr = err
	}

	if lastErr != nil {
		return reflect.Value{}, fmt.Errorf("cannot convert %q to %s: %w", raw, t, lastErr)
	}

	return reflect.Value{}, fmt.Errorf("%w: string -> %s", ErrNotAllowed, t)
}

func unmarshalText(raw string, t reflect.Type, allowed options.CategoryEnum) (reflect.Value, error) {
	if !allowed.Has(options.CategoryTextMarshaler) {
		return reflect.Value{}, fmt.Errorf("%w: string -> %s", ErrNotAllowed, t)
	}

	ptr := reflect.New(t)
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
		return reflect.Value{}, fmt.Errorf("cannot convert %q to %s: %w", raw, t, err)
	}

	return ptr.Elem(), nil
}
