package binder

import (
	"dict-binder/options"
	"dict-binder/primitive"
	"reflect"
)

//go:generate go tool stringer -type=KeyClass -output=keyclass_string.go

// KeyClass is the classification of a dictionary key type.
type KeyClass int

const (
	KeyUnsupported KeyClass = iota
	KeyString
	KeyEnum
	KeyInteger
)

// Classify reports how configuration keys are converted into keyType.
// Only strings, enumerations and the fixed-width integer types are
// supported; int, uint and uintptr are left out because their width
// depends on the platform.
func Classify(keyType reflect.Type) KeyClass {
	if keyType == nil {
		return KeyUnsupported
	}

	if primitive.IsEnum(keyType) {
		return KeyEnum
	}

	kind := primitive.FromReflectType(keyType)
	switch {
	case kind == primitive.KindString:
		return KeyString
	case kind == primitive.KindPrimitiveEnum && keyType.Kind() == reflect.String:
		return KeyString
	case kind.IsFixedWidth():
		return KeyInteger
	default:
		return KeyUnsupported
	}
}

// convertKey converts the text of a section key into a key value.
func convertKey(class KeyClass, keyType reflect.Type, raw string) (reflect.Value, error) {
	switch class {
	case KeyString:
		return reflect.ValueOf(raw).Convert(keyType), nil
	case KeyEnum:
		return primitive.ParseEnum(raw, keyType)
	default:
		return primitive.Parse(raw, keyType, options.CategoryTextNumber)
	}
}
