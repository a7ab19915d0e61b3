package main

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
)

// typeNames are the key and value types selectable from the command line.
var typeNames = map[string]reflect.Type{
	"string":   reflect.TypeFor[string](),
	"int":      reflect.TypeFor[int](),
	"int8":     reflect.TypeFor[int8](),
	"int16":    reflect.TypeFor[int16](),
	"int32":    reflect.TypeFor[int32](),
	"int64":    reflect.TypeFor[int64](),
	"uint":     reflect.TypeFor[uint](),
	"uint8":    reflect.TypeFor[uint8](),
	"uint16":   reflect.TypeFor[uint16](),
	"uint32":   reflect.TypeFor[uint32](),
	"uint64":   reflect.TypeFor[uint64](),
	"float64":  reflect.TypeFor[float64](),
	"bool":     reflect.TypeFor[bool](),
	"duration": reflect.TypeFor[time.Duration](),
	"time":     reflect.TypeFor[time.Time](),
	"any":      reflect.TypeFor[any](),
}

func lookupType(name string) (reflect.Type, error) {
	if t, ok := typeNames[strings.ToLower(name)]; ok {
		return t, nil
	}

	names := make([]string, 0, len(typeNames))
	for n := range typeNames {
		names = append(names, n)
	}
	slices.Sort(names)

	return nil, fmt.Errorf("unknown type %q, expected one of %s", name, strings.Join(names, ", "))
}
