package primitive

import (
	"dict-binder/options"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// parser converts text into a value of the builtin type behind kind.
type parser func(raw string, kind KindEnum) (any, error)

// categoryOrder is the order in which enabled categories are tried.
var categoryOrder = []options.CategoryEnum{
	options.CategoryTextNumber,
	options.CategoryTextualBool,
	options.CategoryNumericBool,
	options.CategoryDatetime,
	options.CategoryTimestamp,
	options.CategoryDuration,
	options.CategoryNanoseconds,
	options.CategorySeconds,
}

var parsers map[options.CategoryEnum]map[KindEnum]parser

func init() {
	parsers = make(map[options.CategoryEnum]map[KindEnum]parser)

	// CategoryTextNumber: text -> number conversions
	parsers[options.CategoryTextNumber] = map[KindEnum]parser{}
	for numberKind := KindEnum(0); int(numberKind) < KindTotal; numberKind++ {
		if numberKind.IsNumber() {
			parsers[options.CategoryTextNumber][numberKind] = parseNumber
		}
	}

	// CategoryTextualBool: yes, no, on, off, true, false
	parsers[options.CategoryTextualBool] = map[KindEnum]parser{
		KindBool: func(raw string, _ KindEnum) (any, error) {
			switch strings.ToLower(strings.TrimSpace(raw)) {
			default:
				return nil, fmt.Errorf("only strings true/false, yes/no, on/off are allowed for bool, got: %s", raw)
			case "true", "yes", "on":
				return true, nil
			case "false", "no", "off":
				return false, nil
			}
		},
	}

	// CategoryNumericBool: 0, 1 - valid, other numbers is error
	parsers[options.CategoryNumericBool] = map[KindEnum]parser{
		KindBool: func(raw string, _ KindEnum) (any, error) {
			switch strings.TrimSpace(raw) {
			default:
				return nil, fmt.Errorf("only numbers 0 and 1 are allowed for bool, got: %s", raw)
			case "1":
				return true, nil
			case "0":
				return false, nil
			}
		},
	}

	// CategoryDatetime: string(RFC3339Nano) -> time.Time
	parsers[options.CategoryDatetime] = map[KindEnum]parser{
		KindTime: func(raw string, _ KindEnum) (any, error) {
			return time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
		},
	}

	// CategoryTimestamp: string(Unix seconds) -> time.Time
	parsers[options.CategoryTimestamp] = map[KindEnum]parser{
		KindTime: func(raw string, _ KindEnum) (any, error) {
			sec, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, err
			}

			return time.Unix(sec, 0), nil
		},
	}

	// CategoryDuration: string(2h45m) -> time.Duration
	parsers[options.CategoryDuration] = map[KindEnum]parser{
		KindDuration: func(raw string, _ KindEnum) (any, error) {
			return time.ParseDuration(strings.TrimSpace(raw))
		},
	}

	// CategoryNanoseconds: string(integer nanoseconds) -> time.Duration
	parsers[options.CategoryNanoseconds] = map[KindEnum]parser{
		KindDuration: func(raw string, _ KindEnum) (any, error) {
			ns, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, err
			}

			return time.Duration(ns), nil
		},
	}

	// CategorySeconds: string(float seconds) -> time.Duration
	parsers[options.CategorySeconds] = map[KindEnum]parser{
		KindDuration: func(raw string, _ KindEnum) (any, error) {
			sec, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, err
			}

			if math.IsNaN(sec) || math.IsInf(sec, 0) || math.Abs(sec) > math.MaxInt64/float64(time.Second) {
				return nil, fmt.Errorf("%s seconds is out of time.Duration range", raw)
			}

			return time.Duration(sec * float64(time.Second)), nil
		},
	}
}

func parseNumber(raw string, kind KindEnum) (any, error) {
	text := strings.TrimSpace(raw)

	switch {
	case kind.IsSigned():
		n, err := strconv.ParseInt(text, 10, kind.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(builtin[kind]).Interface(), nil
	case kind.IsUnsigned():
		n, err := strconv.ParseUint(text, 10, kind.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(builtin[kind]).Interface(), nil
	default:
		f, err := strconv.ParseFloat(text, kind.Bits())
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(f).Convert(builtin[kind]).Interface(), nil
	}
}

// builtin maps number kinds to their unnamed Go types.
var builtin = map[KindEnum]reflect.Type{
	KindInt:     reflect.TypeOf(int(0)),
	KindInt8:    reflect.TypeOf(int8(0)),
	KindInt16:   reflect.TypeOf(int16(0)),
	KindInt32:   reflect.TypeOf(int32(0)),
	KindInt64:   reflect.TypeOf(int64(0)),
	KindUint:    reflect.TypeOf(uint(0)),
	KindUint8:   reflect.TypeOf(uint8(0)),
	KindUint16:  reflect.TypeOf(uint16(0)),
	KindUint32:  reflect.TypeOf(uint32(0)),
	KindUint64:  reflect.TypeOf(uint64(0)),
	KindFloat32: reflect.TypeOf(float32(0)),
	KindFloat64: reflect.TypeOf(float64(0)),
}

// Allowed reports whether any enabled category converts text into kind.
func Allowed(kind KindEnum, allowed options.CategoryEnum) bool {
	if kind == KindString {
		return true
	}

	for _, category := range categoryOrder {
		if allowed&category == 0 {
			continue
		}

		if _, ok := parsers[category][kind]; ok {
			return true
		}
	}

	return false
}
