package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ErrUnknownEnumMember is returned when text names no member of an enumeration.
var ErrUnknownEnumMember = errors.New("unknown enum member")

var stringerType = reflect.TypeFor[fmt.Stringer]()

// enumMembers caches member lists per enumeration type.
var enumMembers sync.Map // reflect.Type -> []Member

// Member is one value of an enumeration together with its name.
type Member struct {
	Name  string
	Value reflect.Value
}

// IsEnum reports whether t is an enumeration: a named integer or string type
// whose values implement fmt.Stringer and which declares a value method
// Values() returning every member as a []T.
func IsEnum(t reflect.Type) bool {
	if t == nil || t.Name() == "" || FromReflectType(t) != KindPrimitiveEnum {
		return false
	}

	if !t.Implements(stringerType) {
		return false
	}

	m, ok := t.MethodByName("Values")
	if !ok {
		return false
	}

	return m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && m.Type.Out(0) == reflect.SliceOf(t)
}

// EnumMembers returns the members of the enumeration t in declaration order.
func EnumMembers(t reflect.Type) ([]Member, bool) {
	if cached, ok := enumMembers.Load(t); ok {
		return cached.([]Member), true
	}

	if !IsEnum(t) {
		return nil, false
	}

	values := reflect.Zero(t).MethodByName("Values").Call(nil)[0]
	members := make([]Member, values.Len())
	for i := range members {
		v := values.Index(i)
		members[i] = Member{
			Name:  v.Interface().(fmt.Stringer).String(),
			Value: v,
		}
	}

	actual, _ := enumMembers.LoadOrStore(t, members)

	return actual.([]Member), true
}

// ParseEnum converts text into a member of the enumeration t. The text is
// matched case-insensitively against member names first, then against the
// members' underlying values (decimal for integer enums).
func ParseEnum(raw string, t reflect.Type) (reflect.Value, error) {
	members, ok := EnumMembers(t)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%s is not an enum type", t)
	}

	text := strings.TrimSpace(raw)
	for _, m := range members {
		if strings.EqualFold(m.Name, text) {
			return m.Value, nil
		}
	}

	for _, m := range members {
		if underlyingEquals(m.Value, text) {
			return m.Value, nil
		}
	}

	return reflect.Value{}, fmt.Errorf("%w: %q is not a member of %s", ErrUnknownEnumMember, raw, t)
}

func underlyingEquals(v reflect.Value, text string) bool {
	switch k := FromReflectKind(v.Kind()); {
	case k == KindString:
		return strings.EqualFold(v.String(), text)
	case k.IsSigned():
		n, err := strconv.ParseInt(text, 10, 64)
		return err == nil && n == v.Int()
	case k.IsUnsigned():
		n, err := strconv.ParseUint(text, 10, 64)
		return err == nil && n == v.Uint()
	default:
		return false
	}
}
