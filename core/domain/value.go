package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Value is a single typed property value. It is a tagged variant over the
// primitive shapes a cell can hold: bool, float64, string, []string and
// []float64. The zero Value is "none", which models a missing or cleared
// cell. None is distinct from zero and false.
type Value struct {
	ok    bool
	value any
}

type ValueType int

const (
	ValueTypeNone ValueType = iota
	ValueTypeBool
	ValueTypeFloat
	ValueTypeString
	ValueTypeStringList
	ValueTypeFloatList
)

var ErrInvalidValue = fmt.Errorf("invalid value")

func None() Value {
	return Value{}
}

func Bool(v bool) Value {
	return Value{ok: true, value: v}
}

func Float64(v float64) Value {
	return Value{ok: true, value: v}
}

func Int64(v int64) Value {
	return Value{ok: true, value: float64(v)}
}

func String(v string) Value {
	return Value{ok: true, value: v}
}

func StringList(v []string) Value {
	return Value{ok: true, value: v}
}

func FloatList(v []float64) Value {
	return Value{ok: true, value: v}
}

// SomeValue wraps a raw dynamic value. Integers are normalized to float64 so
// that numbers always compare uniformly. Unsupported shapes produce none.
func SomeValue(value any) Value {
	switch v := value.(type) {
	case nil:
		return None()
	case bool, string, float64, []string, []float64:
		return Value{ok: true, value: v}
	case int:
		return Float64(float64(v))
	case int64:
		return Float64(float64(v))
	case []any:
		list := make([]string, 0, len(v))
		for _, el := range v {
			s, isStr := el.(string)
			if !isStr {
				return None()
			}
			list = append(list, s)
		}
		return StringList(list)
	default:
		return None()
	}
}

func (v Value) Ok() bool {
	return v.ok
}

func (v Value) Type() ValueType {
	if !v.ok {
		return ValueTypeNone
	}
	switch v.value.(type) {
	case bool:
		return ValueTypeBool
	case float64:
		return ValueTypeFloat
	case string:
		return ValueTypeString
	case []string:
		return ValueTypeStringList
	case []float64:
		return ValueTypeFloatList
	default:
		return ValueTypeNone
	}
}

func (v Value) Validate() error {
	if !v.ok {
		return nil
	}
	switch v.value.(type) {
	case bool, string, float64, []string, []float64:
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, v.value)
	}
}

func (v Value) Bool() (bool, bool) {
	if !v.ok {
		return false, false
	}
	b, ok := v.value.(bool)
	return b, ok
}

func (v Value) BoolOrDefault(def bool) bool {
	res, ok := v.Bool()
	if !ok {
		return def
	}
	return res
}

func (v Value) String() (string, bool) {
	if !v.ok {
		return "", false
	}
	s, ok := v.value.(string)
	return s, ok
}

func (v Value) StringOrDefault(def string) string {
	res, ok := v.String()
	if !ok {
		return def
	}
	return res
}

func (v Value) Float() (float64, bool) {
	if !v.ok {
		return 0, false
	}
	f, ok := v.value.(float64)
	return f, ok
}

func (v Value) FloatOrDefault(def float64) float64 {
	res, ok := v.Float()
	if !ok {
		return def
	}
	return res
}

func (v Value) StringList() ([]string, bool) {
	if !v.ok {
		return nil, false
	}
	l, ok := v.value.([]string)
	return l, ok
}

func (v Value) StringListOrDefault(def []string) []string {
	res, ok := v.StringList()
	if !ok {
		return def
	}
	return res
}

func (v Value) FloatList() ([]float64, bool) {
	if !v.ok {
		return nil, false
	}
	l, ok := v.value.([]float64)
	return l, ok
}

// CoerceFloat converts the value to a number the way filters and formulas
// need it: floats pass through, numeric strings parse. Everything else is
// not coercible.
func (v Value) CoerceFloat() (float64, bool) {
	if !v.ok {
		return 0, false
	}
	switch val := v.value.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// WrapToList exposes any value as a list: lists pass through, scalars become
// a single-element list. Used by the membership operators.
func (v Value) WrapToList() []Value {
	if !v.ok {
		return nil
	}
	switch val := v.value.(type) {
	case []string:
		res := make([]Value, 0, len(val))
		for _, s := range val {
			res = append(res, String(s))
		}
		return res
	case []float64:
		res := make([]Value, 0, len(val))
		for _, f := range val {
			res = append(res, Float64(f))
		}
		return res
	default:
		return []Value{v}
	}
}

// IsEmpty reports whether the value reads as an empty cell: none, an empty
// string or an empty list. Zero and false are NOT empty.
func (v Value) IsEmpty() bool {
	if !v.ok {
		return true
	}
	switch val := v.value.(type) {
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []float64:
		return len(val) == 0
	default:
		return false
	}
}

// Compare orders values by type rank first, then within the type. None sorts
// before everything so that callers can place it explicitly.
func (v Value) Compare(other Value) int {
	if !v.ok && other.ok {
		return -1
	}
	if v.ok && !other.ok {
		return 1
	}
	if !v.ok {
		return 0
	}

	if v.Type() < other.Type() {
		return -1
	}
	if v.Type() > other.Type() {
		return 1
	}

	switch val := v.value.(type) {
	case bool:
		otherVal, _ := other.Bool()
		if !val && otherVal {
			return -1
		}
		if val && !otherVal {
			return 1
		}
		return 0
	case float64:
		otherVal, _ := other.Float()
		if val < otherVal {
			return -1
		}
		if val > otherVal {
			return 1
		}
		return 0
	case string:
		otherVal, _ := other.String()
		return strings.Compare(val, otherVal)
	case []string:
		otherVal, _ := other.StringList()
		return slices.Compare(val, otherVal)
	case []float64:
		otherVal, _ := other.FloatList()
		return slices.Compare(val, otherVal)
	}
	return 0
}

func (v Value) Equal(other Value) bool {
	if v.ok != other.ok {
		return false
	}
	if !v.ok {
		return true
	}
	return v.Type() == other.Type() && v.Compare(other) == 0
}

// Match dispatches on the dynamic type. The none case runs when the value is
// absent, so every consumer handles the full variant set.
func (v Value) Match(
	noneCase func(),
	boolCase func(v bool),
	floatCase func(v float64),
	stringCase func(v string),
	stringListCase func(v []string),
	floatListCase func(v []float64),
) {
	if !v.ok {
		if noneCase != nil {
			noneCase()
		}
		return
	}
	switch val := v.value.(type) {
	case bool:
		boolCase(val)
	case float64:
		floatCase(val)
	case string:
		stringCase(val)
	case []string:
		stringListCase(val)
	case []float64:
		floatListCase(val)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = SomeValue(raw)
	return nil
}

// Raw returns the underlying dynamic value, nil for none. Meant for display
// and serialization code only.
func (v Value) Raw() any {
	if !v.ok {
		return nil
	}
	return v.value
}
