package collections

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ─────────────────────────────────────────────────────────────────────────────
// Array values
// ─────────────────────────────────────────────────────────────────────────────

// arrayOf reports whether v is an array value and returns it as a Collection.
// A *Collection is returned as-is, so callers must not mutate the result.
// []byte is a scalar.
func arrayOf(v any) (*Collection, bool) {
	switch a := v.(type) {
	case nil:
		return nil, false
	case *Collection:
		if a == nil {
			return nil, false
		}
		return a, true
	case Arrayable, []Entry, []any, map[string]any:
		return From(a), true
	case []byte:
		return nil, false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return From(v), true
	}
	return nil, false
}

// ─────────────────────────────────────────────────────────────────────────────
// Truthiness
// ─────────────────────────────────────────────────────────────────────────────

// truthy follows the usual scripting rules: nil, false, zero numbers, "",
// "0" and empty arrays are false; everything else is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	}
	if a, ok := arrayOf(v); ok {
		return a.IsNotEmpty()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.String:
		s := rv.String()
		return s != "" && s != "0"
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Equality
// ─────────────────────────────────────────────────────────────────────────────

// StrictEqual reports whether a and b have the same dynamic type and value.
// Array values are equal when they hold the same keys in the same order with
// strictly equal values.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if ca, ok := a.(*Collection); ok {
		cb := b.(*Collection)
		if ca == nil || cb == nil || ca == cb {
			return ca == cb
		}
		if ca.Count() != cb.Count() {
			return false
		}
		ea, eb := ca.All(), cb.All()
		for i := range ea {
			if ea[i].Key != eb[i].Key || !StrictEqual(ea[i].Value, eb[i].Value) {
				return false
			}
		}
		return true
	}
	// A comparable type can still hold an uncomparable value in an
	// interface field, so the check is made on the values.
	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// LooseEqual compares a and b with coercion:
//
//   - nil equals "", false, 0 and empty arrays
//   - a bool compares against the truthiness of the other side
//   - numbers and numeric strings compare numerically
//   - a number and a non-numeric string compare as strings
//   - arrays are equal when they hold the same keys with loosely equal values
func LooseEqual(a, b any) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil:
		return looseNil(b)
	case b == nil:
		return looseNil(a)
	}

	if ba, ok := a.(bool); ok {
		return ba == truthy(b)
	}
	if bb, ok := b.(bool); ok {
		return bb == truthy(a)
	}

	arrA, aIsArr := arrayOf(a)
	arrB, bIsArr := arrayOf(b)
	if aIsArr || bIsArr {
		if !aIsArr || !bIsArr || arrA.Count() != arrB.Count() {
			return false
		}
		if arrA == arrB {
			return true
		}
		for k, v := range arrA.Iter() {
			other, ok := arrB.lookup(k)
			if !ok || !LooseEqual(v, other) {
				return false
			}
		}
		return true
	}

	fa, aNum := number(a)
	fb, bNum := number(b)
	sa, aStr := a.(string)
	sb, bStr := b.(string)
	switch {
	case aNum && bNum:
		if ia, ok := a.(int); ok {
			if ib, ok := b.(int); ok {
				return ia == ib
			}
		}
		return fa == fb
	case aNum && bStr:
		if fs, ok := numericString(sb); ok {
			return fa == fs
		}
		return stringify(a) == sb
	case aStr && bNum:
		if fs, ok := numericString(sa); ok {
			return fs == fb
		}
		return sa == stringify(b)
	case aStr && bStr:
		fa, aok := numericString(sa)
		fb, bok := numericString(sb)
		if aok && bok {
			return fa == fb
		}
		return sa == sb
	}
	return StrictEqual(a, b)
}

func looseNil(v any) bool {
	if s, ok := v.(string); ok {
		return s == ""
	}
	return !truthy(v)
}

func number(v any) (float64, bool) {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(v)
		return f, err == nil
	}
	return 0, false
}

// numericString parses decimal and exponent notation with optional
// surrounding whitespace. Hex, "inf", "nan" and underscores are rejected.
func numericString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	digits := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E':
		default:
			return 0, false
		}
	}
	if !digits {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ─────────────────────────────────────────────────────────────────────────────
// String conversion
// ─────────────────────────────────────────────────────────────────────────────

// stringify converts v the way Join does: nil → "", true → "1",
// false → "", floats in their shortest form, arrays as compact JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "1"
		}
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	if a, ok := arrayOf(v); ok {
		b, err := a.ToJSON(UnescapedSlashes | UnescapedUnicode)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
