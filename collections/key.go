package collections

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Key identifies an entry in a [Collection]. It holds either an int or a
// string, never both, and is comparable so it can be used as a map key.
//
// Strings that spell a canonical decimal integer are normalised to int keys,
// so StringKey("5") == IntKey(5). "05", "+5", "5.0" and "-0" stay strings.
type Key struct {
	str   string
	num   int
	isInt bool
}

// IntKey returns an integer key.
func IntKey(n int) Key { return Key{num: n, isInt: true} }

// StringKey returns a string key, normalised to an integer key when s is a
// canonical decimal integer.
func StringKey(s string) Key {
	if n, ok := canonicalInt(s); ok {
		return IntKey(n)
	}
	return Key{str: s}
}

// KeyOf converts v to a Key.
//
//   - integer kinds become int keys
//   - strings go through [StringKey]
//   - bool becomes 0 or 1
//   - finite floats are truncated toward zero
//   - nil becomes the empty string key
//
// Any other type yields an error wrapping [ErrType].
func KeyOf(v any) (Key, error) {
	switch k := v.(type) {
	case Key:
		return k, nil
	case nil:
		return Key{}, nil
	case string:
		return StringKey(k), nil
	case int:
		return IntKey(k), nil
	case bool:
		if k {
			return IntKey(1), nil
		}
		return IntKey(0), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return StringKey(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntKey(int(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt {
			return Key{}, fmt.Errorf("%w: key %d overflows int", ErrType, u)
		}
		return IntKey(int(u)), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt || f <= math.MinInt {
			return Key{}, fmt.Errorf("%w: float %v cannot be used as a key", ErrType, f)
		}
		return IntKey(int(f)), nil
	case reflect.Bool:
		if rv.Bool() {
			return IntKey(1), nil
		}
		return IntKey(0), nil
	}
	return Key{}, fmt.Errorf("%w: %T cannot be used as a key", ErrType, v)
}

// mustKey is KeyOf for the fluent mutators. Like a Go map given an
// unhashable key, it panics.
func mustKey(v any) Key {
	k, err := KeyOf(v)
	if err != nil {
		panic(err)
	}
	return k
}

// strictKeyOf only accepts strings and integer kinds.
func strictKeyOf(v any) (Key, error) {
	if k, ok := v.(Key); ok {
		return k, nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KeyOf(v)
	}
	return Key{}, fmt.Errorf("%w: only string and integer values can be used as keys, got %T", ErrType, v)
}

// IsInt reports whether k is an integer key.
func (k Key) IsInt() bool { return k.isInt }

// Int returns the integer form of k; 0 for string keys.
func (k Key) Int() int { return k.num }

// String returns the key as a string. Integer keys are formatted in base 10.
func (k Key) String() string {
	if k.isInt {
		return strconv.Itoa(k.num)
	}
	return k.str
}

// Value returns the key as an int or a string.
func (k Key) Value() any {
	if k.isInt {
		return k.num
	}
	return k.str
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func canonicalInt(s string) (int, bool) {
	if s == "" || len(s) > 20 {
		return 0, false
	}
	digits := s
	if s[0] == '-' {
		digits = s[1:]
	}
	if digits == "" || (digits[0] == '0' && len(s) > 1) {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
