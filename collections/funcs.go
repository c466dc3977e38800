package collections

import (
	"cmp"
	"fmt"
	"slices"
)

// This file contains typed, package-level helpers. Go generics do not allow
// methods to introduce their own type parameters, so conversions between a
// Collection and typed Go values live here:
//
//	c := collections.FromSlice([]int{1, 2, 3})
//	doubled, _ := collections.ValuesOf[int](c.Map(func(v any, _ collections.Key) any {
//	    return v.(int) * 2
//	})) // → []int{2, 4, 6}

// Collect creates a Collection. It is the short form of the constructors:
// no argument yields an empty collection, one argument goes through [From]
// and several arguments become a list.
//
//	collections.Collect()                           // []
//	collections.Collect(map[string]any{"a": 1})     // {"a": 1}
//	collections.Collect(1, 2, 3)                    // [1, 2, 3]
func Collect(items ...any) *Collection {
	switch len(items) {
	case 0:
		return Empty()
	case 1:
		return From(items[0])
	}
	return New(items...)
}

// FromSlice creates a list Collection from a typed slice.
func FromSlice[T any](items []T) *Collection {
	c := newCollection(len(items))
	for _, item := range items {
		c.append(item)
	}
	return c
}

// FromMap creates a Collection from a typed map. Go maps are unordered, so
// entries are added in ascending key order.
func FromMap[K cmp.Ordered, V any](m map[K]V) *Collection {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	c := newCollection(len(keys))
	for _, k := range keys {
		c.set(mustKey(k), m[k])
	}
	return c
}

// ValuesOf returns the values of c as a []T. Returns an error wrapping
// [ErrType] if any value is not a T.
func ValuesOf[T any](c *Collection) ([]T, error) {
	out := make([]T, 0, c.Count())
	for k, v := range c.Iter() {
		t, ok := v.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("%w: value at %s is %T, not %T", ErrType, k, v, zero)
		}
		out = append(out, t)
	}
	return out, nil
}

// KeysOf returns the keys of c in order.
func KeysOf(c *Collection) []Key {
	out := make([]Key, 0, c.Count())
	for k := range c.Iter() {
		out = append(out, k)
	}
	return out
}
