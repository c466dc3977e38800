package collections

import (
	"encoding/json"
	"fmt"
	"iter"
)

// Arrayable is implemented by values that can produce a plain ordered
// snapshot of themselves. Arrayable values nested in a Collection are
// converted by [Collection.ToArray] and treated as arrays by Flatten,
// MergeRecursive and JSON encoding.
type Arrayable interface {
	ToArray() []Entry
}

// Jsonable is implemented by values that encode themselves to JSON with
// [JSONFlag] options.
type Jsonable interface {
	ToJSON(flags ...JSONFlag) ([]byte, error)
}

// Countable reports a number of entries.
type Countable interface {
	Count() int
}

// IteratorAggregate produces a fresh iterator on every call.
type IteratorAggregate interface {
	Iter() iter.Seq2[Key, any]
}

// ArrayAccess is index-style access by key. Property-style access maps to
// the same four operations.
type ArrayAccess interface {
	// OffsetExists reports whether key is present.
	OffsetExists(key any) bool

	// OffsetGet returns the value at key, or nil.
	OffsetGet(key any) any

	// OffsetSet stores value at key; a nil key appends.
	OffsetSet(key, value any) error

	// OffsetUnset removes key; absent keys are ignored.
	OffsetUnset(key any)
}

// Enumerable is the interface satisfied by [Collection].
//
// Accept Enumerable in your own functions and interfaces so that consumers
// can substitute alternative implementations without depending on the
// concrete *Collection type.
type Enumerable interface {
	Arrayable
	ArrayAccess
	Countable
	IteratorAggregate
	Jsonable
	json.Marshaler
	json.Unmarshaler
	fmt.Stringer

	Add(item any) *Collection
	All() []Entry
	Checksum() (string, error)
	Chunk(size int) (*Collection, error)
	Combine(values any) (*Collection, error)
	Contains(value any) bool
	Diff(items any) *Collection
	Dot() *Collection
	Dump() *Collection
	Each(fn func(any, Key) bool) *Collection
	Except(keys ...any) *Collection
	Filter(fn func(any, Key) bool) *Collection
	First(fns ...func(any, Key) bool) (any, bool)
	FirstKey() (Key, bool)
	Flatten() *Collection
	Flip() (*Collection, error)
	Forget(keys ...any) *Collection
	Get(key any, def ...any) any
	Has(keys ...any) bool
	HasKey(key any) bool
	Intersect(items any) *Collection
	IntersectByKeys(items any) *Collection
	IsEmpty() bool
	IsNotEmpty() bool
	Join(glue string) string
	Keys() *Collection
	Last(fns ...func(any, Key) bool) (any, bool)
	LastKey() (Key, bool)
	Macro(name string, args ...any) (any, error)
	Map(fn func(any, Key) any) *Collection
	Merge(items any) *Collection
	MergeRecursive(items any) *Collection
	Only(keys ...any) *Collection
	Pipe(fn func(*Collection) any) any
	Pop() (any, bool)
	Prepend(value any, key ...any) *Collection
	Push(values ...any) *Collection
	Put(key, value any) *Collection
	Random(number int, preserveKeys bool) (any, error)
	Reduce(fn func(carry, value any, key Key) any, initial ...any) any
	Reject(fn func(any, Key) bool) *Collection
	Replace(items any) *Collection
	ReplaceRecursive(items any) *Collection
	Reverse() *Collection
	Search(value any, strict bool) (Key, bool)
	Shift() (any, bool)
	Shuffle() *Collection
	Skip(count int) *Collection
	Slice(offset int, length ...int) *Collection
	Take(limit int) *Collection
	Tap(fn func(*Collection)) *Collection
	ToMap() map[string]any
	ToSlice() []any
	Undot() *Collection
	Values() *Collection
}

var _ Enumerable = (*Collection)(nil)
