package collections

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection is an ordered key/value container with a fluent API.
//
// Keys are ints or strings (see [Key]); values may be anything, including
// nested collections. Iteration order is insertion order.
//
// # Mutation
//
// Add, Push, Put, Prepend, Pop, Shift, Forget, OffsetSet and OffsetUnset
// change the receiver in place and return it. Every other method returns a
// *new* Collection and leaves the receiver untouched; results never share a
// backing store with the receiver.
//
//	c := collections.New(1, 2, 3)
//	c.Push(4)                                          // c is now [1 2 3 4]
//	evens := c.Filter(func(v any, _ collections.Key) bool {
//	    return v.(int)%2 == 0
//	})                                                 // c is unchanged
//
// # Concurrency
//
// A Collection is a single-owner value. Concurrent reads are fine; a mutating
// call racing with any other call must be serialised by the caller.
//
// # Laravel equivalents
//
// Method names follow Laravel's Collection. Differences:
//   - Callbacks receive (value, key) and keys are [Key] values.
//   - "Not found" is reported with a bool (comma-ok) instead of null/false.
//   - Fallible operations (Chunk, Flip, Combine, Random, ToJSON) return an error.
type Collection struct {
	store *orderedmap.OrderedMap[Key, any]
	// nextIndex is the key the next appended value receives.
	nextIndex int
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

func newCollection(capacity int) *Collection {
	return &Collection{store: orderedmap.New[Key, any](capacity)}
}

// New creates a list Collection keyed 0..len(values)-1.
func New(values ...any) *Collection {
	c := newCollection(len(values))
	for _, v := range values {
		c.append(v)
	}
	return c
}

// Empty creates an empty Collection.
func Empty() *Collection { return newCollection(0) }

// Of creates a Collection from explicit ordered pairs. A repeated key keeps
// its first position and takes the last value.
func Of(pairs ...Entry) *Collection {
	c := newCollection(len(pairs))
	for _, p := range pairs {
		c.set(p.Key, p.Value)
	}
	return c
}

// From creates a Collection from an arbitrary source:
//
//   - nil → empty collection
//   - *Collection → shallow copy
//   - [Arrayable], []Entry → the given pairs
//   - []any and other slices/arrays → list
//   - maps → entries ordered by key (ints ascending, then strings)
//   - iter.Seq2[Key, any] → the yielded pairs
//   - anything else → a one-element list
func From(items any) *Collection {
	switch src := items.(type) {
	case nil:
		return Empty()
	case *Collection:
		if src == nil {
			return Empty()
		}
		return src.clone()
	case Arrayable:
		return Of(src.ToArray()...)
	case []Entry:
		return Of(src...)
	case []any:
		return New(src...)
	case iter.Seq2[Key, any]:
		c := Empty()
		for k, v := range src {
			c.set(k, v)
		}
		return c
	case []byte:
		return New(src)
	}

	rv := reflect.ValueOf(items)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		c := newCollection(rv.Len())
		for i := 0; i < rv.Len(); i++ {
			c.append(rv.Index(i).Interface())
		}
		return c
	case reflect.Map:
		pairs := make([]Entry, 0, rv.Len())
		mi := rv.MapRange()
		for mi.Next() {
			k, err := KeyOf(mi.Key().Interface())
			if err != nil {
				k = StringKey(fmt.Sprint(mi.Key().Interface()))
			}
			pairs = append(pairs, Entry{Key: k, Value: mi.Value().Interface()})
		}
		slices.SortStableFunc(pairs, func(a, b Entry) int { return compareKeys(a.Key, b.Key) })
		return Of(pairs...)
	}
	return New(items)
}

func compareKeys(a, b Key) int {
	switch {
	case a.isInt && b.isInt:
		return cmp.Compare(a.num, b.num)
	case a.isInt:
		return -1
	case b.isInt:
		return 1
	}
	return strings.Compare(a.str, b.str)
}

// clone returns a shallow copy with its own store.
func (c *Collection) clone() *Collection {
	out := newCollection(c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		out.store.Set(p.Key, p.Value)
	}
	if c != nil {
		out.nextIndex = c.nextIndex
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Store helpers
// ─────────────────────────────────────────────────────────────────────────────

func (c *Collection) ensure() {
	if c.store == nil {
		c.store = orderedmap.New[Key, any]()
	}
}

func (c *Collection) oldest() *orderedmap.Pair[Key, any] {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Oldest()
}

func (c *Collection) newest() *orderedmap.Pair[Key, any] {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Newest()
}

func (c *Collection) lookup(k Key) (any, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	return c.store.Get(k)
}

func (c *Collection) set(k Key, v any) {
	c.ensure()
	c.store.Set(k, v)
	if k.isInt && k.num >= c.nextIndex {
		c.nextIndex = k.num + 1
	}
}

func (c *Collection) append(v any) {
	c.set(IntKey(c.nextIndex), v)
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// All returns a shallow snapshot of every entry in order.
func (c *Collection) All() []Entry {
	out := make([]Entry, 0, c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		out = append(out, Entry{Key: p.Key, Value: p.Value})
	}
	return out
}

// ToArray returns a deep snapshot: nested [Arrayable] values (including
// collections) are converted to []Entry. Nested collections deeper than the
// encoder's nesting limit, such as a collection holding itself, are kept
// as-is.
func (c *Collection) ToArray() []Entry {
	return c.toArray(0)
}

func (c *Collection) toArray(depth int) []Entry {
	out := make([]Entry, 0, c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		v := p.Value
		switch a := v.(type) {
		case *Collection:
			if a != nil && depth+1 < maxDepth {
				v = a.toArray(depth + 1)
			}
		case Arrayable:
			if !isNilPointer(a) {
				v = a.ToArray()
			}
		}
		out = append(out, Entry{Key: p.Key, Value: v})
	}
	return out
}

// ToSlice returns the values in order, dropping the keys.
func (c *Collection) ToSlice() []any {
	out := make([]any, 0, c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}
	return out
}

// ToMap returns the entries as a Go map keyed by [Key.String].
// The order is lost.
func (c *Collection) ToMap() map[string]any {
	out := make(map[string]any, c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		out[p.Key.String()] = p.Value
	}
	return out
}

// Count returns the number of entries.
func (c *Collection) Count() int {
	if c == nil || c.store == nil {
		return 0
	}
	return c.store.Len()
}

// IsEmpty reports whether the collection has no entries.
func (c *Collection) IsEmpty() bool { return c.Count() == 0 }

// IsNotEmpty reports whether the collection has at least one entry.
func (c *Collection) IsNotEmpty() bool { return c.Count() > 0 }

// Get returns the value stored at key, or def[0] (nil when omitted) if the
// key is absent. A default of type func() any is called lazily.
func (c *Collection) Get(key any, def ...any) any {
	if k, err := KeyOf(key); err == nil {
		if v, ok := c.lookup(k); ok {
			return v
		}
	}
	if len(def) == 0 {
		return nil
	}
	if fn, ok := def[0].(func() any); ok {
		return fn()
	}
	return def[0]
}

// Has reports whether every given key is present. It returns false when no
// key is given.
func (c *Collection) Has(keys ...any) bool {
	if len(keys) == 0 {
		return false
	}
	for _, key := range keys {
		if !c.HasKey(key) {
			return false
		}
	}
	return true
}

// HasKey reports whether key is present.
func (c *Collection) HasKey(key any) bool {
	k, err := KeyOf(key)
	if err != nil {
		return false
	}
	_, ok := c.lookup(k)
	return ok
}

// Keys returns a list of the keys (as ints or strings).
func (c *Collection) Keys() *Collection {
	out := newCollection(c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		out.append(p.Key.Value())
	}
	return out
}

// Values returns the values re-keyed 0..n-1.
func (c *Collection) Values() *Collection {
	return New(c.ToSlice()...)
}

// String returns the JSON form of the collection using the configured
// default flags. It implements [fmt.Stringer].
func (c *Collection) String() string {
	b, err := c.ToJSON(defaultFlags())
	if err != nil {
		return fmt.Sprintf("<%d entries: %v>", c.Count(), err)
	}
	return string(b)
}

// ─────────────────────────────────────────────────────────────────────────────
// Iteration
// ─────────────────────────────────────────────────────────────────────────────

// Iter returns a fresh iterator over the entries in order. Each call starts
// from the first entry. The collection must not be mutated while iterating.
//
//	for k, v := range c.Iter() {
//	    fmt.Println(k, v)
//	}
func (c *Collection) Iter() iter.Seq2[Key, any] {
	return func(yield func(Key, any) bool) {
		for p := c.oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Each calls fn(value, key) for every entry in order. Returning false from
// fn stops the iteration. Each works on a snapshot, so fn may mutate c.
// Returns c for chaining.
func (c *Collection) Each(fn func(any, Key) bool) *Collection {
	for _, e := range c.All() {
		if !fn(e.Value, e.Key) {
			break
		}
	}
	return c
}

// Tap calls fn(c) for side-effects (e.g. logging or debugging) and returns
// c unchanged for further chaining.
func (c *Collection) Tap(fn func(*Collection)) *Collection {
	fn(c)
	return c
}

// Pipe passes the collection to fn and returns whatever fn returns.
func (c *Collection) Pipe(fn func(*Collection) any) any {
	return fn(c)
}

// Dump logs the collection through the configured logger at debug level and
// returns c for chaining.
func (c *Collection) Dump() *Collection {
	l := logger()
	b, err := c.ToJSON(defaultFlags() &^ PrettyPrint)
	if err != nil {
		l.Debug().Err(err).Int("count", c.Count()).Msg("collections: dump")
		return c
	}
	l.Debug().RawJSON("items", b).Int("count", c.Count()).Msg("collections: dump")
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Search & Lookup
// ─────────────────────────────────────────────────────────────────────────────

// First returns the first value, optionally the first matching fns[0].
// Returns nil and false when the collection is empty or nothing matches.
func (c *Collection) First(fns ...func(any, Key) bool) (any, bool) {
	for p := c.oldest(); p != nil; p = p.Next() {
		if len(fns) == 0 || fns[0](p.Value, p.Key) {
			return p.Value, true
		}
	}
	return nil, false
}

// Last returns the last value, optionally the last matching fns[0].
// Returns nil and false when the collection is empty or nothing matches.
func (c *Collection) Last(fns ...func(any, Key) bool) (any, bool) {
	for p := c.newest(); p != nil; p = p.Prev() {
		if len(fns) == 0 || fns[0](p.Value, p.Key) {
			return p.Value, true
		}
	}
	return nil, false
}

// FirstKey returns the first key, or false when the collection is empty.
func (c *Collection) FirstKey() (Key, bool) {
	if p := c.oldest(); p != nil {
		return p.Key, true
	}
	return Key{}, false
}

// LastKey returns the last key, or false when the collection is empty.
func (c *Collection) LastKey() (Key, bool) {
	if p := c.newest(); p != nil {
		return p.Key, true
	}
	return Key{}, false
}

// Search returns the key of the first value equal to value. With strict set,
// values must have the same type and value ([StrictEqual]); otherwise
// [LooseEqual] is used. A func(any, Key) bool value is used as a predicate.
// The bool result is false when nothing matches.
func (c *Collection) Search(value any, strict bool) (Key, bool) {
	match := matcher(value, strict)
	for p := c.oldest(); p != nil; p = p.Next() {
		if match(p.Value, p.Key) {
			return p.Key, true
		}
	}
	return Key{}, false
}

// Contains reports whether any value loosely equals value, or satisfies it
// when value is a func(any, Key) bool.
func (c *Collection) Contains(value any) bool {
	_, ok := c.Search(value, false)
	return ok
}

func matcher(value any, strict bool) func(any, Key) bool {
	if fn, ok := value.(func(any, Key) bool); ok {
		return fn
	}
	if strict {
		return func(v any, _ Key) bool { return StrictEqual(v, value) }
	}
	return func(v any, _ Key) bool { return LooseEqual(v, value) }
}

// Join concatenates the string form of every value with glue in between.
// nil becomes "", true "1", false "", and nested arrays their JSON form.
func (c *Collection) Join(glue string) string {
	parts := make([]string, 0, c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		parts = append(parts, stringify(p.Value))
	}
	return strings.Join(parts, glue)
}

// ─────────────────────────────────────────────────────────────────────────────
// Add / Remove (mutating)
// ─────────────────────────────────────────────────────────────────────────────

// Add appends item with the next sequential integer key.
func (c *Collection) Add(item any) *Collection {
	c.append(item)
	return c
}

// Push appends every value, in argument order, with sequential integer keys.
func (c *Collection) Push(values ...any) *Collection {
	for _, v := range values {
		c.append(v)
	}
	return c
}

// Put stores value at key. An existing key keeps its position; a new key is
// appended. Put panics with an error wrapping [ErrType] if key cannot be a
// [Key]; use [Collection.OffsetSet] to get the error instead.
func (c *Collection) Put(key, value any) *Collection {
	c.set(mustKey(key), value)
	return c
}

// Prepend inserts value at the front.
//
// With a key, any existing entry for that key is replaced and moved to the
// front. Without a key, existing keys are left alone: the value takes key 0
// when it is free, otherwise the next sequential integer key.
func (c *Collection) Prepend(value any, key ...any) *Collection {
	var k Key
	if len(key) > 0 {
		k = mustKey(key[0])
		if c.store != nil {
			c.store.Delete(k)
		}
	} else {
		k = IntKey(0)
		if _, taken := c.lookup(k); taken {
			k = IntKey(c.nextIndex)
		}
	}
	c.set(k, value)
	if err := c.store.MoveToFront(k); err != nil {
		// k was set on the line above
		panic(err)
	}
	return c
}

// Pop removes and returns the last value. Returns nil and false when empty.
func (c *Collection) Pop() (any, bool) {
	p := c.newest()
	if p == nil {
		return nil, false
	}
	k, v := p.Key, p.Value
	c.store.Delete(k)
	if k.isInt && k.num == c.nextIndex-1 {
		c.nextIndex--
	}
	return v, true
}

// Shift removes and returns the first value. The integer keys of the
// remaining entries are renumbered from 0; string keys are kept.
// Returns nil and false when empty.
func (c *Collection) Shift() (any, bool) {
	p := c.oldest()
	if p == nil {
		return nil, false
	}
	v := p.Value
	c.store.Delete(p.Key)

	rest := newCollection(c.store.Len())
	for q := c.store.Oldest(); q != nil; q = q.Next() {
		if q.Key.isInt {
			rest.append(q.Value)
		} else {
			rest.store.Set(q.Key, q.Value)
		}
	}
	c.store, c.nextIndex = rest.store, rest.nextIndex
	return v, true
}

// Forget removes the given keys. Absent keys are ignored.
func (c *Collection) Forget(keys ...any) *Collection {
	if c.store == nil {
		return c
	}
	for _, key := range keys {
		if k, err := KeyOf(key); err == nil {
			c.store.Delete(k)
		}
	}
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Array access
// ─────────────────────────────────────────────────────────────────────────────

// OffsetExists is [Collection.HasKey].
func (c *Collection) OffsetExists(key any) bool { return c.HasKey(key) }

// OffsetGet returns the value at key, or nil.
func (c *Collection) OffsetGet(key any) any { return c.Get(key) }

// OffsetSet stores value at key; a nil key appends. Unlike [Collection.Put]
// it reports an unusable key as an error wrapping [ErrType].
func (c *Collection) OffsetSet(key, value any) error {
	if key == nil {
		c.append(value)
		return nil
	}
	k, err := KeyOf(key)
	if err != nil {
		return err
	}
	c.set(k, value)
	return nil
}

// OffsetUnset is [Collection.Forget] for a single key.
func (c *Collection) OffsetUnset(key any) { c.Forget(key) }

// ─────────────────────────────────────────────────────────────────────────────
// Conditional pipeline
// ─────────────────────────────────────────────────────────────────────────────

// When calls fn(c) if condition is true and returns the result.
// Otherwise returns c unchanged.
func (c *Collection) When(condition bool, fn func(*Collection) *Collection) *Collection {
	if condition {
		return fn(c)
	}
	return c
}

// Unless calls fn(c) if condition is false; otherwise returns c.
func (c *Collection) Unless(condition bool, fn func(*Collection) *Collection) *Collection {
	return c.When(!condition, fn)
}

// WhenEmpty calls fn(c) if c is empty; otherwise returns c.
func (c *Collection) WhenEmpty(fn func(*Collection) *Collection) *Collection {
	return c.When(c.IsEmpty(), fn)
}

// WhenNotEmpty calls fn(c) if c is not empty; otherwise returns c.
func (c *Collection) WhenNotEmpty(fn func(*Collection) *Collection) *Collection {
	return c.When(c.IsNotEmpty(), fn)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
