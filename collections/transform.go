package collections

import (
	"fmt"
	"math/rand"
	"slices"
)

// ─────────────────────────────────────────────────────────────────────────────
// Transformation
// ─────────────────────────────────────────────────────────────────────────────

// Map returns a new collection with the same keys and fn(value, key) as
// values.
func (c *Collection) Map(fn func(any, Key) any) *Collection {
	out := newCollection(c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		out.set(p.Key, fn(p.Value, p.Key))
	}
	return out
}

// Filter returns the entries for which fn(value, key) returns true. A nil fn
// keeps the truthy values: nil, false, zero numbers, "", "0" and empty
// arrays are dropped. Keys are kept.
func (c *Collection) Filter(fn func(any, Key) bool) *Collection {
	if fn == nil {
		fn = func(v any, _ Key) bool { return truthy(v) }
	}
	out := Empty()
	for p := c.oldest(); p != nil; p = p.Next() {
		if fn(p.Value, p.Key) {
			out.set(p.Key, p.Value)
		}
	}
	return out
}

// Reject returns the entries for which fn returns false.
// It is the complement of [Collection.Filter].
func (c *Collection) Reject(fn func(any, Key) bool) *Collection {
	return c.Filter(func(v any, k Key) bool { return !fn(v, k) })
}

// Reduce folds the collection left to right with fn(carry, value, key).
//
// When initial is given it seeds the accumulator. Without it the first value
// seeds the accumulator and folding starts at the second entry; an empty
// collection then reduces to nil.
func (c *Collection) Reduce(fn func(carry, value any, key Key) any, initial ...any) any {
	p := c.oldest()
	var carry any
	if len(initial) > 0 {
		carry = initial[0]
	} else if p != nil {
		carry = p.Value
		p = p.Next()
	}
	for ; p != nil; p = p.Next() {
		carry = fn(carry, p.Value, p.Key)
	}
	return carry
}

// Flatten collapses every nested array value into a single list keyed
// 0..n-1. Arrays nested deeper than the encoder's nesting limit, such as a
// collection holding itself, are appended as values.
func (c *Collection) Flatten() *Collection {
	out := Empty()
	var walk func(src *Collection, depth int)
	walk = func(src *Collection, depth int) {
		for p := src.oldest(); p != nil; p = p.Next() {
			if nested, ok := arrayOf(p.Value); ok && depth+1 < maxDepth {
				walk(nested, depth+1)
				continue
			}
			out.append(p.Value)
		}
	}
	walk(c, 0)
	return out
}

// Flip swaps keys and values. Every value must be a string or an integer;
// otherwise an error wrapping [ErrType] is returned. When several entries
// share a value, the last key wins.
func (c *Collection) Flip() (*Collection, error) {
	out := newCollection(c.Count())
	for p := c.oldest(); p != nil; p = p.Next() {
		k, err := strictKeyOf(p.Value)
		if err != nil {
			return nil, fmt.Errorf("collections: flip key %s: %w", p.Key, err)
		}
		out.set(k, p.Key.Value())
	}
	return out, nil
}

// Reverse returns the entries in reverse order. Keys are kept.
func (c *Collection) Reverse() *Collection {
	out := newCollection(c.Count())
	for p := c.newest(); p != nil; p = p.Prev() {
		out.set(p.Key, p.Value)
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Slicing & Pagination
// ─────────────────────────────────────────────────────────────────────────────

// Chunk splits the collection into a list of collections holding at most size
// consecutive entries each. Keys are kept inside each chunk.
// Returns [ErrInvalidChunkSize] if size <= 0.
//
//	chunks, _ := collections.New(1, 2, 3, 4, 5).Chunk(2)
//	// → [[1, 2], {2: 3, 3: 4}, {4: 5}]
func (c *Collection) Chunk(size int) (*Collection, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, size)
	}
	chunks := newCollection((c.Count() + size - 1) / size)
	var current *Collection
	for p := c.oldest(); p != nil; p = p.Next() {
		if current == nil || current.Count() == size {
			current = newCollection(size)
			chunks.append(current)
		}
		current.set(p.Key, p.Value)
	}
	return chunks, nil
}

// Slice returns the entries starting at position offset, keeping keys.
//
// A negative offset counts from the end. length is optional: omitted means
// "to the end", a negative length stops that many entries from the end.
func (c *Collection) Slice(offset int, length ...int) *Collection {
	n := c.Count()
	if offset > n {
		return Empty()
	}
	if offset < 0 {
		offset = max(n+offset, 0)
	}
	size := n - offset
	if len(length) > 0 {
		switch l := length[0]; {
		case l < 0:
			size = n - offset + l
		case offset+l < n:
			size = l
		}
	}
	if size <= 0 {
		return Empty()
	}

	out := newCollection(size)
	pos := 0
	for p := c.oldest(); p != nil && pos < offset+size; p = p.Next() {
		if pos >= offset {
			out.set(p.Key, p.Value)
		}
		pos++
	}
	return out
}

// Take returns the first limit entries, or the last -limit entries when
// limit is negative. Keys are kept.
func (c *Collection) Take(limit int) *Collection {
	if limit < 0 {
		return c.Slice(limit, -limit)
	}
	return c.Slice(0, limit)
}

// Skip drops the first count entries and returns the rest.
func (c *Collection) Skip(count int) *Collection {
	return c.Slice(count)
}

// ─────────────────────────────────────────────────────────────────────────────
// Key projection
// ─────────────────────────────────────────────────────────────────────────────

// Only returns the entries whose key is among keys, in the receiver's order.
// A single array argument is read as the list of keys. With no keys, Only
// returns a copy.
func (c *Collection) Only(keys ...any) *Collection {
	if len(keys) == 0 {
		return c.clone()
	}
	set := keySet(keys)
	return c.Filter(func(_ any, k Key) bool {
		_, ok := set[k]
		return ok
	})
}

// Except returns the entries whose key is not among keys.
// A single array argument is read as the list of keys.
func (c *Collection) Except(keys ...any) *Collection {
	set := keySet(keys)
	return c.Filter(func(_ any, k Key) bool {
		_, ok := set[k]
		return !ok
	})
}

func keySet(keys []any) map[Key]struct{} {
	if len(keys) == 1 {
		if list, ok := arrayOf(keys[0]); ok {
			keys = list.ToSlice()
		}
	}
	set := make(map[Key]struct{}, len(keys))
	for _, key := range keys {
		if k, err := KeyOf(key); err == nil {
			set[k] = struct{}{}
		}
	}
	return set
}

// Combine uses the receiver's values as keys and pairs them, by position,
// with the values of values. Returns an error wrapping [ErrLengthMismatch]
// when the counts differ and one wrapping [ErrType] when a receiver value
// cannot be a key.
//
//	c, _ := collections.New("name", "age").Combine([]any{"Alice", 30})
//	// → {"name": "Alice", "age": 30}
func (c *Collection) Combine(values any) (*Collection, error) {
	vals := From(values).ToSlice()
	if len(vals) != c.Count() {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, c.Count(), len(vals))
	}
	out := newCollection(len(vals))
	i := 0
	for p := c.oldest(); p != nil; p = p.Next() {
		k, err := KeyOf(p.Value)
		if err != nil {
			return nil, fmt.Errorf("collections: combine key at %s: %w", p.Key, err)
		}
		out.set(k, vals[i])
		i++
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Randomisation
// ─────────────────────────────────────────────────────────────────────────────

// Random picks number distinct entries uniformly at random, without
// replacement, keeping their relative order.
//
// When number is 1 the bare value is returned; otherwise the result is a
// *Collection keyed 0..number-1, or by the original keys when preserveKeys
// is set. Returns [ErrInvalidRandomCount] when number is negative or larger
// than Count().
func (c *Collection) Random(number int, preserveKeys bool) (any, error) {
	n := c.Count()
	if number < 0 || number > n {
		return nil, fmt.Errorf("%w: requested %d, collection has %d", ErrInvalidRandomCount, number, n)
	}

	var picked []int
	withRand(func(r *rand.Rand) { picked = r.Perm(n)[:number] })
	slices.Sort(picked)

	entries := c.All()
	if number == 1 {
		return entries[picked[0]].Value, nil
	}
	out := newCollection(number)
	for _, i := range picked {
		if preserveKeys {
			out.set(entries[i].Key, entries[i].Value)
		} else {
			out.append(entries[i].Value)
		}
	}
	return out, nil
}

// Shuffle returns the values in a random order, keyed 0..n-1.
func (c *Collection) Shuffle() *Collection {
	values := c.ToSlice()
	withRand(func(r *rand.Rand) {
		r.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
	})
	return New(values...)
}
