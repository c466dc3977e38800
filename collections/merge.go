package collections

// ─────────────────────────────────────────────────────────────────────────────
// Set operations
// ─────────────────────────────────────────────────────────────────────────────

// Diff returns the entries whose value loosely equals no value of items.
// Keys and order of the receiver are kept.
func (c *Collection) Diff(items any) *Collection {
	other := From(items).ToSlice()
	return c.Filter(func(v any, _ Key) bool { return !containsLoose(other, v) })
}

// Intersect returns the entries whose value loosely equals some value of
// items. Keys and order of the receiver are kept.
func (c *Collection) Intersect(items any) *Collection {
	other := From(items).ToSlice()
	return c.Filter(func(v any, _ Key) bool { return containsLoose(other, v) })
}

// IntersectByKeys returns the entries whose key is also a key of items.
func (c *Collection) IntersectByKeys(items any) *Collection {
	other := From(items)
	return c.Filter(func(_ any, k Key) bool {
		_, ok := other.lookup(k)
		return ok
	})
}

func containsLoose(values []any, v any) bool {
	for _, candidate := range values {
		if LooseEqual(candidate, v) {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Merge / Replace
// ─────────────────────────────────────────────────────────────────────────────

// Merge overlays items onto a copy of the receiver. String keys of items
// overwrite the receiver's value in place; integer keys on both sides are
// renumbered and appended.
//
//	collections.Of(collections.E("a", 1), collections.E(0, "x")).Merge(map[string]any{"a": 2})
//	// → {"a": 2, 0: "x"}
func (c *Collection) Merge(items any) *Collection {
	return mergeInto(Empty(), false, c, From(items))
}

// MergeRecursive is [Collection.Merge] with nested merging on shared string
// keys:
//
//   - array + array: merged recursively
//   - otherwise both values are wrapped into arrays (a scalar becomes
//     [scalar], nil becomes []) and merged, so scalar + scalar yields
//     [a, b] and array + scalar appends the scalar to the array
//
// Integer keys are always appended. Nested results are *Collection values.
func (c *Collection) MergeRecursive(items any) *Collection {
	return mergeInto(Empty(), true, c, From(items))
}

// mergeInto appends the integer-keyed entries of every source to dst and
// sets the string-keyed ones. Nested merges keep the existing array's keys.
func mergeInto(dst *Collection, recursive bool, sources ...*Collection) *Collection {
	for _, src := range sources {
		for p := src.oldest(); p != nil; p = p.Next() {
			if p.Key.isInt {
				dst.append(p.Value)
				continue
			}
			existing, ok := dst.lookup(p.Key)
			if !recursive || !ok {
				dst.set(p.Key, p.Value)
				continue
			}
			dst.set(p.Key, mergeInto(wrapArray(existing).clone(), true, wrapArray(p.Value)))
		}
	}
	return dst
}

// wrapArray returns an array value as a Collection, nil as an empty one and
// anything else as a one-element list.
func wrapArray(v any) *Collection {
	if v == nil {
		return Empty()
	}
	if a, ok := arrayOf(v); ok {
		return a
	}
	return New(v)
}

// Replace overlays items onto a copy of the receiver: every key, integer or
// string, overwrites the receiver's value in place and new keys are
// appended. Nothing is renumbered.
func (c *Collection) Replace(items any) *Collection {
	out := c.clone()
	for p := From(items).oldest(); p != nil; p = p.Next() {
		out.set(p.Key, p.Value)
	}
	return out
}

// ReplaceRecursive is [Collection.Replace] that recurses when both the
// existing and the incoming value are arrays. In every other case the
// incoming value wins.
func (c *Collection) ReplaceRecursive(items any) *Collection {
	return replaceRecursive(c, From(items))
}

func replaceRecursive(base, overlay *Collection) *Collection {
	out := base.clone()
	for p := overlay.oldest(); p != nil; p = p.Next() {
		existing, ok := out.lookup(p.Key)
		if ok {
			dstArr, dstIsArr := arrayOf(existing)
			srcArr, srcIsArr := arrayOf(p.Value)
			if dstIsArr && srcIsArr {
				out.set(p.Key, replaceRecursive(dstArr, srcArr))
				continue
			}
		}
		out.set(p.Key, p.Value)
	}
	return out
}
