package collections

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Dot notation
//
// Dot and Undot convert between nested collections and a single level keyed
// by dot-separated paths, mirroring Laravel's Collection::dot / ::undot.
//
//	c := collections.From(map[string]any{
//	    "user": map[string]any{"name": "Alice", "tags": []any{"a", "b"}},
//	})
//	c.Dot()  // {"user.name": "Alice", "user.tags.0": "a", "user.tags.1": "b"}
// ─────────────────────────────────────────────────────────────────────────────

// Dot flattens nested arrays into a single level whose keys are the
// dot-joined paths. Empty nested arrays are kept as values.
func (c *Collection) Dot() *Collection {
	out := Empty()
	dotFlatten("", c, out)
	return out
}

func dotFlatten(prefix string, src, out *Collection) {
	for p := src.oldest(); p != nil; p = p.Next() {
		key := p.Key.String()
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := arrayOf(p.Value); ok && nested.IsNotEmpty() {
			dotFlatten(key, nested, out)
			continue
		}
		out.set(StringKey(key), p.Value)
	}
}

// Undot expands dot-notation keys into nested collections. It is the
// inverse of [Collection.Dot]. A non-array value sitting on a path is
// replaced by a collection.
func (c *Collection) Undot() *Collection {
	out := Empty()
	for p := c.oldest(); p != nil; p = p.Next() {
		undotSet(out, strings.Split(p.Key.String(), "."), p.Value)
	}
	return out
}

func undotSet(c *Collection, segments []string, value any) {
	k := StringKey(segments[0])
	if len(segments) == 1 {
		c.set(k, value)
		return
	}
	nested := Empty()
	if existing, ok := c.lookup(k); ok {
		if a, isArr := arrayOf(existing); isArr {
			nested = a.clone()
		}
	}
	undotSet(nested, segments[1:], value)
	c.set(k, nested)
}
