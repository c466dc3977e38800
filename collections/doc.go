// Package collections provides an ordered key/value Collection with a fluent,
// chainable API, inspired by Laravel's Illuminate/Collections.
//
// # Overview
//
// The central type is [Collection]: an insertion-ordered store whose keys
// are ints or strings ([Key]) and whose values may be anything, nested
// collections included. It replaces both []any and map[string]any in
// data-shaping code:
//
//	s := collections.New(1, 2, 3, 4, 5, 6).
//	    Filter(func(v any, _ collections.Key) bool { return v.(int)%2 == 0 }).
//	    Map(func(v any, _ collections.Key) any { return v.(int) * 10 }).
//	    Join(", ") // → "20, 40, 60"
//
// # Keys
//
// A collection built from values ([New], [Collection.Push]) is keyed
// 0..n-1. String keys that spell a canonical integer ("7") are stored as int
// keys, so c.Get("7") and c.Get(7) find the same entry.
//
// # Mutation
//
// Add, Push, Put, Prepend, Pop, Shift and Forget change the receiver. Every
// other method returns a *new* Collection and leaves the receiver unchanged;
// results never share storage with their source.
//
// # Comparison
//
// Search, Contains, Diff and Intersect compare values loosely by default
// ([LooseEqual]): 1, "1" and 1.0 are equal. Pass strict to Search to require
// identical types ([StrictEqual]).
//
// # JSON
//
// [Collection.ToJSON] encodes lists as arrays and everything else as
// objects, honouring [JSONFlag] options. [FromJSON] decodes while keeping
// object key order.
//
//	b, _ := collections.From(map[string]any{"url": "a/b"}).ToJSON(collections.UnescapedSlashes)
//	// {"url":"a/b"}
//
// # Macros (runtime extension)
//
// Register named functions at runtime via [RegisterMacro] and call them
// through [Collection.Macro].
package collections
