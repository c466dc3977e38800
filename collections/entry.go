package collections

import "fmt"

// Entry holds one key/value pair of a [Collection]. It is the element type of
// the plain ordered snapshots returned by [Collection.All] and
// [Collection.ToArray].
type Entry struct {
	Key   Key
	Value any
}

// E builds an Entry from a loosely typed key. It panics if key cannot be a
// [Key]; it is meant for literals:
//
//	c := collections.Of(collections.E("a", 1), collections.E("b", 2))
func E(key, value any) Entry {
	return Entry{Key: mustKey(key), Value: value}
}

// String returns a human-readable representation: "key: value".
func (e Entry) String() string {
	return fmt.Sprintf("%s: %v", e.Key, e.Value)
}
