package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hasbyte1/go-collect/collections"
)

func TestDot(t *testing.T) {
	c := collections.From(map[string]any{
		"user": map[string]any{"name": "Alice", "tags": []any{"a", "b"}},
		"id":   1,
		"meta": collections.Empty(),
	})
	got := c.Dot()
	assert.Equal(t, []any{"id", "meta", "user.name", "user.tags.0", "user.tags.1"}, keysOf(got))
	assert.Equal(t, "b", got.Get("user.tags.1"))
	assert.True(t, got.Get("meta").(*collections.Collection).IsEmpty(), "empty arrays are kept")
}

func TestUndot(t *testing.T) {
	c := collections.Of(
		collections.E("user.name", "Alice"),
		collections.E("user.tags.0", "a"),
		collections.E("user.tags.1", "b"),
		collections.E("id", 1),
	)
	assert.Equal(t, `{"user":{"name":"Alice","tags":["a","b"]},"id":1}`, jsonOf(t, c.Undot()))
}

func TestDotUndotRoundTrip(t *testing.T) {
	c := collections.From(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1}},
		"d": []any{1, 2},
	})
	assert.Equal(t, jsonOf(t, c), jsonOf(t, c.Dot().Undot()))
}

func TestUndotReplacesScalars(t *testing.T) {
	c := collections.Of(collections.E("a", 1), collections.E("a.b", 2))
	assert.Equal(t, `{"a":{"b":2}}`, jsonOf(t, c.Undot()))

	nested := collections.New("x")
	c = collections.Of(collections.E("k", nested), collections.E("k.1", "y"))
	assert.Equal(t, `{"k":["x","y"]}`, jsonOf(t, c.Undot()))
	assert.Equal(t, 1, nested.Count(), "nested inputs are copied")
}
