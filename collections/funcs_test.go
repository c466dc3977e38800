package collections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-collect/collections"
)

func TestCollect(t *testing.T) {
	assert.True(t, collections.Collect().IsEmpty())
	assert.Equal(t, kv("a", 1), collections.Collect(map[string]any{"a": 1}).ToArray())
	assert.Equal(t, []any{1, 2, 3}, collections.Collect([]int{1, 2, 3}).ToSlice())
	assert.Equal(t, []any{1, "b"}, collections.Collect(1, "b").ToSlice())

	assert.True(t, collections.Collect([]any{}).IsEmpty())
	v, ok := collections.Collect([]any{}).First()
	assert.Nil(t, v)
	assert.False(t, ok)
}

func TestFromSlice(t *testing.T) {
	c := collections.FromSlice([]string{"a", "b"})
	assert.Equal(t, kv(0, "a", 1, "b"), c.ToArray())
	assert.True(t, collections.FromSlice[int](nil).IsEmpty())
}

func TestFromMap(t *testing.T) {
	c := collections.FromMap(map[int]string{3: "c", 1: "a", 2: "b"})
	assert.Equal(t, kv(1, "a", 2, "b", 3, "c"), c.ToArray())

	s := collections.FromMap(map[string]int{"b": 2, "a": 1})
	assert.Equal(t, kv("a", 1, "b", 2), s.ToArray())
}

func TestValuesOf(t *testing.T) {
	c := collections.New(1, 2, 3).Map(func(v any, _ collections.Key) any { return v.(int) * 2 })
	got, err := collections.ValuesOf[int](c)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, got)

	_, err = collections.ValuesOf[int](collections.New(1, "x"))
	assert.ErrorIs(t, err, collections.ErrType)

	strs, err := collections.ValuesOf[string](collections.Empty())
	require.NoError(t, err)
	assert.Empty(t, strs)
}

func TestKeysOf(t *testing.T) {
	c := collections.Of(collections.E("a", 1), collections.E(2, "b"))
	assert.Equal(t, []collections.Key{collections.StringKey("a"), collections.IntKey(2)}, collections.KeysOf(c))
}
