package collections_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-collect/collections"
)

func TestMacro(t *testing.T) {
	t.Cleanup(collections.FlushMacros)

	collections.RegisterMacro("multiply", func(c *collections.Collection, args ...any) any {
		factor := args[0].(int)
		return c.Map(func(v any, _ collections.Key) any { return v.(int) * factor })
	})
	require.True(t, collections.HasMacro("multiply"))

	res, err := collections.New(1, 2, 3).Macro("multiply", 10)
	require.NoError(t, err)
	assert.Equal(t, []any{10, 20, 30}, res.(*collections.Collection).ToSlice())

	res, err = collections.CallMacro("multiply", collections.New(4), 2)
	require.NoError(t, err)
	assert.Equal(t, []any{8}, res.(*collections.Collection).ToSlice())
}

func TestMacroReplace(t *testing.T) {
	t.Cleanup(collections.FlushMacros)

	collections.RegisterMacro("name", func(*collections.Collection, ...any) any { return "first" })
	collections.RegisterMacro("name", func(*collections.Collection, ...any) any { return "second" })

	res, err := collections.Empty().Macro("name")
	require.NoError(t, err)
	assert.Equal(t, "second", res)
}

func TestMacroNotFound(t *testing.T) {
	collections.FlushMacros()

	_, err := collections.New(1).Macro("missing")
	assert.ErrorIs(t, err, collections.ErrMacroNotFound)
	assert.ErrorIs(t, err, collections.ErrKeyNotFound)
	assert.False(t, collections.HasMacro("missing"))
}

func TestMacroConcurrent(t *testing.T) {
	t.Cleanup(collections.FlushMacros)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("m%d", i%4)
			collections.RegisterMacro(name, func(c *collections.Collection, _ ...any) any { return c.Count() })
			if _, err := collections.New(1, 2).Macro(name); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	assert.True(t, collections.HasMacro("m3"))
}
