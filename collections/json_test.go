package collections_test

import (
	"encoding/json"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-collect/collections"
)

// ─────────────────────────────────────────────────────────────────────────────
// Encoding
// ─────────────────────────────────────────────────────────────────────────────

type level int

func (l level) MarshalJSON() ([]byte, error) {
	return []byte(`"lvl-` + strconv.Itoa(int(l)) + `"`), nil
}

type named struct {
	S    string
	Tags []string
	note string
}

func TestToJSONShape(t *testing.T) {
	tests := []struct {
		name  string
		c     *collections.Collection
		flags []collections.JSONFlag
		want  string
	}{
		{"list", collections.New(1, 2), nil, `[1,2]`},
		{"empty", collections.Empty(), nil, `[]`},
		{"empty forced", collections.Empty(), []collections.JSONFlag{collections.ForceObject}, `{}`},
		{"list forced", collections.New(1), []collections.JSONFlag{collections.ForceObject}, `{"0":1}`},
		{"gap", collections.Of(collections.E(1, "a")), nil, `{"1":"a"}`},
		{"out of order", collections.Of(collections.E(1, "a"), collections.E(0, "b")), nil, `{"1":"a","0":"b"}`},
		{"object", collections.Of(collections.E("a", nil), collections.E("b", true)), nil, `{"a":null,"b":true}`},
		{"floats", collections.New(1.5, 2.0, float32(0.25)), nil, `[1.5,2,0.25]`},
		{"nested", collections.From(map[string]any{"a": []any{1, map[string]any{"b": nil}}}), nil, `{"a":[1,{"b":null}]}`},
		{"struct", collections.New(struct {
			Name string `json:"name"`
		}{"x"}), nil, `[{"name":"x"}]`},
		{"key value", collections.New(collections.IntKey(3), collections.StringKey("k")), nil, `[3,"k"]`},
		{"html", collections.New("<a&b>"), nil, `["<a&b>"]`},
		{"int marshaler", collections.New(level(2)), nil, `["lvl-2"]`},
		{"unexported field", collections.New(named{S: "a", note: "\xff"}), nil, `[{"S":"a","Tags":null}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jsonOf(t, tt.c, tt.flags...))
		})
	}
}

func TestToJSONEscaping(t *testing.T) {
	c := collections.New("a/b", "é", "😀")
	assert.Equal(t, `["a\/b","\u00e9","\ud83d\ude00"]`, jsonOf(t, c))
	assert.Equal(t, `["a/b","\u00e9","\ud83d\ude00"]`, jsonOf(t, c, collections.UnescapedSlashes))
	assert.Equal(t, `["a\/b","é","😀"]`, jsonOf(t, c, collections.UnescapedUnicode))
	assert.Equal(t, `["a/b","é","😀"]`, jsonOf(t, c, collections.UnescapedSlashes|collections.UnescapedUnicode))

	keyed := collections.Of(collections.E("k/é", 1))
	assert.Equal(t, `{"k\/\u00e9":1}`, jsonOf(t, keyed))
}

func TestToJSONPrettyPrint(t *testing.T) {
	c := collections.Of(collections.E("a", 1), collections.E("b", collections.New(1, 2)))
	want := "{\n    \"a\": 1,\n    \"b\": [\n        1,\n        2\n    ]\n}"
	assert.Equal(t, want, jsonOf(t, c, collections.PrettyPrint))
}

func TestToJSONErrors(t *testing.T) {
	tests := map[string]*collections.Collection{
		"NaN":           collections.New(math.NaN()),
		"Inf":           collections.New(math.Inf(1)),
		"invalid utf-8": collections.New(string([]byte{0xff, 0xfe})),
		"invalid key":   collections.Of(collections.E(string([]byte{0xff}), 1)),
		"channel":       collections.New(make(chan int)),
		"nested NaN":    collections.Of(collections.E("a", collections.New(1, math.NaN()))),
		"struct field":  collections.New(named{S: "\xffa"}),
		"struct slice":  collections.New(&named{Tags: []string{"ok", "\xfe"}}),
	}
	for name, c := range tests {
		t.Run(name, func(t *testing.T) {
			b, err := c.ToJSON()
			assert.Nil(t, b)
			assert.ErrorIs(t, err, collections.ErrSerialization)
		})
	}
}

func TestToJSONSelfReference(t *testing.T) {
	c := collections.New(1)
	c.Push(c)
	_, err := c.ToJSON()
	assert.ErrorIs(t, err, collections.ErrSerialization)

	assert.Contains(t, c.String(), "maximum depth")
	assert.NotPanics(t, func() { assert.Len(t, c.ToArray(), 2) })

	flat := c.Flatten()
	last, _ := flat.Last()
	assert.Same(t, c, last, "the innermost reference is kept as a value")
}

func TestMarshalJSON(t *testing.T) {
	payload := struct {
		Items *collections.Collection `json:"items"`
	}{collections.Of(collections.E("b", 1), collections.E("a", "x/y"))}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":{"b":1,"a":"x/y"}}`, string(b))
	assert.Contains(t, string(b), `{"b":1,"a":"x\/y"}`, "key order is kept")
}

func TestChecksum(t *testing.T) {
	a, err := collections.Of(collections.E("a", 1), collections.E("b", 2)).Checksum()
	require.NoError(t, err)
	assert.Len(t, a, 64)

	same, err := collections.From(map[string]any{"b": 2, "a": 1}).Checksum()
	require.NoError(t, err)
	assert.Equal(t, a, same)

	reordered, err := collections.Of(collections.E("b", 2), collections.E("a", 1)).Checksum()
	require.NoError(t, err)
	assert.NotEqual(t, a, reordered)

	_, err = collections.New(math.NaN()).Checksum()
	assert.ErrorIs(t, err, collections.ErrSerialization)
}

// ─────────────────────────────────────────────────────────────────────────────
// Decoding
// ─────────────────────────────────────────────────────────────────────────────

func TestFromJSON(t *testing.T) {
	c, err := collections.FromJSON([]byte(`{"b":1,"a":[1,2.5,"x",true,null],"7":{"z":-3}}`))
	require.NoError(t, err)

	assert.Equal(t, []any{"b", "a", 7}, keysOf(c))
	assert.Equal(t, 1, c.Get("b"))

	list, ok := c.Get("a").(*collections.Collection)
	require.True(t, ok)
	assert.Equal(t, []any{1, 2.5, "x", true, nil}, list.ToSlice())

	obj, ok := c.Get(7).(*collections.Collection)
	require.True(t, ok)
	assert.Equal(t, -3, obj.Get("z"))
}

func TestFromJSONRoundTrip(t *testing.T) {
	in := `{"name":"a/b","tags":["x","y"],"n":{"1":1.5,"k":false}}`
	c, err := collections.FromJSON([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, in, jsonOf(t, c, collections.UnescapedSlashes))
}

func TestFromJSONScalars(t *testing.T) {
	c, err := collections.FromJSON([]byte(`null`))
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	c, err = collections.FromJSON([]byte(`"s"`))
	require.NoError(t, err)
	assert.Equal(t, []any{"s"}, c.ToSlice())

	c, err = collections.FromJSON([]byte(`1e400`))
	assert.ErrorIs(t, err, collections.ErrSerialization)
	assert.Nil(t, c)

	for _, in := range []string{`9223372036854775808`, `[-9223372036854775809]`} {
		_, err = collections.FromJSON([]byte(in))
		assert.ErrorIs(t, err, collections.ErrSerialization, "input %s", in)
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{"a":`, `[1,]`, `[1] 2`, `{"a" 1}`} {
		_, err := collections.FromJSON([]byte(in))
		assert.ErrorIs(t, err, collections.ErrSerialization, "input %q", in)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var payload struct {
		Items *collections.Collection `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"items":{"z":1,"a":2}}`), &payload))
	assert.Equal(t, kv("z", 1, "a", 2), payload.Items.ToArray())

	c := collections.New("old")
	require.NoError(t, c.UnmarshalJSON([]byte(`["x"]`)))
	c.Add("y")
	assert.Equal(t, kv(0, "x", 1, "y"), c.ToArray())

	assert.ErrorIs(t, c.UnmarshalJSON([]byte(`{`)), collections.ErrSerialization)
	assert.Equal(t, kv(0, "x", 1, "y"), c.ToArray(), "failed decode leaves the receiver unchanged")
}
