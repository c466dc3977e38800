package collections

import (
	"bytes"
	"encoding"
	"encoding/hex"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/blake2b"
)

// JSONFlag alters how [Collection.ToJSON] encodes a collection.
// Flags are combined with bitwise OR.
type JSONFlag uint

const (
	// PrettyPrint indents nested structures with four spaces.
	PrettyPrint JSONFlag = 1 << iota

	// UnescapedSlashes writes "/" as-is instead of "\/".
	UnescapedSlashes

	// UnescapedUnicode writes non-ASCII characters as UTF-8 instead of
	// \uXXXX escapes.
	UnescapedUnicode

	// ForceObject encodes lists as objects ({"0": ...}).
	ForceObject
)

// maxDepth bounds nesting while encoding; it also stops self-referencing
// collections.
const maxDepth = 512

// ─────────────────────────────────────────────────────────────────────────────
// Encoding
// ─────────────────────────────────────────────────────────────────────────────

// ToJSON encodes the collection. A collection keyed exactly 0..n-1 in order
// becomes a JSON array, anything else a JSON object.
//
// Invalid UTF-8, NaN or infinite floats and values the encoder cannot
// represent (channels, funcs, complex numbers) produce an error wrapping
// [ErrSerialization].
func (c *Collection) ToJSON(flags ...JSONFlag) ([]byte, error) {
	var f JSONFlag
	for _, flag := range flags {
		f |= flag
	}

	var buf bytes.Buffer
	if err := encodeCollection(&buf, c, f, 0); err != nil {
		return nil, err
	}
	if f&PrettyPrint == 0 {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return out.Bytes(), nil
}

// MarshalJSON implements json.Marshaler using the configured default flags.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return c.ToJSON(defaultFlags() &^ PrettyPrint)
}

// Checksum returns the hex-encoded BLAKE2b-256 digest of the compact JSON
// form. Collections with the same entries in the same order share a
// checksum.
func (c *Collection) Checksum() (string, error) {
	b, err := c.ToJSON(UnescapedSlashes | UnescapedUnicode)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func (c *Collection) isList() bool {
	i := 0
	for p := c.oldest(); p != nil; p = p.Next() {
		if !p.Key.isInt || p.Key.num != i {
			return false
		}
		i++
	}
	return true
}

func encodeCollection(buf *bytes.Buffer, c *Collection, flags JSONFlag, depth int) error {
	if depth >= maxDepth {
		return fmt.Errorf("%w: maximum depth %d exceeded", ErrSerialization, maxDepth)
	}
	list := flags&ForceObject == 0 && c.isList()
	if list {
		buf.WriteByte('[')
	} else {
		buf.WriteByte('{')
	}
	first := true
	for p := c.oldest(); p != nil; p = p.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if !list {
			if err := encodeString(buf, p.Key.String(), flags); err != nil {
				return fmt.Errorf("key %q: %w", p.Key.String(), err)
			}
			buf.WriteByte(':')
		}
		if err := encodeValue(buf, p.Value, flags, depth+1); err != nil {
			return err
		}
	}
	if list {
		buf.WriteByte(']')
	} else {
		buf.WriteByte('}')
	}
	return nil
}

func encodeValue(buf *bytes.Buffer, v any, flags JSONFlag, depth int) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		buf.WriteString(strconv.FormatBool(t))
		return nil
	case string:
		return encodeString(buf, t, flags)
	case Key:
		if t.isInt {
			buf.WriteString(strconv.Itoa(t.num))
			return nil
		}
		return encodeString(buf, t.str, flags)
	case float64:
		return encodeFloat(buf, t, 64)
	case float32:
		return encodeFloat(buf, float64(t), 32)
	case []byte:
		return encodeOther(buf, t)
	}
	if _, ok := v.(Arrayable); !ok && isMarshaler(v) {
		return encodeOther(buf, v)
	}
	if a, ok := arrayOf(v); ok {
		return encodeCollection(buf, a, flags, depth)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(rv.Bool()))
		return nil
	case reflect.String:
		return encodeString(buf, rv.String(), flags)
	}
	return encodeOther(buf, v)
}

func isMarshaler(v any) bool {
	switch v.(type) {
	case stdjson.Marshaler, encoding.TextMarshaler:
		return true
	}
	return false
}

func encodeFloat(buf *bytes.Buffer, f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: unsupported float value %v", ErrSerialization, f)
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, bits))
	return nil
}

// encodeOther hands structs, marshalers and the like to the JSON encoder.
// The encoder replaces malformed UTF-8 with U+FFFD, so the strings it would
// write are checked first.
func encodeOther(buf *bytes.Buffer, v any) error {
	if err := checkUTF8(reflect.ValueOf(v), 0); err != nil {
		return fmt.Errorf("%w: %T: %v", ErrSerialization, v, err)
	}
	b, err := json.MarshalNoEscape(v)
	if err != nil {
		return fmt.Errorf("%w: %T: %v", ErrSerialization, v, err)
	}
	buf.Write(b)
	return nil
}

var errMalformedUTF8 = errors.New("malformed UTF-8")

// checkUTF8 walks the strings the encoder would emit for rv: exported struct
// fields, elements, map keys and values. Marshalers encode themselves and
// are skipped.
func checkUTF8(rv reflect.Value, depth int) error {
	if !rv.IsValid() || depth >= maxDepth {
		return nil
	}
	if rv.CanInterface() && rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
		if isMarshaler(rv.Interface()) {
			return nil
		}
	}
	switch rv.Kind() {
	case reflect.String:
		if !utf8.ValidString(rv.String()) {
			return fmt.Errorf("%w in %q", errMalformedUTF8, rv.String())
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		if rv.CanInterface() && isMarshaler(rv.Interface()) {
			return nil
		}
		return checkUTF8(rv.Elem(), depth+1)
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			f := t.Field(i)
			if f.Tag.Get("json") == "-" || !encodedField(f) {
				continue
			}
			if err := checkUTF8(rv.Field(i), depth+1); err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := checkUTF8(rv.Index(i), depth+1); err != nil {
				return err
			}
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if err := checkUTF8(iter.Key(), depth+1); err != nil {
				return err
			}
			if err := checkUTF8(iter.Value(), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string, flags JSONFlag) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: malformed UTF-8 in %q", ErrSerialization, s)
	}
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if flags&UnescapedSlashes == 0 {
		b = bytes.ReplaceAll(b, []byte("/"), []byte(`\/`))
	}
	if flags&UnescapedUnicode != 0 {
		buf.Write(b)
		return nil
	}
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		switch {
		case r < utf8.RuneSelf:
			buf.WriteByte(b[0])
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(buf, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(buf, `\u%04x`, r)
		}
		b = b[size:]
	}
	return nil
}

// encodedField reports whether the encoder writes f: exported fields and
// the promoted fields of embedded structs.
func encodedField(f reflect.StructField) bool {
	if f.IsExported() {
		return true
	}
	if !f.Anonymous {
		return false
	}
	t := f.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// ─────────────────────────────────────────────────────────────────────────────
// Decoding
// ─────────────────────────────────────────────────────────────────────────────

// FromJSON decodes data into a Collection, keeping the key order of JSON
// objects. Nested objects and arrays become nested collections; integral
// numbers decode to int, the rest to float64. Integers that do not fit an
// int are an error. A scalar document becomes a
// one-element list and null an empty collection.
func FromJSON(data []byte) (*Collection, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrSerialization)
	}
	return From(v), nil
}

// UnmarshalJSON implements json.Unmarshaler, replacing the receiver's
// entries with the decoded ones.
func (c *Collection) UnmarshalJSON(data []byte) error {
	decoded, err := FromJSON(data)
	if err != nil {
		return err
	}
	c.store, c.nextIndex = decoded.store, decoded.nextIndex
	return nil
}

func decodeValue(dec *stdjson.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	switch t := tok.(type) {
	case stdjson.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("%w: unexpected delimiter %q", ErrSerialization, t)
	case stdjson.Number:
		n, err := strconv.ParseInt(t.String(), 10, strconv.IntSize)
		if err == nil {
			return int(n), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: integer %s out of range", ErrSerialization, t)
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return f, nil
	}
	// string, bool or nil
	return tok, nil
}

func decodeObject(dec *stdjson.Decoder) (*Collection, error) {
	out := Empty()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrSerialization)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out.set(StringKey(name), v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return out, nil
}

func decodeArray(dec *stdjson.Decoder) (*Collection, error) {
	out := Empty()
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out.append(v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return out, nil
}
