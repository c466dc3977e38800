package collections

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Collection operations.
//
// Every failure wraps one of the five kind errors below, so callers can
// branch on the kind with errors.Is without caring about the exact cause:
//
//	_, err := c.Chunk(0)
//	if errors.Is(err, collections.ErrInvalidArgument) {
//	    // bad input
//	}
var (
	// ErrInvalidArgument is returned when an argument is outside the range
	// an operation accepts (e.g. a chunk size of 0).
	ErrInvalidArgument = errors.New("collections: invalid argument")

	// ErrKeyNotFound is returned when an operation requires a key or name to
	// be present and it is not. Plain lookups return a default instead.
	ErrKeyNotFound = errors.New("collections: key not found")

	// ErrLengthMismatch is returned by Combine when the key and value
	// collections have different lengths.
	ErrLengthMismatch = errors.New("collections: keys and values must have the same length")

	// ErrType is returned when a value cannot be used where a key is required
	// (Flip, Combine, OffsetSet) or cannot be converted to the requested type.
	ErrType = errors.New("collections: illegal type")

	// ErrSerialization is returned when a collection cannot be encoded to or
	// decoded from JSON. Invalid UTF-8, NaN/Inf floats, channels and funcs
	// all end up here; no value is silently dropped.
	ErrSerialization = errors.New("collections: serialization failed")
)

var (
	// ErrInvalidChunkSize is returned when Chunk is called with size <= 0.
	ErrInvalidChunkSize = fmt.Errorf("%w: chunk size must be greater than 0", ErrInvalidArgument)

	// ErrInvalidRandomCount is returned when Random is asked for a negative
	// number of items or more items than the collection holds.
	ErrInvalidRandomCount = fmt.Errorf("%w: requested item count is out of range", ErrInvalidArgument)

	// ErrMacroNotFound is returned when an unregistered macro name is called.
	ErrMacroNotFound = fmt.Errorf("%w: macro not found", ErrKeyNotFound)
)
