// Package provider abstracts over the two byte sources the evaluator core
// can drive: a complete in-memory slice, or a bounded streaming reader with
// lookahead. Both expose the same reserve/view/drop contract so the core
// never needs to know which one it has.
package provider

import (
	"github.com/pkg/errors"
)

// ErrEndOfStream is returned by Reserve* when the requested bytes are not,
// and never will be, available.
var ErrEndOfStream = errors.New("byteeval: end of stream")

// Provider is the evaluator core's view of a byte source.
type Provider interface {
	// IsDirect reports whether this provider wraps a complete in-memory
	// slice (true) or a bounded streaming reader (false).
	IsDirect() bool

	// ReserveItem ensures a byte is available at offset i, fetching more
	// input from an underlying reader if necessary. Returns ErrEndOfStream
	// if byte i does not exist and never will.
	ReserveItem(i int) error

	// ReserveSlice ensures bytes [i, i+length) are available.
	ReserveSlice(i, length int) error

	// ViewItem borrows the byte at offset i. ReserveItem(i) must have
	// succeeded first.
	ViewItem(i int) byte

	// ViewSlice borrows bytes [i, i+length). ReserveSlice(i, length) must
	// have succeeded first.
	ViewSlice(i, length int) []byte

	// Drop advances the provider's cursor by n bytes. For a direct slice
	// provider this only advances the ConsumedCount bookkeeping; for a
	// streaming provider this permanently releases those bytes (they may
	// no longer be viewable afterward).
	Drop(n int)

	// ConsumedCount reports the provider's absolute cursor position: how
	// many bytes have been dropped (streaming) or, for a direct provider,
	// the running count the caller has told it about via Drop.
	ConsumedCount() int
}
