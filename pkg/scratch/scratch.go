// Package scratch implements the evaluator core's working buffer: the place
// matched bytes accumulate when they diverge from the provider's own bytes
// (because they were filtered, per-element resolved, or dropped from a
// streaming provider that won't hold them any longer).
//
// Scratch activation is lazy: an operator that never needs to diverge from
// the source never pays for a buffer at all. Once a divergence is detected,
// the evaluator activates the buffer and copies in whatever prefix had
// already been matched directly from the source.
package scratch

import (
	"github.com/valyala/bytebufferpool"
)

// Mode selects the storage discipline for a scratch buffer, mirroring the
// operator's scratch_hint.
type Mode int

const (
	// Exact is an uninitialized fixed-size buffer indexed by position, with
	// no bounds tracking beyond its declared size. Used when the operator's
	// match length is known exactly at composition time.
	Exact Mode = iota
	// Bound is a length-tracked buffer whose backing array is allocated
	// once, with capacity N, on activation. The size is not enforced as a
	// cap: appends past N grow the buffer like any Go slice.
	Bound
	// Dynamic is an unbounded grow-on-append buffer backed by a pooled
	// byte buffer, for operators with no statically known upper bound.
	Dynamic
)

// Hint is the compile-time scratch_hint carried by an Operator.
type Hint struct {
	Mode Mode
	N    int
}

// ExactHint declares a fixed-size scratch buffer of exactly n bytes.
func ExactHint(n int) Hint { return Hint{Mode: Exact, N: n} }

// BoundHint declares a length-tracked scratch buffer with an initial
// capacity of n bytes; appends past n grow it.
func BoundHint(n int) Hint { return Hint{Mode: Bound, N: n} }

// DynamicHint declares an unbounded, grow-on-append scratch buffer.
func DynamicHint() Hint { return Hint{Mode: Dynamic} }

// Buffer is the working buffer used by the sequence evaluator. It is not
// safe for concurrent use; one Buffer backs one evaluate call.
type Buffer struct {
	hint Hint

	active bool

	exact    []byte
	exactLen int

	bound    []byte
	boundLen int

	dynamic *bytebufferpool.ByteBuffer
}

// defaultCapacityHint sizes a Bound buffer's initial backing array when an
// operator leaves ScratchHint at its zero value. Normally set once at
// startup from config.Config.ScratchCapacityHint.
var defaultCapacityHint = 64

// SetDefaultCapacityHint overrides defaultCapacityHint. n <= 0 is ignored.
func SetDefaultCapacityHint(n int) {
	if n > 0 {
		defaultCapacityHint = n
	}
}

// New constructs an inactive Buffer for the given hint. No allocation is
// performed until Activate is called. A zero-value hint (an operator that
// never declared a ScratchHint) is treated as BoundHint(defaultCapacityHint)
// rather than an Exact buffer of length zero, which would panic on the
// first AppendItem.
func New(hint Hint) *Buffer {
	if hint == (Hint{}) {
		hint = BoundHint(defaultCapacityHint)
	}
	return &Buffer{hint: hint}
}

// Active reports whether the buffer has been activated.
func (b *Buffer) Active() bool { return b.active }

// Activate lazily initializes storage for the declared mode. It is a no-op
// if already active. Callers typically follow Activate with AppendSlice to
// seed the buffer with the prefix of the match that was borrowed directly
// from the provider before the divergence was detected.
func (b *Buffer) Activate() {
	if b.active {
		return
	}
	b.active = true
	switch b.hint.Mode {
	case Exact:
		b.exact = make([]byte, b.hint.N)
		b.exactLen = 0
	case Bound:
		n := b.hint.N
		if n < 0 {
			n = 0
		}
		b.bound = make([]byte, 0, n)
	case Dynamic:
		b.dynamic = bytebufferpool.Get()
	}
}

// AppendItem appends a single byte. Activate must have been called first.
func (b *Buffer) AppendItem(v byte) {
	switch b.hint.Mode {
	case Exact:
		b.exact[b.exactLen] = v
		b.exactLen++
	case Bound:
		b.bound = append(b.bound, v)
	case Dynamic:
		_ = b.dynamic.WriteByte(v)
	}
}

// AppendSlice appends a run of bytes. Activate must have been called first.
func (b *Buffer) AppendSlice(v []byte) {
	switch b.hint.Mode {
	case Exact:
		n := copy(b.exact[b.exactLen:], v)
		b.exactLen += n
	case Bound:
		b.bound = append(b.bound, v...)
	case Dynamic:
		_, _ = b.dynamic.Write(v)
	}
}

// View returns the currently accumulated bytes as a slice; for Exact and
// Bound modes this borrows the buffer's own backing array, for Dynamic it
// borrows the pooled buffer's internal slice. The returned slice is only
// valid until the next mutation or Deinit.
func (b *Buffer) View() []byte {
	if !b.active {
		return nil
	}
	switch b.hint.Mode {
	case Exact:
		return b.exact[:b.exactLen]
	case Bound:
		return b.bound
	case Dynamic:
		return b.dynamic.B
	default:
		return nil
	}
}

// Len reports the number of bytes currently accumulated.
func (b *Buffer) Len() int {
	if !b.active {
		return 0
	}
	switch b.hint.Mode {
	case Exact:
		return b.exactLen
	case Bound:
		return len(b.bound)
	case Dynamic:
		return len(b.dynamic.B)
	default:
		return 0
	}
}

// ConsumeOwned copies the accumulated bytes onto a freshly allocated heap
// slice the caller owns, then releases the buffer's own storage. Used on
// the success path when the outcome transfers scratch ownership to the
// caller instead of returning a borrowed view.
func (b *Buffer) ConsumeOwned() []byte {
	view := b.View()
	owned := make([]byte, len(view))
	copy(owned, view)
	b.Deinit()
	return owned
}

// Deinit releases the buffer's storage. Idempotent: calling it twice, or
// calling it after ConsumeOwned already did, is a safe no-op. Must be
// called on every fail/discard path that activated the buffer, so pooled
// Dynamic buffers return to the pool; ConsumeOwned calls it itself.
func (b *Buffer) Deinit() {
	if !b.active {
		return
	}
	if b.hint.Mode == Dynamic && b.dynamic != nil {
		bytebufferpool.Put(b.dynamic)
		b.dynamic = nil
	}
	b.exact = nil
	b.exactLen = 0
	b.bound = nil
	b.active = false
}
