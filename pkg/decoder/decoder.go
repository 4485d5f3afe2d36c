// Package decoder is a thin Skip/Take/Peek facade over the evaluator core,
// grounded on the teacher tokenizer's Mark/Rewind-backed Stream facade. It
// is explicitly out of the core's scope (spec.md §6 names it as a likely
// consumer, not a core component) and deliberately does not grow into a
// parser: it exposes Skip, Take/TakeClone, DropMatch and Peek, the
// operations a hand-written decoder loop needs on top of one Provider.
package decoder

import (
	"github.com/shapestone/byteeval/internal/eval"
	"github.com/shapestone/byteeval/pkg/behavior"
	"github.com/shapestone/byteeval/pkg/operator"
	"github.com/shapestone/byteeval/pkg/outcome"
	"github.com/shapestone/byteeval/pkg/provider"
)

// Decoder wraps one Provider and drives it through the evaluator core.
type Decoder struct {
	prov provider.Provider
}

// New wraps p for decoding.
func New(p provider.Provider) *Decoder {
	return &Decoder{prov: p}
}

// Position returns the provider's current consumed-byte count.
func (d *Decoder) Position() int {
	return d.prov.ConsumedCount()
}

// Skip reserves and drops n bytes without producing a value. Returns the
// provider's reservation error (including ErrEndOfStream) if n bytes are
// not available.
func (d *Decoder) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	if err := d.prov.ReserveSlice(d.prov.ConsumedCount(), n); err != nil {
		return err
	}
	d.prov.Drop(n)
	return nil
}

// Take evaluates op against the stream under a take behavior: on success the
// provider's cursor advances past the match. A failure is not rolled back:
// alignment padding and elements a sequence operator already matched stay
// consumed.
func Take[O any](d *Decoder, op operator.Operator[O]) (outcome.Outcome[O], error) {
	return eval.Evaluate(d.prov, behavior.StreamTake, d.prov.ConsumedCount(), op)
}

// TakeClone is Take, but the result is always a heap-owned copy, independent
// of the provider's own storage.
func TakeClone[O any](d *Decoder, op operator.Operator[O]) (outcome.Outcome[O], error) {
	return eval.Evaluate(d.prov, behavior.StreamTakeClone, d.prov.ConsumedCount(), op)
}

// DropMatch evaluates op under the discard behavior: a match advances the
// provider past it and its value is thrown away. Useful for skipping a
// structurally-recognized run (whitespace, a delimiter) without caring
// about its content.
func DropMatch[O any](d *Decoder, op operator.Operator[O]) (outcome.Outcome[O], error) {
	return eval.Evaluate(d.prov, behavior.StreamDrop, d.prov.ConsumedCount(), op)
}

// Peek evaluates op against the stream under a non-consuming view behavior
// and returns a handle with four operations over the result,
// grounded on the teacher's Mark/Rewind stack: View leaves the stream
// exactly where Peek found it and may be called again; CommitAdvance and
// CommitAndFree both advance the provider past the match; Free and
// CommitAndFree both release (resolve) the handle. Each handle may be
// resolved by exactly one of those two terminal calls.
func Peek[O any](d *Decoder, op operator.Operator[O]) (*PeekHandle[O], error) {
	result, err := eval.Evaluate(d.prov, behavior.StreamView, d.prov.ConsumedCount(), op)
	if err != nil {
		return nil, err
	}
	used := 0
	if !result.IsFail() {
		used = result.State().Used
	}
	return &PeekHandle[O]{dec: d, result: result, used: used}, nil
}

// PeekHandle is the live result of a Peek call, pinned until one of its
// two terminal methods (CommitAndFree or Free) is called.
type PeekHandle[O any] struct {
	dec      *Decoder
	result   outcome.Outcome[O]
	used     int
	resolved bool
}

// View returns the peeked outcome. It does not advance the stream or
// resolve the handle, and may be called any number of times before a
// terminal call.
func (h *PeekHandle[O]) View() outcome.Outcome[O] {
	return h.result
}

// CommitAdvance advances the provider past the peeked match without
// resolving the handle: View remains callable afterward.
func (h *PeekHandle[O]) CommitAdvance() {
	if h.used > 0 {
		h.dec.prov.Drop(h.used)
		h.used = 0
	}
}

// CommitAndFree advances the provider past the peeked match (if not already
// committed) and resolves the handle; View is no longer meaningful
// afterward.
func (h *PeekHandle[O]) CommitAndFree() {
	h.CommitAdvance()
	h.resolved = true
}

// Free resolves the handle without advancing the provider: the peeked bytes
// remain unconsumed for the next read.
func (h *PeekHandle[O]) Free() {
	h.resolved = true
}

// Resolved reports whether a terminal operation has already run.
func (h *PeekHandle[O]) Resolved() bool {
	return h.resolved
}
