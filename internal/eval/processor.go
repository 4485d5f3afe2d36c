package eval

import (
	"unsafe"

	"github.com/shapestone/byteeval/internal/metrics"
	"github.com/shapestone/byteeval/pkg/outcome"
	"github.com/shapestone/byteeval/pkg/provider"
	"github.com/shapestone/byteeval/pkg/scratch"
)

// processorMode selects one of the Processor's three behaviors, derived
// once per evaluate call from the ConsumptionBehavior in play.
type processorMode int

const (
	modeStandard processorMode = iota
	modeDiscard
	modeClone
)

// ownershipSource tells the Processor where a matched input's bytes came
// from, which decides whether a full-overlap resolved output can be
// returned as a borrow or must transfer/clone.
type ownershipSource int

const (
	ownershipView ownershipSource = iota
	ownershipScratch
	ownershipOwned
)

// overlapKind is the result of comparing a resolver's output byte range
// against its input byte range.
type overlapKind int

const (
	overlapNone overlapKind = iota
	overlapPartial
	overlapFull
)

// processor implements §4.4: ownership/overlap reasoning, conditional
// cloning, discard, and deinit of the working buffer.
type processor[O any] struct {
	mode   processorMode
	prov   provider.Provider
	sb     *scratch.Buffer
}

func newProcessor[O any](mode processorMode, p provider.Provider, sb *scratch.Buffer) *processor[O] {
	return &processor[O]{mode: mode, prov: p, sb: sb}
}

func (pr *processor[O]) deinitScratch() {
	if pr.sb != nil {
		pr.sb.Deinit()
	}
}

// consumeInput handles the no-resolver-produced-value path: input's bytes
// become the result, by way of identity, unless the mode says otherwise.
func (pr *processor[O]) consumeInput(input []byte, used int, ownership ownershipSource, identity func([]byte) O) outcome.Outcome[O] {
	switch pr.mode {
	case modeDiscard:
		pr.prov.Drop(used)
		pr.deinitScratch()
		return outcome.Discarded[O](used)
	case modeClone:
		metrics.ObserveClone("allocate_always")
		cp := cloneBytes(input)
		val := identity(cp)
		pr.deinitScratch()
		return outcome.Produced(outcome.EvalState[O]{Value: val, Used: used, Owned: true})
	default:
		if ownership == ownershipScratch {
			owned := pr.sb.ConsumeOwned()
			val := identity(owned)
			return outcome.Produced(outcome.EvalState[O]{Value: val, Used: used, Owned: true})
		}
		val := identity(input)
		pr.deinitScratch()
		return outcome.Produced(outcome.EvalState[O]{Value: val, Used: used, Owned: ownership == ownershipOwned})
	}
}

// consume runs a whole-input resolver and routes its result (or rejection)
// per the resolver's declared behavior. Used for the terminal
// safe/fail-style resolution of §4.3's resolveLast/resolveExclude and for
// the single-item evaluator's optional resolver.
func (pr *processor[O]) consume(
	input []byte,
	used int,
	ownership ownershipSource,
	resolve func([]byte) (O, bool),
	behaviorIsSafe bool,
	identity func([]byte) O,
) outcome.Outcome[O] {
	val, ok := resolve(input)
	if ok {
		return pr.consumeResolved(input, val, used, ownership)
	}
	if behaviorIsSafe {
		return pr.consumeInput(input, used, ownership, identity)
	}
	pr.deinitScratch()
	return outcome.Failed[O]()
}

// consumeResolved implements the overlap-driven ownership decision of
// §4.4: full overlap borrows when possible (never in clone mode) or
// transfers scratch ownership;
// disjoint output independent of the working buffer borrows when not in
// clone mode; everything else clones.
func (pr *processor[O]) consumeResolved(input []byte, output O, used int, ownership ownershipSource) outcome.Outcome[O] {
	if pr.mode == modeDiscard {
		pr.prov.Drop(used)
		pr.deinitScratch()
		return outcome.Discarded[O](used)
	}

	overlap := valuesOverlap(input, output)

	if overlap == overlapFull && ownership == ownershipView && pr.mode != modeClone {
		pr.deinitScratch()
		return outcome.Produced(outcome.EvalState[O]{Value: output, Used: used, Owned: false})
	}

	if overlap == overlapFull && ownership == ownershipScratch {
		if _, castable := castBytesTo[O](nil); castable {
			owned := pr.sb.ConsumeOwned()
			cast, _ := castBytesTo[O](owned)
			return outcome.Produced(outcome.EvalState[O]{Value: cast, Used: used, Owned: true})
		}
		// Output type isn't byte-slice-shaped: no scratch ownership to
		// transfer into it. Fall through to the clone path below.
	}

	if overlap == overlapNone && pr.mode != modeClone && ownership == ownershipView {
		pr.deinitScratch()
		return outcome.Produced(outcome.EvalState[O]{Value: output, Used: used, Owned: false})
	}

	reason := "overlap"
	if pr.mode == modeClone {
		reason = "allocate_always"
	}
	metrics.ObserveClone(reason)
	cloned := cloneOutput(output)
	pr.deinitScratch()
	return outcome.Produced(outcome.EvalState[O]{Value: cloned, Used: used, Owned: true})
}

func cloneBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// castBytesTo reports whether O is exactly []byte-shaped by attempting the
// type assertion on a (possibly nil) []byte value. The result does not
// depend on b's contents, only on O's static type, so it is safe to probe
// with nil before doing real work.
func castBytesTo[O any](b []byte) (O, bool) {
	v, ok := any(b).(O)
	if !ok {
		var zero O
		return zero, false
	}
	return v, true
}

// cloneOutput heap-copies output when it is []byte-shaped; other O values
// are already copied by Go's own value-assignment semantics; Owned is
// still set to true by the caller since the spec's ownership bit is a
// caller contract, not a literal allocation receipt, for non-pointer O.
func cloneOutput[O any](output O) O {
	if b, ok := any(output).([]byte); ok {
		cp := cloneBytes(b)
		if cast, ok2 := any(cp).(O); ok2 {
			return cast
		}
	}
	return output
}

// valuesOverlap compares input's byte range against output's, when output
// is itself []byte-shaped; any other O is necessarily disjoint from the
// working buffer.
func valuesOverlap[O any](input []byte, output O) overlapKind {
	ob, ok := any(output).([]byte)
	if !ok || len(input) == 0 || len(ob) == 0 {
		return overlapNone
	}

	iStart := uintptr(unsafe.Pointer(unsafe.SliceData(input)))
	iEnd := iStart + uintptr(len(input))
	oStart := uintptr(unsafe.Pointer(unsafe.SliceData(ob)))
	oEnd := oStart + uintptr(len(ob))

	if iStart == oStart && iEnd == oEnd {
		return overlapFull
	}
	if oEnd <= iStart || iEnd <= oStart {
		return overlapNone
	}
	return overlapPartial
}
