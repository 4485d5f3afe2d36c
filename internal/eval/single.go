package eval

import (
	"github.com/shapestone/byteeval/internal/metrics"
	"github.com/shapestone/byteeval/pkg/behavior"
	"github.com/shapestone/byteeval/pkg/operator"
	"github.com/shapestone/byteeval/pkg/outcome"
	"github.com/shapestone/byteeval/pkg/provider"
)

// EvaluateSingle implements §4.2: one provider read, an optional filter,
// a matcher predicate, an optional resolver, then post-processing. skip is
// the absolute provider offset to start from; callers driving a fresh read
// pass the provider's own ConsumedCount.
func EvaluateSingle[O any](p provider.Provider, beh behavior.Consumption, skip int, op *operator.SingleOperator[O]) (outcome.Outcome[O], error) {
	padding := alignPadding(skip, alignmentFor(op.Alignment))
	offset := skip + padding

	rr, err := readAt(p, beh, offset, op.Filter)
	if err != nil {
		metrics.ObserveOutcome("single", "error")
		return outcome.Failed[O](), err
	}
	if rr.kind == readFail {
		metrics.ObserveOutcome("single", "fail")
		return outcome.Failed[O](), nil
	}

	matched := rr.kind == readFiltered && op.Filter.Behavior == operator.FilterOverride
	if !matched {
		matched = op.Match(rr.value)
	}
	if !matched {
		metrics.ObserveOutcome("single", "fail")
		return outcome.Failed[O](), nil
	}

	used := padding + rr.used
	if beh.CanTake() {
		p.Drop(used)
	}

	mode := modeFor(beh)
	ownership := ownershipView
	if rr.owned {
		ownership = ownershipOwned
	}

	pr := newProcessor[O](mode, p, nil)
	input := []byte{rr.value}
	identity := func(b []byte) O { return op.Identity(b[0]) }

	var result outcome.Outcome[O]
	if op.Resolver == nil {
		result = pr.consumeInput(input, used, ownership, identity)
	} else {
		resolve := func(b []byte) (O, bool) { return op.Resolver.Resolve(b[0]) }
		safe := op.Resolver.Behavior == operator.ResolveSafe
		result = pr.consume(input, used, ownership, resolve, safe, identity)
	}

	kindLabel := "ok"
	switch result.Kind() {
	case outcome.Fail:
		kindLabel = "fail"
	case outcome.Discard:
		kindLabel = "discard"
	}
	metrics.ObserveOutcome("single", kindLabel)
	return result, nil
}

func modeFor(beh behavior.Consumption) processorMode {
	switch {
	case beh.Discards():
		return modeDiscard
	case beh.AllocateAlways():
		return modeClone
	default:
		return modeStandard
	}
}
