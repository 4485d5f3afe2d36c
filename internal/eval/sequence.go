package eval

import (
	"github.com/shapestone/byteeval/internal/metrics"
	"github.com/shapestone/byteeval/pkg/behavior"
	"github.com/shapestone/byteeval/pkg/operator"
	"github.com/shapestone/byteeval/pkg/outcome"
	"github.com/shapestone/byteeval/pkg/provider"
	"github.com/shapestone/byteeval/pkg/scratch"
)

// EvaluateSequence implements §4.3: iterative reads, scratch management,
// per-element or whole-match resolution, and the four terminal verdicts.
// skip is the absolute provider offset to start from; callers driving a
// fresh read pass the provider's own ConsumedCount.
func EvaluateSequence[O any](p provider.Provider, beh behavior.Consumption, skip int, op *operator.SequenceOperator[O]) (outcome.Outcome[O], error) {
	scratchNeeded := beh.CanTake() || op.Filter != nil ||
		(op.Resolver != nil && (op.Resolver.Behavior == operator.ResolveEachSafe || op.Resolver.Behavior == operator.ResolveEachFail))

	padding := alignPadding(skip, alignmentFor(op.Alignment))
	if beh.CanTake() && padding > 0 {
		// Reserve first: a streaming provider only drops bytes already in
		// its window.
		if err := p.ReserveSlice(skip, padding); err != nil {
			metrics.ObserveOutcome("sequence", "error")
			return outcome.Failed[O](), err
		}
		p.Drop(padding)
	}

	var sb *scratch.Buffer
	if scratchNeeded {
		sb = scratch.New(op.ScratchHint)
	}

	se := &seqEval[O]{
		p:          p,
		beh:        beh,
		op:         op,
		sb:         sb,
		pr:         newProcessor[O](modeFor(beh), p, sb),
		matchStart: skip + padding,
		padding:    padding,
	}

	result, err := se.run()

	kindLabel := "ok"
	switch {
	case err != nil:
		kindLabel = "error"
	case result.Kind() == outcome.Fail:
		kindLabel = "fail"
	case result.Kind() == outcome.Discard:
		kindLabel = "discard"
	}
	metrics.ObserveOutcome("sequence", kindLabel)
	return result, err
}

// seqEval holds one sequence evaluation's mutable state: how many bytes
// have matched so far, and the scratch buffer they may have spilled into.
type seqEval[O any] struct {
	p          provider.Provider
	beh        behavior.Consumption
	op         *operator.SequenceOperator[O]
	sb         *scratch.Buffer
	pr         *processor[O]
	matchStart int
	used       int
	// padding is the alignment slack consumed before matchStart. It never
	// contributes to matchStart/used addressing (those track matched content
	// only) but is folded back in whenever a final Used is reported.
	padding int
}

// totalUsed is the byte count reported on the outcome: alignment padding
// plus every matched (and possibly filtered/resolved) content byte.
func (se *seqEval[O]) totalUsed() int {
	return se.padding + se.used
}

func (se *seqEval[O]) readOffset() int {
	if se.beh.CanTake() {
		// Each matched element is dropped immediately (see appendElement), so
		// the next element always sits at the provider's current front.
		return se.p.ConsumedCount()
	}
	return se.matchStart + se.used
}

func (se *seqEval[O]) fail() {
	if se.sb != nil {
		se.sb.Deinit()
	}
}

func (se *seqEval[O]) ownership() ownershipSource {
	if se.sb != nil && se.sb.Active() {
		return ownershipScratch
	}
	return ownershipView
}

func (se *seqEval[O]) currentView() []byte {
	if se.sb != nil && se.sb.Active() {
		return se.sb.View()
	}
	return se.p.ViewSlice(se.matchStart, se.used)
}

// appendElement folds one matched element into the accumulated match.
// modified marks an element that diverges from the provider's own bytes
// (it came from a filter or a per-element resolver); a canTake behavior is
// always treated as divergent too, since its bytes get dropped from the
// provider immediately and so must live in scratch from the first element.
func (se *seqEval[O]) appendElement(i int, v byte, used int, modified bool) {
	divergent := modified || se.beh.CanTake()
	if divergent && se.sb != nil && !se.sb.Active() {
		se.sb.Activate()
		metrics.ObserveScratchActivation()
		if se.used > 0 {
			se.sb.AppendSlice(se.p.ViewSlice(se.matchStart, se.used))
		}
	}
	if se.sb != nil && se.sb.Active() {
		se.sb.AppendItem(v)
	}
	if se.beh.CanTake() {
		se.p.Drop(used)
	}
	se.used += used
}

func (se *seqEval[O]) run() (outcome.Outcome[O], error) {
	for i := 0; ; i++ {
		rr, err := readAt(se.p, se.beh, se.readOffset(), se.op.Filter)
		if err != nil {
			se.fail()
			return outcome.Failed[O](), err
		}

		if rr.kind == readFail {
			if se.op.Filter != nil && se.op.Filter.Behavior.Breaking() {
				return se.resolveExclude(), nil
			}
			se.fail()
			return outcome.Failed[O](), nil
		}

		isFiltered := rr.kind == readFiltered
		if isFiltered && se.op.Filter.Behavior == operator.FilterOverride {
			if short, res := se.resolveCycle(i, rr.value, rr.used, true); short {
				return res, nil
			}
			continue
		}

		switch se.op.Match(i, rr.value) {
		case operator.Next:
			if short, res := se.resolveCycle(i, rr.value, rr.used, isFiltered); short {
				return res, nil
			}
		case operator.DoneInclude:
			return se.resolveLast(i, rr.value, rr.used, isFiltered), nil
		case operator.DoneExclude:
			if i == 0 {
				panic("byteeval: sequence matcher returned done_exclude at index 0")
			}
			return se.resolveExclude(), nil
		default: // operator.Invalid or an unrecognized verdict
			se.fail()
			return outcome.Failed[O](), nil
		}
	}
}

// resolveCycle folds one matched-but-not-terminal element in, per the
// resolver behavior table in §4.3. A true first return value means the
// loop must stop now and return the accompanying outcome.
func (se *seqEval[O]) resolveCycle(i int, item byte, used int, isFiltered bool) (bool, outcome.Outcome[O]) {
	r := se.op.Resolver

	switch {
	case r == nil, r.Behavior == operator.ResolveSafe, r.Behavior == operator.ResolveFail:
		se.appendElement(i, item, used, isFiltered)
		return false, outcome.Outcome[O]{}

	case r.Behavior == operator.ResolvePartialDefer && i < r.DeferMin:
		se.appendElement(i, item, used, isFiltered)
		return false, outcome.Outcome[O]{}

	case r.Behavior == operator.ResolvePartialDefer, r.Behavior == operator.ResolvePartial:
		se.appendElement(i, item, used, isFiltered)
		view := se.currentView()
		if val, ok := r.Resolve(view); ok {
			return true, se.pr.consumeResolved(view, val, se.totalUsed(), se.ownership())
		}
		return false, outcome.Outcome[O]{}

	case r.Behavior == operator.ResolveEachSafe:
		if val, ok := r.ResolveItem(item); ok {
			se.appendElement(i, val, used, true)
		} else {
			se.appendElement(i, item, used, isFiltered)
		}
		return false, outcome.Outcome[O]{}

	case r.Behavior == operator.ResolveEachFail:
		val, ok := r.ResolveItem(item)
		if !ok {
			se.fail()
			return true, outcome.Failed[O]()
		}
		se.appendElement(i, val, used, true)
		return false, outcome.Outcome[O]{}

	default:
		se.appendElement(i, item, used, isFiltered)
		return false, outcome.Outcome[O]{}
	}
}

// resolveLast folds in the final, included element and produces the
// evaluation's result.
func (se *seqEval[O]) resolveLast(i int, item byte, used int, isFiltered bool) outcome.Outcome[O] {
	r := se.op.Resolver
	identity := se.op.Identity

	switch {
	case r != nil && r.Behavior == operator.ResolveEachSafe:
		if val, ok := r.ResolveItem(item); ok {
			se.appendElement(i, val, used, true)
		} else {
			se.appendElement(i, item, used, isFiltered)
		}
		view := se.currentView()
		return se.pr.consumeInput(view, se.totalUsed(), se.ownership(), identity)

	case r != nil && r.Behavior == operator.ResolveEachFail:
		val, ok := r.ResolveItem(item)
		if !ok {
			se.fail()
			return outcome.Failed[O]()
		}
		se.appendElement(i, val, used, true)
		view := se.currentView()
		return se.pr.consumeInput(view, se.totalUsed(), se.ownership(), identity)

	case r != nil && (r.Behavior == operator.ResolvePartial || r.Behavior == operator.ResolvePartialDefer):
		se.appendElement(i, item, used, isFiltered)
		view := se.currentView()
		val, ok := r.Resolve(view)
		if !ok {
			se.fail()
			return outcome.Failed[O]()
		}
		return se.pr.consumeResolved(view, val, se.totalUsed(), se.ownership())

	default:
		se.appendElement(i, item, used, isFiltered)
		view := se.currentView()
		if r == nil {
			return se.pr.consumeInput(view, se.totalUsed(), se.ownership(), identity)
		}
		resolve := func(b []byte) (O, bool) { return r.Resolve(b) }
		return se.pr.consume(view, se.totalUsed(), se.ownership(), resolve, r.Behavior == operator.ResolveSafe, identity)
	}
}

// resolveExclude applies a terminal safe/fail-style resolver to the
// accumulated match without including the element that triggered
// termination. partial/partial_defer resolvers must have already resolved
// mid-loop (§4.3); reaching here with one active is a composition
// invariant violation.
func (se *seqEval[O]) resolveExclude() outcome.Outcome[O] {
	r := se.op.Resolver
	if r != nil && (r.Behavior == operator.ResolvePartial || r.Behavior == operator.ResolvePartialDefer) {
		panic("byteeval: partial/partial_defer resolver reached a terminal exclude without resolving mid-loop")
	}

	view := se.currentView()
	identity := se.op.Identity

	if r == nil || r.Behavior == operator.ResolveEachSafe || r.Behavior == operator.ResolveEachFail {
		return se.pr.consumeInput(view, se.totalUsed(), se.ownership(), identity)
	}
	resolve := func(b []byte) (O, bool) { return r.Resolve(b) }
	return se.pr.consume(view, se.totalUsed(), se.ownership(), resolve, r.Behavior == operator.ResolveSafe, identity)
}
