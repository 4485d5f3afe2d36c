// Package operator describes the shape an Operator must have for the
// evaluator core to interpret it: a matcher, an optional filter, an
// optional resolver, size hints, and alignment. It deliberately does not
// provide a general combinator library (character classes, sequences,
// repetition) — those are out of scope for the core and live, in small
// illustrative form, in pkg/matchset.
package operator

import (
	"github.com/hashicorp/go-multierror"

	"github.com/shapestone/byteeval/pkg/scratch"
)

// Verdict is produced by a SequenceMatchFunc for each element it is shown.
type Verdict int

const (
	// Next means keep matching; the element is included and the loop
	// continues.
	Next Verdict = iota
	// DoneInclude means stop matching; the current element is included in
	// the result.
	DoneInclude
	// DoneExclude means stop matching; the current element is excluded
	// from the result. Asserts the loop has already matched at least one
	// element (index > 0).
	DoneExclude
	// Invalid means the sequence is malformed; fail without producing a
	// value.
	Invalid
)

// SingleMatchFunc is a single-element predicate.
type SingleMatchFunc func(b byte) bool

// SequenceMatchFunc is consulted with the element's index within the
// current match attempt and the element itself, and returns a Verdict.
type SequenceMatchFunc func(index int, b byte) Verdict

// FilterBehavior determines how a filter's outcome composes with the outer
// matcher.
type FilterBehavior int

const (
	// FilterFail propagates the filter's failure as the outer read's
	// failure.
	FilterFail FilterBehavior = iota
	// FilterFallback retries unfiltered when the filter fails; the outer
	// matcher then sees the raw byte.
	FilterFallback
	// FilterOverride uses the filter's matched value unconditionally when
	// it succeeds, skipping the outer matcher entirely; falls back to
	// unfiltered bytes when the filter fails.
	FilterOverride
	// FilterValidate requires the filter to succeed (a filter miss fails
	// the read); the filter's value is what the outer matcher then sees.
	FilterValidate
	// FilterUnless inverts the filter: a filter match is a read failure,
	// and a filter miss falls through to the unfiltered path. This is the
	// "breaking" behavior a sequence's main loop treats as a clean
	// terminal rather than a hard failure.
	FilterUnless
)

// Breaking reports whether a read failure under this filter behavior
// should be treated, inside the sequence evaluator's main loop, as a clean
// terminal (resolveExclude) rather than a hard failure. This is fixed at
// composition time, per spec.
func (b FilterBehavior) Breaking() bool {
	return b == FilterUnless
}

// Filter is a nested single-element operator that pre-screens a byte
// before the outer matcher (or, under FilterOverride, instead of it).
// Filters may not themselves carry a filter: composition-time validation
// rejects that to bound recursion.
type Filter struct {
	Operator *SingleOperator[byte]
	Behavior FilterBehavior
}

// ResolveBehavior selects how a resolver's outcome composes with the
// accumulated match.
type ResolveBehavior int

const (
	// ResolveNone means there is no resolver; the matched bytes are the
	// result (converted via the operator's Identity function).
	ResolveNone ResolveBehavior = iota
	// ResolveSafe resolves once, at the end; a rejection falls back to
	// the unresolved bytes.
	ResolveSafe
	// ResolveFail resolves once, at the end; a rejection fails the whole
	// evaluation.
	ResolveFail
	// ResolvePartial resolves after every element; the first time it
	// accepts, the result short-circuits the loop.
	ResolvePartial
	// ResolvePartialDefer behaves like ResolveNone until index reaches its
	// DeferMin, then behaves like ResolvePartial.
	ResolvePartialDefer
	// ResolveEachSafe resolves each element individually; a rejection
	// keeps the original element.
	ResolveEachSafe
	// ResolveEachFail resolves each element individually; a rejection
	// fails the whole evaluation.
	ResolveEachFail
)

// SingleResolver transforms a single matched byte into an output value.
// Only ResolveSafe and ResolveFail are meaningful for a single-item
// operator: there is no sequence to partially resolve or defer over.
type SingleResolver[O any] struct {
	Behavior ResolveBehavior
	Resolve  func(b byte) (O, bool)
}

// SequenceResolver transforms an accumulated sequence match. Resolve
// backs ResolveSafe/ResolveFail/ResolvePartial/ResolvePartialDefer;
// ResolveItem backs ResolveEachSafe/ResolveEachFail.
type SequenceResolver[O any] struct {
	Behavior ResolveBehavior
	DeferMin int
	Resolve  func(matched []byte) (O, bool)
	ResolveItem func(b byte) (byte, bool)
}

// SingleOperator is the shape consumed by the single-item evaluator: one
// provider read, an optional filter, a matcher predicate, an optional
// resolver.
type SingleOperator[O any] struct {
	Match     SingleMatchFunc
	Capacity  int
	Filter    *Filter
	Resolver  *SingleResolver[O]
	// Identity converts the matched byte into O whenever no resolver
	// definitively produced one: Resolver nil, or a rejected ResolveSafe.
	// Required in both those cases.
	Identity    func(b byte) O
	Alignment   int
	ScratchHint scratch.Hint
}

// SequenceOperator is the shape consumed by the sequence evaluator:
// iterative reads driven by a SequenceMatchFunc, with scratch management,
// per-element or whole-match resolution, and alignment.
type SequenceOperator[O any] struct {
	Match     SequenceMatchFunc
	Capacity  int
	Filter    *Filter
	Resolver  *SequenceResolver[O]
	// Identity converts the final accumulated bytes into O when no
	// resolver took over the result (Resolver nil, an each_* resolver
	// that only ever transforms individual bytes, or a rejected
	// ResolveSafe). Required in all those cases.
	Identity    func(matched []byte) O
	Alignment   int
	ScratchHint scratch.Hint
}

// Validate checks composition-time invariants and aggregates every
// violation found, rather than stopping at the first one.
func (o *SingleOperator[O]) Validate() error {
	var result *multierror.Error
	if o.Match == nil {
		result = multierror.Append(result, errNilMatch)
	}
	if o.Filter != nil {
		if o.Filter.Operator == nil {
			result = multierror.Append(result, errNilFilterOperator)
		} else if o.Filter.Operator.Filter != nil {
			result = multierror.Append(result, errNestedFilter)
		}
	}
	needsIdentity := o.Resolver == nil || o.Resolver.Behavior == ResolveSafe
	if needsIdentity && o.Identity == nil {
		result = multierror.Append(result, errMissingIdentity)
	}
	if o.Alignment < 0 {
		result = multierror.Append(result, errNegativeAlignment)
	}
	return result.ErrorOrNil()
}

// Validate checks composition-time invariants and aggregates every
// violation found, rather than stopping at the first one.
func (o *SequenceOperator[O]) Validate() error {
	var result *multierror.Error
	if o.Match == nil {
		result = multierror.Append(result, errNilMatch)
	}
	if o.Filter != nil {
		if o.Filter.Operator == nil {
			result = multierror.Append(result, errNilFilterOperator)
		} else if o.Filter.Operator.Filter != nil {
			result = multierror.Append(result, errNestedFilter)
		}
	}
	needsIdentity := o.Resolver == nil ||
		o.Resolver.Behavior == ResolveSafe ||
		o.Resolver.Behavior == ResolveEachSafe ||
		o.Resolver.Behavior == ResolveEachFail
	if needsIdentity && o.Identity == nil {
		result = multierror.Append(result, errMissingIdentity)
	}
	if o.Resolver != nil && o.Resolver.Behavior == ResolvePartialDefer && o.Resolver.DeferMin < 0 {
		result = multierror.Append(result, errNegativeDeferMin)
	}
	if o.Alignment < 0 {
		result = multierror.Append(result, errNegativeAlignment)
	}
	return result.ErrorOrNil()
}
