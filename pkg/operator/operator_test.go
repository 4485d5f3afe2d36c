package operator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleOperatorValidateRequiresMatch(t *testing.T) {
	op := &SingleOperator[byte]{Identity: func(b byte) byte { return b }}
	require.Error(t, op.Validate())
}

func TestSingleOperatorValidateRequiresIdentityWhenNoResolver(t *testing.T) {
	op := &SingleOperator[byte]{Match: func(b byte) bool { return true }}
	require.Error(t, op.Validate())
}

func TestSingleOperatorValidateRequiresIdentityForResolveSafe(t *testing.T) {
	op := &SingleOperator[int]{
		Match:    func(b byte) bool { return true },
		Resolver: &SingleResolver[int]{Behavior: ResolveSafe, Resolve: func(b byte) (int, bool) { return 0, false }},
	}
	require.Error(t, op.Validate())
}

func TestSingleOperatorValidateResolveFailNeedsNoIdentity(t *testing.T) {
	op := &SingleOperator[int]{
		Match:    func(b byte) bool { return true },
		Resolver: &SingleResolver[int]{Behavior: ResolveFail, Resolve: func(b byte) (int, bool) { return 1, true }},
	}
	require.NoError(t, op.Validate())
}

func TestSingleOperatorValidateRejectsNestedFilter(t *testing.T) {
	inner := &SingleOperator[byte]{
		Match:  func(b byte) bool { return true },
		Filter: &Filter{Operator: &SingleOperator[byte]{Match: func(b byte) bool { return true }, Identity: func(b byte) byte { return b }}, Behavior: FilterFail},
		Identity: func(b byte) byte { return b },
	}
	op := &SingleOperator[byte]{
		Match:    func(b byte) bool { return true },
		Filter:   &Filter{Operator: inner, Behavior: FilterFail},
		Identity: func(b byte) byte { return b },
	}
	require.Error(t, op.Validate())
}

func TestSingleOperatorValidateAggregatesErrors(t *testing.T) {
	op := &SingleOperator[byte]{Alignment: -1}
	err := op.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "match function")
	require.Contains(t, err.Error(), "Identity")
	require.Contains(t, err.Error(), "alignment")
}

func TestSequenceOperatorValidateEachSafeNeedsIdentity(t *testing.T) {
	op := &SequenceOperator[byte]{
		Match:    func(i int, b byte) Verdict { return DoneInclude },
		Resolver: &SequenceResolver[byte]{Behavior: ResolveEachSafe, ResolveItem: func(b byte) (byte, bool) { return b, true }},
	}
	require.Error(t, op.Validate())
}

func TestSequenceOperatorValidatePartialDeferNegative(t *testing.T) {
	op := &SequenceOperator[[]byte]{
		Match:    func(i int, b byte) Verdict { return DoneInclude },
		Identity: func(b []byte) []byte { return b },
		Resolver: &SequenceResolver[[]byte]{Behavior: ResolvePartialDefer, DeferMin: -1, Resolve: func(b []byte) ([]byte, bool) { return b, true }},
	}
	require.Error(t, op.Validate())
}

func TestOperatorKindDispatchesValidate(t *testing.T) {
	single := Single[byte](&SingleOperator[byte]{Match: func(b byte) bool { return true }, Identity: func(b byte) byte { return b }})
	require.NoError(t, single.Validate())

	seq := Seq[[]byte](&SequenceOperator[[]byte]{Match: func(i int, b byte) Verdict { return DoneInclude }, Identity: func(b []byte) []byte { return b }})
	require.NoError(t, seq.Validate())
}
