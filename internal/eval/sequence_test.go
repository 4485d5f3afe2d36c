package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapestone/byteeval/pkg/behavior"
	"github.com/shapestone/byteeval/pkg/matchset"
	"github.com/shapestone/byteeval/pkg/operator"
	"github.com/shapestone/byteeval/pkg/provider"
	"github.com/shapestone/byteeval/pkg/scratch"
)

func digitRun() *operator.SequenceOperator[[]byte] {
	return &operator.SequenceOperator[[]byte]{
		Match:       matchset.While(matchset.Digit),
		Identity:    matchset.IdentityBytes,
		ScratchHint: scratch.DynamicHint(),
	}
}

func TestEvaluateSequenceDirectViewBorrows(t *testing.T) {
	p := provider.NewSlice([]byte("123x"))
	out, err := EvaluateSequence(p, behavior.DirectView, 0, digitRun())
	require.NoError(t, err)
	require.True(t, out.IsOk())
	st := out.State()
	require.Equal(t, "123", string(st.Value))
	require.Equal(t, 3, st.Used)
	require.False(t, st.Owned)
	require.Equal(t, 0, p.ConsumedCount())
}

func TestEvaluateSequenceStreamTakeDropsAsItGoes(t *testing.T) {
	p := provider.NewSlice([]byte("123x"))
	out, err := EvaluateSequence(p, behavior.StreamTake, 0, digitRun())
	require.NoError(t, err)
	require.True(t, out.IsOk())
	require.Equal(t, "123", string(out.State().Value))
	require.Equal(t, 3, p.ConsumedCount())
}

func TestEvaluateSequenceEmptyMatchIsFail(t *testing.T) {
	p := provider.NewSlice([]byte("x123"))
	out, err := EvaluateSequence(p, behavior.DirectView, 0, digitRun())
	require.NoError(t, err)
	require.True(t, out.IsFail())
	require.Equal(t, 0, p.ConsumedCount())
}

func TestEvaluateSequenceDoneExcludeViaUntil(t *testing.T) {
	op := &operator.SequenceOperator[[]byte]{
		Match:       matchset.Until(matchset.Byte(',')),
		Identity:    matchset.IdentityBytes,
		ScratchHint: scratch.DynamicHint(),
	}
	p := provider.NewSlice([]byte("abc,def"))
	out, err := EvaluateSequence(p, behavior.DirectView, 0, op)
	require.NoError(t, err)
	require.True(t, out.IsOk())
	require.Equal(t, "abc", string(out.State().Value))
}

func TestEvaluateSequenceFilterUnlessBreaksRepeatUntil(t *testing.T) {
	stop := &operator.SingleOperator[byte]{
		Match:    func(b byte) bool { return b == 'd' },
		Identity: func(b byte) byte { return b },
	}
	op := &operator.SequenceOperator[[]byte]{
		Match:       func(i int, b byte) operator.Verdict { return operator.Next },
		Identity:    matchset.IdentityBytes,
		Filter:      &operator.Filter{Operator: stop, Behavior: operator.FilterUnless},
		ScratchHint: scratch.DynamicHint(),
	}
	p := provider.NewSlice([]byte("abcde"))
	out, err := EvaluateSequence(p, behavior.StreamTake, 0, op)
	require.NoError(t, err)
	require.True(t, out.IsOk())
	require.Equal(t, "abc", string(out.State().Value))
	require.Equal(t, 3, p.ConsumedCount())
}

func TestEvaluateSequenceEachSafeResolvesPerElement(t *testing.T) {
	op := &operator.SequenceOperator[[]byte]{
		Match:    matchset.While(matchset.Alpha),
		Identity: matchset.IdentityBytes,
		Resolver: &operator.SequenceResolver[[]byte]{
			Behavior: operator.ResolveEachSafe,
			ResolveItem: func(b byte) (byte, bool) {
				if b >= 'a' && b <= 'z' {
					return b - 32, true
				}
				return b, false
			},
		},
		ScratchHint: scratch.DynamicHint(),
	}
	p := provider.NewSlice([]byte("abc9"))
	out, err := EvaluateSequence(p, behavior.DirectView, 0, op)
	require.NoError(t, err)
	require.True(t, out.IsOk())
	require.Equal(t, "ABC", string(out.State().Value))
}

func TestEvaluateSequencePartialResolveShortCircuits(t *testing.T) {
	op := &operator.SequenceOperator[int]{
		Match: matchset.While(matchset.Digit),
		Resolver: &operator.SequenceResolver[int]{
			Behavior: operator.ResolvePartial,
			Resolve: func(matched []byte) (int, bool) {
				// Accept as soon as two digits have matched.
				if len(matched) >= 2 {
					return len(matched), true
				}
				return 0, false
			},
		},
		ScratchHint: scratch.DynamicHint(),
	}
	p := provider.NewSlice([]byte("123456"))
	out, err := EvaluateSequence(p, behavior.DirectView, 0, op)
	require.NoError(t, err)
	require.True(t, out.IsOk())
	require.Equal(t, 2, out.State().Value)
	require.Equal(t, 2, out.State().Used)
}

func TestEvaluateSequenceAlignment(t *testing.T) {
	op := digitRun()
	op.Alignment = 4
	// One byte already consumed elsewhere; skip must track the provider's
	// own ConsumedCount for a take-based evaluation to drop the right bytes.
	p := provider.NewSlice([]byte("axxx234x"))
	p.Drop(1)
	out, err := EvaluateSequence(p, behavior.StreamTake, p.ConsumedCount(), op)
	require.NoError(t, err)
	require.True(t, out.IsOk())
	require.Equal(t, "234", string(out.State().Value))
	// Used covers the 3 padding bytes plus the 3-digit match.
	require.Equal(t, 6, out.State().Used)
	require.Equal(t, 7, p.ConsumedCount())
}
