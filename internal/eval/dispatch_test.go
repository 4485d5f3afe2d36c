package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shapestone/byteeval/pkg/behavior"
	"github.com/shapestone/byteeval/pkg/operator"
	"github.com/shapestone/byteeval/pkg/provider"
)

func TestEvaluateDispatchesSingle(t *testing.T) {
	p := provider.NewSlice([]byte("5x"))
	out, err := Evaluate(p, behavior.DirectView, 0, operator.Single[byte](digitOp()))
	require.NoError(t, err)
	require.True(t, out.IsOk())
	require.Equal(t, byte('5'), out.State().Value)
}

func TestEvaluateDispatchesSequence(t *testing.T) {
	p := provider.NewSlice([]byte("123x"))
	out, err := Evaluate(p, behavior.DirectView, 0, operator.Seq[[]byte](digitRun()))
	require.NoError(t, err)
	require.True(t, out.IsOk())
	require.Equal(t, "123", string(out.State().Value))
}

func TestEvaluateUnknownKindErrors(t *testing.T) {
	p := provider.NewSlice([]byte("x"))
	// A genuinely out-of-range kind, not the zero-value Operator: Kind's
	// zero value is KindSingle, and a zero-value Operator would dispatch to
	// EvaluateSingle with a nil *SingleOperator, panicking instead of
	// exercising the default: branch this test means to cover.
	_, err := Evaluate[byte](p, behavior.DirectView, 0, operator.Operator[byte]{Kind: operator.Kind(2)})
	require.Error(t, err)
}
