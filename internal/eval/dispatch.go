package eval

import (
	"fmt"

	"github.com/shapestone/byteeval/pkg/behavior"
	"github.com/shapestone/byteeval/pkg/operator"
	"github.com/shapestone/byteeval/pkg/outcome"
	"github.com/shapestone/byteeval/pkg/provider"
)

// Evaluate implements §4.1: the dispatch that routes a composed Operator to
// the single-item or sequence evaluator. It does no work of its own beyond
// the routing decision.
func Evaluate[O any](p provider.Provider, beh behavior.Consumption, skip int, op operator.Operator[O]) (outcome.Outcome[O], error) {
	switch op.Kind {
	case operator.KindSingle:
		return EvaluateSingle(p, beh, skip, op.Single)
	case operator.KindSequence:
		return EvaluateSequence(p, beh, skip, op.Sequence)
	default:
		return outcome.Failed[O](), fmt.Errorf("eval: operator has neither single nor sequence shape (kind %d)", op.Kind)
	}
}
