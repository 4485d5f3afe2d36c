package eval

import (
	"github.com/shapestone/byteeval/pkg/behavior"
	"github.com/shapestone/byteeval/pkg/operator"
	"github.com/shapestone/byteeval/pkg/provider"
)

type readKind int

const (
	readStandard readKind = iota
	readFiltered
	readFail
)

// readResult is what the filter-aware read step (§4.5) hands back to
// whichever evaluator called it.
type readResult struct {
	kind  readKind
	value byte
	used  int
	owned bool
}

// readAt implements the Provider's filter-aware read contract: when a
// filter is configured, it is evaluated first — recursively, through the
// same core, always view-projected so it never advances the cursor — and
// its outcome decides whether the unfiltered path runs at all.
func readAt(p provider.Provider, beh behavior.Consumption, offset int, filter *operator.Filter) (readResult, error) {
	if filter != nil {
		sub, err := EvaluateSingle(p, beh.AsView(), offset, filter.Operator)
		if err != nil {
			return readResult{}, err
		}
		switch {
		case sub.IsOk() && filter.Behavior == operator.FilterUnless:
			return readResult{kind: readFail}, nil
		case sub.IsOk():
			st := sub.State()
			return readResult{kind: readFiltered, value: st.Value, used: st.Used, owned: st.Owned}, nil
		default: // sub.IsFail()
			switch filter.Behavior {
			case operator.FilterFail, operator.FilterValidate:
				return readResult{kind: readFail}, nil
			case operator.FilterUnless, operator.FilterFallback, operator.FilterOverride:
				// fall through to the unfiltered path below
			}
		}
	}

	if err := p.ReserveItem(offset); err != nil {
		return readResult{}, err
	}
	return readResult{kind: readStandard, value: p.ViewItem(offset), used: 1, owned: false}, nil
}
