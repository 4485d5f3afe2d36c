// Package matchset collects small, illustrative matcher and resolver
// constructors over the operator shapes in pkg/operator. It is not a
// grammar or combinator library — just the common byte classes and
// sequence idioms every operator-building caller ends up writing once.
package matchset

import (
	"github.com/shapestone/byteeval/pkg/operator"
)

// Byte is a SingleMatchFunc matching one exact byte value.
func Byte(want byte) operator.SingleMatchFunc {
	return func(b byte) bool { return b == want }
}

// AnyOf is a SingleMatchFunc matching any byte in the given set.
func AnyOf(set string) operator.SingleMatchFunc {
	return func(b byte) bool {
		for i := 0; i < len(set); i++ {
			if set[i] == b {
				return true
			}
		}
		return false
	}
}

// Digit matches ASCII '0'-'9'.
func Digit(b byte) bool { return b >= '0' && b <= '9' }

// Alpha matches ASCII letters.
func Alpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

// AlphaNumeric matches Alpha or Digit.
func AlphaNumeric(b byte) bool { return Alpha(b) || Digit(b) }

// WhiteSpace matches space, tab, CR, or LF.
func WhiteSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Not negates a SingleMatchFunc.
func Not(m operator.SingleMatchFunc) operator.SingleMatchFunc {
	return func(b byte) bool { return !m(b) }
}

// While builds a SequenceMatchFunc that keeps matching while pred holds and
// terminates (done_exclude, so that element is not included) on the first
// element where it doesn't, or reports Invalid if index 0 already fails.
func While(pred operator.SingleMatchFunc) operator.SequenceMatchFunc {
	return func(index int, b byte) operator.Verdict {
		if pred(b) {
			return operator.Next
		}
		if index == 0 {
			return operator.Invalid
		}
		return operator.DoneExclude
	}
}

// Until builds a SequenceMatchFunc that matches every element up to but
// excluding the first one satisfying stop. An empty match (stop on index 0)
// is reported as Invalid; pair with a Filter using FilterUnless to make the
// stop condition terminate the read itself instead (a true repeat-until).
func Until(stop operator.SingleMatchFunc) operator.SequenceMatchFunc {
	return func(index int, b byte) operator.Verdict {
		if stop(b) {
			if index == 0 {
				return operator.Invalid
			}
			return operator.DoneExclude
		}
		return operator.Next
	}
}

// Exactly builds a SequenceMatchFunc that requires exactly n elements, all
// satisfying pred, terminating with the nth element included.
func Exactly(n int, pred operator.SingleMatchFunc) operator.SequenceMatchFunc {
	return func(index int, b byte) operator.Verdict {
		if !pred(b) {
			return operator.Invalid
		}
		if index == n-1 {
			return operator.DoneInclude
		}
		return operator.Next
	}
}

// Literal builds a SequenceMatchFunc requiring the exact byte sequence want,
// in order.
func Literal(want []byte) operator.SequenceMatchFunc {
	return func(index int, b byte) operator.Verdict {
		if index >= len(want) || b != want[index] {
			return operator.Invalid
		}
		if index == len(want)-1 {
			return operator.DoneInclude
		}
		return operator.Next
	}
}

// IdentityBytes is the trivial Identity for O = []byte: the matched bytes
// themselves.
func IdentityBytes(b []byte) []byte { return b }

// IdentityByte is the trivial Identity for O = byte.
func IdentityByte(b byte) byte { return b }
