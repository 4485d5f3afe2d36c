package operator

// Kind distinguishes which shape an Operator carries.
type Kind int

const (
	KindSingle Kind = iota
	KindSequence
)

// Operator is the sum type the Evaluator Dispatch switches on: exactly one
// of Single or Sequence is set, matching Kind.
type Operator[O any] struct {
	Kind     Kind
	Single   *SingleOperator[O]
	Sequence *SequenceOperator[O]
}

// Single wraps a SingleOperator as a dispatchable Operator.
func Single[O any](op *SingleOperator[O]) Operator[O] {
	return Operator[O]{Kind: KindSingle, Single: op}
}

// Seq wraps a SequenceOperator as a dispatchable Operator.
func Seq[O any](op *SequenceOperator[O]) Operator[O] {
	return Operator[O]{Kind: KindSequence, Sequence: op}
}

// Validate delegates to whichever concrete operator is set.
func (o Operator[O]) Validate() error {
	switch o.Kind {
	case KindSingle:
		return o.Single.Validate()
	case KindSequence:
		return o.Sequence.Validate()
	default:
		return errUnknownKind
	}
}
