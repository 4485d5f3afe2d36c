package operator

import "errors"

var (
	errNilMatch          = errors.New("operator: match function is nil")
	errNilFilterOperator = errors.New("operator: filter has a nil operator")
	errNestedFilter      = errors.New("operator: filter operators may not themselves carry a filter")
	errMissingIdentity   = errors.New("operator: Identity is required when no resolver (or only an each_* resolver) sets the output type")
	errNegativeDeferMin  = errors.New("operator: partial_defer requires a non-negative DeferMin")
	errNegativeAlignment = errors.New("operator: alignment must be non-negative")
	errUnknownKind       = errors.New("operator: Operator has neither Single nor Sequence set")
)
