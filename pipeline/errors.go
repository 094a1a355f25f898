package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors describing broken chain invariants. They are never returned
// from Run; construction code panics with an *InvariantError wrapping one of
// them, and config validation returns them (wrapped) as ordinary errors.
var (
	ErrNoPredecessor       = errors.New("node has no predecessor")
	ErrPredecessorAssigned = errors.New("predecessor already assigned")
	ErrNoSuccessor         = errors.New("node has no successor")
	ErrSuccessorAssigned   = errors.New("successor already assigned")
	ErrShapeMismatch       = errors.New("shapes cannot be joined")
	ErrTypeMismatch        = errors.New("stage types do not line up")
	ErrCycle               = errors.New("chain visits a node twice")
	ErrNotBidirectional    = errors.New("pipeline is not bidirectional")
	ErrNotSingleStage      = errors.New("pipeline does not hold exactly one stage")
	ErrZeroPipeline        = errors.New("zero-value pipeline")
)

// InvariantError is the panic value used for programming errors: misuse of
// the construction API or a bug in the chain itself.
type InvariantError struct {
	Err    error
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return "pipeline: " + e.Err.Error()
	}
	return "pipeline: " + e.Err.Error() + ": " + e.Detail
}

func (e *InvariantError) Unwrap() error { return e.Err }

func invariant(err error, format string, args ...any) *InvariantError {
	return &InvariantError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether v (typically a recovered panic value) is an
// *InvariantError wrapping target. A nil target matches any InvariantError.
func IsInvariant(v any, target error) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var ie *InvariantError
	if !errors.As(err, &ie) {
		return false
	}
	return target == nil || errors.Is(ie, target)
}
