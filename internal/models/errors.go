package models

import (
	"errors"
	"fmt"
)

// Reason is a machine-checkable rejection code carried to the feedback layer.
type Reason string

const (
	ReasonEmptyStructure   Reason = "empty_structure"
	ReasonOutOfRange       Reason = "out_of_range"
	ReasonDuplicate        Reason = "duplicate"
	ReasonInvalidTarget    Reason = "invalid_target"
	ReasonUnknownNode      Reason = "unknown_node"
	ReasonHasIncidentEdges Reason = "has_incident_edges"
	// ReasonForbidden is validator-scoped: the operation is structurally fine
	// but the puzzle's allowed set excludes it.
	ReasonForbidden Reason = "forbidden_operation"
)

// IllegalOperationError is recoverable: the session stays in progress and the
// rejection counts against the mistake budget.
type IllegalOperationError struct {
	Reason Reason
	Op     Operation
}

func (e *IllegalOperationError) Error() string {
	return fmt.Sprintf("illegal operation %s: %s", e.Op.Kind, e.Reason)
}

// Illegal builds a rejection for op with the given reason.
func Illegal(op Operation, reason Reason) *IllegalOperationError {
	return &IllegalOperationError{Reason: reason, Op: op}
}

// AsIllegal unwraps err as an IllegalOperationError if it is one.
func AsIllegal(err error) (*IllegalOperationError, bool) {
	var ie *IllegalOperationError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GenerationError reports that the generator exhausted its retry budget
// without producing a reachable puzzle.
type GenerationError struct {
	Type     StructureType
	Level    int
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("puzzle generation for %s level %d exhausted %d attempts", e.Type, e.Level, e.Attempts)
}

// ErrInvalidSessionState signals a call against a terminated session. It is
// an integration error, not a gameplay rejection.
var ErrInvalidSessionState = errors.New("session is not in progress")
