// Package validator checks proposed operations against a puzzle: first the
// puzzle-scoped allowed-operation set, then the structure's own semantics via
// structure.Apply. Rejections are recoverable; the session counts them
// against its mistake budget.
package validator

import (
	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/structure"
)

// Result is the validator's verdict on one proposed operation.
type Result struct {
	Accepted bool
	State    models.State
	Reason   models.Reason
}

// Check validates op against the puzzle's constraints and the current state.
// The returned error is non-nil only for non-rejection failures; a plain
// rejection comes back as Accepted=false with a reason code.
func Check(p *models.Puzzle, current models.State, op models.Operation) Result {
	if !p.Allows(op.Kind) {
		return Result{Reason: models.ReasonForbidden}
	}
	next, err := structure.Apply(current, op, structure.Policy{CascadeDelete: p.CascadeDelete})
	if err != nil {
		if ie, ok := models.AsIllegal(err); ok {
			return Result{Reason: ie.Reason}
		}
		return Result{Reason: models.ReasonInvalidTarget}
	}
	return Result{Accepted: true, State: next}
}
