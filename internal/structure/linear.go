package structure

import "github.com/structquest/structquest/internal/models"

// applyLinear covers the three sequence-backed variants. Stacks grow and
// shrink at the tail, queues grow at the tail and shrink at the head, linked
// lists are addressed by position.
func applyLinear(s models.State, op models.Operation) (models.State, error) {
	next := s.Clone()
	switch {
	case s.Type == models.Stack && op.Kind == models.OpPush:
		next.Items = append(next.Items, op.Value)
	case s.Type == models.Stack && op.Kind == models.OpPop:
		if len(next.Items) == 0 {
			return models.State{}, models.Illegal(op, models.ReasonEmptyStructure)
		}
		next.Items = next.Items[:len(next.Items)-1]
	case s.Type == models.Queue && op.Kind == models.OpEnqueue:
		next.Items = append(next.Items, op.Value)
	case s.Type == models.Queue && op.Kind == models.OpDequeue:
		if len(next.Items) == 0 {
			return models.State{}, models.Illegal(op, models.ReasonEmptyStructure)
		}
		next.Items = next.Items[1:]
	case s.Type == models.LinkedList && op.Kind == models.OpInsertAt:
		if op.Position < 0 || op.Position > len(next.Items) {
			return models.State{}, models.Illegal(op, models.ReasonOutOfRange)
		}
		next.Items = append(next.Items, 0)
		copy(next.Items[op.Position+1:], next.Items[op.Position:])
		next.Items[op.Position] = op.Value
	case s.Type == models.LinkedList && op.Kind == models.OpDeleteAt:
		if len(next.Items) == 0 {
			return models.State{}, models.Illegal(op, models.ReasonEmptyStructure)
		}
		if op.Position < 0 || op.Position >= len(next.Items) {
			return models.State{}, models.Illegal(op, models.ReasonOutOfRange)
		}
		next.Items = append(next.Items[:op.Position], next.Items[op.Position+1:]...)
	case s.Type == models.LinkedList && op.Kind == models.OpTraverse:
		// Observation only: enters the log, leaves the state alone.
	default:
		return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
	}
	return next, nil
}
