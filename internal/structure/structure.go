// Package structure defines the legal operation vocabulary per structure type
// and the pure transition function Apply. Apply never mutates its input: it
// returns a fresh state value, so callers get rollback and replay for free.
package structure

import (
	"github.com/structquest/structquest/internal/models"
)

// Policy holds the explicit per-puzzle policy choices that change operation
// semantics. CascadeDelete lets graph remove_node drop incident edges instead
// of failing with HasIncidentEdges; it is off by default.
type Policy struct {
	CascadeDelete bool
}

// Vocabulary returns the full legal operation set for a structure type.
// Puzzles may only ever restrict this set, never extend it.
func Vocabulary(t models.StructureType) []models.OpKind {
	switch t {
	case models.Stack:
		return []models.OpKind{models.OpPush, models.OpPop}
	case models.Queue:
		return []models.OpKind{models.OpEnqueue, models.OpDequeue}
	case models.LinkedList:
		return []models.OpKind{models.OpInsertAt, models.OpDeleteAt, models.OpTraverse}
	case models.BinaryTree:
		return []models.OpKind{models.OpTreeInsert, models.OpTreeDelete, models.OpRotateLeft, models.OpRotateRight}
	case models.Graph:
		return []models.OpKind{models.OpAddNode, models.OpRemoveNode, models.OpAddEdge, models.OpRemoveEdge, models.OpTraverse}
	}
	return nil
}

// Apply computes the state after op, or an IllegalOperationError explaining
// the rejection. The input state is left untouched either way.
func Apply(s models.State, op models.Operation, pol Policy) (models.State, error) {
	switch s.Type {
	case models.Stack, models.Queue, models.LinkedList:
		return applyLinear(s, op)
	case models.BinaryTree:
		return applyTree(s, op)
	case models.Graph:
		return applyGraph(s, op, pol)
	}
	return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
}

// Replay folds a log of operations over an initial state. It is the
// determinism law made executable: the same log always yields the same state.
func Replay(initial models.State, log []models.Operation, pol Policy) (models.State, error) {
	cur := initial
	for _, op := range log {
		next, err := Apply(cur, op, pol)
		if err != nil {
			return models.State{}, err
		}
		cur = next
	}
	return cur, nil
}
