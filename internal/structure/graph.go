package structure

import (
	"sort"

	"github.com/structquest/structquest/internal/models"
)

// Graphs are undirected: adjacency is kept symmetric, and each neighbor list
// sorted so that states compare by value.

func applyGraph(s models.State, op models.Operation, pol Policy) (models.State, error) {
	switch op.Kind {
	case models.OpAddNode:
		if _, exists := s.Adjacency[op.Value]; exists {
			return models.State{}, models.Illegal(op, models.ReasonDuplicate)
		}
		next := s.Clone()
		next.Adjacency[op.Value] = []int{}
		return next, nil

	case models.OpRemoveNode:
		neighbors, exists := s.Adjacency[op.Value]
		if !exists {
			return models.State{}, models.Illegal(op, models.ReasonUnknownNode)
		}
		if len(neighbors) > 0 && !pol.CascadeDelete {
			return models.State{}, models.Illegal(op, models.ReasonHasIncidentEdges)
		}
		next := s.Clone()
		for _, n := range next.Adjacency[op.Value] {
			next.Adjacency[n] = removeSorted(next.Adjacency[n], op.Value)
		}
		delete(next.Adjacency, op.Value)
		return next, nil

	case models.OpAddEdge:
		if op.A == op.B {
			return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
		}
		if _, ok := s.Adjacency[op.A]; !ok {
			return models.State{}, models.Illegal(op, models.ReasonUnknownNode)
		}
		if _, ok := s.Adjacency[op.B]; !ok {
			return models.State{}, models.Illegal(op, models.ReasonUnknownNode)
		}
		if containsSorted(s.Adjacency[op.A], op.B) {
			return models.State{}, models.Illegal(op, models.ReasonDuplicate)
		}
		next := s.Clone()
		next.Adjacency[op.A] = insertSorted(next.Adjacency[op.A], op.B)
		next.Adjacency[op.B] = insertSorted(next.Adjacency[op.B], op.A)
		return next, nil

	case models.OpRemoveEdge:
		if _, ok := s.Adjacency[op.A]; !ok {
			return models.State{}, models.Illegal(op, models.ReasonUnknownNode)
		}
		if _, ok := s.Adjacency[op.B]; !ok {
			return models.State{}, models.Illegal(op, models.ReasonUnknownNode)
		}
		if !containsSorted(s.Adjacency[op.A], op.B) {
			return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
		}
		next := s.Clone()
		next.Adjacency[op.A] = removeSorted(next.Adjacency[op.A], op.B)
		next.Adjacency[op.B] = removeSorted(next.Adjacency[op.B], op.A)
		return next, nil

	case models.OpTraverse:
		// BFS walk for the learner; the adjacency itself is untouched.
		return s.Clone(), nil
	}
	return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
}

func containsSorted(list []int, v int) bool {
	i := sort.SearchInts(list, v)
	return i < len(list) && list[i] == v
}

func insertSorted(list []int, v int) []int {
	i := sort.SearchInts(list, v)
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = v
	return list
}

func removeSorted(list []int, v int) []int {
	i := sort.SearchInts(list, v)
	if i < len(list) && list[i] == v {
		return append(list[:i], list[i+1:]...)
	}
	return list
}
