package generator

import (
	"fmt"
	"strings"

	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/structure"
)

// Candidates enumerates every parameterization of the allowed operation kinds
// against a state, without applying them. Callers filter illegal ones by
// attempting Apply.
func Candidates(s models.State, allowed []models.OpKind, values []int) []models.Operation {
	var out []models.Operation
	for _, k := range allowed {
		switch k {
		case models.OpPush, models.OpEnqueue:
			for _, v := range values {
				out = append(out, models.Operation{Kind: k, Value: v})
			}
		case models.OpPop, models.OpDequeue, models.OpTraverse:
			out = append(out, models.Operation{Kind: k})
		case models.OpInsertAt:
			for pos := 0; pos <= len(s.Items); pos++ {
				for _, v := range values {
					out = append(out, models.Operation{Kind: k, Position: pos, Value: v})
				}
			}
		case models.OpDeleteAt:
			for pos := 0; pos < len(s.Items); pos++ {
				out = append(out, models.Operation{Kind: k, Position: pos})
			}
		case models.OpTreeInsert:
			for _, v := range values {
				if _, exists := s.Nodes[v]; !exists {
					out = append(out, models.Operation{Kind: k, Value: v})
				}
			}
		case models.OpTreeDelete, models.OpRotateLeft, models.OpRotateRight:
			for _, v := range s.TreeValues() {
				out = append(out, models.Operation{Kind: k, Value: v})
			}
		case models.OpAddNode:
			for _, v := range values {
				if _, exists := s.Adjacency[v]; !exists {
					out = append(out, models.Operation{Kind: k, Value: v})
				}
			}
		case models.OpRemoveNode:
			for _, v := range s.GraphNodes() {
				out = append(out, models.Operation{Kind: k, Value: v})
			}
		case models.OpAddEdge, models.OpRemoveEdge:
			nodes := s.GraphNodes()
			for i, a := range nodes {
				for _, b := range nodes[i+1:] {
					out = append(out, models.Operation{Kind: k, A: a, B: b})
				}
			}
		}
	}
	return out
}

// FindPath searches breadth-first for a shortest operation sequence from
// `from` to a state satisfying goal, using only allowed operations. The
// search is bounded by maxDepth and a visited-state budget; exhausting either
// reports no path. An already-satisfied goal yields an empty path.
func FindPath(from models.State, goal models.Goal, allowed []models.OpKind, values []int, pol structure.Policy, maxDepth int) ([]models.Operation, bool) {
	if structure.GoalSatisfied(from, goal) {
		return nil, true
	}
	type node struct {
		state models.State
		path  []models.Operation
	}
	visited := map[string]bool{stateKey(from): true}
	frontier := []node{{state: from}}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []node
		for _, cur := range frontier {
			for _, op := range Candidates(cur.state, allowed, values) {
				ns, err := structure.Apply(cur.state, op, pol)
				if err != nil {
					continue
				}
				k := stateKey(ns)
				if visited[k] {
					continue
				}
				visited[k] = true
				path := append(append([]models.Operation(nil), cur.path...), op)
				if structure.GoalSatisfied(ns, goal) {
					return path, true
				}
				if len(visited) > searchBudget {
					return nil, false
				}
				next = append(next, node{state: ns, path: path})
			}
		}
		frontier = next
	}
	return nil, false
}

// stateKey canonicalizes a state for visited-set lookups.
func stateKey(s models.State) string {
	var b strings.Builder
	switch s.Type {
	case models.BinaryTree:
		encodeTree(&b, s, s.Root)
	case models.Graph:
		for _, v := range s.GraphNodes() {
			fmt.Fprintf(&b, "%d:%v;", v, s.Adjacency[v])
		}
	default:
		fmt.Fprintf(&b, "%v", s.Items)
	}
	return b.String()
}

func encodeTree(b *strings.Builder, s models.State, v *int) {
	if v == nil {
		b.WriteByte('-')
		return
	}
	fmt.Fprintf(b, "(%d", *v)
	n := s.Nodes[*v]
	encodeTree(b, s, n.Left)
	encodeTree(b, s, n.Right)
	b.WriteByte(')')
}
