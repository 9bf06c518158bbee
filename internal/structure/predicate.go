package structure

import "github.com/structquest/structquest/internal/models"

// GoalSatisfied reports whether a state meets a puzzle goal.
func GoalSatisfied(s models.State, g models.Goal) bool {
	switch g.Kind {
	case models.GoalExact:
		return g.Target != nil && s.Equal(*g.Target)
	case models.GoalPredicate:
		return PredicateHolds(s, g.Predicate)
	}
	return false
}

// PredicateHolds evaluates a structural predicate against a state.
func PredicateHolds(s models.State, p models.Predicate) bool {
	switch p {
	case models.PredSorted:
		for i := 1; i < len(s.Items); i++ {
			if s.Items[i-1] > s.Items[i] {
				return false
			}
		}
		return true
	case models.PredBalanced:
		return balanced(s, s.Root)
	case models.PredConnected:
		return connected(s)
	}
	return false
}

func balanced(s models.State, v *int) bool {
	if v == nil {
		return true
	}
	n := s.Nodes[*v]
	l := height(s, n.Left)
	r := height(s, n.Right)
	d := l - r
	if d < -1 || d > 1 {
		return false
	}
	return balanced(s, n.Left) && balanced(s, n.Right)
}

func connected(s models.State) bool {
	if len(s.Adjacency) == 0 {
		return false
	}
	start := s.GraphNodes()[0]
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, n := range s.Adjacency[v] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(s.Adjacency)
}

// CheckInvariants verifies the structural invariants of a state: trees are
// acyclic with at most one parent per node and every node reachable from the
// root; graph adjacency is symmetric. Used by the generator as a safety net
// and by tests.
func CheckInvariants(s models.State) bool {
	switch s.Type {
	case models.BinaryTree:
		parents := map[int]int{}
		for id, n := range s.Nodes {
			for _, c := range []*int{n.Left, n.Right} {
				if c == nil {
					continue
				}
				if _, ok := s.Nodes[*c]; !ok {
					return false
				}
				if *c == id {
					return false
				}
				parents[*c]++
				if parents[*c] > 1 {
					return false
				}
			}
		}
		if s.Root == nil {
			return len(s.Nodes) == 0
		}
		if parents[*s.Root] != 0 {
			return false
		}
		// Reachability from the root doubles as the acyclicity check: with
		// at most one parent each, a cycle would be unreachable.
		return len(levelOrder(s)) == len(s.Nodes)
	case models.Graph:
		for v, ns := range s.Adjacency {
			for i, n := range ns {
				if i > 0 && ns[i-1] >= n {
					return false
				}
				if n == v {
					return false
				}
				if !containsSorted(s.Adjacency[n], v) {
					return false
				}
			}
		}
		return true
	}
	return true
}
