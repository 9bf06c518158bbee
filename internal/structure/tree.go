package structure

import "github.com/structquest/structquest/internal/models"

// Binary trees are filled in level order, the way the tutor draws them:
// insert attaches at the first free child slot found breadth-first, delete
// swaps the victim with the last node in level order. Values are unique and
// double as node identities, so duplicates are always rejected.

func applyTree(s models.State, op models.Operation) (models.State, error) {
	switch op.Kind {
	case models.OpTreeInsert:
		return treeInsert(s, op)
	case models.OpTreeDelete:
		return treeDelete(s, op)
	case models.OpRotateLeft, models.OpRotateRight:
		return treeRotate(s, op)
	}
	return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
}

func treeInsert(s models.State, op models.Operation) (models.State, error) {
	if _, exists := s.Nodes[op.Value]; exists {
		return models.State{}, models.Illegal(op, models.ReasonDuplicate)
	}
	next := s.Clone()
	v := op.Value
	if next.Root == nil {
		next.Root = &v
		next.Nodes[v] = models.TreeNode{}
		return next, nil
	}
	queue := []int{*next.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := next.Nodes[id]
		if n.Left == nil {
			n.Left = &v
			next.Nodes[id] = n
			next.Nodes[v] = models.TreeNode{}
			return next, nil
		}
		queue = append(queue, *n.Left)
		if n.Right == nil {
			n.Right = &v
			next.Nodes[id] = n
			next.Nodes[v] = models.TreeNode{}
			return next, nil
		}
		queue = append(queue, *n.Right)
	}
	return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
}

func treeDelete(s models.State, op models.Operation) (models.State, error) {
	if _, exists := s.Nodes[op.Value]; !exists {
		return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
	}
	next := s.Clone()
	v := op.Value
	order := levelOrder(next)
	last := order[len(order)-1]

	// Detach the level-order last node from its parent.
	if parent, side, ok := parentOf(next, last); ok {
		n := next.Nodes[parent]
		if side == 'L' {
			n.Left = nil
		} else {
			n.Right = nil
		}
		next.Nodes[parent] = n
	}
	if last == v {
		delete(next.Nodes, last)
		if next.Root != nil && *next.Root == last {
			next.Root = nil
		}
		return next, nil
	}

	// Move the detached node into the victim's position.
	n := next.Nodes[v]
	delete(next.Nodes, v)
	next.Nodes[last] = n
	if parent, side, ok := parentOf(next, v); ok {
		pn := next.Nodes[parent]
		moved := last
		if side == 'L' {
			pn.Left = &moved
		} else {
			pn.Right = &moved
		}
		next.Nodes[parent] = pn
	}
	if next.Root != nil && *next.Root == v {
		moved := last
		next.Root = &moved
	}
	return next, nil
}

func treeRotate(s models.State, op models.Operation) (models.State, error) {
	x := op.Value
	xn, exists := s.Nodes[x]
	if !exists {
		return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
	}
	// rotate_left needs a right child to pivot on, rotate_right a left child.
	if op.Kind == models.OpRotateLeft && xn.Right == nil {
		return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
	}
	if op.Kind == models.OpRotateRight && xn.Left == nil {
		return models.State{}, models.Illegal(op, models.ReasonInvalidTarget)
	}
	next := s.Clone()
	xn = next.Nodes[x]
	var pivot int
	if op.Kind == models.OpRotateLeft {
		pivot = *xn.Right
		pn := next.Nodes[pivot]
		xn.Right = pn.Left
		xc := x
		pn.Left = &xc
		next.Nodes[x] = xn
		next.Nodes[pivot] = pn
	} else {
		pivot = *xn.Left
		pn := next.Nodes[pivot]
		xn.Left = pn.Right
		xc := x
		pn.Right = &xc
		next.Nodes[x] = xn
		next.Nodes[pivot] = pn
	}
	if parent, side, ok := parentOfExcluding(next, x, pivot); ok {
		n := next.Nodes[parent]
		pv := pivot
		if side == 'L' {
			n.Left = &pv
		} else {
			n.Right = &pv
		}
		next.Nodes[parent] = n
	} else if next.Root != nil && *next.Root == x {
		pv := pivot
		next.Root = &pv
	}
	return next, nil
}

// levelOrder returns node values in breadth-first order from the root.
func levelOrder(s models.State) []int {
	if s.Root == nil {
		return nil
	}
	order := make([]int, 0, len(s.Nodes))
	queue := []int{*s.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		n := s.Nodes[id]
		if n.Left != nil {
			queue = append(queue, *n.Left)
		}
		if n.Right != nil {
			queue = append(queue, *n.Right)
		}
	}
	return order
}

func parentOf(s models.State, v int) (int, byte, bool) {
	return parentOfExcluding(s, v, v)
}

// parentOfExcluding finds the node linking to v, skipping candidate `skip`
// (needed mid-rotation, when the pivot already points back at v).
func parentOfExcluding(s models.State, v, skip int) (int, byte, bool) {
	for id, n := range s.Nodes {
		if id == skip {
			continue
		}
		if n.Left != nil && *n.Left == v {
			return id, 'L', true
		}
		if n.Right != nil && *n.Right == v {
			return id, 'R', true
		}
	}
	return 0, 0, false
}

// height of the subtree rooted at v; 0 for a missing node.
func height(s models.State, v *int) int {
	if v == nil {
		return 0
	}
	n := s.Nodes[*v]
	l := height(s, n.Left)
	r := height(s, n.Right)
	if l > r {
		return l + 1
	}
	return r + 1
}
