package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/structquest/structquest/internal/models"
)

// ParseOperation turns a typed command like "push 3", "insert_at 1 5" or
// "add_edge 2 4" into an Operation. The structure type decides which commands
// make sense, so "insert 4" can mean tree insert without ambiguity.
func ParseOperation(t models.StructureType, input string) (models.Operation, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return models.Operation{}, fmt.Errorf("empty command")
	}
	kind := models.OpKind(fields[0])
	args := make([]int, 0, 2)
	for _, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return models.Operation{}, fmt.Errorf("%q is not a number", f)
		}
		args = append(args, n)
	}

	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s)", kind, n)
		}
		return nil
	}

	switch kind {
	case models.OpPop, models.OpDequeue, models.OpTraverse:
		return models.Operation{Kind: kind}, need(0)
	case models.OpPush, models.OpEnqueue, models.OpTreeInsert, models.OpTreeDelete,
		models.OpRotateLeft, models.OpRotateRight, models.OpAddNode, models.OpRemoveNode:
		if err := need(1); err != nil {
			return models.Operation{}, err
		}
		return models.Operation{Kind: kind, Value: args[0]}, nil
	case models.OpDeleteAt:
		if err := need(1); err != nil {
			return models.Operation{}, err
		}
		return models.Operation{Kind: kind, Position: args[0]}, nil
	case models.OpInsertAt:
		if err := need(2); err != nil {
			return models.Operation{}, err
		}
		return models.Operation{Kind: kind, Position: args[0], Value: args[1]}, nil
	case models.OpAddEdge, models.OpRemoveEdge:
		if err := need(2); err != nil {
			return models.Operation{}, err
		}
		return models.Operation{Kind: kind, A: args[0], B: args[1]}, nil
	}
	return models.Operation{}, fmt.Errorf("unknown command %q for %s", fields[0], t)
}

// RenderState draws a compact textual picture of a structure state.
func RenderState(s models.State) string {
	switch s.Type {
	case models.Stack:
		if len(s.Items) == 0 {
			return "(empty stack)"
		}
		parts := make([]string, 0, len(s.Items))
		for i := len(s.Items) - 1; i >= 0; i-- {
			parts = append(parts, fmt.Sprintf("| %d |", s.Items[i]))
		}
		return "top\n" + strings.Join(parts, "\n") + "\n+---+"
	case models.Queue:
		if len(s.Items) == 0 {
			return "(empty queue)"
		}
		return "front -> " + joinInts(s.Items, " ") + " <- back"
	case models.LinkedList:
		if len(s.Items) == 0 {
			return "(empty list)"
		}
		return "head -> " + joinInts(s.Items, " -> ") + " -> nil"
	case models.BinaryTree:
		if s.Root == nil {
			return "(empty tree)"
		}
		var b strings.Builder
		renderTree(&b, s, s.Root, "")
		return b.String()
	case models.Graph:
		if len(s.Adjacency) == 0 {
			return "(empty graph)"
		}
		nodes := s.GraphNodes()
		lines := make([]string, 0, len(nodes))
		for _, v := range nodes {
			ns := s.Adjacency[v]
			if len(ns) == 0 {
				lines = append(lines, fmt.Sprintf("%d: (isolated)", v))
				continue
			}
			lines = append(lines, fmt.Sprintf("%d: %s", v, joinInts(ns, " ")))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func renderTree(b *strings.Builder, s models.State, v *int, indent string) {
	if v == nil {
		return
	}
	n := s.Nodes[*v]
	fmt.Fprintf(b, "%s%d\n", indent, *v)
	if n.Left != nil || n.Right != nil {
		if n.Left != nil {
			renderTree(b, s, n.Left, indent+"  L ")
		} else {
			fmt.Fprintf(b, "%s  L -\n", indent)
		}
		if n.Right != nil {
			renderTree(b, s, n.Right, indent+"  R ")
		} else {
			fmt.Fprintf(b, "%s  R -\n", indent)
		}
	}
}

// DescribeGoal phrases the win condition for the status panel.
func DescribeGoal(g models.Goal) string {
	if g.Kind == models.GoalPredicate {
		switch g.Predicate {
		case models.PredSorted:
			return "Goal: make the list sorted (non-decreasing)"
		case models.PredBalanced:
			return "Goal: make the tree height-balanced"
		case models.PredConnected:
			return "Goal: connect every node of the graph"
		}
	}
	if g.Target != nil {
		return "Goal: reach exactly this state\n" + RenderState(*g.Target)
	}
	return "Goal: ?"
}

func joinInts(xs []int, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, sep)
}

func sortedKinds(ks []models.OpKind) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = string(k)
	}
	sort.Strings(out)
	return out
}
