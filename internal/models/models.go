package models

import "sort"

// StructureType selects which operation vocabulary and invariants apply.
type StructureType string

const (
	Stack      StructureType = "stack"
	Queue      StructureType = "queue"
	LinkedList StructureType = "linked_list"
	BinaryTree StructureType = "binary_tree"
	Graph      StructureType = "graph"
)

// StructureTypes lists all variants in menu order.
var StructureTypes = []StructureType{Stack, Queue, LinkedList, BinaryTree, Graph}

// OpKind tags an Operation.
type OpKind string

const (
	OpPush        OpKind = "push"
	OpPop         OpKind = "pop"
	OpEnqueue     OpKind = "enqueue"
	OpDequeue     OpKind = "dequeue"
	OpInsertAt    OpKind = "insert_at"
	OpDeleteAt    OpKind = "delete_at"
	OpTraverse    OpKind = "traverse"
	OpTreeInsert  OpKind = "insert"
	OpTreeDelete  OpKind = "delete"
	OpRotateLeft  OpKind = "rotate_left"
	OpRotateRight OpKind = "rotate_right"
	OpAddNode     OpKind = "add_node"
	OpRemoveNode  OpKind = "remove_node"
	OpAddEdge     OpKind = "add_edge"
	OpRemoveEdge  OpKind = "remove_edge"
)

// Operation is a single user action against a structure. Immutable once
// submitted. Value carries the element (push/enqueue/insert/add_node and the
// rotation target), Position addresses list slots, A/B are edge endpoints.
type Operation struct {
	Kind     OpKind `yaml:"kind"`
	Value    int    `yaml:"value,omitempty"`
	Position int    `yaml:"position,omitempty"`
	A        int    `yaml:"a,omitempty"`
	B        int    `yaml:"b,omitempty"`
}

// TreeNode holds the child links of one binary-tree node. Node values are
// unique and double as node identities, so links are value references.
type TreeNode struct {
	Left  *int `yaml:"left,omitempty"`
	Right *int `yaml:"right,omitempty"`
}

// State is the polymorphic container over StructureType. Exactly one of the
// payload groups is populated: Items for stack/queue/linked list, Root+Nodes
// for binary tree, Adjacency for graph. Adjacency is kept symmetric and each
// neighbor list sorted, so equal graphs compare equal field by field.
type State struct {
	Type      StructureType `yaml:"type"`
	Items     []int         `yaml:"items,omitempty"`
	Root      *int          `yaml:"root,omitempty"`
	Nodes     map[int]TreeNode `yaml:"nodes,omitempty"`
	Adjacency map[int][]int    `yaml:"adjacency,omitempty"`
}

// Empty returns the empty state for a structure type.
func Empty(t StructureType) State {
	s := State{Type: t}
	switch t {
	case BinaryTree:
		s.Nodes = map[int]TreeNode{}
	case Graph:
		s.Adjacency = map[int][]int{}
	}
	return s
}

// Clone returns a deep copy. Apply never mutates its input, so transitions
// always start from a clone.
func (s State) Clone() State {
	out := State{Type: s.Type}
	if s.Items != nil {
		out.Items = append([]int(nil), s.Items...)
	}
	if s.Root != nil {
		r := *s.Root
		out.Root = &r
	}
	if s.Nodes != nil {
		out.Nodes = make(map[int]TreeNode, len(s.Nodes))
		for v, n := range s.Nodes {
			cp := TreeNode{}
			if n.Left != nil {
				l := *n.Left
				cp.Left = &l
			}
			if n.Right != nil {
				r := *n.Right
				cp.Right = &r
			}
			out.Nodes[v] = cp
		}
	}
	if s.Adjacency != nil {
		out.Adjacency = make(map[int][]int, len(s.Adjacency))
		for v, ns := range s.Adjacency {
			out.Adjacency[v] = append([]int(nil), ns...)
		}
	}
	return out
}

// Equal reports whether two states describe the same contents and topology.
func (s State) Equal(o State) bool {
	if s.Type != o.Type {
		return false
	}
	if len(s.Items) != len(o.Items) {
		return false
	}
	for i := range s.Items {
		if s.Items[i] != o.Items[i] {
			return false
		}
	}
	if (s.Root == nil) != (o.Root == nil) {
		return false
	}
	if s.Root != nil && *s.Root != *o.Root {
		return false
	}
	if len(s.Nodes) != len(o.Nodes) {
		return false
	}
	for v, n := range s.Nodes {
		on, ok := o.Nodes[v]
		if !ok || !ptrEq(n.Left, on.Left) || !ptrEq(n.Right, on.Right) {
			return false
		}
	}
	if len(s.Adjacency) != len(o.Adjacency) {
		return false
	}
	for v, ns := range s.Adjacency {
		ons, ok := o.Adjacency[v]
		if !ok || len(ns) != len(ons) {
			return false
		}
		for i := range ns {
			if ns[i] != ons[i] {
				return false
			}
		}
	}
	return true
}

func ptrEq(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// Size is the element count, used by difficulty checks and rendering.
func (s State) Size() int {
	switch s.Type {
	case BinaryTree:
		return len(s.Nodes)
	case Graph:
		return len(s.Adjacency)
	default:
		return len(s.Items)
	}
}

// GraphNodes returns the node ids in ascending order.
func (s State) GraphNodes() []int {
	ids := make([]int, 0, len(s.Adjacency))
	for v := range s.Adjacency {
		ids = append(ids, v)
	}
	sort.Ints(ids)
	return ids
}

// TreeValues returns the node values in ascending order.
func (s State) TreeValues() []int {
	vals := make([]int, 0, len(s.Nodes))
	for v := range s.Nodes {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	return vals
}

// GoalKind distinguishes exact-match goals from predicate goals.
type GoalKind string

const (
	GoalExact     GoalKind = "exact"
	GoalPredicate GoalKind = "predicate"
)

// Predicate names a structural win condition.
type Predicate string

const (
	PredSorted    Predicate = "sorted"    // linear contents non-decreasing
	PredBalanced  Predicate = "balanced"  // every subtree height-balanced
	PredConnected Predicate = "connected" // all graph nodes mutually reachable
)

// Goal is the win condition of a puzzle.
type Goal struct {
	Kind      GoalKind  `yaml:"kind"`
	Target    *State    `yaml:"target,omitempty"`
	Predicate Predicate `yaml:"predicate,omitempty"`
}

// Puzzle is immutable after generation. Solution is a worked operation
// sequence from Initial to the goal, recorded for feedback and hints.
type Puzzle struct {
	Type          StructureType `yaml:"type"`
	Level         int           `yaml:"level"`
	Seed          int64         `yaml:"seed"`
	Initial       State         `yaml:"initial"`
	Goal          Goal          `yaml:"goal"`
	Allowed       []OpKind      `yaml:"allowed"`
	MistakeBudget int           `yaml:"mistake_budget"`
	CascadeDelete bool          `yaml:"cascade_delete,omitempty"`
	Solution      []Operation   `yaml:"solution,omitempty"`
}

// Allows reports whether the puzzle permits an operation kind.
func (p *Puzzle) Allows(k OpKind) bool {
	for _, a := range p.Allowed {
		if a == k {
			return true
		}
	}
	return false
}

// SessionStatus is the puzzle-session state machine.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusSolved     SessionStatus = "solved"
	StatusFailed     SessionStatus = "failed"
	StatusAbandoned  SessionStatus = "abandoned"
)

// ScoreRecord is finalized exactly once, at session termination.
type ScoreRecord struct {
	BasePoints            int `yaml:"base_points"`
	TimePenalty           int `yaml:"time_penalty"`
	HintPenalty           int `yaml:"hint_penalty"`
	IllegalAttemptPenalty int `yaml:"illegal_attempt_penalty"`
	Total                 int `yaml:"total"`
}

// SessionRecord is the serializable snapshot of a puzzle session. The current
// state is not stored; it is rederived by replaying Log from Puzzle.Initial.
type SessionRecord struct {
	Puzzle          Puzzle        `yaml:"puzzle"`
	Log             []Operation   `yaml:"log,omitempty"`
	IllegalAttempts int           `yaml:"illegal_attempts"`
	HintsUsed       int           `yaml:"hints_used"`
	Status          SessionStatus `yaml:"status"`
	Score           *ScoreRecord  `yaml:"score,omitempty"`
}

// ProgressionState is per-player progress across a play session. Unlocked
// maps each structure type to its highest unlocked level, starting at 1 and
// only ever increasing.
type ProgressionState struct {
	CurrentType     StructureType         `yaml:"current_type,omitempty"`
	CurrentLevel    int                   `yaml:"current_level,omitempty"`
	CumulativeScore int                   `yaml:"cumulative_score"`
	Unlocked        map[StructureType]int `yaml:"unlocked"`
}

// NewProgressionState starts a fresh player with level 1 open everywhere.
func NewProgressionState() ProgressionState {
	unlocked := make(map[StructureType]int, len(StructureTypes))
	for _, t := range StructureTypes {
		unlocked[t] = 1
	}
	return ProgressionState{Unlocked: unlocked}
}

// Feedback is the payload handed to the presentation layer after a session
// terminates. CorrectPath is a worked solution when one is known.
type Feedback struct {
	Status      SessionStatus `yaml:"status"`
	Score       ScoreRecord   `yaml:"score"`
	CorrectPath []Operation   `yaml:"correct_path,omitempty"`
}
