package generator

import (
	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/structure"
)

// Difficulty scaling. All three knobs are monotone in level: initial states
// grow, solutions get longer, and the allowed operation set only shrinks.

// MaxAttempts bounds the generate-and-verify loop before giving up with
// GenerationError.
const MaxAttempts = 20

// MistakeBudget is the number of rejected submissions a session tolerates
// before failing.
const MistakeBudget = 3

// searchBudget caps visited states in reachability/hint searches.
const searchBudget = 50000

func initialWalkLen(level int) int { return 2 + 2*level }

func solutionWalkLen(level int) int { return 1 + level }

// SearchDepth is the depth cap for reachability and hint searches at a level.
func SearchDepth(level int) int { return solutionWalkLen(level) + 2 }

// ValueAlphabet is the pool operations draw element values from.
func ValueAlphabet(level int) []int {
	ceil := 4 + 2*level
	vals := make([]int, ceil)
	for i := range vals {
		vals[i] = i + 1
	}
	return vals
}

// AllowedOps restricts the structure's vocabulary by level. Convenience
// operations disappear as levels rise, forcing longer solution paths; the
// set never grows with level.
func AllowedOps(t models.StructureType, level int) []models.OpKind {
	full := structure.Vocabulary(t)
	drop := map[models.OpKind]bool{}
	switch t {
	case models.LinkedList:
		if level >= 3 {
			drop[models.OpTraverse] = true
		}
	case models.Graph:
		if level >= 3 {
			drop[models.OpTraverse] = true
		}
		if level >= 4 {
			drop[models.OpRemoveEdge] = true
		}
	case models.BinaryTree:
		if level >= 4 {
			drop[models.OpRotateLeft] = true
			drop[models.OpRotateRight] = true
		}
	}
	out := make([]models.OpKind, 0, len(full))
	for _, k := range full {
		if !drop[k] {
			out = append(out, k)
		}
	}
	return out
}

// predicateFor picks the level-appropriate predicate pool entry for a type,
// or "" when the type only gets exact-match goals.
func predicateFor(t models.StructureType, level int) models.Predicate {
	switch {
	case t == models.LinkedList && level >= 3:
		return models.PredSorted
	case t == models.BinaryTree && level >= 3:
		return models.PredBalanced
	case t == models.Graph && level >= 2:
		return models.PredConnected
	}
	return ""
}
