// Package generator produces puzzles of controlled difficulty. Generation is
// deterministic for a given seed: the initial state comes from a bounded
// random walk of valid operations over an empty structure, the goal from
// either a further walk (exact match) or a level-appropriate predicate, and
// every puzzle is verified reachable before it is returned.
package generator

import (
	"context"
	"math/rand"

	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/structure"
)

type Generator struct {
	// Attempts overrides MaxAttempts when positive; tests shrink it.
	Attempts int
}

func New() *Generator { return &Generator{} }

func (g *Generator) attempts() int {
	if g.Attempts > 0 {
		return g.Attempts
	}
	return MaxAttempts
}

// Generate builds a puzzle for (t, level) from seed. It retries fresh random
// draws up to the attempt bound and fails with GenerationError after that.
// The context is only consulted between attempts; generation has no side
// effects until it returns.
func (g *Generator) Generate(ctx context.Context, t models.StructureType, level int, seed int64) (*models.Puzzle, error) {
	if level < 1 {
		level = 1
	}
	rng := rand.New(rand.NewSource(seed))
	allowed := AllowedOps(t, level)
	values := ValueAlphabet(level)
	pol := structure.Policy{}

	for attempt := 0; attempt < g.attempts(); attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		initial, ok := randomWalk(rng, models.Empty(t), allowed, values, initialWalkLen(level), pol)
		if !ok || !structure.CheckInvariants(initial) {
			continue
		}

		var goal models.Goal
		var solution []models.Operation
		if pred := predicateFor(t, level); pred != "" && rng.Intn(2) == 0 {
			if structure.PredicateHolds(initial, pred) {
				// Nothing to solve; draw again.
				continue
			}
			goal = models.Goal{Kind: models.GoalPredicate, Predicate: pred}
			path, found := FindPath(initial, goal, allowed, values, pol, SearchDepth(level))
			if !found || len(path) == 0 {
				continue
			}
			solution = path
		} else {
			target, walk, ok := goalWalk(rng, initial, allowed, values, solutionWalkLen(level), pol)
			if !ok || target.Equal(initial) {
				continue
			}
			goal = models.Goal{Kind: models.GoalExact, Target: &target}
			solution = walk
		}

		p := &models.Puzzle{
			Type:          t,
			Level:         level,
			Seed:          seed,
			Initial:       initial,
			Goal:          goal,
			Allowed:       allowed,
			MistakeBudget: MistakeBudget,
			Solution:      solution,
		}
		if verify(p) {
			return p, nil
		}
	}
	return nil, &models.GenerationError{Type: t, Level: level, Attempts: g.attempts()}
}

// randomWalk applies n randomly drawn valid operations starting from state.
func randomWalk(rng *rand.Rand, state models.State, allowed []models.OpKind, values []int, n int, pol structure.Policy) (models.State, bool) {
	cur := state
	for i := 0; i < n; i++ {
		next, _, ok := randomStep(rng, cur, allowed, values, pol)
		if !ok {
			return models.State{}, false
		}
		cur = next
	}
	return cur, true
}

// goalWalk extends the initial state by n more operations and records them as
// the worked solution. Observation operations are skipped so every recorded
// step moves the state.
func goalWalk(rng *rand.Rand, initial models.State, allowed []models.OpKind, values []int, n int, pol structure.Policy) (models.State, []models.Operation, bool) {
	mutating := make([]models.OpKind, 0, len(allowed))
	for _, k := range allowed {
		if k != models.OpTraverse {
			mutating = append(mutating, k)
		}
	}
	cur := initial
	walk := make([]models.Operation, 0, n)
	for i := 0; i < n; i++ {
		next, op, ok := randomStep(rng, cur, mutating, values, pol)
		if !ok {
			return models.State{}, nil, false
		}
		cur = next
		walk = append(walk, op)
	}
	return cur, walk, true
}

// randomStep draws candidate operations in random order until one applies.
func randomStep(rng *rand.Rand, cur models.State, allowed []models.OpKind, values []int, pol structure.Policy) (models.State, models.Operation, bool) {
	cands := Candidates(cur, allowed, values)
	rng.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
	for _, op := range cands {
		next, err := structure.Apply(cur, op, pol)
		if err != nil {
			continue
		}
		return next, op, true
	}
	return models.State{}, models.Operation{}, false
}

// verify replays the recorded solution through Apply and confirms it stays
// inside the allowed set, lands on the goal, and never breaks a structural
// invariant. A puzzle that fails verification is a generation failure.
func verify(p *models.Puzzle) bool {
	cur := p.Initial
	pol := structure.Policy{CascadeDelete: p.CascadeDelete}
	for _, op := range p.Solution {
		if !p.Allows(op.Kind) {
			return false
		}
		next, err := structure.Apply(cur, op, pol)
		if err != nil {
			return false
		}
		if !structure.CheckInvariants(next) {
			return false
		}
		cur = next
	}
	return structure.GoalSatisfied(cur, p.Goal)
}
