package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structquest/structquest/internal/models"
)

func stackPuzzle(target ...int) *models.Puzzle {
	goal := models.State{Type: models.Stack, Items: target}
	return &models.Puzzle{
		Type:          models.Stack,
		Level:         1,
		Initial:       models.Empty(models.Stack),
		Goal:          models.Goal{Kind: models.GoalExact, Target: &goal},
		Allowed:       []models.OpKind{models.OpPush, models.OpPop},
		MistakeBudget: 3,
	}
}

func listPuzzle(items ...int) *models.Puzzle {
	goal := models.State{Type: models.LinkedList, Items: []int{9}}
	return &models.Puzzle{
		Type:          models.LinkedList,
		Level:         2,
		Initial:       models.State{Type: models.LinkedList, Items: items},
		Goal:          models.Goal{Kind: models.GoalExact, Target: &goal},
		Allowed:       []models.OpKind{models.OpInsertAt, models.OpDeleteAt, models.OpTraverse},
		MistakeBudget: 3,
	}
}

func TestSubmitAcceptsAndSolves(t *testing.T) {
	s := New(stackPuzzle(1, 2))

	res, err := s.Submit(models.Operation{Kind: models.OpPush, Value: 1}, time.Second)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.False(t, res.Solved)
	assert.Equal(t, models.StatusInProgress, s.Status())

	res, err = s.Submit(models.Operation{Kind: models.OpPush, Value: 2}, 65*time.Second)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.True(t, res.Solved)
	assert.Equal(t, models.StatusSolved, s.Status())

	score, ok := s.Score()
	require.True(t, ok)
	assert.Equal(t, 100, score.BasePoints)
	assert.Equal(t, 20, score.TimePenalty, "65s spans two full 30s buckets")
	assert.Equal(t, 80, score.Total)
}

func TestGoalCheckedAfterEveryAcceptedOp(t *testing.T) {
	// The goal is one push away, so the session solves on the first accepted
	// operation even though longer routes exist.
	s := New(stackPuzzle(1))
	res, err := s.Submit(models.Operation{Kind: models.OpPush, Value: 1}, time.Second)
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, models.StatusSolved, s.Status())
}

func TestRejectionBurnsBudgetButKeepsPlaying(t *testing.T) {
	s := New(listPuzzle(1, 2, 3))

	res, err := s.Submit(models.Operation{Kind: models.OpDeleteAt, Position: 5}, time.Second)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, models.ReasonOutOfRange, res.Reason)
	assert.False(t, res.Failed)
	assert.Equal(t, 1, s.IllegalAttempts())
	assert.Equal(t, models.StatusInProgress, s.Status())

	// The rejected operation left the state untouched.
	assert.Equal(t, []int{1, 2, 3}, s.State().Items)
	assert.Empty(t, s.Log())
}

func TestMistakeBudgetExhaustionFails(t *testing.T) {
	s := New(listPuzzle(1, 2, 3))
	bad := models.Operation{Kind: models.OpDeleteAt, Position: 9}

	for i := 0; i < 3; i++ {
		res, err := s.Submit(bad, time.Second)
		require.NoError(t, err)
		assert.False(t, res.Failed, "rejection %d is within budget", i+1)
	}
	res, err := s.Submit(bad, time.Second)
	require.NoError(t, err)
	assert.True(t, res.Failed)
	assert.Equal(t, models.StatusFailed, s.Status())

	score, ok := s.Score()
	require.True(t, ok)
	assert.Equal(t, 0, score.Total, "failed sessions score zero")
	assert.Equal(t, 40, score.IllegalAttemptPenalty, "the breakdown is still recorded")

	_, err = s.Submit(bad, time.Second)
	assert.ErrorIs(t, err, models.ErrInvalidSessionState)
}

func TestForbiddenOperationRejected(t *testing.T) {
	s := New(stackPuzzle(1))
	res, err := s.Submit(models.Operation{Kind: models.OpEnqueue, Value: 1}, time.Second)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, models.ReasonForbidden, res.Reason)
}

func TestAbandonScoresZero(t *testing.T) {
	s := New(stackPuzzle(1, 2))
	_, err := s.Submit(models.Operation{Kind: models.OpPush, Value: 1}, time.Second)
	require.NoError(t, err)

	score, err := s.Abandon(40 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAbandoned, s.Status())
	assert.Equal(t, 0, score.Total)

	_, err = s.Abandon(time.Second)
	assert.ErrorIs(t, err, models.ErrInvalidSessionState)
}

func TestHintIsCountedAndScored(t *testing.T) {
	s := New(stackPuzzle(1))

	op, ok, err := s.Hint()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.Operation{Kind: models.OpPush, Value: 1}, op)
	assert.Equal(t, 1, s.HintsUsed())

	res, err := s.Submit(op, time.Second)
	require.NoError(t, err)
	require.True(t, res.Solved)

	score, ok := s.Score()
	require.True(t, ok)
	assert.Equal(t, 15, score.HintPenalty)
	assert.Equal(t, 85, score.Total)

	_, _, err = s.Hint()
	assert.ErrorIs(t, err, models.ErrInvalidSessionState)
}

func TestScoreFlooredAtZero(t *testing.T) {
	s := New(stackPuzzle(1))
	res, err := s.Submit(models.Operation{Kind: models.OpPush, Value: 1}, time.Hour)
	require.NoError(t, err)
	require.True(t, res.Solved)

	score, ok := s.Score()
	require.True(t, ok)
	assert.Greater(t, score.TimePenalty, score.BasePoints)
	assert.Equal(t, 0, score.Total)
}

func TestSnapshotRestoreReplaysLog(t *testing.T) {
	s := New(stackPuzzle(1, 2))
	_, err := s.Submit(models.Operation{Kind: models.OpPush, Value: 1}, time.Second)
	require.NoError(t, err)
	_, err = s.Submit(models.Operation{Kind: models.OpPop}, time.Second) // accepted detour
	require.NoError(t, err)
	_, err = s.Submit(models.Operation{Kind: models.OpDeleteAt, Position: 0}, time.Second) // rejected
	require.NoError(t, err)
	_, _, err = s.Hint()
	require.NoError(t, err)

	rec := s.Snapshot()
	restored, err := Restore(rec)
	require.NoError(t, err)

	assert.True(t, s.State().Equal(restored.State()), "replay must rederive the same state")
	assert.Equal(t, s.Log(), restored.Log())
	assert.Equal(t, s.IllegalAttempts(), restored.IllegalAttempts())
	assert.Equal(t, s.HintsUsed(), restored.HintsUsed())
	assert.Equal(t, s.Status(), restored.Status())

	// Both copies finish identically from here.
	for _, sess := range []*Session{s, restored} {
		for _, v := range []int{1, 2} {
			res, err := sess.Submit(models.Operation{Kind: models.OpPush, Value: v}, 10*time.Second)
			require.NoError(t, err)
			assert.True(t, res.Accepted)
		}
		assert.Equal(t, models.StatusSolved, sess.Status())
	}
	a, _ := s.Score()
	b, _ := restored.Score()
	assert.Equal(t, a, b)
}

func TestRestoreTerminatedSessionKeepsScore(t *testing.T) {
	s := New(stackPuzzle(1))
	_, err := s.Submit(models.Operation{Kind: models.OpPush, Value: 1}, time.Second)
	require.NoError(t, err)

	restored, err := Restore(s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, models.StatusSolved, restored.Status())
	got, ok := restored.Score()
	require.True(t, ok)
	want, _ := s.Score()
	assert.Equal(t, want, got)

	_, err = restored.Submit(models.Operation{Kind: models.OpPop}, time.Second)
	assert.ErrorIs(t, err, models.ErrInvalidSessionState)
}
