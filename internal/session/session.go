// Package session tracks one puzzle attempt: the operation log, the derived
// current state, the mistake budget, and the final score. A session is owned
// by a single player and its methods are called strictly sequentially.
package session

import (
	"time"

	"github.com/structquest/structquest/internal/generator"
	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/structure"
	"github.com/structquest/structquest/internal/validator"
)

type Session struct {
	puzzle  models.Puzzle
	current models.State
	log     []models.Operation
	illegal int
	hints   int
	status  models.SessionStatus
	score   *models.ScoreRecord
}

// New starts a session for a generated puzzle.
func New(p *models.Puzzle) *Session {
	return &Session{
		puzzle:  *p,
		current: p.Initial.Clone(),
		status:  models.StatusInProgress,
	}
}

// SubmitResult reports the verdict on one submitted operation.
type SubmitResult struct {
	Accepted bool
	Reason   models.Reason
	State    models.State
	Solved   bool
	Failed   bool
}

// Submit routes op through the validator. Accepted operations enter the log
// and may solve the puzzle; rejected ones burn mistake budget and, past the
// budget, fail the session. Elapsed is the caller's opaque play time so far,
// consumed only if this submission terminates the session.
func (s *Session) Submit(op models.Operation, elapsed time.Duration) (SubmitResult, error) {
	if s.status != models.StatusInProgress {
		return SubmitResult{}, models.ErrInvalidSessionState
	}
	res := validator.Check(&s.puzzle, s.current, op)
	if !res.Accepted {
		s.illegal++
		if s.illegal > s.puzzle.MistakeBudget {
			s.status = models.StatusFailed
			s.finalize(elapsed)
			return SubmitResult{Reason: res.Reason, Failed: true}, nil
		}
		return SubmitResult{Reason: res.Reason}, nil
	}
	s.log = append(s.log, op)
	s.current = res.State
	out := SubmitResult{Accepted: true, State: res.State.Clone()}
	if structure.GoalSatisfied(s.current, s.puzzle.Goal) {
		s.status = models.StatusSolved
		s.finalize(elapsed)
		out.Solved = true
	}
	return out, nil
}

// Abandon terminates the session with a zero score.
func (s *Session) Abandon(elapsed time.Duration) (models.ScoreRecord, error) {
	if s.status != models.StatusInProgress {
		return models.ScoreRecord{}, models.ErrInvalidSessionState
	}
	s.status = models.StatusAbandoned
	s.finalize(elapsed)
	return *s.score, nil
}

// Hint searches for the next operation on a shortest path from the current
// state to the goal. Served hints are counted and scored.
func (s *Session) Hint() (models.Operation, bool, error) {
	if s.status != models.StatusInProgress {
		return models.Operation{}, false, models.ErrInvalidSessionState
	}
	path, found := generator.FindPath(
		s.current, s.puzzle.Goal, s.puzzle.Allowed,
		generator.ValueAlphabet(s.puzzle.Level),
		structure.Policy{CascadeDelete: s.puzzle.CascadeDelete},
		generator.SearchDepth(s.puzzle.Level),
	)
	if !found || len(path) == 0 {
		return models.Operation{}, false, nil
	}
	s.hints++
	return path[0], true, nil
}

func (s *Session) Status() models.SessionStatus { return s.status }
func (s *Session) Puzzle() models.Puzzle        { return s.puzzle }
func (s *Session) State() models.State          { return s.current.Clone() }
func (s *Session) Log() []models.Operation      { return append([]models.Operation(nil), s.log...) }
func (s *Session) IllegalAttempts() int         { return s.illegal }
func (s *Session) HintsUsed() int               { return s.hints }

// Score returns the finalized record, or false while in progress.
func (s *Session) Score() (models.ScoreRecord, bool) {
	if s.score == nil {
		return models.ScoreRecord{}, false
	}
	return *s.score, true
}

// Snapshot captures the session for external persistence. The current state
// is omitted on purpose: Restore rederives it from the log.
func (s *Session) Snapshot() models.SessionRecord {
	rec := models.SessionRecord{
		Puzzle:          s.puzzle,
		Log:             s.Log(),
		IllegalAttempts: s.illegal,
		HintsUsed:       s.hints,
		Status:          s.status,
	}
	if s.score != nil {
		sc := *s.score
		rec.Score = &sc
	}
	return rec
}

// Restore rebuilds a session from a snapshot by replaying its log from the
// puzzle's initial state.
func Restore(rec models.SessionRecord) (*Session, error) {
	current, err := structure.Replay(rec.Puzzle.Initial, rec.Log, structure.Policy{CascadeDelete: rec.Puzzle.CascadeDelete})
	if err != nil {
		return nil, err
	}
	s := &Session{
		puzzle:  rec.Puzzle,
		current: current,
		log:     append([]models.Operation(nil), rec.Log...),
		illegal: rec.IllegalAttempts,
		hints:   rec.HintsUsed,
		status:  rec.Status,
	}
	if s.status == "" {
		s.status = models.StatusInProgress
	}
	if rec.Score != nil {
		sc := *rec.Score
		s.score = &sc
	}
	return s, nil
}
