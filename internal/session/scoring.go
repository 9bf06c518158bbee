package session

import (
	"time"

	"github.com/structquest/structquest/internal/models"
)

// Scoring constants. Elapsed time is an opaque caller-supplied input; the
// session never reads a clock itself.
const (
	basePerLevel      = 100
	timeBucket        = 30 * time.Second
	timeBucketPenalty = 10
	hintCost          = 15
	illegalCost       = 10
)

// finalize computes the ScoreRecord exactly once, at termination. Failed and
// abandoned sessions keep their penalty breakdown but total zero.
func (s *Session) finalize(elapsed time.Duration) {
	if s.score != nil {
		return
	}
	rec := models.ScoreRecord{
		BasePoints:            basePerLevel * s.puzzle.Level,
		TimePenalty:           timeBucketPenalty * int(elapsed/timeBucket),
		HintPenalty:           hintCost * s.hints,
		IllegalAttemptPenalty: illegalCost * s.illegal,
	}
	if s.status == models.StatusSolved {
		rec.Total = rec.BasePoints - rec.TimePenalty - rec.HintPenalty - rec.IllegalAttemptPenalty
		if rec.Total < 0 {
			rec.Total = 0
		}
	}
	s.score = &rec
}
