// Package engine is the surface the presentation and persistence layers talk
// to: puzzle generation, session lifecycle, and serialization round-trips.
// It performs no I/O of its own.
package engine

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/structquest/structquest/internal/generator"
	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/session"
)

type puzzleKey struct {
	t     models.StructureType
	level int
	seed  int64
}

type Engine struct {
	gen   *generator.Generator
	cache *lru.Cache[puzzleKey, *models.Puzzle]
}

func New() (*Engine, error) {
	cache, err := lru.New[puzzleKey, *models.Puzzle](128)
	if err != nil {
		return nil, err
	}
	return &Engine{gen: generator.New(), cache: cache}, nil
}

// GeneratePuzzle returns a puzzle for (t, level). A zero seed draws a fresh
// one; explicit seeds are deterministic and cached, so retrying a seeded
// level does not regenerate.
func (e *Engine) GeneratePuzzle(ctx context.Context, t models.StructureType, level int, seed int64) (*models.Puzzle, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	key := puzzleKey{t: t, level: level, seed: seed}
	if p, ok := e.cache.Get(key); ok {
		return p, nil
	}
	p, err := e.gen.Generate(ctx, t, level, seed)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, p)
	return p, nil
}

// StartSession opens a session over a generated puzzle.
func (e *Engine) StartSession(p *models.Puzzle) *session.Session {
	return session.New(p)
}

// Submit relays one operation into a session.
func (e *Engine) Submit(s *session.Session, op models.Operation, elapsed time.Duration) (session.SubmitResult, error) {
	return s.Submit(op, elapsed)
}

// Abandon gives up a session and returns its zeroed score.
func (e *Engine) Abandon(s *session.Session, elapsed time.Duration) (models.ScoreRecord, error) {
	return s.Abandon(elapsed)
}

// Suspend snapshots a session for external save.
func (e *Engine) Suspend(s *session.Session) models.SessionRecord {
	return s.Snapshot()
}

// Resume rebuilds a session from a saved snapshot, replaying its log.
func (e *Engine) Resume(rec models.SessionRecord) (*session.Session, error) {
	return session.Restore(rec)
}
