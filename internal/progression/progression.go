// Package progression drives the game flow: main menu, structure selection,
// level selection, puzzle solving, feedback, score update, next level. The
// controller owns one player's ProgressionState and the active session; it is
// explicit per-player state, never shared.
package progression

import (
	"fmt"
	"time"

	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/session"
)

type Phase string

const (
	PhaseMainMenu        Phase = "main_menu"
	PhaseStructureSelect Phase = "structure_select"
	PhaseLevelSelect     Phase = "level_select"
	PhaseSolving         Phase = "solving"
	PhaseFeedback        Phase = "feedback"
)

type Controller struct {
	phase  Phase
	state  models.ProgressionState
	active *session.Session
}

// New wraps an existing player state, fresh or loaded from a save.
func New(state models.ProgressionState) *Controller {
	if state.Unlocked == nil {
		state.Unlocked = models.NewProgressionState().Unlocked
	}
	return &Controller{phase: PhaseMainMenu, state: state}
}

func (c *Controller) Phase() Phase                   { return c.phase }
func (c *Controller) State() models.ProgressionState { return c.state }
func (c *Controller) Session() *session.Session      { return c.active }

// UnlockedLevel reports the highest open level for a structure type.
func (c *Controller) UnlockedLevel(t models.StructureType) int {
	if l, ok := c.state.Unlocked[t]; ok {
		return l
	}
	return 1
}

// Begin leaves the main menu.
func (c *Controller) Begin() {
	c.phase = PhaseStructureSelect
}

// ChooseStructure picks the track to play.
func (c *Controller) ChooseStructure(t models.StructureType) error {
	if c.phase != PhaseStructureSelect && c.phase != PhaseMainMenu {
		return fmt.Errorf("cannot choose structure during %s", c.phase)
	}
	c.state.CurrentType = t
	c.phase = PhaseLevelSelect
	return nil
}

// ChooseLevel picks a level on the current track; locked levels are refused.
func (c *Controller) ChooseLevel(level int) error {
	if c.phase != PhaseLevelSelect {
		return fmt.Errorf("cannot choose level during %s", c.phase)
	}
	if level < 1 || level > c.UnlockedLevel(c.state.CurrentType) {
		return fmt.Errorf("level %d is locked for %s", level, c.state.CurrentType)
	}
	c.state.CurrentLevel = level
	return nil
}

// StartPuzzle enters solving with a freshly generated puzzle for the chosen
// track and level.
func (c *Controller) StartPuzzle(p *models.Puzzle) (*session.Session, error) {
	if c.phase != PhaseLevelSelect {
		return nil, fmt.Errorf("cannot start a puzzle during %s", c.phase)
	}
	if p.Type != c.state.CurrentType || p.Level != c.state.CurrentLevel {
		return nil, fmt.Errorf("puzzle %s/%d does not match selection %s/%d",
			p.Type, p.Level, c.state.CurrentType, c.state.CurrentLevel)
	}
	c.active = session.New(p)
	c.phase = PhaseSolving
	return c.active, nil
}

// Resume re-enters solving with a session restored from a save.
func (c *Controller) Resume(s *session.Session) {
	p := s.Puzzle()
	c.state.CurrentType = p.Type
	c.state.CurrentLevel = p.Level
	c.active = s
	c.phase = PhaseSolving
}

// Finish consumes a terminated session: the score is applied to the
// cumulative total and, on solved only, the next level of the track unlocks.
// Unlocking is idempotent and the unlocked set never shrinks.
func (c *Controller) Finish() (models.Feedback, error) {
	if c.phase != PhaseSolving || c.active == nil {
		return models.Feedback{}, fmt.Errorf("no session to finish during %s", c.phase)
	}
	score, done := c.active.Score()
	if !done {
		return models.Feedback{}, models.ErrInvalidSessionState
	}
	status := c.active.Status()
	puzzle := c.active.Puzzle()

	c.state.CumulativeScore += score.Total
	if status == models.StatusSolved && c.state.CurrentLevel == c.UnlockedLevel(puzzle.Type) {
		c.state.Unlocked[puzzle.Type] = c.state.CurrentLevel + 1
	}
	c.active = nil
	c.phase = PhaseFeedback

	return models.Feedback{
		Status:      status,
		Score:       score,
		CorrectPath: puzzle.Solution,
	}, nil
}

// Abandon gives up on the active session and finishes it in one step.
func (c *Controller) Abandon(elapsed time.Duration) (models.Feedback, error) {
	if c.phase != PhaseSolving || c.active == nil {
		return models.Feedback{}, fmt.Errorf("no session to abandon during %s", c.phase)
	}
	if _, err := c.active.Abandon(elapsed); err != nil {
		return models.Feedback{}, err
	}
	return c.Finish()
}

// NextLevel advances the selection after feedback: to the following level if
// it is unlocked, otherwise back onto the same one for another try.
func (c *Controller) NextLevel() (int, error) {
	if c.phase != PhaseFeedback {
		return 0, fmt.Errorf("cannot advance during %s", c.phase)
	}
	next := c.state.CurrentLevel
	if next+1 <= c.UnlockedLevel(c.state.CurrentType) {
		next++
	}
	c.state.CurrentLevel = next
	c.phase = PhaseLevelSelect
	return next, nil
}

// BackToMenu returns to structure selection after feedback.
func (c *Controller) BackToMenu() {
	if c.phase == PhaseFeedback || c.phase == PhaseLevelSelect {
		c.phase = PhaseStructureSelect
	}
}
