package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/structquest/structquest/internal/engine"
	"github.com/structquest/structquest/internal/explain"
	"github.com/structquest/structquest/internal/models"
	"github.com/structquest/structquest/internal/progression"
)

type uiState int

const (
	stateMenu uiState = iota
	stateStructureSelect
	stateLevelSelect
	stateGenerating
	stateSolving
	stateFeedback
	stateError
)

type model struct {
	state     uiState
	eng       *engine.Engine
	coach     *explain.Coach
	ctrl      *progression.Controller
	saveName  string
	textInput textinput.Model

	startedAt time.Time
	log       string
	feedback  *models.Feedback
	err       error
	width     int
	height    int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ECE6A")).
			Bold(true)

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7768E")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

func NewModel(eng *engine.Engine, coach *explain.Coach, ctrl *progression.Controller, saveName string) model {
	ti := textinput.New()
	ti.Placeholder = "Press enter to start"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	m := model{
		state:     stateMenu,
		eng:       eng,
		coach:     coach,
		ctrl:      ctrl,
		saveName:  saveName,
		textInput: ti,
	}
	// A restored save may drop us straight into a suspended puzzle.
	if ctrl.Phase() == progression.PhaseSolving {
		m.state = stateSolving
		m.startedAt = time.Now()
		m.textInput.Placeholder = "Type an operation"
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type puzzleReadyMsg struct{ puzzle *models.Puzzle }

type generationFailedMsg struct{ err error }

type explainedMsg struct{ text string }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.save()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case puzzleReadyMsg:
		if _, err := m.ctrl.StartPuzzle(msg.puzzle); err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}
		m.state = stateSolving
		m.startedAt = time.Now()
		m.log = ""
		m.textInput.Placeholder = "Type an operation"
		m.textInput.Reset()
		return m, nil

	case generationFailedMsg:
		// Never crash the session on generation failure: fall back to the
		// level below, or report if there is nowhere to fall.
		st := m.ctrl.State()
		if st.CurrentLevel > 1 {
			if err := m.ctrl.ChooseLevel(st.CurrentLevel - 1); err == nil {
				return m, m.generate()
			}
		}
		m.err = msg.err
		m.state = stateError
		return m, nil

	case explainedMsg:
		m.log += helpStyle.Render(msg.text) + "\n"
		return m, nil
	}

	if m.state != stateGenerating && m.state != stateError {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	m.textInput.Reset()

	switch m.state {
	case stateMenu:
		m.ctrl.Begin()
		m.state = stateStructureSelect
		m.textInput.Placeholder = "1-5"
		return m, nil

	case stateStructureSelect:
		idx, err := strconv.Atoi(input)
		if err != nil || idx < 1 || idx > len(models.StructureTypes) {
			return m, nil
		}
		if err := m.ctrl.ChooseStructure(models.StructureTypes[idx-1]); err != nil {
			return m, nil
		}
		m.state = stateLevelSelect
		m.textInput.Placeholder = "Level number"
		return m, nil

	case stateLevelSelect:
		level, err := strconv.Atoi(input)
		if err != nil {
			return m, nil
		}
		if err := m.ctrl.ChooseLevel(level); err != nil {
			m.log = badStyle.Render(err.Error())
			return m, nil
		}
		m.state = stateGenerating
		return m, m.generate()

	case stateSolving:
		return m.handleSolvingInput(input)

	case stateFeedback:
		switch input {
		case "menu":
			m.ctrl.BackToMenu()
			m.state = stateStructureSelect
			m.textInput.Placeholder = "1-5"
		default:
			if _, err := m.ctrl.NextLevel(); err == nil {
				m.state = stateLevelSelect
				m.textInput.Placeholder = "Level number"
			}
		}
		m.feedback = nil
		m.log = ""
		return m, nil
	}
	return m, nil
}

func (m model) handleSolvingInput(input string) (tea.Model, tea.Cmd) {
	sess := m.ctrl.Session()
	if sess == nil {
		return m, nil
	}
	elapsed := time.Since(m.startedAt)

	switch input {
	case "":
		return m, nil
	case "abandon":
		fb, err := m.ctrl.Abandon(elapsed)
		if err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}
		return m.enterFeedback(fb)
	case "hint":
		op, ok, err := sess.Hint()
		if err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}
		if !ok {
			m.log += helpStyle.Render("No hint found from here.") + "\n"
			return m, nil
		}
		m.log += helpStyle.Render("Hint: try "+explain.DescribeOperation(op)) + "\n"
		return m, nil
	}

	op, err := ParseOperation(sess.Puzzle().Type, input)
	if err != nil {
		m.log += badStyle.Render(err.Error()) + "\n"
		return m, nil
	}
	res, err := m.eng.Submit(sess, op, elapsed)
	if err != nil {
		m.err = err
		m.state = stateError
		return m, nil
	}
	switch {
	case res.Solved:
		m.log += goodStyle.Render("Solved!") + "\n"
		fb, err := m.ctrl.Finish()
		if err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}
		return m.enterFeedback(fb)
	case res.Failed:
		m.log += badStyle.Render("Out of attempts.") + "\n"
		fb, err := m.ctrl.Finish()
		if err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}
		return m.enterFeedback(fb)
	case res.Accepted:
		m.log += fmt.Sprintf("ok: %s\n", explain.DescribeOperation(op))
		return m, nil
	default:
		m.log += badStyle.Render(fmt.Sprintf("rejected (%s): %s", res.Reason, explain.Fallback(res.Reason))) + "\n"
		if m.coach != nil {
			return m, m.explainRejection(sess.Puzzle().Type, op, res.Reason)
		}
		return m, nil
	}
}

func (m model) enterFeedback(fb models.Feedback) (tea.Model, tea.Cmd) {
	m.feedback = &fb
	m.state = stateFeedback
	m.textInput.Placeholder = "enter = next level, 'menu' = structures"
	m.save()
	return m, nil
}

// save writes the slot, including a suspended session when quitting
// mid-puzzle.
func (m model) save() {
	game := models.SaveGame{Progress: m.ctrl.State()}
	if sess := m.ctrl.Session(); sess != nil && sess.Status() == models.StatusInProgress {
		rec := sess.Snapshot()
		game.Session = &rec
	}
	_ = game.Save(m.saveName)
}

func (m model) generate() tea.Cmd {
	st := m.ctrl.State()
	return func() tea.Msg {
		p, err := m.eng.GeneratePuzzle(context.Background(), st.CurrentType, st.CurrentLevel, 0)
		if err != nil {
			return generationFailedMsg{err}
		}
		return puzzleReadyMsg{p}
	}
}

func (m model) explainRejection(t models.StructureType, op models.Operation, reason models.Reason) tea.Cmd {
	return func() tea.Msg {
		text, err := m.coach.ExplainRejection(context.Background(), t, op, reason)
		if err != nil {
			return explainedMsg{text: ""}
		}
		return explainedMsg{text: text}
	}
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateMenu:
		st := m.ctrl.State()
		s = titleStyle.Render("StructQuest") + "\n\n" +
			"Learn data structures by solving operation puzzles.\n" +
			fmt.Sprintf("Cumulative score: %d\n\n", st.CumulativeScore) +
			m.textInput.View()

	case stateStructureSelect:
		var b strings.Builder
		b.WriteString(titleStyle.Render("Choose a structure") + "\n\n")
		for i, t := range models.StructureTypes {
			fmt.Fprintf(&b, "  %d. %-12s (unlocked to level %d)\n", i+1, t, m.ctrl.UnlockedLevel(t))
		}
		s = b.String() + "\n" + m.textInput.View()

	case stateLevelSelect:
		st := m.ctrl.State()
		s = titleStyle.Render(fmt.Sprintf("%s levels", st.CurrentType)) + "\n\n" +
			fmt.Sprintf("Unlocked: 1-%d\n\n", m.ctrl.UnlockedLevel(st.CurrentType)) +
			m.log + "\n" + m.textInput.View()

	case stateGenerating:
		s = "\n  Generating your puzzle...\n"

	case stateSolving:
		s = m.solvingView()

	case stateFeedback:
		s = m.feedbackView()

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) solvingView() string {
	sess := m.ctrl.Session()
	if sess == nil {
		return ""
	}
	p := sess.Puzzle()

	left := titleStyle.Render(fmt.Sprintf("%s / level %d", p.Type, p.Level)) + "\n\n" +
		RenderState(sess.State()) + "\n\n" + m.log

	right := panelStyle.Render(
		DescribeGoal(p.Goal) + "\n\n" +
			"Allowed: " + strings.Join(sortedKinds(p.Allowed), ", ") + "\n" +
			fmt.Sprintf("Mistakes: %d/%d\n", sess.IllegalAttempts(), p.MistakeBudget) +
			fmt.Sprintf("Hints used: %d", sess.HintsUsed()),
	)

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)
	help := helpStyle.Render("Commands: an operation, 'hint', 'abandon'. Esc saves and quits.")
	return lipgloss.JoinVertical(lipgloss.Left, main, "\n"+m.textInput.View(), "\n"+help)
}

func (m model) feedbackView() string {
	if m.feedback == nil {
		return ""
	}
	fb := m.feedback
	head := badStyle.Render(strings.ToUpper(string(fb.Status)))
	if fb.Status == models.StatusSolved {
		head = goodStyle.Render("SOLVED")
	}
	var b strings.Builder
	b.WriteString(head + "\n\n")
	fmt.Fprintf(&b, "Base points:      %d\n", fb.Score.BasePoints)
	fmt.Fprintf(&b, "Time penalty:    -%d\n", fb.Score.TimePenalty)
	fmt.Fprintf(&b, "Hint penalty:    -%d\n", fb.Score.HintPenalty)
	fmt.Fprintf(&b, "Mistake penalty: -%d\n", fb.Score.IllegalAttemptPenalty)
	fmt.Fprintf(&b, "Total:            %d\n", fb.Score.Total)
	fmt.Fprintf(&b, "Cumulative:       %d\n", m.ctrl.State().CumulativeScore)
	if len(fb.CorrectPath) > 0 && fb.Status != models.StatusSolved {
		b.WriteString("\nOne correct path:\n")
		for _, op := range fb.CorrectPath {
			b.WriteString("  " + explain.DescribeOperation(op) + "\n")
		}
	}
	return b.String() + "\n" + m.textInput.View()
}

// Run starts the interactive tutor.
func Run(eng *engine.Engine, coach *explain.Coach, ctrl *progression.Controller, saveName string) error {
	p := tea.NewProgram(NewModel(eng, coach, ctrl, saveName), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
