// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/mathdice/internal/game"
	"github.com/verte-zerg/mathdice/internal/model"
	"github.com/verte-zerg/mathdice/internal/scores"
)

type screen int

const (
	screenDifficulty screen = iota
	screenGame
)

const clientTimeout = 5 * time.Second

// Tick messages carry the generation they were scheduled under. Bumping the
// generation invalidates every pending tick, so at most one timer chain is
// ever live.
type rollTickMsg struct{ gen int }

type countdownTickMsg struct{ gen int }

type clockTickMsg struct{ gen int }

type feedbackDoneMsg struct{ gen int }

type highScoresMsg struct {
	scores model.HighScores
	err    error
}

type highScoreSavedMsg struct {
	isNew bool
	err   error
}

type resultSavedMsg struct{ err error }

// Model implements the Bubble Tea game UI.
type Model struct {
	user   string
	client scores.Client
	cache  *scores.Cache
	gen    *game.Generator

	screen          screen
	session         *game.Session
	input           textinput.Model
	startDifficulty string

	timerGen  int
	isNewHigh bool

	width  int
	height int
}

// NewModel constructs the game UI model. A non-empty difficulty skips the
// selection screen and starts the game directly.
func NewModel(user, difficulty string, client scores.Client, gen *game.Generator) *Model {
	input := textinput.New()
	input.Placeholder = "answer"
	input.CharLimit = 10
	input.Width = 12
	return &Model{
		user:            user,
		client:          client,
		cache:           scores.NewCache(model.HighScores{}),
		gen:             gen,
		screen:          screenDifficulty,
		input:           input,
		startDifficulty: difficulty,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchHighScoresCmd()}
	if m.startDifficulty != "" {
		cmds = append(cmds, m.startGame(m.startDifficulty))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case highScoresMsg:
		if msg.err != nil {
			logErrf("failed to load high scores: %v\n", msg.err)
			return m, nil
		}
		// Merge rather than replace: a fetch racing a pending save must not
		// clobber a provisional local best.
		for _, profile := range game.Difficulties() {
			m.cache.Reconcile(profile.Key, msg.scores.For(profile.Key))
		}
		return m, nil
	case highScoreSavedMsg:
		if msg.err != nil {
			logErrf("failed to save high score: %v\n", msg.err)
		}
		return m, nil
	case resultSavedMsg:
		if msg.err != nil {
			logErrf("failed to save game stats: %v\n", msg.err)
		}
		return m, nil
	case rollTickMsg:
		return m.onRollTick(msg)
	case countdownTickMsg:
		return m.onCountdownTick(msg)
	case clockTickMsg:
		return m.onClockTick(msg)
	case feedbackDoneMsg:
		return m.onFeedbackDone(msg)
	case tea.KeyMsg:
		return m.onKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.screen == screenDifficulty {
		return m.onDifficultyKey(msg)
	}
	return m.onGameKey(msg)
}

func (m *Model) onDifficultyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "1", "e":
		return m, m.startGame("easy")
	case "2", "m":
		return m, m.startGame("medium")
	case "3", "h":
		return m, m.startGame("hard")
	}
	return m, nil
}

func (m *Model) startGame(key string) tea.Cmd {
	profile, err := game.GetProfile(key)
	if err != nil {
		logErrf("failed to start game: %v\n", err)
		return nil
	}
	m.session = game.NewSession(m.user, profile, m.gen)
	m.screen = screenGame
	m.isNewHigh = false
	m.timerGen++
	return nil
}

func (m *Model) onGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.session.Phase() {
	case game.PhaseDashboard:
		switch msg.String() {
		case "r", " ", "enter":
			if m.session.StartRoll() {
				m.timerGen++
				return m, m.rollTickCmd()
			}
		case "q", "esc":
			return m, m.quitGame()
		}
	case game.PhaseRolling, game.PhaseCountdown, game.PhaseFeedback:
		// Timers drive these phases; only quitting is allowed.
		if s := msg.String(); s == "q" || s == "esc" {
			return m, m.quitGame()
		}
	case game.PhaseQuestion:
		switch msg.Type {
		case tea.KeyEnter:
			if _, ok := m.session.Submit(m.input.Value(), time.Now()); ok {
				m.timerGen++
				m.input.Blur()
				return m, m.feedbackCmd()
			}
			return m, nil
		case tea.KeyEsc:
			return m, m.quitGame()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case game.PhaseOver:
		switch msg.String() {
		case "p", "enter":
			m.session.PlayAgain()
			m.isNewHigh = false
			m.timerGen++
			return m, nil
		case "d":
			m.session = nil
			m.screen = screenDifficulty
			m.timerGen++
			return m, m.fetchHighScoresCmd()
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// quitGame abandons the session mid-game. A partial result is persisted
// when at least one question was asked; no game-over screen is shown.
func (m *Model) quitGame() tea.Cmd {
	m.timerGen++
	result, ok := m.session.Quit()
	m.session = nil
	m.screen = screenDifficulty
	cmds := []tea.Cmd{m.fetchHighScoresCmd()}
	if ok {
		m.cache.Record(result.Difficulty, result.Score)
		cmds = append(cmds,
			m.saveResultCmd(result),
			m.saveHighScoreCmd(result.Difficulty, result.Score),
		)
	}
	return tea.Batch(cmds...)
}

func (m *Model) onRollTick(msg rollTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.timerGen || m.session == nil {
		return m, nil
	}
	if settled := m.session.RollStep(m.gen.RollFace()); settled {
		m.timerGen++
		return m, m.countdownTickCmd()
	}
	return m, m.rollTickCmd()
}

func (m *Model) onCountdownTick(msg countdownTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.timerGen || m.session == nil {
		return m, nil
	}
	if err := m.session.CountdownTick(time.Now()); err != nil {
		logErrf("failed to generate question: %v\n", err)
		return m, tea.Quit
	}
	if m.session.Phase() == game.PhaseQuestion {
		m.timerGen++
		m.input.Reset()
		m.input.Focus()
		return m, tea.Batch(textinput.Blink, m.clockTickCmd())
	}
	return m, m.countdownTickCmd()
}

func (m *Model) onClockTick(msg clockTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.timerGen || m.session == nil {
		return m, nil
	}
	if over := m.session.ClockTick(); over {
		m.timerGen++
		m.input.Blur()
		return m, m.finishGame()
	}
	return m, m.clockTickCmd()
}

func (m *Model) onFeedbackDone(msg feedbackDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.timerGen || m.session == nil {
		return m, nil
	}
	if m.session.FeedbackDone() == game.PhaseOver {
		return m, m.finishGame()
	}
	return m, nil
}

// finishGame records the result and kicks off the fire-and-forget saves.
func (m *Model) finishGame() tea.Cmd {
	result := m.session.Result()
	m.isNewHigh = m.cache.Record(result.Difficulty, result.Score)
	return tea.Batch(
		m.saveResultCmd(result),
		m.saveHighScoreCmd(result.Difficulty, result.Score),
	)
}

func (m *Model) rollTickCmd() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(game.RollStepInterval, func(time.Time) tea.Msg {
		return rollTickMsg{gen: gen}
	})
}

func (m *Model) countdownTickCmd() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{gen: gen}
	})
}

func (m *Model) clockTickCmd() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clockTickMsg{gen: gen}
	})
}

func (m *Model) feedbackCmd() tea.Cmd {
	gen := m.timerGen
	return tea.Tick(game.FeedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{gen: gen}
	})
}

func (m *Model) fetchHighScoresCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
		defer cancel()
		fetched, err := m.client.FetchHighScores(ctx, m.user)
		return highScoresMsg{scores: fetched, err: err}
	}
}

func (m *Model) saveHighScoreCmd(difficulty string, score int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
		defer cancel()
		isNew, err := m.client.SubmitHighScore(ctx, m.user, difficulty, score)
		return highScoreSavedMsg{isNew: isNew, err: err}
	}
}

func (m *Model) saveResultCmd(result model.GameResult) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
		defer cancel()
		return resultSavedMsg{err: m.client.SubmitGameResult(ctx, result)}
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
