// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/mathdice/internal/game"
	"github.com/verte-zerg/mathdice/internal/model"
	"github.com/verte-zerg/mathdice/internal/scores"
	"github.com/verte-zerg/mathdice/internal/stats"
)

const (
	tabOverview = iota
	tabHistory
	tabLeaderboard
)

const (
	historyLimit     = 200
	leaderboardLimit = 10
	clientTimeout    = 5 * time.Second
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

type historyMsg struct {
	entries []model.HistoryEntry
	err     error
}

type leaderboardMsg struct {
	difficulty string
	entries    []model.LeaderboardEntry
	err        error
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	client   scores.Client
	username string

	tabs      []string
	activeTab int

	history     []model.HistoryEntry
	leaderboard []model.LeaderboardEntry
	difficulty  string
	errMsg      string

	overview     viewport.Model
	historyTable table.Model
	boardTable   table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model for the given player.
func NewModel(client scores.Client, username, difficulty string) *Model {
	if !game.ValidKey(difficulty) {
		difficulty = "easy"
	}
	m := &Model{
		client:     client,
		username:   username,
		tabs:       []string{"Overview", "History", "Leaderboard"},
		difficulty: difficulty,
		overview:   viewport.New(0, 0),
	}
	m.historyTable = newTable([]table.Column{
		{Title: "Played", Width: 16},
		{Title: "Difficulty", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Correct", Width: 7},
		{Title: "Wrong", Width: 5},
		{Title: "Accuracy", Width: 8},
	})
	m.boardTable = newTable([]table.Column{
		{Title: "Rank", Width: 4},
		{Title: "Player", Width: 20},
		{Title: "Score", Width: 7},
		{Title: "Last played", Width: 16},
	})
	return m
}

func newTable(cols []table.Column) table.Model {
	t := table.New(table.WithColumns(cols))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#C89A3A"))
	t.SetStyles(styles)
	return t
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchHistoryCmd(), m.fetchLeaderboardCmd(m.difficulty))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case historyMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("failed to load history: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.history = msg.entries
		m.fillHistoryRows()
		m.renderOverview()
		return m, nil
	case leaderboardMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("failed to load leaderboard: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.difficulty = msg.difficulty
		m.leaderboard = msg.entries
		m.fillBoardRows()
		return m, nil
	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
		return m, tea.Quit
	}
	switch msg.String() {
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "1", "2", "3":
		if m.activeTab == tabLeaderboard {
			keys := []string{"easy", "medium", "hard"}
			idx := int(msg.String()[0] - '1')
			return m, m.fetchLeaderboardCmd(keys[idx])
		}
	case "r":
		return m, tea.Batch(m.fetchHistoryCmd(), m.fetchLeaderboardCmd(m.difficulty))
	}
	switch m.activeTab {
	case tabHistory:
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	case tabLeaderboard:
		var cmd tea.Cmd
		m.boardTable, cmd = m.boardTable.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderTabs()
	var body string
	switch m.activeTab {
	case tabHistory:
		body = m.historyTable.View()
	case tabLeaderboard:
		body = m.boardTable.View()
	default:
		body = m.overview.View()
	}
	footer := m.renderFooter()
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := tab
		if i == tabLeaderboard {
			label = fmt.Sprintf("%s (%s)", tab, m.difficulty)
		}
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderFooter() string {
	hints := "←/→ tabs · r refresh · q quit"
	if m.activeTab == tabLeaderboard {
		hints = "1-3 difficulty · " + hints
	}
	footer := headerStyle.Render(hints)
	if m.errMsg != "" {
		footer += "\n" + errorStyle.Render(m.errMsg)
	}
	return footer
}

func (m *Model) updateLayout() {
	headerHeight := lipgloss.Height(activeNavStyle.Render("X"))
	footerHeight := 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight := m.height - headerHeight - footerHeight - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.historyTable.SetHeight(bodyHeight)
	m.boardTable.SetHeight(bodyHeight)
}

func (m *Model) fillHistoryRows() {
	rows := make([]table.Row, 0, len(m.history))
	for _, entry := range m.history {
		rows = append(rows, table.Row{
			entry.PlayedAt.Local().Format("2006-01-02 15:04"),
			entry.Difficulty,
			strconv.Itoa(entry.Score),
			strconv.Itoa(entry.Correct),
			strconv.Itoa(entry.Wrong),
			fmt.Sprintf("%d%%", entry.Accuracy),
		})
	}
	m.historyTable.SetRows(rows)
}

func (m *Model) fillBoardRows() {
	rows := make([]table.Row, 0, len(m.leaderboard))
	for i, entry := range m.leaderboard {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			entry.Username,
			strconv.Itoa(entry.HighScore),
			entry.LastPlayed.Local().Format("2006-01-02 15:04"),
		})
	}
	m.boardTable.SetRows(rows)
}

func (m *Model) renderOverview() {
	if len(m.history) == 0 {
		m.overview.SetContent(headerStyle.Render(fmt.Sprintf("No games recorded for %s yet.", m.username)))
		return
	}
	sum := stats.Summarize(m.history)
	cards := []string{
		renderCard("Games", strconv.Itoa(sum.Games)),
		renderCard("Best score", strconv.Itoa(sum.BestScore)),
		renderCard("Avg score", fmt.Sprintf("%.1f", sum.AvgScore)),
		renderCard("Accuracy", fmt.Sprintf("%d%%", sum.Accuracy)),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, cards...)

	trend := stats.MovingAverage(stats.ScoreTrend(m.history), stats.TrendWindow)
	if m.width > 8 && len(trend) > m.width-8 {
		trend = trend[len(trend)-(m.width-8):]
	}
	spark := headerStyle.Render("Trend: ") + stats.Sparkline(trend)
	m.overview.SetContent(row + "\n\n" + spark)
}

func renderCard(title, value string) string {
	content := cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabHistory {
		m.historyTable.Focus()
	} else {
		m.historyTable.Blur()
	}
	if m.activeTab == tabLeaderboard {
		m.boardTable.Focus()
	} else {
		m.boardTable.Blur()
	}
}

func (m *Model) fetchHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
		defer cancel()
		entries, err := m.client.FetchHistory(ctx, m.username, historyLimit)
		return historyMsg{entries: entries, err: err}
	}
}

func (m *Model) fetchLeaderboardCmd(difficulty string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
		defer cancel()
		entries, err := m.client.FetchLeaderboard(ctx, difficulty, leaderboardLimit)
		return leaderboardMsg{difficulty: difficulty, entries: entries, err: err}
	}
}
