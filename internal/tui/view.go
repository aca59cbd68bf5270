package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/mathdice/internal/game"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D058")).Bold(true)
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	highBadge     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)

	diceStyle = lipgloss.NewStyle().
			Padding(1, 4).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#8C8C8C"))

	operationColors = map[string]lipgloss.Color{
		"red":    lipgloss.Color("#EF4444"),
		"blue":   lipgloss.Color("#3B82F6"),
		"green":  lipgloss.Color("#10B981"),
		"yellow": lipgloss.Color("#F59E0B"),
	}
)

func operationStyle(op game.Operation) lipgloss.Style {
	color, ok := operationColors[op.Color()]
	if !ok {
		color = lipgloss.Color("#F0F0F0")
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.screen == screenDifficulty {
		content = m.viewDifficulty()
	} else {
		content = m.viewGame()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewDifficulty() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Math Dice"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Welcome, %s!", m.user)))
	b.WriteString("\n\n")
	for i, profile := range game.Difficulties() {
		best := m.cache.Best(profile.Key)
		b.WriteString(fmt.Sprintf("%d. %-7s %2ds on the clock   best: %d\n",
			i+1, profile.Name, profile.InitialTime, best))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("1-3 pick difficulty · q quit"))
	return b.String()
}

func (m *Model) viewGame() string {
	header := m.viewHeader()
	var body string
	switch m.session.Phase() {
	case game.PhaseDashboard:
		body = m.viewDashboard()
	case game.PhaseRolling:
		body = m.viewRolling()
	case game.PhaseCountdown:
		body = m.viewCountdown()
	case game.PhaseQuestion:
		body = m.viewQuestion()
	case game.PhaseFeedback:
		body = m.viewFeedback()
	case game.PhaseOver:
		return m.viewGameOver()
	}
	return header + "\n\n" + body
}

func (m *Model) viewHeader() string {
	s := m.session
	timeBadge := badgeStyle.Render(fmt.Sprintf("Time %ds", s.TimeLeft()))
	if s.TimeLeft() <= 10 {
		timeBadge = warningStyle.Render(fmt.Sprintf("Time %ds", s.TimeLeft()))
	}
	segments := []string{
		badgeStyle.Render(s.User()),
		badgeStyle.Render(s.Profile().Name),
		badgeStyle.Render(fmt.Sprintf("Score %d", s.Score())),
		timeBadge,
		badgeStyle.Render(fmt.Sprintf("✓%d ✗%d", s.Correct(), s.Wrong())),
		badgeStyle.Render(fmt.Sprintf("%d%%", s.Accuracy())),
	}
	return strings.Join(segments, "  ")
}

func (m *Model) viewDashboard() string {
	dice := diceStyle.Render("🎲")
	hint := footerStyle.Render("r roll the dice · q quit")
	return dice + "\n\n" + hint
}

func (m *Model) viewRolling() string {
	face, ok := m.session.Face()
	if !ok {
		return diceStyle.Render("🎲")
	}
	style := operationStyle(face)
	dice := diceStyle.BorderForeground(operationColors[face.Color()]).Render(style.Render(face.Symbol()))
	return dice + "\n\n" + subtitleStyle.Render("Rolling...")
}

func (m *Model) viewCountdown() string {
	face, _ := m.session.Face()
	style := operationStyle(face)
	return style.Render(face.Name()) + "\n\n" +
		titleStyle.Render(fmt.Sprintf("%d", m.session.Countdown()))
}

func (m *Model) viewQuestion() string {
	q, ok := m.session.Question()
	if !ok {
		return ""
	}
	style := operationStyle(q.Operation)
	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Question %d · %s", m.session.Total(), q.Operation.Name())))
	b.WriteString("\n\n")
	b.WriteString(style.Render(q.Text()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("enter submit · esc quit"))
	return b.String()
}

func (m *Model) viewFeedback() string {
	out := m.session.Outcome()
	var b strings.Builder
	if out.Correct {
		b.WriteString(correctStyle.Render(fmt.Sprintf("+%d points!", out.Points)))
		b.WriteString("\n")
		detail := fmt.Sprintf("Answered in %ds | Time added: +%ds", out.Latency, out.TimeDelta)
		if out.Capped {
			detail += fmt.Sprintf(" (capped at %ds)", m.session.Profile().MaxTime)
		}
		b.WriteString(subtitleStyle.Render(detail))
	} else {
		b.WriteString(wrongStyle.Render(fmt.Sprintf("Wrong! Answer: %d", out.Answer)))
		b.WriteString("\n")
		// TimeDelta is what actually came off the clock, which is less than
		// the table magnitude when the clock floors at zero.
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Time penalty: -%ds", -out.TimeDelta)))
	}
	return b.String()
}

func (m *Model) viewGameOver() string {
	s := m.session
	var b strings.Builder
	if m.isNewHigh {
		b.WriteString(highBadge.Render("New High Score!"))
	} else {
		b.WriteString(titleStyle.Render("Game Over!"))
	}
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Great job, %s!", s.User())))
	b.WriteString("\n\n")
	rows := []string{
		fmt.Sprintf("Difficulty  %s", s.Profile().Name),
		fmt.Sprintf("Score       %d", s.Score()),
		fmt.Sprintf("Best        %d", m.cache.Best(s.Profile().Key)),
		fmt.Sprintf("Questions   %d", s.Total()),
		fmt.Sprintf("Correct     %d", s.Correct()),
		fmt.Sprintf("Wrong       %d", s.Wrong()),
		fmt.Sprintf("Accuracy    %d%%", s.Accuracy()),
	}
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("p play again · d change difficulty · q quit"))
	return b.String()
}
