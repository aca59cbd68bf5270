package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/verte-zerg/mathdice/internal/model"
)

const terminalWidthBackup = 80

// RenderSummary prints aggregate stats and a score trend for a player.
func RenderSummary(w io.Writer, username string, entries []model.HistoryEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "No games recorded for %s.\n", username)
		return err
	}
	sum := Summarize(entries)
	lines := []string{
		fmt.Sprintf("Player: %s", username),
		fmt.Sprintf("Games: %d", sum.Games),
		fmt.Sprintf("Best score: %d", sum.BestScore),
		fmt.Sprintf("Avg score: %.1f", sum.AvgScore),
		fmt.Sprintf("Questions: %d (%d correct, %d wrong)", sum.Questions, sum.Correct, sum.Wrong),
		fmt.Sprintf("Accuracy: %d%%", sum.Accuracy),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	trend := MovingAverage(ScoreTrend(entries), TrendWindow)
	if maxWidth := terminalWidth(); len(trend) > maxWidth {
		trend = trend[len(trend)-maxWidth:]
	}
	if _, err := fmt.Fprintf(w, "Trend: %s\n", Sparkline(trend)); err != nil {
		return err
	}
	return nil
}

// RenderHistory prints past games as a table, most recent first.
func RenderHistory(w io.Writer, entries []model.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	headers := []string{"Played", "Difficulty", "Score", "Correct", "Wrong", "Accuracy"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.PlayedAt.Local().Format("2006-01-02 15:04"),
			entry.Difficulty,
			strconv.Itoa(entry.Score),
			strconv.Itoa(entry.Correct),
			strconv.Itoa(entry.Wrong),
			fmt.Sprintf("%d%%", entry.Accuracy),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLeaderboard prints the top players for a difficulty.
func RenderLeaderboard(w io.Writer, difficulty string, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "No scores recorded for %s yet.\n", difficulty)
		return err
	}
	headers := []string{"Rank", "Player", "Score", "Last played"}
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			entry.Username,
			strconv.Itoa(entry.HighScore),
			entry.LastPlayed.Local().Format("2006-01-02 15:04"),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
