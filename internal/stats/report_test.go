package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/mathdice/internal/model"
)

func TestRenderSummary(t *testing.T) {
	now := time.Now()
	entries := []model.HistoryEntry{
		historyEntry(500, 4, 1, 5, 80, now),
		historyEntry(300, 3, 1, 4, 75, now.Add(-time.Hour)),
	}

	var b strings.Builder
	if err := RenderSummary(&b, "alice", entries); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"Player: alice",
		"Games: 2",
		"Best score: 500",
		"Avg score: 400.0",
		"Questions: 9 (7 correct, 2 wrong)",
		"Accuracy: 78%",
		"Trend: ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryNoGames(t *testing.T) {
	var b strings.Builder
	if err := RenderSummary(&b, "alice", nil); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	if got := b.String(); got != "No games recorded for alice.\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRenderHistory(t *testing.T) {
	entries := []model.HistoryEntry{
		historyEntry(250, 2, 1, 3, 67, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)),
	}

	var b strings.Builder
	if err := RenderHistory(&b, entries); err != nil {
		t.Fatalf("RenderHistory: %v", err)
	}
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Played") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "easy") || !strings.Contains(lines[1], "250") || !strings.Contains(lines[1], "67%") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestRenderLeaderboard(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{Username: "alice", HighScore: 900, LastPlayed: time.Now()},
		{Username: "bob", HighScore: 700, LastPlayed: time.Now()},
	}

	var b strings.Builder
	if err := RenderLeaderboard(&b, "hard", entries); err != nil {
		t.Fatalf("RenderLeaderboard: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Rank") || !strings.Contains(out, "alice") || !strings.Contains(out, "900") {
		t.Fatalf("output = %q", out)
	}
	aliceIdx := strings.Index(out, "alice")
	bobIdx := strings.Index(out, "bob")
	if aliceIdx < 0 || bobIdx < 0 || aliceIdx > bobIdx {
		t.Fatalf("ordering wrong:\n%s", out)
	}

	b.Reset()
	if err := RenderLeaderboard(&b, "hard", nil); err != nil {
		t.Fatalf("RenderLeaderboard empty: %v", err)
	}
	if got := b.String(); got != "No scores recorded for hard yet.\n" {
		t.Fatalf("empty output = %q", got)
	}
}
