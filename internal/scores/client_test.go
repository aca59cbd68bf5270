package scores

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/mathdice/internal/model"
	"github.com/verte-zerg/mathdice/internal/server"
	"github.com/verte-zerg/mathdice/internal/store"
)

func newTestClient(t *testing.T) *HTTPClient {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "mathdice.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ts := httptest.NewServer(server.New(st).Handler())
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL)
}

func TestHTTPClientHighScoreRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	isNew, err := client.SubmitHighScore(ctx, "alice", "medium", 420)
	if err != nil {
		t.Fatalf("SubmitHighScore: %v", err)
	}
	if !isNew {
		t.Fatal("first submission should be a new best")
	}

	isNew, err = client.SubmitHighScore(ctx, "alice", "medium", 100)
	if err != nil {
		t.Fatalf("SubmitHighScore: %v", err)
	}
	if isNew {
		t.Fatal("lower score reported as new best")
	}

	scores, err := client.FetchHighScores(ctx, "alice")
	if err != nil {
		t.Fatalf("FetchHighScores: %v", err)
	}
	want := model.HighScores{Medium: 420}
	if scores != want {
		t.Fatalf("scores = %+v, want %+v", scores, want)
	}
}

func TestHTTPClientHistoryAndLeaderboard(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	result := model.GameResult{
		ID:         "game-history-1",
		Username:   "bob",
		Difficulty: "hard",
		Score:      640,
		Correct:    5,
		Wrong:      1,
		Total:      6,
		Accuracy:   83,
	}
	if err := client.SubmitGameResult(ctx, result); err != nil {
		t.Fatalf("SubmitGameResult: %v", err)
	}
	if _, err := client.SubmitHighScore(ctx, "bob", "hard", 640); err != nil {
		t.Fatalf("SubmitHighScore: %v", err)
	}

	history, err := client.FetchHistory(ctx, "bob", 10)
	if err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	got := history[0]
	if got.Score != 640 || got.Difficulty != "hard" || got.Accuracy != 83 {
		t.Fatalf("history entry = %+v", got)
	}
	if got.PlayedAt.IsZero() {
		t.Fatal("played_at not parsed")
	}
	if time.Since(got.PlayedAt) > time.Minute {
		t.Fatalf("played_at too old: %v", got.PlayedAt)
	}

	board, err := client.FetchLeaderboard(ctx, "hard", 5)
	if err != nil {
		t.Fatalf("FetchLeaderboard: %v", err)
	}
	if len(board) != 1 || board[0].Username != "bob" || board[0].HighScore != 640 {
		t.Fatalf("leaderboard = %+v", board)
	}
}

func TestHTTPClientServerError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.SubmitHighScore(ctx, "alice", "extreme", 100)
	if err == nil {
		t.Fatal("invalid difficulty accepted")
	}
	if !strings.Contains(err.Error(), "Invalid difficulty") {
		t.Fatalf("error = %v", err)
	}

	_, err = client.FetchHighScores(ctx, "")
	if err == nil {
		t.Fatal("missing username accepted")
	}
}

func TestHTTPClientUnreachableServer(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := client.FetchHighScores(ctx, "alice"); err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if err := client.SubmitGameResult(ctx, model.GameResult{ID: "x", Username: "alice", Difficulty: "easy"}); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
