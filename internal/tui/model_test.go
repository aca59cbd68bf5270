package tui

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/mathdice/internal/game"
	"github.com/verte-zerg/mathdice/internal/model"
	"github.com/verte-zerg/mathdice/internal/scores"
)

type stubClient struct {
	scores model.HighScores
	err    error
}

var _ scores.Client = (*stubClient)(nil)

func (c *stubClient) FetchHighScores(context.Context, string) (model.HighScores, error) {
	return c.scores, c.err
}

func (c *stubClient) FetchHistory(context.Context, string, int) ([]model.HistoryEntry, error) {
	return nil, c.err
}

func (c *stubClient) FetchLeaderboard(context.Context, string, int) ([]model.LeaderboardEntry, error) {
	return nil, c.err
}

func (c *stubClient) SubmitHighScore(context.Context, string, string, int) (bool, error) {
	return false, c.err
}

func (c *stubClient) SubmitGameResult(context.Context, model.GameResult) error {
	return c.err
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return NewModel("alice", "", &stubClient{}, game.NewGeneratorWithSource(rand.NewSource(1)))
}

func sessionAtQuestion(t *testing.T, key string) *game.Session {
	t.Helper()
	profile, err := game.GetProfile(key)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	s := game.NewSession("alice", profile, game.NewGeneratorWithSource(rand.NewSource(1)))
	if !s.StartRoll() {
		t.Fatal("roll did not start")
	}
	for s.Phase() == game.PhaseRolling {
		s.RollStep(game.Addition)
	}
	now := time.Now()
	for s.Phase() == game.PhaseCountdown {
		if err := s.CountdownTick(now); err != nil {
			t.Fatalf("countdown: %v", err)
		}
	}
	if s.Phase() != game.PhaseQuestion {
		t.Fatalf("phase = %v, want question", s.Phase())
	}
	return s
}

func TestFetchedHighScoresMergeIntoCache(t *testing.T) {
	m := newTestModel(t)
	m.cache.Record("easy", 500)

	// A stale or empty fetch must not erase the provisional local best.
	updated, _ := m.Update(highScoresMsg{scores: model.HighScores{Medium: 300}})
	m = updated.(*Model)
	if got := m.cache.Best("easy"); got != 500 {
		t.Fatalf("Best(easy) = %d, want 500", got)
	}
	if got := m.cache.Best("medium"); got != 300 {
		t.Fatalf("Best(medium) = %d, want 300", got)
	}

	// Higher authoritative values still win.
	updated, _ = m.Update(highScoresMsg{scores: model.HighScores{Easy: 800}})
	m = updated.(*Model)
	if got := m.cache.Best("easy"); got != 800 {
		t.Fatalf("Best(easy) = %d, want 800", got)
	}
	if got := m.cache.Best("medium"); got != 300 {
		t.Fatalf("Best(medium) = %d, want 300", got)
	}
}

func TestHighScoresFetchErrorKeepsCache(t *testing.T) {
	m := newTestModel(t)
	m.cache.Record("hard", 120)

	updated, _ := m.Update(highScoresMsg{err: errors.New("service down")})
	m = updated.(*Model)
	if got := m.cache.Best("hard"); got != 120 {
		t.Fatalf("Best(hard) = %d, want 120", got)
	}
}

func TestFeedbackShowsPenalty(t *testing.T) {
	s := sessionAtQuestion(t, "hard")
	q, ok := s.Question()
	if !ok {
		t.Fatal("no live question")
	}
	if _, ok := s.Submit(strconv.Itoa(q.Answer+1), time.Now()); !ok {
		t.Fatal("submit rejected")
	}

	m := newTestModel(t)
	m.session = s
	m.screen = screenGame
	out := m.viewFeedback()
	if !strings.Contains(out, "Wrong! Answer: "+strconv.Itoa(q.Answer)) {
		t.Fatalf("missing answer reveal:\n%s", out)
	}
	// Fast wrong answer on hard costs the full 10 seconds.
	if !strings.Contains(out, "Time penalty: -10s") {
		t.Fatalf("missing penalty:\n%s", out)
	}
}

func TestFeedbackShowsAppliedPenaltyAtFloor(t *testing.T) {
	s := sessionAtQuestion(t, "hard")
	for s.TimeLeft() > 1 {
		if s.ClockTick() {
			t.Fatal("clock ran out while setting up")
		}
	}
	q, ok := s.Question()
	if !ok {
		t.Fatal("no live question")
	}
	if _, ok := s.Submit(strconv.Itoa(q.Answer+1), time.Now()); !ok {
		t.Fatal("submit rejected")
	}

	m := newTestModel(t)
	m.session = s
	m.screen = screenGame
	out := m.viewFeedback()
	// Only one second was left, so only one second comes off.
	if !strings.Contains(out, "Time penalty: -1s") {
		t.Fatalf("penalty not clamped to remaining time:\n%s", out)
	}
}
