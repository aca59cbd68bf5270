// Package model defines shared data structures.
package model

import "time"

// GameResult summarizes a finished (or quit) game for persistence.
type GameResult struct {
	ID         string
	Username   string
	Difficulty string
	Score      int
	Correct    int
	Wrong      int
	Total      int
	Accuracy   int
}

// HighScores holds a player's best score per difficulty.
type HighScores struct {
	Easy   int
	Medium int
	Hard   int
}

// For returns the best score for a lowercase difficulty key.
func (h HighScores) For(key string) int {
	switch key {
	case "easy":
		return h.Easy
	case "medium":
		return h.Medium
	case "hard":
		return h.Hard
	}
	return 0
}

// Set records the best score for a lowercase difficulty key.
func (h *HighScores) Set(key string, score int) {
	switch key {
	case "easy":
		h.Easy = score
	case "medium":
		h.Medium = score
	case "hard":
		h.Hard = score
	}
}

// LeaderboardEntry is one row of the per-difficulty leaderboard.
type LeaderboardEntry struct {
	Username   string
	HighScore  int
	LastPlayed time.Time
}

// HistoryEntry is one past game of a player, with the server-assigned
// timestamp.
type HistoryEntry struct {
	GameResult
	PlayedAt time.Time
}
