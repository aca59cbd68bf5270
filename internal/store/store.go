// Package store handles SQLite persistence for scores and game history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/mathdice/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for high scores and game stats.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_stats (
			id INTEGER PRIMARY KEY,
			game_id TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			wrong_answers INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			played_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_high_scores_user ON high_scores(username, difficulty);`,
		`CREATE INDEX IF NOT EXISTS idx_high_scores_board ON high_scores(difficulty, score);`,
		`CREATE INDEX IF NOT EXISTS idx_game_stats_user ON game_stats(username, played_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveHighScore records a score if it beats the player's stored best for
// the difficulty. The current best is re-read inside the transaction, so a
// lower near-simultaneous submission degrades to a no-op.
func (s *Store) SaveHighScore(ctx context.Context, username, difficulty string, score int) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var best int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(score), 0) FROM high_scores WHERE username = ? AND difficulty = ?`,
		username, difficulty,
	).Scan(&best)
	if err != nil {
		return false, err
	}
	if score <= best {
		if err = tx.Commit(); err != nil {
			return false, err
		}
		return false, nil
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO high_scores (username, difficulty, score, created_at) VALUES (?, ?, ?, ?)`,
		username, difficulty, score, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// SaveGameResult stores a finished-game summary. Resubmitting the same game
// ID is a no-op.
func (s *Store) SaveGameResult(ctx context.Context, result model.GameResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO game_stats
		 (game_id, username, difficulty, score, correct_answers, wrong_answers, total_questions, accuracy, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.Username,
		result.Difficulty,
		result.Score,
		result.Correct,
		result.Wrong,
		result.Total,
		result.Accuracy,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// HighScores returns the player's best score per difficulty, zero for
// difficulties never played.
func (s *Store) HighScores(ctx context.Context, username string) (model.HighScores, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT difficulty, MAX(score) FROM high_scores WHERE username = ? GROUP BY difficulty`,
		username,
	)
	if err != nil {
		return model.HighScores{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var scores model.HighScores
	for rows.Next() {
		var difficulty string
		var best int
		if err := rows.Scan(&difficulty, &best); err != nil {
			return model.HighScores{}, err
		}
		scores.Set(difficulty, best)
	}
	if err := rows.Err(); err != nil {
		return model.HighScores{}, err
	}
	return scores, nil
}

// Leaderboard returns the top players for a difficulty, best score first.
func (s *Store) Leaderboard(ctx context.Context, difficulty string, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, MAX(score) AS high_score, MAX(created_at) AS last_played
		 FROM high_scores
		 WHERE difficulty = ?
		 GROUP BY username
		 ORDER BY high_score DESC
		 LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var entry model.LeaderboardEntry
		var lastPlayed string
		if err := rows.Scan(&entry.Username, &entry.HighScore, &lastPlayed); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, lastPlayed)
		if err != nil {
			return nil, err
		}
		entry.LastPlayed = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// History returns the player's past games, most recent first.
func (s *Store) History(ctx context.Context, username string, limit int) ([]model.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, username, difficulty, score, correct_answers, wrong_answers, total_questions, accuracy, played_at
		 FROM game_stats
		 WHERE username = ?
		 ORDER BY played_at DESC
		 LIMIT ?`,
		username, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.HistoryEntry
	for rows.Next() {
		var entry model.HistoryEntry
		var playedAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.Username,
			&entry.Difficulty,
			&entry.Score,
			&entry.Correct,
			&entry.Wrong,
			&entry.Total,
			&entry.Accuracy,
			&playedAt,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, playedAt)
		if err != nil {
			return nil, err
		}
		entry.PlayedAt = parsed
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
