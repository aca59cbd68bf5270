package scores

import (
	"context"

	"github.com/verte-zerg/mathdice/internal/model"
	"github.com/verte-zerg/mathdice/internal/store"
)

// StoreClient serves score data straight from a local SQLite store, for
// playing without a score service.
type StoreClient struct {
	store *store.Store
}

// NewStoreClient wraps a local store as a Client.
func NewStoreClient(st *store.Store) *StoreClient {
	return &StoreClient{store: st}
}

// FetchHighScores returns the player's best score per difficulty.
func (c *StoreClient) FetchHighScores(ctx context.Context, username string) (model.HighScores, error) {
	return c.store.HighScores(ctx, username)
}

// FetchHistory returns the player's past games, most recent first.
func (c *StoreClient) FetchHistory(ctx context.Context, username string, limit int) ([]model.HistoryEntry, error) {
	return c.store.History(ctx, username, limit)
}

// FetchLeaderboard returns the top players for a difficulty.
func (c *StoreClient) FetchLeaderboard(ctx context.Context, difficulty string, limit int) ([]model.LeaderboardEntry, error) {
	return c.store.Leaderboard(ctx, difficulty, limit)
}

// SubmitHighScore records a candidate best; the store re-checks the max.
func (c *StoreClient) SubmitHighScore(ctx context.Context, username, difficulty string, score int) (bool, error) {
	return c.store.SaveHighScore(ctx, username, difficulty, score)
}

// SubmitGameResult persists a finished-game summary.
func (c *StoreClient) SubmitGameResult(ctx context.Context, result model.GameResult) error {
	return c.store.SaveGameResult(ctx, result)
}
