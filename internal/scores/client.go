// Package scores talks to the score service and keeps a local cache of
// personal bests.
package scores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/verte-zerg/mathdice/internal/model"
)

// Client persists finished games and fetches score data. Implementations
// must never block a running game for long; callers treat failures as
// recoverable and fall back to the local cache.
type Client interface {
	FetchHighScores(ctx context.Context, username string) (model.HighScores, error)
	FetchHistory(ctx context.Context, username string, limit int) ([]model.HistoryEntry, error)
	FetchLeaderboard(ctx context.Context, difficulty string, limit int) ([]model.LeaderboardEntry, error)
	SubmitHighScore(ctx context.Context, username, difficulty string, score int) (bool, error)
	SubmitGameResult(ctx context.Context, result model.GameResult) error
}

// HTTPClient speaks the score service JSON API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns a client for the service at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type apiResponse struct {
	Success        bool   `json:"success"`
	Error          string `json:"error"`
	IsNewHighScore bool   `json:"isNewHighScore"`
	Scores         *struct {
		Easy   int `json:"easy"`
		Medium int `json:"medium"`
		Hard   int `json:"hard"`
	} `json:"scores"`
	Leaderboard []struct {
		Username   string `json:"username"`
		HighScore  int    `json:"high_score"`
		LastPlayed string `json:"last_played"`
	} `json:"leaderboard"`
	Games []struct {
		Difficulty string `json:"difficulty"`
		Score      int    `json:"score"`
		Correct    int    `json:"correct"`
		Wrong      int    `json:"wrong"`
		Total      int    `json:"total"`
		Accuracy   int    `json:"accuracy"`
		PlayedAt   string `json:"played_at"`
	} `json:"games"`
}

// FetchHighScores returns the player's best score per difficulty.
func (c *HTTPClient) FetchHighScores(ctx context.Context, username string) (model.HighScores, error) {
	resp, err := c.get(ctx, url.Values{
		"action":   {"getHighScores"},
		"username": {username},
	})
	if err != nil {
		return model.HighScores{}, err
	}
	if resp.Scores == nil {
		return model.HighScores{}, fmt.Errorf("missing scores in response")
	}
	return model.HighScores{
		Easy:   resp.Scores.Easy,
		Medium: resp.Scores.Medium,
		Hard:   resp.Scores.Hard,
	}, nil
}

// FetchHistory returns the player's past games, most recent first.
func (c *HTTPClient) FetchHistory(ctx context.Context, username string, limit int) ([]model.HistoryEntry, error) {
	resp, err := c.get(ctx, url.Values{
		"action":   {"getHistory"},
		"username": {username},
		"limit":    {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	entries := make([]model.HistoryEntry, 0, len(resp.Games))
	for _, g := range resp.Games {
		playedAt, err := time.Parse(time.RFC3339, g.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid played_at %q: %w", g.PlayedAt, err)
		}
		entries = append(entries, model.HistoryEntry{
			GameResult: model.GameResult{
				Username:   username,
				Difficulty: g.Difficulty,
				Score:      g.Score,
				Correct:    g.Correct,
				Wrong:      g.Wrong,
				Total:      g.Total,
				Accuracy:   g.Accuracy,
			},
			PlayedAt: playedAt,
		})
	}
	return entries, nil
}

// FetchLeaderboard returns the top players for a difficulty.
func (c *HTTPClient) FetchLeaderboard(ctx context.Context, difficulty string, limit int) ([]model.LeaderboardEntry, error) {
	resp, err := c.get(ctx, url.Values{
		"action":     {"getLeaderboard"},
		"difficulty": {difficulty},
		"limit":      {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	entries := make([]model.LeaderboardEntry, 0, len(resp.Leaderboard))
	for _, row := range resp.Leaderboard {
		lastPlayed, err := time.Parse(time.RFC3339, row.LastPlayed)
		if err != nil {
			return nil, fmt.Errorf("invalid last_played %q: %w", row.LastPlayed, err)
		}
		entries = append(entries, model.LeaderboardEntry{
			Username:   row.Username,
			HighScore:  row.HighScore,
			LastPlayed: lastPlayed,
		})
	}
	return entries, nil
}

// SubmitHighScore reports a candidate best score. The server decides
// whether it actually beats the stored best.
func (c *HTTPClient) SubmitHighScore(ctx context.Context, username, difficulty string, score int) (bool, error) {
	resp, err := c.post(ctx, map[string]any{
		"action":     "saveHighScore",
		"username":   username,
		"difficulty": difficulty,
		"score":      score,
	})
	if err != nil {
		return false, err
	}
	return resp.IsNewHighScore, nil
}

// SubmitGameResult persists a finished-game summary.
func (c *HTTPClient) SubmitGameResult(ctx context.Context, result model.GameResult) error {
	_, err := c.post(ctx, map[string]any{
		"action":     "saveGameStats",
		"username":   result.Username,
		"difficulty": result.Difficulty,
		"score":      result.Score,
		"correct":    result.Correct,
		"wrong":      result.Wrong,
		"total":      result.Total,
		"accuracy":   result.Accuracy,
		"gameId":     result.ID,
	})
	return err
}

func (c *HTTPClient) get(ctx context.Context, query url.Values) (apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api?"+query.Encode(), nil)
	if err != nil {
		return apiResponse{}, err
	}
	return c.do(req)
}

func (c *HTTPClient) post(ctx context.Context, payload map[string]any) (apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return apiResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api", bytes.NewReader(body))
	if err != nil {
		return apiResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (apiResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return apiResponse{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return apiResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if !decoded.Success {
		if decoded.Error == "" {
			decoded.Error = "unknown server error"
		}
		return apiResponse{}, fmt.Errorf("server error: %s", decoded.Error)
	}
	return decoded, nil
}
