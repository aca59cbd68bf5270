// Package server exposes the score store as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"github.com/verte-zerg/mathdice/internal/game"
	"github.com/verte-zerg/mathdice/internal/model"
	"github.com/verte-zerg/mathdice/internal/store"
)

const defaultLeaderboardLimit = 10

// Config holds the service settings, overridable from the environment.
type Config struct {
	Addr   string `env:"MATHDICE_ADDR" envDefault:":8080"`
	DBPath string `env:"MATHDICE_DB"`
}

// ConfigFromEnv reads service settings from MATHDICE_* variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Server handles the score API requests.
type Server struct {
	store *store.Store
}

// New returns a Server backed by the given store.
func New(st *store.Store) *Server {
	return &Server{store: st}
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api", s.handleAPI)
	return mux
}

// ListenAndServe runs the API on the configured address until the context
// is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("score service listening on %s", addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type postRequest struct {
	Action     string `json:"action"`
	Username   string `json:"username"`
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
	Correct    int    `json:"correct"`
	Wrong      int    `json:"wrong"`
	Total      int    `json:"total"`
	Accuracy   int    `json:"accuracy"`
	GameID     string `json:"gameId"`
}

type scoresPayload struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type leaderboardRow struct {
	Username   string `json:"username"`
	HighScore  int    `json:"high_score"`
	LastPlayed string `json:"last_played"`
}

type historyRow struct {
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
	Correct    int    `json:"correct"`
	Wrong      int    `json:"wrong"`
	Total      int    `json:"total"`
	Accuracy   int    `json:"accuracy"`
	PlayedAt   string `json:"played_at"`
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r)
	case http.MethodPost:
		s.handlePost(w, r)
	default:
		writeError(w, "Invalid request method")
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "getHighScores":
		s.handleGetHighScores(w, r)
	case "getLeaderboard":
		s.handleGetLeaderboard(w, r)
	case "getHistory":
		s.handleGetHistory(w, r)
	default:
		writeError(w, "Unknown action")
	}
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body")
		return
	}
	switch req.Action {
	case "saveHighScore":
		s.handleSaveHighScore(w, r, req)
	case "saveGameStats":
		s.handleSaveGameStats(w, r, req)
	default:
		writeError(w, "Unknown action")
	}
}

func (s *Server) handleGetHighScores(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, "Username required")
		return
	}
	scores, err := s.store.HighScores(r.Context(), username)
	if err != nil {
		logQueryError("getHighScores", err)
		writeError(w, "Failed to load scores")
		return
	}
	writeJSON(w, map[string]any{
		"success": true,
		"scores": scoresPayload{
			Easy:   scores.Easy,
			Medium: scores.Medium,
			Hard:   scores.Hard,
		},
	})
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		difficulty = "easy"
	}
	if !game.ValidKey(difficulty) {
		writeError(w, "Invalid difficulty")
		return
	}
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, "Invalid limit")
			return
		}
		limit = parsed
	}
	entries, err := s.store.Leaderboard(r.Context(), difficulty, limit)
	if err != nil {
		logQueryError("getLeaderboard", err)
		writeError(w, "Failed to load leaderboard")
		return
	}
	rows := make([]leaderboardRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, leaderboardRow{
			Username:   entry.Username,
			HighScore:  entry.HighScore,
			LastPlayed: entry.LastPlayed.Format(time.RFC3339),
		})
	}
	writeJSON(w, map[string]any{
		"success":     true,
		"leaderboard": rows,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, "Username required")
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, "Invalid limit")
			return
		}
		limit = parsed
	}
	entries, err := s.store.History(r.Context(), username, limit)
	if err != nil {
		logQueryError("getHistory", err)
		writeError(w, "Failed to load history")
		return
	}
	rows := make([]historyRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, historyRow{
			Difficulty: entry.Difficulty,
			Score:      entry.Score,
			Correct:    entry.Correct,
			Wrong:      entry.Wrong,
			Total:      entry.Total,
			Accuracy:   entry.Accuracy,
			PlayedAt:   entry.PlayedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, map[string]any{
		"success": true,
		"games":   rows,
	})
}

func (s *Server) handleSaveHighScore(w http.ResponseWriter, r *http.Request, req postRequest) {
	if req.Username == "" || req.Difficulty == "" {
		writeError(w, "Missing required fields")
		return
	}
	if !game.ValidKey(req.Difficulty) {
		writeError(w, "Invalid difficulty")
		return
	}
	isNew, err := s.store.SaveHighScore(r.Context(), req.Username, req.Difficulty, req.Score)
	if err != nil {
		logQueryError("saveHighScore", err)
		writeError(w, "Failed to save score")
		return
	}
	writeJSON(w, map[string]any{
		"success":        true,
		"isNewHighScore": isNew,
	})
}

func (s *Server) handleSaveGameStats(w http.ResponseWriter, r *http.Request, req postRequest) {
	if req.Username == "" || req.Difficulty == "" {
		writeError(w, "Missing required fields")
		return
	}
	if !game.ValidKey(req.Difficulty) {
		writeError(w, "Invalid difficulty")
		return
	}
	gameID := req.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}
	err := s.store.SaveGameResult(r.Context(), model.GameResult{
		ID:         gameID,
		Username:   req.Username,
		Difficulty: req.Difficulty,
		Score:      req.Score,
		Correct:    req.Correct,
		Wrong:      req.Wrong,
		Total:      req.Total,
		Accuracy:   req.Accuracy,
	})
	if err != nil {
		logQueryError("saveGameStats", err)
		writeError(w, "Failed to save game stats")
		return
	}
	writeJSON(w, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Response already partially written; nothing left to do.
		_ = err
	}
}

func writeError(w http.ResponseWriter, msg string) {
	writeJSON(w, map[string]any{
		"success": false,
		"error":   msg,
	})
}

func logQueryError(action string, err error) {
	log.Printf("%s failed: %v", action, err)
}
