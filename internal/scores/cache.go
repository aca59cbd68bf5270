package scores

import "github.com/verte-zerg/mathdice/internal/model"

// Cache is the in-memory view of personal bests for the current run. It is
// seeded from the service at startup and keeps the game playable when the
// service is unreachable; the server remains the authority on ties and
// races.
type Cache struct {
	scores model.HighScores
}

// NewCache seeds a cache with fetched high scores.
func NewCache(scores model.HighScores) *Cache {
	return &Cache{scores: scores}
}

// Best returns the cached best score for a lowercase difficulty key.
func (c *Cache) Best(key string) int {
	return c.scores.For(key)
}

// Record notes a finished score and reports whether it is a new local best.
func (c *Cache) Record(key string, score int) bool {
	if score <= c.scores.For(key) {
		return false
	}
	c.scores.Set(key, score)
	return true
}

// Reconcile replaces a cached entry with the authoritative server value
// when it is higher.
func (c *Cache) Reconcile(key string, serverBest int) {
	if serverBest > c.scores.For(key) {
		c.scores.Set(key, serverBest)
	}
}
