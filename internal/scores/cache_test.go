package scores

import (
	"testing"

	"github.com/verte-zerg/mathdice/internal/model"
)

func TestCacheRecord(t *testing.T) {
	cache := NewCache(model.HighScores{Easy: 300})

	if cache.Record("easy", 200) {
		t.Fatal("lower score recorded as new best")
	}
	if cache.Record("easy", 300) {
		t.Fatal("equal score recorded as new best")
	}
	if !cache.Record("easy", 450) {
		t.Fatal("higher score not recorded as new best")
	}
	if cache.Best("easy") != 450 {
		t.Fatalf("Best(easy) = %d, want 450", cache.Best("easy"))
	}
	if cache.Best("hard") != 0 {
		t.Fatalf("Best(hard) = %d, want 0", cache.Best("hard"))
	}
}

func TestCacheReconcile(t *testing.T) {
	cache := NewCache(model.HighScores{})

	cache.Record("medium", 250)
	cache.Reconcile("medium", 100)
	if cache.Best("medium") != 250 {
		t.Fatalf("lower server value overwrote cache: %d", cache.Best("medium"))
	}
	cache.Reconcile("medium", 900)
	if cache.Best("medium") != 900 {
		t.Fatalf("higher server value not applied: %d", cache.Best("medium"))
	}
	if cache.Best("easy") != 0 || cache.Best("hard") != 0 {
		t.Fatal("reconcile touched other difficulties")
	}
}
