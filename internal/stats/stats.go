// Package stats contains score statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/mathdice/internal/game"
	"github.com/verte-zerg/mathdice/internal/model"
)

const sparkChars = " .:-=+*#%@"

// TrendWindow is the moving-average window applied to score trends before
// rendering.
const TrendWindow = 5

// Summary aggregates a player's game history.
type Summary struct {
	Games     int
	BestScore int
	AvgScore  float64
	Correct   int
	Wrong     int
	Questions int
	// Accuracy is the rounded percentage of correct answers over every
	// question asked.
	Accuracy int
}

// Summarize computes aggregate stats over history entries.
func Summarize(entries []model.HistoryEntry) Summary {
	var sum Summary
	sum.Games = len(entries)
	totalScore := 0
	for _, entry := range entries {
		totalScore += entry.Score
		if entry.Score > sum.BestScore {
			sum.BestScore = entry.Score
		}
		sum.Correct += entry.Correct
		sum.Wrong += entry.Wrong
		sum.Questions += entry.Total
	}
	if sum.Games > 0 {
		sum.AvgScore = float64(totalScore) / float64(sum.Games)
	}
	sum.Accuracy = game.Accuracy(sum.Correct, sum.Questions)
	return sum
}

// ScoreTrend returns scores in chronological order for trend rendering.
// History entries arrive most recent first.
func ScoreTrend(entries []model.HistoryEntry) []float64 {
	out := make([]float64, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = float64(entry.Score)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
