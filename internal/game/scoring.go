package game

import "math"

const basePoints = 100

// TimeBonus maps response latency to the bonus magnitude for the profile.
// The same magnitude is added on correct answers and subtracted on wrong
// ones; the last tier is the catch-all for slow answers.
func TimeBonus(latencySeconds int, profile Profile) int {
	for i, threshold := range profile.Thresholds {
		if latencySeconds <= threshold {
			return profile.Bonuses[i]
		}
	}
	return profile.Bonuses[len(profile.Bonuses)-1]
}

// PointsForCorrect derives the point award from the time bonus.
func PointsForCorrect(bonusSeconds int) int {
	return basePoints + bonusSeconds*10
}

// Accuracy returns the rounded percentage of correct answers, 0 for an
// empty session.
func Accuracy(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
