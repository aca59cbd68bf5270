// Package game implements the arithmetic quiz rules and session state machine.
package game

import (
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned for difficulty names outside the catalog.
var ErrUnknownDifficulty = fmt.Errorf("unknown difficulty")

// Profile is an immutable difficulty preset.
type Profile struct {
	Name        string
	Key         string
	InitialTime int
	MaxTime     int
	Multiplier  float64
	// Thresholds are response-latency boundaries in seconds, ascending.
	// Bonuses holds one value per threshold plus a catch-all last entry.
	Thresholds [3]int
	Bonuses    [4]int
}

var profiles = []Profile{
	{
		Name:        "Easy",
		Key:         "easy",
		InitialTime: 60,
		MaxTime:     60,
		Multiplier:  1,
		Thresholds:  [3]int{4, 8, 12},
		Bonuses:     [4]int{15, 10, 5, 2},
	},
	{
		Name:        "Medium",
		Key:         "medium",
		InitialTime: 45,
		MaxTime:     45,
		Multiplier:  1.5,
		Thresholds:  [3]int{3, 6, 9},
		Bonuses:     [4]int{12, 8, 4, 1},
	},
	{
		Name:        "Hard",
		Key:         "hard",
		InitialTime: 30,
		MaxTime:     30,
		Multiplier:  2,
		Thresholds:  [3]int{2, 4, 6},
		Bonuses:     [4]int{10, 6, 3, 1},
	},
}

// Difficulties returns the catalog in display order.
func Difficulties() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// GetProfile looks up a difficulty preset by name, case-insensitively.
func GetProfile(name string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range profiles {
		if p.Key == key {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}

// ValidKey reports whether k is one of the lowercase wire identifiers.
func ValidKey(k string) bool {
	switch k {
	case "easy", "medium", "hard":
		return true
	}
	return false
}
