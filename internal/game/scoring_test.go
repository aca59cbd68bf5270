package game

import "testing"

func TestTimeBonusTiers(t *testing.T) {
	easy, err := GetProfile("easy")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	tests := []struct {
		latency int
		want    int
	}{
		{0, 15},
		{2, 15},
		{4, 15},
		{5, 10},
		{8, 10},
		{9, 5},
		{12, 5},
		{13, 2},
		{100, 2},
	}
	for _, tt := range tests {
		if got := TimeBonus(tt.latency, easy); got != tt.want {
			t.Errorf("TimeBonus(%d, easy) = %d, want %d", tt.latency, got, tt.want)
		}
	}
}

func TestTimeBonusMonotonicallyNonIncreasing(t *testing.T) {
	for _, profile := range Difficulties() {
		prev := TimeBonus(0, profile)
		for latency := 1; latency <= profile.Thresholds[2]+5; latency++ {
			cur := TimeBonus(latency, profile)
			if cur > prev {
				t.Fatalf("%s: bonus increased from %d to %d at latency %d", profile.Name, prev, cur, latency)
			}
			prev = cur
		}
	}
}

func TestPointsForCorrect(t *testing.T) {
	tests := []struct {
		bonus int
		want  int
	}{
		{15, 250},
		{10, 200},
		{5, 150},
		{2, 120},
		{1, 110},
	}
	for _, tt := range tests {
		if got := PointsForCorrect(tt.bonus); got != tt.want {
			t.Errorf("PointsForCorrect(%d) = %d, want %d", tt.bonus, got, tt.want)
		}
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    int
	}{
		{0, 0, 0},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
		{0, 7, 0},
	}
	for _, tt := range tests {
		if got := Accuracy(tt.correct, tt.total); got != tt.want {
			t.Errorf("Accuracy(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
