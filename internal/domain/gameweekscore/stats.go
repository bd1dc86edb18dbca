package gameweekscore

import (
	"math"
	"sort"
)

// FormWindow is the number of recent gameweeks averaged into form.
const FormWindow = 5

// SortRecentFirst orders scores by gameweek descending in place.
func SortRecentFirst(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Gameweek > scores[j].Gameweek
	})
}

// Form averages total points over the first FormWindow scores. Scores must
// already be ordered most recent first.
func Form(scores []Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	window := scores
	if len(window) > FormWindow {
		window = window[:FormWindow]
	}
	return RoundOneDecimal(meanPoints(window))
}

func PointsPerMatch(scores []Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	return RoundOneDecimal(meanPoints(scores))
}

func TotalBonus(scores []Score) int {
	total := 0
	for _, s := range scores {
		total += s.BonusPoints
	}
	return total
}

// RoundOneDecimal rounds half away from zero.
func RoundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

func meanPoints(scores []Score) float64 {
	sum := 0
	for _, s := range scores {
		sum += s.TotalPoints
	}
	return float64(sum) / float64(len(scores))
}
