package utils

import "math"

// Matchday rating weights. The formula is deliberately fixed: changing any
// weight changes historical career averages, so treat these as frozen.
const (
	RatingBase      = 5.0
	GoalPoints      = 2.0
	HatTrickBonus   = 5.0
	HatTrickGoals   = 3
	AssistPoints    = 1.0
	CleanSheetBonus = 1.0
	YellowPenalty   = 5.0
	RedPenalty      = 10.0
)

// PositionBonus maps a squad's 1-based league-table position to its rating
// bonus: 1st +5, 2nd +3, 3rd +2, 4th +1, 5th and below +0.
func PositionBonus(position int) float64 {
	switch position {
	case 1:
		return 5
	case 2:
		return 3
	case 3:
		return 2
	case 4:
		return 1
	default:
		return 0
	}
}

// MatchdayScore computes a player's rating for one matchday from the event
// counts, starting at the base of 5.0. Callers handle the three short
// circuits (no squad, absent, no completed fixture yet) before calling.
func MatchdayScore(goals, assists, position, cleanSheetFixtures, yellows, reds int) float64 {
	rating := RatingBase
	rating += float64(goals) * GoalPoints
	if goals >= HatTrickGoals {
		rating += HatTrickBonus
	}
	rating += float64(assists) * AssistPoints
	rating += PositionBonus(position)
	rating += float64(cleanSheetFixtures) * CleanSheetBonus
	rating -= float64(yellows)*YellowPenalty + float64(reds)*RedPenalty
	return Round2(rating)
}

// Round2 rounds to two decimal places, the precision every rating and
// career average is reported at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
