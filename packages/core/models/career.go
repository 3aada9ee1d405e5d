package models

// MatchdayRating is one qualifying per-matchday rating in a player's career
// list. Only ended matchdays with a non-zero rating qualify.
type MatchdayRating struct {
	MatchdayID uint    `json:"matchday_id"`
	MatchDate  string  `json:"match_date"`
	Rating     float64 `json:"rating"`
}

type CareerStats struct {
	Goals            int              `json:"goals"`
	Assists          int              `json:"assists"`
	YellowCards      int              `json:"yellow_cards"`
	RedCards         int              `json:"red_cards"`
	CleanSheets      int              `json:"clean_sheets"`
	MatchdaysPresent int              `json:"matchdays_present"`
	MatchdayRatings  []MatchdayRating `json:"matchday_ratings"`
	AverageRating    float64          `json:"average_rating"`
}

type LeaderboardEntry struct {
	PlayerID         uint    `json:"player_id"`
	BallerName       string  `json:"baller_name"`
	JerseyNumber     int     `json:"jersey_number"`
	Goals            int     `json:"goals"`
	Assists          int     `json:"assists"`
	YellowCards      int     `json:"yellow_cards"`
	RedCards         int     `json:"red_cards"`
	CleanSheets      int     `json:"clean_sheets"`
	MatchdaysPresent int     `json:"matchdays_present"`
	AverageRating    float64 `json:"average_rating"`
	StarRating       int     `json:"star_rating"`
}

// Leaderboard bundles the full table with the top-20 cuts the dashboard
// shows.
type Leaderboard struct {
	Entries        []LeaderboardEntry `json:"leaderboard"`
	TopGoals       []LeaderboardEntry `json:"top_goals"`
	TopAssists     []LeaderboardEntry `json:"top_assists"`
	TopPresent     []LeaderboardEntry `json:"top_present"`
	TopCleanSheets []LeaderboardEntry `json:"top_clean_sheets"`
}

type PlayerRating struct {
	PlayerID     uint    `json:"player_id"`
	BallerName   string  `json:"baller_name"`
	JerseyNumber int     `json:"jersey_number"`
	SquadIndex   int     `json:"squad_index"`
	Rating       float64 `json:"rating"`
}

type ScorerCount struct {
	BallerName string `json:"baller_name"`
	Goals      int    `json:"goals"`
}

type AssistCount struct {
	BallerName string `json:"baller_name"`
	Assists    int    `json:"assists"`
}
