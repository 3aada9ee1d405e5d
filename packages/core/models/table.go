package models

// TableRow is one squad's line in the matchday league table, built from
// completed fixtures only.
type TableRow struct {
	SquadID      uint `json:"squad_id"`
	SquadIndex   int  `json:"squad_index"`
	Played       int  `json:"played"`
	Won          int  `json:"won"`
	Drawn        int  `json:"drawn"`
	Lost         int  `json:"lost"`
	GoalsFor     int  `json:"goals_for"`
	GoalsAgainst int  `json:"goals_against"`
	Points       int  `json:"points"`
}

func (r TableRow) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}
