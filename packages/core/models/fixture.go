package models

import "time"

// Fixture statuses.
const (
	FixturePending    = "pending"
	FixtureInProgress = "in_progress"
	FixtureCompleted  = "completed"
)

type Fixture struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchdayID  uint       `gorm:"not null;uniqueIndex:idx_fixtures_matchday_pair" json:"matchday_id"`
	HomeSquadID uint       `gorm:"not null;uniqueIndex:idx_fixtures_matchday_pair" json:"home_squad_id"`
	AwaySquadID uint       `gorm:"not null;uniqueIndex:idx_fixtures_matchday_pair" json:"away_squad_id"`
	Status      string     `gorm:"size:20;not null;default:pending" json:"status"` // pending, in_progress, completed
	HomeGoals   int        `gorm:"not null;default:0" json:"home_goals"`
	AwayGoals   int        `gorm:"not null;default:0" json:"away_goals"`
	StartedAt   *time.Time `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Fixture) TableName() string {
	return "fixtures"
}

// FixtureView carries a fixture with the squad indexes members recognise.
type FixtureView struct {
	Fixture
	HomeSquadIndex int          `json:"home_squad_index"`
	AwaySquadIndex int          `json:"away_squad_index"`
	Goals          []GoalDetail `json:"goals,omitempty"`
}
