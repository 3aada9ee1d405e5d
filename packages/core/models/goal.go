package models

import "time"

// Goal stores scorer/assister as PlayerRef storage ids so guests (negative
// ids) and real players (positive ids) share one column.
type Goal struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FixtureID  uint      `gorm:"not null;index" json:"fixture_id"`
	ScorerID   int64     `gorm:"not null" json:"scorer_id"`
	AssisterID *int64    `json:"assister_id"`
	Minute     *int      `json:"minute"`
	IsHomeGoal bool      `gorm:"not null" json:"is_home_goal"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Goal) TableName() string {
	return "fixture_goals"
}

type AddGoalRequest struct {
	ScorerID   int64  `json:"scorer_id" binding:"required"`
	AssisterID *int64 `json:"assister_id"`
	Minute     *int   `json:"minute"`
	IsHomeGoal *bool  `json:"is_home_goal"` // inferred from the scorer's squad when omitted
}

type GoalDetail struct {
	ID           uint   `json:"id"`
	ScorerID     int64  `json:"scorer_id"`
	AssisterID   *int64 `json:"assister_id"`
	Minute       *int   `json:"minute"`
	IsHomeGoal   bool   `json:"is_home_goal"`
	ScorerName   string `json:"scorer_name"`
	AssisterName string `json:"assister_name,omitempty"`
}

// ScorerChoice is one entry of the eligible-scorer set for a fixture.
type ScorerChoice struct {
	ID         int64  `json:"id"`
	BallerName string `json:"baller_name"`
	IsGuest    bool   `json:"is_guest"`
}
