package models

import "time"

const (
	CardYellow = "yellow"
	CardRed    = "red"
)

// FixtureCard is the per-fixture audit entry. Guests may appear here
// (negative player ids) but never accrue rating-affecting counts.
type FixtureCard struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FixtureID uint      `gorm:"not null;index" json:"fixture_id"`
	PlayerID  int64     `gorm:"not null" json:"player_id"`
	CardType  string    `gorm:"size:10;not null" json:"card_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (FixtureCard) TableName() string {
	return "fixture_cards"
}

// MatchdayCard holds the cumulative yellow/red counts that feed the rating
// deduction. Real players only.
type MatchdayCard struct {
	ID          uint `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchdayID  uint `gorm:"not null;uniqueIndex:idx_matchday_cards_player" json:"matchday_id"`
	PlayerID    uint `gorm:"not null;uniqueIndex:idx_matchday_cards_player" json:"player_id"`
	YellowCount int  `gorm:"not null;default:0" json:"yellow_count"`
	RedCount    int  `gorm:"not null;default:0" json:"red_count"`
}

func (MatchdayCard) TableName() string {
	return "matchday_cards"
}

type AddCardRequest struct {
	PlayerID  int64  `json:"player_id" binding:"required"`
	CardType  string `json:"card_type" binding:"required,oneof=yellow red"`
	FixtureID *uint  `json:"fixture_id"`
}

type CardCount struct {
	PlayerID    uint   `json:"player_id"`
	BallerName  string `json:"baller_name"`
	YellowCount int    `json:"yellow_count"`
	RedCount    int    `json:"red_count"`
}

type FixtureCardDetail struct {
	PlayerID   int64  `json:"player_id"`
	CardType   string `json:"card_type"`
	BallerName string `json:"baller_name"`
}
