package models

import "time"

// SquadCapacity is the number of real players per squad. Each squad also
// carries one implicit guest slot that is never stored as a membership.
const SquadCapacity = 5

type Squad struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchdayID uint      `gorm:"not null;uniqueIndex:idx_squads_matchday_index" json:"matchday_id"`
	SquadIndex int       `gorm:"not null;uniqueIndex:idx_squads_matchday_index" json:"squad_index"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Squad) TableName() string {
	return "squads"
}

type SquadMember struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchdayID uint      `gorm:"not null;uniqueIndex:idx_squad_members_matchday_player" json:"matchday_id"`
	SquadID    uint      `gorm:"not null" json:"squad_id"`
	PlayerID   uint      `gorm:"not null;uniqueIndex:idx_squad_members_matchday_player" json:"player_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (SquadMember) TableName() string {
	return "squad_members"
}

type MoveMemberRequest struct {
	FromSquadID uint `json:"from_squad_id" binding:"required"`
	ToSquadID   uint `json:"to_squad_id" binding:"required"`
	PlayerID    uint `json:"player_id" binding:"required"`
}

type MoveBatchRequest struct {
	Moves []MoveMemberRequest `json:"moves" binding:"required"`
}

type SquadView struct {
	SquadID    uint              `json:"squad_id"`
	SquadIndex int               `json:"squad_index"`
	Members    []SquadMemberView `json:"members"`
}

type SquadMemberView struct {
	PlayerID     int64  `json:"player_id"`
	BallerName   string `json:"baller_name"`
	JerseyNumber int    `json:"jersey_number"`
	Present      bool   `json:"present"`
	IsGuest      bool   `json:"is_guest"`
}
