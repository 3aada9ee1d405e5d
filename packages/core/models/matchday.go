package models

import (
	"time"
)

// Matchday lifecycle statuses.
const (
	StatusVotingOpen          = "voting_open"
	StatusClosedPendingReview = "closed_pending_review"
	StatusApproved            = "approved"
	StatusRejected            = "rejected"
)

type Matchday struct {
	ID                uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchDate         time.Time  `gorm:"type:date;not null" json:"match_date"`
	Status            string     `gorm:"size:30;not null;default:voting_open" json:"status"` // voting_open, closed_pending_review, approved, rejected
	VotingOpensAt     time.Time  `json:"voting_opens_at"`
	VotingClosesAt    time.Time  `json:"voting_closes_at"`
	SquadsPublished   bool       `gorm:"not null;default:false" json:"squads_published"`
	FixturesPublished bool       `gorm:"not null;default:false" json:"fixtures_published"`
	Ended             bool       `gorm:"not null;default:false" json:"ended"`
	ReviewedAt        *time.Time `json:"reviewed_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (Matchday) TableName() string {
	return "matchdays"
}

type Vote struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchdayID uint      `gorm:"not null;uniqueIndex:idx_votes_matchday_player" json:"matchday_id"`
	PlayerID   uint      `gorm:"not null;uniqueIndex:idx_votes_matchday_player" json:"player_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Vote) TableName() string {
	return "matchday_votes"
}

type CreateMatchdayRequest struct {
	MatchDate string `json:"match_date" binding:"required"` // YYYY-MM-DD
}

type AddVoteRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

// MatchdaySummary is the admin view of one matchday with its voting detail.
type MatchdaySummary struct {
	Matchday     Matchday    `json:"matchday"`
	VoteCount    int64       `json:"vote_count"`
	VotedPlayers []VoterInfo `json:"voted_players"`
}

type VoterInfo struct {
	PlayerID   uint   `json:"player_id"`
	BallerName string `json:"baller_name"`
}
