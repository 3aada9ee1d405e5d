package models

import "time"

// Dues statuses. A waiver carries the date the member promised to pay by;
// past that date it resolves to owing.
const (
	DuesPaid   = "paid"
	DuesOwing  = "owing"
	DuesWaiver = "waiver"
)

type Dues struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID    uint       `gorm:"not null;uniqueIndex:idx_dues_player_period" json:"player_id"`
	Year        int        `gorm:"not null;uniqueIndex:idx_dues_player_period" json:"year"`
	Quarter     int        `gorm:"not null;uniqueIndex:idx_dues_player_period" json:"quarter"`
	Status      string     `gorm:"size:20;not null;default:owing" json:"status"` // paid, owing, waiver
	PaidAt      *time.Time `json:"paid_at"`
	WaiverDueBy *time.Time `gorm:"type:date" json:"waiver_due_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Dues) TableName() string {
	return "dues"
}

type SetDuesRequest struct {
	Year        int     `json:"year" binding:"required"`
	Quarter     int     `json:"quarter" binding:"required,min=1,max=4"`
	Status      string  `json:"status" binding:"required,oneof=paid owing waiver"`
	WaiverDueBy *string `json:"waiver_due_by"` // YYYY-MM-DD, only with status waiver
}

type WaiverRequest struct {
	DueBy string `json:"due_by" binding:"required"` // YYYY-MM-DD
}

// DuesView is the member's own view of the current quarter.
type DuesView struct {
	Year            int     `json:"year"`
	Quarter         int     `json:"quarter"`
	Status          string  `json:"status"`
	WaiverDueBy     *string `json:"waiver_due_by"`
	PendingEvidence bool    `json:"pending_evidence"`
}

// QuarterDues is one roster row of the per-quarter dues listing. Status is
// the resolved value; DisplayStatus distinguishes an overdue waiver for the
// admin screen.
type QuarterDues struct {
	PlayerID      uint    `json:"player_id"`
	FirstName     string  `json:"first_name"`
	Surname       string  `json:"surname"`
	BallerName    string  `json:"baller_name"`
	JerseyNumber  int     `json:"jersey_number"`
	Status        string  `json:"dues_status"`
	DisplayStatus string  `json:"display_status"`
	RawStatus     string  `json:"raw_status"`
	WaiverDueBy   *string `json:"waiver_due_by"`
}
