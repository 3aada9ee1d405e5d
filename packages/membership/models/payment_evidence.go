package models

import "time"

// Evidence review statuses.
const (
	EvidencePending  = "pending"
	EvidenceApproved = "approved"
	EvidenceRejected = "rejected"
)

// PaymentEvidence stores submission metadata only; the bytes live wherever
// the member sent them (bank app screenshot over WhatsApp, usually).
type PaymentEvidence struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID    uint       `gorm:"not null;index" json:"player_id"`
	Year        int        `gorm:"not null" json:"year"`
	Quarter     int        `gorm:"not null" json:"quarter"`
	Reference   string     `gorm:"size:255;not null" json:"reference"` // free-form pointer to the proof
	Status      string     `gorm:"size:20;not null;default:pending" json:"status"`
	SubmittedAt time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
}

func (PaymentEvidence) TableName() string {
	return "payment_evidence"
}

type SubmitEvidenceRequest struct {
	Reference string `json:"reference" binding:"required,max=255"`
}

// EvidenceView joins the pending entry with the submitting member.
type EvidenceView struct {
	ID          uint      `json:"id"`
	PlayerID    uint      `json:"player_id"`
	Year        int       `json:"year"`
	Quarter     int       `json:"quarter"`
	Reference   string    `json:"reference"`
	SubmittedAt time.Time `json:"submitted_at"`
	BallerName  string    `json:"baller_name"`
	FirstName   string    `json:"first_name"`
	Surname     string    `json:"surname"`
}
