package models

import "time"

// Registration statuses.
const (
	PlayerPending  = "pending"
	PlayerApproved = "approved"
	PlayerRejected = "rejected"
)

type Player struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName       string     `gorm:"size:100;not null" json:"first_name"`
	Surname         string     `gorm:"size:100;not null" json:"surname"`
	BallerName      string     `gorm:"size:100;not null;uniqueIndex" json:"baller_name"`
	JerseyNumber    int        `gorm:"not null" json:"jersey_number"`
	Email           string     `gorm:"size:255;not null" json:"email"`
	WhatsappPhone   string     `gorm:"size:30;not null" json:"whatsapp_phone"`
	Status          string     `gorm:"size:20;not null;default:pending" json:"status"` // pending, approved, rejected
	Suspended       bool       `gorm:"not null;default:false" json:"suspended"`
	PasswordHash    string     `gorm:"size:255" json:"-"`
	PasswordDisplay string     `gorm:"size:50" json:"-"` // initial credential shown on the admin roster
	YearRegistered  int        `json:"year_registered"`
	ApprovedAt      *time.Time `json:"approved_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}

type SignupRequest struct {
	FirstName     string `json:"first_name" binding:"required,max=100"`
	Surname       string `json:"surname" binding:"required,max=100"`
	BallerName    string `json:"baller_name" binding:"required,max=100"`
	JerseyNumber  int    `json:"jersey_number" binding:"required,min=1,max=100"`
	Email         string `json:"email" binding:"required,email"`
	WhatsappPhone string `json:"whatsapp_phone" binding:"required,max=30"`
}

// MemberView is the admin roster row: player plus current-quarter dues.
type MemberView struct {
	Player
	PasswordDisplay string  `json:"password_display"`
	DuesStatus      string  `json:"dues_status"`
	WaiverDueBy     *string `json:"waiver_due_by"`
	DuesYear        int     `json:"dues_year"`
	DuesQuarter     int     `json:"dues_quarter"`
}
