package models

import "time"

// Attendance is an explicit override; a player without a row counts as
// present.
type Attendance struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchdayID uint      `gorm:"not null;uniqueIndex:idx_attendance_matchday_player" json:"matchday_id"`
	PlayerID   uint      `gorm:"not null;uniqueIndex:idx_attendance_matchday_player" json:"player_id"`
	Present    bool      `gorm:"not null" json:"present"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "matchday_attendance"
}

type SetAttendanceRequest struct {
	PlayerID uint  `json:"player_id" binding:"required"`
	Present  *bool `json:"present" binding:"required"`
}

type BulkAttendanceRequest struct {
	Updates []SetAttendanceRequest `json:"updates" binding:"required"`
}

type AttendanceEntry struct {
	SquadID      uint   `json:"squad_id"`
	SquadIndex   int    `json:"squad_index"`
	PlayerID     uint   `json:"player_id"`
	BallerName   string `json:"baller_name"`
	JerseyNumber int    `json:"jersey_number"`
	Present      bool   `json:"present"`
}

type AttendanceSummary struct {
	Present []VoterInfo `json:"present"`
	Absent  []VoterInfo `json:"absent"`
}
