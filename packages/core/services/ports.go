package services

import "time"

// Dues statuses as supplied by the membership collaborator.
const (
	DuesPaid   = "paid"
	DuesOwing  = "owing"
	DuesWaiver = "waiver"
)

// Eligibility is the per-player fact the membership collaborator supplies.
type Eligibility struct {
	Suspended   bool
	DuesStatus  string
	WaiverDueBy *time.Time
}

// ResolvedDuesStatus applies the waiver rule: a waiver whose due-by date has
// passed counts as owing.
func (e Eligibility) ResolvedDuesStatus(now time.Time) string {
	if e.DuesStatus != DuesWaiver {
		return e.DuesStatus
	}
	if e.WaiverDueBy != nil && e.WaiverDueBy.Before(truncateToDay(now)) {
		return DuesOwing
	}
	return DuesWaiver
}

// CanVote reports whether the player may cast a matchday vote.
func (e Eligibility) CanVote(now time.Time) bool {
	if e.Suspended {
		return false
	}
	status := e.ResolvedDuesStatus(now)
	return status == DuesPaid || status == DuesWaiver
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MemberInfo identifies an approved member for display purposes.
type MemberInfo struct {
	ID           uint
	BallerName   string
	JerseyNumber int
}

// MemberDirectory is the boundary to the membership collaborator. The core
// never stores membership facts; it asks for them on every guarded write.
type MemberDirectory interface {
	// Eligibility returns the voting-eligibility fact for one player.
	Eligibility(playerID uint, now time.Time) (Eligibility, error)
	// PlayerName resolves a display name; implementations return the id as
	// a string when the player is unknown rather than failing a projection.
	PlayerName(playerID uint) string
	// ApprovedPlayers lists all approved members (for leaderboards and
	// admin vote tooling).
	ApprovedPlayers() ([]MemberInfo, error)
}
