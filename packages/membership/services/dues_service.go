package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"membership/models"

	"gorm.io/gorm"
)

// MemberFacts is the eligibility snapshot handed to consumers outside the
// package (the matchday core asks for it on every guarded write).
type MemberFacts struct {
	Approved    bool
	Suspended   bool
	DuesStatus  string
	WaiverDueBy *time.Time
}

type DuesService struct {
	db *gorm.DB
}

func NewDuesService(db *gorm.DB) *DuesService {
	return &DuesService{db: db}
}

// CurrentQuarter maps a time to its calendar quarter, 1 through 4.
func CurrentQuarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// resolveStatus applies the waiver rule: past the promised date the waiver
// counts as owing.
func resolveStatus(status string, waiverDueBy *time.Time, now time.Time) string {
	if status != models.DuesWaiver {
		return status
	}
	if waiverDueBy != nil && waiverDueBy.Before(truncateToDay(now)) {
		return models.DuesOwing
	}
	return models.DuesWaiver
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SetDues upserts one member's dues record for a period.
func (s *DuesService) SetDues(playerID uint, req models.SetDuesRequest) error {
	var waiverDate *time.Time
	if req.Status == models.DuesWaiver && req.WaiverDueBy != nil {
		parsed, err := time.Parse("2006-01-02", *req.WaiverDueBy)
		if err != nil {
			return fmt.Errorf("invalid waiver_due_by date (use YYYY-MM-DD)")
		}
		waiverDate = &parsed
	}
	var paidAt *time.Time
	if req.Status == models.DuesPaid {
		now := time.Now()
		paidAt = &now
	}

	var record models.Dues
	err := s.db.Where("player_id = ? AND year = ? AND quarter = ?", playerID, req.Year, req.Quarter).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.Dues{
			PlayerID:    playerID,
			Year:        req.Year,
			Quarter:     req.Quarter,
			Status:      req.Status,
			PaidAt:      paidAt,
			WaiverDueBy: waiverDate,
		}
		return s.db.Create(&record).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&record).Updates(map[string]interface{}{
		"status":        req.Status,
		"paid_at":       paidAt,
		"waiver_due_by": waiverDate,
	}).Error
}

// DuesFor returns a member's resolved dues for the quarter containing now,
// persisting the waiver-to-owing downgrade when the promised date passed.
// No record means owing.
func (s *DuesService) DuesFor(playerID uint, now time.Time) (*models.DuesView, error) {
	year, quarter := now.Year(), CurrentQuarter(now)
	view := &models.DuesView{Year: year, Quarter: quarter, Status: models.DuesOwing}

	var record models.Dues
	err := s.db.Where("player_id = ? AND year = ? AND quarter = ?", playerID, year, quarter).
		First(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		view.Status = resolveStatus(record.Status, record.WaiverDueBy, now)
		if record.WaiverDueBy != nil && view.Status != models.DuesOwing {
			formatted := record.WaiverDueBy.Format("2006-01-02")
			view.WaiverDueBy = &formatted
		}
		if record.Status == models.DuesWaiver && view.Status == models.DuesOwing {
			if err := s.db.Model(&record).Updates(map[string]interface{}{
				"status":        models.DuesOwing,
				"waiver_due_by": nil,
			}).Error; err != nil {
				return nil, err
			}
		}
	}

	var pending int64
	err = s.db.Model(&models.PaymentEvidence{}).
		Where("player_id = ? AND year = ? AND quarter = ? AND status = ?",
			playerID, year, quarter, models.EvidencePending).
		Count(&pending).Error
	if err != nil {
		return nil, err
	}
	view.PendingEvidence = pending > 0
	return view, nil
}

// Facts returns the eligibility snapshot for one player.
func (s *DuesService) Facts(playerID uint, now time.Time) (MemberFacts, error) {
	var player models.Player
	err := s.db.Select("status", "suspended").First(&player, playerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return MemberFacts{DuesStatus: models.DuesOwing}, nil
	}
	if err != nil {
		return MemberFacts{}, err
	}

	facts := MemberFacts{
		Approved:   player.Status == models.PlayerApproved,
		Suspended:  player.Suspended,
		DuesStatus: models.DuesOwing,
	}
	var record models.Dues
	err = s.db.Where("player_id = ? AND year = ? AND quarter = ?",
		playerID, now.Year(), CurrentQuarter(now)).First(&record).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return MemberFacts{}, err
	}
	if err == nil {
		facts.DuesStatus = record.Status
		facts.WaiverDueBy = record.WaiverDueBy
	}
	return facts, nil
}

// ByQuarter lists every approved member's dues for an arbitrary period.
func (s *DuesService) ByQuarter(year, quarter int, now time.Time) ([]models.QuarterDues, error) {
	var players []models.Player
	if err := s.db.Where("status = ?", models.PlayerApproved).Order("baller_name").Find(&players).Error; err != nil {
		return nil, err
	}

	rows := make([]models.QuarterDues, 0, len(players))
	for _, p := range players {
		row := models.QuarterDues{
			PlayerID:     p.ID,
			FirstName:    p.FirstName,
			Surname:      p.Surname,
			BallerName:   p.BallerName,
			JerseyNumber: p.JerseyNumber,
			RawStatus:    models.DuesOwing,
		}
		var record models.Dues
		err := s.db.Where("player_id = ? AND year = ? AND quarter = ?", p.ID, year, quarter).
			First(&record).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			row.RawStatus = record.Status
			if record.WaiverDueBy != nil {
				formatted := record.WaiverDueBy.Format("2006-01-02")
				row.WaiverDueBy = &formatted
			}
			row.Status = resolveStatus(record.Status, record.WaiverDueBy, now)
		} else {
			row.Status = models.DuesOwing
		}
		row.DisplayStatus = row.Status
		if row.RawStatus == models.DuesWaiver && row.Status == models.DuesOwing {
			row.DisplayStatus = "waiver_overdue"
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ApplyWaiver records a member's promise to pay the current quarter by the
// given date.
func (s *DuesService) ApplyWaiver(playerID uint, dueBy string, now time.Time) error {
	formatted := dueBy
	if len(formatted) > 10 {
		formatted = formatted[:10]
	}
	date := formatted
	return s.SetDues(playerID, models.SetDuesRequest{
		Year:        now.Year(),
		Quarter:     CurrentQuarter(now),
		Status:      models.DuesWaiver,
		WaiverDueBy: &date,
	})
}

// SubmitEvidence files a payment-proof reference for the current quarter.
// Refused when the quarter is already paid or a submission is under review.
func (s *DuesService) SubmitEvidence(playerID uint, reference string, now time.Time) error {
	year, quarter := now.Year(), CurrentQuarter(now)

	var record models.Dues
	err := s.db.Where("player_id = ? AND year = ? AND quarter = ?", playerID, year, quarter).
		First(&record).Error
	if err == nil && record.Status == models.DuesPaid {
		return ErrAlreadyPaid
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var pending int64
	err = s.db.Model(&models.PaymentEvidence{}).
		Where("player_id = ? AND year = ? AND quarter = ? AND status = ?",
			playerID, year, quarter, models.EvidencePending).
		Count(&pending).Error
	if err != nil {
		return err
	}
	if pending > 0 {
		return ErrUnderReview
	}

	evidence := models.PaymentEvidence{
		PlayerID:  playerID,
		Year:      year,
		Quarter:   quarter,
		Reference: reference,
		Status:    models.EvidencePending,
	}
	return s.db.Create(&evidence).Error
}

// PendingEvidence lists submissions awaiting review, oldest first.
func (s *DuesService) PendingEvidence() ([]models.EvidenceView, error) {
	var entries []models.PaymentEvidence
	if err := s.db.Where("status = ?", models.EvidencePending).Order("submitted_at").Find(&entries).Error; err != nil {
		return nil, err
	}
	views := make([]models.EvidenceView, 0, len(entries))
	for _, e := range entries {
		var player models.Player
		if err := s.db.First(&player, e.PlayerID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		views = append(views, models.EvidenceView{
			ID:          e.ID,
			PlayerID:    e.PlayerID,
			Year:        e.Year,
			Quarter:     e.Quarter,
			Reference:   e.Reference,
			SubmittedAt: e.SubmittedAt,
			BallerName:  player.BallerName,
			FirstName:   player.FirstName,
			Surname:     player.Surname,
		})
	}
	return views, nil
}

// ApprovePayment accepts an evidence submission and marks the period paid.
func (s *DuesService) ApprovePayment(evidenceID uint) error {
	var evidence models.PaymentEvidence
	err := s.db.Where("id = ? AND status = ?", evidenceID, models.EvidencePending).First(&evidence).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotReviewed
	}
	if err != nil {
		return err
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&evidence).Updates(map[string]interface{}{
			"status":      models.EvidenceApproved,
			"reviewed_at": &now,
		}).Error; err != nil {
			return err
		}

		var record models.Dues
		err := tx.Where("player_id = ? AND year = ? AND quarter = ?",
			evidence.PlayerID, evidence.Year, evidence.Quarter).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = models.Dues{
				PlayerID: evidence.PlayerID,
				Year:     evidence.Year,
				Quarter:  evidence.Quarter,
				Status:   models.DuesPaid,
				PaidAt:   &now,
			}
			return tx.Create(&record).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&record).Updates(map[string]interface{}{
			"status":        models.DuesPaid,
			"paid_at":       &now,
			"waiver_due_by": nil,
		}).Error
	})
}

// RejectPayment declines an evidence submission.
func (s *DuesService) RejectPayment(evidenceID uint) error {
	now := time.Now()
	result := s.db.Model(&models.PaymentEvidence{}).
		Where("id = ? AND status = ?", evidenceID, models.EvidencePending).
		Updates(map[string]interface{}{
			"status":      models.EvidenceRejected,
			"reviewed_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotReviewed
	}
	return nil
}

// ExpireWaivers persists the waiver-to-owing downgrade for every record
// whose promised date has passed. The scheduler runs this hourly.
func (s *DuesService) ExpireWaivers(now time.Time) (int, error) {
	result := s.db.Model(&models.Dues{}).
		Where("status = ? AND waiver_due_by IS NOT NULL AND waiver_due_by < ?",
			models.DuesWaiver, truncateToDay(now)).
		Updates(map[string]interface{}{
			"status":        models.DuesOwing,
			"waiver_due_by": nil,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("downgraded %d expired waivers to owing", result.RowsAffected)
	}
	return int(result.RowsAffected), nil
}
