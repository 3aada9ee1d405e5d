package services

import (
	"errors"
	"time"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
)

// MatchdayService drives the matchday lifecycle: voting, review, publication
// flags and the ended marker.
type MatchdayService struct {
	db        *gorm.DB
	directory MemberDirectory
	squads    *SquadService
	fixtures  *FixtureService
}

func NewMatchdayService(db *gorm.DB, directory MemberDirectory, squads *SquadService, fixtures *FixtureService) *MatchdayService {
	return &MatchdayService{db: db, directory: directory, squads: squads, fixtures: fixtures}
}

// Create opens a new matchday for voting. The voting window defaults to
// now until 15:00 on the matchday itself; the window is informational and
// never closes voting by itself.
func (s *MatchdayService) Create(matchDate time.Time) (*models.Matchday, error) {
	matchday := models.Matchday{
		MatchDate:      matchDate,
		Status:         models.StatusVotingOpen,
		VotingOpensAt:  time.Now(),
		VotingClosesAt: time.Date(matchDate.Year(), matchDate.Month(), matchDate.Day(), 15, 0, 0, 0, matchDate.Location()),
	}
	if err := s.db.Create(&matchday).Error; err != nil {
		return nil, err
	}
	return &matchday, nil
}

func (s *MatchdayService) Get(matchdayID uint) (*models.Matchday, error) {
	var matchday models.Matchday
	err := s.db.First(&matchday, matchdayID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("matchday %d not found", matchdayID)
	}
	if err != nil {
		return nil, err
	}
	return &matchday, nil
}

// List returns all matchdays, newest match date first.
func (s *MatchdayService) List() ([]models.Matchday, error) {
	var matchdays []models.Matchday
	err := s.db.Order("match_date DESC, id DESC").Find(&matchdays).Error
	return matchdays, err
}

// Summary bundles a matchday with its vote count and voter list.
func (s *MatchdayService) Summary(matchdayID uint) (*models.MatchdaySummary, error) {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return nil, err
	}
	voters, err := s.VotedPlayers(matchdayID)
	if err != nil {
		return nil, err
	}
	return &models.MatchdaySummary{
		Matchday:     *matchday,
		VoteCount:    int64(len(voters)),
		VotedPlayers: voters,
	}, nil
}

// Delete removes a matchday and everything recorded under it. Ratings and
// career stats are derived, so deleting the rows is the complete undo.
func (s *MatchdayService) Delete(matchdayID uint) error {
	if _, err := s.Get(matchdayID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var fixtureIDs []uint
		if err := tx.Model(&models.Fixture{}).Where("matchday_id = ?", matchdayID).
			Pluck("id", &fixtureIDs).Error; err != nil {
			return err
		}
		if len(fixtureIDs) > 0 {
			if err := tx.Where("fixture_id IN ?", fixtureIDs).Delete(&models.Goal{}).Error; err != nil {
				return err
			}
			if err := tx.Where("fixture_id IN ?", fixtureIDs).Delete(&models.FixtureCard{}).Error; err != nil {
				return err
			}
		}
		for _, model := range []interface{}{
			&models.Fixture{},
			&models.MatchdayCard{},
			&models.Attendance{},
			&models.SquadMember{},
			&models.Squad{},
			&models.Vote{},
		} {
			if err := tx.Where("matchday_id = ?", matchdayID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Matchday{}, matchdayID).Error
	})
}

// CastVote records a member's own vote. The member must be eligible right
// now: approved, not suspended, dues paid or covered by an unexpired waiver.
func (s *MatchdayService) CastVote(matchdayID, playerID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusVotingOpen {
		return apperrors.InvalidState("voting is not open for matchday %d", matchdayID)
	}

	eligibility, err := s.directory.Eligibility(playerID, time.Now())
	if err != nil {
		return err
	}
	if !eligibility.CanVote(time.Now()) {
		return apperrors.Validation("player %d is not eligible to vote (suspension or dues)", playerID)
	}

	return s.insertVote(matchdayID, playerID)
}

// AddVote is the admin override: it records a vote without the eligibility
// check, for players the admin knows will show up.
func (s *MatchdayService) AddVote(matchdayID, playerID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusVotingOpen {
		return apperrors.InvalidState("voting is not open for matchday %d", matchdayID)
	}
	return s.insertVote(matchdayID, playerID)
}

func (s *MatchdayService) insertVote(matchdayID, playerID uint) error {
	vote := models.Vote{MatchdayID: matchdayID, PlayerID: playerID}
	if err := s.db.Create(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("player %d already voted for matchday %d", playerID, matchdayID)
		}
		return err
	}
	return nil
}

// RemoveVote withdraws a vote while voting is still open.
func (s *MatchdayService) RemoveVote(matchdayID, playerID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusVotingOpen {
		return apperrors.InvalidState("voting is not open for matchday %d", matchdayID)
	}
	result := s.db.Where("matchday_id = ? AND player_id = ?", matchdayID, playerID).Delete(&models.Vote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("player %d has no vote for matchday %d", playerID, matchdayID)
	}
	return nil
}

// VoteAllEligible registers every currently eligible approved member who has
// not voted yet. Returns the number of votes added.
func (s *MatchdayService) VoteAllEligible(matchdayID uint) (int, error) {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return 0, err
	}
	if matchday.Status != models.StatusVotingOpen {
		return 0, apperrors.InvalidState("voting is not open for matchday %d", matchdayID)
	}

	members, err := s.directory.ApprovedPlayers()
	if err != nil {
		return 0, err
	}
	var existing []uint
	if err := s.db.Model(&models.Vote{}).Where("matchday_id = ?", matchdayID).
		Pluck("player_id", &existing).Error; err != nil {
		return 0, err
	}
	voted := make(map[uint]bool, len(existing))
	for _, id := range existing {
		voted[id] = true
	}

	now := time.Now()
	added := 0
	for _, m := range members {
		if voted[m.ID] {
			continue
		}
		eligibility, err := s.directory.Eligibility(m.ID, now)
		if err != nil {
			return added, err
		}
		if !eligibility.CanVote(now) {
			continue
		}
		if err := s.insertVote(matchdayID, m.ID); err != nil {
			if apperrors.IsKind(err, apperrors.KindConflict) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

// VotedPlayers lists voters with display names, ordered by name.
func (s *MatchdayService) VotedPlayers(matchdayID uint) ([]models.VoterInfo, error) {
	var votes []models.Vote
	if err := s.db.Where("matchday_id = ?", matchdayID).Order("created_at").Find(&votes).Error; err != nil {
		return nil, err
	}
	voters := make([]models.VoterInfo, 0, len(votes))
	for _, v := range votes {
		voters = append(voters, models.VoterInfo{
			PlayerID:   v.PlayerID,
			BallerName: s.directory.PlayerName(v.PlayerID),
		})
	}
	return voters, nil
}

// CloseVoting moves the matchday to admin review.
func (s *MatchdayService) CloseVoting(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusVotingOpen {
		return apperrors.InvalidState("matchday %d is not open for voting", matchdayID)
	}
	return s.db.Model(matchday).Update("status", models.StatusClosedPendingReview).Error
}

// ReopenVoting reverses a close while the matchday is still under review and
// no fixture has been played. Votes are kept.
func (s *MatchdayService) ReopenVoting(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusClosedPendingReview {
		return apperrors.InvalidState("matchday %d is not pending review", matchdayID)
	}
	played, err := s.fixtures.HasCompleted(matchdayID)
	if err != nil {
		return err
	}
	if played {
		return apperrors.InvalidState("cannot reopen voting after a fixture has completed")
	}
	return s.db.Model(matchday).Update("status", models.StatusVotingOpen).Error
}

// Approve confirms the matchday will happen and forms squads from the voter
// set in the same transaction.
func (s *MatchdayService) Approve(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusClosedPendingReview {
		return apperrors.InvalidState("close voting before approving matchday %d", matchdayID)
	}
	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Matchday{}).Where("id = ?", matchdayID).Updates(map[string]interface{}{
			"status":      models.StatusApproved,
			"reviewed_at": &now,
		}).Error; err != nil {
			return err
		}
		return s.squads.generateTx(tx, matchdayID)
	})
}

// Reject marks the matchday as not happening. Votes stay for the record.
func (s *MatchdayService) Reject(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusClosedPendingReview {
		return apperrors.InvalidState("close voting before rejecting matchday %d", matchdayID)
	}
	now := time.Now()
	return s.db.Model(matchday).Updates(map[string]interface{}{
		"status":      models.StatusRejected,
		"reviewed_at": &now,
	}).Error
}

// PublishSquads makes the squad lists visible to members. Squads must exist.
func (s *MatchdayService) PublishSquads(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusApproved {
		return apperrors.InvalidState("approve matchday %d before publishing squads", matchdayID)
	}
	var count int64
	if err := s.db.Model(&models.Squad{}).Where("matchday_id = ?", matchdayID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.InvalidState("no squads to publish for matchday %d", matchdayID)
	}
	return s.db.Model(matchday).Update("squads_published", true).Error
}

// UnpublishSquads hides the squad lists again, e.g. to move members around.
// Refused once the matchday has ended.
func (s *MatchdayService) UnpublishSquads(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Ended {
		return apperrors.InvalidState("matchday %d has ended", matchdayID)
	}
	return s.db.Model(matchday).Update("squads_published", false).Error
}

// PublishFixtures makes the fixture list visible. Fixtures must exist.
func (s *MatchdayService) PublishFixtures(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Status != models.StatusApproved {
		return apperrors.InvalidState("approve matchday %d before publishing fixtures", matchdayID)
	}
	var count int64
	if err := s.db.Model(&models.Fixture{}).Where("matchday_id = ?", matchdayID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.InvalidState("no fixtures to publish for matchday %d", matchdayID)
	}
	return s.db.Model(matchday).Update("fixtures_published", true).Error
}

// End closes the matchday regardless of its voting or approval status. Any
// fixture still in progress is force-completed with its current score so
// career aggregation sees a consistent record. Ending an already-ended
// matchday is a no-op.
func (s *MatchdayService) End(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if matchday.Ended {
		return nil
	}
	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Fixture{}).
			Where("matchday_id = ? AND status = ?", matchdayID, models.FixtureInProgress).
			Updates(map[string]interface{}{
				"status":   models.FixtureCompleted,
				"ended_at": &now,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Matchday{}).Where("id = ?", matchdayID).
			Update("ended", true).Error
	})
}

// Reopen reverses End for late corrections. Force-completed fixtures stay
// completed; individual fixtures are corrected through goals and cards.
func (s *MatchdayService) Reopen(matchdayID uint) error {
	matchday, err := s.Get(matchdayID)
	if err != nil {
		return err
	}
	if !matchday.Ended {
		return apperrors.InvalidState("matchday %d has not ended", matchdayID)
	}
	return s.db.Model(matchday).Update("ended", false).Error
}
