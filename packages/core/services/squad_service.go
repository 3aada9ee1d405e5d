package services

import (
	"errors"
	"math/rand"
	"time"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
)

type SquadService struct {
	db        *gorm.DB
	rng       *rand.Rand
	directory MemberDirectory
}

// NewSquadService builds the formation engine. rng drives the voter
// shuffle; pass a seeded source for reproducible partitions (tests), nil
// for production randomness.
func NewSquadService(db *gorm.DB, directory MemberDirectory, rng *rand.Rand) *SquadService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SquadService{db: db, rng: rng, directory: directory}
}

// Generate partitions the matchday's voters into squads of SquadCapacity
// real players each (last squad may be smaller). A no-op when memberships
// already exist; the unique (matchday_id, squad_index) index turns a
// concurrent double-generation into a conflict instead of duplicate squads.
func (s *SquadService) Generate(matchdayID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.generateTx(tx, matchdayID)
	})
}

func (s *SquadService) generateTx(tx *gorm.DB, matchdayID uint) error {
	var existing int64
	if err := tx.Model(&models.SquadMember{}).Where("matchday_id = ?", matchdayID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	var playerIDs []uint
	if err := tx.Model(&models.Vote{}).Where("matchday_id = ? AND player_id > 0", matchdayID).
		Pluck("player_id", &playerIDs).Error; err != nil {
		return err
	}

	s.rng.Shuffle(len(playerIDs), func(i, j int) {
		playerIDs[i], playerIDs[j] = playerIDs[j], playerIDs[i]
	})

	for i := 0; i < len(playerIDs); i += models.SquadCapacity {
		squad := models.Squad{
			MatchdayID: matchdayID,
			SquadIndex: i/models.SquadCapacity + 1,
		}
		if err := tx.Create(&squad).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("squads already generated for matchday %d", matchdayID)
			}
			return err
		}

		end := i + models.SquadCapacity
		if end > len(playerIDs) {
			end = len(playerIDs)
		}
		for _, pid := range playerIDs[i:end] {
			member := models.SquadMember{
				MatchdayID: matchdayID,
				SquadID:    squad.ID,
				PlayerID:   pid,
			}
			if err := tx.Create(&member).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperrors.Conflict("player %d already assigned to a squad", pid)
				}
				return err
			}
		}
	}
	return nil
}

// Regenerate deletes all squads and memberships for the matchday and forms
// them again from the current voter set. Refused while squads are published
// unless force is set (admin correction), and always refused once fixtures
// exist because they reference squad ids.
func (s *SquadService) Regenerate(matchdayID uint, force bool) error {
	var matchday models.Matchday
	if err := s.db.First(&matchday, matchdayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("matchday %d not found", matchdayID)
		}
		return err
	}
	if matchday.Status != models.StatusApproved {
		return apperrors.InvalidState("matchday must be approved before regenerating squads")
	}
	if matchday.SquadsPublished && !force {
		return apperrors.InvalidState("unpublish squads before regenerating")
	}

	var fixtureCount int64
	if err := s.db.Model(&models.Fixture{}).Where("matchday_id = ?", matchdayID).Count(&fixtureCount).Error; err != nil {
		return err
	}
	if fixtureCount > 0 {
		return apperrors.Conflict("fixtures already reference these squads; delete the matchday to start over")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("matchday_id = ?", matchdayID).Delete(&models.SquadMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("matchday_id = ?", matchdayID).Delete(&models.Squad{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Matchday{}).Where("id = ?", matchdayID).
			Update("squads_published", false).Error; err != nil {
			return err
		}
		return s.generateTx(tx, matchdayID)
	})
}

// Squads lists the matchday's squads with members and their attendance,
// appending the implicit guest slot to each squad.
func (s *SquadService) Squads(matchdayID uint) ([]models.SquadView, error) {
	var squads []models.Squad
	if err := s.db.Where("matchday_id = ?", matchdayID).Order("squad_index").Find(&squads).Error; err != nil {
		return nil, err
	}

	overrides, err := attendanceOverrides(s.db, matchdayID)
	if err != nil {
		return nil, err
	}

	approved, err := s.directory.ApprovedPlayers()
	if err != nil {
		return nil, err
	}
	infoByID := make(map[uint]MemberInfo, len(approved))
	for _, info := range approved {
		infoByID[info.ID] = info
	}

	views := make([]models.SquadView, 0, len(squads))
	for _, squad := range squads {
		var members []models.SquadMember
		if err := s.db.Where("matchday_id = ? AND squad_id = ?", matchdayID, squad.ID).Find(&members).Error; err != nil {
			return nil, err
		}

		view := models.SquadView{SquadID: squad.ID, SquadIndex: squad.SquadIndex}
		for _, m := range members {
			present, overridden := overrides[m.PlayerID]
			if !overridden {
				present = true
			}
			memberView := models.SquadMemberView{
				PlayerID:   int64(m.PlayerID),
				BallerName: s.directory.PlayerName(m.PlayerID),
				Present:    present,
			}
			if info, ok := infoByID[m.PlayerID]; ok {
				memberView.JerseyNumber = info.JerseyNumber
			}
			view.Members = append(view.Members, memberView)
		}
		guest := models.GuestRef(matchdayID, squad.ID)
		view.Members = append(view.Members, models.SquadMemberView{
			PlayerID:   guest.StorageID(),
			BallerName: guestDisplayName(squad.SquadIndex),
			Present:    true,
			IsGuest:    true,
		})
		views = append(views, view)
	}
	return views, nil
}

// SquadOf returns the squad a player belongs to in a matchday, or nil when
// unassigned.
func (s *SquadService) SquadOf(matchdayID, playerID uint) (*models.Squad, error) {
	var member models.SquadMember
	err := s.db.Where("matchday_id = ? AND player_id = ?", matchdayID, playerID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var squad models.Squad
	if err := s.db.First(&squad, member.SquadID).Error; err != nil {
		return nil, err
	}
	return &squad, nil
}

// MoveMember relocates one player between two squads of the same matchday.
// Only legal while the matchday is approved and squads are unpublished.
func (s *SquadService) MoveMember(matchdayID uint, req models.MoveMemberRequest) error {
	var matchday models.Matchday
	if err := s.db.First(&matchday, matchdayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("matchday %d not found", matchdayID)
		}
		return err
	}
	if matchday.Status != models.StatusApproved {
		return apperrors.InvalidState("matchday must be approved before moving members")
	}
	if matchday.SquadsPublished {
		return apperrors.InvalidState("unpublish squads before moving members")
	}

	var target models.Squad
	if err := s.db.Where("id = ? AND matchday_id = ?", req.ToSquadID, matchdayID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("target squad %d does not belong to matchday %d", req.ToSquadID, matchdayID)
		}
		return err
	}

	result := s.db.Model(&models.SquadMember{}).
		Where("matchday_id = ? AND squad_id = ? AND player_id = ?", matchdayID, req.FromSquadID, req.PlayerID).
		Update("squad_id", req.ToSquadID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("player %d is not in squad %d", req.PlayerID, req.FromSquadID)
	}
	return nil
}
