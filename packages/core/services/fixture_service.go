package services

import (
	"errors"
	"time"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
)

type FixtureService struct {
	db *gorm.DB
}

func NewFixtureService(db *gorm.DB) *FixtureService {
	return &FixtureService{db: db}
}

// Generate creates the full round robin for a matchday: one fixture per
// unordered squad pair, k(k-1)/2 in total, home side being the lower squad
// index. Fixtures are generated exactly once; corrections happen through
// goals and cards, never by regenerating.
func (s *FixtureService) Generate(matchdayID uint) (int, error) {
	var matchday models.Matchday
	if err := s.db.First(&matchday, matchdayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFound("matchday %d not found", matchdayID)
		}
		return 0, err
	}
	if matchday.Status != models.StatusApproved {
		return 0, apperrors.InvalidState("approve matchday before generating fixtures")
	}

	var existing int64
	if err := s.db.Model(&models.Fixture{}).Where("matchday_id = ?", matchdayID).Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, apperrors.Conflict("fixtures already generated for matchday %d", matchdayID)
	}

	var squads []models.Squad
	if err := s.db.Where("matchday_id = ?", matchdayID).Order("squad_index").Find(&squads).Error; err != nil {
		return 0, err
	}
	if len(squads) < 2 {
		return 0, apperrors.Validation("need at least 2 squads to generate fixtures, have %d", len(squads))
	}

	count := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < len(squads); i++ {
			for j := i + 1; j < len(squads); j++ {
				fixture := models.Fixture{
					MatchdayID:  matchdayID,
					HomeSquadID: squads[i].ID,
					AwaySquadID: squads[j].ID,
					Status:      models.FixturePending,
				}
				if err := tx.Create(&fixture).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return apperrors.Conflict("fixtures already generated for matchday %d", matchdayID)
					}
					return err
				}
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Get loads a fixture and verifies it belongs to the matchday.
func (s *FixtureService) Get(matchdayID, fixtureID uint) (*models.Fixture, error) {
	var fixture models.Fixture
	err := s.db.Where("id = ? AND matchday_id = ?", fixtureID, matchdayID).First(&fixture).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("fixture %d not found", fixtureID)
	}
	if err != nil {
		return nil, err
	}
	return &fixture, nil
}

// Start moves a pending fixture to in_progress and stamps the start time.
func (s *FixtureService) Start(matchdayID, fixtureID uint) error {
	fixture, err := s.Get(matchdayID, fixtureID)
	if err != nil {
		return err
	}
	if fixture.Status != models.FixturePending {
		return apperrors.InvalidState("fixture %d already started or completed", fixtureID)
	}
	now := time.Now()
	return s.db.Model(fixture).Updates(map[string]interface{}{
		"status":     models.FixtureInProgress,
		"started_at": &now,
	}).Error
}

// End moves an in_progress fixture to completed and stamps the end time.
func (s *FixtureService) End(matchdayID, fixtureID uint) error {
	fixture, err := s.Get(matchdayID, fixtureID)
	if err != nil {
		return err
	}
	if fixture.Status != models.FixtureInProgress {
		return apperrors.InvalidState("fixture %d is not in progress", fixtureID)
	}
	now := time.Now()
	return s.db.Model(fixture).Updates(map[string]interface{}{
		"status":   models.FixtureCompleted,
		"ended_at": &now,
	}).Error
}

// List returns the matchday's fixtures with squad indexes, ordered by id.
func (s *FixtureService) List(matchdayID uint) ([]models.FixtureView, error) {
	var fixtures []models.Fixture
	if err := s.db.Where("matchday_id = ?", matchdayID).Order("id").Find(&fixtures).Error; err != nil {
		return nil, err
	}

	indexes, err := squadIndexes(s.db, matchdayID)
	if err != nil {
		return nil, err
	}

	views := make([]models.FixtureView, 0, len(fixtures))
	for _, f := range fixtures {
		views = append(views, models.FixtureView{
			Fixture:        f,
			HomeSquadIndex: indexes[f.HomeSquadID],
			AwaySquadIndex: indexes[f.AwaySquadID],
		})
	}
	return views, nil
}

// HasCompleted reports whether any fixture of the matchday has completed.
// Rating computations anchor to squad assignments once this is true.
func (s *FixtureService) HasCompleted(matchdayID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Fixture{}).
		Where("matchday_id = ? AND status = ?", matchdayID, models.FixtureCompleted).
		Count(&count).Error
	return count > 0, err
}

func squadIndexes(db *gorm.DB, matchdayID uint) (map[uint]int, error) {
	var squads []models.Squad
	if err := db.Where("matchday_id = ?", matchdayID).Find(&squads).Error; err != nil {
		return nil, err
	}
	indexes := make(map[uint]int, len(squads))
	for _, s := range squads {
		indexes[s.ID] = s.SquadIndex
	}
	return indexes, nil
}
