package services

import (
	"errors"
	"sort"

	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

// RatingService derives per-matchday player ratings from the ledger. Ratings
// are never stored; two reads over the same rows give the same number.
type RatingService struct {
	db        *gorm.DB
	directory MemberDirectory
	squads    *SquadService
	fixtures  *FixtureService
	standings *StandingsService
	ledger    *LedgerService
}

func NewRatingService(db *gorm.DB, directory MemberDirectory, squads *SquadService, fixtures *FixtureService, standings *StandingsService, ledger *LedgerService) *RatingService {
	return &RatingService{
		db:        db,
		directory: directory,
		squads:    squads,
		fixtures:  fixtures,
		standings: standings,
		ledger:    ledger,
	}
}

// PlayerRating computes one real player's rating for one matchday.
// Short circuits, in order: not in a squad -> 0, marked absent -> 0, no
// completed fixture yet -> flat 5.0. Otherwise the additive formula over the
// player's goals, assists, squad position, clean sheets and cards.
func (s *RatingService) PlayerRating(matchdayID, playerID uint) (float64, error) {
	squad, err := s.squads.SquadOf(matchdayID, playerID)
	if err != nil {
		return 0, err
	}
	if squad == nil {
		return 0, nil
	}

	present, err := s.ledger.IsPresent(matchdayID, models.RealRef(playerID))
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, nil
	}

	played, err := s.fixtures.HasCompleted(matchdayID)
	if err != nil {
		return 0, err
	}
	if !played {
		return utils.RatingBase, nil
	}

	goals, assists, err := s.goalCounts(matchdayID, int64(playerID))
	if err != nil {
		return 0, err
	}
	position, err := s.standings.Position(matchdayID, squad.ID)
	if err != nil {
		return 0, err
	}
	cleanSheets, err := s.cleanSheetFixtures(matchdayID, squad.ID)
	if err != nil {
		return 0, err
	}
	yellows, reds, err := s.cardCounts(matchdayID, playerID)
	if err != nil {
		return 0, err
	}

	return utils.MatchdayScore(goals, assists, position, cleanSheets, yellows, reds), nil
}

// MatchdayRatings lists every squad member's rating, highest first, name
// breaking ties.
func (s *RatingService) MatchdayRatings(matchdayID uint) ([]models.PlayerRating, error) {
	var squads []models.Squad
	if err := s.db.Where("matchday_id = ?", matchdayID).Order("squad_index").Find(&squads).Error; err != nil {
		return nil, err
	}

	var ratings []models.PlayerRating
	for _, squad := range squads {
		var members []models.SquadMember
		if err := s.db.Where("matchday_id = ? AND squad_id = ?", matchdayID, squad.ID).Find(&members).Error; err != nil {
			return nil, err
		}
		for _, m := range members {
			rating, err := s.PlayerRating(matchdayID, m.PlayerID)
			if err != nil {
				return nil, err
			}
			ratings = append(ratings, models.PlayerRating{
				PlayerID:   m.PlayerID,
				BallerName: s.directory.PlayerName(m.PlayerID),
				SquadIndex: squad.SquadIndex,
				Rating:     rating,
			})
		}
	}

	sort.SliceStable(ratings, func(i, j int) bool {
		if ratings[i].Rating != ratings[j].Rating {
			return ratings[i].Rating > ratings[j].Rating
		}
		return ratings[i].BallerName < ratings[j].BallerName
	})
	return ratings, nil
}

func (s *RatingService) goalCounts(matchdayID uint, storedID int64) (goals, assists int, err error) {
	var goalCount int64
	err = s.db.Model(&models.Goal{}).
		Joins("JOIN fixtures ON fixtures.id = fixture_goals.fixture_id").
		Where("fixtures.matchday_id = ? AND fixture_goals.scorer_id = ?", matchdayID, storedID).
		Count(&goalCount).Error
	if err != nil {
		return 0, 0, err
	}
	var assistCount int64
	err = s.db.Model(&models.Goal{}).
		Joins("JOIN fixtures ON fixtures.id = fixture_goals.fixture_id").
		Where("fixtures.matchday_id = ? AND fixture_goals.assister_id = ?", matchdayID, storedID).
		Count(&assistCount).Error
	if err != nil {
		return 0, 0, err
	}
	return int(goalCount), int(assistCount), nil
}

// cleanSheetFixtures counts completed fixtures in which the squad conceded
// nothing.
func (s *RatingService) cleanSheetFixtures(matchdayID, squadID uint) (int, error) {
	var fixtures []models.Fixture
	err := s.db.Where("matchday_id = ? AND status = ? AND (home_squad_id = ? OR away_squad_id = ?)",
		matchdayID, models.FixtureCompleted, squadID, squadID).
		Find(&fixtures).Error
	if err != nil {
		return 0, err
	}
	count := 0
	for _, f := range fixtures {
		if f.HomeSquadID == squadID && f.AwayGoals == 0 {
			count++
		}
		if f.AwaySquadID == squadID && f.HomeGoals == 0 {
			count++
		}
	}
	return count, nil
}

func (s *RatingService) cardCounts(matchdayID, playerID uint) (yellows, reds int, err error) {
	var counts models.MatchdayCard
	err = s.db.Where("matchday_id = ? AND player_id = ?", matchdayID, playerID).First(&counts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return counts.YellowCount, counts.RedCount, nil
}
