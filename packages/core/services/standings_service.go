package services

import (
	"sort"

	"core/models"

	"gorm.io/gorm"
)

// StandingsService projects completed fixtures into a league table. Nothing
// is stored; the table is recomputed on every read.
type StandingsService struct {
	db *gorm.DB
}

func NewStandingsService(db *gorm.DB) *StandingsService {
	return &StandingsService{db: db}
}

// Table builds the matchday standings: 3 points for a win, 1 for a draw.
// Rows sort by points then goal difference, both descending; ties keep squad
// index order so repeated reads agree.
func (s *StandingsService) Table(matchdayID uint) ([]models.TableRow, error) {
	var squads []models.Squad
	if err := s.db.Where("matchday_id = ?", matchdayID).Order("squad_index").Find(&squads).Error; err != nil {
		return nil, err
	}

	rows := make([]models.TableRow, len(squads))
	bySquad := make(map[uint]*models.TableRow, len(squads))
	for i, squad := range squads {
		rows[i] = models.TableRow{SquadID: squad.ID, SquadIndex: squad.SquadIndex}
		bySquad[squad.ID] = &rows[i]
	}

	var fixtures []models.Fixture
	if err := s.db.Where("matchday_id = ? AND status = ?", matchdayID, models.FixtureCompleted).
		Find(&fixtures).Error; err != nil {
		return nil, err
	}

	for _, f := range fixtures {
		home, away := bySquad[f.HomeSquadID], bySquad[f.AwaySquadID]
		if home == nil || away == nil {
			continue
		}
		home.Played++
		away.Played++
		home.GoalsFor += f.HomeGoals
		home.GoalsAgainst += f.AwayGoals
		away.GoalsFor += f.AwayGoals
		away.GoalsAgainst += f.HomeGoals
		switch {
		case f.HomeGoals > f.AwayGoals:
			home.Won++
			home.Points += 3
			away.Lost++
		case f.HomeGoals < f.AwayGoals:
			away.Won++
			away.Points += 3
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
			home.Points++
			away.Points++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].GoalDifference() > rows[j].GoalDifference()
	})
	return rows, nil
}

// Position returns a squad's 1-based table position, or 0 when the squad is
// not in the table.
func (s *StandingsService) Position(matchdayID, squadID uint) (int, error) {
	rows, err := s.Table(matchdayID)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if row.SquadID == squadID {
			return i + 1, nil
		}
	}
	return 0, nil
}
