package services

import (
	"sort"

	"core/models"
	"core/utils"

	"gorm.io/gorm"
)

// CareerService aggregates the ledger across matchdays into per-player career
// stats, star tiers and the club leaderboard. Goals, assists, cards and
// presence count from every matchday; clean sheets and ratings only from
// ended ones, because a live matchday's table can still change.
type CareerService struct {
	db        *gorm.DB
	directory MemberDirectory
	ratings   *RatingService
	ledger    *LedgerService
}

func NewCareerService(db *gorm.DB, directory MemberDirectory, ratings *RatingService, ledger *LedgerService) *CareerService {
	return &CareerService{db: db, directory: directory, ratings: ratings, ledger: ledger}
}

// PlayerStats computes one player's full career record.
func (s *CareerService) PlayerStats(playerID uint) (*models.CareerStats, error) {
	stats := &models.CareerStats{MatchdayRatings: []models.MatchdayRating{}}

	var goals int64
	if err := s.db.Model(&models.Goal{}).Where("scorer_id = ?", int64(playerID)).Count(&goals).Error; err != nil {
		return nil, err
	}
	stats.Goals = int(goals)

	var assists int64
	if err := s.db.Model(&models.Goal{}).Where("assister_id = ?", int64(playerID)).Count(&assists).Error; err != nil {
		return nil, err
	}
	stats.Assists = int(assists)

	var cards []models.MatchdayCard
	if err := s.db.Where("player_id = ?", playerID).Find(&cards).Error; err != nil {
		return nil, err
	}
	for _, c := range cards {
		stats.YellowCards += c.YellowCount
		stats.RedCards += c.RedCount
	}

	var matchdays []models.Matchday
	if err := s.db.Order("match_date, id").Find(&matchdays).Error; err != nil {
		return nil, err
	}

	sum := 0.0
	for _, matchday := range matchdays {
		squad, err := s.ratings.squads.SquadOf(matchday.ID, playerID)
		if err != nil {
			return nil, err
		}
		if squad == nil {
			continue
		}

		present, err := s.ledger.IsPresent(matchday.ID, models.RealRef(playerID))
		if err != nil {
			return nil, err
		}
		if present {
			stats.MatchdaysPresent++
		}

		// Clean sheets and ratings settle only once the matchday ends; a
		// live table can still change.
		if !matchday.Ended {
			continue
		}
		if present {
			cleanSheets, err := s.ratings.cleanSheetFixtures(matchday.ID, squad.ID)
			if err != nil {
				return nil, err
			}
			stats.CleanSheets += cleanSheets
		}

		rating, err := s.ratings.PlayerRating(matchday.ID, playerID)
		if err != nil {
			return nil, err
		}
		if rating == 0 {
			continue
		}
		stats.MatchdayRatings = append(stats.MatchdayRatings, models.MatchdayRating{
			MatchdayID: matchday.ID,
			MatchDate:  matchday.MatchDate.Format("2006-01-02"),
			Rating:     rating,
		})
		sum += rating
	}

	if n := len(stats.MatchdayRatings); n > 0 {
		stats.AverageRating = utils.Round2(sum / float64(n))
	}
	return stats, nil
}

// Leaderboard builds the club-wide table over all approved members, sorted by
// career average then goals then assists, plus the top-20 cuts the dashboard
// shows for goals, assists, presence and clean sheets.
func (s *CareerService) Leaderboard() (*models.Leaderboard, error) {
	entries, err := s.rankedEntries()
	if err != nil {
		return nil, err
	}
	return &models.Leaderboard{
		Entries:        entries,
		TopGoals:       topCut(entries, func(e models.LeaderboardEntry) int { return e.Goals }),
		TopAssists:     topCut(entries, func(e models.LeaderboardEntry) int { return e.Assists }),
		TopPresent:     topCut(entries, func(e models.LeaderboardEntry) int { return e.MatchdaysPresent }),
		TopCleanSheets: topCut(entries, func(e models.LeaderboardEntry) int { return e.CleanSheets }),
	}, nil
}

// TopFive returns the five best career averages.
func (s *CareerService) TopFive() ([]models.LeaderboardEntry, error) {
	entries, err := s.rankedEntries()
	if err != nil {
		return nil, err
	}
	if len(entries) > 5 {
		entries = entries[:5]
	}
	return entries, nil
}

// GlobalRank returns the player's 1-based position among players with a
// qualifying career average, or 0 when the player has none.
func (s *CareerService) GlobalRank(playerID uint) (int, error) {
	entries, err := s.rankedEntries()
	if err != nil {
		return 0, err
	}
	rank := 0
	for _, e := range entries {
		if e.AverageRating == 0 {
			continue
		}
		rank++
		if e.PlayerID == playerID {
			return rank, nil
		}
	}
	return 0, nil
}

func (s *CareerService) rankedEntries() ([]models.LeaderboardEntry, error) {
	members, err := s.directory.ApprovedPlayers()
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		stats, err := s.PlayerStats(m.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.LeaderboardEntry{
			PlayerID:         m.ID,
			BallerName:       m.BallerName,
			JerseyNumber:     m.JerseyNumber,
			Goals:            stats.Goals,
			Assists:          stats.Assists,
			YellowCards:      stats.YellowCards,
			RedCards:         stats.RedCards,
			CleanSheets:      stats.CleanSheets,
			MatchdaysPresent: stats.MatchdaysPresent,
			AverageRating:    stats.AverageRating,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AverageRating != entries[j].AverageRating {
			return entries[i].AverageRating > entries[j].AverageRating
		}
		if entries[i].Goals != entries[j].Goals {
			return entries[i].Goals > entries[j].Goals
		}
		return entries[i].Assists > entries[j].Assists
	})
	assignStars(entries)
	return entries, nil
}

// assignStars tiers players with a qualifying average by quartile of their
// rank: top quarter 5 stars, top half 4, top three quarters 3, the rest 1.
// No qualifying average means no stars.
func assignStars(entries []models.LeaderboardEntry) {
	qualifying := 0
	for i := range entries {
		if entries[i].AverageRating != 0 {
			qualifying++
		}
	}
	rank := 0
	for i := range entries {
		if entries[i].AverageRating == 0 {
			entries[i].StarRating = 0
			continue
		}
		switch {
		case rank < qualifying/4:
			entries[i].StarRating = 5
		case rank < qualifying/2:
			entries[i].StarRating = 4
		case rank < 3*qualifying/4:
			entries[i].StarRating = 3
		default:
			entries[i].StarRating = 1
		}
		rank++
	}
}

func topCut(entries []models.LeaderboardEntry, metric func(models.LeaderboardEntry) int) []models.LeaderboardEntry {
	cut := make([]models.LeaderboardEntry, len(entries))
	copy(cut, entries)
	sort.SliceStable(cut, func(i, j int) bool { return metric(cut[i]) > metric(cut[j]) })
	if len(cut) > 20 {
		cut = cut[:20]
	}
	return cut
}
