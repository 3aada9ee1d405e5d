package services

import (
	"errors"
	"fmt"
	"sort"

	"core/apperrors"
	"core/models"

	"gorm.io/gorm"
)

// LedgerService owns the durable event records: goals, cards and attendance.
// Everything above it (ratings, standings, career stats) is recomputed from
// these rows on every read.
type LedgerService struct {
	db        *gorm.DB
	directory MemberDirectory
}

func NewLedgerService(db *gorm.DB, directory MemberDirectory) *LedgerService {
	return &LedgerService{db: db, directory: directory}
}

// EligibleScorers returns the set of identities a goal (scorer or assister)
// may reference for a fixture: the two squads' guest slots plus every
// present real member of either squad.
func (s *LedgerService) EligibleScorers(matchdayID uint, fixture *models.Fixture) ([]models.ScorerChoice, error) {
	indexes, err := squadIndexes(s.db, matchdayID)
	if err != nil {
		return nil, err
	}
	overrides, err := attendanceOverrides(s.db, matchdayID)
	if err != nil {
		return nil, err
	}

	choices := []models.ScorerChoice{}
	for _, squadID := range []uint{fixture.HomeSquadID, fixture.AwaySquadID} {
		guest := models.GuestRef(matchdayID, squadID)
		choices = append(choices, models.ScorerChoice{
			ID:         guest.StorageID(),
			BallerName: guestDisplayName(indexes[squadID]),
			IsGuest:    true,
		})
	}
	for _, squadID := range []uint{fixture.HomeSquadID, fixture.AwaySquadID} {
		var members []models.SquadMember
		if err := s.db.Where("matchday_id = ? AND squad_id = ?", matchdayID, squadID).Find(&members).Error; err != nil {
			return nil, err
		}
		for _, m := range members {
			if present, overridden := overrides[m.PlayerID]; overridden && !present {
				continue
			}
			choices = append(choices, models.ScorerChoice{
				ID:         int64(m.PlayerID),
				BallerName: s.directory.PlayerName(m.PlayerID),
			})
		}
	}
	return choices, nil
}

// AddGoal records a goal against a fixture that is in progress or completed.
// The home/away flag is inferred from the scorer's squad when omitted.
func (s *LedgerService) AddGoal(matchdayID uint, fixture *models.Fixture, req models.AddGoalRequest) (*models.Goal, error) {
	if fixture.Status != models.FixtureInProgress && fixture.Status != models.FixtureCompleted {
		return nil, apperrors.InvalidState("goals can only be added while a fixture is in progress or completed")
	}

	choices, err := s.EligibleScorers(matchdayID, fixture)
	if err != nil {
		return nil, err
	}
	valid := make(map[int64]bool, len(choices))
	for _, c := range choices {
		valid[c.ID] = true
	}
	if !valid[req.ScorerID] {
		return nil, apperrors.Validation("scorer must be a present squad member or a squad guest")
	}
	if req.AssisterID != nil && !valid[*req.AssisterID] {
		return nil, apperrors.Validation("assister must be a present squad member or a squad guest")
	}

	isHome, err := s.resolveHomeGoal(matchdayID, fixture, req)
	if err != nil {
		return nil, err
	}

	goal := models.Goal{
		FixtureID:  fixture.ID,
		ScorerID:   req.ScorerID,
		AssisterID: req.AssisterID,
		Minute:     req.Minute,
		IsHomeGoal: isHome,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&goal).Error; err != nil {
			return err
		}
		column := "away_goals"
		if isHome {
			column = "home_goals"
		}
		return tx.Model(&models.Fixture{}).Where("id = ?", fixture.ID).
			Update(column, gorm.Expr(column+" + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *LedgerService) resolveHomeGoal(matchdayID uint, fixture *models.Fixture, req models.AddGoalRequest) (bool, error) {
	if req.IsHomeGoal != nil {
		return *req.IsHomeGoal, nil
	}
	ref, ok := models.DecodeRef(matchdayID, req.ScorerID)
	if !ok {
		return true, nil
	}
	switch ref.Kind {
	case models.RefReal:
		var member models.SquadMember
		err := s.db.Where("matchday_id = ? AND player_id = ?", matchdayID, ref.PlayerID).First(&member).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		return member.SquadID == fixture.HomeSquadID, nil
	case models.RefGuest:
		return ref.SquadID == fixture.HomeSquadID, nil
	default:
		return true, nil
	}
}

// RemoveGoal deletes a goal (its assist goes with the row) and decrements
// the matching counter, never below zero.
func (s *LedgerService) RemoveGoal(matchdayID uint, fixture *models.Fixture, goalID uint) error {
	if fixture.Status != models.FixtureInProgress && fixture.Status != models.FixtureCompleted {
		return apperrors.InvalidState("goals can only be removed while a fixture is in progress or completed")
	}
	var goal models.Goal
	err := s.db.Where("id = ? AND fixture_id = ?", goalID, fixture.ID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("goal %d not found", goalID)
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&goal).Error; err != nil {
			return err
		}
		var current models.Fixture
		if err := tx.First(&current, fixture.ID).Error; err != nil {
			return err
		}
		column, value := "away_goals", current.AwayGoals
		if goal.IsHomeGoal {
			column, value = "home_goals", current.HomeGoals
		}
		if value > 0 {
			value--
		}
		return tx.Model(&models.Fixture{}).Where("id = ?", fixture.ID).Update(column, value).Error
	})
}

// Goals lists a fixture's goals with resolved display names.
func (s *LedgerService) Goals(matchdayID, fixtureID uint) ([]models.GoalDetail, error) {
	var goals []models.Goal
	if err := s.db.Where("fixture_id = ?", fixtureID).Order("id").Find(&goals).Error; err != nil {
		return nil, err
	}
	details := make([]models.GoalDetail, 0, len(goals))
	for _, g := range goals {
		detail := models.GoalDetail{
			ID:         g.ID,
			ScorerID:   g.ScorerID,
			AssisterID: g.AssisterID,
			Minute:     g.Minute,
			IsHomeGoal: g.IsHomeGoal,
			ScorerName: s.ResolveName(matchdayID, g.ScorerID),
		}
		if g.AssisterID != nil {
			detail.AssisterName = s.ResolveName(matchdayID, *g.AssisterID)
		}
		details = append(details, detail)
	}
	return details, nil
}

// AddCard records a card. A fixture-scoped entry is always written when a
// fixture is given; the matchday-cumulative counts that feed the rating
// deduction are incremented for real players only.
func (s *LedgerService) AddCard(matchdayID uint, req models.AddCardRequest) error {
	if req.CardType != models.CardYellow && req.CardType != models.CardRed {
		return apperrors.Validation("card_type must be yellow or red")
	}
	ref, ok := models.DecodeRef(matchdayID, req.PlayerID)
	if !ok {
		return apperrors.Validation("unknown player reference %d", req.PlayerID)
	}
	if ref.Kind == models.RefReal {
		var count int64
		if err := s.db.Model(&models.SquadMember{}).
			Where("matchday_id = ? AND player_id = ?", matchdayID, ref.PlayerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.Validation("player %d is not in any squad for this matchday", ref.PlayerID)
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if req.FixtureID != nil {
			var fixture models.Fixture
			err := tx.Where("id = ? AND matchday_id = ?", *req.FixtureID, matchdayID).First(&fixture).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("fixture %d not found", *req.FixtureID)
			}
			if err != nil {
				return err
			}
			entry := models.FixtureCard{
				FixtureID: fixture.ID,
				PlayerID:  req.PlayerID,
				CardType:  req.CardType,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		if ref.Kind != models.RefReal {
			return nil // guest cards are display-only
		}

		var counts models.MatchdayCard
		err := tx.Where("matchday_id = ? AND player_id = ?", matchdayID, ref.PlayerID).First(&counts).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counts = models.MatchdayCard{MatchdayID: matchdayID, PlayerID: ref.PlayerID}
			if err := tx.Create(&counts).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if req.CardType == models.CardYellow {
			counts.YellowCount++
		} else {
			counts.RedCount++
		}
		return tx.Save(&counts).Error
	})
}

// MatchdayCards lists cumulative counts per squad member, including zero
// rows for members without cards.
func (s *LedgerService) MatchdayCards(matchdayID uint) ([]models.CardCount, error) {
	var cards []models.MatchdayCard
	if err := s.db.Where("matchday_id = ?", matchdayID).Find(&cards).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]models.MatchdayCard, len(cards))
	for _, c := range cards {
		counts[c.PlayerID] = c
	}

	var members []models.SquadMember
	if err := s.db.Where("matchday_id = ?", matchdayID).Find(&members).Error; err != nil {
		return nil, err
	}

	out := make([]models.CardCount, 0, len(members))
	for _, m := range members {
		row := models.CardCount{
			PlayerID:   m.PlayerID,
			BallerName: s.directory.PlayerName(m.PlayerID),
		}
		if c, ok := counts[m.PlayerID]; ok {
			row.YellowCount = c.YellowCount
			row.RedCount = c.RedCount
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BallerName < out[j].BallerName })
	return out, nil
}

// FixtureCards lists the per-fixture audit entries with resolved names.
func (s *LedgerService) FixtureCards(matchdayID, fixtureID uint) ([]models.FixtureCardDetail, error) {
	var cards []models.FixtureCard
	if err := s.db.Where("fixture_id = ?", fixtureID).Order("id").Find(&cards).Error; err != nil {
		return nil, err
	}
	out := make([]models.FixtureCardDetail, 0, len(cards))
	for _, c := range cards {
		out = append(out, models.FixtureCardDetail{
			PlayerID:   c.PlayerID,
			CardType:   c.CardType,
			BallerName: s.ResolveName(matchdayID, c.PlayerID),
		})
	}
	return out, nil
}

// SetAttendance stores an explicit present/absent override for a squad
// member. No row means present.
func (s *LedgerService) SetAttendance(matchdayID, playerID uint, present bool) error {
	var count int64
	if err := s.db.Model(&models.SquadMember{}).
		Where("matchday_id = ? AND player_id = ?", matchdayID, playerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.Validation("player %d is not in any squad for this matchday", playerID)
	}

	var record models.Attendance
	err := s.db.Where("matchday_id = ? AND player_id = ?", matchdayID, playerID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.Attendance{MatchdayID: matchdayID, PlayerID: playerID, Present: present}
		return s.db.Create(&record).Error
	}
	if err != nil {
		return err
	}
	record.Present = present
	return s.db.Save(&record).Error
}

// SetAttendanceBulk applies many overrides at once, skipping guests and
// players outside the matchday's squads. Returns the number applied.
func (s *LedgerService) SetAttendanceBulk(matchdayID uint, updates []models.SetAttendanceRequest) (int, error) {
	applied := 0
	for _, u := range updates {
		if u.Present == nil {
			continue
		}
		if err := s.SetAttendance(matchdayID, u.PlayerID, *u.Present); err != nil {
			if apperrors.IsKind(err, apperrors.KindValidation) {
				continue
			}
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// Attendance lists every squad member with their effective present flag.
func (s *LedgerService) Attendance(matchdayID uint) ([]models.AttendanceEntry, error) {
	var squads []models.Squad
	if err := s.db.Where("matchday_id = ?", matchdayID).Order("squad_index").Find(&squads).Error; err != nil {
		return nil, err
	}
	overrides, err := attendanceOverrides(s.db, matchdayID)
	if err != nil {
		return nil, err
	}

	var entries []models.AttendanceEntry
	for _, squad := range squads {
		var members []models.SquadMember
		if err := s.db.Where("matchday_id = ? AND squad_id = ?", matchdayID, squad.ID).Find(&members).Error; err != nil {
			return nil, err
		}
		for _, m := range members {
			present, overridden := overrides[m.PlayerID]
			if !overridden {
				present = true
			}
			entries = append(entries, models.AttendanceEntry{
				SquadID:    squad.ID,
				SquadIndex: squad.SquadIndex,
				PlayerID:   m.PlayerID,
				BallerName: s.directory.PlayerName(m.PlayerID),
				Present:    present,
			})
		}
	}
	return entries, nil
}

// AttendanceSummary splits squad members into present and absent lists.
func (s *LedgerService) AttendanceSummary(matchdayID uint) (*models.AttendanceSummary, error) {
	entries, err := s.Attendance(matchdayID)
	if err != nil {
		return nil, err
	}
	summary := &models.AttendanceSummary{Present: []models.VoterInfo{}, Absent: []models.VoterInfo{}}
	for _, e := range entries {
		info := models.VoterInfo{PlayerID: e.PlayerID, BallerName: e.BallerName}
		if e.Present {
			summary.Present = append(summary.Present, info)
		} else {
			summary.Absent = append(summary.Absent, info)
		}
	}
	return summary, nil
}

// IsPresent reports a player's effective attendance; guests are always
// present.
func (s *LedgerService) IsPresent(matchdayID uint, ref models.PlayerRef) (bool, error) {
	if ref.IsGuest() {
		return true, nil
	}
	var record models.Attendance
	err := s.db.Where("matchday_id = ? AND player_id = ?", matchdayID, ref.PlayerID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return record.Present, nil
}

// ResolveName renders a stored scorer/assister id for display.
func (s *LedgerService) ResolveName(matchdayID uint, stored int64) string {
	ref, ok := models.DecodeRef(matchdayID, stored)
	if !ok {
		return fmt.Sprintf("%d", stored)
	}
	switch ref.Kind {
	case models.RefGuest:
		var squad models.Squad
		if err := s.db.Where("id = ? AND matchday_id = ?", ref.SquadID, matchdayID).First(&squad).Error; err == nil {
			return guestDisplayName(squad.SquadIndex)
		}
		return "Guest"
	case models.RefLegacyGuest:
		return "Guest"
	default:
		return s.directory.PlayerName(ref.PlayerID)
	}
}

// TopScorers tallies the matchday's goals per resolved display name.
func (s *LedgerService) TopScorers(matchdayID uint) ([]models.ScorerCount, []models.AssistCount, error) {
	var goals []models.Goal
	err := s.db.Joins("JOIN fixtures ON fixtures.id = fixture_goals.fixture_id").
		Where("fixtures.matchday_id = ?", matchdayID).
		Find(&goals).Error
	if err != nil {
		return nil, nil, err
	}

	scorerCounts := map[string]int{}
	assistCounts := map[string]int{}
	for _, g := range goals {
		scorerCounts[s.ResolveName(matchdayID, g.ScorerID)]++
		if g.AssisterID != nil {
			assistCounts[s.ResolveName(matchdayID, *g.AssisterID)]++
		}
	}

	scorers := make([]models.ScorerCount, 0, len(scorerCounts))
	for name, n := range scorerCounts {
		scorers = append(scorers, models.ScorerCount{BallerName: name, Goals: n})
	}
	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].Goals != scorers[j].Goals {
			return scorers[i].Goals > scorers[j].Goals
		}
		return scorers[i].BallerName < scorers[j].BallerName
	})

	assists := make([]models.AssistCount, 0, len(assistCounts))
	for name, n := range assistCounts {
		assists = append(assists, models.AssistCount{BallerName: name, Assists: n})
	}
	sort.Slice(assists, func(i, j int) bool {
		if assists[i].Assists != assists[j].Assists {
			return assists[i].Assists > assists[j].Assists
		}
		return assists[i].BallerName < assists[j].BallerName
	})
	return scorers, assists, nil
}

func guestDisplayName(squadIndex int) string {
	return fmt.Sprintf("Guest (Squad %d)", squadIndex)
}

// attendanceOverrides returns the explicit attendance rows of a matchday as
// player id -> present.
func attendanceOverrides(db *gorm.DB, matchdayID uint) (map[uint]bool, error) {
	var records []models.Attendance
	if err := db.Where("matchday_id = ?", matchdayID).Find(&records).Error; err != nil {
		return nil, err
	}
	overrides := make(map[uint]bool, len(records))
	for _, r := range records {
		overrides[r.PlayerID] = r.Present
	}
	return overrides, nil
}
