package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"core"
	coreModels "core/models"
	"membership"
	membershipModels "membership/models"

	"eko-football-api/directory"

	"gorm.io/gorm"
)

type Fixtures struct {
	db         *gorm.DB
	membership *membership.Module
	core       *core.Module
}

func NewFixtures(db *gorm.DB) *Fixtures {
	membershipModule := membership.NewModule(db)
	dir := directory.New(membershipModule.PlayerService, membershipModule.DuesService)
	// Fixed seed so repeated runs produce the same squads.
	rng := rand.New(rand.NewSource(1)) // #nosec G404
	coreModule := core.NewModule(db, dir, rng)

	return &Fixtures{
		db:         db,
		membership: membershipModule,
		core:       coreModule,
	}
}

// GenerateTestData seeds 21 approved members with dues and one published
// demo matchday with a played opening fixture.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	players, err := f.generateMembers()
	if err != nil {
		return fmt.Errorf("failed to generate members: %w", err)
	}

	matchday, err := f.generateMatchday(players)
	if err != nil {
		return fmt.Errorf("failed to generate matchday: %w", err)
	}

	if err := f.playOpeningFixture(matchday); err != nil {
		return fmt.Errorf("failed to play opening fixture: %w", err)
	}

	log.Printf("Fixtures generated successfully! %d members, matchday %d", len(players), matchday)
	return nil
}

func (f *Fixtures) generateMembers() ([]membershipModels.Player, error) {
	ballerNames := []string{
		"Okocha", "Kanu", "Finidi", "Amokachi", "Yekini",
		"Oliseh", "Babayaro", "West", "Ikpeba", "Lawal",
		"Udeze", "Aghahowa", "Utaka", "Martins", "Yobo",
		"Enyeama", "Mikel", "Odemwingie", "Osaze", "Ameobi",
		"Moses",
	}

	now := time.Now()
	var players []membershipModels.Player

	for i, name := range ballerNames {
		player, err := f.membership.PlayerService.Signup(membershipModels.SignupRequest{
			FirstName:     name,
			Surname:       "Demo",
			BallerName:    name,
			JerseyNumber:  i + 1,
			Email:         fmt.Sprintf("%s@eko-football.test", name),
			WhatsappPhone: fmt.Sprintf("+23480000000%02d", i+1),
		})
		if err != nil {
			return nil, err
		}

		approved, err := f.membership.PlayerService.Approve(player.ID)
		if err != nil {
			return nil, err
		}

		// Most members paid up, a couple on waiver, one owing.
		status := membershipModels.DuesPaid
		var waiverDueBy *string
		switch {
		case i == len(ballerNames)-1:
			status = membershipModels.DuesOwing
		case i >= len(ballerNames)-3:
			status = membershipModels.DuesWaiver
			date := now.AddDate(0, 0, 14).Format("2006-01-02")
			waiverDueBy = &date
		}
		if err := f.membership.DuesService.SetDues(approved.ID, membershipModels.SetDuesRequest{
			Year:        now.Year(),
			Quarter:     (int(now.Month())-1)/3 + 1,
			Status:      status,
			WaiverDueBy: waiverDueBy,
		}); err != nil {
			return nil, err
		}

		players = append(players, *approved)
		log.Printf("Created member: %s (ID: %d, dues: %s)", name, approved.ID, status)
	}

	return players, nil
}

func (f *Fixtures) generateMatchday(players []membershipModels.Player) (uint, error) {
	// Next Saturday.
	matchDate := time.Now()
	for matchDate.Weekday() != time.Saturday {
		matchDate = matchDate.AddDate(0, 0, 1)
	}

	matchday, err := f.core.MatchdayService.Create(matchDate)
	if err != nil {
		return 0, err
	}

	for _, player := range players {
		if err := f.core.MatchdayService.AddVote(matchday.ID, player.ID); err != nil {
			return 0, err
		}
	}

	if err := f.core.MatchdayService.CloseVoting(matchday.ID); err != nil {
		return 0, err
	}
	if err := f.core.MatchdayService.Approve(matchday.ID); err != nil {
		return 0, err
	}
	if err := f.core.MatchdayService.PublishSquads(matchday.ID); err != nil {
		return 0, err
	}
	if _, err := f.core.FixtureService.Generate(matchday.ID); err != nil {
		return 0, err
	}
	if err := f.core.MatchdayService.PublishFixtures(matchday.ID); err != nil {
		return 0, err
	}

	log.Printf("Created matchday %d for %s with %d voters", matchday.ID, matchDate.Format("2006-01-02"), len(players))
	return matchday.ID, nil
}

// playOpeningFixture runs the first fixture to completion with a 2-1 score
// so the demo environment shows a live table and ratings.
func (f *Fixtures) playOpeningFixture(matchdayID uint) error {
	views, err := f.core.FixtureService.List(matchdayID)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		return fmt.Errorf("no fixtures generated for matchday %d", matchdayID)
	}

	fixtureID := views[0].ID
	if err := f.core.FixtureService.Start(matchdayID, fixtureID); err != nil {
		return err
	}
	fixture, err := f.core.FixtureService.Get(matchdayID, fixtureID)
	if err != nil {
		return err
	}

	scorers, err := f.core.LedgerService.EligibleScorers(matchdayID, fixture)
	if err != nil {
		return err
	}
	var real []int64
	var guest int64
	for _, s := range scorers {
		if s.IsGuest {
			guest = s.ID
			continue
		}
		real = append(real, s.ID)
	}
	if len(real) < 2 {
		return fmt.Errorf("not enough eligible scorers for fixture %d", fixtureID)
	}

	goals := []struct {
		scorer   int64
		assister *int64
		minute   int
	}{
		{real[0], &real[1], 12},
		{real[1], nil, 34},
		{guest, nil, 51},
	}
	for _, g := range goals {
		minute := g.minute
		req := coreModels.AddGoalRequest{
			ScorerID:   g.scorer,
			AssisterID: g.assister,
			Minute:     &minute,
		}
		if _, err := f.core.LedgerService.AddGoal(matchdayID, fixture, req); err != nil {
			return err
		}
	}

	if err := f.core.FixtureService.End(matchdayID, fixtureID); err != nil {
		return err
	}

	log.Printf("Played opening fixture %d of matchday %d", fixtureID, matchdayID)
	return nil
}

// ClearAllData removes all seeded rows and resets the id sequences.
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	// Delete in dependency order.
	tables := []string{
		"fixture_goals",
		"fixture_cards",
		"matchday_cards",
		"matchday_attendance",
		"fixtures",
		"squad_members",
		"squads",
		"matchday_votes",
		"matchdays",
		"payment_evidence",
		"dues",
		"players",
	}

	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	sequences := []string{
		"ALTER SEQUENCE players_id_seq RESTART WITH 1",
		"ALTER SEQUENCE dues_id_seq RESTART WITH 1",
		"ALTER SEQUENCE payment_evidence_id_seq RESTART WITH 1",
		"ALTER SEQUENCE matchdays_id_seq RESTART WITH 1",
		"ALTER SEQUENCE matchday_votes_id_seq RESTART WITH 1",
		"ALTER SEQUENCE squads_id_seq RESTART WITH 1",
		"ALTER SEQUENCE squad_members_id_seq RESTART WITH 1",
		"ALTER SEQUENCE fixtures_id_seq RESTART WITH 1",
		"ALTER SEQUENCE fixture_goals_id_seq RESTART WITH 1",
		"ALTER SEQUENCE fixture_cards_id_seq RESTART WITH 1",
		"ALTER SEQUENCE matchday_cards_id_seq RESTART WITH 1",
		"ALTER SEQUENCE matchday_attendance_id_seq RESTART WITH 1",
	}
	for _, seq := range sequences {
		f.db.Exec(seq)
	}

	log.Println("All fixture data cleared!")
	return nil
}
