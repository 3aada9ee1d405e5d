package services

import (
	"testing"

	"core/models"
)

// scoreFixture completes a fixture at the given score by inserting goals for
// the squads' guest slots.
func scoreFixture(t *testing.T, env *testEnv, matchdayID uint, fixture *models.Fixture, home, away int) {
	t.Helper()
	if fixture.Status == models.FixturePending {
		if err := env.fixtures.Start(matchdayID, fixture.ID); err != nil {
			t.Fatalf("start fixture %d: %v", fixture.ID, err)
		}
		started, err := env.fixtures.Get(matchdayID, fixture.ID)
		if err != nil {
			t.Fatalf("reload fixture %d: %v", fixture.ID, err)
		}
		fixture = started
	}
	homeGuest := models.GuestRef(matchdayID, fixture.HomeSquadID).StorageID()
	awayGuest := models.GuestRef(matchdayID, fixture.AwaySquadID).StorageID()
	for i := 0; i < home; i++ {
		if _, err := env.ledger.AddGoal(matchdayID, fixture, models.AddGoalRequest{ScorerID: homeGuest}); err != nil {
			t.Fatalf("home goal: %v", err)
		}
	}
	for i := 0; i < away; i++ {
		if _, err := env.ledger.AddGoal(matchdayID, fixture, models.AddGoalRequest{ScorerID: awayGuest}); err != nil {
			t.Fatalf("away goal: %v", err)
		}
	}
	if err := env.fixtures.End(matchdayID, fixture.ID); err != nil {
		t.Fatalf("end fixture %d: %v", fixture.ID, err)
	}
}

// fixtureBetween finds the fixture pairing the two squad indexes.
func fixtureBetween(t *testing.T, env *testEnv, matchdayID uint, indexA, indexB int) *models.Fixture {
	t.Helper()
	views, err := env.fixtures.List(matchdayID)
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	for _, v := range views {
		if v.HomeSquadIndex == indexA && v.AwaySquadIndex == indexB {
			fixture := v.Fixture
			return &fixture
		}
	}
	t.Fatalf("no fixture between squads %d and %d", indexA, indexB)
	return nil
}

func TestTableSortsByPointsThenGoalDifference(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(15)
	matchday := env.approvedMatchday(t, playerIDs(15))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Squad 1 beats squad 2 heavily, squad 3 beats squad 2 narrowly,
	// squads 1 and 3 draw. Points: S1 4, S3 4, S2 0; GD: S1 +3, S3 +1.
	scoreFixture(t, env, matchday.ID, fixtureBetween(t, env, matchday.ID, 1, 2), 3, 0)
	scoreFixture(t, env, matchday.ID, fixtureBetween(t, env, matchday.ID, 2, 3), 0, 1)
	scoreFixture(t, env, matchday.ID, fixtureBetween(t, env, matchday.ID, 1, 3), 1, 1)

	rows, err := env.standings.Table(matchday.ID)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	gotOrder := []int{rows[0].SquadIndex, rows[1].SquadIndex, rows[2].SquadIndex}
	if gotOrder[0] != 1 || gotOrder[1] != 3 || gotOrder[2] != 2 {
		t.Errorf("table order = %v, want [1 3 2]", gotOrder)
	}
	if rows[0].Points != 4 || rows[1].Points != 4 || rows[2].Points != 0 {
		t.Errorf("points = %d,%d,%d, want 4,4,0", rows[0].Points, rows[1].Points, rows[2].Points)
	}
	if rows[0].GoalDifference() != 3 {
		t.Errorf("leader GD = %d, want 3", rows[0].GoalDifference())
	}
	if rows[2].Played != 2 || rows[2].Lost != 2 {
		t.Errorf("squad 2 record = %+v, want played 2 lost 2", rows[2])
	}
}

func TestTableTieKeepsSquadIndexOrder(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	// A draw leaves both squads on equal points and goal difference.
	scoreFixture(t, env, matchday.ID, fixtureBetween(t, env, matchday.ID, 1, 2), 2, 2)

	rows, err := env.standings.Table(matchday.ID)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if rows[0].SquadIndex != 1 || rows[1].SquadIndex != 2 {
		t.Errorf("tied table order = [%d %d], want [1 2]", rows[0].SquadIndex, rows[1].SquadIndex)
	}
}

func TestTableIgnoresUnfinishedFixtures(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	views, _ := env.fixtures.List(matchday.ID)
	if err := env.fixtures.Start(matchday.ID, views[0].ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	fixture, _ := env.fixtures.Get(matchday.ID, views[0].ID)
	guest := models.GuestRef(matchday.ID, fixture.HomeSquadID).StorageID()
	if _, err := env.ledger.AddGoal(matchday.ID, fixture, models.AddGoalRequest{ScorerID: guest}); err != nil {
		t.Fatalf("goal: %v", err)
	}

	rows, err := env.standings.Table(matchday.ID)
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	for _, row := range rows {
		if row.Played != 0 || row.Points != 0 {
			t.Errorf("in-progress fixture counted: %+v", row)
		}
	}
}
