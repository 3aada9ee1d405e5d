package services

import (
	"testing"

	"core/models"
)

func TestRatingBeforeAnyCompletedFixture(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(11)
	matchday := env.approvedMatchday(t, playerIDs(10))

	player := env.playerInSquad(t, matchday.ID, env.squadByIndex(t, matchday.ID, 1).ID)
	rating, err := env.ratings.PlayerRating(matchday.ID, player)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating != 5.0 {
		t.Errorf("rating before fixtures = %v, want 5.0", rating)
	}

	// Unassigned players score zero.
	rating, err = env.ratings.PlayerRating(matchday.ID, 11)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating != 0 {
		t.Errorf("unassigned rating = %v, want 0", rating)
	}
}

func TestRatingAbsentPlayerIsZero(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))

	player := env.playerInSquad(t, matchday.ID, env.squadByIndex(t, matchday.ID, 1).ID)
	if err := env.ledger.SetAttendance(matchday.ID, player, false); err != nil {
		t.Fatalf("set absent: %v", err)
	}
	rating, err := env.ratings.PlayerRating(matchday.ID, player)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating != 0 {
		t.Errorf("absent rating = %v, want 0", rating)
	}
}

func TestRatingWorkedExample(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(20)
	matchday := env.approvedMatchday(t, playerIDs(20))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	squad1 := env.squadByIndex(t, matchday.ID, 1)
	player := env.playerInSquad(t, matchday.ID, squad1.ID)

	// Squad 1 wins all three of its fixtures, keeping a clean sheet in two.
	// The player scores a hat-trick and one assist and picks up a yellow.
	f12 := fixtureBetween(t, env, matchday.ID, 1, 2)
	if err := env.fixtures.Start(matchday.ID, f12.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	f12, _ = env.fixtures.Get(matchday.ID, f12.ID)
	assister := models.GuestRef(matchday.ID, squad1.ID).StorageID()
	for i := 0; i < 3; i++ {
		if _, err := env.ledger.AddGoal(matchday.ID, f12, models.AddGoalRequest{ScorerID: int64(player)}); err != nil {
			t.Fatalf("goal %d: %v", i, err)
		}
	}
	if _, err := env.ledger.AddGoal(matchday.ID, f12, models.AddGoalRequest{
		ScorerID: assister, AssisterID: ptrInt64(int64(player)),
	}); err != nil {
		t.Fatalf("assisted goal: %v", err)
	}
	if err := env.fixtures.End(matchday.ID, f12.ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	scoreFixture(t, env, matchday.ID, fixtureBetween(t, env, matchday.ID, 1, 3), 2, 0)
	scoreFixture(t, env, matchday.ID, fixtureBetween(t, env, matchday.ID, 1, 4), 2, 1)

	if err := env.ledger.AddCard(matchday.ID, models.AddCardRequest{
		PlayerID: int64(player), CardType: models.CardYellow,
	}); err != nil {
		t.Fatalf("yellow: %v", err)
	}

	// 5 base + 6 goals + 5 hat-trick + 1 assist + 5 first place
	// + 2 clean sheets - 5 yellow = 19.0
	rating, err := env.ratings.PlayerRating(matchday.ID, player)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating != 19.0 {
		t.Errorf("rating = %v, want 19.0", rating)
	}
}

func TestRatingRedCardPenalty(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	scoreFixture(t, env, matchday.ID, fixtureBetween(t, env, matchday.ID, 1, 2), 0, 1)

	squad1 := env.squadByIndex(t, matchday.ID, 1)
	player := env.playerInSquad(t, matchday.ID, squad1.ID)
	if err := env.ledger.AddCard(matchday.ID, models.AddCardRequest{
		PlayerID: int64(player), CardType: models.CardRed,
	}); err != nil {
		t.Fatalf("red card: %v", err)
	}

	// 5 base + 3 second place - 10 red = -2.0
	rating, err := env.ratings.PlayerRating(matchday.ID, player)
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating != -2.0 {
		t.Errorf("rating = %v, want -2.0", rating)
	}
}

func TestMatchdayRatingsSortedDescending(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	fixture := fixtureBetween(t, env, matchday.ID, 1, 2)
	if err := env.fixtures.Start(matchday.ID, fixture.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	fixture, _ = env.fixtures.Get(matchday.ID, fixture.ID)
	scorer := env.playerInSquad(t, matchday.ID, fixture.HomeSquadID)
	if _, err := env.ledger.AddGoal(matchday.ID, fixture, models.AddGoalRequest{ScorerID: int64(scorer)}); err != nil {
		t.Fatalf("goal: %v", err)
	}
	if err := env.fixtures.End(matchday.ID, fixture.ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	ratings, err := env.ratings.MatchdayRatings(matchday.ID)
	if err != nil {
		t.Fatalf("matchday ratings: %v", err)
	}
	if len(ratings) != 10 {
		t.Fatalf("ratings = %d entries, want 10", len(ratings))
	}
	if ratings[0].PlayerID != scorer {
		t.Errorf("top rating belongs to %d, want scorer %d", ratings[0].PlayerID, scorer)
	}
	for i := 1; i < len(ratings); i++ {
		if ratings[i].Rating > ratings[i-1].Rating {
			t.Errorf("ratings not descending at %d: %v after %v", i, ratings[i].Rating, ratings[i-1].Rating)
		}
		if ratings[i].Rating == ratings[i-1].Rating && ratings[i].BallerName < ratings[i-1].BallerName {
			t.Errorf("name tiebreak violated at %d", i)
		}
	}
}

func ptrInt64(v int64) *int64 { return &v }
