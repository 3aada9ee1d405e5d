package services

import (
	"testing"
	"time"

	"core/apperrors"
	"core/models"
)

func TestCreateMatchdayOpensVoting(t *testing.T) {
	env := newTestEnv(t)
	matchday, err := env.matchdays.Create(testDate())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if matchday.Status != models.StatusVotingOpen {
		t.Errorf("status = %q, want voting_open", matchday.Status)
	}
	wantClose := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	if !matchday.VotingClosesAt.Equal(wantClose) {
		t.Errorf("voting closes at %v, want %v", matchday.VotingClosesAt, wantClose)
	}
}

func TestCastVoteChecksEligibility(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(3)
	env.directory.ineligible[2] = Eligibility{Suspended: true, DuesStatus: DuesPaid}
	env.directory.ineligible[3] = Eligibility{DuesStatus: DuesOwing}
	matchday, _ := env.matchdays.Create(testDate())

	if err := env.matchdays.CastVote(matchday.ID, 1); err != nil {
		t.Errorf("eligible vote: %v", err)
	}
	if err := env.matchdays.CastVote(matchday.ID, 2); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("suspended vote = %v, want validation", err)
	}
	if err := env.matchdays.CastVote(matchday.ID, 3); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("owing vote = %v, want validation", err)
	}
}

func TestCastVoteExpiredWaiverCountsAsOwing(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(2)
	past := time.Now().AddDate(0, 0, -7)
	future := time.Now().AddDate(0, 0, 7)
	env.directory.ineligible[1] = Eligibility{DuesStatus: DuesWaiver, WaiverDueBy: &past}
	env.directory.ineligible[2] = Eligibility{DuesStatus: DuesWaiver, WaiverDueBy: &future}
	matchday, _ := env.matchdays.Create(testDate())

	if err := env.matchdays.CastVote(matchday.ID, 1); !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("expired waiver vote = %v, want validation", err)
	}
	if err := env.matchdays.CastVote(matchday.ID, 2); err != nil {
		t.Errorf("active waiver vote: %v", err)
	}
}

func TestDuplicateVoteConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(1)
	matchday, _ := env.matchdays.Create(testDate())

	if err := env.matchdays.CastVote(matchday.ID, 1); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if err := env.matchdays.CastVote(matchday.ID, 1); !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Errorf("duplicate vote = %v, want conflict", err)
	}
}

func TestAdminVoteSkipsEligibility(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(1)
	env.directory.ineligible[1] = Eligibility{DuesStatus: DuesOwing}
	matchday, _ := env.matchdays.Create(testDate())

	if err := env.matchdays.AddVote(matchday.ID, 1); err != nil {
		t.Errorf("admin vote for owing player: %v", err)
	}
}

func TestVoteAllEligible(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(5)
	env.directory.ineligible[4] = Eligibility{Suspended: true, DuesStatus: DuesPaid}
	matchday, _ := env.matchdays.Create(testDate())

	// Player 1 voted already; 4 is suspended.
	if err := env.matchdays.CastVote(matchday.ID, 1); err != nil {
		t.Fatalf("vote: %v", err)
	}
	added, err := env.matchdays.VoteAllEligible(matchday.ID)
	if err != nil {
		t.Fatalf("vote all: %v", err)
	}
	if added != 3 {
		t.Errorf("added = %d, want 3", added)
	}
	voters, _ := env.matchdays.VotedPlayers(matchday.ID)
	if len(voters) != 4 {
		t.Errorf("voters = %d, want 4", len(voters))
	}
}

func TestRemoveVoteOnlyWhileOpen(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(5)
	matchday, _ := env.matchdays.Create(testDate())
	for _, id := range playerIDs(5) {
		if err := env.matchdays.CastVote(matchday.ID, id); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	if err := env.matchdays.RemoveVote(matchday.ID, 5); err != nil {
		t.Fatalf("remove vote: %v", err)
	}
	if err := env.matchdays.CloseVoting(matchday.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := env.matchdays.RemoveVote(matchday.ID, 1); !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Errorf("remove after close = %v, want invalid state", err)
	}
}

func TestApproveFormsSquads(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(7)
	matchday := env.approvedMatchday(t, playerIDs(7))

	refreshed, _ := env.matchdays.Get(matchday.ID)
	if refreshed.Status != models.StatusApproved || refreshed.ReviewedAt == nil {
		t.Errorf("after approve: status=%q reviewed_at=%v", refreshed.Status, refreshed.ReviewedAt)
	}
	var squads int64
	env.db.Model(&models.Squad{}).Where("matchday_id = ?", matchday.ID).Count(&squads)
	if squads != 2 {
		t.Errorf("squads after approve = %d, want 2", squads)
	}
}

func TestApproveRequiresClosedVoting(t *testing.T) {
	env := newTestEnv(t)
	matchday, _ := env.matchdays.Create(testDate())
	if err := env.matchdays.Approve(matchday.ID); !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Errorf("approve open matchday = %v, want invalid state", err)
	}
}

func TestReopenVotingBlockedAfterCompletedFixture(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	views, _ := env.fixtures.List(matchday.ID)
	if err := env.fixtures.Start(matchday.ID, views[0].ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := env.fixtures.End(matchday.ID, views[0].ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	// Push the matchday back to review state to exercise the guard.
	env.db.Model(&models.Matchday{}).Where("id = ?", matchday.ID).
		Update("status", models.StatusClosedPendingReview)
	err := env.matchdays.ReopenVoting(matchday.ID)
	if !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Errorf("reopen voting after completed fixture = %v, want invalid state", err)
	}
}

func TestPublishGuards(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(4)
	matchday := env.approvedMatchday(t, playerIDs(4))

	// One squad only, no fixtures.
	if err := env.matchdays.PublishFixtures(matchday.ID); !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Errorf("publish without fixtures = %v, want invalid state", err)
	}
	if err := env.matchdays.PublishSquads(matchday.ID); err != nil {
		t.Errorf("publish squads: %v", err)
	}
}

func TestEndForceCompletesFixtures(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(12)
	matchday := env.approvedMatchday(t, playerIDs(12))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	views, _ := env.fixtures.List(matchday.ID)
	if err := env.fixtures.Start(matchday.ID, views[0].ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := env.matchdays.End(matchday.ID); err != nil {
		t.Fatalf("end matchday: %v", err)
	}
	fixture, _ := env.fixtures.Get(matchday.ID, views[0].ID)
	if fixture.Status != models.FixtureCompleted || fixture.EndedAt == nil {
		t.Errorf("in-progress fixture after end: status=%q ended_at=%v", fixture.Status, fixture.EndedAt)
	}
	// Pending fixtures stay pending.
	fixture, _ = env.fixtures.Get(matchday.ID, views[1].ID)
	if fixture.Status != models.FixturePending {
		t.Errorf("pending fixture after end: status=%q", fixture.Status)
	}

	if err := env.matchdays.End(matchday.ID); err != nil {
		t.Errorf("ending an ended matchday must be a no-op, got %v", err)
	}
	if err := env.matchdays.Reopen(matchday.ID); err != nil {
		t.Errorf("reopen: %v", err)
	}
}

func TestEndIgnoresVotingAndApprovalState(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(3)
	matchday, _ := env.matchdays.Create(testDate())

	if err := env.matchdays.End(matchday.ID); err != nil {
		t.Fatalf("end while voting open: %v", err)
	}
	got, _ := env.matchdays.Get(matchday.ID)
	if !got.Ended || got.Status != models.StatusVotingOpen {
		t.Errorf("after end: ended=%v status=%q, want ended with status untouched", got.Ended, got.Status)
	}

	rejected, _ := env.matchdays.Create(testDate().AddDate(0, 0, 7))
	if err := env.matchdays.CloseVoting(rejected.ID); err != nil {
		t.Fatalf("close voting: %v", err)
	}
	if err := env.matchdays.Reject(rejected.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := env.matchdays.End(rejected.ID); err != nil {
		t.Errorf("end rejected matchday: %v", err)
	}
}

func TestDeleteMatchdayCascades(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))
	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	views, _ := env.fixtures.List(matchday.ID)
	fixtureID := views[0].ID
	if err := env.fixtures.Start(matchday.ID, fixtureID); err != nil {
		t.Fatalf("start: %v", err)
	}
	fixture, _ := env.fixtures.Get(matchday.ID, fixtureID)
	scorer := env.playerInSquad(t, matchday.ID, fixture.HomeSquadID)
	if _, err := env.ledger.AddGoal(matchday.ID, fixture, models.AddGoalRequest{ScorerID: int64(scorer)}); err != nil {
		t.Fatalf("add goal: %v", err)
	}
	if err := env.ledger.AddCard(matchday.ID, models.AddCardRequest{
		PlayerID: int64(scorer), CardType: models.CardYellow, FixtureID: &fixtureID,
	}); err != nil {
		t.Fatalf("add card: %v", err)
	}
	if err := env.ledger.SetAttendance(matchday.ID, scorer, false); err != nil {
		t.Fatalf("set attendance: %v", err)
	}

	if err := env.matchdays.Delete(matchday.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	remaining := func(label string, model interface{}, column string, value uint) {
		var n int64
		env.db.Model(model).Where(column+" = ?", value).Count(&n)
		if n != 0 {
			t.Errorf("%s left behind after delete: %d", label, n)
		}
	}
	remaining("votes", &models.Vote{}, "matchday_id", matchday.ID)
	remaining("squads", &models.Squad{}, "matchday_id", matchday.ID)
	remaining("members", &models.SquadMember{}, "matchday_id", matchday.ID)
	remaining("fixtures", &models.Fixture{}, "matchday_id", matchday.ID)
	remaining("goals", &models.Goal{}, "fixture_id", fixtureID)
	remaining("fixture cards", &models.FixtureCard{}, "fixture_id", fixtureID)
	remaining("matchday cards", &models.MatchdayCard{}, "matchday_id", matchday.ID)
	remaining("attendance", &models.Attendance{}, "matchday_id", matchday.ID)

	if _, err := env.matchdays.Get(matchday.ID); !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("deleted matchday still loads: %v", err)
	}
}
