package services

import (
	"testing"

	"core/apperrors"
	"core/models"
)

func TestSquadGenerationPartitionsVoters(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(12)
	matchday := env.approvedMatchday(t, playerIDs(12))

	var squads []models.Squad
	if err := env.db.Where("matchday_id = ?", matchday.ID).Order("squad_index").Find(&squads).Error; err != nil {
		t.Fatalf("load squads: %v", err)
	}
	if len(squads) != 3 {
		t.Fatalf("12 voters formed %d squads, want 3", len(squads))
	}

	sizes := []int{}
	seen := map[uint]bool{}
	for _, squad := range squads {
		var members []models.SquadMember
		if err := env.db.Where("squad_id = ?", squad.ID).Find(&members).Error; err != nil {
			t.Fatalf("load members: %v", err)
		}
		sizes = append(sizes, len(members))
		for _, m := range members {
			if seen[m.PlayerID] {
				t.Errorf("player %d assigned twice", m.PlayerID)
			}
			seen[m.PlayerID] = true
		}
	}
	if sizes[0] != 5 || sizes[1] != 5 || sizes[2] != 2 {
		t.Errorf("squad sizes = %v, want [5 5 2]", sizes)
	}
	if len(seen) != 12 {
		t.Errorf("assigned %d players, want 12", len(seen))
	}
}

func TestSquadGenerationIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(6)
	matchday := env.approvedMatchday(t, playerIDs(6))

	if err := env.squads.Generate(matchday.ID); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	var count int64
	env.db.Model(&models.SquadMember{}).Where("matchday_id = ?", matchday.ID).Count(&count)
	if count != 6 {
		t.Errorf("memberships after repeat generate = %d, want 6", count)
	}
}

func TestRegenerateLeavesNoOrphans(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))

	var oldSquads []models.Squad
	env.db.Where("matchday_id = ?", matchday.ID).Find(&oldSquads)

	if err := env.squads.Regenerate(matchday.ID, false); err != nil {
		t.Fatalf("regenerate: %v", err)
	}

	for _, old := range oldSquads {
		var count int64
		env.db.Model(&models.SquadMember{}).Where("squad_id = ?", old.ID).Count(&count)
		if count != 0 {
			t.Errorf("%d memberships still reference deleted squad %d", count, old.ID)
		}
	}
	var members int64
	env.db.Model(&models.SquadMember{}).Where("matchday_id = ?", matchday.ID).Count(&members)
	if members != 10 {
		t.Errorf("memberships after regenerate = %d, want 10", members)
	}
}

func TestRegenerateRefusedWhilePublished(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(6)
	matchday := env.approvedMatchday(t, playerIDs(6))

	if err := env.matchdays.PublishSquads(matchday.ID); err != nil {
		t.Fatalf("publish squads: %v", err)
	}
	err := env.squads.Regenerate(matchday.ID, false)
	if !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Errorf("regenerate while published = %v, want invalid state", err)
	}
	if err := env.squads.Regenerate(matchday.ID, true); err != nil {
		t.Errorf("forced regenerate: %v", err)
	}
	// Force regeneration unpublishes.
	refreshed, _ := env.matchdays.Get(matchday.ID)
	if refreshed.SquadsPublished {
		t.Error("squads still published after forced regenerate")
	}
}

func TestRegenerateRefusedOnceFixturesExist(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))

	if _, err := env.fixtures.Generate(matchday.ID); err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	err := env.squads.Regenerate(matchday.ID, true)
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Errorf("regenerate with fixtures = %v, want conflict", err)
	}
}

func TestSquadsViewIncludesGuestSlot(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(6)
	matchday := env.approvedMatchday(t, playerIDs(6))

	views, err := env.squads.Squads(matchday.ID)
	if err != nil {
		t.Fatalf("squads view: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d squads, want 2", len(views))
	}
	for _, view := range views {
		last := view.Members[len(view.Members)-1]
		if !last.IsGuest {
			t.Errorf("squad %d has no guest slot", view.SquadIndex)
		}
		if last.PlayerID >= 0 {
			t.Errorf("guest id = %d, want negative", last.PlayerID)
		}
		want := models.GuestRef(matchday.ID, view.SquadID).StorageID()
		if last.PlayerID != want {
			t.Errorf("guest id = %d, want %d", last.PlayerID, want)
		}
	}
}

func TestSquadsViewCarriesJerseyNumbers(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(6)
	for i := range env.directory.approved {
		env.directory.approved[i].JerseyNumber = int(env.directory.approved[i].ID) + 10
	}
	matchday := env.approvedMatchday(t, playerIDs(6))

	views, err := env.squads.Squads(matchday.ID)
	if err != nil {
		t.Fatalf("squads view: %v", err)
	}
	for _, view := range views {
		for _, member := range view.Members {
			if member.IsGuest {
				if member.JerseyNumber != 0 {
					t.Errorf("guest slot has jersey number %d", member.JerseyNumber)
				}
				continue
			}
			want := int(member.PlayerID) + 10
			if member.JerseyNumber != want {
				t.Errorf("player %d jersey = %d, want %d", member.PlayerID, member.JerseyNumber, want)
			}
		}
	}
}

func TestMoveMemberGuards(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(10)
	matchday := env.approvedMatchday(t, playerIDs(10))

	squad1 := env.squadByIndex(t, matchday.ID, 1)
	squad2 := env.squadByIndex(t, matchday.ID, 2)
	mover := env.playerInSquad(t, matchday.ID, squad1.ID)

	if err := env.squads.MoveMember(matchday.ID, models.MoveMemberRequest{
		FromSquadID: squad1.ID, ToSquadID: squad2.ID, PlayerID: mover,
	}); err != nil {
		t.Fatalf("move member: %v", err)
	}
	moved, err := env.squads.SquadOf(matchday.ID, mover)
	if err != nil || moved == nil || moved.ID != squad2.ID {
		t.Errorf("player ended in squad %+v, want %d", moved, squad2.ID)
	}

	// Wrong source squad.
	err = env.squads.MoveMember(matchday.ID, models.MoveMemberRequest{
		FromSquadID: squad1.ID, ToSquadID: squad2.ID, PlayerID: mover,
	})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Errorf("move from wrong squad = %v, want not found", err)
	}

	// Published squads are frozen.
	if err := env.matchdays.PublishSquads(matchday.ID); err != nil {
		t.Fatalf("publish squads: %v", err)
	}
	err = env.squads.MoveMember(matchday.ID, models.MoveMemberRequest{
		FromSquadID: squad2.ID, ToSquadID: squad1.ID, PlayerID: mover,
	})
	if !apperrors.IsKind(err, apperrors.KindInvalidState) {
		t.Errorf("move while published = %v, want invalid state", err)
	}
}

func TestSquadOfUnassignedPlayer(t *testing.T) {
	env := newTestEnv(t)
	env.seedPlayers(6)
	matchday := env.approvedMatchday(t, playerIDs(5))

	squad, err := env.squads.SquadOf(matchday.ID, 6)
	if err != nil {
		t.Fatalf("squad of: %v", err)
	}
	if squad != nil {
		t.Errorf("non-voter has squad %+v, want nil", squad)
	}
}
