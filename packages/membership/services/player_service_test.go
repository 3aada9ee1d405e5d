package services

import (
	"errors"
	"regexp"
	"testing"

	"membership/models"
)

func TestSignupRejectsDuplicateBallerName(t *testing.T) {
	db := setupTestDB(t)
	players := NewPlayerService(db, &stubEmail{})

	signupPlayer(t, players, "striker")
	_, err := players.Signup(models.SignupRequest{
		FirstName:     "Another",
		Surname:       "Person",
		BallerName:    "striker",
		JerseyNumber:  9,
		Email:         "other@example.com",
		WhatsappPhone: "+2348000000001",
	})
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("duplicate signup error = %v, want ErrNameTaken", err)
	}
}

func TestApproveGeneratesCredentialsAndMails(t *testing.T) {
	db := setupTestDB(t)
	email := &stubEmail{}
	players := NewPlayerService(db, email)

	player := signupPlayer(t, players, "keeper")
	approved, err := players.Approve(player.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	var stored models.Player
	if err := db.First(&stored, approved.ID).Error; err != nil {
		t.Fatalf("reload player: %v", err)
	}
	if stored.Status != models.PlayerApproved {
		t.Fatalf("status = %q, want approved", stored.Status)
	}
	if stored.ApprovedAt == nil {
		t.Fatal("approved_at not stamped")
	}
	format := regexp.MustCompile(`^Eko[a-zA-Z2-9]{4}-\d{4}$`)
	if !format.MatchString(stored.PasswordDisplay) {
		t.Fatalf("password display %q does not match format", stored.PasswordDisplay)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == stored.PasswordDisplay {
		t.Fatal("password hash missing or stored in clear")
	}
	if len(email.sent) != 1 || email.sent[0] != "keeper@example.com" {
		t.Fatalf("credentials mail sent to %v", email.sent)
	}
}

func TestApproveRequiresPendingStatus(t *testing.T) {
	db := setupTestDB(t)
	players := NewPlayerService(db, &stubEmail{})

	player := approvedPlayer(t, players, "winger")
	if _, err := players.Approve(player.ID); !errors.Is(err, ErrWrongStatus) {
		t.Fatalf("second approve error = %v, want ErrWrongStatus", err)
	}
	if _, err := players.Approve(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestRejectOnlyWorksOnPending(t *testing.T) {
	db := setupTestDB(t)
	players := NewPlayerService(db, &stubEmail{})

	player := signupPlayer(t, players, "fullback")
	if err := players.Reject(player.ID); err != nil {
		t.Fatalf("reject pending: %v", err)
	}
	if err := players.Reject(player.ID); !errors.Is(err, ErrWrongStatus) {
		t.Fatalf("second reject error = %v, want ErrWrongStatus", err)
	}
}

func TestSuspendAndActivate(t *testing.T) {
	db := setupTestDB(t)
	players := NewPlayerService(db, &stubEmail{})

	player := approvedPlayer(t, players, "captain")
	if err := players.Suspend(player.ID); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	account, err := players.FindApprovedPlayer("captain")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if account == nil || !account.Suspended {
		t.Fatal("suspension not visible on credential lookup")
	}

	if err := players.Activate(player.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	account, _ = players.FindApprovedPlayer("captain")
	if account.Suspended {
		t.Fatal("suspension not lifted")
	}

	pending := signupPlayer(t, players, "rookie")
	if err := players.Suspend(pending.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("suspend pending error = %v, want ErrNotFound", err)
	}
}

func TestFindApprovedPlayerNormalizesName(t *testing.T) {
	db := setupTestDB(t)
	players := NewPlayerService(db, &stubEmail{})

	approvedPlayer(t, players, "Maestro")
	account, err := players.FindApprovedPlayer("  maestro ")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if account == nil || account.BallerName != "Maestro" {
		t.Fatalf("lookup returned %+v", account)
	}

	signupPlayer(t, players, "ghost")
	account, err = players.FindApprovedPlayer("ghost")
	if err != nil {
		t.Fatalf("find pending: %v", err)
	}
	if account != nil {
		t.Fatal("pending player must not resolve as a credential")
	}
}

func TestPlayerNameFallsBackToID(t *testing.T) {
	db := setupTestDB(t)
	players := NewPlayerService(db, &stubEmail{})

	player := approvedPlayer(t, players, "target")
	if got := players.PlayerName(player.ID); got != "target" {
		t.Fatalf("PlayerName = %q", got)
	}
	if got := players.PlayerName(424242); got != "424242" {
		t.Fatalf("unknown id name = %q, want numeric fallback", got)
	}
}
