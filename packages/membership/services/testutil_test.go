package services

import (
	"testing"
	"time"

	"membership/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// An in-memory database exists per connection; keep the pool at one.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Player{}, &models.Dues{}, &models.PaymentEvidence{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// stubEmail records sends instead of talking to a mail server.
type stubEmail struct {
	sent []string
}

func (s *stubEmail) SendCredentials(to, ballerName, password string) error {
	s.sent = append(s.sent, to)
	return nil
}

func signupPlayer(t *testing.T, players *PlayerService, ballerName string) *models.Player {
	t.Helper()
	player, err := players.Signup(models.SignupRequest{
		FirstName:     "Test",
		Surname:       "Player",
		BallerName:    ballerName,
		JerseyNumber:  7,
		Email:         ballerName + "@example.com",
		WhatsappPhone: "+2348000000000",
	})
	if err != nil {
		t.Fatalf("signup %s: %v", ballerName, err)
	}
	return player
}

func approvedPlayer(t *testing.T, players *PlayerService, ballerName string) *models.Player {
	t.Helper()
	player := signupPlayer(t, players, ballerName)
	approved, err := players.Approve(player.ID)
	if err != nil {
		t.Fatalf("approve %s: %v", ballerName, err)
	}
	return approved
}

func testNow() time.Time {
	// Mid Q2 so quarter math is unambiguous.
	return time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)
}
