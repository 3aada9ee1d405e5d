package services

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"core/models"

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
	// An in-memory database exists per connection; keep the pool at one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&models.Matchday{},
		&models.Vote{},
		&models.Squad{},
		&models.SquadMember{},
		&models.Fixture{},
		&models.Goal{},
		&models.FixtureCard{},
		&models.MatchdayCard{},
		&models.Attendance{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// stubDirectory is an in-memory MemberDirectory. Players not listed in
// ineligible can always vote.
type stubDirectory struct {
	names      map[uint]string
	ineligible map[uint]Eligibility
	approved   []MemberInfo
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{
		names:      map[uint]string{},
		ineligible: map[uint]Eligibility{},
	}
}

func (d *stubDirectory) addPlayer(id uint, name string) {
	d.names[id] = name
	d.approved = append(d.approved, MemberInfo{ID: id, BallerName: name})
}

func (d *stubDirectory) Eligibility(playerID uint, now time.Time) (Eligibility, error) {
	if e, ok := d.ineligible[playerID]; ok {
		return e, nil
	}
	return Eligibility{DuesStatus: DuesPaid}, nil
}

func (d *stubDirectory) PlayerName(playerID uint) string {
	if name, ok := d.names[playerID]; ok {
		return name
	}
	return fmt.Sprintf("%d", playerID)
}

func (d *stubDirectory) ApprovedPlayers() ([]MemberInfo, error) {
	return d.approved, nil
}

type testEnv struct {
	db        *gorm.DB
	directory *stubDirectory
	matchdays *MatchdayService
	squads    *SquadService
	fixtures  *FixtureService
	ledger    *LedgerService
	standings *StandingsService
	ratings   *RatingService
	career    *CareerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	directory := newStubDirectory()
	rng := rand.New(rand.NewSource(42))

	squads := NewSquadService(db, directory, rng)
	fixtures := NewFixtureService(db)
	ledger := NewLedgerService(db, directory)
	matchdays := NewMatchdayService(db, directory, squads, fixtures)
	standings := NewStandingsService(db)
	ratings := NewRatingService(db, directory, squads, fixtures, standings, ledger)
	career := NewCareerService(db, directory, ratings, ledger)

	return &testEnv{
		db:        db,
		directory: directory,
		matchdays: matchdays,
		squads:    squads,
		fixtures:  fixtures,
		ledger:    ledger,
		standings: standings,
		ratings:   ratings,
		career:    career,
	}
}

// seedPlayers registers n approved players named P1..Pn.
func (env *testEnv) seedPlayers(n int) {
	for i := 1; i <= n; i++ {
		env.directory.addPlayer(uint(i), fmt.Sprintf("P%d", i))
	}
}

// approvedMatchday creates a matchday, votes the given players in, closes
// voting and approves it so squads exist.
func (env *testEnv) approvedMatchday(t *testing.T, playerIDs []uint) *models.Matchday {
	t.Helper()
	matchday, err := env.matchdays.Create(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create matchday: %v", err)
	}
	for _, id := range playerIDs {
		if err := env.matchdays.CastVote(matchday.ID, id); err != nil {
			t.Fatalf("vote player %d: %v", id, err)
		}
	}
	if err := env.matchdays.CloseVoting(matchday.ID); err != nil {
		t.Fatalf("close voting: %v", err)
	}
	if err := env.matchdays.Approve(matchday.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	return matchday
}

func (env *testEnv) squadByIndex(t *testing.T, matchdayID uint, index int) models.Squad {
	t.Helper()
	var squad models.Squad
	if err := env.db.Where("matchday_id = ? AND squad_index = ?", matchdayID, index).First(&squad).Error; err != nil {
		t.Fatalf("load squad %d: %v", index, err)
	}
	return squad
}

// playerInSquad returns one real member of the given squad.
func (env *testEnv) playerInSquad(t *testing.T, matchdayID, squadID uint) uint {
	t.Helper()
	var member models.SquadMember
	if err := env.db.Where("matchday_id = ? AND squad_id = ?", matchdayID, squadID).First(&member).Error; err != nil {
		t.Fatalf("load squad member: %v", err)
	}
	return member.PlayerID
}

func testDate() time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

func playerIDs(n int) []uint {
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	return ids
}
