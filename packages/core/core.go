package core

import (
	"math/rand"

	"core/handlers"
	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	MatchdayHandler *handlers.MatchdayHandler
	SquadHandler    *handlers.SquadHandler
	FixtureHandler  *handlers.FixtureHandler
	StatsHandler    *handlers.StatsHandler

	MatchdayService  *services.MatchdayService
	SquadService     *services.SquadService
	FixtureService   *services.FixtureService
	LedgerService    *services.LedgerService
	StandingsService *services.StandingsService
	RatingService    *services.RatingService
	CareerService    *services.CareerService

	db *gorm.DB
}

// NewModule wires the core services and handlers. directory supplies
// membership facts; rng drives squad formation (nil means time-seeded).
func NewModule(db *gorm.DB, directory services.MemberDirectory, rng *rand.Rand) *Module {
	squadService := services.NewSquadService(db, directory, rng)
	fixtureService := services.NewFixtureService(db)
	ledgerService := services.NewLedgerService(db, directory)
	matchdayService := services.NewMatchdayService(db, directory, squadService, fixtureService)
	standingsService := services.NewStandingsService(db)
	ratingService := services.NewRatingService(db, directory, squadService, fixtureService, standingsService, ledgerService)
	careerService := services.NewCareerService(db, directory, ratingService, ledgerService)

	return &Module{
		MatchdayHandler: handlers.NewMatchdayHandler(matchdayService, squadService, fixtureService, ledgerService, standingsService, ratingService, directory),
		SquadHandler:    handlers.NewSquadHandler(squadService),
		FixtureHandler:  handlers.NewFixtureHandler(fixtureService, ledgerService),
		StatsHandler:    handlers.NewStatsHandler(standingsService, ratingService, careerService, ledgerService),

		MatchdayService:  matchdayService,
		SquadService:     squadService,
		FixtureService:   fixtureService,
		LedgerService:    ledgerService,
		StandingsService: standingsService,
		RatingService:    ratingService,
		CareerService:    careerService,

		db: db,
	}
}

// SetupRoutes registers the core endpoints. requirePlayer and requireAdmin
// are the auth middleware chains supplied by the caller.
func (m *Module) SetupRoutes(r *gin.Engine, requirePlayer, requireAdmin gin.HandlerFunc) {
	matchdays := r.Group("/matchdays")
	{
		matchdays.GET("", requirePlayer, m.MatchdayHandler.ListMatchdays)
		matchdays.POST("", requireAdmin, m.MatchdayHandler.CreateMatchday)
		matchdays.GET("/:id", requireAdmin, m.MatchdayHandler.GetMatchday)
		matchdays.GET("/:id/detail", requirePlayer, m.MatchdayHandler.GetMatchdayDetail)
		matchdays.DELETE("/:id", requireAdmin, m.MatchdayHandler.DeleteMatchday)

		matchdays.POST("/:id/vote", requirePlayer, m.MatchdayHandler.CastVote)
		matchdays.POST("/:id/votes", requireAdmin, m.MatchdayHandler.AddVote)
		matchdays.POST("/:id/votes/all", requireAdmin, m.MatchdayHandler.VoteAllEligible)
		matchdays.DELETE("/:id/votes/:playerId", requireAdmin, m.MatchdayHandler.RemoveVote)

		matchdays.POST("/:id/close-voting", requireAdmin, m.MatchdayHandler.CloseVoting)
		matchdays.POST("/:id/reopen-voting", requireAdmin, m.MatchdayHandler.ReopenVoting)
		matchdays.POST("/:id/approve", requireAdmin, m.MatchdayHandler.ApproveMatchday)
		matchdays.POST("/:id/reject", requireAdmin, m.MatchdayHandler.RejectMatchday)
		matchdays.POST("/:id/publish-squads", requireAdmin, m.MatchdayHandler.PublishSquads)
		matchdays.POST("/:id/unpublish-squads", requireAdmin, m.MatchdayHandler.UnpublishSquads)
		matchdays.POST("/:id/publish-fixtures", requireAdmin, m.MatchdayHandler.PublishFixtures)
		matchdays.POST("/:id/end", requireAdmin, m.MatchdayHandler.EndMatchday)
		matchdays.POST("/:id/reopen", requireAdmin, m.MatchdayHandler.ReopenMatchday)

		matchdays.GET("/:id/squads", requireAdmin, m.SquadHandler.ListSquads)
		matchdays.POST("/:id/squads/regenerate", requireAdmin, m.SquadHandler.RegenerateSquads)
		matchdays.POST("/:id/squads/move", requireAdmin, m.SquadHandler.MoveMember)
		matchdays.POST("/:id/squads/move-batch", requireAdmin, m.SquadHandler.MoveMembers)

		matchdays.GET("/:id/fixtures", requireAdmin, m.FixtureHandler.ListFixtures)
		matchdays.POST("/:id/fixtures/generate", requireAdmin, m.FixtureHandler.GenerateFixtures)
		matchdays.POST("/:id/fixtures/:fixtureId/start", requireAdmin, m.FixtureHandler.StartFixture)
		matchdays.POST("/:id/fixtures/:fixtureId/end", requireAdmin, m.FixtureHandler.EndFixture)
		matchdays.GET("/:id/fixtures/:fixtureId/scorers", requireAdmin, m.FixtureHandler.EligibleScorers)
		matchdays.GET("/:id/fixtures/:fixtureId/goals", requireAdmin, m.FixtureHandler.ListGoals)
		matchdays.POST("/:id/fixtures/:fixtureId/goals", requireAdmin, m.FixtureHandler.AddGoal)
		matchdays.DELETE("/:id/fixtures/:fixtureId/goals/:goalId", requireAdmin, m.FixtureHandler.RemoveGoal)
		matchdays.GET("/:id/fixtures/:fixtureId/cards", requireAdmin, m.FixtureHandler.ListFixtureCards)

		matchdays.GET("/:id/cards", requireAdmin, m.FixtureHandler.ListMatchdayCards)
		matchdays.POST("/:id/cards", requireAdmin, m.FixtureHandler.AddCard)

		matchdays.GET("/:id/attendance", requireAdmin, m.FixtureHandler.ListAttendance)
		matchdays.POST("/:id/attendance", requireAdmin, m.FixtureHandler.SetAttendance)
		matchdays.POST("/:id/attendance/bulk", requireAdmin, m.FixtureHandler.SetAttendanceBulk)
		matchdays.GET("/:id/attendance/summary", requireAdmin, m.FixtureHandler.AttendanceSummary)

		matchdays.GET("/:id/table", requirePlayer, m.StatsHandler.GetTable)
		matchdays.GET("/:id/ratings", requirePlayer, m.StatsHandler.GetMatchdayRatings)
		matchdays.GET("/:id/top-scorers", requirePlayer, m.StatsHandler.GetTopScorers)
	}

	r.GET("/players/:playerId/stats", requireAdmin, m.StatsHandler.GetPlayerStats)
	r.GET("/me/stats", requirePlayer, m.StatsHandler.GetMyStats)
	r.GET("/leaderboard", requirePlayer, m.StatsHandler.GetLeaderboard)
	r.GET("/leaderboard/top-five", requirePlayer, m.StatsHandler.GetTopFive)
}
