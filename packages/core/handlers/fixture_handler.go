package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type FixtureHandler struct {
	fixtures *services.FixtureService
	ledger   *services.LedgerService
}

func NewFixtureHandler(fixtures *services.FixtureService, ledger *services.LedgerService) *FixtureHandler {
	return &FixtureHandler{fixtures: fixtures, ledger: ledger}
}

// GenerateFixtures creates the round robin for a matchday
// @Summary Generate fixtures
// @Description Create one fixture per squad pair, home side being the lower squad index. Runs once per matchday.
// @Tags fixtures
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matchdays/{id}/fixtures/generate [post]
func (h *FixtureHandler) GenerateFixtures(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	count, err := h.fixtures.Generate(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Fixtures generated", "count": count})
}

// ListFixtures lists the matchday's fixtures with goal detail
// @Summary List fixtures
// @Tags fixtures
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {array} models.FixtureView
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/fixtures [get]
func (h *FixtureHandler) ListFixtures(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.fixtures.List(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	for i := range views {
		goals, err := h.ledger.Goals(matchdayID, views[i].ID)
		if err != nil {
			respondError(c, err)
			return
		}
		views[i].Goals = goals
	}
	c.JSON(http.StatusOK, views)
}

// StartFixture moves a fixture to in_progress
// @Summary Start a fixture
// @Tags fixtures
// @Produce json
// @Param id path int true "Matchday ID"
// @Param fixtureId path int true "Fixture ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/fixtures/{fixtureId}/start [post]
func (h *FixtureHandler) StartFixture(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fixtureID, ok := pathID(c, "fixtureId")
	if !ok {
		return
	}
	if err := h.fixtures.Start(matchdayID, fixtureID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fixture started"})
}

// EndFixture moves a fixture to completed
// @Summary End a fixture
// @Tags fixtures
// @Produce json
// @Param id path int true "Matchday ID"
// @Param fixtureId path int true "Fixture ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/fixtures/{fixtureId}/end [post]
func (h *FixtureHandler) EndFixture(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fixtureID, ok := pathID(c, "fixtureId")
	if !ok {
		return
	}
	if err := h.fixtures.End(matchdayID, fixtureID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fixture ended"})
}

// EligibleScorers lists who a goal may be credited to
// @Summary List eligible scorers
// @Description Present real members of the two squads plus each squad's guest slot
// @Tags goals
// @Produce json
// @Param id path int true "Matchday ID"
// @Param fixtureId path int true "Fixture ID"
// @Success 200 {array} models.ScorerChoice
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/fixtures/{fixtureId}/scorers [get]
func (h *FixtureHandler) EligibleScorers(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fixtureID, ok := pathID(c, "fixtureId")
	if !ok {
		return
	}
	fixture, err := h.fixtures.Get(matchdayID, fixtureID)
	if err != nil {
		respondError(c, err)
		return
	}
	choices, err := h.ledger.EligibleScorers(matchdayID, fixture)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, choices)
}

// AddGoal records a goal
// @Summary Add a goal
// @Description Record a goal and bump the fixture score; the side is inferred from the scorer's squad when omitted
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Matchday ID"
// @Param fixtureId path int true "Fixture ID"
// @Param request body models.AddGoalRequest true "Goal"
// @Success 201 {object} models.Goal
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/fixtures/{fixtureId}/goals [post]
func (h *FixtureHandler) AddGoal(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fixtureID, ok := pathID(c, "fixtureId")
	if !ok {
		return
	}
	var req models.AddGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fixture, err := h.fixtures.Get(matchdayID, fixtureID)
	if err != nil {
		respondError(c, err)
		return
	}
	goal, err := h.ledger.AddGoal(matchdayID, fixture, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// RemoveGoal deletes a goal and its assist
// @Summary Remove a goal
// @Description Delete a goal, its assist, and decrement the fixture score
// @Tags goals
// @Produce json
// @Param id path int true "Matchday ID"
// @Param fixtureId path int true "Fixture ID"
// @Param goalId path int true "Goal ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/fixtures/{fixtureId}/goals/{goalId} [delete]
func (h *FixtureHandler) RemoveGoal(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fixtureID, ok := pathID(c, "fixtureId")
	if !ok {
		return
	}
	goalID, ok := pathID(c, "goalId")
	if !ok {
		return
	}
	fixture, err := h.fixtures.Get(matchdayID, fixtureID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.ledger.RemoveGoal(matchdayID, fixture, goalID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal removed"})
}

// ListGoals lists a fixture's goals with resolved names
// @Summary List a fixture's goals
// @Tags goals
// @Produce json
// @Param id path int true "Matchday ID"
// @Param fixtureId path int true "Fixture ID"
// @Success 200 {array} models.GoalDetail
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/fixtures/{fixtureId}/goals [get]
func (h *FixtureHandler) ListGoals(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fixtureID, ok := pathID(c, "fixtureId")
	if !ok {
		return
	}
	if _, err := h.fixtures.Get(matchdayID, fixtureID); err != nil {
		respondError(c, err)
		return
	}
	goals, err := h.ledger.Goals(matchdayID, fixtureID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// ListFixtureCards lists a fixture's card entries
// @Summary List a fixture's cards
// @Tags cards
// @Produce json
// @Param id path int true "Matchday ID"
// @Param fixtureId path int true "Fixture ID"
// @Success 200 {array} models.FixtureCardDetail
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/fixtures/{fixtureId}/cards [get]
func (h *FixtureHandler) ListFixtureCards(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fixtureID, ok := pathID(c, "fixtureId")
	if !ok {
		return
	}
	if _, err := h.fixtures.Get(matchdayID, fixtureID); err != nil {
		respondError(c, err)
		return
	}
	cards, err := h.ledger.FixtureCards(matchdayID, fixtureID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// AddCard records a card
// @Summary Add a card
// @Description Record a yellow or red card; cumulative counts only accrue for real players
// @Tags cards
// @Accept json
// @Produce json
// @Param id path int true "Matchday ID"
// @Param request body models.AddCardRequest true "Card"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/cards [post]
func (h *FixtureHandler) AddCard(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ledger.AddCard(matchdayID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Card recorded"})
}

// ListMatchdayCards lists cumulative card counts for the matchday
// @Summary List matchday card counts
// @Description Per squad member, including members without cards
// @Tags cards
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {array} models.CardCount
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/cards [get]
func (h *FixtureHandler) ListMatchdayCards(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	counts, err := h.ledger.MatchdayCards(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// SetAttendance marks one squad member present or absent
// @Summary Set attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path int true "Matchday ID"
// @Param request body models.SetAttendanceRequest true "Attendance"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/attendance [post]
func (h *FixtureHandler) SetAttendance(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.SetAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.ledger.SetAttendance(matchdayID, req.PlayerID, *req.Present); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance updated"})
}

// SetAttendanceBulk applies many attendance updates at once
// @Summary Set attendance in bulk
// @Description Applies every valid update, skipping guests and players outside the squads
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path int true "Matchday ID"
// @Param request body models.BulkAttendanceRequest true "Updates"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/attendance/bulk [post]
func (h *FixtureHandler) SetAttendanceBulk(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applied, err := h.ledger.SetAttendanceBulk(matchdayID, req.Updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance updated", "applied": applied})
}

// ListAttendance lists every squad member's effective attendance
// @Summary List attendance
// @Tags attendance
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {array} models.AttendanceEntry
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/attendance [get]
func (h *FixtureHandler) ListAttendance(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	entries, err := h.ledger.Attendance(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AttendanceSummary splits squad members into present and absent
// @Summary Attendance summary
// @Tags attendance
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} models.AttendanceSummary
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/attendance/summary [get]
func (h *FixtureHandler) AttendanceSummary(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.ledger.AttendanceSummary(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
