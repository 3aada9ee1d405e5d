package handlers

import (
	"net/http"
	"time"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type MatchdayHandler struct {
	matchdays *services.MatchdayService
	squads    *services.SquadService
	fixtures  *services.FixtureService
	ledger    *services.LedgerService
	standings *services.StandingsService
	ratings   *services.RatingService
	directory services.MemberDirectory
}

func NewMatchdayHandler(matchdays *services.MatchdayService, squads *services.SquadService, fixtures *services.FixtureService, ledger *services.LedgerService, standings *services.StandingsService, ratings *services.RatingService, directory services.MemberDirectory) *MatchdayHandler {
	return &MatchdayHandler{
		matchdays: matchdays,
		squads:    squads,
		fixtures:  fixtures,
		ledger:    ledger,
		standings: standings,
		ratings:   ratings,
		directory: directory,
	}
}

// CreateMatchday opens a new matchday for voting
// @Summary Create a matchday
// @Description Create a matchday on the given date and open voting immediately
// @Tags matchdays
// @Accept json
// @Produce json
// @Param request body models.CreateMatchdayRequest true "Match date (YYYY-MM-DD)"
// @Success 201 {object} models.Matchday
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matchdays [post]
func (h *MatchdayHandler) CreateMatchday(c *gin.Context) {
	var req models.CreateMatchdayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	matchDate, err := time.Parse("2006-01-02", req.MatchDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match_date must be YYYY-MM-DD"})
		return
	}
	matchday, err := h.matchdays.Create(matchDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, matchday)
}

// ListMatchdays lists matchdays
// @Summary List matchdays
// @Description List all matchdays, newest match date first
// @Tags matchdays
// @Produce json
// @Success 200 {array} models.Matchday
// @Failure 500 {object} map[string]string
// @Router /matchdays [get]
func (h *MatchdayHandler) ListMatchdays(c *gin.Context) {
	matchdays, err := h.matchdays.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matchdays)
}

// GetMatchday shows the admin summary of one matchday
// @Summary Get matchday summary
// @Description Get one matchday with its vote count and voter list
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} models.MatchdaySummary
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id} [get]
func (h *MatchdayHandler) GetMatchday(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.matchdays.Summary(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetMatchdayDetail shows a member's view of one matchday
// @Summary Get matchday detail for the logged-in member
// @Description Matchday with the member's vote and squad, published squads and fixtures, table and per-matchday stats
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/detail [get]
func (h *MatchdayHandler) GetMatchdayDetail(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	playerID, ok := contextPlayerID(c)
	if !ok {
		return
	}
	matchday, err := h.matchdays.Get(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}

	voters, err := h.matchdays.VotedPlayers(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	hasVoted := false
	for _, v := range voters {
		if v.PlayerID == playerID {
			hasVoted = true
			break
		}
	}

	canVote := false
	if matchday.Status == models.StatusVotingOpen && !hasVoted {
		eligibility, err := h.directory.Eligibility(playerID, time.Now())
		if err == nil {
			canVote = eligibility.CanVote(time.Now())
		}
	}

	detail := gin.H{
		"matchday":   matchday,
		"vote_count": len(voters),
		"has_voted":  hasVoted,
		"can_vote":   canVote,
	}

	if matchday.SquadsPublished {
		squadViews, err := h.squads.Squads(matchdayID)
		if err != nil {
			respondError(c, err)
			return
		}
		detail["squads"] = squadViews

		mySquad, err := h.squads.SquadOf(matchdayID, playerID)
		if err != nil {
			respondError(c, err)
			return
		}
		if mySquad != nil {
			detail["my_squad_index"] = mySquad.SquadIndex
		}
	}

	if matchday.FixturesPublished {
		fixtures, err := h.fixtures.List(matchdayID)
		if err != nil {
			respondError(c, err)
			return
		}
		for i := range fixtures {
			goals, err := h.ledger.Goals(matchdayID, fixtures[i].ID)
			if err != nil {
				respondError(c, err)
				return
			}
			fixtures[i].Goals = goals
		}
		detail["fixtures"] = fixtures

		table, err := h.standings.Table(matchdayID)
		if err != nil {
			respondError(c, err)
			return
		}
		detail["table"] = table

		scorers, assists, err := h.ledger.TopScorers(matchdayID)
		if err != nil {
			respondError(c, err)
			return
		}
		detail["top_scorers"] = scorers
		detail["top_assists"] = assists

		playerRatings, err := h.ratings.MatchdayRatings(matchdayID)
		if err != nil {
			respondError(c, err)
			return
		}
		detail["ratings"] = playerRatings
	}

	c.JSON(http.StatusOK, detail)
}

// DeleteMatchday removes a matchday and all records under it
// @Summary Delete a matchday
// @Description Delete the matchday and cascade over votes, squads, fixtures, goals, cards and attendance
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id} [delete]
func (h *MatchdayHandler) DeleteMatchday(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.matchdays.Delete(matchdayID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Matchday deleted"})
}

// CastVote records the logged-in member's vote
// @Summary Vote for a matchday
// @Description Register the member for the matchday; requires open voting and eligibility
// @Tags votes
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matchdays/{id}/vote [post]
func (h *MatchdayHandler) CastVote(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	playerID, ok := contextPlayerID(c)
	if !ok {
		return
	}
	if err := h.matchdays.CastVote(matchdayID, playerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Vote recorded"})
}

// AddVote registers a vote on a player's behalf (admin)
// @Summary Add a vote for a player
// @Description Admin override that records a vote without the eligibility check
// @Tags votes
// @Accept json
// @Produce json
// @Param id path int true "Matchday ID"
// @Param request body models.AddVoteRequest true "Player to vote for"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matchdays/{id}/votes [post]
func (h *MatchdayHandler) AddVote(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.AddVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.matchdays.AddVote(matchdayID, req.PlayerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Vote recorded"})
}

// RemoveVote withdraws a player's vote (admin)
// @Summary Remove a player's vote
// @Tags votes
// @Produce json
// @Param id path int true "Matchday ID"
// @Param playerId path int true "Player ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/votes/{playerId} [delete]
func (h *MatchdayHandler) RemoveVote(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	playerID, ok := pathID(c, "playerId")
	if !ok {
		return
	}
	if err := h.matchdays.RemoveVote(matchdayID, playerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vote removed"})
}

// VoteAllEligible registers every eligible member who has not voted
// @Summary Vote all eligible members
// @Description Admin shortcut that records a vote for every currently eligible member
// @Tags votes
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/votes/all [post]
func (h *MatchdayHandler) VoteAllEligible(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	added, err := h.matchdays.VoteAllEligible(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Votes recorded", "added": added})
}

// CloseVoting moves the matchday to admin review
// @Summary Close voting
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/close-voting [post]
func (h *MatchdayHandler) CloseVoting(c *gin.Context) {
	h.transition(c, h.matchdays.CloseVoting, "Voting closed")
}

// ReopenVoting reverses a close while no fixture has completed
// @Summary Reopen voting
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/reopen-voting [post]
func (h *MatchdayHandler) ReopenVoting(c *gin.Context) {
	h.transition(c, h.matchdays.ReopenVoting, "Voting reopened")
}

// ApproveMatchday approves the matchday and forms squads
// @Summary Approve a matchday
// @Description Approve the matchday; squads are formed from the voter set in the same transaction
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/approve [post]
func (h *MatchdayHandler) ApproveMatchday(c *gin.Context) {
	h.transition(c, h.matchdays.Approve, "Matchday approved")
}

// RejectMatchday rejects the matchday
// @Summary Reject a matchday
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/reject [post]
func (h *MatchdayHandler) RejectMatchday(c *gin.Context) {
	h.transition(c, h.matchdays.Reject, "Matchday rejected")
}

// PublishSquads makes squads visible to members
// @Summary Publish squads
// @Tags squads
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/publish-squads [post]
func (h *MatchdayHandler) PublishSquads(c *gin.Context) {
	h.transition(c, h.matchdays.PublishSquads, "Squads published")
}

// UnpublishSquads hides squads again
// @Summary Unpublish squads
// @Tags squads
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/unpublish-squads [post]
func (h *MatchdayHandler) UnpublishSquads(c *gin.Context) {
	h.transition(c, h.matchdays.UnpublishSquads, "Squads unpublished")
}

// PublishFixtures makes fixtures visible to members
// @Summary Publish fixtures
// @Tags fixtures
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/publish-fixtures [post]
func (h *MatchdayHandler) PublishFixtures(c *gin.Context) {
	h.transition(c, h.matchdays.PublishFixtures, "Fixtures published")
}

// EndMatchday closes the matchday
// @Summary End a matchday
// @Description End the matchday; fixtures still in progress are force-completed with their current score
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/end [post]
func (h *MatchdayHandler) EndMatchday(c *gin.Context) {
	h.transition(c, h.matchdays.End, "Matchday ended")
}

// ReopenMatchday reverses End for late corrections
// @Summary Reopen an ended matchday
// @Tags matchdays
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/reopen [post]
func (h *MatchdayHandler) ReopenMatchday(c *gin.Context) {
	h.transition(c, h.matchdays.Reopen, "Matchday reopened")
}

func (h *MatchdayHandler) transition(c *gin.Context, fn func(uint) error, message string) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := fn(matchdayID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
