package handlers

import (
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	standings *services.StandingsService
	ratings   *services.RatingService
	career    *services.CareerService
	ledger    *services.LedgerService
}

func NewStatsHandler(standings *services.StandingsService, ratings *services.RatingService, career *services.CareerService, ledger *services.LedgerService) *StatsHandler {
	return &StatsHandler{standings: standings, ratings: ratings, career: career, ledger: ledger}
}

// GetTable shows the matchday league table
// @Summary Get the matchday table
// @Description Standings over completed fixtures: 3 points a win, 1 a draw, sorted by points then goal difference
// @Tags stats
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {array} models.TableRow
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/table [get]
func (h *StatsHandler) GetTable(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := h.standings.Table(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetMatchdayRatings lists every squad member's rating for the matchday
// @Summary Get matchday ratings
// @Tags stats
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {array} models.PlayerRating
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/ratings [get]
func (h *StatsHandler) GetMatchdayRatings(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ratings, err := h.ratings.MatchdayRatings(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// GetTopScorers shows the matchday scorer and assist tallies
// @Summary Get matchday top scorers and assists
// @Tags stats
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/top-scorers [get]
func (h *StatsHandler) GetTopScorers(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	scorers, assists, err := h.ledger.TopScorers(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"top_scorers": scorers, "top_assists": assists})
}

// GetPlayerStats shows a player's career record (admin)
// @Summary Get a player's career stats
// @Tags stats
// @Produce json
// @Param playerId path int true "Player ID"
// @Success 200 {object} models.CareerStats
// @Failure 404 {object} map[string]string
// @Router /players/{playerId}/stats [get]
func (h *StatsHandler) GetPlayerStats(c *gin.Context) {
	playerID, ok := pathID(c, "playerId")
	if !ok {
		return
	}
	stats, err := h.career.PlayerStats(playerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetMyStats shows the logged-in member's career record with global rank
// @Summary Get my career stats
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /me/stats [get]
func (h *StatsHandler) GetMyStats(c *gin.Context) {
	playerID, ok := contextPlayerID(c)
	if !ok {
		return
	}
	stats, err := h.career.PlayerStats(playerID)
	if err != nil {
		respondError(c, err)
		return
	}
	rank, err := h.career.GlobalRank(playerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats, "global_rank": rank})
}

// GetLeaderboard shows the club leaderboard with star tiers
// @Summary Get the club leaderboard
// @Description Career averages over ended matchdays with star tiers and top-20 cuts
// @Tags stats
// @Produce json
// @Success 200 {object} models.Leaderboard
// @Failure 500 {object} map[string]string
// @Router /leaderboard [get]
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	board, err := h.career.Leaderboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// GetTopFive shows the five best career averages
// @Summary Get the top five players
// @Tags stats
// @Produce json
// @Success 200 {array} models.LeaderboardEntry
// @Failure 500 {object} map[string]string
// @Router /leaderboard/top-five [get]
func (h *StatsHandler) GetTopFive(c *gin.Context) {
	entries, err := h.career.TopFive()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
