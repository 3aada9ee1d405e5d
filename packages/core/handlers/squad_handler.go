package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	"github.com/gin-gonic/gin"
)

type SquadHandler struct {
	squads *services.SquadService
}

func NewSquadHandler(squads *services.SquadService) *SquadHandler {
	return &SquadHandler{squads: squads}
}

// ListSquads lists the matchday's squads with members and guest slots
// @Summary List squads
// @Description Squads with their members, attendance flags and the implicit guest slot
// @Tags squads
// @Produce json
// @Param id path int true "Matchday ID"
// @Success 200 {array} models.SquadView
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/squads [get]
func (h *SquadHandler) ListSquads(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.squads.Squads(matchdayID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// RegenerateSquads reforms squads from the current voter set
// @Summary Regenerate squads
// @Description Delete and re-form squads; refused while published unless force=true, always refused once fixtures exist
// @Tags squads
// @Produce json
// @Param id path int true "Matchday ID"
// @Param force query bool false "Bypass the published check"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matchdays/{id}/squads/regenerate [post]
func (h *SquadHandler) RegenerateSquads(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	force := c.Query("force") == "true"
	if err := h.squads.Regenerate(matchdayID, force); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Squads regenerated"})
}

// MoveMember relocates one player between squads
// @Summary Move a squad member
// @Description Move one player to another squad of the same matchday; approved and unpublished only
// @Tags squads
// @Accept json
// @Produce json
// @Param id path int true "Matchday ID"
// @Param request body models.MoveMemberRequest true "Move"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matchdays/{id}/squads/move [post]
func (h *SquadHandler) MoveMember(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.MoveMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.squads.MoveMember(matchdayID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member moved"})
}

// MoveMembers applies a batch of moves
// @Summary Move several squad members
// @Description Apply a batch of moves in order; stops at the first failure
// @Tags squads
// @Accept json
// @Produce json
// @Param id path int true "Matchday ID"
// @Param request body models.MoveBatchRequest true "Moves"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /matchdays/{id}/squads/move-batch [post]
func (h *SquadHandler) MoveMembers(c *gin.Context) {
	matchdayID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.MoveBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applied := 0
	for _, move := range req.Moves {
		if err := h.squads.MoveMember(matchdayID, move); err != nil {
			respondError(c, err)
			return
		}
		applied++
	}
	c.JSON(http.StatusOK, gin.H{"message": "Members moved", "applied": applied})
}
