package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"membership/models"
	"membership/services"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	players *services.PlayerService
	dues    *services.DuesService
}

func NewMembershipHandler(players *services.PlayerService, dues *services.DuesService) *MembershipHandler {
	return &MembershipHandler{players: players, dues: dues}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotReviewed):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrWrongStatus),
		errors.Is(err, services.ErrNameTaken),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrUnderReview):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Signup godoc
// @Summary Register as a prospective member
// @Tags membership
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Registration details"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Router /signup [post]
func (h *MembershipHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	player, err := h.players.Signup(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

// Pending godoc
// @Summary List registrations awaiting review
// @Tags membership
// @Produce json
// @Success 200 {array} models.Player
// @Security BearerAuth
// @Router /admin/pending [get]
func (h *MembershipHandler) Pending(c *gin.Context) {
	players, err := h.players.Pending()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

// Approve godoc
// @Summary Approve a pending registration
// @Tags membership
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/approve/{id} [post]
func (h *MembershipHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	player, err := h.players.Approve(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

// Reject godoc
// @Summary Reject a pending registration
// @Tags membership
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/reject/{id} [post]
func (h *MembershipHandler) Reject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.players.Reject(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registration rejected"})
}

// Approved godoc
// @Summary List approved members with current-quarter dues
// @Tags membership
// @Produce json
// @Success 200 {array} models.MemberView
// @Security BearerAuth
// @Router /admin/approved [get]
func (h *MembershipHandler) Approved(c *gin.Context) {
	players, err := h.players.Approved()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	now := time.Now()
	views := make([]models.MemberView, 0, len(players))
	for _, p := range players {
		view := models.MemberView{
			Player:          p,
			PasswordDisplay: p.PasswordDisplay,
			DuesYear:        now.Year(),
			DuesQuarter:     services.CurrentQuarter(now),
		}
		dues, err := h.dues.DuesFor(p.ID, now)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		view.DuesStatus = dues.Status
		view.WaiverDueBy = dues.WaiverDueBy
		views = append(views, view)
	}
	c.JSON(http.StatusOK, views)
}

// Suspend godoc
// @Summary Suspend an approved member
// @Tags membership
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/suspend/{id} [post]
func (h *MembershipHandler) Suspend(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.players.Suspend(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member suspended"})
}

// Activate godoc
// @Summary Lift a member's suspension
// @Tags membership
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /admin/activate/{id} [post]
func (h *MembershipHandler) Activate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.players.Activate(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member activated"})
}
