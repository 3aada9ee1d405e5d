package handlers

import (
	"net/http"
	"strconv"
	"time"

	"membership/models"
	"membership/services"

	"auth/middleware"

	"github.com/gin-gonic/gin"
)

type DuesHandler struct {
	dues *services.DuesService
}

func NewDuesHandler(dues *services.DuesService) *DuesHandler {
	return &DuesHandler{dues: dues}
}

// SetDues godoc
// @Summary Set a member's dues for a period
// @Tags dues
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param request body models.SetDuesRequest true "Period and status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/dues/{id} [put]
func (h *DuesHandler) SetDues(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.SetDuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.dues.SetDues(id, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dues updated"})
}

// DuesByQuarter godoc
// @Summary List every approved member's dues for a quarter
// @Tags dues
// @Produce json
// @Param year query int false "Year (defaults to current)"
// @Param quarter query int false "Quarter 1-4 (defaults to current)"
// @Success 200 {array} models.QuarterDues
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/dues-by-quarter [get]
func (h *DuesHandler) DuesByQuarter(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	quarter := services.CurrentQuarter(now)
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}
	if raw := c.Query("quarter"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 4 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quarter"})
			return
		}
		quarter = parsed
	}
	rows, err := h.dues.ByQuarter(year, quarter, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "quarter": quarter, "members": rows})
}

// MyDues godoc
// @Summary View own dues for the current quarter
// @Tags dues
// @Produce json
// @Success 200 {object} models.DuesView
// @Security BearerAuth
// @Router /member/dues [get]
func (h *DuesHandler) MyDues(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	view, err := h.dues.DuesFor(playerID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitEvidence godoc
// @Summary Submit payment evidence for the current quarter
// @Tags dues
// @Accept json
// @Produce json
// @Param request body models.SubmitEvidenceRequest true "Proof reference"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /member/payment-evidence [post]
func (h *DuesHandler) SubmitEvidence(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req models.SubmitEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.dues.SubmitEvidence(playerID, req.Reference, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Evidence submitted for review"})
}

// ApplyWaiver godoc
// @Summary Promise to pay the current quarter by a date
// @Tags dues
// @Accept json
// @Produce json
// @Param request body models.WaiverRequest true "Promised date"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /member/waiver [post]
func (h *DuesHandler) ApplyWaiver(c *gin.Context) {
	playerID, ok := middleware.GetPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req models.WaiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.dues.ApplyWaiver(playerID, req.DueBy, time.Now()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Waiver recorded"})
}

// PendingEvidence godoc
// @Summary List payment evidence awaiting review
// @Tags dues
// @Produce json
// @Success 200 {array} models.EvidenceView
// @Security BearerAuth
// @Router /admin/payment-evidence [get]
func (h *DuesHandler) PendingEvidence(c *gin.Context) {
	views, err := h.dues.PendingEvidence()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ApprovePayment godoc
// @Summary Accept payment evidence and mark the period paid
// @Tags dues
// @Produce json
// @Param id path int true "Evidence ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/approve-payment/{id} [post]
func (h *DuesHandler) ApprovePayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.dues.ApprovePayment(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment approved"})
}

// RejectPayment godoc
// @Summary Decline payment evidence
// @Tags dues
// @Produce json
// @Param id path int true "Evidence ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/reject-payment/{id} [post]
func (h *DuesHandler) RejectPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.dues.RejectPayment(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment rejected"})
}
