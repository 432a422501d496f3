package handler

import (
	"net/http"
	"time"

	"criavo/internal/middleware"
	"criavo/internal/models"
	"criavo/internal/repository"

	"github.com/gin-gonic/gin"
)

// CampaignHandler manages the attribution anchors that payments, rewards,
// coupons and sales hang off. Briefing and content review are out of scope.
type CampaignHandler struct {
	campaignRepo *repository.CampaignRepository
}

func NewCampaignHandler(campaignRepo *repository.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{campaignRepo: campaignRepo}
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req struct {
		Name     string     `json:"name" binding:"required"`
		StartsAt *time.Time `json:"starts_at"`
		EndsAt   *time.Time `json:"ends_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	campaign := &models.Campaign{
		CompanyID: middleware.GetCompanyID(c),
		Name:      req.Name,
		Status:    "active",
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}
	if err := h.campaignRepo.Create(campaign); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.campaignRepo.ListByCompany(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}
