package handler

import (
	"net/http"
	"strconv"

	"criavo/internal/domain"
	"criavo/internal/middleware"
	"criavo/internal/models"
	"criavo/internal/service"
	"criavo/pkg/money"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	rewards *service.RewardService
}

func NewRewardHandler(rewards *service.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

// Create registers a pending reward once the scorer decides eligibility.
func (h *RewardHandler) Create(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	var req struct {
		CampaignID      uint   `json:"campaign_id" binding:"required"`
		CreatorID       uint   `json:"creator_id" binding:"required"`
		Type            string `json:"type" binding:"required,oneof=ranking_place milestone bonus"`
		RewardType      string `json:"reward_type" binding:"required,oneof=cash product voucher custom"`
		Value           string `json:"value"`
		Description     string `json:"description"`
		RankPosition    *int   `json:"rank_position"`
		PointsThreshold *int   `json:"points_threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reward := &models.CreatorReward{
		CampaignID:      req.CampaignID,
		CompanyID:       companyID,
		CreatorID:       req.CreatorID,
		Type:            req.Type,
		RewardType:      req.RewardType,
		Description:     req.Description,
		RankPosition:    req.RankPosition,
		PointsThreshold: req.PointsThreshold,
	}
	if req.Value != "" {
		cents, err := money.ToCents(req.Value)
		if err != nil || cents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward value", "code": "invalid_amount"})
			return
		}
		reward.ValueCents = &cents
	}
	if err := h.rewards.Create(reward); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, reward)
}

func (h *RewardHandler) ListForCompany(c *gin.Context) {
	rewards, err := h.rewards.ListByCompany(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}

func (h *RewardHandler) ListForCreator(c *gin.Context) {
	rewards, err := h.rewards.ListByCreator(middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}

func (h *RewardHandler) History(c *gin.Context) {
	id, ok := h.ownedReward(c)
	if !ok {
		return
	}
	events, err := h.rewards.History(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *RewardHandler) Approve(c *gin.Context) {
	h.transition(c, func(id, actor uint) (*models.CreatorReward, error) {
		return h.rewards.Approve(id, actor)
	})
}

func (h *RewardHandler) Reject(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	h.transition(c, func(id, actor uint) (*models.CreatorReward, error) {
		return h.rewards.Reject(id, actor, req.Reason)
	})
}

func (h *RewardHandler) Cancel(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	h.transition(c, func(id, actor uint) (*models.CreatorReward, error) {
		return h.rewards.Cancel(id, actor, req.Reason)
	})
}

// Pay settles a cash reward through the wallet. Insufficient funds leaves
// the reward approved and reports the error code to the client.
func (h *RewardHandler) Pay(c *gin.Context) {
	h.transition(c, func(id, actor uint) (*models.CreatorReward, error) {
		return h.rewards.MarkPaid(id, actor)
	})
}

func (h *RewardHandler) Ship(c *gin.Context) {
	var req struct {
		TrackingInfo string `json:"tracking_info" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.transition(c, func(id, actor uint) (*models.CreatorReward, error) {
		return h.rewards.MarkShipped(id, actor, req.TrackingInfo)
	})
}

func (h *RewardHandler) Complete(c *gin.Context) {
	h.transition(c, func(id, actor uint) (*models.CreatorReward, error) {
		return h.rewards.Complete(id, actor)
	})
}

func (h *RewardHandler) transition(c *gin.Context, fn func(id, actor uint) (*models.CreatorReward, error)) {
	id, ok := h.ownedReward(c)
	if !ok {
		return
	}
	reward, err := fn(id, middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reward)
}

// ownedReward resolves the :id param and checks the caller can see the
// reward: brand staff must belong to the owning company, creators must be
// the recipient. Admins pass through.
func (h *RewardHandler) ownedReward(c *gin.Context) (uint, bool) {
	id, ok := rewardID(c)
	if !ok {
		return 0, false
	}
	reward, err := h.rewards.Get(id)
	if err != nil {
		fail(c, err)
		return 0, false
	}
	switch middleware.GetRole(c) {
	case domain.RoleAdmin:
	case domain.RoleCreator:
		if reward.CreatorID != middleware.GetUserID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
			return 0, false
		}
	default:
		if reward.CompanyID != middleware.GetCompanyID(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
			return 0, false
		}
	}
	return id, true
}

func rewardID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward id"})
		return 0, false
	}
	return uint(id), true
}
