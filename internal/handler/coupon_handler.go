package handler

import (
	"net/http"
	"strconv"
	"time"

	"criavo/internal/middleware"
	"criavo/internal/models"
	"criavo/internal/repository"
	"criavo/pkg/money"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	couponRepo *repository.CouponRepository
}

func NewCouponHandler(couponRepo *repository.CouponRepository) *CouponHandler {
	return &CouponHandler{couponRepo: couponRepo}
}

func (h *CouponHandler) Create(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	var req struct {
		CampaignID    uint       `json:"campaign_id" binding:"required"`
		CreatorID     *uint      `json:"creator_id"`
		Code          string     `json:"code" binding:"required"`
		DiscountType  string     `json:"discount_type" binding:"required,oneof=percentage fixed"`
		DiscountValue string     `json:"discount_value" binding:"required"`
		MaxUses       *int       `json:"max_uses"`
		ExpiresAt     *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var value int64
	if req.DiscountType == "percentage" {
		n, err := strconv.ParseInt(req.DiscountValue, 10, 64)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discount percentage", "code": "invalid_amount"})
			return
		}
		value = n
	} else {
		cents, err := money.ToCents(req.DiscountValue)
		if err != nil || cents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discount value", "code": "invalid_amount"})
			return
		}
		value = cents
	}
	coupon := &models.Coupon{
		CompanyID:     companyID,
		CampaignID:    req.CampaignID,
		CreatorID:     req.CreatorID,
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: value,
		MaxUses:       req.MaxUses,
		ExpiresAt:     req.ExpiresAt,
		IsActive:      true,
	}
	if err := h.couponRepo.Create(coupon); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.couponRepo.ListByCompany(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// Toggle flips is_active; used to pause a leaked code without losing history.
func (h *CouponHandler) Toggle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
		return
	}
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	coupon, err := h.couponRepo.SetActive(uint(id), middleware.GetCompanyID(c), *req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}
