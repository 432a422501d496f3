package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"criavo/internal/middleware"
	"criavo/internal/models"
	"criavo/internal/service"
	"criavo/pkg/money"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	sales *service.SalesService
}

func NewSalesHandler(sales *service.SalesService) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// CreateManual records a sale the brand entered by hand (e.g. a WhatsApp
// order that never touched the store platform).
func (h *SalesHandler) CreateManual(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)
	var req struct {
		CreatorID  uint   `json:"creator_id" binding:"required"`
		Revenue    string `json:"revenue" binding:"required"`
		Commission string `json:"commission"`
		CouponCode string `json:"coupon_code"`
		CampaignID *uint  `json:"campaign_id"`
		OrderID    string `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	revenueCents, err := money.ToCents(req.Revenue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid revenue", "code": "invalid_amount"})
		return
	}
	sale := &models.Sale{
		CompanyID:       companyID,
		CampaignID:      req.CampaignID,
		CreatorID:       req.CreatorID,
		CouponCode:      req.CouponCode,
		OrderID:         req.OrderID,
		Platform:        "manual",
		OrderValueCents: revenueCents,
	}
	if sale.OrderID == "" {
		sale.OrderID = fmt.Sprintf("man-%s", uuid.New().String())
	}
	if req.Commission != "" {
		commissionCents, err := money.ToCents(req.Commission)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commission", "code": "invalid_amount"})
			return
		}
		sale.CommissionCents = &commissionCents
	}
	stored, err := h.sales.RecordSale(sale)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

func (h *SalesHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	sales, err := h.sales.ListSales(middleware.GetCompanyID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// Summary serves the byCreator/byCampaign/byDate read model for the
// brand-tracking dashboard.
func (h *SalesHandler) Summary(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	summary, err := h.sales.Summarize(middleware.GetCompanyID(c), days)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
