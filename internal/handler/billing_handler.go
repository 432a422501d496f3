package handler

import (
	"net/http"
	"time"

	"criavo/internal/middleware"
	"criavo/internal/service"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billing *service.BillingService
}

func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// Current returns the active window, or {"cycle": null} when cycle features
// are disabled for the wallet.
func (h *BillingHandler) Current(c *gin.Context) {
	w, err := h.billing.WalletForCompany(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	cycle, err := h.billing.CurrentCycle(w.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycle": cycle})
}

// Pending returns the window's pending debits grouped into invoice buckets.
func (h *BillingHandler) Pending(c *gin.Context) {
	w, err := h.billing.WalletForCompany(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	buckets, total, err := h.billing.PendingInvoiceTotal(w.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": buckets, "total_cents": total})
}

// Configure sets the wallet's accounting window.
func (h *BillingHandler) Configure(c *gin.Context) {
	var req struct {
		Start time.Time `json:"start" binding:"required"`
		End   time.Time `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.billing.WalletForCompany(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.billing.SetCycle(w.ID, req.Start, req.End); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "billing cycle configured"})
}

// Close rolls the window and opens the next one.
func (h *BillingHandler) Close(c *gin.Context) {
	w, err := h.billing.WalletForCompany(middleware.GetCompanyID(c))
	if err != nil {
		fail(c, err)
		return
	}
	next, moved, err := h.billing.CloseCycle(w.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_cycle": next, "entries_processing": moved})
}
